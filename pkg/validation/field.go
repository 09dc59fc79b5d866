package validation

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"time"

	"github.com/tessellate-io/tessellate/pkg/models"
)

// ValidateType reports whether value conforms to the declared variable type.
// NaN fails the number check and the zero time fails the date check, so
// failed casts surface here as type mismatches.
func ValidateType(value any, variableType models.VariableType) bool {
	switch variableType {
	case models.TypeString:
		_, ok := value.(string)

		return ok
	case models.TypeNumber:
		switch n := value.(type) {
		case float64:
			return !math.IsNaN(n)
		case float32:
			return !math.IsNaN(float64(n))
		case int, int32, int64, uint, uint32, uint64:
			return true
		default:
			return false
		}
	case models.TypeBoolean:
		_, ok := value.(bool)

		return ok
	case models.TypeArray:
		kind := reflect.ValueOf(value).Kind()

		return kind == reflect.Slice || kind == reflect.Array
	case models.TypeObject:
		return reflect.ValueOf(value).Kind() == reflect.Map
	case models.TypeDate:
		date, ok := value.(time.Time)

		return ok && !date.IsZero()
	case models.TypeEnum:
		return true
	default:
		return false
	}
}

// ValidateField checks a single value against its declared variable. A
// missing required value or a type mismatch stops further checks for the
// field; once the type check passes, constraint and custom-validator
// findings all accumulate.
func (v *Validator) ValidateField(value any, variable *models.TemplateVariable) []models.ValidationError {
	if value == nil {
		if variable.Required {
			return []models.ValidationError{{
				Field:    variable.Name,
				Message:  fmt.Sprintf("%s is required", variable.Name),
				Severity: models.SeverityError,
			}}
		}

		return nil
	}

	if !ValidateType(value, variable.Type) {
		return []models.ValidationError{{
			Field:    variable.Name,
			Message:  fmt.Sprintf("%s must be of type %s", variable.Name, variable.Type),
			Severity: models.SeverityError,
		}}
	}

	if variable.Validation == nil {
		return nil
	}

	errs := v.checkConstraints(value, variable)

	return append(errs, v.checkCustom(value, variable)...)
}

func (v *Validator) checkConstraints(value any, variable *models.TemplateVariable) []models.ValidationError {
	rules := variable.Validation
	errs := make([]models.ValidationError, 0)

	if number, ok := asFloat(value); ok {
		if rules.Min != nil && number < *rules.Min {
			errs = append(errs, constraintError(variable.Name,
				fmt.Sprintf("%s must be at least %v", variable.Name, *rules.Min)))
		}

		if rules.Max != nil && number > *rules.Max {
			errs = append(errs, constraintError(variable.Name,
				fmt.Sprintf("%s must be at most %v", variable.Name, *rules.Max)))
		}
	}

	if text, ok := value.(string); ok {
		if rules.MinLength != nil && len(text) < *rules.MinLength {
			errs = append(errs, constraintError(variable.Name,
				fmt.Sprintf("%s must be at least %d characters", variable.Name, *rules.MinLength)))
		}

		if rules.MaxLength != nil && len(text) > *rules.MaxLength {
			errs = append(errs, constraintError(variable.Name,
				fmt.Sprintf("%s must be at most %d characters", variable.Name, *rules.MaxLength)))
		}

		if rules.Pattern != "" {
			// An uncompilable pattern is skipped, consistent with the
			// permissive posture toward unresolvable rules.
			if pattern, err := regexp.Compile(rules.Pattern); err == nil && !pattern.MatchString(text) {
				errs = append(errs, constraintError(variable.Name,
					fmt.Sprintf("%s does not match the required pattern", variable.Name)))
			}
		}
	}

	return errs
}

func (v *Validator) checkCustom(value any, variable *models.TemplateVariable) []models.ValidationError {
	name := variable.Validation.Custom
	if name == "" {
		return nil
	}

	fn, ok := v.registry.Lookup(name)
	if !ok {
		if v.strict {
			return []models.ValidationError{constraintError(variable.Name,
				fmt.Sprintf("unknown validator %q referenced by %s", name, variable.Name))}
		}

		return nil
	}

	if !fn(value) {
		return []models.ValidationError{constraintError(variable.Name,
			fmt.Sprintf("%s failed validation %q", variable.Name, name))}
	}

	return nil
}

func constraintError(field, message string) models.ValidationError {
	return models.ValidationError{Field: field, Message: message, Severity: models.SeverityError}
}

func asFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
