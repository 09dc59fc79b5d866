package validation

import (
	"fmt"
	"strings"

	"github.com/tessellate-io/tessellate/pkg/models"
)

// ValidateCrossField evaluates the template's cross-field rules against the
// configuration values. Each rule's validator is invoked positionally with
// the named fields' current values; a failing rule emits one combined error
// whose field is the comma-joined field-name list. Rules naming an
// unregistered validator are skipped silently unless strict mode is on.
func (v *Validator) ValidateCrossField(rules []models.CrossFieldValidation, values map[string]any) []models.ValidationError {
	errs := make([]models.ValidationError, 0)

	for _, rule := range rules {
		joined := strings.Join(rule.Fields, ",")

		fn, ok := v.registry.Lookup(rule.Validator)
		if !ok {
			if v.strict {
				errs = append(errs, models.ValidationError{
					Field:    joined,
					Message:  fmt.Sprintf("unknown validator %q", rule.Validator),
					Severity: models.SeverityError,
				})
			}

			continue
		}

		args := make([]any, len(rule.Fields))
		for i, field := range rule.Fields {
			args[i] = values[field]
		}

		if !fn(args...) {
			errs = append(errs, models.ValidationError{
				Field:    joined,
				Message:  rule.Message,
				Severity: models.SeverityError,
			})
		}
	}

	return errs
}
