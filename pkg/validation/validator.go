package validation

import (
	"github.com/tessellate-io/tessellate/pkg/models"
)

// Validator checks configurations against their templates using an injected
// registry for custom and cross-field predicates.
type Validator struct {
	registry *Registry
	strict   bool
}

// Option configures a Validator.
type Option func(*Validator)

// WithStrictValidators makes references to unregistered validator names fail
// with an error instead of passing silently.
func WithStrictValidators() Option {
	return func(v *Validator) {
		v.strict = true
	}
}

// NewValidator creates a validator bound to the given registry.
func NewValidator(registry *Registry, opts ...Option) *Validator {
	v := &Validator{registry: registry}
	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Registry returns the registry this validator resolves names against.
func (v *Validator) Registry() *Registry {
	return v.registry
}

// ValidateConfiguration checks every declared variable of the template
// against the configuration's values, then the template's cross-field rules.
// Valid is true when no error-severity findings accumulated; warnings never
// flip validity.
func (v *Validator) ValidateConfiguration(template *models.ConfigTemplate, config *models.Configuration) models.ValidationResult {
	result := models.ValidationResult{
		Errors:   make([]models.ValidationError, 0),
		Warnings: make([]models.ValidationError, 0),
	}

	for i := range template.Variables {
		variable := &template.Variables[i]
		findings := v.ValidateField(config.Values[variable.Name], variable)
		result = appendFindings(result, findings)
	}

	crossFindings := v.ValidateCrossField(template.Validation.CrossField, config.Values)
	result = appendFindings(result, crossFindings)

	result.Valid = len(result.Errors) == 0

	return result
}

func appendFindings(result models.ValidationResult, findings []models.ValidationError) models.ValidationResult {
	for _, finding := range findings {
		if finding.Severity == models.SeverityWarning {
			result.Warnings = append(result.Warnings, finding)

			continue
		}

		result.Errors = append(result.Errors, finding)
	}

	return result
}
