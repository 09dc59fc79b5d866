package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessellate-io/tessellate/pkg/models"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestValidateType(t *testing.T) {
	testCases := []struct {
		name         string
		value        any
		variableType models.VariableType
		expected     bool
	}{
		{name: "string", value: "text", variableType: models.TypeString, expected: true},
		{name: "string mismatch", value: 1.0, variableType: models.TypeString, expected: false},
		{name: "number", value: 0.85, variableType: models.TypeNumber, expected: true},
		{name: "number int", value: 42, variableType: models.TypeNumber, expected: true},
		{name: "number rejects string", value: "42", variableType: models.TypeNumber, expected: false},
		{name: "boolean", value: true, variableType: models.TypeBoolean, expected: true},
		{name: "array", value: []any{1, 2}, variableType: models.TypeArray, expected: true},
		{name: "array mismatch", value: "not-array", variableType: models.TypeArray, expected: false},
		{name: "object", value: map[string]any{"k": 1}, variableType: models.TypeObject, expected: true},
		{name: "date", value: time.Now(), variableType: models.TypeDate, expected: true},
		{name: "date rejects zero time", value: time.Time{}, variableType: models.TypeDate, expected: false},
		{name: "enum accepts anything", value: "option", variableType: models.TypeEnum, expected: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ValidateType(tc.value, tc.variableType))
		})
	}
}

func TestValidateType_NaNFailsNumber(t *testing.T) {
	nan := 0.0
	nan /= nan

	assert.False(t, ValidateType(nan, models.TypeNumber), "a failed numeric cast must be rejected")
}

func TestValidateField_RequiredMissing(t *testing.T) {
	v := NewValidator(NewRegistry())
	variable := &models.TemplateVariable{Name: "threshold", Type: models.TypeNumber, Required: true}

	errs := v.ValidateField(nil, variable)
	require.Len(t, errs, 1)
	assert.Equal(t, "threshold", errs[0].Field)
	assert.Equal(t, models.SeverityError, errs[0].Severity)
}

func TestValidateField_OptionalMissing(t *testing.T) {
	v := NewValidator(NewRegistry())
	variable := &models.TemplateVariable{Name: "note", Type: models.TypeString}

	assert.Empty(t, v.ValidateField(nil, variable))
}

func TestValidateField_TypeMismatchStopsConstraintChecks(t *testing.T) {
	v := NewValidator(NewRegistry())
	variable := &models.TemplateVariable{
		Name:       "threshold",
		Type:       models.TypeNumber,
		Validation: &models.VariableValidation{Min: floatPtr(0), Max: floatPtr(1)},
	}

	errs := v.ValidateField("not-a-number", variable)
	require.Len(t, errs, 1, "only the type mismatch should be reported")
	assert.Contains(t, errs[0].Message, "type number")
}

func TestValidateField_NumericBounds(t *testing.T) {
	v := NewValidator(NewRegistry())
	variable := &models.TemplateVariable{
		Name:       "threshold",
		Type:       models.TypeNumber,
		Validation: &models.VariableValidation{Min: floatPtr(0), Max: floatPtr(1)},
	}

	errs := v.ValidateField(1.5, variable)
	require.Len(t, errs, 1, "exactly one error for an out-of-range value")
	assert.Equal(t, "threshold", errs[0].Field)

	assert.Empty(t, v.ValidateField(0.0, variable), "bounds are compared with strict inequality")
	assert.Empty(t, v.ValidateField(1.0, variable))
}

func TestValidateField_StringConstraints(t *testing.T) {
	v := NewValidator(NewRegistry())
	variable := &models.TemplateVariable{
		Name: "code",
		Type: models.TypeString,
		Validation: &models.VariableValidation{
			MinLength: intPtr(3),
			MaxLength: intPtr(6),
			Pattern:   "^[A-Z]+$",
		},
	}

	assert.Empty(t, v.ValidateField("ABCD", variable))

	errs := v.ValidateField("ab", variable)
	assert.Len(t, errs, 2, "length and pattern findings accumulate")

	errs = v.ValidateField("ABCDEFGH", variable)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "at most 6")
}

func TestValidateField_CustomValidator(t *testing.T) {
	registry := NewRegistry()
	registry.Register("even", func(values ...any) bool {
		n, ok := values[0].(float64)

		return ok && int(n)%2 == 0
	})

	v := NewValidator(registry)
	variable := &models.TemplateVariable{
		Name:       "workers",
		Type:       models.TypeNumber,
		Validation: &models.VariableValidation{Custom: "even"},
	}

	assert.Empty(t, v.ValidateField(4.0, variable))

	errs := v.ValidateField(3.0, variable)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, `"even"`)
}

func TestValidateField_UnknownCustomValidatorPassesSilently(t *testing.T) {
	v := NewValidator(NewRegistry())
	variable := &models.TemplateVariable{
		Name:       "workers",
		Type:       models.TypeNumber,
		Validation: &models.VariableValidation{Custom: "nonexistent"},
	}

	assert.Empty(t, v.ValidateField(3.0, variable))
}

func TestValidateField_UnknownCustomValidatorStrictMode(t *testing.T) {
	v := NewValidator(NewRegistry(), WithStrictValidators())
	variable := &models.TemplateVariable{
		Name:       "workers",
		Type:       models.TypeNumber,
		Validation: &models.VariableValidation{Custom: "nonexistent"},
	}

	errs := v.ValidateField(3.0, variable)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "unknown validator")
}

func TestValidateField_ConstraintAndCustomAccumulate(t *testing.T) {
	registry := NewRegistry()
	registry.Register("never", func(_ ...any) bool { return false })

	v := NewValidator(registry)
	variable := &models.TemplateVariable{
		Name:       "threshold",
		Type:       models.TypeNumber,
		Validation: &models.VariableValidation{Max: floatPtr(1), Custom: "never"},
	}

	errs := v.ValidateField(2.0, variable)
	assert.Len(t, errs, 2, "constraint and custom findings both accumulate once the type check passes")
}
