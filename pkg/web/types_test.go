package web_test

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessellate-io/tessellate/pkg/models"
	"github.com/tessellate-io/tessellate/pkg/web"
)

func TestRequestValidation(t *testing.T) {
	t.Parallel()

	v := validator.New(validator.WithRequiredStructEnabled())

	tests := []struct {
		name    string
		request any
		wantErr bool
	}{
		{
			name:    "apply with data",
			request: web.ApplyRequest{Data: map[string]any{"x": 1}},
		},
		{
			name:    "apply without data",
			request: web.ApplyRequest{},
			wantErr: true,
		},
		{
			name: "variants with rules",
			request: web.VariantsRequest{Variations: []models.VariationRule{
				{Name: "a", Changes: map[string]any{"x": 2}},
			}},
		},
		{
			name:    "variants without rules",
			request: web.VariantsRequest{},
			wantErr: true,
		},
		{
			name:    "import without document",
			request: web.ImportRequest{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := v.Struct(tt.request)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestTransformTemplateSummary(t *testing.T) {
	t.Parallel()

	template := &models.ConfigTemplate{
		ID:         "tpl-1",
		Name:       "Fraud Detection Configuration",
		IndustryID: "finance",
		UseCaseID:  "fraud-detection",
		Version:    "1.0.0",
		Variables: []models.TemplateVariable{
			{Name: "sourceUrl", Type: models.TypeString},
			{Name: "retryAttempts", Type: models.TypeNumber},
		},
		Metadata: models.TemplateMetadata{
			Tags:       []string{"finance"},
			Complexity: models.ComplexityHigh,
		},
	}

	summary := web.TransformTemplateSummary(template)
	assert.Equal(t, "tpl-1", summary.ID)
	assert.Equal(t, "finance", summary.IndustryID)
	assert.Equal(t, "fraud-detection", summary.UseCaseID)
	assert.Equal(t, models.ComplexityHigh, summary.Complexity)
	assert.Equal(t, 2, summary.VariableCount)
	assert.Equal(t, []string{"finance"}, summary.Tags)
}
