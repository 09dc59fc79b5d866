// Package web provides HTTP request and response types for the template API.
package web

import (
	"encoding/json"

	"github.com/tessellate-io/tessellate/pkg/models"
)

// ApplyRequest carries user-supplied values for template application.
type ApplyRequest struct {
	Data map[string]any `json:"data" validate:"required"`
}

// ValidateRequest carries values to check against a template without
// persisting anything.
type ValidateRequest struct {
	Data map[string]any `json:"data" validate:"required"`
}

// VariantsRequest carries the variation rules to run against a saved
// configuration.
type VariantsRequest struct {
	Variations []models.VariationRule `json:"variations" validate:"required,min=1,dive"`
}

// ImportRequest wraps an exported template document.
type ImportRequest struct {
	TemplateJSON json.RawMessage `json:"template_json" validate:"required"`
}

// TemplateSummary is the trimmed template representation returned by
// industry listings.
type TemplateSummary struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description,omitempty"`
	IndustryID    string            `json:"industry_id"`
	UseCaseID     string            `json:"use_case_id"`
	Version       string            `json:"version"`
	Complexity    models.Complexity `json:"complexity,omitempty"`
	Tags          []string          `json:"tags,omitempty"`
	VariableCount int               `json:"variable_count"`
}

// TransformTemplateSummary trims a full template down to its listing fields.
func TransformTemplateSummary(template *models.ConfigTemplate) TemplateSummary {
	return TemplateSummary{
		ID:            template.ID,
		Name:          template.Name,
		Description:   template.Description,
		IndustryID:    template.IndustryID,
		UseCaseID:     template.UseCaseID,
		Version:       template.Version,
		Complexity:    template.Metadata.Complexity,
		Tags:          template.Metadata.Tags,
		VariableCount: len(template.Variables),
	}
}
