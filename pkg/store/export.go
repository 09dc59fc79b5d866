package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/tessellate-io/tessellate/pkg/models"
)

// templateSchema is the structural contract imported documents must meet
// before decoding. It guards the shape; field-level semantics are checked by
// struct validation afterwards.
const templateSchema = `{
	"type": "object",
	"required": ["name", "industry_id", "use_case_id", "variables"],
	"properties": {
		"id": {"type": "string"},
		"name": {"type": "string", "minLength": 1},
		"description": {"type": "string"},
		"industry_id": {"type": "string", "minLength": 1},
		"use_case_id": {"type": "string", "minLength": 1},
		"version": {"type": "string"},
		"variables": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["name", "type"],
				"properties": {
					"name": {"type": "string", "minLength": 1},
					"type": {"enum": ["string", "number", "boolean", "array", "object", "date", "enum"]}
				}
			}
		},
		"sections": {"type": "array"},
		"defaults": {"type": "object"},
		"validation": {"type": "object"},
		"metadata": {"type": "object"}
	}
}`

var compiledTemplateSchema = gojsonschema.NewStringLoader(templateSchema)

// ExportTemplate serializes a template as indented JSON, structure
// preserved, suitable for re-import.
func (s *Store) ExportTemplate(template *models.ConfigTemplate) ([]byte, error) {
	data, err := json.MarshalIndent(template, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to export template %s: %w", template.ID, err)
	}

	return data, nil
}

// ImportTemplate deserializes a template document and re-keys it into the
// cache under its industry:use-case key, overwriting any existing entry.
// Malformed input is a hard failure; nothing is cached.
func (s *Store) ImportTemplate(ctx context.Context, data []byte) (*models.ConfigTemplate, error) {
	result, err := gojsonschema.Validate(compiledTemplateSchema, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template document: %w", err)
	}

	if !result.Valid() {
		return nil, fmt.Errorf("template document is malformed: %s", result.Errors()[0].String())
	}

	var template models.ConfigTemplate
	if err := json.Unmarshal(data, &template); err != nil {
		return nil, fmt.Errorf("failed to decode template document: %w", err)
	}

	if err := s.validate.Struct(&template); err != nil {
		return nil, fmt.Errorf("imported template is invalid: %w", err)
	}

	key := template.CacheKey()
	if err := s.persistence.Templates().Save(ctx, key, &template); err != nil {
		return nil, fmt.Errorf("failed to cache imported template %s: %w", key, err)
	}

	s.logger.InfoContext(ctx, "Imported template", "template_id", template.ID, "key", key)

	return &template, nil
}
