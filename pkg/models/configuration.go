package models

import "time"

// ConfigurationMetadata describes how and when a configuration was created.
type ConfigurationMetadata struct {
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by,omitempty"`
	Name        string    `json:"name,omitempty"`
	Description string    `json:"description,omitempty"`
}

// Configuration is one concrete instantiation of a template. It is immutable
// once validated and saved; a new save always produces a new id.
type Configuration struct {
	ID         string                `json:"id,omitempty"` // assigned on save
	TemplateID string                `json:"template_id"   validate:"required"`
	Values     map[string]any        `json:"values"`
	Metadata   ConfigurationMetadata `json:"metadata"`
}

// VariantMetadata describes a generated variant.
type VariantMetadata struct {
	CreatedAt   time.Time `json:"created_at"`
	Purpose     string    `json:"purpose,omitempty"`
	Performance string    `json:"performance,omitempty"`
}

// ConfigVariant is a named delta against a base configuration. Overrides hold
// only the fields touched by the variation rule; consumers merge base and
// overrides themselves.
type ConfigVariant struct {
	ID           string          `json:"id"`
	BaseConfigID string          `json:"base_config_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Overrides    map[string]any  `json:"overrides"`
	Metadata     VariantMetadata `json:"metadata"`
}

// VariationRule declares one variant to derive from a base configuration.
// Each entry in Changes is either a bare replacement value or an operation
// object of the form {"operation": "multiply"|"add"|"replace", ...}.
type VariationRule struct {
	Name        string         `json:"name"    validate:"required"`
	Description string         `json:"description,omitempty"`
	Purpose     string         `json:"purpose,omitempty"`
	Changes     map[string]any `json:"changes" validate:"required"`
}
