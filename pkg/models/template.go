// Package models defines the core domain models for configuration template management.
package models

import "time"

// VariableType is the declared type of a template variable.
type VariableType string

const (
	TypeString  VariableType = "string"
	TypeNumber  VariableType = "number"
	TypeBoolean VariableType = "boolean"
	TypeArray   VariableType = "array"
	TypeObject  VariableType = "object"
	TypeDate    VariableType = "date"
	TypeEnum    VariableType = "enum"
)

// Complexity is a coarse difficulty rating carried in template metadata.
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// VariableValidation holds per-field constraints. Which fields apply depends
// on the variable type: min/max for numbers, min_length/max_length/pattern
// for strings, custom for any type.
type VariableValidation struct {
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	Pattern   string   `json:"pattern,omitempty"`
	MinLength *int     `json:"min_length,omitempty"`
	MaxLength *int     `json:"max_length,omitempty"`
	Custom    string   `json:"custom,omitempty"`
}

// VariableOption is one enumerable choice for an enum-typed variable.
type VariableOption struct {
	Value       any    `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// VisibilityCondition is a declarative show/hide hint evaluated by consumers,
// never by the engine.
type VisibilityCondition struct {
	Field    string `json:"field"`
	Operator string `json:"operator"` // =, !=, >, <, in, not_in, exists
	Value    any    `json:"value,omitempty"`
}

// TemplateVariable is a named, typed slot in a template.
type TemplateVariable struct {
	Name        string               `json:"name"  validate:"required"`
	Type        VariableType         `json:"type"  validate:"required"`
	Label       string               `json:"label"`
	Description string               `json:"description,omitempty"`
	Required    bool                 `json:"required"`
	Default     any                  `json:"default,omitempty"`
	Validation  *VariableValidation  `json:"validation,omitempty"`
	Options     []VariableOption     `json:"options,omitempty"`
	DependsOn   []string             `json:"depends_on,omitempty"`
	Visibility  *VisibilityCondition `json:"visibility,omitempty"`
}

// TemplateSection is an ordered grouping of variable names for presentation.
type TemplateSection struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Order       int                  `json:"order"`
	Variables   []string             `json:"variables"`
	Collapsed   bool                 `json:"collapsed,omitempty"`
	Visibility  *VisibilityCondition `json:"visibility,omitempty"`
}

// ValidationSpec groups the declarative validation attached to a template.
type ValidationSpec struct {
	Rules      []ValidationRule       `json:"rules"`
	CrossField []CrossFieldValidation `json:"cross_field_validation,omitempty"`
}

// TemplateMetadata carries authorship and classification data.
type TemplateMetadata struct {
	Author     string     `json:"author,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	Tags       []string   `json:"tags"`
	Complexity Complexity `json:"complexity"`
}

// ConfigTemplate is the aggregate root: the declarative schema of
// configurable variables, sections, defaults and validation rules for one
// industry/use-case pairing.
type ConfigTemplate struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"        validate:"required"`
	Description string             `json:"description"`
	IndustryID  string             `json:"industry_id" validate:"required"`
	UseCaseID   string             `json:"use_case_id" validate:"required"`
	Version     string             `json:"version"`
	Variables   []TemplateVariable `json:"variables"   validate:"dive"`
	Sections    []TemplateSection  `json:"sections"`
	Defaults    map[string]any     `json:"defaults"`
	Validation  ValidationSpec     `json:"validation"`
	Metadata    TemplateMetadata   `json:"metadata"`
}

// CacheKey returns the composite key templates are cached under.
func (t *ConfigTemplate) CacheKey() string {
	return t.IndustryID + ":" + t.UseCaseID
}

// Variable returns the declared variable with the given name, or nil.
func (t *ConfigTemplate) Variable(name string) *TemplateVariable {
	for i := range t.Variables {
		if t.Variables[i].Name == name {
			return &t.Variables[i]
		}
	}

	return nil
}
