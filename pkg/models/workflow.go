package models

// Criticality rates how sensitive a workflow is to failure. It is copied
// verbatim into template metadata as complexity, which is a type-level
// approximation inherited from the workflow owner.
type Criticality string

const (
	CriticalityLow      Criticality = "low"
	CriticalityMedium   Criticality = "medium"
	CriticalityHigh     Criticality = "high"
	CriticalityCritical Criticality = "critical"
)

// WorkflowMetadata carries classification data owned by the workflow registry.
type WorkflowMetadata struct {
	Criticality Criticality `json:"criticality"`
	Tags        []string    `json:"tags,omitempty"`
}

// WorkflowStep is one step of an external workflow description. Parameter
// values of the literal form ${name} reference a configurable variable;
// anything else is a literal default.
type WorkflowStep struct {
	ID         string         `json:"id"   validate:"required"`
	Type       string         `json:"type" validate:"required"`
	Name       string         `json:"name"`
	Parameters map[string]any `json:"parameters"`
}

// Workflow is the external process description templates are synthesized
// from. It is owned by a collaborator outside this engine and consumed
// read-only.
type Workflow struct {
	ID                  string           `json:"id"       validate:"required"`
	Name                string           `json:"name"     validate:"required,min=3"`
	Description         string           `json:"description"`
	Industry            string           `json:"industry" validate:"required"`
	UseCase             string           `json:"use_case" validate:"required"`
	Steps               []WorkflowStep   `json:"steps"    validate:"dive"`
	EstimatedDurationMS float64          `json:"estimated_duration_ms,omitempty"`
	Metadata            WorkflowMetadata `json:"metadata"`
}
