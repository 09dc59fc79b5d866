package models

// Severity classifies a validation finding. Warnings never flip validity.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ValidationRule is a template-level rule expressed in a small string DSL
// (e.g. "min:300"). Rules are attached by the synthesizer from workflow
// criticality; authoritative per-field validation goes through
// TemplateVariable.Validation.
type ValidationRule struct {
	Field    string   `json:"field"`
	Rule     string   `json:"rule"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// CrossFieldValidation names a registered validator to be invoked
// positionally with the listed fields' current values.
type CrossFieldValidation struct {
	Fields    []string `json:"fields"`
	Validator string   `json:"validator"`
	Message   string   `json:"message"`
}

// ValidationError is one accumulated finding against a field. For
// cross-field failures Field is the comma-joined field-name list.
type ValidationError struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// ValidationResult aggregates findings across all variables of a template.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []ValidationError `json:"warnings"`
}
