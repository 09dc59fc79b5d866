// Package synthesis derives configuration templates from external workflow
// descriptions.
package synthesis

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tessellate-io/tessellate/pkg/models"
)

// ConflictPolicy selects how duplicate variable names across workflow steps
// are merged.
type ConflictPolicy string

const (
	// ConflictKeepLast silently lets a later occurrence overwrite an
	// earlier one of the same name. This is the default.
	ConflictKeepLast ConflictPolicy = "keep-last"
	// ConflictKeepFirst silently ignores later occurrences.
	ConflictKeepFirst ConflictPolicy = "keep-first"
	// ConflictError fails synthesis on the first duplicate name.
	ConflictError ConflictPolicy = "error"
)

const (
	defaultExecutionTimeoutMS = 3_600_000
	minExecutionTimeout       = 60
	maxExecutionTimeout       = 86_400
	criticalTimeoutFloor      = 300 // 5 minutes

	defaultRetryAttempts = 3
	maxRetryAttempts     = 10
)

var variableRef = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// Synthesizer builds templates out of workflow step parameters.
type Synthesizer struct {
	policy ConflictPolicy
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithConflictPolicy overrides the duplicate-variable merge policy.
func WithConflictPolicy(policy ConflictPolicy) Option {
	return func(s *Synthesizer) {
		s.policy = policy
	}
}

// New creates a synthesizer. The default conflict policy is keep-last.
func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{policy: ConflictKeepLast}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Synthesize derives a ConfigTemplate from a workflow description. Every
// ${name} step parameter becomes a required variable with a type inferred
// from its name; literal parameters become namespaced defaults; three fixed
// workflow-level variables are always appended.
func (s *Synthesizer) Synthesize(workflow *models.Workflow, industryID string) (*models.ConfigTemplate, error) {
	collector := newVariableCollector(s.policy)

	for _, step := range workflow.Steps {
		for _, key := range sortedKeys(step.Parameters) {
			raw, ok := step.Parameters[key].(string)
			if !ok {
				continue
			}

			match := variableRef.FindStringSubmatch(raw)
			if match == nil {
				continue
			}

			name := match[1]
			if err := collector.add(models.TemplateVariable{
				Name:     name,
				Type:     InferType(name),
				Label:    name,
				Required: true,
			}); err != nil {
				return nil, err
			}
		}
	}

	for _, variable := range workflowLevelVariables(workflow) {
		if err := collector.add(variable); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()

	return &models.ConfigTemplate{
		ID:          uuid.New().String(),
		Name:        workflow.Name + " Configuration",
		Description: workflow.Description,
		IndustryID:  industryID,
		UseCaseID:   workflow.UseCase,
		Version:     "1.0.0",
		Variables:   collector.variables,
		Sections:    buildSections(workflow),
		Defaults:    buildDefaults(workflow),
		Validation:  buildValidation(workflow),
		Metadata: models.TemplateMetadata{
			CreatedAt:  now,
			UpdatedAt:  now,
			Tags:       workflow.Metadata.Tags,
			Complexity: models.Complexity(workflow.Metadata.Criticality),
		},
	}, nil
}

func workflowLevelVariables(workflow *models.Workflow) []models.TemplateVariable {
	timeoutDefault := workflow.EstimatedDurationMS
	if timeoutDefault == 0 {
		timeoutDefault = defaultExecutionTimeoutMS
	}

	timeoutMin := float64(minExecutionTimeout)
	timeoutMax := float64(maxExecutionTimeout)
	retryMin := 0.0
	retryMax := float64(maxRetryAttempts)

	return []models.TemplateVariable{
		{
			Name:        "executionTimeout",
			Type:        models.TypeNumber,
			Label:       "Execution Timeout",
			Description: "Maximum time the workflow may run",
			Required:    false,
			Default:     timeoutDefault,
			Validation:  &models.VariableValidation{Min: &timeoutMin, Max: &timeoutMax},
		},
		{
			Name:        "retryAttempts",
			Type:        models.TypeNumber,
			Label:       "Retry Attempts",
			Description: "Number of retries on step failure",
			Required:    false,
			Default:     float64(defaultRetryAttempts),
			Validation:  &models.VariableValidation{Min: &retryMin, Max: &retryMax},
		},
		{
			Name:        "notificationChannels",
			Type:        models.TypeArray,
			Label:       "Notification Channels",
			Description: "Channels that receive workflow notifications",
			Required:    false,
			Default:     []any{"email"},
		},
	}
}

func buildSections(workflow *models.Workflow) []models.TemplateSection {
	sections := []models.TemplateSection{
		{
			ID:        "general",
			Name:      "General Configuration",
			Order:     1,
			Variables: []string{"executionTimeout", "retryAttempts", "notificationChannels"},
		},
	}

	seen := make(map[string]bool)

	for _, step := range workflow.Steps {
		if seen[step.Type] {
			continue
		}

		seen[step.Type] = true
		sections = append(sections, models.TemplateSection{
			ID:    step.Type,
			Name:  sectionName(step.Type),
			Order: len(sections) + 1,
			// Step-type sections are created without member variables; the
			// synthesizer does not yet assign inferred variables to them.
			Variables: []string{},
		})
	}

	return sections
}

func buildDefaults(workflow *models.Workflow) map[string]any {
	timeoutDefault := workflow.EstimatedDurationMS
	if timeoutDefault == 0 {
		timeoutDefault = defaultExecutionTimeoutMS
	}

	defaults := map[string]any{
		"executionTimeout":     timeoutDefault,
		"retryAttempts":        float64(defaultRetryAttempts),
		"notificationChannels": []any{"email"},
	}

	for _, step := range workflow.Steps {
		for _, key := range sortedKeys(step.Parameters) {
			value := step.Parameters[key]
			if raw, ok := value.(string); ok && variableRef.MatchString(raw) {
				continue
			}

			defaults[step.ID+"_"+key] = value
		}
	}

	return defaults
}

func buildValidation(workflow *models.Workflow) models.ValidationSpec {
	spec := models.ValidationSpec{Rules: make([]models.ValidationRule, 0)}

	if workflow.Metadata.Criticality == models.CriticalityCritical {
		spec.Rules = append(spec.Rules, models.ValidationRule{
			Field:    "executionTimeout",
			Rule:     fmt.Sprintf("min:%d", criticalTimeoutFloor),
			Message:  "Execution timeout must be at least 5 minutes for critical workflows",
			Severity: models.SeverityError,
		})
	}

	return spec
}

func sectionName(stepType string) string {
	words := strings.FieldsFunc(stepType, func(r rune) bool {
		return r == '_' || r == '-'
	})

	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}

	return strings.Join(words, " ") + " Settings"
}

func sortedKeys(params map[string]any) []string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

type variableCollector struct {
	policy    ConflictPolicy
	variables []models.TemplateVariable
	index     map[string]int
}

func newVariableCollector(policy ConflictPolicy) *variableCollector {
	return &variableCollector{
		policy:    policy,
		variables: make([]models.TemplateVariable, 0),
		index:     make(map[string]int),
	}
}

func (c *variableCollector) add(variable models.TemplateVariable) error {
	if pos, exists := c.index[variable.Name]; exists {
		switch c.policy {
		case ConflictKeepFirst:
			return nil
		case ConflictError:
			return fmt.Errorf("duplicate variable %q", variable.Name)
		case ConflictKeepLast:
			fallthrough
		default:
			c.variables[pos] = variable

			return nil
		}
	}

	c.index[variable.Name] = len(c.variables)
	c.variables = append(c.variables, variable)

	return nil
}
