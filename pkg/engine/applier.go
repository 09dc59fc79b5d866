package engine

import (
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"

	"github.com/tessellate-io/tessellate/pkg/cast"
	"github.com/tessellate-io/tessellate/pkg/models"
)

// ErrMissingRequired indicates a required variable had neither a supplied
// value nor a default. Unlike validation findings this aborts application.
var ErrMissingRequired = errors.New("missing required variable")

// Reserved data keys consumed by the applier instead of being treated as
// variable values.
const (
	nameKey        = "_name"
	descriptionKey = "_description"
	createdByKey   = "_created_by"
)

// Apply merges template defaults with user-supplied data into a new
// Configuration. Supplied values are cast to their declared types; a
// required variable with no value after the merge is a hard failure.
//
// Apply does not validate: callers run Validate explicitly afterwards, so a
// configuration can exist in an unvalidated (possibly invalid) state.
func (e *Engine) Apply(template *models.ConfigTemplate, data map[string]any) (*models.Configuration, error) {
	values := make(map[string]any, len(template.Defaults))
	if err := mergo.Merge(&values, template.Defaults); err != nil {
		return nil, fmt.Errorf("failed to copy template defaults: %w", err)
	}

	for i := range template.Variables {
		variable := &template.Variables[i]

		if raw, ok := data[variable.Name]; ok {
			values[variable.Name] = cast.Cast(raw, variable.Type)

			continue
		}

		if variable.Required {
			if existing, ok := values[variable.Name]; !ok || existing == nil {
				return nil, fmt.Errorf("%w: %s", ErrMissingRequired, variable.Name)
			}
		}
	}

	metadata := models.ConfigurationMetadata{
		CreatedAt: time.Now().UTC(),
		Name:      template.Name + " Configuration",
	}

	if name, ok := data[nameKey].(string); ok && name != "" {
		metadata.Name = name
	}

	if description, ok := data[descriptionKey].(string); ok {
		metadata.Description = description
	}

	if createdBy, ok := data[createdByKey].(string); ok {
		metadata.CreatedBy = createdBy
	}

	return &models.Configuration{
		TemplateID: template.ID,
		Values:     values,
		Metadata:   metadata,
	}, nil
}
