package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/tessellate-io/tessellate/pkg/cast"
	"github.com/tessellate-io/tessellate/pkg/models"
)

const operationKey = "operation"

// GenerateVariants derives one variant per variation rule, each computed
// independently against the base configuration (no chaining). Overrides hold
// only the fields a rule touches; consumers merge base and overrides
// themselves.
//
// BaseConfigID carries the base configuration's template id, not its own
// saved id. The reference is preserved as-is from the original behavior and
// pinned by tests.
func (e *Engine) GenerateVariants(base *models.Configuration, rules []models.VariationRule) []models.ConfigVariant {
	variants := make([]models.ConfigVariant, 0, len(rules))

	for _, rule := range rules {
		overrides := make(map[string]any, len(rule.Changes))
		for field, change := range rule.Changes {
			overrides[field] = applyChange(base.Values[field], change)
		}

		variants = append(variants, models.ConfigVariant{
			ID:           uuid.New().String(),
			BaseConfigID: base.TemplateID,
			Name:         rule.Name,
			Description:  rule.Description,
			Overrides:    overrides,
			Metadata: models.VariantMetadata{
				CreatedAt: time.Now().UTC(),
				Purpose:   rule.Purpose,
			},
		})
	}

	return variants
}

// applyChange computes one override value. A map carrying an "operation" key
// is interpreted through the operation algebra; any other change is the
// literal replacement value. Unknown operations pass the base value through
// unchanged, without raising an error.
func applyChange(baseValue, change any) any {
	spec, ok := change.(map[string]any)
	if !ok {
		return change
	}

	operation, ok := spec[operationKey].(string)
	if !ok {
		return change
	}

	switch operation {
	case "multiply":
		return cast.Number(baseValue) * cast.Number(spec["factor"])
	case "add":
		return cast.Number(baseValue) + cast.Number(spec["value"])
	case "replace":
		return spec["value"]
	default:
		return baseValue
	}
}
