package synthesis

import (
	"strings"

	"github.com/tessellate-io/tessellate/pkg/models"
)

// InferType guesses a variable's type from its name, checking hint groups in
// priority order: number, boolean, date, array. Names matching no group are
// strings.
func InferType(name string) models.VariableType {
	lowered := strings.ToLower(name)

	if containsAny(lowered, "count", "number", "timeout", "limit") {
		return models.TypeNumber
	}

	// "is"/"has" only count as boolean markers when they prefix a camelCase
	// or snake_case word, otherwise names like itemsList would match.
	if containsAny(lowered, "enable", "should") || hasWordPrefix(name, "is") || hasWordPrefix(name, "has") {
		return models.TypeBoolean
	}

	if containsAny(lowered, "date", "time") {
		return models.TypeDate
	}

	if containsAny(lowered, "list", "array", "items") {
		return models.TypeArray
	}

	return models.TypeString
}

func containsAny(lowered string, hints ...string) bool {
	for _, hint := range hints {
		if strings.Contains(lowered, hint) {
			return true
		}
	}

	return false
}

func hasWordPrefix(name, prefix string) bool {
	if !strings.HasPrefix(strings.ToLower(name), prefix) {
		return false
	}

	if len(name) == len(prefix) {
		return true
	}

	next := name[len(prefix)]

	return (next >= 'A' && next <= 'Z') || next == '_'
}
