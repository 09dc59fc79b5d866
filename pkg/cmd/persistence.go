package cmd

import (
	"fmt"
	"strings"

	"github.com/tessellate-io/tessellate/pkg/persistence"
	"github.com/tessellate-io/tessellate/pkg/persistence/file"
	"github.com/tessellate-io/tessellate/pkg/persistence/memory"
	"github.com/tessellate-io/tessellate/pkg/persistence/redis"
)

var supportedPersistenceProviders = []string{"memory", "file", "redis"}

// NewPersistence selects a persistence adapter from the database URL scheme.
// Unrecognized schemes fall back to the in-memory adapter.
func NewPersistence(databaseURL string) persistence.Persistence {
	switch parsePersistenceProvider(databaseURL) {
	case "file":
		return file.NewPersistence(databaseURL)
	case "redis":
		p, err := redis.NewPersistence(databaseURL)
		if err != nil {
			panic(fmt.Errorf("failed to connect to redis: %w", err))
		}

		return p
	default:
		return memory.NewPersistence()
	}
}

func parsePersistenceProvider(databaseURL string) string {
	provider, _, _ := strings.Cut(databaseURL, "://")
	for _, supported := range supportedPersistenceProviders {
		if provider == supported {
			return provider
		}
	}

	return "memory"
}
