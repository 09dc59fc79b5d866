// Package persistence provides the storage abstraction for templates and
// saved configurations.
package persistence

import (
	"context"

	"github.com/tessellate-io/tessellate/pkg/models"
)

// TemplateRepository stores templates keyed by their industry:use-case
// cache key. Save overwrites: the store's import semantics are
// last-import-wins.
type TemplateRepository interface {
	GetByKey(ctx context.Context, key string) (*models.ConfigTemplate, error)
	Save(ctx context.Context, key string, template *models.ConfigTemplate) error
	ListByIndustry(ctx context.Context, industryID string) ([]*models.ConfigTemplate, error)
}

// ConfigurationRepository stores saved configurations by generated id.
type ConfigurationRepository interface {
	GetByID(ctx context.Context, id string) (*models.Configuration, error)
	Save(ctx context.Context, config *models.Configuration) error
}

// Persistence bundles the repositories of one storage backend.
type Persistence interface {
	Templates() TemplateRepository
	Configurations() ConfigurationRepository
	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}
