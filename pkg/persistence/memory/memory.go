// Package memory provides the in-process map-backed persistence used as the
// reference storage layout.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/tessellate-io/tessellate/pkg/models"
	"github.com/tessellate-io/tessellate/pkg/persistence"
)

// Persistence implements persistence.Persistence with plain process-wide
// maps. Last-writer-wins semantics apply to concurrent saves of the same key.
type Persistence struct {
	templateRepo *templateRepository
	configRepo   *configurationRepository
}

// NewPersistence creates an empty in-memory store.
func NewPersistence() *Persistence {
	return &Persistence{
		templateRepo: &templateRepository{templates: make(map[string]*models.ConfigTemplate)},
		configRepo:   &configurationRepository{configurations: make(map[string]*models.Configuration)},
	}
}

func (p *Persistence) Templates() persistence.TemplateRepository {
	return p.templateRepo
}

func (p *Persistence) Configurations() persistence.ConfigurationRepository {
	return p.configRepo
}

func (p *Persistence) HealthCheck(_ context.Context) error {
	return nil
}

func (p *Persistence) Close(_ context.Context) error {
	return nil
}

type templateRepository struct {
	mu        sync.RWMutex
	templates map[string]*models.ConfigTemplate
}

func (r *templateRepository) GetByKey(_ context.Context, key string) (*models.ConfigTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	template, ok := r.templates[key]
	if !ok {
		return nil, persistence.NewRepositoryError("GetByKey", key, persistence.ErrTemplateNotFound)
	}

	return template, nil
}

func (r *templateRepository) Save(_ context.Context, key string, template *models.ConfigTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.templates[key] = template

	return nil
}

func (r *templateRepository) ListByIndustry(_ context.Context, industryID string) ([]*models.ConfigTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]*models.ConfigTemplate, 0)

	for _, template := range r.templates {
		if template.IndustryID == industryID {
			matches = append(matches, template)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CacheKey() < matches[j].CacheKey()
	})

	return matches, nil
}

type configurationRepository struct {
	mu             sync.RWMutex
	configurations map[string]*models.Configuration
}

func (r *configurationRepository) GetByID(_ context.Context, id string) (*models.Configuration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	config, ok := r.configurations[id]
	if !ok {
		return nil, persistence.NewRepositoryError("GetByID", id, persistence.ErrConfigurationNotFound)
	}

	return config, nil
}

func (r *configurationRepository) Save(_ context.Context, config *models.Configuration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.configurations[config.ID] = config

	return nil
}
