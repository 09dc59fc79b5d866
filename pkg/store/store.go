// Package store caches templates by industry/use-case key, persists saved
// configurations and handles template import/export.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tessellate-io/tessellate/pkg/models"
	"github.com/tessellate-io/tessellate/pkg/persistence"
	"github.com/tessellate-io/tessellate/pkg/synthesis"
	"github.com/tessellate-io/tessellate/pkg/workflows"
)

const defaultFetchTimeout = 10 * time.Second

// Store is the template and configuration repository. Templates are cached
// for the process lifetime (or whatever the persistence backend provides);
// the only cache invalidation is an explicit re-import.
type Store struct {
	logger       *slog.Logger
	persistence  persistence.Persistence
	workflows    workflows.Registry
	synthesizer  *synthesis.Synthesizer
	validate     *validator.Validate
	fetchTimeout time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithFetchTimeout bounds how long a workflow registry fetch may take. A
// stalled registry must not stall callers indefinitely.
func WithFetchTimeout(timeout time.Duration) Option {
	return func(s *Store) {
		s.fetchTimeout = timeout
	}
}

// New creates a store over the given persistence backend, workflow registry
// and synthesizer.
func New(
	logger *slog.Logger,
	persistence persistence.Persistence,
	workflowRegistry workflows.Registry,
	synthesizer *synthesis.Synthesizer,
	opts ...Option,
) *Store {
	s := &Store{
		logger:       logger,
		persistence:  persistence,
		workflows:    workflowRegistry,
		synthesizer:  synthesizer,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		fetchTimeout: defaultFetchTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// LoadTemplate returns the template cached under industryID:useCaseID,
// synthesizing and caching it from the workflow registry on a miss. Returns
// nil (and no error) when no matching workflow exists.
func (s *Store) LoadTemplate(ctx context.Context, industryID, useCaseID string) (*models.ConfigTemplate, error) {
	key := industryID + ":" + useCaseID

	template, err := s.persistence.Templates().GetByKey(ctx, key)
	if err == nil {
		return template, nil
	}

	if !persistence.IsTemplateNotFound(err) {
		return nil, err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	workflow, err := s.workflows.FindByUseCase(fetchCtx, industryID, useCaseID)
	if err != nil {
		if workflows.IsWorkflowNotFound(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to fetch workflow for %s: %w", key, err)
	}

	if workflow.Industry != industryID {
		return nil, nil
	}

	template, err = s.synthesizer.Synthesize(workflow, industryID)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize template for %s: %w", key, err)
	}

	if err := s.persistence.Templates().Save(ctx, key, template); err != nil {
		return nil, fmt.Errorf("failed to cache template %s: %w", key, err)
	}

	s.logger.InfoContext(ctx, "Synthesized template",
		"template_id", template.ID, "industry_id", industryID, "use_case_id", useCaseID)

	return template, nil
}

// TemplatesByIndustry lists all cached templates for an industry.
func (s *Store) TemplatesByIndustry(ctx context.Context, industryID string) ([]*models.ConfigTemplate, error) {
	return s.persistence.Templates().ListByIndustry(ctx, industryID)
}

// SaveConfiguration stores a configuration under a freshly generated id and
// returns the id. An existing configuration is never overwritten; saving
// again produces a new record.
func (s *Store) SaveConfiguration(ctx context.Context, config *models.Configuration) (string, error) {
	saved := *config
	saved.ID = uuid.New().String()

	if err := s.persistence.Configurations().Save(ctx, &saved); err != nil {
		return "", fmt.Errorf("failed to save configuration: %w", err)
	}

	return saved.ID, nil
}

// LoadConfiguration returns the configuration saved under id.
func (s *Store) LoadConfiguration(ctx context.Context, id string) (*models.Configuration, error) {
	return s.persistence.Configurations().GetByID(ctx, id)
}

// HealthCheck reports whether the persistence backend is reachable.
func (s *Store) HealthCheck(ctx context.Context) (string, bool) {
	if err := s.persistence.HealthCheck(ctx); err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}
