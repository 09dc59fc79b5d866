// Package redis provides Redis-backed persistence for templates and saved
// configurations.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"

	"github.com/tessellate-io/tessellate/pkg/models"
	"github.com/tessellate-io/tessellate/pkg/persistence"
)

const (
	templateKeyPrefix      = "tessellate:template:"
	configurationKeyPrefix = "tessellate:configuration:"
)

// Persistence implements persistence.Persistence on a Redis instance.
// Templates and configurations are stored as JSON string values.
type Persistence struct {
	client       redis.UniversalClient
	templateRepo *templateRepository
	configRepo   *configurationRepository
}

// NewPersistence connects to the Redis instance described by the URL
// (redis://[user:pass@]host:port/db).
func NewPersistence(redisURL string) (*Persistence, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)

	return &Persistence{
		client:       client,
		templateRepo: &templateRepository{client: client},
		configRepo:   &configurationRepository{client: client},
	}, nil
}

func (p *Persistence) Templates() persistence.TemplateRepository {
	return p.templateRepo
}

func (p *Persistence) Configurations() persistence.ConfigurationRepository {
	return p.configRepo
}

func (p *Persistence) HealthCheck(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func (p *Persistence) Close(_ context.Context) error {
	return p.client.Close()
}

type templateRepository struct {
	client redis.UniversalClient
}

func (r *templateRepository) GetByKey(ctx context.Context, key string) (*models.ConfigTemplate, error) {
	data, err := r.client.Get(ctx, templateKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, persistence.NewRepositoryError("GetByKey", key, persistence.ErrTemplateNotFound)
		}

		return nil, fmt.Errorf("failed to read template %s: %w", key, err)
	}

	var template models.ConfigTemplate
	if err := json.Unmarshal(data, &template); err != nil {
		return nil, fmt.Errorf("failed to decode template %s: %w", key, err)
	}

	return &template, nil
}

func (r *templateRepository) Save(ctx context.Context, key string, template *models.ConfigTemplate) error {
	data, err := json.Marshal(template)
	if err != nil {
		return fmt.Errorf("failed to encode template %s: %w", key, err)
	}

	return r.client.Set(ctx, templateKeyPrefix+key, data, 0).Err()
}

func (r *templateRepository) ListByIndustry(ctx context.Context, industryID string) ([]*models.ConfigTemplate, error) {
	matches := make([]*models.ConfigTemplate, 0)

	iter := r.client.Scan(ctx, 0, templateKeyPrefix+industryID+":*", 0).Iterator()
	for iter.Next(ctx) {
		key := strings.TrimPrefix(iter.Val(), templateKeyPrefix)

		template, err := r.GetByKey(ctx, key)
		if err != nil {
			return nil, err
		}

		matches = append(matches, template)
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan templates: %w", err)
	}

	return matches, nil
}

type configurationRepository struct {
	client redis.UniversalClient
}

func (r *configurationRepository) GetByID(ctx context.Context, id string) (*models.Configuration, error) {
	data, err := r.client.Get(ctx, configurationKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, persistence.NewRepositoryError("GetByID", id, persistence.ErrConfigurationNotFound)
		}

		return nil, fmt.Errorf("failed to read configuration %s: %w", id, err)
	}

	var config models.Configuration
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to decode configuration %s: %w", id, err)
	}

	return &config, nil
}

func (r *configurationRepository) Save(ctx context.Context, config *models.Configuration) error {
	data, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode configuration %s: %w", config.ID, err)
	}

	return r.client.Set(ctx, configurationKeyPrefix+config.ID, data, 0).Err()
}
