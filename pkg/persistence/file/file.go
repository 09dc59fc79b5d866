// Package file provides file-based persistence for templates and saved
// configurations.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tessellate-io/tessellate/pkg/models"
	"github.com/tessellate-io/tessellate/pkg/persistence"
)

const (
	templatesDir      = "templates"
	configurationsDir = "configurations"
)

// Persistence implements the persistence.Persistence interface using the
// file system. Each template and configuration is one JSON document.
type Persistence struct {
	root         string
	templateRepo *templateRepository
	configRepo   *configurationRepository
}

// NewPersistence creates a file store rooted at the given directory.
func NewPersistence(root string) *Persistence {
	cleanRoot := strings.Replace(root, "file://", "", 1)

	return &Persistence{
		root:         cleanRoot,
		templateRepo: &templateRepository{root: cleanRoot},
		configRepo:   &configurationRepository{root: cleanRoot},
	}
}

func (p *Persistence) Templates() persistence.TemplateRepository {
	return p.templateRepo
}

func (p *Persistence) Configurations() persistence.ConfigurationRepository {
	return p.configRepo
}

// HealthCheck verifies the root directory exists.
func (p *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(p.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

// Close performs any necessary cleanup. For file-based persistence, there is
// nothing to clean up.
func (p *Persistence) Close(_ context.Context) error {
	return nil
}

type templateRepository struct {
	root string
}

// Cache keys contain ':' which is unsafe in file names.
func templateFileName(key string) string {
	return strings.ReplaceAll(key, ":", "__") + ".json"
}

func (r *templateRepository) GetByKey(_ context.Context, key string) (*models.ConfigTemplate, error) {
	path := filepath.Join(r.root, templatesDir, templateFileName(key))

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
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

func (r *templateRepository) Save(_ context.Context, key string, template *models.ConfigTemplate) error {
	dir := filepath.Join(r.root, templatesDir)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create templates directory: %w", err)
	}

	data, err := json.MarshalIndent(template, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode template %s: %w", key, err)
	}

	return os.WriteFile(filepath.Join(dir, templateFileName(key)), data, 0600)
}

func (r *templateRepository) ListByIndustry(ctx context.Context, industryID string) ([]*models.ConfigTemplate, error) {
	dir := filepath.Join(r.root, templatesDir)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return make([]*models.ConfigTemplate, 0), nil
	}

	jsonFiles, err := fs.Glob(os.DirFS(dir), "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list template files: %w", err)
	}

	matches := make([]*models.ConfigTemplate, 0, len(jsonFiles))

	for _, file := range jsonFiles {
		key := strings.ReplaceAll(strings.TrimSuffix(file, ".json"), "__", ":")

		template, err := r.GetByKey(ctx, key)
		if err != nil {
			return nil, err
		}

		if template.IndustryID == industryID {
			matches = append(matches, template)
		}
	}

	return matches, nil
}

type configurationRepository struct {
	root string
}

func (r *configurationRepository) GetByID(_ context.Context, id string) (*models.Configuration, error) {
	path := filepath.Join(r.root, configurationsDir, id+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
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

func (r *configurationRepository) Save(_ context.Context, config *models.Configuration) error {
	dir := filepath.Join(r.root, configurationsDir)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create configurations directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode configuration %s: %w", config.ID, err)
	}

	return os.WriteFile(filepath.Join(dir, config.ID+".json"), data, 0600)
}
