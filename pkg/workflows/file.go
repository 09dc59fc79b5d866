package workflows

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tessellate-io/tessellate/pkg/models"
)

// FileRegistry reads workflow descriptions from JSON documents in a
// directory, one workflow per file.
type FileRegistry struct {
	root string
}

// NewFileRegistry creates a registry rooted at the given directory.
func NewFileRegistry(root string) *FileRegistry {
	return &FileRegistry{root: strings.Replace(root, "file://", "", 1)}
}

func (r *FileRegistry) FindByUseCase(ctx context.Context, industryID, useCaseID string) (*models.Workflow, error) {
	jsonFiles, err := fs.Glob(os.DirFS(r.root), "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list workflow files: %w", err)
	}

	for _, file := range jsonFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := os.ReadFile(filepath.Join(r.root, file))
		if err != nil {
			return nil, fmt.Errorf("failed to read workflow file %s: %w", file, err)
		}

		var workflow models.Workflow
		if err := json.Unmarshal(data, &workflow); err != nil {
			return nil, fmt.Errorf("failed to decode workflow file %s: %w", file, err)
		}

		if workflow.Industry == industryID && workflow.UseCase == useCaseID {
			return &workflow, nil
		}
	}

	return nil, ErrWorkflowNotFound
}

// StaticRegistry serves a fixed set of workflows. Useful for tests and for
// embedding workflow descriptions in a binary.
type StaticRegistry struct {
	workflows []*models.Workflow
}

// NewStaticRegistry creates a registry over the given workflows.
func NewStaticRegistry(workflows ...*models.Workflow) *StaticRegistry {
	return &StaticRegistry{workflows: workflows}
}

func (r *StaticRegistry) FindByUseCase(_ context.Context, industryID, useCaseID string) (*models.Workflow, error) {
	for _, workflow := range r.workflows {
		if workflow.Industry == industryID && workflow.UseCase == useCaseID {
			return workflow, nil
		}
	}

	return nil, ErrWorkflowNotFound
}
