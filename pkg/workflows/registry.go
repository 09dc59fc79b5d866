// Package workflows provides access to the external workflow registry that
// templates are synthesized from. The registry is a read-only collaborator:
// the engine never mutates workflow descriptions.
package workflows

import (
	"context"
	"errors"

	"github.com/tessellate-io/tessellate/pkg/models"
)

// ErrWorkflowNotFound indicates no workflow matches the requested
// industry/use-case pairing.
var ErrWorkflowNotFound = errors.New("workflow not found")

// Registry looks up workflow descriptions by industry and use case.
type Registry interface {
	FindByUseCase(ctx context.Context, industryID, useCaseID string) (*models.Workflow, error)
}

// IsWorkflowNotFound checks if an error indicates a missing workflow.
func IsWorkflowNotFound(err error) bool {
	return errors.Is(err, ErrWorkflowNotFound)
}
