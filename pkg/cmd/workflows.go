package cmd

import (
	"github.com/tessellate-io/tessellate/pkg/workflows"
)

// NewWorkflowRegistry builds the workflow catalog the template store
// synthesizes from. An empty path yields an empty static registry, useful
// when every template arrives through import.
func NewWorkflowRegistry(workflowsPath string) workflows.Registry {
	if workflowsPath == "" {
		return workflows.NewStaticRegistry()
	}

	return workflows.NewFileRegistry(workflowsPath)
}
