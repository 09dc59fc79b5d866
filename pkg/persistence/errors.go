// Package persistence provides standardized error types shared by all
// storage backends.
package persistence

import (
	"errors"
	"fmt"
)

var (
	// ErrTemplateNotFound indicates no template is stored under the given key.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrConfigurationNotFound indicates no configuration exists for the given id.
	ErrConfigurationNotFound = errors.New("configuration not found")
)

// RepositoryError wraps storage errors with operation context.
type RepositoryError struct {
	Op  string // Operation being performed (e.g. "GetByKey", "Save")
	Key string // Template key or configuration id
	Err error  // Underlying error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("%s failed for %q: %v", e.Op, e.Key, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// Is implements error comparison for repository errors.
func (e *RepositoryError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewRepositoryError creates a repository error with context.
func NewRepositoryError(op, key string, err error) *RepositoryError {
	return &RepositoryError{Op: op, Key: key, Err: err}
}

// IsTemplateNotFound checks if an error indicates a missing template.
func IsTemplateNotFound(err error) bool {
	return errors.Is(err, ErrTemplateNotFound)
}

// IsConfigurationNotFound checks if an error indicates a missing configuration.
func IsConfigurationNotFound(err error) bool {
	return errors.Is(err, ErrConfigurationNotFound)
}
