// Package engine applies templates to user data, validates the resulting
// configurations and generates configuration variants.
//
// The engine is an explicit constructed value: the validator registry and
// the template store are injected, never ambient, so callers can scope
// isolated instances per tenant or test.
package engine

import (
	"github.com/tessellate-io/tessellate/pkg/models"
	"github.com/tessellate-io/tessellate/pkg/store"
	"github.com/tessellate-io/tessellate/pkg/validation"
)

// Engine is the configuration template engine facade.
type Engine struct {
	store     *store.Store
	registry  *validation.Registry
	validator *validation.Validator
	strict    bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithStrictValidators makes references to unregistered validator names
// validation errors instead of silent passes.
func WithStrictValidators() Option {
	return func(e *Engine) {
		e.strict = true
	}
}

// New creates an engine over the given store and validator registry.
func New(templateStore *store.Store, registry *validation.Registry, opts ...Option) *Engine {
	e := &Engine{
		store:    templateStore,
		registry: registry,
	}

	for _, opt := range opts {
		opt(e)
	}

	validatorOpts := make([]validation.Option, 0, 1)
	if e.strict {
		validatorOpts = append(validatorOpts, validation.WithStrictValidators())
	}

	e.validator = validation.NewValidator(registry, validatorOpts...)

	return e
}

// Store returns the template store the engine operates on.
func (e *Engine) Store() *store.Store {
	return e.store
}

// RegisterValidator adds or replaces a named validator predicate. Only
// pre-compiled functions are accepted; the engine never compiles validator
// source text.
func (e *Engine) RegisterValidator(name string, fn validation.Func) {
	e.registry.Register(name, fn)
}

// ValidatorNames lists the registered validator names.
func (e *Engine) ValidatorNames() []string {
	return e.registry.Names()
}

// Validate checks a configuration against its template. Soft findings
// accumulate in the result; Validate never aborts.
func (e *Engine) Validate(template *models.ConfigTemplate, config *models.Configuration) models.ValidationResult {
	return e.validator.ValidateConfiguration(template, config)
}
