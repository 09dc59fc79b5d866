// Package validation implements field, cross-field and custom validation of
// configurations against their templates.
package validation

import (
	"sort"
	"sync"
)

// Func is a named validator predicate. Field-level custom validators receive
// a single value; cross-field validators receive the named fields' values in
// declaration order.
type Func func(values ...any) bool

// Registry maps validator names to predicate functions. It is an explicit
// value owned by the caller, so tests and tenants can scope their own
// instances. Register overwrites: last writer wins for the lifetime of the
// registry.
type Registry struct {
	mu         sync.RWMutex
	validators map[string]Func
}

// NewRegistry creates a registry seeded with the built-in validators
// (email, url, dateRange, sum).
func NewRegistry() *Registry {
	r := &Registry{
		validators: make(map[string]Func),
	}

	r.Register("email", email)
	r.Register("url", absoluteURL)
	r.Register("dateRange", dateRange)
	r.Register("sum", sumMatchesTotal)

	return r
}

// Register adds or replaces the validator stored under name.
func (r *Registry) Register(name string, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.validators[name] = fn
}

// Lookup returns the validator registered under name.
func (r *Registry) Lookup(name string) (Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.validators[name]

	return fn, ok
}

// Names returns the registered validator names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.validators))
	for name := range r.validators {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
