// Package ext implements the extension protocol: a way for a codec to
// serialize values outside the built-in universe by reducing them to a
// built-in value and back, keyed by a registered name.
package ext

import (
	"fmt"

	"github.com/ashgrove-oss/valuewire/value"
)

// MaxExtensions is the hard cap on registered extensions per codec.
const MaxExtensions = 128

// Context is passed to an extension's ToReduced and FromReduced calls
// (Accepts does not receive it). It is opaque to package ext; codec passes
// through whatever value the caller configured (codec.Config.Context),
// unchanged.
type Context interface{}

// Extension implements one named reduction: a predicate for which Go
// values it claims, and a pair of functions converting between those
// values and a built-in reduced value.
type Extension struct {
	// Name identifies the extension on the wire. It must be unique within
	// a registry.
	Name string

	// Accepts reports whether this extension claims v. The registry tries
	// extensions in registration order and uses the first match.
	Accepts func(v any) bool

	// ToReduced converts an accepted value to a built-in reduced value.
	ToReduced func(v any, ctx Context) (value.Value, error)

	// FromReduced reconstructs the original external value from the
	// reduced value previously produced by ToReduced.
	FromReduced func(reduced value.Value, ctx Context) (any, error)
}

// Registry holds the extensions registered on one codec, preserving
// registration order for Accepts priority and indexing by Name for
// decode-time lookup.
type Registry struct {
	order []Extension
	byName map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Register adds spec to the registry. It returns an error if spec.Name is
// already registered or the registry is at MaxExtensions capacity.
func (r *Registry) Register(spec Extension) error {
	if spec.Name == "" {
		return fmt.Errorf("ext: extension name must not be empty")
	}
	if _, exists := r.byName[spec.Name]; exists {
		return fmt.Errorf("ext: extension %q already registered", spec.Name)
	}
	if len(r.order) >= MaxExtensions {
		return fmt.Errorf("ext: registry already holds the maximum of %d extensions", MaxExtensions)
	}

	r.byName[spec.Name] = len(r.order)
	r.order = append(r.order, spec)

	return nil
}

// FindAccepting returns the first registered extension (in registration
// order) whose Accepts predicate claims v.
func (r *Registry) FindAccepting(v any) (Extension, bool) {
	for _, e := range r.order {
		if e.Accepts(v) {
			return e, true
		}
	}

	return Extension{}, false
}

// ByName returns the extension registered under name.
func (r *Registry) ByName(name string) (Extension, bool) {
	idx, ok := r.byName[name]
	if !ok {
		return Extension{}, false
	}

	return r.order[idx], true
}

// Len returns the number of registered extensions.
func (r *Registry) Len() int {
	return len(r.order)
}
