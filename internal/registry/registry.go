// Package registry keeps insertion-ordered sets of named members keyed by hash.
package registry

import (
	"fmt"

	"github.com/arloliu/chartdata/errs"
	"github.com/arloliu/chartdata/internal/hash"
)

// Registry tracks members by their xxHash64 ID in registration order.
// It detects duplicate registrations and hash collisions between different names.
//
// Order is significant: stack groups accumulate values in the order series were
// registered, so removing a member keeps the relative order of the rest.
type Registry struct {
	names map[uint64]string // ID → name
	order []uint64          // registration order
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		names: make(map[uint64]string),
		order: make([]uint64, 0),
	}
}

// Register adds name and returns its ID.
//
// Returns errs.ErrDuplicateSeries if name is already registered or if a different
// name hashes to the same ID.
func (r *Registry) Register(name string) (uint64, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: empty member name", errs.ErrInvalidConfig)
	}

	id := hash.ID(name)
	if existing, ok := r.names[id]; ok {
		if existing == name {
			return 0, fmt.Errorf("%w: %q already registered", errs.ErrDuplicateSeries, name)
		}

		return 0, fmt.Errorf("%w: %q collides with %q (id 0x%016x)", errs.ErrDuplicateSeries, name, existing, id)
	}

	r.names[id] = name
	r.order = append(r.order, id)

	return id, nil
}

// Remove deletes name from the registry, keeping the order of the remaining members.
func (r *Registry) Remove(name string) error {
	id := hash.ID(name)
	if existing, ok := r.names[id]; !ok || existing != name {
		return fmt.Errorf("%w: %q", errs.ErrSeriesNotFound, name)
	}

	delete(r.names, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}

// Contains reports whether name is registered.
func (r *Registry) Contains(name string) bool {
	existing, ok := r.names[hash.ID(name)]
	return ok && existing == name
}

// Position returns the registration position of name, or -1.
func (r *Registry) Position(name string) int {
	if !r.Contains(name) {
		return -1
	}

	id := hash.ID(name)
	for i, v := range r.order {
		if v == id {
			return i
		}
	}

	return -1
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	for i, id := range r.order {
		names[i] = r.names[id]
	}

	return names
}

// Count returns the number of registered members.
func (r *Registry) Count() int {
	return len(r.order)
}

// Reset clears all members.
func (r *Registry) Reset() {
	for k := range r.names {
		delete(r.names, k)
	}
	r.order = r.order[:0]
}
