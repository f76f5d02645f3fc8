package series

import (
	"fmt"

	"github.com/arloliu/chartdata/errs"
	"github.com/arloliu/chartdata/internal/hash"
	"github.com/arloliu/chartdata/internal/registry"
)

type stackGroup struct {
	key     string
	members *registry.Registry
}

// StackRegistry tracks stack group membership. Members of a group stack in
// registration order; removing one keeps the order of the rest.
type StackRegistry struct {
	groups map[uint64]*stackGroup
}

// NewStackRegistry creates an empty registry.
func NewStackRegistry() *StackRegistry {
	return &StackRegistry{groups: make(map[uint64]*stackGroup)}
}

func (r *StackRegistry) group(key string) (*stackGroup, bool) {
	g, ok := r.groups[hash.Scoped("stack", key)]
	if !ok || g.key != key {
		return nil, false
	}

	return g, true
}

// Register appends seriesID to the group of stackKey.
//
// Returns errs.ErrDuplicateSeries when the series is already in the group.
func (r *StackRegistry) Register(stackKey, seriesID string) error {
	if stackKey == "" {
		return fmt.Errorf("%w: empty stack key", errs.ErrInvalidConfig)
	}

	id := hash.Scoped("stack", stackKey)
	g, ok := r.groups[id]
	switch {
	case !ok:
		g = &stackGroup{key: stackKey, members: registry.New()}
		r.groups[id] = g
	case g.key != stackKey:
		return fmt.Errorf("%w: stack key %q collides with %q", errs.ErrInvalidConfig, stackKey, g.key)
	}

	if _, err := g.members.Register(seriesID); err != nil {
		return fmt.Errorf("stack %q: %w", stackKey, err)
	}

	return nil
}

// Remove drops seriesID from the group of stackKey. An emptied group is deleted.
func (r *StackRegistry) Remove(stackKey, seriesID string) error {
	g, ok := r.group(stackKey)
	if !ok {
		return fmt.Errorf("%w: stack %q", errs.ErrSeriesNotFound, stackKey)
	}
	if err := g.members.Remove(seriesID); err != nil {
		return fmt.Errorf("stack %q: %w", stackKey, err)
	}
	if g.members.Count() == 0 {
		delete(r.groups, hash.Scoped("stack", stackKey))
	}

	return nil
}

// Group returns the members of stackKey in stack order, bottom first.
func (r *StackRegistry) Group(stackKey string) []string {
	g, ok := r.group(stackKey)
	if !ok {
		return nil
	}

	return g.members.Names()
}

// Below returns the members stacked under seriesID, bottom first.
func (r *StackRegistry) Below(stackKey, seriesID string) []string {
	g, ok := r.group(stackKey)
	if !ok {
		return nil
	}
	pos := g.members.Position(seriesID)
	if pos <= 0 {
		return nil
	}

	return g.members.Names()[:pos]
}
