// Package schema describes the named, typed dimensions a series exposes.
//
// A Schema is an ordered list of DimensionDef values with unique names. It is
// immutable once built: dimension types never change during the lifetime of the
// containers that use it.
package schema

import (
	"fmt"

	"github.com/arloliu/chartdata/errs"
	"github.com/arloliu/chartdata/format"
)

// DimensionDef declares one logical column of series data.
type DimensionDef struct {
	// Name identifies the dimension; unique within a schema.
	Name string
	// Type is the value type of the dimension.
	Type format.DimensionType
	// DisplayName is an optional human readable label (tooltips, legends).
	DisplayName string
	// Categories optionally fixes the category order of an ordinal dimension.
	// Values not listed still receive trailing codes.
	Categories []string
	// SortByCategory marks an ordinal dimension whose items are looked up or
	// sorted by category; containers build an inverted index for it.
	SortByCategory bool
}

// Label returns DisplayName, falling back to Name.
func (d DimensionDef) Label() string {
	if d.DisplayName != "" {
		return d.DisplayName
	}

	return d.Name
}

// Schema is an ordered, immutable set of dimensions.
type Schema struct {
	dims  []DimensionDef
	index map[string]int
}

// New builds a schema from defs.
//
// Returns errs.ErrDuplicateDimension for repeated names and
// errs.ErrInvalidDimensionType for an empty name or an unknown type.
func New(defs ...DimensionDef) (*Schema, error) {
	s := &Schema{
		dims:  make([]DimensionDef, len(defs)),
		index: make(map[string]int, len(defs)),
	}

	for i, d := range defs {
		if d.Name == "" {
			return nil, fmt.Errorf("%w: dimension %d has no name", errs.ErrInvalidDimensionType, i)
		}
		if !d.Type.Valid() {
			return nil, fmt.Errorf("%w: dimension %q has type %d", errs.ErrInvalidDimensionType, d.Name, d.Type)
		}
		if _, ok := s.index[d.Name]; ok {
			return nil, fmt.Errorf("%w: %q", errs.ErrDuplicateDimension, d.Name)
		}
		if len(d.Categories) > 0 {
			d.Categories = append([]string(nil), d.Categories...)
		}
		s.dims[i] = d
		s.index[d.Name] = i
	}

	return s, nil
}

// MustNew is like New but panics on error. Intended for tests and static schemas.
func MustNew(defs ...DimensionDef) *Schema {
	s, err := New(defs...)
	if err != nil {
		panic(err)
	}

	return s
}

// Numbers is a shorthand building a schema of numeric dimensions.
func Numbers(names ...string) (*Schema, error) {
	defs := make([]DimensionDef, len(names))
	for i, n := range names {
		defs[i] = DimensionDef{Name: n, Type: format.DimensionNumber}
	}

	return New(defs...)
}

// Len returns the number of dimensions.
func (s *Schema) Len() int {
	return len(s.dims)
}

// Index returns the position of the named dimension.
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Lookup returns the position of the named dimension or errs.ErrUnknownDimension.
func (s *Schema) Lookup(name string) (int, error) {
	i, ok := s.index[name]
	if !ok {
		return -1, fmt.Errorf("%w: %q", errs.ErrUnknownDimension, name)
	}

	return i, nil
}

// At returns the dimension at position i. It panics if i is out of range.
func (s *Schema) At(i int) DimensionDef {
	return s.dims[i]
}

// Dimension returns the named dimension.
func (s *Schema) Dimension(name string) (DimensionDef, bool) {
	i, ok := s.index[name]
	if !ok {
		return DimensionDef{}, false
	}

	return s.dims[i], true
}

// Names returns dimension names in declaration order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.dims))
	for i, d := range s.dims {
		names[i] = d.Name
	}

	return names
}

// Dimensions returns a copy of the dimension definitions.
func (s *Schema) Dimensions() []DimensionDef {
	return append([]DimensionDef(nil), s.dims...)
}

// FirstOfType returns the first dimension with type t.
func (s *Schema) FirstOfType(t format.DimensionType) (DimensionDef, bool) {
	for _, d := range s.dims {
		if d.Type == t {
			return d, true
		}
	}

	return DimensionDef{}, false
}
