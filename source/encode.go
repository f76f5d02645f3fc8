package source

import (
	"fmt"

	"github.com/arloliu/chartdata/errs"
	"github.com/arloliu/chartdata/schema"
)

// Ref references a source column by position or by name.
type Ref struct {
	index int
	name  string
}

// Col references the source column at position i.
func Col(i int) Ref {
	return Ref{index: i}
}

// Named references the source column called name.
func Named(name string) Ref {
	return Ref{index: -1, name: name}
}

func (r Ref) String() string {
	if r.name != "" {
		return fmt.Sprintf("%q", r.name)
	}

	return fmt.Sprintf("#%d", r.index)
}

// Encode assigns source columns to dimensions, e.g. {"x": Col(0), "y": Named("price")}.
// Dimensions not listed bind to a same-named source column, or else to the next
// source column not claimed by the encode map, in order.
type Encode map[string]Ref

// Resolve computes the source column for each schema dimension. A result of -1
// means the dimension has no source column and resolves to the missing value.
//
// Returns errs.ErrUnknownDimension when the map names a dimension the schema lacks.
func (e Encode) Resolve(s *schema.Schema, p Provider) ([]int, error) {
	binding := make([]int, s.Len())
	claimed := make(map[int]bool, len(e))

	for i := range binding {
		binding[i] = -2 // unresolved
	}

	for dim, ref := range e {
		i, err := s.Lookup(dim)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", ref, err)
		}
		col := ref.index
		if ref.name != "" {
			if c, ok := p.ColumnIndex(ref.name); ok {
				col = c
			} else {
				col = -1
			}
		}
		if col >= p.NumColumns() {
			col = -1
		}
		binding[i] = col
		if col >= 0 {
			claimed[col] = true
		}
	}

	for i := range binding {
		if binding[i] != -2 {
			continue
		}
		if c, ok := p.ColumnIndex(s.At(i).Name); ok && !claimed[c] {
			binding[i] = c
			claimed[c] = true
		}
	}

	next := 0
	for i := range binding {
		if binding[i] != -2 {
			continue
		}
		for claimed[next] {
			next++
		}
		if next < p.NumColumns() {
			binding[i] = next
			claimed[next] = true
			next++
		} else {
			binding[i] = -1
		}
	}

	return binding, nil
}

// checkEncode validates an encode map against a schema before a provider is known.
func checkEncode(e Encode, s *schema.Schema) error {
	for dim := range e {
		if _, ok := s.Index(dim); !ok {
			return fmt.Errorf("%w: encode references %q", errs.ErrUnknownDimension, dim)
		}
	}

	return nil
}
