// Package source normalizes heterogeneous raw input into per-row, per-dimension
// resolved values.
//
// A Provider exposes raw cells by (row, source column). An Adapter binds a
// Provider to a schema.Schema, optionally through an Encode mapping, and coerces
// each cell to the dimension type:
//
//   - number: numeric conversion (numbers, numeric strings, booleans)
//   - ordinal: category code assigned through schema.OrdinalMeta
//   - time: epoch milliseconds
//
// Malformed cells never produce errors; they resolve to NaN, the missing-value
// sentinel, and are counted by Adapter.Malformed.
package source

import (
	"sort"
	"time"
)

// Provider gives random access to raw tabular input.
type Provider interface {
	// Count returns the number of rows.
	Count() int
	// NumColumns returns the number of source columns (the widest row for ragged input).
	NumColumns() int
	// ColumnIndex resolves a column name; positional providers return false.
	ColumnIndex(name string) (int, bool)
	// Value returns the raw cell, or nil when the row has no such column.
	Value(row, col int) any
}

type rowsProvider struct {
	rows  [][]any
	width int
}

// Rows wraps row-major input (an array of arrays). Short rows are allowed:
// missing trailing cells read as nil.
func Rows(rows [][]any) Provider {
	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}

	return &rowsProvider{rows: rows, width: width}
}

func (p *rowsProvider) Count() int                     { return len(p.rows) }
func (p *rowsProvider) NumColumns() int                { return p.width }
func (p *rowsProvider) ColumnIndex(string) (int, bool) { return -1, false }

func (p *rowsProvider) Value(row, col int) any {
	r := p.rows[row]
	if col < 0 || col >= len(r) {
		return nil
	}

	return r[col]
}

type objectsProvider struct {
	items []map[string]any
	keys  []string
	index map[string]int
}

// Objects wraps an array of objects. The column order is keys when given,
// otherwise the sorted union of all object keys.
func Objects(items []map[string]any, keys ...string) Provider {
	if len(keys) == 0 {
		seen := make(map[string]struct{})
		for _, it := range items {
			for k := range it {
				if _, ok := seen[k]; !ok {
					seen[k] = struct{}{}
					keys = append(keys, k)
				}
			}
		}
		sort.Strings(keys)
	}

	index := make(map[string]int, len(keys))
	for i, k := range keys {
		if _, ok := index[k]; !ok {
			index[k] = i
		}
	}

	return &objectsProvider{items: items, keys: keys, index: index}
}

func (p *objectsProvider) Count() int      { return len(p.items) }
func (p *objectsProvider) NumColumns() int { return len(p.keys) }

func (p *objectsProvider) ColumnIndex(name string) (int, bool) {
	i, ok := p.index[name]
	return i, ok
}

func (p *objectsProvider) Value(row, col int) any {
	if col < 0 || col >= len(p.keys) {
		return nil
	}

	return p.items[row][p.keys[col]]
}

// Column is a named typed array for the Columns provider.
//
// Supported value types: []float64, []float32, []int64, []int32, []int,
// []string, []time.Time, []bool and []any. Columns may differ in length;
// shorter columns read as nil past their end.
type Column struct {
	Name   string
	Values any
}

type columnsProvider struct {
	cols  []func(i int) any
	lens  []int
	index map[string]int
	count int
}

// Columns wraps column-major typed arrays.
func Columns(cols ...Column) (Provider, error) {
	p := &columnsProvider{
		cols:  make([]func(int) any, len(cols)),
		lens:  make([]int, len(cols)),
		index: make(map[string]int, len(cols)),
	}

	for i, c := range cols {
		get, n, err := typedColumn(c.Name, c.Values)
		if err != nil {
			return nil, err
		}
		p.cols[i] = get
		p.lens[i] = n
		p.count = max(p.count, n)
		if c.Name != "" {
			if _, ok := p.index[c.Name]; !ok {
				p.index[c.Name] = i
			}
		}
	}

	return p, nil
}

func (p *columnsProvider) Count() int      { return p.count }
func (p *columnsProvider) NumColumns() int { return len(p.cols) }

func (p *columnsProvider) ColumnIndex(name string) (int, bool) {
	i, ok := p.index[name]
	return i, ok
}

func (p *columnsProvider) Value(row, col int) any {
	if col < 0 || col >= len(p.cols) || row >= p.lens[col] {
		return nil
	}

	return p.cols[col](row)
}

func typedColumn(name string, values any) (func(int) any, int, error) {
	switch v := values.(type) {
	case []float64:
		return func(i int) any { return v[i] }, len(v), nil
	case []float32:
		return func(i int) any { return v[i] }, len(v), nil
	case []int64:
		return func(i int) any { return v[i] }, len(v), nil
	case []int32:
		return func(i int) any { return v[i] }, len(v), nil
	case []int:
		return func(i int) any { return v[i] }, len(v), nil
	case []string:
		return func(i int) any { return v[i] }, len(v), nil
	case []time.Time:
		return func(i int) any { return v[i] }, len(v), nil
	case []bool:
		return func(i int) any { return v[i] }, len(v), nil
	case []any:
		return func(i int) any { return v[i] }, len(v), nil
	default:
		return nil, 0, unsupported("column %q has element type %T", name, values)
	}
}
