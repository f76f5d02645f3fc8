package schema

import (
	"math"

	"github.com/arloliu/chartdata/internal/hash"
)

// OrdinalMeta assigns stable integer codes to the categories of an ordinal dimension.
//
// Codes are assigned in first-seen order, after any explicit categories. A new
// category always receives the next trailing code; existing codes are never
// reordered, so item values stay valid across incremental appends.
type OrdinalMeta struct {
	scope      string
	categories []string
	codes      map[uint64]int // xxHash64(scope, category) → code
	collided   map[string]int // categories whose hash was already taken
}

// NewOrdinalMeta creates the category table for the dimension named scope,
// seeded with explicit categories. Repeated explicit categories keep their first code.
func NewOrdinalMeta(scope string, categories []string) *OrdinalMeta {
	m := &OrdinalMeta{
		scope:      scope,
		categories: make([]string, 0, len(categories)),
		codes:      make(map[uint64]int, len(categories)),
	}
	for _, c := range categories {
		m.Parse(c)
	}

	return m
}

// Code returns the code of category without assigning one.
func (m *OrdinalMeta) Code(category string) (int, bool) {
	id := hash.Scoped(m.scope, category)
	if code, ok := m.codes[id]; ok && m.categories[code] == category {
		return code, true
	}
	if m.collided != nil {
		code, ok := m.collided[category]
		return code, ok
	}

	return -1, false
}

// Parse returns the code of category as a float64 column value, appending a new
// trailing code if the category has not been seen.
func (m *OrdinalMeta) Parse(category string) float64 {
	if code, ok := m.Code(category); ok {
		return float64(code)
	}

	code := len(m.categories)
	m.categories = append(m.categories, category)

	id := hash.Scoped(m.scope, category)
	if _, taken := m.codes[id]; taken {
		if m.collided == nil {
			m.collided = make(map[string]int)
		}
		m.collided[category] = code
	} else {
		m.codes[id] = code
	}

	return float64(code)
}

// Name returns the category for a column value. NaN and unknown codes return "".
func (m *OrdinalMeta) Name(value float64) (string, bool) {
	if math.IsNaN(value) {
		return "", false
	}

	code := int(value)
	if code < 0 || code >= len(m.categories) || float64(code) != value {
		return "", false
	}

	return m.categories[code], true
}

// Len returns the number of known categories.
func (m *OrdinalMeta) Len() int {
	return len(m.categories)
}

// Categories returns a copy of the categories in code order.
func (m *OrdinalMeta) Categories() []string {
	return append([]string(nil), m.categories...)
}
