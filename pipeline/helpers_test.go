package pipeline

import (
	"testing"

	"github.com/arloliu/chartdata/data"
	"github.com/arloliu/chartdata/format"
	"github.com/arloliu/chartdata/schema"
	"github.com/arloliu/chartdata/source"
	"github.com/stretchr/testify/require"
)

func valueContainer(t testing.TB, values []float64) *data.Container {
	t.Helper()

	s, err := schema.Numbers("v")
	require.NoError(t, err)
	p, err := source.Columns(source.Column{Name: "v", Values: values})
	require.NoError(t, err)
	a, err := source.NewAdapter(p, s)
	require.NoError(t, err)
	c, err := data.New(a)
	require.NoError(t, err)

	return c
}

// categoryContainer builds a {cat, v} container; a nil value is missing.
func categoryContainer(t testing.TB, cats []string, values []any) *data.Container {
	t.Helper()

	s := schema.MustNew(
		schema.DimensionDef{Name: "cat", Type: format.DimensionOrdinal},
		schema.DimensionDef{Name: "v", Type: format.DimensionNumber},
	)
	rows := make([][]any, len(cats))
	for i := range cats {
		rows[i] = []any{cats[i], values[i]}
	}
	a, err := source.NewAdapter(source.Rows(rows), s)
	require.NoError(t, err)
	c, err := data.New(a)
	require.NoError(t, err)

	return c
}
