package schema

import (
	"math"
	"testing"

	"github.com/arloliu/chartdata/errs"
	"github.com/arloliu/chartdata/format"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s, err := New(
		DimensionDef{Name: "name", Type: format.DimensionOrdinal},
		DimensionDef{Name: "value", Type: format.DimensionNumber, DisplayName: "Sales"},
		DimensionDef{Name: "date", Type: format.DimensionTime},
	)
	require.NoError(t, err)
	require.Equal(t, 3, s.Len())
	require.Equal(t, []string{"name", "value", "date"}, s.Names())

	i, ok := s.Index("value")
	require.True(t, ok)
	require.Equal(t, 1, i)

	d, ok := s.Dimension("value")
	require.True(t, ok)
	require.Equal(t, "Sales", d.Label())
	require.Equal(t, "date", s.At(2).Label())
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name string
		defs []DimensionDef
		want error
	}{
		{
			name: "duplicate name",
			defs: []DimensionDef{
				{Name: "x", Type: format.DimensionNumber},
				{Name: "x", Type: format.DimensionOrdinal},
			},
			want: errs.ErrDuplicateDimension,
		},
		{
			name: "empty name",
			defs: []DimensionDef{{Type: format.DimensionNumber}},
			want: errs.ErrInvalidDimensionType,
		},
		{
			name: "unknown type",
			defs: []DimensionDef{{Name: "x", Type: format.DimensionType(42)}},
			want: errs.ErrInvalidDimensionType,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.defs...)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSchema_Lookup(t *testing.T) {
	s, err := Numbers("x", "y")
	require.NoError(t, err)

	i, err := s.Lookup("y")
	require.NoError(t, err)
	require.Equal(t, 1, i)

	_, err = s.Lookup("z")
	require.ErrorIs(t, err, errs.ErrUnknownDimension)
}

func TestSchema_CategoriesCopied(t *testing.T) {
	cats := []string{"A", "B"}
	s := MustNew(DimensionDef{Name: "c", Type: format.DimensionOrdinal, Categories: cats})
	cats[0] = "Z"

	d, _ := s.Dimension("c")
	require.Equal(t, []string{"A", "B"}, d.Categories)
}

func TestSchema_FirstOfType(t *testing.T) {
	s := MustNew(
		DimensionDef{Name: "v", Type: format.DimensionNumber},
		DimensionDef{Name: "c1", Type: format.DimensionOrdinal},
		DimensionDef{Name: "c2", Type: format.DimensionOrdinal},
	)

	d, ok := s.FirstOfType(format.DimensionOrdinal)
	require.True(t, ok)
	require.Equal(t, "c1", d.Name)

	_, ok = s.FirstOfType(format.DimensionTime)
	require.False(t, ok)
}

func TestOrdinalMeta_FirstSeenOrder(t *testing.T) {
	m := NewOrdinalMeta("cat", nil)

	require.Equal(t, 0.0, m.Parse("A"))
	require.Equal(t, 1.0, m.Parse("B"))
	require.Equal(t, 0.0, m.Parse("A"))
	require.Equal(t, 2.0, m.Parse("C"))
	require.Equal(t, []string{"A", "B", "C"}, m.Categories())
}

func TestOrdinalMeta_ExplicitCategories(t *testing.T) {
	m := NewOrdinalMeta("cat", []string{"low", "mid", "high"})

	require.Equal(t, 2.0, m.Parse("high"))
	require.Equal(t, 0.0, m.Parse("low"))

	// Unseen values get trailing codes; existing codes never move.
	require.Equal(t, 3.0, m.Parse("extreme"))
	require.Equal(t, 1.0, m.Parse("mid"))
	require.Equal(t, 4, m.Len())
}

func TestOrdinalMeta_Name(t *testing.T) {
	m := NewOrdinalMeta("cat", []string{"A", "B"})

	name, ok := m.Name(1)
	require.True(t, ok)
	require.Equal(t, "B", name)

	for _, v := range []float64{math.NaN(), -1, 2, 0.5} {
		_, ok = m.Name(v)
		require.False(t, ok, "value %v", v)
	}
}

func TestOrdinalMeta_Code(t *testing.T) {
	m := NewOrdinalMeta("cat", []string{"A"})

	code, ok := m.Code("A")
	require.True(t, ok)
	require.Equal(t, 0, code)

	_, ok = m.Code("B")
	require.False(t, ok)
	require.Equal(t, 1, m.Len(), "Code must not assign")
}
