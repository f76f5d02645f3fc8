package source

import (
	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
)

// FromArrow exposes the columns of an Arrow record as a Provider.
//
// Columns are addressable by field name and position. Null slots read as nil.
// Supported column types: floating point, signed and unsigned integers,
// boolean, string, large string, timestamp, date32 and date64.
//
// The record must stay valid (not released) while the provider is in use.
func FromArrow(rec arrow.Record) (Provider, error) {
	n := int(rec.NumCols())
	p := &columnsProvider{
		cols:  make([]func(int) any, n),
		lens:  make([]int, n),
		index: make(map[string]int, n),
		count: int(rec.NumRows()),
	}

	for i := range n {
		name := rec.ColumnName(i)
		col := rec.Column(i)
		get, err := arrowColumn(name, col)
		if err != nil {
			return nil, err
		}
		p.cols[i] = func(row int) any {
			if col.IsNull(row) {
				return nil
			}

			return get(row)
		}
		p.lens[i] = col.Len()
		if _, ok := p.index[name]; !ok {
			p.index[name] = i
		}
	}

	return p, nil
}

func arrowColumn(name string, col arrow.Array) (func(int) any, error) {
	switch c := col.(type) {
	case *array.Float64:
		return func(i int) any { return c.Value(i) }, nil
	case *array.Float32:
		return func(i int) any { return c.Value(i) }, nil
	case *array.Int64:
		return func(i int) any { return c.Value(i) }, nil
	case *array.Int32:
		return func(i int) any { return c.Value(i) }, nil
	case *array.Int16:
		return func(i int) any { return c.Value(i) }, nil
	case *array.Int8:
		return func(i int) any { return c.Value(i) }, nil
	case *array.Uint64:
		return func(i int) any { return c.Value(i) }, nil
	case *array.Uint32:
		return func(i int) any { return c.Value(i) }, nil
	case *array.Uint16:
		return func(i int) any { return c.Value(i) }, nil
	case *array.Uint8:
		return func(i int) any { return c.Value(i) }, nil
	case *array.Boolean:
		return func(i int) any { return c.Value(i) }, nil
	case *array.String:
		return func(i int) any { return c.Value(i) }, nil
	case *array.LargeString:
		return func(i int) any { return c.Value(i) }, nil
	case *array.Timestamp:
		unit := c.DataType().(*arrow.TimestampType).Unit
		return func(i int) any { return c.Value(i).ToTime(unit) }, nil
	case *array.Date32:
		return func(i int) any { return c.Value(i).ToTime() }, nil
	case *array.Date64:
		return func(i int) any { return c.Value(i).ToTime() }, nil
	default:
		return nil, unsupported("arrow column %q has type %s", name, col.DataType())
	}
}
