// Package data implements the columnar series data container.
//
// A Container holds one resolved float64 column per schema dimension, the
// provenance of every item (the source row it came from), and a set of
// per-item overlays written by the processing pipeline and the layout stage:
//
//   - visual attributes (container-wide defaults plus sparse per-item overrides)
//   - stacked values (stackedValue and stackedOver)
//   - opaque item layouts written by the external layout stage
//
// # Item model
//
// Item i is a position in [0, Count()). Columns are stored by source row, so
// derived containers (filtered or down-sampled) share the same column arrays
// and only differ in their index vector. RawIndex(i) recovers the source row
// of item i in every container derived from the same ingestion.
//
// # Missing values
//
// Missing and malformed cells are stored as NaN. Extents and aggregates skip
// them; IsMissing reports them.
//
// # Errors
//
// Item indices outside [0, Count()) return errs.ErrIndexOutOfRange and unknown
// dimension names return errs.ErrUnknownDimension. Neither is ever ignored:
// silently clamping would break the index alignment between columns and
// overlays.
//
// # Concurrency
//
// A Container is not safe for concurrent mutation. CloneShallow produces an
// independent snapshot sharing the immutable columns, which other readers may
// use while the owner keeps processing.
//
// # Basic usage
//
//	adapter, _ := source.NewAdapter(source.Rows(rows), sch)
//	c, _ := data.New(adapter, data.WithInvertedIndex("name"))
//
//	c.SetVisual(data.ChannelColor, "#5470c6")
//	_ = c.SetItemVisual(2, data.ChannelColor, "red")
//
//	_ = c.Each([]string{"name", "value"}, func(i int, vals []float64) bool {
//	    color, _ := c.GetItemVisual(i, data.ChannelColor)
//	    fmt.Println(i, vals, color)
//	    return true
//	})
package data
