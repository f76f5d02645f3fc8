package pipeline

import (
	"fmt"

	"github.com/arloliu/chartdata/data"
	"github.com/arloliu/chartdata/errs"
	"github.com/arloliu/chartdata/format"
	"github.com/arloliu/chartdata/visualmap"
)

// VisualMapCoder writes the visual of each item's Dim value as per-item
// overrides. It runs after StyleVisual so mapped colours win over the
// series colour.
//
// When Dim is ordinal and the mapper has category pieces, items are mapped
// by category name, so series with different category orders agree.
type VisualMapCoder struct {
	Dim    string
	Mapper visualmap.Mapper
}

var _ Processor = (*VisualMapCoder)(nil)

func (v *VisualMapCoder) Name() string        { return "visualMap" }
func (v *VisualMapCoder) Phase() format.Phase { return format.PhaseVisual }
func (v *VisualMapCoder) Chunked() bool       { return true }

func (v *VisualMapCoder) Process(ctx *Context, start, end int) error {
	if v.Mapper == nil {
		return fmt.Errorf("%w: visual map coder without mapper", errs.ErrInvalidConfig)
	}

	c := ctx.Data()
	if cm, ok := v.Mapper.(visualmap.CategoryMapper); ok && cm.HasCategories() && c.OrdinalMeta(v.Dim) != nil {
		return v.processCategories(c, cm, start, end)
	}

	for i := start; i < end; i++ {
		val, err := c.Get(v.Dim, i)
		if err != nil {
			return err
		}
		if err := v.Mapper.Map(val).Apply(c, i); err != nil {
			return err
		}
	}

	return nil
}

func (v *VisualMapCoder) processCategories(c *data.Container, cm visualmap.CategoryMapper, start, end int) error {
	for i := start; i < end; i++ {
		name, err := c.Ordinal(v.Dim, i)
		if err != nil {
			return err
		}
		if err := cm.MapCategory(name).Apply(c, i); err != nil {
			return err
		}
	}

	return nil
}
