package brush

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/chartdata/data"
	"github.com/arloliu/chartdata/errs"
	"github.com/arloliu/chartdata/format"
	"github.com/arloliu/chartdata/internal/options"
	"github.com/arloliu/chartdata/visualmap"
)

// Target is a series that can be brushed.
type Target interface {
	ID() string
	Data() *data.Container
}

// CoordSysTarget is a Target bound to a named coordinate system. Areas with
// a non-empty CoordSys only apply to targets in the same system.
type CoordSysTarget interface {
	Target
	CoordSys() string
}

// Controller holds the active brush areas and the last selection.
//
// Without areas, nothing is brushed and every item reports InRange. With
// linking enabled, an item index selected in any target is selected in
// every target.
type Controller struct {
	selectors []*Selector
	link      bool
	outVisual *visualmap.Visual
	inVisual  *visualmap.Visual

	selected map[string][]bool
	logger   *slog.Logger
}

// ControllerOption configures a Controller.
type ControllerOption = options.Option[*Controller]

// WithLinkAll links selection by item index across all targets.
func WithLinkAll() ControllerOption {
	return options.NoError(func(c *Controller) {
		c.link = true
	})
}

// WithInBrush sets the visual written to selected items by Encode.
func WithInBrush(v visualmap.Visual) ControllerOption {
	return options.NoError(func(c *Controller) {
		c.inVisual = &v
	})
}

// WithOutOfBrush sets the visual written to unselected items by Encode.
func WithOutOfBrush(v visualmap.Visual) ControllerOption {
	return options.NoError(func(c *Controller) {
		c.outVisual = &v
	})
}

// WithLogger sets the controller logger.
func WithLogger(l *slog.Logger) ControllerOption {
	return options.New(func(c *Controller) error {
		if l == nil {
			return fmt.Errorf("%w: nil logger", errs.ErrInvalidConfig)
		}
		c.logger = l

		return nil
	})
}

// NewController creates a controller with no areas.
func NewController(opts ...ControllerOption) (*Controller, error) {
	c := &Controller{
		selected: make(map[string][]bool),
		logger:   slog.New(slog.DiscardHandler),
	}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// SetAreas replaces the active areas. The previous selection is kept until
// the next Apply. On error the active areas are unchanged.
func (c *Controller) SetAreas(areas ...Area) error {
	selectors := make([]*Selector, 0, len(areas))
	for _, a := range areas {
		s, err := NewSelector(a)
		if err != nil {
			return err
		}
		selectors = append(selectors, s)
	}
	c.selectors = selectors

	return nil
}

// Areas returns the active areas.
func (c *Controller) Areas() []Area {
	out := make([]Area, len(c.selectors))
	for i, s := range c.selectors {
		out[i] = s.Area()
	}

	return out
}

// Brushed reports whether any area is active.
func (c *Controller) Brushed() bool {
	return len(c.selectors) > 0
}

func (c *Controller) selectorsFor(t Target) []*Selector {
	cs, ok := t.(CoordSysTarget)
	if !ok {
		return c.selectors
	}

	var out []*Selector
	for _, s := range c.selectors {
		if sys := s.Area().CoordSys(); sys == "" || sys == cs.CoordSys() {
			out = append(out, s)
		}
	}

	return out
}

// Apply computes the selection of every target and returns, per target ID,
// the selected item indices in ascending order. Targets are not modified.
func (c *Controller) Apply(targets []Target) (map[string][]int, error) {
	c.selected = make(map[string][]bool, len(targets))

	for _, t := range targets {
		d := t.Data()
		if d == nil {
			continue
		}
		sel := make([]bool, d.Count())
		selectors := c.selectorsFor(t)
		for i := range sel {
			layout, err := d.ItemLayout(i)
			if err != nil {
				return nil, err
			}
			for _, s := range selectors {
				if s.Layout(layout) {
					sel[i] = true
					break
				}
			}
		}
		c.selected[t.ID()] = sel
	}

	if c.link {
		c.linkSelection()
	}

	out := make(map[string][]int, len(c.selected))
	total := 0
	for id, sel := range c.selected {
		var idx []int
		for i, ok := range sel {
			if ok {
				idx = append(idx, i)
			}
		}
		out[id] = idx
		total += len(idx)
	}
	c.logger.Debug("brush applied",
		slog.Int("areas", len(c.selectors)),
		slog.Int("targets", len(targets)),
		slog.Int("selected", total))

	return out, nil
}

func (c *Controller) linkSelection() {
	union := make(map[int]bool)
	for _, sel := range c.selected {
		for i, ok := range sel {
			if ok {
				union[i] = true
			}
		}
	}
	for _, sel := range c.selected {
		for i := range sel {
			sel[i] = union[i]
		}
	}
}

// IsSelected reports whether item i of the target was selected by the last Apply.
func (c *Controller) IsSelected(seriesID string, i int) bool {
	sel := c.selected[seriesID]

	return i >= 0 && i < len(sel) && sel[i]
}

// State returns InRange for selected items, OutOfRange otherwise. Without
// active areas every item is InRange.
func (c *Controller) State(seriesID string, i int) format.VisualState {
	if !c.Brushed() || c.IsSelected(seriesID, i) {
		return format.InRange
	}

	return format.OutOfRange
}

// Encode writes the in-brush and out-of-brush visuals as per-item
// overrides, using the selection of the last Apply. It does nothing while no
// area is active.
func (c *Controller) Encode(targets []Target) error {
	if !c.Brushed() {
		return nil
	}

	for _, t := range targets {
		d := t.Data()
		if d == nil {
			continue
		}
		for i := range d.Count() {
			v := c.outVisual
			if c.IsSelected(t.ID(), i) {
				v = c.inVisual
			}
			if v == nil {
				continue
			}
			if err := v.Apply(d, i); err != nil {
				return err
			}
		}
	}

	return nil
}

// Clear removes every area and the last selection.
func (c *Controller) Clear() {
	c.selectors = nil
	c.selected = make(map[string][]bool)
}
