package data

import "maps"

// Channel names a visual attribute resolvable per item or per container.
type Channel string

const (
	ChannelColor        Channel = "color"
	ChannelSymbol       Channel = "symbol"
	ChannelSymbolSize   Channel = "symbolSize"
	ChannelLegendSymbol Channel = "legendSymbol"
	ChannelStyle        Channel = "style"
	ChannelOpacity      Channel = "opacity"
)

// visualOverlay is a two-level lookup: sparse per-item overrides first,
// then the container-wide default.
type visualOverlay struct {
	defaults map[Channel]any
	items    map[Channel]map[int]any
}

func newVisualOverlay() *visualOverlay {
	return &visualOverlay{
		defaults: make(map[Channel]any),
		items:    make(map[Channel]map[int]any),
	}
}

func (v *visualOverlay) clone() *visualOverlay {
	out := &visualOverlay{
		defaults: maps.Clone(v.defaults),
		items:    make(map[Channel]map[int]any, len(v.items)),
	}
	for ch, m := range v.items {
		out.items[ch] = maps.Clone(m)
	}

	return out
}

func (v *visualOverlay) item(i int, ch Channel) (any, bool) {
	if m, ok := v.items[ch]; ok {
		if val, ok := m[i]; ok {
			return val, true
		}
	}
	val, ok := v.defaults[ch]

	return val, ok
}

// SetVisual sets the container-wide default of channel ch.
func (c *Container) SetVisual(ch Channel, value any) {
	c.visual.defaults[ch] = value
}

// GetVisual returns the container-wide default of channel ch and whether it is set.
func (c *Container) GetVisual(ch Channel) (any, bool) {
	val, ok := c.visual.defaults[ch]
	return val, ok
}

// SetItemVisual sets a per-item override of channel ch for item i.
// Overrides take precedence over the container-wide default.
func (c *Container) SetItemVisual(i int, ch Channel, value any) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}

	m, ok := c.visual.items[ch]
	if !ok {
		m = make(map[int]any)
		c.visual.items[ch] = m
	}
	m[i] = value

	return nil
}

// GetItemVisual resolves channel ch for item i: the per-item override if set,
// else the container-wide default, else nil.
func (c *Container) GetItemVisual(i int, ch Channel) (any, error) {
	if err := c.checkIndex(i); err != nil {
		return nil, err
	}
	val, _ := c.visual.item(i, ch)

	return val, nil
}

// HasItemVisual reports whether item i has its own override of channel ch.
func (c *Container) HasItemVisual(i int, ch Channel) bool {
	m, ok := c.visual.items[ch]
	if !ok {
		return false
	}
	_, ok = m[i]

	return ok
}

// ClearItemVisuals removes all per-item overrides, keeping the defaults.
func (c *Container) ClearItemVisuals() {
	clear(c.visual.items)
}
