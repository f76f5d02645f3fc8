package series

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/arloliu/chartdata/brush"
	"github.com/arloliu/chartdata/data"
	"github.com/arloliu/chartdata/errs"
	"github.com/arloliu/chartdata/internal/options"
	"github.com/arloliu/chartdata/internal/registry"
	"github.com/arloliu/chartdata/source"
	"github.com/arloliu/chartdata/visualmap"
)

// Set holds series in registration order and links their stack groups.
type Set struct {
	series []*Series
	ids    *registry.Registry
	stacks *StackRegistry
	next   int
	logger *slog.Logger
}

// SetOption configures a Set.
type SetOption = options.Option[*Set]

// WithSetLogger sets the logger handed to every series added to the set.
func WithSetLogger(l *slog.Logger) SetOption {
	return options.New(func(s *Set) error {
		if l == nil {
			return fmt.Errorf("%w: nil logger", errs.ErrInvalidConfig)
		}
		s.logger = l

		return nil
	})
}

// NewSet creates an empty set.
func NewSet(opts ...SetOption) (*Set, error) {
	s := &Set{
		ids:    registry.New(),
		stacks: NewStackRegistry(),
		logger: slog.New(slog.DiscardHandler),
	}
	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	return s, nil
}

// Add creates a series and appends it to the set. Stacked series join their
// stack group on top of the members added before them.
//
// Returns errs.ErrDuplicateSeries when cfg.ID is already in the set.
func (s *Set) Add(cfg Config, adapter *source.Adapter, opts ...Option) (*Series, error) {
	if _, err := s.ids.Register(cfg.ID); err != nil {
		return nil, err
	}

	var sr *Series
	base := []Option{
		WithIndex(s.next),
		WithLogger(s.logger),
		WithStackSource(func() []*data.Container { return s.belowData(sr) }),
	}
	sr, err := New(cfg, adapter, append(base, opts...)...)
	if err != nil {
		_ = s.ids.Remove(cfg.ID)
		return nil, err
	}

	if key := sr.Config().StackKey; key != "" {
		if err := s.stacks.Register(key, sr.ID()); err != nil {
			_ = s.ids.Remove(cfg.ID)
			return nil, err
		}
	}

	s.series = append(s.series, sr)
	s.next++
	s.logger.Debug("series added",
		slog.String("series", sr.ID()),
		slog.Int("items", sr.Raw().Count()),
		slog.String("stack", sr.Config().StackKey))

	return sr, nil
}

// Remove deletes a series and its stack membership. Remaining series keep
// their palette index; call Process to restack the group.
func (s *Set) Remove(id string) error {
	if err := s.ids.Remove(id); err != nil {
		return err
	}

	i := slices.IndexFunc(s.series, func(sr *Series) bool { return sr.ID() == id })
	sr := s.series[i]
	s.series = slices.Delete(s.series, i, i+1)

	if key := sr.Config().StackKey; key != "" {
		return s.stacks.Remove(key, id)
	}

	return nil
}

// Clear removes every series and stack group. Palette indices of series
// added afterwards start again at zero.
func (s *Set) Clear() {
	s.ids.Reset()
	s.stacks = NewStackRegistry()
	s.series = nil
	s.next = 0
	s.logger.Debug("series set cleared")
}

// Get returns the series with the given ID.
func (s *Set) Get(id string) (*Series, bool) {
	if !s.ids.Contains(id) {
		return nil, false
	}
	i := slices.IndexFunc(s.series, func(sr *Series) bool { return sr.ID() == id })

	return s.series[i], true
}

// Series returns the series in registration order.
func (s *Set) Series() []*Series {
	return slices.Clone(s.series)
}

// Len returns the number of series.
func (s *Set) Len() int {
	return len(s.series)
}

// Stacks returns the stack group registry.
func (s *Set) Stacks() *StackRegistry {
	return s.stacks
}

func (s *Set) belowData(sr *Series) []*data.Container {
	if sr == nil {
		return nil
	}

	var out []*data.Container
	for _, id := range s.stacks.Below(sr.Config().StackKey, sr.ID()) {
		if b, ok := s.Get(id); ok {
			out = append(out, b.Data())
		}
	}

	return out
}

// Process runs a full pass over every series in registration order, so that
// stack members below are processed before the members above them.
func (s *Set) Process() error {
	for _, sr := range s.series {
		if err := sr.Process(); err != nil {
			return err
		}
	}

	return nil
}

// Step advances every unfinished series by one chunk and reports whether
// all of them have completed their pass. Rewind starts a new pass.
func (s *Set) Step() (bool, error) {
	all := true
	for _, sr := range s.series {
		done, err := sr.Step()
		if err != nil {
			return false, err
		}
		all = all && done
	}

	return all, nil
}

// Rewind makes the next Step start a new pass for every series.
func (s *Set) Rewind() {
	for _, sr := range s.series {
		sr.Rewind()
	}
}

// VisualMapTargets returns the series as range-query targets.
func (s *Set) VisualMapTargets() []visualmap.Target {
	out := make([]visualmap.Target, len(s.series))
	for i, sr := range s.series {
		out[i] = sr
	}

	return out
}

// BrushTargets returns the series as brush targets.
func (s *Set) BrushTargets() []brush.Target {
	out := make([]brush.Target, len(s.series))
	for i, sr := range s.series {
		out[i] = sr
	}

	return out
}

// FindTargetIndices returns, per series, the items whose dim value lies in r.
func (s *Set) FindTargetIndices(dim string, r [2]float64) []visualmap.TargetIndices {
	return visualmap.FindTargetIndices(s.VisualMapTargets(), dim, r)
}
