// Package pipeline runs ordered processors over a series data container.
//
// Processors run in phase order: Transform, Statistic (stacking, sampling),
// Visual (style, legend and visual-map coders). The Layout phase belongs to
// the external layout stage and is never run here.
//
// # Progressive processing
//
// When progressive mode is enabled and the item count exceeds the configured
// threshold, Step processes one bounded window of items per call and advances
// a cursor. Whole-data processors (Chunked() == false) run once, on the first
// step, before any window is processed; chunked processors then run over each
// window in phase order. The container is valid to read between steps: items
// behind the cursor carry their new visuals, the rest keep defaults.
//
// There is no goroutine or timer involved. The caller decides when to call
// Step again (typically once per frame) and cancels by not calling it.
package pipeline

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"

	"github.com/arloliu/chartdata/data"
	"github.com/arloliu/chartdata/errs"
	"github.com/arloliu/chartdata/format"
	"github.com/arloliu/chartdata/internal/options"
)

// Processor transforms or annotates the container held by a Context.
type Processor interface {
	// Name identifies the processor in logs and errors.
	Name() string
	// Phase places the processor in the run order.
	Phase() format.Phase
	// Chunked reports whether Process may be called on item windows.
	// Whole-data processors are called once with [0, Count()).
	Chunked() bool
	// Process handles items in [start, end) of ctx.Data().
	Process(ctx *Context, start, end int) error
}

// Context carries the container being processed. Processors that replace the
// container (for example down-sampling) call ReplaceData.
type Context struct {
	data   *data.Container
	logger *slog.Logger
}

// NewContext wraps c for a pipeline run.
func NewContext(c *data.Container) *Context {
	return &Context{data: c, logger: slog.New(slog.DiscardHandler)}
}

// Data returns the current container.
func (x *Context) Data() *data.Container {
	return x.data
}

// ReplaceData swaps in a derived container, e.g. a down-sampled view.
func (x *Context) ReplaceData(c *data.Container) {
	x.data = c
}

// Logger returns the pipeline logger.
func (x *Context) Logger() *slog.Logger {
	return x.logger
}

// Pipeline holds the registered processors and the progressive cursor.
type Pipeline struct {
	procs       []Processor
	progressive bool
	threshold   int
	chunkSize   int

	cursor  int
	started bool
	chunked bool // whether the current pass runs in windows

	logger *slog.Logger
}

// Option configures a Pipeline.
type Option = options.Option[*Pipeline]

// WithProgressive enables progressive processing for containers with more
// than threshold items, handling chunkSize items per Step.
func WithProgressive(threshold, chunkSize int) Option {
	return options.New(func(p *Pipeline) error {
		if threshold < 0 || chunkSize <= 0 {
			return fmt.Errorf("%w: progressive threshold %d, chunk size %d",
				errs.ErrInvalidConfig, threshold, chunkSize)
		}
		p.progressive = true
		p.threshold = threshold
		p.chunkSize = chunkSize

		return nil
	})
}

// WithLogger sets the logger passed to processors through the Context.
func WithLogger(l *slog.Logger) Option {
	return options.New(func(p *Pipeline) error {
		if l == nil {
			return fmt.Errorf("%w: nil logger", errs.ErrInvalidConfig)
		}
		p.logger = l

		return nil
	})
}

// New creates an empty pipeline.
func New(opts ...Option) (*Pipeline, error) {
	p := &Pipeline{logger: slog.New(slog.DiscardHandler)}
	if err := options.Apply(p, opts...); err != nil {
		return nil, err
	}

	return p, nil
}

// Register adds processors. They are kept sorted by phase; processors of the
// same phase run in registration order.
func (p *Pipeline) Register(procs ...Processor) {
	p.procs = append(p.procs, procs...)
	slices.SortStableFunc(p.procs, func(a, b Processor) int {
		return cmp.Compare(a.Phase(), b.Phase())
	})
}

// Processors returns the processor names in run order.
func (p *Pipeline) Processors() []string {
	names := make([]string, len(p.procs))
	for i, proc := range p.procs {
		names[i] = proc.Name()
	}

	return names
}

// IsProgressive reports whether a container of count items is processed in chunks.
func (p *Pipeline) IsProgressive(count int) bool {
	return p.progressive && count > p.threshold
}

// Cursor returns the index of the next unprocessed item.
func (p *Pipeline) Cursor() int {
	return p.cursor
}

// Reset rewinds the pipeline so the next Step starts a new pass.
func (p *Pipeline) Reset() {
	p.cursor = 0
	p.started = false
	p.chunked = false
}

// Run performs a full synchronous pass regardless of progressive settings.
func (p *Pipeline) Run(ctx *Context) error {
	p.Reset()
	if err := p.start(ctx); err != nil {
		return err
	}
	p.chunked = false

	_, err := p.window(ctx)

	return err
}

// Step processes the next window of items and reports whether the pass is
// complete. After completion, Step keeps returning true until Reset.
//
// A window is processed to completion before Step returns; on error the
// cursor does not advance.
func (p *Pipeline) Step(ctx *Context) (bool, error) {
	if !p.started {
		if err := p.start(ctx); err != nil {
			return false, err
		}
	} else if p.cursor >= ctx.Data().Count() {
		return true, nil
	}

	return p.window(ctx)
}

func (p *Pipeline) start(ctx *Context) error {
	ctx.logger = p.logger
	for _, proc := range p.procs {
		if proc.Chunked() || proc.Phase() == format.PhaseLayout {
			continue
		}
		if err := proc.Process(ctx, 0, ctx.Data().Count()); err != nil {
			return fmt.Errorf("%s: %w", proc.Name(), err)
		}
	}
	p.started = true
	p.cursor = 0
	p.chunked = p.IsProgressive(ctx.Data().Count())
	if p.chunked {
		p.logger.Debug("progressive pass started",
			slog.Int("items", ctx.Data().Count()),
			slog.Int("chunk", p.chunkSize))
	}

	return nil
}

func (p *Pipeline) window(ctx *Context) (bool, error) {
	count := ctx.Data().Count()
	end := count
	if p.chunked {
		end = min(p.cursor+p.chunkSize, count)
	}

	for _, proc := range p.procs {
		if !proc.Chunked() || proc.Phase() == format.PhaseLayout {
			continue
		}
		if err := proc.Process(ctx, p.cursor, end); err != nil {
			return false, fmt.Errorf("%s [%d,%d): %w", proc.Name(), p.cursor, end, err)
		}
	}

	p.cursor = end
	done := p.cursor >= count
	if p.chunked {
		p.logger.Debug("progressive chunk processed", slog.Int("cursor", p.cursor), slog.Bool("done", done))
	}

	return done, nil
}
