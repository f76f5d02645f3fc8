// Package options implements the generic functional-option pattern shared by the
// container, pipeline, visual-map, brush and series constructors.
package options

// Option represents a functional option for a chartdata component of type T.
// T is usually the pointer being constructed, such as *data.Container or *pipeline.Pipeline.
type Option[T any] interface {
	apply(T) error
}

// Func is a functional option that wraps a setter.
// It implements the Option interface for any component type T.
type Func[T any] struct {
	applyFunc func(T) error
}

// apply implements the Option interface.
func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New creates a functional option from a validating setter.
// The setter returns a wrapped errs sentinel when it rejects its input.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// NoError creates a functional option from a setter that cannot reject its input.
// This is a convenience for options such as flags and non-validated labels.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}

// Apply applies options to a component in order, stopping at the first error.
// Nil entries are skipped, so constructors can pass conditionally built option lists.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
