// Package errs defines the sentinel errors returned by chartdata packages.
//
// Callers match them with errors.Is; returned errors are usually wrapped with
// additional context, e.g. fmt.Errorf("%w: item 12, count 10", ErrIndexOutOfRange).
//
// The errors fall into two groups. Contract errors (index out of range, unknown
// dimension, invalid visual-map domain) mean the container or pipeline was driven
// incorrectly and are always returned to the caller. Malformed input values are
// never reported through this package: they resolve to the missing-value sentinel.
package errs

import "errors"

// Container and schema errors.
var (
	// ErrIndexOutOfRange is returned when an item index is outside [0, Count()).
	ErrIndexOutOfRange = errors.New("item index out of range")

	// ErrUnknownDimension is returned when a dimension name is not part of the schema.
	ErrUnknownDimension = errors.New("unknown dimension")

	// ErrDuplicateDimension is returned when a schema declares the same dimension name twice.
	ErrDuplicateDimension = errors.New("duplicate dimension name")

	// ErrInvalidDimensionType is returned for a dimension type outside the known set,
	// or when an operation requires a different type (e.g. ordinal lookup on a numeric dimension).
	ErrInvalidDimensionType = errors.New("invalid dimension type")

	// ErrLengthMismatch is returned when a per-item sequence does not match the item count.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrUnsupportedSource is returned when raw input has a shape no source adapter accepts.
	ErrUnsupportedSource = errors.New("unsupported source format")
)

// Visual mapping errors.
var (
	// ErrInvalidDomain is returned for an empty, reversed-equal or NaN continuous domain.
	ErrInvalidDomain = errors.New("invalid visual map domain")

	// ErrInvalidPieces is returned when piecewise buckets are unordered or overlapping.
	ErrInvalidPieces = errors.New("invalid visual map pieces")

	// ErrInvalidColor is returned when a colour string cannot be parsed.
	ErrInvalidColor = errors.New("invalid color")
)

// Series and pipeline errors.
var (
	// ErrInvalidConfig is returned when a series or pipeline option is out of its valid range.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrDuplicateSeries is returned when a series ID is registered twice in the same group.
	ErrDuplicateSeries = errors.New("duplicate series")

	// ErrSeriesNotFound is returned when removing or looking up an unregistered series.
	ErrSeriesNotFound = errors.New("series not found")
)
