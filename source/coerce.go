package source

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/arloliu/chartdata/errs"
)

// timeLayouts are tried in order when a time cell is a non-numeric string.
// Strings without an offset are read as UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"2006-01",
	"2006",
}

// missingMarker is the conventional placeholder for an empty cell in row data.
const missingMarker = "-"

// floater matches json.Number from both encoding/json and goccy/go-json.
type floater interface {
	Float64() (float64, error)
}

func unsupported(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errs.ErrUnsupportedSource}, args...)...)
}

func isMissing(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)

	return ok && s == missingMarker
}

// toNumber converts a raw cell to float64. ok is false for cells that cannot
// be read as a number; nil cells are reported as missing rather than malformed.
func toNumber(v any) (f float64, ok bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}

		return 0, true
	case time.Time:
		return float64(n.UnixMilli()), true
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return math.NaN(), false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN(), false
		}

		return f, true
	case floater:
		f, err := n.Float64()
		if err != nil {
			return math.NaN(), false
		}

		return f, true
	default:
		return math.NaN(), false
	}
}

// toTime converts a raw cell to epoch milliseconds.
func toTime(v any) (float64, bool) {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return math.NaN(), false
		}

		return float64(t.UnixMilli()), true
	case string:
		s := strings.TrimSpace(t)
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, true
		}
		for _, layout := range timeLayouts {
			if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return float64(ts.UnixMilli()), true
			}
		}

		return math.NaN(), false
	default:
		return toNumber(v)
	}
}

// toCategory converts a raw cell to its category string.
func toCategory(v any) (string, bool) {
	switch c := v.(type) {
	case string:
		return c, true
	case fmt.Stringer:
		return c.String(), true
	case float64:
		if math.IsNaN(c) {
			return "", false
		}

		return strconv.FormatFloat(c, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(c), 'f', -1, 32), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, bool:
		return fmt.Sprint(c), true
	default:
		return "", false
	}
}
