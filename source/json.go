package source

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// FromJSON decodes a JSON data payload into a Provider.
//
// Accepted shapes:
//
//	[[1, "A", 3], [2, "B", 4]]          array of arrays  → Rows
//	[{"x": 1, "c": "A"}, {"x": 2}]      array of objects → Objects (sorted keys)
//	[1, 2, 3]                           array of scalars → single-column Rows
//
// Numbers are kept as json.Number so that integer precision survives until
// the adapter coerces them.
func FromJSON(data []byte) (Provider, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var items []any
	if err := dec.Decode(&items); err != nil {
		return nil, unsupported("decode json payload: %v", err)
	}

	shape := 0 // 1: rows, 2: objects, 3: scalars
	for _, it := range items {
		if it == nil {
			continue
		}
		switch it.(type) {
		case []any:
			shape = 1
		case map[string]any:
			shape = 2
		default:
			shape = 3
		}

		break
	}

	switch shape {
	case 2:
		objs := make([]map[string]any, len(items))
		for i, it := range items {
			m, ok := it.(map[string]any)
			if !ok && it != nil {
				return nil, unsupported("item %d is %T in an array of objects", i, it)
			}
			objs[i] = m
		}

		return Objects(objs), nil
	case 3:
		rows := make([][]any, len(items))
		for i, it := range items {
			rows[i] = []any{it}
		}

		return Rows(rows), nil
	default:
		rows := make([][]any, len(items))
		for i, it := range items {
			switch r := it.(type) {
			case []any:
				rows[i] = r
			case nil:
				rows[i] = nil
			default:
				return nil, unsupported("item %d is %T in an array of arrays", i, it)
			}
		}

		return Rows(rows), nil
	}
}

// MustFromJSON is like FromJSON but panics on error.
func MustFromJSON(data []byte) Provider {
	p, err := FromJSON(data)
	if err != nil {
		panic(fmt.Sprintf("source: %v", err))
	}

	return p
}
