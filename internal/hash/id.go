// Package hash derives 64-bit identifiers for names used as lookup keys.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Scoped computes the xxHash64 of name within scope.
//
// Equal names in different scopes (for example the same category string in two
// ordinal dimensions, or the same stack key in two coordinate systems) get
// different identifiers. A zero byte separates scope and name so that
// ("ab", "c") and ("a", "bc") do not collide.
func Scoped(scope, name string) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(scope)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(name)

	return d.Sum64()
}
