package domain

import (
	"slices"
	"strings"
	"unique"
)

// InternedString is a value object that wraps a unique.Handle[string].
// Rules hold their file paths as interned strings since the same path appears as the target of one
// rule and a prerequisite of another.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString creates a new InternedString from a string.
func NewInternedString(s string) InternedString {
	return InternedString{
		h: unique.Make(s),
	}
}

// String returns the underlying string value.
func (is InternedString) String() string {
	var zero unique.Handle[string]
	if is.h == zero {
		return ""
	}
	return is.h.Value()
}

// IsZero reports whether the value was never set.
func (is InternedString) IsZero() bool {
	var zero unique.Handle[string]
	return is.h == zero
}

// MarshalText implements encoding.TextMarshaler.
func (is InternedString) MarshalText() ([]byte, error) {
	return []byte(is.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (is *InternedString) UnmarshalText(text []byte) error {
	is.h = unique.Make(string(text))
	return nil
}

// Strings converts interned values back to a sorted, deduplicated string slice.
func Strings(values []InternedString) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.String())
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// CompareInterned orders interned strings by their value.
func CompareInterned(a, b InternedString) int {
	return strings.Compare(a.String(), b.String())
}
