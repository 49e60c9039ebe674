package product

import (
	"strings"
	"unicode/utf8"
)

// MaxNameLength is the maximum product name length after trimming.
const MaxNameLength = 200

// Name is a validated, trimmed, non-empty product name.
type Name struct {
	value string
}

// NewName creates a Name from raw input. The input is trimmed; an empty or
// over-long result fails with *InvalidNameError.
func NewName(raw string) (Name, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || utf8.RuneCountInString(trimmed) > MaxNameLength {
		return Name{}, &InvalidNameError{Name: raw}
	}
	return Name{value: trimmed}, nil
}

// Value returns the trimmed name.
func (n Name) Value() string { return n.value }

// Equal compares names case-insensitively.
func (n Name) Equal(other Name) bool {
	return strings.EqualFold(n.value, other.value)
}

func (n Name) String() string { return n.value }
