// Package fold compares user-entered text such as city names and body types
// using full Unicode case folding.
package fold

import (
	"strings"

	"golang.org/x/text/cases"
)

// String returns the case-folded form of s with surrounding spaces removed.
// A Caser keeps state, so a fresh one is built per call.
func String(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Equal reports whether a and b match ignoring case.
func Equal(a, b string) bool {
	return String(a) == String(b)
}
