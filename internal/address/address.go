// Package address validates and normalizes Ethereum-style donor addresses.
package address

import (
	"regexp"
	"strings"
)

var pattern = regexp.MustCompile(`^(0x)?[0-9a-fA-F]{40}$`)

// Valid reports whether s is a 40 hex character address with an optional
// "0x" prefix. Letter case is ignored; s is not trimmed or otherwise
// normalized first.
func Valid(s string) bool {
	return pattern.MatchString(s)
}

// Normalize lowercases an address for comparison against stored donor
// addresses, which are always lowercase.
// "0xAbC..." -> "0xabc..."
func Normalize(s string) string {
	return strings.ToLower(s)
}
