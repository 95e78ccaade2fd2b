// Package email normalizes and checks student email addresses.
package email

import (
	"regexp"
	"strings"
)

var addressPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Normalize trims and lower-cases an address.
func Normalize(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

// IsValid reports whether addr has a local part, an @ and a dotted domain.
// Deliverability is not checked.
func IsValid(addr string) bool {
	return addressPattern.MatchString(addr)
}
