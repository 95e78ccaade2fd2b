// Package strings provides string slice helpers for request normalization.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and blank entries, trimming whitespace
// from each element. Order is preserved.
//
//	DedupeAndTrim([]string{"  STU001 ", "STU002", "STU001", ""})
//	// []string{"STU001", "STU002"}
func DedupeAndTrim(values []string) []string {
	return dedupe(values, strings.TrimSpace)
}

// DedupeAndTrimUpper is like DedupeAndTrim but upper-cases each element,
// matching how student identifiers are normalized.
func DedupeAndTrimUpper(values []string) []string {
	return dedupe(values, func(s string) string {
		return strings.ToUpper(strings.TrimSpace(s))
	})
}

func dedupe(values []string, normalize func(string) string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		n := normalize(v)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		result = append(result, n)
	}
	return result
}
