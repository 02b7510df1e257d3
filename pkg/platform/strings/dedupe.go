// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
)

// Distinct trims every value and returns the first occurrence of each, in
// input order. Empty values are always dropped; skip drops further values
// (for example placeholder tokens) and may be nil.
//
//	Distinct([]string{" 1001", "2002", "1001 ", ""}, nil) // [1001 2002]
func Distinct(values []string, skip func(string) bool) []string {
	if values == nil {
		return nil
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] || (skip != nil && skip(v)) {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
