package query

import (
	"fmt"
	"regexp"
)

// Period patterns are fully anchored: a value like "2025-Q3" is already
// canonical and must pass through untouched rather than being re-expanded.
var (
	quarterYearPattern = regexp.MustCompile(`^\s*Q([1-4])[\s-]*(\d{4})\s*$`)
	yearQuarterPattern = regexp.MustCompile(`^\s*(\d{4})[\s-]*Q([1-4])\s*$`)
	bareYearPattern    = regexp.MustCompile(`^\s*(\d{4})\s*$`)
)

// ExpandPeriod converts a human period expression into canonical period keys.
// "Q3 2025" (or "2025 Q3") becomes ["2025-Q3"]; a bare year becomes all four
// of its quarter keys; anything else is passed through unchanged.
func ExpandPeriod(value string) []string {
	if m := quarterYearPattern.FindStringSubmatch(value); m != nil {
		return []string{m[2] + "-Q" + m[1]}
	}
	if m := yearQuarterPattern.FindStringSubmatch(value); m != nil {
		return []string{m[1] + "-Q" + m[2]}
	}
	if m := bareYearPattern.FindStringSubmatch(value); m != nil {
		return YearQuarters(m[1])
	}
	return []string{value}
}

// YearQuarters returns the four canonical quarter keys of a year.
func YearQuarters(year string) []string {
	keys := make([]string, 4)
	for q := 1; q <= 4; q++ {
		keys[q-1] = fmt.Sprintf("%s-Q%d", year, q)
	}
	return keys
}

// expandPeriodValues expands every element of a filter value list, flattening
// one-to-many expansions into the surrounding list.
func expandPeriodValues(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, ExpandPeriod(v)...)
	}
	return out
}
