package domain

import "strings"

// SanitizeFieldName rewrites a loosely-specified field or account name into
// the canonical column form used by the cube view: spaces and dashes become
// underscores, '&' becomes '_and_', and runs of underscores collapse to one.
// The same rule is applied when deriving view column names and when
// normalizing incoming query fields, so the two always agree.
func SanitizeFieldName(name string) string {
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "&", "_and_")
	s = strings.ReplaceAll(s, "-", "_")
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return s
}
