// Package query translates structured analytical queries into aggregation SQL
// over the cube view and executes them.
package query

import (
	"strings"

	"finsight/internal/domain"
)

// Normalize maps a loosely-specified field reference to a canonical view
// column. A leading "<Cube>." qualifier is stripped, punctuation is rewritten
// by the shared field-name rule, and the result is matched case-insensitively
// against the known columns so the returned name carries the view's exact
// casing. Unknown fields come back normalized but unmatched — they are not
// rejected here and surface later as an empty result or an execution error.
func Normalize(raw string, known []string) string {
	name := raw
	if _, rest, ok := strings.Cut(name, "."); ok {
		name = rest
	}
	name = domain.SanitizeFieldName(name)

	for _, col := range known {
		if strings.EqualFold(col, name) {
			return col
		}
	}
	return name
}
