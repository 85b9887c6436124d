package query

import (
	"strings"

	"finsight/internal/domain"
	"finsight/internal/engine"
)

// Plan is the intermediate representation of a translated query: group
// columns, summed measure columns, and equals-membership predicates. It is
// rendered to SQL in exactly one place, with quoted identifiers and escaped
// literals, so the IN/AND-only predicate policy is enforced centrally.
type Plan struct {
	Table      string
	Intent     string
	Dimensions []string
	Measures   []string
	Filters    []domain.Filter
}

// SQL renders the plan as a DuckDB aggregation query. When no dimensions are
// requested the GROUP BY is omitted entirely, collapsing the result to a
// single summary row.
func (p *Plan) SQL() string {
	selectParts := make([]string, 0, len(p.Dimensions)+len(p.Measures))
	for _, d := range p.Dimensions {
		selectParts = append(selectParts, engine.QuoteIdent(d))
	}
	for _, m := range p.Measures {
		col := engine.QuoteIdent(m)
		selectParts = append(selectParts, "SUM("+col+") AS "+col)
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(selectParts, ", "))
	b.WriteString(" FROM ")
	b.WriteString(p.Table)

	if len(p.Filters) > 0 {
		predicates := make([]string, 0, len(p.Filters))
		for _, f := range p.Filters {
			values := make([]string, 0, len(f.Values))
			for _, v := range f.Values {
				values = append(values, engine.QuoteLiteral(v))
			}
			predicates = append(predicates,
				engine.QuoteIdent(f.Member)+" IN ("+strings.Join(values, ", ")+")")
		}
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(predicates, " AND "))
	}

	if len(p.Dimensions) > 0 {
		groupParts := make([]string, 0, len(p.Dimensions))
		for _, d := range p.Dimensions {
			groupParts = append(groupParts, engine.QuoteIdent(d))
		}
		b.WriteString(" GROUP BY ")
		b.WriteString(strings.Join(groupParts, ", "))
	}

	return b.String()
}
