package domain

// Query intents accepted by the translator. The intent is shape metadata
// produced by the upstream natural-language step; it does not change the
// generated aggregation.
const (
	IntentVariance    = "variance"
	IntentTrend       = "trend"
	IntentComposition = "composition"
	IntentRanking     = "ranking"
	IntentDetail      = "detail"
)

// OperatorEquals is the only supported filter operator: membership over the
// filter's value list.
const OperatorEquals = "equals"

// Filter restricts a query to rows whose member column is in Values.
type Filter struct {
	Member   string   `json:"member"`
	Operator string   `json:"operator"`
	Values   []string `json:"values"`
}

// StructuredQuery is the constrained JSON query consumed by the translator.
// It is constructed per request and consumed exactly once.
type StructuredQuery struct {
	Intent     string   `json:"intent"`
	Measures   []string `json:"measures"`
	Dimensions []string `json:"dimensions"`
	Filters    []Filter `json:"filters"`
}

// Validate checks the query shape: known intent (empty defaults to variance)
// and equals-only filter operators. Field names are deliberately not
// validated — unknown fields pass through normalization and surface later as
// an execution error or empty result.
func (q *StructuredQuery) Validate() error {
	switch q.Intent {
	case "", IntentVariance, IntentTrend, IntentComposition, IntentRanking, IntentDetail:
	default:
		return ErrValidation("unknown intent %q", q.Intent)
	}
	for _, f := range q.Filters {
		if f.Operator != "" && f.Operator != OperatorEquals {
			return ErrValidation("unsupported filter operator %q on member %q (only %q is supported)", f.Operator, f.Member, OperatorEquals)
		}
	}
	return nil
}

// QueryOutput is the tabular result of a translated query: materialized rows,
// scenario totals, and the exact SQL executed (for audit/debugging — never
// re-parsed by the core).
type QueryOutput struct {
	Rows       []map[string]interface{} `json:"rows"`
	Totals     Totals                   `json:"totals"`
	QueryTrace string                   `json:"query_trace"`

	// AssumedPeriod carries the synthesized period keys when the query had no
	// period filter and the default reference-year filter was applied.
	AssumedPeriod []string `json:"assumed_period,omitempty"`
}

// Totals aggregates the scenario measure columns across all returned rows.
// Pointers are nil when the corresponding columns were not part of the
// result, or — for VariancePct — when the budget total is exactly zero.
type Totals struct {
	ACT         *float64 `json:"ACT,omitempty"`
	BUD         *float64 `json:"BUD,omitempty"`
	Variance    *float64 `json:"Variance,omitempty"`
	VariancePct *float64 `json:"VariancePct,omitempty"`
}
