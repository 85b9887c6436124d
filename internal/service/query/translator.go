package query

import (
	"strconv"
	"strings"

	"finsight/internal/domain"
	"finsight/internal/engine"
)

// periodDimension is the canonical name of the period column.
const periodDimension = "Period"

// Translator turns a StructuredQuery into an executable Plan. It holds the
// immutable column descriptors captured at view-construction time and the
// reporting year assumed for unscoped queries. Stateless across calls.
type Translator struct {
	columns       []string
	referenceYear int
}

// NewTranslator creates a Translator over the given view columns.
func NewTranslator(columns []string, referenceYear int) *Translator {
	return &Translator{columns: columns, referenceYear: referenceYear}
}

// Translate normalizes the query's fields, expands period expressions, applies
// the default-period policy, and builds the aggregation plan. The returned
// assumed slice carries the synthesized period keys when the query had no
// period filter of its own; it is nil otherwise.
//
// Unknown field names are never rejected here — they pass through normalized
// and fail, if at all, at execution time.
func (t *Translator) Translate(q domain.StructuredQuery) (plan *Plan, assumed []string, err error) {
	if err := q.Validate(); err != nil {
		return nil, nil, err
	}

	intent := q.Intent
	if intent == "" {
		intent = domain.IntentVariance
	}

	measures := make([]string, 0, len(q.Measures))
	for _, m := range q.Measures {
		measures = append(measures, Normalize(m, t.columns))
	}
	dimensions := make([]string, 0, len(q.Dimensions))
	for _, d := range q.Dimensions {
		dimensions = append(dimensions, Normalize(d, t.columns))
	}

	filters := make([]domain.Filter, 0, len(q.Filters)+1)
	hasPeriod := false
	for _, f := range q.Filters {
		member := Normalize(f.Member, t.columns)
		values := f.Values
		if strings.EqualFold(member, periodDimension) {
			hasPeriod = true
			values = expandPeriodValues(values)
		}
		filters = append(filters, domain.Filter{
			Member:   member,
			Operator: domain.OperatorEquals,
			Values:   values,
		})
	}

	// An unscoped query must never silently aggregate across all years:
	// default to the full reference year.
	if !hasPeriod {
		assumed = YearQuarters(strconv.Itoa(t.referenceYear))
		filters = append(filters, domain.Filter{
			Member:   Normalize(periodDimension, t.columns),
			Operator: domain.OperatorEquals,
			Values:   assumed,
		})
	}

	return &Plan{
		Table:      engine.ViewName,
		Intent:     intent,
		Dimensions: dimensions,
		Measures:   measures,
		Filters:    filters,
	}, assumed, nil
}
