package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finsight/internal/domain"
)

var viewColumns = []string{
	"Year", "Quarter", "Period", "Brand", "Region", "Function",
	"ACT_Net_Revenue", "BUD_Net_Revenue", "VAR_Net_Revenue", "VAR_PCT_Net_Revenue",
}

func TestTranslateDefaultsPeriodToReferenceYear(t *testing.T) {
	tr := NewTranslator(viewColumns, 2025)

	plan, assumed, err := tr.Translate(domain.StructuredQuery{
		Measures:   []string{"ACT_Net_Revenue"},
		Dimensions: []string{"Brand"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-Q1", "2025-Q2", "2025-Q3", "2025-Q4"}, assumed)
	require.Len(t, plan.Filters, 1)
	assert.Equal(t, "Period", plan.Filters[0].Member)
	assert.Equal(t, assumed, plan.Filters[0].Values)
}

func TestTranslateHonorsConfiguredReferenceYear(t *testing.T) {
	tr := NewTranslator(viewColumns, 2023)

	_, assumed, err := tr.Translate(domain.StructuredQuery{Measures: []string{"ACT_Net_Revenue"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-Q1", "2023-Q2", "2023-Q3", "2023-Q4"}, assumed)
}

func TestTranslateExpandsPeriodFilter(t *testing.T) {
	tr := NewTranslator(viewColumns, 2025)

	plan, assumed, err := tr.Translate(domain.StructuredQuery{
		Measures: []string{"Finance.ACT_Net_Revenue"},
		Filters: []domain.Filter{
			{Member: "Finance.Period", Operator: "equals", Values: []string{"Q3 2025", "2024"}},
		},
	})
	require.NoError(t, err)

	assert.Nil(t, assumed, "explicit period filter must not synthesize a default")
	require.Len(t, plan.Filters, 1)
	assert.Equal(t, "Period", plan.Filters[0].Member)
	assert.Equal(t,
		[]string{"2025-Q3", "2024-Q1", "2024-Q2", "2024-Q3", "2024-Q4"},
		plan.Filters[0].Values)
}

func TestTranslateNonPeriodFilterValuesUntouched(t *testing.T) {
	tr := NewTranslator(viewColumns, 2025)

	plan, _, err := tr.Translate(domain.StructuredQuery{
		Measures: []string{"ACT_Net_Revenue"},
		Filters: []domain.Filter{
			{Member: "Region", Values: []string{"2025"}},
		},
	})
	require.NoError(t, err)

	// "2025" is a region value here, not a period expression.
	require.Len(t, plan.Filters, 2)
	assert.Equal(t, []string{"2025"}, plan.Filters[0].Values)
	assert.Equal(t, "Period", plan.Filters[1].Member)
}

func TestTranslateIntentDefaultsToVariance(t *testing.T) {
	tr := NewTranslator(viewColumns, 2025)

	plan, _, err := tr.Translate(domain.StructuredQuery{Measures: []string{"ACT_Net_Revenue"}})
	require.NoError(t, err)
	assert.Equal(t, domain.IntentVariance, plan.Intent)
}

func TestTranslateIntentDoesNotChangeSQL(t *testing.T) {
	tr := NewTranslator(viewColumns, 2025)

	q := domain.StructuredQuery{
		Measures:   []string{"ACT_Net_Revenue"},
		Dimensions: []string{"Brand"},
	}

	var sqls []string
	for _, intent := range []string{domain.IntentVariance, domain.IntentTrend, domain.IntentRanking} {
		q.Intent = intent
		plan, _, err := tr.Translate(q)
		require.NoError(t, err)
		sqls = append(sqls, plan.SQL())
	}
	assert.Equal(t, sqls[0], sqls[1])
	assert.Equal(t, sqls[0], sqls[2])
}

func TestTranslateRejectsUnknownIntent(t *testing.T) {
	tr := NewTranslator(viewColumns, 2025)

	_, _, err := tr.Translate(domain.StructuredQuery{Intent: "pivot"})
	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestTranslateRejectsUnsupportedOperator(t *testing.T) {
	tr := NewTranslator(viewColumns, 2025)

	_, _, err := tr.Translate(domain.StructuredQuery{
		Filters: []domain.Filter{{Member: "Brand", Operator: "gt", Values: []string{"X"}}},
	})
	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Error(), "gt")
}

func TestTranslateUnknownFieldsPassThrough(t *testing.T) {
	tr := NewTranslator(viewColumns, 2025)

	plan, _, err := tr.Translate(domain.StructuredQuery{
		Measures: []string{"Gross Margin"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Gross_Margin"}, plan.Measures)
}
