package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	known := []string{"Year", "Quarter", "Period", "Brand", "Region", "Function",
		"ACT_Net_Revenue", "BUD_Net_Revenue", "VAR_Net_Revenue", "VAR_PCT_Net_Revenue",
		"ACT_SG_and_A_Expenses", "SG_and_A_Expenses"}

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"cube prefix stripped", "Finance.ACT_Net_Revenue", "ACT_Net_Revenue"},
		{"spaces rewritten", "ACT Net Revenue", "ACT_Net_Revenue"},
		{"ampersand rewritten", "Finance.SG&A Expenses", "SG_and_A_Expenses"},
		{"case-insensitive match returns view casing", "act_net_revenue", "ACT_Net_Revenue"},
		{"plain dimension", "Brand", "Brand"},
		{"unknown passes through normalized", "Gross Margin", "Gross_Margin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw, known))
		})
	}
}

func TestNormalizeEmptyKnownColumns(t *testing.T) {
	assert.Equal(t, "Net_Revenue", Normalize("Finance.Net Revenue", nil))
}
