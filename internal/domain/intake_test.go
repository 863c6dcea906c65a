package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseFilingStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    FilingStatus
		wantErr bool
	}{
		{in: "SINGLE", want: Single},
		{in: "single", want: Single},
		{in: "  Married_Filing_Jointly ", want: MarriedFilingJointly},
		{in: "MARRIED_FILING_SEPARATELY", want: MarriedFilingSeparate},
		{in: "HEAD_OF_HOUSEHOLD", want: HeadOfHousehold},
		{in: "WIDOWED", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFilingStatus(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEntityTypeSubjectToSelfEmploymentTax(t *testing.T) {
	assert.True(t, SoleProprietorship.SubjectToSelfEmploymentTax())
	assert.True(t, Partnership.SubjectToSelfEmploymentTax())
	assert.True(t, LLC.SubjectToSelfEmploymentTax())
	assert.False(t, SCorp.SubjectToSelfEmploymentTax())
	assert.False(t, CCorp.SubjectToSelfEmploymentTax())
}

func TestUsesStrategy(t *testing.T) {
	intake := NormalizedIntake{StrategiesInUse: []StrategyID{StrategyAugustaRule}}
	assert.True(t, intake.UsesStrategy(StrategyAugustaRule))
	assert.False(t, intake.UsesStrategy(StrategyHireChildren))
}

func TestDocumentShape(t *testing.T) {
	intake := NormalizedIntake{
		Personal: PersonalProfile{
			FilingStatus:       MarriedFilingJointly,
			State:              "TX",
			QualifyingChildren: 2,
			W2Income:           decimal.NewFromInt(150000),
		},
		Business: BusinessProfile{
			HasBusiness: true,
			EntityType:  SoleProprietorship,
			NetProfit:   decimal.NewFromInt(130000),
		},
		Retirement:      RetirementProfile{Employee401kYTD: decimal.NewFromInt(5000)},
		StrategiesInUse: []StrategyID{StrategyAugustaRule},
	}

	doc := intake.Document()

	personal, ok := doc["personal"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "MARRIED_FILING_JOINTLY", personal["filing_status"])
	assert.Equal(t, "TX", personal["state"])
	assert.Equal(t, float64(2), personal["qualifying_children"], "counts surface as float64")
	assert.Equal(t, float64(150000), personal["w2_income"], "money surfaces as float64")

	business, ok := doc["business"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, true, business["has_business"])
	assert.Equal(t, "SOLE_PROP", business["entity_type"])

	inUse, ok := doc["strategies_in_use"].([]any)
	assert.True(t, ok)
	assert.Equal(t, []any{"augusta_rule"}, inUse)
}
