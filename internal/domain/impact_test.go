package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlagSetWithIsCopyOnWrite(t *testing.T) {
	var empty FlagSet

	one := empty.With(FlagApplied)
	assert.False(t, empty.Has(FlagApplied), "original set must stay empty")
	assert.True(t, one.Has(FlagApplied))

	same := one.With(FlagApplied)
	assert.Len(t, same.Slice(), 1, "adding a present flag must not duplicate it")
}

func TestFlagSetSortedNames(t *testing.T) {
	s := FlagSet{}.With(FlagApplied).With(FlagAlreadyInUse).With(FlagCappedByTaxLiability)
	assert.Equal(t, []string{"ALREADY_IN_USE", "CAPPED_BY_TAX_LIABILITY", "APPLIED"}, s.Strings())
}

func TestFlagSetMarshalJSON(t *testing.T) {
	s := FlagSet{}.With(FlagNotAppliedPotential)
	data, err := json.Marshal(s)
	assert.NoError(t, err)
	assert.JSONEq(t, `["NOT_APPLIED_POTENTIAL"]`, string(data))
}

func TestEstimateCopyOnUpdate(t *testing.T) {
	delta := r3(-300, -200, -100)
	original := StrategyImpactEstimate{
		StrategyID:         StrategyAugustaRule,
		Kind:               ModelDeductionRange,
		TaxableIncomeDelta: &delta,
	}

	updated := original.
		WithFlag(FlagCappedByTaxableIncome).
		WithAssumption(Assumption{ID: "X", Category: AssumptionCap, Value: "cap"}).
		WithTaxableIncomeDelta(ZeroRange3()).
		WithNeedsConfirmation()

	assert.False(t, original.Flags.Has(FlagCappedByTaxableIncome))
	assert.Empty(t, original.Assumptions)
	assert.True(t, original.TaxableIncomeDelta.Equal(r3(-300, -200, -100)))
	assert.False(t, original.NeedsConfirmation)

	assert.True(t, updated.Flags.Has(FlagCappedByTaxableIncome))
	assert.Len(t, updated.Assumptions, 1)
	assert.True(t, updated.TaxableIncomeDelta.IsZero())
	assert.True(t, updated.NeedsConfirmation)
}

func TestImpactFlagNames(t *testing.T) {
	tests := []struct {
		flag ImpactFlag
		want string
	}{
		{flag: FlagAlreadyInUse, want: "ALREADY_IN_USE"},
		{flag: FlagCappedByTaxableIncome, want: "CAPPED_BY_TAXABLE_INCOME"},
		{flag: FlagCappedByTaxLiability, want: "CAPPED_BY_TAX_LIABILITY"},
		{flag: FlagNotAppliedNotEligible, want: "NOT_APPLIED_NOT_ELIGIBLE"},
		{flag: FlagNotAppliedPotential, want: "NOT_APPLIED_POTENTIAL"},
		{flag: FlagApplied, want: "APPLIED"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.flag.String())
	}
}
