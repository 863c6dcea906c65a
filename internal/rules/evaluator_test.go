package rules

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxlever/taxlever/internal/domain"
)

func evalIntake() domain.NormalizedIntake {
	return domain.NormalizedIntake{
		Personal: domain.PersonalProfile{
			FilingStatus:       domain.MarriedFilingJointly,
			State:              "TX",
			QualifyingChildren: 2,
			W2Income:           decimal.NewFromInt(150000),
		},
		Business: domain.BusinessProfile{
			HasBusiness: true,
			EntityType:  domain.LLC,
			NetProfit:   decimal.NewFromInt(130000),
		},
	}
}

func row(id domain.StrategyID, group, field string, op domain.Operator, value any) domain.RuleRow {
	return domain.RuleRow{StrategyID: id, RuleGroup: group, FieldPath: field, Operator: op, Value: value}
}

func singleEval(t *testing.T, intake domain.NormalizedIntake, rows []domain.RuleRow) domain.EvaluatedStrategy {
	t.Helper()
	out := Evaluate(intake, rows)
	require.Len(t, out, 1)
	return out[0]
}

func TestEvaluateAllRowsPass(t *testing.T) {
	ev := singleEval(t, evalIntake(), []domain.RuleRow{
		row("s_corp_election", "pass_through", "business.has_business", domain.OpEq, true),
		row("s_corp_election", "pass_through", "business.entity_type", domain.OpIn, []any{"SOLE_PROP", "PARTNERSHIP", "LLC"}),
		row("s_corp_election", "pass_through", "business.net_profit", domain.OpGte, float64(80000)),
	})

	assert.Equal(t, domain.StatusEligible, ev.Status)
	assert.Empty(t, ev.FailedConditions)
	assert.Empty(t, ev.MissingRequired)
}

func TestEvaluateOrAcrossGroups(t *testing.T) {
	// First group fails on income, second passes on ownership.
	ev := singleEval(t, evalIntake(), []domain.RuleRow{
		row("retirement_401k_max", "high_wage", "personal.w2_income", domain.OpGte, float64(500000)),
		row("retirement_401k_max", "owner", "business.has_business", domain.OpEq, true),
	})

	assert.Equal(t, domain.StatusEligible, ev.Status)
}

func TestEvaluateAndWithinGroup(t *testing.T) {
	// One failing row sinks the whole group.
	ev := singleEval(t, evalIntake(), []domain.RuleRow{
		row("hire_children", "family_business", "business.has_business", domain.OpEq, true),
		row("hire_children", "family_business", "personal.qualifying_children", domain.OpGte, float64(5)),
	})

	assert.Equal(t, domain.StatusNotEligible, ev.Status)
	require.Len(t, ev.FailedConditions, 1)
	fc := ev.FailedConditions[0]
	assert.Equal(t, "family_business", fc.RuleGroup)
	assert.Equal(t, "personal.qualifying_children", fc.FieldPath)
	assert.Equal(t, domain.OpGte, fc.Operator)
	assert.Equal(t, float64(2), fc.Actual)
}

func TestEvaluateMissingRequiredYieldsPotential(t *testing.T) {
	ev := singleEval(t, evalIntake(), []domain.RuleRow{
		row("cost_segregation", "property_owner", "business.has_business", domain.OpEq, true),
		row("cost_segregation", "property_owner", "property.basis", domain.OpGte, float64(100000)),
	})

	assert.Equal(t, domain.StatusPotential, ev.Status)
	assert.Empty(t, ev.FailedConditions, "missing data is not a failed condition")
	require.Len(t, ev.MissingRequired, 1)
	assert.Equal(t, "property.basis", ev.MissingRequired[0].FieldPath)
	require.Len(t, ev.MissingRequired[0].RequestedBy, 1)
	assert.Equal(t, "property_owner", ev.MissingRequired[0].RequestedBy[0].RuleGroup)
}

func TestEvaluateMissingFieldDedupedAcrossGroups(t *testing.T) {
	ev := singleEval(t, evalIntake(), []domain.RuleRow{
		row("cost_segregation", "group_a", "property.basis", domain.OpGte, float64(100000)),
		row("cost_segregation", "group_b", "property.basis", domain.OpExists, true),
	})

	assert.Equal(t, domain.StatusPotential, ev.Status)
	require.Len(t, ev.MissingRequired, 1, "one entry per field, not per rule")
	assert.Len(t, ev.MissingRequired[0].RequestedBy, 2)
}

func TestEvaluateMissingOptionalDoesNotBlock(t *testing.T) {
	optional := false
	optRow := row("augusta_rule", "owner", "property.basis", domain.OpExists, true)
	optRow.Required = &optional

	ev := singleEval(t, evalIntake(), []domain.RuleRow{
		row("augusta_rule", "owner", "business.has_business", domain.OpEq, true),
		optRow,
	})

	assert.Equal(t, domain.StatusEligible, ev.Status,
		"missing optional data must not block an otherwise passing group")
}

func TestEvaluatePassingGroupWinsOverMissing(t *testing.T) {
	// One group blocked on missing data, another passes outright: any
	// passing group makes the strategy eligible.
	ev := singleEval(t, evalIntake(), []domain.RuleRow{
		row("film_financing", "accredited", "investor.accredited", domain.OpEq, true),
		row("film_financing", "high_profit", "business.net_profit", domain.OpGte, float64(100000)),
	})

	assert.Equal(t, domain.StatusEligible, ev.Status)
}

func TestEvaluateNotEligibleWhenAllGroupsFail(t *testing.T) {
	ev := singleEval(t, evalIntake(), []domain.RuleRow{
		row("leveraged_giving", "very_high_profit", "business.net_profit", domain.OpGte, float64(500000)),
		row("leveraged_giving", "very_high_w2", "personal.w2_income", domain.OpGte, float64(500000)),
	})

	assert.Equal(t, domain.StatusNotEligible, ev.Status)
	assert.Len(t, ev.FailedConditions, 2)
}

func TestEvaluateOperators(t *testing.T) {
	tests := []struct {
		name string
		r    domain.RuleRow
		want domain.RowStatus
	}{
		{name: "eq bool", r: row("x", "g", "business.has_business", domain.OpEq, true), want: domain.RowPassed},
		{name: "neq string", r: row("x", "g", "business.entity_type", domain.OpNeq, "S_CORP"), want: domain.RowPassed},
		{name: "gte at boundary", r: row("x", "g", "business.net_profit", domain.OpGte, float64(130000)), want: domain.RowPassed},
		{name: "lte failing", r: row("x", "g", "personal.w2_income", domain.OpLte, float64(100000)), want: domain.RowFailed},
		{name: "in miss", r: row("x", "g", "business.entity_type", domain.OpIn, []any{"S_CORP", "C_CORP"}), want: domain.RowFailed},
		{name: "exists on present field", r: row("x", "g", "personal.state", domain.OpExists, true), want: domain.RowPassed},
		{name: "gte against non-numeric value", r: row("x", "g", "personal.state", domain.OpGte, float64(1)), want: domain.RowFailed},
	}

	doc := evalIntake().Document()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evaluateRow(tt.r, doc)
			assert.Equal(t, tt.want, got.Status)
		})
	}
}

func TestEvaluateSortsStrategies(t *testing.T) {
	out := Evaluate(evalIntake(), []domain.RuleRow{
		row("zeta", "g", "business.has_business", domain.OpEq, true),
		row("alpha", "g", "business.has_business", domain.OpEq, true),
	})

	require.Len(t, out, 2)
	assert.Equal(t, domain.StrategyID("alpha"), out[0].StrategyID)
	assert.Equal(t, domain.StrategyID("zeta"), out[1].StrategyID)
}
