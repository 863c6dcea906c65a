// Package impact holds the per-strategy impact models and the ordered,
// clamped application engine that turns eligibility verdicts into a revised
// tax picture.
package impact

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/taxlever/taxlever/internal/domain"
)

// Estimator is one strategy's pure impact model. It sees the intake and the
// baseline snapshot and produces a conservative range estimate; strategy id
// and eligibility status are attached by the registry.
type Estimator func(intake domain.NormalizedIntake, baseline domain.BaselineTaxTotals) domain.StrategyImpactEstimate

// Registry is an immutable estimator lookup table, explicitly constructed
// and passed in rather than held as package state. It is total: an id it
// cannot map falls back to the zero-impact unknown_range model.
type Registry struct {
	catalog    domain.Catalog
	estimators map[domain.StrategyID]Estimator
}

// NewRegistry builds a registry with the built-in models for the catalog.
func NewRegistry(catalog domain.Catalog) *Registry {
	return &Registry{
		catalog: catalog,
		estimators: map[domain.StrategyID]Estimator{
			domain.StrategyRetirement401kMax: estimateRetirement401kMax,
			domain.StrategyAugustaRule:       estimateAugustaRule,
			domain.StrategyHireChildren:      estimateHireChildren,
			domain.StrategySCorpElection:     estimateSCorpElection,
			domain.StrategyCostSegregation:   estimateCostSegregation,
			domain.StrategyRenewableTaxUnits: estimateRenewableTaxUnits,
			domain.StrategyFilmFinancing:     estimateFilmFinancing,
			domain.StrategyLeveragedGiving:   estimateLeveragedGiving,
		},
	}
}

// Estimate produces the impact estimate for a strategy. The pipeline is
// uniform for every model: run the strategy-specific estimator, clamp raw
// deltas against the baseline, then zero everything if the strategy is
// already in the taxpayer's baseline.
func (r *Registry) Estimate(id domain.StrategyID, status domain.EvaluationStatus, intake domain.NormalizedIntake, baseline domain.BaselineTaxTotals, alreadyInUse bool) domain.StrategyImpactEstimate {
	est, ok := r.estimate(id, intake, baseline)
	if !ok {
		est = unknownRangeEstimate("no impact model registered for strategy id")
	}
	est.StrategyID = id
	est.Status = status

	est = clampAgainstBaseline(est, baseline)

	if alreadyInUse {
		est = zeroForAlreadyInUse(est)
	}
	return est
}

func (r *Registry) estimate(id domain.StrategyID, intake domain.NormalizedIntake, baseline domain.BaselineTaxTotals) (domain.StrategyImpactEstimate, bool) {
	fn, ok := r.estimators[id]
	if !ok {
		return domain.StrategyImpactEstimate{}, false
	}
	return fn(intake, baseline), true
}

// unknownRangeEstimate is the total fallback: zero impact, flagged for
// confirmation, with the unmapped reason recorded as a data gap.
func unknownRangeEstimate(reason string) domain.StrategyImpactEstimate {
	zero := domain.ZeroRange3()
	est := domain.StrategyImpactEstimate{
		Kind:               domain.ModelUnknownRange,
		TaxableIncomeDelta: &zero,
		NeedsConfirmation:  true,
	}
	return est.WithAssumption(domain.Assumption{
		ID:       "UNMAPPED_STRATEGY",
		Category: domain.AssumptionDataGap,
		Value:    reason,
	})
}

// clampAgainstBaseline caps raw deltas so they cannot drive the baseline
// quantity they reduce below zero. A clamp that actually bites leaves a
// flag and a CAP assumption recording the ceiling used.
func clampAgainstBaseline(est domain.StrategyImpactEstimate, baseline domain.BaselineTaxTotals) domain.StrategyImpactEstimate {
	if est.TaxableIncomeDelta != nil {
		clamped := est.TaxableIncomeDelta.FloorAt(baseline.TaxableIncome.Neg())
		if !clamped.Equal(*est.TaxableIncomeDelta) {
			est = est.WithTaxableIncomeDelta(clamped).
				WithFlag(domain.FlagCappedByTaxableIncome).
				WithAssumption(domain.Assumption{
					ID:       "CAPPED_BY_BASELINE_TAXABLE_INCOME",
					Category: domain.AssumptionCap,
					Value:    baseline.TaxableIncome.StringFixed(2),
				})
		}
	}
	if est.TaxLiabilityDelta != nil {
		clamped := est.TaxLiabilityDelta.FloorAt(baseline.TotalTax.Neg())
		if !clamped.Equal(*est.TaxLiabilityDelta) {
			est = est.WithTaxLiabilityDelta(clamped).
				WithFlag(domain.FlagCappedByTaxLiability).
				WithAssumption(domain.Assumption{
					ID:       "CAPPED_BY_BASELINE_TAX_LIABILITY",
					Category: domain.AssumptionCap,
					Value:    baseline.TotalTax.StringFixed(2),
				})
		}
	}
	return est
}

// zeroForAlreadyInUse overrides an estimate to a zero increment on every
// applicable field. Running after the model keeps the zeroing logic uniform
// across strategies: the strategy's effect is already captured in the
// taxpayer's baseline.
func zeroForAlreadyInUse(est domain.StrategyImpactEstimate) domain.StrategyImpactEstimate {
	if est.TaxableIncomeDelta != nil {
		est = est.WithTaxableIncomeDelta(domain.ZeroRange3())
	}
	if est.TaxLiabilityDelta != nil {
		est = est.WithTaxLiabilityDelta(domain.ZeroRange3())
	}
	return est.WithFlag(domain.FlagAlreadyInUse).
		WithAssumption(domain.Assumption{
			ID:       "ALREADY_IN_BASELINE",
			Category: domain.AssumptionInteraction,
			Value:    "strategy reported as in use; incremental impact set to zero",
		})
}

func defaultAssumption(id string, v decimal.Decimal) domain.Assumption {
	return domain.Assumption{ID: id, Category: domain.AssumptionDefault, Value: v.StringFixed(2)}
}

func conservatism(id, note string) domain.Assumption {
	return domain.Assumption{ID: id, Category: domain.AssumptionConservatism, Value: note}
}

func fmtMoney(d decimal.Decimal) string {
	return fmt.Sprintf("$%s", d.StringFixed(2))
}
