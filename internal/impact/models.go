package impact

import (
	"github.com/shopspring/decimal"

	"github.com/taxlever/taxlever/internal/domain"
)

// MODEL ASSUMPTIONS:
//
// Every estimator below is deterministic and deliberately conservative. The
// ranges come from fixed strategy defaults (per-day rates, participation
// sizes, percentage bands), never from live data. Raw deltas follow the
// <= 0 convention; the registry clamps them against the baseline and the
// application engine clamps again against running totals.

var (
	deferralLimit2025  = decimal.NewFromInt(23500) // employee 401(k) deferral limit
	augustaDayCount    = decimal.NewFromInt(14)    // tax-free rental day cap
	augustaDayRateLow  = decimal.NewFromInt(500)
	augustaDayRateBase = decimal.NewFromInt(750)
	augustaDayRateHigh = decimal.NewFromInt(1000)

	childWageLow      = decimal.NewFromInt(8000)
	childWageBase     = decimal.NewFromInt(12000)
	childWageHigh     = decimal.NewFromInt(15000) // single standard deduction
	childWageCountCap = 3

	sCorpSalaryFloor   = decimal.NewFromInt(50000)
	sCorpSalaryPercent = decimal.NewFromFloat(0.40)
	sCorpSavingsRate   = decimal.NewFromFloat(0.1413) // 15.3% x 92.35%

	costSegDefaultBasis = decimal.NewFromInt(500000)
	costSegBonusRate    = decimal.NewFromFloat(0.60)
	costSegReclassLow   = decimal.NewFromFloat(0.20)
	costSegReclassBase  = decimal.NewFromFloat(0.25)
	costSegReclassHigh  = decimal.NewFromFloat(0.30)

	rtuDefaultFace  = decimal.NewFromInt(100000)
	rtuDiscountLow  = decimal.NewFromFloat(0.08)
	rtuDiscountBase = decimal.NewFromFloat(0.11)
	rtuDiscountHigh = decimal.NewFromFloat(0.15)

	filmDefaultStake = decimal.NewFromInt(250000)
	filmDeductLow    = decimal.NewFromFloat(0.50)
	filmDeductBase   = decimal.NewFromFloat(0.75)
	filmDeductHigh   = decimal.NewFromFloat(1.00)

	givingDefaultGift  = decimal.NewFromInt(100000)
	givingMultipleLow  = decimal.NewFromInt(3)
	givingMultipleBase = decimal.NewFromInt(4)
	givingMultipleHigh = decimal.NewFromInt(5)
)

// reduction builds a delta range from positive magnitudes.
func reduction(small, mid, large decimal.Decimal) domain.Range3 {
	return domain.NewRange3(small.Neg(), mid.Neg(), large.Neg())
}

func incomeEstimate(kind domain.ModelKind, delta domain.Range3, assumptions ...domain.Assumption) domain.StrategyImpactEstimate {
	est := domain.StrategyImpactEstimate{Kind: kind, TaxableIncomeDelta: &delta}
	for _, a := range assumptions {
		est = est.WithAssumption(a)
	}
	return est
}

func liabilityEstimate(delta domain.Range3, assumptions ...domain.Assumption) domain.StrategyImpactEstimate {
	est := domain.StrategyImpactEstimate{Kind: domain.ModelCreditRange, TaxLiabilityDelta: &delta}
	for _, a := range assumptions {
		est = est.WithAssumption(a)
	}
	return est
}

// estimateRetirement401kMax defers the remaining employee 401(k) capacity:
// the annual limit minus contributions already made this year.
func estimateRetirement401kMax(intake domain.NormalizedIntake, _ domain.BaselineTaxTotals) domain.StrategyImpactEstimate {
	capacity := decimal.Max(deferralLimit2025.Sub(intake.Retirement.Employee401kYTD), decimal.Zero)
	return incomeEstimate(domain.ModelDeferralRange,
		reduction(capacity, capacity, capacity),
		defaultAssumption("EMPLOYEE_DEFERRAL_LIMIT", deferralLimit2025),
		conservatism("DEFERRAL_CAPACITY", "remaining capacity = limit minus year-to-date contributions"),
	)
}

// estimateAugustaRule rents the home to the business for up to fourteen
// days at a defaulted per-day market rate.
func estimateAugustaRule(_ domain.NormalizedIntake, _ domain.BaselineTaxTotals) domain.StrategyImpactEstimate {
	return incomeEstimate(domain.ModelDeductionRange,
		reduction(
			augustaDayRateLow.Mul(augustaDayCount),
			augustaDayRateBase.Mul(augustaDayCount),
			augustaDayRateHigh.Mul(augustaDayCount),
		),
		defaultAssumption("RENTAL_DAY_COUNT", augustaDayCount),
		defaultAssumption("RENTAL_DAY_RATE_BASE", augustaDayRateBase),
	)
}

// estimateHireChildren pays each qualifying child a defaulted wage, capped
// at the single standard deduction per child and at business net profit
// overall.
func estimateHireChildren(intake domain.NormalizedIntake, _ domain.BaselineTaxTotals) domain.StrategyImpactEstimate {
	children := intake.Personal.QualifyingChildren
	if children > childWageCountCap {
		children = childWageCountCap
	}
	if children <= 0 || !intake.Business.HasBusiness {
		return incomeEstimate(domain.ModelDeductionRange, domain.ZeroRange3(),
			conservatism("NO_ELIGIBLE_WAGES", "no qualifying children or no business to pay wages from"))
	}
	n := decimal.NewFromInt(int64(children))
	profitCap := decimal.Max(intake.Business.NetProfit, decimal.Zero)
	capTo := func(d decimal.Decimal) decimal.Decimal { return decimal.Min(d, profitCap) }
	return incomeEstimate(domain.ModelDeductionRange,
		reduction(
			capTo(childWageLow.Mul(n)),
			capTo(childWageBase.Mul(n)),
			capTo(childWageHigh.Mul(n)),
		),
		defaultAssumption("WAGE_PER_CHILD_BASE", childWageBase),
		conservatism("WAGE_COUNT_CAP", "at most three children counted toward deductible wages"),
	)
}

// estimateSCorpElection converts the distribution share of pass-through
// profit out of self-employment tax. Reasonable salary stays subject to
// payroll tax, so savings apply only above the salary floor.
func estimateSCorpElection(intake domain.NormalizedIntake, _ domain.BaselineTaxTotals) domain.StrategyImpactEstimate {
	if !intake.Business.HasBusiness || !intake.Business.EntityType.SubjectToSelfEmploymentTax() {
		return liabilityEstimate(domain.ZeroRange3(),
			conservatism("NO_SE_PROFIT", "no pass-through profit subject to self-employment tax"))
	}
	profit := decimal.Max(intake.Business.NetProfit, decimal.Zero)
	salary := decimal.Max(sCorpSalaryFloor, profit.Mul(sCorpSalaryPercent))
	distribution := decimal.Max(profit.Sub(salary), decimal.Zero)
	full := distribution.Mul(sCorpSavingsRate)
	return liabilityEstimate(
		reduction(
			full.Mul(decimal.NewFromFloat(0.50)),
			full.Mul(decimal.NewFromFloat(0.75)),
			full,
		),
		defaultAssumption("REASONABLE_SALARY_FLOOR", sCorpSalaryFloor),
		conservatism("SAVINGS_BAND", "payroll savings banded at 50-100% of the full distribution rate"),
	)
}

// estimateCostSegregation accelerates depreciation on a defaulted property
// basis via a reclassification percentage band and bonus depreciation.
func estimateCostSegregation(_ domain.NormalizedIntake, _ domain.BaselineTaxTotals) domain.StrategyImpactEstimate {
	deduct := func(pct decimal.Decimal) decimal.Decimal {
		return costSegDefaultBasis.Mul(pct).Mul(costSegBonusRate)
	}
	est := incomeEstimate(domain.ModelDeductionRange,
		reduction(deduct(costSegReclassLow), deduct(costSegReclassBase), deduct(costSegReclassHigh)),
		defaultAssumption("PROPERTY_BASIS_DEFAULT", costSegDefaultBasis),
		defaultAssumption("BONUS_DEPRECIATION_RATE", costSegBonusRate.Mul(decimal.NewFromInt(100))),
	)
	// Basis is a default, not intake data.
	return est.WithNeedsConfirmation().WithAssumption(domain.Assumption{
		ID:       "PROPERTY_BASIS_NOT_COLLECTED",
		Category: domain.AssumptionDataGap,
		Value:    "intake does not capture property basis; defaulted to " + fmtMoney(costSegDefaultBasis),
	})
}

// estimateRenewableTaxUnits buys transferable credits at a discount; the
// saving is the discount on a defaulted face amount.
func estimateRenewableTaxUnits(_ domain.NormalizedIntake, _ domain.BaselineTaxTotals) domain.StrategyImpactEstimate {
	return liabilityEstimate(
		reduction(
			rtuDefaultFace.Mul(rtuDiscountLow),
			rtuDefaultFace.Mul(rtuDiscountBase),
			rtuDefaultFace.Mul(rtuDiscountHigh),
		),
		defaultAssumption("CREDIT_FACE_DEFAULT", rtuDefaultFace),
		conservatism("DISCOUNT_BAND", "credit discount banded at 8-15% of face"),
	)
}

// estimateFilmFinancing deducts a banded share of a defaulted production
// stake in year one.
func estimateFilmFinancing(_ domain.NormalizedIntake, _ domain.BaselineTaxTotals) domain.StrategyImpactEstimate {
	return incomeEstimate(domain.ModelDeductionRange,
		reduction(
			filmDefaultStake.Mul(filmDeductLow),
			filmDefaultStake.Mul(filmDeductBase),
			filmDefaultStake.Mul(filmDeductHigh),
		),
		defaultAssumption("PRODUCTION_STAKE_DEFAULT", filmDefaultStake),
	)
}

// estimateLeveragedGiving deducts a multiple of a defaulted charitable
// contribution.
func estimateLeveragedGiving(_ domain.NormalizedIntake, _ domain.BaselineTaxTotals) domain.StrategyImpactEstimate {
	return incomeEstimate(domain.ModelDeductionRange,
		reduction(
			givingDefaultGift.Mul(givingMultipleLow),
			givingDefaultGift.Mul(givingMultipleBase),
			givingDefaultGift.Mul(givingMultipleHigh),
		),
		defaultAssumption("CONTRIBUTION_DEFAULT", givingDefaultGift),
		conservatism("DEDUCTION_MULTIPLE", "deduction multiple banded at 3-5x contribution"),
	)
}
