package baseline

import (
	"github.com/shopspring/decimal"

	"github.com/taxlever/taxlever/internal/domain"
)

// PayrollCalculator computes combined payroll and self-employment tax.
//
// Self-employment earnings are 92.35% of pass-through net profit. The
// Social Security wage base is shared between W-2 wages and SE earnings,
// with W-2 wages consuming it first. Medicare has no cap. Additional
// Medicare applies to the combined earned income above the filing-status
// threshold.
type PayrollCalculator struct {
	Year                   int
	SSWageBase             decimal.Decimal
	EmployeeSSRate         decimal.Decimal // W-2 employee share
	SelfEmployedSSRate     decimal.Decimal // both halves
	EmployeeMedicareRate   decimal.Decimal
	SelfEmployedMedicare   decimal.Decimal
	AdditionalMedicareRate decimal.Decimal
	AddlMedicareThresholds map[domain.FilingStatus]decimal.Decimal
	SEEarningsFactor       decimal.Decimal
}

// NewPayrollCalculator2025 creates a payroll calculator with 2025 figures.
func NewPayrollCalculator2025() *PayrollCalculator {
	return &PayrollCalculator{
		Year:                   2025,
		SSWageBase:             decimal.NewFromInt(176100),
		EmployeeSSRate:         decimal.NewFromFloat(0.062),
		SelfEmployedSSRate:     decimal.NewFromFloat(0.124),
		EmployeeMedicareRate:   decimal.NewFromFloat(0.0145),
		SelfEmployedMedicare:   decimal.NewFromFloat(0.029),
		AdditionalMedicareRate: decimal.NewFromFloat(0.009),
		AddlMedicareThresholds: map[domain.FilingStatus]decimal.Decimal{
			domain.Single:                decimal.NewFromInt(200000),
			domain.MarriedFilingJointly:  decimal.NewFromInt(250000),
			domain.MarriedFilingSeparate: decimal.NewFromInt(125000),
			domain.HeadOfHousehold:       decimal.NewFromInt(200000),
		},
		SEEarningsFactor: decimal.NewFromFloat(0.9235),
	}
}

// PayrollResult decomposes the payroll tax computation.
type PayrollResult struct {
	Total             decimal.Decimal
	SelfEmploymentTax decimal.Decimal // SS + Medicare on SE earnings
	// Deductible half of SE tax, tracked as metadata only; it is not fed
	// back into the AGI proxy.
	SelfEmploymentTaxHalf decimal.Decimal
	SEEarnings            decimal.Decimal
}

// Compute calculates payroll/SE tax for the intake's wages and business
// profile.
func (pc *PayrollCalculator) Compute(intake domain.NormalizedIntake) PayrollResult {
	wages := decimal.Max(intake.Personal.W2Income, decimal.Zero)

	seEarnings := decimal.Zero
	if intake.Business.HasBusiness && intake.Business.EntityType.SubjectToSelfEmploymentTax() {
		seEarnings = decimal.Max(intake.Business.NetProfit, decimal.Zero).Mul(pc.SEEarningsFactor)
	}

	// Social Security: W-2 wages consume the wage base first.
	ssWages := decimal.Min(wages, pc.SSWageBase)
	ssTax := ssWages.Mul(pc.EmployeeSSRate)
	remainingBase := decimal.Max(pc.SSWageBase.Sub(ssWages), decimal.Zero)
	seSSTax := decimal.Min(seEarnings, remainingBase).Mul(pc.SelfEmployedSSRate)

	// Medicare: uncapped on both wage types.
	medicareTax := wages.Mul(pc.EmployeeMedicareRate)
	seMedicareTax := seEarnings.Mul(pc.SelfEmployedMedicare)

	// Additional Medicare on combined earned income over the threshold.
	combined := wages.Add(seEarnings)
	addlMedicare := decimal.Zero
	if threshold, ok := pc.AddlMedicareThresholds[intake.Personal.FilingStatus]; ok {
		if combined.GreaterThan(threshold) {
			addlMedicare = combined.Sub(threshold).Mul(pc.AdditionalMedicareRate)
		}
	}

	seTax := seSSTax.Add(seMedicareTax).Round(2)
	total := ssTax.Add(medicareTax).Add(seTax).Add(addlMedicare).Round(2)
	return PayrollResult{
		Total:                 total,
		SelfEmploymentTax:     seTax,
		SelfEmploymentTaxHalf: seTax.Div(decimal.NewFromInt(2)).Round(2),
		SEEarnings:            seEarnings.Round(2),
	}
}
