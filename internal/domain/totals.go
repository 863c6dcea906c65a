package domain

import "github.com/shopspring/decimal"

// BaselineTaxTotals is the authoritative "time zero" tax snapshot computed
// with no strategies applied. All fields are >= 0 and
// TotalTax = FederalTax + StateTax + PayrollTax. Instances are never mutated
// in place; the application engine derives revised copies.
type BaselineTaxTotals struct {
	FederalTax    decimal.Decimal `json:"federal_tax"`
	StateTax      decimal.Decimal `json:"state_tax"`
	PayrollTax    decimal.Decimal `json:"payroll_tax"`
	TotalTax      decimal.Decimal `json:"total_tax"`
	TaxableIncome decimal.Decimal `json:"taxable_income"`
}

// BaselineBreakdown carries intermediate figures behind the totals for
// audit output. It is informational only; the engines key off
// BaselineTaxTotals.
type BaselineBreakdown struct {
	AGI                    decimal.Decimal `json:"agi"`
	StandardDeduction      decimal.Decimal `json:"standard_deduction"`
	FederalTaxBeforeCredit decimal.Decimal `json:"federal_tax_before_credit"`
	ChildTaxCreditUsed     decimal.Decimal `json:"child_tax_credit_used"`
	ChildTaxCreditUnused   decimal.Decimal `json:"child_tax_credit_unused"`
	SelfEmploymentTax      decimal.Decimal `json:"self_employment_tax"`
	// Deductible half of SE tax. Tracked for disclosure but intentionally
	// not fed back into the AGI proxy, which keeps the baseline estimate
	// on the conservative side.
	SelfEmploymentTaxHalfDeduction decimal.Decimal `json:"se_tax_half_deduction"`
	StateDisclosure                string          `json:"state_disclosure,omitempty"`
}

// RevisedTaxTotals is the immutable result of one application run: the
// untouched baseline, the revised totals after applying strategies, and the
// aggregate deltas as ranges.
type RevisedTaxTotals struct {
	Baseline                BaselineTaxTotals `json:"baseline"`
	Revised                 BaselineTaxTotals `json:"revised"`
	TotalTaxDelta           Range3            `json:"total_tax_delta"`
	TotalTaxableIncomeDelta Range3            `json:"total_taxable_income_delta"`
}
