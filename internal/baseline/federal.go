package baseline

import (
	"github.com/shopspring/decimal"

	"github.com/taxlever/taxlever/internal/domain"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Federal brackets: 2025 tables for all four filing statuses.
//    - No inflation indexing.
//    - Standard deduction: 15,000 single / 30,000 MFJ / 15,000 MFS / 22,500 HOH.
//
// 2. Child Tax Credit: simplified nonrefundable model.
//    - $2,000 per qualifying child.
//    - Phase-out: $50 reduction per $1,000 (rounded up) of AGI over the
//      filing-status threshold (400k MFJ, 200k otherwise), floored at 0.
//
// 3. All amounts rounded to cents at computation boundaries.

// TaxBracket is one marginal bracket: income up to UpperBound (exclusive of
// the previous bracket's upper bound) taxed at Rate. Unbounded marks the
// open-ended top bracket.
type TaxBracket struct {
	UpperBound decimal.Decimal
	Rate       decimal.Decimal
	Unbounded  bool
}

// FederalCalculator computes ordinary federal tax and the simplified child
// tax credit for all filing statuses.
type FederalCalculator struct {
	Year               int
	StandardDeductions map[domain.FilingStatus]decimal.Decimal
	Brackets           map[domain.FilingStatus][]TaxBracket
	CTCPerChild        decimal.Decimal
	CTCPhaseOut        map[domain.FilingStatus]decimal.Decimal
	CTCReductionPer1k  decimal.Decimal
}

func bracket(upper int64, rate float64) TaxBracket {
	return TaxBracket{UpperBound: decimal.NewFromInt(upper), Rate: decimal.NewFromFloat(rate)}
}

func topBracket(rate float64) TaxBracket {
	return TaxBracket{Rate: decimal.NewFromFloat(rate), Unbounded: true}
}

// NewFederalCalculator2025 creates a federal calculator with 2025 tables.
func NewFederalCalculator2025() *FederalCalculator {
	return &FederalCalculator{
		Year: 2025,
		StandardDeductions: map[domain.FilingStatus]decimal.Decimal{
			domain.Single:                decimal.NewFromInt(15000),
			domain.MarriedFilingJointly:  decimal.NewFromInt(30000),
			domain.MarriedFilingSeparate: decimal.NewFromInt(15000),
			domain.HeadOfHousehold:       decimal.NewFromInt(22500),
		},
		Brackets: map[domain.FilingStatus][]TaxBracket{
			domain.Single: {
				bracket(11925, 0.10), bracket(48475, 0.12), bracket(103350, 0.22),
				bracket(197300, 0.24), bracket(250525, 0.32), bracket(626350, 0.35),
				topBracket(0.37),
			},
			domain.MarriedFilingJointly: {
				bracket(23850, 0.10), bracket(96950, 0.12), bracket(206700, 0.22),
				bracket(394600, 0.24), bracket(501050, 0.32), bracket(751600, 0.35),
				topBracket(0.37),
			},
			domain.MarriedFilingSeparate: {
				bracket(11925, 0.10), bracket(48475, 0.12), bracket(103350, 0.22),
				bracket(197300, 0.24), bracket(250525, 0.32), bracket(375800, 0.35),
				topBracket(0.37),
			},
			domain.HeadOfHousehold: {
				bracket(17000, 0.10), bracket(64850, 0.12), bracket(103350, 0.22),
				bracket(197300, 0.24), bracket(250500, 0.32), bracket(626350, 0.35),
				topBracket(0.37),
			},
		},
		CTCPerChild: decimal.NewFromInt(2000),
		CTCPhaseOut: map[domain.FilingStatus]decimal.Decimal{
			domain.Single:                decimal.NewFromInt(200000),
			domain.MarriedFilingJointly:  decimal.NewFromInt(400000),
			domain.MarriedFilingSeparate: decimal.NewFromInt(200000),
			domain.HeadOfHousehold:       decimal.NewFromInt(200000),
		},
		CTCReductionPer1k: decimal.NewFromInt(50),
	}
}

// StandardDeduction returns the deduction for the filing status.
func (fc *FederalCalculator) StandardDeduction(status domain.FilingStatus) decimal.Decimal {
	return fc.StandardDeductions[status]
}

// OrdinaryTax integrates the marginal bracket table over taxableIncome.
// Supports arbitrary bracket counts; the final bracket may be unbounded.
func (fc *FederalCalculator) OrdinaryTax(taxableIncome decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	tax := decimal.Zero
	prevUpper := decimal.Zero
	for _, b := range fc.Brackets[status] {
		if taxableIncome.LessThanOrEqual(prevUpper) {
			break
		}
		upper := taxableIncome
		if !b.Unbounded {
			upper = decimal.Min(taxableIncome, b.UpperBound)
		}
		span := upper.Sub(prevUpper)
		if span.GreaterThan(decimal.Zero) {
			tax = tax.Add(span.Mul(b.Rate))
		}
		if b.Unbounded {
			break
		}
		prevUpper = b.UpperBound
	}
	return tax.Round(2)
}

// ChildTaxCredit computes the simplified nonrefundable credit available at
// the given AGI, before applying it against any tax.
func (fc *FederalCalculator) ChildTaxCredit(agi decimal.Decimal, qualifyingChildren int, status domain.FilingStatus) decimal.Decimal {
	if qualifyingChildren <= 0 {
		return decimal.Zero
	}
	credit := fc.CTCPerChild.Mul(decimal.NewFromInt(int64(qualifyingChildren)))
	threshold := fc.CTCPhaseOut[status]
	if agi.GreaterThan(threshold) {
		over := agi.Sub(threshold)
		// $50 per $1,000 over the threshold, partial thousands count whole.
		thousands := over.Div(decimal.NewFromInt(1000)).Ceil()
		credit = credit.Sub(thousands.Mul(fc.CTCReductionPer1k))
	}
	if credit.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return credit.Round(2)
}

// ApplyCredit applies a nonrefundable credit against tax and returns the
// remaining tax, the credit used, and the unused portion.
func ApplyCredit(tax, available decimal.Decimal) (after, used, unused decimal.Decimal) {
	used = decimal.Min(tax, available)
	after = tax.Sub(used)
	unused = available.Sub(used)
	return after, used, unused
}
