// Package baseline computes the "time zero" tax picture: federal bracket
// and credit math, per-state estimates, and payroll/self-employment tax.
// Everything here is pure and deterministic; the output is the snapshot the
// impact engine revises.
package baseline

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/taxlever/taxlever/internal/domain"
)

// Calculator bundles the federal, state, and payroll calculators. Build one
// with NewCalculator and share it freely; it holds only immutable tables.
type Calculator struct {
	Federal *FederalCalculator
	States  StateTable
	Payroll *PayrollCalculator
}

// NewCalculator creates a calculator with the built-in 2025 tables.
func NewCalculator() *Calculator {
	return &Calculator{
		Federal: NewFederalCalculator2025(),
		States:  DefaultStateTable(),
		Payroll: NewPayrollCalculator2025(),
	}
}

// AGIProxy derives the adjusted-gross-income proxy from the intake:
// max(0, W-2 income + business net profit - 401(k) employee YTD).
func (c *Calculator) AGIProxy(intake domain.NormalizedIntake) decimal.Decimal {
	agi := intake.Personal.W2Income.
		Add(intake.Business.NetProfit).
		Sub(intake.Retirement.Employee401kYTD)
	return decimal.Max(agi, decimal.Zero).Round(2)
}

// ComputeBaseline computes the baseline totals for the intake. It errors
// only on a truly invalid intake shape (unknown filing status), which
// upstream validation should have prevented.
func (c *Calculator) ComputeBaseline(intake domain.NormalizedIntake) (domain.BaselineTaxTotals, domain.BaselineBreakdown, error) {
	if _, ok := c.Federal.Brackets[intake.Personal.FilingStatus]; !ok {
		return domain.BaselineTaxTotals{}, domain.BaselineBreakdown{},
			fmt.Errorf("compute baseline: unknown filing status %q", intake.Personal.FilingStatus)
	}

	agi := c.AGIProxy(intake)
	stdDed := c.Federal.StandardDeduction(intake.Personal.FilingStatus)
	taxableIncome := decimal.Max(agi.Sub(stdDed), decimal.Zero).Round(2)

	ordinaryTax := c.Federal.OrdinaryTax(taxableIncome, intake.Personal.FilingStatus)
	creditAvailable := c.Federal.ChildTaxCredit(agi, intake.Personal.QualifyingChildren, intake.Personal.FilingStatus)
	federalTax, creditUsed, creditUnused := ApplyCredit(ordinaryTax, creditAvailable)

	stateTax, disclosure := c.States.Compute(intake.Personal.State, taxableIncome)
	payroll := c.Payroll.Compute(intake)

	totals := domain.BaselineTaxTotals{
		FederalTax:    decimal.Max(federalTax, decimal.Zero).Round(2),
		StateTax:      decimal.Max(stateTax, decimal.Zero).Round(2),
		PayrollTax:    decimal.Max(payroll.Total, decimal.Zero).Round(2),
		TaxableIncome: taxableIncome,
	}
	totals.TotalTax = totals.FederalTax.Add(totals.StateTax).Add(totals.PayrollTax).Round(2)

	breakdown := domain.BaselineBreakdown{
		AGI:                            agi,
		StandardDeduction:              stdDed,
		FederalTaxBeforeCredit:         ordinaryTax,
		ChildTaxCreditUsed:             creditUsed,
		ChildTaxCreditUnused:           creditUnused,
		SelfEmploymentTax:              payroll.SelfEmploymentTax,
		SelfEmploymentTaxHalfDeduction: payroll.SelfEmploymentTaxHalf,
		StateDisclosure:                disclosure,
	}
	return totals, breakdown, nil
}

// IncomeTaxOn recomputes federal-after-credit and state tax for an
// adjusted taxable income, holding the intake's AGI fixed for the credit
// phase-out. The impact engine uses this to translate taxable-income
// reductions into liability changes as it walks the strategy order.
func (c *Calculator) IncomeTaxOn(intake domain.NormalizedIntake, taxableIncome decimal.Decimal) (federal, state decimal.Decimal) {
	taxable := decimal.Max(taxableIncome, decimal.Zero)
	ordinary := c.Federal.OrdinaryTax(taxable, intake.Personal.FilingStatus)
	credit := c.Federal.ChildTaxCredit(c.AGIProxy(intake), intake.Personal.QualifyingChildren, intake.Personal.FilingStatus)
	after, _, _ := ApplyCredit(ordinary, credit)
	state, _ = c.States.Compute(intake.Personal.State, taxable)
	return after.Round(2), state.Round(2)
}
