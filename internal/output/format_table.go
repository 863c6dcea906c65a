package output

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/taxlever/taxlever/internal/domain"
	"github.com/taxlever/taxlever/internal/impact"
)

// TableFormatter formats a projection as a console table
type TableFormatter struct{}

// Format generates a formatted console summary for a projection
func (tf *TableFormatter) Format(p *impact.Projection) string {
	var sb strings.Builder

	sb.WriteString("TAX STRATEGY PROJECTION\n")
	sb.WriteString(strings.Repeat("=", 78) + "\n")
	sb.WriteString(fmt.Sprintf("Run: %s\n\n", p.RunID))

	sb.WriteString("BASELINE\n")
	sb.WriteString(strings.Repeat("-", 78) + "\n")
	tf.writeTotals(&sb, p.Baseline)

	sb.WriteString("\nAFTER CORE STRATEGIES\n")
	sb.WriteString(strings.Repeat("-", 78) + "\n")
	tf.writeTotals(&sb, p.Core.Revised.Revised)
	sb.WriteString(fmt.Sprintf("  Total tax change:       %s\n", p.Core.Revised.TotalTaxDelta))
	sb.WriteString(fmt.Sprintf("  Taxable income change:  %s\n", p.Core.Revised.TotalTaxableIncomeDelta))

	sb.WriteString("\nSTRATEGIES\n")
	sb.WriteString(strings.Repeat("-", 78) + "\n")
	sb.WriteString(fmt.Sprintf("%-26s %-14s %-38s\n", "Strategy", "Status", "Flags"))
	for _, est := range p.Core.Impacts {
		sb.WriteString(fmt.Sprintf("%-26s %-14s %-38s\n",
			est.StrategyID, est.Status, strings.Join(est.Flags.Strings(), ", ")))
	}

	if len(p.WhatIf) > 0 {
		sb.WriteString("\nWHAT-IF SCENARIOS (marginal tax savings over core)\n")
		sb.WriteString(strings.Repeat("-", 78) + "\n")
		for _, w := range p.WhatIf {
			sb.WriteString(fmt.Sprintf("%-26s %s\n", w.StrategyID, w.MarginalTaxSavings))
		}
	}

	sb.WriteString(strings.Repeat("=", 78) + "\n")
	return sb.String()
}

func (tf *TableFormatter) writeTotals(sb *strings.Builder, t domain.BaselineTaxTotals) {
	sb.WriteString(fmt.Sprintf("  Taxable income:  %s\n", tf.money(t.TaxableIncome)))
	sb.WriteString(fmt.Sprintf("  Federal tax:     %s\n", tf.money(t.FederalTax)))
	sb.WriteString(fmt.Sprintf("  State tax:       %s\n", tf.money(t.StateTax)))
	sb.WriteString(fmt.Sprintf("  Payroll tax:     %s\n", tf.money(t.PayrollTax)))
	sb.WriteString(fmt.Sprintf("  Total tax:       %s\n", tf.money(t.TotalTax)))
}

func (tf *TableFormatter) money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
