package baseline

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// State tax is a documented estimate, not a bracket-accurate computation.
// Federal taxable income stands in for each state's own taxable-income
// definition. Three structural kinds cover the state landscape:
//
//   none   — no individual income tax
//   flat   — single rate on the whole base
//   hybrid — two-rate progressive estimate: base up to Threshold at Rate,
//            the excess at TopRate
//
// Hybrid results carry a disclosure string so downstream rendering can
// surface the approximation.

// StateTaxKind is the structural kind of a state's model.
type StateTaxKind string

const (
	StateTaxNone   StateTaxKind = "none"
	StateTaxFlat   StateTaxKind = "flat"
	StateTaxHybrid StateTaxKind = "hybrid"
)

// StateTaxModel describes one state's estimate parameters.
type StateTaxModel struct {
	Kind      StateTaxKind
	Rate      decimal.Decimal // flat rate, or hybrid rate below Threshold
	Threshold decimal.Decimal // hybrid only
	TopRate   decimal.Decimal // hybrid only, rate above Threshold
}

// StateTable maps two-letter state codes to their models. Constructed once
// and passed in; never mutated.
type StateTable map[string]StateTaxModel

func flatState(rate float64) StateTaxModel {
	return StateTaxModel{Kind: StateTaxFlat, Rate: decimal.NewFromFloat(rate)}
}

func hybridState(threshold int64, rate, topRate float64) StateTaxModel {
	return StateTaxModel{
		Kind:      StateTaxHybrid,
		Rate:      decimal.NewFromFloat(rate),
		Threshold: decimal.NewFromInt(threshold),
		TopRate:   decimal.NewFromFloat(topRate),
	}
}

// DefaultStateTable returns the built-in 2025 estimate table for all fifty
// states plus DC. Rates are rounded published rates; hybrid thresholds are
// coarse mid-bracket cutovers.
func DefaultStateTable() StateTable {
	none := StateTaxModel{Kind: StateTaxNone}
	return StateTable{
		"AK": none, "FL": none, "NV": none, "NH": none, "SD": none,
		"TN": none, "TX": none, "WA": none, "WY": none,

		"AZ": flatState(0.025), "CO": flatState(0.044), "GA": flatState(0.0539),
		"ID": flatState(0.05695), "IL": flatState(0.0495), "IN": flatState(0.0305),
		"IA": flatState(0.038), "KY": flatState(0.04), "LA": flatState(0.03),
		"MA": flatState(0.05), "MI": flatState(0.0425), "MS": flatState(0.047),
		"NC": flatState(0.045), "PA": flatState(0.0307), "UT": flatState(0.0465),

		"AL": hybridState(3000, 0.04, 0.05),
		"AR": hybridState(4400, 0.02, 0.039),
		"CA": hybridState(70000, 0.04, 0.093),
		"CT": hybridState(100000, 0.05, 0.0699),
		"DC": hybridState(60000, 0.06, 0.0895),
		"DE": hybridState(60000, 0.039, 0.066),
		"HI": hybridState(48000, 0.055, 0.079),
		"KS": hybridState(30000, 0.052, 0.0558),
		"MD": hybridState(100000, 0.0475, 0.0575),
		"ME": hybridState(61600, 0.058, 0.0715),
		"MN": hybridState(100000, 0.068, 0.0985),
		"MO": hybridState(20000, 0.02, 0.048),
		"MT": hybridState(20500, 0.047, 0.059),
		"ND": hybridState(44725, 0.0195, 0.025),
		"NE": hybridState(37130, 0.0351, 0.0584),
		"NJ": hybridState(75000, 0.035, 0.0897),
		"NM": hybridState(16000, 0.032, 0.059),
		"NY": hybridState(80650, 0.055, 0.0685),
		"OH": hybridState(26050, 0.0275, 0.035),
		"OK": hybridState(7200, 0.03, 0.0475),
		"OR": hybridState(10200, 0.0675, 0.099),
		"RI": hybridState(77450, 0.0375, 0.0599),
		"SC": hybridState(16680, 0.03, 0.064),
		"VA": hybridState(17000, 0.0475, 0.0575),
		"VT": hybridState(45400, 0.0335, 0.0875),
		"WI": hybridState(29370, 0.0442, 0.0765),
		"WV": hybridState(10000, 0.03, 0.0482),
	}
}

// Compute estimates state tax on the taxable base for the given state code.
// Unknown states estimate to zero with a disclosure so the gap is visible
// downstream rather than silently dropped.
func (t StateTable) Compute(state string, taxableBase decimal.Decimal) (decimal.Decimal, string) {
	code := strings.ToUpper(strings.TrimSpace(state))
	model, ok := t[code]
	if !ok {
		return decimal.Zero, fmt.Sprintf("no state tax model for %q; state tax estimated at $0", code)
	}
	if taxableBase.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ""
	}
	switch model.Kind {
	case StateTaxNone:
		return decimal.Zero, ""
	case StateTaxFlat:
		return taxableBase.Mul(model.Rate).Round(2), ""
	case StateTaxHybrid:
		below := decimal.Min(taxableBase, model.Threshold)
		tax := below.Mul(model.Rate)
		if taxableBase.GreaterThan(model.Threshold) {
			tax = tax.Add(taxableBase.Sub(model.Threshold).Mul(model.TopRate))
		}
		disclosure := fmt.Sprintf(
			"%s state tax is a two-rate progressive estimate (%s%% up to %s, %s%% above), not a full bracket computation",
			code,
			model.Rate.Mul(decimal.NewFromInt(100)).StringFixed(2),
			model.Threshold.StringFixed(0),
			model.TopRate.Mul(decimal.NewFromInt(100)).StringFixed(2),
		)
		return tax.Round(2), disclosure
	}
	return decimal.Zero, ""
}
