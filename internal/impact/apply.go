package impact

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/taxlever/taxlever/internal/baseline"
	"github.com/taxlever/taxlever/internal/domain"
)

// Engine orders and sequentially applies eligible strategy impacts against
// the baseline, producing a revised tax picture. Strategies are processed
// in catalog display order (ties lexicographic by id); within one run each
// step reads and mutates a running total the next step depends on, which is
// the only semantically load-bearing ordering in the system.
type Engine struct {
	Calc     *baseline.Calculator
	Catalog  domain.Catalog
	Registry *Registry
}

// NewEngine creates an application engine over the given tables.
func NewEngine(calc *baseline.Calculator, catalog domain.Catalog, registry *Registry) *Engine {
	return &Engine{Calc: calc, Catalog: catalog, Registry: registry}
}

// ApplyResult is the outcome of one application run.
type ApplyResult struct {
	Impacts []domain.StrategyImpactEstimate `json:"impacts"`
	Revised domain.RevisedTaxTotals         `json:"revised_totals"`
}

// Apply runs the per-strategy state machine over the evaluations.
// Strategies outside applySet are returned unapplied; POTENTIAL strategies
// proceed only when applyPotential is true; income gates always test the
// ORIGINAL baseline taxable income so gate outcomes are independent of
// application order. Taxable-income deltas clamp against the running
// revised taxable income, liability deltas against the running
// federal+state income tax.
func (e *Engine) Apply(intake domain.NormalizedIntake, base domain.BaselineTaxTotals, evals []domain.EvaluatedStrategy, applyPotential bool, applySet []domain.StrategyID) ApplyResult {
	evalByID := make(map[domain.StrategyID]domain.EvaluatedStrategy, len(evals))
	for _, ev := range evals {
		evalByID[ev.StrategyID] = ev
	}
	selected := make(map[domain.StrategyID]bool, len(applySet))
	for _, id := range applySet {
		selected[id] = true
	}

	runningTaxable := base.TaxableIncome
	runningFederal := base.FederalTax
	runningState := base.StateTax
	payroll := base.PayrollTax
	incomeAgg := domain.ZeroRange3()
	taxAgg := domain.ZeroRange3()

	impacts := make([]domain.StrategyImpactEstimate, 0, len(evals))
	for _, id := range e.orderStrategies(evalByID) {
		ev := evalByID[id]
		est := e.Registry.Estimate(id, ev.Status, intake, base, intake.UsesStrategy(id))

		// Not selected by the caller: estimate returned unmodified.
		if !selected[id] {
			impacts = append(impacts, est.WithFlag(domain.FlagNotAppliedPotential))
			continue
		}

		// Eligibility gate.
		switch ev.Status {
		case domain.StatusNotEligible:
			impacts = append(impacts, est.WithFlag(domain.FlagNotAppliedNotEligible))
			continue
		case domain.StatusPotential:
			if !applyPotential {
				impacts = append(impacts, est.WithFlag(domain.FlagNotAppliedPotential))
				continue
			}
		}

		// Income gate, always against the original baseline.
		if entry, ok := e.Catalog.Lookup(id); ok && entry.MinBaselineTaxableIncome != nil {
			if base.TaxableIncome.LessThan(*entry.MinBaselineTaxableIncome) {
				est = est.WithFlag(domain.FlagNotAppliedPotential).
					WithNeedsConfirmation().
					WithAssumption(domain.Assumption{
						ID:       "INCOME_GATE_NOT_MET",
						Category: domain.AssumptionConservatism,
						Value:    "requires baseline taxable income of at least " + fmtMoney(*entry.MinBaselineTaxableIncome),
					})
				impacts = append(impacts, est)
				continue
			}
		}

		// Taxable-income application against the running revised base.
		if est.TaxableIncomeDelta != nil {
			pre := *est.TaxableIncomeDelta
			clamped := pre.FloorAt(runningTaxable.Neg())
			if !clamped.Equal(pre) {
				est = est.WithTaxableIncomeDelta(clamped).
					WithFlag(domain.FlagCappedByTaxableIncome).
					WithAssumption(domain.Assumption{
						ID:       "CAPPED_BY_REMAINING_TAXABLE_INCOME",
						Category: domain.AssumptionCap,
						Value:    runningTaxable.StringFixed(2),
					})
			}
			incomeAgg = incomeAgg.Add(clamped)

			fed0, st0 := e.Calc.IncomeTaxOn(intake, runningTaxable)
			tax0 := fed0.Add(st0)
			deltaAt := func(c decimal.Decimal) decimal.Decimal {
				f, s := e.Calc.IncomeTaxOn(intake, runningTaxable.Add(c))
				return f.Add(s).Sub(tax0)
			}
			taxAgg = taxAgg.Add(domain.NewRange3(deltaAt(clamped.Low), deltaAt(clamped.Base), deltaAt(clamped.High)))

			newTaxable := runningTaxable.Add(clamped.Base)
			fed1, st1 := e.Calc.IncomeTaxOn(intake, newTaxable)
			runningFederal = decimal.Max(runningFederal.Add(fed1.Sub(fed0)), decimal.Zero)
			runningState = decimal.Max(runningState.Add(st1.Sub(st0)), decimal.Zero)
			runningTaxable = newTaxable
		}

		// Tax-liability application. Credits offset income tax only, so the
		// delta clamps against the running federal+state remainder and the
		// full cut reallocates across the two by their current share,
		// preserving the mix. Payroll tax is untouched.
		if est.TaxLiabilityDelta != nil {
			incomeTax := runningFederal.Add(runningState)
			pre := *est.TaxLiabilityDelta
			clamped := pre.FloorAt(incomeTax.Neg())
			if !clamped.Equal(pre) {
				est = est.WithTaxLiabilityDelta(clamped).
					WithFlag(domain.FlagCappedByTaxLiability).
					WithAssumption(domain.Assumption{
						ID:       "CAPPED_BY_REMAINING_TAX_LIABILITY",
						Category: domain.AssumptionCap,
						Value:    incomeTax.StringFixed(2),
					})
			}
			taxAgg = taxAgg.Add(clamped)

			cut := clamped.Base.Neg()
			if cut.GreaterThan(decimal.Zero) && incomeTax.GreaterThan(decimal.Zero) {
				fedCut := cut.Mul(runningFederal.Div(incomeTax))
				// Remainder rather than a second share, so the two cuts sum
				// to the recorded delta exactly.
				stateCut := cut.Sub(fedCut)
				runningFederal = decimal.Max(runningFederal.Sub(fedCut), decimal.Zero)
				runningState = decimal.Max(runningState.Sub(stateCut), decimal.Zero)
			}
		}

		impacts = append(impacts, est.WithFlag(domain.FlagApplied))
	}

	revised := domain.BaselineTaxTotals{
		FederalTax:    runningFederal.Round(2),
		StateTax:      runningState.Round(2),
		PayrollTax:    payroll,
		TaxableIncome: runningTaxable.Round(2),
	}
	revised.TotalTax = revised.FederalTax.Add(revised.StateTax).Add(revised.PayrollTax).Round(2)

	return ApplyResult{
		Impacts: impacts,
		Revised: domain.RevisedTaxTotals{
			Baseline:                base,
			Revised:                 revised,
			TotalTaxDelta:           taxAgg,
			TotalTaxableIncomeDelta: incomeAgg,
		},
	}
}

// orderStrategies returns the evaluated strategy ids in deterministic
// application order: catalog display order first, then any ids the catalog
// does not know, lexicographically.
func (e *Engine) orderStrategies(evalByID map[domain.StrategyID]domain.EvaluatedStrategy) []domain.StrategyID {
	ordered := make([]domain.StrategyID, 0, len(evalByID))
	seen := make(map[domain.StrategyID]bool, len(evalByID))
	for _, entry := range e.Catalog.Ordered() {
		if _, ok := evalByID[entry.ID]; ok {
			ordered = append(ordered, entry.ID)
			seen[entry.ID] = true
		}
	}
	var unknown []domain.StrategyID
	for id := range evalByID {
		if !seen[id] {
			unknown = append(unknown, id)
		}
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
	return append(ordered, unknown...)
}
