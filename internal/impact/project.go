package impact

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/taxlever/taxlever/internal/domain"
)

// WhatIfScenario reports one non-stacking strategy's marginal effect: the
// whole algorithm rerun with the core set plus that single strategy.
type WhatIfScenario struct {
	StrategyID domain.StrategyID `json:"strategy_id"`
	Result     ApplyResult       `json:"result"`
	// MarginalTaxSavings is the core-run total-tax delta minus the
	// solo-run total-tax delta: how much further this one strategy moves
	// total tax beyond the stacked core.
	MarginalTaxSavings domain.Range3 `json:"marginal_tax_savings"`
}

// Projection is the full output of one request: the canonical core run plus
// independent what-if runs for every remaining strategy.
type Projection struct {
	RunID       string                     `json:"run_id"`
	Baseline    domain.BaselineTaxTotals   `json:"baseline"`
	Evaluations []domain.EvaluatedStrategy `json:"evaluations"`
	Core        ApplyResult                `json:"core"`
	WhatIf      []WhatIfScenario           `json:"what_if"`
}

// Project runs the core scenario (auto-apply strategies stacked in display
// order) and then, for each remaining evaluated strategy, an independent
// what-if run with that one strategy added to the core apply-set. What-if
// runs share no state and execute concurrently.
func (e *Engine) Project(ctx context.Context, intake domain.NormalizedIntake, base domain.BaselineTaxTotals, evals []domain.EvaluatedStrategy, applyPotential bool) (Projection, error) {
	coreSet := e.Catalog.AutoApplyIDs()
	core := e.Apply(intake, base, evals, applyPotential, coreSet)

	evalByID := make(map[domain.StrategyID]domain.EvaluatedStrategy, len(evals))
	for _, ev := range evals {
		evalByID[ev.StrategyID] = ev
	}
	var whatIfIDs []domain.StrategyID
	for _, id := range e.orderStrategies(evalByID) {
		if entry, ok := e.Catalog.Lookup(id); ok && entry.AutoApply {
			continue
		}
		whatIfIDs = append(whatIfIDs, id)
	}

	scenarios := make([]WhatIfScenario, len(whatIfIDs))
	g, _ := errgroup.WithContext(ctx)
	for i, id := range whatIfIDs {
		i, id := i, id
		g.Go(func() error {
			soloSet := append(append([]domain.StrategyID{}, coreSet...), id)
			solo := e.Apply(intake, base, evals, applyPotential, soloSet)
			scenarios[i] = WhatIfScenario{
				StrategyID:         id,
				Result:             solo,
				MarginalTaxSavings: core.Revised.TotalTaxDelta.Sub(solo.Revised.TotalTaxDelta),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Projection{}, err
	}

	return Projection{
		RunID:       uuid.NewString(),
		Baseline:    base,
		Evaluations: evals,
		Core:        core,
		WhatIf:      scenarios,
	}, nil
}
