// Package rules implements the eligibility rule evaluator: three-valued
// AND/OR rule-group matching against the normalized intake, with an
// explicit distinction between a failed condition and missing data.
package rules

import (
	"sort"

	"github.com/taxlever/taxlever/internal/domain"
)

// Evaluate runs every rule row against the intake and returns one verdict
// per strategy present in the rule table, sorted by strategy id. Pure and
// deterministic; the rule table is grouped by (strategy_id, rule_group),
// AND within a group, OR across groups.
func Evaluate(intake domain.NormalizedIntake, rows []domain.RuleRow) []domain.EvaluatedStrategy {
	doc := intake.Document()

	byStrategy := make(map[domain.StrategyID]map[string][]domain.RuleRow)
	for _, row := range rows {
		groups, ok := byStrategy[row.StrategyID]
		if !ok {
			groups = make(map[string][]domain.RuleRow)
			byStrategy[row.StrategyID] = groups
		}
		groups[row.RuleGroup] = append(groups[row.RuleGroup], row)
	}

	ids := make([]domain.StrategyID, 0, len(byStrategy))
	for id := range byStrategy {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]domain.EvaluatedStrategy, 0, len(ids))
	for _, id := range ids {
		out = append(out, evaluateStrategy(id, byStrategy[id], doc))
	}
	return out
}

func evaluateStrategy(id domain.StrategyID, groups map[string][]domain.RuleRow, doc map[string]any) domain.EvaluatedStrategy {
	labels := make([]string, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	evaluated := make([]domain.EvaluatedGroup, 0, len(labels))
	anyPassed := false
	anyMissingRequired := false
	for _, label := range labels {
		g := evaluateGroup(label, groups[label], doc)
		anyPassed = anyPassed || g.Passed
		anyMissingRequired = anyMissingRequired || g.HasMissingRequired
		evaluated = append(evaluated, g)
	}

	result := domain.EvaluatedStrategy{StrategyID: id, Groups: evaluated}
	switch {
	case anyPassed:
		result.Status = domain.StatusEligible
	case anyMissingRequired:
		result.Status = domain.StatusPotential
		result.MissingRequired = collectMissingRequired(evaluated)
	default:
		result.Status = domain.StatusNotEligible
		result.FailedConditions = collectFailedConditions(evaluated)
	}
	return result
}

// evaluateGroup ANDs a group's rows: the group passes iff no row failed and
// no required row was missing. Missing optional rows do not block.
func evaluateGroup(label string, rows []domain.RuleRow, doc map[string]any) domain.EvaluatedGroup {
	g := domain.EvaluatedGroup{Label: label, Passed: true}
	for _, row := range rows {
		er := evaluateRow(row, doc)
		switch er.Status {
		case domain.RowFailed:
			g.Passed = false
		case domain.RowMissingRequired:
			g.Passed = false
			g.HasMissingRequired = true
		}
		g.Rows = append(g.Rows, er)
	}
	return g
}

func evaluateRow(row domain.RuleRow, doc map[string]any) domain.EvaluatedRow {
	actual, found := Resolve(doc, row.FieldPath)
	if !found {
		status := domain.RowMissingOptional
		if row.IsRequired() {
			status = domain.RowMissingRequired
		}
		return domain.EvaluatedRow{Row: row, Status: status}
	}

	passed := false
	switch row.Operator {
	case domain.OpExists:
		passed = true
	case domain.OpEq:
		passed = valuesEqual(actual, row.Value)
	case domain.OpNeq:
		passed = !valuesEqual(actual, row.Value)
	case domain.OpGte:
		a, aok := asNumber(actual)
		b, bok := asNumber(row.Value)
		passed = aok && bok && a >= b
	case domain.OpLte:
		a, aok := asNumber(actual)
		b, bok := asNumber(row.Value)
		passed = aok && bok && a <= b
	case domain.OpIn:
		if arr, ok := row.Value.([]any); ok {
			for _, candidate := range arr {
				if valuesEqual(actual, candidate) {
					passed = true
					break
				}
			}
		}
	}

	status := domain.RowFailed
	if passed {
		status = domain.RowPassed
	}
	return domain.EvaluatedRow{Row: row, Status: status, Actual: actual}
}

func collectFailedConditions(groups []domain.EvaluatedGroup) []domain.FailedCondition {
	var out []domain.FailedCondition
	for _, g := range groups {
		for _, r := range g.Rows {
			if r.Status != domain.RowFailed {
				continue
			}
			out = append(out, domain.FailedCondition{
				RuleGroup:   g.Label,
				FieldPath:   r.Row.FieldPath,
				Operator:    r.Row.Operator,
				Expected:    r.Row.Value,
				Actual:      r.Actual,
				Description: r.Row.Description,
			})
		}
	}
	return out
}

// collectMissingRequired deduplicates missing required fields across
// groups, annotating each with every rule group/operator that demanded it.
func collectMissingRequired(groups []domain.EvaluatedGroup) []domain.MissingField {
	byField := make(map[string]*domain.MissingField)
	var order []string
	for _, g := range groups {
		for _, r := range g.Rows {
			if r.Status != domain.RowMissingRequired {
				continue
			}
			mf, ok := byField[r.Row.FieldPath]
			if !ok {
				mf = &domain.MissingField{FieldPath: r.Row.FieldPath}
				byField[r.Row.FieldPath] = mf
				order = append(order, r.Row.FieldPath)
			}
			mf.RequestedBy = append(mf.RequestedBy, domain.MissingFieldRequest{
				RuleGroup: g.Label,
				Operator:  r.Row.Operator,
			})
		}
	}
	sort.Strings(order)
	out := make([]domain.MissingField, 0, len(order))
	for _, field := range order {
		out = append(out, *byField[field])
	}
	return out
}
