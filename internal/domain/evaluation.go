package domain

// EvaluationStatus is the three-valued eligibility verdict for a strategy.
type EvaluationStatus string

const (
	StatusEligible    EvaluationStatus = "ELIGIBLE"
	StatusNotEligible EvaluationStatus = "NOT_ELIGIBLE"
	// StatusPotential means no group passed outright but at least one group
	// was blocked only by missing required data.
	StatusPotential EvaluationStatus = "POTENTIAL"
)

// RowStatus is the outcome of evaluating a single rule row.
type RowStatus string

const (
	RowPassed          RowStatus = "PASSED"
	RowFailed          RowStatus = "FAILED"
	RowMissingRequired RowStatus = "MISSING_REQUIRED"
	RowMissingOptional RowStatus = "MISSING_OPTIONAL"
)

// EvaluatedRow pairs a rule row with its outcome and the value actually
// resolved from the intake (nil when the path was missing).
type EvaluatedRow struct {
	Row    RuleRow   `json:"row"`
	Status RowStatus `json:"status"`
	Actual any       `json:"actual,omitempty"`
}

// EvaluatedGroup is the AND-combination of one rule group's rows.
type EvaluatedGroup struct {
	Label              string         `json:"label"`
	Passed             bool           `json:"passed"`
	HasMissingRequired bool           `json:"has_missing_required"`
	Rows               []EvaluatedRow `json:"rows"`
}

// FailedCondition records a concrete failed (non-missing) rule row. Only
// collected when the strategy verdict is NOT_ELIGIBLE.
type FailedCondition struct {
	RuleGroup   string   `json:"rule_group"`
	FieldPath   string   `json:"field"`
	Operator    Operator `json:"operator"`
	Expected    any      `json:"expected"`
	Actual      any      `json:"actual"`
	Description string   `json:"description,omitempty"`
}

// MissingFieldRequest identifies one rule group/operator pair that demanded
// a missing field.
type MissingFieldRequest struct {
	RuleGroup string   `json:"rule_group"`
	Operator  Operator `json:"operator"`
}

// MissingField is a deduplicated missing required field, annotated with
// every rule group that asked for it. Only collected when the verdict is
// POTENTIAL.
type MissingField struct {
	FieldPath   string                `json:"field"`
	RequestedBy []MissingFieldRequest `json:"requested_by"`
}

// EvaluatedStrategy is the evaluator's verdict for one strategy. Instances
// are never mutated after construction.
type EvaluatedStrategy struct {
	StrategyID       StrategyID        `json:"strategy_id"`
	Status           EvaluationStatus  `json:"status"`
	Groups           []EvaluatedGroup  `json:"groups"`
	FailedConditions []FailedCondition `json:"failed_conditions,omitempty"`
	MissingRequired  []MissingField    `json:"missing_required,omitempty"`
}
