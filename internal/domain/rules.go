package domain

// Operator is a rule-row comparison operator.
type Operator string

const (
	OpEq     Operator = "eq"
	OpNeq    Operator = "neq"
	OpGte    Operator = "gte"
	OpLte    Operator = "lte"
	OpIn     Operator = "in"
	OpExists Operator = "exists"
)

// ValidOperator reports whether op is a member of the operator set.
func ValidOperator(op Operator) bool {
	switch op {
	case OpEq, OpNeq, OpGte, OpLte, OpIn, OpExists:
		return true
	}
	return false
}

// RuleRow is one eligibility condition from the versioned rule table.
// Rows sharing (strategy_id, rule_group) are AND-combined; a strategy is
// eligible if any one of its groups fully passes.
type RuleRow struct {
	StrategyID  StrategyID `json:"strategy_id"`
	RuleGroup   string     `json:"rule_group"`
	FieldPath   string     `json:"field"` // dot-notation into the intake document
	Operator    Operator   `json:"operator"`
	Value       any        `json:"value"`
	Required    *bool      `json:"required,omitempty"` // nil means true
	Description string     `json:"description,omitempty"`
}

// IsRequired returns the row's required flag, defaulting to true.
func (r RuleRow) IsRequired() bool {
	return r.Required == nil || *r.Required
}
