package domain

import (
	"encoding/json"
	"sort"
)

// ModelKind identifies which impact model produced an estimate.
type ModelKind string

const (
	ModelDeductionRange ModelKind = "deduction_range"
	ModelCreditRange    ModelKind = "credit_range"
	ModelDeferralRange  ModelKind = "deferral_range"
	ModelUnknownRange   ModelKind = "unknown_range"
)

// ImpactFlag marks a condition the application engine attached to an
// estimate. Flags accumulate; they are never removed.
type ImpactFlag int

const (
	FlagAlreadyInUse ImpactFlag = iota
	FlagCappedByTaxableIncome
	FlagCappedByTaxLiability
	FlagNotAppliedNotEligible
	FlagNotAppliedPotential
	FlagApplied
)

func (f ImpactFlag) String() string {
	switch f {
	case FlagAlreadyInUse:
		return "ALREADY_IN_USE"
	case FlagCappedByTaxableIncome:
		return "CAPPED_BY_TAXABLE_INCOME"
	case FlagCappedByTaxLiability:
		return "CAPPED_BY_TAX_LIABILITY"
	case FlagNotAppliedNotEligible:
		return "NOT_APPLIED_NOT_ELIGIBLE"
	case FlagNotAppliedPotential:
		return "NOT_APPLIED_POTENTIAL"
	case FlagApplied:
		return "APPLIED"
	default:
		return "UNKNOWN"
	}
}

// FlagSet is a small ordered set of impact flags. The zero value is empty
// and usable. With returns a new set, leaving the receiver untouched, so
// intermediate estimate states stay inspectable.
type FlagSet struct {
	flags []ImpactFlag
}

// With returns a copy of the set containing f.
func (s FlagSet) With(f ImpactFlag) FlagSet {
	if s.Has(f) {
		return s.clone()
	}
	out := s.clone()
	out.flags = append(out.flags, f)
	sort.Slice(out.flags, func(i, j int) bool { return out.flags[i] < out.flags[j] })
	return out
}

// Has reports membership.
func (s FlagSet) Has(f ImpactFlag) bool {
	for _, x := range s.flags {
		if x == f {
			return true
		}
	}
	return false
}

// Slice returns the flags in sorted order.
func (s FlagSet) Slice() []ImpactFlag {
	out := make([]ImpactFlag, len(s.flags))
	copy(out, s.flags)
	return out
}

// Strings returns the flag names in sorted order.
func (s FlagSet) Strings() []string {
	out := make([]string, 0, len(s.flags))
	for _, f := range s.flags {
		out = append(out, f.String())
	}
	return out
}

func (s FlagSet) clone() FlagSet {
	out := make([]ImpactFlag, len(s.flags))
	copy(out, s.flags)
	return FlagSet{flags: out}
}

// MarshalJSON renders the set as an array of flag names.
func (s FlagSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}

// AssumptionCategory classifies an estimate assumption.
type AssumptionCategory string

const (
	AssumptionCap          AssumptionCategory = "CAP"
	AssumptionDefault      AssumptionCategory = "DEFAULT"
	AssumptionInteraction  AssumptionCategory = "INTERACTION"
	AssumptionConservatism AssumptionCategory = "CONSERVATISM"
	AssumptionDataGap      AssumptionCategory = "DATA_GAP"
)

// Assumption is one entry in an estimate's append-only audit trail.
type Assumption struct {
	ID       string             `json:"id"`
	Category AssumptionCategory `json:"category"`
	Value    string             `json:"value"`
}

// StrategyImpactEstimate is the range-valued impact of one strategy.
// Deltas follow the <= 0 convention: they reduce the quantity they target.
// Mutation is always copy-with-update via the With* methods; flags and
// assumptions can only accumulate.
type StrategyImpactEstimate struct {
	StrategyID         StrategyID       `json:"strategy_id"`
	Status             EvaluationStatus `json:"status"`
	Kind               ModelKind        `json:"model_kind"`
	TaxableIncomeDelta *Range3          `json:"taxable_income_delta,omitempty"`
	TaxLiabilityDelta  *Range3          `json:"tax_liability_delta,omitempty"`
	NeedsConfirmation  bool             `json:"needs_confirmation"`
	Assumptions        []Assumption     `json:"assumptions"`
	Flags              FlagSet          `json:"flags"`
}

func (e StrategyImpactEstimate) clone() StrategyImpactEstimate {
	out := e
	out.Flags = e.Flags.clone()
	out.Assumptions = make([]Assumption, len(e.Assumptions))
	copy(out.Assumptions, e.Assumptions)
	if e.TaxableIncomeDelta != nil {
		d := *e.TaxableIncomeDelta
		out.TaxableIncomeDelta = &d
	}
	if e.TaxLiabilityDelta != nil {
		d := *e.TaxLiabilityDelta
		out.TaxLiabilityDelta = &d
	}
	return out
}

// WithFlag returns a copy carrying f.
func (e StrategyImpactEstimate) WithFlag(f ImpactFlag) StrategyImpactEstimate {
	out := e.clone()
	out.Flags = out.Flags.With(f)
	return out
}

// WithAssumption returns a copy with a appended to the audit trail.
func (e StrategyImpactEstimate) WithAssumption(a Assumption) StrategyImpactEstimate {
	out := e.clone()
	out.Assumptions = append(out.Assumptions, a)
	return out
}

// WithTaxableIncomeDelta returns a copy carrying the given income delta.
func (e StrategyImpactEstimate) WithTaxableIncomeDelta(r Range3) StrategyImpactEstimate {
	out := e.clone()
	out.TaxableIncomeDelta = &r
	return out
}

// WithTaxLiabilityDelta returns a copy carrying the given liability delta.
func (e StrategyImpactEstimate) WithTaxLiabilityDelta(r Range3) StrategyImpactEstimate {
	out := e.clone()
	out.TaxLiabilityDelta = &r
	return out
}

// WithNeedsConfirmation returns a copy with the confirmation flag set.
func (e StrategyImpactEstimate) WithNeedsConfirmation() StrategyImpactEstimate {
	out := e.clone()
	out.NeedsConfirmation = true
	return out
}
