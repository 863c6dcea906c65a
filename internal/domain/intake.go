package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FilingStatus identifies the taxpayer's federal filing status.
type FilingStatus string

const (
	Single                FilingStatus = "SINGLE"
	MarriedFilingJointly  FilingStatus = "MARRIED_FILING_JOINTLY"
	MarriedFilingSeparate FilingStatus = "MARRIED_FILING_SEPARATELY"
	HeadOfHousehold       FilingStatus = "HEAD_OF_HOUSEHOLD"
)

// ParseFilingStatus normalizes a raw filing status string.
func ParseFilingStatus(s string) (FilingStatus, error) {
	switch FilingStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case Single:
		return Single, nil
	case MarriedFilingJointly:
		return MarriedFilingJointly, nil
	case MarriedFilingSeparate:
		return MarriedFilingSeparate, nil
	case HeadOfHousehold:
		return HeadOfHousehold, nil
	}
	return "", fmt.Errorf("unknown filing status: %q", s)
}

// EntityType identifies the business entity structure.
type EntityType string

const (
	SoleProprietorship EntityType = "SOLE_PROP"
	Partnership        EntityType = "PARTNERSHIP"
	LLC                EntityType = "LLC"
	SCorp              EntityType = "S_CORP"
	CCorp              EntityType = "C_CORP"
)

// ParseEntityType normalizes a raw entity type string.
func ParseEntityType(s string) (EntityType, error) {
	switch EntityType(strings.ToUpper(strings.TrimSpace(s))) {
	case SoleProprietorship:
		return SoleProprietorship, nil
	case Partnership:
		return Partnership, nil
	case LLC:
		return LLC, nil
	case SCorp:
		return SCorp, nil
	case CCorp:
		return CCorp, nil
	}
	return "", fmt.Errorf("unknown entity type: %q", s)
}

// SubjectToSelfEmploymentTax reports whether net profit flowing through this
// entity type is treated as self-employment earnings.
func (et EntityType) SubjectToSelfEmploymentTax() bool {
	switch et {
	case SoleProprietorship, Partnership, LLC:
		return true
	}
	return false
}

// PersonalProfile holds the personal portion of the intake.
type PersonalProfile struct {
	FilingStatus       FilingStatus
	State              string
	QualifyingChildren int
	W2Income           decimal.Decimal // non-business (W-2 equivalent) income
}

// BusinessProfile holds the business portion of the intake.
type BusinessProfile struct {
	HasBusiness   bool
	EntityType    EntityType
	EmployeeCount int
	NetProfit     decimal.Decimal
}

// RetirementProfile holds the retirement portion of the intake.
type RetirementProfile struct {
	Employee401kYTD decimal.Decimal // employee 401(k) contributions year to date
}

// NormalizedIntake is the immutable input record consumed by all engines.
// It is produced once per request by the upstream form mapper and read-only
// from that point on.
type NormalizedIntake struct {
	Personal        PersonalProfile
	Business        BusinessProfile
	Retirement      RetirementProfile
	StrategiesInUse []StrategyID
}

// UsesStrategy reports whether the taxpayer already employs the strategy.
func (n NormalizedIntake) UsesStrategy(id StrategyID) bool {
	for _, s := range n.StrategiesInUse {
		if s == id {
			return true
		}
	}
	return false
}

// Document projects the intake into a JSON-shaped document for rule-path
// resolution. Values are restricted to the closed set string | float64 |
// bool | []any | map[string]any so the rule evaluator never sees an
// unexpected dynamic type.
func (n NormalizedIntake) Document() map[string]any {
	inUse := make([]any, 0, len(n.StrategiesInUse))
	for _, id := range n.StrategiesInUse {
		inUse = append(inUse, string(id))
	}
	return map[string]any{
		"personal": map[string]any{
			"filing_status":       string(n.Personal.FilingStatus),
			"state":               n.Personal.State,
			"qualifying_children": float64(n.Personal.QualifyingChildren),
			"w2_income":           n.Personal.W2Income.InexactFloat64(),
		},
		"business": map[string]any{
			"has_business":   n.Business.HasBusiness,
			"entity_type":    string(n.Business.EntityType),
			"employee_count": float64(n.Business.EmployeeCount),
			"net_profit":     n.Business.NetProfit.InexactFloat64(),
		},
		"retirement": map[string]any{
			"employee_401k_ytd": n.Retirement.Employee401kYTD.InexactFloat64(),
		},
		"strategies_in_use": inUse,
	}
}
