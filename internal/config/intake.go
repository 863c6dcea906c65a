// Package config parses and validates the intake profile file the CLI
// feeds into the engines. It is the in-repo stand-in for the upstream form
// mapper: it produces a NormalizedIntake and nothing downstream of it ever
// re-validates shape.
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/taxlever/taxlever/internal/domain"
)

// IntakeFile is the on-disk YAML shape of a taxpayer intake profile.
type IntakeFile struct {
	Personal struct {
		FilingStatus       string  `yaml:"filing_status"`
		State              string  `yaml:"state"`
		QualifyingChildren int     `yaml:"qualifying_children"`
		W2Income           float64 `yaml:"w2_income"`
	} `yaml:"personal"`
	Business struct {
		HasBusiness   bool    `yaml:"has_business"`
		EntityType    string  `yaml:"entity_type"`
		EmployeeCount int     `yaml:"employee_count"`
		NetProfit     float64 `yaml:"net_profit"`
	} `yaml:"business"`
	Retirement struct {
		Employee401kYTD float64 `yaml:"employee_401k_ytd"`
	} `yaml:"retirement"`
	StrategiesInUse []string `yaml:"strategies_in_use"`
}

// IntakeParser handles parsing of intake profile files.
type IntakeParser struct{}

// NewIntakeParser creates a new intake parser.
func NewIntakeParser() *IntakeParser {
	return &IntakeParser{}
}

// LoadFromFile loads and validates an intake profile from a YAML file.
func (p *IntakeParser) LoadFromFile(filename string) (domain.NormalizedIntake, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.NormalizedIntake{}, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	var file IntakeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.NormalizedIntake{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	intake, err := p.Map(file)
	if err != nil {
		return domain.NormalizedIntake{}, fmt.Errorf("intake validation failed: %w", err)
	}
	return intake, nil
}

// Map validates a parsed intake file and maps it to a NormalizedIntake.
func (p *IntakeParser) Map(file IntakeFile) (domain.NormalizedIntake, error) {
	status, err := domain.ParseFilingStatus(file.Personal.FilingStatus)
	if err != nil {
		return domain.NormalizedIntake{}, err
	}
	if file.Personal.State == "" {
		return domain.NormalizedIntake{}, fmt.Errorf("state is required")
	}
	if file.Personal.QualifyingChildren < 0 {
		return domain.NormalizedIntake{}, fmt.Errorf("qualifying children cannot be negative")
	}
	if file.Personal.W2Income < 0 {
		return domain.NormalizedIntake{}, fmt.Errorf("w2 income cannot be negative")
	}
	if file.Retirement.Employee401kYTD < 0 {
		return domain.NormalizedIntake{}, fmt.Errorf("401(k) year-to-date contributions cannot be negative")
	}

	intake := domain.NormalizedIntake{
		Personal: domain.PersonalProfile{
			FilingStatus:       status,
			State:              file.Personal.State,
			QualifyingChildren: file.Personal.QualifyingChildren,
			W2Income:           decimal.NewFromFloat(file.Personal.W2Income),
		},
		Retirement: domain.RetirementProfile{
			Employee401kYTD: decimal.NewFromFloat(file.Retirement.Employee401kYTD),
		},
	}

	if file.Business.HasBusiness {
		entity, err := domain.ParseEntityType(file.Business.EntityType)
		if err != nil {
			return domain.NormalizedIntake{}, err
		}
		if file.Business.EmployeeCount < 0 {
			return domain.NormalizedIntake{}, fmt.Errorf("employee count cannot be negative")
		}
		intake.Business = domain.BusinessProfile{
			HasBusiness:   true,
			EntityType:    entity,
			EmployeeCount: file.Business.EmployeeCount,
			NetProfit:     decimal.NewFromFloat(file.Business.NetProfit),
		}
	}

	for _, raw := range file.StrategiesInUse {
		intake.StrategiesInUse = append(intake.StrategiesInUse, domain.StrategyID(raw))
	}
	return intake, nil
}
