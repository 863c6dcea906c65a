package baseline

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/taxlever/taxlever/internal/domain"
)

func payrollIntake(status domain.FilingStatus, wages, profit int64, entity domain.EntityType) domain.NormalizedIntake {
	intake := domain.NormalizedIntake{
		Personal: domain.PersonalProfile{
			FilingStatus: status,
			W2Income:     decimal.NewFromInt(wages),
		},
	}
	if profit > 0 {
		intake.Business = domain.BusinessProfile{
			HasBusiness: true,
			EntityType:  entity,
			NetProfit:   decimal.NewFromInt(profit),
		}
	}
	return intake
}

func TestPayrollWagesOnly(t *testing.T) {
	pc := NewPayrollCalculator2025()
	result := pc.Compute(payrollIntake(domain.Single, 100000, 0, ""))

	// 6.2% SS + 1.45% Medicare on the full wage.
	assert.True(t, result.Total.Equal(decimal.RequireFromString("7650")), "got %s", result.Total)
	assert.True(t, result.SelfEmploymentTax.IsZero())
	assert.True(t, result.SEEarnings.IsZero())
}

func TestPayrollWagesAboveSSBase(t *testing.T) {
	pc := NewPayrollCalculator2025()
	result := pc.Compute(payrollIntake(domain.Single, 300000, 0, ""))

	// SS capped at the wage base, Medicare uncapped, additional Medicare
	// on wages over 200k: 176100*0.062 + 300000*0.0145 + 100000*0.009.
	assert.True(t, result.Total.Equal(decimal.RequireFromString("16168.20")), "got %s", result.Total)
}

func TestPayrollSelfEmployedOnly(t *testing.T) {
	pc := NewPayrollCalculator2025()
	result := pc.Compute(payrollIntake(domain.Single, 0, 100000, domain.SoleProprietorship))

	assert.True(t, result.SEEarnings.Equal(decimal.RequireFromString("92350")),
		"SE earnings are 92.35%% of net profit, got %s", result.SEEarnings)
	// 92350*0.124 + 92350*0.029
	assert.True(t, result.SelfEmploymentTax.Equal(decimal.RequireFromString("14129.55")), "got %s", result.SelfEmploymentTax)
	assert.True(t, result.SelfEmploymentTaxHalf.Equal(decimal.RequireFromString("7064.78")), "got %s", result.SelfEmploymentTaxHalf)
	assert.True(t, result.Total.Equal(result.SelfEmploymentTax))
}

func TestPayrollSharedWageBase(t *testing.T) {
	pc := NewPayrollCalculator2025()
	result := pc.Compute(payrollIntake(domain.MarriedFilingJointly, 150000, 100000, domain.LLC))

	// W-2 wages consume 150000 of the 176100 base; only 26100 of SE
	// earnings is subject to SE Social Security.
	// 150000*0.062 + 26100*0.124 + 150000*0.0145 + 92350*0.029
	seTax := decimal.RequireFromString("5914.55")
	assert.True(t, result.SelfEmploymentTax.Equal(seTax), "got %s", result.SelfEmploymentTax)
	assert.True(t, result.Total.Equal(decimal.RequireFromString("17389.55")), "got %s", result.Total)
}

func TestPayrollSCorpProfitNotSubjectToSETax(t *testing.T) {
	pc := NewPayrollCalculator2025()
	result := pc.Compute(payrollIntake(domain.Single, 80000, 200000, domain.SCorp))

	assert.True(t, result.SEEarnings.IsZero(), "S corp profit is not SE earnings")
	assert.True(t, result.SelfEmploymentTax.IsZero())
	// Only the W-2 side remains: 80000 * (0.062 + 0.0145).
	assert.True(t, result.Total.Equal(decimal.RequireFromString("6120")), "got %s", result.Total)
}

func TestPayrollAdditionalMedicareThresholds(t *testing.T) {
	pc := NewPayrollCalculator2025()

	tests := []struct {
		name   string
		status domain.FilingStatus
		wages  int64
		addl   bool
	}{
		{name: "single under threshold", status: domain.Single, wages: 200000, addl: false},
		{name: "single over threshold", status: domain.Single, wages: 200001, addl: true},
		{name: "mfj threshold is higher", status: domain.MarriedFilingJointly, wages: 240000, addl: false},
		{name: "mfs threshold is lower", status: domain.MarriedFilingSeparate, wages: 130000, addl: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pc.Compute(payrollIntake(tt.status, tt.wages, 0, ""))
			wages := decimal.NewFromInt(tt.wages)
			base := decimal.Min(wages, pc.SSWageBase).Mul(pc.EmployeeSSRate).
				Add(wages.Mul(pc.EmployeeMedicareRate))
			if tt.addl {
				assert.True(t, result.Total.GreaterThan(base.Round(2)), "additional Medicare expected")
			} else {
				assert.True(t, result.Total.Equal(base.Round(2)), "expected %s, got %s", base.Round(2), result.Total)
			}
		})
	}
}
