package baseline

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxlever/taxlever/internal/domain"
)

// mfjOwnerIntake is a married couple in Texas with W-2 wages, a sole
// proprietorship, and two children; baseline taxable income lands at
// exactly 250,000.
func mfjOwnerIntake() domain.NormalizedIntake {
	return domain.NormalizedIntake{
		Personal: domain.PersonalProfile{
			FilingStatus:       domain.MarriedFilingJointly,
			State:              "TX",
			QualifyingChildren: 2,
			W2Income:           decimal.NewFromInt(150000),
		},
		Business: domain.BusinessProfile{
			HasBusiness: true,
			EntityType:  domain.SoleProprietorship,
			NetProfit:   decimal.NewFromInt(130000),
		},
	}
}

func TestAGIProxy(t *testing.T) {
	calc := NewCalculator()

	intake := mfjOwnerIntake()
	assert.True(t, calc.AGIProxy(intake).Equal(decimal.NewFromInt(280000)))

	intake.Retirement.Employee401kYTD = decimal.NewFromInt(10000)
	assert.True(t, calc.AGIProxy(intake).Equal(decimal.NewFromInt(270000)))

	// Deferrals beyond income floor at zero rather than going negative.
	intake = domain.NormalizedIntake{
		Personal:   domain.PersonalProfile{FilingStatus: domain.Single, State: "TX", W2Income: decimal.NewFromInt(5000)},
		Retirement: domain.RetirementProfile{Employee401kYTD: decimal.NewFromInt(9000)},
	}
	assert.True(t, calc.AGIProxy(intake).IsZero())
}

func TestComputeBaselineWageEarner(t *testing.T) {
	calc := NewCalculator()
	intake := domain.NormalizedIntake{
		Personal: domain.PersonalProfile{
			FilingStatus: domain.Single,
			State:        "TX",
			W2Income:     decimal.NewFromInt(60000),
		},
	}

	totals, breakdown, err := calc.ComputeBaseline(intake)
	require.NoError(t, err)

	assert.True(t, totals.TaxableIncome.Equal(decimal.NewFromInt(45000)), "got %s", totals.TaxableIncome)
	assert.True(t, totals.FederalTax.Equal(decimal.RequireFromString("5161.50")), "got %s", totals.FederalTax)
	assert.True(t, totals.StateTax.IsZero())
	assert.True(t, totals.PayrollTax.Equal(decimal.RequireFromString("4590")), "got %s", totals.PayrollTax)
	assert.True(t, totals.TotalTax.Equal(decimal.RequireFromString("9751.50")), "got %s", totals.TotalTax)

	assert.True(t, breakdown.StandardDeduction.Equal(decimal.NewFromInt(15000)))
	assert.True(t, breakdown.ChildTaxCreditUsed.IsZero())
	assert.Empty(t, breakdown.StateDisclosure)
}

func TestComputeBaselineOwnerHousehold(t *testing.T) {
	calc := NewCalculator()

	totals, breakdown, err := calc.ComputeBaseline(mfjOwnerIntake())
	require.NoError(t, err)

	assert.True(t, totals.TaxableIncome.Equal(decimal.NewFromInt(250000)), "got %s", totals.TaxableIncome)
	// Ordinary tax 45,694 less the full 4,000 child tax credit.
	assert.True(t, totals.FederalTax.Equal(decimal.RequireFromString("41694")), "got %s", totals.FederalTax)
	assert.True(t, totals.StateTax.IsZero(), "Texas has no income tax")
	assert.True(t, totals.PayrollTax.Equal(decimal.RequireFromString("18373.50")), "got %s", totals.PayrollTax)
	assert.True(t, totals.TotalTax.Equal(decimal.RequireFromString("60067.50")), "got %s", totals.TotalTax)

	assert.True(t, breakdown.AGI.Equal(decimal.NewFromInt(280000)))
	assert.True(t, breakdown.ChildTaxCreditUsed.Equal(decimal.NewFromInt(4000)))
	assert.True(t, breakdown.ChildTaxCreditUnused.IsZero())
	assert.True(t, breakdown.SelfEmploymentTax.GreaterThan(decimal.Zero))
	assert.True(t, breakdown.SelfEmploymentTaxHalfDeduction.Equal(
		breakdown.SelfEmploymentTax.Div(decimal.NewFromInt(2)).Round(2)))
}

func TestComputeBaselineIncomeBelowDeduction(t *testing.T) {
	calc := NewCalculator()
	intake := domain.NormalizedIntake{
		Personal: domain.PersonalProfile{
			FilingStatus: domain.Single,
			State:        "CA",
			W2Income:     decimal.NewFromInt(12000),
		},
	}

	totals, _, err := calc.ComputeBaseline(intake)
	require.NoError(t, err)

	assert.True(t, totals.TaxableIncome.IsZero())
	assert.True(t, totals.FederalTax.IsZero())
	assert.True(t, totals.StateTax.IsZero())
	// Payroll tax still applies to the wages.
	assert.True(t, totals.PayrollTax.GreaterThan(decimal.Zero))
}

func TestComputeBaselineUnknownFilingStatus(t *testing.T) {
	calc := NewCalculator()
	intake := domain.NormalizedIntake{
		Personal: domain.PersonalProfile{FilingStatus: "WIDOWED", State: "TX"},
	}
	_, _, err := calc.ComputeBaseline(intake)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "filing status")
}

func TestComputeBaselineUnknownStateDiscloses(t *testing.T) {
	calc := NewCalculator()
	intake := domain.NormalizedIntake{
		Personal: domain.PersonalProfile{
			FilingStatus: domain.Single,
			State:        "PR",
			W2Income:     decimal.NewFromInt(90000),
		},
	}

	totals, breakdown, err := calc.ComputeBaseline(intake)
	require.NoError(t, err)
	assert.True(t, totals.StateTax.IsZero())
	assert.Contains(t, breakdown.StateDisclosure, "PR")
}

func TestIncomeTaxOn(t *testing.T) {
	calc := NewCalculator()
	intake := mfjOwnerIntake()

	// At the baseline taxable income the recomputation matches baseline
	// federal and state tax.
	fed, state := calc.IncomeTaxOn(intake, decimal.NewFromInt(250000))
	assert.True(t, fed.Equal(decimal.RequireFromString("41694")), "got %s", fed)
	assert.True(t, state.IsZero())

	// Lower taxable income, same AGI-based credit.
	fed, _ = calc.IncomeTaxOn(intake, decimal.NewFromInt(100000))
	assert.True(t, fed.Equal(decimal.RequireFromString("7828")), "got %s", fed)

	// Negative taxable income clamps to zero.
	fed, state = calc.IncomeTaxOn(intake, decimal.NewFromInt(-5000))
	assert.True(t, fed.IsZero())
	assert.True(t, state.IsZero())
}
