package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treehousetherapy/financial-dashboard/billing"
	"github.com/treehousetherapy/financial-dashboard/config"
)

func healthyValidateInputs() billing.ValidateInputs {
	return billing.ValidateInputs{
		TotalRevenue:  d("16000"),
		TotalExpenses: d("13000"),
		ProfitMargin:  d("18"),
		Utilization: billing.Utilization{
			TechnicianPct: d("60"),
			AnalystPct:    d("40"),
			SupervisorPct: d("10"),
		},
	}
}

func TestValidate_HealthyConfigNoFindings(t *testing.T) {
	findings := billing.Validate(config.Default(), healthyValidateInputs())
	assert.Empty(t, findings)
}

func TestValidate_ExpensesExceedRevenueRatio(t *testing.T) {
	// GIVEN: Expenses above 120% of revenue
	// WHEN: Validating
	// THEN: An error-severity finding - the model is self-contradictory

	in := healthyValidateInputs()
	in.TotalExpenses = d("20000")

	findings := billing.Validate(config.Default(), in)

	require.NotEmpty(t, findings)
	assert.Equal(t, billing.FindingError, findings[0].Severity)
	assert.Contains(t, findings[0].Message, "120%")
}

func TestValidate_DistributionMustSumToOne(t *testing.T) {
	// GIVEN: A distribution summing to 0.90
	// WHEN: Validating
	// THEN: The closure error fires; computation itself is never blocked

	cfg := config.Default()
	cfg.Distribution = billing.ServiceDistribution{
		billing.DirectTherapy: d("0.80"),
		billing.Supervision:   d("0.10"),
	}

	findings := billing.Validate(cfg, healthyValidateInputs())

	require.NotEmpty(t, findings)
	assert.Equal(t, billing.FindingError, findings[0].Severity)
	assert.Contains(t, findings[0].Message, "90.0%")
}

func TestValidate_DistributionToleranceAllowsRounding(t *testing.T) {
	// A 0.5% deviation is within tolerance.
	cfg := config.Default()
	cfg.Distribution[billing.Assessment] = d("0.015")

	findings := billing.Validate(cfg, healthyValidateInputs())

	assert.Empty(t, findings)
}

func TestValidate_UtilizationOver100IsError(t *testing.T) {
	in := healthyValidateInputs()
	in.Utilization.TechnicianPct = d("125")

	findings := billing.Validate(config.Default(), in)

	require.NotEmpty(t, findings)
	assert.Equal(t, billing.FindingError, findings[0].Severity)
	assert.Contains(t, findings[0].Message, "Technician utilization")
}

func TestValidate_MarginBands(t *testing.T) {
	// Thin margin warns.
	thin := healthyValidateInputs()
	thin.ProfitMargin = d("5")
	findings := billing.Validate(config.Default(), thin)
	require.Len(t, findings, 1)
	assert.Equal(t, billing.FindingWarning, findings[0].Severity)
	assert.Contains(t, findings[0].Message, "below 10%")

	// A suspiciously rich margin also warns - usually a data-entry error.
	rich := healthyValidateInputs()
	rich.ProfitMargin = d("55")
	findings = billing.Validate(config.Default(), rich)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "above 40%")
}

func TestValidate_HighUtilizationWarnsBelowErrorBand(t *testing.T) {
	// 90% technician utilization warns; it only escalates to an error
	// above 100%.
	in := healthyValidateInputs()
	in.Utilization.TechnicianPct = d("90")

	findings := billing.Validate(config.Default(), in)

	require.Len(t, findings, 1)
	assert.Equal(t, billing.FindingWarning, findings[0].Severity)
	assert.Contains(t, findings[0].Message, "consider hiring")
}

func TestValidate_SubMarketStaffRates(t *testing.T) {
	cfg := config.Default()
	cfg.Staff.Technician.HourlyRate = d("12")
	cfg.Staff.Analyst.HourlyRate = d("30")

	findings := billing.Validate(cfg, healthyValidateInputs())

	require.Len(t, findings, 2)
	assert.Contains(t, findings[0].Message, "minimum wage")
	assert.Contains(t, findings[1].Message, "market competitiveness")
}

func TestValidate_ImplausibleDirectRate(t *testing.T) {
	cfg := config.Default()
	cfg.Rates[billing.DirectTherapy] = billing.Rate{
		Category: billing.DirectTherapy,
		Unit:     billing.UnitPer15Min,
		PerUnit:  d("60"), // $240/hour equivalent
	}

	findings := billing.Validate(cfg, healthyValidateInputs())

	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "$200/hour")
}

// =============================================================================
// HEALTHCARE RATIOS
// =============================================================================

func TestComputeHealthcareRatios(t *testing.T) {
	revenue := billing.RevenueBreakdown{Total: d("16000")}
	cost := billing.CostBreakdown{TotalStaff: d("12000")}
	hours := billing.HourBreakdown{
		billing.DirectTherapy: d("160"),
		billing.Supervision:   d("25"),
	}

	r := billing.ComputeHealthcareRatios(revenue, cost, hours, 4)

	assert.True(t, r.StaffCostRatioPct.Equal(d("75")), "got %s", r.StaffCostRatioPct)
	assert.True(t, r.RevenuePerDirectHour.Equal(d("100")), "got %s", r.RevenuePerDirectHour)
	assert.True(t, r.AverageClientValue.Equal(d("4000")))
	assert.True(t, r.EstimatedCollections.Equal(d("15200")))
	// Admin share of total analyst time: 0.28 / 1.28
	assert.InDelta(t, 21.875, toFloat(r.AdminTimeRatioPct), 0.001)
}

func TestComputeHealthcareRatios_ZeroGuards(t *testing.T) {
	r := billing.ComputeHealthcareRatios(billing.RevenueBreakdown{}, billing.CostBreakdown{}, billing.HourBreakdown{}, 0)

	assert.True(t, r.StaffCostRatioPct.IsZero())
	assert.True(t, r.RevenuePerDirectHour.IsZero())
	assert.True(t, r.AverageClientValue.IsZero())
}
