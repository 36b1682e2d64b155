/*
validate.go - Advisory validation of configuration and computed metrics

PURPOSE:
  Classifies findings as errors (the data is self-contradictory) or
  warnings (plausible but risky). Validation never blocks computation and
  never mutates state: it is a pure reporting function layered on top of an
  already-computed snapshot. Surfacing findings to a user is the caller's
  responsibility.

FINDING RULES:
  error:   expenses above 120% of revenue, distribution fractions not
           summing to 1, utilization above 100%
  warning: thin (<10%) or suspiciously rich (>40%) margins, high tier
           utilization, sub-market staff rates, an implausibly high direct
           therapy rate
*/
package billing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FindingSeverity classifies a validation finding.
type FindingSeverity string

const (
	FindingError   FindingSeverity = "error"
	FindingWarning FindingSeverity = "warning"
)

// Finding is one advisory validation result.
type Finding struct {
	Severity FindingSeverity `json:"severity"`
	Message  string          `json:"message"`
}

var (
	one                   = decimal.NewFromInt(1)
	distributionTolerance = decimal.RequireFromString("0.01")
	expenseRatioLimit     = decimal.RequireFromString("1.2")
	thinMarginPct         = decimal.NewFromInt(10)
	richMarginPct         = decimal.NewFromInt(40)
	techUtilWarnPct       = decimal.NewFromInt(85)
	analystUtilWarnPct    = decimal.NewFromInt(80)
	minTechRate           = decimal.NewFromInt(15)
	minAnalystRate        = decimal.NewFromInt(35)
	maxDirectHourlyRate   = decimal.NewFromInt(200)
)

// ValidateInputs are the figures the finding rules inspect.
type ValidateInputs struct {
	TotalRevenue  decimal.Decimal
	TotalExpenses decimal.Decimal
	ProfitMargin  decimal.Decimal
	Utilization   Utilization
}

// Validate reports advisory findings for a configuration and its computed
// metrics, in rule declaration order. An empty result means no concerns.
func Validate(cfg Config, in ValidateInputs) []Finding {
	findings := []Finding{}

	if in.TotalExpenses.GreaterThan(in.TotalRevenue.Mul(expenseRatioLimit)) {
		findings = append(findings, Finding{
			Severity: FindingError,
			Message:  "Expenses exceed 120% of revenue - unsustainable model",
		})
	}

	if cfg.Distribution.Sum().Sub(one).Abs().GreaterThan(distributionTolerance) {
		findings = append(findings, Finding{
			Severity: FindingError,
			Message: fmt.Sprintf("Service distribution sums to %s%%, must total 100%%",
				cfg.Distribution.Sum().Mul(hundred).StringFixed(1)),
		})
	}

	// Fixed order so findings are stable across runs.
	for _, tier := range []struct {
		name string
		pct  decimal.Decimal
	}{
		{"Technician", in.Utilization.TechnicianPct},
		{"Analyst", in.Utilization.AnalystPct},
		{"Supervisor", in.Utilization.SupervisorPct},
	} {
		if tier.pct.GreaterThan(hundred) {
			findings = append(findings, Finding{
				Severity: FindingError,
				Message:  fmt.Sprintf("%s utilization is %s%% - demand exceeds configured capacity", tier.name, tier.pct.StringFixed(1)),
			})
		}
	}

	if in.ProfitMargin.LessThan(thinMarginPct) {
		findings = append(findings, Finding{
			Severity: FindingWarning,
			Message:  "Profit margin below 10% - review cost structure",
		})
	}
	if in.ProfitMargin.GreaterThan(richMarginPct) {
		findings = append(findings, Finding{
			Severity: FindingWarning,
			Message:  "Profit margin above 40% - verify rate table accuracy",
		})
	}

	if in.Utilization.TechnicianPct.GreaterThan(techUtilWarnPct) && !in.Utilization.TechnicianPct.GreaterThan(hundred) {
		findings = append(findings, Finding{
			Severity: FindingWarning,
			Message:  "Technician utilization above 85% - consider hiring",
		})
	}
	if in.Utilization.AnalystPct.GreaterThan(analystUtilWarnPct) && !in.Utilization.AnalystPct.GreaterThan(hundred) {
		findings = append(findings, Finding{
			Severity: FindingWarning,
			Message:  "Analyst utilization above 80% - risk of burnout and documentation backlog",
		})
	}

	if cfg.Staff.Technician.HourlyRate.LessThan(minTechRate) && cfg.Staff.Technician.Count > 0 {
		findings = append(findings, Finding{
			Severity: FindingWarning,
			Message:  "Technician rate below $15/hour - check minimum wage compliance",
		})
	}
	if cfg.Staff.Analyst.HourlyRate.LessThan(minAnalystRate) && cfg.Staff.Analyst.Count > 0 {
		findings = append(findings, Finding{
			Severity: FindingWarning,
			Message:  "Analyst rate below $35/hour - verify market competitiveness",
		})
	}

	if cfg.Rates.Get(DirectTherapy).HourlyEquivalent().GreaterThan(maxDirectHourlyRate) {
		findings = append(findings, Finding{
			Severity: FindingWarning,
			Message:  "Direct therapy rate above $200/hour equivalent - verify rate accuracy",
		})
	}

	return findings
}

// HealthcareRatios are supplemental efficiency figures reported alongside
// the snapshot. Collections assume a 95% realization on billed revenue.
type HealthcareRatios struct {
	StaffCostRatioPct    decimal.Decimal `json:"staff_cost_ratio_pct"`
	RevenuePerDirectHour decimal.Decimal `json:"revenue_per_direct_hour"`
	AdminTimeRatioPct    decimal.Decimal `json:"admin_time_ratio_pct"`
	AverageClientValue   decimal.Decimal `json:"average_client_value"`
	EstimatedCollections decimal.Decimal `json:"estimated_collections"`
}

var collectionRate = decimal.RequireFromString("0.95")

// ComputeHealthcareRatios derives the supplemental ratio set.
func ComputeHealthcareRatios(revenue RevenueBreakdown, cost CostBreakdown, hours HourBreakdown, activeClients int) HealthcareRatios {
	analystService := AnalystServiceHours(hours)
	analystTotal := analystService.Add(analystService.Mul(AdminTimeFraction))
	return HealthcareRatios{
		StaffCostRatioPct:    ratioPct(cost.TotalStaff, revenue.Total),
		RevenuePerDirectHour: safeDiv(revenue.Total, hours.Get(DirectTherapy)),
		AdminTimeRatioPct:    ratioPct(analystService.Mul(AdminTimeFraction), analystTotal),
		AverageClientValue:   safeDiv(revenue.Total, decimal.NewFromInt(int64(activeClients))),
		EstimatedCollections: revenue.Total.Mul(collectionRate),
	}
}
