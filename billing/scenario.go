/*
scenario.go - Fixed-cardinality what-if deltas

PURPOSE:
  For each named scenario, applies a single described change to the current
  metrics and reports the profit delta versus current net profit. These are
  independent, single-variable perturbations - not a general scenario
  engine, and deliberately non-composable.
*/
package billing

import "github.com/shopspring/decimal"

// ScenarioDelta reports the profit impact of one what-if change.
type ScenarioDelta struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	ProfitDelta decimal.Decimal `json:"profit_delta"`
}

var (
	fivePercent = decimal.RequireFromString("0.05")
	tenPercent  = decimal.RequireFromString("0.10")
)

// ScenarioInputs are the current-month figures the deltas perturb.
type ScenarioInputs struct {
	TotalRevenue        decimal.Decimal
	RevenuePerHour      decimal.Decimal
	VariableCostPerHour decimal.Decimal
	FixedCosts          decimal.Decimal
}

// ScenarioDeltas evaluates the fixed what-if set against current metrics,
// in declaration order.
//
// The add-one-client delta is a marginal-rate approximation: added hours
// times the current contribution margin per hour. It does not model the
// encounter revenue, supervisor sessions, or overtime kick-in a real
// intake would bring; those require a full pipeline rerun, which is what
// the forecast stage does.
func ScenarioDeltas(inputs ScenarioInputs, growth GrowthAssumptions, limits ComplianceLimits) []ScenarioDelta {
	// One new client at the average intake, clamped to the weekly cap.
	weekly := growth.AvgNewClientHours
	if weekly.GreaterThan(limits.WeeklyHourCap) {
		weekly = limits.WeeklyHourCap
	}
	addedHours := weekly.Mul(WeeksPerMonth)
	addClientDelta := addedHours.Mul(inputs.RevenuePerHour.Sub(inputs.VariableCostPerHour))

	return []ScenarioDelta{
		{
			ID:          "add_one_client",
			Name:        "Add one client at average intake hours",
			ProfitDelta: addClientDelta,
		},
		{
			ID:          "rate_increase_5pct",
			Name:        "5% payer rate increase",
			ProfitDelta: inputs.TotalRevenue.Mul(fivePercent),
		},
		{
			ID:          "reduce_overhead_10pct",
			Name:        "Reduce overhead by 10%",
			ProfitDelta: inputs.FixedCosts.Mul(tenPercent),
		},
	}
}
