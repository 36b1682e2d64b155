/*
metrics.go - Derived ratios, utilization, and break-even analysis

PURPOSE:
  Pure functions over the revenue and cost breakdowns: profit margin,
  per-hour ratios, staff utilization, and the break-even hour volume.

BREAK-EVEN:
  variableCostPerHour     = totalStaffCost / totalMonthlyDemandHours
  contributionMarginPerHour = revenuePerHour - variableCostPerHour
  breakEvenHours          = ceil(fixedCosts / contributionMarginPerHour)

  A non-positive contribution margin makes break-even unreachable, not
  trivially satisfied. Reachable=false distinguishes that case from an
  actual zero-hour break-even; Hours is 0 and must not be read when
  Reachable is false.

UTILIZATION:
  tierServiceHours / tierCapacityHours x 100, deliberately uncapped - a
  value above 100% is itself a signal the advisory stage surfaces.
*/
package billing

import "github.com/shopspring/decimal"

// Utilization reports per-tier delivered hours against nominal capacity,
// as percentages. Values may exceed 100.
type Utilization struct {
	TechnicianPct decimal.Decimal `json:"technician_pct"`
	AnalystPct    decimal.Decimal `json:"analyst_pct"`
	SupervisorPct decimal.Decimal `json:"supervisor_pct"`
}

// BreakEven is the monthly billable-hour volume at which contribution
// margin exactly offsets fixed costs.
type BreakEven struct {
	FixedCosts                decimal.Decimal `json:"fixed_costs"`
	VariableCostPerHour       decimal.Decimal `json:"variable_cost_per_hour"`
	ContributionMarginPerHour decimal.Decimal `json:"contribution_margin_per_hour"`

	// Reachable is false when the contribution margin is non-positive:
	// no hour volume covers fixed costs. Hours is 0 in that case.
	Reachable bool  `json:"reachable"`
	Hours     int64 `json:"hours"`

	// SafetyMarginPct is how far current hours sit above (or below)
	// break-even, as a percentage of break-even hours.
	SafetyMarginPct decimal.Decimal `json:"safety_margin_pct"`
}

// ProfitMargin returns net profit as a percentage of revenue, zero-guarded.
func ProfitMargin(netProfit, totalRevenue decimal.Decimal) decimal.Decimal {
	return ratioPct(netProfit, totalRevenue)
}

// PerHour divides a monthly dollar total by monthly demand hours,
// zero-guarded.
func PerHour(total, demandHours decimal.Decimal) decimal.Decimal {
	return safeDiv(total, demandHours)
}

// ComputeUtilization reports each tier's delivered hours against capacity.
// Supervisor hours are the encounter session count (one hour per session,
// matching the cost model).
func ComputeUtilization(hours HourBreakdown, encounters map[ServiceCategory]decimal.Decimal, staff StaffConfig) Utilization {
	encounterSessions := decimal.Zero
	for _, cat := range EncounterCategories {
		encounterSessions = encounterSessions.Add(encounters[cat])
	}
	return Utilization{
		TechnicianPct: ratioPct(DirectServiceHours(hours), staff.Technician.CapacityHours()),
		AnalystPct:    ratioPct(AnalystServiceHours(hours), staff.Analyst.CapacityHours()),
		SupervisorPct: ratioPct(encounterSessions, staff.Supervisor.CapacityHours()),
	}
}

// ComputeBreakEven runs the break-even analysis for the current month.
func ComputeBreakEven(fixedCosts, totalStaffCost, revenuePerHour, currentHours decimal.Decimal) BreakEven {
	variable := PerHour(totalStaffCost, currentHours)
	margin := revenuePerHour.Sub(variable)

	be := BreakEven{
		FixedCosts:                fixedCosts,
		VariableCostPerHour:       variable,
		ContributionMarginPerHour: margin,
	}
	if !margin.IsPositive() {
		return be
	}

	be.Reachable = true
	be.Hours = fixedCosts.Div(margin).Ceil().IntPart()
	if be.Hours > 0 {
		beHours := decimal.NewFromInt(be.Hours)
		be.SafetyMarginPct = ratioPct(currentHours.Sub(beHours), beHours)
	}
	return be
}
