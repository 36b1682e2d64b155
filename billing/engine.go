/*
engine.go - The full computation pipeline

PURPOSE:
  Composes the five calculation stages into a single explicit entry point:

    ComputeAll(config) -> MetricsSnapshot

  Data flows one way: roster aggregation + compliance -> hour allocation ->
  revenue and cost -> derived metrics and forecast -> alerts and findings.
  No stage mutates another's output; every call recomputes the pipeline
  from scratch. There is no caching, no memoization, and no retained state,
  so identical configurations always produce identical snapshots.

USAGE:
  snapshot := billing.ComputeAll(cfg)
  fmt.Println(snapshot.NetProfit)

SEE ALSO:
  - compliance.go, allocation.go, revenue.go, cost.go, metrics.go,
    forecast.go, scenario.go, advisor.go, validate.go: The stages
*/
package billing

import "github.com/shopspring/decimal"

// MetricsSnapshot is the full derived output of one pipeline run. It is
// never persisted and is consumed only by the presentation layer.
type MetricsSnapshot struct {
	// Roster aggregates
	ActiveClients     int             `json:"active_clients"`
	RawWeeklyHours    decimal.Decimal `json:"raw_weekly_hours"`
	BilledWeeklyHours decimal.Decimal `json:"billed_weekly_hours"`
	MonthlyHours      decimal.Decimal `json:"monthly_hours"`

	// Stage outputs
	Compliance    []ClientCompliance                  `json:"compliance"`
	AtRiskClients int                                 `json:"at_risk_clients"`
	Hours         HourBreakdown                       `json:"hours"`
	Encounters    map[ServiceCategory]decimal.Decimal `json:"encounters"`
	TravelMinutes decimal.Decimal                     `json:"travel_minutes"`
	Revenue       RevenueBreakdown                    `json:"revenue"`
	Cost          CostBreakdown                       `json:"cost"`

	// Derived metrics
	NetProfit       decimal.Decimal  `json:"net_profit"`
	ProfitMarginPct decimal.Decimal  `json:"profit_margin_pct"`
	RevenuePerHour  decimal.Decimal  `json:"revenue_per_hour"`
	CostPerHour     decimal.Decimal  `json:"cost_per_hour"`
	ProfitPerHour   decimal.Decimal  `json:"profit_per_hour"`
	Utilization     Utilization      `json:"utilization"`
	BreakEven       BreakEven        `json:"break_even"`
	Ratios          HealthcareRatios `json:"ratios"`

	// Forecast and what-ifs
	Forecast  []ForecastPoint `json:"forecast"`
	Scenarios []ScenarioDelta `json:"scenarios"`

	// Advisory layer
	Alerts   []Alert   `json:"alerts"`
	Findings []Finding `json:"findings"`
}

// ComputeAll runs the whole pipeline over one configuration value. It is a
// pure function: it never fails for finite numeric input and never retains
// state between invocations. Callers are expected to pass a sanitized
// configuration (see config.Sanitize); raw values still cannot make the
// pipeline panic, only skew the figures.
func ComputeAll(cfg Config) MetricsSnapshot {
	active := cfg.ActiveClients()

	rawWeekly := decimal.Zero
	billedWeekly := decimal.Zero
	for _, cl := range active {
		rawWeekly = rawWeekly.Add(cl.WeeklyHours)
		billedWeekly = billedWeekly.Add(cl.BillableWeeklyHours(cfg.Limits))
	}
	monthlyHours := MonthlyDemandHours(cfg.Clients, cfg.Limits)

	// Stage 1: compliance
	compliance := EvaluateRoster(cfg.Clients, cfg.Limits)
	atRisk := AtRiskCount(compliance)

	// Stage 2: allocation
	hours := Allocate(monthlyHours, len(active), cfg.Distribution, cfg.Limits)
	encounters := EncounterCounts(len(active), cfg.EncounterFrequency)
	sessions := TotalSessions(hours, encounters)
	travelMinutes := TravelMinutes(sessions, cfg.TravelMinutesPerSession)

	// Stage 3: revenue and cost
	revenue := ComputeRevenue(hours, cfg.Rates, encounters, travelMinutes)
	cost := ComputeStaffCost(hours, encounters, cfg.Staff, cfg.Overhead)

	// Stage 4: derived metrics and forecast
	netProfit := revenue.Total.Sub(cost.TotalExpenses)
	revenuePerHour := PerHour(revenue.Total, monthlyHours)
	costPerHour := PerHour(cost.TotalExpenses, monthlyHours)
	utilization := ComputeUtilization(hours, encounters, cfg.Staff)
	breakEven := ComputeBreakEven(cost.TotalOverhead, cost.TotalStaff, revenuePerHour, monthlyHours)

	forecast := Forecast(cfg.ForecastMonths, ForecastInputs{
		TotalRevenue:   revenue.Total,
		TotalExpenses:  cost.TotalExpenses,
		RevenuePerHour: revenuePerHour,
		CostPerHour:    costPerHour,
	}, cfg.Growth, cfg.Limits)

	scenarios := ScenarioDeltas(ScenarioInputs{
		TotalRevenue:        revenue.Total,
		RevenuePerHour:      revenuePerHour,
		VariableCostPerHour: breakEven.VariableCostPerHour,
		FixedCosts:          cost.TotalOverhead,
	}, cfg.Growth, cfg.Limits)

	margin := ProfitMargin(netProfit, revenue.Total)

	// Stage 5: advisory
	alerts := GenerateAlerts(AdvisorInputs{
		ActiveClients:  len(active),
		RawWeeklyHours: rawWeekly,
		RevenuePerHour: revenuePerHour,
		AtRiskClients:  atRisk,
		Hours:          hours,
	}, cfg.Limits, DefaultThresholds())

	findings := Validate(cfg, ValidateInputs{
		TotalRevenue:  revenue.Total,
		TotalExpenses: cost.TotalExpenses,
		ProfitMargin:  margin,
		Utilization:   utilization,
	})

	return MetricsSnapshot{
		ActiveClients:     len(active),
		RawWeeklyHours:    rawWeekly,
		BilledWeeklyHours: billedWeekly,
		MonthlyHours:      monthlyHours,
		Compliance:        compliance,
		AtRiskClients:     atRisk,
		Hours:             hours,
		Encounters:        encounters,
		TravelMinutes:     travelMinutes,
		Revenue:           revenue,
		Cost:              cost,
		NetProfit:         netProfit,
		ProfitMarginPct:   margin,
		RevenuePerHour:    revenuePerHour,
		CostPerHour:       costPerHour,
		ProfitPerHour:     PerHour(netProfit, monthlyHours),
		Utilization:       utilization,
		BreakEven:         breakEven,
		Ratios:            ComputeHealthcareRatios(revenue, cost, hours, len(active)),
		Forecast:          forecast,
		Scenarios:         scenarios,
		Alerts:            alerts,
		Findings:          findings,
	}
}
