/*
dto.go - Data Transfer Objects for API responses

PURPOSE:
  Defines the JSON structures returned to clients. These types decouple the
  internal decimal-based domain model from the external API contract: every
  monetary and hour figure crosses the boundary as a plain JSON number.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

CONVERSION:
  toMetricsDTO walks a billing.MetricsSnapshot and converts each
  decimal.Decimal via Float64. Precision loss at this boundary is
  display-level only; all arithmetic already happened in decimal.

SEE ALSO:
  - handlers.go: Uses these types
  - billing/engine.go: MetricsSnapshot source type
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/treehousetherapy/financial-dashboard/billing"
	"github.com/treehousetherapy/financial-dashboard/store/sqlite"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// ClientDTO represents one roster entry in API responses.
type ClientDTO struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	WeeklyHours float64 `json:"weekly_hours"`
	Active      bool    `json:"active"`
	Age         int     `json:"age"`
	AnnualUsed  float64 `json:"annual_used"`
}

// ComplianceDTO represents one client's limit checks.
type ComplianceDTO struct {
	ClientID             int     `json:"client_id"`
	Name                 string  `json:"name"`
	WeeklyHoursCompliant bool    `json:"weekly_hours_compliant"`
	AnnualCapRemaining   float64 `json:"annual_cap_remaining"`
	CanContinueServices  bool    `json:"can_continue_services"`
	AtRisk               bool    `json:"at_risk"`
}

// RevenueDTO represents the revenue breakdown.
type RevenueDTO struct {
	ByCategory map[string]float64 `json:"by_category"`
	Total      float64            `json:"total"`
}

// CostDTO represents the cost breakdown.
type CostDTO struct {
	TechnicianBase     float64 `json:"technician_base"`
	TechnicianOvertime float64 `json:"technician_overtime"`
	TechnicianTotal    float64 `json:"technician_total"`
	AnalystService     float64 `json:"analyst_service"`
	AnalystAdmin       float64 `json:"analyst_admin"`
	AnalystTotal       float64 `json:"analyst_total"`
	SupervisorTotal    float64 `json:"supervisor_total"`
	TotalStaff         float64 `json:"total_staff"`
	TotalOverhead      float64 `json:"total_overhead"`
	TotalExpenses      float64 `json:"total_expenses"`
}

// UtilizationDTO represents per-tier utilization percentages.
type UtilizationDTO struct {
	TechnicianPct float64 `json:"technician_pct"`
	AnalystPct    float64 `json:"analyst_pct"`
	SupervisorPct float64 `json:"supervisor_pct"`
}

// BreakEvenDTO represents the break-even analysis.
type BreakEvenDTO struct {
	FixedCosts                float64 `json:"fixed_costs"`
	VariableCostPerHour       float64 `json:"variable_cost_per_hour"`
	ContributionMarginPerHour float64 `json:"contribution_margin_per_hour"`
	Reachable                 bool    `json:"reachable"`
	Hours                     int64   `json:"hours"`
	SafetyMarginPct           float64 `json:"safety_margin_pct"`
}

// RatiosDTO represents the supplemental healthcare ratios.
type RatiosDTO struct {
	StaffCostRatioPct    float64 `json:"staff_cost_ratio_pct"`
	RevenuePerDirectHour float64 `json:"revenue_per_direct_hour"`
	AdminTimeRatioPct    float64 `json:"admin_time_ratio_pct"`
	AverageClientValue   float64 `json:"average_client_value"`
	EstimatedCollections float64 `json:"estimated_collections"`
}

// ForecastPointDTO represents one projected month.
type ForecastPointDTO struct {
	Month             int     `json:"month"`
	AdditionalClients int64   `json:"additional_clients"`
	AdditionalHours   float64 `json:"additional_hours"`
	Revenue           float64 `json:"revenue"`
	Expenses          float64 `json:"expenses"`
	Profit            float64 `json:"profit"`
	MarginPct         float64 `json:"margin_pct"`
}

// ScenarioDeltaDTO represents one what-if result.
type ScenarioDeltaDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	ProfitDelta float64 `json:"profit_delta"`
}

// AlertDTO represents one advisory alert.
type AlertDTO struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// FindingDTO represents one validation finding.
type FindingDTO struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// MetricsDTO is the full snapshot returned by GET /api/metrics.
type MetricsDTO struct {
	ActiveClients     int                `json:"active_clients"`
	RawWeeklyHours    float64            `json:"raw_weekly_hours"`
	BilledWeeklyHours float64            `json:"billed_weekly_hours"`
	MonthlyHours      float64            `json:"monthly_hours"`
	Compliance        []ComplianceDTO    `json:"compliance"`
	AtRiskClients     int                `json:"at_risk_clients"`
	Hours             map[string]float64 `json:"hours"`
	Encounters        map[string]float64 `json:"encounters"`
	TravelMinutes     float64            `json:"travel_minutes"`
	Revenue           RevenueDTO         `json:"revenue"`
	Cost              CostDTO            `json:"cost"`
	NetProfit         float64            `json:"net_profit"`
	ProfitMarginPct   float64            `json:"profit_margin_pct"`
	RevenuePerHour    float64            `json:"revenue_per_hour"`
	CostPerHour       float64            `json:"cost_per_hour"`
	ProfitPerHour     float64            `json:"profit_per_hour"`
	Utilization       UtilizationDTO     `json:"utilization"`
	BreakEven         BreakEvenDTO       `json:"break_even"`
	Ratios            RatiosDTO          `json:"ratios"`
	Forecast          []ForecastPointDTO `json:"forecast"`
	Scenarios         []ScenarioDeltaDTO `json:"scenarios"`
	Alerts            []AlertDTO         `json:"alerts"`
	Findings          []FindingDTO       `json:"findings"`
}

// ExportDTO is the full JSON export: the computed snapshot plus the raw
// input configuration. A deliberate full dump with no version field.
type ExportDTO struct {
	Metrics MetricsDTO     `json:"metrics"`
	Config  billing.Config `json:"config"`
}

// AnalysisDTO represents a saved analysis.
type AnalysisDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// SaveAnalysisRequest is the request to save the current configuration.
type SaveAnalysisRequest struct {
	Name string `json:"name"`
}

// ScenarioDTO represents a loadable demo preset.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a preset to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func f(d decimal.Decimal) float64 {
	v, _ := d.Float64()
	return v
}

func categoryMap(m map[billing.ServiceCategory]decimal.Decimal) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[string(k)] = f(v)
	}
	return out
}

func toClientDTO(c billing.Client) ClientDTO {
	return ClientDTO{
		ID:          c.ID,
		Name:        c.Name,
		WeeklyHours: f(c.WeeklyHours),
		Active:      c.Active,
		Age:         c.Age,
		AnnualUsed:  f(c.AnnualUsed),
	}
}

func toAnalysisDTO(a sqlite.Analysis) AnalysisDTO {
	return AnalysisDTO{
		ID:        a.ID,
		Name:      a.Name,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.Format(time.RFC3339),
	}
}

func toForecastDTOs(points []billing.ForecastPoint) []ForecastPointDTO {
	out := make([]ForecastPointDTO, len(points))
	for i, p := range points {
		out[i] = ForecastPointDTO{
			Month:             p.Month,
			AdditionalClients: p.AdditionalClients,
			AdditionalHours:   f(p.AdditionalHours),
			Revenue:           f(p.Revenue),
			Expenses:          f(p.Expenses),
			Profit:            f(p.Profit),
			MarginPct:         f(p.MarginPct),
		}
	}
	return out
}

func toMetricsDTO(m billing.MetricsSnapshot) MetricsDTO {
	compliance := make([]ComplianceDTO, len(m.Compliance))
	for i, c := range m.Compliance {
		compliance[i] = ComplianceDTO{
			ClientID:             c.ClientID,
			Name:                 c.Name,
			WeeklyHoursCompliant: c.Result.WeeklyHoursCompliant,
			AnnualCapRemaining:   f(c.Result.AnnualCapRemaining),
			CanContinueServices:  c.Result.CanContinueServices,
			AtRisk:               c.AtRisk(),
		}
	}

	scenarios := make([]ScenarioDeltaDTO, len(m.Scenarios))
	for i, s := range m.Scenarios {
		scenarios[i] = ScenarioDeltaDTO{ID: s.ID, Name: s.Name, ProfitDelta: f(s.ProfitDelta)}
	}

	alerts := make([]AlertDTO, len(m.Alerts))
	for i, a := range m.Alerts {
		alerts[i] = AlertDTO{Kind: string(a.Kind), Message: a.Message}
	}

	findings := make([]FindingDTO, len(m.Findings))
	for i, fd := range m.Findings {
		findings[i] = FindingDTO{Severity: string(fd.Severity), Message: fd.Message}
	}

	hours := make(map[string]float64, len(m.Hours))
	for k, v := range m.Hours {
		hours[string(k)] = f(v)
	}

	revenue := RevenueDTO{ByCategory: categoryMap(m.Revenue.ByCategory), Total: f(m.Revenue.Total)}

	return MetricsDTO{
		ActiveClients:     m.ActiveClients,
		RawWeeklyHours:    f(m.RawWeeklyHours),
		BilledWeeklyHours: f(m.BilledWeeklyHours),
		MonthlyHours:      f(m.MonthlyHours),
		Compliance:        compliance,
		AtRiskClients:     m.AtRiskClients,
		Hours:             hours,
		Encounters:        categoryMap(m.Encounters),
		TravelMinutes:     f(m.TravelMinutes),
		Revenue:           revenue,
		Cost: CostDTO{
			TechnicianBase:     f(m.Cost.TechnicianBase),
			TechnicianOvertime: f(m.Cost.TechnicianOvertime),
			TechnicianTotal:    f(m.Cost.TechnicianTotal),
			AnalystService:     f(m.Cost.AnalystService),
			AnalystAdmin:       f(m.Cost.AnalystAdmin),
			AnalystTotal:       f(m.Cost.AnalystTotal),
			SupervisorTotal:    f(m.Cost.SupervisorTotal),
			TotalStaff:         f(m.Cost.TotalStaff),
			TotalOverhead:      f(m.Cost.TotalOverhead),
			TotalExpenses:      f(m.Cost.TotalExpenses),
		},
		NetProfit:       f(m.NetProfit),
		ProfitMarginPct: f(m.ProfitMarginPct),
		RevenuePerHour:  f(m.RevenuePerHour),
		CostPerHour:     f(m.CostPerHour),
		ProfitPerHour:   f(m.ProfitPerHour),
		Utilization: UtilizationDTO{
			TechnicianPct: f(m.Utilization.TechnicianPct),
			AnalystPct:    f(m.Utilization.AnalystPct),
			SupervisorPct: f(m.Utilization.SupervisorPct),
		},
		BreakEven: BreakEvenDTO{
			FixedCosts:                f(m.BreakEven.FixedCosts),
			VariableCostPerHour:       f(m.BreakEven.VariableCostPerHour),
			ContributionMarginPerHour: f(m.BreakEven.ContributionMarginPerHour),
			Reachable:                 m.BreakEven.Reachable,
			Hours:                     m.BreakEven.Hours,
			SafetyMarginPct:           f(m.BreakEven.SafetyMarginPct),
		},
		Ratios: RatiosDTO{
			StaffCostRatioPct:    f(m.Ratios.StaffCostRatioPct),
			RevenuePerDirectHour: f(m.Ratios.RevenuePerDirectHour),
			AdminTimeRatioPct:    f(m.Ratios.AdminTimeRatioPct),
			AverageClientValue:   f(m.Ratios.AverageClientValue),
			EstimatedCollections: f(m.Ratios.EstimatedCollections),
		},
		Forecast:  toForecastDTOs(m.Forecast),
		Scenarios: scenarios,
		Alerts:    alerts,
		Findings:  findings,
	}
}
