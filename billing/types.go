/*
Package billing provides the core rate and profitability calculation engine
for an ABA therapy practice billing under a state payer program.

PURPOSE:
  This package contains the domain calculation model: the rules that turn
  (client roster, service-mix percentages, per-service billing rates, staff
  rates, overhead) into revenue, cost, compliance-risk, break-even, and
  multi-month forecast figures.

KEY CONCEPTS IN THIS FILE (types.go):
  - ServiceCategory: A distinct billable activity type
  - BillingUnit: What quantity a rate is expressed per (15-min unit,
    encounter, or minute) - this determines how rate combines with quantity
  - Rate / RateTable: Mixed-unit billing rates
  - Config: One immutable configuration value per computation cycle

DESIGN PRINCIPLES:
  1. Purity: Every stage is a deterministic function of its inputs. The
     engine retains no state between invocations.
  2. Precision: Uses decimal.Decimal to avoid floating-point errors in
     money arithmetic.
  3. Total functions: The pipeline never fails for finite numeric input.
     All divisions guard their denominator; invalid input is coerced to
     zero before arithmetic (see config.Sanitize).
  4. Explicit units: Billing semantics are tagged on each rate rather than
     inferred from field naming.

SEE ALSO:
  - engine.go: ComputeAll pipeline and MetricsSnapshot
  - compliance.go: Per-client payer limit checks
  - allocation.go: Demand aggregation and service-hour allocation
  - revenue.go / cost.go: Revenue and staffing cost calculation
*/
package billing

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// SERVICE CATEGORIES
// =============================================================================

// ServiceCategory identifies a distinct billable activity type.
type ServiceCategory string

const (
	DirectTherapy  ServiceCategory = "direct_therapy"
	GroupTherapy   ServiceCategory = "group_therapy"
	Supervision    ServiceCategory = "supervision"
	FamilyTraining ServiceCategory = "family_training"
	FamilyGroup    ServiceCategory = "family_group"
	Assessment     ServiceCategory = "assessment"
	ITPReview      ServiceCategory = "itp_review"      // In-home therapeutic plan review
	CareConference ServiceCategory = "care_conference" // Coordinated care conference
	Travel         ServiceCategory = "travel"
)

// TimeBasedCategories lists the categories allocated from roster demand
// hours, in declaration order. Encounter and travel categories are computed
// directly from client counts and session counts, not from this allocation.
var TimeBasedCategories = []ServiceCategory{
	DirectTherapy,
	GroupTherapy,
	Supervision,
	FamilyTraining,
	FamilyGroup,
	Assessment,
}

// EncounterCategories lists the per-encounter categories in declaration order.
var EncounterCategories = []ServiceCategory{
	ITPReview,
	CareConference,
}

// =============================================================================
// BILLING UNITS AND RATES
// =============================================================================

// BillingUnit is the quantity a rate is expressed per.
type BillingUnit string

const (
	UnitPer15Min     BillingUnit = "per_15min_unit"
	UnitPerEncounter BillingUnit = "per_encounter"
	UnitPerMinute    BillingUnit = "per_minute"
)

// Rate is a billing rate tagged with its unit. The unit determines how the
// rate combines with quantity:
//   - UnitPer15Min:     revenue = hours x 4 x PerUnit
//   - UnitPerEncounter: revenue = sessions x PerUnit
//   - UnitPerMinute:    revenue = minutes x PerUnit
type Rate struct {
	Category ServiceCategory `json:"category"`
	Unit     BillingUnit     `json:"unit"`
	PerUnit  decimal.Decimal `json:"per_unit"`
}

// HourlyEquivalent returns the effective hourly rate for time-based rates
// (per-15-minute-unit rate x 4). For other units it returns the raw rate.
func (r Rate) HourlyEquivalent() decimal.Decimal {
	if r.Unit == UnitPer15Min {
		return r.PerUnit.Mul(four)
	}
	return r.PerUnit
}

// RateTable maps each service category to its billing rate.
type RateTable map[ServiceCategory]Rate

// Get returns the rate for a category, or a zero rate if unset. A missing
// rate behaves as $0 rather than failing (defensive-coercion policy).
func (t RateTable) Get(c ServiceCategory) Rate {
	if r, ok := t[c]; ok {
		return r
	}
	return Rate{Category: c, Unit: UnitPer15Min, PerUnit: decimal.Zero}
}

// =============================================================================
// CLIENTS AND DEMAND
// =============================================================================

// Client is one therapy recipient on the roster. Only active clients
// contribute to aggregate hour and revenue totals. WeeklyHours may be stored
// above the program weekly cap for scenario entry; billing calculations clamp
// it to the cap.
type Client struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	WeeklyHours decimal.Decimal `json:"weekly_hours"`
	Active      bool            `json:"active"`
	Age         int             `json:"age"`
	AnnualUsed  decimal.Decimal `json:"annual_used"` // Dollars billed against the annual cap
}

// BillableWeeklyHours returns weekly hours clamped to the program cap.
func (c Client) BillableWeeklyHours(limits ComplianceLimits) decimal.Decimal {
	if c.WeeklyHours.GreaterThan(limits.WeeklyHourCap) {
		return limits.WeeklyHourCap
	}
	return c.WeeklyHours
}

// ServiceDistribution maps time-based categories to the fraction of total
// monthly demand hours allocated to each. Fractions should sum to 1.0; a
// deviation is surfaced as a validation finding, not rejected.
type ServiceDistribution map[ServiceCategory]decimal.Decimal

// Sum returns the total of all fractions.
func (d ServiceDistribution) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, f := range d {
		total = total.Add(f)
	}
	return total
}

// =============================================================================
// STAFFING AND OVERHEAD
// =============================================================================

// StaffTier is a count of staff at one level plus their hourly rate.
// Capacity (Count x CapacityHoursPerStaff) is used for utilization reporting
// and the overtime threshold; it never constrains revenue.
type StaffTier struct {
	Count      int             `json:"count"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}

// CapacityHours returns the tier's nominal monthly capacity.
func (t StaffTier) CapacityHours() decimal.Decimal {
	return decimal.NewFromInt(int64(t.Count)).Mul(CapacityHoursPerStaff)
}

// StaffConfig holds the three staffing tiers of the practice.
type StaffConfig struct {
	Technician StaffTier `json:"technician"` // Behavior technician (BT)
	Analyst    StaffTier `json:"analyst"`    // Board-certified behavior analyst (BCBA)
	Supervisor StaffTier `json:"supervisor"` // Qualified supervising professional (QSP)
}

// OverheadCosts are the fixed monthly cost categories.
type OverheadCosts struct {
	Rent      decimal.Decimal `json:"rent"`
	Insurance decimal.Decimal `json:"insurance"`
	Licensing decimal.Decimal `json:"licensing"`
	Other     decimal.Decimal `json:"other"`
}

// Total returns the sum of all fixed monthly costs.
func (o OverheadCosts) Total() decimal.Decimal {
	return o.Rent.Add(o.Insurance).Add(o.Licensing).Add(o.Other)
}

// =============================================================================
// PROGRAM LIMITS AND GROWTH
// =============================================================================

// ComplianceLimits are the externally imposed payer program caps.
type ComplianceLimits struct {
	WeeklyHourCap   decimal.Decimal                     `json:"weekly_hour_cap"`
	AnnualDollarCap decimal.Decimal                     `json:"annual_dollar_cap"`
	DailyHourCaps   map[ServiceCategory]decimal.Decimal `json:"daily_hour_caps"`
}

// DailyCap returns the per-category daily ceiling, or zero if unset.
func (l ComplianceLimits) DailyCap(c ServiceCategory) decimal.Decimal {
	if cap, ok := l.DailyHourCaps[c]; ok {
		return cap
	}
	return decimal.Zero
}

// GrowthAssumptions drive the forecast stage only; they do not affect
// current-month metrics.
type GrowthAssumptions struct {
	NewClientsPerMonth  decimal.Decimal `json:"new_clients_per_month"`
	AvgNewClientHours   decimal.Decimal `json:"avg_new_client_hours"` // Weekly hours for a new client
	AnnualRateIncrease  decimal.Decimal `json:"annual_rate_increase"`
	AnnualCostInflation decimal.Decimal `json:"annual_cost_inflation"`
}

// =============================================================================
// CONFIGURATION - One immutable value per computation cycle
// =============================================================================

// Config is the full editable state snapshot the pipeline computes from.
// It is treated as immutable: edits produce a new Config value (see the
// config package) rather than mutating fields in place.
type Config struct {
	Clients                 []Client                            `json:"clients"`
	Rates                   RateTable                           `json:"rates"`
	Distribution            ServiceDistribution                 `json:"distribution"`
	Staff                   StaffConfig                         `json:"staff"`
	Overhead                OverheadCosts                       `json:"overhead"`
	Limits                  ComplianceLimits                    `json:"limits"`
	Growth                  GrowthAssumptions                   `json:"growth"`
	EncounterFrequency      map[ServiceCategory]decimal.Decimal `json:"encounter_frequency"` // Per active client per month
	TravelMinutesPerSession decimal.Decimal                     `json:"travel_minutes_per_session"`
	ForecastMonths          int                                 `json:"forecast_months"`
}

// ActiveClients returns the active subset of the roster.
func (c Config) ActiveClients() []Client {
	active := make([]Client, 0, len(c.Clients))
	for _, cl := range c.Clients {
		if cl.Active {
			active = append(active, cl)
		}
	}
	return active
}

// =============================================================================
// MODEL CONSTANTS
// =============================================================================

var (
	// WeeksPerMonth is the fixed 52/12 approximation used to convert weekly
	// roster hours into monthly demand hours.
	WeeksPerMonth = decimal.RequireFromString("4.33")

	// DaysPerMonth is the fixed approximation used for daily-cap ceilings.
	DaysPerMonth = decimal.NewFromInt(30)

	// AvgSessionHours is the assumed average session length used to estimate
	// session counts from time-based hours.
	AvgSessionHours = decimal.RequireFromString("1.5")

	// AdminTimeFraction is the documentation burden added to analyst service
	// hours.
	AdminTimeFraction = decimal.RequireFromString("0.28")

	// OvertimeMultiplier applies to technician hours above tier capacity.
	OvertimeMultiplier = decimal.RequireFromString("1.5")

	// CapacityHoursPerStaff is the nominal monthly hours per staff member,
	// used for utilization reporting and the overtime threshold.
	CapacityHoursPerStaff = decimal.NewFromInt(160)

	four    = decimal.NewFromInt(4)
	hundred = decimal.NewFromInt(100)
)

// safeDiv divides n by d, returning zero when the denominator is zero.
// Division-by-zero is always reported as 0 in this model, never NaN or an
// error (see the package error-handling policy).
func safeDiv(n, d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}
	return n.Div(d)
}

// ratioPct returns n/d as a percentage, with the usual zero guard.
func ratioPct(n, d decimal.Decimal) decimal.Decimal {
	return safeDiv(n, d).Mul(hundred)
}
