/*
forecast.go - Multi-month growth projection

PURPOSE:
  Projects revenue, expenses, and profit over a selected horizon using the
  growth assumptions: new-client intake, per-client hours, and compounding
  annual rate and cost changes.

MODEL, for month m in 1..horizon:
  additionalClients = floor(m x newClientsPerMonth)
  additionalHours   = additionalClients x min(avgNewClientHours, weeklyCap)
                      x 4.33 (monthly hours; capped so projected intake never
                      exceeds program limits)
  rateMultiplier    = (1 + annualRateIncrease)^(m/12)
  costMultiplier    = (1 + annualCostInflation)^(m/12)
  revenue  = (currentRevenue + additionalHours x revenuePerHour) x rateMultiplier
  expenses = (currentExpenses + additionalHours x costPerHour) x costMultiplier

  The output is an ordered, fixed-length sequence. The function is
  stateless: identical inputs always produce an identical sequence.
*/
package billing

import (
	"math"

	"github.com/shopspring/decimal"
)

// Horizons are the selectable forecast lengths, in months.
var Horizons = []int{3, 6, 12, 24}

// DefaultHorizon is used when the configured horizon is not a valid choice.
const DefaultHorizon = 6

// NormalizeHorizon coerces an arbitrary integer to a valid horizon.
func NormalizeHorizon(months int) int {
	for _, h := range Horizons {
		if months == h {
			return months
		}
	}
	return DefaultHorizon
}

// ForecastPoint is one projected month.
type ForecastPoint struct {
	Month             int             `json:"month"`
	AdditionalClients int64           `json:"additional_clients"`
	AdditionalHours   decimal.Decimal `json:"additional_hours"`
	Revenue           decimal.Decimal `json:"revenue"`
	Expenses          decimal.Decimal `json:"expenses"`
	Profit            decimal.Decimal `json:"profit"`
	MarginPct         decimal.Decimal `json:"margin_pct"`
}

// ForecastInputs are the current-month figures the projection extends.
type ForecastInputs struct {
	TotalRevenue   decimal.Decimal
	TotalExpenses  decimal.Decimal
	RevenuePerHour decimal.Decimal
	CostPerHour    decimal.Decimal
}

// Forecast projects the given horizon from current metrics and growth
// assumptions. The returned sequence is ordered by month, ascending, with
// length exactly NormalizeHorizon(months).
func Forecast(months int, inputs ForecastInputs, growth GrowthAssumptions, limits ComplianceLimits) []ForecastPoint {
	horizon := NormalizeHorizon(months)

	weeklyPerClient := growth.AvgNewClientHours
	if weeklyPerClient.GreaterThan(limits.WeeklyHourCap) {
		weeklyPerClient = limits.WeeklyHourCap
	}

	points := make([]ForecastPoint, 0, horizon)
	for m := 1; m <= horizon; m++ {
		month := decimal.NewFromInt(int64(m))
		additionalClients := month.Mul(growth.NewClientsPerMonth).Floor().IntPart()
		additionalHours := decimal.NewFromInt(additionalClients).
			Mul(weeklyPerClient).
			Mul(WeeksPerMonth)

		rateMult := compound(growth.AnnualRateIncrease, m)
		costMult := compound(growth.AnnualCostInflation, m)

		revenue := inputs.TotalRevenue.
			Add(additionalHours.Mul(inputs.RevenuePerHour)).
			Mul(rateMult)
		expenses := inputs.TotalExpenses.
			Add(additionalHours.Mul(inputs.CostPerHour)).
			Mul(costMult)
		profit := revenue.Sub(expenses)

		points = append(points, ForecastPoint{
			Month:             m,
			AdditionalClients: additionalClients,
			AdditionalHours:   additionalHours,
			Revenue:           revenue,
			Expenses:          expenses,
			Profit:            profit,
			MarginPct:         ProfitMargin(profit, revenue),
		})
	}
	return points
}

// compound returns (1 + annualRate)^(m/12). The fractional exponent goes
// through float64; sub-cent precision is not meaningful in a projection.
func compound(annualRate decimal.Decimal, month int) decimal.Decimal {
	base, _ := decimal.NewFromInt(1).Add(annualRate).Float64()
	if base <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(math.Pow(base, float64(month)/12.0))
}
