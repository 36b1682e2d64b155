/*
revenue.go - Revenue calculation over the mixed-unit rate table

PURPOSE:
  Converts the service-hour breakdown, encounter counts, and travel minutes
  into revenue per category plus a total. The billing unit tagged on each
  rate determines the formula:

    per-15-minute-unit: revenue = hours x 4 x rate
    per-encounter:      revenue = sessions x rate
    per-minute:         revenue = minutes x rate

  There are no error conditions here: every multiplication is defined for
  any non-negative input, and inputs are coerced to zero upstream.

SEE ALSO:
  - allocation.go: Produces the quantities billed here
  - cost.go: The expense side
*/
package billing

import "github.com/shopspring/decimal"

// RevenueBreakdown holds revenue per category plus the total.
type RevenueBreakdown struct {
	ByCategory map[ServiceCategory]decimal.Decimal `json:"by_category"`
	Total      decimal.Decimal                     `json:"total"`
}

// Get returns the revenue for a category, zero if unset.
func (r RevenueBreakdown) Get(c ServiceCategory) decimal.Decimal {
	if v, ok := r.ByCategory[c]; ok {
		return v
	}
	return decimal.Zero
}

// ComputeRevenue bills every category according to its rate's unit.
func ComputeRevenue(hours HourBreakdown, rates RateTable, encounters map[ServiceCategory]decimal.Decimal, travelMinutes decimal.Decimal) RevenueBreakdown {
	byCategory := make(map[ServiceCategory]decimal.Decimal)
	total := decimal.Zero

	for _, cat := range TimeBasedCategories {
		rate := rates.Get(cat)
		rev := billQuantity(rate, hours.Get(cat))
		byCategory[cat] = rev
		total = total.Add(rev)
	}

	for _, cat := range EncounterCategories {
		rate := rates.Get(cat)
		rev := rate.PerUnit.Mul(encounters[cat])
		byCategory[cat] = rev
		total = total.Add(rev)
	}

	travelRev := rates.Get(Travel).PerUnit.Mul(travelMinutes)
	byCategory[Travel] = travelRev
	total = total.Add(travelRev)

	return RevenueBreakdown{ByCategory: byCategory, Total: total}
}

// billQuantity applies a time-based rate to a quantity of hours. Rates
// mis-tagged with a non-time unit bill their raw rate per hour, which keeps
// the function total without inventing revenue.
func billQuantity(rate Rate, hours decimal.Decimal) decimal.Decimal {
	switch rate.Unit {
	case UnitPer15Min:
		return hours.Mul(four).Mul(rate.PerUnit)
	default:
		return hours.Mul(rate.PerUnit)
	}
}
