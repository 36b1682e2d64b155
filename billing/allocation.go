/*
allocation.go - Demand aggregation and service-hour allocation

PURPOSE:
  Converts aggregate roster hours into a breakdown of hours by time-based
  service category, applying per-category daily ceilings. Also derives the
  encounter counts and travel minutes consumed by the revenue stage.

ALGORITHM:
  totalMonthlyDemandHours = sum of min(weeklyHours, weeklyCap) over active
  clients, times 4.33 (average weeks per month).

  For each time-based category:
    candidate = totalMonthlyDemandHours x distribution[category]
    allocated = min(candidate, activeClients x dailyCap[category] x 30)

  Encounter categories are NOT allocated from demand hours; they are
  activeClients x perClientMonthlyFrequency.

  Travel minutes = total sessions x travel-minutes-per-session, where total
  sessions approximates time-based hours / 1.5h average session length plus
  the encounter session count.

EDGE CASES:
  Zero active clients yields zero everywhere. Allocation is multiplicative,
  never divisive, so no zero guards are needed at this stage.

SEE ALSO:
  - revenue.go: Consumes the breakdown produced here
*/
package billing

import "github.com/shopspring/decimal"

// HourBreakdown maps each time-based category to its allocated monthly hours.
type HourBreakdown map[ServiceCategory]decimal.Decimal

// Get returns the allocated hours for a category, zero if unset.
func (h HourBreakdown) Get(c ServiceCategory) decimal.Decimal {
	if v, ok := h[c]; ok {
		return v
	}
	return decimal.Zero
}

// Total returns the sum of all allocated category hours.
func (h HourBreakdown) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range h {
		total = total.Add(v)
	}
	return total
}

// MonthlyDemandHours aggregates billable weekly hours over active clients
// into monthly demand hours. Each client's contribution is clamped to the
// program weekly cap; the stored over-cap value only matters for compliance
// and alerting.
func MonthlyDemandHours(clients []Client, limits ComplianceLimits) decimal.Decimal {
	weekly := decimal.Zero
	for _, cl := range clients {
		if !cl.Active {
			continue
		}
		weekly = weekly.Add(cl.BillableWeeklyHours(limits))
	}
	return weekly.Mul(WeeksPerMonth)
}

// Allocate distributes total monthly demand hours across the time-based
// categories, ceiling each category at activeClients x dailyCap x 30.
func Allocate(totalMonthlyDemandHours decimal.Decimal, activeClientCount int, dist ServiceDistribution, limits ComplianceLimits) HourBreakdown {
	clients := decimal.NewFromInt(int64(activeClientCount))
	breakdown := make(HourBreakdown, len(TimeBasedCategories))
	for _, cat := range TimeBasedCategories {
		candidate := totalMonthlyDemandHours.Mul(dist[cat])
		ceiling := clients.Mul(limits.DailyCap(cat)).Mul(DaysPerMonth)
		if candidate.GreaterThan(ceiling) {
			candidate = ceiling
		}
		breakdown[cat] = candidate
	}
	return breakdown
}

// EncounterCounts derives monthly session counts for the encounter-based
// categories from the active client count and per-client frequencies.
func EncounterCounts(activeClientCount int, frequency map[ServiceCategory]decimal.Decimal) map[ServiceCategory]decimal.Decimal {
	clients := decimal.NewFromInt(int64(activeClientCount))
	counts := make(map[ServiceCategory]decimal.Decimal, len(EncounterCategories))
	for _, cat := range EncounterCategories {
		counts[cat] = clients.Mul(frequency[cat])
	}
	return counts
}

// TotalSessions approximates the number of sessions across all categories:
// time-based hours divided by the assumed average session length, plus the
// encounter session count.
func TotalSessions(hours HourBreakdown, encounters map[ServiceCategory]decimal.Decimal) decimal.Decimal {
	sessions := safeDiv(hours.Total(), AvgSessionHours)
	for _, cat := range EncounterCategories {
		sessions = sessions.Add(encounters[cat])
	}
	return sessions
}

// TravelMinutes derives total monthly travel minutes from session counts and
// the per-session travel assumption.
func TravelMinutes(sessions, minutesPerSession decimal.Decimal) decimal.Decimal {
	return sessions.Mul(minutesPerSession)
}
