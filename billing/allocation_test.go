package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/treehousetherapy/financial-dashboard/billing"
	"github.com/treehousetherapy/financial-dashboard/config"
)

// =============================================================================
// DEMAND AGGREGATION
// =============================================================================

func TestMonthlyDemandHours_ClampsToWeeklyCap(t *testing.T) {
	// GIVEN: One client entered at 30 weekly hours under a 25-hour cap
	// WHEN: Aggregating monthly demand
	// THEN: Only the clamped 25 hours contribute

	limits := billing.ComplianceLimits{WeeklyHourCap: d("25"), AnnualDollarCap: d("45000")}
	clients := []billing.Client{
		{ID: 1, WeeklyHours: d("30"), Active: true},
	}

	got := billing.MonthlyDemandHours(clients, limits)

	assert.True(t, got.Equal(d("25").Mul(billing.WeeksPerMonth)), "got %s", got)
}

func TestMonthlyDemandHours_SkipsInactiveClients(t *testing.T) {
	limits := billing.ComplianceLimits{WeeklyHourCap: d("25")}
	clients := []billing.Client{
		{ID: 1, WeeklyHours: d("10"), Active: true},
		{ID: 2, WeeklyHours: d("20"), Active: false},
	}

	got := billing.MonthlyDemandHours(clients, limits)

	assert.True(t, got.Equal(d("10").Mul(billing.WeeksPerMonth)), "got %s", got)
}

// =============================================================================
// SERVICE-HOUR ALLOCATION
// =============================================================================

func TestAllocate_DistributionClosure(t *testing.T) {
	// GIVEN: A distribution summing to exactly 1.0 with no ceilings binding
	// WHEN: Allocating total demand hours
	// THEN: The allocated categories sum back to the total exactly

	total := d("199.18")
	breakdown := billing.Allocate(total, 3, config.DefaultDistribution(), config.DefaultLimits())

	assert.True(t, breakdown.Total().Equal(total),
		"allocated %s of %s", breakdown.Total(), total)
}

func TestAllocate_DailyCeilingBinds(t *testing.T) {
	// GIVEN: Demand far above what one client can receive under the daily cap
	// WHEN: Allocating
	// THEN: The category is ceilinged at clients x dailyCap x 30

	limits := billing.ComplianceLimits{
		WeeklyHourCap: d("1000"),
		DailyHourCaps: map[billing.ServiceCategory]decimal.Decimal{
			billing.DirectTherapy: d("6"),
		},
	}
	dist := billing.ServiceDistribution{billing.DirectTherapy: d("1.0")}

	breakdown := billing.Allocate(d("10000"), 1, dist, limits)

	// 1 client x 6 h/day x 30 days
	assert.True(t, breakdown.Get(billing.DirectTherapy).Equal(d("180")),
		"got %s", breakdown.Get(billing.DirectTherapy))
}

func TestAllocate_ZeroClients(t *testing.T) {
	breakdown := billing.Allocate(decimal.Zero, 0, config.DefaultDistribution(), config.DefaultLimits())
	assert.True(t, breakdown.Total().IsZero())
}

// =============================================================================
// ENCOUNTERS AND TRAVEL
// =============================================================================

func TestEncounterCounts_ScalesWithActiveClients(t *testing.T) {
	freq := map[billing.ServiceCategory]decimal.Decimal{
		billing.ITPReview:      d("1"),
		billing.CareConference: d("0.5"),
	}

	counts := billing.EncounterCounts(4, freq)

	assert.True(t, counts[billing.ITPReview].Equal(d("4")))
	assert.True(t, counts[billing.CareConference].Equal(d("2")))
}

func TestTotalSessions_CombinesTimeBasedAndEncounters(t *testing.T) {
	// GIVEN: 150 time-based hours at 1.5h average plus 5 encounter sessions
	// WHEN: Estimating sessions
	// THEN: 150/1.5 + 5 = 105

	hours := billing.HourBreakdown{billing.DirectTherapy: d("150")}
	encounters := map[billing.ServiceCategory]decimal.Decimal{
		billing.ITPReview: d("5"),
	}

	sessions := billing.TotalSessions(hours, encounters)

	assert.True(t, sessions.Equal(d("105")), "got %s", sessions)
}

func TestTravelMinutes(t *testing.T) {
	got := billing.TravelMinutes(d("105"), d("15"))
	assert.True(t, got.Equal(d("1575")), "got %s", got)
}
