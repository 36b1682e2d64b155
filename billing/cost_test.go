package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/treehousetherapy/financial-dashboard/billing"
)

func testStaff() billing.StaffConfig {
	return billing.StaffConfig{
		Technician: billing.StaffTier{Count: 1, HourlyRate: d("25")},
		Analyst:    billing.StaffTier{Count: 1, HourlyRate: d("47")},
		Supervisor: billing.StaffTier{Count: 1, HourlyRate: d("60")},
	}
}

// =============================================================================
// TECHNICIAN TIER
// =============================================================================

func TestComputeStaffCost_TechnicianBaseOnly(t *testing.T) {
	// GIVEN: 100 direct hours against one technician's 160-hour capacity
	// WHEN: Computing staff cost
	// THEN: Base salary only - 1 x 25 x 160 = $4,000, no overtime

	hours := billing.HourBreakdown{billing.DirectTherapy: d("100")}

	cost := billing.ComputeStaffCost(hours, nil, testStaff(), billing.OverheadCosts{})

	assert.True(t, cost.TechnicianBase.Equal(d("4000")))
	assert.True(t, cost.TechnicianOvertime.IsZero())
	assert.True(t, cost.TechnicianTotal.Equal(d("4000")))
}

func TestComputeStaffCost_OvertimeAboveCapacity(t *testing.T) {
	// GIVEN: 200 direct hours against 160 hours of capacity
	// WHEN: Computing staff cost
	// THEN: The 40 excess hours bill at 1.5x: 40 x 25 x 1.5 = $1,500

	hours := billing.HourBreakdown{billing.DirectTherapy: d("200")}

	cost := billing.ComputeStaffCost(hours, nil, testStaff(), billing.OverheadCosts{})

	assert.True(t, cost.TechnicianOvertime.Equal(d("1500")),
		"got %s", cost.TechnicianOvertime)
	assert.True(t, cost.TechnicianTotal.Equal(d("5500")))
}

// =============================================================================
// ANALYST AND SUPERVISOR TIERS
// =============================================================================

func TestComputeStaffCost_AnalystAdminBurden(t *testing.T) {
	// GIVEN: 50 analyst service hours (supervision)
	// WHEN: Computing staff cost
	// THEN: 28% documentation time rides on top: (50 + 14) x 47

	hours := billing.HourBreakdown{billing.Supervision: d("50")}
	staff := billing.StaffConfig{Analyst: billing.StaffTier{Count: 1, HourlyRate: d("47")}}

	cost := billing.ComputeStaffCost(hours, nil, staff, billing.OverheadCosts{})

	assert.True(t, cost.AnalystService.Equal(d("2350")), "got %s", cost.AnalystService)
	assert.True(t, cost.AnalystAdmin.Equal(d("658")), "got %s", cost.AnalystAdmin)
	assert.True(t, cost.AnalystTotal.Equal(d("3008")), "got %s", cost.AnalystTotal)
}

func TestComputeStaffCost_SupervisorPerEncounter(t *testing.T) {
	// Each encounter session costs one hour of supervisor time.
	encounters := map[billing.ServiceCategory]decimal.Decimal{
		billing.ITPReview:      d("3"),
		billing.CareConference: d("1.5"),
	}
	staff := billing.StaffConfig{Supervisor: billing.StaffTier{Count: 1, HourlyRate: d("60")}}

	cost := billing.ComputeStaffCost(billing.HourBreakdown{}, encounters, staff, billing.OverheadCosts{})

	assert.True(t, cost.SupervisorTotal.Equal(d("270")), "got %s", cost.SupervisorTotal)
}

// =============================================================================
// TOTALS
// =============================================================================

func TestComputeStaffCost_TotalsIncludeOverhead(t *testing.T) {
	overhead := billing.OverheadCosts{
		Rent:      d("550"),
		Insurance: d("300"),
		Licensing: d("150"),
		Other:     d("1000"),
	}
	hours := billing.HourBreakdown{billing.DirectTherapy: d("100")}

	cost := billing.ComputeStaffCost(hours, nil, testStaff(), overhead)

	assert.True(t, cost.TotalOverhead.Equal(d("2000")))
	assert.True(t, cost.TotalExpenses.Equal(cost.TotalStaff.Add(d("2000"))))
}

func TestServiceHourGroupings(t *testing.T) {
	hours := billing.HourBreakdown{
		billing.DirectTherapy:  d("100"),
		billing.GroupTherapy:   d("10"),
		billing.Supervision:    d("9"),
		billing.FamilyTraining: d("5"),
		billing.FamilyGroup:    d("2"),
		billing.Assessment:     d("1"),
	}

	assert.True(t, billing.DirectServiceHours(hours).Equal(d("110")))
	assert.True(t, billing.AnalystServiceHours(hours).Equal(d("17")))
}
