/*
cost.go - Staffing and overhead cost calculation

PURPOSE:
  Converts the service-hour breakdown and staffing configuration into labor
  cost per tier plus total expenses.

COST MODEL:
  Technician (BT) tier:
    base = count x hourlyRate x capacityHoursPerStaff
    Hours of direct service above total tier capacity are billed at the
    overtime multiplier. Cost is NOT ceilinged by capacity - capacity only
    changes the rate applied above the threshold.

  Analyst (BCBA) tier:
    (serviceHours + adminHours) x hourlyRate, where adminHours is the fixed
    documentation-burden fraction of service hours.

  Supervisor (QSP) tier:
    Encounter sessions (plan reviews, care conferences) are QSP-delivered;
    each is costed at one hour of supervisor time.

  totalExpenses = totalStaffCost + fixed overhead.
*/
package billing

import "github.com/shopspring/decimal"

// CostBreakdown holds labor cost per tier plus overhead and totals.
type CostBreakdown struct {
	TechnicianBase     decimal.Decimal `json:"technician_base"`
	TechnicianOvertime decimal.Decimal `json:"technician_overtime"`
	TechnicianTotal    decimal.Decimal `json:"technician_total"`
	AnalystService     decimal.Decimal `json:"analyst_service"`
	AnalystAdmin       decimal.Decimal `json:"analyst_admin"`
	AnalystTotal       decimal.Decimal `json:"analyst_total"`
	SupervisorTotal    decimal.Decimal `json:"supervisor_total"`
	TotalStaff         decimal.Decimal `json:"total_staff"`
	TotalOverhead      decimal.Decimal `json:"total_overhead"`
	TotalExpenses      decimal.Decimal `json:"total_expenses"`
}

// DirectServiceHours returns the technician-delivered hour total: direct
// and group therapy.
func DirectServiceHours(hours HourBreakdown) decimal.Decimal {
	return hours.Get(DirectTherapy).Add(hours.Get(GroupTherapy))
}

// AnalystServiceHours returns the analyst-delivered hour total: supervision,
// family training, family group, and assessment.
func AnalystServiceHours(hours HourBreakdown) decimal.Decimal {
	return hours.Get(Supervision).
		Add(hours.Get(FamilyTraining)).
		Add(hours.Get(FamilyGroup)).
		Add(hours.Get(Assessment))
}

// ComputeStaffCost converts the hour breakdown and staffing configuration
// into a full cost breakdown.
func ComputeStaffCost(hours HourBreakdown, encounters map[ServiceCategory]decimal.Decimal, staff StaffConfig, overhead OverheadCosts) CostBreakdown {
	direct := DirectServiceHours(hours)

	// Technician: salaried capacity plus overtime above it.
	techBase := decimal.NewFromInt(int64(staff.Technician.Count)).
		Mul(staff.Technician.HourlyRate).
		Mul(CapacityHoursPerStaff)
	techOvertime := decimal.Zero
	if excess := direct.Sub(staff.Technician.CapacityHours()); excess.IsPositive() {
		techOvertime = excess.Mul(staff.Technician.HourlyRate).Mul(OvertimeMultiplier)
	}
	techTotal := techBase.Add(techOvertime)

	// Analyst: service hours plus documentation burden.
	analystService := AnalystServiceHours(hours)
	analystAdmin := analystService.Mul(AdminTimeFraction)
	analystTotal := analystService.Add(analystAdmin).Mul(staff.Analyst.HourlyRate)

	// Supervisor: one hour per encounter session.
	encounterSessions := decimal.Zero
	for _, cat := range EncounterCategories {
		encounterSessions = encounterSessions.Add(encounters[cat])
	}
	supervisorTotal := encounterSessions.Mul(staff.Supervisor.HourlyRate)

	totalStaff := techTotal.Add(analystTotal).Add(supervisorTotal)
	totalOverhead := overhead.Total()

	return CostBreakdown{
		TechnicianBase:     techBase,
		TechnicianOvertime: techOvertime,
		TechnicianTotal:    techTotal,
		AnalystService:     analystService.Mul(staff.Analyst.HourlyRate),
		AnalystAdmin:       analystAdmin.Mul(staff.Analyst.HourlyRate),
		AnalystTotal:       analystTotal,
		SupervisorTotal:    supervisorTotal,
		TotalStaff:         totalStaff,
		TotalOverhead:      totalOverhead,
		TotalExpenses:      totalStaff.Add(totalOverhead),
	}
}
