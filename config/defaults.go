/*
defaults.go - Payer program default configuration

The figures here are the authoritative mixed-unit rate model: time-based
services billed per 15-minute unit, plan reviews and care conferences billed
per encounter, and travel billed per minute. Rates and limits reflect the
state Medicaid fee schedule the practice bills under.
*/
package config

import (
	"github.com/shopspring/decimal"

	"github.com/treehousetherapy/financial-dashboard/billing"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// DefaultLimits returns the payer program caps: 25 billable hours per
// client per week, a $45,000 annual dollar cap per client, and per-category
// daily hour ceilings.
func DefaultLimits() billing.ComplianceLimits {
	return billing.ComplianceLimits{
		WeeklyHourCap:   decimal.NewFromInt(25),
		AnnualDollarCap: decimal.NewFromInt(45000),
		DailyHourCaps: map[billing.ServiceCategory]decimal.Decimal{
			billing.DirectTherapy:  d("6"),
			billing.GroupTherapy:   d("2"),
			billing.Supervision:    d("1.5"),
			billing.FamilyTraining: d("1"),
			billing.FamilyGroup:    d("1"),
			billing.Assessment:     d("1"),
		},
	}
}

// DefaultRates returns the program fee schedule.
func DefaultRates() billing.RateTable {
	return billing.RateTable{
		billing.DirectTherapy:  {Category: billing.DirectTherapy, Unit: billing.UnitPer15Min, PerUnit: d("20.17")},
		billing.GroupTherapy:   {Category: billing.GroupTherapy, Unit: billing.UnitPer15Min, PerUnit: d("10.09")},
		billing.Supervision:    {Category: billing.Supervision, Unit: billing.UnitPer15Min, PerUnit: d("20.17")},
		billing.FamilyTraining: {Category: billing.FamilyTraining, Unit: billing.UnitPer15Min, PerUnit: d("20.17")},
		billing.FamilyGroup:    {Category: billing.FamilyGroup, Unit: billing.UnitPer15Min, PerUnit: d("10.09")},
		billing.Assessment:     {Category: billing.Assessment, Unit: billing.UnitPer15Min, PerUnit: d("23.70")},
		billing.ITPReview:      {Category: billing.ITPReview, Unit: billing.UnitPerEncounter, PerUnit: d("94.80")},
		billing.CareConference: {Category: billing.CareConference, Unit: billing.UnitPerEncounter, PerUnit: d("53.32")},
		billing.Travel:         {Category: billing.Travel, Unit: billing.UnitPerMinute, PerUnit: d("0.52")},
	}
}

// DefaultDistribution returns the service mix fractions. They sum to 1.0.
func DefaultDistribution() billing.ServiceDistribution {
	return billing.ServiceDistribution{
		billing.DirectTherapy:  d("0.80"),
		billing.GroupTherapy:   d("0.03"),
		billing.Supervision:    d("0.09"),
		billing.FamilyTraining: d("0.05"),
		billing.FamilyGroup:    d("0.02"),
		billing.Assessment:     d("0.01"),
	}
}

// Default returns the full baseline configuration: the three-client roster
// the practice opened with, program rates and limits, current staffing, and
// growth assumptions.
func Default() billing.Config {
	return billing.Config{
		Clients: []billing.Client{
			{ID: 1, Name: "Client 1", WeeklyHours: decimal.NewFromInt(6), Active: true, Age: 5},
			{ID: 2, Name: "Client 2", WeeklyHours: decimal.NewFromInt(20), Active: true, Age: 7},
			{ID: 3, Name: "Client 3", WeeklyHours: decimal.NewFromInt(20), Active: true, Age: 4},
		},
		Rates:        DefaultRates(),
		Distribution: DefaultDistribution(),
		Staff: billing.StaffConfig{
			Technician: billing.StaffTier{Count: 3, HourlyRate: decimal.NewFromInt(25)},
			Analyst:    billing.StaffTier{Count: 1, HourlyRate: decimal.NewFromInt(47)},
			Supervisor: billing.StaffTier{Count: 1, HourlyRate: decimal.NewFromInt(60)},
		},
		Overhead: billing.OverheadCosts{
			Rent:      decimal.NewFromInt(550),
			Insurance: decimal.NewFromInt(300),
			Licensing: decimal.NewFromInt(150),
			Other:     decimal.NewFromInt(1000),
		},
		Limits: DefaultLimits(),
		Growth: billing.GrowthAssumptions{
			NewClientsPerMonth:  d("0.5"),
			AvgNewClientHours:   decimal.NewFromInt(15),
			AnnualRateIncrease:  d("0.03"),
			AnnualCostInflation: d("0.025"),
		},
		EncounterFrequency: map[billing.ServiceCategory]decimal.Decimal{
			billing.ITPReview:      d("1"),
			billing.CareConference: d("0.5"),
		},
		TravelMinutesPerSession: decimal.NewFromInt(15),
		ForecastMonths:          billing.DefaultHorizon,
	}
}
