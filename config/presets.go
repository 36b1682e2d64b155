/*
presets.go - Named demo configurations

Presets populate the dashboard with realistic rosters for demos and tests.
Each returns a complete, sanitized configuration; loading one replaces the
current configuration wholesale.

AVAILABLE PRESETS:
  baseline:       The three-client roster with program defaults
  lean-startup:   One client, minimal staffing, thin margins
  steady-state:   Eight clients near full technician capacity
  over-cap:       A roster entered above program limits, for compliance
                  and alert demonstrations
*/
package config

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/treehousetherapy/financial-dashboard/billing"
)

// Preset is a named, loadable demo configuration.
type Preset struct {
	ID          string
	Name        string
	Description string
	Build       func() billing.Config
}

// Presets lists the available demo configurations in display order.
var Presets = []Preset{
	{
		ID:          "baseline",
		Name:        "Baseline Practice",
		Description: "Three-client roster with program default rates and staffing",
		Build:       Default,
	},
	{
		ID:          "lean-startup",
		Name:        "Lean Startup",
		Description: "Single client, one technician, thin margins",
		Build:       LeanStartup,
	},
	{
		ID:          "steady-state",
		Name:        "Steady State",
		Description: "Eight clients near full technician capacity",
		Build:       SteadyState,
	},
	{
		ID:          "over-cap",
		Name:        "Over-Cap Stress",
		Description: "Roster entered above program limits to exercise compliance alerts",
		Build:       OverCapStress,
	},
}

// FindPreset returns the preset with the given ID, or false.
func FindPreset(id string) (Preset, bool) {
	for _, p := range Presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// LeanStartup is a single-client practice with one technician.
func LeanStartup() billing.Config {
	cfg := Default()
	cfg.Clients = []billing.Client{
		{ID: 1, Name: "Client 1", WeeklyHours: decimal.NewFromInt(12), Active: true, Age: 6},
	}
	cfg.Staff.Technician = billing.StaffTier{Count: 1, HourlyRate: decimal.NewFromInt(22)}
	cfg.Staff.Supervisor = billing.StaffTier{Count: 0, HourlyRate: decimal.NewFromInt(60)}
	cfg.Overhead.Rent = decimal.Zero
	cfg.Overhead.Other = decimal.NewFromInt(400)
	return cfg
}

// SteadyState is a mature roster running close to technician capacity.
func SteadyState() billing.Config {
	cfg := Default()
	cfg.Clients = make([]billing.Client, 0, 8)
	for i := 1; i <= 8; i++ {
		hours := decimal.NewFromInt(18)
		if i%3 == 0 {
			hours = decimal.NewFromInt(22)
		}
		cfg.Clients = append(cfg.Clients, billing.Client{
			ID:          i,
			Name:        fmt.Sprintf("Client %d", i),
			WeeklyHours: hours,
			Active:      true,
			Age:         4 + i,
			AnnualUsed:  decimal.NewFromInt(int64(i) * 2500),
		})
	}
	cfg.Staff.Technician = billing.StaffTier{Count: 4, HourlyRate: decimal.NewFromInt(26)}
	cfg.Staff.Analyst = billing.StaffTier{Count: 2, HourlyRate: decimal.NewFromInt(47)}
	return cfg
}

// OverCapStress enters clients above the weekly cap and near the annual
// dollar cap so every compliance and alert path fires.
func OverCapStress() billing.Config {
	cfg := Default()
	cfg.Clients = []billing.Client{
		{ID: 1, Name: "Client 1", WeeklyHours: decimal.NewFromInt(30), Active: true, Age: 5},
		{ID: 2, Name: "Client 2", WeeklyHours: decimal.NewFromInt(28), Active: true, Age: 8, AnnualUsed: decimal.NewFromInt(44000)},
		{ID: 3, Name: "Client 3", WeeklyHours: decimal.NewFromInt(20), Active: true, Age: 6, AnnualUsed: decimal.NewFromInt(46000)},
	}
	return cfg
}
