/*
sanitize.go - Defensive numeric coercion

The calculation pipeline must never fail for any finite numeric input, so
coercion happens here, before arithmetic: negative figures become zero,
absent maps get their program defaults, and an invalid forecast horizon
falls back to the default. Sanitize never mutates its input; it returns a
coerced copy.
*/
package config

import (
	"github.com/shopspring/decimal"

	"github.com/treehousetherapy/financial-dashboard/billing"
)

func clampNonNegative(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}

// Sanitize returns a coerced copy of the configuration that the pipeline
// can consume safely.
func Sanitize(cfg billing.Config) billing.Config {
	out := cfg

	out.Clients = make([]billing.Client, len(cfg.Clients))
	for i, cl := range cfg.Clients {
		cl.WeeklyHours = clampNonNegative(cl.WeeklyHours)
		cl.AnnualUsed = clampNonNegative(cl.AnnualUsed)
		if cl.Age < 0 {
			cl.Age = 0
		}
		out.Clients[i] = cl
	}

	out.Rates = make(billing.RateTable, len(cfg.Rates))
	for cat, rate := range cfg.Rates {
		rate.PerUnit = clampNonNegative(rate.PerUnit)
		if rate.Category == "" {
			rate.Category = cat
		}
		out.Rates[cat] = rate
	}
	if len(out.Rates) == 0 {
		out.Rates = DefaultRates()
	}

	out.Distribution = make(billing.ServiceDistribution, len(cfg.Distribution))
	for cat, frac := range cfg.Distribution {
		out.Distribution[cat] = clampNonNegative(frac)
	}
	if len(out.Distribution) == 0 {
		out.Distribution = DefaultDistribution()
	}

	out.Staff.Technician = sanitizeTier(cfg.Staff.Technician)
	out.Staff.Analyst = sanitizeTier(cfg.Staff.Analyst)
	out.Staff.Supervisor = sanitizeTier(cfg.Staff.Supervisor)

	out.Overhead.Rent = clampNonNegative(cfg.Overhead.Rent)
	out.Overhead.Insurance = clampNonNegative(cfg.Overhead.Insurance)
	out.Overhead.Licensing = clampNonNegative(cfg.Overhead.Licensing)
	out.Overhead.Other = clampNonNegative(cfg.Overhead.Other)

	out.Limits.WeeklyHourCap = clampNonNegative(cfg.Limits.WeeklyHourCap)
	out.Limits.AnnualDollarCap = clampNonNegative(cfg.Limits.AnnualDollarCap)
	out.Limits.DailyHourCaps = make(map[billing.ServiceCategory]decimal.Decimal, len(cfg.Limits.DailyHourCaps))
	for cat, cap := range cfg.Limits.DailyHourCaps {
		out.Limits.DailyHourCaps[cat] = clampNonNegative(cap)
	}
	if len(out.Limits.DailyHourCaps) == 0 {
		out.Limits.DailyHourCaps = DefaultLimits().DailyHourCaps
	}

	out.Growth.NewClientsPerMonth = clampNonNegative(cfg.Growth.NewClientsPerMonth)
	out.Growth.AvgNewClientHours = clampNonNegative(cfg.Growth.AvgNewClientHours)
	// Rate and inflation assumptions may legitimately be negative
	// (payer cuts, deflation); they pass through unchanged.

	out.EncounterFrequency = make(map[billing.ServiceCategory]decimal.Decimal, len(cfg.EncounterFrequency))
	for cat, freq := range cfg.EncounterFrequency {
		out.EncounterFrequency[cat] = clampNonNegative(freq)
	}
	out.TravelMinutesPerSession = clampNonNegative(cfg.TravelMinutesPerSession)

	out.ForecastMonths = billing.NormalizeHorizon(cfg.ForecastMonths)

	return out
}

func sanitizeTier(t billing.StaffTier) billing.StaffTier {
	if t.Count < 0 {
		t.Count = 0
	}
	t.HourlyRate = clampNonNegative(t.HourlyRate)
	return t
}
