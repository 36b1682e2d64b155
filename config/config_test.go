package config_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treehousetherapy/financial-dashboard/billing"
	"github.com/treehousetherapy/financial-dashboard/config"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// =============================================================================
// CLIENT EDITS
// =============================================================================

func TestAddClient_AssignsNextID(t *testing.T) {
	// GIVEN: The default three-client roster
	// WHEN: Adding a client
	// THEN: It gets ID 4, a placeholder name, and the original config is
	//       untouched (copy-on-write)

	cfg := config.Default()

	out, client := config.AddClient(cfg)

	assert.Equal(t, 4, client.ID)
	assert.Equal(t, "Client 4", client.Name)
	assert.True(t, client.Active)
	assert.Len(t, out.Clients, 4)
	assert.Len(t, cfg.Clients, 3, "input configuration is not mutated")
}

func TestAddClient_EmptyRosterStartsAtOne(t *testing.T) {
	out, client := config.AddClient(billing.Config{})
	assert.Equal(t, 1, client.ID)
	assert.Len(t, out.Clients, 1)
}

func TestAddClient_ReusesNoIDs(t *testing.T) {
	// IDs are never reused after a removal: max+1, not len+1.
	cfg := config.Default()
	cfg, err := config.RemoveClient(cfg, 2)
	require.NoError(t, err)

	_, client := config.AddClient(cfg)
	assert.Equal(t, 4, client.ID)
}

func TestUpdateClient_PatchesOnlyProvidedFields(t *testing.T) {
	cfg := config.Default()
	hours := dec("18")
	inactive := false

	out, err := config.UpdateClient(cfg, 2, config.ClientPatch{
		WeeklyHours: &hours,
		Active:      &inactive,
	})

	require.NoError(t, err)
	assert.True(t, out.Clients[1].WeeklyHours.Equal(dec("18")))
	assert.False(t, out.Clients[1].Active)
	assert.Equal(t, "Client 2", out.Clients[1].Name, "unpatched field unchanged")
	assert.True(t, cfg.Clients[1].WeeklyHours.Equal(dec("20")), "input not mutated")
}

func TestUpdateClient_ClampsNegativeHours(t *testing.T) {
	cfg := config.Default()
	hours := dec("-5")

	out, err := config.UpdateClient(cfg, 1, config.ClientPatch{WeeklyHours: &hours})

	require.NoError(t, err)
	assert.True(t, out.Clients[0].WeeklyHours.IsZero())
}

func TestUpdateClient_UnknownID(t *testing.T) {
	_, err := config.UpdateClient(config.Default(), 99, config.ClientPatch{})
	assert.ErrorIs(t, err, config.ErrClientNotFound)
}

func TestRemoveClient(t *testing.T) {
	cfg := config.Default()

	out, err := config.RemoveClient(cfg, 2)

	require.NoError(t, err)
	require.Len(t, out.Clients, 2)
	assert.Equal(t, 1, out.Clients[0].ID)
	assert.Equal(t, 3, out.Clients[1].ID)

	_, err = config.RemoveClient(cfg, 99)
	assert.ErrorIs(t, err, config.ErrClientNotFound)
}

// =============================================================================
// SANITIZATION
// =============================================================================

func TestSanitize_CoercesNegatives(t *testing.T) {
	// GIVEN: A configuration with negative figures throughout
	// WHEN: Sanitizing
	// THEN: Negatives coerce to zero; arithmetic downstream stays total

	cfg := config.Default()
	cfg.Clients[0].WeeklyHours = dec("-10")
	cfg.Overhead.Rent = dec("-550")
	cfg.Staff.Technician.Count = -3
	cfg.TravelMinutesPerSession = dec("-15")

	out := config.Sanitize(cfg)

	assert.True(t, out.Clients[0].WeeklyHours.IsZero())
	assert.True(t, out.Overhead.Rent.IsZero())
	assert.Equal(t, 0, out.Staff.Technician.Count)
	assert.True(t, out.TravelMinutesPerSession.IsZero())
}

func TestSanitize_FillsEmptyMapsWithDefaults(t *testing.T) {
	out := config.Sanitize(billing.Config{})

	assert.NotEmpty(t, out.Rates)
	assert.NotEmpty(t, out.Distribution)
	assert.NotEmpty(t, out.Limits.DailyHourCaps)
	assert.Equal(t, billing.DefaultHorizon, out.ForecastMonths)
}

func TestSanitize_NegativeGrowthRatesPassThrough(t *testing.T) {
	// Payer cuts are a legitimate scenario; rate assumptions keep their sign.
	cfg := config.Default()
	cfg.Growth.AnnualRateIncrease = dec("-0.02")

	out := config.Sanitize(cfg)

	assert.True(t, out.Growth.AnnualRateIncrease.Equal(dec("-0.02")))
}

// =============================================================================
// JSON ROUND-TRIP
// =============================================================================

func TestConfigJSONRoundTrip(t *testing.T) {
	// GIVEN: The steady-state preset
	// WHEN: Serializing and parsing back
	// THEN: The computed metrics match exactly - the round trip is lossless
	//       for everything the pipeline reads

	cfg := config.SteadyState()

	data, err := config.ToJSON(cfg)
	require.NoError(t, err)

	restored, err := config.FromJSON(data)
	require.NoError(t, err)

	want := billing.ComputeAll(cfg)
	got := billing.ComputeAll(restored)
	assert.True(t, want.Revenue.Total.Equal(got.Revenue.Total))
	assert.True(t, want.Cost.TotalExpenses.Equal(got.Cost.TotalExpenses))
	assert.Equal(t, want.ActiveClients, got.ActiveClients)
}

func TestFromJSON_Invalid(t *testing.T) {
	_, err := config.FromJSON([]byte("{not json"))
	assert.Error(t, err)
}

func TestFromJSON_SanitizesStoredValues(t *testing.T) {
	// A stored configuration with a negative rent parses but comes back
	// coerced.
	cfg := config.Default()
	cfg.Overhead.Rent = dec("-100")
	data, err := config.ToJSON(cfg)
	require.NoError(t, err)

	restored, err := config.FromJSON(data)
	require.NoError(t, err)
	assert.True(t, restored.Overhead.Rent.IsZero())
}

// =============================================================================
// PRESETS
// =============================================================================

func TestPresets_AllBuildValidConfigurations(t *testing.T) {
	for _, p := range config.Presets {
		cfg := p.Build()
		assert.NotEmpty(t, cfg.Clients, p.ID)
		assert.NotEmpty(t, cfg.Rates, p.ID)
		// Every preset's distribution closes to 100%
		assert.True(t, cfg.Distribution.Sum().Equal(decimal.NewFromInt(1)), p.ID)
	}
}

func TestFindPreset(t *testing.T) {
	p, ok := config.FindPreset("over-cap")
	require.True(t, ok)
	assert.Equal(t, "Over-Cap Stress", p.Name)

	_, ok = config.FindPreset("nope")
	assert.False(t, ok)
}

func TestOverCapStressPresetFiresComplianceAlerts(t *testing.T) {
	// The stress preset exists to exercise every compliance path: over-cap
	// hours, an exhausted annual budget, and the at-risk roster warning.
	m := billing.ComputeAll(config.OverCapStress())

	assert.Equal(t, 3, m.AtRiskClients)
	assert.NotEmpty(t, m.Alerts)
}
