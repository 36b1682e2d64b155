package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treehousetherapy/financial-dashboard/billing"
)

func TestScenarioDeltas_FixedSetInOrder(t *testing.T) {
	// The what-if set has fixed cardinality and stable ordering.
	deltas := billing.ScenarioDeltas(billing.ScenarioInputs{}, billing.GrowthAssumptions{}, programLimits())

	require.Len(t, deltas, 3)
	assert.Equal(t, "add_one_client", deltas[0].ID)
	assert.Equal(t, "rate_increase_5pct", deltas[1].ID)
	assert.Equal(t, "reduce_overhead_10pct", deltas[2].ID)
}

func TestScenarioDeltas_AddOneClient(t *testing.T) {
	// GIVEN: $80/hour revenue, $30/hour variable cost, 15-hour intake
	// WHEN: Evaluating the add-a-client scenario
	// THEN: Delta = 15 x 4.33 hours at the $50 contribution margin

	inputs := billing.ScenarioInputs{
		RevenuePerHour:      d("80"),
		VariableCostPerHour: d("30"),
	}
	growth := billing.GrowthAssumptions{AvgNewClientHours: d("15")}

	deltas := billing.ScenarioDeltas(inputs, growth, programLimits())

	want := d("15").Mul(billing.WeeksPerMonth).Mul(d("50"))
	assert.True(t, deltas[0].ProfitDelta.Equal(want), "got %s", deltas[0].ProfitDelta)
}

func TestScenarioDeltas_IntakeClampedToCap(t *testing.T) {
	// A new client cannot be assumed above the program weekly cap.
	inputs := billing.ScenarioInputs{RevenuePerHour: d("80")}
	growth := billing.GrowthAssumptions{AvgNewClientHours: d("40")}

	deltas := billing.ScenarioDeltas(inputs, growth, programLimits())

	want := d("25").Mul(billing.WeeksPerMonth).Mul(d("80"))
	assert.True(t, deltas[0].ProfitDelta.Equal(want), "got %s", deltas[0].ProfitDelta)
}

func TestScenarioDeltas_RateAndOverheadPerturbations(t *testing.T) {
	inputs := billing.ScenarioInputs{
		TotalRevenue: d("16000"),
		FixedCosts:   d("2000"),
	}

	deltas := billing.ScenarioDeltas(inputs, billing.GrowthAssumptions{}, programLimits())

	assert.True(t, deltas[1].ProfitDelta.Equal(d("800")), "5%% of revenue")
	assert.True(t, deltas[2].ProfitDelta.Equal(d("200")), "10%% of fixed costs")
}
