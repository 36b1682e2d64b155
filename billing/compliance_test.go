package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treehousetherapy/financial-dashboard/billing"
)

func programLimits() billing.ComplianceLimits {
	return billing.ComplianceLimits{
		WeeklyHourCap:   d("25"),
		AnnualDollarCap: d("45000"),
	}
}

func TestEvaluate_WithinLimits(t *testing.T) {
	// GIVEN: A client under both the weekly cap and the annual dollar cap
	// WHEN: Evaluating compliance
	// THEN: Both checks pass and remaining budget is reported

	client := billing.Client{ID: 1, WeeklyHours: d("20"), Active: true, AnnualUsed: d("12000")}

	result := billing.Evaluate(client, programLimits())

	assert.True(t, result.WeeklyHoursCompliant)
	assert.True(t, result.CanContinueServices)
	assert.True(t, result.AnnualCapRemaining.Equal(d("33000")))
}

func TestEvaluate_AtWeeklyCapIsCompliant(t *testing.T) {
	// The cap is inclusive: exactly 25 hours is allowed.
	client := billing.Client{ID: 1, WeeklyHours: d("25"), Active: true}

	result := billing.Evaluate(client, programLimits())

	assert.True(t, result.WeeklyHoursCompliant)
}

func TestEvaluate_OverWeeklyCap(t *testing.T) {
	client := billing.Client{ID: 1, WeeklyHours: d("30"), Active: true}

	result := billing.Evaluate(client, programLimits())

	assert.False(t, result.WeeklyHoursCompliant)
	assert.True(t, result.CanContinueServices, "dollar cap is untouched")
}

func TestEvaluate_AnnualCapExhausted(t *testing.T) {
	// GIVEN: A client who has billed past the annual dollar cap
	// WHEN: Evaluating compliance
	// THEN: Services cannot continue and the overage magnitude is visible

	client := billing.Client{ID: 1, WeeklyHours: d("20"), Active: true, AnnualUsed: d("46000")}

	result := billing.Evaluate(client, programLimits())

	assert.False(t, result.CanContinueServices)
	assert.True(t, result.AnnualCapRemaining.Equal(d("-1000")),
		"remaining goes negative by the overage: %s", result.AnnualCapRemaining)
}

func TestEvaluateRoster_ActiveOnlyInRosterOrder(t *testing.T) {
	clients := []billing.Client{
		{ID: 1, Name: "Client 1", WeeklyHours: d("30"), Active: true},
		{ID: 2, Name: "Client 2", WeeklyHours: d("10"), Active: false},
		{ID: 3, Name: "Client 3", WeeklyHours: d("20"), Active: true, AnnualUsed: d("46000")},
	}

	results := billing.EvaluateRoster(clients, programLimits())

	require.Len(t, results, 2)
	assert.Equal(t, 1, results[0].ClientID)
	assert.Equal(t, 3, results[1].ClientID)
	assert.True(t, results[0].AtRisk(), "over weekly cap")
	assert.True(t, results[1].AtRisk(), "annual cap exhausted")
	assert.Equal(t, 2, billing.AtRiskCount(results))
}
