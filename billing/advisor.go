/*
advisor.go - Threshold-driven alert generation

PURPOSE:
  Scans the computed metrics and raw configuration for threshold violations
  and emits typed alerts. Each rule is evaluated independently; multiple
  alerts may fire on one pass, ordered by rule declaration. The list is
  fully recomputed each call, nothing is suppressed or auto-resolved, and
  an empty list is a valid all-clear result.

AVERAGING POLICY:
  The average-weekly-hours rule uses RAW weekly hours, not cap-clamped
  ones. A roster entered above the cap is exactly the situation this rule
  exists to surface; clamping first would hide it.
*/
package billing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AlertKind classifies an alert's urgency.
type AlertKind string

const (
	AlertCritical    AlertKind = "critical"
	AlertWarning     AlertKind = "warning"
	AlertOpportunity AlertKind = "opportunity"
)

// Alert is one advisory finding.
type Alert struct {
	Kind    AlertKind `json:"kind"`
	Message string    `json:"message"`
}

// Thresholds are the tunable trigger levels for the alert rules.
type Thresholds struct {
	// SustainableRevenuePerHour is the floor below which the practice
	// cannot cover a typical ABA cost structure.
	SustainableRevenuePerHour decimal.Decimal `json:"sustainable_revenue_per_hour"`

	// PriorAuthRiskPerClient estimates expected authorization delays per
	// client per month.
	PriorAuthRiskPerClient decimal.Decimal `json:"prior_auth_risk_per_client"`
	PriorAuthRiskThreshold decimal.Decimal `json:"prior_auth_risk_threshold"`

	// LowValueHourShare is the tolerated fraction of time-based hours in
	// lower-rate group categories.
	LowValueHourShare decimal.Decimal `json:"low_value_hour_share"`
}

// DefaultThresholds returns the advisory trigger levels for the program.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SustainableRevenuePerHour: decimal.NewFromInt(65),
		PriorAuthRiskPerClient:    decimal.RequireFromString("0.15"),
		PriorAuthRiskThreshold:    decimal.NewFromInt(1),
		LowValueHourShare:         decimal.RequireFromString("0.15"),
	}
}

// AdvisorInputs are the metrics the alert rules inspect.
type AdvisorInputs struct {
	ActiveClients  int
	RawWeeklyHours decimal.Decimal // Unclamped sum over active clients
	RevenuePerHour decimal.Decimal
	AtRiskClients  int
	Hours          HourBreakdown
}

// GenerateAlerts evaluates every rule against the metrics, in rule
// declaration order.
func GenerateAlerts(in AdvisorInputs, limits ComplianceLimits, th Thresholds) []Alert {
	alerts := []Alert{}

	clients := decimal.NewFromInt(int64(in.ActiveClients))
	avgWeekly := safeDiv(in.RawWeeklyHours, clients)
	if avgWeekly.GreaterThan(limits.WeeklyHourCap) {
		alerts = append(alerts, Alert{
			Kind: AlertCritical,
			Message: fmt.Sprintf("Average weekly hours per client (%s) exceeds the program weekly limit of %s",
				avgWeekly.StringFixed(1), limits.WeeklyHourCap.StringFixed(0)),
		})
	}

	if in.AtRiskClients > 0 {
		alerts = append(alerts, Alert{
			Kind:    AlertWarning,
			Message: fmt.Sprintf("%d client(s) at risk of exceeding program limits", in.AtRiskClients),
		})
	}

	if in.RevenuePerHour.LessThan(th.SustainableRevenuePerHour) {
		alerts = append(alerts, Alert{
			Kind: AlertCritical,
			Message: fmt.Sprintf("Revenue per hour (%s) is below the sustainability threshold of %s",
				in.RevenuePerHour.StringFixed(2), th.SustainableRevenuePerHour.StringFixed(2)),
		})
	}

	authRisk := clients.Mul(th.PriorAuthRiskPerClient)
	if authRisk.GreaterThan(th.PriorAuthRiskThreshold) {
		alerts = append(alerts, Alert{
			Kind: AlertWarning,
			Message: fmt.Sprintf("Estimated prior-authorization delay exposure of %s pending requests per month",
				authRisk.StringFixed(1)),
		})
	}

	lowValue := in.Hours.Get(GroupTherapy).Add(in.Hours.Get(FamilyGroup))
	lowShare := safeDiv(lowValue, in.Hours.Total())
	if lowShare.GreaterThan(th.LowValueHourShare) {
		alerts = append(alerts, Alert{
			Kind: AlertOpportunity,
			Message: fmt.Sprintf("%s%% of service hours are in lower-rate group categories; shifting mix toward individual therapy would raise revenue per hour",
				lowShare.Mul(hundred).StringFixed(1)),
		})
	}

	return alerts
}
