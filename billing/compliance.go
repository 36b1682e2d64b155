/*
compliance.go - Per-client payer limit checks

PURPOSE:
  Evaluates each client against the program limits: the weekly billable-hour
  cap and the annual dollar cap. This is the leaf stage of the pipeline; it
  has no dependencies on the other stages.

KEY INSIGHT:
  AnnualCapRemaining may go negative. That is intentional - a negative value
  signals the magnitude of the overage, which the advisory stage surfaces.

SEE ALSO:
  - advisor.go: Aggregates at-risk clients into alerts
  - types.go: Client and ComplianceLimits
*/
package billing

import "github.com/shopspring/decimal"

// ComplianceResult is the outcome of checking one client against program
// limits.
type ComplianceResult struct {
	WeeklyHoursCompliant bool            `json:"weekly_hours_compliant"`
	AnnualCapRemaining   decimal.Decimal `json:"annual_cap_remaining"`
	CanContinueServices  bool            `json:"can_continue_services"`
}

// ClientCompliance pairs a compliance result with the client it describes.
type ClientCompliance struct {
	ClientID int              `json:"client_id"`
	Name     string           `json:"name"`
	Result   ComplianceResult `json:"result"`
}

// AtRisk reports whether the client fails either limit check.
func (c ClientCompliance) AtRisk() bool {
	return !c.Result.WeeklyHoursCompliant || !c.Result.CanContinueServices
}

// Evaluate checks a single client against the program limits. It has no
// side effects and no error cases: all inputs are pre-coerced numbers.
func Evaluate(client Client, limits ComplianceLimits) ComplianceResult {
	remaining := limits.AnnualDollarCap.Sub(client.AnnualUsed)
	return ComplianceResult{
		WeeklyHoursCompliant: !client.WeeklyHours.GreaterThan(limits.WeeklyHourCap),
		AnnualCapRemaining:   remaining,
		CanContinueServices:  remaining.IsPositive(),
	}
}

// EvaluateRoster applies Evaluate to every active client, in roster order.
func EvaluateRoster(clients []Client, limits ComplianceLimits) []ClientCompliance {
	results := make([]ClientCompliance, 0, len(clients))
	for _, cl := range clients {
		if !cl.Active {
			continue
		}
		results = append(results, ClientCompliance{
			ClientID: cl.ID,
			Name:     cl.Name,
			Result:   Evaluate(cl, limits),
		})
	}
	return results
}

// AtRiskCount returns how many evaluated clients fail either check.
func AtRiskCount(results []ClientCompliance) int {
	count := 0
	for _, r := range results {
		if r.AtRisk() {
			count++
		}
	}
	return count
}
