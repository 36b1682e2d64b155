/*
Package config builds, sanitizes, and edits practice configurations.

PURPOSE:
  The billing engine computes from one immutable billing.Config value per
  cycle. This package owns everything around that value: program defaults,
  defensive numeric coercion, copy-on-write edit helpers, and JSON
  round-tripping for storage and export.

WHY COPY-ON-WRITE?
  The source system this replaces kept every editable figure as independent
  mutable state and recomputed on render. Here an edit produces a NEW
  configuration value; the previous one stays valid, which makes
  recomputation, undo, and saved analyses trivial.

USAGE:
  cfg := config.Default()
  cfg, client := config.AddClient(cfg)
  cfg, err := config.UpdateClient(cfg, client.ID, config.ClientPatch{...})
  snapshot := billing.ComputeAll(cfg)

SEE ALSO:
  - defaults.go: Payer program default figures
  - sanitize.go: Defensive numeric coercion
  - presets.go: Named demo configurations
*/
package config

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/treehousetherapy/financial-dashboard/billing"
)

// ErrClientNotFound is returned when an edit references an unknown client.
var ErrClientNotFound = errors.New("client not found")

// =============================================================================
// CLIENT EDITS - every helper returns a new Config value
// =============================================================================

// NextClientID returns max(existing IDs) + 1, or 1 for an empty roster.
func NextClientID(cfg billing.Config) int {
	next := 1
	for _, cl := range cfg.Clients {
		if cl.ID >= next {
			next = cl.ID + 1
		}
	}
	return next
}

// AddClient appends a client with default placeholder values and returns
// the new configuration plus the created client.
func AddClient(cfg billing.Config) (billing.Config, billing.Client) {
	id := NextClientID(cfg)
	client := billing.Client{
		ID:          id,
		Name:        fmt.Sprintf("Client %d", id),
		WeeklyHours: decimal.NewFromInt(10),
		Active:      true,
	}
	out := cfg
	out.Clients = append(append([]billing.Client{}, cfg.Clients...), client)
	return out, client
}

// ClientPatch is a field-level client edit. Nil fields are left unchanged.
type ClientPatch struct {
	Name        *string          `json:"name,omitempty"`
	WeeklyHours *decimal.Decimal `json:"weekly_hours,omitempty"`
	Active      *bool            `json:"active,omitempty"`
	Age         *int             `json:"age,omitempty"`
	AnnualUsed  *decimal.Decimal `json:"annual_used,omitempty"`
}

// UpdateClient applies a patch to one client, returning a new configuration.
func UpdateClient(cfg billing.Config, id int, patch ClientPatch) (billing.Config, error) {
	out := cfg
	out.Clients = append([]billing.Client{}, cfg.Clients...)
	for i := range out.Clients {
		if out.Clients[i].ID != id {
			continue
		}
		cl := &out.Clients[i]
		if patch.Name != nil {
			cl.Name = *patch.Name
		}
		if patch.WeeklyHours != nil {
			cl.WeeklyHours = clampNonNegative(*patch.WeeklyHours)
		}
		if patch.Active != nil {
			cl.Active = *patch.Active
		}
		if patch.Age != nil {
			cl.Age = *patch.Age
		}
		if patch.AnnualUsed != nil {
			cl.AnnualUsed = clampNonNegative(*patch.AnnualUsed)
		}
		return out, nil
	}
	return cfg, fmt.Errorf("update client %d: %w", id, ErrClientNotFound)
}

// RemoveClient drops a client by identifier, returning a new configuration.
func RemoveClient(cfg billing.Config, id int) (billing.Config, error) {
	out := cfg
	out.Clients = make([]billing.Client, 0, len(cfg.Clients))
	found := false
	for _, cl := range cfg.Clients {
		if cl.ID == id {
			found = true
			continue
		}
		out.Clients = append(out.Clients, cl)
	}
	if !found {
		return cfg, fmt.Errorf("remove client %d: %w", id, ErrClientNotFound)
	}
	return out, nil
}

// =============================================================================
// JSON ROUND-TRIP
// =============================================================================

// ToJSON serializes a configuration for storage or export.
func ToJSON(cfg billing.Config) ([]byte, error) {
	return json.Marshal(cfg)
}

// FromJSON parses and sanitizes a stored configuration. Unknown fields are
// ignored; missing numeric fields default to zero and are then coerced.
func FromJSON(data []byte) (billing.Config, error) {
	var cfg billing.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return billing.Config{}, fmt.Errorf("parse configuration: %w", err)
	}
	return Sanitize(cfg), nil
}
