/*
scenarios.go - Demo preset loaders

PURPOSE:
  Exposes the config package's named presets over the API so the dashboard
  can be populated with realistic rosters for demos and testing. Loading a
  preset replaces the current configuration wholesale AND clears all saved
  analyses, so a demo always starts from a clean slate.

NOTE:
  Scenarios reset the database. Only use in development/demo environments.

USAGE VIA API:
  POST /api/scenarios/load
  {"scenario_id": "over-cap"}

SEE ALSO:
  - config/presets.go: The preset definitions
  - handlers.go: Current-configuration ownership
*/
package api

import (
	"encoding/json"
	"net/http"

	"github.com/treehousetherapy/financial-dashboard/config"
)

// ListScenarios returns the available presets.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	dtos := make([]ScenarioDTO, len(config.Presets))
	for i, p := range config.Presets {
		dtos[i] = ScenarioDTO{ID: p.ID, Name: p.Name, Description: p.Description}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetCurrentScenario returns the currently loaded preset, if any. A nil
// body means the configuration has been edited away from any preset.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	current := h.currentPreset
	h.mu.RUnlock()

	if current == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	p, ok := config.FindPreset(current)
	if !ok {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, ScenarioDTO{ID: p.ID, Name: p.Name, Description: p.Description})
}

// LoadScenario clears the saved-analysis store and replaces the current
// configuration with a preset.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	p, ok := config.FindPreset(req.ScenarioID)
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown scenario", nil)
		return
	}

	// Reset first: a demo preset starts from a clean database.
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}

	h.setConfig(config.Sanitize(p.Build()), p.ID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": p.ID})
}
