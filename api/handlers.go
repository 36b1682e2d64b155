/*
handlers.go - HTTP API handlers for the financial dashboard

PURPOSE:
  Exposes the billing calculation engine via REST. Handlers own the single
  logical "current configuration"; every edit replaces it wholesale with a
  new sanitized value, and every metrics read recomputes the full pipeline
  from scratch.

ENDPOINTS:
  Configuration:
    GET    /api/config             Current configuration
    PUT    /api/config             Replace configuration (sanitized)

  Clients:
    POST   /api/clients            Add client with placeholder values
    PUT    /api/clients/{id}       Field-level client edit
    DELETE /api/clients/{id}       Remove client

  Metrics:
    GET    /api/metrics            Full computed snapshot
    GET    /api/forecast?months=N  Forecast for a specific horizon
    GET    /api/export             Downloadable JSON export

  Saved analyses:
    GET    /api/analyses           List saved analyses
    POST   /api/analyses           Save current configuration under a name
    GET    /api/analyses/{id}      Fetch one saved analysis
    POST   /api/analyses/{id}/load Make a saved analysis current
    DELETE /api/analyses/{id}      Delete a saved analysis

  Scenarios:
    GET    /api/scenarios          List demo presets
    GET    /api/scenarios/current  Currently loaded preset, if any
    POST   /api/scenarios/load     Load a preset configuration

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid request body or parameters
  - 404: Unknown client, analysis, or scenario
  - 500: Storage failures

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo preset loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/treehousetherapy/financial-dashboard/billing"
	"github.com/treehousetherapy/financial-dashboard/config"
	"github.com/treehousetherapy/financial-dashboard/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers, plus the current
// configuration value. The engine itself is stateless; this is the one
// in-memory editable-state snapshot the presentation layer owns.
type Handler struct {
	Store *sqlite.Store

	mu            sync.RWMutex
	cfg           billing.Config
	currentPreset string
}

// NewHandler creates a handler seeded with the baseline configuration.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{
		Store:         store,
		cfg:           config.Default(),
		currentPreset: "baseline",
	}
}

// currentConfig returns the current configuration value under read lock.
func (h *Handler) currentConfig() billing.Config {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cfg
}

// setConfig replaces the current configuration value.
func (h *Handler) setConfig(cfg billing.Config, preset string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cfg = cfg
	h.currentPreset = preset
}

// =============================================================================
// CONFIGURATION HANDLERS
// =============================================================================

// GetConfig returns the current configuration.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.currentConfig())
}

// PutConfig replaces the current configuration with a sanitized copy of
// the request body.
func (h *Handler) PutConfig(w http.ResponseWriter, r *http.Request) {
	var cfg billing.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid configuration body", err)
		return
	}
	h.setConfig(config.Sanitize(cfg), "")
	writeJSON(w, http.StatusOK, h.currentConfig())
}

// =============================================================================
// CLIENT HANDLERS
// =============================================================================

// AddClient appends a roster entry with default placeholder values.
func (h *Handler) AddClient(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	cfg, client := config.AddClient(h.cfg)
	h.cfg = cfg
	h.mu.Unlock()

	writeJSON(w, http.StatusCreated, toClientDTO(client))
}

// UpdateClient applies a field-level patch to one client.
func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid client id", err)
		return
	}

	var patch config.ClientPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	h.mu.Lock()
	cfg, err := config.UpdateClient(h.cfg, id, patch)
	if err == nil {
		h.cfg = cfg
	}
	h.mu.Unlock()

	if errors.Is(err, config.ErrClientNotFound) {
		writeError(w, http.StatusNotFound, "Client not found", err)
		return
	}
	writeJSON(w, http.StatusOK, h.currentConfig())
}

// RemoveClient drops a client by identifier.
func (h *Handler) RemoveClient(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid client id", err)
		return
	}

	h.mu.Lock()
	cfg, err := config.RemoveClient(h.cfg, id)
	if err == nil {
		h.cfg = cfg
	}
	h.mu.Unlock()

	if errors.Is(err, config.ErrClientNotFound) {
		writeError(w, http.StatusNotFound, "Client not found", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// METRICS HANDLERS
// =============================================================================

// GetMetrics recomputes the full pipeline and returns the snapshot.
func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	snapshot := billing.ComputeAll(h.currentConfig())
	writeJSON(w, http.StatusOK, toMetricsDTO(snapshot))
}

// GetForecast returns the forecast sequence for a caller-selected horizon.
// An unknown horizon coerces to the default rather than failing.
func (h *Handler) GetForecast(w http.ResponseWriter, r *http.Request) {
	cfg := h.currentConfig()
	if raw := r.URL.Query().Get("months"); raw != "" {
		months, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid months parameter", err)
			return
		}
		cfg.ForecastMonths = billing.NormalizeHorizon(months)
	}

	snapshot := billing.ComputeAll(cfg)
	writeJSON(w, http.StatusOK, toForecastDTOs(snapshot.Forecast))
}

// Export returns the downloadable full dump: metrics plus raw configuration.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	cfg := h.currentConfig()
	snapshot := billing.ComputeAll(cfg)

	w.Header().Set("Content-Disposition", `attachment; filename="treehouse_financial_analysis.json"`)
	writeJSON(w, http.StatusOK, ExportDTO{
		Metrics: toMetricsDTO(snapshot),
		Config:  cfg,
	})
}

// =============================================================================
// SAVED ANALYSIS HANDLERS
// =============================================================================

// ListAnalyses returns all saved analyses, newest first.
func (h *Handler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	analyses, err := h.Store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list analyses", err)
		return
	}

	dtos := make([]AnalysisDTO, len(analyses))
	for i, a := range analyses {
		dtos[i] = toAnalysisDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SaveAnalysis stores the current configuration under a name.
func (h *Handler) SaveAnalysis(w http.ResponseWriter, r *http.Request) {
	var req SaveAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Analysis name is required", nil)
		return
	}

	data, err := config.ToJSON(h.currentConfig())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to serialize configuration", err)
		return
	}

	saved, err := h.Store.Save(r.Context(), req.Name, string(data))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save analysis", err)
		return
	}
	writeJSON(w, http.StatusCreated, toAnalysisDTO(saved))
}

// GetAnalysis fetches one saved analysis, including its configuration.
func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid analysis id", err)
		return
	}

	a, err := h.Store.Get(r.Context(), id)
	if errors.Is(err, sqlite.ErrAnalysisNotFound) {
		writeError(w, http.StatusNotFound, "Analysis not found", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch analysis", err)
		return
	}

	cfg, err := config.FromJSON([]byte(a.ConfigJSON))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Stored configuration is unreadable", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"analysis": toAnalysisDTO(a),
		"config":   cfg,
	})
}

// LoadAnalysis makes a saved analysis the current configuration.
func (h *Handler) LoadAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid analysis id", err)
		return
	}

	a, err := h.Store.Get(r.Context(), id)
	if errors.Is(err, sqlite.ErrAnalysisNotFound) {
		writeError(w, http.StatusNotFound, "Analysis not found", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch analysis", err)
		return
	}

	cfg, err := config.FromJSON([]byte(a.ConfigJSON))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Stored configuration is unreadable", err)
		return
	}

	h.setConfig(cfg, "")
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "name": a.Name})
}

// DeleteAnalysis removes a saved analysis.
func (h *Handler) DeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid analysis id", err)
		return
	}

	err = h.Store.Delete(r.Context(), id)
	if errors.Is(err, sqlite.ErrAnalysisNotFound) {
		writeError(w, http.StatusNotFound, "Analysis not found", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete analysis", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writeJSON: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		log.Printf("%s: %v", message, err)
	}
	writeJSON(w, status, ErrorResponse{Error: message})
}
