// Package handlers provides HTTP handlers for universe management.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/prism/internal/domain"
	"github.com/aristath/prism/internal/modules/universe"
)

// Handler handles universe HTTP requests
type Handler struct {
	securities  *universe.SecurityRepository
	assumptions *universe.AssumptionsRepository
	sync        *universe.SyncService
	log         zerolog.Logger
}

// NewHandler creates a new universe handler
func NewHandler(
	securities *universe.SecurityRepository,
	assumptions *universe.AssumptionsRepository,
	sync *universe.SyncService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		securities:  securities,
		assumptions: assumptions,
		sync:        sync,
		log:         log.With().Str("handler", "universe").Logger(),
	}
}

// Routes mounts the universe routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/securities", h.HandleListSecurities)
	r.Post("/securities", h.HandleUpsertSecurity)
	r.Delete("/securities/{ticker}", h.HandleDeactivateSecurity)
	r.Get("/pairs", h.HandleListPairs)
	r.Get("/assumptions/{country}/{sector}", h.HandleGetAssumptions)
	r.Put("/assumptions/{country}/{sector}", h.HandleUpsertAssumptions)
	r.Post("/sync", h.HandleSync)
}

// HandleListSecurities returns every security in the universe.
func (h *Handler) HandleListSecurities(w http.ResponseWriter, r *http.Request) {
	securities, err := h.securities.All()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"securities": securities})
}

// HandleUpsertSecurity inserts or updates one security.
func (h *Handler) HandleUpsertSecurity(w http.ResponseWriter, r *http.Request) {
	var security universe.Security
	if err := json.NewDecoder(r.Body).Decode(&security); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if security.Ticker == "" || security.Country == "" || security.Sector == "" {
		h.writeError(w, http.StatusBadRequest, "ticker, country and sector are required")
		return
	}

	if err := h.securities.Upsert(security); err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, security)
}

// HandleDeactivateSecurity marks a security inactive.
func (h *Handler) HandleDeactivateSecurity(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if err := h.securities.Deactivate(ticker); err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"ticker": ticker, "status": "deactivated"})
}

// HandleListPairs returns every scorable (country, sector) pair.
func (h *Handler) HandleListPairs(w http.ResponseWriter, r *http.Request) {
	pairs, err := h.securities.Pairs()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"pairs": pairs})
}

// HandleGetAssumptions returns the stored qualitative assumptions for a
// pair, falling back to the defaults.
func (h *Handler) HandleGetAssumptions(w http.ResponseWriter, r *http.Request) {
	country := chi.URLParam(r, "country")
	sector := chi.URLParam(r, "sector")

	q, err := h.assumptions.Assumptions(country, sector)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	isDefault := false
	if q == nil {
		defaults := domain.DefaultQualitativeInputs()
		q = &defaults
		isDefault = true
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"country":     country,
		"sector":      sector,
		"assumptions": q,
		"default":     isDefault,
	})
}

// HandleUpsertAssumptions stores the qualitative assumptions for a pair.
func (h *Handler) HandleUpsertAssumptions(w http.ResponseWriter, r *http.Request) {
	country := chi.URLParam(r, "country")
	sector := chi.URLParam(r, "sector")

	var q domain.QualitativeInputs
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.assumptions.Upsert(country, sector, q); err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"country": country, "sector": sector, "status": "saved"})
}

// HandleSync triggers a universe sync pass.
func (h *Handler) HandleSync(w http.ResponseWriter, r *http.Request) {
	report, err := h.sync.SyncAll()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
