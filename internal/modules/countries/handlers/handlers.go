// Package handlers provides HTTP handlers for the country directory.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/prism/internal/domain"
	"github.com/aristath/prism/internal/modules/countries"
)

// Handler handles country directory HTTP requests
type Handler struct {
	repo *countries.Repository
	log  zerolog.Logger
}

// NewHandler creates a new countries handler
func NewHandler(repo *countries.Repository, log zerolog.Logger) *Handler {
	return &Handler{
		repo: repo,
		log:  log.With().Str("handler", "countries").Logger(),
	}
}

// Routes mounts the country routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/countries", h.HandleList)
	r.Get("/countries/{code}", h.HandleGet)
	r.Put("/countries/{code}", h.HandleUpsert)
}

// HandleList returns every country macro record.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	macros, err := h.repo.All()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"countries": macros})
}

// HandleGet returns one country macro record.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	macro, err := h.repo.Macro(code)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if macro == nil {
		h.writeError(w, http.StatusNotFound, "unknown country code")
		return
	}
	h.writeJSON(w, http.StatusOK, macro)
}

// HandleUpsert inserts or updates one country macro record.
func (h *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	var macro domain.CountryMacro
	if err := json.NewDecoder(r.Body).Decode(&macro); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	macro.Code = code

	if err := h.repo.Upsert(macro); err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, macro)
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
