// Package handlers provides the HTTP surface of the alignment engine.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/prism/internal/domain"
	"github.com/aristath/prism/internal/modules/alignment"
	"github.com/aristath/prism/internal/modules/scoring"
	"github.com/aristath/prism/internal/modules/snapshots"
)

// Handler handles alignment HTTP requests. Portfolios are request-scoped
// values; nothing here is persisted.
type Handler struct {
	engine           *alignment.Engine
	snapshots        *snapshots.Repository
	activeWeights    scoring.Weights
	targetPercentile float64
	log              zerolog.Logger
}

// NewHandler creates a new alignment handler
func NewHandler(
	engine *alignment.Engine,
	snapshotsRepo *snapshots.Repository,
	activeWeights scoring.Weights,
	targetPercentile float64,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		engine:           engine,
		snapshots:        snapshotsRepo,
		activeWeights:    activeWeights,
		targetPercentile: targetPercentile,
		log:              log.With().Str("handler", "alignment").Logger(),
	}
}

// Routes mounts the alignment routes.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/alignment", h.HandleAlign)
	r.Post("/alignment/backsolve", h.HandleBacksolve)
}

type alignRequest struct {
	Holdings domain.Portfolio `json:"holdings"`
}

// HandleAlign joins the submitted holdings with the newest scores and
// returns per-holding results plus the portfolio aggregate.
func (h *Handler) HandleAlign(w http.ResponseWriter, r *http.Request) {
	req, scores, ok := h.decodeWithScores(w, r)
	if !ok {
		return
	}

	results := h.engine.AlignHoldings(req.Holdings, scores)
	portfolio := h.engine.PortfolioWeightedScore(results)

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"holdings":  results,
		"portfolio": portfolio,
	})
}

type backsolveRequest struct {
	Holdings         domain.Portfolio `json:"holdings"`
	TargetPercentile *float64         `json:"target_percentile,omitempty"`
}

// HandleBacksolve checks the holdings against the target percentile of the
// score universe.
func (h *Handler) HandleBacksolve(w http.ResponseWriter, r *http.Request) {
	var req backsolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	target := h.targetPercentile
	if req.TargetPercentile != nil {
		target = *req.TargetPercentile
	}
	if target < 0 || target > 1 {
		h.writeError(w, http.StatusBadRequest, "target_percentile must be in [0, 1]")
		return
	}

	scores, ok := h.latestScores(w)
	if !ok {
		return
	}

	result := h.engine.Backsolve(req.Holdings, scores, target, h.activeWeights)
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) decodeWithScores(w http.ResponseWriter, r *http.Request) (alignRequest, alignment.ScoreSet, bool) {
	var req alignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return req, nil, false
	}
	if len(req.Holdings) == 0 {
		h.writeError(w, http.StatusBadRequest, "holdings are required")
		return req, nil, false
	}

	scores, ok := h.latestScores(w)
	if !ok {
		return req, nil, false
	}
	return req, scores, true
}

func (h *Handler) latestScores(w http.ResponseWriter) (alignment.ScoreSet, bool) {
	snap, breakdowns, err := h.snapshots.Latest()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	if snap == nil {
		h.writeError(w, http.StatusConflict, "no scoring run available, rescore first")
		return nil, false
	}
	return alignment.NewScoreSet(breakdowns), true
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
