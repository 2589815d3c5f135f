// Package handlers provides the HTTP surface of the scoring engine.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/prism/internal/evaluation"
	"github.com/aristath/prism/internal/evaluation/workers"
	"github.com/aristath/prism/internal/modules/scoring"
	"github.com/aristath/prism/internal/modules/scoring/scorers"
	"github.com/aristath/prism/internal/modules/snapshots"
	"github.com/aristath/prism/internal/modules/universe"
)

// Handler handles scoring HTTP requests
type Handler struct {
	evaluator    *evaluation.Evaluator
	securities   *universe.SecurityRepository
	prices       *universe.PriceRepository
	assumptions  *universe.AssumptionsRepository
	snapshots    *snapshots.Repository
	etfRisk      *scorers.ETFRiskScorer
	weightPreset string
	tierScheme   string
	benchmark    string
	log          zerolog.Logger
}

// NewHandler creates a new scoring handler
func NewHandler(
	evaluator *evaluation.Evaluator,
	securities *universe.SecurityRepository,
	prices *universe.PriceRepository,
	assumptions *universe.AssumptionsRepository,
	snapshotsRepo *snapshots.Repository,
	weightPreset, tierScheme, benchmark string,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		evaluator:    evaluator,
		securities:   securities,
		prices:       prices,
		assumptions:  assumptions,
		snapshots:    snapshotsRepo,
		etfRisk:      scorers.NewETFRiskScorer(),
		weightPreset: weightPreset,
		tierScheme:   tierScheme,
		benchmark:    benchmark,
		log:          log.With().Str("handler", "scoring").Logger(),
	}
}

// Routes mounts the scoring routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/scores", h.HandleLatestScores)
	r.Post("/scores/rescore", h.HandleRescore)
	r.Get("/scores/presets", h.HandlePresets)
	r.Get("/scores/runs", h.HandleListRuns)
	r.Get("/scores/runs/{id}", h.HandleGetRun)
	r.Get("/scores/{country}/{sector}", h.HandlePairScore)
	r.Post("/etf-risk", h.HandleETFRisk)
}

// HandleLatestScores returns the breakdowns of the newest scoring run.
func (h *Handler) HandleLatestScores(w http.ResponseWriter, r *http.Request) {
	snap, breakdowns, err := h.snapshots.Latest()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if snap == nil {
		h.writeError(w, http.StatusNotFound, "no scoring run available yet")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"run":    snap,
		"scores": breakdowns,
	})
}

// HandlePairScore evaluates one (country, sector) pair on demand.
func (h *Handler) HandlePairScore(w http.ResponseWriter, r *http.Request) {
	country := chi.URLParam(r, "country")
	sector := chi.URLParam(r, "sector")

	breakdown, err := h.evaluator.Evaluate(country, sector)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, breakdown)
}

// HandleRescore scores every known pair and persists a new snapshot.
func (h *Handler) HandleRescore(w http.ResponseWriter, r *http.Request) {
	pairs, err := h.securities.Pairs()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(pairs) == 0 {
		h.writeError(w, http.StatusConflict, "universe is empty, sync securities first")
		return
	}

	jobs := make([]workers.ScoreJob, len(pairs))
	for i, p := range pairs {
		jobs[i] = workers.ScoreJob{Country: p.Country, Sector: p.Sector}
	}

	breakdowns := h.evaluator.EvaluateAll(jobs, nil)

	id, err := h.snapshots.Save(h.weightPreset, h.tierScheme, breakdowns)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"run_id": id,
		"pairs":  len(breakdowns),
	})
}

// HandlePresets lists the built-in weight presets and tier schemes.
func (h *Handler) HandlePresets(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"weight_presets": scoring.WeightPresets(),
		"tier_schemes":   scoring.TierPresets(),
		"active": map[string]string{
			"weight_preset": h.weightPreset,
			"tier_scheme":   h.tierScheme,
		},
	})
}

// HandleListRuns lists persisted scoring runs, newest first.
func (h *Handler) HandleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	runs, err := h.snapshots.List(limit)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"runs": runs})
}

// HandleGetRun returns one persisted run with its breakdowns.
func (h *Handler) HandleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	snap, breakdowns, err := h.snapshots.Load(id)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if snap == nil {
		h.writeError(w, http.StatusNotFound, "unknown run id")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"run":    snap,
		"scores": breakdowns,
	})
}

type etfRiskRequest struct {
	Ticker   string `json:"ticker"`
	Cyclical bool   `json:"cyclical"`
	// Optional pair whose qualitative assumptions feed the fundamental leg
	Country string `json:"country,omitempty"`
	Sector  string `json:"sector,omitempty"`
}

// HandleETFRisk assesses the risk profile of a single instrument from its
// stored price history.
func (h *Handler) HandleETFRisk(w http.ResponseWriter, r *http.Request) {
	var req etfRiskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Ticker == "" {
		h.writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	series, err := h.prices.PriceHistory(req.Ticker, 2*evaluation.DefaultLookbackDays)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(series) == 0 {
		h.writeError(w, http.StatusNotFound, "no price history for "+req.Ticker)
		return
	}

	benchmark, err := h.prices.PriceHistory(h.benchmark, 2*evaluation.DefaultLookbackDays)
	if err != nil {
		h.log.Warn().Err(err).Msg("benchmark history lookup failed")
	}

	inputs := scorers.ETFRiskInputs{
		Series:    series,
		Benchmark: benchmark,
		Cyclical:  req.Cyclical,
	}
	if req.Country != "" && req.Sector != "" {
		if q, err := h.assumptions.Assumptions(req.Country, req.Sector); err == nil && q != nil {
			inputs.Qualitative = q
		}
	}

	result := h.etfRisk.Calculate(inputs)

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"ticker":    req.Ticker,
		"risk":      result,
		"risk_tier": scoring.TierRisk.Tier(result.Score),
	})
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
