// Package scoring combines the per-pillar calculators into composite
// opportunity scores and maps them onto recommendation tiers.
package scoring

import (
	"fmt"
	"math"
	"sort"
)

// Weights is a named blend of the four pillar scores. All weights must be
// non-negative and sum to 1.0.
type Weights struct {
	Name         string  `json:"name"`
	Fundamentals float64 `json:"fundamentals"`
	Structural   float64 `json:"structural"`
	TopDown      float64 `json:"topdown"`
	Behavior     float64 `json:"behavior"`
}

// Validate checks the weight invariants. Scoring with invalid weights would
// silently distort every result, so construction fails fast instead.
func (w Weights) Validate() error {
	if w.Fundamentals < 0 || w.Structural < 0 || w.TopDown < 0 || w.Behavior < 0 {
		return fmt.Errorf("weight preset %q has a negative weight", w.Name)
	}
	sum := w.Fundamentals + w.Structural + w.TopDown + w.Behavior
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("weight preset %q sums to %.6f, want 1.0", w.Name, sum)
	}
	return nil
}

// Built-in weight presets.
var (
	// WeightsBalancedGlobal is the default blend: fundamentals lead, but
	// structure and macro carry real weight.
	WeightsBalancedGlobal = Weights{
		Name:         "balanced-global",
		Fundamentals: 0.35,
		Structural:   0.30,
		TopDown:      0.25,
		Behavior:     0.10,
	}

	// WeightsQualityTilt shifts emphasis further onto firm quality at the
	// expense of macro context.
	WeightsQualityTilt = Weights{
		Name:         "quality-tilt",
		Fundamentals: 0.40,
		Structural:   0.30,
		TopDown:      0.20,
		Behavior:     0.10,
	}
)

// DefaultWeights is the preset used when a caller does not name one.
var DefaultWeights = WeightsBalancedGlobal

var weightPresets = map[string]Weights{
	WeightsBalancedGlobal.Name: WeightsBalancedGlobal,
	WeightsQualityTilt.Name:    WeightsQualityTilt,
}

// WeightPreset looks up a weight preset by name. The empty name resolves to
// the default preset.
func WeightPreset(name string) (Weights, error) {
	if name == "" {
		return DefaultWeights, nil
	}
	w, ok := weightPresets[name]
	if !ok {
		return Weights{}, fmt.Errorf("unknown weight preset %q", name)
	}
	return w, nil
}

// WeightPresets returns all built-in presets sorted by name.
func WeightPresets() []Weights {
	out := make([]Weights, 0, len(weightPresets))
	for _, w := range weightPresets {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// TierScheme maps a 0-100 score onto ordered labels. Thresholds are in
// strictly descending order; Labels has one more entry than Thresholds,
// best label first. A score at or above Thresholds[i] gets Labels[i].
type TierScheme struct {
	Name       string    `json:"name"`
	Thresholds []float64 `json:"thresholds"`
	Labels     []string  `json:"labels"`
}

// Validate checks the scheme invariants.
func (t TierScheme) Validate() error {
	if len(t.Labels) != len(t.Thresholds)+1 {
		return fmt.Errorf("tier scheme %q has %d labels for %d thresholds, want %d",
			t.Name, len(t.Labels), len(t.Thresholds), len(t.Thresholds)+1)
	}
	for i := 1; i < len(t.Thresholds); i++ {
		if t.Thresholds[i] >= t.Thresholds[i-1] {
			return fmt.Errorf("tier scheme %q thresholds not strictly descending at index %d", t.Name, i)
		}
	}
	return nil
}

// Tier returns the label for a score.
func (t TierScheme) Tier(score float64) string {
	for i, threshold := range t.Thresholds {
		if score >= threshold {
			return t.Labels[i]
		}
	}
	return t.Labels[len(t.Labels)-1]
}

// Built-in tier schemes.
var (
	// TierStandard is the default recommendation scheme.
	TierStandard = TierScheme{
		Name:       "standard",
		Thresholds: []float64{70, 55},
		Labels:     []string{"Overweight", "Neutral", "Underweight"},
	}

	// TierRisk labels the ETF risk scale, where high scores mean risky.
	TierRisk = TierScheme{
		Name:       "risk",
		Thresholds: []float64{65, 45},
		Labels:     []string{"High Risk", "Moderate Risk", "Low Risk"},
	}

	// TierPortfolio is the four-bucket scheme used for whole-portfolio
	// aggressiveness labels.
	TierPortfolio = TierScheme{
		Name:       "portfolio",
		Thresholds: []float64{62, 55, 48},
		Labels:     []string{"Aggressive", "Moderately Aggressive", "Moderate", "Conservative"},
	}
)

// DefaultTierScheme is the scheme used when a caller does not name one.
var DefaultTierScheme = TierStandard

var tierSchemes = map[string]TierScheme{
	TierStandard.Name:  TierStandard,
	TierRisk.Name:      TierRisk,
	TierPortfolio.Name: TierPortfolio,
}

// TierPreset looks up a tier scheme by name. The empty name resolves to the
// default scheme.
func TierPreset(name string) (TierScheme, error) {
	if name == "" {
		return DefaultTierScheme, nil
	}
	t, ok := tierSchemes[name]
	if !ok {
		return TierScheme{}, fmt.Errorf("unknown tier scheme %q", name)
	}
	return t, nil
}

// TierPresets returns all built-in schemes sorted by name.
func TierPresets() []TierScheme {
	out := make([]TierScheme, 0, len(tierSchemes))
	for _, t := range tierSchemes {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// CompositeScorer blends the four pillar scores under a validated weight
// preset and labels the result under a validated tier scheme.
type CompositeScorer struct {
	weights Weights
	tiers   TierScheme
}

// NewCompositeScorer validates both presets up front and returns a scorer.
func NewCompositeScorer(weights Weights, tiers TierScheme) (*CompositeScorer, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if err := tiers.Validate(); err != nil {
		return nil, err
	}
	return &CompositeScorer{weights: weights, tiers: tiers}, nil
}

// Weights returns the active weight preset.
func (cs *CompositeScorer) Weights() Weights {
	return cs.weights
}

// TierScheme returns the active tier scheme.
func (cs *CompositeScorer) TierScheme() TierScheme {
	return cs.tiers
}

// Calculate blends the pillar scores and returns the composite with its
// tier label. Because weights sum to 1, equal pillar inputs pass through
// unchanged.
func (cs *CompositeScorer) Calculate(fundamentals, structural, behavior, topdown float64) (float64, string) {
	score := cs.weights.Fundamentals*fundamentals +
		cs.weights.Structural*structural +
		cs.weights.TopDown*topdown +
		cs.weights.Behavior*behavior
	return score, cs.tiers.Tier(score)
}
