package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightPresets_AllValid(t *testing.T) {
	for _, w := range WeightPresets() {
		assert.NoError(t, w.Validate(), w.Name)
	}
}

func TestWeightPreset_Lookup(t *testing.T) {
	w, err := WeightPreset("")
	require.NoError(t, err)
	assert.Equal(t, "balanced-global", w.Name)

	w, err = WeightPreset("quality-tilt")
	require.NoError(t, err)
	assert.InDelta(t, 0.40, w.Fundamentals, 1e-9)

	_, err = WeightPreset("made-up")
	assert.Error(t, err)
}

func TestWeights_ValidateRejectsBadSums(t *testing.T) {
	bad := Weights{Name: "broken", Fundamentals: 0.5, Structural: 0.3, TopDown: 0.3, Behavior: 0.1}
	assert.Error(t, bad.Validate())

	negative := Weights{Name: "negative", Fundamentals: 1.2, Structural: -0.2}
	assert.Error(t, negative.Validate())
}

func TestTierPresets_AllValid(t *testing.T) {
	for _, scheme := range TierPresets() {
		assert.NoError(t, scheme.Validate(), scheme.Name)
	}
}

func TestTierScheme_Boundaries(t *testing.T) {
	assert.Equal(t, "Overweight", TierStandard.Tier(70))
	assert.Equal(t, "Neutral", TierStandard.Tier(69.99))
	assert.Equal(t, "Neutral", TierStandard.Tier(55))
	assert.Equal(t, "Underweight", TierStandard.Tier(54.99))

	assert.Equal(t, "High Risk", TierRisk.Tier(65))
	assert.Equal(t, "Moderate Risk", TierRisk.Tier(50))
	assert.Equal(t, "Low Risk", TierRisk.Tier(44.9))

	assert.Equal(t, "Aggressive", TierPortfolio.Tier(62))
	assert.Equal(t, "Moderately Aggressive", TierPortfolio.Tier(55))
	assert.Equal(t, "Moderate", TierPortfolio.Tier(48))
	assert.Equal(t, "Conservative", TierPortfolio.Tier(47.9))
}

func TestTierScheme_ValidateRejectsMalformed(t *testing.T) {
	wrongLabels := TierScheme{
		Name:       "bad",
		Thresholds: []float64{70, 55},
		Labels:     []string{"A", "B"},
	}
	assert.Error(t, wrongLabels.Validate())

	notDescending := TierScheme{
		Name:       "bad",
		Thresholds: []float64{55, 70},
		Labels:     []string{"A", "B", "C"},
	}
	assert.Error(t, notDescending.Validate())
}

func TestNewCompositeScorer_FailsFast(t *testing.T) {
	_, err := NewCompositeScorer(Weights{Name: "zero"}, TierStandard)
	assert.Error(t, err)

	_, err = NewCompositeScorer(DefaultWeights, TierScheme{Name: "empty"})
	assert.Error(t, err)
}

func TestCompositeScorer_EqualPillarsPassThrough(t *testing.T) {
	cs, err := NewCompositeScorer(DefaultWeights, DefaultTierScheme)
	require.NoError(t, err)

	score, tier := cs.Calculate(72, 72, 72, 72)
	assert.InDelta(t, 72.0, score, 1e-9)
	assert.Equal(t, "Overweight", tier)
}

func TestCompositeScorer_Blend(t *testing.T) {
	cs, err := NewCompositeScorer(WeightsQualityTilt, TierStandard)
	require.NoError(t, err)

	score, tier := cs.Calculate(80, 60, 40, 50)
	want := 0.40*80 + 0.30*60 + 0.20*50 + 0.10*40
	assert.InDelta(t, want, score, 1e-9)
	assert.Equal(t, "Neutral", tier)
}
