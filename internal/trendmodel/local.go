package trendmodel

import (
	"context"
	"math"
)

const (
	intensityWeight = 0.5
	rocWeight       = 0.35
	volumeWeight    = 0.15

	// feature magnitudes are small fractions, scaled before clamping so
	// ordinary markets still reach meaningful strength.
	intensityScale = 10.0
	rocScale       = 10.0

	squashGain = 2.0
)

// Local is the built-in heuristic estimator used when no remote endpoint is
// configured. Direction comes from the moving-average divergence, the rate of
// change and the volume drift; ADX only scales conviction.
type Local struct{}

// NewLocal creates the heuristic estimator.
func NewLocal() Local {
	return Local{}
}

// Estimate computes a deterministic trend-strength value in (-1,1).
func (Local) Estimate(_ context.Context, features Features) (float64, error) {
	directional := intensityWeight*clampSigned(features.TrendIntensity*intensityScale) +
		rocWeight*clampSigned(features.PriceROC*rocScale) +
		volumeWeight*clampSigned(features.VolumeTrend)

	conviction := 0.5 + 0.5*clampUnit(features.ADX)

	return math.Tanh(squashGain * directional * conviction), nil
}

func clampSigned(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
