// Package analysis implements the assessment components layered on top of
// the indicator library: volume profile construction, phase classification,
// risk scoring, price prediction and sentiment summarization.
package analysis

import (
	"math"

	"go.uber.org/zap"

	"github.com/wlplease/dashboard/internal/domain"
	"github.com/wlplease/dashboard/internal/indicators"
)

// Level derivation constants.
const (
	levelWindow = 20
	// resistanceFloor keeps resistance at least 1% above support.
	resistanceFloor = 1.01
	strongLevelPad  = 0.01
)

// defaultBands fallback support/resistance for well-known assets. Anything
// else falls back to a band of 5% around the current price.
var defaultBands = map[string]domain.PriceBand{
	"BTC": {Low: 42000, High: 48000},
	"ETH": {Low: 2200, High: 2800},
	"SOL": {Low: 90, High: 120},
}

// PhaseClassifier turns indicator readings, an external trend-strength value
// and the volume profile into a market condition with key levels.
type PhaseClassifier struct {
	policy PhasePolicy
	logger *zap.Logger
}

// NewPhaseClassifier creates a new PhaseClassifier with the given policy.
func NewPhaseClassifier(policy PhasePolicy, logger *zap.Logger) *PhaseClassifier {
	return &PhaseClassifier{policy: policy, logger: logger}
}

// Policy returns the active phase policy.
func (c *PhaseClassifier) Policy() PhasePolicy {
	return c.policy
}

// Classify derives the market condition from the price history. The price
// argument is the live price and becomes the pivot of the key levels.
// Unusable input resolves to the asset's fallback condition.
func (c *PhaseClassifier) Classify(asset domain.Asset, price float64, prices []float64, profile domain.VolumeProfile, trendStrength float64) domain.MarketCondition {
	if len(prices) < domain.MinHistoryPoints || price <= 0 {
		c.logger.Warn("classification input unusable, using fallback",
			zap.String("asset", asset.String()), zap.Int("points", len(prices)))
		return c.Fallback(asset, price)
	}

	in := PhaseInputs{
		Price:         price,
		SMA20:         indicators.SMA(prices, 20),
		SMA50:         indicators.SMA(prices, 50),
		SMA200:        indicators.SMA(prices, 200),
		TrendStrength: trendStrength,
		Profile:       profile,
	}

	phase, strength := c.policy.Classify(in)
	levels := deriveKeyLevels(price, prices, in.SMA20, in.SMA50)

	return domain.MarketCondition{
		Phase:      phase,
		Strength:   strength,
		Confidence: classificationConfidence(phase, strength, in, levels),
		KeyLevels:  levels,
	}
}

// Fallback returns the deterministic default condition for the asset: the
// known band for majors, otherwise 5% around the current price.
func (c *PhaseClassifier) Fallback(asset domain.Asset, price float64) domain.MarketCondition {
	band, ok := defaultBands[asset.Symbol]
	if !ok {
		if price <= 0 {
			price = 1
		}
		band = domain.PriceBand{Low: price * 0.95, High: price * 1.05}
	}

	pivot := price
	if pivot < band.Low || pivot > band.High {
		pivot = (band.Low + band.High) / 2
	}

	return domain.MarketCondition{
		Phase:      c.policy.Fallback(),
		Strength:   defaultPhaseStrength,
		Confidence: domain.MinConfidence,
		KeyLevels: domain.KeyLevels{
			StrongSupport:    band.Low * (1 - strongLevelPad),
			Support:          band.Low,
			Pivot:            pivot,
			Resistance:       band.High,
			StrongResistance: band.High * (1 + strongLevelPad),
		},
	}
}

// deriveKeyLevels anchors support and resistance on the lesser and greater
// of the 20-period extremes and the short moving averages, then floors the
// spread so resistance stays at least 1% above support.
func deriveKeyLevels(price float64, prices []float64, sma20, sma50 float64) domain.KeyLevels {
	window := prices
	if len(window) > levelWindow {
		window = window[len(window)-levelWindow:]
	}

	low, high := window[0], window[0]
	for _, p := range window {
		low = math.Min(low, p)
		high = math.Max(high, p)
	}

	support := math.Min(low, math.Min(sma20, sma50))
	resistance := math.Max(high, math.Max(sma20, sma50))

	// The live price can sit outside the historical window.
	support = math.Min(support, price)
	resistance = math.Max(resistance, price)

	if resistance < support*resistanceFloor {
		resistance = support * resistanceFloor
	}

	return domain.KeyLevels{
		StrongSupport:    support * (1 - strongLevelPad),
		Support:          support,
		Pivot:            price,
		Resistance:       resistance,
		StrongResistance: resistance * (1 + strongLevelPad),
	}
}

// classificationConfidence averages the phase strength, the moving-average
// alignment and the price position inside the key-level range, clamped to
// the [30,95] confidence bounds.
func classificationConfidence(phase domain.Phase, strength float64, in PhaseInputs, levels domain.KeyLevels) float64 {
	phaseScore := strength * 100

	alignment := 50.0
	switch {
	case aboveAll(in) || belowAll(in):
		alignment = 90
	case (in.Price > in.SMA20 && in.SMA20 > in.SMA50) || (in.Price < in.SMA20 && in.SMA20 < in.SMA50):
		alignment = 70
	}

	position := 0.5
	if span := levels.Resistance - levels.Support; span > 0 {
		position = (in.Price - levels.Support) / span
	}

	positionScore := 60.0
	switch {
	case phase.Bullish():
		positionScore = position * 100
	case phase.Bearish():
		positionScore = (1 - position) * 100
	}

	return clampConfidence((phaseScore + alignment + positionScore) / 3)
}

func clampConfidence(v float64) float64 {
	if v < domain.MinConfidence {
		return domain.MinConfidence
	}
	if v > domain.MaxConfidence {
		return domain.MaxConfidence
	}
	return v
}
