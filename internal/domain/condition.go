package domain

import "github.com/pkg/errors"

// Phase discrete market phase label.
type Phase string

// Trend-alignment label set.
const (
	PhaseBullish    Phase = "bullish"
	PhaseBearish    Phase = "bearish"
	PhaseCorrection Phase = "correction"
	PhaseRecovery   Phase = "recovery"
	PhaseSideways   Phase = "sideways"
	PhaseNeutral    Phase = "neutral"
)

// Wyckoff-style label set used by the alternate phase policy.
const (
	PhaseMarkup       Phase = "markup"
	PhaseMarkdown     Phase = "markdown"
	PhaseAccumulation Phase = "accumulation"
	PhaseDistribution Phase = "distribution"
)

// Confidence bounds shared by market condition and predictions.
const (
	MinConfidence = 30.0
	MaxConfidence = 95.0
)

// Bullish reports whether the phase belongs to the bullish family.
func (p Phase) Bullish() bool {
	return p == PhaseBullish || p == PhaseRecovery || p == PhaseMarkup || p == PhaseAccumulation
}

// Bearish reports whether the phase belongs to the bearish family.
func (p Phase) Bearish() bool {
	return p == PhaseBearish || p == PhaseCorrection || p == PhaseMarkdown || p == PhaseDistribution
}

// KeyLevels ordered support and resistance levels around the current price.
type KeyLevels struct {
	StrongSupport    float64 `json:"strong_support"`
	Support          float64 `json:"support"`
	Pivot            float64 `json:"pivot"`
	Resistance       float64 `json:"resistance"`
	StrongResistance float64 `json:"strong_resistance"`
}

// Validate checks the ordering invariant of the levels.
func (k KeyLevels) Validate() error {
	if k.StrongSupport > k.Support ||
		k.Support > k.Pivot ||
		k.Pivot > k.Resistance ||
		k.Resistance > k.StrongResistance {
		return errors.Errorf("levels out of order: %.4f %.4f %.4f %.4f %.4f",
			k.StrongSupport, k.Support, k.Pivot, k.Resistance, k.StrongResistance)
	}

	return nil
}

// MarketCondition classified phase with strength, confidence and key levels.
type MarketCondition struct {
	Phase Phase `json:"phase"`
	// Strength phase intensity in [0,1].
	Strength float64 `json:"strength"`
	// Confidence classification confidence in [30,95].
	Confidence float64   `json:"confidence"`
	KeyLevels  KeyLevels `json:"key_levels"`
}
