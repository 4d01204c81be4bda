package analysis

import (
	"math"

	"github.com/pkg/errors"

	"github.com/wlplease/dashboard/internal/domain"
)

// Policy names accepted in configuration.
const (
	PhasePolicyTrend   = "trend"
	PhasePolicyWyckoff = "wyckoff"
)

// Trend-strength thresholds shared by both policies.
const (
	strongTrendThreshold = 0.6
	weakTrendThreshold   = 0.15
)

// Per-phase strength scaling.
const (
	trendStrengthScale    = 1.2
	pressureStrengthScale = 1.5
	defaultPhaseStrength  = 0.5
)

// PhaseInputs everything a phase policy needs to label the market.
type PhaseInputs struct {
	Price         float64
	SMA20         float64
	SMA50         float64
	SMA200        float64
	TrendStrength float64
	Profile       domain.VolumeProfile
}

// PhasePolicy labels the market phase from one set of inputs. Policies are
// pure, identical inputs always produce identical output.
type PhasePolicy interface {
	// Name returns the configuration name of the policy.
	Name() string
	// Classify returns the phase label and its [0,1] strength.
	Classify(in PhaseInputs) (domain.Phase, float64)
	// Fallback returns the policy's label for an unclassifiable market.
	Fallback() domain.Phase
}

// PhasePolicyFor resolves a configured policy name.
func PhasePolicyFor(name string) (PhasePolicy, error) {
	switch name {
	case PhasePolicyTrend, "":
		return trendPolicy{}, nil
	case PhasePolicyWyckoff:
		return wyckoffPolicy{}, nil
	default:
		return nil, errors.Errorf("unknown phase policy %q", name)
	}
}

// trendPolicy labels phases by moving-average alignment: bullish, bearish,
// correction, recovery, sideways or neutral.
type trendPolicy struct{}

func (trendPolicy) Name() string { return PhasePolicyTrend }

func (trendPolicy) Fallback() domain.Phase { return domain.PhaseNeutral }

func (trendPolicy) Classify(in PhaseInputs) (domain.Phase, float64) {
	switch {
	case aboveAll(in) && in.TrendStrength > strongTrendThreshold:
		return domain.PhaseBullish, scaledTrendStrength(in.TrendStrength)
	case belowAll(in) && in.TrendStrength < -strongTrendThreshold:
		return domain.PhaseBearish, scaledTrendStrength(in.TrendStrength)
	case in.Price > in.SMA200 && in.Price < in.SMA50:
		return domain.PhaseCorrection, defaultPhaseStrength
	case in.Price > in.SMA50 && in.Price < in.SMA200:
		return domain.PhaseRecovery, defaultPhaseStrength
	case math.Abs(in.TrendStrength) < weakTrendThreshold:
		return domain.PhaseSideways, defaultPhaseStrength
	default:
		return domain.PhaseNeutral, defaultPhaseStrength
	}
}

// wyckoffPolicy labels phases by market structure: markup, markdown,
// accumulation, distribution or sideways.
type wyckoffPolicy struct{}

func (wyckoffPolicy) Name() string { return PhasePolicyWyckoff }

func (wyckoffPolicy) Fallback() domain.Phase { return domain.PhaseSideways }

func (wyckoffPolicy) Classify(in PhaseInputs) (domain.Phase, float64) {
	switch {
	case aboveAll(in) && in.TrendStrength > strongTrendThreshold:
		return domain.PhaseMarkup, scaledTrendStrength(in.TrendStrength)
	case belowAll(in) && in.TrendStrength < -strongTrendThreshold:
		return domain.PhaseMarkdown, scaledTrendStrength(in.TrendStrength)
	case math.Abs(in.TrendStrength) < weakTrendThreshold:
		return domain.PhaseSideways, defaultPhaseStrength
	case in.TrendStrength > 0:
		return domain.PhaseAccumulation, scaledPressure(in.Profile.BuyingPressure)
	case in.TrendStrength < 0:
		return domain.PhaseDistribution, scaledPressure(in.Profile.SellingPressure)
	default:
		return domain.PhaseSideways, defaultPhaseStrength
	}
}

func aboveAll(in PhaseInputs) bool {
	return in.Price > in.SMA20 && in.Price > in.SMA50 && in.Price > in.SMA200 &&
		in.SMA20 > in.SMA50 && in.SMA50 > in.SMA200
}

func belowAll(in PhaseInputs) bool {
	return in.Price < in.SMA20 && in.Price < in.SMA50 && in.Price < in.SMA200 &&
		in.SMA20 < in.SMA50 && in.SMA50 < in.SMA200
}

func scaledTrendStrength(trendStrength float64) float64 {
	return math.Min(1, math.Abs(trendStrength)*trendStrengthScale)
}

func scaledPressure(pressure float64) float64 {
	return math.Min(1, pressure*pressureStrengthScale)
}
