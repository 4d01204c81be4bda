package analysis

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/wlplease/dashboard/internal/domain"
)

// Policy names accepted in configuration.
const (
	PredictionPolicyRange     = "range"
	PredictionPolicyFibonacci = "fibonacci"
)

// rangeClamp bounds every predicted range to 15% around the current price.
const rangeClamp = 0.15

// PredictionInputs readings shared by the prediction policies.
type PredictionInputs struct {
	Price float64
	// Volatility annualized volatility in [0,100].
	Volatility float64
	// SentimentScore combined sentiment in [0,100].
	SentimentScore float64
	// RecentTrend 10-period fractional rate of change.
	RecentTrend float64
	// TrendStrength external trend-strength estimate, roughly [-1,1].
	TrendStrength float64
	// Levels key levels of the classified condition, used by the
	// retracement policy.
	Levels domain.KeyLevels
}

// PredictionPolicy derives the three-horizon prediction set. Every policy
// guarantees low<high ranges clamped to 15% around the price, widening with
// horizon length, and confidences in [30,95] decreasing with horizon length.
type PredictionPolicy interface {
	// Name returns the configuration name of the policy.
	Name() string
	// Predict builds the prediction set.
	Predict(in PredictionInputs) domain.PredictionSet
}

// PredictionPolicyFor resolves a configured policy name.
func PredictionPolicyFor(name string) (PredictionPolicy, error) {
	switch name {
	case PredictionPolicyRange, "":
		return rangePolicy{}, nil
	case PredictionPolicyFibonacci:
		return fibonacciPolicy{}, nil
	default:
		return nil, errors.Errorf("unknown prediction policy %q", name)
	}
}

// PricePredictor applies the configured prediction policy.
type PricePredictor struct {
	policy PredictionPolicy
	logger *zap.Logger
}

// NewPricePredictor creates a new PricePredictor with the given policy.
func NewPricePredictor(policy PredictionPolicy, logger *zap.Logger) *PricePredictor {
	return &PricePredictor{policy: policy, logger: logger}
}

// Policy returns the active prediction policy.
func (p *PricePredictor) Policy() PredictionPolicy {
	return p.policy
}

// Predict builds the three-horizon prediction set. A non-positive price
// degrades to the neutral set.
func (p *PricePredictor) Predict(in PredictionInputs) domain.PredictionSet {
	if in.Price <= 0 {
		p.logger.Warn("no usable price for prediction")
		return domain.NeutralPredictions(1)
	}

	return p.policy.Predict(in)
}

// horizonParams per-horizon tuning shared by both policies.
type horizonParams struct {
	name string
	// base fixed fractional range offset of the widening policy.
	base float64
	// scale multiplies volatility and drift contributions.
	scale float64
	// retracement level of the fibonacci policy.
	retracement float64
	// confidence base before shared adjustments.
	confidence float64
}

var horizons = []horizonParams{
	{name: domain.HorizonShort, base: 0.02, scale: 0.5, retracement: 0.236, confidence: 75},
	{name: domain.HorizonMid, base: 0.05, scale: 1.0, retracement: 0.382, confidence: 65},
	{name: domain.HorizonLong, base: 0.10, scale: 1.5, retracement: 0.618, confidence: 55},
}

// rangePolicy widens a volatility-scaled band per horizon and drifts the
// midpoint by capped sentiment and recent-trend adjustments.
type rangePolicy struct{}

func (rangePolicy) Name() string { return PredictionPolicyRange }

func (rangePolicy) Predict(in PredictionInputs) domain.PredictionSet {
	volFactor := math.Min(in.Volatility, 50) / 100

	sentimentAdj := (in.SentimentScore - 50) / 50 * 0.02
	trendAdj := clampRange(in.RecentTrend, -0.05, 0.05) * 0.5

	predict := func(h horizonParams) domain.Prediction {
		halfWidth := in.Price * (h.base + volFactor*h.scale*0.1)
		mid := in.Price * (1 + (sentimentAdj+trendAdj)*h.scale)

		low, high := clampBand(mid-halfWidth, mid+halfWidth, in.Price)

		return domain.Prediction{
			Horizon:    h.name,
			Price:      domain.PriceBand{Low: low, High: high},
			Confidence: horizonConfidence(h, in),
			Signals:    horizonSignals(in, sentimentAdj+trendAdj),
		}
	}

	return domain.PredictionSet{
		ShortTerm: predict(horizons[0]),
		MidTerm:   predict(horizons[1]),
		LongTerm:  predict(horizons[2]),
	}
}

// fibonacciPolicy sizes each horizon from a retracement fraction of the
// support/resistance span, spread by the trend model's conviction.
type fibonacciPolicy struct{}

func (fibonacciPolicy) Name() string { return PredictionPolicyFibonacci }

func (fibonacciPolicy) Predict(in PredictionInputs) domain.PredictionSet {
	span := in.Levels.Resistance - in.Levels.Support
	if span <= 0 {
		span = in.Price * 0.05
	}

	conviction := math.Min(1, math.Abs(in.TrendStrength))
	spread := 0.5 + (1-conviction)*0.5

	predict := func(h horizonParams) domain.Prediction {
		halfWidth := span * h.retracement * spread
		low, high := clampBand(in.Price-halfWidth, in.Price+halfWidth, in.Price)

		return domain.Prediction{
			Horizon:    h.name,
			Price:      domain.PriceBand{Low: low, High: high},
			Confidence: horizonConfidence(h, in),
			Signals: append(horizonSignals(in, 0),
				fmt.Sprintf("range from %.3g retracement of the key-level span", h.retracement)),
		}
	}

	return domain.PredictionSet{
		ShortTerm: predict(horizons[0]),
		MidTerm:   predict(horizons[1]),
		LongTerm:  predict(horizons[2]),
	}
}

// clampBand bounds the range to 15% around the price and keeps low<high.
func clampBand(low, high, price float64) (float64, float64) {
	low = math.Max(low, price*(1-rangeClamp))
	high = math.Min(high, price*(1+rangeClamp))
	if low >= high {
		low = high * 0.999
	}

	return low, high
}

// horizonConfidence applies the shared volatility penalty and trend bonus to
// the horizon base, clamped to [30,95]. The adjustments are identical across
// horizons so the per-horizon ordering is preserved.
func horizonConfidence(h horizonParams, in PredictionInputs) float64 {
	penalty := math.Max(0, in.Volatility-30) * 0.4
	bonus := math.Min(1, math.Abs(in.TrendStrength)) * 10

	return clampConfidence(h.confidence - penalty + bonus)
}

func horizonSignals(in PredictionInputs, drift float64) []string {
	tone := domain.SignalNeutral
	switch {
	case drift > 0.005:
		tone = domain.SignalBullish
	case drift < -0.005:
		tone = domain.SignalBearish
	}

	return []string{
		fmt.Sprintf("volatility %.1f sizes the range", in.Volatility),
		fmt.Sprintf("%s drift from sentiment and momentum", tone),
	}
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
