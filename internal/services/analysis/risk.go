package analysis

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/wlplease/dashboard/internal/domain"
)

// Warning thresholds.
const (
	warnVolatility  = 50.0
	warnWeakTrend   = 0.3
	warnVolumeSpike = 2.0
)

// RiskInputs readings the scorer folds into the composite risk.
type RiskInputs struct {
	// Volatility annualized volatility in [0,100].
	Volatility float64
	// TrendStrength external trend-strength estimate, roughly [-1,1].
	TrendStrength float64
	// SentimentScore combined sentiment in [0,100].
	SentimentScore float64
	// VolumeRatio recent-to-baseline volume ratio.
	VolumeRatio float64
	// PriceChange24h percent change over the last day.
	PriceChange24h float64
}

// RiskScorer combines volatility, trend, sentiment and volume/price deltas
// into a 0-100 composite risk with named factors and warnings.
type RiskScorer struct {
	logger *zap.Logger
}

// NewRiskScorer creates a new RiskScorer instance.
func NewRiskScorer(logger *zap.Logger) *RiskScorer {
	return &RiskScorer{logger: logger}
}

// Score computes four independent [0,100] factors and their unweighted mean.
// The warnings list is never empty.
func (r *RiskScorer) Score(in RiskInputs) domain.RiskAssessment {
	trend := math.Abs(in.TrendStrength)
	if trend > 1 {
		trend = 1
	}

	factors := domain.RiskFactors{
		Technical:   clampScore(in.Volatility*0.6 + (1-trend)*40),
		Sentiment:   clampScore(100 - in.SentimentScore),
		Fundamental: clampScore(in.Volatility*0.4 + math.Abs(in.VolumeRatio-1)*30 + math.Abs(in.PriceChange24h)*2),
		Market:      clampScore(trendDeficit(in.TrendStrength)*60 + math.Abs(in.VolumeRatio-1)*40),
	}

	overall := (factors.Technical + factors.Sentiment + factors.Fundamental + factors.Market) / 4

	return domain.RiskAssessment{
		Overall:  overall,
		Factors:  factors,
		Warnings: r.warnings(in),
	}
}

// trendDeficit maps trend strength into [0,1]: 0 for a confirmed uptrend,
// 1 for a confirmed downtrend.
func trendDeficit(trendStrength float64) float64 {
	if trendStrength > 1 {
		trendStrength = 1
	}
	if trendStrength < -1 {
		trendStrength = -1
	}

	return (1 - trendStrength) / 2
}

func (r *RiskScorer) warnings(in RiskInputs) []string {
	var warnings []string
	if in.Volatility > warnVolatility {
		warnings = append(warnings, fmt.Sprintf("high volatility (%.1f), expect wide price swings", in.Volatility))
	}
	if math.Abs(in.TrendStrength) < warnWeakTrend {
		warnings = append(warnings, "weak trend, direction can flip quickly")
	}
	if in.VolumeRatio > warnVolumeSpike {
		warnings = append(warnings, fmt.Sprintf("volume ratio %.2f signals unusual activity", in.VolumeRatio))
	}

	if len(warnings) == 0 {
		warnings = []string{domain.NoRiskWarning}
	}

	return warnings
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
