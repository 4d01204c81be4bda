package indicators

import "github.com/wlplease/dashboard/internal/domain"

// Interpreter thresholds.
const (
	rsiOverbought      = 70.0
	rsiOversold        = 30.0
	stochRSIOverbought = 80.0
	stochRSIOversold   = 20.0

	volatilityHigh   = 50.0
	volatilityMedium = 25.0
	// volatilityTrendBand is the relative change treated as flat.
	volatilityTrendBand = 0.1

	volumeIncreasing  = 1.2
	volumeDecreasing  = 0.8
	volumeElevated    = 1.5
	volumeExceptional = 2.0
)

// InterpretRSI maps an RSI value to overbought, oversold or neutral.
func InterpretRSI(v float64) string {
	switch {
	case v > rsiOverbought:
		return domain.SignalOverbought
	case v < rsiOversold:
		return domain.SignalOversold
	default:
		return domain.SignalNeutral
	}
}

// InterpretMACD maps the histogram sign to a direction label.
func InterpretMACD(histogram float64) string {
	switch {
	case histogram > 0:
		return domain.SignalBullish
	case histogram < 0:
		return domain.SignalBearish
	default:
		return domain.SignalNeutral
	}
}

// InterpretStochRSI maps a stochastic RSI value to overbought, oversold or
// neutral.
func InterpretStochRSI(v float64) string {
	switch {
	case v > stochRSIOverbought:
		return domain.SignalOverbought
	case v < stochRSIOversold:
		return domain.SignalOversold
	default:
		return domain.SignalNeutral
	}
}

// VolatilityRisk buckets a [0,100] volatility into low, medium or high.
func VolatilityRisk(v float64) string {
	switch {
	case v >= volatilityHigh:
		return domain.RiskHigh
	case v >= volatilityMedium:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

// VolatilityTrend compares the volatility of the recent half of the series
// against the prior half.
func VolatilityTrend(series []float64) string {
	if len(series) < 4 {
		return domain.TrendStable
	}

	half := len(series) / 2
	previous := Volatility(series[:half])
	current := Volatility(series[half:])
	if previous == 0 {
		return domain.TrendStable
	}

	change := (current - previous) / previous
	switch {
	case change > volatilityTrendBand:
		return domain.TrendRising
	case change < -volatilityTrendBand:
		return domain.TrendFalling
	default:
		return domain.TrendStable
	}
}

// VolumeTrend maps the recent-to-baseline volume ratio to a trend label.
func VolumeTrend(ratio float64) string {
	switch {
	case ratio > volumeIncreasing:
		return domain.VolumeIncreasing
	case ratio < volumeDecreasing:
		return domain.VolumeDecreasing
	default:
		return domain.VolumeStable
	}
}

// VolumeSignificance buckets the volume ratio by how unusual it is.
func VolumeSignificance(ratio float64) string {
	switch {
	case ratio > volumeExceptional:
		return domain.SignificanceHigh
	case ratio > volumeElevated:
		return domain.SignificanceElevated
	default:
		return domain.SignificanceNormal
	}
}
