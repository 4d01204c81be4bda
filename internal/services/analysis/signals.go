package analysis

import (
	"math"

	"go.uber.org/zap"

	"github.com/wlplease/dashboard/internal/domain"
	"github.com/wlplease/dashboard/internal/indicators"
)

// trendFlatBand relative MA divergence treated as flat.
const trendFlatBand = 0.002

// SignalBuilder computes the technical signal bundle from raw series.
type SignalBuilder struct {
	logger *zap.Logger
}

// NewSignalBuilder creates a new SignalBuilder instance.
func NewSignalBuilder(logger *zap.Logger) *SignalBuilder {
	return &SignalBuilder{logger: logger}
}

// Build derives trend, momentum, volatility and volume signals. Short input
// degrades to the neutral bundle instead of failing.
func (s *SignalBuilder) Build(prices, volumes []float64) domain.TechnicalSignals {
	if len(prices) < domain.MinHistoryPoints {
		s.logger.Warn("not enough prices for signals", zap.Int("points", len(prices)))
		return domain.NeutralSignals()
	}

	price := prices[len(prices)-1]
	sma20 := indicators.SMA(prices, 20)
	sma50 := indicators.SMA(prices, 50)
	sma200 := indicators.SMA(prices, 200)

	rsi := indicators.RSI(prices, indicators.DefaultRSIPeriod)
	macdLine, macdSignal, histogram := indicators.MACD(prices)
	stochRSI := indicators.StochRSI(prices, indicators.DefaultStochRSIPeriod)

	volatility := indicators.Volatility(prices)
	volumeRatio := indicators.VolumeRatio(volumes)

	return domain.TechnicalSignals{
		Trend: domain.TrendSignal{
			Primary:   trendDirection(price, sma20, sma50),
			Secondary: maSlope(sma50, sma200),
			Strength:  trendIntensity(price, sma50),
		},
		Momentum: domain.MomentumSignal{
			RSI:      rsi,
			RSILabel: indicators.InterpretRSI(rsi),
			MACD: domain.MACDSignal{
				Line:      macdLine,
				Signal:    macdSignal,
				Histogram: histogram,
				Label:     indicators.InterpretMACD(histogram),
			},
			StochRSI:      stochRSI,
			StochRSILabel: indicators.InterpretStochRSI(stochRSI),
		},
		Volatility: domain.VolatilitySignal{
			Current: volatility,
			Trend:   indicators.VolatilityTrend(prices),
			Risk:    indicators.VolatilityRisk(volatility),
		},
		Volume: domain.VolumeSignal{
			ChangeRatio:  volumeRatio,
			Trend:        indicators.VolumeTrend(volumeRatio),
			Significance: indicators.VolumeSignificance(volumeRatio),
		},
	}
}

// trendDirection labels the short-term structure from price and the fast
// moving averages.
func trendDirection(price, sma20, sma50 float64) string {
	switch {
	case price > sma20 && sma20 > sma50:
		return domain.SignalBullish
	case price < sma20 && sma20 < sma50:
		return domain.SignalBearish
	default:
		return domain.SignalNeutral
	}
}

// maSlope labels the longer-term structure from the slow moving averages.
func maSlope(sma50, sma200 float64) string {
	if sma200 == 0 {
		return domain.TrendStable
	}

	diff := (sma50 - sma200) / sma200
	switch {
	case diff > trendFlatBand:
		return domain.TrendRising
	case diff < -trendFlatBand:
		return domain.TrendFalling
	default:
		return domain.TrendStable
	}
}

// trendIntensity scales the price distance from the 50-period average into
// a [0,1] strength.
func trendIntensity(price, sma50 float64) float64 {
	if sma50 == 0 {
		return 0
	}

	return math.Min(1, math.Abs(price-sma50)/sma50*10)
}
