package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wlplease/dashboard/internal/domain"
)

func TestRiskScore(t *testing.T) {
	scorer := NewRiskScorer(zap.NewNop())

	t.Run("calm market emits the no-risk message", func(t *testing.T) {
		risk := scorer.Score(RiskInputs{
			Volatility:     20,
			TrendStrength:  0.7,
			SentimentScore: 60,
			VolumeRatio:    1.1,
			PriceChange24h: 1.5,
		})

		require.Len(t, risk.Warnings, 1)
		assert.Equal(t, domain.NoRiskWarning, risk.Warnings[0])
	})

	t.Run("warnings are never empty", func(t *testing.T) {
		inputs := []RiskInputs{
			{},
			{Volatility: 100, TrendStrength: -1, SentimentScore: 0, VolumeRatio: 5, PriceChange24h: -40},
			{Volatility: 20, TrendStrength: 0.9, SentimentScore: 80, VolumeRatio: 1},
		}
		for _, in := range inputs {
			assert.NotEmpty(t, scorer.Score(in).Warnings)
		}
	})

	t.Run("high volatility warns", func(t *testing.T) {
		risk := scorer.Score(RiskInputs{Volatility: 62, TrendStrength: 0.8, SentimentScore: 50, VolumeRatio: 1})
		assert.Contains(t, risk.Warnings[0], "high volatility")
	})

	t.Run("weak trend warns", func(t *testing.T) {
		risk := scorer.Score(RiskInputs{Volatility: 20, TrendStrength: 0.1, SentimentScore: 50, VolumeRatio: 1})
		assert.Contains(t, risk.Warnings[0], "weak trend")
	})

	t.Run("volume spike warns", func(t *testing.T) {
		risk := scorer.Score(RiskInputs{Volatility: 20, TrendStrength: 0.8, SentimentScore: 50, VolumeRatio: 2.5})
		assert.Contains(t, risk.Warnings[0], "volume ratio")
	})

	t.Run("factors and overall stay within bounds", func(t *testing.T) {
		extremes := []RiskInputs{
			{Volatility: 100, TrendStrength: 0, SentimentScore: 0, VolumeRatio: 10, PriceChange24h: 80},
			{Volatility: 0, TrendStrength: 2, SentimentScore: 100, VolumeRatio: 1, PriceChange24h: 0},
			{Volatility: 50, TrendStrength: -3, SentimentScore: 50, VolumeRatio: 0, PriceChange24h: -100},
		}
		for _, in := range extremes {
			risk := scorer.Score(in)
			for _, factor := range []float64{
				risk.Factors.Technical, risk.Factors.Fundamental,
				risk.Factors.Sentiment, risk.Factors.Market, risk.Overall,
			} {
				assert.GreaterOrEqual(t, factor, 0.0)
				assert.LessOrEqual(t, factor, 100.0)
			}
		}
	})

	t.Run("sentiment factor mirrors the blended score", func(t *testing.T) {
		risk := scorer.Score(RiskInputs{Volatility: 20, TrendStrength: 0.8, SentimentScore: 80, VolumeRatio: 1})
		assert.InDelta(t, 20, risk.Factors.Sentiment, 1e-9)
	})

	t.Run("overall is the unweighted mean", func(t *testing.T) {
		risk := scorer.Score(RiskInputs{Volatility: 40, TrendStrength: 0.5, SentimentScore: 50, VolumeRatio: 1.5, PriceChange24h: 5})
		mean := (risk.Factors.Technical + risk.Factors.Fundamental + risk.Factors.Sentiment + risk.Factors.Market) / 4
		assert.InDelta(t, mean, risk.Overall, 1e-9)
	})
}
