package strategy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wlplease/dashboard/internal/domain"
)

func testInputs(phase domain.Phase, strength float64) Inputs {
	return Inputs{
		Asset: domain.Asset{Symbol: "BTC", Quote: "USDT"},
		Price: 100,
		Condition: domain.MarketCondition{
			Phase:      phase,
			Strength:   strength,
			Confidence: 80,
			KeyLevels: domain.KeyLevels{
				StrongSupport:    89.1,
				Support:          94,
				Pivot:            100,
				Resistance:       106,
				StrongResistance: 111,
			},
		},
		Signals: signalsWithRSI(55),
		Sentiment: domain.SentimentSummary{
			Score: 60, NewsScore: 60, Combined: 60, Label: "bullish",
		},
		Risk:        domain.NeutralRisk(),
		Predictions: domain.NeutralPredictions(100),
	}
}

func signalsWithRSI(rsi float64) domain.TechnicalSignals {
	signals := domain.NeutralSignals()
	signals.Momentum.RSI = rsi
	return signals
}

func TestRuleBasedBullish(t *testing.T) {
	generator := NewRuleBased(zap.NewNop())
	ctx := context.Background()

	t.Run("buys the pivot in a healthy uptrend", func(t *testing.T) {
		rec, err := generator.Recommend(ctx, testInputs(domain.PhaseBullish, 0.8))

		require.NoError(t, err)
		assert.Equal(t, domain.ActionBuy, rec.Action)
		assert.Equal(t, []float64{100, 94}, rec.Entries)
		assert.InDelta(t, 89.1*0.99, rec.StopLoss, 1e-9)
		assert.Equal(t, []float64{106, 111}, rec.Targets)
		assert.Equal(t, domain.HorizonLong, rec.Timeframe)
		assert.Contains(t, rec.Rationale, "bullish")
		assert.NoError(t, rec.Validate())
	})

	t.Run("weak uptrend maps to the mid timeframe", func(t *testing.T) {
		rec, err := generator.Recommend(ctx, testInputs(domain.PhaseRecovery, 0.5))

		require.NoError(t, err)
		assert.Equal(t, domain.ActionBuy, rec.Action)
		assert.Equal(t, domain.HorizonMid, rec.Timeframe)
	})

	t.Run("overbought momentum switches to staged accumulation", func(t *testing.T) {
		in := testInputs(domain.PhaseBullish, 0.8)
		in.Signals = signalsWithRSI(75)

		rec, err := generator.Recommend(ctx, in)

		require.NoError(t, err)
		assert.Equal(t, domain.ActionAccumulate, rec.Action)
		assert.Equal(t, []float64{94, 89.1}, rec.Entries)
		assert.NoError(t, rec.Validate())
	})

	t.Run("elevated risk switches to staged accumulation", func(t *testing.T) {
		in := testInputs(domain.PhaseMarkup, 0.8)
		in.Risk.Overall = 75

		rec, err := generator.Recommend(ctx, in)

		require.NoError(t, err)
		assert.Equal(t, domain.ActionAccumulate, rec.Action)
	})
}

func TestRuleBasedBearish(t *testing.T) {
	generator := NewRuleBased(zap.NewNop())
	ctx := context.Background()

	t.Run("sells into strength in a downtrend", func(t *testing.T) {
		in := testInputs(domain.PhaseBearish, 0.6)
		in.Signals = signalsWithRSI(45)

		rec, err := generator.Recommend(ctx, in)

		require.NoError(t, err)
		assert.Equal(t, domain.ActionSell, rec.Action)
		assert.Equal(t, []float64{100, 106}, rec.Entries)
		assert.InDelta(t, 111*1.01, rec.StopLoss, 1e-9)
		assert.Equal(t, []float64{94, 89.1}, rec.Targets)
		assert.NoError(t, rec.Validate())
	})

	t.Run("trims instead of dumping when oversold", func(t *testing.T) {
		in := testInputs(domain.PhaseMarkdown, 0.6)
		in.Signals = signalsWithRSI(25)

		rec, err := generator.Recommend(ctx, in)

		require.NoError(t, err)
		assert.Equal(t, domain.ActionReduce, rec.Action)
	})
}

func TestRuleBasedHold(t *testing.T) {
	generator := NewRuleBased(zap.NewNop())
	ctx := context.Background()

	t.Run("sideways market waits for a breakout", func(t *testing.T) {
		rec, err := generator.Recommend(ctx, testInputs(domain.PhaseSideways, 0.1))

		require.NoError(t, err)
		assert.Equal(t, domain.ActionHold, rec.Action)
		assert.Contains(t, rec.Rationale, "sideways")
		assert.NoError(t, rec.Validate())
	})

	t.Run("missing price always holds", func(t *testing.T) {
		in := testInputs(domain.PhaseBullish, 0.9)
		in.Price = 0

		rec, err := generator.Recommend(ctx, in)

		require.NoError(t, err)
		assert.Equal(t, domain.ActionHold, rec.Action)
		assert.Contains(t, rec.Rationale, "no valid price")
	})
}

func TestRuleBasedAlwaysValid(t *testing.T) {
	generator := NewRuleBased(zap.NewNop())
	ctx := context.Background()

	phases := []domain.Phase{
		domain.PhaseBullish, domain.PhaseBearish, domain.PhaseCorrection,
		domain.PhaseRecovery, domain.PhaseSideways, domain.PhaseNeutral,
		domain.PhaseMarkup, domain.PhaseMarkdown,
		domain.PhaseAccumulation, domain.PhaseDistribution,
	}

	for _, phase := range phases {
		for _, rsi := range []float64{5, 50, 95} {
			in := testInputs(phase, 0.5)
			in.Signals = signalsWithRSI(rsi)

			rec, err := generator.Recommend(ctx, in)

			require.NoError(t, err)
			assert.NoError(t, rec.Validate(), "phase %s rsi %.0f", phase, rsi)
			assert.NotEmpty(t, rec.Timeframe)
		}
	}
}
