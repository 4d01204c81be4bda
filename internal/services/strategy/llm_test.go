package strategy

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wlplease/dashboard/internal/domain"
)

type fakeChat struct {
	response  string
	err       error
	gotSystem string
	gotUser   string
}

func (f *fakeChat) Chat(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	f.gotSystem = systemPrompt
	f.gotUser = userPrompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestLLMGenerator(t *testing.T) {
	ctx := context.Background()

	t.Run("parses a fenced JSON recommendation", func(t *testing.T) {
		fake := &fakeChat{response: "```json\n" + `{
			"action": "buy",
			"entries": [100, 94],
			"stop_loss": 88.2,
			"targets": [106, 111],
			"timeframe": "7d",
			"rationale": "uptrend intact with support holding"
		}` + "\n```"}
		generator := NewLLM(fake, zap.NewNop())

		rec, err := generator.Recommend(ctx, testInputs(domain.PhaseBullish, 0.8))

		require.NoError(t, err)
		assert.Equal(t, domain.ActionBuy, rec.Action)
		assert.Equal(t, []float64{100, 94}, rec.Entries)
		assert.InDelta(t, 88.2, rec.StopLoss, 1e-9)
		assert.Equal(t, domain.HorizonMid, rec.Timeframe)

		assert.Contains(t, fake.gotSystem, "ONLY valid JSON")
		assert.Contains(t, fake.gotUser, "BTC_USDT")
	})

	t.Run("wraps transport failures as upstream", func(t *testing.T) {
		fake := &fakeChat{err: errors.New("connection refused")}
		generator := NewLLM(fake, zap.NewNop())

		_, err := generator.Recommend(ctx, testInputs(domain.PhaseBullish, 0.8))

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrUpstream))
	})

	t.Run("rejects unparseable payloads as upstream", func(t *testing.T) {
		fake := &fakeChat{response: "the market looks good, buy now"}
		generator := NewLLM(fake, zap.NewNop())

		_, err := generator.Recommend(ctx, testInputs(domain.PhaseBullish, 0.8))

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrUpstream))
	})

	t.Run("rejects unknown actions as upstream", func(t *testing.T) {
		fake := &fakeChat{response: `{"action":"long","rationale":"yolo"}`}
		generator := NewLLM(fake, zap.NewNop())

		_, err := generator.Recommend(ctx, testInputs(domain.PhaseBullish, 0.8))

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrUpstream))
	})
}

func TestBuildUserPrompt(t *testing.T) {
	in := testInputs(domain.PhaseBullish, 0.8)
	in.Risk.Warnings = []string{"high volatility (62.0), expect wide price swings"}

	prompt := buildUserPrompt(in)

	assert.Contains(t, prompt, "# Market Assessment for BTC_USDT")
	assert.Contains(t, prompt, "## Market Condition")
	assert.Contains(t, prompt, "**Phase:** bullish")
	assert.Contains(t, prompt, "strong support 89.10")
	assert.Contains(t, prompt, "## Technical Signals")
	assert.Contains(t, prompt, "## Sentiment")
	assert.Contains(t, prompt, "high volatility (62.0)")
	assert.Contains(t, prompt, "**24h:**")
	assert.Contains(t, prompt, "**30d:**")
	assert.Contains(t, prompt, "JSON format")
}
