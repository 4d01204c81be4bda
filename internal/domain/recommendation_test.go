package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendationFromJSON(t *testing.T) {
	t.Run("parses a plain JSON payload", func(t *testing.T) {
		raw := `{"action":"buy","entries":[100,94],"stop_loss":88.2,"targets":[106],"timeframe":"7d","rationale":"support holding"}`

		rec, err := RecommendationFromJSON(raw)

		require.NoError(t, err)
		assert.Equal(t, ActionBuy, rec.Action)
		assert.Equal(t, []float64{100, 94}, rec.Entries)
		assert.InDelta(t, 88.2, rec.StopLoss, 1e-9)
	})

	t.Run("strips markdown code fences", func(t *testing.T) {
		raw := "```json\n{\"action\":\"hold\",\"rationale\":\"unclear\"}\n```"

		rec, err := RecommendationFromJSON(raw)

		require.NoError(t, err)
		assert.Equal(t, ActionHold, rec.Action)
	})

	t.Run("rejects prose", func(t *testing.T) {
		_, err := RecommendationFromJSON("buy some bitcoin")
		assert.Error(t, err)
	})

	t.Run("rejects unknown actions", func(t *testing.T) {
		_, err := RecommendationFromJSON(`{"action":"moon","rationale":"why not"}`)
		assert.Error(t, err)
	})

	t.Run("rejects missing rationale", func(t *testing.T) {
		_, err := RecommendationFromJSON(`{"action":"buy"}`)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive entries", func(t *testing.T) {
		_, err := RecommendationFromJSON(`{"action":"buy","entries":[0],"rationale":"bad levels"}`)
		assert.Error(t, err)
	})

	t.Run("rejects negative stops", func(t *testing.T) {
		_, err := RecommendationFromJSON(`{"action":"sell","stop_loss":-1,"rationale":"bad stop"}`)
		assert.Error(t, err)
	})
}

func TestHoldRecommendation(t *testing.T) {
	t.Run("carries the supplied reason", func(t *testing.T) {
		rec := HoldRecommendation("upstream offline")

		assert.Equal(t, ActionHold, rec.Action)
		assert.Equal(t, "upstream offline", rec.Rationale)
		assert.NoError(t, rec.Validate())
	})

	t.Run("fills a default reason", func(t *testing.T) {
		rec := HoldRecommendation("")

		assert.NotEmpty(t, rec.Rationale)
		assert.NoError(t, rec.Validate())
	})
}
