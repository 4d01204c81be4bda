package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wlplease/dashboard/internal/domain"
)

func TestSummarizeSentiment(t *testing.T) {
	t.Run("empty input is neutral", func(t *testing.T) {
		summary := SummarizeSentiment(nil, nil)

		assert.InDelta(t, 50, summary.Score, 1e-9)
		assert.InDelta(t, 50, summary.NewsScore, 1e-9)
		assert.InDelta(t, 50, summary.Combined, 1e-9)
		assert.Equal(t, domain.SignalNeutral, summary.Label)
		assert.Zero(t, summary.Articles)
	})

	t.Run("volume-weighted bullish share", func(t *testing.T) {
		records := []domain.SentimentRecord{
			{Volume: 300, Sentiment: "bullish"},
			{Volume: 100, Sentiment: "bearish"},
		}
		news := &domain.NewsFeed{News: []domain.NewsItem{
			{Title: "a", Sentiment: "positive"},
			{Title: "b", Sentiment: "positive"},
			{Title: "c", Sentiment: "positive"},
			{Title: "d", Sentiment: "negative"},
		}}

		summary := SummarizeSentiment(records, news)

		assert.InDelta(t, 75, summary.Score, 1e-9)
		assert.InDelta(t, 75, summary.NewsScore, 1e-9)
		assert.InDelta(t, 75, summary.Combined, 1e-9)
		assert.Equal(t, domain.SignalBullish, summary.Label)
		assert.Equal(t, 4, summary.Articles)
	})

	t.Run("bearish blend", func(t *testing.T) {
		records := []domain.SentimentRecord{
			{Volume: 80, Sentiment: "bearish"},
			{Volume: 20, Sentiment: "bullish"},
		}
		news := &domain.NewsFeed{News: []domain.NewsItem{
			{Title: "a", Sentiment: "negative"},
			{Title: "b", Sentiment: "negative"},
		}}

		summary := SummarizeSentiment(records, news)

		assert.InDelta(t, 20, summary.Score, 1e-9)
		assert.InDelta(t, 0, summary.NewsScore, 1e-9)
		assert.InDelta(t, 12, summary.Combined, 1e-9)
		assert.Equal(t, domain.SignalBearish, summary.Label)
	})

	t.Run("non-directional records are ignored", func(t *testing.T) {
		records := []domain.SentimentRecord{
			{Volume: 100, Sentiment: "bullish"},
			{Volume: 500, Sentiment: "sideways"},
			{Volume: -50, Sentiment: "bearish"},
		}

		summary := SummarizeSentiment(records, nil)
		assert.InDelta(t, 100, summary.Score, 1e-9)
	})

	t.Run("uncountable news stays neutral", func(t *testing.T) {
		news := &domain.NewsFeed{News: []domain.NewsItem{{Title: "a", Sentiment: "mixed"}}}

		summary := SummarizeSentiment(nil, news)
		assert.InDelta(t, 50, summary.NewsScore, 1e-9)
		assert.Zero(t, summary.Articles)
	})
}
