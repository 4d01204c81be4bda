// Package marketdata fetches price history, sentiment and news for the
// analysis engine. Exchange payloads are parsed with decimals at the boundary
// and handed to the engine as plain floats.
package marketdata

import (
	"context"

	"github.com/wlplease/dashboard/internal/domain"
)

// Provider fetches historical price and volume series for an asset.
type Provider interface {
	// HistoricalData returns up to limit candles at the given interval,
	// oldest first.
	HistoricalData(ctx context.Context, asset domain.Asset, interval string, limit int) (domain.MarketHistory, error)
}

// SentimentSource supplies social sentiment records and curated news.
type SentimentSource interface {
	SentimentRecords(ctx context.Context, asset domain.Asset) ([]domain.SentimentRecord, error)
	News(ctx context.Context, asset domain.Asset) (domain.NewsFeed, error)
}

// Composite bundles a price history provider with an optional sentiment
// source behind the single surface the analyzer consumes. A nil sentiment
// source yields empty records so analysis degrades to neutral sentiment.
type Composite struct {
	history Provider
	feed    SentimentSource
}

// NewComposite creates the combined provider.
func NewComposite(history Provider, feed SentimentSource) *Composite {
	return &Composite{history: history, feed: feed}
}

// HistoricalData delegates to the underlying exchange provider.
func (c *Composite) HistoricalData(ctx context.Context, asset domain.Asset, interval string, limit int) (domain.MarketHistory, error) {
	return c.history.HistoricalData(ctx, asset, interval, limit)
}

// SentimentRecords returns social sentiment, or nothing without a feed.
func (c *Composite) SentimentRecords(ctx context.Context, asset domain.Asset) ([]domain.SentimentRecord, error) {
	if c.feed == nil {
		return nil, nil
	}
	return c.feed.SentimentRecords(ctx, asset)
}

// News returns curated news, or an empty feed without a source.
func (c *Composite) News(ctx context.Context, asset domain.Asset) (domain.NewsFeed, error) {
	if c.feed == nil {
		return domain.NewsFeed{}, nil
	}
	return c.feed.News(ctx, asset)
}
