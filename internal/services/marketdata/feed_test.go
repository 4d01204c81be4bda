package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wlplease/dashboard/internal/domain"
)

var testAsset = domain.Asset{Symbol: "BTC", Quote: "USDT"}

func TestFeed(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches sentiment records", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/sentiment", r.URL.Path)
			assert.Equal(t, "BTC_USDT", r.URL.Query().Get("asset"))

			_, _ = w.Write([]byte(`[{"volume":300,"sentiment":"bullish"},{"volume":100,"sentiment":"bearish"}]`))
		}))
		defer server.Close()

		feed := NewFeed(server.URL, zap.NewNop())
		records, err := feed.SentimentRecords(ctx, testAsset)

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.InDelta(t, 300, records[0].Volume, 1e-9)
		assert.Equal(t, "bullish", records[0].Sentiment)
	})

	t.Run("fetches the news feed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/news", r.URL.Path)

			_, _ = w.Write([]byte(`{"news":[{"title":"ETF inflows hit a record","sentiment":"positive"}]}`))
		}))
		defer server.Close()

		feed := NewFeed(server.URL, zap.NewNop())
		news, err := feed.News(ctx, testAsset)

		require.NoError(t, err)
		require.Len(t, news.News, 1)
		assert.Equal(t, "positive", news.News[0].Sentiment)
	})

	t.Run("unconfigured feed returns empty results", func(t *testing.T) {
		feed := NewFeed("", zap.NewNop())

		records, err := feed.SentimentRecords(ctx, testAsset)
		require.NoError(t, err)
		assert.Empty(t, records)

		news, err := feed.News(ctx, testAsset)
		require.NoError(t, err)
		assert.Empty(t, news.News)
	})

	t.Run("reports upstream status errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		feed := NewFeed(server.URL, zap.NewNop())
		_, err := feed.SentimentRecords(ctx, testAsset)

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrUpstream))
	})

	t.Run("rejects malformed payloads", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer server.Close()

		feed := NewFeed(server.URL, zap.NewNop())
		_, err := feed.News(ctx, testAsset)

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrUpstream))
	})
}

type fakeHistoryProvider struct {
	history domain.MarketHistory
	err     error
}

func (f *fakeHistoryProvider) HistoricalData(context.Context, domain.Asset, string, int) (domain.MarketHistory, error) {
	return f.history, f.err
}

func TestComposite(t *testing.T) {
	ctx := context.Background()

	t.Run("delegates history to the exchange provider", func(t *testing.T) {
		provider := &fakeHistoryProvider{history: domain.MarketHistory{CurrentPrice: 42}}
		composite := NewComposite(provider, nil)

		history, err := composite.HistoricalData(ctx, testAsset, "1h", 50)

		require.NoError(t, err)
		assert.InDelta(t, 42, history.CurrentPrice, 1e-9)
	})

	t.Run("missing sentiment source degrades to empty results", func(t *testing.T) {
		composite := NewComposite(&fakeHistoryProvider{}, nil)

		records, err := composite.SentimentRecords(ctx, testAsset)
		require.NoError(t, err)
		assert.Empty(t, records)

		news, err := composite.News(ctx, testAsset)
		require.NoError(t, err)
		assert.Empty(t, news.News)
	})

	t.Run("wired sentiment source is used", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/sentiment" {
				_, _ = w.Write([]byte(`[{"volume":10,"sentiment":"bullish"}]`))
				return
			}
			_, _ = w.Write([]byte(`{"news":[]}`))
		}))
		defer server.Close()

		composite := NewComposite(&fakeHistoryProvider{}, NewFeed(server.URL, zap.NewNop()))

		records, err := composite.SentimentRecords(ctx, testAsset)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})
}
