package marketdata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/wlplease/dashboard/internal/domain"
)

const feedTimeout = 10 * time.Second

// Feed pulls sentiment records and curated news from an HTTP feed service.
// An unconfigured feed returns empty results so the analysis keeps running
// with neutral sentiment.
type Feed struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewFeed creates a feed client. An empty baseURL disables the feed.
func NewFeed(baseURL string, logger *zap.Logger) *Feed {
	return &Feed{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: feedTimeout},
		logger:     logger,
	}
}

// SentimentRecords fetches volume-weighted sentiment records for the asset.
func (f *Feed) SentimentRecords(ctx context.Context, asset domain.Asset) ([]domain.SentimentRecord, error) {
	if f.baseURL == "" {
		return nil, nil
	}

	var records []domain.SentimentRecord
	if err := f.getJSON(ctx, "/sentiment", asset, &records); err != nil {
		return nil, err
	}

	return records, nil
}

// News fetches the curated news feed for the asset.
func (f *Feed) News(ctx context.Context, asset domain.Asset) (domain.NewsFeed, error) {
	if f.baseURL == "" {
		return domain.NewsFeed{}, nil
	}

	var feed domain.NewsFeed
	if err := f.getJSON(ctx, "/news", asset, &feed); err != nil {
		return domain.NewsFeed{}, err
	}

	return feed, nil
}

func (f *Feed) getJSON(ctx context.Context, path string, asset domain.Asset, out any) error {
	endpoint, err := url.Parse(f.baseURL + path)
	if err != nil {
		return errors.Wrapf(err, "invalid feed URL %s", f.baseURL+path)
	}

	query := endpoint.Query()
	query.Set("asset", asset.String())
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return errors.Wrap(err, "failed to create feed request")
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(domain.ErrUpstream, "feed request %s: %v", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Wrapf(domain.ErrUpstream, "feed %s returned status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(domain.ErrUpstream, "feed %s payload decode: %v", path, err)
	}

	return nil
}
