package marketdata

import (
	"context"
	"fmt"
	"time"

	bybit "github.com/hirokisan/bybit/v2"
	"github.com/pkg/errors"

	"github.com/wlplease/dashboard/internal/domain"
)

const bybitMaxPerRequest = 200

// Bybit fetches spot klines from Bybit V5.
type Bybit struct {
	client *bybit.Client
}

// NewBybit creates a Bybit history provider.
func NewBybit(client *bybit.Client) *Bybit {
	return &Bybit{client: client}
}

// HistoricalData fetches close prices and volumes for the asset, paging
// through the 200-candle API limit when needed.
func (p *Bybit) HistoricalData(ctx context.Context, asset domain.Asset, interval string, limit int) (domain.MarketHistory, error) {
	if limit <= 0 {
		return domain.MarketHistory{}, errors.New("limit must be > 0")
	}

	bybitInterval, err := convertIntervalToBybit(interval)
	if err != nil {
		return domain.MarketHistory{}, errors.Wrapf(err, "invalid interval: %s", interval)
	}

	symbol := bybit.SymbolV5(asset.Ticker())

	var allKlines []bybit.V5GetKlineItem
	remaining := limit

	for remaining > 0 {
		batchSize := remaining
		if batchSize > bybitMaxPerRequest {
			batchSize = bybitMaxPerRequest
		}

		param := bybit.V5GetKlineParam{
			Category: bybit.CategoryV5Spot,
			Symbol:   symbol,
			Interval: bybit.Interval(bybitInterval),
			Limit:    &batchSize,
		}

		result, err := p.client.V5().Market().GetKline(param)
		if err != nil {
			return domain.MarketHistory{}, errors.Wrapf(err, "failed to fetch klines from Bybit for %s", asset.String())
		}
		if result == nil {
			return domain.MarketHistory{}, errors.Errorf("empty result from Bybit API for %s", asset.String())
		}

		klines := result.Result.List
		if len(klines) == 0 {
			if len(allKlines) == 0 {
				return domain.MarketHistory{}, errors.Errorf("no kline data returned from Bybit for %s", asset.String())
			}
			break
		}

		allKlines = append(allKlines, klines...)

		if len(klines) < batchSize {
			break
		}

		remaining -= len(klines)

		// avoid rate limiting by small delay between requests
		if remaining > 0 {
			select {
			case <-ctx.Done():
				return domain.MarketHistory{}, ctx.Err()
			case <-time.After(100 * time.Millisecond):
			}
		}
	}

	// Bybit returns candles newest first
	prices := make([]float64, 0, len(allKlines))
	volumes := make([]float64, 0, len(allKlines))
	for i := len(allKlines) - 1; i >= 0; i-- {
		k := allKlines[i]

		closePrice, err := parsePrice(k.Close)
		if err != nil {
			return domain.MarketHistory{}, errors.Wrapf(err, "failed to parse close price at index %d", i)
		}
		volume, err := parsePrice(k.Volume)
		if err != nil {
			return domain.MarketHistory{}, errors.Wrapf(err, "failed to parse volume at index %d", i)
		}

		prices = append(prices, closePrice)
		volumes = append(volumes, volume)
	}

	return buildHistory(prices, volumes, interval), nil
}

// convertIntervalToBybit converts standard interval format to Bybit format.
// Standard format: "1m", "5m", "15m", "1h", "4h", "1d", etc.
// Bybit format: "1", "5", "15", "60", "240", "D", etc.
func convertIntervalToBybit(interval string) (string, error) {
	if len(interval) < 2 {
		return "", fmt.Errorf("invalid interval format: %s", interval)
	}

	unit := interval[len(interval)-1]
	numberPart := interval[:len(interval)-1]

	switch unit {
	case 'm':
		if _, err := intervalNumber(numberPart); err != nil {
			return "", fmt.Errorf("invalid interval number: %s", interval)
		}
		return numberPart, nil
	case 'h':
		n, err := intervalNumber(numberPart)
		if err != nil {
			return "", fmt.Errorf("invalid interval number: %s", interval)
		}
		return fmt.Sprintf("%d", n*60), nil
	case 'd':
		return "D", nil
	case 'w':
		return "W", nil
	default:
		return "", fmt.Errorf("unsupported interval unit: %c", unit)
	}
}
