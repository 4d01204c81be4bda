package marketdata

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	hyperliquid "github.com/sonirico/go-hyperliquid"

	"github.com/wlplease/dashboard/internal/domain"
)

// Hyperliquid fetches candle snapshots from Hyperliquid.
type Hyperliquid struct {
	info *hyperliquid.Info
}

// NewHyperliquid creates a Hyperliquid history provider.
func NewHyperliquid(info *hyperliquid.Info) *Hyperliquid {
	return &Hyperliquid{info: info}
}

// HistoricalData fetches close prices and volumes for the asset.
func (p *Hyperliquid) HistoricalData(ctx context.Context, asset domain.Asset, interval string, limit int) (domain.MarketHistory, error) {
	if p.info == nil {
		return domain.MarketHistory{}, errors.New("hyperliquid info is nil")
	}
	if limit <= 0 {
		return domain.MarketHistory{}, errors.New("limit must be > 0")
	}

	dur, err := intervalDuration(interval)
	if err != nil {
		return domain.MarketHistory{}, err
	}

	endMs := time.Now().UnixMilli()
	// fetch a slightly wider window to absorb candle boundary rounding
	startMs := endMs - (int64(limit)+2)*dur.Milliseconds()

	// Hyperliquid addresses markets by base coin only
	coin := strings.ToUpper(asset.Symbol)

	candles, err := p.info.CandlesSnapshot(ctx, coin, interval, startMs, endMs)
	if err != nil {
		return domain.MarketHistory{}, errors.Wrapf(err, "failed to fetch candles from Hyperliquid for %s", coin)
	}
	if len(candles) == 0 {
		return domain.MarketHistory{}, errors.Errorf("no candles from hyperliquid for %s %s", coin, interval)
	}

	if len(candles) > limit {
		candles = candles[len(candles)-limit:]
	}

	prices := make([]float64, 0, len(candles))
	volumes := make([]float64, 0, len(candles))
	for i, c := range candles {
		closePrice, err := parsePrice(c.Close)
		if err != nil {
			return domain.MarketHistory{}, errors.Wrapf(err, "failed to parse close price at index %d", i)
		}
		volume, err := parsePrice(c.Volume)
		if err != nil {
			return domain.MarketHistory{}, errors.Wrapf(err, "failed to parse volume at index %d", i)
		}

		prices = append(prices, closePrice)
		volumes = append(volumes, volume)
	}

	return buildHistory(prices, volumes, interval), nil
}
