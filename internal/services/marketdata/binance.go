package marketdata

import (
	"context"

	"github.com/adshao/go-binance/v2"
	"github.com/pkg/errors"

	"github.com/wlplease/dashboard/internal/domain"
)

// Binance fetches spot klines from Binance.
type Binance struct {
	client *binance.Client
}

// NewBinance creates a Binance history provider.
func NewBinance(client *binance.Client) *Binance {
	return &Binance{client: client}
}

// HistoricalData fetches close prices and volumes for the asset.
func (p *Binance) HistoricalData(ctx context.Context, asset domain.Asset, interval string, limit int) (domain.MarketHistory, error) {
	klines, err := p.client.NewKlinesService().
		Symbol(asset.Ticker()).
		Interval(interval).
		Limit(limit).
		Do(ctx)
	if err != nil {
		return domain.MarketHistory{}, errors.Wrapf(err, "failed to fetch klines from Binance for %s", asset.String())
	}

	prices := make([]float64, 0, len(klines))
	volumes := make([]float64, 0, len(klines))
	for i, k := range klines {
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
