package marketdata

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wlplease/dashboard/internal/domain"
)

// parsePrice converts an exchange string value through decimal to a float.
func parsePrice(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

// buildHistory assembles a MarketHistory from chronological series.
func buildHistory(prices, volumes []float64, interval string) domain.MarketHistory {
	history := domain.MarketHistory{
		Prices:  prices,
		Volumes: volumes,
	}

	if len(prices) == 0 {
		return history
	}

	history.CurrentPrice = prices[len(prices)-1]
	history.PriceChange24h = change24h(prices, interval)

	return history
}

// change24h computes the percent move over roughly the last day of candles.
func change24h(prices []float64, interval string) float64 {
	if len(prices) < 2 {
		return 0
	}

	candlesBack := 1
	if dur, err := intervalDuration(interval); err == nil && dur > 0 {
		candlesBack = int(24 * time.Hour / dur)
		if candlesBack < 1 {
			candlesBack = 1
		}
	}

	baseIdx := len(prices) - 1 - candlesBack
	if baseIdx < 0 {
		baseIdx = 0
	}

	base := prices[baseIdx]
	if base <= 0 {
		return 0
	}

	return (prices[len(prices)-1] - base) / base * 100
}

// intervalDuration parses intervals like "1m", "4h", "1d" into a duration.
func intervalDuration(interval string) (time.Duration, error) {
	if len(interval) < 2 {
		return 0, fmt.Errorf("invalid interval format: %s", interval)
	}

	unit := interval[len(interval)-1]
	n, err := intervalNumber(interval[:len(interval)-1])
	if err != nil {
		return 0, fmt.Errorf("invalid interval number: %s", interval)
	}

	switch unit {
	case 'm':
		return time.Duration(n) * time.Minute, nil
	case 'h':
		return time.Duration(n) * time.Hour, nil
	case 'd':
		return time.Duration(n) * 24 * time.Hour, nil
	case 'w':
		return time.Duration(n) * 7 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unsupported interval unit: %c", unit)
	}
}

func intervalNumber(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty number")
	}

	var n int64
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("not a number: %s", s)
		}
		n = n*10 + int64(r-'0')
	}

	return n, nil
}
