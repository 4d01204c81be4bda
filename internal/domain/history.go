package domain

import (
	"math"

	"github.com/pkg/errors"
)

// MinHistoryPoints is the floor below which no meaningful analysis is possible.
const MinHistoryPoints = 20

// MarketHistory raw price and volume history for one asset.
// Prices are chronological, the last element is the most recent close.
type MarketHistory struct {
	Prices []float64 `json:"prices"`
	// Volumes is index-aligned with Prices. Shorter or missing volume data
	// degrades volume readings to neutral defaults. A present but all-zero
	// series fails validation, it means the market is not actually trading.
	Volumes []float64 `json:"volumes"`
	// CurrentPrice last traded price, falls back to the final close when unset.
	CurrentPrice float64 `json:"current_price"`
	// MarketCap zero when the source does not report it.
	MarketCap float64 `json:"market_cap,omitempty"`
	// PriceChange24h percent change over the last 24 hours.
	PriceChange24h float64 `json:"price_change_24h"`
}

// Validate checks the history is long and clean enough to analyze.
func (h *MarketHistory) Validate() error {
	if h == nil {
		return errors.Wrap(ErrInvalidInput, "nil history")
	}
	if len(h.Prices) < MinHistoryPoints {
		return errors.Wrapf(ErrInvalidInput, "need at least %d prices, got %d", MinHistoryPoints, len(h.Prices))
	}
	for i, p := range h.Prices {
		if math.IsNaN(p) || math.IsInf(p, 0) || p <= 0 {
			return errors.Wrapf(ErrInvalidInput, "price at index %d is not positive finite", i)
		}
	}
	if len(h.Volumes) > 0 && !hasTradedVolume(h.Volumes) {
		return errors.Wrap(ErrInvalidInput, "volume series reports no trading activity")
	}

	return nil
}

func hasTradedVolume(volumes []float64) bool {
	for _, v := range volumes {
		if v > 0 {
			return true
		}
	}
	return false
}

// LastPrice returns the current price, falling back to the final close.
func (h *MarketHistory) LastPrice() float64 {
	if h.CurrentPrice > 0 {
		return h.CurrentPrice
	}
	if len(h.Prices) == 0 {
		return 0
	}

	return h.Prices[len(h.Prices)-1]
}
