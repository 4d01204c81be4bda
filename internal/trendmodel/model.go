// Package trendmodel provides the trend-strength estimation handle consumed
// by the analysis pipeline. The estimate is a scalar treated as roughly
// [-1,1]: positive for uptrends, negative for downtrends. Every confidence
// derived from it is clamped by the consumer, so the engine never depends
// on the model respecting that range.
package trendmodel

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/wlplease/dashboard/internal/indicators"
)

// Features the four-element vector consumed by the model.
type Features struct {
	// ADX directional index normalized to [0,1].
	ADX float64 `json:"adx"`
	// TrendIntensity relative divergence of the 20 and 50 period averages.
	TrendIntensity float64 `json:"trend_intensity"`
	// PriceROC 10-period fractional rate of change.
	PriceROC float64 `json:"price_roc"`
	// VolumeTrend recent-to-baseline volume ratio minus one.
	VolumeTrend float64 `json:"volume_trend"`
}

// Vector returns the features in wire order.
func (f Features) Vector() [4]float64 {
	return [4]float64{f.ADX, f.TrendIntensity, f.PriceROC, f.VolumeTrend}
}

// FeaturesFrom derives the feature vector from raw series.
func FeaturesFrom(prices, volumes []float64) Features {
	sma20 := indicators.SMA(prices, 20)
	sma50 := indicators.SMA(prices, 50)

	intensity := 0.0
	if sma50 != 0 {
		intensity = (sma20 - sma50) / sma50
	}

	return Features{
		ADX:            indicators.ADX(prices, indicators.DefaultADXPeriod) / 100,
		TrendIntensity: intensity,
		PriceROC:       indicators.ROC(prices, indicators.DefaultROCLookback),
		VolumeTrend:    indicators.VolumeRatio(volumes) - 1,
	}
}

// Estimator maps a feature vector to a scalar trend-strength estimate.
type Estimator interface {
	Estimate(ctx context.Context, features Features) (float64, error)
}

// Handle is the process-owned, lazily initialized estimator handle. It is
// created once at wiring time, initialized on first use and safe for
// concurrent reuse for the process lifetime.
type Handle struct {
	build func() (Estimator, error)

	once      sync.Once
	estimator Estimator
	err       error
}

// NewHandle creates a handle around a deferred estimator constructor.
func NewHandle(build func() (Estimator, error)) *Handle {
	return &Handle{build: build}
}

// Estimate initializes the underlying estimator on first call and delegates
// to it afterwards.
func (h *Handle) Estimate(ctx context.Context, features Features) (float64, error) {
	h.once.Do(func() {
		h.estimator, h.err = h.build()
	})
	if h.err != nil {
		return 0, errors.Wrap(h.err, "trend model initialization")
	}

	return h.estimator.Estimate(ctx, features)
}
