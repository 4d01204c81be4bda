package analysis

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/wlplease/dashboard/internal/domain"
)

const (
	// priceBucket price levels are grouped to the nearest multiple of this.
	priceBucket = 10.0
	// valueAreaTarget fraction of total volume the value area must cover.
	valueAreaTarget = 0.68
)

// VolumeProfileBuilder bins traded volume by price level to locate the point
// of control and the value area around it.
type VolumeProfileBuilder struct {
	logger *zap.Logger
}

// NewVolumeProfileBuilder creates a new VolumeProfileBuilder instance.
func NewVolumeProfileBuilder(logger *zap.Logger) *VolumeProfileBuilder {
	return &VolumeProfileBuilder{logger: logger}
}

// Build buckets each price to the nearest multiple of ten, accumulates the
// aligned volume per bucket and expands a band outward from the highest
// bucket until it covers 68% of total volume. Ties during expansion grow
// toward lower prices. Degenerate input yields the fixed neutral profile.
func (b *VolumeProfileBuilder) Build(prices, volumes []float64) domain.VolumeProfile {
	n := len(prices)
	if len(volumes) < n {
		n = len(volumes)
	}
	if n == 0 {
		b.logger.Warn("no data for volume profile")
		return domain.NeutralVolumeProfile(lastOf(prices))
	}

	accumulated := make(map[float64]float64)
	total := 0.0
	for i := 0; i < n; i++ {
		if volumes[i] <= 0 {
			continue
		}
		bucket := math.Round(prices[i]/priceBucket) * priceBucket
		accumulated[bucket] += volumes[i]
		total += volumes[i]
	}
	if total == 0 {
		b.logger.Warn("volume profile has no traded volume")
		return domain.NeutralVolumeProfile(lastOf(prices))
	}

	buckets := make([]float64, 0, len(accumulated))
	for bucket := range accumulated {
		buckets = append(buckets, bucket)
	}
	sort.Float64s(buckets)

	poc := 0
	for i, bucket := range buckets {
		if accumulated[bucket] > accumulated[buckets[poc]] {
			poc = i
		}
	}

	lo, hi := poc, poc
	covered := accumulated[buckets[poc]]
	for covered < total*valueAreaTarget && (lo > 0 || hi < len(buckets)-1) {
		left, right := -1.0, -1.0
		if lo > 0 {
			left = accumulated[buckets[lo-1]]
		}
		if hi < len(buckets)-1 {
			right = accumulated[buckets[hi+1]]
		}
		if right > left {
			hi++
			covered += right
		} else {
			lo--
			covered += left
		}
	}

	buying := covered / total
	if buying > 1 {
		buying = 1
	}

	return domain.VolumeProfile{
		PointOfControl:  buckets[poc],
		ValueArea:       domain.PriceBand{Low: buckets[lo], High: buckets[hi]},
		BuyingPressure:  buying,
		SellingPressure: 1 - buying,
		Strength:        accumulated[buckets[poc]] / total,
	}
}

func lastOf(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	return series[len(series)-1]
}
