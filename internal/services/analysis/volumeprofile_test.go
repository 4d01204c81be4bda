package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wlplease/dashboard/internal/domain"
)

func TestVolumeProfileBuild(t *testing.T) {
	builder := NewVolumeProfileBuilder(zap.NewNop())

	t.Run("point of control at the busiest bucket", func(t *testing.T) {
		prices := []float64{98, 101, 99, 102, 121}
		volumes := []float64{10, 10, 10, 10, 5}

		profile := builder.Build(prices, volumes)

		assert.InDelta(t, 100, profile.PointOfControl, 1e-9)
		// 40 of 45 units sit in the control bucket, covering the target alone
		assert.InDelta(t, 100, profile.ValueArea.Low, 1e-9)
		assert.InDelta(t, 100, profile.ValueArea.High, 1e-9)
		assert.InDelta(t, 40.0/45.0, profile.Strength, 1e-9)
	})

	t.Run("pressures always sum to one", func(t *testing.T) {
		prices := []float64{88, 101, 99, 112, 121, 95}
		volumes := []float64{5, 10, 7, 3, 2, 4}

		profile := builder.Build(prices, volumes)

		assert.InDelta(t, 1, profile.BuyingPressure+profile.SellingPressure, 1e-9)
		assert.GreaterOrEqual(t, profile.BuyingPressure, 0.0)
		assert.LessOrEqual(t, profile.BuyingPressure, 1.0)
	})

	t.Run("expansion grows toward the heavier neighbor", func(t *testing.T) {
		// buckets: 90 -> 10, 100 -> 30, 110 -> 20
		prices := []float64{91, 99, 101, 109}
		volumes := []float64{10, 15, 15, 20}

		profile := builder.Build(prices, volumes)

		require.InDelta(t, 100, profile.PointOfControl, 1e-9)
		assert.InDelta(t, 100, profile.ValueArea.Low, 1e-9)
		assert.InDelta(t, 110, profile.ValueArea.High, 1e-9)
		assert.InDelta(t, 50.0/60.0, profile.BuyingPressure, 1e-9)
	})

	t.Run("ties expand toward lower prices", func(t *testing.T) {
		// buckets: 90 -> 10, 100 -> 20, 110 -> 10
		prices := []float64{91, 99, 101, 109}
		volumes := []float64{10, 10, 10, 10}

		profile := builder.Build(prices, volumes)

		assert.InDelta(t, 90, profile.ValueArea.Low, 1e-9)
		assert.InDelta(t, 100, profile.ValueArea.High, 1e-9)
	})

	t.Run("empty input yields the neutral profile", func(t *testing.T) {
		profile := builder.Build(nil, nil)

		assert.Equal(t, domain.NeutralVolumeProfile(0), profile)
	})

	t.Run("zero volume yields the neutral profile", func(t *testing.T) {
		prices := []float64{100, 101, 102}
		profile := builder.Build(prices, []float64{0, 0, 0})

		assert.Equal(t, domain.NeutralVolumeProfile(102), profile)
		assert.InDelta(t, 0.5, profile.BuyingPressure, 1e-9)
	})
}
