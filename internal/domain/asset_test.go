package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetFromString(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  Asset
		shouldErr bool
	}{
		{name: "plain pair", input: "BTC_USDT", expected: Asset{Symbol: "BTC", Quote: "USDT"}},
		{name: "lowercase is normalized", input: "eth_usdt", expected: Asset{Symbol: "ETH", Quote: "USDT"}},
		{name: "surrounding spaces are trimmed", input: " sol_usdc ", expected: Asset{Symbol: "SOL", Quote: "USDC"}},
		{name: "missing separator", input: "BTCUSDT", shouldErr: true},
		{name: "missing quote", input: "BTC_", shouldErr: true},
		{name: "missing base", input: "_USDT", shouldErr: true},
		{name: "empty", input: "", shouldErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset, err := AssetFromString(tt.input)
			if tt.shouldErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, asset)
		})
	}
}

func TestAssetRepresentations(t *testing.T) {
	asset := Asset{Symbol: "BTC", Quote: "USDT"}

	assert.Equal(t, "BTC_USDT", asset.String())
	assert.Equal(t, "BTCUSDT", asset.Ticker())
}
