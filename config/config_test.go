package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wlplease/dashboard/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFromFile(t *testing.T) {
	path := writeConfig(t, `
web:
  addr: ":9090"
  tls_domains: ["dashboard.example.com"]
storage:
  dir: "/var/lib/dashboard/wal"
feeds:
  sentiment_url: "https://feeds.example.com"
model:
  endpoint: "https://model.example.com/infer"
strategy:
  generator: llm
  llm_api_url: "https://api.example.com/v1/chat/completions"
  llm_model: "gpt-4o-mini"
assets:
  - pair: BTC_USDT
    platform: binance
    interval: 4h
    lookback: 300
    phase_policy: wyckoff
    prediction_policy: fibonacci
    schedule: "@every 30m"
  - pair: eth_usdt
    platform: bybit
`)

	cfg, err := FromFile(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Web.Addr)
	assert.Equal(t, []string{"dashboard.example.com"}, cfg.Web.TLSDomains)
	assert.Equal(t, "/var/lib/dashboard/wal", cfg.Storage.Dir)
	assert.Equal(t, "https://feeds.example.com", cfg.Feeds.SentimentURL)
	assert.Equal(t, "https://model.example.com/infer", cfg.Model.Endpoint)
	assert.Equal(t, GeneratorLLM, cfg.Strategy.Generator)

	require.Len(t, cfg.Assets, 2)

	btc := cfg.Assets[0]
	assert.Equal(t, domain.Asset{Symbol: "BTC", Quote: "USDT"}, btc.Asset)
	assert.Equal(t, "4h", btc.Interval)
	assert.Equal(t, 300, btc.Lookback)
	assert.Equal(t, "wyckoff", btc.PhasePolicy)
	assert.Equal(t, "@every 30m", btc.Schedule)

	eth := cfg.Assets[1]
	assert.Equal(t, domain.Asset{Symbol: "ETH", Quote: "USDT"}, eth.Asset)
	assert.Equal(t, DefaultInterval, eth.Interval)
	assert.Equal(t, DefaultLookback, eth.Lookback)
	assert.Empty(t, eth.Schedule)
}

func TestFromFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := FromFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := FromFile(writeConfig(t, "assets: [pair: }{"))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{Assets: []AssetConfig{{Pair: "BTC_USDT"}}}
	}

	tests := []struct {
		name     string
		mutate   func(*Config)
		expected string
	}{
		{
			name:     "no assets",
			mutate:   func(c *Config) { c.Assets = nil },
			expected: "at least one asset",
		},
		{
			name:     "bad pair",
			mutate:   func(c *Config) { c.Assets[0].Pair = "BTCUSDT" },
			expected: "assets[0]",
		},
		{
			name:     "unsupported platform",
			mutate:   func(c *Config) { c.Assets[0].Platform = "kraken" },
			expected: "unsupported platform",
		},
		{
			name:     "lookback too small",
			mutate:   func(c *Config) { c.Assets[0].Lookback = 5 },
			expected: "analysis floor",
		},
		{
			name:     "llm generator without model",
			mutate:   func(c *Config) { c.Strategy.Generator = GeneratorLLM },
			expected: "llm_model is required",
		},
		{
			name:     "unknown generator",
			mutate:   func(c *Config) { c.Strategy.Generator = "coin_flip" },
			expected: "unsupported strategy generator",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expected)
		})
	}
}

func TestValidateFillsDefaults(t *testing.T) {
	cfg := Config{Assets: []AssetConfig{{Pair: "sol_usdt"}}}

	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultAddr, cfg.Web.Addr)
	assert.Equal(t, GeneratorRuleBased, cfg.Strategy.Generator)
	assert.Equal(t, "binance", cfg.Assets[0].Platform)
	assert.Equal(t, DefaultInterval, cfg.Assets[0].Interval)
	assert.Equal(t, DefaultLookback, cfg.Assets[0].Lookback)
	assert.Equal(t, domain.Asset{Symbol: "SOL", Quote: "USDT"}, cfg.Assets[0].Asset)
}
