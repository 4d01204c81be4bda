package config

import (
	"flag"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/wlplease/dashboard/internal/domain"
)

// Defaults applied to omitted fields.
const (
	DefaultInterval = "1h"
	DefaultLookback = 200
	DefaultAddr     = ":8080"
)

// Recommendation generator selectors.
const (
	GeneratorRuleBased = "rule_based"
	GeneratorLLM       = "llm"
)

var supportedPlatforms = map[string]bool{
	"binance":     true,
	"bybit":       true,
	"hyperliquid": true,
}

// AssetConfig configures one recurring asset analysis job.
type AssetConfig struct {
	Pair             string `yaml:"pair"`
	Platform         string `yaml:"platform,omitempty"`
	Interval         string `yaml:"interval,omitempty"`
	Lookback         int    `yaml:"lookback,omitempty"`
	PhasePolicy      string `yaml:"phase_policy,omitempty"`
	PredictionPolicy string `yaml:"prediction_policy,omitempty"`
	Schedule         string `yaml:"schedule,omitempty"`

	// Asset is the parsed form of Pair, filled during validation.
	Asset domain.Asset `yaml:"-"`
}

// WebConfig configures the HTTP dashboard.
type WebConfig struct {
	Addr string `yaml:"addr,omitempty"`
	// TLSDomains enables automatic HTTPS via ACME when non-empty.
	TLSDomains   []string `yaml:"tls_domains,omitempty"`
	CertCacheDir string   `yaml:"cert_cache_dir,omitempty"`
}

// StorageConfig configures the report WAL.
type StorageConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

// FeedsConfig configures the optional sentiment and news source.
type FeedsConfig struct {
	SentimentURL string `yaml:"sentiment_url,omitempty"`
}

// ModelConfig configures the trend strength estimator.
type ModelConfig struct {
	// Endpoint of a remote inference service. Empty selects the local estimator.
	Endpoint string `yaml:"endpoint,omitempty"`
}

// StrategyConfig selects how recommendations are produced.
type StrategyConfig struct {
	Generator string `yaml:"generator,omitempty"`
	LLMAPIURL string `yaml:"llm_api_url,omitempty"`
	LLMModel  string `yaml:"llm_model,omitempty"`
}

// Config is the full engine configuration.
type Config struct {
	Web      WebConfig      `yaml:"web,omitempty"`
	Storage  StorageConfig  `yaml:"storage,omitempty"`
	Feeds    FeedsConfig    `yaml:"feeds,omitempty"`
	Model    ModelConfig    `yaml:"model,omitempty"`
	Strategy StrategyConfig `yaml:"strategy,omitempty"`
	Assets   []AssetConfig  `yaml:"assets"`
}

// Get loads configuration from the yaml file named by -config, or builds a
// single-asset configuration from the remaining CLI flags when no file is given.
func Get() (Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	pair := flag.String("pair", "BTC_USDT", "asset to analyze, example: BTC_USDT")
	platform := flag.String("platform", "binance", "market data platform: binance, bybit or hyperliquid")
	interval := flag.String("interval", DefaultInterval, "candle interval, example: 1h")
	lookback := flag.Int("lookback", DefaultLookback, "number of candles to fetch")
	schedule := flag.String("schedule", "", "analysis cadence in cron or @every form")
	addr := flag.String("addr", DefaultAddr, "web listen address")
	flag.Parse()

	if *configPath != "" {
		return FromFile(*configPath)
	}

	cfg := Config{
		Web: WebConfig{Addr: *addr},
		Assets: []AssetConfig{{
			Pair:     *pair,
			Platform: *platform,
			Interval: *interval,
			Lookback: *lookback,
			Schedule: *schedule,
		}},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromFile loads and validates a yaml configuration file.
func FromFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration and fills defaults and parsed fields.
func (c *Config) Validate() error {
	if len(c.Assets) == 0 {
		return errors.New("at least one asset must be configured")
	}

	if c.Web.Addr == "" {
		c.Web.Addr = DefaultAddr
	}

	if c.Strategy.Generator == "" {
		c.Strategy.Generator = GeneratorRuleBased
	}
	switch c.Strategy.Generator {
	case GeneratorRuleBased:
	case GeneratorLLM:
		if c.Strategy.LLMModel == "" {
			return errors.New("strategy.llm_model is required for the llm generator")
		}
	default:
		return errors.Errorf("unsupported strategy generator %q", c.Strategy.Generator)
	}

	for i := range c.Assets {
		a := &c.Assets[i]

		asset, err := domain.AssetFromString(a.Pair)
		if err != nil {
			return errors.Wrapf(err, "assets[%d]", i)
		}
		a.Asset = asset

		if a.Platform == "" {
			a.Platform = "binance"
		}
		if !supportedPlatforms[a.Platform] {
			return errors.Errorf("assets[%d]: unsupported platform %q", i, a.Platform)
		}

		if a.Interval == "" {
			a.Interval = DefaultInterval
		}
		if a.Lookback == 0 {
			a.Lookback = DefaultLookback
		}
		if a.Lookback < domain.MinHistoryPoints {
			return errors.Errorf("assets[%d]: lookback %d is below the %d-candle analysis floor", i, a.Lookback, domain.MinHistoryPoints)
		}
	}

	return nil
}
