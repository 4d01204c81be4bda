package internal

import (
	"os"

	"github.com/adshao/go-binance/v2"
	bybit "github.com/hirokisan/bybit/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/wlplease/dashboard/config"
	"github.com/wlplease/dashboard/internal/clients"
	"github.com/wlplease/dashboard/internal/services/analyzer"
	"github.com/wlplease/dashboard/internal/services/marketdata"
	"github.com/wlplease/dashboard/internal/services/strategy"
	"github.com/wlplease/dashboard/internal/trendmodel"
	"github.com/wlplease/dashboard/pkg/retrier"
)

const hyperliquidDefaultAPIURL = "https://api.hyperliquid.xyz"

// BuildRunner assembles per-asset analyzers from the configuration and
// registers their schedules on a runner.
func BuildRunner(cfg config.Config, store reportWriter, logger *zap.Logger) (*AnalysisRunner, error) {
	model := buildModel(cfg.Model)

	generator, err := buildGenerator(cfg.Strategy, logger)
	if err != nil {
		return nil, err
	}

	feed := marketdata.NewFeed(cfg.Feeds.SentimentURL, logger)
	runner := NewAnalysisRunner(store, logger)

	for _, ac := range cfg.Assets {
		provider, err := historyProvider(ac.Platform)
		if err != nil {
			return nil, errors.Wrapf(err, "assets %s", ac.Asset)
		}

		a, err := analyzer.New(
			analyzer.Settings{
				Interval:         ac.Interval,
				Lookback:         ac.Lookback,
				PhasePolicy:      ac.PhasePolicy,
				PredictionPolicy: ac.PredictionPolicy,
				Retry:            retrier.DefaultPolicy(),
			},
			marketdata.NewComposite(provider, feed),
			model,
			generator,
			logger.With(zap.String("asset", ac.Asset.String())),
		)
		if err != nil {
			return nil, errors.Wrapf(err, "build analyzer for %s", ac.Asset)
		}

		if err := runner.Register(ac.Asset, a, ac.Schedule); err != nil {
			return nil, err
		}
	}

	return runner, nil
}

// historyProvider creates the platform-specific candle source. Binance and
// Bybit serve candles on public endpoints, so their keys may be empty.
func historyProvider(platform string) (marketdata.Provider, error) {
	switch platform {
	case "binance":
		client := binance.NewClient(os.Getenv("BINANCE_API_KEY"), os.Getenv("BINANCE_API_SECRET"))
		return marketdata.NewBinance(client), nil
	case "bybit":
		client := bybit.NewClient().WithAuth(os.Getenv("BYBIT_API_KEY"), os.Getenv("BYBIT_API_SECRET"))
		return marketdata.NewBybit(client), nil
	case "hyperliquid":
		key := os.Getenv("HYPERLIQUID_PRIVATE_KEY")
		if key == "" {
			return nil, errors.New("HYPERLIQUID_PRIVATE_KEY environment variable must be set")
		}
		apiURL := os.Getenv("HYPERLIQUID_API_URL")
		if apiURL == "" {
			apiURL = hyperliquidDefaultAPIURL
		}
		client, err := clients.NewHyperliquidClient(key, apiURL)
		if err != nil {
			return nil, errors.Wrap(err, "create hyperliquid client")
		}
		return marketdata.NewHyperliquid(client.Info()), nil
	default:
		return nil, errors.Errorf("unsupported platform: %s", platform)
	}
}

// buildModel wraps the estimator choice in a lazily initialized handle so a
// remote endpoint is only dialed when the first analysis needs it.
func buildModel(cfg config.ModelConfig) *trendmodel.Handle {
	return trendmodel.NewHandle(func() (trendmodel.Estimator, error) {
		if cfg.Endpoint == "" {
			return trendmodel.NewLocal(), nil
		}
		return trendmodel.NewRemote(cfg.Endpoint, os.Getenv("TREND_MODEL_API_KEY")), nil
	})
}

func buildGenerator(cfg config.StrategyConfig, logger *zap.Logger) (strategy.Generator, error) {
	switch cfg.Generator {
	case config.GeneratorLLM:
		client := clients.NewOpenAICompatibleClient(cfg.LLMAPIURL, os.Getenv("LLM_API_KEY"), cfg.LLMModel)
		return strategy.NewLLM(client, logger), nil
	case config.GeneratorRuleBased, "":
		return strategy.NewRuleBased(logger), nil
	default:
		return nil, errors.Errorf("unsupported strategy generator: %s", cfg.Generator)
	}
}
