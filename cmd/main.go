// Command dashboard runs the market assessment engine. It analyzes the
// configured assets on a schedule, persists every report to a write-ahead
// log and serves the results over HTTP with a live SSE stream.
//
// Usage:
//
//	dashboard --config config.yaml
//	dashboard --setup
//	dashboard (uses CLI arguments)
//
// Environment variables:
//
//	For Binance: BINANCE_API_KEY, BINANCE_API_SECRET (optional, candles are public)
//	For Bybit: BYBIT_API_KEY, BYBIT_API_SECRET (optional, candles are public)
//	For Hyperliquid: HYPERLIQUID_PRIVATE_KEY (required), HYPERLIQUID_API_URL (optional)
//	For a remote trend model: TREND_MODEL_API_KEY
//	For the llm strategy generator: LLM_API_KEY
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wlplease/dashboard/config"
	"github.com/wlplease/dashboard/internal"
	"github.com/wlplease/dashboard/internal/setup"
	"github.com/wlplease/dashboard/internal/storage/reports"
	"github.com/wlplease/dashboard/internal/web"
)

func main() {
	runSetup := flag.Bool("setup", false, "launch the interactive configuration wizard")

	cfg, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	if *runSetup {
		if err := setup.RunTUI(); err != nil {
			log.Fatal(err)
		}
		cfg, err = config.FromFile(setup.GeneratedConfigFile)
		if err != nil {
			log.Fatal(err)
		}
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := reports.NewWALStore(cfg.Storage.Dir)
	if err != nil {
		logger.Fatal("failed to open report store", zap.Error(err))
	}
	defer store.Close()

	runner, err := internal.BuildRunner(cfg, store, logger)
	if err != nil {
		logger.Fatal("failed to assemble analyzers", zap.Error(err))
	}

	server := web.NewServer(cfg.Web.Addr, store, runner, logger)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if len(cfg.Web.TLSDomains) > 0 {
			return server.StartWithAutoTLS(gctx, cfg.Web.TLSDomains, cfg.Web.CertCacheDir)
		}
		return server.Start(gctx)
	})

	g.Go(func() error {
		runner.RunAllNow(gctx)
		runner.Start(gctx)
		<-gctx.Done()
		runner.Stop()
		return nil
	})

	logger.Info("dashboard started",
		zap.String("addr", cfg.Web.Addr),
		zap.Int("assets", len(cfg.Assets)))

	if err := g.Wait(); err != nil {
		logger.Error("shutdown with error", zap.Error(err))
	}
}
