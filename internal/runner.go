package internal

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/wlplease/dashboard/internal/domain"
)

const defaultSchedule = "@every 15m"

type assetAnalyzer interface {
	Analyze(ctx context.Context, asset domain.Asset) domain.AnalysisReport
}

type reportWriter interface {
	Save(report domain.AnalysisReport) error
}

// AnalysisRunner runs scheduled analysis jobs and persists their reports.
type AnalysisRunner struct {
	cron   *cron.Cron
	store  reportWriter
	logger *zap.Logger
	ctx    context.Context

	mu        sync.RWMutex
	assets    []domain.Asset
	analyzers map[string]assetAnalyzer
}

// NewAnalysisRunner creates a runner with no registered assets.
func NewAnalysisRunner(store reportWriter, logger *zap.Logger) *AnalysisRunner {
	return &AnalysisRunner{
		cron:      cron.New(),
		store:     store,
		logger:    logger,
		ctx:       context.Background(),
		analyzers: make(map[string]assetAnalyzer),
	}
}

// Register adds a recurring analysis job for the asset. An empty schedule
// falls back to the default cadence. Register before calling Start.
func (r *AnalysisRunner) Register(asset domain.Asset, analyzer assetAnalyzer, schedule string) error {
	if schedule == "" {
		schedule = defaultSchedule
	}

	r.mu.Lock()
	if _, exists := r.analyzers[asset.String()]; !exists {
		r.assets = append(r.assets, asset)
	}
	r.analyzers[asset.String()] = analyzer
	r.mu.Unlock()

	if _, err := r.cron.AddFunc(schedule, func() { r.runScheduled(asset) }); err != nil {
		return errors.Wrapf(err, "register schedule %q for %s", schedule, asset)
	}
	return nil
}

// Start launches the scheduler. Jobs run until Stop is called.
func (r *AnalysisRunner) Start(ctx context.Context) {
	if ctx != nil {
		r.ctx = ctx
	}
	r.cron.Start()
	r.logger.Info("analysis scheduler started", zap.Int("assets", len(r.assets)))
}

// Stop halts the scheduler and waits for running jobs to finish.
func (r *AnalysisRunner) Stop() {
	<-r.cron.Stop().Done()
	r.logger.Info("analysis scheduler stopped")
}

// RunAllNow analyzes every registered asset immediately, in registration
// order, so the dashboard has data before the first scheduled tick.
func (r *AnalysisRunner) RunAllNow(ctx context.Context) {
	r.mu.RLock()
	assets := make([]domain.Asset, len(r.assets))
	copy(assets, r.assets)
	r.mu.RUnlock()

	for _, asset := range assets {
		if ctx.Err() != nil {
			return
		}
		if _, err := r.RunOnce(ctx, asset); err != nil {
			r.logger.Warn("startup analysis", zap.String("asset", asset.String()), zap.Error(err))
		}
	}
}

// RunOnce analyzes the asset immediately and persists the report. The report
// is returned even when persisting fails.
func (r *AnalysisRunner) RunOnce(ctx context.Context, asset domain.Asset) (domain.AnalysisReport, error) {
	r.mu.RLock()
	analyzer, ok := r.analyzers[asset.String()]
	r.mu.RUnlock()
	if !ok {
		return domain.AnalysisReport{}, errors.Wrapf(domain.ErrInvalidInput, "asset %s is not configured", asset)
	}

	report := analyzer.Analyze(ctx, asset)

	if r.store != nil {
		if err := r.store.Save(report); err != nil {
			r.logger.Warn("persist report", zap.String("asset", asset.String()), zap.Error(err))
		}
	}

	return report, nil
}

func (r *AnalysisRunner) runScheduled(asset domain.Asset) {
	ctx := r.ctx
	if ctx.Err() != nil {
		return
	}

	report, err := r.RunOnce(ctx, asset)
	if err != nil {
		r.logger.Error("scheduled analysis", zap.String("asset", asset.String()), zap.Error(err))
		return
	}

	r.logger.Info("analysis complete",
		zap.String("asset", asset.String()),
		zap.String("phase", string(report.Condition.Phase)),
		zap.String("action", report.Strategy.Action),
		zap.Bool("degraded", report.Degraded))
}
