// Package analyzer sequences data fetching, validation and the assessment
// stages into a single Analyze call. Analyze never returns an error: when a
// stage fails the caller receives a fully populated default report flagged
// as degraded.
package analyzer

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wlplease/dashboard/internal/domain"
	"github.com/wlplease/dashboard/internal/indicators"
	"github.com/wlplease/dashboard/internal/services/analysis"
	"github.com/wlplease/dashboard/internal/services/strategy"
	"github.com/wlplease/dashboard/internal/trendmodel"
	"github.com/wlplease/dashboard/pkg/retrier"
)

const (
	fetchTimeout    = 30 * time.Second
	defaultInterval = "1h"
	defaultLookback = 200
)

// DataSource is the market data surface the analyzer consumes, satisfied by
// marketdata.Composite.
type DataSource interface {
	HistoricalData(ctx context.Context, asset domain.Asset, interval string, limit int) (domain.MarketHistory, error)
	SentimentRecords(ctx context.Context, asset domain.Asset) ([]domain.SentimentRecord, error)
	News(ctx context.Context, asset domain.Asset) (domain.NewsFeed, error)
}

// TrendEstimator scores the trend features, satisfied by trendmodel.Handle.
type TrendEstimator interface {
	Estimate(ctx context.Context, features trendmodel.Features) (float64, error)
}

// Settings are the per-asset analysis knobs.
type Settings struct {
	// Interval candle interval, defaults to 1h.
	Interval string
	// Lookback number of candles to fetch, defaults to 200.
	Lookback int
	// PhasePolicy phase label set, empty selects the trend policy.
	PhasePolicy string
	// PredictionPolicy range derivation, empty selects the range policy.
	PredictionPolicy string
	// Retry backoff schedule for upstream fetches.
	Retry retrier.Policy
}

// Analyzer runs the full assessment pipeline for one asset at a time.
type Analyzer struct {
	source    DataSource
	model     TrendEstimator
	generator strategy.Generator

	profile    *analysis.VolumeProfileBuilder
	signals    *analysis.SignalBuilder
	classifier *analysis.PhaseClassifier
	scorer     *analysis.RiskScorer
	predictor  *analysis.PricePredictor

	interval string
	lookback int
	retry    retrier.Policy
	logger   *zap.Logger
}

// New creates an analyzer with the policies named in the settings.
func New(settings Settings, source DataSource, model TrendEstimator, generator strategy.Generator, logger *zap.Logger) (*Analyzer, error) {
	phasePolicy, err := analysis.PhasePolicyFor(settings.PhasePolicy)
	if err != nil {
		return nil, errors.Wrap(err, "phase policy")
	}
	predictionPolicy, err := analysis.PredictionPolicyFor(settings.PredictionPolicy)
	if err != nil {
		return nil, errors.Wrap(err, "prediction policy")
	}

	interval := settings.Interval
	if interval == "" {
		interval = defaultInterval
	}
	lookback := settings.Lookback
	if lookback <= 0 {
		lookback = defaultLookback
	}

	return &Analyzer{
		source:     source,
		model:      model,
		generator:  generator,
		profile:    analysis.NewVolumeProfileBuilder(logger),
		signals:    analysis.NewSignalBuilder(logger),
		classifier: analysis.NewPhaseClassifier(phasePolicy, logger),
		scorer:     analysis.NewRiskScorer(logger),
		predictor:  analysis.NewPricePredictor(predictionPolicy, logger),
		interval:   interval,
		lookback:   lookback,
		retry:      settings.Retry,
		logger:     logger,
	}, nil
}

// Analyze produces the complete assessment report for the asset. It never
// returns an error: failures resolve to the default report.
func (a *Analyzer) Analyze(ctx context.Context, asset domain.Asset) domain.AnalysisReport {
	report, err := a.run(ctx, asset)
	if err != nil {
		a.logger.Warn("analysis failed, resolving to the default report",
			zap.String("asset", asset.String()),
			zap.Error(err))
		return a.defaultReport(asset)
	}

	return report
}

func (a *Analyzer) run(ctx context.Context, asset domain.Asset) (domain.AnalysisReport, error) {
	history, records, news, err := a.fetch(ctx, asset)
	if err != nil {
		return domain.AnalysisReport{}, errors.Wrap(err, "fetch market data")
	}

	if err := history.Validate(); err != nil {
		return domain.AnalysisReport{}, errors.Wrap(err, "validate history")
	}

	price := history.LastPrice()
	signals := a.signals.Build(history.Prices, history.Volumes)

	features := trendmodel.FeaturesFrom(history.Prices, history.Volumes)
	trendStrength, err := a.model.Estimate(ctx, features)
	if err != nil {
		return domain.AnalysisReport{}, errors.Wrap(err, "estimate trend strength")
	}

	profile := a.profile.Build(history.Prices, history.Volumes)
	condition := a.classifier.Classify(asset, price, history.Prices, profile, trendStrength)
	sentiment := analysis.SummarizeSentiment(records, &news)

	predictions := a.predictor.Predict(analysis.PredictionInputs{
		Price:          price,
		Volatility:     signals.Volatility.Current,
		SentimentScore: sentiment.Combined,
		RecentTrend:    indicators.ROC(history.Prices, indicators.DefaultROCLookback),
		TrendStrength:  trendStrength,
		Levels:         condition.KeyLevels,
	})

	risk := a.scorer.Score(analysis.RiskInputs{
		Volatility:     signals.Volatility.Current,
		TrendStrength:  trendStrength,
		SentimentScore: sentiment.Combined,
		VolumeRatio:    signals.Volume.ChangeRatio,
		PriceChange24h: history.PriceChange24h,
	})

	recommendation, err := a.generator.Recommend(ctx, strategy.Inputs{
		Asset:       asset,
		Price:       price,
		Condition:   condition,
		Signals:     signals,
		Sentiment:   sentiment,
		Risk:        risk,
		Predictions: predictions,
	})
	if err != nil {
		return domain.AnalysisReport{}, errors.Wrap(err, "strategy recommendation")
	}

	return domain.AnalysisReport{
		ID:           domain.NewReportID(),
		Asset:        asset,
		GeneratedAt:  time.Now().UTC(),
		CurrentPrice: price,
		Condition:    condition,
		Signals:      signals,
		Sentiment:    sentiment,
		Predictions:  predictions,
		Risk:         risk,
		Strategy:     recommendation,
	}, nil
}

// fetch issues the three upstream requests concurrently. History failures
// abort the fetch; sentiment and news degrade to empty results.
func (a *Analyzer) fetch(ctx context.Context, asset domain.Asset) (domain.MarketHistory, []domain.SentimentRecord, domain.NewsFeed, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	var (
		history domain.MarketHistory
		records []domain.SentimentRecord
		news    domain.NewsFeed
	)

	g, gctx := errgroup.WithContext(fetchCtx)

	g.Go(func() error {
		var err error
		history, err = retrier.Call(gctx, a.retry, func(ctx context.Context) (domain.MarketHistory, error) {
			return a.source.HistoricalData(ctx, asset, a.interval, a.lookback)
		})
		return err
	})

	g.Go(func() error {
		recs, err := retrier.Call(gctx, a.retry, func(ctx context.Context) ([]domain.SentimentRecord, error) {
			return a.source.SentimentRecords(ctx, asset)
		})
		if err != nil {
			a.logger.Warn("sentiment fetch failed, continuing with neutral sentiment",
				zap.String("asset", asset.String()),
				zap.Error(err))
			return nil
		}
		records = recs
		return nil
	})

	g.Go(func() error {
		feed, err := retrier.Call(gctx, a.retry, func(ctx context.Context) (domain.NewsFeed, error) {
			return a.source.News(ctx, asset)
		})
		if err != nil {
			a.logger.Warn("news fetch failed, continuing without news",
				zap.String("asset", asset.String()),
				zap.Error(err))
			return nil
		}
		news = feed
		return nil
	})

	if err := g.Wait(); err != nil {
		return domain.MarketHistory{}, nil, domain.NewsFeed{}, err
	}

	return history, records, news, nil
}
