package internal

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wlplease/dashboard/internal/domain"
)

type stubAnalyzer struct {
	mu    sync.Mutex
	calls int
}

func (s *stubAnalyzer) Analyze(_ context.Context, asset domain.Asset) domain.AnalysisReport {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	return domain.AnalysisReport{
		ID:           domain.NewReportID(),
		Asset:        asset,
		GeneratedAt:  time.Now().UTC(),
		CurrentPrice: 45000,
		Strategy:     domain.HoldRecommendation("test"),
	}
}

func (s *stubAnalyzer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type memStore struct {
	mu      sync.Mutex
	reports []domain.AnalysisReport
	err     error
}

func (m *memStore) Save(report domain.AnalysisReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.reports = append(m.reports, report)
	return nil
}

func (m *memStore) saved() []domain.AnalysisReport {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.AnalysisReport(nil), m.reports...)
}

func TestRunnerRunOnce(t *testing.T) {
	btc := domain.Asset{Symbol: "BTC", Quote: "USDT"}

	t.Run("analyzes and persists", func(t *testing.T) {
		store := &memStore{}
		runner := NewAnalysisRunner(store, zap.NewNop())
		require.NoError(t, runner.Register(btc, &stubAnalyzer{}, ""))

		report, err := runner.RunOnce(context.Background(), btc)
		require.NoError(t, err)
		assert.Equal(t, btc, report.Asset)

		saved := store.saved()
		require.Len(t, saved, 1)
		assert.Equal(t, report.ID, saved[0].ID)
	})

	t.Run("unknown asset", func(t *testing.T) {
		store := &memStore{}
		runner := NewAnalysisRunner(store, zap.NewNop())
		require.NoError(t, runner.Register(btc, &stubAnalyzer{}, ""))

		_, err := runner.RunOnce(context.Background(), domain.Asset{Symbol: "DOGE", Quote: "USDT"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Empty(t, store.saved())
	})

	t.Run("store failure still returns the report", func(t *testing.T) {
		store := &memStore{err: errors.New("disk full")}
		runner := NewAnalysisRunner(store, zap.NewNop())
		require.NoError(t, runner.Register(btc, &stubAnalyzer{}, ""))

		report, err := runner.RunOnce(context.Background(), btc)
		require.NoError(t, err)
		assert.Equal(t, btc, report.Asset)
	})
}

func TestRunnerRunAllNow(t *testing.T) {
	btc := domain.Asset{Symbol: "BTC", Quote: "USDT"}
	eth := domain.Asset{Symbol: "ETH", Quote: "USDT"}

	store := &memStore{}
	runner := NewAnalysisRunner(store, zap.NewNop())
	require.NoError(t, runner.Register(btc, &stubAnalyzer{}, ""))
	require.NoError(t, runner.Register(eth, &stubAnalyzer{}, ""))

	runner.RunAllNow(context.Background())

	saved := store.saved()
	require.Len(t, saved, 2)
	assert.Equal(t, btc, saved[0].Asset)
	assert.Equal(t, eth, saved[1].Asset)
}

func TestRunnerRegisterRejectsBadSchedule(t *testing.T) {
	runner := NewAnalysisRunner(&memStore{}, zap.NewNop())

	err := runner.Register(domain.Asset{Symbol: "BTC", Quote: "USDT"}, &stubAnalyzer{}, "every full moon")
	assert.Error(t, err)
}

func TestRunnerScheduledTicks(t *testing.T) {
	btc := domain.Asset{Symbol: "BTC", Quote: "USDT"}
	store := &memStore{}
	analyzer := &stubAnalyzer{}

	runner := NewAnalysisRunner(store, zap.NewNop())
	require.NoError(t, runner.Register(btc, analyzer, "@every 50ms"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner.Start(ctx)
	defer runner.Stop()

	assert.Eventually(t, func() bool {
		return analyzer.callCount() > 0 && len(store.saved()) > 0
	}, 2*time.Second, 10*time.Millisecond)
}
