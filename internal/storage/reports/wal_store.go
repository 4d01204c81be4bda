package reports

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/gowal"

	"github.com/wlplease/dashboard/internal/domain"
)

const (
	defaultReportDir       = "./wal/reports"
	reportSegmentThreshold = 100
	reportMaxSegments      = 10
	reportKeyPrefix        = "report_"
)

// WALStore persists analysis reports in a WAL for recovery and streaming.
type WALStore struct {
	wal *gowal.Wal
	mu  sync.RWMutex
}

// NewWALStore initializes a WAL-backed report store under the provided directory.
func NewWALStore(dir string) (*WALStore, error) {
	if dir == "" {
		dir = defaultReportDir
	}

	cfg := gowal.Config{
		Dir:              dir,
		Prefix:           "seg_",
		SegmentThreshold: reportSegmentThreshold,
		MaxSegments:      reportMaxSegments,
		IsInSyncDiskMode: true,
	}

	wal, err := gowal.NewWAL(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "init report WAL")
	}

	return &WALStore{wal: wal}, nil
}

// Save appends the report to the WAL. Callers must ensure the report asset is set.
func (s *WALStore) Save(report domain.AnalysisReport) error {
	if s == nil || s.wal == nil {
		return errors.New("report store is not initialized")
	}
	if report.Asset.Symbol == "" {
		return fmt.Errorf("report asset is required")
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return errors.Wrap(err, "marshal analysis report")
	}

	key := fmt.Sprintf("%s%s", reportKeyPrefix, report.Asset.String())

	s.mu.Lock()
	defer s.mu.Unlock()

	nextIndex := s.wal.CurrentIndex() + 1
	return s.wal.Write(nextIndex, key, payload)
}

// ReportsAfter returns all reports written after the provided WAL index.
func (s *WALStore) ReportsAfter(index uint64) ([]domain.ReportRecord, error) {
	if s == nil || s.wal == nil {
		return nil, errors.New("report store is not initialized")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	current := s.wal.CurrentIndex()
	if current <= index {
		return nil, nil
	}

	records := make([]domain.ReportRecord, 0, current-index)
	for idx := index + 1; idx <= current; idx++ {
		key, payload, ok := s.wal.Get(idx)
		if !ok || !strings.HasPrefix(key, reportKeyPrefix) {
			continue
		}
		var report domain.AnalysisReport
		if err := json.Unmarshal(payload, &report); err != nil {
			return nil, errors.Wrap(err, "decode analysis report")
		}
		records = append(records, domain.ReportRecord{
			Index:  idx,
			Report: report,
		})
	}

	return records, nil
}

// Latest returns the most recent report stored for the asset.
func (s *WALStore) Latest(asset domain.Asset) (domain.AnalysisReport, bool, error) {
	if s == nil || s.wal == nil {
		return domain.AnalysisReport{}, false, errors.New("report store is not initialized")
	}

	key := fmt.Sprintf("%s%s", reportKeyPrefix, asset.String())

	s.mu.RLock()
	defer s.mu.RUnlock()

	for idx := s.wal.CurrentIndex(); idx > 0; idx-- {
		storedKey, payload, ok := s.wal.Get(idx)
		if !ok {
			// older indexes rotated out with their segment
			break
		}
		if storedKey != key {
			continue
		}

		var report domain.AnalysisReport
		if err := json.Unmarshal(payload, &report); err != nil {
			return domain.AnalysisReport{}, false, errors.Wrap(err, "decode analysis report")
		}
		return report, true, nil
	}

	return domain.AnalysisReport{}, false, nil
}

// CurrentIndex returns the latest WAL index stored.
func (s *WALStore) CurrentIndex() uint64 {
	if s == nil || s.wal == nil {
		return 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.wal.CurrentIndex()
}

// Close closes the underlying WAL.
func (s *WALStore) Close() error {
	if s == nil || s.wal == nil {
		return errors.New("report store is not initialized")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.wal.Close()
}
