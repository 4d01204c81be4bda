package domain

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisReport the complete assessment produced by one analysis call.
// A report is always syntactically complete, a failed analysis produces
// a degraded report filled with neutral defaults instead of an error.
type AnalysisReport struct {
	ID           string                 `json:"id"`
	Asset        Asset                  `json:"asset"`
	GeneratedAt  time.Time              `json:"generated_at"`
	CurrentPrice float64                `json:"current_price"`
	Condition    MarketCondition        `json:"condition"`
	Signals      TechnicalSignals       `json:"signals"`
	Sentiment    SentimentSummary       `json:"sentiment"`
	Predictions  PredictionSet          `json:"predictions"`
	Risk         RiskAssessment         `json:"risk"`
	Strategy     StrategyRecommendation `json:"strategy"`
	// Degraded true when the report was resolved to defaults after a failure.
	Degraded bool `json:"degraded"`
}

// ReportRecord pairs a stored report with its log index for streaming.
type ReportRecord struct {
	Index  uint64         `json:"index"`
	Report AnalysisReport `json:"report"`
}

// NewReportID returns a unique report identifier.
func NewReportID() string {
	return uuid.NewString()
}
