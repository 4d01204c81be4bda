// Package strategy turns a finished market assessment into an actionable
// recommendation. Two generators are provided: a deterministic rule-based one
// and an LLM-backed one that formats the assessment into a prompt.
package strategy

import (
	"context"

	"github.com/wlplease/dashboard/internal/domain"
)

// Inputs is the slice of the assessment a generator reasons over.
type Inputs struct {
	Asset       domain.Asset
	Price       float64
	Condition   domain.MarketCondition
	Signals     domain.TechnicalSignals
	Sentiment   domain.SentimentSummary
	Risk        domain.RiskAssessment
	Predictions domain.PredictionSet
}

// Generator produces a trade recommendation from an assessment.
type Generator interface {
	Recommend(ctx context.Context, inputs Inputs) (domain.StrategyRecommendation, error)
}
