package analyzer

import (
	"time"

	"github.com/wlplease/dashboard/internal/domain"
)

// Reference prices used when no market data is available at all, so the
// default report still carries plausible levels for well-known assets.
var defaultPrices = map[string]float64{
	"BTC": 45000,
	"ETH": 2500,
	"SOL": 100,
}

const defaultPriceFloor = 1.0

func defaultPriceFor(asset domain.Asset) float64 {
	if price, ok := defaultPrices[asset.Symbol]; ok {
		return price
	}
	return defaultPriceFloor
}

// defaultReport is the resolve step for failed analyses: every section is
// populated with its neutral value and the report is flagged as degraded.
func (a *Analyzer) defaultReport(asset domain.Asset) domain.AnalysisReport {
	price := defaultPriceFor(asset)

	return domain.AnalysisReport{
		ID:           domain.NewReportID(),
		Asset:        asset,
		GeneratedAt:  time.Now().UTC(),
		CurrentPrice: price,
		Condition:    a.classifier.Fallback(asset, price),
		Signals:      domain.NeutralSignals(),
		Sentiment:    domain.NeutralSentimentSummary(),
		Predictions:  domain.NeutralPredictions(price),
		Risk:         domain.NeutralRisk(),
		Strategy:     domain.HoldRecommendation("analysis degraded, holding until fresh market data arrives"),
		Degraded:     true,
	}
}
