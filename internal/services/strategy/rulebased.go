package strategy

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wlplease/dashboard/internal/domain"
)

const (
	overboughtRSI    = 70.0
	oversoldRSI      = 30.0
	elevatedRisk     = 70.0
	strongPhase      = 0.7
	stopBelowSupport = 0.99
	stopAboveResist  = 1.01
)

// RuleBased maps the classified condition onto entries, stops and targets
// derived from the key levels. It is deterministic and never fails.
type RuleBased struct {
	logger *zap.Logger
}

// NewRuleBased creates the deterministic generator.
func NewRuleBased(logger *zap.Logger) *RuleBased {
	return &RuleBased{logger: logger}
}

// Recommend builds a recommendation from the assessment.
func (g *RuleBased) Recommend(_ context.Context, in Inputs) (domain.StrategyRecommendation, error) {
	if in.Price <= 0 {
		return domain.HoldRecommendation("no valid price available"), nil
	}

	levels := in.Condition.KeyLevels

	switch {
	case in.Condition.Phase.Bullish():
		return g.bullish(in, levels), nil
	case in.Condition.Phase.Bearish():
		return g.bearish(in, levels), nil
	default:
		reason := fmt.Sprintf("%s market, wait for a close beyond %.2f or %.2f before acting",
			in.Condition.Phase, levels.Resistance, levels.Support)
		return domain.HoldRecommendation(reason), nil
	}
}

func (g *RuleBased) bullish(in Inputs, levels domain.KeyLevels) domain.StrategyRecommendation {
	action := domain.ActionBuy
	entries := []float64{levels.Pivot, levels.Support}

	// stretched momentum or elevated risk means staged entries on pullbacks
	// instead of chasing.
	if in.Signals.Momentum.RSI >= overboughtRSI || in.Risk.Overall >= elevatedRisk {
		action = domain.ActionAccumulate
		entries = []float64{levels.Support, levels.StrongSupport}
	}

	return domain.StrategyRecommendation{
		Action:    action,
		Entries:   entries,
		StopLoss:  levels.StrongSupport * stopBelowSupport,
		Targets:   []float64{levels.Resistance, levels.StrongResistance},
		Timeframe: g.timeframe(in.Condition.Strength),
		Rationale: g.rationale("upside setup", in),
	}
}

func (g *RuleBased) bearish(in Inputs, levels domain.KeyLevels) domain.StrategyRecommendation {
	action := domain.ActionSell
	entries := []float64{levels.Pivot, levels.Resistance}

	// deeply oversold markets tend to bounce, so trim into strength rather
	// than exiting everything at the lows.
	if in.Signals.Momentum.RSI <= oversoldRSI {
		action = domain.ActionReduce
	}

	return domain.StrategyRecommendation{
		Action:    action,
		Entries:   entries,
		StopLoss:  levels.StrongResistance * stopAboveResist,
		Targets:   []float64{levels.Support, levels.StrongSupport},
		Timeframe: g.timeframe(in.Condition.Strength),
		Rationale: g.rationale("downside protection", in),
	}
}

func (g *RuleBased) timeframe(strength float64) string {
	if strength >= strongPhase {
		return domain.HorizonLong
	}
	return domain.HorizonMid
}

func (g *RuleBased) rationale(lead string, in Inputs) string {
	return fmt.Sprintf("%s: %s phase (strength %.2f, confidence %.0f), RSI %.1f, sentiment %s, overall risk %.0f",
		lead,
		in.Condition.Phase,
		in.Condition.Strength,
		in.Condition.Confidence,
		in.Signals.Momentum.RSI,
		in.Sentiment.Label,
		in.Risk.Overall,
	)
}
