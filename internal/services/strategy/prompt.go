package strategy

import (
	"fmt"
	"strings"

	"github.com/wlplease/dashboard/internal/domain"
)

// recommendationSystemPrompt defines the global system instructions for the
// recommendation model.
const recommendationSystemPrompt = `You are a cryptocurrency market analyst. You receive a structured market assessment and produce a single position recommendation.

## OBJECTIVE
Translate the assessment into an actionable plan with explicit entries, stop and targets. You do not execute trades and you do not manage positions.

## AVAILABLE DATA FIELDS

**Market Condition:**
- Phase: classified market phase with strength (0-1) and confidence (30-95)
- Key Levels: strong support, support, pivot, resistance, strong resistance

**Technical Signals:**
- Trend direction and strength, moving average slope
- RSI, StochRSI (0-100), MACD line/signal/histogram
- Volatility (annualized, 0-100) with risk label
- Volume ratio with trend and significance labels

**Sentiment:** social and news scores (0-100) with a combined label.

**Risk:** technical, fundamental, sentiment and market factors (0-100, higher is riskier) plus warnings.

**Predictions:** expected price ranges for 24h, 7d and 30d horizons with confidence.

## DECISION OUTPUT FORMAT

Respond with ONLY valid JSON. No markdown, no code blocks, no additional text.

**Required JSON structure:**

{
  "action": "buy|sell|hold|accumulate|reduce",
  "entries": [0.0],
  "stop_loss": 0.0,
  "targets": [0.0],
  "timeframe": "24h|7d|30d",
  "rationale": "explain your reasoning"
}

**Field specifications:**

- **action** (string): Must be one of:
  - "buy": open or extend exposure at the listed entries.
  - "sell": exit exposure into the listed levels.
  - "hold": take no action.
  - "accumulate": staged partial entries on pullbacks.
  - "reduce": staged partial exits into strength.
- **entries** (array of floats): price levels to act at. Use key levels from the assessment. May be empty for "hold".
- **stop_loss** (float): invalidation price. Use 0.0 for "hold".
- **targets** (array of floats): objective prices. May be empty for "hold".
- **timeframe** (string): the horizon the plan is built for, one of "24h", "7d", "30d".
- **rationale** (string): which parts of the assessment drove the decision.

**Validation rules:**
- All prices must be positive numbers
- For "buy" and "accumulate": stop_loss below the lowest entry, targets above the highest entry
- For "sell" and "reduce": targets below the entries
- rationale must be a non-empty string

## CRITICAL REMINDERS

1. Output ONLY the JSON object - nothing else
2. Ensure JSON is valid and parseable
3. Respect the warnings in the risk section
4. "hold" is a valid decision when conditions are unclear`

// buildUserPrompt formats the assessment into a compact markdown prompt.
func buildUserPrompt(in Inputs) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Market Assessment for %s\n\n", in.Asset.String()))

	sb.WriteString("## Market Condition\n\n")
	sb.WriteString(fmt.Sprintf("**Current Price:** %.2f\n", in.Price))
	sb.WriteString(fmt.Sprintf("**Phase:** %s (strength %.2f, confidence %.0f)\n",
		in.Condition.Phase, in.Condition.Strength, in.Condition.Confidence))
	levels := in.Condition.KeyLevels
	sb.WriteString(fmt.Sprintf("**Key Levels:** strong support %.2f | support %.2f | pivot %.2f | resistance %.2f | strong resistance %.2f\n\n",
		levels.StrongSupport, levels.Support, levels.Pivot, levels.Resistance, levels.StrongResistance))

	sb.WriteString("## Technical Signals\n\n")
	sb.WriteString(fmt.Sprintf("**Trend:** %s (strength %.2f, MA slope %s)\n",
		in.Signals.Trend.Primary, in.Signals.Trend.Strength, in.Signals.Trend.Secondary))
	sb.WriteString(fmt.Sprintf("**RSI:** %.1f (%s) | **StochRSI:** %.1f (%s)\n",
		in.Signals.Momentum.RSI, in.Signals.Momentum.RSILabel,
		in.Signals.Momentum.StochRSI, in.Signals.Momentum.StochRSILabel))
	sb.WriteString(fmt.Sprintf("**MACD:** line %.4f signal %.4f histogram %.4f (%s)\n",
		in.Signals.Momentum.MACD.Line, in.Signals.Momentum.MACD.Signal,
		in.Signals.Momentum.MACD.Histogram, in.Signals.Momentum.MACD.Label))
	sb.WriteString(fmt.Sprintf("**Volatility:** %.1f (%s, risk %s)\n",
		in.Signals.Volatility.Current, in.Signals.Volatility.Trend, in.Signals.Volatility.Risk))
	sb.WriteString(fmt.Sprintf("**Volume:** ratio %.2f (%s, significance %s)\n\n",
		in.Signals.Volume.ChangeRatio, in.Signals.Volume.Trend, in.Signals.Volume.Significance))

	sb.WriteString("## Sentiment\n\n")
	sb.WriteString(fmt.Sprintf("**Combined:** %.1f (%s) | social %.1f | news %.1f from %d articles\n\n",
		in.Sentiment.Combined, in.Sentiment.Label,
		in.Sentiment.Score, in.Sentiment.NewsScore, in.Sentiment.Articles))

	sb.WriteString("## Risk\n\n")
	sb.WriteString(fmt.Sprintf("**Overall:** %.0f (technical %.0f, fundamental %.0f, sentiment %.0f, market %.0f)\n",
		in.Risk.Overall, in.Risk.Factors.Technical, in.Risk.Factors.Fundamental,
		in.Risk.Factors.Sentiment, in.Risk.Factors.Market))
	for _, warning := range in.Risk.Warnings {
		sb.WriteString(fmt.Sprintf("- %s\n", warning))
	}
	sb.WriteString("\n")

	sb.WriteString("## Price Predictions\n\n")
	writePrediction(&sb, in.Predictions.ShortTerm)
	writePrediction(&sb, in.Predictions.MidTerm)
	writePrediction(&sb, in.Predictions.LongTerm)
	sb.WriteString("\n")

	sb.WriteString("## Instructions\n\n")
	sb.WriteString("Analyze the assessment above and provide your recommendation in JSON format.\n")

	return sb.String()
}

func writePrediction(sb *strings.Builder, p domain.Prediction) {
	sb.WriteString(fmt.Sprintf("**%s:** %.2f - %.2f (confidence %.0f)\n",
		p.Horizon, p.Price.Low, p.Price.High, p.Confidence))
}
