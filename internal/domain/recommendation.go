package domain

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Recommended actions emitted by strategy generators.
const (
	ActionBuy        = "buy"
	ActionSell       = "sell"
	ActionHold       = "hold"
	ActionAccumulate = "accumulate"
	ActionReduce     = "reduce"
)

// validAction checks the string is a known action.
func validAction(s string) bool {
	switch s {
	case ActionBuy, ActionSell, ActionHold, ActionAccumulate, ActionReduce:
		return true
	}
	return false
}

// StrategyRecommendation entries, stop and targets produced by a strategy
// generator. The engine forwards it into the report without interpreting it.
type StrategyRecommendation struct {
	Action    string    `json:"action"`
	Entries   []float64 `json:"entries"`
	StopLoss  float64   `json:"stop_loss"`
	Targets   []float64 `json:"targets"`
	Timeframe string    `json:"timeframe"`
	Rationale string    `json:"rationale"`
}

// HoldRecommendation is the fallback used when no generator produced a result.
func HoldRecommendation(reason string) StrategyRecommendation {
	if reason == "" {
		reason = "no actionable setup"
	}

	return StrategyRecommendation{
		Action:    ActionHold,
		Timeframe: HorizonMid,
		Rationale: reason,
	}
}

// RecommendationFromJSON builds a validated recommendation from a raw model
// response, tolerating markdown code fences around the payload.
func RecommendationFromJSON(raw string) (*StrategyRecommendation, error) {
	payload := sanitizeModelPayload(raw)

	if !json.Valid([]byte(payload)) {
		return nil, errors.New("invalid JSON structure")
	}

	var rec StrategyRecommendation
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, errors.Wrap(err, "JSON unmarshal error")
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}

	return &rec, nil
}

func sanitizeModelPayload(raw string) string {
	payload := strings.TrimSpace(raw)
	payload = strings.TrimPrefix(payload, "```json")
	payload = strings.TrimPrefix(payload, "```")
	payload = strings.TrimSuffix(payload, "```")
	return strings.TrimSpace(payload)
}

// Validate validates the recommendation.
func (r *StrategyRecommendation) Validate() error {
	if r.Action == "" {
		return errors.New("action field is required")
	}
	if !validAction(r.Action) {
		return errors.Errorf("invalid action: %s", r.Action)
	}
	if r.Rationale == "" {
		return errors.New("rationale field is required")
	}

	for _, e := range r.Entries {
		if e <= 0 {
			return errors.New("entries must be greater than 0")
		}
	}
	for _, t := range r.Targets {
		if t <= 0 {
			return errors.New("targets must be greater than 0")
		}
	}
	if r.StopLoss < 0 {
		return errors.New("stop_loss must not be negative")
	}

	return nil
}
