package domain

// Prediction horizons in report order.
const (
	HorizonShort = "24h"
	HorizonMid   = "7d"
	HorizonLong  = "30d"
)

// Prediction price range with confidence for one horizon.
type Prediction struct {
	Horizon string    `json:"horizon"`
	Price   PriceBand `json:"price"`
	// Confidence in [30,95], decreasing with horizon length.
	Confidence float64 `json:"confidence"`
	// Signals short descriptive strings explaining the range.
	Signals []string `json:"signals"`
}

// PredictionSet the three fixed horizons, ranges widen with horizon length.
type PredictionSet struct {
	ShortTerm Prediction `json:"short_term"`
	MidTerm   Prediction `json:"mid_term"`
	LongTerm  Prediction `json:"long_term"`
}

// NeutralPredictions flat low-confidence ranges around the given price.
func NeutralPredictions(price float64) PredictionSet {
	band := func(pct float64) PriceBand {
		return PriceBand{Low: price * (1 - pct), High: price * (1 + pct)}
	}

	return PredictionSet{
		ShortTerm: Prediction{
			Horizon:    HorizonShort,
			Price:      band(0.02),
			Confidence: MinConfidence,
			Signals:    []string{"insufficient data"},
		},
		MidTerm: Prediction{
			Horizon:    HorizonMid,
			Price:      band(0.05),
			Confidence: MinConfidence,
			Signals:    []string{"insufficient data"},
		},
		LongTerm: Prediction{
			Horizon:    HorizonLong,
			Price:      band(0.10),
			Confidence: MinConfidence,
			Signals:    []string{"insufficient data"},
		},
	}
}
