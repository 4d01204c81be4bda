package domain

// NoRiskWarning is emitted when no warning condition fires, the warnings
// list is never empty.
const NoRiskWarning = "no significant risk detected"

// RiskFactors independently computed risk components, each in [0,100].
type RiskFactors struct {
	Technical   float64 `json:"technical"`
	Fundamental float64 `json:"fundamental"`
	Sentiment   float64 `json:"sentiment"`
	Market      float64 `json:"market"`
}

// RiskAssessment composite risk with named factors and textual warnings.
type RiskAssessment struct {
	// Overall unweighted mean of the four factors, [0,100].
	Overall  float64     `json:"overall"`
	Factors  RiskFactors `json:"factors"`
	Warnings []string    `json:"warnings"`
}

// NeutralRisk is the midpoint assessment used when no analysis could run.
func NeutralRisk() RiskAssessment {
	return RiskAssessment{
		Overall: 50,
		Factors: RiskFactors{
			Technical:   50,
			Fundamental: 50,
			Sentiment:   50,
			Market:      50,
		},
		Warnings: []string{NoRiskWarning},
	}
}
