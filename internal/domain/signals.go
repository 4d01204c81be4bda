package domain

// Qualitative signal labels produced by the indicator interpreters.
const (
	SignalBullish    = "bullish"
	SignalBearish    = "bearish"
	SignalNeutral    = "neutral"
	SignalOverbought = "overbought"
	SignalOversold   = "oversold"

	TrendRising  = "rising"
	TrendFalling = "falling"
	TrendStable  = "stable"

	VolumeIncreasing = "increasing"
	VolumeDecreasing = "decreasing"
	VolumeStable     = "stable"

	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"

	SignificanceNormal   = "normal"
	SignificanceElevated = "elevated"
	SignificanceHigh     = "high"
)

// TrendSignal direction labels plus a [0,1] strength.
type TrendSignal struct {
	Primary   string  `json:"primary"`
	Secondary string  `json:"secondary"`
	Strength  float64 `json:"strength"`
}

// MACDSignal the three MACD components with a direction label.
type MACDSignal struct {
	Line      float64 `json:"line"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
	Label     string  `json:"label"`
}

// MomentumSignal oscillator values with qualitative labels.
type MomentumSignal struct {
	RSI           float64    `json:"rsi"`
	RSILabel      string     `json:"rsi_label"`
	MACD          MACDSignal `json:"macd"`
	StochRSI      float64    `json:"stoch_rsi"`
	StochRSILabel string     `json:"stoch_rsi_label"`
}

// VolatilitySignal current volatility with trend and risk bucket.
type VolatilitySignal struct {
	// Current annualized volatility in [0,100].
	Current float64 `json:"current"`
	Trend   string  `json:"trend"`
	Risk    string  `json:"risk"`
}

// VolumeSignal recent-to-baseline volume ratio with labels.
type VolumeSignal struct {
	ChangeRatio  float64 `json:"change_ratio"`
	Trend        string  `json:"trend"`
	Significance string  `json:"significance"`
}

// TechnicalSignals bundle of trend, momentum, volatility and volume readings.
type TechnicalSignals struct {
	Trend      TrendSignal      `json:"trend"`
	Momentum   MomentumSignal   `json:"momentum"`
	Volatility VolatilitySignal `json:"volatility"`
	Volume     VolumeSignal     `json:"volume"`
}

// NeutralSignals is the signal bundle used when no analysis could run.
func NeutralSignals() TechnicalSignals {
	return TechnicalSignals{
		Trend: TrendSignal{Primary: SignalNeutral, Secondary: TrendStable, Strength: 0},
		Momentum: MomentumSignal{
			RSI:           50,
			RSILabel:      SignalNeutral,
			MACD:          MACDSignal{Label: SignalNeutral},
			StochRSI:      50,
			StochRSILabel: SignalNeutral,
		},
		Volatility: VolatilitySignal{Current: 30, Trend: TrendStable, Risk: RiskMedium},
		Volume:     VolumeSignal{ChangeRatio: 1, Trend: VolumeStable, Significance: SignificanceNormal},
	}
}
