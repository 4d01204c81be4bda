// Package indicators implements the statistical transforms behind the market
// assessment: moving averages, oscillators, volatility and volume measures.
// Every function is a pure function of its input window, never panics and
// never returns an error. Insufficient or degenerate input resolves to the
// documented neutral constant of the indicator instead.
package indicators

import "math"

// Default periods shared by the signal builders.
const (
	DefaultRSIPeriod       = 14
	DefaultStochRSIPeriod  = 14
	DefaultATRPeriod       = 14
	DefaultADXPeriod       = 14
	DefaultBollingerPeriod = 20
	DefaultBollingerMult   = 2.0
	DefaultROCLookback     = 10
)

// Neutral fallbacks for insufficient or degenerate input.
const (
	NeutralRSI         = 50.0
	NeutralStochRSI    = 50.0
	NeutralADX         = 25.0
	NeutralVolatility  = 30.0
	NeutralVolumeRatio = 1.0
)

// annualization factor for daily log returns.
var annualFactor = math.Sqrt(365)

// SMA returns the simple moving average over the trailing window. When the
// series is shorter than the period the whole series is averaged. Empty
// input yields 0.
func SMA(series []float64, period int) float64 {
	if len(series) == 0 || period <= 0 {
		return 0
	}

	window := period
	if len(series) < window {
		window = len(series)
	}

	sum := 0.0
	for _, v := range series[len(series)-window:] {
		sum += v
	}

	return sum / float64(window)
}

// SMASeries returns the same-length rolling simple moving average. Positions
// before period-1 hold 0 as the fill value.
func SMASeries(series []float64, period int) []float64 {
	out := make([]float64, len(series))
	if period <= 0 || len(series) == 0 {
		return out
	}

	sum := 0.0
	for i, v := range series {
		sum += v
		if i >= period {
			sum -= series[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}

	return out
}

// EMASeries returns the same-length exponential moving average with smoothing
// factor k = 2/(period+1), seeded with the first element.
func EMASeries(series []float64, period int) []float64 {
	if len(series) == 0 {
		return nil
	}
	if period < 1 {
		period = 1
	}

	k := 2.0 / float64(period+1)
	out := make([]float64, len(series))
	out[0] = series[0]
	for i := 1; i < len(series); i++ {
		out[i] = series[i]*k + out[i-1]*(1-k)
	}

	return out
}

// EMA returns the latest value of the exponential moving average.
func EMA(series []float64, period int) float64 {
	ema := EMASeries(series, period)
	if len(ema) == 0 {
		return 0
	}

	return ema[len(ema)-1]
}

// StdDev returns the population standard deviation over the trailing window.
func StdDev(series []float64, period int) float64 {
	if len(series) == 0 || period <= 0 {
		return 0
	}

	window := period
	if len(series) < window {
		window = len(series)
	}
	tail := series[len(series)-window:]

	mean := 0.0
	for _, v := range tail {
		mean += v
	}
	mean /= float64(window)

	variance := 0.0
	for _, v := range tail {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(window)

	return math.Sqrt(variance)
}

// RSI returns Wilder's relative strength index over the given period.
// Fewer than period+1 points yield the neutral 50, a zero average loss
// yields 100, and any NaN resolves to 50. The result is always in [0,100].
func RSI(series []float64, period int) float64 {
	if period <= 0 || len(series) < period+1 {
		return NeutralRSI
	}

	avgGain, avgLoss := wilderSeed(series, period)
	for i := period + 1; i < len(series); i++ {
		gain, loss := gainLoss(series[i] - series[i-1])
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	return rsiFromAverages(avgGain, avgLoss)
}

// rsiSequence returns the Wilder RSI at every index from period onward,
// aligned so that element j corresponds to series index period+j.
func rsiSequence(series []float64, period int) []float64 {
	if period <= 0 || len(series) < period+1 {
		return nil
	}

	out := make([]float64, 0, len(series)-period)
	avgGain, avgLoss := wilderSeed(series, period)
	out = append(out, rsiFromAverages(avgGain, avgLoss))

	for i := period + 1; i < len(series); i++ {
		gain, loss := gainLoss(series[i] - series[i-1])
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out = append(out, rsiFromAverages(avgGain, avgLoss))
	}

	return out
}

// wilderSeed averages gains and losses over the first period deltas.
func wilderSeed(series []float64, period int) (avgGain, avgLoss float64) {
	for i := 1; i <= period; i++ {
		gain, loss := gainLoss(series[i] - series[i-1])
		avgGain += gain
		avgLoss += loss
	}

	return avgGain / float64(period), avgLoss / float64(period)
}

func gainLoss(delta float64) (gain, loss float64) {
	if delta > 0 {
		return delta, 0
	}

	return 0, -delta
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}

	rsi := 100 - 100/(1+avgGain/avgLoss)
	if math.IsNaN(rsi) {
		return NeutralRSI
	}

	return rsi
}

// MACD returns the MACD line (EMA12-EMA26 over the full series), the signal
// line (EMA9 of the MACD line) and the histogram (line minus signal).
func MACD(series []float64) (line, signal, histogram float64) {
	if len(series) == 0 {
		return 0, 0, 0
	}

	ema12 := EMASeries(series, 12)
	ema26 := EMASeries(series, 26)

	macdSeries := make([]float64, len(series))
	for i := range series {
		macdSeries[i] = ema12[i] - ema26[i]
	}

	line = macdSeries[len(macdSeries)-1]
	signal = EMA(macdSeries, 9)

	return line, signal, line - signal
}

// StochRSI normalizes the most recent RSI against the min and max of the
// rolling RSI sequence over the same window, scaled to [0,100]. A window
// where all RSI values coincide yields the neutral 50.
func StochRSI(series []float64, period int) float64 {
	rsis := rsiSequence(series, period)
	if len(rsis) == 0 {
		return NeutralStochRSI
	}

	window := period
	if len(rsis) < window {
		window = len(rsis)
	}
	tail := rsis[len(rsis)-window:]

	lowest, highest := tail[0], tail[0]
	for _, v := range tail {
		lowest = math.Min(lowest, v)
		highest = math.Max(highest, v)
	}
	if highest == lowest {
		return NeutralStochRSI
	}

	return (rsis[len(rsis)-1] - lowest) / (highest - lowest) * 100
}

// TrueRange returns the per-step true range. With no separate high and low
// series available the price series doubles as both, so each step reduces
// to the absolute delta between consecutive prices.
func TrueRange(series []float64) []float64 {
	if len(series) < 2 {
		return nil
	}

	out := make([]float64, len(series)-1)
	for i := 1; i < len(series); i++ {
		out[i-1] = math.Abs(series[i] - series[i-1])
	}

	return out
}

// ATR returns the trailing average of the true range. Fewer than two prices
// yield 0.
func ATR(series []float64, period int) float64 {
	tr := TrueRange(series)
	if len(tr) == 0 || period <= 0 {
		return 0
	}

	window := period
	if len(tr) < window {
		window = len(tr)
	}

	sum := 0.0
	for _, v := range tr[len(tr)-window:] {
		sum += v
	}

	return sum / float64(window)
}

// ADX returns the directional index over the trailing period: directional
// movement sums normalized by the true-range sum, folded into
// |DI+ - DI-| / (DI+ + DI-) * 100. Insufficient data or a flat window
// yields the neutral 25.
func ADX(series []float64, period int) float64 {
	if period <= 0 || len(series) < period+1 {
		return NeutralADX
	}

	var plusDM, minusDM, trSum float64
	for i := len(series) - period; i < len(series); i++ {
		delta := series[i] - series[i-1]
		if delta > 0 {
			plusDM += delta
		} else {
			minusDM -= delta
		}
		trSum += math.Abs(delta)
	}
	if trSum == 0 {
		return NeutralADX
	}

	diPlus := plusDM / trSum * 100
	diMinus := minusDM / trSum * 100
	if diPlus+diMinus == 0 {
		return NeutralADX
	}

	return math.Abs(diPlus-diMinus) / (diPlus + diMinus) * 100
}

// Volatility returns the annualized standard deviation of log returns,
// scaled to [0,100]. Fewer than two points or a NaN yield the neutral 30.
func Volatility(series []float64) float64 {
	if len(series) < 2 {
		return NeutralVolatility
	}

	returns := make([]float64, 0, len(series)-1)
	for i := 1; i < len(series); i++ {
		if series[i-1] <= 0 || series[i] <= 0 {
			return NeutralVolatility
		}
		returns = append(returns, math.Log(series[i]/series[i-1]))
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns))

	vol := math.Sqrt(variance) * annualFactor * 100
	if math.IsNaN(vol) || math.IsInf(vol, 0) {
		return NeutralVolatility
	}

	return clamp(vol, 0, 100)
}

// BollingerBands returns the middle band (trailing SMA) with the upper and
// lower bands offset by multiplier standard deviations.
func BollingerBands(series []float64, period int, multiplier float64) (middle, upper, lower float64) {
	if len(series) == 0 {
		return 0, 0, 0
	}

	middle = SMA(series, period)
	dev := StdDev(series, period) * multiplier

	return middle, middle + dev, middle - dev
}

// VolumeRatio returns the mean of the last five volumes over the mean of the
// last twenty. Fewer than twenty points or a zero baseline yield 1.
func VolumeRatio(volumes []float64) float64 {
	if len(volumes) < 20 {
		return NeutralVolumeRatio
	}

	recent := SMA(volumes, 5)
	baseline := SMA(volumes, 20)
	if baseline == 0 {
		return NeutralVolumeRatio
	}

	return recent / baseline
}

// ROC returns the fractional rate of change over the lookback distance.
// Insufficient data yields 0.
func ROC(series []float64, lookback int) float64 {
	if lookback <= 0 || len(series) < lookback+1 {
		return 0
	}

	prev := series[len(series)-1-lookback]
	if prev == 0 {
		return 0
	}

	return (series[len(series)-1] - prev) / prev
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}
