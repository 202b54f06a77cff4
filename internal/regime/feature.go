package regime

import (
	"math"
	"sort"

	"github.com/bmackie-quant/newsmomentum-backtest/internal/market"
)

// feature is a 3-dimensional point in (volatility, direction, volume_norm)
// space, extracted from one window of ticks.
type feature struct {
	volatility float64
	direction  float64
	volumeNorm float64
}

const featureWindow = 10 // window is inclusive of the endpoint, length 11

// extractFeatures slides an 11-tick window (window_size=10 inclusive of the
// endpoint) across the ring, producing one feature per position in
// [featureWindow, len-1]. With fewer than 12 ticks available, a single
// feature is derived from the entire ring instead.
func extractFeatures(ring []market.Tick) []feature {
	if len(ring) < 2 {
		return nil
	}
	var out []feature
	for i := featureWindow; i < len(ring); i++ {
		window := ring[i-featureWindow : i+1]
		out = append(out, featureFromWindow(window))
	}
	if len(out) == 0 {
		out = append(out, featureFromWindow(ring))
	}
	return out
}

func featureFromWindow(window []market.Tick) feature {
	returns := make([]float64, 0, len(window))
	for i := 1; i < len(window); i++ {
		if window[i-1].Price > 0 {
			returns = append(returns, (window[i].Price-window[i-1].Price)/window[i-1].Price)
		}
	}

	var volatility float64
	if len(returns) > 0 {
		volatility = stdDev(returns)
	}

	var sumReturns float64
	for _, r := range returns {
		sumReturns += r
	}
	direction := math.Abs(sumReturns) / float64(len(window))

	var sumVol float64
	for _, t := range window {
		sumVol += float64(t.Volume)
	}
	avgVol := 1.0
	if sumVol > 0 {
		avgVol = sumVol / float64(len(window))
	}
	volumeNorm := float64(window[len(window)-1].Volume) / avgVol

	return feature{volatility: volatility, direction: direction, volumeNorm: volumeNorm}
}

func stdDev(values []float64) float64 {
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}

func distance(a, b feature) float64 {
	dv := a.volatility - b.volatility
	dd := a.direction - b.direction
	dn := a.volumeNorm - b.volumeNorm
	return math.Sqrt(dv*dv + dd*dd + dn*dn)
}

// percentileIndex returns (n*num)/den by integer division, clamped to n-1:
// the index of the num/den percentile in a sorted slice of length n,
// matching the source's integer-division percentile seeding exactly.
func percentileIndex(n int, num, den int) int {
	idx := (n * num) / den
	if idx >= n {
		idx = n - 1
	}
	return idx
}

func sortedCopy(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	sort.Float64s(out)
	return out
}
