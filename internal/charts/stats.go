package charts

import (
	"math"
	"sort"
)

// BoxStats is the five-number summary drawn by a box plot
type BoxStats struct {
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// Values returns the summary in echarts boxplot order
func (b BoxStats) Values() []float64 {
	return []float64{b.Min, b.Q1, b.Median, b.Q3, b.Max}
}

// Mean returns the arithmetic mean, or NaN for no values
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Summarize computes the five-number summary using linear interpolation
// between closest ranks. ok is false for no values.
func Summarize(values []float64) (stats BoxStats, ok bool) {
	if len(values) == 0 {
		return BoxStats{}, false
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	return BoxStats{
		Min:    sorted[0],
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
	}, true
}

// quantile expects sorted input
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
