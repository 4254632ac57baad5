package anomaly

import (
	"math"
	"sort"
)

// iqrDetector flags days outside [Q1 - k*IQR, Q3 + k*IQR] of the
// rolling window. Scores are always positive: the distance in IQR
// units beyond the nearer fence. Direction is implied by which fence
// was crossed, not by the sign.
type iqrDetector struct{}

func (iqrDetector) Detect(values []float64, window int, threshold float64) []Point {
	var out []Point
	for i := range values {
		w := causalWindow(values, i, window)
		if len(w) < 4 {
			continue // quartiles need at least four points
		}
		q1, q3 := quartiles(w)
		iqr := q3 - q1
		if iqr == 0 {
			continue
		}
		v := values[i]
		switch {
		case v > q3+threshold*iqr:
			out = append(out, Point{Index: i, Score: (v - q3) / iqr})
		case v < q1-threshold*iqr:
			out = append(out, Point{Index: i, Score: (q1 - v) / iqr})
		}
	}
	return out
}

// quartiles returns Q1 and Q3 of w by linear interpolation between
// order statistics, splitting the sorted window into four
// equal-probability groups.
func quartiles(w []float64) (q1, q3 float64) {
	s := make([]float64, len(w))
	copy(s, w)
	sort.Float64s(s)
	return quantile(s, 0.25), quantile(s, 0.75)
}

func quantile(sorted []float64, p float64) float64 {
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
