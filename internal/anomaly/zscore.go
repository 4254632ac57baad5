package anomaly

import "math"

// zscoreDetector flags days whose deviation from the rolling mean
// exceeds the threshold in population standard deviations.
type zscoreDetector struct{}

func (zscoreDetector) Detect(values []float64, window int, threshold float64) []Point {
	var out []Point
	for i := range values {
		w := causalWindow(values, i, window)
		if len(w) < 2 {
			continue // not enough history for a baseline
		}
		mean, std := meanStd(w)
		if std == 0 {
			// A constant baseline cannot produce a meaningful z-score.
			continue
		}
		z := (values[i] - mean) / std
		if math.Abs(z) >= threshold {
			out = append(out, Point{Index: i, Score: z})
		}
	}
	return out
}

// meanStd computes the mean and population standard deviation
// (divisor n, not n-1) of w. w must be non-empty.
func meanStd(w []float64) (mean, std float64) {
	for _, x := range w {
		mean += x
	}
	mean /= float64(len(w))

	var variance float64
	for _, x := range w {
		d := x - mean
		variance += d * d
	}
	variance /= float64(len(w))
	return mean, math.Sqrt(variance)
}
