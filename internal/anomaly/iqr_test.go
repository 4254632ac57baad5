package anomaly

import (
	"math"
	"testing"
)

func TestIQRUpperOutlier(t *testing.T) {
	// Window [1,2,3,4]: Q1=1.75, Q3=3.25, IQR=1.5, upper fence at
	// 3.25 + 1.5*1.5 = 5.5. Value 10 is an upper outlier with
	// score (10-3.25)/1.5 = 4.5.
	values := []float64{1, 2, 3, 4, 10}
	hits := iqrDetector{}.Detect(values, 4, 1.5)
	if len(hits) != 1 || hits[0].Index != 4 {
		t.Fatalf("expected index 4 flagged, got %+v", hits)
	}
	if math.Abs(hits[0].Score-4.5) > 1e-12 {
		t.Fatalf("expected score 4.5, got %v", hits[0].Score)
	}
}

func TestIQRLowerOutlierScorePositive(t *testing.T) {
	// Lower fence at 1.75 - 2.25 = -0.5; value -5 is below it. The
	// score stays positive: distance beyond the nearer fence in IQR
	// units, direction implied by the branch.
	values := []float64{1, 2, 3, 4, -5}
	hits := iqrDetector{}.Detect(values, 4, 1.5)
	if len(hits) != 1 || hits[0].Index != 4 {
		t.Fatalf("expected index 4 flagged, got %+v", hits)
	}
	want := (1.75 - (-5)) / 1.5
	if math.Abs(hits[0].Score-want) > 1e-12 {
		t.Fatalf("expected score %v, got %v", want, hits[0].Score)
	}
	if hits[0].Score <= 0 {
		t.Fatalf("lower-outlier score must be positive, got %v", hits[0].Score)
	}
}

func TestIQRInsufficientHistory(t *testing.T) {
	// Fewer than 4 preceding points never produce a verdict, no matter
	// how extreme the value.
	values := []float64{0, 1e9, -1e9, 1e9, 5, 5, 5}
	for _, h := range (iqrDetector{}).Detect(values, 10, 0.5) {
		if h.Index < 4 {
			t.Fatalf("index %d flagged with insufficient history", h.Index)
		}
	}
}

func TestIQRZeroSpreadSkipped(t *testing.T) {
	values := []float64{5, 5, 5, 5, 1000}
	hits := iqrDetector{}.Detect(values, 4, 1.5)
	if len(hits) != 0 {
		t.Fatalf("expected zero-IQR window to be skipped, got %+v", hits)
	}
}

func TestQuantileInterpolation(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	cases := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{0.25, 1.75},
		{0.5, 2.5},
		{0.75, 3.25},
		{1, 4},
	}
	for _, c := range cases {
		got := quantile(sorted, c.p)
		if math.Abs(got-c.want) > 1e-12 {
			t.Fatalf("quantile(%v): expected %v, got %v", c.p, c.want, got)
		}
	}
}
