package anomaly

import (
	"math"
	"testing"
)

func TestZScoreFlagsSpike(t *testing.T) {
	values := []float64{10, 12, 11, 13, 12, 50}
	hits := (zscoreDetector{}).Detect(values, 5, 2.0)
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %+v", hits)
	}

	// Index 3 against window [10,12,11]: mean 11, population std
	// sqrt(2/3), so z = 2/sqrt(2/3) ~ 2.449, over the threshold.
	m3, s3 := meanStd(values[:3])
	if hits[0].Index != 3 {
		t.Fatalf("expected index 3 flagged, got %+v", hits[0])
	}
	if want := (13 - m3) / s3; math.Abs(hits[0].Score-want) > 1e-12 {
		t.Fatalf("index 3: expected score %v, got %v", want, hits[0].Score)
	}

	// The spike at index 5 against window [10,12,11,13,12].
	m5, s5 := meanStd(values[:5])
	if hits[1].Index != 5 {
		t.Fatalf("expected index 5 flagged, got %+v", hits[1])
	}
	if want := (50 - m5) / s5; math.Abs(hits[1].Score-want) > 1e-12 {
		t.Fatalf("index 5: expected score %v, got %v", want, hits[1].Score)
	}
}

func TestZScoreConstantBaselineSkipped(t *testing.T) {
	// Flat history then a spike: std of the window is zero, so the day
	// has no usable baseline and is skipped rather than flagged.
	values := []float64{1, 1, 1, 1, 1, 100}
	hits := zscoreDetector{}.Detect(values, 5, 3.0)
	if len(hits) != 0 {
		t.Fatalf("expected no hits on zero-variance baseline, got %d", len(hits))
	}
}

func TestZScoreThresholdInclusive(t *testing.T) {
	// Window [0,2]: mean 1, population std 1. Value 3 gives z = 2 exactly;
	// |z| == threshold must be flagged, not excluded.
	values := []float64{0, 2, 3}
	hits := zscoreDetector{}.Detect(values, 2, 2.0)
	if len(hits) != 1 || hits[0].Index != 2 {
		t.Fatalf("expected index 2 flagged at exact threshold, got %+v", hits)
	}
	if hits[0].Score != 2.0 {
		t.Fatalf("expected score 2.0, got %v", hits[0].Score)
	}
}

func TestZScoreInsufficientHistory(t *testing.T) {
	// Indices 0 and 1 see fewer than two prior values and are skipped
	// silently no matter how extreme they are.
	values := []float64{1e9, -1e9, 1, 1, 1}
	for _, h := range (zscoreDetector{}).Detect(values, 5, 0.5) {
		if h.Index < 2 {
			t.Fatalf("index %d flagged with insufficient history", h.Index)
		}
	}
}

func TestZScoreCausalWindow(t *testing.T) {
	// Changing a future value must never change a past verdict.
	base := []float64{10, 12, 11, 13, 12, 50, 11, 12}
	mutated := append([]float64(nil), base...)
	mutated[len(mutated)-1] = 1e6

	baseHits := zscoreDetector{}.Detect(base, 5, 2.0)
	mutHits := zscoreDetector{}.Detect(mutated, 5, 2.0)

	last := len(base) - 1
	var basePast, mutPast []Point
	for _, h := range baseHits {
		if h.Index < last {
			basePast = append(basePast, h)
		}
	}
	for _, h := range mutHits {
		if h.Index < last {
			mutPast = append(mutPast, h)
		}
	}
	if len(basePast) != len(mutPast) {
		t.Fatalf("past verdicts changed: %d vs %d hits", len(basePast), len(mutPast))
	}
	for i := range basePast {
		if basePast[i] != mutPast[i] {
			t.Fatalf("past verdict %d changed: %+v vs %+v", i, basePast[i], mutPast[i])
		}
	}
}
