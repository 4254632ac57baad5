package anomaly

import (
	"errors"
	"testing"

	"github.com/alokrrr/Ecom-Analytics/internal/domain/models"
)

func day(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func TestNormalizeGapFilling(t *testing.T) {
	obs := []models.RevenueObservation{
		{Day: day(t, "2024-01-02"), Revenue: 10},
		{Day: day(t, "2024-01-04"), Revenue: 20},
	}
	series, err := Normalize(obs, day(t, "2024-01-01"), day(t, "2024-01-05"))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	want := []struct {
		day string
		rev float64
	}{
		{"2024-01-01", 0},
		{"2024-01-02", 10},
		{"2024-01-03", 0},
		{"2024-01-04", 20},
		{"2024-01-05", 0},
	}
	if len(series) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(series))
	}
	for i, w := range want {
		if series[i].Day.String() != w.day {
			t.Fatalf("point %d: expected day %s, got %s", i, w.day, series[i].Day)
		}
		if series[i].Revenue != w.rev {
			t.Fatalf("point %d: expected revenue %g, got %g", i, w.rev, series[i].Revenue)
		}
	}
}

func TestNormalizeContiguous(t *testing.T) {
	series, err := Normalize(nil, day(t, "2024-02-27"), day(t, "2024-03-02"))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	// Feb 2024 is a leap month: 27,28,29, then Mar 1,2.
	if len(series) != 5 {
		t.Fatalf("expected 5 points across month boundary, got %d", len(series))
	}
	for i := 1; i < len(series); i++ {
		if series[i-1].Day.DaysUntil(series[i].Day) != 1 {
			t.Fatalf("gap between %s and %s", series[i-1].Day, series[i].Day)
		}
	}
}

func TestNormalizeInvalidRange(t *testing.T) {
	_, err := Normalize(nil, day(t, "2024-01-05"), day(t, "2024-01-01"))
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestNormalizeSingleDay(t *testing.T) {
	d := day(t, "2024-06-01")
	series, err := Normalize(nil, d, d)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("expected single-point series, got %d points", len(series))
	}

	// A single point has no history: neither method can flag anything.
	for _, method := range []string{MethodZScore, MethodIQR} {
		res, err := Detect(series, Config{Method: method, Window: 7, Threshold: DefaultThreshold(method)})
		if err != nil {
			t.Fatalf("%s detect: %v", method, err)
		}
		if len(res.Anomalies) != 0 {
			t.Fatalf("%s: expected no anomalies on single-day series, got %d", method, len(res.Anomalies))
		}
	}
}
