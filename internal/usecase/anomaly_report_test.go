package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/alokrrr/Ecom-Analytics/internal/anomaly"
	"github.com/alokrrr/Ecom-Analytics/internal/domain/models"
)

type fakeRevenueSource struct {
	obs  []models.RevenueObservation
	from models.Date
	to   models.Date
}

func (f *fakeRevenueSource) DailyRevenue(_ context.Context, from, to models.Date) ([]models.RevenueObservation, error) {
	f.from, f.to = from, to
	return f.obs, nil
}

func mustDate(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func TestDetectFlagsSpikeEndToEnd(t *testing.T) {
	src := &fakeRevenueSource{}
	for i := 0; i < 9; i++ {
		src.obs = append(src.obs, models.RevenueObservation{
			Day:     mustDate(t, "2024-05-01").AddDays(i),
			Revenue: 100 + float64(i%3),
		})
	}
	// Day 10 is a big spike.
	src.obs = append(src.obs, models.RevenueObservation{Day: mustDate(t, "2024-05-10"), Revenue: 5000})

	rep := NewAnomalyReporter(src, 90)
	res, err := rep.Detect(context.Background(), &models.DetectRequest{
		Method:    anomaly.MethodZScore,
		Window:    7,
		Threshold: 3,
		StartDate: "2024-05-01",
		EndDate:   "2024-05-10",
	})
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if len(res.Series) != 10 {
		t.Fatalf("expected 10-day series, got %d", len(res.Series))
	}
	if len(res.Anomalies) != 1 || res.Anomalies[0].Day.String() != "2024-05-10" {
		t.Fatalf("expected spike day flagged, got %+v", res.Anomalies)
	}
	if src.from.String() != "2024-05-01" || src.to.String() != "2024-05-10" {
		t.Fatalf("source queried with wrong range %s..%s", src.from, src.to)
	}
}

func TestDetectDefaultsThresholdPerMethod(t *testing.T) {
	src := &fakeRevenueSource{}
	rep := NewAnomalyReporter(src, 90)
	res, err := rep.Detect(context.Background(), &models.DetectRequest{
		Method:    anomaly.MethodIQR,
		Window:    7,
		StartDate: "2024-05-01",
		EndDate:   "2024-05-05",
	})
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if res.Threshold != 1.5 {
		t.Fatalf("expected iqr default threshold 1.5, got %v", res.Threshold)
	}
}

func TestDetectDefaultRangeIsTrailingWindow(t *testing.T) {
	src := &fakeRevenueSource{}
	rep := NewAnomalyReporter(src, 90)
	if _, err := rep.Detect(context.Background(), &models.DetectRequest{
		Method: anomaly.MethodZScore,
		Window: 7,
	}); err != nil {
		t.Fatalf("detect: %v", err)
	}
	if got := src.from.DaysUntil(src.to); got != 89 {
		t.Fatalf("expected 90-day default range, got %d days between endpoints", got)
	}
}

func TestDetectInvalidRange(t *testing.T) {
	rep := NewAnomalyReporter(&fakeRevenueSource{}, 90)
	_, err := rep.Detect(context.Background(), &models.DetectRequest{
		Method:    anomaly.MethodZScore,
		Window:    7,
		StartDate: "2024-05-10",
		EndDate:   "2024-05-01",
	})
	if !errors.Is(err, anomaly.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestDetectInvalidConfig(t *testing.T) {
	rep := NewAnomalyReporter(&fakeRevenueSource{}, 90)
	_, err := rep.Detect(context.Background(), &models.DetectRequest{
		Method: "mad",
		Window: 7,
	})
	if !errors.Is(err, anomaly.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
