package anomaly

import (
	"testing"

	"github.com/alokrrr/Ecom-Analytics/internal/domain/models"
)

func TestFormatMapsIndicesToDays(t *testing.T) {
	series, err := Normalize([]models.RevenueObservation{
		{Day: day(t, "2024-01-03"), Revenue: 42},
	}, day(t, "2024-01-01"), day(t, "2024-01-05"))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	cfg := Config{Method: MethodZScore, Window: 7, Threshold: 3}
	res := Format(series, []Point{{Index: 2, Score: 3.5}}, cfg)

	if res.Method != MethodZScore || res.Window != 7 || res.Threshold != 3 {
		t.Fatalf("envelope parameters not carried through: %+v", res)
	}
	if len(res.Anomalies) != 1 {
		t.Fatalf("expected 1 anomaly, got %d", len(res.Anomalies))
	}
	a := res.Anomalies[0]
	if a.Day.String() != "2024-01-03" || a.Revenue != 42 || a.Score != 3.5 {
		t.Fatalf("unexpected anomaly point %+v", a)
	}
	if a.Reason != "zscore (window=7, threshold=3)" {
		t.Fatalf("unexpected reason %q", a.Reason)
	}
}

func TestFormatEmptyHitsYieldsEmptySlice(t *testing.T) {
	series, err := Normalize(nil, day(t, "2024-01-01"), day(t, "2024-01-02"))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	res := Format(series, nil, Config{Method: MethodIQR, Window: 7, Threshold: 1.5})
	if res.Anomalies == nil || len(res.Anomalies) != 0 {
		t.Fatalf("expected empty (non-nil) anomalies, got %#v", res.Anomalies)
	}
}
