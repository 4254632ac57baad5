package anomaly

import (
	"errors"
	"reflect"
	"testing"

	"github.com/alokrrr/Ecom-Analytics/internal/domain/models"
)

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"valid zscore", Config{Method: MethodZScore, Window: 7, Threshold: 3}, true},
		{"valid iqr", Config{Method: MethodIQR, Window: 14, Threshold: 1.5}, true},
		{"unknown method", Config{Method: "mad", Window: 7, Threshold: 3}, false},
		{"window too small", Config{Method: MethodZScore, Window: 1, Threshold: 3}, false},
		{"zero threshold", Config{Method: MethodZScore, Window: 7, Threshold: 0}, false},
		{"negative threshold", Config{Method: MethodIQR, Window: 7, Threshold: -1.5}, false},
	}
	for _, c := range cases {
		err := c.cfg.Validate()
		if c.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", c.name, err)
		}
		if !c.ok {
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("%s: expected ErrInvalidConfig, got %v", c.name, err)
			}
		}
	}
}

func TestForMethodUnknown(t *testing.T) {
	if _, err := ForMethod("seasonal"); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestDefaultThreshold(t *testing.T) {
	if got := DefaultThreshold(MethodZScore); got != 3.0 {
		t.Fatalf("zscore default: got %v", got)
	}
	if got := DefaultThreshold(MethodIQR); got != 1.5 {
		t.Fatalf("iqr default: got %v", got)
	}
}

func TestDetectDeterminism(t *testing.T) {
	series, err := Normalize([]models.RevenueObservation{
		{Day: day(t, "2024-03-03"), Revenue: 120},
		{Day: day(t, "2024-03-07"), Revenue: 900},
		{Day: day(t, "2024-03-10"), Revenue: 130},
	}, day(t, "2024-03-01"), day(t, "2024-03-14"))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	for _, method := range []string{MethodZScore, MethodIQR} {
		cfg := Config{Method: method, Window: 7, Threshold: DefaultThreshold(method)}
		first, err := Detect(series, cfg)
		if err != nil {
			t.Fatalf("%s detect: %v", method, err)
		}
		second, err := Detect(series, cfg)
		if err != nil {
			t.Fatalf("%s detect: %v", method, err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("%s: repeated runs differ", method)
		}
	}
}

func TestDetectRejectsDegenerateConfig(t *testing.T) {
	series, err := Normalize(nil, day(t, "2024-01-01"), day(t, "2024-01-10"))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if _, err := Detect(series, Config{Method: MethodZScore, Window: 0, Threshold: 3}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
