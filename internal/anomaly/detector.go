package anomaly

import (
	"errors"
	"fmt"

	"github.com/alokrrr/Ecom-Analytics/internal/domain/models"
)

// Detection methods accepted on the API surface.
const (
	MethodZScore = "zscore"
	MethodIQR    = "iqr"
)

// ErrInvalidConfig is returned for degenerate detection parameters.
// The HTTP layer validates first; the core re-checks so it can never
// be driven into a division-by-zero or an unbounded loop.
var ErrInvalidConfig = errors.New("invalid detection config")

// Config selects the detection method and its parameters.
type Config struct {
	Method    string
	Window    int
	Threshold float64
}

// Validate rejects unknown methods, windows below 2 and non-positive
// thresholds before any computation starts.
func (c Config) Validate() error {
	if c.Method != MethodZScore && c.Method != MethodIQR {
		return fmt.Errorf("%w: unknown method %q", ErrInvalidConfig, c.Method)
	}
	if c.Window < 2 {
		return fmt.Errorf("%w: window must be >= 2, got %d", ErrInvalidConfig, c.Window)
	}
	if c.Threshold <= 0 {
		return fmt.Errorf("%w: threshold must be > 0, got %g", ErrInvalidConfig, c.Threshold)
	}
	return nil
}

// DefaultThreshold returns the conventional threshold for a method:
// 3.0 standard deviations for zscore, 1.5 IQR multiples for iqr.
func DefaultThreshold(method string) float64 {
	if method == MethodIQR {
		return 1.5
	}
	return 3.0
}

// Point is a raw detector hit: the series index and the method score.
type Point struct {
	Index int
	Score float64
}

// Detector flags anomalous indices in a value sequence. Each index is
// judged against a causal window of up to `window` values strictly
// preceding it, so a point never influences its own baseline and a
// verdict never depends on future values.
type Detector interface {
	Detect(values []float64, window int, threshold float64) []Point
}

// ForMethod returns the detector for a method tag.
func ForMethod(method string) (Detector, error) {
	switch method {
	case MethodZScore:
		return zscoreDetector{}, nil
	case MethodIQR:
		return iqrDetector{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown method %q", ErrInvalidConfig, method)
	}
}

// Detect runs the configured detector over the normalized series and
// assembles the response envelope. Either the full result is returned
// or an error; there are no partial results.
func Detect(series models.DailySeries, cfg Config) (models.DetectionResult, error) {
	if err := cfg.Validate(); err != nil {
		return models.DetectionResult{}, err
	}
	det, err := ForMethod(cfg.Method)
	if err != nil {
		return models.DetectionResult{}, err
	}

	values := make([]float64, len(series))
	for i, o := range series {
		values[i] = o.Revenue
	}
	raw := det.Detect(values, cfg.Window, cfg.Threshold)
	return Format(series, raw, cfg), nil
}

// causalWindow returns values[max(0,i-window) .. i), the trailing
// history used as the baseline for index i.
func causalWindow(values []float64, i, window int) []float64 {
	lo := i - window
	if lo < 0 {
		lo = 0
	}
	return values[lo:i]
}
