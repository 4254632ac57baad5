package usecase

import (
	"context"
	"fmt"

	"github.com/alokrrr/Ecom-Analytics/internal/anomaly"
	"github.com/alokrrr/Ecom-Analytics/internal/domain/models"
	domrepo "github.com/alokrrr/Ecom-Analytics/internal/domain/repository"
	"github.com/alokrrr/Ecom-Analytics/internal/service/metrics"
	"github.com/alokrrr/Ecom-Analytics/pkg/util"
)

// AnomalyReporter turns a detect request into a full DetectionResult:
// fetch raw daily revenue, normalize, run the configured detector,
// format. All statistics live in the anomaly package; this type only
// resolves defaults and wires the data source in.
type AnomalyReporter struct {
	source    domrepo.RevenueSource
	rangeDays int // default lookback when the request has no dates
}

func NewAnomalyReporter(source domrepo.RevenueSource, rangeDays int) *AnomalyReporter {
	if rangeDays <= 0 {
		rangeDays = 90
	}
	return &AnomalyReporter{source: source, rangeDays: rangeDays}
}

// Detect runs anomaly detection for the requested range and method.
// Range errors and config errors surface unwrapped enough for the
// handler to map them to 400s via errors.Is.
func (u *AnomalyReporter) Detect(ctx context.Context, req *models.DetectRequest) (models.DetectionResult, error) {
	start, end, err := u.resolveRange(req.StartDate, req.EndDate)
	if err != nil {
		return models.DetectionResult{}, err
	}

	cfg := anomaly.Config{
		Method:    req.Method,
		Window:    req.Window,
		Threshold: req.Threshold,
	}
	if cfg.Threshold == 0 {
		cfg.Threshold = anomaly.DefaultThreshold(cfg.Method)
	}
	if err := cfg.Validate(); err != nil {
		return models.DetectionResult{}, err
	}

	obs, err := u.source.DailyRevenue(ctx, start, end)
	if err != nil {
		return models.DetectionResult{}, fmt.Errorf("fetch daily revenue: %w", err)
	}

	series, err := anomaly.Normalize(obs, start, end)
	if err != nil {
		return models.DetectionResult{}, err
	}

	res, err := anomaly.Detect(series, cfg)
	if err != nil {
		return models.DetectionResult{}, err
	}
	metrics.AnomaliesFlagged.WithLabelValues(cfg.Method).Add(float64(len(res.Anomalies)))
	return res, nil
}

// resolveRange applies the default trailing window: end defaults to
// today, start to rangeDays-1 days before end.
func (u *AnomalyReporter) resolveRange(startStr, endStr string) (models.Date, models.Date, error) {
	end := models.NewDate(util.Today())
	if endStr != "" {
		parsed, err := models.ParseDate(endStr)
		if err != nil {
			return models.Date{}, models.Date{}, fmt.Errorf("%w: bad end_date", anomaly.ErrInvalidRange)
		}
		end = parsed
	}

	start := end.AddDays(-(u.rangeDays - 1))
	if startStr != "" {
		parsed, err := models.ParseDate(startStr)
		if err != nil {
			return models.Date{}, models.Date{}, fmt.Errorf("%w: bad start_date", anomaly.ErrInvalidRange)
		}
		start = parsed
	}

	if start.After(end) {
		return models.Date{}, models.Date{}, anomaly.ErrInvalidRange
	}
	return start, end, nil
}
