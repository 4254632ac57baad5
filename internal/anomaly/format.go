package anomaly

import (
	"fmt"

	"github.com/alokrrr/Ecom-Analytics/internal/domain/models"
)

// Format maps raw detector hits back to calendar days and revenues and
// assembles the response envelope. Hits arrive in index order, which is
// day order since the series is contiguous.
func Format(series models.DailySeries, raw []Point, cfg Config) models.DetectionResult {
	reason := fmt.Sprintf("%s (window=%d, threshold=%g)", cfg.Method, cfg.Window, cfg.Threshold)

	anomalies := make([]models.AnomalyPoint, 0, len(raw))
	for _, p := range raw {
		obs := series[p.Index]
		anomalies = append(anomalies, models.AnomalyPoint{
			Day:     obs.Day,
			Revenue: obs.Revenue,
			Score:   p.Score,
			Reason:  reason,
		})
	}

	return models.DetectionResult{
		Series:    series,
		Anomalies: anomalies,
		Method:    cfg.Method,
		Window:    cfg.Window,
		Threshold: cfg.Threshold,
	}
}
