// Package anomaly implements rolling-window anomaly detection over a
// daily revenue series. The package is pure: no storage, no transport,
// no shared state. Callers fetch the raw observations, run Normalize
// and Detect, and serialize the result.
package anomaly

import (
	"errors"

	"github.com/alokrrr/Ecom-Analytics/internal/domain/models"
)

// ErrInvalidRange is returned when the requested range is reversed.
var ErrInvalidRange = errors.New("invalid range: start_date after end_date")

// Normalize turns sparse (day, revenue) observations into a complete
// daily series over [start, end] inclusive: strictly ascending,
// contiguous, one entry per day, zero revenue for days absent from the
// input. Result length is always end-start+1 days.
func Normalize(obs []models.RevenueObservation, start, end models.Date) (models.DailySeries, error) {
	if start.After(end) {
		return nil, ErrInvalidRange
	}

	byDay := make(map[string]float64, len(obs))
	for _, o := range obs {
		byDay[o.Day.String()] = o.Revenue
	}

	n := start.DaysUntil(end) + 1
	series := make(models.DailySeries, 0, n)
	for d := start; !d.After(end); d = d.AddDays(1) {
		series = append(series, models.RevenueObservation{
			Day:     d,
			Revenue: byDay[d.String()],
		})
	}
	return series, nil
}
