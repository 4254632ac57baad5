package repository

import (
	"context"

	"github.com/alokrrr/Ecom-Analytics/internal/domain/models"
)

// RevenueSource fetches raw daily revenue observations for a date
// range, both endpoints inclusive. Days without completed orders are
// absent from the result; gap filling is the detection core's job.
type RevenueSource interface {
	DailyRevenue(ctx context.Context, from, to models.Date) ([]models.RevenueObservation, error)
}

// KPIStore provides the reporting queries behind the /kpi endpoints.
type KPIStore interface {
	Overview(ctx context.Context) (models.Overview, error)
	Categories(ctx context.Context) ([]string, error)
	RevenueTrend(ctx context.Context, months int) ([]models.TrendPoint, error)
	TopProducts(ctx context.Context, limit int) ([]models.TopProduct, error)
	ProductsList(ctx context.Context, limit int) ([]models.ProductRef, error)
	Recommendations(ctx context.Context, productID int64, limit int) ([]models.Recommendation, error)
}

// OrderStore lands ingested order events in the analytics schema.
type OrderStore interface {
	Init(ctx context.Context) error
	StoreBatch(ctx context.Context, orders []*models.OrderEvent) error
	Health(ctx context.Context) error
}

// Metrics records operational counters for the ingest pipeline.
type Metrics interface {
	RecordOrderIngested(status string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
