package usecase

import (
	"context"

	"github.com/alokrrr/Ecom-Analytics/internal/domain/models"
	domrepo "github.com/alokrrr/Ecom-Analytics/internal/domain/repository"
)

// KPIService fronts the reporting store. Response caching lives in the
// HTTP handler; this layer keeps the handler free of SQL concerns.
type KPIService struct {
	store domrepo.KPIStore
}

func NewKPIService(store domrepo.KPIStore) *KPIService {
	return &KPIService{store: store}
}

func (s *KPIService) Overview(ctx context.Context) (models.Overview, error) {
	return s.store.Overview(ctx)
}

func (s *KPIService) Categories(ctx context.Context) ([]string, error) {
	return s.store.Categories(ctx)
}

func (s *KPIService) RevenueTrend(ctx context.Context, months int) ([]models.TrendPoint, error) {
	return s.store.RevenueTrend(ctx, months)
}

func (s *KPIService) TopProducts(ctx context.Context, limit int) ([]models.TopProduct, error) {
	return s.store.TopProducts(ctx, limit)
}

func (s *KPIService) ProductsList(ctx context.Context, limit int) ([]models.ProductRef, error) {
	return s.store.ProductsList(ctx, limit)
}

func (s *KPIService) Recommendations(ctx context.Context, productID int64, limit int) ([]models.Recommendation, error) {
	return s.store.Recommendations(ctx, productID, limit)
}
