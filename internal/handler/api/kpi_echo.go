package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	models "github.com/alokrrr/Ecom-Analytics/internal/domain/models"
	icache "github.com/alokrrr/Ecom-Analytics/internal/service/cache"
	"github.com/alokrrr/Ecom-Analytics/internal/service/metrics"
	"github.com/alokrrr/Ecom-Analytics/internal/usecase"
	xhttp "github.com/alokrrr/Ecom-Analytics/pkg/http"
	xlogger "github.com/alokrrr/Ecom-Analytics/pkg/logger"

	"github.com/labstack/echo/v4"
)

// KPIEchoHandler serves the dashboard reporting endpoints. Responses
// are cached as serialized payloads keyed by endpoint and parameters,
// so repeated dashboard refreshes do not hammer ClickHouse.
type KPIEchoHandler struct {
	logger *xlogger.Logger
	svc    *usecase.KPIService
	cache  icache.BytesCache
	ttl    time.Duration
}

func NewKPIEchoHandler(logger *xlogger.Logger, svc *usecase.KPIService) *KPIEchoHandler {
	metrics.Register()
	return &KPIEchoHandler{logger: logger, svc: svc, ttl: 60 * time.Second}
}

func (h *KPIEchoHandler) SetCache(c icache.BytesCache, ttl time.Duration) {
	h.cache = c
	if ttl > 0 {
		h.ttl = ttl
	}
}

func (h *KPIEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Root)
	g := e.Group("/kpi")
	g.GET("/overview", h.Overview)
	g.GET("/categories", h.Categories)
	g.GET("/revenue-trend", h.RevenueTrend)
	g.GET("/top-products", h.TopProducts)
	g.GET("/products-list", h.ProductsList)
	g.GET("/recommendations", h.Recommendations)
}

func (h *KPIEchoHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "running"})
}

func (h *KPIEchoHandler) Overview(c echo.Context) error {
	return h.respond(c, "overview", "overview", func(ctx context.Context) (interface{}, error) {
		return h.svc.Overview(ctx)
	})
}

func (h *KPIEchoHandler) Categories(c echo.Context) error {
	return h.respond(c, "categories", "categories", func(ctx context.Context) (interface{}, error) {
		return h.svc.Categories(ctx)
	})
}

func (h *KPIEchoHandler) RevenueTrend(c echo.Context) error {
	req := &models.TrendRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	key := "trend:" + strconv.Itoa(req.Months)
	return h.respond(c, "revenue_trend", key, func(ctx context.Context) (interface{}, error) {
		return h.svc.RevenueTrend(ctx, req.Months)
	})
}

func (h *KPIEchoHandler) TopProducts(c echo.Context) error {
	req := &models.TopProductsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	key := "top:" + strconv.Itoa(req.Limit)
	return h.respond(c, "top_products", key, func(ctx context.Context) (interface{}, error) {
		return h.svc.TopProducts(ctx, req.Limit)
	})
}

func (h *KPIEchoHandler) ProductsList(c echo.Context) error {
	req := &models.ProductsListRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	key := "products:" + strconv.Itoa(req.Limit)
	return h.respond(c, "products_list", key, func(ctx context.Context) (interface{}, error) {
		return h.svc.ProductsList(ctx, req.Limit)
	})
}

func (h *KPIEchoHandler) Recommendations(c echo.Context) error {
	req := &models.RecommendationsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	key := "recs:" + strconv.FormatInt(req.ProductID, 10) + ":" + strconv.Itoa(req.Limit)
	return h.respond(c, "recommendations", key, func(ctx context.Context) (interface{}, error) {
		return h.svc.Recommendations(ctx, req.ProductID, req.Limit)
	})
}

// respond runs fetch through the response cache and writes the result.
// The cache stores the marshalled payload so a hit skips both the
// query and re-serialization.
func (h *KPIEchoHandler) respond(c echo.Context, endpoint, key string, fetch func(ctx context.Context) (interface{}, error)) error {
	start := time.Now()
	defer func() { metrics.KPILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	if h.cache != nil {
		if b, ok, err := h.cache.GetBytes(key); err != nil {
			h.logger.Warn("kpi cache_get_error", xlogger.String("endpoint", endpoint), xlogger.Error(err))
		} else if ok {
			metrics.CacheHits.WithLabelValues(endpoint).Inc()
			return xhttp.SuccessResponse(c, json.RawMessage(b))
		}
	}

	res, err := fetch(c.Request().Context())
	if err != nil {
		metrics.KPIErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("kpi usecase error", xlogger.String("endpoint", endpoint), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	if h.cache != nil {
		if b, err := json.Marshal(res); err == nil {
			if err := h.cache.SetBytes(key, b, h.ttl); err != nil {
				h.logger.Warn("kpi cache_set_error", xlogger.String("endpoint", endpoint), xlogger.Error(err))
			}
		}
	}
	return xhttp.SuccessResponse(c, res)
}
