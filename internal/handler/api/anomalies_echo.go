package api

import (
	"errors"
	"time"

	"github.com/alokrrr/Ecom-Analytics/internal/anomaly"
	models "github.com/alokrrr/Ecom-Analytics/internal/domain/models"
	domrepo "github.com/alokrrr/Ecom-Analytics/internal/domain/repository"
	"github.com/alokrrr/Ecom-Analytics/internal/service/metrics"
	"github.com/alokrrr/Ecom-Analytics/internal/usecase"
	xhttp "github.com/alokrrr/Ecom-Analytics/pkg/http"
	xlogger "github.com/alokrrr/Ecom-Analytics/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnomalyEchoHandler serves the revenue anomaly endpoints.
type AnomalyEchoHandler struct {
	logger   *xlogger.Logger
	reporter *usecase.AnomalyReporter
	store    domrepo.OrderStore
}

func NewAnomalyEchoHandler(logger *xlogger.Logger, reporter *usecase.AnomalyReporter, store domrepo.OrderStore) *AnomalyEchoHandler {
	metrics.Register()
	return &AnomalyEchoHandler{logger: logger, reporter: reporter, store: store}
}

func (h *AnomalyEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/kpi/anomalies")
	g.GET("/health", h.Health)
	g.GET("/detect", h.Detect)
}

func (h *AnomalyEchoHandler) Health(c echo.Context) error {
	status := "ok"
	storage := true
	if err := h.store.Health(c.Request().Context()); err != nil {
		h.logger.Warn("anomaly health storage_down", xlogger.Error(err))
		status = "degraded"
		storage = false
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"status":  status,
		"service": "anomalies",
		"storage": storage,
		"methods": []string{anomaly.MethodZScore, anomaly.MethodIQR},
	})
}

func (h *AnomalyEchoHandler) Detect(c echo.Context) error {
	start := time.Now()
	defer func() { metrics.KPILatency.WithLabelValues("anomalies_detect").Observe(time.Since(start).Seconds()) }()

	req := &models.DetectRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.reporter.Detect(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, anomaly.ErrInvalidRange) || errors.Is(err, anomaly.ErrInvalidConfig) {
			return xhttp.BadRequestResponse(c, err.Error())
		}
		metrics.KPIErrors.WithLabelValues("anomalies_detect").Inc()
		h.logger.Error("anomaly detect error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}
