package api

import (
	"net/http"
	"time"

	"github.com/alokrrr/Ecom-Analytics/internal/usecase"
	xlogger "github.com/alokrrr/Ecom-Analytics/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// LiveEchoHandler streams ingest pipeline stats over a websocket so the
// dashboard can show order flow without polling.
type LiveEchoHandler struct {
	logger   *xlogger.Logger
	ingestor *usecase.OrderIngestor
	upgrader websocket.Upgrader
	interval time.Duration
}

type ingestStats struct {
	Ingested    int64  `json:"ingested"`
	LastOrderAt string `json:"last_order_at,omitempty"`
}

func NewLiveEchoHandler(logger *xlogger.Logger, ingestor *usecase.OrderIngestor) *LiveEchoHandler {
	return &LiveEchoHandler{
		logger:   logger,
		ingestor: ingestor,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		interval: 2 * time.Second,
	}
}

func (h *LiveEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/ingest", h.Ingest)
}

func (h *LiveEchoHandler) Ingest(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Reader goroutine only exists to notice the peer going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return nil
		case <-c.Request().Context().Done():
			return nil
		case <-ticker.C:
			stats := ingestStats{Ingested: h.ingestor.Ingested()}
			if at := h.ingestor.LastOrderAt(); !at.IsZero() {
				stats.LastOrderAt = at.Format(time.RFC3339)
			}
			_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteJSON(stats); err != nil {
				h.logger.Debug("ws ingest write_error", xlogger.Error(err))
				return nil
			}
		}
	}
}
