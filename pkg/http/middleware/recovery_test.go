package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	applogger "github.com/alokrrr/Ecom-Analytics/pkg/logger"

	"github.com/labstack/echo/v4"
)

func TestRecoverTurnsPanicInto500(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "app.log")
	l, err := applogger.New(&applogger.Config{Level: "info", Format: "json", Output: logPath})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	e := echo.New()
	e.Use(Recover(l))
	e.GET("/boom", func(echo.Context) error { panic("kaboom") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), "handler panic") || !strings.Contains(string(b), "kaboom") {
		t.Fatalf("panic not logged: %s", b)
	}
}

func TestRecoverWithoutLogger(t *testing.T) {
	e := echo.New()
	e.Use(Recover(nil))
	e.GET("/boom", func(echo.Context) error { panic("kaboom") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
