package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func setupRouter(db Pinger) *gin.Engine {
	h := NewHealthHandler(db)
	r := gin.New()
	r.GET("/healthz", h.Health)
	r.HEAD("/healthz", h.Health)
	r.OPTIONS("/healthz", h.Health)
	return r
}

func TestHealth_GET(t *testing.T) {
	t.Parallel()

	pinged := false
	router := setupRouter(pingerFunc(func(ctx context.Context) error {
		pinged = true
		return nil
	}))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if !pinged {
		t.Error("expected the database to be pinged")
	}

	// Check response body
	var response map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", response["status"])
	}

	// Check Cache-Control header
	if w.Header().Get("Cache-Control") != "no-store" {
		t.Errorf("expected Cache-Control 'no-store', got %q", w.Header().Get("Cache-Control"))
	}
}

func TestHealth_GET_DatabaseDown(t *testing.T) {
	t.Parallel()

	router := setupRouter(pingerFunc(func(ctx context.Context) error {
		return errors.New("connection refused")
	}))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	router.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, w.Code)
	}
	var response map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response["database"] != "down" {
		t.Errorf("expected database 'down', got %q", response["database"])
	}
}

func TestHealth_GET_NoDatabase(t *testing.T) {
	t.Parallel()

	router := setupRouter(nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestHealth_HEAD_And_OPTIONS(t *testing.T) {
	t.Parallel()

	// HEAD and OPTIONS must not depend on the database.
	router := setupRouter(pingerFunc(func(ctx context.Context) error {
		t.Error("database must not be pinged")
		return nil
	}))

	tests := []struct {
		method string
		want   int
	}{
		{http.MethodHead, http.StatusOK},
		{http.MethodOptions, http.StatusNoContent},
	}
	for _, tt := range tests {
		tt := tt
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(tt.method, "/healthz", nil))

		if w.Code != tt.want {
			t.Errorf("%s: expected status %d, got %d", tt.method, tt.want, w.Code)
		}
		if w.Body.Len() != 0 {
			t.Errorf("%s: expected empty body, got %q", tt.method, w.Body.String())
		}
		if w.Header().Get("Cache-Control") != "no-store" {
			t.Errorf("%s: expected Cache-Control 'no-store'", tt.method)
		}
	}
}
