package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/andrevlins/pedidoflow/internal/server/http/handlers"
	testhelpers "github.com/andrevlins/pedidoflow/internal/test"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := testhelpers.PipelineFacadeStub{}
	engine := Setup(facade, logger)

	body, _ := json.Marshal(map[string]string{"login": "vendedor", "password": "pass", "name": "Vendedor", "role": "seller"})
	req := httptest.NewRequest(http.MethodPost, "/api/user/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for register, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for orders, got %d", resp.Code)
	}
}

func TestSetupProtectedRoutesRequireToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	engine := Setup(testhelpers.PipelineFacadeStub{}, logger)

	for _, route := range []struct {
		method string
		target string
	}{
		{http.MethodPost, "/api/orders"},
		{http.MethodGet, "/api/orders"},
		{http.MethodGet, "/api/orders/1"},
		{http.MethodPost, "/api/orders/1/transitions"},
	} {
		req := httptest.NewRequest(route.method, route.target, nil)
		resp := httptest.NewRecorder()
		engine.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401 for %s %s, got %d", route.method, route.target, resp.Code)
		}
	}
}

func TestSetupQRRoutesArePublic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	engine := Setup(testhelpers.PipelineFacadeStub{}, logger)
	publicID := uuid.New().String()

	req := httptest.NewRequest(http.MethodGet, "/qr/"+publicID, nil)
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for qr page, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/qr/"+publicID+"/release", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for release, got %d", resp.Code)
	}
}

var _ handlers.PipelineFacade = testhelpers.PipelineFacadeStub{}
