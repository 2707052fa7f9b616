package middleware

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/andrevlins/pedidoflow/internal/domain/errors"
	"github.com/andrevlins/pedidoflow/internal/domain/model"
	pkgAuth "github.com/andrevlins/pedidoflow/internal/pkg/auth"
	testhelpers "github.com/andrevlins/pedidoflow/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var _ UserResolver = testhelpers.AuthFacadeStub{}

func performRequest(t *testing.T, handler gin.HandlerFunc, prepare func(*http.Request)) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	var captured *gin.Context
	router := gin.New()
	router.POST("/", handler, func(c *gin.Context) {
		captured = c
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if prepare != nil {
		prepare(req)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w, captured
}

func TestAuthRequiredNoToken(t *testing.T) {
	resp, _ := performRequest(t, AuthRequired(testhelpers.AuthFacadeStub{}), nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestAuthRequiredInvalidToken(t *testing.T) {
	resolver := testhelpers.AuthFacadeStub{CurrentUserFn: func(context.Context, string) (*model.User, error) {
		return nil, pkgAuth.ErrInvalidToken
	}}
	resp, _ := performRequest(t, AuthRequired(resolver), func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer bad-token")
	})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestAuthRequiredDeletedUser(t *testing.T) {
	resolver := testhelpers.AuthFacadeStub{CurrentUserFn: func(context.Context, string) (*model.User, error) {
		return nil, domainErrors.ErrNotFound
	}}
	resp, _ := performRequest(t, AuthRequired(resolver), func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "pedidoflow_token", Value: "stale"})
	})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestAuthRequiredResolverError(t *testing.T) {
	resolver := testhelpers.AuthFacadeStub{CurrentUserFn: func(context.Context, string) (*model.User, error) {
		return nil, errors.New("storage down")
	}}
	resp, _ := performRequest(t, AuthRequired(resolver), func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer token")
	})
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
}

func TestAuthRequiredStoresUser(t *testing.T) {
	resolver := testhelpers.AuthFacadeStub{CurrentUserFn: func(_ context.Context, token string) (*model.User, error) {
		if token != "good-token" {
			t.Fatalf("unexpected token %q", token)
		}
		return &model.User{ID: 7, Login: "maria", Name: "Maria Silva", Role: model.RoleFinancial}, nil
	}}
	resp, captured := performRequest(t, AuthRequired(resolver), func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer good-token")
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	value, ok := captured.Get(UserContextKey)
	if !ok {
		t.Fatal("expected user in context")
	}
	user, ok := value.(*model.User)
	if !ok || user.ID != 7 || user.Role != model.RoleFinancial {
		t.Fatalf("unexpected context value %#v", value)
	}
}

func TestAuthRequiredCookieFallback(t *testing.T) {
	var gotToken string
	resolver := testhelpers.AuthFacadeStub{CurrentUserFn: func(_ context.Context, token string) (*model.User, error) {
		gotToken = token
		return &model.User{ID: 1, Role: model.RoleSeller}, nil
	}}
	resp, _ := performRequest(t, AuthRequired(resolver), func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "pedidoflow_token", Value: "cookie-token"})
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotToken != "cookie-token" {
		t.Fatalf("expected cookie token, got %q", gotToken)
	}
}

func TestSetAuthCookie(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	SetAuthCookie(c, "fresh-token")

	if got := w.Header().Get("Authorization"); got != "Bearer fresh-token" {
		t.Fatalf("unexpected auth header %q", got)
	}

	result := w.Result()
	t.Cleanup(func() { _ = result.Body.Close() })
	found := false
	for _, cookie := range result.Cookies() {
		if cookie.Name == "pedidoflow_token" && cookie.Value == "fresh-token" && cookie.HttpOnly {
			found = true
		}
	}
	if !found {
		t.Fatal("expected http-only auth cookie")
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	resp, _ := performRequest(t, RequestLogger(logger), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	out := buf.String()
	for _, want := range []string{"http request", "method=POST", "path=/", "status=200"} {
		if !bytes.Contains([]byte(out), []byte(want)) {
			t.Fatalf("log output missing %q: %s", want, out)
		}
	}
}

func TestDecompressRequest(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(`{"client_name":"Cliente"}`)); err != nil {
		t.Fatalf("write gzip: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}

	var decoded []byte
	router := gin.New()
	router.POST("/", DecompressRequest(), func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		decoded = body
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Encoding", "gzip")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if string(decoded) != `{"client_name":"Cliente"}` {
		t.Fatalf("unexpected body %q", decoded)
	}
}

func TestDecompressRequestPassthrough(t *testing.T) {
	resp, _ := performRequest(t, DecompressRequest(), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestDecompressRequestBadBody(t *testing.T) {
	router := gin.New()
	router.POST("/", DecompressRequest(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("not gzip"))
	req.Header.Set("Content-Encoding", "gzip")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}
