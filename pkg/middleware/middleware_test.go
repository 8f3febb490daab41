package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/crypto-monitor/pkg/middleware"
)

func TestSystem_ApplyOrder(t *testing.T) {
	var order []string

	mw := middleware.New()
	for _, name := range []string{"first", "second"} {
		mw.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		})
	}

	handler := mw.Apply(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	want := []string{"first", "second", "handler"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestTrimSlash(t *testing.T) {
	handler := middleware.TrimSlash()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.URL.Path))
	}))

	tests := []struct {
		name         string
		path         string
		wantStatus   int
		wantLocation string
	}{
		{"root preserved", "/", http.StatusOK, ""},
		{"no slash", "/ema-alerts", http.StatusOK, ""},
		{"trailing slash", "/ema-alerts/", http.StatusMovedPermanently, "/ema-alerts"},
		{"query kept", "/price-change/?q=btc", http.StatusMovedPermanently, "/price-change?q=btc"},
		{"repeated slashes", "/open-interest//", http.StatusMovedPermanently, "/open-interest"},
		{"encoded backslash host", "/%5Cevil.example/", http.StatusMovedPermanently, "/evil.example"},
		{"protocol relative", "//evil.example/", http.StatusMovedPermanently, "/evil.example"},
		{"mixed separators", "/%5C/%5Cevil.example/?q=1", http.StatusMovedPermanently, "/evil.example?q=1"},
		{"only slashes", "///", http.StatusMovedPermanently, "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Location"); got != tt.wantLocation {
				t.Errorf("Location = %q, want %q", got, tt.wantLocation)
			}
		})
	}
}

func TestLogger_LogsRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if buf.Len() > 0 {
			t.Error("log was written before handler completed")
		}
		w.WriteHeader(http.StatusTeapot)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/open-interest?q=eth", nil))

	out := buf.String()
	for _, want := range []string{"msg=request", "method=GET", "/open-interest?q=eth", "status=418", "duration="} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}
}

func TestRequestID_Generates(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.RequestIDFrom(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("context id %q is not a UUID: %v", seen, err)
	}
	if got := w.Header().Get(middleware.RequestIDHeader); got != seen {
		t.Errorf("response header = %q, want %q", got, seen)
	}
}

func TestRequestID_ReusesInbound(t *testing.T) {
	inbound := uuid.NewString()

	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.RequestIDFrom(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, inbound)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen != inbound {
		t.Errorf("request id = %q, want %q", seen, inbound)
	}
}

func TestRequestID_ReplacesMalformed(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.RequestIDFrom(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "<script>")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen == "<script>" {
		t.Error("malformed inbound id was reused")
	}
}

func TestCORS(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		cfg        middleware.CORSConfig
		origin     string
		wantOrigin string
	}{
		{"disabled", middleware.CORSConfig{Origins: []string{"http://localhost:5173"}}, "http://localhost:5173", ""},
		{"no origins", middleware.CORSConfig{Enabled: true}, "http://localhost:5173", ""},
		{"allowed", middleware.CORSConfig{Enabled: true, Origins: []string{"http://localhost:5173"}}, "http://localhost:5173", "http://localhost:5173"},
		{"disallowed", middleware.CORSConfig{Enabled: true, Origins: []string{"http://localhost:5173"}}, "http://evil.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()

			middleware.CORS(&tt.cfg)(ok).ServeHTTP(w, req)

			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
		})
	}
}

func TestCORS_Preflight(t *testing.T) {
	cfg := &middleware.CORSConfig{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	cfg.Enabled = true
	cfg.Origins = []string{"http://localhost:5173"}

	called := false
	handler := middleware.CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if called {
		t.Error("handler should not be called for OPTIONS preflight")
	}
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := w.Header().Get("Access-Control-Max-Age"); got != "3600" {
		t.Errorf("Access-Control-Max-Age = %q, want %q", got, "3600")
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); got != "GET, OPTIONS" {
		t.Errorf("Access-Control-Allow-Methods = %q, want %q", got, "GET, OPTIONS")
	}
}

func TestCORSConfig_EnvOverrides(t *testing.T) {
	t.Setenv("TEST_CORS_ENABLED", "true")
	t.Setenv("TEST_CORS_ORIGINS", "http://localhost:3000, http://localhost:8080")

	cfg := &middleware.CORSConfig{}
	env := &middleware.CORSEnv{
		Enabled: "TEST_CORS_ENABLED",
		Origins: "TEST_CORS_ORIGINS",
	}

	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if !cfg.Enabled {
		t.Error("Enabled should be true from env")
	}
	if len(cfg.Origins) != 2 || cfg.Origins[1] != "http://localhost:8080" {
		t.Errorf("Origins = %v", cfg.Origins)
	}
}
