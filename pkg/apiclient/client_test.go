package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/crypto-monitor/pkg/apiclient"
	"github.com/JaimeStill/crypto-monitor/pkg/middleware"
)

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newClient(t *testing.T, base string, mutate ...func(*apiclient.Config)) *apiclient.Client {
	t.Helper()

	cfg := &apiclient.Config{BaseURL: base}
	for _, m := range mutate {
		m(cfg)
	}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	return apiclient.New(cfg, discard())
}

func TestConfig_Finalize_Defaults(t *testing.T) {
	cfg := &apiclient.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.BaseURL != apiclient.DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, apiclient.DefaultBaseURL)
	}
	if cfg.TimeoutDuration() != 15*time.Second {
		t.Errorf("TimeoutDuration() = %v, want 15s", cfg.TimeoutDuration())
	}
	if cfg.MaxResponseSizeBytes() != 4_000_000 {
		t.Errorf("MaxResponseSizeBytes() = %d, want 4000000", cfg.MaxResponseSizeBytes())
	}
}

func TestConfig_Finalize_EnvOverrides(t *testing.T) {
	t.Setenv("TEST_BACKEND_BASE_URL", "http://127.0.0.1:5000/")
	t.Setenv("TEST_BACKEND_TIMEOUT", "3s")

	cfg := &apiclient.Config{}
	env := &apiclient.Env{
		BaseURL: "TEST_BACKEND_BASE_URL",
		Timeout: "TEST_BACKEND_TIMEOUT",
	}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.BaseURL != "http://127.0.0.1:5000" {
		t.Errorf("BaseURL = %q, want trailing slash trimmed", cfg.BaseURL)
	}
	if cfg.TimeoutDuration() != 3*time.Second {
		t.Errorf("TimeoutDuration() = %v, want 3s", cfg.TimeoutDuration())
	}
}

func TestConfig_Finalize_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  apiclient.Config
	}{
		{"relative base", apiclient.Config{BaseURL: "/api"}},
		{"bad scheme", apiclient.Config{BaseURL: "ftp://example.com"}},
		{"query in base", apiclient.Config{BaseURL: "https://example.com?x=1"}},
		{"bad timeout", apiclient.Config{Timeout: "soon"}},
		{"negative timeout", apiclient.Config{Timeout: "-1s"}},
		{"bad size", apiclient.Config{MaxResponseSize: "lots"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(nil); err == nil {
				t.Error("Finalize() should fail")
			}
		})
	}
}

func TestConfig_Merge(t *testing.T) {
	base := &apiclient.Config{BaseURL: apiclient.DefaultBaseURL, Timeout: "15s"}
	base.Merge(&apiclient.Config{BaseURL: "http://127.0.0.1:5000"})

	if base.BaseURL != "http://127.0.0.1:5000" {
		t.Errorf("BaseURL = %q", base.BaseURL)
	}
	if base.Timeout != "15s" {
		t.Errorf("Timeout = %q, want unchanged", base.Timeout)
	}
}

func TestClient_BaseURL(t *testing.T) {
	c := newClient(t, "https://crypto-backend-2.onrender.com")

	if got := c.BaseURL(); got != "https://crypto-backend-2.onrender.com" {
		t.Errorf("BaseURL() = %q", got)
	}
}

func TestClient_URL(t *testing.T) {
	tests := []struct {
		name string
		base string
		path string
		want string
	}{
		{"plain", "https://b.example", "api/data", "https://b.example/api/data"},
		{"leading slash", "https://b.example", "/api/data", "https://b.example/api/data"},
		{"base trailing slash", "https://b.example/", "/api/data", "https://b.example/api/data"},
		{"base with path", "https://b.example/v2/", "//api/data", "https://b.example/v2/api/data"},
		{"empty path", "https://b.example/", "", "https://b.example"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, tt.base)
			if got := c.URL(tt.path); got != tt.want {
				t.Errorf("URL(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestClient_Get(t *testing.T) {
	var gotPath, gotQuery, gotRequestID, gotAgent string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotRequestID = r.Header.Get(middleware.RequestIDHeader)
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"ok","data":[{"symbol":"BTCUSDT"}]}`))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL+"/")
	ctx := middleware.WithRequestID(context.Background(), "req-1")

	var out struct {
		Message string `json:"message"`
		Data    []struct {
			Symbol string `json:"symbol"`
		} `json:"data"`
	}

	if err := c.Get(ctx, "/api/data", url.Values{"limit": {"5"}}, &out); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if gotPath != "/api/data" {
		t.Errorf("path = %q, want %q", gotPath, "/api/data")
	}
	if gotQuery != "limit=5" {
		t.Errorf("query = %q, want %q", gotQuery, "limit=5")
	}
	if gotRequestID != "req-1" {
		t.Errorf("X-Request-ID = %q, want %q", gotRequestID, "req-1")
	}
	if gotAgent != "crypto-monitor" {
		t.Errorf("User-Agent = %q", gotAgent)
	}
	if out.Message != "ok" || len(out.Data) != 1 || out.Data[0].Symbol != "BTCUSDT" {
		t.Errorf("decoded = %+v", out)
	}
}

func TestClient_Post(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var in map[string]string
		json.NewDecoder(r.Body).Decode(&in)
		json.NewEncoder(w).Encode(map[string]string{"echo": in["symbol"]})
	}))
	defer srv.Close()

	c := newClient(t, srv.URL)

	var out map[string]string
	if err := c.Post(context.Background(), "echo", map[string]string{"symbol": "ETHUSDT"}, &out); err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if out["echo"] != "ETHUSDT" {
		t.Errorf("echo = %q", out["echo"])
	}
}

func TestClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"failed","error":"boom","data":[]}`))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL)
	err := c.Get(context.Background(), "/api/open_interest", nil, nil)

	var se *apiclient.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if se.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d", se.StatusCode)
	}
	if se.URL != srv.URL+"/api/open_interest" {
		t.Errorf("URL = %q", se.URL)
	}
	if !apiclient.IsStatus(err, http.StatusInternalServerError) {
		t.Error("IsStatus() = false")
	}
}

func TestClient_ResponseTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":"`+strings.Repeat("x", 2048)+`"}`)
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, func(cfg *apiclient.Config) {
		cfg.MaxResponseSize = "1KB"
	})

	err := c.Get(context.Background(), "/api/data", nil, &map[string]any{})
	if !errors.Is(err, apiclient.ErrResponseTooLarge) {
		t.Errorf("error = %v, want ErrResponseTooLarge", err)
	}
}

func TestClient_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Hello from Render!"))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL)

	var out map[string]any
	if err := c.Get(context.Background(), "/", nil, &out); err == nil {
		t.Error("Get() should fail on a non-JSON body")
	}
}

func TestClient_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := newClient(t, srv.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := c.Get(ctx, "/api/data", nil, nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want context.DeadlineExceeded", err)
	}
}

func TestClient_Concurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"path":"` + r.URL.Path + `"}`))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL)
	paths := []string{"/api/data", "/api/open_interest", "/api/price_change"}

	errs := make(chan error, len(paths))
	for _, p := range paths {
		go func() {
			var out struct {
				Path string `json:"path"`
			}
			if err := c.Get(context.Background(), p, nil, &out); err != nil {
				errs <- err
				return
			}
			if out.Path != p {
				errs <- errors.New("response for " + p + " was " + out.Path)
				return
			}
			errs <- nil
		}()
	}

	for range paths {
		if err := <-errs; err != nil {
			t.Error(err)
		}
	}
}
