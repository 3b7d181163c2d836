package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func testConfig() *Config {
	return &Config{
		Port:            0,
		RateLimit:       rate.Inf,
		RateLimitBurst:  1,
		MaxRequestBytes: 1024,
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		IdleTimeout:     time.Second,
		ShutdownTimeout: time.Second,
	}
}

func echo(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		WriteError(w, r, http.StatusRequestEntityTooLarge, "INVALID_REQUEST", err.Error(), false, nil)
		return
	}
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(body)
}

func TestDefaultConfig_EnvOverrides(t *testing.T) {
	t.Setenv(EnvPort, "9090")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvRateLimit, "2.5")
	t.Setenv(EnvRateLimitBurst, "5")
	t.Setenv(EnvCatalog, "/etc/advisor/catalog.yaml")

	cfg := DefaultConfig()
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, rate.Limit(2.5), cfg.RateLimit)
	assert.Equal(t, 5, cfg.RateLimitBurst)
	assert.Equal(t, "/etc/advisor/catalog.yaml", cfg.CatalogSource)
}

func TestDefaultConfig_InvalidEnvKeepsDefaults(t *testing.T) {
	t.Setenv(EnvPort, "eighty")
	t.Setenv(EnvRateLimit, "-1")
	t.Setenv(EnvRateLimitBurst, "0")
	t.Setenv(EnvCatalog, "")

	cfg := DefaultConfig()
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, rate.Limit(100), cfg.RateLimit)
	assert.Equal(t, 200, cfg.RateLimitBurst)
	assert.Empty(t, cfg.CatalogSource)
}

func TestServer_SystemRoutes(t *testing.T) {
	s := New(WithName("advisord-test"), WithVersion("1.2.3"), WithConfig(testConfig()),
		WithHandler(map[string]http.HandlerFunc{"/v1/echo": echo}))
	h := s.Handler()

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "healthy", resp.Status)
	})

	t.Run("health rejects post", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/health", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("ready follows SetReady", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		s.SetReady(true)
		t.Cleanup(func() { s.SetReady(false) })

		w = httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("root lists routes", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Name    string   `json:"name"`
			Version string   `json:"version"`
			Routes  []string `json:"routes"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "advisord-test", resp.Name)
		assert.Equal(t, "1.2.3", resp.Version)
		assert.Equal(t, []string{"/v1/echo", "/health", "/ready", "/metrics"}, resp.Routes)
	})

	t.Run("unknown route", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v2/nothing", nil))
		require.Equal(t, http.StatusNotFound, w.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "NOT_FOUND", resp.Code)
		assert.NotEmpty(t, resp.RequestID)
	})

	t.Run("metrics", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/echo", strings.NewReader("x")))
		require.Equal(t, http.StatusCreated, w.Code)

		w = httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "advisor_http_requests_total")
	})
}

func TestMiddleware_RequestID(t *testing.T) {
	s := New(WithConfig(testConfig()), WithHandler(map[string]http.HandlerFunc{
		"/v1/id": func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, RequestID(r.Context()))
		},
	}))
	h := s.Handler()

	const given = "5d0c3f4e-8a7b-4c1d-9e2f-0a1b2c3d4e5f"
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/id", nil)
	r.Header.Set(HeaderRequestID, given)
	h.ServeHTTP(w, r)
	assert.Equal(t, given, w.Body.String())
	assert.Equal(t, given, w.Header().Get(HeaderRequestID))

	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodGet, "/v1/id", nil)
	r.Header.Set(HeaderRequestID, "not-a-uuid")
	h.ServeHTTP(w, r)
	assert.NotEqual(t, "not-a-uuid", w.Body.String())
	assert.Len(t, w.Body.String(), 36)
}

func TestMiddleware_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = rate.Every(time.Hour)
	cfg.RateLimitBurst = 1

	s := New(WithConfig(cfg), WithHandler(map[string]http.HandlerFunc{"/v1/echo": echo}))
	h := s.Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/echo", strings.NewReader("a")))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/echo", strings.NewReader("b")))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", resp.Code)
	assert.True(t, resp.Retryable)

	// system routes are not limited
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMiddleware_BodyLimit(t *testing.T) {
	cfg := testConfig()
	cfg.MaxRequestBytes = 4
	s := New(WithConfig(cfg), WithHandler(map[string]http.HandlerFunc{"/v1/echo": echo}))

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/echo", strings.NewReader("too long")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestMiddleware_Recover(t *testing.T) {
	s := New(WithConfig(testConfig()), WithHandler(map[string]http.HandlerFunc{
		"/v1/panic": func(http.ResponseWriter, *http.Request) { panic("boom") },
	}))

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/panic", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INTERNAL", resp.Code)
}

func TestNegotiateAPIVersion(t *testing.T) {
	tests := []struct {
		name   string
		accept string
		want   string
	}{
		{"empty accept defaults", "", DefaultAPIVersion},
		{"non-vendor accept defaults", "application/json", DefaultAPIVersion},
		{"vendor v1", "application/vnd.computeadvisor.v1+json", "v1"},
		{"vendor v2 unsupported defaults", "application/vnd.computeadvisor.v2+json", DefaultAPIVersion},
		{"vendor malformed defaults", "application/vnd.computeadvisor.vBAD+json", DefaultAPIVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			if got := negotiateAPIVersion(req); got != tt.want {
				t.Fatalf("negotiateAPIVersion(Accept=%q) = %q, want %q", tt.accept, got, tt.want)
			}
		})
	}
}

func TestIsValidAPIVersion(t *testing.T) {
	assert.True(t, isValidAPIVersion("v1"))
	for _, v := range []string{"v2", "", "nope"} {
		assert.False(t, isValidAPIVersion(v), v)
	}
}
