package advisor

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	adverrors "github.com/computeadvisor/advisor/pkg/errors"
	"github.com/computeadvisor/advisor/pkg/header"
	"github.com/computeadvisor/advisor/pkg/server"
)

func TestHandlers_MethodNotAllowed(t *testing.T) {
	a := newAdvisor(t)

	tests := []struct {
		route   string
		handler http.HandlerFunc
		method  string
		allow   string
	}{
		{RouteRecommendations, a.HandleRecommendations, http.MethodGet, http.MethodPost},
		{RouteDetections, a.HandleDetections, http.MethodPut, http.MethodPost},
		{RoutePlatforms, a.HandlePlatforms, http.MethodPost, http.MethodGet},
	}

	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.handler(w, httptest.NewRequest(tt.method, tt.route, nil))

			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
			assert.Equal(t, tt.allow, w.Header().Get("Allow"))
		})
	}
}

func TestHandleRecommendations(t *testing.T) {
	a := newAdvisor(t)
	body := `{
		"input": {"workloadType": "simple AI projects", "technicalExpertise": "beginner", "budget": "low"},
		"metrics": {"latency": 150}
	}`

	w := httptest.NewRecorder()
	a.HandleRecommendations(w, httptest.NewRequest(http.MethodPost, RouteRecommendations, strings.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var report Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, header.KindReport, report.Kind)
	require.Len(t, report.Plan.RecommendedPlatforms, 2)
	assert.Equal(t, "netmindAI", report.Plan.RecommendedPlatforms[0].Platform)
	require.Len(t, report.Findings, 1)
	assert.Equal(t, "highLatency", report.Findings[0].Pattern)
}

func TestHandleRecommendations_YAML(t *testing.T) {
	a := newAdvisor(t)
	r := httptest.NewRequest(http.MethodPost, RouteRecommendations,
		strings.NewReader(`{"input": {"description": "heavy training job", "budget": 250}}`))
	r.Header.Set("Accept", "application/yaml")

	w := httptest.NewRecorder()
	a.HandleRecommendations(w, r)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/yaml", w.Header().Get("Content-Type"))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, header.KindReport, doc["kind"])
	assert.Contains(t, doc, "plan")
}

func TestHandleRecommendations_BadRequests(t *testing.T) {
	a := newAdvisor(t)

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"missing input", `{}`},
		{"null input", `{"input": null}`},
		{"malformed json", `{"input": `},
		{"unknown field", `{"input": {}, "colour": "blue"}`},
		{"unknown input field", `{"input": {"gpuCount": 4}}`},
		{"trailing document", `{"input": {}} {"input": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			a.HandleRecommendations(w, httptest.NewRequest(http.MethodPost, RouteRecommendations, strings.NewReader(tt.body)))
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

			var resp server.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "INVALID_REQUEST", resp.Code)
			assert.False(t, resp.Retryable)
		})
	}
}

func TestHandleDetections(t *testing.T) {
	a := newAdvisor(t)

	t.Run("all categories", func(t *testing.T) {
		body := `{"metrics": {"latency": 150, "monthlyCost": 900, "budget": 500}, "platforms": ["render"]}`
		w := httptest.NewRecorder()
		a.HandleDetections(w, httptest.NewRequest(http.MethodPost, RouteDetections, strings.NewReader(body)))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var report DetectionReport
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
		assert.Equal(t, header.KindDetections, report.Kind)
		require.Len(t, report.Findings, 2)
		assert.Equal(t, "Upgrade to premium tier", report.Findings[0].Remediation("render"))
		assert.Equal(t, "Use scheduled scaling", report.Findings[1].Remediation("render"))
	})

	t.Run("single category without match", func(t *testing.T) {
		body := `{"metrics": {"latency": 50}, "category": "performance"}`
		w := httptest.NewRecorder()
		a.HandleDetections(w, httptest.NewRequest(http.MethodPost, RouteDetections, strings.NewReader(body)))
		require.Equal(t, http.StatusOK, w.Code)

		var report DetectionReport
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
		assert.NotNil(t, report.Findings)
		assert.Empty(t, report.Findings)
	})

	t.Run("unknown category", func(t *testing.T) {
		body := `{"metrics": {"latency": 150}, "category": "storage"}`
		w := httptest.NewRecorder()
		a.HandleDetections(w, httptest.NewRequest(http.MethodPost, RouteDetections, strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no metrics", func(t *testing.T) {
		w := httptest.NewRecorder()
		a.HandleDetections(w, httptest.NewRequest(http.MethodPost, RouteDetections, strings.NewReader(`{"metrics": {}}`)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandlePlatforms(t *testing.T) {
	a := newAdvisor(t)

	w := httptest.NewRecorder()
	a.HandlePlatforms(w, httptest.NewRequest(http.MethodGet, RoutePlatforms, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Cache-Control"), "max-age=300")

	var list PlatformList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, header.KindCatalog, list.Kind)
	assert.Equal(t, "v1", list.CatalogVersion)
	require.Len(t, list.Platforms, 2)
	assert.Equal(t, "netmindAI", list.Platforms[0].Key)
}

func TestHandlers_ThroughServer(t *testing.T) {
	a := newAdvisor(t)
	s := server.New(server.WithConfig(&server.Config{RateLimit: 1000, RateLimitBurst: 10, MaxRequestBytes: 64}),
		server.WithHandler(a.Handlers()))
	h := s.Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, RoutePlatforms, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(server.HeaderRequestID))

	big := `{"input": {"description": "` + strings.Repeat("x", 128) + `"}}`
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, RouteRecommendations, strings.NewReader(big)))
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	var resp server.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(adverrors.ErrCodePayloadTooLarge), resp.Code)
	assert.Equal(t, "request body too large", resp.Message)
	assert.InDelta(t, 64, resp.Details["limitBytes"], 0)
	assert.False(t, resp.Retryable)
	assert.Equal(t, w.Header().Get(server.HeaderRequestID), resp.RequestID)
}
