package advisor

import (
	"encoding/json"
	"errors"
	"net/http"

	adverrors "github.com/computeadvisor/advisor/pkg/errors"
	"github.com/computeadvisor/advisor/pkg/serializer"
	"github.com/computeadvisor/advisor/pkg/server"
)

// Route patterns served by Handlers.
const (
	RouteRecommendations = "/v1/recommendations"
	RouteDetections      = "/v1/detections"
	RoutePlatforms       = "/v1/platforms"
)

const platformsCacheControl = "public, max-age=300"

// Handlers returns the API handlers keyed by route, ready for
// server.WithHandler.
func (a *Advisor) Handlers() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		RouteRecommendations: a.HandleRecommendations,
		RouteDetections:      a.HandleDetections,
		RoutePlatforms:       a.HandlePlatforms,
	}
}

// HandleRecommendations handles POST /v1/recommendations: a Request in, a
// Report out.
func (a *Advisor) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req Request
	if err := decodeBody(r, &req); err != nil {
		server.WriteErrorFromErr(w, r, err, "invalid request body", nil)
		return
	}

	report, err := a.Advise(r.Context(), req)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "failed to generate advice", nil)
		return
	}

	serializer.Respond(w, r, http.StatusOK, report)
}

// HandleDetections handles POST /v1/detections: a DetectionRequest in, a
// DetectionReport out.
func (a *Advisor) HandleDetections(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req DetectionRequest
	if err := decodeBody(r, &req); err != nil {
		server.WriteErrorFromErr(w, r, err, "invalid request body", nil)
		return
	}
	if len(req.Metrics) == 0 {
		server.WriteError(w, r, http.StatusBadRequest, adverrors.ErrCodeInvalidRequest,
			"metrics are required", false, nil)
		return
	}

	report, err := a.Detections(req)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "failed to detect patterns", nil)
		return
	}

	serializer.Respond(w, r, http.StatusOK, report)
}

// HandlePlatforms handles GET /v1/platforms.
func (a *Advisor) HandlePlatforms(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	list, err := a.Platforms()
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "platform catalog unavailable", nil)
		return
	}

	w.Header().Set("Cache-Control", platformsCacheControl)
	serializer.Respond(w, r, http.StatusOK, list)
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	server.WriteError(w, r, http.StatusMethodNotAllowed, adverrors.ErrCodeMethodNotAllowed,
		"method not allowed", false, map[string]any{"method": r.Method, "allowed": method})
	return false
}

// decodeBody strictly decodes a single JSON document.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return adverrors.New(adverrors.ErrCodeInvalidRequest, "request body is required")
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return adverrors.WrapWithContext(adverrors.ErrCodePayloadTooLarge, "request body too large", err,
				map[string]any{"limitBytes": tooLarge.Limit})
		}
		return adverrors.Wrap(adverrors.ErrCodeInvalidRequest, "invalid request body", err)
	}
	if dec.More() {
		return adverrors.New(adverrors.ErrCodeInvalidRequest, "request body must contain a single JSON document")
	}
	return nil
}
