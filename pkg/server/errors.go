package server

import (
	stderrors "errors"
	"maps"
	"net/http"
	"time"

	"github.com/google/uuid"

	adverrors "github.com/computeadvisor/advisor/pkg/errors"
	"github.com/computeadvisor/advisor/pkg/serializer"
)

// WriteError writes an ErrorResponse carrying the request's ID.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code adverrors.ErrorCode, message string, retryable bool, details map[string]any) {

	serializer.RespondJSON(w, statusCode, ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestIDFrom(r),
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	})
}

// WriteErrorFromErr maps err onto an ErrorResponse. A StructuredError keeps
// its code, message and context; anything else is reported as internal with
// fallbackMessage. The cause, when present, is added to the details.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error,
	fallbackMessage string, details map[string]any) {

	code := adverrors.ErrCodeInternal
	message := fallbackMessage
	var cause error = err
	var ctxDetails map[string]any

	var se *adverrors.StructuredError
	if stderrors.As(err, &se) {
		code = se.Code
		message = se.Message
		cause = se.Cause
		ctxDetails = se.Context
	}

	merged := mergeDetails(ctxDetails, details)
	if cause != nil {
		if merged == nil {
			merged = map[string]any{}
		}
		merged["error"] = cause.Error()
	}

	WriteError(w, r, HTTPStatusFromCode(code), code, message, retryableFromCode(code), merged)
}

// HTTPStatusFromCode maps an error code onto an HTTP status.
func HTTPStatusFromCode(code adverrors.ErrorCode) int {
	switch code {
	case adverrors.ErrCodeInvalidRequest, adverrors.ErrCodeInvalidCatalogData:
		return http.StatusBadRequest
	case adverrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case adverrors.ErrCodeNotFound:
		return http.StatusNotFound
	case adverrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case adverrors.ErrCodePayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case adverrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case adverrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case adverrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func retryableFromCode(code adverrors.ErrorCode) bool {
	switch code {
	case adverrors.ErrCodeTimeout,
		adverrors.ErrCodeUnavailable,
		adverrors.ErrCodeRateLimitExceeded,
		adverrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

// mergeDetails returns a new map with b's entries over a's, or nil when both
// are empty.
func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	maps.Copy(out, a)
	maps.Copy(out, b)
	return out
}

func requestIDFrom(r *http.Request) string {
	if r != nil {
		if id, ok := r.Context().Value(contextKeyRequestID).(string); ok && id != "" {
			return id
		}
	}
	return uuid.New().String()
}
