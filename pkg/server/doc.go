// Package server is the HTTP front end of advisord.
//
// It owns the listener lifecycle (graceful shutdown on SIGINT/SIGTERM,
// systemd READY/STOPPING notifications), the system routes /health, /ready
// and /metrics, and the middleware chain applied to API handlers registered
// with WithHandler: panic recovery, request IDs, metrics and access logs,
// token-bucket rate limiting, API version negotiation and a request body cap.
//
// Errors are reported as ErrorResponse documents; WriteErrorFromErr maps a
// StructuredError code onto the HTTP status and retryability.
package server
