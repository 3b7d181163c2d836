// Package header provides the Kubernetes-style kind/apiVersion/metadata
// envelope carried by every document the advisor emits.
package header

import (
	"fmt"
	"strings"
	"time"
)

const (
	// APIDomain is the group suffix of every advisor apiVersion.
	APIDomain = "computeadvisor.io"

	// APIVersionV1 is the current document version.
	APIVersionV1 = "v1"

	// MetadataGeneratedAt records when a document was produced (RFC 3339, UTC).
	MetadataGeneratedAt = "generated-at"

	// MetadataAdvisorVersion records the version of the binary that produced a document.
	MetadataAdvisorVersion = "advisor-version"
)

// Document kinds.
const (
	KindReport       = "Report"
	KindRequirements = "Requirements"
	KindScores       = "Scores"
	KindDetections   = "Detections"
	KindCatalog      = "Catalog"
)

// Option is a functional option for configuring Header instances.
type Option func(*Header)

// WithMetadata adds a metadata key-value pair.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithKind sets the kind and derives the apiVersion from it.
func WithKind(kind string) Option {
	return func(h *Header) {
		h.Kind = kind
		h.APIVersion = APIVersion(kind)
	}
}

// WithTime stamps the header with t instead of the current time.
func WithTime(t time.Time) Option {
	return WithMetadata(MetadataGeneratedAt, t.UTC().Format(time.RFC3339))
}

// New creates a Header stamped with the current time; options may override it.
func New(opts ...Option) *Header {
	h := &Header{
		Metadata: map[string]string{
			MetadataGeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// APIVersion returns "<kind>.computeadvisor.io/v1".
func APIVersion(kind string) string {
	return fmt.Sprintf("%s.%s/%s", strings.ToLower(kind), APIDomain, APIVersionV1)
}

// Header identifies the type and version of an advisor document.
type Header struct {
	Kind       string            `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Set resets the header for kind and stamps it with the current time.
func (h *Header) Set(kind string) {
	*h = *New(WithKind(kind))
}
