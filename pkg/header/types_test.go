package header

import (
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))

	h := New(WithKind(KindReport), WithTime(at), WithMetadata(MetadataAdvisorVersion, "v1.2.3"))

	if h.Kind != KindReport {
		t.Errorf("Kind = %q, want %q", h.Kind, KindReport)
	}
	if h.APIVersion != "report.computeadvisor.io/v1" {
		t.Errorf("APIVersion = %q", h.APIVersion)
	}
	if got := h.Metadata[MetadataGeneratedAt]; got != "2026-03-01T11:00:00Z" {
		t.Errorf("generated-at = %q", got)
	}
	if got := h.Metadata[MetadataAdvisorVersion]; got != "v1.2.3" {
		t.Errorf("advisor-version = %q", got)
	}
}

func TestNew_StampsCurrentTime(t *testing.T) {
	h := New()
	ts, err := time.Parse(time.RFC3339, h.Metadata[MetadataGeneratedAt])
	if err != nil {
		t.Fatalf("generated-at is not RFC 3339: %v", err)
	}
	if time.Since(ts) > time.Minute {
		t.Errorf("generated-at too old: %v", ts)
	}
}

func TestSet(t *testing.T) {
	h := &Header{Kind: "Old", Metadata: map[string]string{"stale": "yes"}}
	h.Set(KindDetections)

	if h.APIVersion != "detections.computeadvisor.io/v1" {
		t.Errorf("APIVersion = %q", h.APIVersion)
	}
	if _, ok := h.Metadata["stale"]; ok {
		t.Error("Set should reset metadata")
	}
	if _, ok := h.Metadata[MetadataGeneratedAt]; !ok {
		t.Error("Set should stamp generated-at")
	}
}
