package advisor

import (
	"github.com/computeadvisor/advisor/pkg/catalog"
	"github.com/computeadvisor/advisor/pkg/detector"
	"github.com/computeadvisor/advisor/pkg/header"
	"github.com/computeadvisor/advisor/pkg/plan"
	"github.com/computeadvisor/advisor/pkg/requirements"
	"github.com/computeadvisor/advisor/pkg/scoring"
)

// Request is the input of one end-to-end advice run.
type Request struct {
	// Input is the loose workload description; it is required.
	Input *requirements.RawInput `json:"input" yaml:"input"`

	// Metrics is an optional point-in-time operational snapshot checked
	// against the detection patterns.
	Metrics detector.Metrics `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	// Platforms restricts scoring to these catalog keys. Unknown keys score
	// zero. Empty means every platform in the catalog.
	Platforms []string `json:"platforms,omitempty" yaml:"platforms,omitempty"`
}

// Report is the result of Advise.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	ID             string                     `json:"id" yaml:"id"`
	CatalogVersion string                     `json:"catalogVersion" yaml:"catalogVersion"`
	Requirements   *requirements.Requirements `json:"requirements" yaml:"requirements"`
	Scores         []scoring.Result           `json:"scores" yaml:"scores"`
	Findings       []detector.Finding         `json:"findings" yaml:"findings"`
	Plan           *plan.OptimizationPlan     `json:"plan" yaml:"plan"`
}

// DetectionRequest is the body of POST /v1/detections.
type DetectionRequest struct {
	Metrics detector.Metrics `json:"metrics" yaml:"metrics"`

	// Category limits detection to one category; empty checks all of them.
	Category catalog.Category `json:"category,omitempty" yaml:"category,omitempty"`

	// Platforms to include remediations for.
	Platforms []string `json:"platforms,omitempty" yaml:"platforms,omitempty"`
}

// DetectionReport lists the patterns a metrics snapshot matched.
type DetectionReport struct {
	header.Header `json:",inline" yaml:",inline"`

	Findings []detector.Finding `json:"findings" yaml:"findings"`
}

// PlatformList is the catalog listing served by GET /v1/platforms.
type PlatformList struct {
	header.Header `json:",inline" yaml:",inline"`

	CatalogVersion string                    `json:"catalogVersion" yaml:"catalogVersion"`
	Platforms      []catalog.PlatformProfile `json:"platforms" yaml:"platforms"`
}

// RequirementsReport wraps extracted requirements in a document header.
type RequirementsReport struct {
	header.Header `json:",inline" yaml:",inline"`

	Requirements *requirements.Requirements `json:"requirements" yaml:"requirements"`
}

// ScoreReport lists platform scores. Suggestions maps each requested key
// missing from the catalog to the closest known keys.
type ScoreReport struct {
	header.Header `json:",inline" yaml:",inline"`

	CatalogVersion string              `json:"catalogVersion" yaml:"catalogVersion"`
	Scores         []scoring.Result    `json:"scores" yaml:"scores"`
	Suggestions    map[string][]string `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}
