package detector

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/computeadvisor/advisor/pkg/catalog"
	adverrors "github.com/computeadvisor/advisor/pkg/errors"
)

// Metrics is a point-in-time snapshot of operational measurements keyed by
// metric name, e.g. latency, memoryUsage, monthlyCost, budget,
// utilizationRate.
type Metrics map[string]float64

// Names returns the metric names in sorted order.
func (m Metrics) Names() []string {
	return slices.Sorted(maps.Keys(m))
}

// ParseMetrics parses name=value pairs.
func ParseMetrics(pairs []string) (Metrics, error) {
	m := make(Metrics, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, adverrors.New(adverrors.ErrCodeInvalidRequest,
				fmt.Sprintf("invalid metric %q, expected name=value", pair))
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, adverrors.Wrap(adverrors.ErrCodeInvalidRequest,
				fmt.Sprintf("invalid value for metric %q", name), err)
		}
		m[name] = v
	}
	return m, nil
}

// Remediation is the suggested action for one platform.
type Remediation struct {
	Platform string `json:"platform" yaml:"platform"`
	Action   string `json:"action" yaml:"action"`
}

// Finding is a matched pattern together with the values that triggered it.
type Finding struct {
	Category     catalog.Category `json:"category" yaml:"category"`
	Pattern      string           `json:"pattern" yaml:"pattern"`
	Description  string           `json:"description,omitempty" yaml:"description,omitempty"`
	Metric       string           `json:"metric" yaml:"metric"`
	Observed     float64          `json:"observed" yaml:"observed"`
	Threshold    float64          `json:"threshold" yaml:"threshold"`
	ComparedTo   string           `json:"comparedTo,omitempty" yaml:"comparedTo,omitempty"`
	Default      string           `json:"defaultSolution" yaml:"defaultSolution"`
	Remediations []Remediation    `json:"remediations" yaml:"remediations"`
}

// Remediation returns the action for platform, falling back to Default.
func (f Finding) Remediation(platform string) string {
	for _, r := range f.Remediations {
		if r.Platform == platform {
			return r.Action
		}
	}
	return f.Default
}

// Detector evaluates metrics snapshots against the catalog's patterns.
type Detector struct {
	cat *catalog.Catalog
}

// New returns a Detector for the patterns in cat.
func New(cat *catalog.Catalog) *Detector {
	return &Detector{cat: cat}
}

// Detect returns the first pattern of category, in declaration order, whose
// predicate holds for m. A predicate over a metric that m does not contain
// never holds.
func (d *Detector) Detect(category catalog.Category, m Metrics) (*catalog.Pattern, bool) {
	for _, p := range d.cat.PatternsFor(category) {
		if _, _, ok := evaluate(p, m); ok {
			slog.Debug("detection pattern matched", "category", category, "pattern", p.Key)
			return p, true
		}
	}
	return nil, false
}

// DetectAll runs Detect for every category in order and returns one Finding
// per match, with a remediation for each requested platform.
func (d *Detector) DetectAll(m Metrics, platforms []string) []Finding {
	findings := []Finding{}
	for _, category := range catalog.SupportedCategories() {
		p, ok := d.Detect(category, m)
		if !ok {
			continue
		}
		observed, limit, _ := evaluate(p, m)

		f := Finding{
			Category:     category,
			Pattern:      p.Key,
			Description:  p.Description,
			Metric:       p.Metric,
			Observed:     observed,
			Threshold:    limit,
			ComparedTo:   p.CompareTo,
			Default:      SolutionFor(p, catalog.DefaultSolution),
			Remediations: make([]Remediation, 0, len(platforms)),
		}
		for _, platform := range platforms {
			f.Remediations = append(f.Remediations, Remediation{
				Platform: platform,
				Action:   SolutionFor(p, platform),
			})
		}
		findings = append(findings, f)
	}
	return findings
}

// SolutionFor returns the remediation registered for platform, or the
// pattern's default solution when the platform has none.
func SolutionFor(p *catalog.Pattern, platform string) string {
	if p == nil {
		return ""
	}
	if action, ok := p.Solution(platform); ok {
		return action
	}
	action, _ := p.Solution(catalog.DefaultSolution)
	return action
}

// evaluate returns the observed value, the value it was compared against
// and whether the predicate holds.
func evaluate(p *catalog.Pattern, m Metrics) (float64, float64, bool) {
	observed, ok := m[p.Metric]
	if !ok {
		return 0, 0, false
	}

	var limit float64
	switch {
	case p.Threshold != nil:
		limit = *p.Threshold
	case p.CompareTo != "":
		limit, ok = m[p.CompareTo]
		if !ok {
			return observed, 0, false
		}
	default:
		return observed, 0, false
	}

	return observed, limit, p.Operator.Compare(observed, limit)
}
