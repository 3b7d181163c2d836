// Package advisor wires the requirement extractor, scoring engine, pattern
// detector and plan builder into the four advisor operations and an
// end-to-end Advise call, and serves them over HTTP.
package advisor

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/computeadvisor/advisor/pkg/catalog"
	"github.com/computeadvisor/advisor/pkg/detector"
	adverrors "github.com/computeadvisor/advisor/pkg/errors"
	"github.com/computeadvisor/advisor/pkg/header"
	"github.com/computeadvisor/advisor/pkg/plan"
	"github.com/computeadvisor/advisor/pkg/requirements"
	"github.com/computeadvisor/advisor/pkg/scoring"
)

const versionDefault = "dev"

// Advisor answers advice requests against a platform catalog.
// It holds no per-request state and is safe for concurrent use.
type Advisor struct {
	version string
	cat     *catalog.Catalog
	engine  *scoring.Engine
	builder *plan.Builder

	weights []scoring.Option
	tiers   []plan.Option
}

// Option configures an Advisor.
type Option func(*Advisor)

// WithVersion sets the version stamped into report headers.
func WithVersion(version string) Option {
	return func(a *Advisor) {
		a.version = version
	}
}

// WithCatalog pins the catalog. Without it every call reads the process-wide
// snapshot from catalog.Current, so hot reloads are picked up.
func WithCatalog(c *catalog.Catalog) Option {
	return func(a *Advisor) {
		a.cat = c
	}
}

// WithWeights replaces the scoring weights.
func WithWeights(w scoring.Weights) Option {
	return func(a *Advisor) {
		a.weights = append(a.weights, scoring.WithWeights(w))
	}
}

// WithTiers replaces the priority tiers.
func WithTiers(tiers []plan.Tier) Option {
	return func(a *Advisor) {
		a.tiers = append(a.tiers, plan.WithTiers(tiers))
	}
}

// New returns an Advisor.
func New(opts ...Option) *Advisor {
	a := &Advisor{version: versionDefault}
	for _, opt := range opts {
		opt(a)
	}
	a.engine = scoring.NewEngine(a.weights...)
	a.builder = plan.NewBuilder(a.tiers...)
	return a
}

// Catalog returns the catalog the next call will use.
func (a *Advisor) Catalog() (*catalog.Catalog, error) {
	if a.cat != nil {
		return a.cat, nil
	}
	c, err := catalog.Current()
	if err != nil {
		return nil, adverrors.Wrap(adverrors.ErrCodeUnavailable, "platform catalog unavailable", err)
	}
	return c, nil
}

// ExtractRequirements normalizes raw input. A nil input fails with
// requirements.ErrInvalidInput; every other input yields requirements.
func (a *Advisor) ExtractRequirements(raw *requirements.RawInput) (*requirements.Requirements, error) {
	return requirements.Extract(raw)
}

// ScorePlatforms scores every catalog platform, in catalog order.
func (a *Advisor) ScorePlatforms(req *requirements.Requirements) ([]scoring.Result, error) {
	cat, err := a.Catalog()
	if err != nil {
		return nil, err
	}
	return a.engine.Score(req, cat), nil
}

// ScorePlatform scores one platform by key. An unknown key is not an error;
// it yields a zero result.
func (a *Advisor) ScorePlatform(req *requirements.Requirements, key string) (scoring.Result, error) {
	cat, err := a.Catalog()
	if err != nil {
		return scoring.Result{}, err
	}
	return a.engine.ScoreKey(req, cat, key), nil
}

// DetectPattern returns the first pattern of category that m matches.
// No match is reported with false, not an error.
func (a *Advisor) DetectPattern(category catalog.Category, m detector.Metrics) (*catalog.Pattern, bool, error) {
	cat, err := a.Catalog()
	if err != nil {
		return nil, false, err
	}
	p, ok := detector.New(cat).Detect(category, m)
	if ok {
		patternMatchTotal.WithLabelValues(string(category), p.Key).Inc()
	}
	return p, ok, nil
}

// Detect checks m against every category, or only category when it is set,
// with remediations for platforms.
func (a *Advisor) Detect(m detector.Metrics, category catalog.Category, platforms []string) ([]detector.Finding, error) {
	if category != "" && !category.IsValid() {
		return nil, adverrors.WrapWithContext(adverrors.ErrCodeInvalidRequest, "unknown detection category", nil,
			map[string]any{"category": string(category), "supported": catalog.SupportedCategories()})
	}

	cat, err := a.Catalog()
	if err != nil {
		return nil, err
	}

	findings := []detector.Finding{}
	for _, f := range detector.New(cat).DetectAll(m, platforms) {
		if category != "" && f.Category != category {
			continue
		}
		patternMatchTotal.WithLabelValues(string(f.Category), f.Pattern).Inc()
		findings = append(findings, f)
	}
	return findings, nil
}

// BuildOptimizationPlan ranks scored platforms into a plan.
func (a *Advisor) BuildOptimizationPlan(req *requirements.Requirements, scored []scoring.Result) *plan.OptimizationPlan {
	return a.builder.Build(req, scored, nil)
}

// Advise runs extraction, scoring, detection and planning for one request.
func (a *Advisor) Advise(ctx context.Context, r Request) (report *Report, err error) {
	start := time.Now()
	defer func() {
		adviseDuration.Observe(time.Since(start).Seconds())
		status := "success"
		if err != nil {
			status = "error"
		}
		adviseTotal.WithLabelValues(status).Inc()
	}()

	if err := ctx.Err(); err != nil {
		return nil, adverrors.Wrap(adverrors.ErrCodeTimeout, "advice request cancelled", err)
	}

	cat, err := a.Catalog()
	if err != nil {
		return nil, err
	}

	req, err := a.ExtractRequirements(r.Input)
	if err != nil {
		return nil, err
	}

	var scores []scoring.Result
	if len(r.Platforms) == 0 {
		scores = a.engine.Score(req, cat)
	} else {
		scores = make([]scoring.Result, 0, len(r.Platforms))
		for _, key := range r.Platforms {
			scores = append(scores, a.engine.ScoreKey(req, cat, key))
		}
	}

	platforms := make([]string, 0, len(scores))
	for _, s := range scores {
		platforms = append(platforms, s.Platform)
	}
	findings := detector.New(cat).DetectAll(r.Metrics, platforms)
	for _, f := range findings {
		patternMatchTotal.WithLabelValues(string(f.Category), f.Pattern).Inc()
	}

	report = &Report{
		Header:         *a.header(header.KindReport),
		ID:             uuid.New().String(),
		CatalogVersion: cat.Version,
		Requirements:   req,
		Scores:         scores,
		Findings:       findings,
		Plan:           a.builder.Build(req, scores, findings),
	}

	slog.Debug("advice generated",
		"id", report.ID,
		"platforms", len(scores),
		"findings", len(findings),
		"duration", time.Since(start),
	)
	return report, nil
}

func (a *Advisor) header(kind string) *header.Header {
	return header.New(
		header.WithKind(kind),
		header.WithMetadata(header.MetadataAdvisorVersion, a.version),
	)
}
