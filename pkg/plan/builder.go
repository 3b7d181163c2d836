// Package plan ranks scored platforms into priority tiers and assembles
// the optimization plan handed to presentation layers.
package plan

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/computeadvisor/advisor/pkg/catalog"
	"github.com/computeadvisor/advisor/pkg/detector"
	"github.com/computeadvisor/advisor/pkg/requirements"
	"github.com/computeadvisor/advisor/pkg/scoring"
)

// Priority is the coarse rank of a recommended platform.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Tier assigns Priority to every score whose position within the score
// range is at least MinFraction (0 is the lowest score, 1 the highest).
type Tier struct {
	Priority    Priority `json:"priority" yaml:"priority"`
	MinFraction float64  `json:"minFraction" yaml:"minFraction"`
}

// DefaultTiers splits the score range into thirds.
func DefaultTiers() []Tier {
	return []Tier{
		{Priority: PriorityHigh, MinFraction: 2.0 / 3.0},
		{Priority: PriorityMedium, MinFraction: 1.0 / 3.0},
		{Priority: PriorityLow, MinFraction: 0},
	}
}

// Recommendation types.
const (
	TypeOptimization = "optimization"
	TypeRemediation  = "remediation"
)

// Recommendation is one suggestion for a platform.
type Recommendation struct {
	Type     string   `json:"type" yaml:"type"`
	Platform string   `json:"platform" yaml:"platform"`
	Strength string   `json:"strength,omitempty" yaml:"strength,omitempty"`
	Pattern  string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Steps    []string `json:"steps" yaml:"steps"`
}

// PlatformPlan is a ranked platform with its recommendations.
type PlatformPlan struct {
	Platform        string           `json:"platform" yaml:"platform"`
	Score           int              `json:"score" yaml:"score"`
	Priority        Priority         `json:"priority" yaml:"priority"`
	Reasoning       []string         `json:"reasoning" yaml:"reasoning"`
	Concerns        []string         `json:"concerns" yaml:"concerns"`
	Recommendations []Recommendation `json:"recommendations" yaml:"recommendations"`
}

// Step is an optimization step derived from a detected pattern.
type Step struct {
	Order    int    `json:"order" yaml:"order"`
	Category string `json:"category" yaml:"category"`
	Pattern  string `json:"pattern" yaml:"pattern"`
	Action   string `json:"action" yaml:"action"`
}

// OptimizationPlan is the ranked, explainable output of the advisor.
type OptimizationPlan struct {
	RecommendedPlatforms []PlatformPlan             `json:"recommendedPlatforms" yaml:"recommendedPlatforms"`
	OptimizationSteps    []Step                     `json:"optimizationSteps" yaml:"optimizationSteps"`
	CostProjections      map[string]decimal.Decimal `json:"costProjections" yaml:"costProjections"`
	ImplementationGuide  map[string]string          `json:"implementationGuide" yaml:"implementationGuide"`
}

// Builder assembles optimization plans.
type Builder struct {
	tiers []Tier
}

// Option is a functional option for configuring a Builder.
type Option func(*Builder)

// WithTiers replaces DefaultTiers. Tiers are tried in the order given; a
// score that fits none gets the last tier.
func WithTiers(tiers []Tier) Option {
	return func(b *Builder) {
		if len(tiers) > 0 {
			b.tiers = slices.Clone(tiers)
		}
	}
}

// NewBuilder creates a Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{tiers: DefaultTiers()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build ranks scored platforms and assembles the plan. Platforms are sorted
// by descending score; equal scores keep their input order. Empty input
// yields an empty plan.
func (b *Builder) Build(req *requirements.Requirements, scored []scoring.Result, findings []detector.Finding) *OptimizationPlan {
	p := &OptimizationPlan{
		RecommendedPlatforms: make([]PlatformPlan, 0, len(scored)),
		OptimizationSteps:    steps(findings),
		CostProjections:      costProjections(req, findings),
	}

	ranked := slices.Clone(scored)
	slices.SortStableFunc(ranked, func(a, b scoring.Result) int {
		return cmp.Compare(b.Score, a.Score)
	})

	var lo, hi int
	if len(ranked) > 0 {
		hi, lo = ranked[0].Score, ranked[len(ranked)-1].Score
	}

	for _, r := range ranked {
		p.RecommendedPlatforms = append(p.RecommendedPlatforms, PlatformPlan{
			Platform:        r.Platform,
			Score:           r.Score,
			Priority:        b.priority(r.Score, lo, hi),
			Reasoning:       nonNil(r.Reasoning),
			Concerns:        nonNil(r.Concerns),
			Recommendations: recommendations(r, findings),
		})
	}

	p.ImplementationGuide = implementationGuide(req, p.RecommendedPlatforms)

	slog.Debug("built optimization plan",
		"platforms", len(p.RecommendedPlatforms),
		"steps", len(p.OptimizationSteps),
	)

	return p
}

// priority places score within [lo, hi]. A zero-width range gets the first tier.
func (b *Builder) priority(score, lo, hi int) Priority {
	if hi == lo {
		return b.tiers[0].Priority
	}
	fraction := float64(score-lo) / float64(hi-lo)
	for _, t := range b.tiers {
		if fraction >= t.MinFraction {
			return t.Priority
		}
	}
	return b.tiers[len(b.tiers)-1].Priority
}

func recommendations(r scoring.Result, findings []detector.Finding) []Recommendation {
	recs := make([]Recommendation, 0, len(r.MatchedStrengths)+len(findings))
	for _, strength := range r.MatchedStrengths {
		recs = append(recs, Recommendation{
			Type:     TypeOptimization,
			Platform: r.Platform,
			Strength: strength,
			Steps:    []string{},
		})
	}
	for _, f := range findings {
		recs = append(recs, Recommendation{
			Type:     TypeRemediation,
			Platform: r.Platform,
			Pattern:  f.Pattern,
			Steps:    []string{f.Remediation(r.Platform)},
		})
	}
	return recs
}

func steps(findings []detector.Finding) []Step {
	out := make([]Step, 0, len(findings))
	for i, f := range findings {
		out = append(out, Step{
			Order:    i + 1,
			Category: f.Category.String(),
			Pattern:  f.Pattern,
			Action:   f.Default,
		})
	}
	return out
}

// costProjections collects the cost figures already present in the input.
func costProjections(req *requirements.Requirements, findings []detector.Finding) map[string]decimal.Decimal {
	out := map[string]decimal.Decimal{}
	if req != nil && req.Budget != nil {
		if req.Budget.Limit != nil {
			out["budget"] = *req.Budget.Limit
		}
		if req.Budget.MonthlyCost != nil {
			out["monthlyCost"] = *req.Budget.MonthlyCost
		}
	}
	for _, f := range findings {
		if f.Category != catalog.CategoryCost {
			continue
		}
		out[f.Metric] = decimal.NewFromFloat(f.Observed)
		if f.ComparedTo != "" {
			out[f.ComparedTo] = decimal.NewFromFloat(f.Threshold)
		}
	}
	return out
}

func implementationGuide(req *requirements.Requirements, ranked []PlatformPlan) map[string]string {
	guide := map[string]string{}
	if req != nil {
		guide["computeLevel"] = string(req.ComputeLevel)
		guide["expertise"] = string(req.Expertise)
		guide["security"] = string(req.Security)
		if req.Budget != nil && req.Budget.Tier != "" {
			guide["budgetTier"] = req.Budget.Tier
		}
		if req.Specific.GPU {
			guide["gpu"] = "required"
		}
	}
	if len(ranked) > 0 {
		guide["primaryPlatform"] = ranked[0].Platform
		guide["primaryPriority"] = string(ranked[0].Priority)
	}
	for k, v := range guide {
		if v == "" {
			delete(guide, k)
		}
	}
	return guide
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
