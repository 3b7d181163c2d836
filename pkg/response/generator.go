// Package response renders optimization plans as conversational prose.
//
// Each response is an intro, one detail block per item and a conclusion,
// every part picked at random from a list of phrasings. The random source is
// injectable so output can be made reproducible; nothing in the advisor core
// depends on this package.
package response

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/computeadvisor/advisor/pkg/plan"
)

// Kind is the type of a response.
type Kind string

const (
	KindRecommendation Kind = "recommendation"
	KindOptimization   Kind = "optimization"
	KindCost           Kind = "cost"
)

// Response is a rendered response, kept in parts.
type Response struct {
	Kind       Kind     `json:"type" yaml:"type"`
	Intro      string   `json:"intro" yaml:"intro"`
	Details    []string `json:"details" yaml:"details"`
	Conclusion string   `json:"conclusion" yaml:"conclusion"`
}

// String joins the parts into one message.
func (r *Response) String() string {
	sep := "\n\n"
	if r.Kind == KindOptimization {
		sep = "\n"
	}
	var b strings.Builder
	b.WriteString(r.Intro)
	b.WriteString("\n\n")
	b.WriteString(strings.Join(r.Details, sep))
	b.WriteString("\n\n")
	b.WriteString(r.Conclusion)
	return b.String()
}

// Suggestion is one optimization to describe.
type Suggestion struct {
	Suggestion string
	Impact     string
}

// CostData is the input of a cost analysis.
type CostData struct {
	Current  decimal.Decimal
	Savings  decimal.Decimal
	Timeline string
}

// Generator renders responses. It is not safe for concurrent use.
type Generator struct {
	rng       *rand.Rand
	templates Templates
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source used to pick phrasings.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) {
		if r != nil {
			g.rng = r
		}
	}
}

// WithSeed makes phrasing selection reproducible.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed)))
}

// WithTemplates replaces the built-in phrasings.
func WithTemplates(t Templates) Option {
	return func(g *Generator) {
		g.templates = t
	}
}

// New returns a Generator. Without WithRand or WithSeed phrasings are picked
// from a randomly seeded source.
func New(opts ...Option) (*Generator, error) {
	t, err := DefaultTemplates()
	if err != nil {
		return nil, err
	}
	g := &Generator{templates: t}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g, nil
}

// Recommendation describes the ranked platforms of p.
func (g *Generator) Recommendation(p *plan.OptimizationPlan) (*Response, error) {
	var platforms []plan.PlatformPlan
	if p != nil {
		platforms = p.RecommendedPlatforms
	}

	type detail struct {
		Platform string
		Score    int
		Priority plan.Priority
		Benefits []string
	}

	items := make([]any, 0, len(platforms))
	for _, pp := range platforms {
		items = append(items, detail{
			Platform: pp.Platform,
			Score:    pp.Score,
			Priority: pp.Priority,
			Benefits: benefits(pp),
		})
	}
	return g.generate(KindRecommendation, items)
}

// Optimization describes suggestions.
func (g *Generator) Optimization(suggestions []Suggestion) (*Response, error) {
	items := make([]any, 0, len(suggestions))
	for _, s := range suggestions {
		items = append(items, s)
	}
	return g.generate(KindOptimization, items)
}

// OptimizationFromPlan describes the optimization steps of p.
func (g *Generator) OptimizationFromPlan(p *plan.OptimizationPlan) (*Response, error) {
	var suggestions []Suggestion
	if p != nil {
		for _, s := range p.OptimizationSteps {
			suggestions = append(suggestions, Suggestion{
				Suggestion: s.Action,
				Impact:     fmt.Sprintf("resolves %s (%s)", s.Pattern, s.Category),
			})
		}
	}
	return g.Optimization(suggestions)
}

// CostAnalysis describes current spend and potential savings.
func (g *Generator) CostAnalysis(c CostData) (*Response, error) {
	return g.generate(KindCost, []any{struct {
		Current  string
		Savings  string
		Timeline string
	}{
		Current:  c.Current.StringFixed(2),
		Savings:  c.Savings.StringFixed(2),
		Timeline: c.Timeline,
	}})
}

// CostFromPlan derives CostData from the plan's cost projections: the
// monthly cost is the current spend and any excess over the budget is the
// saving. It reports false when the plan has no monthly cost.
func CostFromPlan(p *plan.OptimizationPlan, timeline string) (CostData, bool) {
	if p == nil {
		return CostData{}, false
	}
	current, ok := p.CostProjections["monthlyCost"]
	if !ok {
		return CostData{}, false
	}
	savings := decimal.Zero
	if budget, ok := p.CostProjections["budget"]; ok && current.GreaterThan(budget) {
		savings = current.Sub(budget)
	}
	return CostData{Current: current, Savings: savings, Timeline: timeline}, true
}

func (g *Generator) generate(k Kind, items []any) (*Response, error) {
	s := g.templates.section(k)
	r := &Response{
		Kind:    k,
		Intro:   g.pick(s.Intro),
		Details: make([]string, 0, len(items)),
	}
	for _, item := range items {
		text, err := render(g.pick(s.Detail), item)
		if err != nil {
			return nil, err
		}
		r.Details = append(r.Details, text)
	}
	r.Conclusion = g.pick(s.Conclusion)
	return r, nil
}

func (g *Generator) pick(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[g.rng.IntN(len(options))]
}

func benefits(pp plan.PlatformPlan) []string {
	var out []string
	for _, rec := range pp.Recommendations {
		if rec.Type == plan.TypeOptimization && rec.Strength != "" {
			out = append(out, rec.Strength)
		}
	}
	if len(out) == 0 {
		out = append(out, pp.Reasoning...)
	}
	if len(out) == 0 {
		out = append(out, "general fit for the stated requirements")
	}
	return out
}
