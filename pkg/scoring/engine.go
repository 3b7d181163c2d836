// Package scoring computes additive platform scores and reasoning traces.
package scoring

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"

	"github.com/computeadvisor/advisor/pkg/catalog"
	"github.com/computeadvisor/advisor/pkg/requirements"
)

const defaultConcurrency = 8

// Keywords supplies the reasoning tables. *catalog.Catalog implements it.
type Keywords interface {
	StrengthKeywords(tag string) []string
	WeaknessAreas(tag string) []string
}

// Breakdown is the per-factor split of a score.
type Breakdown struct {
	Workload    int `json:"workload" yaml:"workload"`
	Budget      int `json:"budget" yaml:"budget"`
	Technical   int `json:"technical" yaml:"technical"`
	Performance int `json:"performance" yaml:"performance"`
}

// Total returns the sum of all factors.
func (b Breakdown) Total() int {
	return b.Workload + b.Budget + b.Technical + b.Performance
}

// Result is the score of one platform for one set of requirements.
// Slices are never nil.
type Result struct {
	Platform           string    `json:"platform" yaml:"platform"`
	Score              int       `json:"score" yaml:"score"`
	Breakdown          Breakdown `json:"breakdown" yaml:"breakdown"`
	Reasoning          []string  `json:"reasoning" yaml:"reasoning"`
	Concerns           []string  `json:"concerns" yaml:"concerns"`
	MatchedStrengths   []string  `json:"matchedStrengths" yaml:"matchedStrengths"`
	RelevantWeaknesses []string  `json:"relevantWeaknesses" yaml:"relevantWeaknesses"`
}

func emptyResult(platform string) Result {
	return Result{
		Platform:           platform,
		Reasoning:          []string{},
		Concerns:           []string{},
		MatchedStrengths:   []string{},
		RelevantWeaknesses: []string{},
	}
}

// Engine scores platform profiles against requirements.
// An Engine holds no per-request state and is safe for concurrent use.
type Engine struct {
	weights     Weights
	concurrency int
}

// Option is a functional option for configuring an Engine.
type Option func(*Engine)

// WithWeights replaces the default scoring table.
func WithWeights(w Weights) Option {
	return func(e *Engine) {
		e.weights = w
	}
}

// WithConcurrency limits how many platforms are scored at once.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// NewEngine creates an Engine using DefaultWeights unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		weights:     DefaultWeights(),
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Weights returns the scoring table in use.
func (e *Engine) Weights() Weights {
	return e.weights
}

// Score scores every platform in cat. Results are in catalog order
// regardless of how the work was scheduled.
func (e *Engine) Score(req *requirements.Requirements, cat *catalog.Catalog) []Result {
	if cat == nil {
		return []Result{}
	}

	results := make([]Result, len(cat.Platforms))

	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for i := range cat.Platforms {
		g.Go(func() error {
			results[i] = e.ScoreProfile(req, cat.Platforms[i], cat)
			return nil
		})
	}
	// scoring never fails
	_ = g.Wait()

	slog.Debug("scored platforms",
		"platforms", len(results),
		"computeLevel", computeLevelOf(req),
	)

	return results
}

// ScoreKey scores the platform registered under key. An unknown key yields
// a zero result, not an error.
func (e *Engine) ScoreKey(req *requirements.Requirements, cat *catalog.Catalog, key string) Result {
	profile, ok := cat.Get(key)
	if !ok {
		slog.Debug("unknown platform scored as zero", "platform", key)
		return emptyResult(key)
	}
	return e.ScoreProfile(req, profile, cat)
}

// ScoreProfile scores one profile. Each factor only contributes when the
// matching requirement is present. kw may be nil, in which case every tag
// is its own keyword.
func (e *Engine) ScoreProfile(req *requirements.Requirements, profile catalog.PlatformProfile, kw Keywords) Result {
	res := emptyResult(profile.Key)
	if req == nil {
		return res
	}

	fold := cases.Fold()

	if req.WorkloadType != "" && matchesWorkload(fold, req.WorkloadType, profile.IdealWorkloads) {
		res.Breakdown.Workload = e.weights.Workload
	}
	if req.Budget != nil {
		res.Breakdown.Budget = e.weights.budgetPoints(profile.Cost.Base)
	}
	if req.Expertise != "" {
		res.Breakdown.Technical = e.technicalPoints(fold.String(string(req.Expertise)), profile)
	}
	if req.Performance != nil {
		res.Breakdown.Performance = e.performancePoints(req.Performance, profile)
	}
	res.Score = max(0, res.Breakdown.Total())

	tokens := tokenize(req.SearchFields())
	for _, strength := range profile.Strengths {
		if matchesAny(tokens, keywordsFor(kw, strength, true)) {
			res.MatchedStrengths = append(res.MatchedStrengths, strength)
		}
	}
	for _, weakness := range profile.Weaknesses {
		if matchesAny(tokens, keywordsFor(kw, weakness, false)) {
			res.RelevantWeaknesses = append(res.RelevantWeaknesses, weakness)
		}
	}
	if len(res.MatchedStrengths) > 0 {
		res.Reasoning = append(res.Reasoning,
			fmt.Sprintf("Aligns with needs: %s", strings.Join(res.MatchedStrengths, ", ")))
	}
	if len(res.RelevantWeaknesses) > 0 {
		res.Concerns = append(res.Concerns,
			fmt.Sprintf("Consider these aspects: %s", strings.Join(res.RelevantWeaknesses, ", ")))
	}

	return res
}

func (e *Engine) technicalPoints(expertise string, profile catalog.PlatformProfile) int {
	t := e.weights.Technical
	switch requirements.Expertise(expertise) {
	case requirements.ExpertiseBeginner:
		if profile.HasStrength(TagEasyToUse) {
			return t.BeginnerEasy
		}
		return t.BeginnerOther
	case requirements.ExpertiseIntermediate:
		return t.Intermediate
	case requirements.ExpertiseExpert:
		if profile.HasStrength(TagHighlyCustomizable) {
			return t.ExpertCustomizable
		}
		return t.ExpertOther
	default:
		return t.Unknown
	}
}

func (e *Engine) performancePoints(perf *requirements.Performance, profile catalog.PlatformProfile) int {
	points := 0
	if perf.HighAvailability && profile.HasStrength(TagRobustInfrastructure) {
		points += e.weights.HighAvailability
	}
	if perf.Scalability && profile.HasStrength(TagHighlyCustomizable) {
		points += e.weights.Scalability
	}
	return points
}

// matchesWorkload reports whether any ideal workload tag is a substring of
// the workload text.
func matchesWorkload(fold cases.Caser, workload string, ideal []string) bool {
	text := fold.String(workload)
	for _, tag := range ideal {
		if tag == "" {
			continue
		}
		if strings.Contains(text, fold.String(tag)) {
			return true
		}
	}
	return false
}

func keywordsFor(kw Keywords, tag string, strength bool) []string {
	if kw == nil {
		return []string{tag}
	}
	if strength {
		return kw.StrengthKeywords(tag)
	}
	return kw.WeaknessAreas(tag)
}

// tokenize splits each field separately so a phrase never spans two fields.
func tokenize(fields []string) [][]string {
	out := make([][]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, requirements.Tokenize(f))
	}
	return out
}

func matchesAny(fields [][]string, keywords []string) bool {
	for _, k := range keywords {
		for _, tokens := range fields {
			if requirements.ContainsPhrase(tokens, k) {
				return true
			}
		}
	}
	return false
}

func computeLevelOf(req *requirements.Requirements) string {
	if req == nil {
		return ""
	}
	return string(req.ComputeLevel)
}
