package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/computeadvisor/advisor/pkg/catalog"
	"github.com/computeadvisor/advisor/pkg/requirements"
)

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return cat
}

func TestScoreProfile_Scenario(t *testing.T) {
	req, err := requirements.Extract(&requirements.RawInput{
		WorkloadType: "heavy GPU rendering",
		Budget:       requirements.BudgetLabel("moderate"),
	})
	require.NoError(t, err)

	profile := catalog.PlatformProfile{
		Key:            "simple",
		Strengths:      []string{"intuitive interface"},
		Weaknesses:     []string{"limited support"},
		IdealWorkloads: []string{"simple AI projects"},
		Cost:           catalog.CostStructure{Base: catalog.CostLow, Scaling: catalog.ScalingLinear},
	}

	res := NewEngine().ScoreProfile(req, profile, nil)

	assert.Equal(t, 0, res.Breakdown.Workload, "no ideal workload tag in workload text")
	assert.Equal(t, 20, res.Breakdown.Budget, "looked up by platform cost class, not by budget label")
	assert.Equal(t, 15, res.Breakdown.Technical, "expertise defaults to intermediate")
	assert.Equal(t, 0, res.Breakdown.Performance)
	assert.Equal(t, res.Breakdown.Total(), res.Score)
	assert.Equal(t, 35, res.Score)
}

func TestScoreProfile_SubScores(t *testing.T) {
	easy := catalog.PlatformProfile{
		Key:            "easy",
		Strengths:      []string{TagEasyToUse},
		IdealWorkloads: []string{"startups"},
		Cost:           catalog.CostStructure{Base: catalog.CostVeryLow},
	}
	custom := catalog.PlatformProfile{
		Key:            "custom",
		Strengths:      []string{TagHighlyCustomizable, TagRobustInfrastructure},
		IdealWorkloads: []string{"kubernetes deployments"},
		Cost:           catalog.CostStructure{Base: catalog.CostClass("premium")},
	}

	tests := []struct {
		name    string
		req     requirements.Requirements
		profile catalog.PlatformProfile
		want    Breakdown
	}{
		{
			name:    "nothing requested",
			req:     requirements.Requirements{},
			profile: easy,
			want:    Breakdown{},
		},
		{
			name:    "workload substring, case insensitive",
			req:     requirements.Requirements{WorkloadType: "Tooling for STARTUPS"},
			profile: easy,
			want:    Breakdown{Workload: 30},
		},
		{
			name:    "budget very low",
			req:     requirements.Requirements{Budget: &requirements.Budget{}},
			profile: easy,
			want:    Breakdown{Budget: 25},
		},
		{
			name:    "budget unknown class",
			req:     requirements.Requirements{Budget: &requirements.Budget{Tier: "high"}},
			profile: custom,
			want:    Breakdown{},
		},
		{
			name:    "beginner on easy platform",
			req:     requirements.Requirements{Expertise: requirements.ExpertiseBeginner},
			profile: easy,
			want:    Breakdown{Technical: 20},
		},
		{
			name:    "beginner elsewhere",
			req:     requirements.Requirements{Expertise: "Beginner"},
			profile: custom,
			want:    Breakdown{Technical: 5},
		},
		{
			name:    "intermediate is flat",
			req:     requirements.Requirements{Expertise: requirements.ExpertiseIntermediate},
			profile: custom,
			want:    Breakdown{Technical: 15},
		},
		{
			name:    "expert on customizable platform",
			req:     requirements.Requirements{Expertise: requirements.ExpertiseExpert},
			profile: custom,
			want:    Breakdown{Technical: 20},
		},
		{
			name:    "expert elsewhere",
			req:     requirements.Requirements{Expertise: requirements.ExpertiseExpert},
			profile: easy,
			want:    Breakdown{Technical: 10},
		},
		{
			name:    "unknown expertise",
			req:     requirements.Requirements{Expertise: "wizard"},
			profile: easy,
			want:    Breakdown{Technical: 10},
		},
		{
			name: "both performance needs",
			req: requirements.Requirements{
				Performance: &requirements.Performance{HighAvailability: true, Scalability: true},
			},
			profile: custom,
			want:    Breakdown{Performance: 30},
		},
		{
			name: "performance needs unmet",
			req: requirements.Requirements{
				Performance: &requirements.Performance{HighAvailability: true, Scalability: true},
			},
			profile: easy,
			want:    Breakdown{},
		},
	}

	engine := NewEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			res := engine.ScoreProfile(&req, tt.profile, nil)
			assert.Equal(t, tt.want, res.Breakdown)
			assert.Equal(t, tt.want.Total(), res.Score)
		})
	}
}

func TestScore_Reasoning(t *testing.T) {
	cat := defaultCatalog(t)
	req := &requirements.Requirements{
		WorkloadType: "simple AI projects",
		ComputeLevel: requirements.ComputeLow,
		Expertise:    requirements.ExpertiseBeginner,
		Security:     requirements.SecurityStandard,
		Budget:       &requirements.Budget{Tier: "low"},
	}

	results := NewEngine().Score(req, cat)
	require.Len(t, results, 2)

	netmind := results[0]
	assert.Equal(t, "netmindAI", netmind.Platform)
	assert.Equal(t, Breakdown{Workload: 30, Budget: 20, Technical: 20}, netmind.Breakdown)
	assert.Equal(t, 70, netmind.Score)
	assert.Equal(t, []string{"Aligns with needs: easy to use"}, netmind.Reasoning)
	assert.Equal(t, []string{}, netmind.Concerns)

	akash := results[1]
	assert.Equal(t, "akashNetwork", akash.Platform)
	assert.Equal(t, Breakdown{Budget: 25, Technical: 5}, akash.Breakdown)
	assert.Equal(t, []string{"cost-effective"}, akash.MatchedStrengths)
	assert.Equal(t, []string{"Consider these aspects: technical complexity"}, akash.Concerns)
}

func TestScore_ReasoningMatchesHyphenatedWords(t *testing.T) {
	cat := defaultCatalog(t)
	engine := NewEngine()

	tests := []struct {
		text string
		want string
	}{
		{"need cost-effective compute", "cost-effective"},
		{"custom-built training cluster", "highly customizable"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			req, err := requirements.Extract(&requirements.RawInput{WorkloadType: tt.text})
			require.NoError(t, err)

			got := engine.ScoreKey(req, cat, "akashNetwork")
			assert.Contains(t, got.MatchedStrengths, tt.want)
		})
	}
}

func TestScore_Deterministic(t *testing.T) {
	cat := defaultCatalog(t)
	req, err := requirements.Extract(&requirements.RawInput{
		WorkloadType:       "kubernetes deployments for a complex data pipeline",
		Budget:             requirements.BudgetLabel("low"),
		TechnicalExpertise: "expert",
		Performance:        &requirements.RawPerformance{},
	})
	require.NoError(t, err)

	engine := NewEngine(WithConcurrency(2))
	first := engine.Score(req, cat)
	for range 50 {
		assert.Equal(t, first, engine.Score(req, cat))
	}
}

func TestScore_Monotonic(t *testing.T) {
	req := &requirements.Requirements{WorkloadType: "video transcoding"}
	base := catalog.PlatformProfile{
		Key:            "p",
		Strengths:      []string{"fast"},
		Weaknesses:     []string{"slow support"},
		IdealWorkloads: []string{"batch jobs"},
		Cost:           catalog.CostStructure{Base: catalog.CostModerate},
	}
	extended := base
	extended.IdealWorkloads = append([]string{}, base.IdealWorkloads...)
	extended.IdealWorkloads = append(extended.IdealWorkloads, "video transcoding")

	engine := NewEngine()
	before := engine.ScoreProfile(req, base, nil)
	after := engine.ScoreProfile(req, extended, nil)

	assert.Greater(t, after.Score, before.Score)
}

func TestScoreKey_UnknownPlatform(t *testing.T) {
	cat := defaultCatalog(t)
	req := &requirements.Requirements{Expertise: requirements.ExpertiseExpert}

	res := NewEngine().ScoreKey(req, cat, "phalaNetwork")

	assert.Equal(t, "phalaNetwork", res.Platform)
	assert.Zero(t, res.Score)
	assert.NotNil(t, res.Reasoning)
	assert.Empty(t, res.Reasoning)
	assert.NotNil(t, res.Concerns)
	assert.Empty(t, res.Concerns)
}

func TestScoreKey_KnownPlatform(t *testing.T) {
	cat := defaultCatalog(t)
	req := &requirements.Requirements{Expertise: requirements.ExpertiseExpert}

	res := NewEngine().ScoreKey(req, cat, "akashNetwork")
	assert.Equal(t, 20, res.Score)
}

func TestScore_NilInputs(t *testing.T) {
	engine := NewEngine()

	assert.Empty(t, engine.Score(&requirements.Requirements{}, nil))

	results := engine.Score(nil, defaultCatalog(t))
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Zero(t, r.Score)
		assert.NotNil(t, r.MatchedStrengths)
	}
}

func TestWithWeights(t *testing.T) {
	w := DefaultWeights()
	w.Workload = 50
	w.Budget[catalog.CostLow] = 1

	engine := NewEngine(WithWeights(w))
	profile := catalog.PlatformProfile{
		Key:            "p",
		IdealWorkloads: []string{"startups"},
		Cost:           catalog.CostStructure{Base: catalog.CostLow},
	}
	req := &requirements.Requirements{WorkloadType: "startups", Budget: &requirements.Budget{}}

	res := engine.ScoreProfile(req, profile, nil)
	assert.Equal(t, 51, res.Score)
	assert.Equal(t, 20, DefaultWeights().Budget[catalog.CostLow], "defaults are not shared")
}
