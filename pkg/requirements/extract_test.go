package requirements

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"

	adverrors "github.com/computeadvisor/advisor/pkg/errors"
)

func TestExtract_NilIsRejected(t *testing.T) {
	req, err := Extract(nil)
	require.Error(t, err)
	assert.Nil(t, req)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Equal(t, adverrors.ErrCodeInvalidRequest, adverrors.CodeOf(err))
}

func TestExtract_EmptyYieldsDefaults(t *testing.T) {
	req, err := Extract(&RawInput{})
	require.NoError(t, err)

	assert.Equal(t, ComputeMedium, req.ComputeLevel)
	assert.Equal(t, ExpertiseIntermediate, req.Expertise)
	assert.Equal(t, SecurityStandard, req.Security)
	assert.Nil(t, req.Budget)
	assert.Nil(t, req.Performance)
	assert.Empty(t, req.WorkloadType)
}

func TestExtract_ComputeLevel(t *testing.T) {
	tests := []struct {
		name string
		raw  RawInput
		want ComputeLevel
	}{
		{"high keyword", RawInput{WorkloadType: "heavy GPU rendering"}, ComputeHigh},
		{"medium keyword", RawInput{Description: "an average web service"}, ComputeMedium},
		{"low keyword", RawInput{Description: "a light cron job"}, ComputeLow},
		{"no keyword", RawInput{Description: "batch jobs"}, ComputeMedium},
		{"case insensitive", RawInput{ComputeNeeds: "INTENSIVE"}, ComputeHigh},
		{"high wins over low", RawInput{Description: "simple but compute intensive"}, ComputeHigh},
		{"medium wins over low", RawInput{Description: "basic setup with standard load"}, ComputeMedium},
		{"substring match", RawInput{Description: "lightweight inference"}, ComputeLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := tt.raw
			req, err := Extract(&raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.ComputeLevel)
		})
	}
}

func TestExtract_Budget(t *testing.T) {
	tests := []struct {
		name            string
		raw             RawInput
		wantNil         bool
		wantConstrained bool
		wantTier        string
	}{
		{
			name:    "absent",
			raw:     RawInput{},
			wantNil: true,
		},
		{
			name:     "label",
			raw:      RawInput{Budget: BudgetLabel("moderate")},
			wantTier: "moderate",
		},
		{
			name: "cost above amount",
			raw: RawInput{
				Budget:      BudgetAmount(decimal.NewFromInt(1000)),
				MonthlyCost: ptr.To(decimal.NewFromInt(1500)),
			},
			wantConstrained: true,
		},
		{
			name: "cost equal to amount",
			raw: RawInput{
				Budget:      BudgetAmount(decimal.NewFromInt(1000)),
				MonthlyCost: ptr.To(decimal.NewFromInt(1000)),
			},
		},
		{
			name: "amount without cost",
			raw:  RawInput{Budget: BudgetAmount(decimal.NewFromInt(500))},
		},
		{
			name:     "keyword in text",
			raw:      RawInput{Description: "something affordable for students"},
			wantTier: "low",
		},
		{
			name:     "premium keyword in text",
			raw:      RawInput{WorkloadType: "premium inference tier"},
			wantTier: "high",
		},
		{
			name:     "given label wins over text",
			raw:      RawInput{Description: "cheap batch jobs", Budget: BudgetLabel("moderate")},
			wantTier: "moderate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := tt.raw
			req, err := Extract(&raw)
			require.NoError(t, err)

			if tt.wantNil {
				assert.Nil(t, req.Budget)
				return
			}
			require.NotNil(t, req.Budget)
			assert.Equal(t, tt.wantConstrained, req.Budget.Constrained)
			assert.Equal(t, tt.wantTier, req.Budget.Tier)
		})
	}
}

func TestExtract_PassThroughFields(t *testing.T) {
	req, err := Extract(&RawInput{
		TechnicalExpertise: "expert",
		Security:           "high",
		Performance: &RawPerformance{
			HighAvailability: ptr.To(true),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, ExpertiseExpert, req.Expertise)
	assert.Equal(t, SecurityHigh, req.Security)
	require.NotNil(t, req.Performance)
	assert.True(t, req.Performance.HighAvailability)
	assert.False(t, req.Performance.Scalability)
}

func TestExtract_UnknownExpertisePassesThrough(t *testing.T) {
	req, err := Extract(&RawInput{TechnicalExpertise: "wizard"})
	require.NoError(t, err)
	assert.Equal(t, Expertise("wizard"), req.Expertise)
}

func TestExtractText_KeywordSupplements(t *testing.T) {
	req, err := ExtractText("Production GPU training on a confidential dataset that must scale")
	require.NoError(t, err)

	require.NotNil(t, req.Performance)
	assert.True(t, req.Performance.HighAvailability)
	assert.True(t, req.Performance.Scalability)
	assert.Equal(t, SecurityHigh, req.Security)
	assert.True(t, req.Specific.GPU)
	assert.Equal(t, "high", req.Specific.Storage)
	assert.Empty(t, req.Specific.Memory)
}

func TestExtract_IsPure(t *testing.T) {
	raw := &RawInput{WorkloadType: "kubernetes deployments", Budget: BudgetLabel("low")}

	first, err := Extract(raw)
	require.NoError(t, err)
	second, err := Extract(raw)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotSame(t, first, second)
	assert.Equal(t, "low", raw.Budget.Label)
}

func TestSearchFields(t *testing.T) {
	req := &Requirements{
		WorkloadType: "rendering",
		ComputeLevel: ComputeHigh,
		Expertise:    ExpertiseBeginner,
		Security:     SecurityStandard,
		Budget:       &Budget{Tier: "low"},
		Performance:  &Performance{Scalability: true},
	}

	assert.Equal(t,
		[]string{"rendering", "high", "beginner", "standard", "budget", "low", "scalability"},
		req.SearchFields())

	var nilReq *Requirements
	assert.Nil(t, nilReq.SearchFields())
}
