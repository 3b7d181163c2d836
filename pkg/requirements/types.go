package requirements

import (
	"github.com/shopspring/decimal"
)

// ComputeLevel is the coarse amount of compute a workload needs.
type ComputeLevel string

const (
	ComputeLow    ComputeLevel = "low"
	ComputeMedium ComputeLevel = "medium"
	ComputeHigh   ComputeLevel = "high"
)

// Expertise is the operator's technical experience. Values outside the
// known three are passed through unchanged.
type Expertise string

const (
	ExpertiseBeginner     Expertise = "beginner"
	ExpertiseIntermediate Expertise = "intermediate"
	ExpertiseExpert       Expertise = "expert"
)

// SecurityLevel is the requested isolation level.
type SecurityLevel string

const (
	SecurityStandard SecurityLevel = "standard"
	SecurityHigh     SecurityLevel = "high"
)

// Budget describes a budget requirement. A nil *Budget on Requirements means
// the caller stated no budget at all.
type Budget struct {
	// Constrained is set when the known monthly cost exceeds the limit.
	Constrained bool `json:"constrained" yaml:"constrained"`

	// Tier is the caller's budget label (low, moderate, high). It is carried
	// through as given and never interpreted numerically.
	Tier string `json:"tier,omitempty" yaml:"tier,omitempty"`

	Limit       *decimal.Decimal `json:"limit,omitempty" yaml:"limit,omitempty"`
	MonthlyCost *decimal.Decimal `json:"monthlyCost,omitempty" yaml:"monthlyCost,omitempty"`
}

// Performance holds the availability and scaling needs of a workload.
type Performance struct {
	HighAvailability bool `json:"highAvailability" yaml:"highAvailability"`
	Scalability      bool `json:"scalability" yaml:"scalability"`
}

// Specific holds hardware hints found in the input text.
type Specific struct {
	GPU     bool   `json:"gpu" yaml:"gpu"`
	Memory  string `json:"memory,omitempty" yaml:"memory,omitempty"`
	Storage string `json:"storage,omitempty" yaml:"storage,omitempty"`
}

// Requirements is the canonical description of one workload. It is built
// fresh for every request and never modified afterwards.
type Requirements struct {
	WorkloadType string        `json:"workloadType" yaml:"workloadType"`
	Description  string        `json:"description,omitempty" yaml:"description,omitempty"`
	ComputeLevel ComputeLevel  `json:"computeLevel" yaml:"computeLevel"`
	Budget       *Budget       `json:"budget,omitempty" yaml:"budget,omitempty"`
	Expertise    Expertise     `json:"technicalExpertise" yaml:"technicalExpertise"`
	Performance  *Performance  `json:"performance,omitempty" yaml:"performance,omitempty"`
	Security     SecurityLevel `json:"security" yaml:"security"`
	Specific     Specific      `json:"specific" yaml:"specific"`
}

// SearchFields returns the text the reasoning tables are matched against.
// Each entry is one field; the list is fixed so matching never depends on
// how Requirements happens to be serialized.
func (r *Requirements) SearchFields() []string {
	if r == nil {
		return nil
	}

	fields := []string{
		r.WorkloadType,
		r.Description,
		string(r.ComputeLevel),
		string(r.Expertise),
		string(r.Security),
	}

	if r.Budget != nil {
		fields = append(fields, "budget", r.Budget.Tier)
		if r.Budget.Constrained {
			fields = append(fields, "cost")
		}
	}
	if r.Performance != nil {
		if r.Performance.HighAvailability {
			fields = append(fields, "high availability")
		}
		if r.Performance.Scalability {
			fields = append(fields, "scalability")
		}
	}
	if r.Specific.GPU {
		fields = append(fields, "gpu")
	}
	if r.Specific.Memory != "" {
		fields = append(fields, "memory")
	}
	if r.Specific.Storage != "" {
		fields = append(fields, "storage")
	}

	out := fields[:0]
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
