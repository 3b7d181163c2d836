package scoring

import (
	"github.com/computeadvisor/advisor/pkg/catalog"
)

// Strength tags the technical and performance sub-scores look for.
const (
	TagEasyToUse            = "easy to use"
	TagHighlyCustomizable   = "highly customizable"
	TagRobustInfrastructure = "robust infrastructure"
)

// TechnicalWeights are the points awarded for the operator's expertise.
type TechnicalWeights struct {
	// BeginnerEasy applies to beginners on platforms that are easy to use;
	// BeginnerOther to every other platform.
	BeginnerEasy  int `json:"beginnerEasy" yaml:"beginnerEasy"`
	BeginnerOther int `json:"beginnerOther" yaml:"beginnerOther"`

	Intermediate int `json:"intermediate" yaml:"intermediate"`

	// ExpertCustomizable applies to experts on highly customizable
	// platforms; ExpertOther to every other platform.
	ExpertCustomizable int `json:"expertCustomizable" yaml:"expertCustomizable"`
	ExpertOther        int `json:"expertOther" yaml:"expertOther"`

	// Unknown applies to any expertise value outside the three levels.
	Unknown int `json:"unknown" yaml:"unknown"`
}

// Weights are the points each sub-score awards.
type Weights struct {
	Workload         int                       `json:"workload" yaml:"workload"`
	Budget           map[catalog.CostClass]int `json:"budget" yaml:"budget"`
	Technical        TechnicalWeights          `json:"technical" yaml:"technical"`
	HighAvailability int                       `json:"highAvailability" yaml:"highAvailability"`
	Scalability      int                       `json:"scalability" yaml:"scalability"`
}

// DefaultWeights returns the standard scoring table.
func DefaultWeights() Weights {
	return Weights{
		Workload: 30,
		Budget: map[catalog.CostClass]int{
			catalog.CostVeryLow:  25,
			catalog.CostLow:      20,
			catalog.CostModerate: 15,
			catalog.CostHigh:     10,
		},
		Technical: TechnicalWeights{
			BeginnerEasy:       20,
			BeginnerOther:      5,
			Intermediate:       15,
			ExpertCustomizable: 20,
			ExpertOther:        10,
			Unknown:            10,
		},
		HighAvailability: 15,
		Scalability:      15,
	}
}

// budgetPoints returns the budget points for a cost class, zero for a class
// without an entry.
func (w Weights) budgetPoints(class catalog.CostClass) int {
	return w.Budget[class]
}
