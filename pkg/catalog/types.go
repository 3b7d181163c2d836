package catalog

import (
	"slices"
	"strings"
)

const (
	// APIVersion is the version of the catalog document format.
	APIVersion = "v1"

	// DefaultSolution is the solution key every detection pattern must define.
	DefaultSolution = "defaultSolution"
)

// CostClass is the coarse price level of a platform.
type CostClass string

const (
	CostVeryLow  CostClass = "very-low"
	CostLow      CostClass = "low"
	CostModerate CostClass = "moderate"
	CostHigh     CostClass = "high"
)

// SupportedCostClasses returns the cost classes a profile may declare.
func SupportedCostClasses() []CostClass {
	return []CostClass{CostVeryLow, CostLow, CostModerate, CostHigh}
}

// IsValid reports whether c is one of the supported cost classes.
func (c CostClass) IsValid() bool {
	return slices.Contains(SupportedCostClasses(), c)
}

// ScalingModel describes how a platform's cost grows with usage.
type ScalingModel string

const (
	ScalingLinear   ScalingModel = "linear"
	ScalingFlexible ScalingModel = "flexible"
	ScalingFixed    ScalingModel = "fixed"
)

// SupportedScalingModels returns the scaling models a profile may declare.
func SupportedScalingModels() []ScalingModel {
	return []ScalingModel{ScalingLinear, ScalingFlexible, ScalingFixed}
}

// IsValid reports whether s is one of the supported scaling models.
func (s ScalingModel) IsValid() bool {
	return slices.Contains(SupportedScalingModels(), s)
}

// CostStructure is the pricing shape of a platform.
type CostStructure struct {
	Base              CostClass    `json:"base" yaml:"base"`
	Scaling           ScalingModel `json:"scaling" yaml:"scaling"`
	MinimumCommitment bool         `json:"minimumCommitment" yaml:"minimumCommitment"`
}

// PlatformProfile describes one compute provider. Tag slices keep the order
// they were declared in, which is the order every consumer iterates them in.
type PlatformProfile struct {
	Key            string        `json:"key" yaml:"key"`
	Name           string        `json:"name,omitempty" yaml:"name,omitempty"`
	Strengths      []string      `json:"strengths" yaml:"strengths"`
	Weaknesses     []string      `json:"weaknesses" yaml:"weaknesses"`
	IdealWorkloads []string      `json:"idealWorkloads" yaml:"idealWorkloads"`
	Cost           CostStructure `json:"cost" yaml:"cost"`
}

// HasStrength reports whether the profile declares the given strength tag.
func (p PlatformProfile) HasStrength(tag string) bool {
	for _, s := range p.Strengths {
		if strings.EqualFold(s, tag) {
			return true
		}
	}
	return false
}

// DisplayName returns Name, or Key when no name is set.
func (p PlatformProfile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Key
}

// Category groups detection patterns.
type Category string

const (
	CategoryPerformance Category = "performance"
	CategoryCost        Category = "cost"
	CategoryScaling     Category = "scaling"
)

// SupportedCategories returns the pattern categories in evaluation order.
func SupportedCategories() []Category {
	return []Category{CategoryPerformance, CategoryCost, CategoryScaling}
}

// IsValid reports whether c is a supported category.
func (c Category) IsValid() bool {
	return slices.Contains(SupportedCategories(), c)
}

// String returns the category name.
func (c Category) String() string {
	return string(c)
}

// Operator is the comparison a detection predicate applies.
type Operator string

const (
	OpGreaterThan    Operator = "gt"
	OpGreaterOrEqual Operator = "gte"
	OpLessThan       Operator = "lt"
	OpLessOrEqual    Operator = "lte"
)

// SupportedOperators returns the predicate operators.
func SupportedOperators() []Operator {
	return []Operator{OpGreaterThan, OpGreaterOrEqual, OpLessThan, OpLessOrEqual}
}

// IsValid reports whether o is a supported operator.
func (o Operator) IsValid() bool {
	return slices.Contains(SupportedOperators(), o)
}

// Compare applies the operator to a and b.
func (o Operator) Compare(a, b float64) bool {
	switch o {
	case OpGreaterThan:
		return a > b
	case OpGreaterOrEqual:
		return a >= b
	case OpLessThan:
		return a < b
	case OpLessOrEqual:
		return a <= b
	default:
		return false
	}
}

// Solution is a remediation for one platform key, or for DefaultSolution.
type Solution struct {
	Platform string `json:"platform" yaml:"platform"`
	Action   string `json:"action" yaml:"action"`
}

// Pattern is a named threshold rule over a metrics snapshot.
//
// The predicate is "Metric Operator Threshold" when Threshold is set, or
// "Metric Operator CompareTo" when the rule compares two metrics.
type Pattern struct {
	Key         string     `json:"key" yaml:"key"`
	Category    Category   `json:"category" yaml:"category"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Metric      string     `json:"metric" yaml:"metric"`
	Operator    Operator   `json:"operator" yaml:"operator"`
	Threshold   *float64   `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	CompareTo   string     `json:"compareTo,omitempty" yaml:"compareTo,omitempty"`
	Solutions   []Solution `json:"solutions" yaml:"solutions"`
}

// Solution returns the action registered for platform, if any.
func (p *Pattern) Solution(platform string) (string, bool) {
	for _, s := range p.Solutions {
		if s.Platform == platform {
			return s.Action, true
		}
	}
	return "", false
}

// KeywordSet maps a profile tag to the requirement keywords that make it relevant.
type KeywordSet struct {
	Tag      string   `json:"tag" yaml:"tag"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// Reasoning holds the keyword tables used to explain scores.
type Reasoning struct {
	// StrengthKeywords expands a strength tag into the keywords that show a
	// requirement benefits from it.
	StrengthKeywords []KeywordSet `json:"strengthKeywords" yaml:"strengthKeywords"`

	// WeaknessAreas lists the critical areas in which a weakness matters.
	WeaknessAreas []KeywordSet `json:"weaknessAreas" yaml:"weaknessAreas"`
}

// Catalog is the read-only set of platform profiles, detection patterns and
// reasoning tables. A Catalog must not be modified once it has been parsed;
// replace it as a whole with Swap instead.
type Catalog struct {
	Version   string            `json:"version" yaml:"version"`
	Platforms []PlatformProfile `json:"platforms" yaml:"platforms"`
	Patterns  []Pattern         `json:"patterns" yaml:"patterns"`
	Reasoning Reasoning         `json:"reasoning" yaml:"reasoning"`

	index map[string]int
}

// Get returns the profile registered under key.
func (c *Catalog) Get(key string) (PlatformProfile, bool) {
	if c == nil {
		return PlatformProfile{}, false
	}
	if c.index == nil {
		for _, p := range c.Platforms {
			if p.Key == key {
				return p, true
			}
		}
		return PlatformProfile{}, false
	}
	i, ok := c.index[key]
	if !ok {
		return PlatformProfile{}, false
	}
	return c.Platforms[i], true
}

// Keys returns the platform keys in catalog order.
func (c *Catalog) Keys() []string {
	if c == nil {
		return nil
	}
	keys := make([]string, 0, len(c.Platforms))
	for _, p := range c.Platforms {
		keys = append(keys, p.Key)
	}
	return keys
}

// PatternsFor returns the patterns of one category in declaration order.
func (c *Catalog) PatternsFor(category Category) []*Pattern {
	if c == nil {
		return nil
	}
	var out []*Pattern
	for i := range c.Patterns {
		if c.Patterns[i].Category == category {
			out = append(out, &c.Patterns[i])
		}
	}
	return out
}

// Pattern returns the pattern with the given key.
func (c *Catalog) Pattern(key string) (*Pattern, bool) {
	if c == nil {
		return nil, false
	}
	for i := range c.Patterns {
		if c.Patterns[i].Key == key {
			return &c.Patterns[i], true
		}
	}
	return nil, false
}

// StrengthKeywords returns the keywords for a strength tag. A tag without an
// entry is its own keyword.
func (c *Catalog) StrengthKeywords(tag string) []string {
	return lookupKeywords(c.reasoning().StrengthKeywords, tag)
}

// WeaknessAreas returns the critical areas for a weakness tag. A tag without
// an entry is its own area.
func (c *Catalog) WeaknessAreas(tag string) []string {
	return lookupKeywords(c.reasoning().WeaknessAreas, tag)
}

func (c *Catalog) reasoning() Reasoning {
	if c == nil {
		return Reasoning{}
	}
	return c.Reasoning
}

func lookupKeywords(sets []KeywordSet, tag string) []string {
	for _, s := range sets {
		if s.Tag == tag {
			return s.Keywords
		}
	}
	return []string{tag}
}

// buildIndex records the position of every platform key.
func (c *Catalog) buildIndex() {
	c.index = make(map[string]int, len(c.Platforms))
	for i, p := range c.Platforms {
		if _, exists := c.index[p.Key]; !exists {
			c.index[p.Key] = i
		}
	}
}
