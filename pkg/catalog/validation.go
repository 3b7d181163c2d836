package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationRule checks one structural invariant of a catalog.
type ValidationRule func(*Catalog) []error

// DefaultValidationRules returns the invariants every loaded catalog must hold.
func DefaultValidationRules() []ValidationRule {
	return []ValidationRule{
		validateVersion,
		validatePlatforms,
		validatePatterns,
		validateReasoning,
	}
}

// Validate runs rules against c and joins every violation into one error.
// It returns nil when c holds all invariants.
func (c *Catalog) Validate(rules []ValidationRule) error {
	if c == nil {
		return fmt.Errorf("catalog cannot be nil")
	}
	var errs []error
	for _, rule := range rules {
		errs = append(errs, rule(c)...)
	}
	return errors.Join(errs...)
}

func validateVersion(c *Catalog) []error {
	if c.Version != APIVersion {
		return []error{fmt.Errorf("unsupported catalog version %q, expected %q", c.Version, APIVersion)}
	}
	return nil
}

func validatePlatforms(c *Catalog) []error {
	var errs []error
	if len(c.Platforms) == 0 {
		errs = append(errs, fmt.Errorf("catalog declares no platforms"))
	}

	seen := make(map[string]bool, len(c.Platforms))
	for i, p := range c.Platforms {
		key := strings.TrimSpace(p.Key)
		if key == "" {
			errs = append(errs, fmt.Errorf("platforms[%d]: key is required", i))
			continue
		}
		if seen[key] {
			errs = append(errs, fmt.Errorf("platform %q: duplicate key", key))
		}
		seen[key] = true

		if len(p.Strengths) == 0 {
			errs = append(errs, fmt.Errorf("platform %q: strengths must not be empty", key))
		}
		if len(p.Weaknesses) == 0 {
			errs = append(errs, fmt.Errorf("platform %q: weaknesses must not be empty", key))
		}
		if len(p.IdealWorkloads) == 0 {
			errs = append(errs, fmt.Errorf("platform %q: idealWorkloads must not be empty", key))
		}
		for _, tags := range [][]string{p.Strengths, p.Weaknesses, p.IdealWorkloads} {
			for _, tag := range tags {
				if strings.TrimSpace(tag) == "" {
					errs = append(errs, fmt.Errorf("platform %q: empty tag", key))
				}
			}
		}
		if !p.Cost.Base.IsValid() {
			errs = append(errs, fmt.Errorf("platform %q: invalid cost class %q, supported values: %v",
				key, p.Cost.Base, SupportedCostClasses()))
		}
		if !p.Cost.Scaling.IsValid() {
			errs = append(errs, fmt.Errorf("platform %q: invalid scaling model %q, supported values: %v",
				key, p.Cost.Scaling, SupportedScalingModels()))
		}
	}
	return errs
}

func validatePatterns(c *Catalog) []error {
	var errs []error
	seen := make(map[string]bool, len(c.Patterns))
	for i, p := range c.Patterns {
		if p.Key == "" {
			errs = append(errs, fmt.Errorf("patterns[%d]: key is required", i))
			continue
		}
		if seen[p.Key] {
			errs = append(errs, fmt.Errorf("pattern %q: duplicate key", p.Key))
		}
		seen[p.Key] = true

		if !p.Category.IsValid() {
			errs = append(errs, fmt.Errorf("pattern %q: invalid category %q, supported values: %v",
				p.Key, p.Category, SupportedCategories()))
		}
		if p.Metric == "" {
			errs = append(errs, fmt.Errorf("pattern %q: metric is required", p.Key))
		}
		if !p.Operator.IsValid() {
			errs = append(errs, fmt.Errorf("pattern %q: invalid operator %q, supported values: %v",
				p.Key, p.Operator, SupportedOperators()))
		}
		switch {
		case p.Threshold == nil && p.CompareTo == "":
			errs = append(errs, fmt.Errorf("pattern %q: one of threshold or compareTo is required", p.Key))
		case p.Threshold != nil && p.CompareTo != "":
			errs = append(errs, fmt.Errorf("pattern %q: threshold and compareTo are mutually exclusive", p.Key))
		}

		action, ok := p.Solution(DefaultSolution)
		if !ok || strings.TrimSpace(action) == "" {
			errs = append(errs, fmt.Errorf("pattern %q: %s is required", p.Key, DefaultSolution))
		}
		for _, s := range p.Solutions {
			if s.Platform == "" || strings.TrimSpace(s.Action) == "" {
				errs = append(errs, fmt.Errorf("pattern %q: solutions need both platform and action", p.Key))
			}
		}
	}
	return errs
}

func validateReasoning(c *Catalog) []error {
	var errs []error
	check := func(kind string, sets []KeywordSet) {
		seen := make(map[string]bool, len(sets))
		for _, s := range sets {
			if s.Tag == "" {
				errs = append(errs, fmt.Errorf("%s: tag is required", kind))
				continue
			}
			if seen[s.Tag] {
				errs = append(errs, fmt.Errorf("%s %q: duplicate tag", kind, s.Tag))
			}
			seen[s.Tag] = true
			if len(s.Keywords) == 0 {
				errs = append(errs, fmt.Errorf("%s %q: keywords must not be empty", kind, s.Tag))
			}
		}
	}
	check("strengthKeywords", c.Reasoning.StrengthKeywords)
	check("weaknessAreas", c.Reasoning.WeaknessAreas)
	return errs
}
