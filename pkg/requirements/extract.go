package requirements

import (
	"errors"
	"log/slog"
	"strings"

	"k8s.io/utils/ptr"

	adverrors "github.com/computeadvisor/advisor/pkg/errors"
)

// ErrInvalidInput is returned, wrapped in a StructuredError with code
// INVALID_REQUEST, when there is no input to extract requirements from.
var ErrInvalidInput = errors.New("invalid input")

// Extract converts raw input into Requirements.
//
// A nil input is rejected with ErrInvalidInput. An empty input is valid and
// yields defaults: medium compute, intermediate expertise, standard security,
// no budget and no performance needs.
func Extract(raw *RawInput) (*Requirements, error) {
	if raw == nil {
		return nil, adverrors.Wrap(adverrors.ErrCodeInvalidRequest, "input is required", ErrInvalidInput)
	}

	t := newText(raw.WorkloadType, raw.Description, raw.ComputeNeeds)

	req := &Requirements{
		WorkloadType: strings.TrimSpace(raw.WorkloadType),
		Description:  strings.TrimSpace(raw.Description),
		ComputeLevel: classify(t, computeBuckets, ComputeMedium),
		Budget:       extractBudget(raw, t),
		Expertise:    extractExpertise(raw.TechnicalExpertise),
		Performance:  extractPerformance(raw.Performance, t),
		Security:     extractSecurity(raw.Security, t),
		Specific:     extractSpecific(t),
	}

	slog.Debug("extracted requirements",
		"workloadType", req.WorkloadType,
		"computeLevel", req.ComputeLevel,
		"expertise", req.Expertise,
		"security", req.Security,
		"budget", req.Budget != nil,
		"performance", req.Performance != nil,
	)

	return req, nil
}

// ExtractText extracts requirements from a free-text description.
func ExtractText(description string) (*Requirements, error) {
	return Extract(&RawInput{Description: description})
}

func extractBudget(raw *RawInput, t text) *Budget {
	if raw.Budget == nil {
		if label := classify(t, budgetBuckets, ""); label != "" {
			return &Budget{Tier: label}
		}
		return nil
	}

	if raw.Budget.Amount == nil {
		if raw.Budget.Label == "" {
			return nil
		}
		return &Budget{Tier: raw.Budget.Label}
	}

	b := &Budget{Limit: ptr.To(*raw.Budget.Amount)}
	if raw.MonthlyCost != nil {
		b.MonthlyCost = ptr.To(*raw.MonthlyCost)
		b.Constrained = raw.MonthlyCost.GreaterThan(*raw.Budget.Amount)
	}
	return b
}

func extractExpertise(value string) Expertise {
	value = strings.TrimSpace(value)
	if value == "" {
		return ExpertiseIntermediate
	}
	return Expertise(value)
}

func extractPerformance(raw *RawPerformance, t text) *Performance {
	if raw != nil {
		return &Performance{
			HighAvailability: ptr.Deref(raw.HighAvailability, false),
			Scalability:      ptr.Deref(raw.Scalability, false),
		}
	}

	ha := t.containsAny(availabilityKeywords)
	scale := t.containsAny(scalabilityKeywords)
	if !ha && !scale {
		return nil
	}
	return &Performance{HighAvailability: ha, Scalability: scale}
}

func extractSecurity(value string, t text) SecurityLevel {
	value = strings.TrimSpace(value)
	if value != "" {
		return SecurityLevel(value)
	}
	if t.containsAny(securityKeywords) {
		return SecurityHigh
	}
	return SecurityStandard
}

func extractSpecific(t text) Specific {
	var s Specific
	s.GPU = t.containsAny(gpuKeywords)
	if t.containsAny(memoryKeywords) {
		s.Memory = "high"
	}
	if t.containsAny(storageKeywords) {
		s.Storage = "high"
	}
	return s
}
