package requirements

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	adverrors "github.com/computeadvisor/advisor/pkg/errors"
)

// RawInput is loosely structured user input. Every field is optional.
type RawInput struct {
	Description        string           `json:"description,omitempty" yaml:"description,omitempty"`
	WorkloadType       string           `json:"workloadType,omitempty" yaml:"workloadType,omitempty"`
	ComputeNeeds       string           `json:"computeNeeds,omitempty" yaml:"computeNeeds,omitempty"`
	Budget             *BudgetValue     `json:"budget,omitempty" yaml:"budget,omitempty"`
	MonthlyCost        *decimal.Decimal `json:"monthlyCost,omitempty" yaml:"monthlyCost,omitempty"`
	TechnicalExpertise string           `json:"technicalExpertise,omitempty" yaml:"technicalExpertise,omitempty"`
	Security           string           `json:"security,omitempty" yaml:"security,omitempty"`
	Performance        *RawPerformance  `json:"performance,omitempty" yaml:"performance,omitempty"`
}

// RawPerformance is the optional performance section of RawInput.
type RawPerformance struct {
	HighAvailability *bool `json:"highAvailability,omitempty" yaml:"highAvailability,omitempty"`
	Scalability      *bool `json:"scalability,omitempty" yaml:"scalability,omitempty"`
}

// BudgetValue is a budget given either as an amount or as a label.
// In JSON it is a number, a numeric string, or a label string.
type BudgetValue struct {
	Amount *decimal.Decimal
	Label  string
}

// BudgetAmount returns a BudgetValue holding an amount.
func BudgetAmount(amount decimal.Decimal) *BudgetValue {
	return &BudgetValue{Amount: &amount}
}

// BudgetLabel returns a BudgetValue holding a label.
func BudgetLabel(label string) *BudgetValue {
	return &BudgetValue{Label: label}
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *BudgetValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid budget: %w", err)
		}
		s = strings.TrimSpace(s)
		if d, err := decimal.NewFromString(s); err == nil {
			b.Amount = &d
			return nil
		}
		b.Label = s
		return nil
	}

	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid budget %s: expected a number or a label", data)
	}
	b.Amount = &d
	return nil
}

// MarshalJSON implements json.Marshaler.
func (b BudgetValue) MarshalJSON() ([]byte, error) {
	if b.Amount != nil {
		return []byte(b.Amount.String()), nil
	}
	return json.Marshal(b.Label)
}

// UnmarshalYAML lets the budget be a number or a label in YAML input files.
func (b *BudgetValue) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return fmt.Errorf("invalid budget: %w", err)
	}
	quoted, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("invalid budget: %w", err)
	}
	return b.UnmarshalJSON(quoted)
}

// DecodeRawInput parses a JSON document into a RawInput. An empty document
// or JSON null yields a nil RawInput, which Extract rejects.
func DecodeRawInput(data []byte) (*RawInput, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	var raw RawInput
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, adverrors.Wrap(adverrors.ErrCodeInvalidRequest, "failed to decode input",
			fmt.Errorf("%w: %w", ErrInvalidInput, err))
	}
	return &raw, nil
}
