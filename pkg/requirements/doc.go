// Package requirements turns loosely structured user input into the
// Requirements record the scoring engine works on.
//
// Extraction is a pure function of its input. Keyword detection is a
// case-insensitive containment test against the workload type, description
// and compute needs text:
//
//	req, err := requirements.Extract(&requirements.RawInput{
//		WorkloadType: "heavy GPU rendering",
//		Budget:       requirements.BudgetLabel("moderate"),
//	})
//
// A nil input fails with ErrInvalidInput; an empty input succeeds with
// default values.
package requirements
