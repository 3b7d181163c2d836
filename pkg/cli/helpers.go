package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v3"
	"k8s.io/utils/ptr"

	adverrors "github.com/computeadvisor/advisor/pkg/errors"
	"github.com/computeadvisor/advisor/pkg/requirements"
	"github.com/computeadvisor/advisor/pkg/serializer"
)

// parseOutputFormat extracts and validates the output format from CLI flags.
// Returns the validated format or an error if the format is unknown.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", adverrors.New(adverrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown output format: %q, valid formats are: %s",
				outFormat, strings.Join(serializer.SupportedFormats(), ", ")))
	}
	return outFormat, nil
}

// writeOutput serializes data to the destination chosen with --output in the
// format chosen with --format.
func writeOutput(ctx context.Context, cmd *cli.Command, data any) error {
	outFormat, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	ser, err := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
	if err != nil {
		return err
	}
	defer func() {
		if c, ok := ser.(serializer.Closer); ok {
			if err := c.Close(); err != nil {
				slog.Warn("failed to close serializer", "error", err)
			}
		}
	}()

	return ser.Serialize(ctx, data)
}

// requirementFlags describe a workload. They are shared by the commands
// that extract requirements.
func requirementFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "text",
			Aliases: []string{"d"},
			Usage:   "free-text workload description",
		},
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Usage: `Path/URI to a workload description document (YAML or JSON).
	Supports: file paths, - for stdin, or ConfigMap URIs (cm://namespace/name).`,
		},
		&cli.StringFlag{
			Name:  "workload",
			Usage: "workload type, e.g. \"simple AI projects\" or \"ML training\"",
		},
		&cli.StringFlag{
			Name:  "compute",
			Usage: "compute needs, e.g. \"GPU intensive\"",
		},
		&cli.StringFlag{
			Name:  "budget",
			Usage: "budget as an amount (e.g. 300) or a label (low, moderate, high)",
		},
		&cli.StringFlag{
			Name:  "monthly-cost",
			Usage: "current monthly spend",
		},
		&cli.StringFlag{
			Name:  "expertise",
			Usage: fmt.Sprintf("technical expertise (%s, %s, %s)", requirements.ExpertiseBeginner, requirements.ExpertiseIntermediate, requirements.ExpertiseExpert),
		},
		&cli.StringFlag{
			Name:  "security",
			Usage: fmt.Sprintf("security level (%s, %s)", requirements.SecurityStandard, requirements.SecurityHigh),
		},
		&cli.BoolFlag{
			Name:  "high-availability",
			Usage: "the workload needs high availability",
		},
		&cli.BoolFlag{
			Name:  "scalability",
			Usage: "the workload needs to scale",
		},
	}
}

// buildInputFromCmd assembles raw input from --input and the requirement
// flags. Flags override values read from the input document.
func buildInputFromCmd(ctx context.Context, cmd *cli.Command) (*requirements.RawInput, error) {
	raw := &requirements.RawInput{}
	given := false

	if uri := cmd.String("input"); uri != "" {
		r, err := serializer.Open(ctx, uri)
		if err != nil {
			return nil, adverrors.Wrap(adverrors.ErrCodeInvalidRequest, "failed to read input", err)
		}
		if err := r.Deserialize(raw); err != nil {
			return nil, adverrors.Wrap(adverrors.ErrCodeInvalidRequest,
				fmt.Sprintf("failed to decode input %s", uri), err)
		}
		given = true
	}

	strs := map[string]*string{
		"text":      &raw.Description,
		"workload":  &raw.WorkloadType,
		"compute":   &raw.ComputeNeeds,
		"expertise": &raw.TechnicalExpertise,
		"security":  &raw.Security,
	}
	for flag, field := range strs {
		if cmd.IsSet(flag) {
			*field = cmd.String(flag)
			given = true
		}
	}

	if cmd.IsSet("budget") {
		b := strings.TrimSpace(cmd.String("budget"))
		if d, err := decimal.NewFromString(b); err == nil {
			raw.Budget = requirements.BudgetAmount(d)
		} else {
			raw.Budget = requirements.BudgetLabel(b)
		}
		given = true
	}

	if cmd.IsSet("monthly-cost") {
		d, err := decimal.NewFromString(strings.TrimSpace(cmd.String("monthly-cost")))
		if err != nil {
			return nil, adverrors.Wrap(adverrors.ErrCodeInvalidRequest,
				fmt.Sprintf("invalid --monthly-cost %q", cmd.String("monthly-cost")), err)
		}
		raw.MonthlyCost = &d
		given = true
	}

	for flag, set := range map[string]func(*requirements.RawPerformance, bool){
		"high-availability": func(p *requirements.RawPerformance, v bool) { p.HighAvailability = ptr.To(v) },
		"scalability":       func(p *requirements.RawPerformance, v bool) { p.Scalability = ptr.To(v) },
	} {
		if !cmd.IsSet(flag) {
			continue
		}
		if raw.Performance == nil {
			raw.Performance = &requirements.RawPerformance{}
		}
		set(raw.Performance, cmd.Bool(flag))
		given = true
	}

	if !given {
		return nil, adverrors.New(adverrors.ErrCodeInvalidRequest,
			"describe the workload with --text, --input or the requirement flags")
	}
	return raw, nil
}
