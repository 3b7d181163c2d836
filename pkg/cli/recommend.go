package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/computeadvisor/advisor/pkg/advisor"
	"github.com/computeadvisor/advisor/pkg/detector"
	adverrors "github.com/computeadvisor/advisor/pkg/errors"
	"github.com/computeadvisor/advisor/pkg/response"
)

// costTimeline labels the period cost narratives refer to.
const costTimeline = "per month"

// narratedReport is a report together with its prose rendering.
type narratedReport struct {
	Report    *advisor.Report      `json:"report" yaml:"report"`
	Narrative []*response.Response `json:"narrative" yaml:"narrative"`
}

func recommendCmd() *cli.Command {
	return &cli.Command{
		Name:                  "recommend",
		EnableShellCompletion: true,
		Usage:                 "Recommend compute platforms for a workload",
		Description: `Extracts requirements from a workload description, scores every platform in
the catalog, checks optional operational metrics against the known problem
patterns and prints a prioritized optimization plan.

# Examples

Describe the workload in plain text:
  advisor recommend --text "simple AI projects, beginner, low budget"

Use structured flags and current metrics:
  advisor recommend --workload "ML training" --budget 300 --monthly-cost 500 \
    --metric latency=150 --metric monthlyCost=500 --metric budget=300

Read the description from a ConfigMap and store the report next to it:
  advisor recommend -i cm://advisor/workload -o cm://advisor/report

Add a prose summary:
  advisor recommend --text "GPU intensive rendering" --prose --seed 7`,
		Flags: append(requirementFlags(),
			&cli.StringSliceFlag{
				Name:    "metric",
				Aliases: []string{"m"},
				Usage:   "operational metric checked against problem patterns (format: name=value, can be repeated)",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "ignore metrics matching these names; a leading or trailing * is a wildcard (can be repeated)",
			},
			&cli.StringSliceFlag{
				Name:    "platform",
				Aliases: []string{"p"},
				Usage:   "restrict scoring to these platform keys (can be repeated)",
			},
			&cli.BoolFlag{
				Name:  "prose",
				Usage: "add a prose summary of the plan",
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "seed for the prose phrasing; unset picks a random one",
			},
			newOutputFlag(),
			newFormatFlag(),
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			raw, err := buildInputFromCmd(ctx, cmd)
			if err != nil {
				return err
			}

			metrics, err := detector.ParseMetrics(cmd.StringSlice("metric"))
			if err != nil {
				return err
			}
			metrics = metrics.Without(cmd.StringSlice("exclude"))

			a, err := newAdvisor(ctx, cmd)
			if err != nil {
				return err
			}

			report, err := a.Advise(ctx, advisor.Request{
				Input:     raw,
				Metrics:   metrics,
				Platforms: cmd.StringSlice("platform"),
			})
			if err != nil {
				return fmt.Errorf("failed to generate recommendations: %w", err)
			}

			if !cmd.Bool("prose") {
				return writeOutput(ctx, cmd, report)
			}

			var opts []response.Option
			if cmd.IsSet("seed") {
				opts = append(opts, response.WithSeed(cmd.Uint64("seed")))
			}
			narrative, err := narrate(report, opts...)
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, narratedReport{Report: report, Narrative: narrative})
		},
	}
}

// narrate renders the recommendation, optimization and cost responses that
// apply to report.
func narrate(report *advisor.Report, opts ...response.Option) ([]*response.Response, error) {
	gen, err := response.New(opts...)
	if err != nil {
		return nil, adverrors.Wrap(adverrors.ErrCodeInternal, "failed to load response templates", err)
	}

	rec, err := gen.Recommendation(report.Plan)
	if err != nil {
		return nil, err
	}
	out := []*response.Response{rec}

	if report.Plan != nil && len(report.Plan.OptimizationSteps) > 0 {
		opt, err := gen.OptimizationFromPlan(report.Plan)
		if err != nil {
			return nil, err
		}
		out = append(out, opt)
	}

	if data, ok := response.CostFromPlan(report.Plan, costTimeline); ok {
		cost, err := gen.CostAnalysis(data)
		if err != nil {
			return nil, err
		}
		out = append(out, cost)
	}

	return out, nil
}
