package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/computeadvisor/advisor/pkg/advisor"
	"github.com/computeadvisor/advisor/pkg/catalog"
	"github.com/computeadvisor/advisor/pkg/detector"
)

func detectCmd() *cli.Command {
	categories := make([]string, 0, len(catalog.SupportedCategories()))
	for _, c := range catalog.SupportedCategories() {
		categories = append(categories, c.String())
	}

	return &cli.Command{
		Name:                  "detect",
		EnableShellCompletion: true,
		Usage:                 "Check operational metrics against known problem patterns",
		Description: `Compares a metrics snapshot with the catalog's problem patterns (high
latency, memory pressure, billing above budget, capacity limits) and lists
every match with the remediation for each requested platform.

# Examples

  advisor detect -m latency=150 -m utilizationRate=92
  advisor detect -m monthlyCost=500 -m budget=300 --category cost -p akashNetwork`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     "metric",
				Aliases:  []string{"m"},
				Required: true,
				Usage:    "operational metric (format: name=value, can be repeated)",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "ignore metrics matching these names; a leading or trailing * is a wildcard (can be repeated)",
			},
			&cli.StringFlag{
				Name:    "category",
				Aliases: []string{"c"},
				Usage:   fmt.Sprintf("only check patterns of this category (%s)", strings.Join(categories, ", ")),
			},
			&cli.StringSliceFlag{
				Name:    "platform",
				Aliases: []string{"p"},
				Usage:   "platform to include remediations for (can be repeated)",
			},
			newOutputFlag(),
			newFormatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			metrics, err := detector.ParseMetrics(cmd.StringSlice("metric"))
			if err != nil {
				return err
			}
			metrics = metrics.Without(cmd.StringSlice("exclude"))

			a, err := newAdvisor(ctx, cmd)
			if err != nil {
				return err
			}

			doc, err := a.Detections(advisor.DetectionRequest{
				Metrics:   metrics,
				Category:  catalog.Category(cmd.String("category")),
				Platforms: cmd.StringSlice("platform"),
			})
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, doc)
		},
	}
}
