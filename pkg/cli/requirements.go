package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

func requirementsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "requirements",
		EnableShellCompletion: true,
		Usage:                 "Show the requirements extracted from a workload description",
		Description: `Normalizes a workload description into compute level, budget, expertise,
performance, security and specific hardware hints without scoring anything.

# Examples

  advisor requirements --text "we need GPU instances for ML training"
  advisor requirements -i workload.json --format json`,
		Flags: append(requirementFlags(), newOutputFlag(), newFormatFlag()),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			raw, err := buildInputFromCmd(ctx, cmd)
			if err != nil {
				return err
			}

			a, err := newAdvisor(ctx, cmd)
			if err != nil {
				return err
			}

			doc, err := a.Requirements(raw)
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, doc)
		},
	}
}
