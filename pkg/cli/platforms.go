package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

func platformsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "platforms",
		EnableShellCompletion: true,
		Usage:                 "List the platforms in the catalog",
		Flags:                 []cli.Flag{newOutputFlag(), newFormatFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := newAdvisor(ctx, cmd)
			if err != nil {
				return err
			}

			doc, err := a.Platforms()
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, doc)
		},
	}
}
