package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
)

func scoreCmd() *cli.Command {
	return &cli.Command{
		Name:                  "score",
		EnableShellCompletion: true,
		Usage:                 "Score platforms against a workload description",
		Description: `Scores platforms on workload fit, budget, technical expertise and
performance. Without --platform every catalog platform is scored. Unknown
platform keys score zero and the closest catalog keys are suggested.

# Examples

  advisor score --text "simple AI projects" --expertise beginner
  advisor score --workload "ML training" -p akashNetwork -p netmindAI --format table`,
		Flags: append(requirementFlags(),
			&cli.StringSliceFlag{
				Name:    "platform",
				Aliases: []string{"p"},
				Usage:   "platform key to score (can be repeated)",
			},
			newOutputFlag(),
			newFormatFlag(),
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			raw, err := buildInputFromCmd(ctx, cmd)
			if err != nil {
				return err
			}

			a, err := newAdvisor(ctx, cmd)
			if err != nil {
				return err
			}

			req, err := a.ExtractRequirements(raw)
			if err != nil {
				return err
			}

			doc, err := a.Scores(req, cmd.StringSlice("platform"))
			if err != nil {
				return err
			}

			for _, key := range cmd.StringSlice("platform") {
				suggestions, ok := doc.Suggestions[key]
				if !ok {
					continue
				}
				msg := fmt.Sprintf("unknown platform %q", key)
				if len(suggestions) > 0 {
					msg += fmt.Sprintf(", did you mean %s?", strings.Join(suggestions, " or "))
				}
				fmt.Fprintln(errWriter(cmd), msg)
			}

			return writeOutput(ctx, cmd, doc)
		},
	}
}

func errWriter(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.ErrWriter != nil {
		return root.ErrWriter
	}
	return os.Stderr
}
