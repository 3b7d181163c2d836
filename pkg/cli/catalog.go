package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/computeadvisor/advisor/pkg/catalog"
	adverrors "github.com/computeadvisor/advisor/pkg/errors"
	"github.com/computeadvisor/advisor/pkg/oci"
	"github.com/computeadvisor/advisor/pkg/serializer"
)

// catalogSummary is printed by catalog validate and catalog push.
type catalogSummary struct {
	Source    string   `json:"source" yaml:"source"`
	Version   string   `json:"version" yaml:"version"`
	Platforms []string `json:"platforms" yaml:"platforms"`
	Patterns  []string `json:"patterns" yaml:"patterns"`
	Digest    string   `json:"digest,omitempty" yaml:"digest,omitempty"`
}

func summarize(source string, c *catalog.Catalog) catalogSummary {
	s := catalogSummary{
		Source:    source,
		Version:   c.Version,
		Platforms: c.Keys(),
		Patterns:  make([]string, 0, len(c.Patterns)),
	}
	for _, p := range c.Patterns {
		s.Patterns = append(s.Patterns, p.Key)
	}
	return s
}

func catalogCmd() *cli.Command {
	return &cli.Command{
		Name:                  "catalog",
		EnableShellCompletion: true,
		Usage:                 "Validate, export and distribute platform catalogs",
		Description: `A catalog holds the platform profiles, problem patterns and reasoning
tables the advisor works from. A built-in catalog ships with the binary;
--catalog (or ADVISOR_CATALOG) selects another one from a file or an OCI
registry.

# Examples

  advisor catalog validate my-catalog.yaml
  advisor catalog export -o catalog.yaml
  advisor catalog push my-catalog.yaml oci://ghcr.io/acme/advisor-catalog:v2
  advisor catalog pull oci://ghcr.io/acme/advisor-catalog:v2 -o catalog.yaml
  advisor --catalog oci://ghcr.io/acme/advisor-catalog:v2 recommend --text "..."`,
		Commands: []*cli.Command{
			catalogValidateCmd(),
			catalogExportCmd(),
			catalogPushCmd(),
			catalogPullCmd(),
		},
	}
}

func catalogValidateCmd() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Validate a catalog file, or the catalog in use when no file is given",
		ArgsUsage: "[FILE]",
		Flags:     []cli.Flag{newOutputFlag(), newFormatFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			source := "built-in"
			var (
				cat *catalog.Catalog
				err error
			)
			switch {
			case cmd.Args().Present():
				source = cmd.Args().First()
				cat, err = catalog.LoadFile(source)
			case cmd.String("catalog") != "":
				source = cmd.String("catalog")
				cat, err = loadCatalog(ctx, cmd)
			default:
				cat, err = catalog.Default()
			}
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, summarize(source, cat))
		},
	}
}

func catalogExportCmd() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write the catalog in use",
		Flags: []cli.Flag{newOutputFlag(), newFormatFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := newAdvisor(ctx, cmd)
			if err != nil {
				return err
			}
			cat, err := a.Catalog()
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, cat)
		},
	}
}

func catalogPushCmd() *cli.Command {
	return &cli.Command{
		Name:      "push",
		Usage:     "Validate a catalog file and push it to an OCI registry",
		ArgsUsage: "FILE oci://REGISTRY/REPOSITORY:TAG",
		Flags:     []cli.Flag{newOutputFlag(), newFormatFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return adverrors.New(adverrors.ErrCodeInvalidRequest,
					"catalog push expects a file and an oci:// reference")
			}
			path, location := cmd.Args().Get(0), cmd.Args().Get(1)
			if !oci.IsReference(location) {
				return adverrors.New(adverrors.ErrCodeInvalidRequest,
					fmt.Sprintf("%q is not an %s reference", location, oci.URIScheme))
			}

			cat, err := catalog.LoadFile(path)
			if err != nil {
				return err
			}

			desc, err := oci.NewClient(registryOptions(cmd)...).Push(ctx, location, cat)
			if err != nil {
				return err
			}

			summary := summarize(location, cat)
			summary.Digest = desc.Digest.String()
			return writeOutput(ctx, cmd, summary)
		},
	}
}

func catalogPullCmd() *cli.Command {
	return &cli.Command{
		Name:      "pull",
		Usage:     "Pull a catalog from an OCI registry and write it as YAML",
		ArgsUsage: "oci://REGISTRY/REPOSITORY[:TAG|@DIGEST]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output file path (default: stdout)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			location := cmd.Args().First()
			if !oci.IsReference(location) {
				return adverrors.New(adverrors.ErrCodeInvalidRequest,
					fmt.Sprintf("catalog pull expects an %s reference", oci.URIScheme))
			}

			data, err := oci.NewClient(registryOptions(cmd)...).PullData(ctx, location)
			if err != nil {
				return err
			}
			if _, err := catalog.Parse(data); err != nil {
				return fmt.Errorf("catalog %s: %w", location, err)
			}

			path := strings.TrimSpace(cmd.String("output"))
			if path == "" || path == serializer.StdoutURI {
				_, err := os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %q: %w", path, err)
			}
			return nil
		},
	}
}
