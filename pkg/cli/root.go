package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/computeadvisor/advisor/pkg/advisor"
	"github.com/computeadvisor/advisor/pkg/catalog"
	adverrors "github.com/computeadvisor/advisor/pkg/errors"
	"github.com/computeadvisor/advisor/pkg/logging"
	"github.com/computeadvisor/advisor/pkg/oci"
	"github.com/computeadvisor/advisor/pkg/serializer"
)

const (
	name           = "advisor"
	versionDefault = "dev"

	// EnvCatalog is read when --catalog is not given.
	EnvCatalog = "ADVISOR_CATALOG"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/computeadvisor/advisor/pkg/cli.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes returned by Execute.
const (
	ExitError        = 1
	ExitInvalidInput = 2
)

// Execute runs the advisor CLI with the process arguments and exits with a
// non-zero code on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := NewApp().Run(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// NewApp returns the root command.
func NewApp() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Recommend decentralized compute platforms for a workload",
		Version:               fmt.Sprintf("%s (commit: %s, date: %s)", version, commit, date),
		EnableShellCompletion: true,
		ShellComplete:         commandLister,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "write logs as JSON",
			},
			&cli.StringFlag{
				Name:    "catalog",
				Usage:   "platform catalog to use instead of the built-in one: a file path or oci://registry/repository:tag",
				Sources: cli.EnvVars(EnvCatalog),
			},
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "use HTTP instead of HTTPS for OCI registries (for local development)",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultLogger(cmd.Bool("debug"), cmd.Bool("log-json"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			recommendCmd(),
			requirementsCmd(),
			scoreCmd(),
			detectCmd(),
			platformsCmd(),
			catalogCmd(),
			serveCmd(),
		},
	}
}

// commandLister completes the names of the visible subcommands.
func commandLister(_ context.Context, cmd *cli.Command) {
	if cmd == nil {
		return
	}
	for _, c := range cmd.Commands {
		if c.Hidden {
			continue
		}
		fmt.Println(c.Name)
	}
}

func newOutputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output destination: file path, - for stdout, or ConfigMap URI (cm://namespace/name)",
	}
}

func newFormatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("output format (%s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

// registryOptions returns the OCI client options selected by global flags.
var registryOptions = func(cmd *cli.Command) []oci.Option {
	return []oci.Option{oci.WithPlainHTTP(cmd.Bool("plain-http"))}
}

// loadCatalog returns the catalog named by --catalog, or nil when the flag is
// unset and the built-in catalog applies.
func loadCatalog(ctx context.Context, cmd *cli.Command) (*catalog.Catalog, error) {
	location := strings.TrimSpace(cmd.String("catalog"))
	if location == "" {
		return nil, nil
	}
	cat, err := oci.SourceFor(location, registryOptions(cmd)...).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", location, err)
	}
	return cat, nil
}

// newAdvisor returns an Advisor pinned to the catalog selected on the
// command line.
func newAdvisor(ctx context.Context, cmd *cli.Command) (*advisor.Advisor, error) {
	opts := []advisor.Option{advisor.WithVersion(version)}

	cat, err := loadCatalog(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if cat != nil {
		opts = append(opts, advisor.WithCatalog(cat))
	}
	return advisor.New(opts...), nil
}

func exitCode(err error) int {
	var se *adverrors.StructuredError
	if !errors.As(err, &se) {
		return ExitError
	}
	switch se.Code {
	case adverrors.ErrCodeInvalidRequest, adverrors.ErrCodeInvalidCatalogData:
		return ExitInvalidInput
	default:
		return ExitError
	}
}
