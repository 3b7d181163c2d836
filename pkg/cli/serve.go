package cli

import (
	"context"

	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/computeadvisor/advisor/pkg/api"
	"github.com/computeadvisor/advisor/pkg/server"
)

// runServer is replaced in tests.
var runServer = api.Run

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "serve",
		EnableShellCompletion: true,
		Usage:                 "Run the advisor HTTP API",
		Description: `Serves the advisor over HTTP:

  POST /v1/recommendations   workload description in, report out
  POST /v1/detections        metrics snapshot in, findings out
  GET  /v1/platforms         catalog listing
  GET  /health, /ready       probes
  GET  /metrics              Prometheus metrics

Settings default to the environment (PORT, RATE_LIMIT, RATE_LIMIT_BURST,
ADVISOR_CATALOG, also read from a .env file); flags override them. When a
catalog source is set it is reloaded on SIGHUP.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "address",
				Usage: "address to listen on (default: all interfaces)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "port to listen on",
			},
			&cli.FloatFlag{
				Name:  "rate-limit",
				Usage: "requests per second allowed across all clients",
			},
			&cli.IntFlag{
				Name:  "rate-limit-burst",
				Usage: "requests allowed in a burst",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runServer(ctx, serverConfigFromCmd(cmd))
		},
	}
}

// serverConfigFromCmd starts from the environment configuration and applies
// the flags that were set.
func serverConfigFromCmd(cmd *cli.Command) *server.Config {
	cfg := server.DefaultConfig()
	if cmd.IsSet("address") {
		cfg.Address = cmd.String("address")
	}
	if cmd.IsSet("port") {
		cfg.Port = int(cmd.Int("port"))
	}
	if cmd.IsSet("rate-limit") {
		cfg.RateLimit = rate.Limit(cmd.Float("rate-limit"))
	}
	if cmd.IsSet("rate-limit-burst") {
		cfg.RateLimitBurst = int(cmd.Int("rate-limit-burst"))
	}
	if cmd.IsSet("catalog") {
		cfg.CatalogSource = cmd.String("catalog")
	}
	return cfg
}
