package command

import (
	"context"

	"github.com/promhippie/teamcity_exporter/pkg/action"
	"github.com/promhippie/teamcity_exporter/pkg/config"
	"github.com/urfave/cli/v3"
)

// Health provides the sub-command to perform a health check.
func Health(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "Perform health checks against the exporter",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "web.address",
				Value:       "0.0.0.0:9524",
				Usage:       "Address of the metrics server",
				Sources:     cli.EnvVars("TEAMCITY_EXPORTER_WEB_ADDRESS"),
				Destination: &cfg.Server.Addr,
			},
		},
		Action: func(_ context.Context, _ *cli.Command) error {
			return action.Health(cfg, setupLogger(cfg))
		},
	}
}
