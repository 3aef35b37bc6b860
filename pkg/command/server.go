package command

import (
	"context"

	"github.com/promhippie/teamcity_exporter/pkg/action"
	"github.com/promhippie/teamcity_exporter/pkg/config"
	"github.com/urfave/cli/v3"
)

// Server provides the sub-commands related to the server instance.
func Server(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "server",
		Usage: "Commands related to the server instance",
		Commands: []*cli.Command{
			{
				Name:  "info",
				Usage: "Display info about the TeamCity server",
				Flags: targetFlags(cfg),
				Action: func(_ context.Context, _ *cli.Command) error {
					return action.Info(cfg, setupLogger(cfg))
				},
			},
		},
	}
}
