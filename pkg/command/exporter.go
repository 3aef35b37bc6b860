package command

import (
	"context"
	"time"

	"github.com/promhippie/teamcity_exporter/pkg/action"
	"github.com/promhippie/teamcity_exporter/pkg/config"
	"github.com/urfave/cli/v3"
)

// Exporter provides the sub-command to start the metrics exporter.
func Exporter(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "exporter",
		Usage: "Start the TeamCity metrics exporter",
		Flags: exporterFlags(cfg),
		Action: func(_ context.Context, _ *cli.Command) error {
			return action.Server(cfg, setupLogger(cfg))
		},
	}
}

func exporterFlags(cfg *config.Config) []cli.Flag {
	return append(targetFlags(cfg), []cli.Flag{
		&cli.StringFlag{
			Name:        "web.address",
			Value:       "0.0.0.0:9524",
			Usage:       "Address to bind the metrics server",
			Sources:     cli.EnvVars("TEAMCITY_EXPORTER_WEB_ADDRESS"),
			Destination: &cfg.Server.Addr,
		},
		&cli.StringFlag{
			Name:        "web.path",
			Value:       "/metrics",
			Usage:       "Path to bind the metrics server",
			Sources:     cli.EnvVars("TEAMCITY_EXPORTER_WEB_PATH"),
			Destination: &cfg.Server.Path,
		},
		&cli.DurationFlag{
			Name:        "web.timeout",
			Value:       10 * time.Second,
			Usage:       "Server metrics endpoint timeout",
			Sources:     cli.EnvVars("TEAMCITY_EXPORTER_WEB_TIMEOUT"),
			Destination: &cfg.Server.Timeout,
		},
		&cli.StringFlag{
			Name:        "web.config",
			Value:       "",
			Usage:       "Path to web-config file",
			Sources:     cli.EnvVars("TEAMCITY_EXPORTER_WEB_CONFIG"),
			Destination: &cfg.Server.Web,
		},
		&cli.BoolFlag{
			Name:        "web.pprof",
			Value:       false,
			Usage:       "Enable pprof debugging for server",
			Sources:     cli.EnvVars("TEAMCITY_EXPORTER_WEB_PPROF"),
			Destination: &cfg.Server.Pprof,
		},
		&cli.BoolFlag{
			Name:        "collector.server",
			Value:       true,
			Usage:       "Enable collector for server info",
			Sources:     cli.EnvVars("TEAMCITY_EXPORTER_COLLECTOR_SERVER"),
			Destination: &cfg.Collector.Server,
		},
		&cli.BoolFlag{
			Name:        "collector.agents",
			Value:       true,
			Usage:       "Enable collector for build agents",
			Sources:     cli.EnvVars("TEAMCITY_EXPORTER_COLLECTOR_AGENTS"),
			Destination: &cfg.Collector.Agents,
		},
		&cli.BoolFlag{
			Name:        "collector.builds",
			Value:       false,
			Usage:       "Enable collector for latest builds",
			Sources:     cli.EnvVars("TEAMCITY_EXPORTER_COLLECTOR_BUILDS"),
			Destination: &cfg.Collector.Builds,
		},
		&cli.StringFlag{
			Name:        "collector.database",
			Value:       "teamcity_exporter.db",
			Usage:       "Path to the database tracking seen builds",
			Sources:     cli.EnvVars("TEAMCITY_EXPORTER_COLLECTOR_DATABASE"),
			Destination: &cfg.Collector.Database,
		},
	}...)
}
