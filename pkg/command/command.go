package command

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/promhippie/teamcity_exporter/pkg/config"
	"github.com/promhippie/teamcity_exporter/pkg/version"
	"github.com/urfave/cli/v3"
)

// Run parses the command line arguments and executes the program.
func Run() error {
	cfg := config.Load()

	app := &cli.Command{
		Name:    "teamcity_exporter",
		Version: version.String,
		Usage:   "TeamCity Exporter",
		Flags:   RootFlags(cfg),
		Commands: []*cli.Command{
			Exporter(cfg),
			Health(cfg),
			Server(cfg),
		},
	}

	return app.Run(context.Background(), os.Args)
}

// RootFlags defines the global flags of the program.
func RootFlags(cfg *config.Config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log.level",
			Value:       "info",
			Usage:       "Only log messages with given severity",
			Sources:     cli.EnvVars("TEAMCITY_EXPORTER_LOG_LEVEL"),
			Destination: &cfg.Logs.Level,
		},
		&cli.BoolFlag{
			Name:        "log.pretty",
			Value:       false,
			Usage:       "Enable pretty messages for logging",
			Sources:     cli.EnvVars("TEAMCITY_EXPORTER_LOG_PRETTY"),
			Destination: &cfg.Logs.Pretty,
		},
	}
}

// targetFlags defines the flags shared by every command that talks to a
// TeamCity server.
func targetFlags(cfg *config.Config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "teamcity.host",
			Usage:       "Hostname of the TeamCity server",
			Sources:     cli.EnvVars("TEAMCITY_HOST"),
			Destination: &cfg.Target.Host,
		},
		&cli.IntFlag{
			Name:        "teamcity.port",
			Value:       80,
			Usage:       "Port of the TeamCity server",
			Sources:     cli.EnvVars("TEAMCITY_PORT"),
			Destination: &cfg.Target.Port,
		},
		&cli.StringFlag{
			Name:        "teamcity.username",
			Usage:       "Username for the TeamCity server",
			Sources:     cli.EnvVars("TEAMCITY_USER"),
			Destination: &cfg.Target.Username,
		},
		&cli.StringFlag{
			Name:        "teamcity.password",
			Usage:       "Password for the TeamCity server, also supports file:// and base64://",
			Sources:     cli.EnvVars("TEAMCITY_PASSWORD"),
			Destination: &cfg.Target.Password,
		},
		&cli.DurationFlag{
			Name:        "teamcity.timeout",
			Value:       config.DefaultTimeout,
			Usage:       "Timeout for requests against the TeamCity server",
			Sources:     cli.EnvVars("TEAMCITY_TIMEOUT"),
			Destination: &cfg.Target.Timeout,
		},
	}
}

// setupLogger prepares the logger based on the configuration.
func setupLogger(cfg *config.Config) *slog.Logger {
	if cfg.Logs.Pretty {
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: loggerLevel(cfg),
			}),
		)
	}

	return slog.New(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: loggerLevel(cfg),
		}),
	)
}

// loggerLevel maps the configured level to slog levels.
func loggerLevel(cfg *config.Config) slog.Leveler {
	switch strings.ToLower(cfg.Logs.Level) {
	case "error":
		return slog.LevelError
	case "warn":
		return slog.LevelWarn
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	}

	return slog.LevelInfo
}
