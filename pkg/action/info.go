package action

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/promhippie/teamcity_exporter/pkg/config"
)

// Info handles the server info sub-command, fetching the server metadata
// and printing it to stdout.
func Info(cfg *config.Config, logger *slog.Logger) error {
	client, err := newClient(cfg, logger)

	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Target.Timeout)
	defer cancel()

	info, err := client.Server.Info(ctx)

	if err != nil {
		logger.Error("failed to fetch server info",
			"host", cfg.Target.Host,
			"err", err,
		)

		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)

	fmt.Fprintf(w, "Version:\t%s\n", info.Version)
	fmt.Fprintf(w, "Version major:\t%d\n", info.VersionMajor)
	fmt.Fprintf(w, "Version minor:\t%d\n", info.VersionMinor)
	fmt.Fprintf(w, "Build number:\t%s\n", info.BuildNumber)
	fmt.Fprintf(w, "Internal id:\t%s\n", info.InternalID)
	fmt.Fprintf(w, "Current time:\t%s\n", info.CurrentTime.Time)
	fmt.Fprintf(w, "Start time:\t%s\n", info.StartTime.Time)
	fmt.Fprintf(w, "Build date:\t%s\n", info.BuildDate.Time)

	return w.Flush()
}
