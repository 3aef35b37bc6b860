package action

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/promhippie/teamcity_exporter/pkg/config"
)

// Health provides the sub-command to perform a health check.
func Health(cfg *config.Config, logger *slog.Logger) error {
	resp, err := http.Get(
		fmt.Sprintf(
			"http://%s%s",
			cfg.Server.Addr,
			"/healthz",
		),
	)

	if err != nil {
		logger.Error("failed to request health check",
			"err", err,
		)

		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("health check seems to be in a bad state",
			"code", resp.StatusCode,
		)

		return fmt.Errorf("health check failed with status %d", resp.StatusCode)
	}

	return nil
}
