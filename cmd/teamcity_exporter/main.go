package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/promhippie/teamcity_exporter/pkg/command"
)

func main() {
	if env := os.Getenv("TEAMCITY_EXPORTER_ENV_FILE"); env != "" {
		if err := godotenv.Load(env); err != nil {
			slog.Error("failed to load env file",
				"file", env,
				"err", err,
			)

			os.Exit(1)
		}
	}

	if err := command.Run(); err != nil {
		os.Exit(1)
	}
}
