package action

import (
	"log/slog"
)

// promLogger adapts slog for the prometheus handler error log.
type promLogger struct {
	logger *slog.Logger
}

// Println implements promhttp.Logger.
func (l promLogger) Println(v ...interface{}) {
	l.logger.Error("metrics handler reported an error",
		"err", v,
	)
}

func boolP(val bool) *bool {
	return &val
}

func stringP(val string) *string {
	return &val
}

func sliceP(val []string) *[]string {
	return &val
}
