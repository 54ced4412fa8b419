package simulation

import (
	"log/slog"
	"os"
	"strings"

	"github.com/Carmen-Shannon/oxy-orrery/common"
)

// DefaultSystemKey is the preset loaded when ORRERY_SYSTEM is not set.
const DefaultSystemKey = "solar"

// SystemKey returns the initial preset key from the ORRERY_SYSTEM env var.
// Falls back to the provided default, then DefaultSystemKey.
func SystemKey(defaultKey string) string {
	return common.Coalesce(strings.TrimSpace(os.Getenv("ORRERY_SYSTEM")), defaultKey, DefaultSystemKey)
}

// LogLevel returns the level named by the ORRERY_LOG_LEVEL env var.
// Valid levels: "debug", "info", "warn", "error". Anything else is info.
func LogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("ORRERY_LOG_LEVEL"))) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds a text logger on stderr at LogLevel and installs it as the slog default.
func NewLogger() *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: LogLevel()}))
	slog.SetDefault(logger)
	return logger
}
