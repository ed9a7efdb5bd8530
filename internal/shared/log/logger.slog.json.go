package log

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Prabhugems/AMASI-management-sub013/internal/shared/config"
)

// NewJSONLogger builds the process-wide slog logger. Level comes from
// "logging.level" (default info); every record carries a "service"
// attribute from "logging.service" so aggregated logs from the split
// binaries stay distinguishable.
func NewJSONLogger(cfg config.ConfigProvider) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     parseLevel(cfg.GetString("logging.level")),
		AddSource: cfg.GetBool("logging.add_source"),
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if attr.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, attr.Value.Time().UTC().Format(time.RFC3339))
			}
			return attr
		},
	})

	service := strings.TrimSpace(cfg.GetString("logging.service"))
	if service == "" {
		service = "amasi-events"
	}

	return slog.New(handler).With(slog.String("service", service))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
