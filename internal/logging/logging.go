// Package logging builds the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"

	"github.com/yukikurage/items-api/internal/config"
)

// New returns a JSON logger for production and a text logger otherwise, both at Info.
func New(env string, w io.Writer) *slog.Logger {
	if env == config.EnvProduction {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
