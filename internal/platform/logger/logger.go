package logger

import (
	"log/slog"
	"os"
)

// New returns the process logger: structured text on stdout.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
