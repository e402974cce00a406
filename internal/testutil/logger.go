package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger that discards everything. Tests construct
// services with it so assertion failures are not buried in log output.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
