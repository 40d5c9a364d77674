package observability

import (
	"io"
	"log/slog"
)

// DiscardLogger is the default for decorators built without WithLogger.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
