package fullcontrol

import (
	"io"
	"log/slog"
	"os"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func orDiscard(log *slog.Logger) *slog.Logger {
	if log == nil {
		return discardLogger()
	}
	return log
}

// newLogger picks where diagnostics go: nowhere when silent, the given
// logger if there is one, otherwise stderr.
func newLogger(silent bool, log *slog.Logger) *slog.Logger {
	if silent {
		return discardLogger()
	}
	if log != nil {
		return log
	}
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}
