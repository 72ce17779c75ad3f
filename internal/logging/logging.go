package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup builds a *slog.Logger writing JSON to stderr and, when file is
// non-empty, to that file as well. The logger is installed as the slog
// default. The returned cleanup closes the log file; callers must defer it.
func Setup(level, file string) (*slog.Logger, func(), error) {
	var w io.Writer = os.Stderr
	cleanup := func() {}

	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return nil, nil, err
		}
		w = io.MultiWriter(os.Stderr, f)
		cleanup = func() { _ = f.Close() }
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: Level(level)}))
	slog.SetDefault(logger)
	return logger, cleanup, nil
}

// Level maps a config string to a slog level, defaulting to info.
func Level(s string) slog.Level {
	switch s {
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
