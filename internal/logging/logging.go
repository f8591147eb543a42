package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"

	"go-review-pipeline/internal/config"
	"go-review-pipeline/internal/errors"
)

// Setup installs the default slog logger: text on stderr and, when a log
// file is configured, JSON lines to that file as well. The returned closer
// releases the file.
func Setup(cfg config.LogConfig) (io.Closer, error) {
	logger, closer, err := New(cfg, os.Stderr)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return closer, nil
}

// New builds a logger writing text to out plus the optional JSON file.
func New(cfg config.LogConfig, out io.Writer) (*slog.Logger, io.Closer, error) {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	text := slog.NewTextHandler(out, opts)

	if cfg.File == "" {
		return slog.New(text), nopCloser{}, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, &errors.AppError{Code: errors.CodeConfigInvalid, Message: "open log file " + cfg.File, Cause: err}
	}
	logger := slog.New(slogmulti.Fanout(
		text,
		slog.NewJSONHandler(f, opts),
	))
	return logger, f, nil
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
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

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
