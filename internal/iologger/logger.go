// Package iologger sets up the default slog logger of gnloc.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gnames/gnloc/pkg/config"
	"github.com/lmittmann/tint"
)

// LogFile is the name of the log file inside the log directory.
const LogFile = "gnloc.log"

// Init makes a logger built from cfg the default one. With the "file"
// destination the log goes to LogFile in logDir, which is truncated
// unless append is true. The returned closer releases the log file.
func Init(logDir string, cfg config.LogConfig, append bool) (io.Closer, error) {
	w, err := writer(logDir, cfg.Destination, append)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	slog.SetDefault(slog.New(handler(cfg.Format, w, opts)))

	if c, ok := w.(io.Closer); ok && w != os.Stdout && w != os.Stderr {
		return c, nil
	}
	return nopCloser{}, nil
}

func writer(logDir, destination string, append bool) (io.Writer, error) {
	switch strings.ToLower(destination) {
	case "stdout":
		return os.Stdout, nil
	case "file":
	default:
		return os.Stderr, nil
	}

	path := filepath.Join(logDir, LogFile)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, CreateLogFileError(path, err)
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if append {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, CreateLogFileError(path, err)
	}
	return f, nil
}

// handler picks the slog handler. "tint" is the colored human-friendly
// format, colors are off unless the log goes to a terminal stream.
func handler(format string, w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	switch format {
	case "tint":
		return tint.NewHandler(w, &tint.Options{
			Level:      opts.Level,
			TimeFormat: time.Kitchen,
			NoColor:    w != os.Stderr && w != os.Stdout,
		})
	case "text":
		return slog.NewTextHandler(w, opts)
	default:
		return slog.NewJSONHandler(w, opts)
	}
}

func parseLevel(level string) slog.Level {
	switch level {
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

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
