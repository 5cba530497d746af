// Package logger builds the process logger: a console handler chosen by
// environment plus JSON files for errors and for every record.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"casa_criativa/internal/lib/logger/handlers/fanout"
	"casa_criativa/internal/lib/logger/handlers/slogpretty"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

const (
	ErrorLogFile    = "error.log"
	CombinedLogFile = "combined.log"
)

// Sinks owns the log files opened by Setup.
type Sinks struct {
	files []*os.File
}

func (s *Sinks) Close() error {
	if s == nil {
		return nil
	}

	var errs []error
	for _, f := range s.files {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.files = nil

	return errors.Join(errs...)
}

// Setup returns the logger for env. With a non-empty dir it also writes JSON
// to dir/error.log (error level only) and dir/combined.log (configured level).
// In prod the console is left out whenever the files are written.
func Setup(env, level, dir string) (*slog.Logger, *Sinks, error) {
	const op = "logger.Setup"

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	sinks := &Sinks{}
	var handlers []slog.Handler

	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}

		errFile, err := openLog(filepath.Join(dir, ErrorLogFile))
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}
		sinks.files = append(sinks.files, errFile)

		combined, err := openLog(filepath.Join(dir, CombinedLogFile))
		if err != nil {
			sinks.Close()
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}
		sinks.files = append(sinks.files, combined)

		handlers = append(handlers,
			slog.NewJSONHandler(errFile, &slog.HandlerOptions{Level: slog.LevelError}),
			slog.NewJSONHandler(combined, &slog.HandlerOptions{Level: lvl}),
		)
	}

	if env != EnvProd || len(handlers) == 0 {
		handlers = append(handlers, console(env, lvl, os.Stdout))
	}

	var h slog.Handler = fanout.New(handlers...)
	if len(handlers) == 1 {
		h = handlers[0]
	}

	return slog.New(h).With(slog.String("service", "casa-criativa")), sinks, nil
}

func console(env string, lvl slog.Level, out io.Writer) slog.Handler {
	switch env {
	case EnvLocal:
		opts := slogpretty.PrettyHandlerOptions{
			SlogOpts: &slog.HandlerOptions{
				Level: lvl,
			},
		}

		return opts.NewPrettyHandler(out)
	default:
		return slog.NewJSONHandler(out, &slog.HandlerOptions{Level: lvl})
	}
}

func openLog(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
