// =============================================================================
// EFT Viewer - Logging Module
// =============================================================================
//
// This module builds the zerolog logger used by the CLI and adapts it to the
// printf-style Logger interface the decoder accepts.
//
// OUTPUT:
//   - console  human-readable lines (default)
//   - json     one JSON object per entry
//   A log_file, when set, receives a JSON copy of every entry.
//
// =============================================================================

package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options configures New.
type Options struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	// Default: info
	Level string

	// Format is "console" for human-readable output or "json".
	// Default: console
	Format string

	// File, when set, also receives every entry as JSON.
	File string

	// Out is the primary destination. Default: os.Stderr
	Out io.Writer

	// App is attached to every entry.
	App string
}

// New builds a logger. The returned closer releases the log file, if any.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		var err error
		level, err = zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	var primary io.Writer
	switch strings.ToLower(opts.Format) {
	case "", "console":
		primary = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	case "json":
		primary = out
	default:
		return zerolog.Nop(), nil, fmt.Errorf("invalid log format %q", opts.Format)
	}

	var closer io.Closer = nopCloser{}
	writer := primary
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
		}
		closer = f
		writer = zerolog.MultiLevelWriter(primary, f)
	}

	ctx := zerolog.New(writer).Level(level).With().Timestamp()
	if opts.App != "" {
		ctx = ctx.Str("app", opts.App)
	}
	return ctx.Logger(), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// =============================================================================
// PRINTF ADAPTER
// =============================================================================

// Adapter forwards printf-style calls to a zerolog.Logger.
type Adapter struct {
	logger zerolog.Logger
}

// NewAdapter wraps logger.
func NewAdapter(logger zerolog.Logger) *Adapter {
	return &Adapter{logger: logger}
}

// With returns an Adapter that tags every entry with key=value.
func (a *Adapter) With(key, value string) *Adapter {
	return &Adapter{logger: a.logger.With().Str(key, value).Logger()}
}

func (a *Adapter) Debug(msg string, args ...interface{}) { a.logger.Debug().Msgf(msg, args...) }
func (a *Adapter) Info(msg string, args ...interface{})  { a.logger.Info().Msgf(msg, args...) }
func (a *Adapter) Warn(msg string, args ...interface{})  { a.logger.Warn().Msgf(msg, args...) }
func (a *Adapter) Error(msg string, args ...interface{}) { a.logger.Error().Msgf(msg, args...) }
