package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/SwissDataScienceCenter/code-marketplace/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

const megabyte = 1024 * 1024

type loggerOptions struct {
	console io.Writer
}

type LoggerOption func(*loggerOptions)

// WithConsole replaces stdout as the destination of the console sink.
func WithConsole(w io.Writer) LoggerOption {
	return func(o *loggerOptions) {
		o.console = w
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewLogger builds a JSON logger writing to every sink enabled in cfg. The returned closer
// releases the log file and has to be called on shutdown.
func NewLogger(cfg config.LoggingConfig, options ...LoggerOption) (*slog.Logger, io.Closer, error) {
	opts := loggerOptions{console: os.Stdout}
	for _, opt := range options {
		opt(&opts)
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	handlers := []slog.Handler{}
	var closer io.Closer = nopCloser{}
	if cfg.Console.Enabled {
		handlers = append(handlers, slog.NewJSONHandler(opts.console, handlerOpts))
	}
	if cfg.File.Enabled {
		file := NewRotatingFile(cfg.File)
		handlers = append(handlers, slog.NewJSONHandler(file, handlerOpts))
		closer = file
	}
	if len(handlers) == 0 {
		return nil, nil, fmt.Errorf("logging: neither the console nor the file sink is enabled")
	}
	if len(handlers) == 1 {
		return slog.New(handlers[0]), closer, nil
	}
	return slog.New(multiHandler(handlers)), closer, nil
}

// NewRotatingFile returns a writer that rotates the log file once it reaches the configured
// size and keeps at most maxFiles rotated files.
func NewRotatingFile(cfg config.LogFileConfig) *lumberjack.Logger {
	maxSize := int((cfg.MaxSize.Bytes() + megabyte - 1) / megabyte)
	if maxSize < 1 {
		maxSize = 1
	}
	return &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    maxSize,
		MaxBackups: cfg.MaxFiles,
	}
}

// multiHandler sends every record to all of its handlers.
type multiHandler []slog.Handler

func (m multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m multiHandler) Handle(ctx context.Context, record slog.Record) error {
	errs := []error{}
	for _, h := range m {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	output := make(multiHandler, len(m))
	for i, h := range m {
		output[i] = h.WithAttrs(attrs)
	}
	return output
}

func (m multiHandler) WithGroup(name string) slog.Handler {
	output := make(multiHandler, len(m))
	for i, h := range m {
		output[i] = h.WithGroup(name)
	}
	return output
}
