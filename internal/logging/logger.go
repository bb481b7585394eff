package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Option configures New.
type Option func(*options)

type options struct {
	out      io.Writer
	terminal func(io.Writer) bool
}

// WithOutput replaces stderr as the main destination.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.out = w
		}
	}
}

// WithTerminalCheck replaces terminal detection for the main destination.
func WithTerminalCheck(fn func(io.Writer) bool) Option {
	return func(o *options) {
		if fn != nil {
			o.terminal = fn
		}
	}
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds a logger from cfg. The returned closer releases the file sink
// and must be called when the logger is no longer used.
func New(cfg Config, opts ...Option) (zerolog.Logger, io.Closer, error) {
	if err := cfg.Validate(); err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}
	o := options{out: os.Stderr, terminal: IsTerminal}
	for _, opt := range opts {
		opt(&o)
	}

	lvl, _ := ParseLevel(cfg.Level)

	var main io.Writer = o.out
	switch strings.ToLower(cfg.Format) {
	case FormatConsole:
		main = consoleWriter(o.out, o.terminal(o.out))
	case FormatJSON:
	default:
		if o.terminal(o.out) {
			main = consoleWriter(o.out, true)
		}
	}

	var closer io.Closer = nopCloser{}
	w := main
	if cfg.File != "" {
		sink := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		closer = sink
		w = zerolog.MultiLevelWriter(main, sink)
	}

	logger := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	return logger, closer, nil
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
