// Package logs builds the slog loggers of the strider command.
package logs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// Format selects the terminal handler.
type Format string

// Terminal formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Options configures New.
type Options struct {
	Level   slog.Level
	Format  Format    // FormatText when empty
	Writer  io.Writer // os.Stderr when nil
	Journal bool      // Also send records to the systemd journal
}

// Logger is a slog.Logger whose level can be changed after creation.
type Logger struct {
	*slog.Logger
	level *slog.LevelVar
}

// SetLevel changes the minimum level of every handler of the logger.
func (l *Logger) SetLevel(level slog.Level) {
	l.level.Set(level)
}

// Level returns the current minimum level.
func (l *Logger) Level() slog.Level {
	return l.level.Level()
}

// New creates a logger writing to the terminal and, when asked, to the
// journal. A journal that cannot be reached is reported on the terminal
// and skipped.
func New(opts Options) (*Logger, error) {
	level := new(slog.LevelVar)
	level.Set(opts.Level)

	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var terminal slog.Handler
	switch opts.Format {
	case FormatText, "":
		terminal = slog.NewTextHandler(writer, handlerOpts)
	case FormatJSON:
		terminal = slog.NewJSONHandler(writer, handlerOpts)
	default:
		return nil, fmt.Errorf("logs: unknown format %q", opts.Format)
	}
	handlers := []slog.Handler{terminal}

	if opts.Journal {
		journal, err := slogjournal.NewHandler(&slogjournal.Options{
			Level: level,
			ReplaceGroup: func(key string) string {
				return toJournalKey(key)
			},
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if err != nil {
			record := slog.NewRecord(time.Now(), slog.LevelWarn, "systemd journal unavailable", 0)
			record.Add("error", err)
			_ = terminal.Handle(context.Background(), record)
		} else {
			handlers = append(handlers, journal)
		}
	}

	return &Logger{
		Logger: slog.New(slogmulti.Fanout(handlers...)),
		level:  level,
	}, nil
}

// ParseLevel parses "debug", "info", "warn" or "error", in any case.
// The empty string is info.
func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("logs: %w", err)
	}
	return level, nil
}

// toJournalKey turns an attribute key into a valid journal field name.
func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
}
