// Package config loads the strider command configuration from CUE files.
package config

import (
	"fmt"
	"log/slog"

	"github.com/born-ml/strider/internal/logs"
	"github.com/born-ml/strider/internal/table"
)

// Schema constrains configuration files. Unknown fields are rejected.
const Schema = `
table?: close({
	path?:      string
	delimiter?: string & !=""
	header?:    string & !=""
	types?: [string]: "auto" | "numeric" | "categorical" | "tokens"
	tokenizer?: string
	lazy?:      bool
})
log?: close({
	level?:   "debug" | "info" | "warn" | "error"
	format?:  "text" | "json"
	journal?: bool
})
`

// Config is the decoded configuration of the command.
type Config struct {
	Table Table `json:"table"`
	Log   Log   `json:"log"`
}

// Table says which table to open and how to read it.
type Table struct {
	Path      string            `json:"path"`
	Delimiter string            `json:"delimiter"`
	Header    string            `json:"header"`
	Types     map[string]string `json:"types"`
	Tokenizer string            `json:"tokenizer"` // "words" or a tiktoken encoding name
	Lazy      bool              `json:"lazy"`      // Memory-map the file instead of loading it
}

// Log configures the command's logger.
type Log struct {
	Level   string `json:"level"`
	Format  string `json:"format"`
	Journal bool   `json:"journal"`
}

// Default returns the configuration used when no file sets a value.
func Default() Config {
	opts := table.DefaultTextOptions()
	return Config{
		Table: Table{
			Delimiter: opts.Delimiter,
			Header:    opts.HeaderMarker,
		},
		Log: Log{
			Level:  "info",
			Format: string(logs.FormatText),
		},
	}
}

// TextOptions converts the table section into loader options. The
// tokenizer is left for the caller to build.
func (t Table) TextOptions(logger *slog.Logger) (table.TextOptions, error) {
	opts := table.TextOptions{
		Delimiter:    t.Delimiter,
		HeaderMarker: t.Header,
		Logger:       logger,
	}
	if len(t.Types) > 0 {
		opts.Types = make(map[string]table.FieldType, len(t.Types))
		for name, s := range t.Types {
			ft, err := table.ParseFieldType(s)
			if err != nil {
				return opts, fmt.Errorf("field %q: %w", name, err)
			}
			opts.Types[name] = ft
		}
	}
	return opts, nil
}

// LogOptions converts the log section into logger options.
func (l Log) LogOptions() (logs.Options, error) {
	level, err := logs.ParseLevel(l.Level)
	if err != nil {
		return logs.Options{}, err
	}
	return logs.Options{
		Level:   level,
		Format:  logs.Format(l.Format),
		Journal: l.Journal,
	}, nil
}
