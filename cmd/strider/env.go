package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"strconv"
	"strings"

	"github.com/born-ml/strider/internal/config"
	"github.com/born-ml/strider/internal/logs"
	"github.com/born-ml/strider/internal/table"
	"github.com/born-ml/strider/internal/tokenizer"
)

// source is what every command needs from a table of strings, whether it
// is loaded in memory or mapped from its file.
type source interface {
	table.Table[string]
	table.Mapper
	Codes(col int) (map[string]float64, error)
	SetTokenizer(tok tokenizer.Tokenizer)
}

// env is the state shared by a command run.
type env struct {
	stdout io.Writer
	cfg    config.Config
	logger *logs.Logger
}

// runFunc runs a command against an open table with its positional args.
type runFunc func(e *env, t source, args []string) error

type command struct {
	name    string
	args    string
	desc    string
	nargs   int  // Minimum positional arguments
	noTable bool // Run without opening a text table
	setup   func(fs *flag.FlagSet) runFunc
}

func lookup(name string) (command, bool) {
	for _, c := range commands() {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// commonFlags are accepted by every command and override the
// configuration files.
type commonFlags struct {
	configs []string
	path    string
	delim   string
	header  string
	tok     string
	level   string
	format  string
	types   map[string]string
	lazy    bool
	journal bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	c.types = make(map[string]string)
	fs.Func("config", "configuration `file` (.cue or .toml), repeatable", func(s string) error {
		c.configs = append(c.configs, s)
		return nil
	})
	fs.StringVar(&c.path, "t", "", "table `file` (overrides table.path)")
	fs.StringVar(&c.delim, "d", "", "field delimiter")
	fs.StringVar(&c.header, "header", "", "header line marker")
	fs.StringVar(&c.tok, "tokenizer", "", "tokenizer of tokens fields: words or a tiktoken encoding")
	fs.StringVar(&c.level, "log-level", "", "log level: debug, info, warn or error")
	fs.StringVar(&c.format, "log-format", "", "log format: text or json")
	fs.BoolVar(&c.lazy, "lazy", false, "memory-map the file instead of loading it")
	fs.BoolVar(&c.journal, "journal", false, "also log to the systemd journal")
	fs.Func("type", "field type as `name=type`, repeatable", func(s string) error {
		name, ft, ok := strings.Cut(s, "=")
		if !ok || name == "" {
			return fmt.Errorf("want name=type, got %q", s)
		}
		if _, err := table.ParseFieldType(ft); err != nil {
			return err
		}
		c.types[name] = ft
		return nil
	})
}

// config loads the configuration files and applies the flags that were set.
func (c *commonFlags) config(fs *flag.FlagSet) (config.Config, error) {
	cfg, err := config.Load(c.configs...)
	if err != nil {
		return cfg, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.Table.Path = c.path
		case "d":
			cfg.Table.Delimiter = c.delim
		case "header":
			cfg.Table.Header = c.header
		case "tokenizer":
			cfg.Table.Tokenizer = c.tok
		case "lazy":
			cfg.Table.Lazy = c.lazy
		case "log-level":
			cfg.Log.Level = c.level
		case "log-format":
			cfg.Log.Format = c.format
		case "journal":
			cfg.Log.Journal = c.journal
		}
	})
	if len(c.types) > 0 {
		if cfg.Table.Types == nil {
			cfg.Table.Types = make(map[string]string, len(c.types))
		}
		maps.Copy(cfg.Table.Types, c.types)
	}
	return cfg, nil
}

// execute parses args, opens the table and runs the command.
func (c command) execute(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("strider "+c.name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	runCmd := c.setup(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < c.nargs {
		return fmt.Errorf("expected %s", c.args)
	}

	cfg, err := common.config(fs)
	if err != nil {
		return err
	}
	logOpts, err := cfg.Log.LogOptions()
	if err != nil {
		return err
	}
	logOpts.Writer = stderr
	logger, err := logs.New(logOpts)
	if err != nil {
		return err
	}

	e := &env{stdout: stdout, cfg: cfg, logger: logger}
	if c.noTable {
		return runCmd(e, nil, fs.Args())
	}
	t, closeTable, err := e.open()
	if err != nil {
		return err
	}
	defer closeTable()
	return runCmd(e, t, fs.Args())
}

// open loads or maps the configured table.
func (e *env) open() (source, func(), error) {
	tc := e.cfg.Table
	if tc.Path == "" {
		return nil, nil, fmt.Errorf("no table given: use -t or table.path")
	}
	opts, err := tc.TextOptions(e.logger.Logger)
	if err != nil {
		return nil, nil, err
	}
	if tc.Tokenizer != "" {
		tok, err := tokenizer.ByName(tc.Tokenizer)
		if err != nil {
			return nil, nil, err
		}
		opts.Tokenizer = tok
	}

	if tc.Lazy {
		t, err := table.OpenTextTable(tc.Path, opts)
		if err != nil {
			return nil, nil, err
		}
		return t, func() {
			if err := t.Close(); err != nil {
				e.logger.Warn("close table", "path", tc.Path, "error", err)
			}
		}, nil
	}
	t, err := table.LoadStringTable(tc.Path, opts)
	if err != nil {
		return nil, nil, err
	}
	return t, func() {}, nil
}

// column resolves a column given by index or by field name.
func column(t source, s string) (int, error) {
	if j, err := strconv.Atoi(s); err == nil {
		if j < 0 || j >= t.Width() {
			return 0, &table.RangeError{What: "column", Index: j, Len: t.Width()}
		}
		return j, nil
	}
	return table.FieldIndex[string](t, s)
}

// prime runs every cell of column col through the mapping, in row order,
// so that codes are those a full pass over the table assigns.
func prime(t source, col int, logger *slog.Logger) error {
	for i := 0; i < t.Length(); i++ {
		s, err := t.Get(i, col)
		if err != nil {
			return err
		}
		if _, err := t.TransformStringToValue(col, s); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	logger.Debug("primed column", "column", col, "rows", t.Length())
	return nil
}
