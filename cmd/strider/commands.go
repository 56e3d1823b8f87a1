package main

import (
	"cmp"
	"flag"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/strider/internal/parallel"
	"github.com/born-ml/strider/internal/serialization"
	"github.com/born-ml/strider/internal/table"
)

func commands() []command {
	return []command{
		{
			name:  "info",
			desc:  "Print the size of the table and the name and type of every field.",
			setup: infoCmd,
		},
		{
			name:  "head",
			desc:  "Print the first rows of the table in its own format.",
			setup: headCmd,
		},
		{
			name:  "cell",
			args:  "<row> <column>",
			desc:  "Print one cell. Columns are given by index or field name.",
			nargs: 2,
			setup: cellCmd,
		},
		{
			name:  "map",
			args:  "<column> <string>...",
			desc:  "Print the values strings map to in a column, after the column's own cells have been mapped in row order.",
			nargs: 2,
			setup: mapCmd,
		},
		{
			name:  "codes",
			args:  "<column>",
			desc:  "Print the codes the strings of a column map to, in code order.",
			nargs: 1,
			setup: codesCmd,
		},
		{
			name:  "encode",
			desc:  "Print the table as a matrix of numbers. Token fields are not supported.",
			setup: encodeCmd,
		},
		{
			name:  "save",
			desc:  "Encode the table and write it to a binary matrix file (-o).",
			setup: saveCmd,
		},
		{
			name:  "stats",
			desc:  "Print the count, range, mean and standard deviation of every encoded column.",
			setup: statsCmd,
		},
		{
			name:    "dump",
			args:    "<file.strd>",
			desc:    "Print the header and first rows of a binary matrix file. Needs no text table.",
			nargs:   1,
			noTable: true,
			setup:   dumpCmd,
		},
		{
			name:  "shell",
			desc:  "Query the table interactively.",
			setup: shellCmd,
		},
	}
}

func infoCmd(_ *flag.FlagSet) runFunc {
	return func(e *env, t source, _ []string) error {
		fmt.Fprintf(e.stdout, "table:   %s\n", e.cfg.Table.Path)
		fmt.Fprintf(e.stdout, "rows:    %d\n", t.Length())
		fmt.Fprintf(e.stdout, "columns: %d\n", t.Width())
		for j, f := range t.Fields() {
			name := cmp.Or(f.Name, "-")
			fmt.Fprintf(e.stdout, "  %3d  %-20s %s\n", j, name, f.Type)
		}
		return nil
	}
}

func headCmd(fs *flag.FlagSet) runFunc {
	n := fs.Int("n", 10, "number of rows")
	return func(e *env, t source, _ []string) error {
		delim := e.cfg.Table.Delimiter
		fields := t.Fields()
		if lo.SomeBy(fields, func(f table.Field) bool { return f.Name != "" }) {
			fmt.Fprintf(e.stdout, "%s %s\n", e.cfg.Table.Header, strings.Join(table.Names(fields), delim))
		}
		for i := 0; i < min(*n, t.Length()); i++ {
			row, err := t.Row(i)
			if err != nil {
				return err
			}
			fmt.Fprintln(e.stdout, strings.Join(row, delim))
		}
		return nil
	}
}

func cellCmd(fs *flag.FlagSet) runFunc {
	value := fs.Bool("value", false, "print the numeric value instead of the text")
	return func(e *env, t source, args []string) error {
		i, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("bad row %q", args[0])
		}
		j, err := column(t, args[1])
		if err != nil {
			return err
		}
		s, err := t.Get(i, j)
		if err != nil {
			return err
		}
		if !*value {
			fmt.Fprintln(e.stdout, s)
			return nil
		}
		if err := prime(t, j, e.logger.Logger); err != nil {
			return err
		}
		values, err := t.TransformStringToValue(j, s)
		if err != nil {
			return err
		}
		fmt.Fprintln(e.stdout, formatValues(values))
		return nil
	}
}

func mapCmd(fs *flag.FlagSet) runFunc {
	strict := fs.Bool("strict", false, "fail on strings the column does not hold")
	return func(e *env, t source, args []string) error {
		j, err := column(t, args[0])
		if err != nil {
			return err
		}
		if err := prime(t, j, e.logger.Logger); err != nil {
			return err
		}
		for _, s := range args[1:] {
			var values []float64
			if *strict {
				v, err := t.Code(j, s)
				if err != nil {
					return err
				}
				values = []float64{v}
			} else {
				values, err = t.TransformStringToValue(j, s)
				if err != nil {
					return err
				}
			}
			fmt.Fprintf(e.stdout, "%s\t%s\n", s, formatValues(values))
		}
		return nil
	}
}

func codesCmd(_ *flag.FlagSet) runFunc {
	return func(e *env, t source, args []string) error {
		j, err := column(t, args[0])
		if err != nil {
			return err
		}
		if err := prime(t, j, e.logger.Logger); err != nil {
			return err
		}
		codes, err := t.Codes(j)
		if err != nil {
			return err
		}
		// Assignment order: codes grow away from zero.
		entries := lo.Entries(codes)
		slices.SortFunc(entries, func(a, b lo.Entry[string, float64]) int {
			return cmp.Compare(math.Abs(a.Value), math.Abs(b.Value))
		})
		for _, entry := range entries {
			fmt.Fprintf(e.stdout, "%g\t%s\n", entry.Value, entry.Key)
		}
		return nil
	}
}

func encodeCmd(fs *flag.FlagSet) runFunc {
	cols := fs.String("cols", "", "comma-separated columns to keep")
	return func(e *env, t source, _ []string) error {
		enc, err := encoded(t, *cols)
		if err != nil {
			return err
		}
		d, err := table.ToDense(enc)
		if err != nil {
			return err
		}
		fmt.Fprintf(e.stdout, "%v\n", mat.Formatted(d, mat.Squeeze()))
		return nil
	}
}

func saveCmd(fs *flag.FlagSet) runFunc {
	cols := fs.String("cols", "", "comma-separated columns to keep")
	out := fs.String("o", "", "output `file`")
	return func(e *env, t source, _ []string) error {
		if *out == "" {
			return fmt.Errorf("no output file: use -o")
		}
		enc, err := encoded(t, *cols)
		if err != nil {
			return err
		}
		opts := serialization.WriterOptions{
			Metadata: map[string]string{"source": e.cfg.Table.Path},
		}
		if err := serialization.WriteFile(*out, enc, opts); err != nil {
			return err
		}
		e.logger.Info("saved matrix", "path", *out, "rows", enc.Length(), "cols", enc.Width())
		return nil
	}
}

func statsCmd(fs *flag.FlagSet) runFunc {
	cols := fs.String("cols", "", "comma-separated columns to keep")
	workers := fs.Int("workers", 0, "worker goroutines (0: one per CPU)")
	return func(e *env, t source, _ []string) error {
		enc, err := encoded(t, *cols)
		if err != nil {
			return err
		}
		// Encoding assigns codes, so it runs once up front on this
		// goroutine; the copy can then be read concurrently.
		d, err := table.ToDense(enc)
		if err != nil {
			return err
		}
		m, err := table.FromDense(d)
		if err != nil {
			return err
		}
		return printStats(e, m, enc.Fields(), workerConfig(*workers))
	}
}

// encoded returns the numeric view of t, restricted to cols when given.
func encoded(t source, cols string) (*table.Encoded, error) {
	if cols == "" {
		return table.Encode(t)
	}
	var idx []int
	for _, s := range strings.Split(cols, ",") {
		j, err := column(t, strings.TrimSpace(s))
		if err != nil {
			return nil, err
		}
		idx = append(idx, j)
	}
	view, err := table.SelectColumns[string](t, idx...)
	if err != nil {
		return nil, err
	}
	return table.Encode(view)
}

func workerConfig(workers int) parallel.Config {
	cfg := parallel.DefaultConfig()
	cfg.MinChunkSize = 1
	if workers > 0 {
		cfg.NumWorkers = workers
		cfg.Enabled = workers > 1
	}
	return cfg
}

func printStats(e *env, t table.Table[float64], fields []table.Field, cfg parallel.Config) error {
	stats, err := table.Stats(t, cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "%-4s %-16s %8s %8s %12s %12s %12s %12s\n",
		"col", "name", "count", "missing", "min", "max", "mean", "stddev")
	for j, s := range stats {
		fmt.Fprintf(e.stdout, "%-4d %-16s %8d %8d %12.6g %12.6g %12.6g %12.6g\n",
			j, cmp.Or(fields[j].Name, "-"), s.Count, s.Missing, s.Min, s.Max, s.Mean, s.StdDev)
	}
	return nil
}

func formatValues(values []float64) string {
	return strings.Join(lo.Map(values, func(v float64, _ int) string {
		if table.IsMissing(v) {
			return "NaN"
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	}), " ")
}
