package main

import (
	"cmp"
	"flag"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/born-ml/strider/internal/serialization"
	"github.com/born-ml/strider/internal/table"
)

func dumpCmd(fs *flag.FlagSet) runFunc {
	n := fs.Int("n", 10, "number of rows")
	stats := fs.Bool("stats", false, "print column statistics instead of rows")
	workers := fs.Int("workers", 0, "worker goroutines for -stats (0: one per CPU)")
	skip := fs.Bool("skip-checksum", false, "do not verify the data checksum")
	return func(e *env, _ source, args []string) error {
		f, err := serialization.OpenFile(args[0], serialization.ReaderOptions{SkipChecksumValidation: *skip})
		if err != nil {
			return err
		}
		defer f.Close()

		h := f.Header()
		fmt.Fprintf(e.stdout, "file:    %s\n", args[0])
		fmt.Fprintf(e.stdout, "created: %s by strider %s\n", h.CreatedAt.Format("2006-01-02 15:04:05Z07:00"), h.StriderVersion)
		fmt.Fprintf(e.stdout, "shape:   %d x %d %s\n", h.Rows, h.Cols, h.DType)
		keys := lo.Keys(h.Metadata)
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(e.stdout, "meta:    %s=%s\n", k, h.Metadata[k])
		}

		fields := f.Fields()
		if *stats {
			return printStats(e, f, fields, workerConfig(*workers))
		}

		fmt.Fprintln(e.stdout, strings.Join(lo.Map(fields, func(fd table.Field, j int) string {
			return cmp.Or(fd.Name, strconv.Itoa(j))
		}), "\t"))
		for i := 0; i < min(*n, f.Length()); i++ {
			row, err := f.Row(i)
			if err != nil {
				return err
			}
			fmt.Fprintln(e.stdout, strings.ReplaceAll(formatValues(row), " ", "\t"))
		}
		return nil
	}
}
