// Package main provides strider, an inspector for delimited text tables:
// their fields, rows and cells, and the numbers their strings map to.
// Encoded tables can be saved to and dumped from .strd matrix files.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mitchellh/go-wordwrap"
)

const version = "v0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(stdout, "strider %s\n", version)
		return 0
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return 0
	}

	cmd, ok := lookup(args[0])
	if !ok {
		fmt.Fprintf(stderr, "strider: unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}

	if err := cmd.execute(args[1:], stdout, stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "strider %s: %v\n", cmd.name, err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "strider - inspect row tables")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Usage: strider <command> [flags] [args]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	for _, c := range commands() {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.args)
		desc := wordwrap.WrapString(c.desc, 60)
		for _, line := range strings.Split(desc, "\n") {
			fmt.Fprintf(w, "           %s\n", line)
		}
	}
	fmt.Fprintf(w, "  %-8s\n           Show version\n", "version")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'strider <command> -h' for the flags of a command.")
}
