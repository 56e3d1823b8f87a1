package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
)

var errQuit = errors.New("quit")

const shellHelp = `fields                  list the fields
row <i>                 print row i
cell <i> <column>       print one cell
map <column> <string>   map a string, assigning a code if needed
code <column> <string>  look a string up without assigning
quit                    leave the shell`

func shellCmd(_ *flag.FlagSet) runFunc {
	return func(e *env, t source, _ []string) error {
		var historyFile string
		if home, err := os.UserHomeDir(); err == nil {
			historyFile = filepath.Join(home, ".strider_history")
		}
		rl, err := readline.NewEx(&readline.Config{
			Prompt:      "strider> ",
			HistoryFile: historyFile,
		})
		if err != nil {
			return err
		}
		defer rl.Close()

		sh := &shell{e: e, t: t}
		for {
			line, err := rl.Readline()
			if err != nil { // Ctrl-C or Ctrl-D
				if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
			if err := sh.exec(line); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				fmt.Fprintf(e.stdout, "error: %v\n", err)
			}
		}
	}
}

// shell executes the commands of the interactive mode.
type shell struct {
	e *env
	t source
}

func (sh *shell) exec(line string) error {
	words := strings.Fields(line)
	if len(words) == 0 {
		return nil
	}
	out := sh.e.stdout
	cmd, args := words[0], words[1:]
	switch cmd {
	case "quit", "exit":
		return errQuit
	case "help":
		fmt.Fprintln(out, shellHelp)
		return nil
	case "fields":
		for j, f := range sh.t.Fields() {
			fmt.Fprintf(out, "%d\t%s\t%s\n", j, f.Name, f.Type)
		}
		return nil
	case "row":
		if len(args) != 1 {
			return fmt.Errorf("usage: row <i>")
		}
		i, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("bad row %q", args[0])
		}
		row, err := sh.t.Row(i)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, strings.Join(row, sh.e.cfg.Table.Delimiter))
		return nil
	case "cell":
		if len(args) != 2 {
			return fmt.Errorf("usage: cell <i> <column>")
		}
		i, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("bad row %q", args[0])
		}
		j, err := column(sh.t, args[1])
		if err != nil {
			return err
		}
		s, err := sh.t.Get(i, j)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, s)
		return nil
	case "map", "code":
		if len(args) < 2 {
			return fmt.Errorf("usage: %s <column> <string>", cmd)
		}
		j, err := column(sh.t, args[0])
		if err != nil {
			return err
		}
		s := strings.Join(args[1:], " ")
		if cmd == "code" {
			v, err := sh.t.Code(j, s)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, formatValues([]float64{v}))
			return nil
		}
		values, err := sh.t.TransformStringToValue(j, s)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, formatValues(values))
		return nil
	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
}
