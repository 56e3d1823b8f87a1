package table

import (
	"bytes"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"strings"

	"github.com/born-ml/strider/internal/tokenizer"
)

// TextOptions configures how delimited text is turned into a table.
type TextOptions struct {
	Delimiter    string               // Field separator
	HeaderMarker string               // Prefix of the optional header line naming the fields
	Types        map[string]FieldType // Field types by name; other fields are FieldAuto
	Tokenizer    tokenizer.Tokenizer  // Used by FieldTokens columns
	Logger       *slog.Logger
}

// DefaultTextOptions returns the options of the native format:
// ";"-separated fields and a "#:" header.
func DefaultTextOptions() TextOptions {
	return TextOptions{
		Delimiter:    ";",
		HeaderMarker: "#:",
	}
}

func (o TextOptions) withDefaults() TextOptions {
	d := DefaultTextOptions()
	if o.Delimiter == "" {
		o.Delimiter = d.Delimiter
	}
	if o.HeaderMarker == "" {
		o.HeaderMarker = d.HeaderMarker
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// span locates a data line inside a text buffer.
type span struct {
	start, end int // Byte range, end exclusive, line terminator excluded
	line       int // Line number, 1-based
}

// layout is the result of scanning a text buffer: its fields and the
// position of every data line.
type layout struct {
	fields []Field
	rows   []span
}

// scanText indexes buf. Blank lines are skipped. The first line starting
// with the header marker names the fields, as long as no data line came
// before it; other lines starting with '#' are comments. Every data line
// must have as many fields as the header (or as the first data line when
// there is no header).
func scanText(buf []byte, opts TextOptions) (*layout, error) {
	delim := []byte(opts.Delimiter)
	marker := []byte(opts.HeaderMarker)

	// Count data lines first so the index is allocated once.
	n := 0
	for line := range lines(buf) {
		if isData(buf[line.start:line.end]) {
			n++
		}
	}

	l := &layout{rows: make([]span, 0, n)}
	width := -1
	wantHeader := len(marker) > 0
	for line := range lines(buf) {
		text := buf[line.start:line.end]
		if len(bytes.TrimSpace(text)) == 0 {
			continue
		}
		if wantHeader && bytes.HasPrefix(bytes.TrimSpace(text), marker) {
			wantHeader = false
			names := bytes.TrimPrefix(bytes.TrimSpace(text), marker)
			fields, err := headerFields(string(names), opts)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line.line, err)
			}
			l.fields = fields
			width = len(fields)
			continue
		}
		if !isData(text) {
			continue
		}
		wantHeader = false
		got := bytes.Count(text, delim) + 1
		if width < 0 {
			width = got
			l.fields = unnamed(width)
		}
		if got != width {
			return nil, &FieldCountError{Row: len(l.rows), Line: line.line, Want: width, Got: got}
		}
		l.rows = append(l.rows, line)
	}
	if len(opts.Types) > 0 {
		index, err := fieldIndex(l.fields)
		if err != nil {
			return nil, err
		}
		for name, ft := range opts.Types {
			j, ok := index[name]
			if !ok {
				return nil, fmt.Errorf("%w: type given for %q", ErrUnknownField, name)
			}
			l.fields[j].Type = ft
		}
	}
	return l, nil
}

func headerFields(header string, opts TextOptions) ([]Field, error) {
	names := splitFields(header, opts.Delimiter)
	fields := make([]Field, len(names))
	for j, name := range names {
		fields[j] = Field{Name: strings.TrimSpace(name)}
	}
	if _, err := fieldIndex(fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// isData reports whether a line holds data: not blank, not a comment.
func isData(text []byte) bool {
	text = bytes.TrimSpace(text)
	return len(text) > 0 && text[0] != '#'
}

// lines yields the lines of buf without their terminators.
func lines(buf []byte) iter.Seq[span] {
	return func(yield func(span) bool) {
		start, no := 0, 1
		for start < len(buf) {
			end := bytes.IndexByte(buf[start:], '\n')
			next := len(buf)
			if end < 0 {
				end = len(buf)
			} else {
				end += start
				next = end + 1
			}
			stop := end
			if stop > start && buf[stop-1] == '\r' {
				stop--
			}
			if !yield(span{start: start, end: stop, line: no}) {
				return
			}
			start = next
			no++
		}
	}
}

// splitFields splits a line on delim. Fields keep their spaces; numbers
// are trimmed when parsed.
func splitFields(line, delim string) []string {
	return strings.Split(line, delim)
}

// ReadStringTable reads delimited text from r into memory.
func ReadStringTable(r io.Reader, opts TextOptions) (*StringTable, error) {
	opts = opts.withDefaults()
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}
	l, err := scanText(buf, opts)
	if err != nil {
		return nil, err
	}

	st, err := newStringTable(len(l.rows), l.fields, opts.Tokenizer)
	if err != nil {
		return nil, err
	}
	for i, row := range l.rows {
		for j, v := range splitFields(string(buf[row.start:row.end]), opts.Delimiter) {
			if err := st.Put(i, j, v); err != nil {
				return nil, err
			}
		}
	}
	return st, nil
}

// LoadStringTable reads the delimited text file at path into memory.
func LoadStringTable(path string, opts TextOptions) (*StringTable, error) {
	opts = opts.withDefaults()
	//nolint:gosec // G304: loading tables from user-given paths is the point.
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table %q: %w", path, err)
	}
	defer f.Close()

	st, err := ReadStringTable(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	opts.Logger.Debug("loaded table", "path", path, "length", st.Length(), "width", st.Width())
	return st, nil
}
