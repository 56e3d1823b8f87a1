package table

import (
	"fmt"
	"os"
	"slices"

	"github.com/edsrzf/mmap-go"

	"github.com/born-ml/strider/internal/tokenizer"
)

// TextTable is a read-only table over a delimited text file.
//
// The file is memory-mapped and indexed when the table is opened (field
// counts are checked for every line at that point); rows are split into
// fields only when they are requested and nothing is cached across calls.
// Close releases the mapping.
type TextTable struct {
	path    string
	file    *os.File
	data    mmap.MMap // nil for an empty file
	layout  *layout
	delim   string
	mapping *mapping
	closed  bool
}

// OpenTextTable maps the file at path and indexes its lines.
//
// Important: always call Close when done with the table (use defer).
func OpenTextTable(path string, opts TextOptions) (*TextTable, error) {
	opts = opts.withDefaults()
	//nolint:gosec // G304: loading tables from user-given paths is the point.
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table %q: %w", path, err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat table %q: %w", path, err)
	}

	var data mmap.MMap
	if stat.Size() > 0 {
		data, err = mmap.Map(file, mmap.RDONLY, 0)
		if err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("mmap %q failed: %w", path, err)
		}
	}

	t := &TextTable{
		path:    path,
		file:    file,
		data:    data,
		delim:   opts.Delimiter,
		mapping: newMapping(opts.Tokenizer),
	}
	t.layout, err = scanText(data, opts)
	if err != nil {
		_ = t.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	opts.Logger.Debug("opened text table", "path", path, "bytes", stat.Size(),
		"length", t.Length(), "width", t.Width())
	return t, nil
}

// Path returns the file the table reads from.
func (t *TextTable) Path() string {
	return t.path
}

// Length returns the number of data lines.
func (t *TextTable) Length() int {
	return len(t.layout.rows)
}

// Width returns the number of fields per line.
func (t *TextTable) Width() int {
	return len(t.layout.fields)
}

// Fields returns a copy of the column descriptions.
func (t *TextTable) Fields() []Field {
	return slices.Clone(t.layout.fields)
}

// TextFields returns row i split into its fields.
func (t *TextTable) TextFields(i int) ([]string, error) {
	if t.closed {
		return nil, fmt.Errorf("table: %s is closed", t.path)
	}
	if err := checkRow(i, t.Length()); err != nil {
		return nil, err
	}
	row := t.layout.rows[i]
	return splitFields(string(t.data[row.start:row.end]), t.delim), nil
}

// Row returns row i split into its fields.
func (t *TextTable) Row(i int) ([]string, error) {
	return t.TextFields(i)
}

// RowInto copies row i into dst.
func (t *TextTable) RowInto(i int, dst []string) error {
	if err := checkDst(len(dst), t.Width()); err != nil {
		return err
	}
	row, err := t.TextFields(i)
	if err != nil {
		return err
	}
	copy(dst, row)
	return nil
}

// Get returns the field at row i, column j.
func (t *TextTable) Get(i, j int) (string, error) {
	if err := checkCol(j, t.Width()); err != nil {
		return "", err
	}
	row, err := t.TextFields(i)
	if err != nil {
		return "", err
	}
	return row[j], nil
}

// Put fails: the file is mapped read-only.
func (t *TextTable) Put(i, j int, _ string) error {
	return fmt.Errorf("%w: %s row %d column %d", ErrReadOnly, t.path, i, j)
}

// SetTokenizer sets the tokenizer used by tokens columns.
func (t *TextTable) SetTokenizer(tok tokenizer.Tokenizer) {
	t.mapping.tok = tok
}

// TransformStringToValue implements Mapper.
func (t *TextTable) TransformStringToValue(col int, s string) ([]float64, error) {
	if err := checkCol(col, t.Width()); err != nil {
		return nil, err
	}
	return t.mapping.transform(t.layout.fields[col].Type, col, s)
}

// Code implements Mapper.
func (t *TextTable) Code(col int, s string) (float64, error) {
	if err := checkCol(col, t.Width()); err != nil {
		return Missing, err
	}
	return t.mapping.code(t.layout.fields[col].Type, col, s)
}

// CodeOrMissing implements Mapper.
func (t *TextTable) CodeOrMissing(col int, s string) float64 {
	c, err := t.Code(col, s)
	if err != nil {
		return Missing
	}
	return c
}

// Codes returns a copy of the codes assigned so far in column col.
func (t *TextTable) Codes(col int) (map[string]float64, error) {
	if err := checkCol(col, t.Width()); err != nil {
		return nil, err
	}
	return t.mapping.snapshot(col), nil
}

// Close unmaps the file and closes it.
func (t *TextTable) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	var unmapErr error
	if t.data != nil {
		unmapErr = t.data.Unmap()
		t.data = nil
	}
	if err := t.file.Close(); err != nil {
		return fmt.Errorf("failed to close table %q: %w", t.path, err)
	}
	if unmapErr != nil {
		return fmt.Errorf("failed to unmap table %q: %w", t.path, unmapErr)
	}
	return nil
}
