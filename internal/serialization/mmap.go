package serialization

import (
	"fmt"
	"os"
	"slices"

	"github.com/edsrzf/mmap-go"

	"github.com/born-ml/strider/internal/table"
)

// MatrixFile is a read-only numeric table served from a memory-mapped
// matrix file. Rows are decoded on each access and nothing is cached, so
// concurrent reads are safe.
type MatrixFile struct {
	path    string
	file    *os.File
	data    mmap.MMap
	section []byte // Data section inside data
	header  Header
	fields  []table.Field
	closed  bool
}

// OpenFile maps the matrix file at path and checks its header (and, unless
// skipped, its checksum).
//
// Important: Always call Close() when done to unmap the file (use defer).
func OpenFile(path string, opts ReaderOptions) (*MatrixFile, error) {
	//nolint:gosec // G304: input paths come from the user.
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if stat.Size() < FixedHeaderSize {
		_ = file.Close()
		return nil, fmt.Errorf("%s: %w: %d bytes", path, ErrTruncated, stat.Size())
	}

	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("mmap failed: %w", err)
	}

	f := &MatrixFile{path: path, file: file, data: data}
	f.header, f.section, err = parse(data, opts)
	if err == nil {
		f.fields, err = f.header.TableFields()
	}
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Header returns the file header.
func (f *MatrixFile) Header() Header {
	return f.header
}

// Length returns the number of rows.
func (f *MatrixFile) Length() int {
	return f.header.Rows
}

// Width returns the number of columns.
func (f *MatrixFile) Width() int {
	return f.header.Cols
}

// Fields returns a copy of the column descriptions.
func (f *MatrixFile) Fields() []table.Field {
	return slices.Clone(f.fields)
}

// Row returns a copy of row i.
func (f *MatrixFile) Row(i int) ([]float64, error) {
	row := make([]float64, f.header.Cols)
	if err := f.RowInto(i, row); err != nil {
		return nil, err
	}
	return row, nil
}

// RowInto decodes row i into dst.
func (f *MatrixFile) RowInto(i int, dst []float64) error {
	if err := f.checkRow(i); err != nil {
		return err
	}
	if len(dst) != f.header.Cols {
		return fmt.Errorf("%w: buffer holds %d values, row has %d", table.ErrWidthMismatch, len(dst), f.header.Cols)
	}
	base := i * f.header.Cols
	for j := range dst {
		dst[j] = value(f.section, base+j)
	}
	return nil
}

// Get returns the value at row i, column j.
func (f *MatrixFile) Get(i, j int) (float64, error) {
	if err := f.check(i, j); err != nil {
		return table.Missing, err
	}
	return value(f.section, i*f.header.Cols+j), nil
}

// Put fails: the file is mapped read-only.
func (f *MatrixFile) Put(i, j int, _ float64) error {
	return fmt.Errorf("%w: %s row %d column %d", table.ErrReadOnly, f.path, i, j)
}

func (f *MatrixFile) checkRow(i int) error {
	if f.closed {
		return fmt.Errorf("%w: %s", ErrClosed, f.path)
	}
	if i < 0 || i >= f.header.Rows {
		return &table.RangeError{What: "row", Index: i, Len: f.header.Rows}
	}
	return nil
}

func (f *MatrixFile) check(i, j int) error {
	if err := f.checkRow(i); err != nil {
		return err
	}
	if j < 0 || j >= f.header.Cols {
		return &table.RangeError{What: "column", Index: j, Len: f.header.Cols}
	}
	return nil
}

// Close unmaps and closes the file.
func (f *MatrixFile) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	f.section = nil
	var unmapErr error
	if f.data != nil {
		unmapErr = f.data.Unmap()
		f.data = nil
	}
	if err := f.file.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	if unmapErr != nil {
		return fmt.Errorf("failed to unmap file: %w", unmapErr)
	}
	return nil
}
