package serialization

import (
	"bufio"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/born-ml/strider/internal/table"
)

// Version is recorded in the header of every file written.
const Version = "0.1.0"

// WriterOptions configures Write.
type WriterOptions struct {
	Metadata map[string]string // Free form key/value pairs stored in the header
}

// WriteFile writes t to a new file at path.
func WriteFile(path string, t table.Table[float64], opts WriterOptions) (err error) {
	//nolint:gosec // G304: output paths come from the user.
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %q: %w", path, cerr)
		}
	}()
	if err := Write(file, t, opts); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Write writes t at the current position of w, which must be the start of
// the file. Rows are streamed through the checksum, and the checksum is
// written into the fixed header once the data section is complete.
func Write(w io.WriteSeeker, t table.Table[float64], opts WriterOptions) error {
	header := Header{
		FormatVersion:  FormatVersion,
		StriderVersion: Version,
		CreatedAt:      time.Now().UTC(),
		DType:          DTypeFloat64,
		Rows:           t.Length(),
		Cols:           t.Width(),
		Fields:         fieldMetas(t.Fields()),
		Metadata:       opts.Metadata,
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	if len(headerJSON) > MaxHeaderSize {
		return ErrHeaderTooLarge
	}

	flags := uint32(0)
	if len(header.Metadata) > 0 {
		flags |= FlagHasMetadata
	}

	// Fixed header, checksum left zero until the data is written.
	fixed := make([]byte, FixedHeaderSize)
	copy(fixed[0:4], MagicBytes)
	binary.LittleEndian.PutUint32(fixed[4:8], FormatVersion)
	binary.LittleEndian.PutUint32(fixed[8:12], flags)
	binary.LittleEndian.PutUint64(fixed[16:24], uint64(len(headerJSON)))
	binary.LittleEndian.PutUint64(fixed[24:32], uint64(header.dataSize())) //nolint:gosec // G115: sizes are non-negative.

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(fixed); err != nil {
		return fmt.Errorf("failed to write fixed header: %w", err)
	}
	if _, err := bw.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	padding := dataOffset(int64(len(headerJSON))) - int64(FixedHeaderSize+len(headerJSON))
	if _, err := bw.Write(make([]byte, padding)); err != nil {
		return fmt.Errorf("failed to write padding: %w", err)
	}

	// Data section
	hash := sha256.New()
	out := io.MultiWriter(bw, hash)
	row := make([]float64, header.Cols)
	buf := make([]byte, header.Cols*valueSize)
	for i := 0; i < header.Rows; i++ {
		if err := t.RowInto(i, row); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		for j, v := range row {
			binary.LittleEndian.PutUint64(buf[j*valueSize:], math.Float64bits(v))
		}
		if _, err := out.Write(buf); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush data: %w", err)
	}

	if _, err := w.Seek(ChecksumOffset, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to checksum: %w", err)
	}
	if _, err := w.Write(hash.Sum(nil)); err != nil {
		return fmt.Errorf("failed to write checksum: %w", err)
	}
	if _, err := w.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek to end: %w", err)
	}
	return nil
}
