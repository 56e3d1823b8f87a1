package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/born-ml/strider/internal/table"
)

// ReaderOptions configures how files are opened.
type ReaderOptions struct {
	SkipChecksumValidation bool // Skip checksum validation (faster but less safe)
}

// fixedHeader is the decoded fixed part of a file.
type fixedHeader struct {
	version    uint32
	flags      uint32
	headerSize int64
	dataSize   int64
	checksum   [ChecksumSize]byte
}

// parseFixed decodes the fixed header at the start of data.
func parseFixed(data []byte) (fixedHeader, error) {
	var fh fixedHeader
	if len(data) < FixedHeaderSize {
		return fh, fmt.Errorf("%w: %d bytes, fixed header needs %d", ErrTruncated, len(data), FixedHeaderSize)
	}
	if string(data[0:4]) != MagicBytes {
		return fh, ErrInvalidMagic
	}
	fh.version = binary.LittleEndian.Uint32(data[4:8])
	if fh.version != FormatVersion {
		return fh, fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, fh.version, FormatVersion)
	}
	fh.flags = binary.LittleEndian.Uint32(data[8:12])

	headerSize := binary.LittleEndian.Uint64(data[16:24])
	if headerSize > MaxHeaderSize {
		return fh, ErrHeaderTooLarge
	}
	fh.headerSize = int64(headerSize)

	dataSize := binary.LittleEndian.Uint64(data[24:32])
	if dataSize > math.MaxInt64 {
		return fh, fmt.Errorf("data size too large: %d", dataSize)
	}
	fh.dataSize = int64(dataSize)

	copy(fh.checksum[:], data[ChecksumOffset:ChecksumOffset+ChecksumSize])
	return fh, nil
}

// parse decodes and checks a whole file image. It returns the header and
// the data section.
func parse(data []byte, opts ReaderOptions) (Header, []byte, error) {
	var header Header
	fh, err := parseFixed(data)
	if err != nil {
		return header, nil, err
	}

	headerEnd := int64(FixedHeaderSize) + fh.headerSize
	start := dataOffset(fh.headerSize)
	end := start + fh.dataSize
	if end < start || end > int64(len(data)) {
		return header, nil, fmt.Errorf("%w: data section ends at %d, file has %d bytes", ErrTruncated, end, len(data))
	}

	if err := json.Unmarshal(data[FixedHeaderSize:headerEnd], &header); err != nil {
		return header, nil, fmt.Errorf("failed to parse header JSON: %w", err)
	}
	if err := ValidateHeader(&header, fh.dataSize); err != nil {
		return header, nil, fmt.Errorf("validation failed: %w", err)
	}

	section := data[start:end]
	if !opts.SkipChecksumValidation {
		if err := ValidateChecksum(ComputeChecksum(section), fh.checksum); err != nil {
			return header, nil, err
		}
	}
	return header, section, nil
}

// value decodes the float64 at index k of a data section.
func value(section []byte, k int) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(section[k*valueSize:]))
}

// ReadFile decodes the file at path into a new matrix.
func ReadFile(path string, opts ReaderOptions) (*table.Matrix, Header, error) {
	//nolint:gosec // G304: input paths come from the user.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Header{}, fmt.Errorf("failed to read file: %w", err)
	}
	header, section, err := parse(data, opts)
	if err != nil {
		return nil, header, fmt.Errorf("%s: %w", path, err)
	}

	fields, err := header.TableFields()
	if err != nil {
		return nil, header, err
	}
	m, err := table.NewMemory(header.Rows, fields, table.Missing)
	if err != nil {
		return nil, header, err
	}
	for i := 0; i < header.Rows; i++ {
		for j := 0; j < header.Cols; j++ {
			if err := m.Put(i, j, value(section, i*header.Cols+j)); err != nil {
				return nil, header, err
			}
		}
	}
	return m, header, nil
}
