package serialization

import (
	"encoding/binary"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/strider/internal/parallel"
	"github.com/born-ml/strider/internal/table"
)

var _ table.Table[float64] = (*MatrixFile)(nil)

func sampleMatrix(t *testing.T) *table.Matrix {
	t.Helper()
	m, err := table.NewMemory(0, []table.Field{
		{Name: "age", Type: table.FieldNumeric},
		{Name: "city", Type: table.FieldCategorical},
		{},
	}, table.Missing)
	require.NoError(t, err)
	for _, r := range [][]float64{{31, 0, 1.5}, {table.Missing, 1, -2}, {27, 0, 1e-300}} {
		require.NoError(t, m.AppendValues(r))
	}
	return m
}

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.strd")
	require.NoError(t, WriteFile(path, sampleMatrix(t), WriterOptions{Metadata: map[string]string{"source": "people.txt"}}))
	return path
}

func assertSameRows(t *testing.T, want, got table.Table[float64]) {
	t.Helper()
	require.Equal(t, want.Length(), got.Length())
	require.Equal(t, want.Width(), got.Width())
	for i := 0; i < want.Length(); i++ {
		w, err := want.Row(i)
		require.NoError(t, err)
		g, err := got.Row(i)
		require.NoError(t, err)
		for j := range w {
			if table.IsMissing(w[j]) {
				assert.True(t, table.IsMissing(g[j]), "row %d column %d", i, j)
				continue
			}
			assert.Equal(t, w[j], g[j], "row %d column %d", i, j)
		}
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := writeSample(t)

	m, header, err := ReadFile(path, ReaderOptions{})
	require.NoError(t, err)
	assertSameRows(t, sampleMatrix(t), m)

	assert.Equal(t, sampleMatrix(t).Fields(), m.Fields())
	assert.Equal(t, FormatVersion, header.FormatVersion)
	assert.Equal(t, DTypeFloat64, header.DType)
	assert.Equal(t, "people.txt", header.Metadata["source"])
	assert.False(t, header.CreatedAt.IsZero())
}

func TestFileLayout(t *testing.T) {
	data, err := os.ReadFile(writeSample(t))
	require.NoError(t, err)

	assert.Equal(t, MagicBytes, string(data[0:4]))
	assert.Equal(t, uint32(FormatVersion), binary.LittleEndian.Uint32(data[4:8]))
	assert.Equal(t, FlagHasMetadata, binary.LittleEndian.Uint32(data[8:12]))

	headerSize := int64(binary.LittleEndian.Uint64(data[16:24]))
	dataSize := int64(binary.LittleEndian.Uint64(data[24:32]))
	assert.Equal(t, int64(3*3*8), dataSize)

	start := dataOffset(headerSize)
	assert.Zero(t, start%HeaderAlignment)
	assert.Equal(t, start+dataSize, int64(len(data)))

	var sum [ChecksumSize]byte
	copy(sum[:], data[ChecksumOffset:ChecksumOffset+ChecksumSize])
	assert.NoError(t, ValidateChecksum(ComputeChecksum(data[start:]), sum))
}

func TestOpenFile(t *testing.T) {
	path := writeSample(t)

	f, err := OpenFile(path, ReaderOptions{})
	require.NoError(t, err)
	defer f.Close()

	assertSameRows(t, sampleMatrix(t), f)
	assert.Equal(t, []string{"age", "city", ""}, table.Names(f.Fields()))
	assert.Equal(t, "people.txt", f.Header().Metadata["source"])

	v, err := f.Get(2, 0)
	require.NoError(t, err)
	assert.Equal(t, 27.0, v)

	_, err = f.Get(3, 0)
	assert.ErrorIs(t, err, table.ErrOutOfRange)
	_, err = f.Get(0, 3)
	assert.ErrorIs(t, err, table.ErrOutOfRange)
	assert.ErrorIs(t, f.Put(0, 0, 1), table.ErrReadOnly)
	assert.ErrorIs(t, f.RowInto(0, make([]float64, 2)), table.ErrWidthMismatch)

	stats, err := table.Stats(f, parallel.Config{Enabled: true, NumWorkers: 2, MinChunkSize: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, stats[0].Count)
	assert.Equal(t, 1, stats[0].Missing)
	assert.Equal(t, 29.0, stats[0].Mean)
}

func TestOpenFileClosed(t *testing.T) {
	f, err := OpenFile(writeSample(t), ReaderOptions{})
	require.NoError(t, err)
	require.NoError(t, f.Close())
	require.NoError(t, f.Close())

	_, err = f.Row(0)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestCorruptedData(t *testing.T) {
	path := writeSample(t)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data[len(data)-1] ^= 0xFF
	require.NoError(t, os.WriteFile(path, data, 0o600))

	_, _, err = ReadFile(path, ReaderOptions{})
	assert.ErrorIs(t, err, ErrChecksumMismatch)
	_, err = OpenFile(path, ReaderOptions{})
	assert.ErrorIs(t, err, ErrChecksumMismatch)

	_, _, err = ReadFile(path, ReaderOptions{SkipChecksumValidation: true})
	assert.NoError(t, err)
}

func TestInvalidFiles(t *testing.T) {
	good, err := os.ReadFile(writeSample(t))
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrTruncated},
		{"short", good[:40], ErrTruncated},
		{"magic", append([]byte("BORN"), good[4:]...), ErrInvalidMagic},
		{"truncated data", good[:len(good)-8], ErrTruncated},
		{"version", func() []byte {
			b := append([]byte(nil), good...)
			binary.LittleEndian.PutUint32(b[4:8], 9)
			return b
		}(), ErrUnsupportedVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.strd")
			require.NoError(t, os.WriteFile(path, tt.data, 0o600))

			_, _, err := ReadFile(path, ReaderOptions{})
			assert.ErrorIs(t, err, tt.want)
			_, err = OpenFile(path, ReaderOptions{})
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err = OpenFile(filepath.Join(t.TempDir(), "missing.strd"), ReaderOptions{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEmptyTable(t *testing.T) {
	m, err := table.NewMatrix(0, 2)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "empty.strd")
	require.NoError(t, WriteFile(path, m, WriterOptions{}))

	got, header, err := ReadFile(path, ReaderOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, got.Length())
	assert.Equal(t, 2, got.Width())
	assert.Empty(t, header.Metadata)
}

func TestWriteEncodedView(t *testing.T) {
	st, err := table.ReadStringTable(strings.NewReader("#: x;y\n1;a\n2;b\n3;a\n"), table.DefaultTextOptions())
	require.NoError(t, err)
	enc, err := table.Encode(st)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "enc.strd")
	require.NoError(t, WriteFile(path, enc, WriterOptions{}))

	m, _, err := ReadFile(path, ReaderOptions{})
	require.NoError(t, err)
	col, err := table.Column[float64](m, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, -2, -1}, col)
}

func TestValidateHeader(t *testing.T) {
	valid := func() Header {
		return Header{
			FormatVersion: FormatVersion,
			DType:         DTypeFloat64,
			Rows:          2,
			Cols:          2,
			Fields:        []FieldMeta{{Name: "a", Type: "auto"}, {Type: "numeric"}},
		}
	}
	h := valid()
	require.NoError(t, ValidateHeader(&h, 32))

	tests := []struct {
		name   string
		mutate func(*Header)
		size   int64
	}{
		{"dtype", func(h *Header) { h.DType = "float32" }, 32},
		{"negative", func(h *Header) { h.Rows = -1 }, 32},
		{"field count", func(h *Header) { h.Fields = h.Fields[:1] }, 32},
		{"size", func(h *Header) {}, 24},
		{"huge rows", func(h *Header) { h.Rows = 1 << 62 }, 32},
		{"duplicate", func(h *Header) { h.Fields[1].Name = "a" }, 32},
		{"field type", func(h *Header) { h.Fields[0].Type = "date" }, 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := valid()
			tt.mutate(&h)
			var ve *ValidationError
			assert.ErrorAs(t, ValidateHeader(&h, tt.size), &ve)
		})
	}

	h = valid()
	h.FormatVersion = 7
	assert.ErrorIs(t, ValidateHeader(&h, 32), ErrUnsupportedVersion)
}

func TestKnownVectorSHA256(t *testing.T) {
	sum := ComputeChecksum([]byte("abc"))
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", hex.EncodeToString(sum[:]))

	var other [ChecksumSize]byte
	assert.ErrorIs(t, ValidateChecksum(sum, other), ErrChecksumMismatch)
}
