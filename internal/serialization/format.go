package serialization

import (
	"time"

	"github.com/born-ml/strider/internal/table"
)

// Format constants.
const (
	MagicBytes      = "STRD"
	FormatVersion   = 1
	FixedHeaderSize = 64   // Fixed header size (0x40 bytes)
	HeaderAlignment = 64   // Data section starts on a 64 byte boundary
	ChecksumSize    = 32   // SHA-256 checksum size
	ChecksumOffset  = 0x20 // Checksum offset in the fixed header
	valueSize       = 8    // Bytes per float64
)

// DTypeFloat64 is the only element type written so far.
const DTypeFloat64 = "float64"

// Flags of the fixed header.
const (
	FlagHasMetadata uint32 = 1 << 0 // bit 0: metadata included
)

// Header is the JSON header of a matrix file.
type Header struct {
	FormatVersion  int               `json:"format_version"`
	StriderVersion string            `json:"strider_version"`
	CreatedAt      time.Time         `json:"created_at"`
	DType          string            `json:"dtype"`
	Rows           int               `json:"rows"`
	Cols           int               `json:"cols"`
	Fields         []FieldMeta       `json:"fields"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// FieldMeta describes a column in the file.
type FieldMeta struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type"`
}

func fieldMetas(fields []table.Field) []FieldMeta {
	metas := make([]FieldMeta, len(fields))
	for j, f := range fields {
		metas[j] = FieldMeta{Name: f.Name, Type: f.Type.String()}
	}
	return metas
}

// TableFields converts the column descriptions back to table fields.
func (h *Header) TableFields() ([]table.Field, error) {
	fields := make([]table.Field, len(h.Fields))
	for j, m := range h.Fields {
		ft, err := table.ParseFieldType(m.Type)
		if err != nil {
			return nil, &ValidationError{Type: "bad_field", Details: err.Error()}
		}
		fields[j] = table.Field{Name: m.Name, Type: ft}
	}
	return fields, nil
}

// dataSize is the size in bytes of the data section the header describes.
func (h *Header) dataSize() int64 {
	return int64(h.Rows) * int64(h.Cols) * valueSize
}

// dataOffset returns where the data section of a file whose JSON header
// has headerSize bytes starts.
func dataOffset(headerSize int64) int64 {
	end := int64(FixedHeaderSize) + headerSize
	return (end + HeaderAlignment - 1) / HeaderAlignment * HeaderAlignment
}
