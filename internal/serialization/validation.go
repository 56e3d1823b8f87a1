package serialization

import (
	"fmt"
)

// Validation limits for resource protection.
const (
	MaxHeaderSize = 16 * 1024 * 1024 // 16MB - maximum JSON header size
	MaxFieldName  = 4096             // Maximum column name length
)

// ValidateHeader checks that a header is self-consistent and matches the
// size of the data section that follows it.
func ValidateHeader(h *Header, dataSize int64) error {
	if h.FormatVersion != FormatVersion {
		return fmt.Errorf("%w: header says %d", ErrUnsupportedVersion, h.FormatVersion)
	}
	if h.DType != DTypeFloat64 {
		return &ValidationError{Type: "bad_dtype", Details: fmt.Sprintf("got %q, want %q", h.DType, DTypeFloat64)}
	}
	if h.Rows < 0 || h.Cols < 0 {
		return &ValidationError{Type: "negative_shape", Details: fmt.Sprintf("%d rows x %d cols", h.Rows, h.Cols)}
	}
	if len(h.Fields) != h.Cols {
		return &ValidationError{
			Type:    "field_count",
			Details: fmt.Sprintf("%d fields for %d columns", len(h.Fields), h.Cols),
		}
	}
	if h.Cols > 0 && int64(h.Rows) > dataSize/(int64(h.Cols)*valueSize) {
		return &ValidationError{
			Type:    "size_mismatch",
			Details: fmt.Sprintf("%d rows x %d cols do not fit in %d bytes", h.Rows, h.Cols, dataSize),
		}
	}
	if h.dataSize() != dataSize {
		return &ValidationError{
			Type:    "size_mismatch",
			Details: fmt.Sprintf("%d rows x %d cols need %d bytes, data section has %d", h.Rows, h.Cols, h.dataSize(), dataSize),
		}
	}

	seen := make(map[string]bool, len(h.Fields))
	for j, f := range h.Fields {
		if len(f.Name) > MaxFieldName {
			return &ValidationError{Type: "field_name", Details: fmt.Sprintf("column %d: name too long (%d bytes)", j, len(f.Name))}
		}
		if f.Name == "" {
			continue
		}
		if seen[f.Name] {
			return &ValidationError{Type: "field_name", Details: fmt.Sprintf("column %d: duplicate name %q", j, f.Name)}
		}
		seen[f.Name] = true
	}
	if _, err := h.TableFields(); err != nil {
		return err
	}
	return nil
}
