package table

import "fmt"

// FieldType tells how the strings of a column turn into numbers.
type FieldType int

// Field types.
const (
	// FieldAuto parses numbers and maps every other string to a code.
	FieldAuto FieldType = iota
	// FieldNumeric requires numbers; empty cells are missing (NaN).
	FieldNumeric
	// FieldCategorical maps every distinct string to a code, numbers included.
	FieldCategorical
	// FieldTokens turns a cell into the token ids of its text.
	FieldTokens
)

// String returns the name used in configuration files.
func (ft FieldType) String() string {
	switch ft {
	case FieldAuto:
		return "auto"
	case FieldNumeric:
		return "numeric"
	case FieldCategorical:
		return "categorical"
	case FieldTokens:
		return "tokens"
	default:
		return "unknown"
	}
}

// ParseFieldType is the inverse of FieldType.String.
func ParseFieldType(s string) (FieldType, error) {
	switch s {
	case "auto", "":
		return FieldAuto, nil
	case "numeric":
		return FieldNumeric, nil
	case "categorical":
		return FieldCategorical, nil
	case "tokens":
		return FieldTokens, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
}

// Field describes a column.
type Field struct {
	Name string
	Type FieldType
}

// Names returns the names of fields, in order.
func Names(fields []Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// unnamed returns n fields without names.
func unnamed(n int) []Field {
	return make([]Field, n)
}

// fieldIndex builds the name -> column map, rejecting duplicate names.
// Unnamed columns are not indexed.
func fieldIndex(fields []Field) (map[string]int, error) {
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			continue
		}
		if _, dup := index[f.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, f.Name)
		}
		index[f.Name] = i
	}
	return index, nil
}
