package table

import (
	"fmt"
	"maps"
	"math"
	"strconv"
	"strings"

	"github.com/born-ml/strider/internal/tokenizer"
)

// mapping holds the per-column string codes of a table. An assigned code
// never changes.
//
// Categorical columns number their strings 0, 1, 2, ... Auto columns keep
// numbers as their own value, so their strings count down from -1 instead,
// skipping any negative integer already read as a number in the column.
// A number equal to a string code of its column is rejected with
// ErrCodeClash: distinct strings never share a value.
type mapping struct {
	cols []*columnCodes
	tok  tokenizer.Tokenizer
}

type columnCodes struct {
	codes map[string]float64
	held  map[float64]bool // true: code of a string; false: number seen in an auto column
	next  float64
}

func newMapping(tok tokenizer.Tokenizer) *mapping {
	return &mapping{tok: tok}
}

func (m *mapping) column(col int) *columnCodes {
	for len(m.cols) <= col {
		m.cols = append(m.cols, nil)
	}
	if m.cols[col] == nil {
		m.cols[col] = &columnCodes{
			codes: make(map[string]float64),
			held:  make(map[float64]bool),
		}
	}
	return m.cols[col]
}

func (m *mapping) assign(ft FieldType, col int, s string) float64 {
	c := m.column(col)
	if v, ok := c.codes[s]; ok {
		return v
	}
	if ft != FieldAuto {
		v := float64(len(c.codes))
		c.codes[s] = v
		c.held[v] = true
		return v
	}
	v := c.next - 1
	for {
		if _, ok := c.held[v]; !ok {
			break
		}
		v--
	}
	c.next = v
	c.codes[s] = v
	c.held[v] = true
	return v
}

// number checks v, read from a cell of auto column col, against the
// column's string codes. Values that a string code could take are
// remembered when record is set.
func (m *mapping) number(col int, s string, v float64, record bool) error {
	if v >= 0 || v != math.Trunc(v) {
		return nil
	}
	if record {
		c := m.column(col)
		if c.held[v] {
			return fmt.Errorf("%w: column %d: %q", ErrCodeClash, col, s)
		}
		c.held[v] = false
		return nil
	}
	if col < len(m.cols) && m.cols[col] != nil && m.cols[col].held[v] {
		return fmt.Errorf("%w: column %d: %q", ErrCodeClash, col, s)
	}
	return nil
}

func (m *mapping) lookup(col int, s string) (float64, bool) {
	if col >= len(m.cols) || m.cols[col] == nil {
		return 0, false
	}
	v, ok := m.cols[col].codes[s]
	return v, ok
}

// snapshot returns a copy of the codes assigned in column col.
func (m *mapping) snapshot(col int) map[string]float64 {
	if col >= len(m.cols) || m.cols[col] == nil {
		return map[string]float64{}
	}
	return maps.Clone(m.cols[col].codes)
}

// transform implements Mapper.TransformStringToValue for a column of type ft.
func (m *mapping) transform(ft FieldType, col int, s string) ([]float64, error) {
	switch ft {
	case FieldNumeric:
		v, ok := parseNumber(s)
		if !ok {
			return nil, fmt.Errorf("%w: column %d: %q", ErrBadValue, col, s)
		}
		return []float64{v}, nil
	case FieldCategorical:
		return []float64{m.assign(ft, col, s)}, nil
	case FieldTokens:
		if m.tok == nil {
			return nil, fmt.Errorf("%w: column %d", ErrNoTokenizer, col)
		}
		ids, err := m.tok.Encode(s)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", col, err)
		}
		values := make([]float64, len(ids))
		for k, id := range ids {
			values[k] = float64(id)
		}
		return values, nil
	default:
		if v, ok := parseNumber(s); ok {
			if err := m.number(col, s, v, true); err != nil {
				return nil, err
			}
			return []float64{v}, nil
		}
		return []float64{m.assign(FieldAuto, col, s)}, nil
	}
}

// code implements Mapper.Code for a column of type ft.
func (m *mapping) code(ft FieldType, col int, s string) (float64, error) {
	switch ft {
	case FieldNumeric:
		v, ok := parseNumber(s)
		if !ok {
			return Missing, fmt.Errorf("%w: column %d: %q", ErrBadValue, col, s)
		}
		return v, nil
	case FieldTokens:
		return Missing, fmt.Errorf("%w: tokens column %d has no single code", ErrFieldType, col)
	case FieldAuto:
		if v, ok := parseNumber(s); ok {
			if err := m.number(col, s, v, false); err != nil {
				return Missing, err
			}
			return v, nil
		}
	}
	v, ok := m.lookup(col, s)
	if !ok {
		return Missing, fmt.Errorf("%w: column %d: %q", ErrUnmappedString, col, s)
	}
	return v, nil
}

// parseNumber parses a cell as a real. Empty cells are missing.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Missing, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
