// Package table implements row-oriented virtual matrices.
//
// # Overview
//
// A Table is a length x width grid addressed by row and column, with an
// optional name and field type per column. Learners and kernels consume
// tables through the Table interface only, whatever the backing:
//   - Memory, Matrix: in-memory tables laid out in a tensor, growable with
//     AppendRow and DeclareFields
//   - StringTable: in-memory strings with a string to value mapping
//   - TextTable: delimited text file, memory-mapped and split lazily
//   - Columns, Rows, Transposed, Encoded: derived views sharing their
//     parent's cells
//
// # Text Format
//
//	#: name;age;city
//	alice;31;paris
//	bob;27;lyon
//
// Fields are separated by ";" (configurable) and kept exactly as written,
// surrounding spaces included. A "#:" line before the first data line
// names the fields. Blank lines and other lines starting with "#" are
// skipped, so comments may precede the header. A data line with the wrong
// number of fields fails the whole load with a FieldCountError.
//
// # String Mapping
//
// Tables implementing Mapper turn strings into numbers according to the
// column's FieldType. Strings get per-column codes on first sight: 0, 1,
// 2, ... in categorical columns and -1, -2, ... in auto columns, where
// numbers stand for themselves. A code once assigned never changes, so a
// model trained on one split reads the same codes when serving another,
// and no two distinct strings of a column share a value.
//
//	st, _ := table.LoadStringTable("people.txt", table.DefaultTextOptions())
//	code, _ := st.TransformStringToValue(2, "paris") // [-1]
//	num, _ := table.Encode(st)                       // Table[float64]
package table
