// Package serialization stores numeric tables in a binary matrix file.
//
// # File Layout
//
// All integers are little endian.
//
//	0x00  [4]byte   magic "STRD"
//	0x04  uint32    format version
//	0x08  uint32    flags
//	0x0C  uint32    reserved, zero
//	0x10  uint64    size of the JSON header
//	0x18  uint64    size of the data section
//	0x20  [32]byte  SHA-256 of the data section
//	0x40  JSON header, zero-padded to a multiple of 64 bytes
//	      data section: rows x cols float64, row after row
//
// The JSON header records the shape, the column names and types, and free
// form metadata. Missing values are stored as NaN.
//
// # Reading
//
// ReadFile decodes a whole file into a table.Matrix. OpenFile maps the
// file instead and serves rows straight from the mapping, which suits
// files larger than memory.
package serialization
