// Package xlsx reads and writes OOXML spreadsheet packages.
//
// The decoder turns a package into an in-memory Workbook: sheets in declared
// order, shared strings resolved, styles reconstructed into a registry.
// Worksheet parts are parsed concurrently when the workbook has more than
// one sheet.
//
// The encoder writes a Workbook back out under a configurable compression
// policy. For datasets too large to hold in memory, StreamingWorkbook
// appends rows directly into the archive.
//
// Cell coordinates are 1-indexed (row, column) pairs; ParseCoordinate and
// CoordinateString convert between them and "A1"-style references.
package xlsx
