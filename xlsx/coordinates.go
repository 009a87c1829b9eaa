package xlsx

import (
	"strconv"
	"strings"
)

// MaxColumn is the highest addressable column ("XFD").
const MaxColumn uint32 = 16384

// MaxRow is the highest addressable row.
const MaxRow uint32 = 1048576

// parseCoordinateBytes parses a cell reference such as "A1" or "AB123" into a
// 1-indexed (row, column) pair. This is the fast path used by the worksheet
// parser: it allocates nothing and, unlike ParseCoordinate, does not trim
// surrounding whitespace. All arithmetic is checked so hostile input fails
// instead of wrapping.
func parseCoordinateBytes(b []byte) (row, col uint32, ok bool) {
	if len(b) == 0 {
		return 0, 0, false
	}

	i := 0
	for ; i < len(b); i++ {
		c := b[i]
		switch {
		case c >= 'a' && c <= 'z':
			c -= 32
		case c >= 'A' && c <= 'Z':
		default:
			goto digits
		}
		col = col*26 + uint32(c-'A'+1)
		if col > MaxColumn {
			return 0, 0, false
		}
	}

digits:
	if i == 0 || i >= len(b) || col == 0 {
		return 0, 0, false
	}

	for ; i < len(b); i++ {
		c := b[i]
		if c < '0' || c > '9' {
			return 0, 0, false
		}
		row = row*10 + uint32(c-'0')
		if row > MaxRow {
			return 0, 0, false
		}
	}
	if row == 0 {
		return 0, 0, false
	}
	return row, col, true
}

// ParseCoordinate parses a cell reference such as "A1" or "AB123" into a
// 1-indexed (row, column) pair. Letters are case-insensitive and surrounding
// whitespace is trimmed before the byte parser runs; the byte parser itself
// stays strict.
func ParseCoordinate(coord string) (row, col uint32, err error) {
	trimmed := strings.TrimSpace(coord)
	row, col, ok := parseCoordinateBytes([]byte(trimmed))
	if !ok {
		return 0, 0, NewError(KindInvalidCoordinate, "Invalid coordinate: %s", coord)
	}
	return row, col, nil
}

// LetterToColumn converts column letters (e.g. "A", "AB", "XFD") to a
// 1-indexed column number.
func LetterToColumn(letters string) (uint32, error) {
	var col uint32
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		switch {
		case c >= 'a' && c <= 'z':
			c -= 32
		case c >= 'A' && c <= 'Z':
		default:
			return 0, NewError(KindInvalidCoordinate, "Invalid character in column: %c", c)
		}
		col = col*26 + uint32(c-'A'+1)
		if col > MaxColumn {
			return 0, NewError(KindInvalidCoordinate, "Column %q exceeds maximum (XFD = %d)", letters, MaxColumn)
		}
	}
	if col == 0 {
		return 0, NewError(KindInvalidCoordinate, "Empty column letters")
	}
	return col, nil
}

// ColumnToLetter converts a 1-indexed column number to letters
// (1 -> "A", 28 -> "AB"). Column 0 yields the empty string.
func ColumnToLetter(column uint32) string {
	var buf [3]byte
	i := len(buf)
	for column > 0 {
		column--
		i--
		buf[i] = byte('A' + column%26)
		column /= 26
	}
	return string(buf[i:])
}

// CoordinateString builds a cell reference from a 1-indexed (row, column) pair.
func CoordinateString(row, column uint32) string {
	return ColumnToLetter(column) + strconv.FormatUint(uint64(row), 10)
}

// ParseRange parses a range reference such as "A1:B10" into start and end
// coordinates.
func ParseRange(rng string) (startRow, startCol, endRow, endCol uint32, err error) {
	first, rest, found := strings.Cut(rng, ":")
	if !found || strings.Contains(rest, ":") {
		return 0, 0, 0, 0, NewError(KindInvalidCoordinate, "Invalid range format: %s", rng)
	}
	startRow, startCol, err = ParseCoordinate(first)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	endRow, endCol, err = ParseCoordinate(rest)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return startRow, startCol, endRow, endCol, nil
}

// parseUint32Bytes parses an unsigned decimal integer from bytes with checked
// arithmetic. Used for attribute values on the decode hot path.
func parseUint32Bytes(b []byte) (uint32, bool) {
	if len(b) == 0 {
		return 0, false
	}
	var n uint64
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + uint64(c-'0')
		if n > 1<<32-1 {
			return 0, false
		}
	}
	return uint32(n), true
}

// parseFloatBytes parses a cell value as a float64. Plain digit runs take an
// integer-only fast path; everything else falls back to strconv.
func parseFloatBytes(b []byte) (float64, bool) {
	if len(b) > 0 && len(b) <= 15 {
		allDigits := true
		for _, c := range b {
			if c < '0' || c > '9' {
				allDigits = false
				break
			}
		}
		if allDigits {
			var n float64
			for _, c := range b {
				n = n*10 + float64(c-'0')
			}
			return n, true
		}
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
