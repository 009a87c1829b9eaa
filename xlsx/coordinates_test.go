package xlsx

import "testing"

func TestColumnLetterRoundTrip(t *testing.T) {
	for col := uint32(1); col <= MaxColumn; col++ {
		letters := ColumnToLetter(col)
		if letters == "" {
			t.Fatalf("ColumnToLetter(%d) returned empty string", col)
		}
		back, err := LetterToColumn(letters)
		if err != nil {
			t.Fatalf("LetterToColumn(%q) failed: %v", letters, err)
		}
		if back != col {
			t.Fatalf("round trip for column %d: got %q -> %d", col, letters, back)
		}
	}
}

func TestColumnToLetterKnownValues(t *testing.T) {
	cases := []struct {
		col  uint32
		want string
	}{
		{0, ""},
		{1, "A"},
		{26, "Z"},
		{27, "AA"},
		{28, "AB"},
		{52, "AZ"},
		{53, "BA"},
		{702, "ZZ"},
		{703, "AAA"},
		{16384, "XFD"},
	}
	for _, c := range cases {
		if got := ColumnToLetter(c.col); got != c.want {
			t.Errorf("ColumnToLetter(%d) = %q, want %q", c.col, got, c.want)
		}
	}
}

func TestLetterToColumnRejects(t *testing.T) {
	for _, letters := range []string{"", "A1", "XFE", "ZZZZ", "1"} {
		if _, err := LetterToColumn(letters); err == nil {
			t.Errorf("LetterToColumn(%q) succeeded, want error", letters)
		}
	}
}

func TestParseCoordinate(t *testing.T) {
	cases := []struct {
		coord string
		row   uint32
		col   uint32
	}{
		{"A1", 1, 1},
		{"a1", 1, 1},
		{"B2", 2, 2},
		{"Z99", 99, 26},
		{"AA100", 100, 27},
		{"XFD1048576", 1048576, 16384},
		{" A1 ", 1, 1},
		{"\tC3\n", 3, 3},
	}
	for _, c := range cases {
		row, col, err := ParseCoordinate(c.coord)
		if err != nil {
			t.Errorf("ParseCoordinate(%q) failed: %v", c.coord, err)
			continue
		}
		if row != c.row || col != c.col {
			t.Errorf("ParseCoordinate(%q) = (%d, %d), want (%d, %d)", c.coord, row, col, c.row, c.col)
		}
	}
}

func TestParseCoordinateRejects(t *testing.T) {
	bad := []string{
		"",
		"A",
		"1",
		"A0",
		"0A",
		"1A",
		"A1B",
		"XFE1",
		"A1048577",
		"XFD1048577",
		"A99999999999999999999",
		"ZZZZZZZZZZ1",
		"A-1",
		"A 1",
	}
	for _, coord := range bad {
		if _, _, err := ParseCoordinate(coord); err == nil {
			t.Errorf("ParseCoordinate(%q) succeeded, want error", coord)
		} else if !IsKind(err, KindInvalidCoordinate) {
			t.Errorf("ParseCoordinate(%q) error kind = %v, want invalid coordinate", coord, ErrKind(err))
		}
	}
}

func TestParseCoordinateBytesNoTrim(t *testing.T) {
	// The byte-level parser is strict; only the string wrapper trims.
	if _, _, ok := parseCoordinateBytes([]byte(" A1")); ok {
		t.Error("parseCoordinateBytes accepted leading whitespace")
	}
	if _, _, ok := parseCoordinateBytes([]byte("A1 ")); ok {
		t.Error("parseCoordinateBytes accepted trailing whitespace")
	}
	row, col, ok := parseCoordinateBytes([]byte("A1"))
	if !ok || row != 1 || col != 1 {
		t.Errorf("parseCoordinateBytes(A1) = (%d, %d, %v)", row, col, ok)
	}
}

func TestCoordinateString(t *testing.T) {
	if got := CoordinateString(1, 1); got != "A1" {
		t.Errorf("CoordinateString(1, 1) = %q, want A1", got)
	}
	if got := CoordinateString(1048576, 16384); got != "XFD1048576" {
		t.Errorf("CoordinateString(1048576, 16384) = %q, want XFD1048576", got)
	}
}

func TestParseRange(t *testing.T) {
	startRow, startCol, endRow, endCol, err := ParseRange("A1:B10")
	if err != nil {
		t.Fatalf("ParseRange(A1:B10) failed: %v", err)
	}
	if startRow != 1 || startCol != 1 || endRow != 10 || endCol != 2 {
		t.Errorf("ParseRange(A1:B10) = (%d, %d, %d, %d)", startRow, startCol, endRow, endCol)
	}

	for _, bad := range []string{"A1", "A1:B2:C3", "A1:", ":B2", "A0:B2"} {
		if _, _, _, _, err := ParseRange(bad); err == nil {
			t.Errorf("ParseRange(%q) succeeded, want error", bad)
		}
	}
}
