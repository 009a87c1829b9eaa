package xlsx

import (
	"strings"
	"testing"
)

func TestInspectFormatFromBytes(t *testing.T) {
	wb := NewWorkbook()
	wb.CreateSheet("Sheet1")
	data, err := wb.WriteToBuffer()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	format, err := InspectFormat("", data)
	if err != nil {
		t.Fatalf("InspectFormat failed: %v", err)
	}
	if format != "xlsx" {
		t.Errorf("format = %q, want xlsx", format)
	}

	legacy := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, make([]byte, 8)...)
	if format, _ := InspectFormat("", legacy); format != "xls" {
		t.Errorf("legacy format = %q, want xls", format)
	}

	if format, _ := InspectFormat("", []byte("short")); format != "" {
		t.Errorf("tiny input format = %q, want empty", format)
	}
	if format, _ := InspectFormat("", []byte(strings.Repeat("x", 64))); format != "" {
		t.Errorf("unknown input format = %q, want empty", format)
	}
}

func TestWorksheetRows(t *testing.T) {
	ws := NewWorksheet("grid")
	if rows := ws.Rows(); rows != nil {
		t.Errorf("empty sheet rows = %v", rows)
	}
	ws.SetCellValue(1, 1, StringValue("a"))
	ws.SetCellValue(2, 3, NumberValue(7))
	rows := ws.Rows()
	if len(rows) != 2 || len(rows[0]) != 3 {
		t.Fatalf("grid shape = %dx%d", len(rows), len(rows[0]))
	}
	if rows[0][0] != "a" || rows[1][2] != "7" || rows[0][1] != "" {
		t.Errorf("grid = %v", rows)
	}
}

func TestDump(t *testing.T) {
	wb := NewWorkbook()
	ws, _ := wb.CreateSheet("Data")
	ws.SetCellValue(1, 1, NumberValue(1))
	wb.CreateNamedRange("r", "'Data'!A1")

	var sb strings.Builder
	wb.Dump(&sb)
	out := sb.String()
	for _, want := range []string{"sheets: 1", "Data", "named ranges: 1", "styles:"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
}
