package xlsx

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
)

func encodeDecode(t *testing.T, wb *Workbook) *Workbook {
	t.Helper()
	data, err := wb.WriteToBuffer()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, err := OpenReader(data, nil)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	return decoded
}

func TestRoundTripBasicValues(t *testing.T) {
	wb := NewWorkbook()
	ws, err := wb.CreateSheet("Sheet1")
	if err != nil {
		t.Fatalf("CreateSheet failed: %v", err)
	}
	ws.SetCellValue(1, 1, StringValue("Hello"))
	ws.SetCellValue(1, 2, NumberValue(42.0))
	ws.SetCellValue(1, 3, BooleanValue(true))

	decoded := encodeDecode(t, wb)
	if len(decoded.SheetNames) != 1 || decoded.SheetNames[0] != "Sheet1" {
		t.Fatalf("sheet names = %v", decoded.SheetNames)
	}
	out, err := decoded.Active()
	if err != nil {
		t.Fatalf("Active failed: %v", err)
	}
	if got := out.GetCellValue(1, 1); !got.Equal(StringValue("Hello")) {
		t.Errorf("A1 = %v, want Hello", got)
	}
	if got := out.GetCellValue(1, 2); !got.Equal(NumberValue(42.0)) {
		t.Errorf("B1 = %v, want 42", got)
	}
	if got := out.GetCellValue(1, 3); !got.Equal(BooleanValue(true)) {
		t.Errorf("C1 = %v, want true", got)
	}
}

func TestRoundTripValueKinds(t *testing.T) {
	wb := NewWorkbook()
	ws, _ := wb.CreateSheet("kinds")
	ws.SetCellValue(1, 1, FormulaValue("SUM(B1:B9)"))
	ws.SetCellValue(2, 1, DateValue("2024-06-15"))
	ws.SetCellValue(3, 1, StringValue(""))
	ws.SetCellValue(4, 1, NumberValue(-12.75))
	ws.SetCellValue(5, 1, StringValue("  padded  "))
	ws.SetCellValue(6, 1, StringValue("a<b&\"c\">d"))

	out, _ := encodeDecode(t, wb).Active()
	if got := out.GetCellValue(1, 1); !got.Equal(FormulaValue("SUM(B1:B9)")) {
		t.Errorf("formula = %v", got)
	}
	if got := out.GetCellValue(2, 1); !got.Equal(DateValue("2024-06-15")) {
		t.Errorf("date = %v", got)
	}
	if got := out.GetCellValue(3, 1); !got.Equal(StringValue("")) {
		t.Errorf("empty string = %v (kind %d)", got, got.Kind())
	}
	if got := out.GetCellValue(4, 1); !got.Equal(NumberValue(-12.75)) {
		t.Errorf("negative number = %v", got)
	}
	if got := out.GetCellValue(5, 1); !got.Equal(StringValue("  padded  ")) {
		t.Errorf("whitespace not preserved: %q", got.Str())
	}
	if got := out.GetCellValue(6, 1); !got.Equal(StringValue("a<b&\"c\">d")) {
		t.Errorf("markup not escaped: %q", got.Str())
	}
}

func TestRoundTripMultiSheetOrder(t *testing.T) {
	wb := NewWorkbook()
	names := []string{"Zeta", "Alpha", "Middle"}
	for i, name := range names {
		ws, err := wb.CreateSheet(name)
		if err != nil {
			t.Fatalf("CreateSheet(%s) failed: %v", name, err)
		}
		ws.SetCellValue(1, 1, NumberValue(float64(i)))
	}
	decoded := encodeDecode(t, wb)
	if len(decoded.SheetNames) != 3 {
		t.Fatalf("sheet count = %d", len(decoded.SheetNames))
	}
	for i, name := range names {
		if decoded.SheetNames[i] != name {
			t.Errorf("sheet %d = %q, want %q", i, decoded.SheetNames[i], name)
		}
		ws, _ := decoded.SheetByIndex(i)
		if got := ws.GetCellValue(1, 1); !got.Equal(NumberValue(float64(i))) {
			t.Errorf("sheet %q A1 = %v, want %d", name, got, i)
		}
	}
}

func TestRoundTripStyles(t *testing.T) {
	wb := NewWorkbook()
	ws, _ := wb.CreateSheet("styled")
	ws.SetCellValue(1, 1, StringValue("bold red"))
	ws.SetCellStyle(1, 1, &CellStyle{
		Font: &Font{Name: "Arial", Size: 14, Bold: true, Color: "#FF0000"},
		Fill: &Fill{PatternType: "solid", FgColor: "#FFFF00"},
	})
	ws.SetCellValue(2, 1, NumberValue(0.25))
	ws.SetCellStyle(2, 1, &CellStyle{NumberFormat: "0.00%"})
	// Styled empty cell must survive.
	ws.SetCellStyle(3, 1, &CellStyle{Border: &Border{Top: BorderStyle{Style: "thin"}}})

	out, _ := encodeDecode(t, wb).Active()

	cd := out.GetCell(1, 1)
	if cd == nil || cd.Style == nil || cd.Style.Font == nil {
		t.Fatalf("A1 style missing: %+v", cd)
	}
	if !cd.Style.Font.Bold || cd.Style.Font.Name != "Arial" || cd.Style.Font.Size != 14 {
		t.Errorf("A1 font = %+v", cd.Style.Font)
	}
	if cd.Style.Fill == nil || cd.Style.Fill.PatternType != "solid" {
		t.Errorf("A1 fill = %+v", cd.Style.Fill)
	}

	cd = out.GetCell(2, 1)
	if cd == nil || cd.Style == nil || cd.Style.NumberFormat != "0.00%" {
		t.Errorf("A2 number format = %+v", cd)
	}

	cd = out.GetCell(3, 1)
	if cd == nil || !cd.Value.IsEmpty() {
		t.Fatalf("styled empty cell lost: %+v", cd)
	}
	if cd.Style == nil || cd.Style.Border == nil || cd.Style.Border.Top.Style != "thin" {
		t.Errorf("A3 border = %+v", cd.Style)
	}
}

// Cell formats are registered while worksheet XML is generated, but the
// styles part precedes the worksheet parts in the archive. The emitted part
// must already hold every xf that cells reference.
func TestStylesPartContainsCellFormats(t *testing.T) {
	wb := NewWorkbook()
	ws, _ := wb.CreateSheet("styled")
	ws.SetCellValue(1, 1, StringValue("bold"))
	ws.SetCellStyle(1, 1, &CellStyle{Font: &Font{Bold: true}})

	data, err := wb.WriteToBuffer()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("archive unreadable: %v", err)
	}
	readPart := func(name string) string {
		f, err := zr.Open(name)
		if err != nil {
			t.Fatalf("missing part %s: %v", name, err)
		}
		defer f.Close()
		content, err := io.ReadAll(f)
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		return string(content)
	}

	styles := readPart("xl/styles.xml")
	if !strings.Contains(styles, `<cellXfs count="2">`) {
		t.Errorf("styles part missing the registered cell format: %s", styles)
	}
	if !strings.Contains(styles, `applyFont="1"`) {
		t.Error("styles part missing the font-applying xf")
	}

	sheet := readPart("xl/worksheets/sheet1.xml")
	if !strings.Contains(sheet, ` s="1"`) {
		t.Errorf("cell does not reference the registered format: %s", sheet)
	}
}

func TestRoundTripSheetFeatures(t *testing.T) {
	wb := NewWorkbook()
	ws, _ := wb.CreateSheet("features")
	ws.SetCellValue(1, 1, StringValue("merged"))
	ws.AddMergedRange("A1", "B2")
	ws.SetRowHeight(1, 30)
	ws.SetColumnWidth(2, 18.5)
	ws.SetCellHyperlink(1, 3, "https://example.com")
	ws.SetCellComment(2, 2, "a remark")
	ws.EnableProtection("")
	ws.Protection.FormatCells = true
	ws.AddDataValidation(3, 1, &DataValidation{
		Type:       "list",
		Formula1:   "\"yes,no\"",
		AllowBlank: true,
		ShowError:  true,
	})

	out, _ := encodeDecode(t, wb).Active()

	if len(out.MergedCells) != 1 || out.MergedCells[0].Start != "A1" || out.MergedCells[0].End != "B2" {
		t.Errorf("merged cells = %+v", out.MergedCells)
	}
	if h, ok := out.RowHeights[1]; !ok || h != 30 {
		t.Errorf("row height = %v, %v", h, ok)
	}
	if w, ok := out.ColWidths[2]; !ok || w != 18.5 {
		t.Errorf("column width = %v, %v", w, ok)
	}
	if cd := out.GetCell(1, 3); cd == nil || cd.Hyperlink != "https://example.com" {
		t.Errorf("hyperlink = %+v", cd)
	}
	if cd := out.GetCell(2, 2); cd == nil || cd.Comment != "a remark" {
		t.Errorf("comment = %+v", cd)
	}
	if !out.IsProtected() || !out.Protection.FormatCells {
		t.Errorf("protection = %+v", out.Protection)
	}
	dv := out.DataValidations[cellKey(3, 1)]
	if dv == nil || dv.Type != "list" || dv.Formula1 != "\"yes,no\"" || !dv.AllowBlank || !dv.ShowError {
		t.Errorf("data validation = %+v", dv)
	}
}

func TestRoundTripNamedRanges(t *testing.T) {
	wb := NewWorkbook()
	wb.CreateSheet("Sheet1")
	wb.CreateNamedRange("scores", "'Sheet1'!A1:A10")

	decoded := encodeDecode(t, wb)
	ref, ok := decoded.NamedRange("scores")
	if !ok || ref != "'Sheet1'!A1:A10" {
		t.Errorf("named range = %q, %v", ref, ok)
	}
}

func TestRoundTripCompressionLevels(t *testing.T) {
	for _, level := range []CompressionLevel{CompressionNone, CompressionFast, CompressionDefault, CompressionBest} {
		wb := NewWorkbook()
		wb.Compression = level
		ws, _ := wb.CreateSheet("Sheet1")
		ws.SetCellValue(1, 1, StringValue("payload"))
		for row := uint32(2); row <= 50; row++ {
			ws.SetCellValue(row, 1, NumberValue(float64(row)))
		}

		out, _ := encodeDecode(t, wb).Active()
		if got := out.GetCellValue(1, 1); !got.Equal(StringValue("payload")) {
			t.Errorf("level %d: A1 = %v", level, got)
		}
		if got := out.GetCellValue(50, 1); !got.Equal(NumberValue(50)) {
			t.Errorf("level %d: A50 = %v", level, got)
		}
	}
}

func TestRoundTripSharedStringDedup(t *testing.T) {
	wb := NewWorkbook()
	ws, _ := wb.CreateSheet("Sheet1")
	for row := uint32(1); row <= 10; row++ {
		ws.SetCellValue(row, 1, StringValue("repeated"))
	}
	ws.SetCellValue(1, 2, StringValue("unique"))

	out, _ := encodeDecode(t, wb).Active()
	for row := uint32(1); row <= 10; row++ {
		if got := out.GetCellValue(row, 1); !got.Equal(StringValue("repeated")) {
			t.Fatalf("row %d = %v", row, got)
		}
	}
	if got := out.GetCellValue(1, 2); !got.Equal(StringValue("unique")) {
		t.Errorf("B1 = %v", got)
	}
}
