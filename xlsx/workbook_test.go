package xlsx

import "testing"

func TestActiveOnEmptyWorkbook(t *testing.T) {
	wb := NewWorkbook()
	if _, err := wb.Active(); err == nil {
		t.Fatal("Active on empty workbook succeeded")
	} else if !IsKind(err, KindNoWorksheets) {
		t.Errorf("error kind = %v, want no worksheets", ErrKind(err))
	}
}

func TestCreateSheetAutoName(t *testing.T) {
	wb := NewWorkbook()
	ws, err := wb.CreateSheet("")
	if err != nil {
		t.Fatalf("CreateSheet failed: %v", err)
	}
	if ws.Name != "Sheet1" {
		t.Errorf("auto name = %q, want Sheet1", ws.Name)
	}
	ws2, err := wb.CreateSheet("")
	if err != nil {
		t.Fatalf("CreateSheet failed: %v", err)
	}
	if ws2.Name != "Sheet2" {
		t.Errorf("auto name = %q, want Sheet2", ws2.Name)
	}
}

func TestCreateSheetDuplicateName(t *testing.T) {
	wb := NewWorkbook()
	if _, err := wb.CreateSheet("Data"); err != nil {
		t.Fatalf("CreateSheet failed: %v", err)
	}
	if _, err := wb.CreateSheet("Data"); err == nil {
		t.Fatal("duplicate sheet name accepted")
	} else if !IsKind(err, KindWorksheetExists) {
		t.Errorf("error kind = %v, want worksheet exists", ErrKind(err))
	}
}

func TestSheetLookup(t *testing.T) {
	wb := NewWorkbook()
	wb.CreateSheet("First")
	wb.CreateSheet("Second")

	ws, err := wb.SheetByName("Second")
	if err != nil {
		t.Fatalf("SheetByName failed: %v", err)
	}
	if ws.Name != "Second" {
		t.Errorf("SheetByName returned %q", ws.Name)
	}

	if _, err := wb.SheetByName("Missing"); !IsKind(err, KindWorksheetNotFound) {
		t.Errorf("missing sheet error kind = %v", ErrKind(err))
	}

	if _, err := wb.SheetByIndex(1); err != nil {
		t.Errorf("SheetByIndex(1) failed: %v", err)
	}
	if _, err := wb.SheetByIndex(2); !IsKind(err, KindWorksheetNotFound) {
		t.Errorf("out-of-range index error kind = %v", ErrKind(err))
	}
}

func TestRemoveSheet(t *testing.T) {
	wb := NewWorkbook()
	wb.CreateSheet("A")
	wb.CreateSheet("B")
	wb.CreateSheet("C")

	if err := wb.RemoveSheet("B"); err != nil {
		t.Fatalf("RemoveSheet failed: %v", err)
	}
	if len(wb.Worksheets) != 2 || wb.SheetNames[0] != "A" || wb.SheetNames[1] != "C" {
		t.Errorf("sheets after removal = %v", wb.SheetNames)
	}
	if err := wb.RemoveSheet("B"); !IsKind(err, KindWorksheetNotFound) {
		t.Errorf("removing missing sheet error kind = %v", ErrKind(err))
	}
}

func TestActiveSheetPassThroughs(t *testing.T) {
	wb := NewWorkbook()
	if err := wb.SetCellValue(1, 1, NumberValue(1)); !IsKind(err, KindNoWorksheets) {
		t.Errorf("SetCellValue on empty workbook error kind = %v", ErrKind(err))
	}
	wb.CreateSheet("Data")
	if err := wb.SetCellValue(2, 3, StringValue("x")); err != nil {
		t.Fatalf("SetCellValue failed: %v", err)
	}
	ws, _ := wb.Active()
	if got := ws.GetCellValue(2, 3); !got.Equal(StringValue("x")) {
		t.Errorf("cell value = %v", got)
	}
}

func TestNamedRanges(t *testing.T) {
	wb := NewWorkbook()
	if err := wb.CreateNamedRange("data", "'Sheet1'!A1:B2"); err != nil {
		t.Fatalf("CreateNamedRange failed: %v", err)
	}
	if err := wb.CreateNamedRange("data", "'Sheet1'!C1:C2"); !IsKind(err, KindNamedRangeExists) {
		t.Errorf("duplicate named range error kind = %v", ErrKind(err))
	}
	ref, ok := wb.NamedRange("data")
	if !ok || ref != "'Sheet1'!A1:B2" {
		t.Errorf("NamedRange(data) = %q, %v", ref, ok)
	}
	if _, ok := wb.NamedRange("missing"); ok {
		t.Error("NamedRange(missing) reported ok")
	}
}

func TestWorksheetDimension(t *testing.T) {
	ws := NewWorksheet("t")
	if _, _, _, _, ok := ws.Dimension(); ok {
		t.Error("empty sheet reported a dimension")
	}
	ws.SetCellValue(5, 2, NumberValue(1))
	ws.SetCellValue(2, 7, NumberValue(2))
	minRow, minCol, maxRow, maxCol, ok := ws.Dimension()
	if !ok || minRow != 2 || minCol != 2 || maxRow != 5 || maxCol != 7 {
		t.Errorf("Dimension = (%d, %d, %d, %d, %v)", minRow, minCol, maxRow, maxCol, ok)
	}
}

func TestSortedCellKeysRowMajor(t *testing.T) {
	ws := NewWorksheet("t")
	ws.SetCellValue(2, 1, NumberValue(3))
	ws.SetCellValue(1, 2, NumberValue(2))
	ws.SetCellValue(1, 1, NumberValue(1))
	keys := ws.sortedCellKeys()
	want := []uint64{cellKey(1, 1), cellKey(1, 2), cellKey(2, 1)}
	for i, key := range keys {
		if key != want[i] {
			t.Fatalf("keys[%d] = %d, want %d", i, key, want[i])
		}
	}
}
