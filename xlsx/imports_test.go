package xlsx

import "testing"

func TestImportColumnsWithHeader(t *testing.T) {
	ws := NewWorksheet("data")
	cols := []Column{
		StringColumn("name", []string{"alpha", "beta"}),
		NumberColumn("score", []float64{1.5, 2.5}),
		BooleanColumn("active", []bool{true, false}),
	}
	if err := ws.ImportColumns(1, 1, cols, true); err != nil {
		t.Fatalf("ImportColumns failed: %v", err)
	}

	for i, want := range []string{"name", "score", "active"} {
		if got := ws.GetCellValue(1, uint32(i+1)); !got.Equal(StringValue(want)) {
			t.Errorf("header %d = %v, want %q", i+1, got, want)
		}
	}
	if got := ws.GetCellValue(2, 1); !got.Equal(StringValue("alpha")) {
		t.Errorf("A2 = %v", got)
	}
	if got := ws.GetCellValue(3, 2); !got.Equal(NumberValue(2.5)) {
		t.Errorf("B3 = %v", got)
	}
	if got := ws.GetCellValue(2, 3); !got.Equal(BooleanValue(true)) {
		t.Errorf("C2 = %v", got)
	}
}

func TestImportColumnsNoHeaderOffset(t *testing.T) {
	ws := NewWorksheet("data")
	cols := []Column{NumberColumn("n", []float64{10, 20, 30})}
	if err := ws.ImportColumns(5, 3, cols, false); err != nil {
		t.Fatalf("ImportColumns failed: %v", err)
	}
	if got := ws.GetCellValue(5, 3); !got.Equal(NumberValue(10)) {
		t.Errorf("C5 = %v", got)
	}
	if got := ws.GetCellValue(7, 3); !got.Equal(NumberValue(30)) {
		t.Errorf("C7 = %v", got)
	}
	if got := ws.GetCellValue(4, 3); !got.IsEmpty() {
		t.Errorf("C4 = %v, want empty", got)
	}
}

func TestImportColumnsRaggedLengths(t *testing.T) {
	ws := NewWorksheet("data")
	cols := []Column{
		NumberColumn("long", []float64{1, 2, 3}),
		NumberColumn("short", []float64{9}),
	}
	if err := ws.ImportColumns(1, 1, cols, false); err != nil {
		t.Fatalf("ImportColumns failed: %v", err)
	}
	if got := ws.GetCellValue(3, 1); !got.Equal(NumberValue(3)) {
		t.Errorf("A3 = %v", got)
	}
	if got := ws.GetCellValue(2, 2); !got.IsEmpty() {
		t.Errorf("B2 = %v, want empty", got)
	}
}

func TestImportColumnsBounds(t *testing.T) {
	ws := NewWorksheet("data")
	if err := ws.ImportColumns(0, 1, nil, false); !IsKind(err, KindInvalidCoordinate) {
		t.Errorf("zero start row error kind = %v", ErrKind(err))
	}
	wide := make([]Column, 2)
	if err := ws.ImportColumns(1, MaxColumn, wide, false); !IsKind(err, KindInvalidCoordinate) {
		t.Errorf("column overflow error kind = %v", ErrKind(err))
	}
	tall := []Column{NumberColumn("n", make([]float64, 10))}
	if err := ws.ImportColumns(MaxRow-5, 1, tall, false); !IsKind(err, KindInvalidCoordinate) {
		t.Errorf("row overflow error kind = %v", ErrKind(err))
	}
}
