package xlsx

import "testing"

func TestCellValueKinds(t *testing.T) {
	cases := []struct {
		value CellValue
		kind  int
	}{
		{EmptyValue(), CellEmpty},
		{StringValue("x"), CellString},
		{NumberValue(1.5), CellNumber},
		{BooleanValue(true), CellBoolean},
		{FormulaValue("SUM(A1:A2)"), CellFormula},
		{DateValue("2024-01-02"), CellDate},
	}
	for _, c := range cases {
		if c.value.Kind() != c.kind {
			t.Errorf("Kind() = %d, want %d", c.value.Kind(), c.kind)
		}
	}
	var zero CellValue
	if !zero.IsEmpty() {
		t.Error("zero CellValue is not empty")
	}
}

func TestCellValueEqual(t *testing.T) {
	if !EmptyValue().Equal(StringValue("")) {
		t.Error("Empty != empty string")
	}
	if !StringValue("").Equal(EmptyValue()) {
		t.Error("empty string != Empty")
	}
	if EmptyValue().Equal(StringValue("x")) {
		t.Error("Empty == non-empty string")
	}
	if !NumberValue(42).Equal(NumberValue(42)) {
		t.Error("42 != 42")
	}
	if NumberValue(42).Equal(BooleanValue(true)) {
		t.Error("number == boolean")
	}
	if !FormulaValue("A1+1").Equal(FormulaValue("A1+1")) {
		t.Error("equal formulas compare unequal")
	}
}

func TestCellValueString(t *testing.T) {
	cases := []struct {
		value CellValue
		want  string
	}{
		{EmptyValue(), ""},
		{StringValue("hello"), "hello"},
		{NumberValue(42), "42"},
		{NumberValue(1.5), "1.5"},
		{BooleanValue(true), "TRUE"},
		{BooleanValue(false), "FALSE"},
		{FormulaValue("SUM(A1:A2)"), "SUM(A1:A2)"},
		{DateValue("2024-01-02"), "2024-01-02"},
	}
	for _, c := range cases {
		if got := c.value.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}
