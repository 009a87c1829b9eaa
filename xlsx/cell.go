package xlsx

import "strconv"

// Cell value kinds. A cell value is exactly one of these.
const (
	CellEmpty = iota
	CellString
	CellNumber
	CellBoolean
	CellFormula
	CellDate
)

// CellValue is a closed variant over the six cell value kinds. The zero value
// is Empty. Construct values with EmptyValue, StringValue, NumberValue,
// BooleanValue, FormulaValue and DateValue; inspect them via Kind and the
// typed accessors.
type CellValue struct {
	kind int
	str  string
	num  float64
	b    bool
}

// EmptyValue returns the empty cell value.
func EmptyValue() CellValue { return CellValue{} }

// StringValue returns a string cell value.
func StringValue(s string) CellValue { return CellValue{kind: CellString, str: s} }

// NumberValue returns a numeric cell value.
func NumberValue(n float64) CellValue { return CellValue{kind: CellNumber, num: n} }

// BooleanValue returns a boolean cell value.
func BooleanValue(v bool) CellValue { return CellValue{kind: CellBoolean, b: v} }

// FormulaValue returns a formula cell value. The formula is raw text without
// a leading "=" and is never evaluated.
func FormulaValue(f string) CellValue { return CellValue{kind: CellFormula, str: f} }

// DateValue returns a date cell value carrying the raw textual serial.
func DateValue(d string) CellValue { return CellValue{kind: CellDate, str: d} }

// Kind reports which of the six kinds this value is.
func (v CellValue) Kind() int { return v.kind }

// IsEmpty reports whether the value is Empty.
func (v CellValue) IsEmpty() bool { return v.kind == CellEmpty }

// Str returns the string payload for String, Formula and Date values.
func (v CellValue) Str() string { return v.str }

// Num returns the numeric payload for Number values.
func (v CellValue) Num() float64 { return v.num }

// Bool returns the boolean payload for Boolean values.
func (v CellValue) Bool() bool { return v.b }

// Equal reports whether two values are equal for round-trip purposes:
// Empty and the empty String compare equal.
func (v CellValue) Equal(other CellValue) bool {
	if v.kind != other.kind {
		return (v.kind == CellEmpty && other.kind == CellString && other.str == "") ||
			(v.kind == CellString && v.str == "" && other.kind == CellEmpty)
	}
	switch v.kind {
	case CellEmpty:
		return true
	case CellNumber:
		return v.num == other.num
	case CellBoolean:
		return v.b == other.b
	default:
		return v.str == other.str
	}
}

// String renders the value as display text. Formulas keep their raw text,
// booleans render as TRUE/FALSE, Empty renders as "".
func (v CellValue) String() string {
	switch v.kind {
	case CellString, CellFormula, CellDate:
		return v.str
	case CellNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case CellBoolean:
		if v.b {
			return "TRUE"
		}
		return "FALSE"
	default:
		return ""
	}
}

// CellData holds everything stored at one coordinate: the value, an optional
// shared style, an optional literal number-format override, the explicit type
// tag the package carried (used to disambiguate otherwise-ambiguous empty
// values), an optional hyperlink target and an optional comment.
type CellData struct {
	Value        CellValue
	Style        *CellStyle
	StyleIndex   uint32
	HasStyle     bool
	NumberFormat string
	DataType     string
	Hyperlink    string
	Comment      string
}
