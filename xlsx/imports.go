package xlsx

// Column import bridge: write whole typed columns in one call, e.g. when
// pulling data out of a columnar store or a query result.

// Column is one typed column to import. Exactly one of the value slices is
// used, chosen by Kind; Name supplies the optional header text.
type Column struct {
	Name string
	Kind int

	Strings  []string
	Numbers  []float64
	Booleans []bool
}

// StringColumn builds a string column.
func StringColumn(name string, values []string) Column {
	return Column{Name: name, Kind: CellString, Strings: values}
}

// NumberColumn builds a numeric column.
func NumberColumn(name string, values []float64) Column {
	return Column{Name: name, Kind: CellNumber, Numbers: values}
}

// BooleanColumn builds a boolean column.
func BooleanColumn(name string, values []bool) Column {
	return Column{Name: name, Kind: CellBoolean, Booleans: values}
}

func (c Column) length() int {
	switch c.Kind {
	case CellString:
		return len(c.Strings)
	case CellNumber:
		return len(c.Numbers)
	case CellBoolean:
		return len(c.Booleans)
	default:
		return 0
	}
}

func (c Column) value(i int) CellValue {
	switch c.Kind {
	case CellString:
		return StringValue(c.Strings[i])
	case CellNumber:
		return NumberValue(c.Numbers[i])
	case CellBoolean:
		return BooleanValue(c.Booleans[i])
	default:
		return EmptyValue()
	}
}

// ImportColumns writes the columns side by side starting at (startRow,
// startCol). When withHeader is set the column names occupy the first row and
// data starts one row below. Columns may have different lengths; shorter
// columns simply leave the remaining rows untouched.
func (ws *Worksheet) ImportColumns(startRow, startCol uint32, columns []Column, withHeader bool) error {
	if startRow == 0 || startCol == 0 {
		return NewError(KindInvalidCoordinate, "Invalid start coordinate (%d, %d)", startRow, startCol)
	}
	if uint64(startCol)+uint64(len(columns)) > uint64(MaxColumn)+1 {
		return NewError(KindInvalidCoordinate, "Columns %d..%d exceed the column limit", startCol, uint64(startCol)+uint64(len(columns))-1)
	}

	dataRow := startRow
	if withHeader {
		for i, col := range columns {
			ws.SetCellValue(startRow, startCol+uint32(i), StringValue(col.Name))
		}
		dataRow++
	}
	for i, col := range columns {
		n := col.length()
		if uint64(dataRow)+uint64(n) > uint64(MaxRow)+1 {
			return NewError(KindInvalidCoordinate, "Column %q exceeds the row limit", col.Name)
		}
		for j := 0; j < n; j++ {
			ws.SetCellValue(dataRow+uint32(j), startCol+uint32(i), col.value(j))
		}
	}
	return nil
}
