package xlsx

import "sort"

// cellKey packs a 1-indexed (row, column) pair into one map key.
func cellKey(row, col uint32) uint64 {
	return uint64(row)<<32 | uint64(col)
}

func keyRowCol(key uint64) (row, col uint32) {
	return uint32(key >> 32), uint32(key)
}

// MergedRange is a rectangular group of coordinates treated as one visual
// cell, stored as the textual corner references.
type MergedRange struct {
	Start string
	End   string
}

// DataValidation is a validation rule attached to a coordinate. Formulas are
// opaque text.
type DataValidation struct {
	Type         string
	Formula1     string
	Formula2     string
	AllowBlank   bool
	ShowError    bool
	ErrorTitle   string
	ErrorMessage string
	ShowInput    bool
	PromptTitle  string
	PromptMsg    string
}

// SheetProtection holds the worksheet protection options.
type SheetProtection struct {
	Sheet               bool
	Password            string
	SelectLockedCells   bool
	SelectUnlockedCells bool
	FormatCells         bool
	FormatColumns       bool
	FormatRows          bool
	InsertColumns       bool
	InsertRows          bool
	InsertHyperlinks    bool
	DeleteColumns       bool
	DeleteRows          bool
	Sort                bool
	AutoFilter          bool
	PivotTables         bool
	Objects             bool
	Scenarios           bool
}

// Worksheet holds the data for one sheet: a sparse cell map, merged ranges,
// row/column overrides, optional protection and validation rules.
//
// You normally obtain a Worksheet from a Workbook, either by decoding a
// package or via CreateSheet.
type Worksheet struct {
	// Name is the sheet name, unique within its workbook.
	Name string

	// Cells maps packed (row, column) keys to cell data. Use GetCell and the
	// setters rather than touching this directly.
	Cells map[uint64]*CellData

	// MergedCells lists the merged ranges of the sheet.
	MergedCells []MergedRange

	// RowHeights and ColWidths hold per-row and per-column overrides keyed by
	// 1-indexed row/column.
	RowHeights map[uint32]float64
	ColWidths  map[uint32]float64

	// Protection is non-nil when sheet protection is enabled.
	Protection *SheetProtection

	// DataValidations maps packed coordinates to validation rules.
	DataValidations map[uint64]*DataValidation
}

// NewWorksheet creates an empty worksheet with the given name.
func NewWorksheet(name string) *Worksheet {
	return &Worksheet{
		Name:            name,
		Cells:           make(map[uint64]*CellData),
		RowHeights:      make(map[uint32]float64),
		ColWidths:       make(map[uint32]float64),
		DataValidations: make(map[uint64]*DataValidation),
	}
}

// GetCell returns the cell data at (row, col), or nil if the coordinate has
// never been written.
func (ws *Worksheet) GetCell(row, col uint32) *CellData {
	return ws.Cells[cellKey(row, col)]
}

// GetCellValue returns the value at (row, col); Empty for unwritten cells.
func (ws *Worksheet) GetCellValue(row, col uint32) CellValue {
	if cd := ws.Cells[cellKey(row, col)]; cd != nil {
		return cd.Value
	}
	return EmptyValue()
}

func (ws *Worksheet) cell(row, col uint32) *CellData {
	key := cellKey(row, col)
	cd := ws.Cells[key]
	if cd == nil {
		cd = &CellData{}
		ws.Cells[key] = cd
	}
	return cd
}

// SetCellValue writes value at (row, col), creating the cell on first write
// and overwriting in place afterwards.
func (ws *Worksheet) SetCellValue(row, col uint32, value CellValue) {
	ws.cell(row, col).Value = value
}

// SetCellData replaces the whole cell at (row, col).
func (ws *Worksheet) SetCellData(row, col uint32, data *CellData) {
	ws.Cells[cellKey(row, col)] = data
}

// SetCellStyle attaches a shared style to the cell at (row, col).
func (ws *Worksheet) SetCellStyle(row, col uint32, style *CellStyle) {
	ws.cell(row, col).Style = style
}

// SetCellFormula stores raw formula text at (row, col). The formula is never
// evaluated.
func (ws *Worksheet) SetCellFormula(row, col uint32, formula string) {
	ws.cell(row, col).Value = FormulaValue(formula)
}

// SetCellNumberFormat sets a literal number-format override on the cell.
func (ws *Worksheet) SetCellNumberFormat(row, col uint32, format string) {
	ws.cell(row, col).NumberFormat = format
}

// SetCellHyperlink attaches a hyperlink target to the cell.
func (ws *Worksheet) SetCellHyperlink(row, col uint32, url string) {
	ws.cell(row, col).Hyperlink = url
}

// SetCellComment attaches comment text to the cell.
func (ws *Worksheet) SetCellComment(row, col uint32, comment string) {
	ws.cell(row, col).Comment = comment
}

// ClearCell removes the cell at (row, col).
func (ws *Worksheet) ClearCell(row, col uint32) {
	delete(ws.Cells, cellKey(row, col))
}

// SetRowHeight sets a height override for a row.
func (ws *Worksheet) SetRowHeight(row uint32, height float64) {
	ws.RowHeights[row] = height
}

// SetColumnWidth sets a width override for a column.
func (ws *Worksheet) SetColumnWidth(col uint32, width float64) {
	ws.ColWidths[col] = width
}

// AddMergedRange records a merged range by its corner references.
func (ws *Worksheet) AddMergedRange(start, end string) {
	ws.MergedCells = append(ws.MergedCells, MergedRange{Start: start, End: end})
}

// AddDataValidation attaches a validation rule to (row, col).
func (ws *Worksheet) AddDataValidation(row, col uint32, dv *DataValidation) {
	ws.DataValidations[cellKey(row, col)] = dv
}

// EnableProtection turns on sheet protection with the default option set.
// password may be empty.
func (ws *Worksheet) EnableProtection(password string) {
	ws.Protection = &SheetProtection{Sheet: true, Password: password}
}

// DisableProtection turns off sheet protection.
func (ws *Worksheet) DisableProtection() {
	ws.Protection = nil
}

// IsProtected reports whether sheet protection is enabled.
func (ws *Worksheet) IsProtected() bool {
	return ws.Protection != nil && ws.Protection.Sheet
}

// HasComments reports whether any cell carries a comment.
func (ws *Worksheet) HasComments() bool {
	for _, cd := range ws.Cells {
		if cd.Comment != "" {
			return true
		}
	}
	return false
}

// sortedCellKeys returns the cell keys in row-major then column-major
// ascending order, the order required when encoding.
func (ws *Worksheet) sortedCellKeys() []uint64 {
	keys := make([]uint64, 0, len(ws.Cells))
	for key := range ws.Cells {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Dimension returns the bounding box of written cells as 1-indexed
// (minRow, minCol, maxRow, maxCol); ok is false for an empty sheet.
func (ws *Worksheet) Dimension() (minRow, minCol, maxRow, maxCol uint32, ok bool) {
	for key := range ws.Cells {
		row, col := keyRowCol(key)
		if !ok {
			minRow, minCol, maxRow, maxCol = row, col, row, col
			ok = true
			continue
		}
		if row < minRow {
			minRow = row
		}
		if row > maxRow {
			maxRow = row
		}
		if col < minCol {
			minCol = col
		}
		if col > maxCol {
			maxCol = col
		}
	}
	return
}
