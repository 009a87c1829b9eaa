package xlsx

import (
	"fmt"
	"io"
)

// NamedRange binds a name to an opaque range-reference string such as
// "'Sheet1'!A1:B2". The reference is never parsed by the codec.
type NamedRange struct {
	Name  string
	Range string
}

// CompressionLevel selects how package parts are stored in the container.
type CompressionLevel int

const (
	// CompressionNone stores parts uncompressed. Fastest saves, largest files.
	CompressionNone CompressionLevel = iota
	// CompressionFast uses deflate level 1.
	CompressionFast
	// CompressionDefault uses deflate level 6.
	CompressionDefault
	// CompressionBest uses deflate level 9. Smallest files, slowest saves.
	CompressionBest
)

// Workbook is an in-memory spreadsheet: an ordered list of worksheets, a
// parallel list of sheet names, named ranges, the save-time compression
// policy and the style registry. The first sheet is the active sheet.
//
// A Workbook owns all of its state; independent workbooks share nothing.
type Workbook struct {
	// Worksheets in package order.
	Worksheets []*Worksheet

	// SheetNames is parallel to Worksheets; names are unique.
	SheetNames []string

	// NamedRanges defined in the workbook.
	NamedRanges []NamedRange

	// Compression is the encoder-wide compression policy.
	Compression CompressionLevel

	// Styles is the registry of fonts, fills, borders, number formats and
	// cell formats.
	Styles *StyleRegistry
}

// OpenOptions configures decoding. The zero value is ready to use.
type OpenOptions struct {
	// FileContents, when non-nil, is decoded instead of reading a file. The
	// filename is then used only in messages.
	FileContents []byte

	// Logfile receives trace output when Verbosity > 0.
	Logfile io.Writer

	// Verbosity increases the volume of trace material written to Logfile.
	Verbosity int

	// EncodingOverride, when set to an IANA charset name, replaces the
	// encoding declared by XML parts. Useful for packages whose parts carry a
	// wrong or unknown encoding label.
	EncodingOverride string
}

func (o *OpenOptions) logf(format string, args ...interface{}) {
	if o != nil && o.Verbosity > 0 && o.Logfile != nil {
		fmt.Fprintf(o.Logfile, format+"\n", args...)
	}
}

// NewWorkbook creates an empty workbook with a default style registry.
func NewWorkbook() *Workbook {
	return &Workbook{Styles: NewStyleRegistry()}
}

// Active returns the active (first) worksheet.
func (wb *Workbook) Active() (*Worksheet, error) {
	if len(wb.Worksheets) == 0 {
		return nil, NewError(KindNoWorksheets, "workbook has no worksheets")
	}
	return wb.Worksheets[0], nil
}

// SheetByName returns the worksheet with the given name.
func (wb *Workbook) SheetByName(name string) (*Worksheet, error) {
	for i, sheetName := range wb.SheetNames {
		if sheetName == name {
			return wb.Worksheets[i], nil
		}
	}
	return nil, NewError(KindWorksheetNotFound, "No sheet named <%s>", name)
}

// SheetByIndex returns the worksheet at the given position.
func (wb *Workbook) SheetByIndex(index int) (*Worksheet, error) {
	if index < 0 || index >= len(wb.Worksheets) {
		return nil, NewError(KindWorksheetNotFound, "sheet index %d out of range", index)
	}
	return wb.Worksheets[index], nil
}

// CreateSheet appends a new worksheet. An empty title yields "SheetN".
// Creating a sheet whose name is already in use fails.
func (wb *Workbook) CreateSheet(title string) (*Worksheet, error) {
	if title == "" {
		title = fmt.Sprintf("Sheet%d", len(wb.Worksheets)+1)
	}
	for _, name := range wb.SheetNames {
		if name == title {
			return nil, NewError(KindWorksheetExists, "Worksheet %q already exists", title)
		}
	}
	ws := NewWorksheet(title)
	wb.Worksheets = append(wb.Worksheets, ws)
	wb.SheetNames = append(wb.SheetNames, title)
	return ws, nil
}

// RemoveSheet removes the worksheet with the given name.
func (wb *Workbook) RemoveSheet(name string) error {
	for i, sheetName := range wb.SheetNames {
		if sheetName == name {
			wb.Worksheets = append(wb.Worksheets[:i], wb.Worksheets[i+1:]...)
			wb.SheetNames = append(wb.SheetNames[:i], wb.SheetNames[i+1:]...)
			return nil
		}
	}
	return NewError(KindWorksheetNotFound, "No sheet named <%s>", name)
}

// SetCellValue writes a value into the active worksheet.
func (wb *Workbook) SetCellValue(row, col uint32, value CellValue) error {
	ws, err := wb.Active()
	if err != nil {
		return err
	}
	ws.SetCellValue(row, col, value)
	return nil
}

// SetCellStyle attaches a style to a cell of the active worksheet.
func (wb *Workbook) SetCellStyle(row, col uint32, style *CellStyle) error {
	ws, err := wb.Active()
	if err != nil {
		return err
	}
	ws.SetCellStyle(row, col, style)
	return nil
}

// SetCellFormula stores raw formula text in the active worksheet.
func (wb *Workbook) SetCellFormula(row, col uint32, formula string) error {
	ws, err := wb.Active()
	if err != nil {
		return err
	}
	ws.SetCellFormula(row, col, formula)
	return nil
}

// SetCellHyperlink attaches a hyperlink in the active worksheet.
func (wb *Workbook) SetCellHyperlink(row, col uint32, url string) error {
	ws, err := wb.Active()
	if err != nil {
		return err
	}
	ws.SetCellHyperlink(row, col, url)
	return nil
}

// SetCellComment attaches comment text in the active worksheet.
func (wb *Workbook) SetCellComment(row, col uint32, comment string) error {
	ws, err := wb.Active()
	if err != nil {
		return err
	}
	ws.SetCellComment(row, col, comment)
	return nil
}

// CreateNamedRange defines a named range. Names are unique.
func (wb *Workbook) CreateNamedRange(name, rangeRef string) error {
	for _, nr := range wb.NamedRanges {
		if nr.Name == name {
			return NewError(KindNamedRangeExists, "Named range %q already exists", name)
		}
	}
	wb.NamedRanges = append(wb.NamedRanges, NamedRange{Name: name, Range: rangeRef})
	return nil
}

// NamedRange returns the range reference bound to name, if defined.
func (wb *Workbook) NamedRange(name string) (string, bool) {
	for _, nr := range wb.NamedRanges {
		if nr.Name == name {
			return nr.Range, true
		}
	}
	return "", false
}
