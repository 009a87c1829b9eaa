package xlsx

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"io"
	"os"
	"strconv"
)

// StreamingWorkbook writes a spreadsheet package incrementally. Sheet data
// flows straight into the archive, so memory use stays proportional to one
// row rather than the whole workbook. At most one sheet may be open at a
// time; the fixed package parts are emitted on Close.
//
// Strings are written inline per cell. A streamed package never contains a
// shared-string part.
type StreamingWorkbook struct {
	zw          *zip.Writer
	file        *os.File
	compression CompressionLevel
	sheetNames  []string
	open        *StreamingSheet
	closed      bool
}

// StreamingSheet is the currently open sheet of a StreamingWorkbook. Rows
// are appended top to bottom with implicit 1-based numbering.
type StreamingSheet struct {
	parent *StreamingWorkbook
	w      io.Writer
	rowNum uint32
	maxCol uint32
	closed bool
}

// NewStreamingWorkbook starts an incremental encode into w.
func NewStreamingWorkbook(w io.Writer, compression CompressionLevel) *StreamingWorkbook {
	zw := zip.NewWriter(w)
	level := 0
	switch compression {
	case CompressionFast:
		level = 1
	case CompressionDefault:
		level = 6
	case CompressionBest:
		level = 9
	}
	if level > 0 {
		zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
			return flate.NewWriter(out, level)
		})
	}
	return &StreamingWorkbook{zw: zw, compression: compression}
}

// CreateStreamingWorkbook starts an incremental encode into a new file.
func CreateStreamingWorkbook(filename string, compression CompressionLevel) (*StreamingWorkbook, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, WrapError(KindIO, err, "Failed to create %q", filename)
	}
	sw := NewStreamingWorkbook(f, compression)
	sw.file = f
	return sw, nil
}

func (sw *StreamingWorkbook) createPart(name string) (io.Writer, error) {
	method := zip.Deflate
	if sw.compression == CompressionNone {
		method = zip.Store
	}
	w, err := sw.zw.CreateHeader(&zip.FileHeader{Name: name, Method: method})
	if err != nil {
		return nil, WrapError(KindIO, err, "Failed to create part %s", name)
	}
	return w, nil
}

// OpenSheet starts a new worksheet. The previous sheet must be closed first
// and names must be unique.
func (sw *StreamingWorkbook) OpenSheet(name string) (*StreamingSheet, error) {
	if sw.closed {
		return nil, NewError(KindCustom, "workbook already closed")
	}
	if sw.open != nil {
		return nil, NewError(KindCustom, "sheet %q is still open; close it before opening another", sw.open.name())
	}
	for _, existing := range sw.sheetNames {
		if existing == name {
			return nil, NewError(KindWorksheetExists, "Worksheet %q already exists", name)
		}
	}
	sw.sheetNames = append(sw.sheetNames, name)

	w, err := sw.createPart("xl/worksheets/sheet" + strconv.Itoa(len(sw.sheetNames)) + ".xml")
	if err != nil {
		return nil, err
	}
	sheet := &StreamingSheet{parent: sw, w: w}
	if err := sheet.writeString(xmlHeader +
		`<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">` +
		`<sheetData>`); err != nil {
		return nil, err
	}
	sw.open = sheet
	return sheet, nil
}

func (s *StreamingSheet) name() string {
	return s.parent.sheetNames[len(s.parent.sheetNames)-1]
}

func (s *StreamingSheet) writeString(text string) error {
	if _, err := io.WriteString(s.w, text); err != nil {
		return WrapError(KindIO, err, "Failed to write sheet data")
	}
	return nil
}

// AppendRow writes the next row. values occupy columns 1..len(values); Empty
// values leave a gap.
func (s *StreamingSheet) AppendRow(values []CellValue) error {
	if s.closed {
		return NewError(KindCustom, "sheet already closed")
	}
	s.rowNum++
	if n := uint32(len(values)); n > s.maxCol {
		s.maxCol = n
	}
	var buf bytes.Buffer
	buf.WriteString(`<row r="` + strconv.FormatUint(uint64(s.rowNum), 10) + `">`)
	for i, v := range values {
		if v.IsEmpty() {
			continue
		}
		ref := CoordinateString(s.rowNum, uint32(i+1))
		buf.WriteString(`<c r="` + ref + `"`)
		switch v.Kind() {
		case CellString:
			buf.WriteString(` t="inlineStr"><is><t xml:space="preserve">`)
			escapeInto(&buf, v.Str())
			buf.WriteString(`</t></is></c>`)
		case CellNumber:
			buf.WriteString(`><v>` + strconv.FormatFloat(v.Num(), 'g', -1, 64) + `</v></c>`)
		case CellBoolean:
			out := "0"
			if v.Bool() {
				out = "1"
			}
			buf.WriteString(` t="b"><v>` + out + `</v></c>`)
		case CellFormula:
			buf.WriteString(`><f>`)
			escapeInto(&buf, v.Str())
			buf.WriteString(`</f></c>`)
		case CellDate:
			buf.WriteString(` t="d"><v>`)
			escapeInto(&buf, v.Str())
			buf.WriteString(`</v></c>`)
		}
	}
	buf.WriteString(`</row>`)
	return s.writeString(buf.String())
}

// RowCount returns how many rows have been appended so far.
func (s *StreamingSheet) RowCount() uint32 {
	return s.rowNum
}

// MaxColumn returns the widest row appended so far, in columns. Zero until
// the first row is appended.
func (s *StreamingSheet) MaxColumn() uint32 {
	return s.maxCol
}

// Close finishes the sheet part. The parent workbook can then open the next
// sheet.
func (s *StreamingSheet) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.parent.open = nil
	return s.writeString(`</sheetData></worksheet>`)
}

// Close finishes the package: any open sheet is closed, the fixed parts are
// written and the archive is finalized.
func (sw *StreamingWorkbook) Close() error {
	if sw.closed {
		return nil
	}
	if sw.open != nil {
		if err := sw.open.Close(); err != nil {
			return err
		}
	}
	sw.closed = true

	if len(sw.sheetNames) == 0 {
		return NewError(KindNoWorksheets, "cannot finalize a workbook with no worksheets")
	}

	// The fixed parts reuse the batch encoder's builders; only the content
	// types differ (a streamed package never has shared strings or comments).
	shadow := &Workbook{SheetNames: sw.sheetNames, Styles: NewStyleRegistry()}
	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", sw.contentTypesXML()},
		{"_rels/.rels", rootRelsXML()},
		{"docProps/core.xml", corePropsXML()},
		{"docProps/app.xml", appPropsXML()},
		{"xl/workbook.xml", shadow.workbookXML()},
		{"xl/_rels/workbook.xml.rels", shadow.workbookRelsXML(false)},
		{"xl/styles.xml", shadow.stylesXML()},
	}
	for _, p := range parts {
		w, err := sw.createPart(p.name)
		if err != nil {
			return err
		}
		if _, err := w.Write(p.data); err != nil {
			return WrapError(KindIO, err, "Failed to write part %s", p.name)
		}
	}

	if err := sw.zw.Close(); err != nil {
		return WrapError(KindIO, err, "Failed to finalize archive")
	}
	if sw.file != nil {
		if err := sw.file.Close(); err != nil {
			return WrapError(KindIO, err, "Failed to close file")
		}
	}
	return nil
}

func (sw *StreamingWorkbook) contentTypesXML() []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	buf.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	buf.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	buf.WriteString(`<Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/>`)
	for i := range sw.sheetNames {
		buf.WriteString(`<Override PartName="/xl/worksheets/sheet` + strconv.Itoa(i+1) + `.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"/>`)
	}
	buf.WriteString(`<Override PartName="/xl/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"/>`)
	buf.WriteString(`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>`)
	buf.WriteString(`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>`)
	buf.WriteString(`</Types>`)
	return buf.Bytes()
}
