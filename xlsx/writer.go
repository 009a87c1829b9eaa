package xlsx

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"encoding/xml"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// Save encodes the workbook into filename.
func (wb *Workbook) Save(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return WrapError(KindIO, err, "Failed to create %q", filename)
	}
	if err := wb.Write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return WrapError(KindIO, err, "Failed to write %q", filename)
	}
	return nil
}

// Write encodes the workbook into w.
func (wb *Workbook) Write(w io.Writer) error {
	zw := zip.NewWriter(w)
	if level, ok := wb.deflateLevel(); ok {
		zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
			return flate.NewWriter(out, level)
		})
	}
	if err := wb.writeParts(zw); err != nil {
		zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return WrapError(KindIO, err, "Failed to finalize archive")
	}
	return nil
}

// WriteToBuffer encodes the workbook into memory.
func (wb *Workbook) WriteToBuffer() ([]byte, error) {
	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (wb *Workbook) deflateLevel() (int, bool) {
	switch wb.Compression {
	case CompressionFast:
		return 1, true
	case CompressionDefault:
		return 6, true
	case CompressionBest:
		return 9, true
	default:
		return 0, false
	}
}

func (wb *Workbook) addPart(zw *zip.Writer, name string, data []byte) error {
	method := zip.Deflate
	if wb.Compression == CompressionNone {
		method = zip.Store
	}
	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: method})
	if err != nil {
		return WrapError(KindIO, err, "Failed to create part %s", name)
	}
	if _, err := w.Write(data); err != nil {
		return WrapError(KindIO, err, "Failed to write part %s", name)
	}
	return nil
}

// sharedStringTable deduplicates strings across all sheets while keeping
// first-seen order, and counts total references for the count attribute.
type sharedStringTable struct {
	index map[string]int
	list  []string
	total int
}

func newSharedStringTable() *sharedStringTable {
	return &sharedStringTable{index: make(map[string]int)}
}

func (t *sharedStringTable) add(s string) int {
	t.total++
	if i, ok := t.index[s]; ok {
		return i
	}
	i := len(t.list)
	t.index[s] = i
	t.list = append(t.list, s)
	return i
}

// writeParts emits every package part in a fixed order. Shared strings and
// cell-format indexes are both collected up front: the shared-strings and
// styles parts precede the worksheet parts, so every string and every cell xf
// must be registered before those parts are rendered.
func (wb *Workbook) writeParts(zw *zip.Writer) error {
	strTable := newSharedStringTable()
	stringIDs := make([]map[uint64]int, len(wb.Worksheets))
	styleIDs := make([]map[uint64]int, len(wb.Worksheets))
	for i, ws := range wb.Worksheets {
		ids := make(map[uint64]int)
		sids := make(map[uint64]int)
		for _, key := range ws.sortedCellKeys() {
			cd := ws.Cells[key]
			if cd.Value.Kind() == CellString {
				ids[key] = strTable.add(cd.Value.Str())
			}
			if idx, ok := wb.styleIndexFor(cd); ok {
				sids[key] = idx
			}
		}
		stringIDs[i] = ids
		styleIDs[i] = sids
	}

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", wb.contentTypesXML(len(strTable.list) > 0)},
		{"_rels/.rels", rootRelsXML()},
		{"docProps/core.xml", corePropsXML()},
		{"docProps/app.xml", appPropsXML()},
		{"xl/workbook.xml", wb.workbookXML()},
		{"xl/_rels/workbook.xml.rels", wb.workbookRelsXML(len(strTable.list) > 0)},
	}
	for _, p := range parts {
		if err := wb.addPart(zw, p.name, p.data); err != nil {
			return err
		}
	}

	if len(strTable.list) > 0 {
		if err := wb.addPart(zw, "xl/sharedStrings.xml", sharedStringsXML(strTable)); err != nil {
			return err
		}
	}
	if err := wb.addPart(zw, "xl/styles.xml", wb.stylesXML()); err != nil {
		return err
	}

	for i, ws := range wb.Worksheets {
		n := strconv.Itoa(i + 1)
		sheetName := "xl/worksheets/sheet" + n + ".xml"
		if err := wb.addPart(zw, sheetName, wb.worksheetXML(ws, stringIDs[i], styleIDs[i])); err != nil {
			return err
		}
		if ws.HasComments() {
			if err := wb.addPart(zw, "xl/comments/comment"+n+".xml", commentsXML(ws)); err != nil {
				return err
			}
			if err := wb.addPart(zw, "xl/worksheets/_rels/sheet"+n+".xml.rels", sheetRelsXML(n)); err != nil {
				return err
			}
		}
	}
	return nil
}

func escapeInto(buf *bytes.Buffer, s string) {
	xml.EscapeText(buf, []byte(s))
}

func (wb *Workbook) contentTypesXML(hasStrings bool) []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	buf.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	buf.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	buf.WriteString(`<Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/>`)
	for i, ws := range wb.Worksheets {
		n := strconv.Itoa(i + 1)
		buf.WriteString(`<Override PartName="/xl/worksheets/sheet` + n + `.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"/>`)
		if ws.HasComments() {
			buf.WriteString(`<Override PartName="/xl/comments/comment` + n + `.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.comments+xml"/>`)
		}
	}
	if hasStrings {
		buf.WriteString(`<Override PartName="/xl/sharedStrings.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sharedStrings+xml"/>`)
	}
	buf.WriteString(`<Override PartName="/xl/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"/>`)
	buf.WriteString(`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>`)
	buf.WriteString(`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>`)
	buf.WriteString(`</Types>`)
	return buf.Bytes()
}

func rootRelsXML() []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	buf.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="xl/workbook.xml"/>`)
	buf.WriteString(`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>`)
	buf.WriteString(`<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties" Target="docProps/app.xml"/>`)
	buf.WriteString(`</Relationships>`)
	return buf.Bytes()
}

func corePropsXML() []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	buf.WriteString(`<dc:creator>xlsx-go</dc:creator>`)
	buf.WriteString(`<cp:lastModifiedBy>xlsx-go</cp:lastModifiedBy>`)
	buf.WriteString(`</cp:coreProperties>`)
	return buf.Bytes()
}

func appPropsXML() []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">`)
	buf.WriteString(`<Application>xlsx-go</Application>`)
	buf.WriteString(`</Properties>`)
	return buf.Bytes()
}

func (wb *Workbook) workbookXML() []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">`)
	buf.WriteString(`<sheets>`)
	for i, name := range wb.SheetNames {
		n := strconv.Itoa(i + 1)
		buf.WriteString(`<sheet name="`)
		escapeInto(&buf, name)
		buf.WriteString(`" sheetId="` + n + `" r:id="rId` + n + `"/>`)
	}
	buf.WriteString(`</sheets>`)
	if len(wb.NamedRanges) > 0 {
		buf.WriteString(`<definedNames>`)
		for _, nr := range wb.NamedRanges {
			buf.WriteString(`<definedName name="`)
			escapeInto(&buf, nr.Name)
			buf.WriteString(`">`)
			escapeInto(&buf, nr.Range)
			buf.WriteString(`</definedName>`)
		}
		buf.WriteString(`</definedNames>`)
	}
	buf.WriteString(`</workbook>`)
	return buf.Bytes()
}

func (wb *Workbook) workbookRelsXML(hasStrings bool) []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for i := range wb.SheetNames {
		n := strconv.Itoa(i + 1)
		buf.WriteString(`<Relationship Id="rId` + n + `" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet` + n + `.xml"/>`)
	}
	next := len(wb.SheetNames) + 1
	if hasStrings {
		buf.WriteString(`<Relationship Id="rId` + strconv.Itoa(next) + `" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/sharedStrings" Target="sharedStrings.xml"/>`)
		next++
	}
	buf.WriteString(`<Relationship Id="rId` + strconv.Itoa(next) + `" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>`)
	buf.WriteString(`</Relationships>`)
	return buf.Bytes()
}

func sharedStringsXML(t *sharedStringTable) []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="` +
		strconv.Itoa(t.total) + `" uniqueCount="` + strconv.Itoa(len(t.list)) + `">`)
	for _, s := range t.list {
		buf.WriteString(`<si><t xml:space="preserve">`)
		escapeInto(&buf, s)
		buf.WriteString(`</t></si>`)
	}
	buf.WriteString(`</sst>`)
	return buf.Bytes()
}

// colorAttrs renders a stored color as rgb= or theme= attributes. Stored RGB
// values carry a leading "#"; six-digit values get an opaque alpha channel.
func colorAttrs(buf *bytes.Buffer, color string) {
	if color == "" {
		return
	}
	if theme, ok := strings.CutPrefix(color, "theme:"); ok {
		buf.WriteString(`<color theme="`)
		escapeInto(buf, theme)
		buf.WriteString(`"/>`)
		return
	}
	hex := strings.TrimPrefix(color, "#")
	if len(hex) == 6 {
		hex = "FF" + hex
	}
	buf.WriteString(`<color rgb="`)
	escapeInto(buf, hex)
	buf.WriteString(`"/>`)
}

func writeAlignment(buf *bytes.Buffer, a *Alignment) {
	buf.WriteString(`<alignment`)
	if a.Horizontal != "" {
		buf.WriteString(` horizontal="`)
		escapeInto(buf, a.Horizontal)
		buf.WriteString(`"`)
	}
	if a.Vertical != "" {
		buf.WriteString(` vertical="`)
		escapeInto(buf, a.Vertical)
		buf.WriteString(`"`)
	}
	if a.WrapText {
		buf.WriteString(` wrapText="1"`)
	}
	if a.TextRotation != 0 {
		buf.WriteString(` textRotation="` + strconv.Itoa(a.TextRotation) + `"`)
	}
	if a.Indent != 0 {
		buf.WriteString(` indent="` + strconv.FormatUint(uint64(a.Indent), 10) + `"`)
	}
	if a.ShrinkToFit {
		buf.WriteString(` shrinkToFit="1"`)
	}
	buf.WriteString(`/>`)
}

func (wb *Workbook) stylesXML() []byte {
	r := wb.Styles
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<styleSheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">`)

	if len(r.NumFmts) > 0 {
		buf.WriteString(`<numFmts count="` + strconv.Itoa(len(r.NumFmts)) + `">`)
		for _, nf := range r.NumFmts {
			buf.WriteString(`<numFmt numFmtId="` + strconv.Itoa(nf.ID) + `" formatCode="`)
			escapeInto(&buf, nf.Code)
			buf.WriteString(`"/>`)
		}
		buf.WriteString(`</numFmts>`)
	}

	buf.WriteString(`<fonts count="` + strconv.Itoa(len(r.Fonts)) + `">`)
	for _, f := range r.Fonts {
		buf.WriteString(`<font>`)
		if f.Bold {
			buf.WriteString(`<b/>`)
		}
		if f.Italic {
			buf.WriteString(`<i/>`)
		}
		if f.Underline {
			buf.WriteString(`<u/>`)
		}
		if f.Strike {
			buf.WriteString(`<strike/>`)
		}
		if f.VertAlign != "" {
			buf.WriteString(`<vertAlign val="`)
			escapeInto(&buf, f.VertAlign)
			buf.WriteString(`"/>`)
		}
		if f.Size != 0 {
			buf.WriteString(`<sz val="` + strconv.FormatFloat(f.Size, 'g', -1, 64) + `"/>`)
		}
		colorAttrs(&buf, f.Color)
		if f.Name != "" {
			buf.WriteString(`<name val="`)
			escapeInto(&buf, f.Name)
			buf.WriteString(`"/>`)
		}
		buf.WriteString(`</font>`)
	}
	buf.WriteString(`</fonts>`)

	buf.WriteString(`<fills count="` + strconv.Itoa(len(r.Fills)) + `">`)
	for _, f := range r.Fills {
		buf.WriteString(`<fill><patternFill`)
		if f.PatternType != "" {
			buf.WriteString(` patternType="`)
			escapeInto(&buf, f.PatternType)
			buf.WriteString(`"`)
		}
		if f.FgColor == "" && f.BgColor == "" {
			buf.WriteString(`/></fill>`)
			continue
		}
		buf.WriteString(`>`)
		if f.FgColor != "" {
			writeFillColor(&buf, "fgColor", f.FgColor)
		}
		if f.BgColor != "" {
			writeFillColor(&buf, "bgColor", f.BgColor)
		}
		buf.WriteString(`</patternFill></fill>`)
	}
	buf.WriteString(`</fills>`)

	buf.WriteString(`<borders count="` + strconv.Itoa(len(r.Borders)) + `">`)
	for _, b := range r.Borders {
		buf.WriteString(`<border>`)
		writeBorderSide(&buf, "left", b.Left)
		writeBorderSide(&buf, "right", b.Right)
		writeBorderSide(&buf, "top", b.Top)
		writeBorderSide(&buf, "bottom", b.Bottom)
		writeBorderSide(&buf, "diagonal", b.Diagonal)
		buf.WriteString(`</border>`)
	}
	buf.WriteString(`</borders>`)

	buf.WriteString(`<cellStyleXfs count="1"><xf numFmtId="0" fontId="0" fillId="0" borderId="0"/></cellStyleXfs>`)

	buf.WriteString(`<cellXfs count="` + strconv.Itoa(len(r.CellXfs)) + `">`)
	for _, xf := range r.CellXfs {
		buf.WriteString(`<xf numFmtId="` + strconv.Itoa(xf.NumFmtID) +
			`" fontId="` + strconv.Itoa(xf.FontID) +
			`" fillId="` + strconv.Itoa(xf.FillID) +
			`" borderId="` + strconv.Itoa(xf.BorderID) + `"`)
		if xf.ApplyNumberFormat {
			buf.WriteString(` applyNumberFormat="1"`)
		}
		if xf.ApplyFont {
			buf.WriteString(` applyFont="1"`)
		}
		if xf.ApplyFill {
			buf.WriteString(` applyFill="1"`)
		}
		if xf.ApplyBorder {
			buf.WriteString(` applyBorder="1"`)
		}
		if xf.ApplyAlignment {
			buf.WriteString(` applyAlignment="1"`)
		}
		if xf.ApplyProtection {
			buf.WriteString(` applyProtection="1"`)
		}
		if xf.Alignment == nil && xf.Protection == nil {
			buf.WriteString(`/>`)
			continue
		}
		buf.WriteString(`>`)
		if xf.Alignment != nil {
			writeAlignment(&buf, xf.Alignment)
		}
		if xf.Protection != nil {
			buf.WriteString(`<protection`)
			if xf.Protection.Locked {
				buf.WriteString(` locked="1"`)
			} else {
				buf.WriteString(` locked="0"`)
			}
			if xf.Protection.Hidden {
				buf.WriteString(` hidden="1"`)
			}
			buf.WriteString(`/>`)
		}
		buf.WriteString(`</xf>`)
	}
	buf.WriteString(`</cellXfs>`)

	buf.WriteString(`<cellStyles count="1"><cellStyle name="Normal" xfId="0" builtinId="0"/></cellStyles>`)
	buf.WriteString(`</styleSheet>`)
	return buf.Bytes()
}

func writeFillColor(buf *bytes.Buffer, tag, color string) {
	if theme, ok := strings.CutPrefix(color, "theme:"); ok {
		buf.WriteString(`<` + tag + ` theme="`)
		escapeInto(buf, theme)
		buf.WriteString(`"/>`)
		return
	}
	hex := strings.TrimPrefix(color, "#")
	if len(hex) == 6 {
		hex = "FF" + hex
	}
	buf.WriteString(`<` + tag + ` rgb="`)
	escapeInto(buf, hex)
	buf.WriteString(`"/>`)
}

func writeBorderSide(buf *bytes.Buffer, tag string, side BorderStyle) {
	if side.Style == "" {
		buf.WriteString(`<` + tag + `/>`)
		return
	}
	buf.WriteString(`<` + tag + ` style="`)
	escapeInto(buf, side.Style)
	buf.WriteString(`"`)
	if side.Color == "" {
		buf.WriteString(`/>`)
		return
	}
	buf.WriteString(`>`)
	hex := strings.TrimPrefix(side.Color, "#")
	if len(hex) == 6 {
		hex = "FF" + hex
	}
	buf.WriteString(`<color rgb="`)
	escapeInto(buf, hex)
	buf.WriteString(`"/>`)
	buf.WriteString(`</` + tag + `>`)
}

// styleIndexFor resolves the cell-format index for a cell: an attached style
// view wins, then a bare number-format override, then a format index carried
// over from decode.
func (wb *Workbook) styleIndexFor(cd *CellData) (int, bool) {
	if cd.Style != nil {
		style := cd.Style
		if cd.NumberFormat != "" && style.NumberFormat == "" {
			clone := *style
			clone.NumberFormat = cd.NumberFormat
			style = &clone
		}
		return wb.Styles.GetOrAddCellXf(style), true
	}
	if cd.NumberFormat != "" {
		return wb.Styles.GetOrAddCellXf(&CellStyle{NumberFormat: cd.NumberFormat}), true
	}
	if cd.HasStyle && int(cd.StyleIndex) < len(wb.Styles.CellXfs) {
		return int(cd.StyleIndex), true
	}
	return 0, false
}

func (wb *Workbook) worksheetXML(ws *Worksheet, stringIDs, styleIDs map[uint64]int) []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">`)

	if minRow, minCol, maxRow, maxCol, ok := ws.Dimension(); ok {
		buf.WriteString(`<dimension ref="` + CoordinateString(minRow, minCol))
		if maxRow != minRow || maxCol != minCol {
			buf.WriteString(`:` + CoordinateString(maxRow, maxCol))
		}
		buf.WriteString(`"/>`)
	}

	if len(ws.ColWidths) > 0 {
		cols := make([]uint32, 0, len(ws.ColWidths))
		for col := range ws.ColWidths {
			cols = append(cols, col)
		}
		sort.Slice(cols, func(i, j int) bool { return cols[i] < cols[j] })
		buf.WriteString(`<cols>`)
		for _, col := range cols {
			n := strconv.FormatUint(uint64(col), 10)
			buf.WriteString(`<col min="` + n + `" max="` + n + `" width="` +
				strconv.FormatFloat(ws.ColWidths[col], 'g', -1, 64) + `" customWidth="1"/>`)
		}
		buf.WriteString(`</cols>`)
	}

	buf.WriteString(`<sheetData>`)
	keys := ws.sortedCellKeys()
	rows := rowNumbers(ws, keys)
	ki := 0
	for _, row := range rows {
		buf.WriteString(`<row r="` + strconv.FormatUint(uint64(row), 10) + `"`)
		if height, ok := ws.RowHeights[row]; ok {
			buf.WriteString(` ht="` + strconv.FormatFloat(height, 'g', -1, 64) + `" customHeight="1"`)
		}
		buf.WriteString(`>`)
		for ki < len(keys) {
			cellRow, cellCol := keyRowCol(keys[ki])
			if cellRow != row {
				break
			}
			writeCell(&buf, ws, keys[ki], cellRow, cellCol, stringIDs, styleIDs)
			ki++
		}
		buf.WriteString(`</row>`)
	}
	buf.WriteString(`</sheetData>`)

	if prot := ws.Protection; prot != nil && prot.Sheet {
		buf.WriteString(`<sheetProtection sheet="1"`)
		if prot.Password != "" {
			buf.WriteString(` password="`)
			escapeInto(&buf, prot.Password)
			buf.WriteString(`"`)
		}
		writeProtFlag(&buf, "selectLockedCells", prot.SelectLockedCells)
		writeProtFlag(&buf, "selectUnlockedCells", prot.SelectUnlockedCells)
		writeProtFlag(&buf, "formatCells", prot.FormatCells)
		writeProtFlag(&buf, "formatColumns", prot.FormatColumns)
		writeProtFlag(&buf, "formatRows", prot.FormatRows)
		writeProtFlag(&buf, "insertColumns", prot.InsertColumns)
		writeProtFlag(&buf, "insertRows", prot.InsertRows)
		writeProtFlag(&buf, "insertHyperlinks", prot.InsertHyperlinks)
		writeProtFlag(&buf, "deleteColumns", prot.DeleteColumns)
		writeProtFlag(&buf, "deleteRows", prot.DeleteRows)
		writeProtFlag(&buf, "sort", prot.Sort)
		writeProtFlag(&buf, "autoFilter", prot.AutoFilter)
		writeProtFlag(&buf, "pivotTables", prot.PivotTables)
		writeProtFlag(&buf, "objects", prot.Objects)
		writeProtFlag(&buf, "scenarios", prot.Scenarios)
		buf.WriteString(`/>`)
	}

	if len(ws.MergedCells) > 0 {
		buf.WriteString(`<mergeCells count="` + strconv.Itoa(len(ws.MergedCells)) + `">`)
		for _, mr := range ws.MergedCells {
			buf.WriteString(`<mergeCell ref="`)
			escapeInto(&buf, mr.Start+":"+mr.End)
			buf.WriteString(`"/>`)
		}
		buf.WriteString(`</mergeCells>`)
	}

	if len(ws.DataValidations) > 0 {
		dvKeys := make([]uint64, 0, len(ws.DataValidations))
		for key := range ws.DataValidations {
			dvKeys = append(dvKeys, key)
		}
		sort.Slice(dvKeys, func(i, j int) bool { return dvKeys[i] < dvKeys[j] })
		buf.WriteString(`<dataValidations count="` + strconv.Itoa(len(dvKeys)) + `">`)
		for _, key := range dvKeys {
			dv := ws.DataValidations[key]
			row, col := keyRowCol(key)
			buf.WriteString(`<dataValidation type="`)
			escapeInto(&buf, dv.Type)
			buf.WriteString(`"`)
			if dv.AllowBlank {
				buf.WriteString(` allowBlank="1"`)
			}
			if dv.ShowInput {
				buf.WriteString(` showInputMessage="1"`)
			}
			if dv.ShowError {
				buf.WriteString(` showErrorMessage="1"`)
			}
			writeDVText(&buf, "errorTitle", dv.ErrorTitle)
			writeDVText(&buf, "error", dv.ErrorMessage)
			writeDVText(&buf, "promptTitle", dv.PromptTitle)
			writeDVText(&buf, "prompt", dv.PromptMsg)
			buf.WriteString(` sqref="` + CoordinateString(row, col) + `">`)
			if dv.Formula1 != "" {
				buf.WriteString(`<formula1>`)
				escapeInto(&buf, dv.Formula1)
				buf.WriteString(`</formula1>`)
			}
			if dv.Formula2 != "" {
				buf.WriteString(`<formula2>`)
				escapeInto(&buf, dv.Formula2)
				buf.WriteString(`</formula2>`)
			}
			buf.WriteString(`</dataValidation>`)
		}
		buf.WriteString(`</dataValidations>`)
	}

	hyperlinkKeys := make([]uint64, 0)
	for _, key := range keys {
		if ws.Cells[key].Hyperlink != "" {
			hyperlinkKeys = append(hyperlinkKeys, key)
		}
	}
	if len(hyperlinkKeys) > 0 {
		buf.WriteString(`<hyperlinks>`)
		for _, key := range hyperlinkKeys {
			row, col := keyRowCol(key)
			buf.WriteString(`<hyperlink ref="` + CoordinateString(row, col) + `" display="`)
			escapeInto(&buf, ws.Cells[key].Hyperlink)
			buf.WriteString(`"/>`)
		}
		buf.WriteString(`</hyperlinks>`)
	}

	buf.WriteString(`<pageMargins left="0.7" right="0.7" top="0.75" bottom="0.75" header="0.3" footer="0.3"/>`)
	buf.WriteString(`</worksheet>`)
	return buf.Bytes()
}

func writeProtFlag(buf *bytes.Buffer, name string, on bool) {
	if on {
		buf.WriteString(` ` + name + `="1"`)
	}
}

func writeDVText(buf *bytes.Buffer, name, value string) {
	if value == "" {
		return
	}
	buf.WriteString(` ` + name + `="`)
	escapeInto(buf, value)
	buf.WriteString(`"`)
}

// rowNumbers returns the sorted union of rows holding cells and rows holding
// height overrides.
func rowNumbers(ws *Worksheet, keys []uint64) []uint32 {
	seen := make(map[uint32]struct{})
	var rows []uint32
	for _, key := range keys {
		row, _ := keyRowCol(key)
		if _, dup := seen[row]; !dup {
			seen[row] = struct{}{}
			rows = append(rows, row)
		}
	}
	for row := range ws.RowHeights {
		if _, dup := seen[row]; !dup {
			seen[row] = struct{}{}
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i] < rows[j] })
	return rows
}

// writeCell emits one <c> element. Formula values win over stored values; a
// styled empty cell is emitted self-closing so the format survives. Style
// indexes come pre-resolved, since the styles part is already written by now.
func writeCell(buf *bytes.Buffer, ws *Worksheet, key uint64, row, col uint32, stringIDs, styleIDs map[uint64]int) {
	cd := ws.Cells[key]
	ref := CoordinateString(row, col)
	styleIdx, hasStyle := styleIDs[key]

	buf.WriteString(`<c r="` + ref + `"`)
	if hasStyle {
		buf.WriteString(` s="` + strconv.Itoa(styleIdx) + `"`)
	}
	switch cd.Value.Kind() {
	case CellFormula:
		buf.WriteString(`><f>`)
		escapeInto(buf, cd.Value.Str())
		buf.WriteString(`</f></c>`)
	case CellString:
		buf.WriteString(` t="s"><v>` + strconv.Itoa(stringIDs[key]) + `</v></c>`)
	case CellNumber:
		buf.WriteString(`><v>` + strconv.FormatFloat(cd.Value.Num(), 'g', -1, 64) + `</v></c>`)
	case CellBoolean:
		v := "0"
		if cd.Value.Bool() {
			v = "1"
		}
		buf.WriteString(` t="b"><v>` + v + `</v></c>`)
	case CellDate:
		buf.WriteString(` t="d"><v>`)
		escapeInto(buf, cd.Value.Str())
		buf.WriteString(`</v></c>`)
	default:
		buf.WriteString(`/>`)
	}
}

func commentsXML(ws *Worksheet) []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<comments xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">`)
	buf.WriteString(`<authors><author/></authors><commentList>`)
	for _, key := range ws.sortedCellKeys() {
		cd := ws.Cells[key]
		if cd.Comment == "" {
			continue
		}
		row, col := keyRowCol(key)
		buf.WriteString(`<comment ref="` + CoordinateString(row, col) + `" authorId="0"><text><t xml:space="preserve">`)
		escapeInto(&buf, cd.Comment)
		buf.WriteString(`</t></text></comment>`)
	}
	buf.WriteString(`</commentList></comments>`)
	return buf.Bytes()
}

func sheetRelsXML(n string) []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	buf.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/comments" Target="../comments/comment` + n + `.xml"/>`)
	buf.WriteString(`</Relationships>`)
	return buf.Bytes()
}
