package xlsx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/encoding/ianaindex"
)

// maxDimensionReserve caps how many cells a dimension hint may pre-reserve,
// so a forged hint cannot force unbounded allocation.
const maxDimensionReserve = 5_000_000

// OpenWorkbook opens a spreadsheet package for data extraction.
//
// filename is the path to the package. When options.FileContents is supplied
// the file is not read and filename is used only in messages.
func OpenWorkbook(filename string, options *OpenOptions) (*Workbook, error) {
	data := []byte(nil)
	if options != nil && options.FileContents != nil {
		data = options.FileContents
	} else {
		var err error
		data, err = os.ReadFile(filename)
		if err != nil {
			return nil, WrapError(KindIO, err, "Failed to open file %q", filename)
		}
	}
	return OpenReader(data, options)
}

// OpenReader decodes a spreadsheet package from bytes (e.g. from memory or a
// network transfer).
func OpenReader(data []byte, options *OpenOptions) (*Workbook, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if kind := detectContainer(data); kind != "" {
			return nil, NewError(KindInvalidFormat, "%s; not supported", kind)
		}
		return nil, WrapError(KindInvalidFormat, err, "Not a valid spreadsheet package")
	}

	wb := NewWorkbook()
	// Loaded files keep the fastest policy so re-saves stay cheap.
	wb.Compression = CompressionNone
	if err := wb.decodeParts(zr, options); err != nil {
		return nil, err
	}
	return wb, nil
}

// readZipPart reads one named part fully into memory.
func readZipPart(zr *zip.Reader, name string) ([]byte, error) {
	f, err := zr.Open(name)
	if err != nil {
		return nil, WrapError(KindInvalidFormat, err, "Failed to find %s in archive", name)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, WrapError(KindIO, err, "Failed to read %s", name)
	}
	return data, nil
}

type sheetEntry struct {
	name    string
	sheetID uint32
	rid     string
}

type sheetData struct {
	name        string
	sheetXML    []byte
	commentsXML []byte
}

// decodeParts runs the decode state machine: index the container, load the
// required and optional parts, parse shared inputs, then parse worksheets.
func (wb *Workbook) decodeParts(zr *zip.Reader, options *OpenOptions) error {
	workbookXML, err := readZipPart(zr, "xl/workbook.xml")
	if err != nil {
		return err
	}
	relsXML, _ := readZipPart(zr, "xl/_rels/workbook.xml.rels")
	sharedStringsXML, _ := readZipPart(zr, "xl/sharedStrings.xml")
	stylesXML, _ := readZipPart(zr, "xl/styles.xml")

	charset := ""
	if options != nil {
		charset = options.EncodingOverride
	}

	sheets, namedRanges, err := parseWorkbookXML(workbookXML, charset)
	if err != nil {
		return err
	}
	wb.NamedRanges = namedRanges
	options.logf("workbook part: %d sheets, %d named ranges", len(sheets), len(namedRanges))

	// The relationships part is optional; without it sheet paths fall back to
	// the legacy positional scheme.
	rels := map[string]string{}
	if relsXML != nil {
		if parsed, err := parseRelationships(relsXML, charset); err == nil {
			rels = parsed
		}
	}

	// Preload every sheet's XML (required) and comments (optional) before any
	// parsing starts.
	loaded := make([]sheetData, 0, len(sheets))
	for _, entry := range sheets {
		path := "xl/worksheets/sheet" + strconv.FormatUint(uint64(entry.sheetID), 10) + ".xml"
		if target, ok := rels[entry.rid]; ok {
			if strings.HasPrefix(target, "/") {
				path = target[1:]
			} else {
				path = "xl/" + target
			}
		}
		sheetXML, err := readZipPart(zr, path)
		if err != nil {
			return err
		}
		commentsPath := "xl/comments/comment" + strconv.FormatUint(uint64(entry.sheetID), 10) + ".xml"
		commentsXML, _ := readZipPart(zr, commentsPath)
		loaded = append(loaded, sheetData{name: entry.name, sheetXML: sheetXML, commentsXML: commentsXML})
	}

	// Shared inputs must be ready before any worksheet parse.
	var sharedStrings []string
	if sharedStringsXML != nil {
		if parsed, err := parseSharedStrings(sharedStringsXML, charset); err == nil {
			sharedStrings = parsed
		}
	}

	styles := map[uint32]*CellStyle{}
	if stylesXML != nil {
		if parsedStyles, registry, err := parseStyles(stylesXML, charset); err == nil {
			styles = parsedStyles
			wb.Styles = registry
		}
	}
	options.logf("shared inputs: %d strings, %d cell formats", len(sharedStrings), len(styles))

	worksheets, err := parseAllSheets(loaded, sharedStrings, styles, charset)
	if err != nil {
		return err
	}
	for i, ws := range worksheets {
		wb.Worksheets = append(wb.Worksheets, ws)
		wb.SheetNames = append(wb.SheetNames, loaded[i].name)
	}
	return nil
}

// parseAllSheets parses worksheets concurrently when more than one is
// present, inline otherwise. Results keep the declared sheet order; the first
// failure aborts the whole decode.
func parseAllSheets(loaded []sheetData, sharedStrings []string, styles map[uint32]*CellStyle, charset string) ([]*Worksheet, error) {
	parseOne := func(sd sheetData) (*Worksheet, error) {
		ws := NewWorksheet(sd.name)
		if err := parseWorksheetXML(sd.sheetXML, sharedStrings, styles, ws, charset); err != nil {
			return nil, err
		}
		if sd.commentsXML != nil {
			if err := parseCommentsXML(sd.commentsXML, ws, charset); err != nil {
				return nil, err
			}
		}
		return ws, nil
	}

	if len(loaded) <= 1 {
		results := make([]*Worksheet, 0, len(loaded))
		for _, sd := range loaded {
			ws, err := parseOne(sd)
			if err != nil {
				return nil, err
			}
			results = append(results, ws)
		}
		return results, nil
	}

	results := make([]*Worksheet, len(loaded))
	errs := make([]error, len(loaded))
	jobs := make(chan int)

	workers := runtime.NumCPU()
	if workers > len(loaded) {
		workers = len(loaded)
	}
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i], errs[i] = parseOne(loaded[i])
			}
		}()
	}
	for i := range loaded {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// newXMLDecoder returns a streaming token decoder. Parts declaring a
// non-UTF-8 encoding are transcoded through x/text; a non-empty charset
// replaces whatever label the part declares.
func newXMLDecoder(data []byte, charset string) *xml.Decoder {
	d := xml.NewDecoder(bytes.NewReader(data))
	d.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		if charset != "" {
			label = charset
		}
		enc, err := ianaindex.IANA.Encoding(label)
		if err != nil || enc == nil {
			return nil, NewError(KindParse, "Unsupported encoding %q", label)
		}
		return enc.NewDecoder().Reader(input), nil
	}
	return d
}

func attrValue(se xml.StartElement, local string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

func parseError(part string, err error) error {
	return WrapError(KindParse, err, "XML parsing error in %s", part)
}

// parseWorkbookXML extracts the sheet entries (name, sheetId, r:id in
// document order) and the named ranges. Sheet entries missing any of the
// three fields are dropped silently.
func parseWorkbookXML(data []byte, charset string) ([]sheetEntry, []NamedRange, error) {
	d := newXMLDecoder(data, charset)

	var sheets []sheetEntry
	var namedRanges []NamedRange
	inDefinedNames := false
	var currentName string
	var currentRange strings.Builder
	inDefinedName := false

	for {
		token, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, parseError("xl/workbook.xml", err)
		}
		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "sheet":
				name, hasName := attrValue(t, "name")
				idText, hasID := attrValue(t, "sheetId")
				rid, hasRID := attrValue(t, "id")
				if !hasName || !hasID || !hasRID {
					continue
				}
				sheetID, ok := parseUint32Bytes([]byte(idText))
				if !ok {
					continue
				}
				sheets = append(sheets, sheetEntry{name: name, sheetID: sheetID, rid: rid})
			case "definedNames":
				inDefinedNames = true
			case "definedName":
				if inDefinedNames {
					inDefinedName = true
					currentName, _ = attrValue(t, "name")
					currentRange.Reset()
				}
			}
		case xml.CharData:
			if inDefinedName {
				currentRange.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "definedName":
				if inDefinedName && currentName != "" {
					namedRanges = append(namedRanges, NamedRange{
						Name:  currentName,
						Range: strings.TrimSpace(currentRange.String()),
					})
				}
				inDefinedName = false
			case "definedNames":
				inDefinedNames = false
			}
		}
	}
	return sheets, namedRanges, nil
}

// parseRelationships maps relationship IDs to target paths.
func parseRelationships(data []byte, charset string) (map[string]string, error) {
	d := newXMLDecoder(data, charset)
	rels := make(map[string]string)
	for {
		token, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseError("xl/_rels/workbook.xml.rels", err)
		}
		se, ok := token.(xml.StartElement)
		if !ok || se.Name.Local != "Relationship" {
			continue
		}
		id, hasID := attrValue(se, "Id")
		target, hasTarget := attrValue(se, "Target")
		if hasID && hasTarget {
			rels[id] = target
		}
	}
	return rels, nil
}

// parseSharedStrings collects the deduplicated string table. Whitespace
// inside <t> elements is preserved; rich-text runs are concatenated.
func parseSharedStrings(data []byte, charset string) ([]string, error) {
	d := newXMLDecoder(data, charset)

	var strs []string
	var current strings.Builder
	inT := false

	for {
		token, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseError("xl/sharedStrings.xml", err)
		}
		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "sst":
				if countText, ok := attrValue(t, "uniqueCount"); ok {
					if count, ok := parseUint32Bytes([]byte(countText)); ok && count <= maxDimensionReserve {
						strs = make([]string, 0, count)
					}
				}
			case "t":
				inT = true
			}
		case xml.CharData:
			if inT {
				current.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inT = false
			case "si":
				strs = append(strs, current.String())
				current.Reset()
			}
		}
	}
	return strs, nil
}

// rawXf is a cell-format record as read from the part, before the catalog
// indices are resolved.
type rawXf struct {
	fontID     int
	fillID     int
	borderID   int
	numFmtID   int
	alignment  *Alignment
	protection *Protection
}

// parseStyles reads the styles part into a lookup from cellXf index to style
// view plus a populated registry.
func parseStyles(data []byte, charset string) (map[uint32]*CellStyle, *StyleRegistry, error) {
	d := newXMLDecoder(data, charset)

	var fonts []Font
	var fills []Fill
	var borders []Border
	numFmts := map[int]string{}
	var xfs []rawXf

	inFont, inFill, inBorder := false, false, false
	inCellXfs, inXf := false, false
	var currentFont Font
	var currentFill Fill
	var currentBorder Border
	borderSide := ""
	var currentXf rawXf

	applyAlignment := func(se xml.StartElement) *Alignment {
		a := &Alignment{}
		if v, ok := attrValue(se, "horizontal"); ok {
			a.Horizontal = v
		}
		if v, ok := attrValue(se, "vertical"); ok {
			a.Vertical = v
		}
		if v, ok := attrValue(se, "wrapText"); ok {
			a.WrapText = v == "1" || v == "true"
		}
		if v, ok := attrValue(se, "textRotation"); ok {
			if n, err := strconv.Atoi(v); err == nil {
				a.TextRotation = n
			}
		}
		if v, ok := attrValue(se, "indent"); ok {
			if n, ok := parseUint32Bytes([]byte(v)); ok {
				a.Indent = n
			}
		}
		if v, ok := attrValue(se, "shrinkToFit"); ok {
			a.ShrinkToFit = v == "1" || v == "true"
		}
		return a
	}

	for {
		token, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, parseError("xl/styles.xml", err)
		}
		switch t := token.(type) {
		case xml.StartElement:
			name := t.Name.Local
			switch name {
			case "font":
				inFont = true
				currentFont = Font{}
			case "fill":
				inFill = true
				currentFill = Fill{}
			case "border":
				inBorder = true
				currentBorder = Border{}
			case "numFmt":
				idText, hasID := attrValue(t, "numFmtId")
				code, hasCode := attrValue(t, "formatCode")
				if hasID && hasCode {
					if id, ok := parseUint32Bytes([]byte(idText)); ok {
						numFmts[int(id)] = code
					}
				}
			case "cellXfs":
				inCellXfs = true
			case "xf":
				if inCellXfs {
					inXf = true
					currentXf = rawXf{fontID: -1, fillID: -1, borderID: -1, numFmtID: -1}
					if v, ok := attrValue(t, "fontId"); ok {
						if n, ok := parseUint32Bytes([]byte(v)); ok {
							currentXf.fontID = int(n)
						}
					}
					if v, ok := attrValue(t, "fillId"); ok {
						if n, ok := parseUint32Bytes([]byte(v)); ok {
							currentXf.fillID = int(n)
						}
					}
					if v, ok := attrValue(t, "borderId"); ok {
						if n, ok := parseUint32Bytes([]byte(v)); ok {
							currentXf.borderID = int(n)
						}
					}
					if v, ok := attrValue(t, "numFmtId"); ok {
						if n, ok := parseUint32Bytes([]byte(v)); ok {
							currentXf.numFmtID = int(n)
						}
					}
				}
			case "alignment":
				if inXf {
					currentXf.alignment = applyAlignment(t)
				}
			case "protection":
				if inXf {
					p := &Protection{}
					if v, ok := attrValue(t, "locked"); ok {
						p.Locked = v == "1" || v == "true"
					}
					if v, ok := attrValue(t, "hidden"); ok {
						p.Hidden = v == "1" || v == "true"
					}
					currentXf.protection = p
				}
			default:
				if inFont {
					parseFontElement(t, &currentFont)
				} else if inFill {
					parseFillElement(t, &currentFill)
				} else if inBorder {
					switch name {
					case "left", "right", "top", "bottom", "diagonal":
						borderSide = name
						if style, ok := attrValue(t, "style"); ok {
							setBorderSide(&currentBorder, name, BorderStyle{Style: style})
						}
					case "color":
						if borderSide != "" {
							if rgb, ok := attrValue(t, "rgb"); ok {
								side := borderSideOf(&currentBorder, borderSide)
								if side.Style != "" {
									side.Color = "#" + rgb
								}
							}
						}
					}
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "font":
				fonts = append(fonts, currentFont)
				inFont = false
			case "fill":
				fills = append(fills, currentFill)
				inFill = false
			case "border":
				borders = append(borders, currentBorder)
				inBorder = false
			case "left", "right", "top", "bottom", "diagonal":
				borderSide = ""
			case "xf":
				if inXf {
					xfs = append(xfs, currentXf)
					inXf = false
				}
			case "cellXfs":
				inCellXfs = false
			}
		}
	}

	registry := buildRegistry(fonts, fills, borders, numFmts, xfs)
	styles := make(map[uint32]*CellStyle, len(xfs))
	for i := range registry.CellXfs {
		if style := registry.GetCellStyle(i); style != nil {
			styles[uint32(i)] = style
		}
	}
	return styles, registry, nil
}

func parseFontElement(se xml.StartElement, font *Font) {
	switch se.Name.Local {
	case "b":
		font.Bold = true
	case "i":
		font.Italic = true
	case "u":
		font.Underline = true
	case "strike":
		font.Strike = true
	case "sz":
		if v, ok := attrValue(se, "val"); ok {
			if size, err := strconv.ParseFloat(v, 64); err == nil {
				font.Size = size
			}
		}
	case "name":
		if v, ok := attrValue(se, "val"); ok {
			font.Name = v
		}
	case "vertAlign":
		if v, ok := attrValue(se, "val"); ok {
			font.VertAlign = v
		}
	case "color":
		if rgb, ok := attrValue(se, "rgb"); ok {
			font.Color = "#" + rgb
		} else if theme, ok := attrValue(se, "theme"); ok {
			font.Color = "theme:" + theme
		}
	}
}

func parseFillElement(se xml.StartElement, fill *Fill) {
	switch se.Name.Local {
	case "patternFill":
		if v, ok := attrValue(se, "patternType"); ok {
			fill.PatternType = v
		}
	case "fgColor":
		if rgb, ok := attrValue(se, "rgb"); ok {
			fill.FgColor = "#" + rgb
		} else if theme, ok := attrValue(se, "theme"); ok {
			fill.FgColor = "theme:" + theme
		}
	case "bgColor":
		if rgb, ok := attrValue(se, "rgb"); ok {
			fill.BgColor = "#" + rgb
		} else if theme, ok := attrValue(se, "theme"); ok {
			fill.BgColor = "theme:" + theme
		}
	}
}

func setBorderSide(b *Border, side string, style BorderStyle) {
	switch side {
	case "left":
		b.Left = style
	case "right":
		b.Right = style
	case "top":
		b.Top = style
	case "bottom":
		b.Bottom = style
	case "diagonal":
		b.Diagonal = style
	}
}

func borderSideOf(b *Border, side string) *BorderStyle {
	switch side {
	case "left":
		return &b.Left
	case "right":
		return &b.Right
	case "top":
		return &b.Top
	case "bottom":
		return &b.Bottom
	default:
		return &b.Diagonal
	}
}

// buildRegistry assembles a style registry from the parsed catalogs, filling
// in the mandatory minimum entries when a catalog is empty.
func buildRegistry(fonts []Font, fills []Fill, borders []Border, numFmts map[int]string, xfs []rawXf) *StyleRegistry {
	registry := &StyleRegistry{}

	if len(fonts) == 0 {
		registry.Fonts = []Font{{Name: "Calibri", Size: 11}}
	} else {
		registry.Fonts = fonts
	}
	if len(fills) == 0 {
		registry.Fills = []Fill{{}, {PatternType: "gray125"}}
	} else {
		registry.Fills = fills
	}
	if len(borders) == 0 {
		registry.Borders = []Border{{}}
	} else {
		registry.Borders = borders
	}
	for id, code := range numFmts {
		if id >= 164 {
			registry.NumFmts = append(registry.NumFmts, NumFmt{ID: id, Code: code})
		}
	}

	for _, raw := range xfs {
		xf := CellXf{}
		if raw.fontID >= 0 && raw.fontID < len(registry.Fonts) {
			xf.FontID = raw.fontID
			xf.ApplyFont = true
		}
		if raw.fillID >= 0 && raw.fillID < len(registry.Fills) {
			xf.FillID = raw.fillID
			xf.ApplyFill = true
		}
		if raw.borderID >= 0 && raw.borderID < len(registry.Borders) {
			xf.BorderID = raw.borderID
			xf.ApplyBorder = true
		}
		if raw.numFmtID >= 0 {
			if _, known := numFmts[raw.numFmtID]; known {
				xf.NumFmtID = raw.numFmtID
				xf.ApplyNumberFormat = true
			} else if _, builtin := BuiltinNumFmtCode(raw.numFmtID); builtin && raw.numFmtID != 0 {
				xf.NumFmtID = raw.numFmtID
				xf.ApplyNumberFormat = true
			}
		}
		if raw.alignment != nil {
			xf.Alignment = raw.alignment
			xf.ApplyAlignment = true
		}
		if raw.protection != nil {
			xf.Protection = raw.protection
			xf.ApplyProtection = true
		}
		registry.CellXfs = append(registry.CellXfs, xf)
	}
	if len(registry.CellXfs) == 0 {
		registry.CellXfs = []CellXf{{}}
	}
	return registry
}

// estimateDimensionCells turns a dimension hint like "A1:G100" into a cell
// count suitable for pre-reserving storage, or 0 when the hint is missing,
// malformed or beyond the reservation cap.
func estimateDimensionCells(ref string) int {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return 0
	}
	var startRow, startCol, endRow, endCol uint32
	if strings.Contains(ref, ":") {
		var err error
		startRow, startCol, endRow, endCol, err = ParseRange(ref)
		if err != nil {
			return 0
		}
	} else {
		row, col, err := ParseCoordinate(ref)
		if err != nil {
			return 0
		}
		startRow, startCol, endRow, endCol = row, col, row, col
	}
	if endRow < startRow || endCol < startCol {
		return 0
	}
	cells := uint64(endRow-startRow+1) * uint64(endCol-startCol+1)
	if cells == 0 || cells > maxDimensionReserve {
		return 0
	}
	return int(cells)
}

func isStringType(t string) bool {
	return t == "s" || t == "str" || t == "inlineStr"
}

// cellValueOf interprets the text of a <v> element under the cell's declared
// type. A shared-string index outside the table keeps the index text itself.
func cellValueOf(text, cellType string, sharedStrings []string) CellValue {
	switch cellType {
	case "s":
		if idx, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
			if idx >= 0 && idx < len(sharedStrings) {
				return StringValue(sharedStrings[idx])
			}
			return StringValue(strconv.Itoa(idx))
		}
		return StringValue(text)
	case "b":
		return BooleanValue(len(text) > 0 && text[0] == '1')
	case "d":
		return DateValue(text)
	case "str":
		return StringValue(text)
	default:
		if n, ok := parseFloatBytes([]byte(text)); ok {
			return NumberValue(n)
		}
		return StringValue(text)
	}
}

// parseWorksheetXML streams one worksheet part into ws. Shared strings and
// the style table are read-only snapshots shared between workers.
func parseWorksheetXML(data []byte, sharedStrings []string, styles map[uint32]*CellStyle, ws *Worksheet, charset string) error {
	d := newXMLDecoder(data, charset)

	var currentRow uint32
	var cellRow, cellCol uint32
	var haveCoord bool
	cellType := ""
	var styleID uint32
	var hasStyleID bool
	var vText, inlineText strings.Builder
	var hasInline bool
	var formula strings.Builder
	var hasFormula bool
	inCell, inV, inT, inF := false, false, false, false
	reserved := false

	hyperlinks := map[uint64]string{}
	var currentDV *DataValidation
	var dvSqref string
	inFormula1, inFormula2 := false, false
	var dvFormula strings.Builder

	for {
		token, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return parseError("worksheet part", err)
		}
		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "dimension":
				if !reserved {
					if ref, ok := attrValue(t, "ref"); ok {
						if n := estimateDimensionCells(ref); n > 0 && len(ws.Cells) == 0 {
							ws.Cells = make(map[uint64]*CellData, n)
							reserved = true
						}
					}
				}
			case "row":
				if r, ok := attrValue(t, "r"); ok {
					if n, ok := parseUint32Bytes([]byte(r)); ok {
						currentRow = n
					}
				}
				if ht, ok := attrValue(t, "ht"); ok && currentRow > 0 {
					if height, err := strconv.ParseFloat(ht, 64); err == nil {
						ws.SetRowHeight(currentRow, height)
					}
				}
			case "c":
				inCell = true
				haveCoord = false
				cellType = ""
				hasStyleID = false
				hasInline = false
				hasFormula = false
				vText.Reset()
				inlineText.Reset()
				formula.Reset()
				for _, a := range t.Attr {
					switch a.Name.Local {
					case "r":
						if row, col, ok := parseCoordinateBytes([]byte(a.Value)); ok {
							cellRow, cellCol = row, col
							haveCoord = true
						}
					case "t":
						cellType = a.Value
					case "s":
						if n, ok := parseUint32Bytes([]byte(a.Value)); ok {
							styleID = n
							hasStyleID = true
						}
					}
				}
			case "v":
				inV = true
			case "t":
				inT = true
			case "f":
				inF = true
			case "mergeCell":
				if ref, ok := attrValue(t, "ref"); ok {
					if start, end, found := strings.Cut(ref, ":"); found {
						ws.AddMergedRange(start, end)
					}
				}
			case "col":
				var colMin, colMax uint32
				var width float64
				var hasWidth bool
				for _, a := range t.Attr {
					switch a.Name.Local {
					case "min":
						colMin, _ = parseUint32Bytes([]byte(a.Value))
					case "max":
						colMax, _ = parseUint32Bytes([]byte(a.Value))
					case "width":
						if w, err := strconv.ParseFloat(a.Value, 64); err == nil {
							width = w
							hasWidth = true
						}
					}
				}
				if hasWidth {
					if colMin == 0 {
						colMin = 1
					}
					if colMax < colMin {
						colMax = colMin
					}
					if colMax > MaxColumn {
						colMax = MaxColumn
					}
					for col := colMin; col <= colMax; col++ {
						ws.SetColumnWidth(col, width)
					}
				}
			case "hyperlink":
				ref, hasRef := attrValue(t, "ref")
				if !hasRef {
					continue
				}
				row, col, err := ParseCoordinate(ref)
				if err != nil {
					continue
				}
				if location, ok := attrValue(t, "location"); ok {
					hyperlinks[cellKey(row, col)] = location
				} else if display, ok := attrValue(t, "display"); ok {
					hyperlinks[cellKey(row, col)] = display
				} else {
					hyperlinks[cellKey(row, col)] = "#" + ref
				}
			case "sheetProtection":
				prot := &SheetProtection{Sheet: true}
				for _, a := range t.Attr {
					on := a.Value == "1" || a.Value == "true"
					switch a.Name.Local {
					case "password":
						prot.Password = a.Value
					case "selectLockedCells":
						prot.SelectLockedCells = on
					case "selectUnlockedCells":
						prot.SelectUnlockedCells = on
					case "formatCells":
						prot.FormatCells = on
					case "formatColumns":
						prot.FormatColumns = on
					case "formatRows":
						prot.FormatRows = on
					case "insertColumns":
						prot.InsertColumns = on
					case "insertRows":
						prot.InsertRows = on
					case "insertHyperlinks":
						prot.InsertHyperlinks = on
					case "deleteColumns":
						prot.DeleteColumns = on
					case "deleteRows":
						prot.DeleteRows = on
					case "sort":
						prot.Sort = on
					case "autoFilter":
						prot.AutoFilter = on
					case "pivotTables":
						prot.PivotTables = on
					case "objects":
						prot.Objects = on
					case "scenarios":
						prot.Scenarios = on
					}
				}
				ws.Protection = prot
			case "dataValidation":
				currentDV = &DataValidation{}
				dvSqref, _ = attrValue(t, "sqref")
				if v, ok := attrValue(t, "type"); ok {
					currentDV.Type = v
				}
				if v, ok := attrValue(t, "allowBlank"); ok {
					currentDV.AllowBlank = v == "1" || v == "true"
				}
				if v, ok := attrValue(t, "showErrorMessage"); ok {
					currentDV.ShowError = v == "1" || v == "true"
				}
				if v, ok := attrValue(t, "showInputMessage"); ok {
					currentDV.ShowInput = v == "1" || v == "true"
				}
				if v, ok := attrValue(t, "errorTitle"); ok {
					currentDV.ErrorTitle = v
				}
				if v, ok := attrValue(t, "error"); ok {
					currentDV.ErrorMessage = v
				}
				if v, ok := attrValue(t, "promptTitle"); ok {
					currentDV.PromptTitle = v
				}
				if v, ok := attrValue(t, "prompt"); ok {
					currentDV.PromptMsg = v
				}
			case "formula1":
				inFormula1 = currentDV != nil
				dvFormula.Reset()
			case "formula2":
				inFormula2 = currentDV != nil
				dvFormula.Reset()
			}
		case xml.CharData:
			switch {
			case inV && inCell:
				vText.Write(t)
			case inT && inCell:
				inlineText.Write(t)
				hasInline = true
			case inF && inCell:
				formula.Write(t)
				hasFormula = true
			case inFormula1 || inFormula2:
				dvFormula.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "c":
				if haveCoord {
					cd := &CellData{}
					switch {
					case hasFormula:
						cd.Value = FormulaValue(formula.String())
					case vText.Len() > 0:
						cd.Value = cellValueOf(vText.String(), cellType, sharedStrings)
					case hasInline:
						cd.Value = StringValue(inlineText.String())
					case isStringType(cellType):
						// A string-typed cell with no value child is an empty
						// string, not Empty.
						cd.Value = StringValue("")
					default:
						cd.Value = EmptyValue()
					}
					if hasStyleID {
						cd.StyleIndex = styleID
						cd.HasStyle = true
						if style, ok := styles[styleID]; ok {
							cd.Style = style
							cd.NumberFormat = style.NumberFormat
						}
					}
					cd.DataType = cellType
					ws.SetCellData(cellRow, cellCol, cd)
				}
				inCell = false
			case "v":
				inV = false
			case "t":
				inT = false
			case "f":
				inF = false
			case "row":
				currentRow = 0
			case "formula1":
				if inFormula1 && currentDV != nil {
					currentDV.Formula1 = dvFormula.String()
				}
				inFormula1 = false
			case "formula2":
				if inFormula2 && currentDV != nil {
					currentDV.Formula2 = dvFormula.String()
				}
				inFormula2 = false
			case "dataValidation":
				if currentDV != nil && dvSqref != "" {
					first := dvSqref
					if cut, _, found := strings.Cut(first, ":"); found {
						first = cut
					}
					if fields := strings.Fields(first); len(fields) > 0 {
						first = fields[0]
					}
					if row, col, err := ParseCoordinate(first); err == nil {
						ws.AddDataValidation(row, col, currentDV)
					}
				}
				currentDV = nil
			case "hyperlinks":
				for key, url := range hyperlinks {
					row, col := keyRowCol(key)
					if cd := ws.GetCell(row, col); cd != nil {
						cd.Hyperlink = url
					} else {
						ws.SetCellData(row, col, &CellData{Hyperlink: url})
					}
				}
			}
		}
	}
	return nil
}

// parseCommentsXML attaches comment text to cells.
func parseCommentsXML(data []byte, ws *Worksheet, charset string) error {
	d := newXMLDecoder(data, charset)

	var ref string
	var text strings.Builder
	inComment, inText, inT := false, false, false

	for {
		token, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return parseError("comments part", err)
		}
		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "comment":
				inComment = true
				text.Reset()
				ref, _ = attrValue(t, "ref")
			case "text":
				inText = inComment
			case "t":
				inT = inText
			}
		case xml.CharData:
			if inT {
				text.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "comment":
				if row, col, err := ParseCoordinate(ref); err == nil {
					ws.SetCellComment(row, col, text.String())
				}
				inComment, inText, inT = false, false, false
			case "text":
				inText = false
			case "t":
				inT = false
			}
		}
	}
	return nil
}
