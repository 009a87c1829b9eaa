package xlsx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// FileFormatDescriptions provides descriptions of the file types that can be
// inspected.
var FileFormatDescriptions = map[string]string{
	"xls":  "Legacy binary workbook",
	"xlsb": "Binary workbook package",
	"xlsx": "Spreadsheet package",
	"ods":  "OpenDocument spreadsheet",
	"zip":  "Unknown ZIP file",
	"":     "Unknown file type",
}

var (
	oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	zipSignature = []byte("PK\x03\x04")
)

const peekSize = 8

// InspectFormat inspects the content at the supplied path, or the bytes
// content provided, and returns the file's type as a string, or empty string
// if it cannot be determined. The return value can always be looked up in
// FileFormatDescriptions.
func InspectFormat(path string, content []byte) (string, error) {
	if content == nil {
		expandedPath := path
		if strings.HasPrefix(path, "~") {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			expandedPath = strings.Replace(path, "~", homeDir, 1)
		}
		data, err := os.ReadFile(expandedPath)
		if err != nil {
			return "", err
		}
		content = data
	}
	if len(content) < peekSize {
		return "", nil
	}

	if bytes.HasPrefix(content, oleSignature) {
		return "xls", nil
	}
	if !bytes.HasPrefix(content, zipSignature) {
		return "", nil
	}

	zf, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", err
	}

	// Workaround for some third party files that use backslashes and mixed
	// case names. We map the expected name in lowercase to the actual
	// filename in the zip container.
	componentNames := make(map[string]string)
	for _, name := range zf.File {
		lowerName := strings.ToLower(strings.ReplaceAll(name.Name, "\\", "/"))
		componentNames[lowerName] = name.Name
	}

	if _, ok := componentNames["xl/workbook.xml"]; ok {
		return "xlsx", nil
	}
	if _, ok := componentNames["xl/workbook.bin"]; ok {
		return "xlsb", nil
	}
	if _, ok := componentNames["content.xml"]; ok {
		return "ods", nil
	}
	return "zip", nil
}

// Dump writes a human-readable summary of the workbook: sheets with their
// dimensions and cell counts, named ranges and style catalog sizes.
func (wb *Workbook) Dump(w io.Writer) {
	fmt.Fprintf(w, "sheets: %d\n", len(wb.Worksheets))
	for i, ws := range wb.Worksheets {
		minRow, minCol, maxRow, maxCol, ok := ws.Dimension()
		dim := "empty"
		if ok {
			dim = CoordinateString(minRow, minCol) + ":" + CoordinateString(maxRow, maxCol)
		}
		fmt.Fprintf(w, "  %d: %s  cells=%d  dimension=%s", i, wb.SheetNames[i], len(ws.Cells), dim)
		if len(ws.MergedCells) > 0 {
			fmt.Fprintf(w, "  merged=%d", len(ws.MergedCells))
		}
		if ws.IsProtected() {
			fmt.Fprintf(w, "  protected")
		}
		fmt.Fprintln(w)
	}
	if len(wb.NamedRanges) > 0 {
		fmt.Fprintf(w, "named ranges: %d\n", len(wb.NamedRanges))
		for _, nr := range wb.NamedRanges {
			fmt.Fprintf(w, "  %s = %s\n", nr.Name, nr.Range)
		}
	}
	if wb.Styles != nil {
		fmt.Fprintf(w, "styles: fonts=%d fills=%d borders=%d numFmts=%d cellXfs=%d\n",
			len(wb.Styles.Fonts), len(wb.Styles.Fills), len(wb.Styles.Borders),
			len(wb.Styles.NumFmts), len(wb.Styles.CellXfs))
	}
}

// Rows returns the sheet contents as a dense [row][col] grid of display text,
// sized to the bounding box of written cells. Returns nil for an empty sheet.
func (ws *Worksheet) Rows() [][]string {
	_, _, maxRow, maxCol, ok := ws.Dimension()
	if !ok {
		return nil
	}
	grid := make([][]string, maxRow)
	for i := range grid {
		grid[i] = make([]string, maxCol)
	}
	keys := make([]uint64, 0, len(ws.Cells))
	for key := range ws.Cells {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, key := range keys {
		row, col := keyRowCol(key)
		grid[row-1][col-1] = ws.Cells[key].Value.String()
	}
	return grid
}
