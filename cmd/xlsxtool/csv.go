package main

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yamitzky/xlsx-go/xlsx"
)

const defaultSheetDelimiter = "--------"

var (
	csvAllSheets      bool
	csvSheetID        int
	csvSheetName      string
	csvDelimiter      string
	csvIgnoreEmpty    bool
	csvSheetDelimiter string
)

var csvCmd = &cobra.Command{
	Use:   "csv <xlsxfile> [outfile]",
	Short: "Convert a spreadsheet package to CSV",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if csvSheetName != "" && (csvAllSheets || csvSheetID >= 0) {
			return fmt.Errorf("cannot combine --sheetname with --sheet or --all")
		}
		delimiter, err := parseDelimiter(csvDelimiter)
		if err != nil {
			return fmt.Errorf("invalid delimiter: %w", err)
		}

		var contents []byte
		inputPath := args[0]
		if inputPath == "-" {
			contents, err = io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
		}
		wb, err := xlsx.OpenWorkbook(inputPath, &xlsx.OpenOptions{FileContents: contents})
		if err != nil {
			return err
		}

		indexes, err := selectSheets(wb)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(args) > 1 {
			f, err := os.Create(args[1])
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		w := bufio.NewWriter(out)
		if err := writeSheetsCSV(w, wb, indexes, delimiter); err != nil {
			return err
		}
		return w.Flush()
	},
}

func init() {
	csvCmd.Flags().BoolVarP(&csvAllSheets, "all", "a", false, "export all sheets")
	csvCmd.Flags().IntVarP(&csvSheetID, "sheet", "s", -1, "sheet number to convert (1-based), 0 for all")
	csvCmd.Flags().StringVarP(&csvSheetName, "sheetname", "n", "", "sheet name to convert")
	csvCmd.Flags().StringVarP(&csvDelimiter, "delimiter", "d", ",", "column delimiter, 'tab' or 'x09' for a tab")
	csvCmd.Flags().BoolVarP(&csvIgnoreEmpty, "ignoreempty", "i", false, "skip empty lines")
	csvCmd.Flags().StringVarP(&csvSheetDelimiter, "sheetdelimiter", "p", defaultSheetDelimiter, "separator line between sheets")
}

func parseDelimiter(value string) (rune, error) {
	switch strings.ToLower(value) {
	case "tab", "x09":
		return '\t', nil
	case "":
		return 0, fmt.Errorf("delimiter cannot be empty")
	}
	runes := []rune(value)
	if len(runes) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character")
	}
	return runes[0], nil
}

func selectSheets(wb *xlsx.Workbook) ([]int, error) {
	if csvSheetName != "" {
		for i, name := range wb.SheetNames {
			if name == csvSheetName {
				return []int{i}, nil
			}
		}
		return nil, fmt.Errorf("sheet %s not found", csvSheetName)
	}
	if csvAllSheets || csvSheetID == 0 {
		indexes := make([]int, len(wb.Worksheets))
		for i := range indexes {
			indexes[i] = i
		}
		if len(indexes) == 0 {
			return nil, fmt.Errorf("no sheets found")
		}
		return indexes, nil
	}
	if csvSheetID > 0 {
		if csvSheetID > len(wb.Worksheets) {
			return nil, fmt.Errorf("sheet index %d out of range", csvSheetID)
		}
		return []int{csvSheetID - 1}, nil
	}
	if len(wb.Worksheets) == 0 {
		return nil, fmt.Errorf("no sheets found")
	}
	return []int{0}, nil
}

func writeSheetsCSV(w io.Writer, wb *xlsx.Workbook, indexes []int, delimiter rune) error {
	for i, index := range indexes {
		if i > 0 && csvSheetDelimiter != "" {
			if _, err := fmt.Fprintln(w, csvSheetDelimiter); err != nil {
				return err
			}
		}
		ws, err := wb.SheetByIndex(index)
		if err != nil {
			return err
		}
		cw := csv.NewWriter(w)
		cw.Comma = delimiter
		for _, row := range sheetRows(ws) {
			if csvIgnoreEmpty && rowEmpty(row) {
				continue
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return err
		}
	}
	return nil
}

// sheetRows renders the sheet as a dense grid. Numeric cells whose number
// format looks like a date are converted from serial form.
func sheetRows(ws *xlsx.Worksheet) [][]string {
	minRow, minCol, maxRow, maxCol, ok := ws.Dimension()
	if !ok {
		return nil
	}
	rows := make([][]string, 0, maxRow-minRow+1)
	for r := minRow; r <= maxRow; r++ {
		row := make([]string, 0, maxCol-minCol+1)
		for c := minCol; c <= maxCol; c++ {
			row = append(row, cellText(ws.GetCell(r, c)))
		}
		rows = append(rows, row)
	}
	return rows
}

func cellText(cd *xlsx.CellData) string {
	if cd == nil {
		return ""
	}
	v := cd.Value
	if v.Kind() == xlsx.CellNumber && looksLikeDateFormat(cd.NumberFormat) {
		if t, err := xlsx.SerialToTime(v.Num(), 0); err == nil {
			if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
				return t.Format("2006-01-02")
			}
			return t.Format("2006-01-02 15:04:05")
		}
	}
	return v.String()
}

// looksLikeDateFormat reports whether a number-format code contains date or
// time tokens. Bracketed sections and quoted literals do not count, so codes
// like "#,##0;[Red](#,##0)" stay numeric.
func looksLikeDateFormat(code string) bool {
	if code == "" || code == "General" {
		return false
	}
	inBracket, inQuote := false, false
	for _, r := range code {
		switch {
		case inQuote:
			if r == '"' {
				inQuote = false
			}
		case inBracket:
			if r == ']' {
				inBracket = false
			}
		case r == '"':
			inQuote = true
		case r == '[':
			inBracket = true
		case r == 'y' || r == 'm' || r == 'd' || r == 'h' || r == 's' ||
			r == 'Y' || r == 'M' || r == 'D' || r == 'H' || r == 'S':
			return true
		}
	}
	return false
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
