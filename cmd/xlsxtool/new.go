package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yamitzky/xlsx-go/xlsx"
)

var (
	newSheets      []string
	newCompression string
)

var newCmd = &cobra.Command{
	Use:   "new <outfile>",
	Short: "Create an empty spreadsheet package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := parseCompression(newCompression)
		if err != nil {
			return err
		}
		wb := xlsx.NewWorkbook()
		wb.Compression = level
		sheets := newSheets
		if len(sheets) == 0 {
			sheets = []string{"Sheet1"}
		}
		for _, name := range sheets {
			if _, err := wb.CreateSheet(name); err != nil {
				return err
			}
		}
		return wb.Save(args[0])
	},
}

func init() {
	newCmd.Flags().StringSliceVar(&newSheets, "sheets", nil, "sheet names (default Sheet1)")
	newCmd.Flags().StringVar(&newCompression, "compression", "default", "compression: none, fast, default or best")
}

func parseCompression(value string) (xlsx.CompressionLevel, error) {
	switch value {
	case "none":
		return xlsx.CompressionNone, nil
	case "fast":
		return xlsx.CompressionFast, nil
	case "default":
		return xlsx.CompressionDefault, nil
	case "best":
		return xlsx.CompressionBest, nil
	default:
		return 0, fmt.Errorf("unsupported compression: %s", value)
	}
}
