package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yamitzky/xlsx-go/xlsx"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Describe a file: detected format plus a workbook summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := xlsx.InspectFormat(args[0], nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "format: %s (%s)\n", format, xlsx.FileFormatDescriptions[format])
		if format != "xlsx" {
			return nil
		}
		wb, err := xlsx.OpenWorkbook(args[0], nil)
		if err != nil {
			return err
		}
		wb.Dump(cmd.OutOrStdout())
		return nil
	},
}
