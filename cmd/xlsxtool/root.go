package main

import (
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:           "xlsxtool",
	Short:         "xlsxtool - read, convert and create spreadsheet packages",
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.AddCommand(csvCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(newCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
