package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "temporalctl",
	Short: "extract, relate, forecast, and validate temporal events",
	Long:  "A CLI over the temporal reasoning engine's extraction, causality, compliance, and forecasting core.",
}

func init() {
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(validateCmd)
}
