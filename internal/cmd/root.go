package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "medallion",
	Short: "Medallion - batch ETL for e-commerce order data",
	Long: `Medallion converts raw e-commerce CSV extracts into a dimensional
warehouse model through bronze, silver and gold layers.

Run the full pipeline with 'medallion run', inspect landed files with
'medallion ingest', or serve the results over HTTP with 'medallion serve'.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
