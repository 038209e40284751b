// Package main provides quotecli, a terminal front end to the quote analysis flow.
package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quotecli",
		Short: "Analyze home-services quotes from the terminal",
		Long: `Analyze home-services quotes from the terminal.

Examples:
  quotecli analyze roof.pdf --location "Austin, TX"
  quotecli analyze hvac.txt --mode structured --json
  quotecli sections roof.pdf                        # no API key needed
`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(analyzeCmd())
	cmd.AddCommand(sectionsCmd())

	return cmd
}
