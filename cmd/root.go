// =============================================================================
// Jira to Applens Converter - Root Command
// =============================================================================
//
// The root command carries the global flags shared by all subcommands:
//
//   --config   path to the YAML configuration file (defaults are built in)
//   --verbose  force debug-level logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile holds the path to the configuration file, overridable via --config.
var cfgFile string

// verbose enables debug logging when set.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "applens-converter",
	Short: "Convert Jira ticket dumps into Applens bulk-upload spreadsheets",
	Long: `Applens Converter transforms a CSV ticket dump exported from Jira into a
fixed-schema XLSX spreadsheet suitable for bulk upload into Applens.

The converter resolves the required columns against the input header
case-insensitively, tolerates Latin-1 encoded exports, drops rows without a
ticket ID, and emits exactly the eight Applens upload columns in their
required order.

Example Usage:
  applens-converter convert --input jira_dump.csv --output upload.xlsx
  applens-converter convert --input jira_dump.csv --dry-run
  applens-converter convert --input jira_dump.csv --config ./my.yaml`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file (built-in defaults apply if absent)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
