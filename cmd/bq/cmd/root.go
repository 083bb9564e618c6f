package cmd

import (
	"fmt"
	"os"

	"bare/cli"
	"bare/log"

	"github.com/spf13/cobra"
)

var logger = log.WithModule("bq")

var rootCmd = &cobra.Command{
	Use:           "bq",
	Short:         "Encodes, decodes and stores BARE messages.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String(cli.FlagHome, "~/.bq", "Home directory for the configuration, schema and record database.")
	rootCmd.PersistentFlags().String(cli.FlagSchema, "", "Schema file to use instead of the configured one.")
	rootCmd.PersistentFlags().String(cli.FlagLogLevel, "", "Log level. Overrides the configured level.")
	rootCmd.PersistentFlags().Bool(cli.FlagLogJSON, false, "Write logs as JSON.")
}

// addTypeFlag adds the --type flag to commands that work on values.
func addTypeFlag(cmd *cobra.Command) {
	cmd.Flags().StringP(cli.FlagType, "t", "", "Name of the schema type to use.")
}

func addFormatFlag(cmd *cobra.Command, usage string) {
	cmd.Flags().StringP(cli.FlagFormat, "f", cli.FormatHex, usage+" One of hex or binary.")
}

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP(cli.FlagOutput, "o", cli.OutputJSON, "Output format. One of json, yaml, cbor or hex.")
}
