package cmd

import (
	"fmt"

	"bare/cli"

	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <type?>",
	Short: "Describes the types in the schema.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.LoadEnv(cmd)
		if err != nil {
			return err
		}
		if len(args) == 0 {
			return cli.WriteSchema(cmd.OutOrStdout(), env.Schema)
		}
		t, err := env.Schema.Lookup(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], t)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
