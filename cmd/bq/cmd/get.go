package cmd

import (
	"bare/cli"
	"bare/schema"
	"bare/store"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Reads a stored record and renders its value.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.LoadEnv(cmd)
		if err != nil {
			return err
		}
		db, err := env.OpenDB()
		if err != nil {
			return err
		}
		defer db.Close()

		v, rec, err := store.GetValue(db, env.Schema, env.Decoder, args[0])
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString(cli.FlagOutput)
		return cli.WriteValue(cmd.OutOrStdout(), v, schema.Named(rec.Type), env.Schema, output)
	},
}

func init() {
	addOutputFlag(getCmd)
	rootCmd.AddCommand(getCmd)
}
