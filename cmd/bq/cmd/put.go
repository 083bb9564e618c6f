package cmd

import (
	"fmt"

	"bare/cli"
	"bare/jsonbare"
	"bare/store"

	"github.com/spf13/cobra"
)

var putCmd = &cobra.Command{
	Use:   "put <name> <json?>",
	Short: "Stores a JSON value as a record of the given type.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.LoadEnv(cmd)
		if err != nil {
			return err
		}
		typeName, t, err := env.Type(cmd)
		if err != nil {
			return err
		}
		input, err := cli.ReadInput(args[1:], cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		v, err := jsonbare.Unmarshal(input, t, env.Schema)
		if err != nil {
			return err
		}

		db, err := env.OpenDB()
		if err != nil {
			return err
		}
		defer db.Close()
		rec, err := store.PutValue(db, env.Schema, args[0], typeName, v, env.PutOpts())
		if err != nil {
			return err
		}
		logger.Info("stored record", "name", rec.Name, "type", rec.Type)
		fmt.Fprintf(cmd.OutOrStdout(), "Success. Digest: %s\n", rec.Digest)
		return nil
	},
}

func init() {
	addTypeFlag(putCmd)
	rootCmd.AddCommand(putCmd)
}
