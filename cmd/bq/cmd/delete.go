package cmd

import (
	"fmt"

	"bare/cli"
	"bare/store"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Deletes a stored record.",
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

		if err := store.DeleteRecord(db, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
