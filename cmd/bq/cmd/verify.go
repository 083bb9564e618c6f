package cmd

import (
	"context"

	"bare/cli"
	"bare/store"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const flagWorkers = "workers"

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Checks that every stored record matches its digest and decodes as its type.",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.LoadEnv(cmd)
		if err != nil {
			return err
		}
		workers := env.Config.Verify.Workers
		if cmd.Flags().Changed(flagWorkers) {
			workers, _ = cmd.Flags().GetInt(flagWorkers)
		}
		db, err := env.OpenDB()
		if err != nil {
			return err
		}
		defer db.Close()

		results, err := store.VerifyRecords(context.Background(), db, env.Schema, env.Decoder, workers)
		if err != nil {
			return err
		}
		if failed := cli.WriteVerifyResults(cmd.OutOrStdout(), results); failed > 0 {
			return errors.Errorf("%d of %d records failed verification", failed, len(results))
		}
		return nil
	},
}

func init() {
	verifyCmd.Flags().Int(flagWorkers, 0, "Number of records to verify concurrently. Overrides the configured value.")
	rootCmd.AddCommand(verifyCmd)
}
