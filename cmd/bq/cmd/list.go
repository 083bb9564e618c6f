package cmd

import (
	"bare/cli"
	"bare/store"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists stored records.",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.LoadEnv(cmd)
		if err != nil {
			return err
		}
		typeName, _ := cmd.Flags().GetString(cli.FlagType)
		db, err := env.OpenDB()
		if err != nil {
			return err
		}
		defer db.Close()

		stream, err := store.StreamRecords(db, typeName)
		if err != nil {
			return err
		}
		defer stream.Close()
		var recs []*store.Record
		for {
			rec, err := stream.Next()
			if err != nil {
				return err
			}
			if rec == nil {
				break
			}
			recs = append(recs, rec)
		}
		cli.WriteRecords(cmd.OutOrStdout(), recs)
		return nil
	},
}

func init() {
	listCmd.Flags().StringP(cli.FlagType, "t", "", "Only list records of this type.")
	rootCmd.AddCommand(listCmd)
}
