package cmd

import (
	"bare/cli"
	"bare/jsonbare"
	"bare/value"

	"github.com/spf13/cobra"
)

var encodeCmd = &cobra.Command{
	Use:   "encode <json?>",
	Short: "Encodes a JSON value as the given type.",
	Long: `Encodes a JSON value as the given type. The JSON is read from the
argument or from stdin, and may contain comments and trailing commas.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.LoadEnv(cmd)
		if err != nil {
			return err
		}
		_, t, err := env.Type(cmd)
		if err != nil {
			return err
		}
		input, err := cli.ReadInput(args, cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		v, err := jsonbare.Unmarshal(input, t, env.Schema)
		if err != nil {
			return err
		}
		out, err := value.MarshalAs(v, t, env.Schema)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString(cli.FlagFormat)
		return cli.WriteRaw(cmd.OutOrStdout(), out, format)
	},
}

func init() {
	addTypeFlag(encodeCmd)
	addFormatFlag(encodeCmd, "Format of the encoded output.")
	rootCmd.AddCommand(encodeCmd)
}
