package cmd

import (
	"bare/cli"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <hex?>",
	Short: "Decodes an encoded value of the given type.",
	Long: `Decodes an encoded value of the given type and renders it. The
encoded bytes are read from the argument or from stdin.`,
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
		format, _ := cmd.Flags().GetString(cli.FlagFormat)
		data, err := cli.DecodeRaw(input, format)
		if err != nil {
			return err
		}
		v, rest, err := env.Decoder.Unmarshal(data, t, env.Schema)
		if err != nil {
			return err
		}
		if len(rest) != 0 {
			return errors.Errorf("%d bytes left over after decoding", len(rest))
		}
		output, _ := cmd.Flags().GetString(cli.FlagOutput)
		return cli.WriteValue(cmd.OutOrStdout(), v, t, env.Schema, output)
	},
}

func init() {
	addTypeFlag(decodeCmd)
	addFormatFlag(decodeCmd, "Format of the encoded input.")
	addOutputFlag(decodeCmd)
	rootCmd.AddCommand(decodeCmd)
}
