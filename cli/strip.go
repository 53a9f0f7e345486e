package cli

import (
	"os"

	"pngscan/logging"
	"pngscan/pngDecoder"

	"github.com/spf13/cobra"
)

func init() {
	stripCommand := &cobra.Command{
		Use:   "strip <in> <out>",
		Short: "Copy a PNG keeping only critical chunks, with fresh checksums",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			out, err := os.Create(args[1])
			if err != nil {
				return err
			}
			defer out.Close()

			dropped, err := pngDecoder.StripAncillary(in, out)
			if err != nil {
				return err
			}
			logging.Info().Strs("dropped", dropped).Str("output", args[1]).Msg("stripped ancillary chunks")
			return out.Close()
		},
	}
	PngscanCommand.AddCommand(stripCommand)
}
