package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"pngscan/config"
	"pngscan/oops"
	"pngscan/pngDecoder"

	"github.com/spf13/cobra"
)

func init() {
	infoCommand := &cobra.Command{
		Use:   "info <file>",
		Short: "Print the header and chunk list of a PNG without decoding pixels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			return printInfo(cmd.OutOrStdout(), file, config.Config.VerifyChecksums)
		},
	}
	PngscanCommand.AddCommand(infoCommand)
}

func printInfo(out io.Writer, r io.Reader, verifyChecksums bool) error {
	if err := pngDecoder.CheckSignature(r); err != nil {
		return err
	}
	chunks := pngDecoder.NewChunkReader(r)
	chunks.VerifyChecksums = verifyChecksums

	var ihdr *pngDecoder.IHDR
	var idatChunks, idatBytes int
	for {
		chunk, err := chunks.Next()
		if errors.Is(err, io.EOF) {
			return oops.New(pngDecoder.ErrFraming, "stream ended without an IEND chunk")
		} else if err != nil {
			return err
		}

		kind := "ancillary"
		if chunk.Critical() {
			kind = "critical"
		}
		fmt.Fprintf(out, "%s %10d  %-9s crc %08x\n", chunk.Name(), chunk.Length, kind, chunk.CRC)

		switch chunk.Name() {
		case "IHDR":
			if ihdr == nil {
				ihdr, err = pngDecoder.ParseIHDR(chunk.Data)
				if err != nil {
					return err
				}
			}
		case "IDAT":
			idatChunks++
			idatBytes += len(chunk.Data)
		case "IEND":
			if ihdr == nil {
				return oops.New(pngDecoder.ErrMissingHeader, "no IHDR chunk")
			}
			fmt.Fprintf(out, "\nheader: %s\n", ihdr)
			fmt.Fprintf(out, "image data: %d bytes in %d IDAT chunks\n", idatBytes, idatChunks)
			return nil
		}
	}
}
