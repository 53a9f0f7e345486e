package cli

import (
	"os"
	"path/filepath"
	"strings"

	"pngscan/logging"
	"pngscan/oops"
	"pngscan/perf"
	"pngscan/pngDecoder"
	"pngscan/utils"

	"github.com/spf13/cobra"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func init() {
	var output, format string

	decodeCommand := &cobra.Command{
		Use:   "decode <file>",
		Short: "Decode a PNG and write its pixels as PPM, BMP or TIFF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, out, outFormat := args[0], output, format
			if outFormat == "" {
				outFormat = formatFromName(out)
			}
			if out == "" {
				out = strings.TrimSuffix(input, filepath.Ext(input)) + "." + outFormat
			}
			return decodeFile(input, out, outFormat)
		},
	}
	decodeCommand.Flags().StringVarP(&output, "output", "o", "", "output file (default: input name with the format's extension)")
	decodeCommand.Flags().StringVar(&format, "format", "", "ppm, bmp or tiff (default: from the output extension, else ppm)")
	PngscanCommand.AddCommand(decodeCommand)
}

func formatFromName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	}
	return "ppm"
}

func decodeFile(input, output, format string) error {
	if format != "ppm" && format != "bmp" && format != "tiff" {
		return oops.New(nil, "unknown output format %q", format)
	}

	file, err := os.Open(input)
	if err != nil {
		return err
	}
	defer file.Close()

	opts := decodeOptions()
	opts.Perf = perf.MakeNewDecodePerf(input)

	pd, err := pngDecoder.NewDecoder(file, opts)
	if err != nil {
		return err
	}
	res, err := pd.Decode()
	opts.Perf.EndDecode()
	if err != nil {
		if res != nil && res.Header != nil {
			logging.Warn().Stringer("header", res.Header).Msg("header of the image that failed to decode")
		}
		return err
	}

	logging.Info().
		Str("file", input).
		Stringer("header", res.Header).
		Strs("skipped", res.Skipped).
		Array("stages", opts.Perf).
		Dur("took", opts.Perf.Duration()).
		Msg("decoded image")

	switch format {
	case "ppm":
		err = utils.SavePPM(output, res.Pixels, res.Header.BitDepth)
	default:
		err = encodeImage(output, format, res)
	}
	if err != nil {
		return err
	}

	logging.Info().Str("output", output).Msg("wrote image")
	return nil
}

func encodeImage(output, format string, res *pngDecoder.Result) error {
	out, err := os.Create(output)
	if err != nil {
		return err
	}
	defer out.Close()

	img := res.Image()
	if format == "bmp" {
		err = bmp.Encode(out, img)
	} else {
		err = tiff.Encode(out, img, &tiff.Options{Compression: tiff.Deflate})
	}
	if err != nil {
		return oops.New(err, "encoding %s", format)
	}
	return out.Close()
}
