package cli

import (
	"pngscan/compression"
	"pngscan/config"
	"pngscan/logging"
	"pngscan/pngDecoder"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var logLevel string

var PngscanCommand = &cobra.Command{
	Use:           "pngscan",
	Short:         "Decode and inspect RGB and RGBA PNG images",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		config.Config.LogLevel = level
		logging.SetLevel(level)
		return nil
	},
}

func init() {
	flags := PngscanCommand.PersistentFlags()
	flags.StringVar(&logLevel, "log-level", config.Config.LogLevel.String(), "debug, info, warn or error")
	flags.BoolVar(&config.Config.VerifyChecksums, "verify-crc", config.Config.VerifyChecksums, "reject chunks whose crc does not match")
	flags.Uint32Var(&config.Config.MaxWidth, "max-width", config.Config.MaxWidth, "largest accepted width, 0 for no limit")
	flags.Uint32Var(&config.Config.MaxHeight, "max-height", config.Config.MaxHeight, "largest accepted height, 0 for no limit")
	flags.Int64Var(&config.Config.MaxInflatedBytes, "max-inflated", config.Config.MaxInflatedBytes, "largest accepted inflated image data in bytes, 0 for no limit")
}

// Execute runs the command line and returns the process exit code.
func Execute() (code int) {
	defer func() {
		if r := recover(); r != nil {
			logging.LogPanicValue(nil, r, "pngscan panicked")
			code = 1
		}
	}()

	if err := PngscanCommand.Execute(); err != nil {
		logging.Error().Err(err).Msg("pngscan failed")
		return 1
	}
	return 0
}

func decodeOptions() pngDecoder.Options {
	return pngDecoder.Options{
		VerifyChecksums: config.Config.VerifyChecksums,
		MaxWidth:        config.Config.MaxWidth,
		MaxHeight:       config.Config.MaxHeight,
		Inflater:        compression.ZlibInflater{MaxOutput: config.Config.MaxInflatedBytes},
	}
}
