package config

import "github.com/rs/zerolog"

type PngscanConfig struct {
	LogLevel zerolog.Level

	// Checked against each chunk's trailing CRC-32 when set.
	VerifyChecksums bool

	// Zero means unlimited.
	MaxWidth         uint32
	MaxHeight        uint32
	MaxInflatedBytes int64
}

var Config = PngscanConfig{
	LogLevel:         zerolog.InfoLevel,
	VerifyChecksums:  true,
	MaxWidth:         1 << 16,
	MaxHeight:        1 << 16,
	MaxInflatedBytes: 1 << 30,
}
