package pngDecoder

import (
	"errors"

	"pngscan/compression"
	"pngscan/oops"
)

// Error kinds. Every error returned by this package wraps one of these, so
// callers tell failures apart with errors.Is.
var (
	ErrBadSignature  = errors.New("not a png")
	ErrFraming       = errors.New("malformed chunk stream")
	ErrChecksum      = errors.New("chunk crc mismatch")
	ErrMissingHeader = errors.New("missing IHDR chunk")
	ErrInvalidHeader = errors.New("invalid IHDR chunk")
	ErrImageTooLarge = errors.New("image dimensions exceed limit")

	// Failures while inflating or reconstructing pixel data wrap
	// ErrBadImageData as well as their own kind.
	ErrBadImageData         = errors.New("bad image data")
	ErrDecompressionFailed  = compression.ErrDecompressionFailed
	ErrUnsupportedColorMode = errors.New("unsupported color mode")
	ErrUnsupportedBitDepth  = errors.New("unsupported bit depth")
	ErrUnsupportedInterlace = errors.New("unsupported interlace method")
	ErrUnsupportedMethod    = errors.New("unsupported compression or filter method")
	ErrUnknownFilter        = errors.New("unknown scanline filter")
	ErrCorruptedScanline    = errors.New("corrupted scanline")
)

func badImageData(kind error, format string, args ...interface{}) error {
	return oops.New(errors.Join(ErrBadImageData, kind), format, args...)
}
