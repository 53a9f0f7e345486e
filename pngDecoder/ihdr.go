package pngDecoder

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"pngscan/oops"
)

const ihdrLength = 13

// ColorMode is the IHDR color type byte, a set of flags.
type ColorMode uint8

const (
	ColorGrayscale   ColorMode = 0
	ColorPaletteUsed ColorMode = 1 << 0
	ColorUsed        ColorMode = 1 << 1
	ColorAlphaUsed   ColorMode = 1 << 2
)

func (m ColorMode) String() string {
	if m == ColorGrayscale {
		return "Grayscale"
	}
	var parts []string
	if m&ColorPaletteUsed != 0 {
		parts = append(parts, "PaletteUsed")
	}
	if m&ColorUsed != 0 {
		parts = append(parts, "ColorUsed")
	}
	if m&ColorAlphaUsed != 0 {
		parts = append(parts, "AlphaUsed")
	}
	if rest := m &^ (ColorPaletteUsed | ColorUsed | ColorAlphaUsed); rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%02x", uint8(rest)))
	}
	return strings.Join(parts, "|")
}

type IHDR struct {
	Width             uint32
	Height            uint32
	BitDepth          uint8
	ColorType         ColorMode
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   uint8
}

// ParseIHDR decodes an IHDR payload. Only the length is checked; the field
// values are validated when the pixel data is reconstructed.
func ParseIHDR(data []byte) (*IHDR, error) {
	if len(data) != ihdrLength {
		return nil, oops.New(ErrInvalidHeader, "IHDR payload is %d bytes, expected %d", len(data), ihdrLength)
	}

	var ihdr IHDR
	reader := bytes.NewReader(data)
	if err := binary.Read(reader, binary.BigEndian, &ihdr); err != nil {
		return nil, oops.New(ErrInvalidHeader, "reading IHDR fields: %v", err)
	}
	return &ihdr, nil
}

func (ihdr *IHDR) String() string {
	return fmt.Sprintf("%dx%d, %d-bit %s, compression %d, filter %d, interlace %d",
		ihdr.Width, ihdr.Height, ihdr.BitDepth, ihdr.ColorType,
		ihdr.CompressionMethod, ihdr.FilterMethod, ihdr.InterlaceMethod)
}
