package pngDecoder

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanlineLayout(t *testing.T) {
	for _, tc := range []struct {
		colorType     ColorMode
		bitDepth      uint8
		bytesPerPixel int
	}{
		{ColorUsed, 8, 3},
		{ColorUsed | ColorAlphaUsed, 8, 4},
		{ColorUsed, 16, 6},
		{ColorUsed | ColorAlphaUsed, 16, 8},
	} {
		layout, err := newScanlineLayout(&IHDR{Width: 5, Height: 2, BitDepth: tc.bitDepth, ColorType: tc.colorType})
		require.NoError(t, err)
		assert.Equal(t, tc.bytesPerPixel, layout.bytesPerPixel)
		assert.Equal(t, 5*tc.bytesPerPixel, layout.sampleBytes)
		size, ok := layout.rawSize()
		assert.True(t, ok)
		assert.Equal(t, 2*(1+5*tc.bytesPerPixel), size)
	}
}

func TestScanlineLayoutUnsupported(t *testing.T) {
	for _, tc := range []struct {
		name   string
		ihdr   IHDR
		reason error
	}{
		{"grayscale", IHDR{BitDepth: 8, ColorType: ColorGrayscale}, ErrUnsupportedColorMode},
		{"palette", IHDR{BitDepth: 8, ColorType: ColorPaletteUsed | ColorUsed}, ErrUnsupportedColorMode},
		{"gray alpha", IHDR{BitDepth: 8, ColorType: ColorAlphaUsed}, ErrUnsupportedColorMode},
		{"rgb 4-bit", IHDR{BitDepth: 4, ColorType: ColorUsed}, ErrUnsupportedBitDepth},
		{"rgba 12-bit", IHDR{BitDepth: 12, ColorType: ColorUsed | ColorAlphaUsed}, ErrUnsupportedBitDepth},
		{"interlaced", IHDR{BitDepth: 8, ColorType: ColorUsed, InterlaceMethod: 1}, ErrUnsupportedInterlace},
		{"compression", IHDR{BitDepth: 8, ColorType: ColorUsed, CompressionMethod: 1}, ErrUnsupportedMethod},
		{"filter method", IHDR{BitDepth: 8, ColorType: ColorUsed, FilterMethod: 1}, ErrUnsupportedMethod},
		{"too wide", IHDR{Width: 1 << 31, Height: 1, BitDepth: 16, ColorType: ColorUsed}, ErrImageTooLarge},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ihdr := tc.ihdr
			_, err := newScanlineLayout(&ihdr)
			assert.True(t, errors.Is(err, tc.reason), "got %v", err)
			assert.True(t, errors.Is(err, ErrBadImageData))
		})
	}
}

func TestReconstruct(t *testing.T) {
	layout, err := newScanlineLayout(&IHDR{Width: 2, Height: 3, BitDepth: 8, ColorType: ColorUsed})
	require.NoError(t, err)

	rows := [][]byte{
		{255, 0, 0, 0, 255, 0},
		{0, 0, 255, 10, 20, 30},
		{1, 2, 3, 250, 251, 252},
	}
	for _, filters := range [][]FilterType{
		{FilterNone},
		{FilterSub},
		{FilterUp},
		{FilterAverage},
		{FilterPaeth},
		{FilterPaeth, FilterNone, FilterAverage},
		{FilterSub, FilterUp},
	} {
		raw := encodeScanlines(rows, filters, 3)
		grid, err := layout.reconstruct(raw)
		require.NoError(t, err, "filters %v", filters)
		assert.Equal(t, PixelGrid{
			{{Red: 255, Alpha: 255}, {Green: 255, Alpha: 255}},
			{{Blue: 255, Alpha: 255}, {Red: 10, Green: 20, Blue: 30, Alpha: 255}},
			{{Red: 1, Green: 2, Blue: 3, Alpha: 255}, {Red: 250, Green: 251, Blue: 252, Alpha: 255}},
		}, grid, "filters %v", filters)
	}
}

func TestReconstructSixteenBit(t *testing.T) {
	layout, err := newScanlineLayout(&IHDR{Width: 1, Height: 2, BitDepth: 16, ColorType: ColorUsed | ColorAlphaUsed})
	require.NoError(t, err)

	rows := [][]byte{
		{0x12, 0x34, 0x00, 0xff, 0xff, 0x00, 0x80, 0x00},
		{0x12, 0x35, 0x01, 0x00, 0xff, 0x01, 0xff, 0xff},
	}
	grid, err := layout.reconstruct(encodeScanlines(rows, []FilterType{FilterSub, FilterUp}, 8))
	require.NoError(t, err)
	assert.Equal(t, PixelGrid{
		{{Red: 0x1234, Green: 0x00ff, Blue: 0xff00, Alpha: 0x8000}},
		{{Red: 0x1235, Green: 0x0100, Blue: 0xff01, Alpha: 0xffff}},
	}, grid)
}

func TestReconstructCorrupted(t *testing.T) {
	layout, err := newScanlineLayout(&IHDR{Width: 2, Height: 2, BitDepth: 8, ColorType: ColorUsed})
	require.NoError(t, err)

	t.Run("short stream", func(t *testing.T) {
		raw := make([]byte, 2*7-1)
		grid, err := layout.reconstruct(raw)
		assert.Nil(t, grid)
		assert.True(t, errors.Is(err, ErrCorruptedScanline))
		assert.True(t, errors.Is(err, ErrBadImageData))
	})
	t.Run("bad filter byte", func(t *testing.T) {
		raw := make([]byte, 2*7)
		raw[7] = 9
		grid, err := layout.reconstruct(raw)
		assert.Nil(t, grid)
		assert.True(t, errors.Is(err, ErrUnknownFilter))
		assert.True(t, errors.Is(err, ErrBadImageData))
	})
	t.Run("trailing bytes are ignored", func(t *testing.T) {
		raw := make([]byte, 2*7+3)
		grid, err := layout.reconstruct(raw)
		require.NoError(t, err)
		assert.Equal(t, 2, grid.Height())
		assert.Equal(t, 2, grid.Width())
	})
}

func TestReconstructEmpty(t *testing.T) {
	for _, ihdr := range []IHDR{
		{Width: 0, Height: 4, BitDepth: 8, ColorType: ColorUsed},
		{Width: 4, Height: 0, BitDepth: 8, ColorType: ColorUsed},
	} {
		layout, err := newScanlineLayout(&ihdr)
		require.NoError(t, err)
		grid, err := layout.reconstruct(nil)
		require.NoError(t, err)
		assert.NotNil(t, grid)
		assert.Equal(t, 0, grid.Height())
		assert.Equal(t, 0, grid.Width())
	}
}

func TestPixelGridImage(t *testing.T) {
	grid := PixelGrid{
		{{Red: 1, Green: 2, Blue: 3, Alpha: 255}, {Red: 4, Green: 5, Blue: 6, Alpha: 7}},
	}
	img8, ok := grid.Image(8).(*image.NRGBA)
	require.True(t, ok)
	assert.Equal(t, image.Rect(0, 0, 2, 1), img8.Bounds())
	assert.Equal(t, []uint8{1, 2, 3, 255, 4, 5, 6, 7}, img8.Pix)

	grid16 := PixelGrid{{{Red: 0x0102, Green: 0x0304, Blue: 0x0506, Alpha: 0xffff}}}
	img16, ok := grid16.Image(16).(*image.NRGBA64)
	require.True(t, ok)
	assert.Equal(t, []uint8{1, 2, 3, 4, 5, 6, 0xff, 0xff}, img16.Pix)
}
