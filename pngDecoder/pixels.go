package pngDecoder

import (
	"encoding/binary"
	"image"
)

// Pixel holds one decoded pixel. Samples are kept at the source bit depth,
// so 8-bit images use 0-255 and 16-bit images 0-65535. Gray is unused for
// the color modes this package decodes.
type Pixel struct {
	Gray  uint16
	Red   uint16
	Green uint16
	Blue  uint16
	Alpha uint16
}

// PixelGrid is indexed [y][x].
type PixelGrid [][]Pixel

func (g PixelGrid) Height() int {
	return len(g)
}

func (g PixelGrid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

func newPixelGrid(width, height int) PixelGrid {
	grid := make(PixelGrid, height)
	backing := make([]Pixel, width*height)
	for y := range grid {
		grid[y] = backing[y*width : (y+1)*width : (y+1)*width]
	}
	return grid
}

type packFunc func(row []byte, out []Pixel)

type packKey struct {
	mode  ColorMode
	depth uint8
}

var packers = map[packKey]packFunc{
	{ColorUsed, 8}:                   packRGB8,
	{ColorUsed | ColorAlphaUsed, 8}:  packRGBA8,
	{ColorUsed, 16}:                  packRGB16,
	{ColorUsed | ColorAlphaUsed, 16}: packRGBA16,
}

func packRGB8(row []byte, out []Pixel) {
	for x := range out {
		px := row[x*3 : x*3+3]
		out[x] = Pixel{Red: uint16(px[0]), Green: uint16(px[1]), Blue: uint16(px[2]), Alpha: 0xff}
	}
}

func packRGBA8(row []byte, out []Pixel) {
	for x := range out {
		px := row[x*4 : x*4+4]
		out[x] = Pixel{Red: uint16(px[0]), Green: uint16(px[1]), Blue: uint16(px[2]), Alpha: uint16(px[3])}
	}
}

func packRGB16(row []byte, out []Pixel) {
	for x := range out {
		px := row[x*6 : x*6+6]
		out[x] = Pixel{
			Red:   binary.BigEndian.Uint16(px[0:2]),
			Green: binary.BigEndian.Uint16(px[2:4]),
			Blue:  binary.BigEndian.Uint16(px[4:6]),
			Alpha: 0xffff,
		}
	}
}

func packRGBA16(row []byte, out []Pixel) {
	for x := range out {
		px := row[x*8 : x*8+8]
		out[x] = Pixel{
			Red:   binary.BigEndian.Uint16(px[0:2]),
			Green: binary.BigEndian.Uint16(px[2:4]),
			Blue:  binary.BigEndian.Uint16(px[4:6]),
			Alpha: binary.BigEndian.Uint16(px[6:8]),
		}
	}
}

// Image converts a decoded grid to an image.Image: *image.NRGBA for 8-bit
// sources and *image.NRGBA64 for 16-bit ones.
func (g PixelGrid) Image(bitDepth uint8) image.Image {
	w, h := g.Width(), g.Height()
	if bitDepth == 16 {
		img := image.NewNRGBA64(image.Rect(0, 0, w, h))
		for y, row := range g {
			for x, px := range row {
				i := img.PixOffset(x, y)
				s := img.Pix[i : i+8 : i+8]
				binary.BigEndian.PutUint16(s[0:2], px.Red)
				binary.BigEndian.PutUint16(s[2:4], px.Green)
				binary.BigEndian.PutUint16(s[4:6], px.Blue)
				binary.BigEndian.PutUint16(s[6:8], px.Alpha)
			}
		}
		return img
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y, row := range g {
		for x, px := range row {
			i := img.PixOffset(x, y)
			s := img.Pix[i : i+4 : i+4]
			s[0] = uint8(px.Red)
			s[1] = uint8(px.Green)
			s[2] = uint8(px.Blue)
			s[3] = uint8(px.Alpha)
		}
	}
	return img
}
