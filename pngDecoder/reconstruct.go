package pngDecoder

import "math"

// scanlineLayout describes how one row of raw pixel data is laid out for a
// given header. It is computed once per decode.
type scanlineLayout struct {
	width         int
	height        int
	channels      int
	bytesPerPixel int
	sampleBytes   int
	pack          packFunc
}

func newScanlineLayout(ihdr *IHDR) (*scanlineLayout, error) {
	if ihdr.CompressionMethod != 0 || ihdr.FilterMethod != 0 {
		return nil, badImageData(ErrUnsupportedMethod, "compression method %d, filter method %d", ihdr.CompressionMethod, ihdr.FilterMethod)
	}
	if ihdr.InterlaceMethod != 0 {
		return nil, badImageData(ErrUnsupportedInterlace, "interlace method %d", ihdr.InterlaceMethod)
	}

	var channels int
	switch ihdr.ColorType {
	case ColorUsed:
		channels = 3
	case ColorUsed | ColorAlphaUsed:
		channels = 4
	default:
		return nil, badImageData(ErrUnsupportedColorMode, "color type %d (%s)", uint8(ihdr.ColorType), ihdr.ColorType)
	}

	pack, ok := packers[packKey{ihdr.ColorType, ihdr.BitDepth}]
	if !ok {
		return nil, badImageData(ErrUnsupportedBitDepth, "%d-bit %s", ihdr.BitDepth, ihdr.ColorType)
	}
	bytesPerPixel := channels * int(ihdr.BitDepth/8)

	if uint64(ihdr.Width) > uint64(math.MaxInt32)/uint64(bytesPerPixel) || uint64(ihdr.Height) > math.MaxInt32 {
		return nil, badImageData(ErrImageTooLarge, "%dx%d", ihdr.Width, ihdr.Height)
	}

	return &scanlineLayout{
		width:         int(ihdr.Width),
		height:        int(ihdr.Height),
		channels:      channels,
		bytesPerPixel: bytesPerPixel,
		sampleBytes:   int(ihdr.Width) * bytesPerPixel,
		pack:          pack,
	}, nil
}

// rawSize is the exact number of inflated bytes the image needs: one filter
// byte plus the samples, per row. ok is false if that doesn't fit in an int.
func (l *scanlineLayout) rawSize() (size int, ok bool) {
	rowLen := uint64(1 + l.sampleBytes)
	total := rowLen * uint64(l.height)
	if l.height != 0 && total/uint64(l.height) != rowLen || total > math.MaxInt {
		return 0, false
	}
	return int(total), true
}

// reconstructRow unfilters one scanline (filter byte included) in place and
// returns its sample bytes, which become previousLine for the next row.
func (l *scanlineLayout) reconstructRow(scanline, previousLine []byte) ([]byte, error) {
	filter := FilterType(scanline[0])
	samples := scanline[1 : 1+l.sampleBytes]
	if err := unfilterRow(filter, previousLine, samples, l.bytesPerPixel); err != nil {
		return nil, err
	}
	return samples, nil
}

// reconstruct turns the inflated data into pixels. raw is modified in place.
// Images with a zero dimension give an empty grid.
func (l *scanlineLayout) reconstruct(raw []byte) (PixelGrid, error) {
	if l.width == 0 || l.height == 0 {
		return PixelGrid{}, nil
	}

	rowLen := 1 + l.sampleBytes
	if size, ok := l.rawSize(); !ok || len(raw) < size {
		y := len(raw) / rowLen
		return nil, badImageData(ErrCorruptedScanline, "row %d needs %d bytes, %d left", y, rowLen, len(raw)-y*rowLen)
	}

	grid := newPixelGrid(l.width, l.height)
	previousLine := make([]byte, l.sampleBytes)
	for y := 0; y < l.height; y++ {
		start := y * rowLen
		samples, err := l.reconstructRow(raw[start:start+rowLen], previousLine)
		if err != nil {
			return nil, badImageData(err, "row %d", y)
		}
		l.pack(samples, grid[y])
		previousLine = samples
	}
	return grid, nil
}
