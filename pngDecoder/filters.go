package pngDecoder

import "pngscan/oops"

type FilterType byte

const (
	FilterNone FilterType = iota
	FilterSub
	FilterUp
	FilterAverage
	FilterPaeth
)

func (f FilterType) String() string {
	switch f {
	case FilterNone:
		return "None"
	case FilterSub:
		return "Sub"
	case FilterUp:
		return "Up"
	case FilterAverage:
		return "Average"
	case FilterPaeth:
		return "Paeth"
	}
	return "Unknown"
}

// All of these work in place on a row's sample bytes (the filter type byte
// already stripped). prev is the previous reconstructed row, all zeroes for
// the first row, and always as long as scanline.

func processSubFilter(scanline []byte, bytesPerPixel int) {
	for i := bytesPerPixel; i < len(scanline); i++ {
		scanline[i] += scanline[i-bytesPerPixel]
	}
}

func processUpFilter(previousLine, scanline []byte) {
	for i := range scanline {
		scanline[i] += previousLine[i]
	}
}

func processAvgFilter(previousLine, scanline []byte, bytesPerPixel int) {
	for i := range scanline {
		var left int
		if i >= bytesPerPixel {
			left = int(scanline[i-bytesPerPixel])
		}
		above := int(previousLine[i])
		scanline[i] += byte((left + above) / 2)
	}
}

func processPaethFilter(previousLine, scanline []byte, bytesPerPixel int) {
	for i := range scanline {
		var left, upperLeft int
		if i >= bytesPerPixel {
			left = int(scanline[i-bytesPerPixel])
			upperLeft = int(previousLine[i-bytesPerPixel])
		}
		above := int(previousLine[i])
		scanline[i] += byte(paethPredictor(left, above, upperLeft))
	}
}

// unfilterRow reverses filter f on scanline in place.
func unfilterRow(f FilterType, previousLine, scanline []byte, bytesPerPixel int) error {
	switch f {
	case FilterNone:
	case FilterSub:
		processSubFilter(scanline, bytesPerPixel)
	case FilterUp:
		processUpFilter(previousLine, scanline)
	case FilterAverage:
		processAvgFilter(previousLine, scanline, bytesPerPixel)
	case FilterPaeth:
		processPaethFilter(previousLine, scanline, bytesPerPixel)
	default:
		return oops.New(ErrUnknownFilter, "filter type %d", byte(f))
	}
	return nil
}
