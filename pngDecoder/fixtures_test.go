package pngDecoder

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var quietLogger = zerolog.Nop()

func quietOptions() Options {
	return Options{Logger: &quietLogger}
}

type testChunk struct {
	name string
	data []byte
}

func buildPNG(t *testing.T, chunks ...testChunk) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.Write(pngSignature)
	for _, c := range chunks {
		require.NoError(t, WriteChunk(&buf, c.name, c.data))
	}
	return buf.Bytes()
}

func ihdrChunk(width, height uint32, bitDepth uint8, colorType ColorMode) testChunk {
	data := make([]byte, ihdrLength)
	binary.BigEndian.PutUint32(data[0:4], width)
	binary.BigEndian.PutUint32(data[4:8], height)
	data[8] = bitDepth
	data[9] = uint8(colorType)
	return testChunk{chunkIHDR, data}
}

func idatChunk(data []byte) testChunk {
	return testChunk{chunkIDAT, data}
}

func iendChunk() testChunk {
	return testChunk{chunkIEND, nil}
}

func zlibBytes(t *testing.T, raw []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write(raw)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// filterRow is the encoder side of the scanline filters: it turns
// reconstructed bytes back into what a PNG encoder would store.
func filterRow(f FilterType, previousLine, line []byte, bytesPerPixel int) []byte {
	out := make([]byte, len(line))
	for i := range line {
		var left, upperLeft int
		if i >= bytesPerPixel {
			left = int(line[i-bytesPerPixel])
			upperLeft = int(previousLine[i-bytesPerPixel])
		}
		above := int(previousLine[i])

		var predictor int
		switch f {
		case FilterSub:
			predictor = left
		case FilterUp:
			predictor = above
		case FilterAverage:
			predictor = (left + above) / 2
		case FilterPaeth:
			predictor = paethPredictor(left, above, upperLeft)
		}
		out[i] = line[i] - byte(predictor)
	}
	return out
}

// encodeScanlines filters each row of samples with the filter at the same
// index (cycling) and prefixes the filter type byte.
func encodeScanlines(rows [][]byte, filters []FilterType, bytesPerPixel int) []byte {
	var raw []byte
	previousLine := make([]byte, len(rows[0]))
	for y, row := range rows {
		f := filters[y%len(filters)]
		raw = append(raw, byte(f))
		raw = append(raw, filterRow(f, previousLine, row, bytesPerPixel)...)
		previousLine = row
	}
	return raw
}
