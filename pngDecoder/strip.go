package pngDecoder

import (
	"bufio"
	"errors"
	"io"

	"pngscan/oops"
)

// StripAncillary copies a PNG from r to w keeping only critical chunks, and
// returns the types of the chunks it dropped. Every kept chunk is written
// with a freshly computed crc, so this also repairs bad checksums.
func StripAncillary(r io.Reader, w io.Writer) ([]string, error) {
	if err := CheckSignature(r); err != nil {
		return nil, err
	}
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(pngSignature); err != nil {
		return nil, err
	}

	chunks := NewChunkReader(bufio.NewReader(r))
	var dropped []string
	for {
		chunk, err := chunks.Next()
		if errors.Is(err, io.EOF) {
			return dropped, oops.New(ErrFraming, "stream ended without an IEND chunk")
		} else if err != nil {
			return dropped, err
		}

		if !chunk.Critical() {
			dropped = append(dropped, chunk.Name())
			continue
		}
		if err := WriteChunk(bw, chunk.Name(), chunk.Data); err != nil {
			return dropped, err
		}
		if chunk.Name() == chunkIEND {
			return dropped, bw.Flush()
		}
	}
}
