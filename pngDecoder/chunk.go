package pngDecoder

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
	"io"

	"pngscan/oops"
)

const (
	chunkIHDR = "IHDR"
	chunkIDAT = "IDAT"
	chunkIEND = "IEND"

	maxChunkLength = 1<<31 - 1
)

type Chunk struct {
	Length uint32
	Type   [4]byte
	Data   []byte
	CRC    uint32
}

func (c *Chunk) Name() string {
	return string(c.Type[:])
}

// Critical reports whether a decoder has to understand the chunk to show the
// image, which PNG encodes as an upper-case first letter.
func (c *Chunk) Critical() bool {
	return c.Type[0] >= 'A' && c.Type[0] <= 'Z'
}

func (c *Chunk) computeCRC() uint32 {
	crc := crc32.NewIEEE()
	crc.Write(c.Type[:])
	crc.Write(c.Data)
	return crc.Sum32()
}

// ChunkReader splits a PNG stream, positioned just past the signature, into
// chunks.
type ChunkReader struct {
	cur             cursor
	VerifyChecksums bool
}

func NewChunkReader(r io.Reader) *ChunkReader {
	return &ChunkReader{cur: cursor{r: r}}
}

// Offset is the number of bytes consumed so far.
func (cr *ChunkReader) Offset() int64 {
	return cr.cur.off
}

// Next returns io.EOF when the stream ends cleanly between chunks. Any
// other short read is an ErrFraming error.
func (cr *ChunkReader) Next() (*Chunk, error) {
	start := cr.cur.off

	length, err := cr.cur.readUint32()
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	} else if err != nil {
		return nil, framingError(err, "reading chunk length at offset %d", start)
	}
	if length > maxChunkLength {
		return nil, oops.New(ErrFraming, "chunk at offset %d declares length %d", start, length)
	}

	chunk := &Chunk{Length: length}
	if err := cr.cur.readFull(chunk.Type[:]); err != nil {
		return nil, framingError(err, "reading chunk type at offset %d", start)
	}

	chunk.Data, err = cr.cur.readPayload(length)
	if err != nil {
		return nil, framingError(err, "reading %d bytes of %s data at offset %d", length, chunk.Name(), start)
	}

	chunk.CRC, err = cr.cur.readUint32()
	if err != nil {
		return nil, framingError(err, "reading %s crc at offset %d", chunk.Name(), start)
	}

	if cr.VerifyChecksums {
		if computed := chunk.computeCRC(); computed != chunk.CRC {
			return nil, oops.New(ErrChecksum, "%s chunk at offset %d: stored %08x, computed %08x", chunk.Name(), start, chunk.CRC, computed)
		}
	}

	return chunk, nil
}

func framingError(err error, format string, args ...interface{}) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return oops.New(errors.Join(ErrFraming, err), format, args...)
}

// WriteChunk writes a complete chunk, computing its crc. It is the inverse of
// (*ChunkReader).Next.
func WriteChunk(w io.Writer, name string, data []byte) error {
	if len(name) != 4 {
		return oops.New(nil, "chunk type %q is not 4 bytes", name)
	}
	chunk := Chunk{Length: uint32(len(data)), Data: data}
	copy(chunk.Type[:], name)

	var head [8]byte
	binary.BigEndian.PutUint32(head[:4], chunk.Length)
	copy(head[4:], chunk.Type[:])
	var tail [4]byte
	binary.BigEndian.PutUint32(tail[:], chunk.computeCRC())

	for _, part := range [][]byte{head[:], data, tail[:]} {
		if _, err := w.Write(part); err != nil {
			return err
		}
	}
	return nil
}
