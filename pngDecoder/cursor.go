package pngDecoder

import (
	"encoding/binary"
	"io"
)

// cursor reads big-endian values sequentially and remembers how far into
// the stream it is, for error messages.
type cursor struct {
	r   io.Reader
	off int64
}

// readFull returns io.EOF only if nothing at all could be read, and
// io.ErrUnexpectedEOF on a partial read.
func (c *cursor) readFull(buf []byte) error {
	n, err := io.ReadFull(c.r, buf)
	c.off += int64(n)
	return err
}

func (c *cursor) readUint32() (uint32, error) {
	var buf [4]byte
	if err := c.readFull(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

// readPayload reads exactly n bytes. The buffer grows with the data actually
// read, so a bogus length can't force a huge allocation up front.
func (c *cursor) readPayload(n uint32) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}
	data, err := io.ReadAll(io.LimitReader(c.r, int64(n)))
	c.off += int64(len(data))
	if err != nil {
		return nil, err
	}
	if len(data) < int(n) {
		return nil, io.ErrUnexpectedEOF
	}
	return data, nil
}
