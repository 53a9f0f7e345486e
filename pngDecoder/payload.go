package pngDecoder

import "bytes"

// payload collects IDAT data. The zlib stream may be split across any
// number of IDAT chunks and only makes sense once they are joined in order.
type payload struct {
	buf    bytes.Buffer
	chunks int
}

func (p *payload) append(data []byte) {
	p.buf.Write(data)
	p.chunks++
}

func (p *payload) bytes() []byte {
	return p.buf.Bytes()
}

func (p *payload) len() int {
	return p.buf.Len()
}
