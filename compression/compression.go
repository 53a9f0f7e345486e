package compression

import (
	"bytes"
	"errors"
	"io"
	"sync"

	"pngscan/oops"

	"github.com/klauspost/compress/zlib"
)

var (
	ErrDecompressionFailed = errors.New("decompression failed")
	ErrOutputLimit         = errors.New("decompressed output exceeds limit")
)

// Inflater turns a zlib stream back into the bytes it was built from.
// sizeHint is the caller's estimate of the output length; implementations
// must still return the full output when the hint is too small.
type Inflater interface {
	Inflate(compressed []byte, sizeHint int) ([]byte, error)
}

// ZlibInflater is the default Inflater. A zero MaxOutput means no limit.
type ZlibInflater struct {
	MaxOutput int64
}

// DEFLATE cannot expand its input by more than about 1032:1, so a hint
// above that many bytes per compressed byte can never be met.
const maxDeflateRatio = 1032

var zlibReaderPool sync.Pool

func getZlibReader(r io.Reader) (io.ReadCloser, error) {
	if pooled, ok := zlibReaderPool.Get().(io.ReadCloser); ok {
		if err := pooled.(zlib.Resetter).Reset(r, nil); err != nil {
			zlibReaderPool.Put(pooled)
			return nil, err
		}
		return pooled, nil
	}
	return zlib.NewReader(r)
}

func (z ZlibInflater) Inflate(compressedData []byte, sizeHint int) ([]byte, error) {
	zlibReader, err := getZlibReader(bytes.NewReader(compressedData))
	if err != nil {
		return nil, oops.New(errors.Join(ErrDecompressionFailed, err), "opening zlib stream of %d bytes", len(compressedData))
	}
	defer func() {
		zlibReader.Close()
		zlibReaderPool.Put(zlibReader)
	}()

	var decompressedData bytes.Buffer
	if n := preallocSize(len(compressedData), sizeHint, z.MaxOutput); n > 0 {
		decompressedData.Grow(n)
	}

	var src io.Reader = zlibReader
	if z.MaxOutput > 0 {
		// One extra byte tells "exactly at the limit" apart from "over it".
		src = io.LimitReader(zlibReader, z.MaxOutput+1)
	}
	n, err := io.Copy(&decompressedData, src)
	if err != nil {
		return nil, oops.New(errors.Join(ErrDecompressionFailed, err), "inflating after %d bytes", n)
	}
	if z.MaxOutput > 0 && n > z.MaxOutput {
		return nil, oops.New(errors.Join(ErrDecompressionFailed, ErrOutputLimit), "inflated data is larger than %d bytes", z.MaxOutput)
	}
	return decompressedData.Bytes(), nil
}


// preallocSize is how much output buffer to reserve before inflating. The
// hint usually comes from untrusted header fields, so it is clamped to what
// the compressed data could possibly produce.
func preallocSize(compressedLen, sizeHint int, maxOutput int64) int {
	n := int64(sizeHint)
	if bound := int64(compressedLen) * maxDeflateRatio; n > bound {
		n = bound
	}
	if maxOutput > 0 && n > maxOutput {
		n = maxOutput
	}
	return int(n)
}
