package pngDecoder

import (
	"bytes"
	"errors"
	"image"
	"io"

	"pngscan/compression"
	"pngscan/logging"
	"pngscan/oops"
	"pngscan/perf"

	"github.com/rs/zerolog"
)

// Options are optional policies on top of a plain decode. The zero value
// decodes without checking CRCs and without size limits.
type Options struct {
	VerifyChecksums bool

	// Zero means unlimited.
	MaxWidth  uint32
	MaxHeight uint32

	// Defaults to compression.ZlibInflater{}.
	Inflater compression.Inflater
	// Defaults to the global logger.
	Logger *zerolog.Logger
	// If set, receives one block per decode stage.
	Perf *perf.DecodePerf
}

// Result is what Decode produces. When decoding fails after the IHDR chunk
// has been read, Header is still set so it can be reported, but Pixels is
// nil.
type Result struct {
	Header *IHDR
	Pixels PixelGrid
	// Types of the chunks that were read but not interpreted, in stream order.
	Skipped []string
}

// Image returns the pixels as an image.Image, or nil if decoding failed.
// See PixelGrid.Image.
func (r *Result) Image() image.Image {
	if r.Header == nil || r.Pixels == nil {
		return nil
	}
	return r.Pixels.Image(r.Header.BitDepth)
}

type PngDecoder struct {
	chunks   *ChunkReader
	opts     Options
	logger   *zerolog.Logger
	finished bool
}

// NewDecoder reads and checks the 8-byte PNG signature. No chunk is read
// until Decode is called.
func NewDecoder(r io.Reader, opts Options) (*PngDecoder, error) {
	if err := CheckSignature(r); err != nil {
		return nil, err
	}

	if opts.Inflater == nil {
		opts.Inflater = compression.ZlibInflater{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.GlobalLogger()
	}

	chunks := NewChunkReader(r)
	chunks.VerifyChecksums = opts.VerifyChecksums

	return &PngDecoder{
		chunks: chunks,
		opts:   opts,
		logger: logger,
	}, nil
}

// CheckSignature consumes exactly the 8 signature bytes from r.
func CheckSignature(r io.Reader) error {
	signature := make([]byte, len(pngSignature))
	if _, err := io.ReadFull(r, signature); err != nil {
		return oops.New(errors.Join(ErrBadSignature, err), "reading signature")
	}
	if !isPNG(signature) {
		return oops.New(ErrBadSignature, "signature is % x", signature)
	}
	return nil
}

func (pd *PngDecoder) startBlock(description string) {
	if pd.opts.Perf != nil {
		pd.opts.Perf.StartBlock("DECODE", description)
	}
}

func (pd *PngDecoder) endBlock() {
	if pd.opts.Perf != nil {
		pd.opts.Perf.EndBlock()
	}
}

// readChunks runs the chunk loop up to and including IEND, returning the
// header, the concatenated IDAT payload and the names of skipped chunks.
func (pd *PngDecoder) readChunks() (*IHDR, *payload, []string, error) {
	pd.startBlock("Reading chunks")
	defer pd.endBlock()

	var ihdr *IHDR
	var data payload
	var skipped []string
	for {
		chunk, err := pd.chunks.Next()
		if errors.Is(err, io.EOF) {
			return ihdr, nil, nil, oops.New(ErrFraming, "stream ended after %d bytes without an IEND chunk", pd.chunks.Offset())
		} else if err != nil {
			return ihdr, nil, nil, err
		}

		switch chunk.Name() {
		case chunkIHDR:
			if ihdr != nil {
				pd.logger.Warn().Int64("offset", pd.chunks.Offset()).Msg("ignoring repeated IHDR chunk")
				continue
			}
			ihdr, err = ParseIHDR(chunk.Data)
			if err != nil {
				return nil, nil, nil, err
			}
			pd.logger.Debug().Stringer("header", ihdr).Msg("read IHDR")
			if pd.opts.Perf != nil {
				pd.opts.Perf.Checkpoint("DECODE", "Parsed IHDR")
			}
			if (pd.opts.MaxWidth != 0 && ihdr.Width > pd.opts.MaxWidth) || (pd.opts.MaxHeight != 0 && ihdr.Height > pd.opts.MaxHeight) {
				return ihdr, nil, nil, badImageData(ErrImageTooLarge, "%dx%d exceeds %dx%d", ihdr.Width, ihdr.Height, pd.opts.MaxWidth, pd.opts.MaxHeight)
			}
		case chunkIDAT:
			if ihdr == nil {
				return nil, nil, nil, oops.New(ErrMissingHeader, "IDAT chunk before IHDR")
			}
			data.append(chunk.Data)
		case chunkIEND:
			if chunk.Length != 0 {
				return ihdr, nil, nil, oops.New(ErrFraming, "IEND chunk carries %d bytes", chunk.Length)
			}
			if ihdr == nil {
				return nil, nil, nil, oops.New(ErrMissingHeader, "reached IEND without an IHDR chunk")
			}
			return ihdr, &data, skipped, nil
		default:
			pd.logger.Debug().
				Str("chunk", chunk.Name()).
				Uint32("length", chunk.Length).
				Bool("critical", chunk.Critical()).
				Msg("skipping chunk")
			skipped = append(skipped, chunk.Name())
		}
	}
}

// Decode reads the rest of the stream and reconstructs the image. A decoder
// can only be used once.
func (pd *PngDecoder) Decode() (*Result, error) {
	if pd.finished {
		return nil, oops.New(nil, "png decoder already used")
	}
	pd.finished = true

	ihdr, data, skipped, err := pd.readChunks()
	if err != nil {
		if errors.Is(err, ErrImageTooLarge) {
			return &Result{Header: ihdr}, err
		}
		return nil, err
	}
	res := &Result{Header: ihdr, Skipped: skipped}

	layout, err := newScanlineLayout(ihdr)
	if err != nil {
		return res, err
	}
	if ihdr.BitDepth == 16 {
		pd.logger.Warn().Uint8("bitDepth", ihdr.BitDepth).Msg("16-bit images are decoded on a best-effort basis")
	}
	if layout.width == 0 || layout.height == 0 {
		res.Pixels = PixelGrid{}
		return res, nil
	}

	sizeHint, ok := layout.rawSize()
	if !ok {
		return res, badImageData(ErrImageTooLarge, "%dx%d does not fit in memory", ihdr.Width, ihdr.Height)
	}

	pd.startBlock("Inflating")
	raw, err := pd.opts.Inflater.Inflate(data.bytes(), sizeHint)
	pd.endBlock()
	if err != nil {
		return res, badImageData(err, "inflating %d bytes from %d IDAT chunks", data.len(), data.chunks)
	}

	pd.startBlock("Reconstructing scanlines")
	pixels, err := layout.reconstruct(raw)
	pd.endBlock()
	if err != nil {
		return res, err
	}

	res.Pixels = pixels
	return res, nil
}

// Decode decodes a PNG stream with default options.
func Decode(r io.Reader) (*IHDR, PixelGrid, error) {
	pd, err := NewDecoder(r, Options{})
	if err != nil {
		return nil, nil, err
	}
	res, err := pd.Decode()
	if res == nil {
		return nil, nil, err
	}
	return res.Header, res.Pixels, err
}

// DecodeBytes decodes an in-memory PNG.
func DecodeBytes(data []byte, opts Options) (*Result, error) {
	pd, err := NewDecoder(bytes.NewReader(data), opts)
	if err != nil {
		return nil, err
	}
	return pd.Decode()
}
