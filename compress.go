// Compressed containers for sequence streams.
//
// gzip is the common case: sequencing pipelines emit .fastq.gz, often as
// several concatenated members. The klauspost gzip reader reads multistream
// input by default, so concatenated members decode as one logical stream.
// zstd is accepted on the same terms.
//
// Output uses the fastest levels. Sequence files are written once and read
// many times by downstream tools that decompress anyway, so the write path
// favours throughput over ratio.
package fastx

import (
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

func newGzipReader(r io.Reader) (*gzip.Reader, error) {
	dec, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	dec.Multistream(true)
	return dec, nil
}

// Concurrency 1 keeps decoding on the calling goroutine; reads stay
// synchronous like the rest of the reader.
func newZstdReader(r io.Reader) (*zstd.Decoder, error) {
	return zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
}

// compressor wraps w in the encoder for c. Closing the result flushes the
// encoder but never closes w.
func compressor(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case Gzip:
		return gzip.NewWriterLevel(w, gzip.BestSpeed)
	case Zstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	default:
		return nopCloser{w}, nil
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
