// Format and compression detection.
//
// Stream detection peeks at the leading bytes through a bufio.Reader and
// never consumes them. When a compression magic is found the decompressed
// stream is wrapped in a fresh bufio.Reader and peeked again to pick the
// record format. Path detection only looks at the file name and exists for
// choosing an output format.
package fastx

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Format is the record framing of a stream.
type Format int

const (
	FASTA Format = iota // '>' header followed by one or more sequence lines
	FASTQ               // '@' header, sequence, '+' separator, quality
)

func (f Format) String() string {
	switch f {
	case FASTA:
		return "FASTA"
	case FASTQ:
		return "FASTQ"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Compression is the container wrapping the record bytes.
type Compression int

const (
	None Compression = iota
	Gzip
	Zstd
)

func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("Compression(%d)", int(c))
	}
}

// Gzipped reports whether c is gzip.
func (c Compression) Gzipped() bool {
	return c == Gzip
}

// Magic numbers.
var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Known file extensions, matched after the compression suffix is removed.
var (
	fastaExtensions = []string{".fasta", ".fna", ".ffn", ".faa", ".frn", ".fa"}
	fastqExtensions = []string{".fastq", ".fq"}
)

// Stream is a detected input: the buffered, already decompressed bytes
// together with the format and compression that were found. Nothing has
// been consumed from Buf.
type Stream struct {
	Buf         *bufio.Reader
	Format      Format
	Compression Compression
	closers     []func() error
}

// Close releases the decompressor, if any. It does not close the source
// passed to Detect.
func (s *Stream) Close() error {
	var err error
	for _, c := range s.closers {
		if cerr := c(); cerr != nil && err == nil {
			err = cerr
		}
	}
	s.closers = nil
	return err
}

// Detect sniffs the format and compression of r using the default read
// buffer size.
func Detect(r io.Reader) (*Stream, error) {
	return detect(r, defaultReadBuffer)
}

func detect(r io.Reader, size int) (*Stream, error) {
	buf := bufio.NewReaderSize(r, size)
	head, err := peek(buf, len(zstdMagic))
	if err != nil {
		return nil, err
	}

	s := &Stream{Buf: buf}
	switch {
	case len(head) >= 2 && bytes.HasPrefix(head, gzipMagic):
		dec, err := newGzipReader(buf)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptInput, err)
		}
		s.Compression = Gzip
		s.closers = append(s.closers, dec.Close)
		s.Buf = bufio.NewReaderSize(dec, size)
	case bytes.HasPrefix(head, zstdMagic):
		dec, err := newZstdReader(buf)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptInput, err)
		}
		s.Compression = Zstd
		s.closers = append(s.closers, func() error { dec.Close(); return nil })
		s.Buf = bufio.NewReaderSize(dec, size)
	}

	if s.Compression != None {
		head, err = peek(s.Buf, 2)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("%w: %w", ErrCorruptInput, err)
		}
	}
	// One byte is not enough to tell the framing apart from a truncated stream.
	if len(head) == 1 {
		s.Close()
		return nil, fmt.Errorf("%w: stream holds a single byte", ErrCorruptInput)
	}

	f, err := leading(head)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.Format = f
	return s, nil
}

// peek returns up to n leading bytes. A short stream is not an error.
func peek(buf *bufio.Reader, n int) ([]byte, error) {
	head, err := buf.Peek(n)
	if err != nil && err != io.EOF {
		return nil, err
	}
	return head, nil
}

// leading picks the format from the first byte. Empty input is FASTA.
func leading(head []byte) (Format, error) {
	if len(head) == 0 {
		return FASTA, nil
	}
	switch head[0] {
	case '>':
		return FASTA, nil
	case '@':
		return FASTQ, nil
	default:
		return FASTA, fmt.Errorf("%w: stream does not start with '>' or '@'", ErrCorruptInput)
	}
}

// FormatFromPath classifies a file name by its extension. A trailing .gz or
// .zst marks compression and is removed before matching. An unknown
// extension is a caller mistake and wraps ErrConfig.
func FormatFromPath(path string) (Format, Compression, error) {
	name := path
	c := None
	switch {
	case strings.HasSuffix(name, ".gz"):
		c = Gzip
		name = strings.TrimSuffix(name, ".gz")
	case strings.HasSuffix(name, ".zst"):
		c = Zstd
		name = strings.TrimSuffix(name, ".zst")
	}
	for _, ext := range fastaExtensions {
		if strings.HasSuffix(name, ext) {
			return FASTA, c, nil
		}
	}
	for _, ext := range fastqExtensions {
		if strings.HasSuffix(name, ext) {
			return FASTQ, c, nil
		}
	}
	return FASTA, None, fmt.Errorf("%w: unknown file extension: %s", ErrConfig, path)
}

// MustFormatFromPath is like FormatFromPath but panics on an unknown
// extension. Intended for file names fixed at setup time.
func MustFormatFromPath(path string) (Format, Compression) {
	f, c, err := FormatFromPath(path)
	if err != nil {
		panic(err)
	}
	return f, c
}
