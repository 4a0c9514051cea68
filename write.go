// Record writer.
//
// Writer emits records in FASTA or FASTQ framing, optionally through a gzip
// or zstd encoder. It accepts any Record, so borrowed records from a Reader
// or a SeqDB can be written without copying them first.
package fastx

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Writer writes records to an underlying io.Writer.
//
// Columns wraps FASTA sequence lines at the given width. Zero, the default,
// writes each sequence on one line. FASTQ is never wrapped.
type Writer struct {
	Columns int

	format  Format
	out     *bufio.Writer
	closers []func() error
}

// NewWriter returns an uncompressed writer of format f on w. Buffering is
// done internally.
func NewWriter(w io.Writer, f Format) *Writer {
	wr, _ := newWriter(w, f, None)
	return wr
}

// NewCompressedWriter is like NewWriter but encodes the output with c.
func NewCompressedWriter(w io.Writer, f Format, c Compression) (*Writer, error) {
	return newWriter(w, f, c)
}

func newWriter(w io.Writer, f Format, c Compression) (*Writer, error) {
	enc, err := compressor(w, c)
	if err != nil {
		return nil, err
	}
	return &Writer{
		format:  f,
		out:     bufio.NewWriterSize(enc, defaultReadBuffer),
		closers: []func() error{enc.Close},
	}, nil
}

// Create creates the file at path. Format and compression are taken from
// the file name; an unknown extension wraps ErrConfig.
func Create(path string) (*Writer, error) {
	f, c, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w, err := newWriter(file, f, c)
	if err != nil {
		file.Close()
		return nil, err
	}
	w.closers = append(w.closers, file.Close)
	return w, nil
}

// Stdout returns a writer on standard output. Closing it does not close
// os.Stdout.
func Stdout(f Format, c Compression) (*Writer, error) {
	return newWriter(os.Stdout, f, c)
}

// Format returns the output format.
func (w *Writer) Format() Format {
	return w.format
}

// Write writes one record. Writing a record without quality values, or
// with a quality shorter or longer than its sequence, as FASTQ wraps
// ErrConfig. An empty FASTA sequence is written as one empty line whatever
// Columns is set to.
func (w *Writer) Write(rec Record) error {
	switch w.format {
	case FASTQ:
		qual := rec.Qual()
		if qual == nil {
			return fmt.Errorf("%w: FASTQ output needs quality values", ErrConfig)
		}
		if len(qual) != len(rec.Seq()) {
			return fmt.Errorf("%w: quality length %d differs from sequence length %d", ErrConfig, len(qual), len(rec.Seq()))
		}
		w.out.WriteByte('@')
		w.out.Write(rec.Head())
		w.out.WriteByte('\n')
		w.out.Write(rec.Seq())
		w.out.WriteString("\n+\n")
		w.out.Write(qual)
		return w.out.WriteByte('\n')
	default:
		w.out.WriteByte('>')
		w.out.Write(rec.Head())
		w.out.WriteByte('\n')
		seq := rec.Seq()
		if w.Columns <= 0 || len(seq) == 0 {
			w.out.Write(seq)
			return w.out.WriteByte('\n')
		}
		for len(seq) > 0 {
			n := min(w.Columns, len(seq))
			w.out.Write(seq[:n])
			w.out.WriteByte('\n')
			seq = seq[n:]
		}
		// bufio.Writer keeps the first error; it surfaces on the next write or Flush.
		_, err := w.out.Write(nil)
		return err
	}
}

// WriteAll copies every record of src and flushes.
func (w *Writer) WriteAll(src RecordReader) error {
	for {
		rec, err := src.Read()
		if err == io.EOF {
			return w.Flush()
		}
		if err != nil {
			return err
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
}

// Flush writes buffered records to the encoder. Compressed output is only
// complete after Close.
func (w *Writer) Flush() error {
	return w.out.Flush()
}

// Close flushes, finishes the encoder and closes the file opened by
// Create.
func (w *Writer) Close() error {
	err := w.Flush()
	for _, c := range w.closers {
		if cerr := c(); cerr != nil && err == nil {
			err = cerr
		}
	}
	w.closers = nil
	return err
}
