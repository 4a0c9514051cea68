// Streaming record parser.
//
// A Reader is bound to one format for its lifetime. It owns one scratch
// slice per line role (header, sequence, separator, quality) plus a
// one-line lookahead used by FASTA, where the end of a record is only
// known once the next header has been read. The slices are truncated, not
// reallocated, between records; every RefRecord returned by Read aliases
// them and is invalidated by the next Read.
package fastx

import (
	"bufio"
	"fmt"
	"io"
)

// Reader parses FASTA or FASTQ records from a buffered byte stream.
//
// It is NOT safe to call Read from multiple goroutines. Independent inputs
// should use independent readers.
type Reader struct {
	format      Format
	compression Compression
	filename    string // error context only
	input       *bufio.Reader

	head []byte
	seq  []byte
	plus []byte
	qual []byte
	next []byte // FASTA: header line of the following record
}

// NewReader returns a reader for records of format f on r. r is read as
// is; use Detect or NewDynamicReader for compressed or unknown input.
func NewReader(r io.Reader, f Format) *Reader {
	return newReader(bufio.NewReaderSize(r, defaultReadBuffer), f, None)
}

func newReader(buf *bufio.Reader, f Format, c Compression) *Reader {
	return &Reader{
		format:      f,
		compression: c,
		input:       buf,
		head:        make([]byte, 0, 256),
		seq:         make([]byte, 0, 1024),
		plus:        make([]byte, 0, 16),
		qual:        make([]byte, 0, 1024),
		next:        make([]byte, 0, 256),
	}
}

// Format returns the record format the reader was built for.
func (r *Reader) Format() Format { return r.format }

// Compression returns the container the records were found in.
func (r *Reader) Compression() Compression { return r.compression }

// Filename returns the name set with SetFilename.
func (r *Reader) Filename() string { return r.filename }

// SetFilename records the source file name for error messages. It has no
// effect on parsing.
func (r *Reader) SetFilename(name string) { r.filename = name }

// Read returns the next record, or io.EOF once the stream is exhausted.
//
// The record aliases the reader's scratch buffers and is overwritten by the
// next call. Use ToOwned to keep it longer. Sequences are upper-cased.
func (r *Reader) Read() (RefRecord, error) {
	if r.format == FASTQ {
		return r.readFASTQ()
	}
	return r.readFASTA()
}

func (r *Reader) readFASTA() (RefRecord, error) {
	r.head = r.head[:0]
	r.seq = r.seq[:0]

	if len(r.next) > 0 {
		// Header stashed by the previous call.
		r.head = append(r.head, r.next...)
		r.next = r.next[:0]
	} else {
		var n int
		var err error
		r.head, n, err = appendLine(r.input, r.head)
		if err != nil {
			return RefRecord{}, r.ioError(err)
		}
		if n == 0 {
			return RefRecord{}, io.EOF
		}
	}
	if r.head[0] != '>' {
		return RefRecord{}, r.fail(ErrMissingHeader, "FASTA header line does not start with '>'")
	}

	for {
		var n int
		var err error
		r.next, n, err = appendLine(r.input, r.next[:0])
		if err != nil {
			return RefRecord{}, r.ioError(err)
		}
		if n == 0 {
			if len(r.seq) == 0 {
				return RefRecord{}, r.fail(ErrEmptySequence, "empty sequence in FASTA file")
			}
			break // last record of the stream
		}
		if r.next[0] == '>' {
			break // leave it for the next call
		}
		r.seq = append(r.seq, chomp(r.next)...)
		r.next = r.next[:0]
	}

	rec := MutRefRecord{head: chomp(r.head[1:]), seq: r.seq}
	rec.Upper()
	return rec.AsRef(), nil
}

func (r *Reader) readFASTQ() (RefRecord, error) {
	var n int
	var err error

	r.head, n, err = appendLine(r.input, r.head[:0])
	if err != nil {
		return RefRecord{}, r.ioError(err)
	}
	if n == 0 {
		return RefRecord{}, io.EOF
	}
	if r.head[0] != '@' {
		return RefRecord{}, r.fail(ErrMissingHeader, "FASTQ header line does not start with '@'")
	}

	// Four lines per record, so EOF from here on is truncation.
	r.seq, n, err = appendLine(r.input, r.seq[:0])
	if err != nil {
		return RefRecord{}, r.ioError(err)
	}
	if n == 0 {
		return RefRecord{}, r.fail(ErrMissingSequence, "FASTQ sequence line missing")
	}

	r.plus, n, err = appendLine(r.input, r.plus[:0])
	if err != nil {
		return RefRecord{}, r.ioError(err)
	}
	if n == 0 {
		return RefRecord{}, r.fail(ErrMissingSeparator, "FASTQ + line missing")
	}

	r.qual, n, err = appendLine(r.input, r.qual[:0])
	if err != nil {
		return RefRecord{}, r.ioError(err)
	}
	if n == 0 {
		return RefRecord{}, r.fail(ErrMissingQuality, "FASTQ quality line missing")
	}

	seq := chomp(r.seq)
	qual := chomp(r.qual)
	if len(qual) != len(seq) {
		msg := fmt.Sprintf("FASTQ quality line has different length than sequence line (%d vs %d)", len(qual), len(seq))
		return RefRecord{}, r.fail(ErrLengthMismatch, msg)
	}

	rec := MutRefRecord{head: chomp(r.head[1:]), seq: seq, qual: qual}
	rec.Upper()
	return rec.AsRef(), nil
}

// ReadDB drains the reader into a new SeqDB. On failure the records read
// so far are returned alongside the error.
func (r *Reader) ReadDB() (*SeqDB, error) {
	return Collect(r, r.format == FASTQ)
}

// ReadDBRevComp drains the reader into two stores: the records as read,
// and their reverse complements in the same order.
func (r *Reader) ReadDBRevComp() (fwd, rc *SeqDB, err error) {
	return collectRevComp(r, r.format == FASTQ)
}

func (r *Reader) fail(err error, msg string) *ParseError {
	return &ParseError{Filename: r.filename, Format: r.format, Msg: msg, Err: err}
}

func (r *Reader) ioError(err error) *ParseError {
	return &ParseError{Filename: r.filename, Format: r.format, Err: err}
}
