// Package fastx reads and writes FASTA and FASTQ sequence files.
//
// Input may be plain, gzip or zstd compressed; the format and compression
// are sniffed from the first bytes of the stream. Two consumption modes are
// offered. Reader is a streaming parser that hands out one borrowed record
// per call and reuses its internal buffers, so reading allocates nothing
// once the buffers have grown to the longest record. SeqDB is an in-memory
// columnar store built by draining a reader, giving O(1) indexed access.
// RevCompReader interleaves any record stream with its reverse complement
// using a single scratch record.
package fastx

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic handling. Callers can use errors.Is to
// distinguish caller mistakes (ErrConfig, ErrIndex, ErrInvalidPattern) from
// bad input (ErrCorruptInput, ErrFormat, ErrCorruptSnapshot).
var (
	ErrConfig          = errors.New("configuration error")
	ErrCorruptInput    = errors.New("corrupt input")
	ErrFormat          = errors.New("format violation")
	ErrIndex           = errors.New("index out of range")
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
	ErrInvalidPattern  = errors.New("invalid search pattern")
)

// Streaming violations. Each wraps ErrFormat.
var (
	ErrEmptySequence    = fmt.Errorf("%w: empty sequence", ErrFormat)
	ErrMissingHeader    = fmt.Errorf("%w: header marker missing", ErrFormat)
	ErrMissingSequence  = fmt.Errorf("%w: sequence line missing", ErrFormat)
	ErrMissingSeparator = fmt.Errorf("%w: separator line missing", ErrFormat)
	ErrMissingQuality   = fmt.Errorf("%w: quality line missing", ErrFormat)
	ErrLengthMismatch   = fmt.Errorf("%w: quality length differs from sequence length", ErrFormat)
)

// ParseError is returned by every failing read. Err is either one of the
// streaming sentinels above or the error of the underlying byte source.
type ParseError struct {
	Filename string // empty when reading stdin or an in-memory source
	Format   Format
	Msg      string
	Err      error
}

func (e *ParseError) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Filename != "" {
		return fmt.Sprintf("parsing %s from file %s: %s", e.Format, e.Filename, msg)
	}
	return fmt.Sprintf("parsing %s: %s", e.Format, msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IndexError reports an out-of-range SeqDB access.
type IndexError struct {
	Index int
	Count int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range for store of %d records", e.Index, e.Count)
}

func (e *IndexError) Unwrap() error {
	return ErrIndex
}
