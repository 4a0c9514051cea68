// Source-independent reader.
//
// DynamicReader gives callers one reader type whatever the input is: a
// plain or compressed file, standard input, or any io.Reader. The source is
// sniffed once at construction and the matching parser is held behind the
// producer interface; every call is forwarded through it.
package fastx

import (
	"fmt"
	"io"
	"os"
)

// producer is what DynamicReader needs from a parser.
type producer interface {
	RecordReader
	ReadDB() (*SeqDB, error)
	ReadDBRevComp() (fwd, rc *SeqDB, err error)
	Format() Format
	Compression() Compression
	SetFilename(name string)
}

var _ producer = (*Reader)(nil)

// DynamicReader reads records from a sniffed source.
type DynamicReader struct {
	stream  producer
	closers []func() error
}

// Open opens the file at path, detects its format and compression from
// its content, and returns a reader over it. The path is attached to every
// parse error.
func Open(path string, config Config) (*DynamicReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	d, err := newDynamic(f, config)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	d.stream.SetFilename(path)
	d.closers = append(d.closers, f.Close)
	return d, nil
}

// OpenStdin returns a reader over standard input. Closing it does not close
// os.Stdin.
func OpenStdin(config Config) (*DynamicReader, error) {
	return newDynamic(os.Stdin, config)
}

// NewDynamicReader returns a reader over r. Closing it does not close r.
func NewDynamicReader(r io.Reader, config Config) (*DynamicReader, error) {
	return newDynamic(r, config)
}

func newDynamic(r io.Reader, config Config) (*DynamicReader, error) {
	config = config.withDefaults()
	s, err := detect(r, config.ReadBuffer)
	if err != nil {
		return nil, err
	}
	return &DynamicReader{
		stream:  newReader(s.Buf, s.Format, s.Compression),
		closers: []func() error{s.Close},
	}, nil
}

// Read returns the next record, or io.EOF. See Reader.Read for how long
// the record stays valid.
func (d *DynamicReader) Read() (RefRecord, error) {
	return d.stream.Read()
}

// ReadDB drains the remaining records into a new SeqDB.
func (d *DynamicReader) ReadDB() (*SeqDB, error) {
	return d.stream.ReadDB()
}

// ReadDBRevComp drains the remaining records into a forward store and a
// reverse complement store.
func (d *DynamicReader) ReadDBRevComp() (fwd, rc *SeqDB, err error) {
	return d.stream.ReadDBRevComp()
}

// Format returns the detected record format.
func (d *DynamicReader) Format() Format {
	return d.stream.Format()
}

// Compression returns the detected compression.
func (d *DynamicReader) Compression() Compression {
	return d.stream.Compression()
}

// Close releases the decompressor and, for Open, the file. The first error
// is returned.
func (d *DynamicReader) Close() error {
	var err error
	for _, c := range d.closers {
		if cerr := c(); cerr != nil && err == nil {
			err = cerr
		}
	}
	d.closers = nil
	return err
}
