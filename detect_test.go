// Detection tests.
//
// Detect decides how every byte after it is interpreted, so a wrong answer
// here turns valid input into a stream of parse errors. The stream variant
// must also leave the peeked bytes in place for the parser.
package fastx

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		f    Format
		c    Compression
	}{
		{"aa.fna", FASTA, None},
		{"aa.fq", FASTQ, None},
		{"bbb.fna.gz", FASTA, Gzip},
		{"cc.fna.gz", FASTA, Gzip},
		{".fna.gz", FASTA, Gzip},
		{".fasta", FASTA, None},
		{".fq", FASTQ, None},
		{"x.ffn", FASTA, None},
		{"x.faa", FASTA, None},
		{"x.frn", FASTA, None},
		{"x.fa", FASTA, None},
		{"dir/reads.fastq.gz", FASTQ, Gzip},
		{"reads.fastq.zst", FASTQ, Zstd},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			f, c, err := FormatFromPath(tt.path)
			if err != nil {
				t.Fatalf("FormatFromPath: %v", err)
			}
			if f != tt.f || c != tt.c {
				t.Errorf("FormatFromPath(%q) = (%v, %v), want (%v, %v)", tt.path, f, c, tt.f, tt.c)
			}
		})
	}
}

// TestFormatFromPathUnknown verifies unknown extensions are a
// configuration error, including a bare .gz with nothing before it.
func TestFormatFromPathUnknown(t *testing.T) {
	for _, path := range []string{"reads.txt", "reads.gz", "reads", "reads.fq.bz2"} {
		_, _, err := FormatFromPath(path)
		if !errors.Is(err, ErrConfig) {
			t.Errorf("FormatFromPath(%q) error = %v, want ErrConfig", path, err)
		}
	}
}

func TestMustFormatFromPathPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustFormatFromPath did not panic on an unknown extension")
		}
	}()
	MustFormatFromPath("reads.txt")
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		f     Format
		c     Compression
	}{
		{"fasta", []byte(">r\nACGT\n"), FASTA, None},
		{"fastq", []byte("@r\nACGT\n+\nIIII\n"), FASTQ, None},
		{"empty", nil, FASTA, None},
		{"gzip fasta", gzipBytes(t, ">r\nACGT\n"), FASTA, Gzip},
		{"gzip fastq", gzipBytes(t, "@r\nACGT\n+\nIIII\n"), FASTQ, Gzip},
		{"gzip empty", gzipBytes(t, ""), FASTA, Gzip},
		{"zstd fastq", zstdBytes(t, "@r\nACGT\n+\nIIII\n"), FASTQ, Zstd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Detect(bytes.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Detect: %v", err)
			}
			defer s.Close()
			if s.Format != tt.f || s.Compression != tt.c {
				t.Errorf("Detect = (%v, %v), want (%v, %v)", s.Format, s.Compression, tt.f, tt.c)
			}
		})
	}
}

// TestDetectDoesNotConsume verifies the parser sees the stream from its
// first byte. If Detect consumed the marker, the first header would be
// read as "r" instead of ">r" and rejected.
func TestDetectDoesNotConsume(t *testing.T) {
	s, err := Detect(strings.NewReader(">r\nACGT\n"))
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	rest, _ := io.ReadAll(s.Buf)
	if string(rest) != ">r\nACGT\n" {
		t.Errorf("stream after Detect = %q", rest)
	}
}

// TestDetectSingleByte verifies one byte is rejected as corrupt, both
// directly and after decompression.
func TestDetectSingleByte(t *testing.T) {
	for name, input := range map[string][]byte{
		"plain": []byte(">"),
		"gzip":  gzipBytes(t, ">"),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Detect(bytes.NewReader(input))
			if !errors.Is(err, ErrCorruptInput) {
				t.Errorf("Detect error = %v, want ErrCorruptInput", err)
			}
		})
	}
}

// TestDetectUnknownMarker verifies a stream that is neither format nor
// compressed fails instead of being parsed as FASTA.
func TestDetectUnknownMarker(t *testing.T) {
	_, err := Detect(strings.NewReader("ACGT\n"))
	if !errors.Is(err, ErrCorruptInput) {
		t.Fatalf("Detect error = %v, want ErrCorruptInput", err)
	}
	if !strings.Contains(err.Error(), "'>' or '@'") {
		t.Errorf("error %q does not name the expected markers", err)
	}
}

// TestDetectBrokenGzip verifies a gzip magic followed by garbage fails at
// detection rather than later inside the parser.
func TestDetectBrokenGzip(t *testing.T) {
	_, err := Detect(bytes.NewReader([]byte{0x1f, 0x8b, 'x', 'y'}))
	if !errors.Is(err, ErrCorruptInput) {
		t.Errorf("Detect error = %v, want ErrCorruptInput", err)
	}
}

func TestFormatString(t *testing.T) {
	if FASTA.String() != "FASTA" || FASTQ.String() != "FASTQ" {
		t.Errorf("String() = %q, %q", FASTA, FASTQ)
	}
	if !Gzip.Gzipped() || None.Gzipped() || Zstd.Gzipped() {
		t.Error("Gzipped() wrong")
	}
}
