// Low-level line primitives for the record parser.
//
// Lines are appended onto caller-owned scratch slices so a record's bytes
// are copied exactly once, out of the bufio buffer into the scratch slice
// that the returned record aliases. bufio.Reader.ReadSlice is used instead
// of ReadBytes because ReadBytes allocates a fresh slice for every line.
package fastx

import (
	"bufio"
	"io"
)

// appendLine appends the next line, terminator included, onto dst and
// reports how many bytes were read. n == 0 with a nil error means the
// source is exhausted. A final line without '\n' is returned as is.
func appendLine(buf *bufio.Reader, dst []byte) ([]byte, int, error) {
	n := 0
	for {
		frag, err := buf.ReadSlice('\n')
		dst = append(dst, frag...)
		n += len(frag)
		switch err {
		case nil:
			return dst, n, nil
		case bufio.ErrBufferFull:
			// Line longer than the buffer; keep going.
			continue
		case io.EOF:
			return dst, n, nil
		default:
			return dst, n, err
		}
	}
}

// chomp strips one trailing "\n" or "\r\n".
func chomp(line []byte) []byte {
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}
	}
	return line
}
