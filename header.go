// Snapshot header.
//
// A snapshot starts with a header of exactly HeaderSize bytes: a JSON
// object padded with spaces and terminated with a newline. The fixed size
// lets a reader pull it with a single ReadFull before streaming records.
package fastx

import (
	"bytes"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// HeaderSize is the fixed size of the snapshot header in bytes.
const HeaderSize = 128

// snapshotVersion is written to every new snapshot.
const snapshotVersion = 1

// Header describes the store that follows it.
type Header struct {
	Version   int    `json:"_v"`
	Algorithm int    `json:"_alg"` // Digest algorithm (1=xxHash3, 2=FNV1a, 3=Blake2b)
	Count     int    `json:"_n"`   // Number of records
	Qual      bool   `json:"_q"`   // Quality column present
	Digest    string `json:"_d"`   // SeqDB.Digest under Algorithm
}

// header reads and parses the header from the start of r.
func header(r io.Reader) (*Header, error) {
	buf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, ErrCorruptSnapshot
	}

	var hdr Header
	if err := json.Unmarshal(bytes.TrimSpace(buf), &hdr); err != nil {
		return nil, ErrCorruptSnapshot
	}
	if hdr.Version != snapshotVersion {
		return nil, ErrCorruptSnapshot
	}
	return &hdr, nil
}

// encode renders the header as a JSON line padded with spaces to exactly
// HeaderSize bytes.
func (h *Header) encode() ([]byte, error) {
	data, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	if len(data) > HeaderSize-1 {
		return nil, fmt.Errorf("snapshot header is %d bytes, limit %d", len(data)+1, HeaderSize)
	}

	buf := bytes.Repeat([]byte{' '}, HeaderSize)
	copy(buf, data)
	buf[HeaderSize-1] = '\n'
	return buf, nil
}
