// Store snapshots.
//
// Save writes a SeqDB as a fixed-size header followed by one JSON line per
// record, in storage order. Field bytes are base64 encoded by the JSON
// encoder, so headers and qualities with arbitrary bytes survive. Load
// rebuilds the store and checks the record count and digest recorded in
// the header.
package fastx

import (
	"bufio"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
)

// snapRecord is one record line of a snapshot.
type snapRecord struct {
	Head []byte `json:"_h"`
	Seq  []byte `json:"_s"`
	Qual []byte `json:"_q,omitempty"`
}

// Save writes db to w. alg selects the digest algorithm; 0 means xxHash3.
// Any other value outside the Alg constants wraps ErrConfig and nothing is
// written.
func (db *SeqDB) Save(w io.Writer, alg int) error {
	alg, err := snapshotAlgorithm(alg)
	if err != nil {
		return err
	}
	hdr := Header{
		Version:   snapshotVersion,
		Algorithm: alg,
		Count:     db.Len(),
		Qual:      db.HasQual(),
		Digest:    db.Digest(alg),
	}
	buf, err := hdr.encode()
	if err != nil {
		return err
	}

	out := bufio.NewWriter(w)
	out.Write(buf)
	for _, rec := range db.All() {
		line, err := json.Marshal(snapRecord{Head: rec.Head(), Seq: rec.Seq(), Qual: rec.Qual()})
		if err != nil {
			return err
		}
		out.Write(line)
		out.WriteByte('\n')
	}
	return out.Flush()
}

// LoadSeqDB reads a snapshot written by Save. A malformed header or record
// line, or a count or digest that does not match, wraps ErrCorruptSnapshot.
func LoadSeqDB(r io.Reader) (*SeqDB, error) {
	in := bufio.NewReaderSize(r, defaultReadBuffer)
	hdr, err := header(in)
	if err != nil {
		return nil, err
	}
	if !knownAlgorithm(hdr.Algorithm) || hdr.Digest == "" {
		return nil, fmt.Errorf("%w: header carries no usable digest (algorithm %d)", ErrCorruptSnapshot, hdr.Algorithm)
	}

	db := NewSeqDB(hdr.Qual)
	var line []byte
	for {
		var n int
		line, n, err = appendLine(in, line[:0])
		if err != nil {
			return nil, err
		}
		if n == 0 {
			break
		}
		data := chomp(line)
		if len(data) == 0 {
			continue
		}

		var rec snapRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrCorruptSnapshot, db.Len(), err)
		}
		if hdr.Qual && rec.Qual == nil {
			rec.Qual = []byte{} // omitted when empty
		}
		if hdr.Qual && len(rec.Qual) != len(rec.Seq) {
			return nil, fmt.Errorf("%w: record %d: quality length differs from sequence length", ErrCorruptSnapshot, db.Len())
		}
		if err := db.Append(NewRefRecord(rec.Head, rec.Seq, rec.Qual)); err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrCorruptSnapshot, db.Len(), err)
		}
	}

	if db.Len() != hdr.Count {
		return nil, fmt.Errorf("%w: header declares %d records, found %d", ErrCorruptSnapshot, hdr.Count, db.Len())
	}
	if got := db.Digest(hdr.Algorithm); got != hdr.Digest {
		return nil, fmt.Errorf("%w: digest %s does not match header %s", ErrCorruptSnapshot, got, hdr.Digest)
	}
	db.Compact()
	return db, nil
}

// snapshotAlgorithm resolves the zero value to xxHash3 and rejects unknown
// algorithms.
func snapshotAlgorithm(alg int) (int, error) {
	if alg == 0 {
		return AlgXXHash3, nil
	}
	if !knownAlgorithm(alg) {
		return 0, fmt.Errorf("%w: unknown digest algorithm %d", ErrConfig, alg)
	}
	return alg, nil
}

// SaveFile writes a snapshot of db to path, replacing any previous content.
// The file is held under an exclusive lock until it is synced.
func (db *SeqDB) SaveFile(path string, alg int) error {
	if _, err := snapshotAlgorithm(alg); err != nil {
		return err // checked before the old snapshot is truncated
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	lk := fileLock{f: f}
	if err := lk.Lock(LockExclusive); err != nil {
		return err
	}
	defer lk.Unlock()

	// Truncate only once the lock is held; a reader may still be loading.
	if err := f.Truncate(0); err != nil {
		return err
	}
	if err := db.Save(f, alg); err != nil {
		return err
	}
	return f.Sync()
}

// LoadSeqDBFile reads a snapshot from path under a shared lock.
func LoadSeqDBFile(path string) (*SeqDB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lk := fileLock{f: f}
	if err := lk.Lock(LockShared); err != nil {
		return nil, err
	}
	defer lk.Unlock()

	db, err := LoadSeqDB(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return db, nil
}
