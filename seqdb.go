// Columnar in-memory sequence store.
//
// Headers, sequences and qualities each live in one contiguous byte column.
// Each column has an offset array of length Len()+1 starting at 0, so
// record i spans [starts[i], starts[i+1]) in its column. Offsets are plain
// ints: the store has no internal pointers and can be copied, grown or
// serialised freely.
package fastx

import (
	"fmt"
	"io"
	"iter"
)

// SeqDB is an append-only columnar store of records.
//
// Records returned by Get and All alias the columns and stay valid for the
// lifetime of the store as long as no further Append happens. Concurrent
// readers are fine; an Append concurrent with readers is not.
type SeqDB struct {
	headBuf    []byte
	seqBuf     []byte
	qualBuf    []byte // nil unless qualities are tracked
	headStarts []int
	seqStarts  []int
	qualStarts []int // nil unless qualities are tracked
}

// NewSeqDB returns an empty store. withQual selects whether a quality
// column is kept; FASTQ input needs it, FASTA input must not have it.
func NewSeqDB(withQual bool) *SeqDB {
	db := &SeqDB{
		headStarts: []int{0},
		seqStarts:  []int{0},
	}
	if withQual {
		db.qualBuf = []byte{}
		db.qualStarts = []int{0}
	}
	return db
}

// HasQual reports whether the store keeps a quality column.
func (db *SeqDB) HasQual() bool {
	return db.qualStarts != nil
}

// Len returns the number of records.
func (db *SeqDB) Len() int {
	return len(db.headStarts) - 1
}

// Append copies rec to the end of the store. The record's quality presence
// must match the store, and a present quality must be as long as the
// sequence. Either violation is a programming error and wraps ErrConfig,
// leaving the store unchanged.
func (db *SeqDB) Append(rec Record) error {
	qual := rec.Qual()
	switch {
	case db.HasQual() && qual == nil:
		return fmt.Errorf("%w: record without quality values appended to a store that tracks them", ErrConfig)
	case !db.HasQual() && qual != nil:
		return fmt.Errorf("%w: record with quality values appended to a store without a quality column", ErrConfig)
	case qual != nil && len(qual) != len(rec.Seq()):
		return fmt.Errorf("%w: quality length %d differs from sequence length %d", ErrConfig, len(qual), len(rec.Seq()))
	}

	db.headBuf = append(db.headBuf, rec.Head()...)
	db.seqBuf = append(db.seqBuf, rec.Seq()...)
	db.headStarts = append(db.headStarts, len(db.headBuf))
	db.seqStarts = append(db.seqStarts, len(db.seqBuf))
	if qual != nil {
		db.qualBuf = append(db.qualBuf, qual...)
		db.qualStarts = append(db.qualStarts, len(db.qualBuf))
	}
	return nil
}

// Get returns record i. An out-of-range index returns an *IndexError.
func (db *SeqDB) Get(i int) (RefRecord, error) {
	if i < 0 || i >= db.Len() {
		return RefRecord{}, &IndexError{Index: i, Count: db.Len()}
	}
	return db.at(i), nil
}

// at slices record i with capacity capped at its end, so appending to a
// returned field cannot overwrite the following record.
func (db *SeqDB) at(i int) RefRecord {
	hs, he := db.headStarts[i], db.headStarts[i+1]
	ss, se := db.seqStarts[i], db.seqStarts[i+1]
	rec := RefRecord{
		head: db.headBuf[hs:he:he],
		seq:  db.seqBuf[ss:se:se],
	}
	if db.HasQual() {
		qs, qe := db.qualStarts[i], db.qualStarts[i+1]
		rec.qual = db.qualBuf[qs:qe:qe]
	}
	return rec
}

// All yields every record with its index, in storage order. Each call
// starts a fresh pass.
func (db *SeqDB) All() iter.Seq2[int, RefRecord] {
	return func(yield func(int, RefRecord) bool) {
		for i := range db.Len() {
			rec, err := db.Get(i)
			if err != nil || !yield(i, rec) {
				return
			}
		}
	}
}

// Compact releases spare capacity once no more appends are expected.
// Records obtained before Compact keep referencing the old columns.
func (db *SeqDB) Compact() {
	db.headBuf = shrink(db.headBuf)
	db.seqBuf = shrink(db.seqBuf)
	db.headStarts = shrink(db.headStarts)
	db.seqStarts = shrink(db.seqStarts)
	if db.HasQual() {
		db.qualBuf = shrink(db.qualBuf)
		db.qualStarts = shrink(db.qualStarts)
	}
}

// shrink copies s into an allocation of exactly len(s).
func shrink[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// Reader returns a RecordReader over the store, so a finished store can
// feed a RevCompReader or a Writer like any stream.
func (db *SeqDB) Reader() RecordReader {
	return &dbReader{db: db}
}

type dbReader struct {
	db  *SeqDB
	pos int
}

func (r *dbReader) Read() (RefRecord, error) {
	if r.pos >= r.db.Len() {
		return RefRecord{}, io.EOF
	}
	rec := r.db.at(r.pos)
	r.pos++
	return rec, nil
}

// Collect drains src into a new store. withQual must match the stream:
// true for FASTQ sources. On failure the records collected so far are
// returned alongside the error.
func Collect(src RecordReader, withQual bool) (*SeqDB, error) {
	db := NewSeqDB(withQual)
	for {
		rec, err := src.Read()
		if err == io.EOF {
			return db, nil
		}
		if err != nil {
			return db, err
		}
		if err := db.Append(rec); err != nil {
			return db, err
		}
	}
}

// collectRevComp drains src into a forward store and a store holding the
// reverse complement of each record. The complement is built in a single
// scratch record so the forward bytes are never touched.
func collectRevComp(src RecordReader, withQual bool) (*SeqDB, *SeqDB, error) {
	fwd := NewSeqDB(withQual)
	rc := NewSeqDB(withQual)
	var scratch OwnedRecord
	for {
		rec, err := src.Read()
		if err == io.EOF {
			return fwd, rc, nil
		}
		if err != nil {
			return fwd, rc, err
		}
		if err := fwd.Append(rec); err != nil {
			return fwd, rc, err
		}
		scratch.Set(rec)
		scratch.ReverseComplement()
		if err := rc.Append(&scratch); err != nil {
			return fwd, rc, err
		}
	}
}
