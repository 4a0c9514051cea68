// Store tests.
//
// The store packs records into shared columns, so an off-by-one in an
// offset array shifts every later record by a byte. Most tests check the
// offset arrays directly as well as the records read back.
package fastx

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

// checkOffsets verifies the offset invariant for every column.
func checkOffsets(t *testing.T, db *SeqDB) {
	t.Helper()
	n := db.Len()
	cols := map[string][]int{"head": db.headStarts, "seq": db.seqStarts}
	if db.HasQual() {
		cols["qual"] = db.qualStarts
	}
	for name, starts := range cols {
		if len(starts) != n+1 {
			t.Errorf("%s starts has %d entries, want %d", name, len(starts), n+1)
		}
		if starts[0] != 0 {
			t.Errorf("%s starts[0] = %d, want 0", name, starts[0])
		}
		for i := 1; i < len(starts); i++ {
			if starts[i] < starts[i-1] {
				t.Errorf("%s starts decreases at %d: %v", name, i, starts)
			}
		}
	}
	if last := db.seqStarts[n]; last != len(db.seqBuf) {
		t.Errorf("last seq offset %d != column length %d", last, len(db.seqBuf))
	}
}

func TestSeqDBEmpty(t *testing.T) {
	for _, q := range []bool{false, true} {
		db := NewSeqDB(q)
		if db.Len() != 0 || db.HasQual() != q {
			t.Errorf("NewSeqDB(%v): len=%d qual=%v", q, db.Len(), db.HasQual())
		}
		checkOffsets(t, db)
		for range db.All() {
			t.Error("All yielded a record for an empty store")
		}
	}
}

func TestSeqDBAppendGet(t *testing.T) {
	db := NewSeqDB(true)
	in := []*OwnedRecord{
		{Header: []byte("a"), Sequence: []byte("ACGT"), Quality: []byte("IIII")},
		{Header: []byte(""), Sequence: []byte(""), Quality: []byte("")},
		{Header: []byte("c long"), Sequence: []byte("G"), Quality: []byte("#")},
	}
	for _, rec := range in {
		if err := db.Append(rec); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	checkOffsets(t, db)

	for i, want := range in {
		got, err := db.Get(i)
		if err != nil {
			t.Fatalf("Get(%d): %v", i, err)
		}
		if !bytes.Equal(got.Head(), want.Header) || !bytes.Equal(got.Seq(), want.Sequence) || !bytes.Equal(got.Qual(), want.Quality) {
			t.Errorf("Get(%d) = %q %q %q", i, got.Head(), got.Seq(), got.Qual())
		}
		if got.Qual() == nil {
			t.Errorf("Get(%d) lost the quality column", i)
		}
	}
}

// TestSeqDBAppendCopies verifies the store does not alias the appended
// record. Parser records are overwritten on the next Read; a store that
// kept the slices would end up holding the last record N times.
func TestSeqDBAppendCopies(t *testing.T) {
	db := NewSeqDB(false)
	seq := []byte("ACGT")
	db.Append(NewRefRecord([]byte("a"), seq, nil))
	copy(seq, "TTTT")

	got, _ := db.Get(0)
	if string(got.Seq()) != "ACGT" {
		t.Errorf("stored sequence = %q, want ACGT", got.Seq())
	}
}

// TestSeqDBRecordsAreCapped verifies appending to a returned field cannot
// write into the next record's bytes.
func TestSeqDBRecordsAreCapped(t *testing.T) {
	db := NewSeqDB(false)
	db.Append(NewRefRecord([]byte("a"), []byte("AA"), nil))
	db.Append(NewRefRecord([]byte("b"), []byte("CC"), nil))

	first, _ := db.Get(0)
	_ = append(first.Seq(), 'X')

	second, _ := db.Get(1)
	if string(second.Seq()) != "CC" {
		t.Errorf("second record = %q after appending to the first", second.Seq())
	}
}

// TestSeqDBQualityMismatch verifies a record whose quality presence does
// not match the store is refused and leaves the store unchanged.
func TestSeqDBQualityMismatch(t *testing.T) {
	withQual := NewSeqDB(true)
	err := withQual.Append(NewRefRecord([]byte("a"), []byte("AC"), nil))
	if !errors.Is(err, ErrConfig) {
		t.Errorf("Append without quality = %v, want ErrConfig", err)
	}
	if withQual.Len() != 0 || len(withQual.headBuf) != 0 {
		t.Error("failed append modified the store")
	}

	noQual := NewSeqDB(false)
	err = noQual.Append(NewRefRecord([]byte("a"), []byte("AC"), []byte("II")))
	if !errors.Is(err, ErrConfig) {
		t.Errorf("Append with quality = %v, want ErrConfig", err)
	}
}

// TestSeqDBQualityLength verifies a quality of the wrong length is refused
// before any column changes. Storing it would produce a snapshot that
// LoadSeqDB then rejects as corrupt.
func TestSeqDBQualityLength(t *testing.T) {
	db := NewSeqDB(true)
	db.Append(NewRefRecord([]byte("ok"), []byte("AC"), []byte("II")))

	for _, qual := range []string{"!!", "!!!!!", ""} {
		err := db.Append(NewRefRecord([]byte("r"), []byte("ACGT"), []byte(qual)))
		if !errors.Is(err, ErrConfig) {
			t.Errorf("Append with %d quality bytes = %v, want ErrConfig", len(qual), err)
		}
	}
	if db.Len() != 1 || len(db.headBuf) != 2 || len(db.seqBuf) != 2 || len(db.qualBuf) != 2 {
		t.Errorf("failed appends modified the store: len=%d", db.Len())
	}
	checkOffsets(t, db)

	var buf bytes.Buffer
	if err := db.Save(&buf, 0); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := LoadSeqDB(&buf); err != nil {
		t.Errorf("LoadSeqDB of the store's own snapshot: %v", err)
	}
}

func TestSeqDBGetOutOfRange(t *testing.T) {
	db := NewSeqDB(false)
	db.Append(NewRefRecord([]byte("a"), []byte("AC"), nil))

	for _, i := range []int{-1, 1, 5} {
		_, err := db.Get(i)
		var ie *IndexError
		if !errors.As(err, &ie) {
			t.Fatalf("Get(%d) error = %v, want *IndexError", i, err)
		}
		if ie.Index != i || ie.Count != 1 {
			t.Errorf("IndexError = %+v", ie)
		}
		if !errors.Is(err, ErrIndex) {
			t.Errorf("Get(%d) error does not match ErrIndex", i)
		}
	}
}

// TestSeqDBIterMatchesGet verifies iterating a drained store yields the
// same records, in the same order, as Get(0) .. Get(Len()-1), and that a
// second pass starts again from the beginning.
func TestSeqDBIterMatchesGet(t *testing.T) {
	db, err := NewReader(strings.NewReader(testFASTQ()), FASTQ).ReadDB()
	if err != nil {
		t.Fatalf("ReadDB: %v", err)
	}
	checkOffsets(t, db)

	for pass := range 2 {
		n := 0
		for i, rec := range db.All() {
			if i != n {
				t.Fatalf("pass %d: index %d out of order, want %d", pass, i, n)
			}
			want, _ := db.Get(i)
			if !bytes.Equal(rec.Head(), want.Head()) || !bytes.Equal(rec.Seq(), want.Seq()) || !bytes.Equal(rec.Qual(), want.Qual()) {
				t.Errorf("pass %d: record %d differs from Get", pass, i)
			}
			n++
		}
		if n != db.Len() {
			t.Errorf("pass %d: iterated %d records, want %d", pass, n, db.Len())
		}
	}
}

// TestSeqDBIterEarlyStop verifies breaking out of the range loop is safe.
func TestSeqDBIterEarlyStop(t *testing.T) {
	db, _ := NewReader(strings.NewReader(testFASTA(60)), FASTA).ReadDB()
	n := 0
	for range db.All() {
		n++
		break
	}
	if n != 1 {
		t.Errorf("visited %d records, want 1", n)
	}
}

// TestSeqDBStreamEquivalence verifies a store drained from a stream holds
// the same records the stream yields when read directly.
func TestSeqDBStreamEquivalence(t *testing.T) {
	db, err := NewReader(strings.NewReader(testFASTQ()), FASTQ).ReadDB()
	if err != nil {
		t.Fatalf("ReadDB: %v", err)
	}
	direct := readAll(t, NewReader(strings.NewReader(testFASTQ()), FASTQ))
	if len(direct) != db.Len() {
		t.Fatalf("stream has %d records, store %d", len(direct), db.Len())
	}
	for i, rec := range db.All() {
		if !bytes.Equal(rec.Seq(), direct[i].Seq()) || !bytes.Equal(rec.Qual(), direct[i].Qual()) {
			t.Errorf("record %d differs", i)
		}
	}
}

func TestSeqDBCompact(t *testing.T) {
	db, _ := NewReader(strings.NewReader(testFASTQ()), FASTQ).ReadDB()
	before := db.Digest(AlgXXHash3)
	db.Compact()

	if cap(db.seqBuf) != len(db.seqBuf) || cap(db.headStarts) != len(db.headStarts) || cap(db.qualBuf) != len(db.qualBuf) {
		t.Error("Compact left spare capacity")
	}
	if db.Digest(AlgXXHash3) != before {
		t.Error("Compact changed the records")
	}
	checkOffsets(t, db)

	// Appends still work after compaction.
	if err := db.Append(NewRefRecord([]byte("x"), []byte("A"), []byte("I"))); err != nil {
		t.Fatalf("Append after Compact: %v", err)
	}
	if db.Len() != 4 {
		t.Errorf("Len = %d, want 4", db.Len())
	}
}

// TestSeqDBReader verifies the store can be replayed as a stream.
func TestSeqDBReader(t *testing.T) {
	db, _ := NewReader(strings.NewReader(testFASTA(5)), FASTA).ReadDB()
	r := db.Reader()
	recs := readAll(t, r)
	if len(recs) != 3 || string(recs[1].Seq()) != testSeqs[1] {
		t.Errorf("replayed %d records", len(recs))
	}
	if _, err := r.Read(); err != io.EOF {
		t.Errorf("Read after end = %v, want io.EOF", err)
	}
}

// TestCollectQualityMismatch verifies draining FASTQ into a store without
// a quality column stops at the first record.
func TestCollectQualityMismatch(t *testing.T) {
	db, err := Collect(NewReader(strings.NewReader(testFASTQ()), FASTQ), false)
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("Collect error = %v, want ErrConfig", err)
	}
	if db.Len() != 0 {
		t.Errorf("store has %d records", db.Len())
	}
}
