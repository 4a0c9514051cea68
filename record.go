// Record shapes.
//
// Three shapes share the Record contract. OwnedRecord holds its own
// storage. RefRecord is a read-only view into storage owned elsewhere (a
// Reader's scratch buffers or a SeqDB's columns). MutRefRecord is a view
// that may be edited in place; the parser uses it to upper-case a sequence
// before handing out the read-only form.
//
// Qual is nil exactly when the record came from a format without quality
// values. When present it has the same length as Seq.
package fastx

// Record is the capability shared by every record shape. Writers, stores
// and transforms accept a Record and never depend on the concrete shape.
type Record interface {
	Head() []byte // header without the '>' or '@' marker
	Seq() []byte
	Qual() []byte // nil for FASTA
}

// RecordReader yields records one at a time and returns io.EOF once the
// stream is exhausted. The returned record is only valid until the next
// call to Read.
type RecordReader interface {
	Read() (RefRecord, error)
}

// OwnedRecord owns its header, sequence and quality bytes.
type OwnedRecord struct {
	Header   []byte
	Sequence []byte
	Quality  []byte
}

func (r *OwnedRecord) Head() []byte { return r.Header }
func (r *OwnedRecord) Seq() []byte  { return r.Sequence }
func (r *OwnedRecord) Qual() []byte { return r.Quality }

// Set replaces the contents of r with a copy of src, reusing r's buffers.
// A nil source quality leaves r without quality.
func (r *OwnedRecord) Set(src Record) {
	r.Header = append(r.Header[:0], src.Head()...)
	r.Sequence = append(r.Sequence[:0], src.Seq()...)
	if q := src.Qual(); q != nil {
		if r.Quality == nil {
			r.Quality = make([]byte, 0, len(q))
		}
		r.Quality = append(r.Quality[:0], q...)
	} else {
		r.Quality = nil
	}
}

// Clone returns an independent copy.
func (r *OwnedRecord) Clone() *OwnedRecord {
	out := &OwnedRecord{}
	out.Set(r)
	return out
}

// ReverseComplement reverse-complements the sequence in place and reverses
// the quality so it stays aligned.
func (r *OwnedRecord) ReverseComplement() {
	ReverseComplement(r.Sequence, r.Quality)
}

// AsRef returns a borrowed view of r. The view observes later edits to r.
func (r *OwnedRecord) AsRef() RefRecord {
	return RefRecord{head: r.Header, seq: r.Sequence, qual: r.Quality}
}

// RefRecord is a read-only view into storage owned elsewhere.
//
// A RefRecord returned by Reader.Read aliases the reader's scratch buffers
// and is overwritten by the next Read. Call ToOwned to keep it. Holding one
// past the next Read does not crash; it observes the next record's bytes.
type RefRecord struct {
	head []byte
	seq  []byte
	qual []byte
}

// NewRefRecord builds a view over existing slices. qual must be nil or the
// same length as seq; SeqDB.Append and Writer.Write refuse a view that
// breaks this.
func NewRefRecord(head, seq, qual []byte) RefRecord {
	return RefRecord{head: head, seq: seq, qual: qual}
}

func (r RefRecord) Head() []byte { return r.head }
func (r RefRecord) Seq() []byte  { return r.seq }
func (r RefRecord) Qual() []byte { return r.qual }

// ToOwned copies the viewed bytes into a new OwnedRecord.
func (r RefRecord) ToOwned() *OwnedRecord {
	out := &OwnedRecord{}
	out.Set(r)
	return out
}

// MutRefRecord is a borrowed view whose bytes may be edited in place.
type MutRefRecord struct {
	head []byte
	seq  []byte
	qual []byte
}

func (r MutRefRecord) Head() []byte { return r.head }
func (r MutRefRecord) Seq() []byte  { return r.seq }
func (r MutRefRecord) Qual() []byte { return r.qual }

// Upper case-folds the sequence to upper case in place.
func (r MutRefRecord) Upper() {
	upper(r.seq)
}

// ReverseComplement rewrites the viewed sequence and quality in place.
func (r MutRefRecord) ReverseComplement() {
	ReverseComplement(r.seq, r.qual)
}

// AsRef downgrades the view to read-only.
func (r MutRefRecord) AsRef() RefRecord {
	return RefRecord{head: r.head, seq: r.seq, qual: r.qual}
}

// upper folds ASCII lower case letters in b to upper case.
func upper(b []byte) {
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
}
