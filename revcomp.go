// Reverse complement.
//
// The complement table pairs the canonical bases and the IUPAC ambiguity
// codes: A/T, C/G, R/Y, K/M, B/V, D/H. S, W, N, gaps and every other byte
// map to themselves, so the table is an involution and complementing twice
// restores the input. Lower case pairs mirror upper case ones, although
// sequences coming out of Reader are already upper case.
package fastx

var complement [256]byte

func init() {
	for i := range complement {
		complement[i] = byte(i)
	}
	pairs := []string{"AT", "CG", "RY", "KM", "BV", "DH"}
	for _, p := range pairs {
		a, b := p[0], p[1]
		complement[a], complement[b] = b, a
		la, lb := a+('a'-'A'), b+('a'-'A')
		complement[la], complement[lb] = lb, la
	}
}

// Complement returns the pairing base of b.
func Complement(b byte) byte {
	return complement[b]
}

// ReverseComplement reverses seq and complements every symbol, in place.
// qual, if non-nil, is reversed so it stays aligned with seq; quality
// values themselves are not changed.
func ReverseComplement(seq, qual []byte) {
	for i, j := 0, len(seq)-1; i <= j; i, j = i+1, j-1 {
		seq[i], seq[j] = complement[seq[j]], complement[seq[i]]
	}
	for i, j := 0, len(qual)-1; i < j; i, j = i+1, j-1 {
		qual[i], qual[j] = qual[j], qual[i]
	}
}

// RevCompReader interleaves a record stream with its reverse complement.
// For inner records x1, x2, ... it yields x1, rc(x1), x2, rc(x2), ... and
// is exhausted once the inner reader is.
//
// Both outputs of a pair are the same scratch record: the forward record
// is complemented in place on the following call. A returned record is
// therefore only valid until the next Read.
type RevCompReader struct {
	inner   RecordReader
	scratch OwnedRecord
	forward bool // true when the scratch holds the forward record
}

// NewRevCompReader wraps inner.
func NewRevCompReader(inner RecordReader) *RevCompReader {
	return &RevCompReader{inner: inner}
}

// Read returns the next record of the interleaved stream, or io.EOF.
func (r *RevCompReader) Read() (RefRecord, error) {
	if r.forward {
		r.forward = false
		r.scratch.ReverseComplement()
		return r.scratch.AsRef(), nil
	}

	rec, err := r.inner.Read()
	if err != nil {
		return RefRecord{}, err // io.EOF included
	}
	r.scratch.Set(rec)
	r.forward = true
	return r.scratch.AsRef(), nil
}
