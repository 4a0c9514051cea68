// Exact-sequence lookup with a bloom filter in front.
//
// SeqDB has no sequence index, so finding a sequence means scanning every
// record. SeqFilter puts a bloom filter over the sequences of a store,
// sized for the record count at about 1% false positives, so most absent
// queries are rejected without touching the columns. Hits and false
// positives fall through to the scan.
package fastx

import (
	"bytes"
	"hash/fnv"
)

// Bloom filter sizing.
const (
	bloomBitsPerEntry = 10 // ~1% FP with BloomK hashes
	BloomK            = 7  // number of hash functions
	minBloomBits      = 64
)

type bloom struct {
	bits  []byte
	nbits uint
}

// newBloom returns a zeroed filter sized for n entries.
func newBloom(n int) *bloom {
	nbits := max(uint(n)*bloomBitsPerEntry, minBloomBits)
	nbits = (nbits + 7) &^ 7
	return &bloom{bits: make([]byte, nbits/8), nbits: nbits}
}

// Add inserts seq into the filter.
func (b *bloom) Add(seq []byte) {
	for _, pos := range b.positions(seq) {
		b.bits[pos/8] |= 1 << (pos % 8)
	}
}

// Contains returns true if seq might be present, false if definitely absent.
func (b *bloom) Contains(seq []byte) bool {
	for _, pos := range b.positions(seq) {
		if b.bits[pos/8]&(1<<(pos%8)) == 0 {
			return false
		}
	}
	return true
}

// positions returns BloomK bit positions using double hashing (FNV-64a + FNV-32a).
func (b *bloom) positions(seq []byte) [BloomK]uint {
	h64 := fnv.New64a()
	h64.Write(seq)
	x := h64.Sum64()

	h32 := fnv.New32a()
	h32.Write(seq)
	y := uint(h32.Sum32())

	var pos [BloomK]uint
	for i := range BloomK {
		pos[i] = (uint(x) + uint(i)*y) % b.nbits
	}
	return pos
}

// SeqFilter finds records by exact sequence. It covers the records present
// when it was built; later appends are not seen.
type SeqFilter struct {
	db    *SeqDB
	n     int
	bloom *bloom
}

// SeqFilter builds a filter over the current sequences of db. Sequences
// are compared byte for byte, so case matters.
func (db *SeqDB) SeqFilter() *SeqFilter {
	f := &SeqFilter{db: db, n: db.Len(), bloom: newBloom(db.Len())}
	for _, rec := range db.All() {
		f.bloom.Add(rec.Seq())
	}
	return f
}

// MayContain reports whether seq might be in the store. False is definite.
func (f *SeqFilter) MayContain(seq []byte) bool {
	return f.bloom.Contains(seq)
}

// Find returns the positions of every record whose sequence equals seq,
// in storage order, or nil.
func (f *SeqFilter) Find(seq []byte) []int {
	if !f.bloom.Contains(seq) {
		return nil
	}
	var out []int
	for i := range f.n {
		if bytes.Equal(f.db.at(i).Seq(), seq) {
			out = append(out, i)
		}
	}
	return out
}
