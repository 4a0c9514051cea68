// Content hashing for records and stores.
//
// Digests are 16 hex characters. Three algorithms are supported and the
// caller picks one per call.
package fastx

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
)

// Hash algorithm constants.
const (
	AlgXXHash3 = 1 // Default, fastest
	AlgFNV1a   = 2 // No external dependencies
	AlgBlake2b = 3 // Best distribution
)

// knownAlgorithm reports whether alg is one of the constants above.
func knownAlgorithm(alg int) bool {
	return alg == AlgXXHash3 || alg == AlgFNV1a || alg == AlgBlake2b
}

// hash digests parts in order using alg. Every part is preceded by its
// length so that ("AB","C") and ("A","BC") differ.
func hash(alg int, parts ...[]byte) string {
	var lenBuf [8]byte
	switch alg {
	case AlgXXHash3:
		h := xxh3.New()
		for _, p := range parts {
			binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(p)))
			h.Write(lenBuf[:])
			h.Write(p)
		}
		return fmt.Sprintf("%016x", h.Sum64())
	case AlgFNV1a:
		h := fnv.New64a()
		for _, p := range parts {
			binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(p)))
			h.Write(lenBuf[:])
			h.Write(p)
		}
		return fmt.Sprintf("%016x", h.Sum64())
	case AlgBlake2b:
		h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
		for _, p := range parts {
			binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(p)))
			h.Write(lenBuf[:])
			h.Write(p)
		}
		return fmt.Sprintf("%016x", h.Sum(nil))
	default:
		return ""
	}
}

// Fingerprint digests a record's sequence only, so the same sequence under
// different headers or qualities fingerprints the same. An unknown
// algorithm returns "".
func Fingerprint(rec Record, alg int) string {
	return hash(alg, rec.Seq())
}

// Digest digests the whole store: every column and the record boundaries.
// Two stores with equal records in equal order have equal digests.
func (db *SeqDB) Digest(alg int) string {
	parts := make([][]byte, 0, 3*db.Len())
	for _, rec := range db.All() {
		parts = append(parts, rec.Head(), rec.Seq())
		if db.HasQual() {
			parts = append(parts, rec.Qual())
		}
	}
	return hash(alg, parts...)
}
