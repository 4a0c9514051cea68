// Motif and header search over a store.
//
// Search matches a pattern against every sequence and yields one Match per
// hit: the record position and the offset of the hit inside the sequence.
// Literal patterns (no regex metacharacters) take a fast path with
// bytes.Index and report overlapping hits, so "AA" is found twice in
// "AAA". Other patterns are compiled with regexp and report the
// non-overlapping hits of FindAllIndex.
//
// Matching is case-insensitive by default. For literals the sequence is
// upper-cased into a scratch buffer that is reused across records, so the
// scan allocates only when a sequence is longer than any before it.
//
// BothStrands also searches the reverse complement of a literal motif.
// Reverse hits carry Reverse=true and the forward-strand offset of the
// matched bases. A palindromic motif is searched once.
//
// MatchName applies a regex to headers. Both scans are lazy: break from
// the range loop to stop early.
package fastx

import (
	"bytes"
	"fmt"
	"iter"
	"regexp"
)

// SearchOptions configures Search.
type SearchOptions struct {
	CaseSensitive bool
	BothStrands   bool // literal patterns only
}

// Match is a single search hit.
type Match struct {
	Index   int  // record position in the store
	Offset  int  // start of the hit within the sequence
	Reverse bool // hit on the reverse complement strand
}

// Search yields every hit of pattern in the store's sequences, in record
// order. An empty or invalid pattern yields ErrInvalidPattern.
func (db *SeqDB) Search(pattern string, opts SearchOptions) iter.Seq2[Match, error] {
	return func(yield func(Match, error) bool) {
		if pattern == "" {
			yield(Match{}, fmt.Errorf("%w: empty pattern", ErrInvalidPattern))
			return
		}

		if regexp.QuoteMeta(pattern) != pattern {
			if opts.BothStrands {
				yield(Match{}, fmt.Errorf("%w: BothStrands needs a literal motif", ErrInvalidPattern))
				return
			}
			if !opts.CaseSensitive {
				pattern = "(?i)" + pattern
			}
			re, err := regexp.Compile(pattern)
			if err != nil {
				yield(Match{}, fmt.Errorf("%w: %w", ErrInvalidPattern, err))
				return
			}
			for i, rec := range db.All() {
				for _, loc := range re.FindAllIndex(rec.Seq(), -1) {
					if !yield(Match{Index: i, Offset: loc[0]}, nil) {
						return
					}
				}
			}
			return
		}

		fwd := []byte(pattern)
		if !opts.CaseSensitive {
			upper(fwd)
		}
		var rev []byte
		if opts.BothStrands {
			rev = bytes.Clone(fwd)
			ReverseComplement(rev, nil)
			if bytes.Equal(rev, fwd) {
				rev = nil
			}
		}

		var scratch []byte
		for i, rec := range db.All() {
			seq := rec.Seq()
			if !opts.CaseSensitive {
				scratch = append(scratch[:0], seq...)
				upper(scratch)
				seq = scratch
			}
			if !literalHits(seq, fwd, func(off int) bool {
				return yield(Match{Index: i, Offset: off}, nil)
			}) {
				return
			}
			if rev != nil && !literalHits(seq, rev, func(off int) bool {
				return yield(Match{Index: i, Offset: off, Reverse: true}, nil)
			}) {
				return
			}
		}
	}
}

// literalHits calls fn with the offset of every occurrence of needle in
// seq, overlapping ones included. It returns false if fn stopped the scan.
func literalHits(seq, needle []byte, fn func(off int) bool) bool {
	for off := 0; off+len(needle) <= len(seq); {
		i := bytes.Index(seq[off:], needle)
		if i < 0 {
			break
		}
		if !fn(off + i) {
			return false
		}
		off += i + 1
	}
	return true
}

// MatchName yields the position of every record whose header matches the
// regular expression pattern.
func (db *SeqDB) MatchName(pattern string) iter.Seq2[int, error] {
	return func(yield func(int, error) bool) {
		re, err := regexp.Compile(pattern)
		if err != nil {
			yield(0, fmt.Errorf("%w: %w", ErrInvalidPattern, err))
			return
		}
		for i, rec := range db.All() {
			if re.Match(rec.Head()) {
				if !yield(i, nil) {
					return
				}
			}
		}
	}
}
