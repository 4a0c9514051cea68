// Store summary statistics.
package fastx

import (
	"slices"

	json "github.com/goccy/go-json"
)

// Stats summarises the sequences of a store.
type Stats struct {
	Records int     `json:"records"`
	Bases   int     `json:"bases"`
	MinLen  int     `json:"min_len"`
	MaxLen  int     `json:"max_len"`
	N50     int     `json:"n50"`
	GC      float64 `json:"gc"` // G+C over A+C+G+T, 0 when there are none
	Qual    bool    `json:"qual"`
}

// Stats computes summary statistics over every record.
func (db *SeqDB) Stats() Stats {
	s := Stats{Records: db.Len(), Qual: db.HasQual()}
	if s.Records == 0 {
		return s
	}

	lengths := make([]int, 0, s.Records)
	var gc, acgt int
	for _, rec := range db.All() {
		seq := rec.Seq()
		lengths = append(lengths, len(seq))
		for _, b := range seq {
			switch b {
			case 'G', 'C', 'g', 'c':
				gc++
				acgt++
			case 'A', 'T', 'a', 't':
				acgt++
			}
		}
	}
	s.Bases = len(db.seqBuf)
	s.MinLen = slices.Min(lengths)
	s.MaxLen = slices.Max(lengths)
	if acgt > 0 {
		s.GC = float64(gc) / float64(acgt)
	}

	// N50: the length L such that records of length >= L hold at least
	// half of all bases.
	slices.Sort(lengths)
	sum := 0
	for i := len(lengths) - 1; i >= 0; i-- {
		sum += lengths[i]
		if 2*sum >= s.Bases {
			s.N50 = lengths[i]
			break
		}
	}
	return s
}

// JSON encodes s.
func (s Stats) JSON() ([]byte, error) {
	return json.Marshal(s)
}
