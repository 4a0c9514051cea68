// Name index over a store.
//
// A record's name is its header up to the first space or tab, the usual
// sequence identifier convention. Names maps each name to the positions of
// the records carrying it, ordered by name then position, so duplicate
// names are kept and prefix scans visit records in a stable order.
package fastx

import (
	"bytes"
	"strings"

	"github.com/google/btree"
)

type nameEntry struct {
	name string
	pos  int
}

// Names is a sorted name index built from a SeqDB. It is a snapshot: later
// appends to the store are not reflected.
type Names struct {
	tree *btree.BTreeG[nameEntry]
}

// Names builds a name index over the current records of db.
func (db *SeqDB) Names() *Names {
	tree := btree.NewG(32, func(a, b nameEntry) bool {
		if a.name != b.name {
			return a.name < b.name
		}
		return a.pos < b.pos
	})
	for i, rec := range db.All() {
		tree.ReplaceOrInsert(nameEntry{name: string(recordName(rec.Head())), pos: i})
	}
	return &Names{tree: tree}
}

// recordName cuts head at the first space or tab.
func recordName(head []byte) []byte {
	if i := bytes.IndexAny(head, " \t"); i >= 0 {
		return head[:i]
	}
	return head
}

// Len returns the number of indexed records.
func (n *Names) Len() int {
	return n.tree.Len()
}

// Lookup returns the positions of every record named name, in storage
// order. It returns nil when there is none.
func (n *Names) Lookup(name string) []int {
	var out []int
	n.tree.AscendGreaterOrEqual(nameEntry{name: name, pos: -1}, func(e nameEntry) bool {
		if e.name != name {
			return false
		}
		out = append(out, e.pos)
		return true
	})
	return out
}

// Prefix calls fn for every record whose name starts with prefix, in name
// order. Iteration stops when fn returns false.
func (n *Names) Prefix(prefix string, fn func(name string, pos int) bool) {
	n.tree.AscendGreaterOrEqual(nameEntry{name: prefix, pos: -1}, func(e nameEntry) bool {
		if !strings.HasPrefix(e.name, prefix) {
			return false
		}
		return fn(e.name, e.pos)
	})
}
