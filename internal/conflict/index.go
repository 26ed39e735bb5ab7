package conflict

import (
	"math/bits"

	"courseplan/internal/catalog"
)

// Mask is a chunked bitset over section indices. A single machine word covers
// catalogs of up to 64 sections; larger catalogs spill into further words
// while conflict queries stay word-parallel AND-is-nonzero tests.
type Mask []uint64

// Clone returns an independent copy of the mask.
func (m Mask) Clone() Mask {
	clone := make(Mask, len(m))
	copy(clone, m)
	return clone
}

// Has reports whether section id is set.
func (m Mask) Has(id int) bool {
	return m[id>>6]&(1<<(uint(id)&63)) != 0
}

// Count returns the number of set sections.
func (m Mask) Count() int {
	total := 0
	for _, word := range m {
		total += bits.OnesCount64(word)
	}
	return total
}

func (m Mask) set(id int)   { m[id>>6] |= 1 << (uint(id) & 63) }
func (m Mask) clear(id int) { m[id>>6] &^= 1 << (uint(id) & 63) }

// Index precomputes pairwise time-slot conflicts between all sections as
// fixed-width bit rows. Construction is O(N²) pairwise slot-intersection
// tests, done once; every conflict query afterwards is O(1) in the number of
// sections (per 64-section word).
type Index struct {
	n     int
	words int
	rows  []Mask // rows[i] has bit j set iff sections i and j conflict
}

// Build indexes the given ordered section list. An empty input yields a
// valid empty index.
func Build(sections []catalog.Section) *Index {
	n := len(sections)
	words := (n + 63) / 64
	index := &Index{n: n, words: words, rows: make([]Mask, n)}

	for i := range index.rows {
		index.rows[i] = make(Mask, words)
	}
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			if sections[i].Overlaps(sections[j]) {
				index.rows[i].set(j)
				index.rows[j].set(i)
			}
		}
	}

	return index
}

// Len returns the number of indexed sections.
func (x *Index) Len() int { return x.n }

// EmptyMask returns a zero mask sized for this index.
func (x *Index) EmptyMask() Mask { return make(Mask, x.words) }

// Conflicts reports whether adding section id to the schedule represented by
// mask introduces at least one conflict.
func (x *Index) Conflicts(mask Mask, id int) bool {
	row := x.rows[id]
	for w, word := range mask {
		if word&row[w] != 0 {
			return true
		}
	}
	return false
}

// NewPairs counts the conflicting pairs that adding section id to mask would
// introduce. Summing NewPairs over an incremental construction equals the
// strict unique-pair conflict count of the final selection.
func (x *Index) NewPairs(mask Mask, id int) int {
	row := x.rows[id]
	pairs := 0
	for w, word := range mask {
		pairs += bits.OnesCount64(word & row[w])
	}
	return pairs
}

// Add returns a copy of mask with section id set.
func (x *Index) Add(mask Mask, id int) Mask {
	next := mask.Clone()
	next.set(id)
	return next
}

// Remove returns a copy of mask with section id cleared.
func (x *Index) Remove(mask Mask, id int) Mask {
	next := mask.Clone()
	next.clear(id)
	return next
}

// ConflictingMembers returns the ids of the sections in mask that conflict
// with section id, in ascending order.
func (x *Index) ConflictingMembers(mask Mask, id int) []int {
	row := x.rows[id]
	var members []int
	for w, word := range mask {
		overlap := word & row[w]
		for overlap != 0 {
			bit := bits.TrailingZeros64(overlap)
			members = append(members, w*64+bit)
			overlap &= overlap - 1
		}
	}
	return members
}

// Degree returns how many sections of the whole catalog conflict with id.
func (x *Index) Degree(id int) int {
	total := 0
	for _, word := range x.rows[id] {
		total += bits.OnesCount64(word)
	}
	return total
}

// PairCount counts the conflicting pairs among the given section ids, each
// pair once. It is the brute-force reference for the incremental accounting.
func (x *Index) PairCount(ids []int) int {
	pairs := 0
	for i := 0; i < len(ids)-1; i++ {
		for j := i + 1; j < len(ids); j++ {
			if x.rows[ids[i]].Has(ids[j]) {
				pairs++
			}
		}
	}
	return pairs
}
