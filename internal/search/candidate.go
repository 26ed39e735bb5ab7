package search

import (
	"slices"
	"strings"

	"courseplan/internal/catalog"

	"github.com/samber/lo"
)

// Candidate is one complete, constraint-valid selection of sections together
// with its derived metrics. Candidates are immutable once returned.
type Candidate struct {
	Sections      []catalog.Section
	TotalCredit   int
	ConflictPairs int
	Score         float64
}

// Codes returns the chosen section codes in ascending order.
func (c Candidate) Codes() []string {
	codes := lo.Map(c.Sections, func(section catalog.Section, _ int) string {
		return section.Code
	})
	slices.Sort(codes)
	return codes
}

// key identifies a selection regardless of choice order, for deduplication.
func (c Candidate) key() string {
	return strings.Join(c.Codes(), "|")
}

// Contains reports whether the candidate includes a section of the given
// main code.
func (c Candidate) Contains(mainCode string) bool {
	return lo.SomeBy(c.Sections, func(section catalog.Section) bool {
		return section.MainCode == mainCode
	})
}

// sortCandidates orders best-first: higher score, then fewer conflicting
// pairs, then higher credit, then lexicographic codes so ties are broken
// deterministically.
func sortCandidates(candidates []Candidate) {
	slices.SortFunc(candidates, func(a, b Candidate) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		switch {
		case a.ConflictPairs < b.ConflictPairs:
			return -1
		case a.ConflictPairs > b.ConflictPairs:
			return 1
		}
		switch {
		case a.TotalCredit > b.TotalCredit:
			return -1
		case a.TotalCredit < b.TotalCredit:
			return 1
		}
		return strings.Compare(a.key(), b.key())
	})
}
