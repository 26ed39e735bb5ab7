package conflict

import (
	"math/rand"
	"testing"

	"courseplan/internal/catalog"

	"github.com/stretchr/testify/assert"
)

func randomSections(n int, rng *rand.Rand) []catalog.Section {
	sections := make([]catalog.Section, n)
	for i := range sections {
		slots := make([]catalog.TimeSlot, 1+rng.Intn(3))
		for j := range slots {
			slots[j] = catalog.TimeSlot{
				Day:    catalog.Day(rng.Intn(5)),
				Period: rng.Intn(6),
			}
		}
		sections[i] = catalog.Section{Credit: 1, Slots: slots}
	}
	return sections
}

func TestBuild(t *testing.T) {
	t.Run("empty input yields a valid empty index", func(t *testing.T) {
		index := Build(nil)

		assert.Equal(t, 0, index.Len())
		assert.Empty(t, index.EmptyMask())
	})

	t.Run("rows mirror pairwise overlaps symmetrically", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		sections := randomSections(40, rng)

		index := Build(sections)

		for i := range sections {
			for j := range sections {
				if i == j {
					continue
				}
				mask := index.Add(index.EmptyMask(), j)
				assert.Equal(t, sections[i].Overlaps(sections[j]), index.Conflicts(mask, i),
					"sections %d and %d", i, j)
			}
		}
	})
}

// Conflicts against a mask must agree exactly with a brute-force pairwise
// check over the sections set in the mask.
func TestConflictsMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	sections := randomSections(90, rng) // spills past one machine word
	index := Build(sections)

	for trial := 0; trial < 200; trial++ {
		mask := index.EmptyMask()
		var members []int
		for id := range sections {
			if rng.Intn(3) == 0 {
				mask = index.Add(mask, id)
				members = append(members, id)
			}
		}

		probe := rng.Intn(len(sections))
		expected := false
		expectedPairs := 0
		for _, id := range members {
			if id != probe && sections[probe].Overlaps(sections[id]) {
				expected = true
				expectedPairs++
			}
		}

		assert.Equal(t, expected, index.Conflicts(mask, probe))
		assert.Equal(t, expectedPairs, index.NewPairs(mask, probe))
		assert.Len(t, index.ConflictingMembers(mask, probe), expectedPairs)
	}
}

func TestAddRemove(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	index := Build(randomSections(70, rng))

	mask := index.EmptyMask()
	added := index.Add(mask, 65)

	// Add and Remove are pure: the original mask is untouched.
	assert.False(t, mask.Has(65))
	assert.True(t, added.Has(65))
	assert.Equal(t, 1, added.Count())

	removed := index.Remove(added, 65)
	assert.True(t, added.Has(65))
	assert.False(t, removed.Has(65))
	assert.Equal(t, 0, removed.Count())
}

func TestPairCount(t *testing.T) {
	sections := []catalog.Section{
		{Credit: 1, Slots: []catalog.TimeSlot{{Day: catalog.Monday, Period: 1}}},
		{Credit: 1, Slots: []catalog.TimeSlot{{Day: catalog.Monday, Period: 1}}},
		{Credit: 1, Slots: []catalog.TimeSlot{{Day: catalog.Monday, Period: 1}}},
		{Credit: 1, Slots: []catalog.TimeSlot{{Day: catalog.Tuesday, Period: 1}}},
	}
	index := Build(sections)

	assert.Equal(t, 3, index.PairCount([]int{0, 1, 2}))
	assert.Equal(t, 3, index.PairCount([]int{0, 1, 2, 3}))
	assert.Equal(t, 0, index.PairCount([]int{0, 3}))
	assert.Equal(t, 0, index.PairCount([]int{2}))

	// Incremental accounting agrees with the pair count.
	mask := index.EmptyMask()
	pairs := 0
	for _, id := range []int{0, 1, 2, 3} {
		pairs += index.NewPairs(mask, id)
		mask = index.Add(mask, id)
	}
	assert.Equal(t, index.PairCount([]int{0, 1, 2, 3}), pairs)
}

func TestDegree(t *testing.T) {
	sections := []catalog.Section{
		{Credit: 1, Slots: []catalog.TimeSlot{{Day: catalog.Monday, Period: 1}}},
		{Credit: 1, Slots: []catalog.TimeSlot{{Day: catalog.Monday, Period: 1}}},
		{Credit: 1, Slots: []catalog.TimeSlot{{Day: catalog.Friday, Period: 1}}},
	}
	index := Build(sections)

	assert.Equal(t, 1, index.Degree(0))
	assert.Equal(t, 1, index.Degree(1))
	assert.Equal(t, 0, index.Degree(2))
}
