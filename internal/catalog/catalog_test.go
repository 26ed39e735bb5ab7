package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func section(code, mainCode string, credit int, slots ...TimeSlot) Section {
	return Section{
		Code:     code,
		MainCode: mainCode,
		Name:     mainCode,
		Credit:   credit,
		Kind:     Lecture,
		Slots:    slots,
	}
}

func TestNew(t *testing.T) {
	t.Run("groups sections by main code in first-appearance order", func(t *testing.T) {
		// Arrange
		sections := []Section{
			section("CS101.1", "CS101", 6, TimeSlot{Day: Monday, Period: 1}),
			section("MATH101.1", "MATH101", 6, TimeSlot{Day: Tuesday, Period: 2}),
			section("CS101.2", "CS101", 6, TimeSlot{Day: Wednesday, Period: 1}),
		}

		// Act
		cat, err := New(sections)

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, 3, cat.Len())
		groups := cat.Groups()
		assert.Len(t, groups, 2)
		assert.Equal(t, "CS101", groups[0].MainCode)
		assert.Len(t, groups[0].Sections, 2)
		assert.Equal(t, "CS101.1", groups[0].Sections[0].Code)
		assert.Equal(t, "CS101.2", groups[0].Sections[1].Code)
		assert.Equal(t, "MATH101", groups[1].MainCode)
	})

	t.Run("accepts an empty section list", func(t *testing.T) {
		cat, err := New(nil)

		assert.Nil(t, err)
		assert.Equal(t, 0, cat.Len())
		assert.Empty(t, cat.Groups())
	})

	t.Run("rejects duplicate codes", func(t *testing.T) {
		_, err := New([]Section{
			section("CS101.1", "CS101", 6),
			section("CS101.1", "CS101", 6),
		})

		assert.ErrorContains(t, err, "duplicate code")
	})

	t.Run("rejects malformed sections", func(t *testing.T) {
		cases := map[string]Section{
			"empty code":          section("", "CS101", 6),
			"empty main code":     section("CS101.1", "", 6),
			"non-positive credit": section("CS101.1", "CS101", 0),
			"invalid day":         section("CS101.1", "CS101", 6, TimeSlot{Day: 7, Period: 1}),
			"invalid period":      section("CS101.1", "CS101", 6, TimeSlot{Day: Monday, Period: PeriodsPerDay}),
		}

		for name, bad := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := New([]Section{bad})
				assert.NotNil(t, err)
			})
		}
	})
}

func TestOverlaps(t *testing.T) {
	a := section("A.1", "A", 6, TimeSlot{Day: Monday, Period: 1}, TimeSlot{Day: Friday, Period: 3})
	b := section("B.1", "B", 6, TimeSlot{Day: Friday, Period: 3})
	c := section("C.1", "C", 6, TimeSlot{Day: Friday, Period: 4})

	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
	assert.False(t, a.Overlaps(c))
	assert.False(t, b.Overlaps(c))
}

func TestGroupLookup(t *testing.T) {
	cat, err := New([]Section{section("CS101.1", "CS101", 6)})
	assert.Nil(t, err)

	group, ok := cat.Group("CS101")
	assert.True(t, ok)
	assert.Equal(t, "CS101", group.MainCode)

	_, ok = cat.Group("MATH101")
	assert.False(t, ok)

	index, ok := cat.SectionIndex("CS101.1")
	assert.True(t, ok)
	assert.Equal(t, 0, index)
}

func TestParseKind(t *testing.T) {
	for _, name := range []string{"lecture", "problem-session", "lab"} {
		kind, err := ParseKind(name)
		assert.Nil(t, err)
		assert.Equal(t, name, kind.String())
	}

	_, err := ParseKind("seminar")
	assert.NotNil(t, err)
}
