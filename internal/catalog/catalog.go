package catalog

import (
	"fmt"

	"github.com/samber/lo"
)

// Day is a weekday index in [0, DaysPerWeek).
type Day uint8

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday

	DaysPerWeek = 7
)

// PeriodsPerDay bounds the period component of a TimeSlot.
const PeriodsPerDay = 16

// Kind classifies a section by its teaching format.
type Kind int

const (
	Lecture Kind = iota
	ProblemSession
	Lab
)

var kindNames = map[Kind]string{
	Lecture:        "lecture",
	ProblemSession: "problem-session",
	Lab:            "lab",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind resolves a kind name as it appears in input files.
func ParseKind(name string) (Kind, error) {
	for kind, kindName := range kindNames {
		if kindName == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%q is not a valid section kind", name)
}

// TimeSlot is one (day, period) cell of the weekly grid.
type TimeSlot struct {
	Day    Day
	Period int
}

// Section is one schedulable variant of a course. Sections are read-only for
// the lifetime of a search.
type Section struct {
	Code       string // globally unique: main course code + section suffix
	MainCode   string // shared by all variants of the same logical course
	Name       string
	Credit     int // ECTS weight
	Kind       Kind
	Slots      []TimeSlot
	Instructor string
}

// Overlaps reports whether the two sections share at least one time slot.
func (s Section) Overlaps(other Section) bool {
	return lo.SomeBy(s.Slots, func(slot TimeSlot) bool {
		return lo.Contains(other.Slots, slot)
	})
}

// CourseGroup holds every section variant of one logical course, in their
// listed order. At most one variant may be chosen per group.
type CourseGroup struct {
	MainCode string
	Sections []Section
}

// Catalog is the validated, immutable section universe a search runs over.
// It is the single validation gate: construction fails fast on malformed
// sections and everything downstream assumes well-formed input.
type Catalog struct {
	sections []Section
	groups   []CourseGroup
	byCode   map[string]int // section code -> index into sections
	byMain   map[string]int // main code -> index into groups
}

// New validates the ordered section list and builds the catalog. Group order
// follows the first appearance of each main code; section order within a
// group follows the input order.
func New(sections []Section) (*Catalog, error) {
	cat := &Catalog{
		sections: make([]Section, 0, len(sections)),
		byCode:   make(map[string]int, len(sections)),
		byMain:   make(map[string]int),
	}

	for i, section := range sections {
		if err := validateSection(section); err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}
		if _, ok := cat.byCode[section.Code]; ok {
			return nil, fmt.Errorf("section %d: duplicate code %q", i, section.Code)
		}

		cat.byCode[section.Code] = len(cat.sections)
		cat.sections = append(cat.sections, section)

		groupIndex, ok := cat.byMain[section.MainCode]
		if !ok {
			groupIndex = len(cat.groups)
			cat.byMain[section.MainCode] = groupIndex
			cat.groups = append(cat.groups, CourseGroup{MainCode: section.MainCode})
		}
		cat.groups[groupIndex].Sections = append(cat.groups[groupIndex].Sections, section)
	}

	return cat, nil
}

func validateSection(section Section) error {
	if section.Code == "" {
		return fmt.Errorf("empty section code")
	}
	if section.MainCode == "" {
		return fmt.Errorf("empty main code for section %q", section.Code)
	}
	if section.Credit <= 0 {
		return fmt.Errorf("non-positive credit %d for section %q", section.Credit, section.Code)
	}
	for _, slot := range section.Slots {
		if slot.Day >= DaysPerWeek {
			return fmt.Errorf("invalid day %d for section %q", slot.Day, section.Code)
		}
		if slot.Period < 0 || slot.Period >= PeriodsPerDay {
			return fmt.Errorf("invalid period %d for section %q", slot.Period, section.Code)
		}
	}
	return nil
}

// Sections returns the catalog's sections in input order. The slice must be
// treated as read-only.
func (c *Catalog) Sections() []Section { return c.sections }

// Groups returns the course groups in first-appearance order. The slice must
// be treated as read-only.
func (c *Catalog) Groups() []CourseGroup { return c.groups }

// Group looks a course group up by main code.
func (c *Catalog) Group(mainCode string) (CourseGroup, bool) {
	index, ok := c.byMain[mainCode]
	if !ok {
		return CourseGroup{}, false
	}
	return c.groups[index], true
}

// SectionIndex returns the position of a section code within Sections.
func (c *Catalog) SectionIndex(code string) (int, bool) {
	index, ok := c.byCode[code]
	return index, ok
}

// Len returns the number of sections.
func (c *Catalog) Len() int { return len(c.sections) }
