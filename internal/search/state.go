package search

import (
	"context"
	"slices"
	"time"

	"courseplan/internal/catalog"
	"courseplan/internal/conflict"

	"github.com/samber/lo"
)

// view resolves the configured course codes against the frozen problem:
// mandatory groups first (in configured order), then the optional groups
// that exist in the catalog. Unknown optional codes are ignored; an unknown
// mandatory code makes the whole search infeasible.
type view struct {
	problem        *Problem
	groups         []catalog.CourseGroup
	variantIDs     [][]int // per group, section ids into the catalog ordering
	mandatoryCount int
	infeasible     bool
}

// skipChoice marks an optional group left out of an assignment.
const skipChoice = -1

func newView(problem *Problem, cfg Config) *view {
	v := &view{problem: problem}
	seen := map[string]bool{}

	for _, code := range cfg.Mandatory {
		if seen[code] {
			continue
		}
		seen[code] = true
		group, ok := problem.Catalog.Group(code)
		if !ok {
			v.infeasible = true
			return v
		}
		v.groups = append(v.groups, group)
	}
	v.mandatoryCount = len(v.groups)

	for _, code := range cfg.Optional {
		if seen[code] {
			continue
		}
		seen[code] = true
		if group, ok := problem.Catalog.Group(code); ok {
			v.groups = append(v.groups, group)
		}
	}

	v.variantIDs = lo.Map(v.groups, func(group catalog.CourseGroup, _ int) []int {
		return lo.Map(group.Sections, func(section catalog.Section, _ int) int {
			return lo.Must(problem.Catalog.SectionIndex(section.Code))
		})
	})

	return v
}

// optional reports whether the group at the given depth may be skipped.
func (v *view) optional(depth int) bool { return depth >= v.mandatoryCount }

// assemble computes the section ids, credit total and unique conflicting
// pair count of a full choice vector. Callers check the caps themselves.
func (v *view) assemble(choices []int) (ids []int, credit, pairs int) {
	mask := v.problem.Index.EmptyMask()
	for depth, choice := range choices {
		if choice == skipChoice {
			continue
		}
		id := v.variantIDs[depth][choice]
		pairs += v.problem.Index.NewPairs(mask, id)
		mask = v.problem.Index.Add(mask, id)
		credit += v.problem.Catalog.Sections()[id].Credit
		ids = append(ids, id)
	}
	return ids, credit, pairs
}

// state is the incremental assignment the tree-search strategies share. It
// is always a valid partial assignment: tryPush refuses any extension that
// would break the credit or conflict-pair caps, so violating states are
// never materialized.
type state struct {
	view      *view
	cfg       Config
	masks     []conflict.Mask // masks[depth] = mask after depth pushes
	ids       []int
	pairSteps []int
	credit    int
	pairs     int
}

func newState(v *view, cfg Config) *state {
	return &state{
		view:  v,
		cfg:   cfg,
		masks: []conflict.Mask{v.problem.Index.EmptyMask()},
	}
}

func (s *state) mask() conflict.Mask { return s.masks[len(s.masks)-1] }

// tryPush extends the assignment with a section, rejecting hard-cap
// violations at generation time.
func (s *state) tryPush(id int) bool {
	section := s.view.problem.Catalog.Sections()[id]
	if s.credit+section.Credit > s.cfg.MaxCredit {
		return false
	}
	newPairs := s.view.problem.Index.NewPairs(s.mask(), id)
	if s.pairs+newPairs > s.cfg.pairBudget() {
		return false
	}

	s.masks = append(s.masks, s.view.problem.Index.Add(s.mask(), id))
	s.ids = append(s.ids, id)
	s.pairSteps = append(s.pairSteps, newPairs)
	s.credit += section.Credit
	s.pairs += newPairs
	return true
}

// pop undoes the latest push.
func (s *state) pop() {
	last := len(s.ids) - 1
	s.credit -= s.view.problem.Catalog.Sections()[s.ids[last]].Credit
	s.pairs -= s.pairSteps[last]
	s.ids = s.ids[:last]
	s.pairSteps = s.pairSteps[:last]
	s.masks = s.masks[:len(s.masks)-1]
}

// firstFeasible backtracks over the mandatory groups for a complete valid
// assignment, leaving every optional group out. It fails only when no
// combination of mandatory variants fits the caps.
func firstFeasible(v *view, cfg Config) ([]int, bool) {
	st := newState(v, cfg)
	choices := make([]int, len(v.groups))
	for depth := v.mandatoryCount; depth < len(v.groups); depth++ {
		choices[depth] = skipChoice
	}

	var walk func(depth int) bool
	walk = func(depth int) bool {
		if depth == v.mandatoryCount {
			return true
		}
		for variant, id := range v.variantIDs[depth] {
			if !st.tryPush(id) {
				continue
			}
			choices[depth] = variant
			if walk(depth + 1) {
				return true
			}
			st.pop()
		}
		return false
	}

	if !walk(0) {
		return nil, false
	}
	return choices, true
}

// collector accumulates accepted complete candidates, deduplicating equal
// selections reached through different paths.
type collector struct {
	view *view
	cfg  Config
	out  []Candidate
	seen map[string]bool
}

func newCollector(v *view, cfg Config) *collector {
	return &collector{view: v, cfg: cfg, seen: map[string]bool{}}
}

// buildCandidate finalizes a selection into a scored, immutable candidate.
func buildCandidate(v *view, ids []int, credit, pairs int, cfg Config) Candidate {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	candidate := Candidate{
		Sections: lo.Map(sorted, func(id int, _ int) catalog.Section {
			return v.problem.Catalog.Sections()[id]
		}),
		TotalCredit:   credit,
		ConflictPairs: pairs,
	}
	candidate.Score = Score(candidate, cfg)
	return candidate
}

func (c *collector) add(ids []int, credit, pairs int) {
	candidate := buildCandidate(c.view, ids, credit, pairs, c.cfg)
	if c.seen[candidate.key()] {
		return
	}
	c.seen[candidate.key()] = true
	c.out = append(c.out, candidate)
}

// full reports whether the result-count cutoff has been reached.
func (c *collector) full() bool { return len(c.out) >= c.cfg.MaxResults }

// results returns the accepted candidates ordered best-first, truncated to
// the configured maximum.
func (c *collector) results() []Candidate {
	sortCandidates(c.out)
	if len(c.out) > c.cfg.MaxResults {
		c.out = c.out[:c.cfg.MaxResults]
	}
	return c.out
}

// deadline implements the cooperative timeout: strategies probe it once per
// expansion or iteration and bail out with whatever they have. Checks are
// sparse so the clock read stays off the hot path.
type deadline struct {
	ctx   context.Context
	at    time.Time
	steps int
}

const deadlineStride = 256

func newDeadline(ctx context.Context, timeout time.Duration) *deadline {
	return &deadline{ctx: ctx, at: time.Now().Add(timeout)}
}

func (d *deadline) exceeded() bool {
	d.steps++
	if d.steps&(deadlineStride-1) != 0 {
		return false
	}
	if d.ctx != nil && d.ctx.Err() != nil {
		return true
	}
	return time.Now().After(d.at)
}
