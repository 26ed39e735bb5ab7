package search

import (
	"context"
	"slices"
	"strings"
)

// greedyScheduler commits to the best non-violating variant of each group in
// a single pass without backtracking. Mandatory groups keep their configured
// order; optional groups are ordered by a static desirability heuristic:
// fewest conflicts with the already-fixed mandatory sections, then lowest
// credit, then main code. It yields at most one candidate.
type greedyScheduler struct{}

func (s *greedyScheduler) Generate(ctx context.Context, problem *Problem, cfg Config) []Candidate {
	v, cfg := prepare(problem, cfg)
	if v == nil {
		return []Candidate{}
	}

	st := newState(v, cfg)
	stop := newDeadline(ctx, cfg.Timeout)

	// Mandatory groups first: the best feasible variant is the one that
	// introduces the fewest new conflicting pairs, first listed wins ties.
	for depth := 0; depth < v.mandatoryCount; depth++ {
		if stop.exceeded() {
			return []Candidate{}
		}
		if !st.tryPush(s.bestVariant(st, v.variantIDs[depth])) {
			// No variant fits within the caps: the mandate set is infeasible.
			return []Candidate{}
		}
	}

	for _, depth := range s.optionalOrder(v, st) {
		if stop.exceeded() {
			break
		}
		for _, id := range v.variantIDs[depth] {
			if st.tryPush(id) {
				break
			}
		}
	}

	col := newCollector(v, cfg)
	col.add(st.ids, st.credit, st.pairs)
	return col.results()
}

// bestVariant picks the feasible variant introducing the fewest new pairs,
// or the first variant as a sentinel when none is feasible (tryPush then
// rejects it).
func (s *greedyScheduler) bestVariant(st *state, ids []int) int {
	best := ids[0]
	bestPairs := -1
	for _, id := range ids {
		section := st.view.problem.Catalog.Sections()[id]
		if st.credit+section.Credit > st.cfg.MaxCredit {
			continue
		}
		pairs := st.view.problem.Index.NewPairs(st.mask(), id)
		if st.pairs+pairs > st.cfg.pairBudget() {
			continue
		}
		if bestPairs < 0 || pairs < bestPairs {
			best, bestPairs = id, pairs
		}
	}
	return best
}

// optionalOrder ranks the optional groups by how well their least-conflicting
// variant coexists with the fixed mandatory sections.
func (s *greedyScheduler) optionalOrder(v *view, st *state) []int {
	type ranked struct {
		depth     int
		conflicts int
		credit    int
	}

	order := make([]ranked, 0, len(v.groups)-v.mandatoryCount)
	for depth := v.mandatoryCount; depth < len(v.groups); depth++ {
		minConflicts, minCredit := -1, 0
		for _, id := range v.variantIDs[depth] {
			pairs := v.problem.Index.NewPairs(st.mask(), id)
			credit := v.problem.Catalog.Sections()[id].Credit
			if minConflicts < 0 || pairs < minConflicts || (pairs == minConflicts && credit < minCredit) {
				minConflicts, minCredit = pairs, credit
			}
		}
		order = append(order, ranked{depth: depth, conflicts: minConflicts, credit: minCredit})
	}

	slices.SortFunc(order, func(a, b ranked) int {
		if a.conflicts != b.conflicts {
			return a.conflicts - b.conflicts
		}
		if a.credit != b.credit {
			return a.credit - b.credit
		}
		return strings.Compare(v.groups[a.depth].MainCode, v.groups[b.depth].MainCode)
	})

	depths := make([]int, len(order))
	for i, entry := range order {
		depths[i] = entry.depth
	}
	return depths
}
