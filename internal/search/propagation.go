package search

import "context"

// propagationScheduler is DFS with forward checking: per-group domains of
// still-viable variants are pruned after every assignment using the conflict
// index, and a branch is abandoned as soon as a mandatory group's domain
// empties. The pruning cuts the effective branching factor against plain
// DFS while visiting the same solutions.
type propagationScheduler struct{}

func (s *propagationScheduler) Generate(ctx context.Context, problem *Problem, cfg Config) []Candidate {
	v, cfg := prepare(problem, cfg)
	if v == nil {
		return []Candidate{}
	}

	st := newState(v, cfg)
	col := newCollector(v, cfg)
	stop := newDeadline(ctx, cfg.Timeout)

	domains := make([][]int, len(v.groups))
	for depth := range v.groups {
		variants := make([]int, len(v.groups[depth].Sections))
		for variant := range variants {
			variants[variant] = variant
		}
		domains[depth] = variants
	}

	var walk func(depth int, domains [][]int) bool
	walk = func(depth int, domains [][]int) bool {
		if stop.exceeded() {
			return true
		}
		if depth == len(v.groups) {
			col.add(st.ids, st.credit, st.pairs)
			return col.full()
		}

		for _, variant := range domains[depth] {
			if !st.tryPush(v.variantIDs[depth][variant]) {
				continue
			}
			pruned, consistent := s.propagate(st, depth, domains)
			if consistent {
				if walk(depth+1, pruned) {
					st.pop()
					return true
				}
			}
			st.pop()
		}
		if v.optional(depth) {
			return walk(depth+1, domains)
		}
		return false
	}

	walk(0, domains)
	return col.results()
}

// propagate removes variants that can no longer individually fit the caps
// from every unresolved group's domain. It reports false when a mandatory
// domain empties, which dooms the current branch.
func (s *propagationScheduler) propagate(st *state, depth int, domains [][]int) ([][]int, bool) {
	v := st.view
	pruned := make([][]int, len(domains))
	copy(pruned, domains[:depth+1])

	for later := depth + 1; later < len(domains); later++ {
		viable := make([]int, 0, len(domains[later]))
		for _, variant := range domains[later] {
			id := v.variantIDs[later][variant]
			if st.credit+v.problem.Catalog.Sections()[id].Credit > st.cfg.MaxCredit {
				continue
			}
			if st.pairs+v.problem.Index.NewPairs(st.mask(), id) > st.cfg.pairBudget() {
				continue
			}
			viable = append(viable, variant)
		}
		if len(viable) == 0 && !v.optional(later) {
			return nil, false
		}
		pruned[later] = viable
	}

	return pruned, true
}
