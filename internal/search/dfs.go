package search

import "context"

// dfsScheduler resolves course groups depth-first, trying each variant of
// the current group in listed order and backtracking on every hard-cap
// rejection. It enumerates the full assignment tree unless the result or
// time budget cuts it short.
type dfsScheduler struct{}

func (s *dfsScheduler) Generate(ctx context.Context, problem *Problem, cfg Config) []Candidate {
	v, cfg := prepare(problem, cfg)
	if v == nil {
		return []Candidate{}
	}

	st := newState(v, cfg)
	col := newCollector(v, cfg)
	stop := newDeadline(ctx, cfg.Timeout)

	// walk reports whether the search should abort entirely.
	var walk func(depth int) bool
	walk = func(depth int) bool {
		if stop.exceeded() {
			return true
		}
		if depth == len(v.groups) {
			col.add(st.ids, st.credit, st.pairs)
			return col.full()
		}

		for variant := range v.groups[depth].Sections {
			if !st.tryPush(v.variantIDs[depth][variant]) {
				continue
			}
			aborted := walk(depth + 1)
			st.pop()
			if aborted {
				return true
			}
		}
		if v.optional(depth) {
			return walk(depth + 1)
		}
		return false
	}

	walk(0)
	return col.results()
}
