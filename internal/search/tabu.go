package search

import (
	"context"
	"slices"
)

// tabuScheduler is deterministic hill climbing over complete assignments.
// Each iteration ranks every cap-respecting single-slot move, picks the best
// whose reverse is not tabu (a tabu move still wins if it yields a new
// global best), and forbids undoing it for TabuTenure iterations. It stops
// on the iteration budget, the no-improvement cutoff, or the deadline.
type tabuScheduler struct{}

type tabuMove struct {
	depth  int
	choice int
}

func (s *tabuScheduler) Generate(ctx context.Context, problem *Problem, cfg Config) []Candidate {
	v, cfg := prepare(problem, cfg)
	if v == nil {
		return []Candidate{}
	}

	col := newCollector(v, cfg)
	stop := newDeadline(ctx, cfg.Timeout)

	current, ok := initialGenome(v, cfg)
	if !ok {
		return col.results()
	}
	col.add(current.ids, current.credit, current.pairs)

	bestScore := current.score
	tabu := map[tabuMove]int{} // reverse move -> iteration it stays forbidden until
	stale := 0

	for iter := 0; iter < cfg.Iterations && stale < cfg.NoImprovement; iter++ {
		if stop.exceeded() {
			break
		}

		var best genome
		bestMove := tabuMove{depth: -1}
		for depth := range v.groups {
			for _, choice := range slotChoices(v, depth) {
				if choice == current.choices[depth] {
					continue
				}
				choices := slices.Clone(current.choices)
				choices[depth] = choice

				ids, credit, pairs := v.assemble(choices)
				if credit > cfg.MaxCredit || pairs > cfg.pairBudget() {
					continue
				}
				neighbor := genome{choices: choices, ids: ids, credit: credit, pairs: pairs}
				neighbor.score = Score(buildCandidate(v, ids, credit, pairs, cfg), cfg)

				forbidden := tabu[tabuMove{depth: depth, choice: choice}] > iter
				if forbidden && neighbor.score <= bestScore {
					continue
				}
				if bestMove.depth < 0 || neighbor.score > best.score {
					best = neighbor
					bestMove = tabuMove{depth: depth, choice: choice}
				}
			}
		}
		if bestMove.depth < 0 {
			break
		}

		// Undoing the applied move is forbidden for the tenure.
		tabu[tabuMove{depth: bestMove.depth, choice: current.choices[bestMove.depth]}] = iter + cfg.TabuTenure
		current = best
		col.add(current.ids, current.credit, current.pairs)

		if current.score > bestScore {
			bestScore = current.score
			stale = 0
		} else {
			stale++
		}
	}

	return col.results()
}

// slotChoices enumerates the legal gene values of a group: every variant,
// plus the skip marker for optional groups.
func slotChoices(v *view, depth int) []int {
	variants := len(v.groups[depth].Sections)
	choices := make([]int, 0, variants+1)
	if v.optional(depth) {
		choices = append(choices, skipChoice)
	}
	for variant := 0; variant < variants; variant++ {
		choices = append(choices, variant)
	}
	return choices
}

// initialGenome builds a deterministic starting assignment: the first
// mandatory variant combination a backtracking pass accepts, extended with
// the feasible optional variant introducing the fewest new conflicting
// pairs per group. Fails only when no combination of mandatory variants
// fits the caps.
func initialGenome(v *view, cfg Config) (genome, bool) {
	choices, ok := firstFeasible(v, cfg)
	if !ok {
		return genome{}, false
	}

	st := newState(v, cfg)
	for depth := 0; depth < v.mandatoryCount; depth++ {
		st.tryPush(v.variantIDs[depth][choices[depth]])
	}

	for depth := v.mandatoryCount; depth < len(v.groups); depth++ {
		bestVariant, bestPairs := -1, -1
		for variant, id := range v.variantIDs[depth] {
			section := v.problem.Catalog.Sections()[id]
			if st.credit+section.Credit > cfg.MaxCredit {
				continue
			}
			pairs := v.problem.Index.NewPairs(st.mask(), id)
			if st.pairs+pairs > cfg.pairBudget() {
				continue
			}
			if bestPairs < 0 || pairs < bestPairs {
				bestVariant, bestPairs = variant, pairs
			}
		}
		if bestVariant >= 0 && st.tryPush(v.variantIDs[depth][bestVariant]) {
			choices[depth] = bestVariant
		} else {
			choices[depth] = skipChoice
		}
	}

	g := genome{choices: choices, ids: slices.Clone(st.ids), credit: st.credit, pairs: st.pairs}
	g.score = Score(buildCandidate(v, g.ids, g.credit, g.pairs, cfg), cfg)
	return g, true
}
