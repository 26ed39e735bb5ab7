package search

import (
	"context"
	"math/rand"
	"slices"
)

// geneticScheduler evolves a fixed-size population of complete choice
// vectors. Each generation selects parents by tournament on the evaluator
// score, crosses them over slot by slot, mutates by swapping a group to
// another variant or toggling an optional group, and repairs cap-violating
// offspring by dropping random optional courses. The best-ever valid
// individuals across all generations form the result set.
type geneticScheduler struct{}

const geneticElite = 2

func (s *geneticScheduler) Generate(ctx context.Context, problem *Problem, cfg Config) []Candidate {
	v, cfg := prepare(problem, cfg)
	if v == nil {
		return []Candidate{}
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	col := newCollector(v, cfg)
	stop := newDeadline(ctx, cfg.Timeout)

	popSize := cfg.Population
	current := make([]genome, 0, popSize)
	for len(current) < popSize {
		g, ok := randomGenome(v, cfg, rng)
		if !ok {
			// No combination of mandatory variants fits the caps.
			return col.results()
		}
		current = append(current, g)
	}
	for _, g := range current {
		col.add(g.ids, g.credit, g.pairs)
	}

	order := make([]int, popSize)
	for generation := 0; generation < cfg.Generations; generation++ {
		if stop.exceeded() {
			break
		}

		for i := range order {
			order[i] = i
		}
		slices.SortFunc(order, func(a, b int) int {
			switch {
			case current[a].score > current[b].score:
				return -1
			case current[a].score < current[b].score:
				return 1
			}
			return a - b
		})

		next := make([]genome, 0, popSize)
		for e := 0; e < geneticElite && e < len(order); e++ {
			next = append(next, current[order[e]])
		}

		for len(next) < popSize {
			parent1 := tournament(current, rng)
			parent2 := tournament(current, rng)

			child := slices.Clone(parent1.choices)
			if rng.Float64() < cfg.CrossoverRate {
				for slot := range child {
					if rng.Intn(2) == 1 {
						child[slot] = parent2.choices[slot]
					}
				}
			}
			if rng.Float64() < cfg.MutationRate {
				mutate(child, v, rng)
			}

			g, ok := repair(v, cfg, child, rng)
			if !ok {
				// The child's mandatory variants clash; discard it and
				// regenerate from scratch.
				g, ok = randomGenome(v, cfg, rng)
			}
			if !ok {
				return col.results()
			}
			next = append(next, g)
			col.add(g.ids, g.credit, g.pairs)
		}
		current = next
	}

	return col.results()
}

type genome struct {
	choices []int
	ids     []int
	credit  int
	pairs   int
	score   float64
}

// seedRetries bounds how often a fresh random genome is rolled before the
// deterministic backtracking fallback takes over.
const seedRetries = 8

// randomGenome draws random variant choices and repairs them. A draw whose
// mandatory variants clash beyond repair is discarded and regenerated; after
// the retry budget the first backtracking-feasible assignment seeds the
// genome instead. It fails only when every combination of mandatory variants
// breaks the caps.
func randomGenome(v *view, cfg Config, rng *rand.Rand) (genome, bool) {
	for attempt := 0; attempt < seedRetries; attempt++ {
		choices := make([]int, len(v.groups))
		for depth := range v.groups {
			variants := len(v.groups[depth].Sections)
			if v.optional(depth) {
				// One extra slot encodes leaving the course out.
				choices[depth] = rng.Intn(variants+1) - 1
			} else {
				choices[depth] = rng.Intn(variants)
			}
		}
		if g, ok := repair(v, cfg, choices, rng); ok {
			return g, true
		}
	}

	choices, ok := firstFeasible(v, cfg)
	if !ok {
		return genome{}, false
	}
	return repair(v, cfg, choices, rng)
}

// repair drops random chosen optional courses until the caps hold. It fails
// when the mandatory variant choices alone are infeasible.
func repair(v *view, cfg Config, choices []int, rng *rand.Rand) (genome, bool) {
	for {
		ids, credit, pairs := v.assemble(choices)
		if credit <= cfg.MaxCredit && pairs <= cfg.pairBudget() {
			g := genome{choices: choices, ids: ids, credit: credit, pairs: pairs}
			g.score = Score(buildCandidate(v, ids, credit, pairs, cfg), cfg)
			return g, true
		}

		chosen := make([]int, 0, len(choices))
		for depth := v.mandatoryCount; depth < len(choices); depth++ {
			if choices[depth] != skipChoice {
				chosen = append(chosen, depth)
			}
		}
		if len(chosen) == 0 {
			return genome{}, false
		}
		choices[chosen[rng.Intn(len(chosen))]] = skipChoice
	}
}

func mutate(choices []int, v *view, rng *rand.Rand) {
	depth := rng.Intn(len(choices))
	variants := len(v.groups[depth].Sections)
	if v.optional(depth) && rng.Intn(2) == 0 {
		if choices[depth] == skipChoice {
			choices[depth] = rng.Intn(variants)
		} else {
			choices[depth] = skipChoice
		}
		return
	}
	choices[depth] = rng.Intn(variants)
}

func tournament(population []genome, rng *rand.Rand) genome {
	const size = 4
	best := rng.Intn(len(population))
	for k := 1; k < size; k++ {
		contender := rng.Intn(len(population))
		if population[contender].score > population[best].score {
			best = contender
		}
	}
	return population[best]
}
