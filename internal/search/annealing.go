package search

import (
	"context"
	"math"
	"math/rand"
	"slices"
)

// annealingScheduler walks the space of complete valid assignments: the
// neighbor of the current assignment mutates one course group's choice, an
// improving neighbor is always accepted, a worsening one with probability
// exp(-delta/T), and T decays geometrically per iteration. Every accepted
// assignment feeds the best-seen collector.
type annealingScheduler struct{}

func (s *annealingScheduler) Generate(ctx context.Context, problem *Problem, cfg Config) []Candidate {
	v, cfg := prepare(problem, cfg)
	if v == nil {
		return []Candidate{}
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	col := newCollector(v, cfg)
	stop := newDeadline(ctx, cfg.Timeout)

	current, ok := randomGenome(v, cfg, rng)
	if !ok {
		return col.results()
	}
	col.add(current.ids, current.credit, current.pairs)

	temperature := cfg.InitialTemp
	for iter := 0; iter < cfg.Iterations && temperature > cfg.FinalTemp; iter++ {
		if stop.exceeded() {
			break
		}

		choices := slices.Clone(current.choices)
		mutate(choices, v, rng)
		neighbor, ok := repair(v, cfg, choices, rng)
		if !ok {
			continue
		}

		delta := current.score - neighbor.score
		if delta <= 0 || rng.Float64() < math.Exp(-delta/temperature) {
			current = neighbor
			col.add(current.ids, current.credit, current.pairs)
		}
		temperature *= cfg.Alpha
	}

	return col.results()
}
