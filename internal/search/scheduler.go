package search

import (
	"context"
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Scheduler is the contract every search strategy implements.
//
// Generate returns at most cfg.MaxResults candidates ordered best-first by
// evaluator score with deterministic tie-breaking. It never errors: empty or
// infeasible inputs yield an empty list, and a strategy that runs out of
// time returns the valid candidates found so far. Every returned candidate
// contains all mandatory courses and respects the credit and conflict caps.
type Scheduler interface {
	Generate(ctx context.Context, problem *Problem, cfg Config) []Candidate
}

// schedulers is the closed strategy set, keyed by the names the CLIs accept.
var schedulers = map[string]func() Scheduler{
	"dfs":         func() Scheduler { return &dfsScheduler{} },
	"bfs":         func() Scheduler { return &bfsScheduler{} },
	"greedy":      func() Scheduler { return &greedyScheduler{} },
	"astar":       func() Scheduler { return &astarScheduler{} },
	"genetic":     func() Scheduler { return &geneticScheduler{} },
	"annealing":   func() Scheduler { return &annealingScheduler{} },
	"tabu":        func() Scheduler { return &tabuScheduler{} },
	"propagation": func() Scheduler { return &propagationScheduler{} },
}

// New returns the strategy registered under name.
func New(name string) (Scheduler, error) {
	factory, ok := schedulers[name]
	if !ok {
		return nil, fmt.Errorf("%q is not a valid strategy", name)
	}
	return factory(), nil
}

// Names lists the registered strategy names in ascending order.
func Names() []string {
	names := lo.Keys(schedulers)
	slices.Sort(names)
	return names
}

// prepare performs the shared entry checks of every Generate implementation.
// The returned view is nil when the search is trivially empty or infeasible.
func prepare(problem *Problem, cfg Config) (*view, Config) {
	cfg = cfg.normalize()
	if problem == nil || problem.Catalog.Len() == 0 || len(cfg.Mandatory) == 0 {
		return nil, cfg
	}
	v := newView(problem, cfg)
	if v.infeasible {
		return nil, cfg
	}
	return v, cfg
}
