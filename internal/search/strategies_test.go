package search

import (
	"testing"

	"courseplan/internal/catalog"

	"github.com/stretchr/testify/assert"
)

func TestGreedySinglePass(t *testing.T) {
	problem := semesterProblem(t)
	cfg := semesterConfig()

	candidates := generate(t, "greedy", problem, cfg)

	// Greedy commits without backtracking, so it yields at most one schedule.
	assert.Len(t, candidates, 1)
	for _, code := range cfg.Mandatory {
		assert.True(t, candidates[0].Contains(code))
	}
}

func TestGreedySkipsInfeasibleOptionals(t *testing.T) {
	// The optional course conflicts with the mandatory one on every variant.
	problem := mustProblem(t, []catalog.Section{
		sec("CS101.1", "CS101", 6, catalog.Lecture, slot(catalog.Monday, 1)),
		sec("ART101.1", "ART101", 3, catalog.Lecture, slot(catalog.Monday, 1)),
	})
	cfg := DefaultConfig()
	cfg.MaxCredit = 12
	cfg.Mandatory = []string{"CS101"}
	cfg.Optional = []string{"ART101"}

	candidates := generate(t, "greedy", problem, cfg)

	assert.Len(t, candidates, 1)
	assert.Equal(t, []string{"CS101.1"}, candidates[0].Codes())
}

func TestGreedyDeadEndsOnMandatoryConflict(t *testing.T) {
	// Greedy commits to CS101.1 (first listed among equally conflict-free
	// variants) and cannot backtrack when MATH101.1 then clashes.
	problem := mustProblem(t, []catalog.Section{
		sec("CS101.1", "CS101", 6, catalog.Lecture, slot(catalog.Monday, 1)),
		sec("CS101.2", "CS101", 6, catalog.Lecture, slot(catalog.Tuesday, 1)),
		sec("MATH101.1", "MATH101", 6, catalog.Lecture, slot(catalog.Monday, 1)),
	})
	cfg := DefaultConfig()
	cfg.MaxCredit = 12
	cfg.Mandatory = []string{"CS101", "MATH101"}

	assert.Empty(t, generate(t, "greedy", problem, cfg))
}

func TestAStarPopsBestScheduleFirst(t *testing.T) {
	problem := semesterProblem(t)
	cfg := semesterConfig()

	candidates := generate(t, "astar", problem, cfg)

	assert.NotEmpty(t, candidates)
	// The cheapest goal state carries the least unfilled credit.
	assert.Equal(t, 24, candidates[0].TotalCredit)
}

func TestDFSHonorsMaxResults(t *testing.T) {
	problem := semesterProblem(t)
	cfg := semesterConfig()
	cfg.MaxResults = 3

	assert.Len(t, generate(t, "dfs", problem, cfg), 3)
}

func TestStochasticStrategiesFindTheOptimum(t *testing.T) {
	// The fixture is small enough that the population and local searches
	// reliably reach a full-credit schedule.
	problem := semesterProblem(t)
	cfg := semesterConfig()

	for _, name := range []string{"genetic", "annealing", "tabu"} {
		t.Run(name, func(t *testing.T) {
			candidates := generate(t, name, problem, cfg)

			assert.NotEmpty(t, candidates)
			assert.Equal(t, 24, candidates[0].TotalCredit)
		})
	}
}

func TestMandatoryVariantsPartiallyConflict(t *testing.T) {
	// Only one of the two mandatory variant combinations is conflict-free:
	// CS101.1 clashes with MATH101.1, CS101.2 does not. Every strategy that
	// reseeds or backtracks must still reach it, on any seed.
	problem := mustProblem(t, []catalog.Section{
		sec("CS101.1", "CS101", 6, catalog.Lecture, slot(catalog.Monday, 1)),
		sec("CS101.2", "CS101", 6, catalog.Lecture, slot(catalog.Tuesday, 1)),
		sec("MATH101.1", "MATH101", 6, catalog.Lecture, slot(catalog.Monday, 1)),
	})

	for _, name := range []string{"dfs", "bfs", "astar", "propagation", "genetic", "annealing", "tabu"} {
		t.Run(name, func(t *testing.T) {
			for seed := int64(1); seed <= 20; seed++ {
				cfg := DefaultConfig()
				cfg.MaxCredit = 12
				cfg.Mandatory = []string{"CS101", "MATH101"}
				cfg.Seed = seed

				candidates := generate(t, name, problem, cfg)

				assert.Len(t, candidates, 1, "seed %d", seed)
				assert.Equal(t, []string{"CS101.2", "MATH101.1"}, candidates[0].Codes())
				assert.Equal(t, 0, candidates[0].ConflictPairs)
			}
		})
	}
}

func TestUnknownOptionalCodesAreIgnored(t *testing.T) {
	problem := semesterProblem(t)
	cfg := semesterConfig()
	cfg.Optional = append(cfg.Optional, "NOPE101")

	candidates := generate(t, "dfs", problem, cfg)

	assert.NotEmpty(t, candidates)
	for _, candidate := range candidates {
		assert.False(t, candidate.Contains("NOPE101"))
	}
}
