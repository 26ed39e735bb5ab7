package search

import (
	"fmt"
	"time"

	"courseplan/internal/catalog"
)

// Config carries the constraints and budgets shared by every strategy plus
// the knobs of the stochastic ones. Timeouts and iteration budgets are plain
// values so tests can inject short deadlines.
type Config struct {
	MaxCredit        int
	AllowConflicts   bool
	MaxConflictPairs int // only consulted when AllowConflicts is true
	MaxResults       int
	Timeout          time.Duration

	// Priority orders section kinds for the evaluator's bonus term, most
	// preferred first.
	Priority []catalog.Kind

	Mandatory []string // main codes that must appear in every candidate
	Optional  []string // main codes included best-effort

	// Seed drives the stochastic strategies; equal seeds reproduce runs.
	Seed int64

	// Genetic knobs.
	Population    int
	Generations   int
	CrossoverRate float64
	MutationRate  float64

	// Local-search knobs (annealing and tabu).
	Iterations    int
	InitialTemp   float64
	FinalTemp     float64
	Alpha         float64
	TabuTenure    int
	NoImprovement int // tabu stops after this many non-improving iterations
}

// DefaultConfig returns the budgets used when a field is left zero.
func DefaultConfig() Config {
	return Config{
		MaxCredit:     45,
		MaxResults:    32,
		Timeout:       5 * time.Second,
		Population:    64,
		Generations:   120,
		CrossoverRate: 0.9,
		MutationRate:  0.2,
		Iterations:    4000,
		InitialTemp:   10,
		FinalTemp:     0.01,
		Alpha:         0.995,
		TabuTenure:    16,
		NoImprovement: 250,
	}
}

// Validate rejects configurations the engine cannot honor. The CLIs call it
// before a run; Generate itself absorbs zero values via normalize instead of
// erroring, per the contract.
func (c Config) Validate() error {
	if c.MaxCredit < 0 {
		return fmt.Errorf("max credit must not be negative: %d", c.MaxCredit)
	}
	if c.MaxConflictPairs < 0 {
		return fmt.Errorf("max conflict pairs must not be negative: %d", c.MaxConflictPairs)
	}
	if c.MaxResults < 0 {
		return fmt.Errorf("max results must not be negative: %d", c.MaxResults)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative: %v", c.Timeout)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf("crossover rate must be within [0,1]: %f", c.CrossoverRate)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("mutation rate must be within [0,1]: %f", c.MutationRate)
	}
	return nil
}

// normalize fills zero-valued budgets with defaults so strategies never have
// to special-case them.
func (c Config) normalize() Config {
	defaults := DefaultConfig()
	if c.MaxCredit == 0 {
		c.MaxCredit = defaults.MaxCredit
	}
	if c.MaxResults == 0 {
		c.MaxResults = defaults.MaxResults
	}
	if c.Timeout == 0 {
		c.Timeout = defaults.Timeout
	}
	if c.Population <= 1 {
		c.Population = defaults.Population
	}
	if c.Generations == 0 {
		c.Generations = defaults.Generations
	}
	if c.CrossoverRate == 0 {
		c.CrossoverRate = defaults.CrossoverRate
	}
	if c.MutationRate == 0 {
		c.MutationRate = defaults.MutationRate
	}
	if c.Iterations == 0 {
		c.Iterations = defaults.Iterations
	}
	if c.InitialTemp == 0 {
		c.InitialTemp = defaults.InitialTemp
	}
	if c.FinalTemp == 0 {
		c.FinalTemp = defaults.FinalTemp
	}
	if c.Alpha == 0 {
		c.Alpha = defaults.Alpha
	}
	if c.TabuTenure == 0 {
		c.TabuTenure = defaults.TabuTenure
	}
	if c.NoImprovement == 0 {
		c.NoImprovement = defaults.NoImprovement
	}
	return c
}

// pairBudget is the hard cap on conflicting pairs implied by the config.
func (c Config) pairBudget() int {
	if !c.AllowConflicts {
		return 0
	}
	return c.MaxConflictPairs
}
