// Package bench compares search strategies on identical, frozen inputs so
// timing and quality differences are attributable only to the algorithms.
package bench

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"courseplan/internal/search"

	"github.com/gocarina/gocsv"
)

// Record holds the normalized per-strategy metrics of one comparison.
type Record struct {
	Strategy       string  `csv:"strategy"`
	Runs           int     `csv:"runs"`
	Candidates     int     `csv:"candidates"`
	BestScore      float64 `csv:"best_score"`
	BestCredit     int     `csv:"best_credit"`
	MinConflicts   int     `csv:"min_conflicts"`
	DurationMeanMs float64 `csv:"duration_mean_ms"`
	DurationStdMs  float64 `csv:"duration_std_ms"`
}

// Runner drives the comparison. All strategies receive the same read-only
// problem snapshot and config; with Parallel set they run on independent
// goroutines and merge at a single point, so results never depend on
// execution order.
type Runner struct {
	Runs     int // repetitions per strategy, 1 when zero
	Parallel bool
}

// Compare runs every named strategy against the frozen problem and returns
// one record per strategy, in the order the names were given.
func (r Runner) Compare(ctx context.Context, problem *search.Problem, cfg search.Config, names []string) ([]Record, error) {
	schedulers := make([]search.Scheduler, len(names))
	for i, name := range names {
		scheduler, err := search.New(name)
		if err != nil {
			return nil, err
		}
		schedulers[i] = scheduler
	}

	records := make([]Record, len(names))
	run := func(i int) {
		records[i] = r.measure(ctx, names[i], schedulers[i], problem, cfg)
	}

	if r.Parallel {
		var wg sync.WaitGroup
		for i := range schedulers {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				run(i)
			}(i)
		}
		wg.Wait()
	} else {
		for i := range schedulers {
			run(i)
		}
	}

	return records, nil
}

func (r Runner) measure(ctx context.Context, name string, scheduler search.Scheduler, problem *search.Problem, cfg search.Config) Record {
	runs := r.Runs
	if runs <= 0 {
		runs = 1
	}

	record := Record{Strategy: name, Runs: runs}
	durations := make([]float64, 0, runs)

	for i := 0; i < runs; i++ {
		start := time.Now()
		candidates := scheduler.Generate(ctx, problem, cfg)
		durations = append(durations, float64(time.Since(start).Microseconds())/1000.0)

		if i > 0 {
			continue
		}
		record.Candidates = len(candidates)
		for rank, candidate := range candidates {
			if rank == 0 {
				record.BestScore = candidate.Score
				record.BestCredit = candidate.TotalCredit
				record.MinConflicts = candidate.ConflictPairs
			}
			if candidate.ConflictPairs < record.MinConflicts {
				record.MinConflicts = candidate.ConflictPairs
			}
		}
	}

	stats := calcStats(durations)
	record.DurationMeanMs = stats.Mean
	record.DurationStdMs = stats.Std
	return record
}

// WriteCSV stores comparison records at the given path.
func WriteCSV(path string, records []Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create results file: %w", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&records, file); err != nil {
		return fmt.Errorf("cannot write results file: %w", err)
	}
	return nil
}
