package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"courseplan/internal/bench"
	"courseplan/internal/ingest"
	"courseplan/internal/search"
)

func main() {
	filePathPtr := flag.String("file", "", "Path to the input file (.json or .csv)")
	outFilePathPtr := flag.String("out", "benchmark_results.csv", "Path of the CSV results file")
	runsPtr := flag.Int("runs", 3, "Repetitions per strategy")
	parallelPtr := flag.Bool("parallel", false, "Run strategies on parallel workers")
	maxCreditPtr := flag.Int("max-credit", 45, "Credit ceiling every schedule must respect")
	maxResultsPtr := flag.Int("max-results", 10, "Maximum number of schedules per strategy")
	timeoutPtr := flag.Duration("timeout", 5*time.Second, "Per-strategy deadline")
	seedPtr := flag.Int64("seed", 1, "Seed for the stochastic strategies")
	flag.Parse()

	if *filePathPtr == "" {
		log.Fatal("an input file must be specified")
	}

	input, err := ingest.FromFile(*filePathPtr)
	if err != nil {
		log.Fatalf("cannot parse input file: %v", err)
	}
	cat, err := input.Catalog()
	if err != nil {
		log.Fatalf("invalid catalog: %v", err)
	}

	cfg := search.DefaultConfig()
	cfg.MaxCredit = *maxCreditPtr
	cfg.MaxResults = *maxResultsPtr
	cfg.Timeout = *timeoutPtr
	cfg.Seed = *seedPtr
	cfg.Mandatory = input.Mandatory
	cfg.Optional = input.Optional
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// The problem snapshot is built once and shared read-only by every
	// strategy, so the comparison measures algorithms, not input drift.
	problem := search.NewProblem(cat)
	runner := bench.Runner{Runs: *runsPtr, Parallel: *parallelPtr}

	names := search.Names()
	fmt.Printf("Benchmarking %v strategies against %v sections\n", len(names), cat.Len())

	records, err := runner.Compare(context.Background(), problem, cfg, names)
	if err != nil {
		log.Fatalf("an error occurred during the comparison: %v", err)
	}

	for _, record := range records {
		fmt.Printf("%-12v candidates=%-3d best_score=%-8.1f best_credit=%-3d min_conflicts=%-2d mean=%.2fms\n",
			record.Strategy, record.Candidates, record.BestScore, record.BestCredit, record.MinConflicts, record.DurationMeanMs)
	}

	if err := bench.WriteCSV(*outFilePathPtr, records); err != nil {
		log.Fatalf("cannot write results: %v", err)
	}
}
