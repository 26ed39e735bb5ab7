package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"
	"time"

	"courseplan/internal/catalog"
	"courseplan/internal/ingest"
	"courseplan/internal/search"

	"github.com/samber/lo"
)

type sectionOutput struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Credit     int    `json:"credit"`
	Kind       string `json:"kind"`
	Instructor string `json:"instructor"`
}

type candidateOutput struct {
	Sections      []sectionOutput `json:"sections"`
	TotalCredit   int             `json:"totalCredit"`
	ConflictPairs int             `json:"conflictPairs"`
	Score         float64         `json:"score"`
}

func main() {
	// Define arguments
	strategyPtr := flag.String("strategy", "dfs", fmt.Sprintf("Strategy to search schedules with. Allowed values are: %v, where \"dfs\" is the default", strings.Join(search.Names(), ", ")))
	filePathPtr := flag.String("file", "", "Path to the input file (.json or .csv)")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	maxCreditPtr := flag.Int("max-credit", 45, "Credit ceiling every schedule must respect")
	maxResultsPtr := flag.Int("max-results", 10, "Maximum number of schedules to return")
	maxConflictsPtr := flag.Int("max-conflicts", -1, "Maximum number of conflicting section pairs per schedule; -1 forbids conflicts entirely")
	timeoutPtr := flag.Duration("timeout", 5*time.Second, "Search deadline")
	seedPtr := flag.Int64("seed", 1, "Seed for the stochastic strategies")
	flag.Parse()
	strategy := strings.ToLower(*strategyPtr)
	filePath := *filePathPtr

	// Validate arguments
	if !slices.Contains(search.Names(), strategy) {
		log.Fatalf("%v is not a valid strategy", strategy)
	} else if filePath == "" {
		log.Fatal("an input file must be specified")
	}

	// Extract input
	input, err := ingest.FromFile(filePath)
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
	if *maxConflictsPtr >= 0 {
		cfg.AllowConflicts = true
		cfg.MaxConflictPairs = *maxConflictsPtr
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// Initialize engine
	scheduler := lo.Must(search.New(strategy))
	problem := search.NewProblem(cat)

	// Search schedules
	candidates := scheduler.Generate(context.Background(), problem, cfg)

	output := lo.Map(candidates, func(candidate search.Candidate, _ int) candidateOutput {
		return candidateOutput{
			Sections: lo.Map(candidate.Sections, func(section catalog.Section, _ int) sectionOutput {
				return sectionOutput{
					Code:       section.Code,
					Name:       section.Name,
					Credit:     section.Credit,
					Kind:       section.Kind.String(),
					Instructor: section.Instructor,
				}
			}),
			TotalCredit:   candidate.TotalCredit,
			ConflictPairs: candidate.ConflictPairs,
			Score:         candidate.Score,
		}
	})

	outputJson, err := json.Marshal(output)
	if err != nil {
		log.Fatalf("an error occurred while building output json: %v", err)
	}

	if *outFilePathPtr == "" {
		fmt.Println(string(outputJson))
	} else if err := os.WriteFile(*outFilePathPtr, outputJson, 0666); err != nil {
		log.Fatalf("an error occurred while writing to the output file: %v", err)
	}
}
