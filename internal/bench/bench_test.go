package bench

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"courseplan/internal/catalog"
	"courseplan/internal/search"

	. "github.com/onsi/gomega"
)

func benchProblem(t *testing.T) *search.Problem {
	t.Helper()
	sections := []catalog.Section{
		{Code: "CS101.1", MainCode: "CS101", Name: "Programming", Credit: 6, Kind: catalog.Lecture,
			Slots: []catalog.TimeSlot{{Day: catalog.Monday, Period: 1}}},
		{Code: "CS101.2", MainCode: "CS101", Name: "Programming", Credit: 6, Kind: catalog.Lecture,
			Slots: []catalog.TimeSlot{{Day: catalog.Tuesday, Period: 1}}},
		{Code: "MATH101.1", MainCode: "MATH101", Name: "Calculus", Credit: 6, Kind: catalog.Lecture,
			Slots: []catalog.TimeSlot{{Day: catalog.Wednesday, Period: 1}}},
		{Code: "HIST101.1", MainCode: "HIST101", Name: "History", Credit: 2, Kind: catalog.Lecture,
			Slots: []catalog.TimeSlot{{Day: catalog.Friday, Period: 1}}},
	}
	cat, err := catalog.New(sections)
	if err != nil {
		t.Fatalf("cannot build catalog: %v", err)
	}
	return search.NewProblem(cat)
}

func benchConfig() search.Config {
	cfg := search.DefaultConfig()
	cfg.MaxCredit = 20
	cfg.Mandatory = []string{"CS101", "MATH101"}
	cfg.Optional = []string{"HIST101"}
	cfg.Seed = 7
	return cfg
}

func TestCompareReportsEveryStrategy(t *testing.T) {
	g := NewWithT(t)
	problem := benchProblem(t)
	names := search.Names()

	records, err := Runner{Runs: 2}.Compare(context.Background(), problem, benchConfig(), names)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(records).To(HaveLen(len(names)))
	for i, record := range records {
		g.Expect(record.Strategy).To(Equal(names[i]))
		g.Expect(record.Runs).To(Equal(2))
		g.Expect(record.Candidates).To(BeNumerically(">", 0))
		g.Expect(record.BestCredit).To(Equal(14))
		g.Expect(record.MinConflicts).To(BeZero())
		g.Expect(record.DurationMeanMs).To(BeNumerically(">=", 0))
	}
}

func TestCompareParallelMatchesSequential(t *testing.T) {
	g := NewWithT(t)
	problem := benchProblem(t)
	cfg := benchConfig()
	names := search.Names()

	sequential, err := Runner{Runs: 1}.Compare(context.Background(), problem, cfg, names)
	g.Expect(err).NotTo(HaveOccurred())
	parallel, err := Runner{Runs: 1, Parallel: true}.Compare(context.Background(), problem, cfg, names)
	g.Expect(err).NotTo(HaveOccurred())

	// Timings vary between runs, but quality metrics are deterministic for a
	// fixed seed and may not depend on scheduling order.
	for i := range sequential {
		g.Expect(parallel[i].Strategy).To(Equal(sequential[i].Strategy))
		g.Expect(parallel[i].Candidates).To(Equal(sequential[i].Candidates))
		g.Expect(parallel[i].BestScore).To(Equal(sequential[i].BestScore))
		g.Expect(parallel[i].BestCredit).To(Equal(sequential[i].BestCredit))
		g.Expect(parallel[i].MinConflicts).To(Equal(sequential[i].MinConflicts))
	}
}

func TestCompareRejectsUnknownStrategy(t *testing.T) {
	g := NewWithT(t)

	_, err := Runner{}.Compare(context.Background(), benchProblem(t), benchConfig(), []string{"oracle"})

	g.Expect(err).To(HaveOccurred())
}

func TestWriteCSV(t *testing.T) {
	g := NewWithT(t)
	path := filepath.Join(t.TempDir(), "results.csv")
	records := []Record{
		{Strategy: "dfs", Runs: 3, Candidates: 4, BestScore: 14, BestCredit: 14, DurationMeanMs: 0.42},
	}

	g.Expect(WriteCSV(path, records)).To(Succeed())

	raw, err := os.ReadFile(path)
	g.Expect(err).NotTo(HaveOccurred())
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	g.Expect(lines).To(HaveLen(2))
	g.Expect(lines[0]).To(HavePrefix("strategy,runs,candidates"))
	g.Expect(lines[1]).To(HavePrefix("dfs,3,4"))
}

func TestCalcStats(t *testing.T) {
	g := NewWithT(t)

	s := calcStats([]float64{2, 4, 6})

	g.Expect(s.N).To(Equal(3))
	g.Expect(s.Mean).To(BeNumerically("~", 4.0, 1e-9))
	g.Expect(s.Std).To(BeNumerically("~", 2.0, 1e-9))
}
