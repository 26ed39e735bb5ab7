package search

import (
	"math"
	"slices"
)

// conflictPenalty dominates any attainable credit or bonus term, so a
// conflicting pair always ranks a candidate below any conflict-free one.
const conflictPenalty = 1000.0

// priorityBonusUnit keeps the kind-preference bonus strictly a tie-breaker
// against whole-credit differences.
const priorityBonusUnit = 0.1

// Score rates a candidate, higher is better. It is a pure function of the
// candidate and the config so every strategy ranks identically: a credit
// term rewarding totals up to MaxCredit (diminishing beyond, which pruning
// normally makes unreachable), a large penalty per conflicting pair, and a
// small bonus per section whose kind matches the configured priority order.
func Score(candidate Candidate, cfg Config) float64 {
	credit := float64(candidate.TotalCredit)
	if candidate.TotalCredit > cfg.MaxCredit {
		credit = float64(cfg.MaxCredit) + math.Sqrt(float64(candidate.TotalCredit-cfg.MaxCredit))
	}

	bonus := 0.0
	for _, section := range candidate.Sections {
		if rank := slices.Index(cfg.Priority, section.Kind); rank >= 0 {
			bonus += priorityBonusUnit * float64(len(cfg.Priority)-rank)
		}
	}

	return credit - conflictPenalty*float64(candidate.ConflictPairs) + bonus
}
