package search

import (
	"context"

	"courseplan/internal/conflict"
)

// maxFrontier bounds the working set of the frontier-based strategies so
// memory stays independent of catalog size; overflowing nodes are dropped in
// expansion order.
const maxFrontier = 1 << 14

// bfsScheduler expands the assignment tree level by level, one course group
// per level, with the same hard-cap pruning as DFS. Complete states all sit
// at the final level, so the first MaxResults of them are the result set.
type bfsScheduler struct{}

type bfsNode struct {
	mask   conflict.Mask
	ids    []int
	credit int
	pairs  int
}

func (s *bfsScheduler) Generate(ctx context.Context, problem *Problem, cfg Config) []Candidate {
	v, cfg := prepare(problem, cfg)
	if v == nil {
		return []Candidate{}
	}

	col := newCollector(v, cfg)
	stop := newDeadline(ctx, cfg.Timeout)
	index := v.problem.Index
	sections := v.problem.Catalog.Sections()

	frontier := []bfsNode{{mask: index.EmptyMask()}}
	for depth := 0; depth < len(v.groups) && len(frontier) > 0; depth++ {
		next := make([]bfsNode, 0, len(frontier))
		for _, node := range frontier {
			if stop.exceeded() {
				return col.results()
			}
			for _, id := range v.variantIDs[depth] {
				if node.credit+sections[id].Credit > cfg.MaxCredit {
					continue
				}
				newPairs := index.NewPairs(node.mask, id)
				if node.pairs+newPairs > cfg.pairBudget() {
					continue
				}
				child := bfsNode{
					mask:   index.Add(node.mask, id),
					ids:    append(append([]int{}, node.ids...), id),
					credit: node.credit + sections[id].Credit,
					pairs:  node.pairs + newPairs,
				}
				if len(next) < maxFrontier {
					next = append(next, child)
				}
			}
			if v.optional(depth) && len(next) < maxFrontier {
				next = append(next, node)
			}
		}
		frontier = next
	}

	for _, node := range frontier {
		col.add(node.ids, node.credit, node.pairs)
		if col.full() {
			break
		}
	}
	return col.results()
}
