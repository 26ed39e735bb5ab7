package search

import (
	"container/heap"
	"context"

	"courseplan/internal/conflict"
)

// astarScheduler orders the frontier by g + h, where g charges the conflict
// pairs accumulated so far plus the credit still missing from the cap, and
// h is the admissible zero bound on the remaining cost. Goal states pop off
// the queue cheapest-first until the result budget is met.
type astarScheduler struct{}

type astarNode struct {
	mask   conflict.Mask
	ids    []int
	depth  int
	credit int
	pairs  int
	cost   float64
	seq    int // insertion order, breaks cost ties deterministically
}

type astarQueue []*astarNode

func (q astarQueue) Len() int { return len(q) }
func (q astarQueue) Less(i, j int) bool {
	if q[i].cost != q[j].cost {
		return q[i].cost < q[j].cost
	}
	return q[i].seq < q[j].seq
}
func (q astarQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *astarQueue) Push(x any) { *q = append(*q, x.(*astarNode)) }
func (q *astarQueue) Pop() any {
	old := *q
	last := len(old) - 1
	node := old[last]
	old[last] = nil
	*q = old[:last]
	return node
}

func (s *astarScheduler) Generate(ctx context.Context, problem *Problem, cfg Config) []Candidate {
	v, cfg := prepare(problem, cfg)
	if v == nil {
		return []Candidate{}
	}

	col := newCollector(v, cfg)
	stop := newDeadline(ctx, cfg.Timeout)
	index := v.problem.Index
	sections := v.problem.Catalog.Sections()

	cost := func(credit, pairs int) float64 {
		return conflictPenalty*float64(pairs) + float64(cfg.MaxCredit-credit)
	}

	seq := 0
	queue := &astarQueue{{mask: index.EmptyMask(), cost: cost(0, 0)}}
	heap.Init(queue)

	for queue.Len() > 0 {
		if stop.exceeded() {
			break
		}
		node := heap.Pop(queue).(*astarNode)

		if node.depth == len(v.groups) {
			col.add(node.ids, node.credit, node.pairs)
			if col.full() {
				break
			}
			continue
		}

		push := func(child *astarNode) {
			if queue.Len() >= maxFrontier {
				return
			}
			seq++
			child.seq = seq
			heap.Push(queue, child)
		}

		for _, id := range v.variantIDs[node.depth] {
			credit := node.credit + sections[id].Credit
			if credit > cfg.MaxCredit {
				continue
			}
			pairs := node.pairs + index.NewPairs(node.mask, id)
			if pairs > cfg.pairBudget() {
				continue
			}
			push(&astarNode{
				mask:   index.Add(node.mask, id),
				ids:    append(append([]int{}, node.ids...), id),
				depth:  node.depth + 1,
				credit: credit,
				pairs:  pairs,
				cost:   cost(credit, pairs),
			})
		}
		if v.optional(node.depth) {
			push(&astarNode{
				mask:   node.mask,
				ids:    node.ids,
				depth:  node.depth + 1,
				credit: node.credit,
				pairs:  node.pairs,
				cost:   node.cost,
			})
		}
	}

	return col.results()
}
