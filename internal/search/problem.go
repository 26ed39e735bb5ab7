package search

import (
	"courseplan/internal/catalog"
	"courseplan/internal/conflict"
)

// Problem is the frozen, read-only input of a search: the validated catalog
// and its conflict index, built once and shared by reference across any
// number of concurrent strategy invocations.
type Problem struct {
	Catalog *catalog.Catalog
	Index   *conflict.Index
}

// NewProblem builds the conflict index for the catalog. The quadratic cost
// is paid here exactly once per catalog.
func NewProblem(cat *catalog.Catalog) *Problem {
	return &Problem{
		Catalog: cat,
		Index:   conflict.Build(cat.Sections()),
	}
}
