package archive

import (
	"k8s.io/klog/v2"

	"github.com/moeakit/moea/pkg/framework"
)

// AdaptiveGridArchive is the PAES archive: a bounded non-dominated archive
// that, when full, evicts a member of the most populated hypercube of an
// AdaptiveGrid kept over the members.
//
// When the offered solution itself lives in the most populated hypercube it
// is the one evicted; otherwise the earliest inserted member of that
// hypercube goes.
type AdaptiveGridArchive struct {
	base
	grid *AdaptiveGrid
}

var _ Archive = &AdaptiveGridArchive{}

// NewAdaptiveGridArchive creates an empty archive holding at most capacity
// solutions, with a grid of bisections divisions per objective.
func NewAdaptiveGridArchive(capacity, bisections, numberOfObjectives int, opts ...Option) (*AdaptiveGridArchive, error) {
	b, err := newBase(capacity, numberOfObjectives, opts)
	if err != nil {
		return nil, err
	}
	grid, err := NewAdaptiveGrid(bisections, numberOfObjectives)
	if err != nil {
		return nil, err
	}
	return &AdaptiveGridArchive{
		base: b,
		grid: grid,
	}, nil
}

// Grid gives access to the hypercube bookkeeping. Callers must not modify it.
func (a *AdaptiveGridArchive) Grid() *AdaptiveGrid {
	return a.grid
}

// Add offers s to the archive and reports whether s is a member afterwards.
func (a *AdaptiveGridArchive) Add(s *framework.Solution) (bool, error) {
	res, err := a.Insert(s)
	return res.Accepted, err
}

// Insert offers s to the archive and reports in detail what happened.
func (a *AdaptiveGridArchive) Insert(s *framework.Solution) (InsertResult, error) {
	if err := a.check(s); err != nil {
		return InsertResult{}, err
	}

	if dominated, _ := a.screen(s); dominated {
		a.emit(EventRejected)
		return InsertResult{}, nil
	}

	removed := a.removeDominatedBy(s)
	rebuild := false
	for _, r := range removed {
		loc := a.grid.Location(r)
		if loc >= 0 && a.grid.Density(loc) > 1 {
			a.grid.RemoveSolution(loc)
		} else {
			// The hypercube empties, the bounding box may shrink.
			rebuild = true
		}
	}

	a.members = append(a.members, s)
	res := InsertResult{Accepted: true, Removed: removed}

	if rebuild || a.grid.OutOfBounds(s) {
		a.rebuild()
		res.Rebuilt = true
	} else {
		a.grid.AddSolution(a.grid.Location(s))
	}

	if len(a.members) > a.capacity {
		res.Evicted = a.evict(s)
		res.Accepted = res.Evicted != s
	}

	if res.Accepted {
		a.emit(EventAccepted)
	}
	return res, nil
}

func (a *AdaptiveGridArchive) rebuild() {
	a.grid.Rebuild(a.members)
	klog.V(5).InfoS("Rebuilt adaptive grid",
		"members", len(a.members),
		"lowerLimits", a.grid.lowerLimits,
		"upperLimits", a.grid.upperLimits)
	a.emit(EventGridRebuilt)
}

// evict removes one member of the most populated hypercube, preferring s.
func (a *AdaptiveGridArchive) evict(s *framework.Solution) *framework.Solution {
	mostPopulated := a.grid.MostPopulatedHypercube()

	victim := -1
	if a.grid.Location(s) == mostPopulated {
		victim = len(a.members) - 1
	} else {
		for i, m := range a.members {
			if a.grid.Location(m) == mostPopulated {
				victim = i
				break
			}
		}
	}

	evicted := a.removeAt(victim)
	a.grid.RemoveSolution(mostPopulated)
	klog.V(5).InfoS("Evicted member of most populated hypercube",
		"objectives", evicted.Objectives,
		"hypercube", mostPopulated,
		"size", len(a.members))
	a.emit(EventEvicted)
	return evicted
}

// Location returns the hypercube of s in the current grid, or -1.
func (a *AdaptiveGridArchive) Location(s *framework.Solution) int {
	return a.grid.Location(s)
}

// Density returns the number of members in hypercube location.
func (a *AdaptiveGridArchive) Density(location int) int {
	return a.grid.Density(location)
}

// MostPopulatedHypercube returns the hypercube holding the most members.
func (a *AdaptiveGridArchive) MostPopulatedHypercube() int {
	return a.grid.MostPopulatedHypercube()
}

// Clear removes every member and resets the grid.
func (a *AdaptiveGridArchive) Clear() {
	a.clear()
	a.grid.Reset()
}
