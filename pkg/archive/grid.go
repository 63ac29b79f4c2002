package archive

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/moeakit/moea/pkg/framework"
)

// AdaptiveGrid divides the bounding box of a set of solutions into
// 2^(bisections*objectives) hypercubes by bisecting every objective range
// bisections times, and counts how many solutions fall in each hypercube.
//
// The grid is derived state: Rebuild recomputes it from a member set, while
// AddSolution and RemoveSolution update the counts incrementally. Only
// occupied hypercubes are stored.
type AdaptiveGrid struct {
	bisections int
	objectives int

	lowerLimits  []float64
	upperLimits  []float64
	divisionSize []float64

	hypercubes    map[int]int
	occupied      []int
	mostPopulated int
}

// NewAdaptiveGrid returns an empty grid. Until the first Rebuild every
// solution is out of bounds.
func NewAdaptiveGrid(bisections, objectives int) (*AdaptiveGrid, error) {
	if bisections < 1 {
		return nil, fmt.Errorf("archive: %w: %d", framework.ErrInvalidBisections, bisections)
	}
	if objectives < 1 {
		return nil, fmt.Errorf("archive: %w: %d", framework.ErrInvalidObjectives, objectives)
	}
	if bisections*objectives >= 63 {
		return nil, fmt.Errorf("archive: %w: %d bisections x %d objectives",
			framework.ErrGridTooLarge, bisections, objectives)
	}
	g := &AdaptiveGrid{
		bisections:   bisections,
		objectives:   objectives,
		lowerLimits:  make([]float64, objectives),
		upperLimits:  make([]float64, objectives),
		divisionSize: make([]float64, objectives),
		hypercubes:   make(map[int]int),
	}
	g.Reset()
	return g, nil
}

// Reset empties the grid and collapses its bounding box.
func (g *AdaptiveGrid) Reset() {
	for i := range g.lowerLimits {
		g.lowerLimits[i] = math.Inf(1)
		g.upperLimits[i] = math.Inf(-1)
		g.divisionSize[i] = 0
	}
	clear(g.hypercubes)
	g.occupied = g.occupied[:0]
	g.mostPopulated = -1
}

func (g *AdaptiveGrid) Bisections() int {
	return g.bisections
}

// NumberOfHypercubes returns 2^(bisections*objectives).
func (g *AdaptiveGrid) NumberOfHypercubes() int {
	return 1 << (g.bisections * g.objectives)
}

func (g *AdaptiveGrid) LowerLimits() []float64 {
	return slices.Clone(g.lowerLimits)
}

func (g *AdaptiveGrid) UpperLimits() []float64 {
	return slices.Clone(g.upperLimits)
}

// UpdateLimits sets the bounding box to the smallest one containing members.
func (g *AdaptiveGrid) UpdateLimits(members []*framework.Solution) {
	for obj := 0; obj < g.objectives; obj++ {
		g.lowerLimits[obj] = math.Inf(1)
		g.upperLimits[obj] = math.Inf(-1)
		for _, s := range members {
			g.lowerLimits[obj] = min(g.lowerLimits[obj], s.Objectives[obj])
			g.upperLimits[obj] = max(g.upperLimits[obj], s.Objectives[obj])
		}
		g.divisionSize[obj] = g.upperLimits[obj] - g.lowerLimits[obj]
	}
}

// Rebuild recomputes the bounding box from members, resets every count and
// locates every member again.
func (g *AdaptiveGrid) Rebuild(members []*framework.Solution) {
	g.Reset()
	if len(members) == 0 {
		return
	}
	g.UpdateLimits(members)
	for _, s := range members {
		loc := g.Location(s)
		g.hypercubes[loc]++
		if g.hypercubes[loc] > g.Density(g.mostPopulated) {
			g.mostPopulated = loc
		}
	}
	g.calculateOccupied()
}

// OutOfBounds reports whether some objective of s lies outside the current
// bounding box, in which case the grid has to be rebuilt before s can be
// counted.
func (g *AdaptiveGrid) OutOfBounds(s *framework.Solution) bool {
	for obj := 0; obj < g.objectives; obj++ {
		v := s.Objectives[obj]
		if v < g.lowerLimits[obj] || v > g.upperLimits[obj] {
			return true
		}
	}
	return false
}

// Location returns the hypercube containing s, or -1 if s is out of bounds.
// Each objective range is bisected recursively to get a bisections-bit
// coordinate, and the coordinates are packed as
// sum(coordinate[obj] << (obj*bisections)).
func (g *AdaptiveGrid) Location(s *framework.Solution) int {
	if g.OutOfBounds(s) {
		return -1
	}

	location := 0
	for obj := 0; obj < g.objectives; obj++ {
		value := s.Objectives[obj]
		position := 0
		switch value {
		case g.lowerLimits[obj]:
			position = 0
		case g.upperLimits[obj]:
			position = 1<<g.bisections - 1
		default:
			tmpSize := g.divisionSize[obj]
			account := g.lowerLimits[obj]
			ranges := 1 << g.bisections
			for b := 0; b < g.bisections; b++ {
				tmpSize /= 2
				ranges /= 2
				if value > account+tmpSize {
					position += ranges
					account += tmpSize
				}
			}
		}
		location += position << (obj * g.bisections)
	}
	return location
}

// Locate stores the hypercube of s in s.Location and returns it.
func (g *AdaptiveGrid) Locate(s *framework.Solution) int {
	s.Location = g.Location(s)
	return s.Location
}

// Density returns the number of solutions counted in hypercube location.
func (g *AdaptiveGrid) Density(location int) int {
	return g.hypercubes[location]
}

// MostPopulatedHypercube returns the hypercube with the highest count, or -1
// when the grid is empty.
func (g *AdaptiveGrid) MostPopulatedHypercube() int {
	return g.mostPopulated
}

// OccupiedHypercubes returns the hypercubes with a positive count, ascending.
func (g *AdaptiveGrid) OccupiedHypercubes() []int {
	return slices.Clone(g.occupied)
}

// AddSolution increments the count of location.
func (g *AdaptiveGrid) AddSolution(location int) {
	g.hypercubes[location]++
	if g.hypercubes[location] > g.Density(g.mostPopulated) {
		g.mostPopulated = location
	}
	if g.hypercubes[location] == 1 {
		i, _ := slices.BinarySearch(g.occupied, location)
		g.occupied = slices.Insert(g.occupied, i, location)
	}
}

// RemoveSolution decrements the count of location.
func (g *AdaptiveGrid) RemoveSolution(location int) {
	if g.hypercubes[location] == 0 {
		return
	}
	g.hypercubes[location]--
	if g.hypercubes[location] == 0 {
		delete(g.hypercubes, location)
		if i, found := slices.BinarySearch(g.occupied, location); found {
			g.occupied = slices.Delete(g.occupied, i, i+1)
		}
	}

	if location == g.mostPopulated {
		for _, loc := range g.occupied {
			if g.hypercubes[loc] > g.Density(g.mostPopulated) {
				g.mostPopulated = loc
			}
		}
		if g.Density(g.mostPopulated) == 0 {
			g.mostPopulated = -1
		}
	}
}

// RandomOccupiedHypercube picks uniformly among the occupied hypercubes. It
// returns -1 when the grid is empty.
func (g *AdaptiveGrid) RandomOccupiedHypercube(rng *rand.Rand) int {
	if len(g.occupied) == 0 {
		return -1
	}
	return g.occupied[rng.IntN(len(g.occupied))]
}

// RouletteWheel picks an occupied hypercube with probability proportional to
// the inverse of its count, favouring sparse regions. It returns -1 when the
// grid is empty.
func (g *AdaptiveGrid) RouletteWheel(rng *rand.Rand) int {
	if len(g.occupied) == 0 {
		return -1
	}
	inverseSum := 0.0
	for _, loc := range g.occupied {
		inverseSum += 1.0 / float64(g.hypercubes[loc])
	}

	random := rng.Float64() * inverseSum
	accumulated := 0.0
	for _, loc := range g.occupied {
		accumulated += 1.0 / float64(g.hypercubes[loc])
		if accumulated > random {
			return loc
		}
	}
	return g.occupied[len(g.occupied)-1]
}

func (g *AdaptiveGrid) calculateOccupied() {
	g.occupied = g.occupied[:0]
	for loc := range g.hypercubes {
		g.occupied = append(g.occupied, loc)
	}
	slices.Sort(g.occupied)
}
