// Package ranking partitions a population into dominance fronts with the fast
// non-dominated sort of NSGA-II.
package ranking

import (
	"fmt"
	"slices"

	"github.com/moeakit/moea/pkg/dominance"
	"github.com/moeakit/moea/pkg/framework"
)

// Ranking holds the fronts produced by one call to Rank. Front 0 is the
// non-dominated subset of the input.
type Ranking struct {
	fronts []framework.Front
}

// Fronts returns all fronts, best first.
func (r *Ranking) Fronts() []framework.Front {
	return r.fronts
}

// SubFront returns front i.
func (r *Ranking) SubFront(i int) framework.Front {
	return r.fronts[i]
}

// NumberOfSubFronts returns how many fronts the population was split into.
func (r *Ranking) NumberOfSubFronts() int {
	return len(r.fronts)
}

// Rank performs non-dominated sorting on the population. Every solution is
// placed in exactly one front and, when ann is not nil, its front index is
// recorded there. Inside a front solutions keep their input order.
//
// All solutions must be non-nil and share the objective count of the first.
func Rank(population []*framework.Solution, ann *framework.Annotations) (*Ranking, error) {
	if err := validate(population); err != nil {
		return nil, err
	}

	n := len(population)
	dominated := make([][]int, n)
	domCount := make([]int, n)

	// Calculate domination for each individual
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			switch dominance.Dominance(population[i], population[j]) {
			case dominance.FirstBetter:
				dominated[i] = append(dominated[i], j)
				domCount[j]++
			case dominance.SecondBetter:
				dominated[j] = append(dominated[j], i)
				domCount[i]++
			}
		}
	}

	r := &Ranking{}

	// Find first front
	var currentFront []int
	for i := 0; i < n; i++ {
		if domCount[i] == 0 {
			currentFront = append(currentFront, i)
		}
	}

	// Find subsequent fronts
	for len(currentFront) > 0 {
		rank := len(r.fronts)
		front := make(framework.Front, len(currentFront))
		for k, idx := range currentFront {
			front[k] = population[idx]
			if ann != nil {
				ann.SetRank(population[idx], rank)
			}
		}
		r.fronts = append(r.fronts, front)

		var nextFront []int
		for _, idx := range currentFront {
			for _, dominatedIdx := range dominated[idx] {
				domCount[dominatedIdx]--
				if domCount[dominatedIdx] == 0 {
					nextFront = append(nextFront, dominatedIdx)
				}
			}
		}
		slices.Sort(nextFront)
		currentFront = nextFront
	}

	return r, nil
}

// NonDominated returns the first front of the population.
func NonDominated(population []*framework.Solution) (framework.Front, error) {
	r, err := Rank(population, nil)
	if err != nil {
		return nil, err
	}
	if r.NumberOfSubFronts() == 0 {
		return nil, nil
	}
	return r.SubFront(0), nil
}

func validate(population []*framework.Solution) error {
	if len(population) == 0 {
		return nil
	}
	for i, s := range population {
		if s == nil {
			return fmt.Errorf("ranking: solution %d: %w", i, framework.ErrNilSolution)
		}
	}
	m := population[0].NumberOfObjectives()
	for i, s := range population {
		if err := framework.CheckObjectives(s, m); err != nil {
			return fmt.Errorf("ranking: solution %d: %w", i, err)
		}
	}
	return nil
}
