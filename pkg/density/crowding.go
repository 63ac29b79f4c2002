// Package density estimates how crowded the neighbourhood of a solution is
// inside its front.
package density

import (
	"fmt"
	"math"
	"sort"

	"github.com/moeakit/moea/pkg/framework"
)

// AssignCrowdingDistance calculates the crowding distance of every member of
// front and stores it in ann. The distance approximates the perimeter of the
// cuboid formed by a solution's nearest neighbours; boundary solutions get
// +Inf. The order of front is left untouched.
//
// An objective whose values are all equal contributes nothing to interior
// members, its extremes still become +Inf.
func AssignCrowdingDistance(front framework.Front, numberOfObjectives int, ann *framework.Annotations) error {
	if numberOfObjectives <= 0 {
		return fmt.Errorf("density: %w: %d", framework.ErrInvalidObjectives, numberOfObjectives)
	}
	for i, s := range front {
		if err := framework.CheckObjectives(s, numberOfObjectives); err != nil {
			return fmt.Errorf("density: solution %d: %w", i, err)
		}
	}

	if len(front) <= 2 {
		for _, s := range front {
			ann.SetCrowdingDistance(s, math.Inf(1))
		}
		return nil
	}

	distance := make([]float64, len(front))
	order := make([]int, len(front))

	for m := 0; m < numberOfObjectives; m++ {
		for i := range order {
			order[i] = i
		}
		// Sort by each objective
		sort.SliceStable(order, func(i, j int) bool {
			return front[order[i]].Objectives[m] < front[order[j]].Objectives[m]
		})

		first, last := order[0], order[len(order)-1]
		objectiveRange := front[last].Objectives[m] - front[first].Objectives[m]

		// Set boundary points to infinity
		distance[first] = math.Inf(1)
		distance[last] = math.Inf(1)

		if objectiveRange == 0 {
			continue
		}

		// Calculate distance for intermediate points
		for k := 1; k < len(order)-1; k++ {
			next := front[order[k+1]].Objectives[m]
			prev := front[order[k-1]].Objectives[m]
			distance[order[k]] += (next - prev) / objectiveRange
		}
	}

	for i, s := range front {
		ann.SetCrowdingDistance(s, distance[i])
	}
	return nil
}
