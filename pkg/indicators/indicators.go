// Package indicators measures how close an obtained front is to a reference
// front in objective space.
package indicators

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/moeakit/moea/pkg/density"
	"github.com/moeakit/moea/pkg/framework"
)

// IGD is the inverted generational distance: the mean Euclidean distance from
// every reference point to its nearest obtained point. Lower is better, and it
// is zero only when every reference point was found.
func IGD(obtained, reference []framework.ObjectiveSpacePoint) (float64, error) {
	return meanNearest(reference, obtained)
}

// NormalizedIGD is IGD after mapping both fronts through the bounding box of
// the reference front, so that objectives with large ranges do not dominate
// the distance.
func NormalizedIGD(obtained, reference []framework.ObjectiveSpacePoint) (float64, error) {
	if len(reference) == 0 {
		return 0, framework.ErrEmptyFront
	}
	for _, points := range [][]framework.ObjectiveSpacePoint{obtained, reference} {
		for i, p := range points {
			if len(p) != len(reference[0]) {
				return 0, fmt.Errorf("point %d has %d objectives, want %d: %w", i, len(p), len(reference[0]), framework.ErrObjectiveCount)
			}
		}
	}
	n := density.NewNormalizerFromPoints(reference)
	return IGD(n.NormalizeAll(obtained), n.NormalizeAll(reference))
}

// GenerationalDistance is the mean Euclidean distance from every obtained
// point to its nearest reference point. It rewards convergence but, unlike
// IGD, not spread.
func GenerationalDistance(obtained, reference []framework.ObjectiveSpacePoint) (float64, error) {
	return meanNearest(obtained, reference)
}

func meanNearest(from, to []framework.ObjectiveSpacePoint) (float64, error) {
	if len(from) == 0 || len(to) == 0 {
		return 0, framework.ErrEmptyFront
	}
	m := len(from[0])
	sum := 0.0
	for i, p := range from {
		if len(p) != m {
			return 0, fmt.Errorf("point %d has %d objectives, want %d: %w", i, len(p), m, framework.ErrObjectiveCount)
		}
		nearest := math.Inf(1)
		for j, q := range to {
			if len(q) != m {
				return 0, fmt.Errorf("point %d has %d objectives, want %d: %w", j, len(q), m, framework.ErrObjectiveCount)
			}
			if d := floats.Distance(p, q, 2); d < nearest {
				nearest = d
			}
		}
		sum += nearest
	}
	return sum / float64(len(from)), nil
}
