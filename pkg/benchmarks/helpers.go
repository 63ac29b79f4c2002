package benchmarks

import (
	"github.com/moeakit/moea/pkg/framework"
)

func variables(x framework.Encoding) []float64 {
	return x.(*framework.RealSolution).Variables
}

func unitBounds(n int) []framework.Bounds {
	b := make([]framework.Bounds, n)
	for i := range n {
		b[i] = framework.Bounds{L: 0.0, H: 1.0}
	}
	return b
}

func initialize(popSize int, b []framework.Bounds) []framework.Encoding {
	population := make([]framework.Encoding, popSize)
	for i := range popSize {
		population[i] = framework.RandomRealSolution(b)
	}
	return population
}

// sample evaluates f at numPoints evenly spaced parameters in [0, 1].
func sample(numPoints int, f func(float64) framework.ObjectiveSpacePoint) []framework.ObjectiveSpacePoint {
	if numPoints <= 0 {
		return nil
	}
	if numPoints == 1 {
		return []framework.ObjectiveSpacePoint{f(0)}
	}
	points := make([]framework.ObjectiveSpacePoint, numPoints)
	for i := range numPoints {
		points[i] = f(float64(i) / float64(numPoints-1))
	}
	return points
}
