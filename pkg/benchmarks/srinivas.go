package benchmarks

import (
	"math"

	"github.com/moeakit/moea/pkg/framework"
)

// Srinivas is a two variable, two objective problem with two inequality
// constraints. Its Pareto set lies on x1 = -2.5.
type Srinivas struct{}

func NewSrinivas() *Srinivas {
	return &Srinivas{}
}

func (p *Srinivas) Name() string {
	return "Srinivas"
}

func (p *Srinivas) NumberOfObjectives() int {
	return 2
}

func (p *Srinivas) ObjectiveFuncs() []framework.ObjectiveFunc {
	return []framework.ObjectiveFunc{p.f1, p.f2}
}

func (p *Srinivas) f1(x framework.Encoding) float64 {
	xx := variables(x)
	return 2.0 + math.Pow(xx[0]-2.0, 2) + math.Pow(xx[1]-1.0, 2)
}

func (p *Srinivas) f2(x framework.Encoding) float64 {
	xx := variables(x)
	return 9.0*xx[0] - math.Pow(xx[1]-1.0, 2)
}

func (p *Srinivas) Constraints() []framework.Constraint {
	return []framework.Constraint{
		// x1^2 + x2^2 <= 225
		func(x framework.Encoding) float64 {
			xx := variables(x)
			return 1.0 - (xx[0]*xx[0]+xx[1]*xx[1])/225.0
		},
		// x1 - 3 x2 + 10 <= 0
		func(x framework.Encoding) float64 {
			xx := variables(x)
			return (3.0*xx[1]-xx[0])/10.0 - 1.0
		},
	}
}

func (p *Srinivas) Bounds() []framework.Bounds {
	return []framework.Bounds{{L: -20, H: 20}, {L: -20, H: 20}}
}

func (p *Srinivas) Initialize(popSize int) []framework.Encoding {
	return initialize(popSize, p.Bounds())
}

// TrueParetoFront maps x1 = -2.5 and x2 in [2.5, sqrt(225-6.25)] to
// objective space.
func (p *Srinivas) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	lo, hi := 2.5, math.Sqrt(225.0-6.25)
	return sample(numPoints, func(t float64) framework.ObjectiveSpacePoint {
		x := framework.NewRealSolution([]float64{-2.5, lo + t*(hi-lo)}, p.Bounds())
		return framework.ObjectiveSpacePoint{p.f1(x), p.f2(x)}
	})
}
