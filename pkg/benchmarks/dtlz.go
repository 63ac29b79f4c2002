package benchmarks

import (
	"math"

	"github.com/moeakit/moea/pkg/framework"
)

// dtlz carries what the DTLZ family shares: M objectives over n variables in
// [0, 1], the last n-M+1 of which feed the distance function g.
type dtlz struct {
	numVars       int
	numObjectives int
}

func (p *dtlz) NumberOfObjectives() int {
	return p.numObjectives
}

func (p *dtlz) Constraints() []framework.Constraint {
	return nil
}

func (p *dtlz) Bounds() []framework.Bounds {
	return unitBounds(p.numVars)
}

func (p *dtlz) Initialize(popSize int) []framework.Encoding {
	return initialize(popSize, p.Bounds())
}

func (p *dtlz) objectives(f func(framework.Encoding, int) float64) []framework.ObjectiveFunc {
	funcs := make([]framework.ObjectiveFunc, p.numObjectives)
	for i := range p.numObjectives {
		funcs[i] = func(x framework.Encoding) float64 {
			return f(x, i)
		}
	}
	return funcs
}

// DTLZ1 is scalable to any number of objectives
// It has a linear Pareto front and many local fronts
type DTLZ1 struct {
	dtlz
}

// NewDTLZ1 builds a DTLZ1 instance. The usual choice is numVars = M + 4.
func NewDTLZ1(numVars, numObjectives int) *DTLZ1 {
	return &DTLZ1{dtlz{numVars: numVars, numObjectives: numObjectives}}
}

func (p *DTLZ1) Name() string {
	return "DTLZ1"
}

func (p *DTLZ1) ObjectiveFuncs() []framework.ObjectiveFunc {
	return p.objectives(p.objective)
}

func (p *DTLZ1) g(x []float64) float64 {
	k := p.numVars - p.numObjectives + 1
	sum := 0.0
	for i := p.numObjectives - 1; i < p.numVars; i++ {
		sum += math.Pow(x[i]-0.5, 2) - math.Cos(20*math.Pi*(x[i]-0.5))
	}
	return 100 * (float64(k) + sum)
}

func (p *DTLZ1) objective(sol framework.Encoding, objIdx int) float64 {
	x := variables(sol)
	f := 0.5 * (1 + p.g(x))
	for i := 0; i < p.numObjectives-objIdx-1; i++ {
		f *= x[i]
	}
	if objIdx > 0 {
		f *= 1 - x[p.numObjectives-objIdx-1]
	}
	return f
}

// TrueParetoFront returns the hyperplane sum(f_i) = 0.5 for two objectives
// and nil otherwise.
func (p *DTLZ1) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	if p.numObjectives != 2 {
		return nil
	}
	return sample(numPoints, func(t float64) framework.ObjectiveSpacePoint {
		return framework.ObjectiveSpacePoint{0.5 * t, 0.5 * (1 - t)}
	})
}

// DTLZ2 has a spherical Pareto front
type DTLZ2 struct {
	dtlz
}

// NewDTLZ2 builds a DTLZ2 instance. The usual choice is numVars = M + 9.
func NewDTLZ2(numVars, numObjectives int) *DTLZ2 {
	return &DTLZ2{dtlz{numVars: numVars, numObjectives: numObjectives}}
}

func (p *DTLZ2) Name() string {
	return "DTLZ2"
}

func (p *DTLZ2) ObjectiveFuncs() []framework.ObjectiveFunc {
	return p.objectives(p.objective)
}

func (p *DTLZ2) g(x []float64) float64 {
	sum := 0.0
	for i := p.numObjectives - 1; i < p.numVars; i++ {
		sum += math.Pow(x[i]-0.5, 2)
	}
	return sum
}

func (p *DTLZ2) objective(sol framework.Encoding, objIdx int) float64 {
	x := variables(sol)
	f := 1 + p.g(x)
	for i := 0; i < p.numObjectives-objIdx-1; i++ {
		f *= math.Cos(x[i] * math.Pi / 2)
	}
	if objIdx > 0 {
		f *= math.Sin(x[p.numObjectives-objIdx-1] * math.Pi / 2)
	}
	return f
}

// TrueParetoFront returns points of the unit sphere for two and three
// objectives and nil otherwise.
func (p *DTLZ2) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	switch p.numObjectives {
	case 2:
		return sample(numPoints, func(t float64) framework.ObjectiveSpacePoint {
			theta := (math.Pi / 2) * t
			return framework.ObjectiveSpacePoint{math.Cos(theta), math.Sin(theta)}
		})
	case 3:
		side := int(math.Sqrt(float64(numPoints)))
		if side < 2 {
			side = 2
		}
		points := make([]framework.ObjectiveSpacePoint, 0, side*side)
		for i := range side {
			theta := (math.Pi / 2) * float64(i) / float64(side-1)
			for j := range side {
				phi := (math.Pi / 2) * float64(j) / float64(side-1)
				points = append(points, framework.ObjectiveSpacePoint{
					math.Cos(theta) * math.Cos(phi),
					math.Sin(theta) * math.Cos(phi),
					math.Sin(phi),
				})
			}
		}
		return points
	}
	return nil
}
