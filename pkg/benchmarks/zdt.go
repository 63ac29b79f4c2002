package benchmarks

import (
	"math"

	"github.com/moeakit/moea/pkg/framework"
)

// zdt carries what the ZDT family shares: two objectives, n variables in
// [0, 1], f1 = x1 and f2 = g * h(f1, g).
type zdt struct {
	numVars int
}

func (p *zdt) NumberOfObjectives() int {
	return 2
}

func (p *zdt) Constraints() []framework.Constraint {
	return nil
}

func (p *zdt) Bounds() []framework.Bounds {
	return unitBounds(p.numVars)
}

func (p *zdt) Initialize(popSize int) []framework.Encoding {
	return initialize(popSize, p.Bounds())
}

func (p *zdt) f1(x framework.Encoding) float64 {
	return variables(x)[0]
}

// g is 1 + 9 * mean(x2..xn).
func (p *zdt) g(x []float64) float64 {
	if len(x) < 2 {
		return 1.0
	}
	g := 1.0
	for i := 1; i < len(x); i++ {
		g += 9.0 * x[i] / float64(len(x)-1)
	}
	return g
}

// ZDT1 has a convex Pareto front
type ZDT1 struct {
	zdt
}

func NewZDT1(numVars int) *ZDT1 {
	return &ZDT1{zdt{numVars: numVars}}
}

func (p *ZDT1) Name() string {
	return "ZDT1"
}

func (p *ZDT1) ObjectiveFuncs() []framework.ObjectiveFunc {
	return []framework.ObjectiveFunc{p.f1, p.f2}
}

func (p *ZDT1) f2(x framework.Encoding) float64 {
	xx := variables(x)
	g := p.g(xx)
	return g * (1.0 - math.Sqrt(xx[0]/g))
}

func (p *ZDT1) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	return sample(numPoints, func(x float64) framework.ObjectiveSpacePoint {
		return framework.ObjectiveSpacePoint{x, 1.0 - math.Sqrt(x)}
	})
}

// ZDT2 has a non-convex Pareto front
type ZDT2 struct {
	zdt
}

func NewZDT2(numVars int) *ZDT2 {
	return &ZDT2{zdt{numVars: numVars}}
}

func (p *ZDT2) Name() string {
	return "ZDT2"
}

func (p *ZDT2) ObjectiveFuncs() []framework.ObjectiveFunc {
	return []framework.ObjectiveFunc{p.f1, p.f2}
}

func (p *ZDT2) f2(x framework.Encoding) float64 {
	xx := variables(x)
	g := p.g(xx)
	// (1 - (x1/g)^2) instead of the square root of ZDT1
	return g * (1.0 - math.Pow(xx[0]/g, 2))
}

func (p *ZDT2) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	return sample(numPoints, func(x float64) framework.ObjectiveSpacePoint {
		return framework.ObjectiveSpacePoint{x, 1.0 - x*x}
	})
}

// ZDT3 has a disconnected Pareto front
type ZDT3 struct {
	zdt
}

func NewZDT3(numVars int) *ZDT3 {
	return &ZDT3{zdt{numVars: numVars}}
}

func (p *ZDT3) Name() string {
	return "ZDT3"
}

func (p *ZDT3) ObjectiveFuncs() []framework.ObjectiveFunc {
	return []framework.ObjectiveFunc{p.f1, p.f2}
}

func (p *ZDT3) f2(x framework.Encoding) float64 {
	xx := variables(x)
	g := p.g(xx)
	h := 1.0 - math.Sqrt(xx[0]/g) - (xx[0]/g)*math.Sin(10*math.Pi*xx[0])
	return g * h
}

// TrueParetoFront samples the g = 1 curve and keeps its non-dominated part,
// which splits into five segments.
func (p *ZDT3) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	curve := sample(numPoints, func(x float64) framework.ObjectiveSpacePoint {
		return framework.ObjectiveSpacePoint{x, 1.0 - math.Sqrt(x) - x*math.Sin(10*math.Pi*x)}
	})
	front := make([]framework.ObjectiveSpacePoint, 0, len(curve))
	best := math.Inf(1)
	// f1 grows along the curve, so a point survives iff its f2 beats every
	// point before it.
	for _, pt := range curve {
		if pt[1] < best {
			front = append(front, pt)
			best = pt[1]
		}
	}
	return front
}
