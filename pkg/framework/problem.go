package framework

import (
	"math"
	"math/rand/v2"
)

// Problem describes the contract a specific multi-objective problem needs to implement.
type Problem interface {
	Name() string
	NumberOfObjectives() int

	ObjectiveFuncs() []ObjectiveFunc
	Constraints() []Constraint
	Bounds() []Bounds
	Initialize(int) []Encoding

	// TrueParetoFront is optional due to the difficulty of finding the true front
	// in some types of problems. When there isn't a way to find the true front,
	// just return nil.
	TrueParetoFront(int) []ObjectiveSpacePoint
}

// Encoding holds the decision variables of a solution together with the
// variation operators that know how to recombine them.
type Encoding interface {
	Clone() Encoding
	Crossover(Encoding, float64) (Encoding, Encoding)
	Mutate(float64)
}

// Algorithm describes the contract that a MOO algorithm needs to implement.
type Algorithm interface {
	Name() string
}

// ObjectiveFunc defines the interface for objective functions
type ObjectiveFunc func(Encoding) float64

// Constraint returns a value >= 0 when satisfied and the negative amount of
// violation otherwise.
type Constraint func(Encoding) float64

type Bounds struct {
	L float64
	H float64
}

// RealSolution represents a solution with real-valued variables.
type RealSolution struct {
	Variables []float64
	Bounds    []Bounds
}

func NewRealSolution(vars []float64, b []Bounds) *RealSolution {
	return &RealSolution{
		Variables: vars,
		Bounds:    b,
	}
}

// RandomRealSolution draws every variable uniformly inside its bounds.
func RandomRealSolution(b []Bounds) *RealSolution {
	vars := make([]float64, len(b))
	for i := range b {
		vars[i] = b[i].L + rand.Float64()*(b[i].H-b[i].L)
	}
	return NewRealSolution(vars, b)
}

func (sol *RealSolution) Clone() Encoding {
	vars := make([]float64, len(sol.Variables))
	copy(vars, sol.Variables)
	return &RealSolution{
		Variables: vars,
		Bounds:    sol.Bounds,
	}
}

// Crossover performs SBX (Simulated Binary Crossover)
func (sol *RealSolution) Crossover(other Encoding, crossoverRate float64) (Encoding, Encoding) {
	o := other.(*RealSolution)
	child1 := sol.Clone().(*RealSolution)
	child2 := o.Clone().(*RealSolution)

	if rand.Float64() >= crossoverRate {
		return child1, child2
	}

	for i := range sol.Variables {
		beta := 0.0
		if rand.Float64() <= 0.5 {
			beta = math.Pow(2*rand.Float64(), 1.0/3.0)
		} else {
			beta = math.Pow(1.0/(2*(1.0-rand.Float64())), 1.0/3.0)
		}

		child1.Variables[i] = 0.5 * ((1+beta)*sol.Variables[i] + (1-beta)*o.Variables[i])
		child2.Variables[i] = 0.5 * ((1-beta)*sol.Variables[i] + (1+beta)*o.Variables[i])

		child1.Variables[i] = sol.Bounds[i].clamp(child1.Variables[i])
		child2.Variables[i] = sol.Bounds[i].clamp(child2.Variables[i])
	}

	return child1, child2
}

// Mutate performs polynomial mutation
func (sol *RealSolution) Mutate(mutationRate float64) {
	for i := range sol.Variables {
		if rand.Float64() < mutationRate {
			delta := 0.0
			if rand.Float64() <= 0.5 {
				delta = math.Pow(2*rand.Float64(), 1.0/3.0) - 1
			} else {
				delta = 1 - math.Pow(2*(1-rand.Float64()), 1.0/3.0)
			}

			sol.Variables[i] += delta * (sol.Bounds[i].H - sol.Bounds[i].L)
			sol.Variables[i] = sol.Bounds[i].clamp(sol.Variables[i])
		}
	}
}

func (b Bounds) clamp(v float64) float64 {
	return math.Max(b.L, math.Min(b.H, v))
}
