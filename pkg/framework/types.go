package framework

import (
	"fmt"
	"math"
)

// Solution is the record the core reads and writes. It is owned by the calling
// algorithm; the core never changes Objectives.
type Solution struct {
	// Encoding holds the decision variables. The core never looks at it.
	Encoding Encoding

	// Objectives has one value per objective, all minimized.
	Objectives []float64

	// OverallConstraintViolation is 0 for a feasible solution and negative otherwise.
	OverallConstraintViolation  float64
	NumberOfViolatedConstraints int

	// Location is a scratch slot owned by the caller. The adaptive grid only
	// writes it when asked to through Locate.
	Location int
}

// NewSolution builds an unconstrained solution from its objective values.
func NewSolution(objectives ...float64) *Solution {
	return &Solution{
		Objectives: objectives,
		Location:   -1,
	}
}

// NumberOfObjectives returns the length of the objective vector.
func (s *Solution) NumberOfObjectives() int {
	return len(s.Objectives)
}

// Feasible reports whether the solution violates no constraint.
func (s *Solution) Feasible() bool {
	return s.OverallConstraintViolation >= 0
}

// Copy returns a deep copy of the solution, cloning the encoding when present.
func (s *Solution) Copy() *Solution {
	c := &Solution{
		Objectives:                  make([]float64, len(s.Objectives)),
		OverallConstraintViolation:  s.OverallConstraintViolation,
		NumberOfViolatedConstraints: s.NumberOfViolatedConstraints,
		Location:                    s.Location,
	}
	copy(c.Objectives, s.Objectives)
	if s.Encoding != nil {
		c.Encoding = s.Encoding.Clone()
	}
	return c
}

// Point returns the objective values as an ObjectiveSpacePoint.
func (s *Solution) Point() ObjectiveSpacePoint {
	p := make(ObjectiveSpacePoint, len(s.Objectives))
	copy(p, s.Objectives)
	return p
}

func (s *Solution) String() string {
	return fmt.Sprintf("%v (violation=%g)", s.Objectives, s.OverallConstraintViolation)
}

// CheckObjectives returns ErrObjectiveCount if s does not have exactly m objectives.
func CheckObjectives(s *Solution, m int) error {
	if s == nil {
		return ErrNilSolution
	}
	if len(s.Objectives) != m {
		return fmt.Errorf("%w: got %d objectives, want %d", ErrObjectiveCount, len(s.Objectives), m)
	}
	return nil
}

// Front is an ordered sequence of mutually non-dominated solutions.
type Front []*Solution

// Points returns the objective vectors of the front members.
func (f Front) Points() []ObjectiveSpacePoint {
	points := make([]ObjectiveSpacePoint, len(f))
	for i, s := range f {
		points[i] = s.Point()
	}
	return points
}

// ObjectiveSpacePoint represents an N-dimensional point in the objective space.
// As an example, for a problem with 2 objective functions f1 and f2, a point
// in the objective space could be [f1(x'), f2(x')], for the input of x'.
type ObjectiveSpacePoint []float64

// Finite reports whether every coordinate is a finite number.
func (p ObjectiveSpacePoint) Finite() bool {
	for _, v := range p {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}
