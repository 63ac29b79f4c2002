// Package dominance implements the pairwise orderings used to compare
// solutions when no total order exists: constraint-aware Pareto dominance,
// strict objective equality and the crowded comparison of NSGA-II.
package dominance

import (
	"fmt"

	"github.com/moeakit/moea/pkg/framework"
)

// Order is the outcome of comparing two solutions a and b.
type Order int

const (
	// FirstBetter means a is preferred over b.
	FirstBetter Order = -1
	// Incomparable means neither solution is preferred.
	Incomparable Order = 0
	// SecondBetter means b is preferred over a.
	SecondBetter Order = 1
	// Equal is only produced by Equality, when no objective differs.
	Equal Order = 2
)

func (o Order) String() string {
	switch o {
	case FirstBetter:
		return "FirstBetter"
	case Incomparable:
		return "Incomparable"
	case SecondBetter:
		return "SecondBetter"
	case Equal:
		return "Equal"
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// Reverse swaps the roles of the two compared solutions.
func (o Order) Reverse() Order {
	switch o {
	case FirstBetter:
		return SecondBetter
	case SecondBetter:
		return FirstBetter
	}
	return o
}

// Strategy selects one of the comparisons offered by Compare.
type Strategy int

const (
	ByDominance Strategy = iota
	ByConstraintViolation
	ByEquality
)

func (s Strategy) String() string {
	switch s {
	case ByDominance:
		return "Dominance"
	case ByConstraintViolation:
		return "ConstraintViolation"
	case ByEquality:
		return "Equality"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Compare dispatches to the comparison named by strategy.
func Compare(strategy Strategy, a, b *framework.Solution) Order {
	switch strategy {
	case ByDominance:
		return Dominance(a, b)
	case ByConstraintViolation:
		return ConstraintViolation(a, b)
	case ByEquality:
		return Equality(a, b)
	}
	panic(fmt.Sprintf("dominance: unknown strategy %v", strategy))
}

// Dominates reports whether a dominates b under Dominance.
func Dominates(a, b *framework.Solution) bool {
	return Dominance(a, b) == FirstBetter
}

// Dominance compares a and b by feasibility first and Pareto dominance second
// (all objectives minimized). A nil solution always loses against a non-nil one.
//
// Both solutions must have the same number of objectives; a mismatch is a
// programmer error and panics.
func Dominance(a, b *framework.Solution) Order {
	if o, done := compareNil(a, b); done {
		return o
	}
	if o := ConstraintViolation(a, b); o != Incomparable {
		return o
	}
	mustMatch(a, b)

	dominatesA, dominatesB := false, false
	for i := range a.Objectives {
		switch {
		case a.Objectives[i] < b.Objectives[i]:
			dominatesA = true
		case a.Objectives[i] > b.Objectives[i]:
			dominatesB = true
		}
	}

	if dominatesA == dominatesB {
		return Incomparable
	}
	if dominatesA {
		return FirstBetter
	}
	return SecondBetter
}

// ConstraintViolation prefers the less infeasible solution. It only decides
// when the overall violations differ and at least one of them is negative;
// two feasible solutions, or two equally infeasible ones, are Incomparable.
func ConstraintViolation(a, b *framework.Solution) Order {
	if o, done := compareNil(a, b); done {
		return o
	}
	va, vb := a.OverallConstraintViolation, b.OverallConstraintViolation
	if va == vb || (va >= 0 && vb >= 0) {
		return Incomparable
	}
	if va > vb {
		return FirstBetter
	}
	return SecondBetter
}

// Equality scans the objectives once. It returns Equal when no objective
// differs. Otherwise it returns FirstBetter if a is strictly lower on some
// objective and SecondBetter if only b is, without checking for dominance.
func Equality(a, b *framework.Solution) Order {
	if o, done := compareNil(a, b); done {
		return o
	}
	mustMatch(a, b)

	lowerA, lowerB := false, false
	for i := range a.Objectives {
		switch {
		case a.Objectives[i] < b.Objectives[i]:
			lowerA = true
		case a.Objectives[i] > b.Objectives[i]:
			lowerB = true
		}
	}

	switch {
	case !lowerA && !lowerB:
		return Equal
	case lowerA:
		return FirstBetter
	}
	return SecondBetter
}

// Crowded compares by front index first and crowding distance second, as read
// from ann: a lower rank wins, and within a rank the more isolated solution
// (larger distance) wins. Unranked solutions lose against ranked ones.
func Crowded(ann *framework.Annotations, a, b *framework.Solution) Order {
	if o, done := compareNil(a, b); done {
		return o
	}
	ra, okA := ann.Rank(a)
	rb, okB := ann.Rank(b)
	switch {
	case okA && !okB:
		return FirstBetter
	case !okA && okB:
		return SecondBetter
	case ra < rb:
		return FirstBetter
	case ra > rb:
		return SecondBetter
	}

	da, db := ann.CrowdingDistance(a), ann.CrowdingDistance(b)
	switch {
	case da > db:
		return FirstBetter
	case da < db:
		return SecondBetter
	}
	return Incomparable
}

// compareNil settles comparisons involving nil solutions.
func compareNil(a, b *framework.Solution) (Order, bool) {
	switch {
	case a == nil && b == nil:
		return Incomparable, true
	case a == nil:
		return SecondBetter, true
	case b == nil:
		return FirstBetter, true
	}
	return Incomparable, false
}

func mustMatch(a, b *framework.Solution) {
	if len(a.Objectives) != len(b.Objectives) {
		panic(fmt.Errorf("dominance: %w: %d vs %d objectives",
			framework.ErrObjectiveCount, len(a.Objectives), len(b.Objectives)))
	}
}
