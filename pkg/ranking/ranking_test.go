package ranking_test

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/moeakit/moea/pkg/dominance"
	"github.com/moeakit/moea/pkg/framework"
	"github.com/moeakit/moea/pkg/ranking"
)

func solutions(points ...[]float64) []*framework.Solution {
	sols := make([]*framework.Solution, len(points))
	for i, p := range points {
		sols[i] = framework.NewSolution(p...)
	}
	return sols
}

func frontPoints(r *ranking.Ranking) [][]framework.ObjectiveSpacePoint {
	out := make([][]framework.ObjectiveSpacePoint, r.NumberOfSubFronts())
	for i, f := range r.Fronts() {
		out[i] = f.Points()
	}
	return out
}

func TestRank(t *testing.T) {
	tests := []struct {
		name       string
		population []*framework.Solution
		want       [][]framework.ObjectiveSpacePoint
	}{
		{
			name:       "Empty",
			population: nil,
			want:       [][]framework.ObjectiveSpacePoint{},
		},
		{
			name:       "MutuallyNonDominated",
			population: solutions([]float64{1, 4}, []float64{2, 3}, []float64{3, 2}, []float64{4, 1}),
			want: [][]framework.ObjectiveSpacePoint{
				{{1, 4}, {2, 3}, {3, 2}, {4, 1}},
			},
		},
		{
			name:       "OneDominatesAll",
			population: solutions([]float64{1, 1}, []float64{2, 2}, []float64{0.5, 0.5}),
			want: [][]framework.ObjectiveSpacePoint{
				{{0.5, 0.5}},
				{{1, 1}},
				{{2, 2}},
			},
		},
		{
			name: "ThreeLayers",
			population: solutions(
				[]float64{3, 3}, []float64{1, 2}, []float64{2, 1},
				[]float64{4, 4}, []float64{2, 3}, []float64{3, 2},
			),
			want: [][]framework.ObjectiveSpacePoint{
				{{1, 2}, {2, 1}},
				{{2, 3}, {3, 2}},
				{{3, 3}},
				{{4, 4}},
			},
		},
		{
			name:       "Duplicates",
			population: solutions([]float64{1, 1}, []float64{1, 1}, []float64{2, 2}),
			want: [][]framework.ObjectiveSpacePoint{
				{{1, 1}, {1, 1}},
				{{2, 2}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ann := framework.NewAnnotations()
			r, err := ranking.Rank(tt.population, ann)
			if err != nil {
				t.Fatalf("Rank() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, frontPoints(r)); diff != "" {
				t.Errorf("fronts mismatch (-want +got):\n%s", diff)
			}
			for i, front := range r.Fronts() {
				for _, s := range front {
					if rank, ok := ann.Rank(s); !ok || rank != i {
						t.Errorf("rank of %v = %d (%v), want %d", s, rank, ok, i)
					}
				}
			}
		})
	}
}

// The example from the problem statement: (0.5,0.5) dominates both other points,
// which are then mutually non-dominated.
func TestRankSecondFrontIsNonDominated(t *testing.T) {
	pop := solutions([]float64{1, 3}, []float64{2, 2}, []float64{0.5, 0.5})
	r, err := ranking.Rank(pop, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]framework.ObjectiveSpacePoint{{{0.5, 0.5}}, {{1, 3}, {2, 2}}}
	if diff := cmp.Diff(want, frontPoints(r)); diff != "" {
		t.Errorf("fronts mismatch (-want +got):\n%s", diff)
	}
}

func TestRankPartitionsPopulation(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	pop := make([]*framework.Solution, 120)
	for i := range pop {
		pop[i] = framework.NewSolution(rng.Float64(), rng.Float64(), float64(rng.IntN(4)))
	}

	ann := framework.NewAnnotations()
	r, err := ranking.Rank(pop, ann)
	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[*framework.Solution]int)
	for i, front := range r.Fronts() {
		if len(front) == 0 {
			t.Fatalf("front %d is empty", i)
		}
		for _, s := range front {
			if _, dup := seen[s]; dup {
				t.Fatalf("%v placed twice", s)
			}
			seen[s] = i
		}
		for _, a := range front {
			for _, b := range front {
				if dominance.Dominates(a, b) {
					t.Fatalf("front %d: %v dominates %v", i, a, b)
				}
			}
		}
	}
	if len(seen) != len(pop) {
		t.Fatalf("fronts hold %d solutions, population has %d", len(seen), len(pop))
	}

	for _, s := range pop {
		rs := seen[s]
		dominatedByPrevious := rs == 0
		for _, other := range pop {
			if dominance.Dominates(other, s) {
				if seen[other] >= rs {
					t.Fatalf("%v (front %d) dominated by %v (front %d)", s, rs, other, seen[other])
				}
				if seen[other] == rs-1 {
					dominatedByPrevious = true
				}
			}
		}
		if !dominatedByPrevious {
			t.Fatalf("%v in front %d is not dominated by any member of front %d", s, rs, rs-1)
		}
	}

	front0, err := ranking.NonDominated(pop)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range pop {
		nonDominated := true
		for _, other := range pop {
			if dominance.Dominates(other, s) {
				nonDominated = false
				break
			}
		}
		if got := seen[s] == 0; got != nonDominated {
			t.Fatalf("%v: in front 0 = %v, non-dominated = %v", s, got, nonDominated)
		}
	}
	if len(front0) != len(r.SubFront(0)) {
		t.Fatalf("NonDominated returned %d solutions, want %d", len(front0), len(r.SubFront(0)))
	}
}

func TestRankConstraintViolationFirst(t *testing.T) {
	feasible := framework.NewSolution(10, 10)
	slightly := framework.NewSolution(0, 0)
	slightly.OverallConstraintViolation = -1
	badly := framework.NewSolution(-5, -5)
	badly.OverallConstraintViolation = -3

	r, err := ranking.Rank([]*framework.Solution{badly, slightly, feasible}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if r.NumberOfSubFronts() != 3 {
		t.Fatalf("got %d fronts, want 3", r.NumberOfSubFronts())
	}
	for i, want := range []*framework.Solution{feasible, slightly, badly} {
		if got := r.SubFront(i)[0]; got != want {
			t.Errorf("front %d = %v, want %v", i, got, want)
		}
	}
}

func TestRankErrors(t *testing.T) {
	tests := []struct {
		name       string
		population []*framework.Solution
		want       error
	}{
		{
			name:       "ObjectiveMismatch",
			population: solutions([]float64{1, 2}, []float64{1, 2, 3}),
			want:       framework.ErrObjectiveCount,
		},
		{
			name:       "NilSolution",
			population: []*framework.Solution{framework.NewSolution(1), nil},
			want:       framework.ErrNilSolution,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ranking.Rank(tt.population, nil)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Rank() error = %v, want %v", err, tt.want)
			}
		})
	}
}
