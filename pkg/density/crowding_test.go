package density_test

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/moeakit/moea/pkg/density"
	"github.com/moeakit/moea/pkg/framework"
)

func front(points ...[]float64) framework.Front {
	f := make(framework.Front, len(points))
	for i, p := range points {
		f[i] = framework.NewSolution(p...)
	}
	return f
}

func TestAssignCrowdingDistance(t *testing.T) {
	inf := math.Inf(1)
	tests := []struct {
		name  string
		front framework.Front
		m     int
		want  []float64
	}{
		{
			name:  "Empty",
			front: front(),
			m:     2,
			want:  []float64{},
		},
		{
			name:  "Single",
			front: front([]float64{1, 1}),
			m:     2,
			want:  []float64{inf},
		},
		{
			name:  "Pair",
			front: front([]float64{1, 2}, []float64{2, 1}),
			m:     2,
			want:  []float64{inf, inf},
		},
		{
			name:  "EvenlySpaced",
			front: front([]float64{1, 4}, []float64{2, 3}, []float64{3, 2}, []float64{4, 1}),
			m:     2,
			want:  []float64{inf, 4.0 / 3.0, 4.0 / 3.0, inf},
		},
		{
			name:  "Unsorted",
			front: front([]float64{3, 2}, []float64{1, 4}, []float64{4, 1}, []float64{2, 3}),
			m:     2,
			want:  []float64{4.0 / 3.0, inf, inf, 4.0 / 3.0},
		},
		{
			name:  "UnevenSpacing",
			front: front([]float64{0, 10}, []float64{1, 9}, []float64{10, 0}),
			m:     2,
			want:  []float64{inf, 2, inf},
		},
		{
			name:  "ConstantObjective",
			front: front([]float64{0, 5}, []float64{1, 5}, []float64{2, 5}),
			m:     2,
			want:  []float64{inf, 1, inf},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.front.Points()
			ann := framework.NewAnnotations()
			if err := density.AssignCrowdingDistance(tt.front, tt.m, ann); err != nil {
				t.Fatalf("AssignCrowdingDistance() error = %v", err)
			}
			for i, s := range tt.front {
				got := ann.CrowdingDistance(s)
				if math.IsInf(tt.want[i], 1) != math.IsInf(got, 1) || (!math.IsInf(got, 1) && math.Abs(got-tt.want[i]) > 1e-12) {
					t.Errorf("distance[%d] of %v = %v, want %v", i, s.Objectives, got, tt.want[i])
				}
				if before[i][0] != s.Objectives[0] {
					t.Errorf("front order changed at %d", i)
				}
			}
		})
	}
}

func TestCrowdingBoundaryIsInfinite(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for trial := 0; trial < 50; trial++ {
		n := 3 + rng.IntN(20)
		m := 2 + rng.IntN(3)
		f := make(framework.Front, n)
		for i := range f {
			obj := make([]float64, m)
			for j := range obj {
				obj[j] = rng.Float64()
			}
			f[i] = framework.NewSolution(obj...)
		}

		ann := framework.NewAnnotations()
		if err := density.AssignCrowdingDistance(f, m, ann); err != nil {
			t.Fatal(err)
		}
		for obj := 0; obj < m; obj++ {
			lo, hi := f[0], f[0]
			for _, s := range f[1:] {
				if s.Objectives[obj] < lo.Objectives[obj] {
					lo = s
				}
				if s.Objectives[obj] > hi.Objectives[obj] {
					hi = s
				}
			}
			if !math.IsInf(ann.CrowdingDistance(lo), 1) || !math.IsInf(ann.CrowdingDistance(hi), 1) {
				t.Fatalf("trial %d objective %d: extremes not infinite", trial, obj)
			}
		}
		for _, s := range f {
			if d := ann.CrowdingDistance(s); d < 0 || math.IsNaN(d) {
				t.Fatalf("invalid distance %v for %v", d, s)
			}
		}
	}
}

func TestAssignCrowdingDistanceErrors(t *testing.T) {
	ann := framework.NewAnnotations()
	if err := density.AssignCrowdingDistance(front([]float64{1}), 0, ann); !errors.Is(err, framework.ErrInvalidObjectives) {
		t.Errorf("error = %v, want ErrInvalidObjectives", err)
	}
	f := front([]float64{1, 2}, []float64{1, 2, 3}, []float64{0, 0})
	if err := density.AssignCrowdingDistance(f, 2, ann); !errors.Is(err, framework.ErrObjectiveCount) {
		t.Errorf("error = %v, want ErrObjectiveCount", err)
	}
}

func TestNormalizer(t *testing.T) {
	points := []framework.ObjectiveSpacePoint{{0, 10, 3}, {5, 20, 3}, {10, 15, 3}}
	n := density.NewNormalizerFromPoints(points)
	got := n.NormalizeAll(points)
	want := []framework.ObjectiveSpacePoint{{0, 0, 0}, {0.5, 1, 0}, {1, 0.5, 0}}
	for i := range want {
		for j := range want[i] {
			if math.Abs(got[i][j]-want[i][j]) > 1e-12 {
				t.Errorf("Normalize(%v)[%d] = %v, want %v", points[i], j, got[i][j], want[i][j])
			}
		}
	}
}
