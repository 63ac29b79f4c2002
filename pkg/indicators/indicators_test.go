package indicators

import (
	"errors"
	"math"
	"testing"

	"github.com/moeakit/moea/pkg/framework"
)

func TestIndicators(t *testing.T) {
	reference := []framework.ObjectiveSpacePoint{{0, 1}, {0.5, 0.5}, {1, 0}}

	tests := []struct {
		name     string
		obtained []framework.ObjectiveSpacePoint
		igd      float64
		gd       float64
	}{
		{
			name:     "Exact",
			obtained: []framework.ObjectiveSpacePoint{{0, 1}, {0.5, 0.5}, {1, 0}},
			igd:      0,
			gd:       0,
		},
		{
			name:     "Subset",
			obtained: []framework.ObjectiveSpacePoint{{0, 1}},
			igd:      (0 + math.Sqrt(0.5) + math.Sqrt(2)) / 3,
			gd:       0,
		},
		{
			name:     "Shifted",
			obtained: []framework.ObjectiveSpacePoint{{0, 2}, {1, 1}},
			igd:      (1 + math.Sqrt(0.5) + 1) / 3,
			gd:       (1 + math.Sqrt(0.5)) / 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			igd, err := IGD(tt.obtained, reference)
			if err != nil {
				t.Fatalf("IGD: %v", err)
			}
			if math.Abs(igd-tt.igd) > 1e-12 {
				t.Errorf("IGD = %v, want %v", igd, tt.igd)
			}
			gd, err := GenerationalDistance(tt.obtained, reference)
			if err != nil {
				t.Fatalf("GenerationalDistance: %v", err)
			}
			if math.Abs(gd-tt.gd) > 1e-12 {
				t.Errorf("GenerationalDistance = %v, want %v", gd, tt.gd)
			}
		})
	}
}

func TestIndicatorErrors(t *testing.T) {
	reference := []framework.ObjectiveSpacePoint{{0, 1}, {1, 0}}

	if _, err := IGD(nil, reference); !errors.Is(err, framework.ErrEmptyFront) {
		t.Errorf("IGD(nil) error = %v, want ErrEmptyFront", err)
	}
	if _, err := GenerationalDistance(reference, nil); !errors.Is(err, framework.ErrEmptyFront) {
		t.Errorf("GenerationalDistance(_, nil) error = %v, want ErrEmptyFront", err)
	}
	if _, err := IGD([]framework.ObjectiveSpacePoint{{0, 1, 2}}, reference); !errors.Is(err, framework.ErrObjectiveCount) {
		t.Errorf("IGD with 3 objectives error = %v, want ErrObjectiveCount", err)
	}
}

func TestNormalizedIGD(t *testing.T) {
	// The second objective spans 100 times the range of the first.
	reference := []framework.ObjectiveSpacePoint{{0, 100}, {1, 0}}
	obtained := []framework.ObjectiveSpacePoint{{0, 100}, {1, 10}}

	raw, err := IGD(obtained, reference)
	if err != nil {
		t.Fatalf("IGD: %v", err)
	}
	if math.Abs(raw-5) > 1e-12 {
		t.Errorf("IGD = %v, want 5", raw)
	}
	normalized, err := NormalizedIGD(obtained, reference)
	if err != nil {
		t.Fatalf("NormalizedIGD: %v", err)
	}
	if math.Abs(normalized-0.05) > 1e-12 {
		t.Errorf("NormalizedIGD = %v, want 0.05", normalized)
	}

	if _, err := NormalizedIGD(obtained, nil); !errors.Is(err, framework.ErrEmptyFront) {
		t.Errorf("NormalizedIGD(_, nil) error = %v, want ErrEmptyFront", err)
	}
}
