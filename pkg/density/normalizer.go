package density

import "github.com/moeakit/moea/pkg/framework"

// Normalizer handles objective value normalization
type Normalizer struct {
	min []float64
	max []float64
}

// NewNormalizer creates a normalizer for the given per-objective bounds
func NewNormalizer(min []float64, max []float64) *Normalizer {
	return &Normalizer{
		min: min,
		max: max,
	}
}

// NewNormalizerFromPoints derives the bounds from a set of points.
func NewNormalizerFromPoints(points []framework.ObjectiveSpacePoint) *Normalizer {
	if len(points) == 0 {
		return &Normalizer{}
	}
	m := len(points[0])
	n := &Normalizer{
		min: make([]float64, m),
		max: make([]float64, m),
	}
	copy(n.min, points[0])
	copy(n.max, points[0])
	for _, p := range points[1:] {
		for i, v := range p {
			n.min[i] = min(n.min[i], v)
			n.max[i] = max(n.max[i], v)
		}
	}
	return n
}

// Normalize returns normalized objective values in [0,1]
func (n *Normalizer) Normalize(values []float64) []float64 {
	normalized := make([]float64, len(values))
	for i, val := range values {
		// Avoid division by zero
		if n.max[i] == n.min[i] {
			normalized[i] = 0
		} else {
			normalized[i] = (val - n.min[i]) / (n.max[i] - n.min[i])
		}
	}
	return normalized
}

// NormalizeAll normalizes every point.
func (n *Normalizer) NormalizeAll(points []framework.ObjectiveSpacePoint) []framework.ObjectiveSpacePoint {
	out := make([]framework.ObjectiveSpacePoint, len(points))
	for i, p := range points {
		out[i] = n.Normalize(p)
	}
	return out
}
