package framework

// Annotations is a side table holding the per-solution results of ranking and
// density estimation, keyed by solution identity.
type Annotations struct {
	ranks     map[*Solution]int
	distances map[*Solution]float64
}

// NewAnnotations returns an empty side table.
func NewAnnotations() *Annotations {
	return &Annotations{
		ranks:     make(map[*Solution]int),
		distances: make(map[*Solution]float64),
	}
}

// SetRank records the front index of s.
func (a *Annotations) SetRank(s *Solution, rank int) {
	a.ranks[s] = rank
}

// Rank returns the front index of s and whether one was recorded.
func (a *Annotations) Rank(s *Solution) (int, bool) {
	r, ok := a.ranks[s]
	return r, ok
}

// SetCrowdingDistance records the crowding distance of s.
func (a *Annotations) SetCrowdingDistance(s *Solution, d float64) {
	a.distances[s] = d
}

// CrowdingDistance returns the recorded crowding distance of s, or 0.
func (a *Annotations) CrowdingDistance(s *Solution) float64 {
	return a.distances[s]
}

// Forget drops every annotation of s.
func (a *Annotations) Forget(s *Solution) {
	delete(a.ranks, s)
	delete(a.distances, s)
}

// Reset drops all annotations.
func (a *Annotations) Reset() {
	clear(a.ranks)
	clear(a.distances)
}
