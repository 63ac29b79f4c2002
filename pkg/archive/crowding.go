package archive

import (
	"fmt"

	"k8s.io/klog/v2"

	"github.com/moeakit/moea/pkg/density"
	"github.com/moeakit/moea/pkg/framework"
)

// CrowdingArchive is a bounded non-dominated archive that, when full, evicts
// the member with the smallest crowding distance. Among equally crowded
// members the earliest inserted one goes.
type CrowdingArchive struct {
	base
	ann *framework.Annotations
}

var _ Archive = &CrowdingArchive{}

// NewCrowdingArchive creates an empty archive holding at most capacity
// solutions with numberOfObjectives objectives each.
func NewCrowdingArchive(capacity, numberOfObjectives int, opts ...Option) (*CrowdingArchive, error) {
	b, err := newBase(capacity, numberOfObjectives, opts)
	if err != nil {
		return nil, err
	}
	return &CrowdingArchive{
		base: b,
		ann:  framework.NewAnnotations(),
	}, nil
}

// Add offers s to the archive and reports whether s is a member afterwards.
func (a *CrowdingArchive) Add(s *framework.Solution) (bool, error) {
	res, err := a.Insert(s)
	return res.Accepted, err
}

// Insert offers s to the archive and reports in detail what happened.
func (a *CrowdingArchive) Insert(s *framework.Solution) (InsertResult, error) {
	if err := a.check(s); err != nil {
		return InsertResult{}, err
	}

	dominated, duplicate := a.screen(s)
	if dominated {
		a.emit(EventRejected)
		return InsertResult{}, nil
	}

	removed := a.removeDominatedBy(s)
	if duplicate && len(removed) == 0 {
		a.emit(EventDuplicate)
		return InsertResult{}, nil
	}

	a.members = append(a.members, s)
	res := InsertResult{Accepted: true, Removed: removed}

	if len(a.members) > a.capacity {
		victim, err := a.evict()
		if err != nil {
			return InsertResult{}, err
		}
		res.Evicted = victim
		res.Accepted = victim != s
	}

	if res.Accepted {
		a.emit(EventAccepted)
	}
	return res, nil
}

// evict recomputes crowding distances over the whole archive and removes the
// most crowded member.
func (a *CrowdingArchive) evict() (*framework.Solution, error) {
	a.ann.Reset()
	if err := density.AssignCrowdingDistance(a.members, a.numberOfObjectives, a.ann); err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}

	worst := 0
	for i := 1; i < len(a.members); i++ {
		if a.ann.CrowdingDistance(a.members[i]) < a.ann.CrowdingDistance(a.members[worst]) {
			worst = i
		}
	}

	victim := a.removeAt(worst)
	klog.V(5).InfoS("Evicted most crowded archive member",
		"objectives", victim.Objectives,
		"crowdingDistance", a.ann.CrowdingDistance(victim),
		"size", len(a.members))
	a.emit(EventEvicted)
	return victim, nil
}

// CrowdingDistance returns the distance computed for s during the last
// eviction, or 0.
func (a *CrowdingArchive) CrowdingDistance(s *framework.Solution) float64 {
	return a.ann.CrowdingDistance(s)
}

// Clear removes every member.
func (a *CrowdingArchive) Clear() {
	a.clear()
	a.ann.Reset()
}
