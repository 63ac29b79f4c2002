// Package archive keeps a bounded set of mutually non-dominated solutions.
//
// Two eviction policies are provided. CrowdingArchive drops the member with
// the smallest crowding distance; AdaptiveGridArchive drops a member of the
// most populated hypercube of an adaptive grid laid over objective space.
//
// Archives are not safe for concurrent use.
package archive

import (
	"fmt"

	"github.com/moeakit/moea/pkg/dominance"
	"github.com/moeakit/moea/pkg/framework"
)

// Archive is the contract shared by all archive policies.
type Archive interface {
	// Add offers s to the archive and reports whether s is a member afterwards.
	Add(s *framework.Solution) (bool, error)
	Size() int
	Get(i int) *framework.Solution
	Solutions() []*framework.Solution
	Capacity() int
	Clear()
}

// InsertResult describes what one insertion did to an archive.
type InsertResult struct {
	// Accepted is true when the offered solution is a member after the call.
	Accepted bool
	// Removed lists members dropped because the new solution dominates them.
	Removed []*framework.Solution
	// Evicted is the member dropped to honour the capacity, if any. It may be
	// the offered solution itself.
	Evicted *framework.Solution
	// Rebuilt is true when the adaptive grid had to be recomputed.
	Rebuilt bool
}

// EventType names something that happened inside an archive.
type EventType string

const (
	EventAccepted         EventType = "accepted"
	EventRejected         EventType = "rejected"
	EventDuplicate        EventType = "duplicate"
	EventDominatedRemoved EventType = "dominated_removed"
	EventEvicted          EventType = "evicted"
	EventGridRebuilt      EventType = "grid_rebuilt"
)

// Event is passed to an Observer. Size is the archive size after the event.
type Event struct {
	Type EventType
	Size int
}

// Observer receives archive events. It is called synchronously.
type Observer func(Event)

// Option configures an archive.
type Option func(*options)

type options struct {
	observer Observer
}

// WithObserver registers fn to be told about every archive event.
func WithObserver(fn Observer) Option {
	return func(o *options) {
		o.observer = fn
	}
}

// base holds the member list and the bookkeeping shared by both policies.
type base struct {
	members            []*framework.Solution
	capacity           int
	numberOfObjectives int
	observer           Observer
}

func newBase(capacity, numberOfObjectives int, opts []Option) (base, error) {
	if capacity < 1 {
		return base{}, fmt.Errorf("archive: %w: %d", framework.ErrInvalidCapacity, capacity)
	}
	if numberOfObjectives < 1 {
		return base{}, fmt.Errorf("archive: %w: %d", framework.ErrInvalidObjectives, numberOfObjectives)
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	return base{
		members:            make([]*framework.Solution, 0, capacity+1),
		capacity:           capacity,
		numberOfObjectives: numberOfObjectives,
		observer:           o.observer,
	}, nil
}

func (b *base) Size() int {
	return len(b.members)
}

func (b *base) Get(i int) *framework.Solution {
	return b.members[i]
}

// Solutions returns a copy of the member list in insertion order.
func (b *base) Solutions() []*framework.Solution {
	out := make([]*framework.Solution, len(b.members))
	copy(out, b.members)
	return out
}

func (b *base) Capacity() int {
	return b.capacity
}

func (b *base) NumberOfObjectives() int {
	return b.numberOfObjectives
}

func (b *base) check(s *framework.Solution) error {
	if err := framework.CheckObjectives(s, b.numberOfObjectives); err != nil {
		return fmt.Errorf("archive: %w", err)
	}
	return nil
}

func (b *base) emit(t EventType) {
	if b.observer != nil {
		b.observer(Event{Type: t, Size: len(b.members)})
	}
}

// screen compares s with every member. It reports whether some member
// dominates s and whether some incomparable member has exactly the same
// objective values. It does not modify the archive.
func (b *base) screen(s *framework.Solution) (dominated, duplicate bool) {
	for _, m := range b.members {
		switch dominance.Dominance(s, m) {
		case dominance.SecondBetter:
			return true, false
		case dominance.Incomparable:
			if dominance.Equality(m, s) == dominance.Equal {
				duplicate = true
			}
		}
	}
	return false, duplicate
}

// removeDominatedBy drops every member that s dominates and returns them in
// their former order.
func (b *base) removeDominatedBy(s *framework.Solution) []*framework.Solution {
	var removed []*framework.Solution
	kept := b.members[:0]
	for _, m := range b.members {
		if dominance.Dominates(s, m) {
			removed = append(removed, m)
			continue
		}
		kept = append(kept, m)
	}
	clear(b.members[len(kept):])
	b.members = kept
	for range removed {
		b.emit(EventDominatedRemoved)
	}
	return removed
}

func (b *base) removeAt(i int) *framework.Solution {
	s := b.members[i]
	copy(b.members[i:], b.members[i+1:])
	b.members[len(b.members)-1] = nil
	b.members = b.members[:len(b.members)-1]
	return s
}

func (b *base) clear() {
	clear(b.members)
	b.members = b.members[:0]
}
