package archive_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moeakit/moea/pkg/archive"
	"github.com/moeakit/moea/pkg/dominance"
	"github.com/moeakit/moea/pkg/framework"
)

func sol(objectives ...float64) *framework.Solution {
	return framework.NewSolution(objectives...)
}

func points(a archive.Archive) [][]float64 {
	out := make([][]float64, a.Size())
	for i := 0; i < a.Size(); i++ {
		out[i] = a.Get(i).Objectives
	}
	return out
}

func requireNonDominated(t *testing.T, a archive.Archive) {
	t.Helper()
	require.LessOrEqual(t, a.Size(), a.Capacity())
	for i := 0; i < a.Size(); i++ {
		for j := 0; j < a.Size(); j++ {
			if i != j {
				require.Falsef(t, dominance.Dominates(a.Get(i), a.Get(j)),
					"%v dominates %v", a.Get(i), a.Get(j))
			}
		}
	}
}

func TestNewArchiveErrors(t *testing.T) {
	_, err := archive.NewCrowdingArchive(0, 2)
	assert.ErrorIs(t, err, framework.ErrInvalidCapacity)
	_, err = archive.NewCrowdingArchive(3, 0)
	assert.ErrorIs(t, err, framework.ErrInvalidObjectives)
	_, err = archive.NewAdaptiveGridArchive(-1, 3, 2)
	assert.ErrorIs(t, err, framework.ErrInvalidCapacity)
	_, err = archive.NewAdaptiveGridArchive(10, 0, 2)
	assert.ErrorIs(t, err, framework.ErrInvalidBisections)
	_, err = archive.NewAdaptiveGridArchive(10, 20, 4)
	assert.ErrorIs(t, err, framework.ErrGridTooLarge)
}

func TestArchivesRejectMalformedSolutions(t *testing.T) {
	crowding, err := archive.NewCrowdingArchive(5, 2)
	require.NoError(t, err)
	grid, err := archive.NewAdaptiveGridArchive(5, 2, 2)
	require.NoError(t, err)

	for _, a := range []archive.Archive{crowding, grid} {
		ok, err := a.Add(sol(1, 2))
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = a.Add(sol(1, 2, 3))
		assert.ErrorIs(t, err, framework.ErrObjectiveCount)
		assert.False(t, ok)

		_, err = a.Add(nil)
		assert.ErrorIs(t, err, framework.ErrNilSolution)
		assert.Equal(t, 1, a.Size())
	}
}

func TestCrowdingArchiveDominance(t *testing.T) {
	a, err := archive.NewCrowdingArchive(10, 2)
	require.NoError(t, err)

	for _, s := range []*framework.Solution{sol(1, 5), sol(5, 1), sol(3, 3)} {
		ok, err := a.Add(s)
		require.NoError(t, err)
		require.True(t, ok)
	}

	// Dominated by (3,3).
	ok, err := a.Add(sol(4, 4))
	require.NoError(t, err)
	assert.False(t, ok)

	// Duplicate of an existing member.
	ok, err = a.Add(sol(3, 3))
	require.NoError(t, err)
	assert.False(t, ok)

	// Dominates (3,3) and (5,1).
	res, err := a.Insert(sol(2, 1))
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	require.Len(t, res.Removed, 2)
	assert.Equal(t, [][]float64{{1, 5}, {2, 1}}, points(a))
	requireNonDominated(t, a)
}

// Capacity 2 with three mutually non-dominated points: the interior point has
// the smallest crowding distance and is evicted.
func TestCrowdingArchiveEvictsInteriorPoint(t *testing.T) {
	a, err := archive.NewCrowdingArchive(2, 2)
	require.NoError(t, err)

	for _, s := range []*framework.Solution{sol(1, 5), sol(5, 1)} {
		ok, err := a.Add(s)
		require.NoError(t, err)
		require.True(t, ok)
	}

	interior := sol(3, 3)
	res, err := a.Insert(interior)
	require.NoError(t, err)
	assert.False(t, res.Accepted)
	assert.Same(t, interior, res.Evicted)
	assert.Equal(t, [][]float64{{1, 5}, {5, 1}}, points(a))
}

func TestCrowdingArchiveTieBreaksOnInsertionOrder(t *testing.T) {
	a, err := archive.NewCrowdingArchive(3, 2)
	require.NoError(t, err)

	for _, s := range []*framework.Solution{sol(0, 4), sol(1, 3), sol(2, 2)} {
		_, err := a.Add(s)
		require.NoError(t, err)
	}
	// (1,3) and (2,2) end up with the same distance, (1,3) is older.
	res, err := a.Insert(sol(3, 1))
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	require.NotNil(t, res.Evicted)
	assert.Equal(t, []float64{1, 3}, res.Evicted.Objectives)
	assert.Equal(t, [][]float64{{0, 4}, {2, 2}, {3, 1}}, points(a))
}

func TestCrowdingArchiveObserver(t *testing.T) {
	var events []archive.EventType
	a, err := archive.NewCrowdingArchive(2, 2, archive.WithObserver(func(e archive.Event) {
		events = append(events, e.Type)
	}))
	require.NoError(t, err)

	for _, s := range []*framework.Solution{sol(1, 5), sol(5, 1), sol(6, 6), sol(3, 3), sol(0, 0)} {
		_, err := a.Add(s)
		require.NoError(t, err)
	}

	assert.Equal(t, []archive.EventType{
		archive.EventAccepted,
		archive.EventAccepted,
		archive.EventRejected,
		archive.EventEvicted,
		archive.EventDominatedRemoved,
		archive.EventDominatedRemoved,
		archive.EventAccepted,
	}, events)
	assert.Equal(t, 1, a.Size())

	a.Clear()
	assert.Equal(t, 0, a.Size())
}

func TestArchivesStayBoundedAndNonDominated(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 1))

	crowding, err := archive.NewCrowdingArchive(20, 3)
	require.NoError(t, err)
	grid, err := archive.NewAdaptiveGridArchive(20, 3, 3)
	require.NoError(t, err)

	for i := 0; i < 2000; i++ {
		// Points scattered around the simplex x+y+z=1, with noise.
		x, y := rng.Float64(), rng.Float64()
		z := 1 - x - y + rng.Float64()*0.3
		s := sol(x, y, z)

		for _, a := range []archive.Archive{crowding, grid} {
			_, err := a.Add(s)
			require.NoError(t, err)
		}
		if i%100 == 0 {
			requireNonDominated(t, crowding)
			requireNonDominated(t, grid)
			requireGridConsistent(t, grid)
		}
	}
	requireNonDominated(t, crowding)
	requireNonDominated(t, grid)
	requireGridConsistent(t, grid)
	assert.Greater(t, crowding.Size(), 10)
	assert.Greater(t, grid.Size(), 10)
}
