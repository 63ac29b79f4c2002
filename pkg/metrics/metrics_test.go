package metrics_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moeakit/moea/pkg/archive"
	"github.com/moeakit/moea/pkg/framework"
	"github.com/moeakit/moea/pkg/metrics"
)

func TestArchiveObserver(t *testing.T) {
	m := metrics.New()
	a, err := archive.NewCrowdingArchive(2, 2, archive.WithObserver(m.ArchiveObserver("crowding")))
	require.NoError(t, err)

	for _, s := range []*framework.Solution{
		framework.NewSolution(1, 5),
		framework.NewSolution(5, 1),
		framework.NewSolution(3, 3),
		framework.NewSolution(6, 6),
	} {
		_, err := a.Add(s)
		require.NoError(t, err)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ArchiveEvents.WithLabelValues("crowding", "accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ArchiveEvents.WithLabelValues("crowding", "evicted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ArchiveEvents.WithLabelValues("crowding", "rejected")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ArchiveSize.WithLabelValues("crowding")))
}

func TestWriteTextfile(t *testing.T) {
	m := metrics.New()
	m.ObserveGeneration("NSGA-II", 100, 12)
	m.ObserveGeneration("NSGA-II", 100, 15)

	path := filepath.Join(t.TempDir(), "moea.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.Contains(out, `moea_generations_total{algorithm="NSGA-II"} 2`), out)
	assert.True(t, strings.Contains(out, `moea_evaluations_total{algorithm="NSGA-II"} 200`), out)
	assert.True(t, strings.Contains(out, `moea_first_front_size{algorithm="NSGA-II"} 15`), out)
}
