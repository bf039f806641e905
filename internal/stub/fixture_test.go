package stub

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
scenarios:
  - id: tiny
    name: Tiny
    makespan: 5
    teams:
      - name: Crew
        capacity: 3
        shift: 1st
        utilization: 50
    products:
      - name: Widget
        tasks: 4
        on_time: true
`), 0o644))

	f, err := LoadFixture(path)
	require.NoError(t, err)
	require.Len(t, f.Scenarios, 1)
	assert.Equal(t, "tiny", f.Scenarios[0].ID)
	assert.Equal(t, 4, f.Scenarios[0].Products[0].Tasks)
}

func TestLoadFixture_Errors(t *testing.T) {
	_, err := LoadFixture(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("scenarios: []\n"), 0o644))
	_, err = LoadFixture(empty)
	assert.Error(t, err)
}

func TestBuild_DerivedAggregates(t *testing.T) {
	base := time.Date(2026, 8, 1, 6, 0, 0, 0, time.UTC)
	scenarios := DefaultFixture().Build(base)
	require.Len(t, scenarios, 4)

	sc := scenarios["baseline"]
	require.NotNil(t, sc)

	assert.Equal(t, 18, sc.TotalWorkforce)
	assert.Equal(t, 79, sc.AvgUtilization) // (82+94+61)/3
	assert.Equal(t, 33, sc.OnTimeRate)     // 1 of 3 products on time
	assert.Equal(t, 9, sc.MaxLateness)
	assert.Equal(t, sc.TotalTasks, len(sc.Tasks))

	// Late-part tasks carry an on-dock date; others don't.
	for _, task := range sc.Tasks {
		if task.IsLatePartTask {
			assert.NotNil(t, task.OnDockDate, "task %s", task.ID)
		} else {
			assert.Nil(t, task.OnDockDate, "task %s", task.ID)
		}
	}

	// Generated scenarios pass ingestion validation cleanly.
	for id, scenario := range scenarios {
		products := map[string]bool{}
		for _, p := range scenario.Products {
			products[p.Name] = true
		}
		for _, task := range scenario.Tasks {
			assert.True(t, products[task.Product], "scenario %s task %s", id, task.ID)
		}
	}
}

func TestBuild_Deterministic(t *testing.T) {
	base := time.Date(2026, 8, 1, 6, 0, 0, 0, time.UTC)
	a := DefaultFixture().Build(base)["baseline"]
	b := DefaultFixture().Build(base)["baseline"]

	require.Equal(t, len(a.Tasks), len(b.Tasks))
	for i := range a.Tasks {
		assert.Equal(t, a.Tasks[i], b.Tasks[i])
	}
}
