package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/f-sartori-v/mobauto2-decomp/core/metrics"
)

func okEvent() coremetrics.SolveEvent {
	return coremetrics.SolveEvent{
		RunID: "r1", Engine: "simplex", Status: "optimal", Slots: 5, Shuttles: 1,
		Trips: 5, EnergyUsed: 150, Passengers: 41, Objective: -41,
		Elapsed: 20 * time.Millisecond, Time: time.Now(),
	}
}

func TestPromSink_RecordSolve(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordSolve(okEvent()))
	failed := okEvent()
	failed.Status = "infeasible"
	failed.Error = "solve failed"
	failed.Passengers = 0
	require.NoError(t, sink.RecordSolve(failed))

	expected := `
# HELP subproblem_runs_total Total number of subproblem runs by outcome
# TYPE subproblem_runs_total counter
subproblem_runs_total{engine="simplex",status="infeasible"} 1
subproblem_runs_total{engine="simplex",status="optimal"} 1
`
	require.NoError(t, testutil.CollectAndCompare(sink.runs, strings.NewReader(expected)))
	assert.Equal(t, 41.0, testutil.ToFloat64(sink.passengers.WithLabelValues("simplex")))
	assert.Equal(t, 150.0, testutil.ToFloat64(sink.energy.WithLabelValues("simplex")))
	assert.Equal(t, 5.0, testutil.ToFloat64(sink.trips.WithLabelValues("simplex")))
	assert.Equal(t, 1, testutil.CollectAndCount(sink.duration))
}

func TestPromSink_AlreadyRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	second, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	assert.Same(t, first.runs, second.runs)
}

func TestPromSink_Textfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "subproblem.prom")
	sink.WithTextfile(path)

	require.NoError(t, sink.RecordSolve(okEvent()))
	require.NoError(t, sink.Flush())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `subproblem_passengers_served{engine="simplex"} 41`)
}
