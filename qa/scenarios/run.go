package scenarios

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/f-sartori-v/mobauto2-decomp/core/runlog"
	"github.com/f-sartori-v/mobauto2-decomp/core/subproblem"
	"github.com/f-sartori-v/mobauto2-decomp/infra/logger"
	"github.com/f-sartori-v/mobauto2-decomp/infra/metrics"
	"github.com/f-sartori-v/mobauto2-decomp/infra/solver/simplex"
)

func RunScenario(t *testing.T, sc *Scenario) {
	st, err := sc.ToState()
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	w, err := subproblem.NewWindow(st)
	if err != nil {
		t.Fatalf("window: %v", err)
	}

	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}
	eng, err := simplex.New(simplex.Config{}, logger.NopLogger{})
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	defer func() { _ = eng.Close() }()
	store, err := runlog.NewSQLiteStore("file:" + sc.Name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	defer func() { _ = store.Close() }()

	runner := subproblem.NewRunner(eng, logger.NopLogger{},
		subproblem.WithSink(sink), subproblem.WithStore(store), subproblem.WithEngineName("simplex"))
	rep, err := runner.Run(context.Background(), w)
	if err != nil {
		t.Fatalf("scenario %s: %v", sc.Name, err)
	}

	if rep.Trips != sc.Expected.Trips {
		t.Errorf("scenario %s expected %d trips, got %d", sc.Name, sc.Expected.Trips, rep.Trips)
	}
	if rep.PassengersServed != sc.Expected.Passengers {
		t.Errorf("scenario %s expected %v passengers, got %v", sc.Name, sc.Expected.Passengers, rep.PassengersServed)
	}
	if rep.EnergyUsed != sc.Expected.EnergyUsed {
		t.Errorf("scenario %s expected %v energy used, got %v", sc.Name, sc.Expected.EnergyUsed, rep.EnergyUsed)
	}
	got := rep.Decisions()
	for id, want := range sc.Expected.Decisions {
		if !equalInts(got[id], want) {
			t.Errorf("scenario %s shuttle %s expected %v, got %v", sc.Name, id, want, got[id])
		}
	}
	if n, err := testutil.GatherAndCount(reg, "subproblem_runs_total"); err != nil || n != 1 {
		t.Errorf("scenario %s expected one run counter, got %d (%v)", sc.Name, n, err)
	}
	recs, err := store.Query(context.Background(), runlog.Query{})
	if err != nil || len(recs) != 1 {
		t.Errorf("scenario %s expected one run record, got %d (%v)", sc.Name, len(recs), err)
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
