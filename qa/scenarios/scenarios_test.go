package scenarios

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/f-sartori-v/mobauto2-decomp/core/model"
)

func TestScenario(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no scenarios found")
	}
	for _, f := range files {
		sc, err := Load(f)
		if err != nil {
			t.Fatalf("load %s: %v", f, err)
		}
		t.Run(sc.Name, func(t *testing.T) {
			RunScenario(t, sc)
		})
	}
}

func TestToState(t *testing.T) {
	sc := &Scenario{
		Params:   ParamsDef{HorizonMin: 60, Capacity: 15, TripDistance: 30, BatteryRange: 150},
		Shuttles: []ShuttleDef{{Seq: []string{"OUT", "RET", "OUT"}, SoC0: 90, Prev: "RET"}},
		Requests: []RequestDef{{Dir: "RET", Ready: 3}},
		PerSlot:  []int{0, 2},
	}
	st, err := sc.ToState()
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	want := []model.Request{
		{Dir: model.DirReturn, Ready: 3},
		{Dir: model.DirOutbound, Ready: 20},
		{Dir: model.DirOutbound, Ready: 20},
	}
	if diff := cmp.Diff(want, st.Demand.Requests); diff != "" {
		t.Errorf("requests mismatch (-want +got):\n%s", diff)
	}
	if st.Fleet.Shuttles[0].Prev != model.TaskReturn || st.Fleet.Shuttles[0].ID != "S0" {
		t.Errorf("unexpected shuttle %+v", st.Fleet.Shuttles[0])
	}

	sc.Shuttles[0].Prev = "FLY"
	if _, err := sc.ToState(); err == nil {
		t.Fatal("expected error for unknown prev_task")
	}
}

func TestLoadInvalid(t *testing.T) {
	if _, err := Load("no-file.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
	tmp, err := os.CreateTemp(t.TempDir(), "bad*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tmp.WriteString(":"); err != nil {
		t.Fatal(err)
	}
	if err := tmp.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(tmp.Name()); err == nil {
		t.Fatal("expected unmarshal error")
	}
}

func TestEqualInts(t *testing.T) {
	if !equalInts([]int{1, 0}, []int{1, 0}) || equalInts([]int{1}, []int{1, 0}) || equalInts([]int{1}, []int{0}) {
		t.Fatal("equalInts mismatch")
	}
}
