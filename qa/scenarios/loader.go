// Package scenarios runs YAML described windows through the full pipeline.
package scenarios

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/f-sartori-v/mobauto2-decomp/core/model"
	"github.com/f-sartori-v/mobauto2-decomp/core/state"
)

type ParamsDef struct {
	HorizonMin   int `yaml:"horizon_min"`
	Capacity     int `yaml:"capacity"`
	TripDistance int `yaml:"trip_distance"`
	BatteryRange int `yaml:"battery_range"`
}

type ShuttleDef struct {
	Seq  []string `yaml:"seq"`
	SoC0 int      `yaml:"soc0"`
	Prev string   `yaml:"prev_task,omitempty"`
}

type RequestDef struct {
	Dir   string `yaml:"dir"`
	Ready int    `yaml:"ready"`
}

type Expected struct {
	Trips      int              `yaml:"trips"`
	Passengers float64          `yaml:"passengers"`
	EnergyUsed float64          `yaml:"energy_used"`
	Decisions  map[string][]int `yaml:"decisions,omitempty"`
}

type Scenario struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Params      ParamsDef    `yaml:"params"`
	Shuttles    []ShuttleDef `yaml:"shuttles"`
	Requests    []RequestDef `yaml:"requests,omitempty"`
	// PerSlot adds n requests at the start of each slot.
	PerSlot  []int    `yaml:"per_slot,omitempty"`
	Expected Expected `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// ToState builds the state a merged document with the same content would load to.
func (sc *Scenario) ToState() (*state.State, error) {
	st := &state.State{Params: model.Params{
		HorizonMin:   sc.Params.HorizonMin,
		Capacity:     sc.Params.Capacity,
		TripDistance: sc.Params.TripDistance,
		BatteryRange: sc.Params.BatteryRange,
		NbrShuttles:  len(sc.Shuttles),
	}}
	for i, s := range sc.Shuttles {
		prev := model.TaskCharge
		if s.Prev != "" {
			p, err := model.ParseTaskTag(s.Prev)
			if err != nil {
				return nil, fmt.Errorf("shuttle %d: %w", i, err)
			}
			prev = p
		}
		st.Fleet.Shuttles = append(st.Fleet.Shuttles, model.Shuttle{
			ID: model.ShuttleKey(i), Seq: s.Seq, SoC0: s.SoC0, Prev: prev,
		})
	}
	for j, r := range sc.Requests {
		dir := model.DirOutbound
		if r.Dir != "" {
			d, err := model.ParseDirection(r.Dir)
			if err != nil {
				return nil, fmt.Errorf("request %d: %w", j, err)
			}
			dir = d
		}
		st.Demand.Requests = append(st.Demand.Requests, model.Request{Dir: dir, Ready: r.Ready})
	}
	if len(sc.PerSlot) > 0 {
		slots := st.Fleet.MaxSlots()
		slotLen := 1
		if slots > 0 && st.Params.HorizonMin > slots {
			slotLen = (st.Params.HorizonMin + slots - 1) / slots
		}
		for t, n := range sc.PerSlot {
			for k := 0; k < n; k++ {
				st.Demand.Requests = append(st.Demand.Requests, model.Request{Dir: model.DirOutbound, Ready: t * slotLen})
			}
		}
	}
	return st, nil
}
