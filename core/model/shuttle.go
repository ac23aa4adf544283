package model

import "fmt"

// Params holds the scalar settings shared by every shuttle of a run. Distances
// and energies are expressed in the same unit (km of range).
type Params struct {
	HorizonMin   int `json:"horizon_min"`
	Capacity     int `json:"shuttle_capacity"`
	TripDistance int `json:"trip_distance"`
	BatteryRange int `json:"battery_range"`
	NbrShuttles  int `json:"nbr_shuttles"`
}

// Shuttle is the per-shuttle state handed over by the master problem.
type Shuttle struct {
	ID    string   `json:"id"`
	Seq   []string `json:"seq"`   // task tokens, one per slot
	SoC0  int      `json:"soc0"`  // state of charge at window start
	Delay int      `json:"delay"` // accumulated delay, may be negative
	Prev  TaskTag  `json:"prev_task"`
}

// ShuttleKey returns the document key of the i-th shuttle block.
func ShuttleKey(i int) string {
	return fmt.Sprintf("S%d", i)
}

// Slots returns the number of task tokens in the shuttle sequence.
func (s Shuttle) Slots() int { return len(s.Seq) }

// RemainingRange returns the energy the shuttle may spend in the window: its
// state of charge capped by the battery range. Negative values clamp to 0.
func (s Shuttle) RemainingRange(batteryRange int) int {
	r := s.SoC0
	if r > batteryRange {
		r = batteryRange
	}
	if r < 0 {
		r = 0
	}
	return r
}

// Fleet is the ordered set of shuttles of one subproblem.
type Fleet struct {
	Shuttles []Shuttle `json:"shuttles"`
}

// Len returns the number of shuttles.
func (f Fleet) Len() int { return len(f.Shuttles) }

// MaxSlots returns the longest task sequence in the fleet.
func (f Fleet) MaxSlots() int {
	n := 0
	for _, s := range f.Shuttles {
		if s.Slots() > n {
			n = s.Slots()
		}
	}
	return n
}
