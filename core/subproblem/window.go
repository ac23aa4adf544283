// Package subproblem turns one scheduling window into a binary program,
// hands it to a solving engine and decodes the answer into a trip plan.
package subproblem

import (
	"errors"
	"fmt"
	"math"

	"github.com/f-sartori-v/mobauto2-decomp/core/state"
)

// ErrInvalidWindow is returned for windows whose data cannot form a model.
var ErrInvalidWindow = errors.New("invalid window")

// ShuttleBudget is the energy one shuttle may spend in the window.
type ShuttleBudget struct {
	ID     string  `json:"id"`
	Budget float64 `json:"budget"`
}

// Window is the input of Build: a slot grid, the demand per slot and the
// shuttles competing for it.
type Window struct {
	Slots        int             `json:"slots"`
	SlotLen      int             `json:"slot_len_min"`
	Demand       []float64       `json:"demand"`
	Capacity     float64         `json:"capacity"`
	TripDistance float64         `json:"trip_distance"`
	Shuttles     []ShuttleBudget `json:"shuttles"`
}

// Validate checks sizes and signs.
func (w Window) Validate() error {
	if w.Slots < 0 {
		return fmt.Errorf("%w: negative slot count %d", ErrInvalidWindow, w.Slots)
	}
	if len(w.Demand) != w.Slots {
		return fmt.Errorf("%w: demand has %d entries for %d slots", ErrInvalidWindow, len(w.Demand), w.Slots)
	}
	if w.Capacity < 0 || math.IsNaN(w.Capacity) {
		return fmt.Errorf("%w: capacity %v", ErrInvalidWindow, w.Capacity)
	}
	if w.TripDistance < 0 || math.IsNaN(w.TripDistance) {
		return fmt.Errorf("%w: trip distance %v", ErrInvalidWindow, w.TripDistance)
	}
	for t, d := range w.Demand {
		if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return fmt.Errorf("%w: demand[%d]=%v", ErrInvalidWindow, t, d)
		}
	}
	for _, s := range w.Shuttles {
		if math.IsNaN(s.Budget) || math.IsInf(s.Budget, 0) {
			return fmt.Errorf("%w: shuttle %s budget %v", ErrInvalidWindow, s.ID, s.Budget)
		}
	}
	return nil
}

// ShuttleIDs returns the shuttle ids in window order.
func (w Window) ShuttleIDs() []string {
	ids := make([]string, len(w.Shuttles))
	for i, s := range w.Shuttles {
		ids[i] = s.ID
	}
	return ids
}

// NewWindow derives a window from a loaded state. The slot count is the
// longest task sequence of the fleet and the horizon is split evenly across
// slots. Requests are counted in the slot containing their ready time.
func NewWindow(st *state.State) (Window, error) {
	if st == nil {
		return Window{}, fmt.Errorf("%w: nil state", ErrInvalidWindow)
	}
	p := st.Params
	slots := st.Fleet.MaxSlots()
	slotLen := 1
	if slots > 0 && p.HorizonMin > slots {
		slotLen = (p.HorizonMin + slots - 1) / slots
	}
	counts := st.Demand.SlotCounts(slots, slotLen, p.HorizonMin)
	w := Window{
		Slots:        slots,
		SlotLen:      slotLen,
		Demand:       make([]float64, slots),
		Capacity:     float64(p.Capacity),
		TripDistance: float64(p.TripDistance),
	}
	for t, c := range counts {
		w.Demand[t] = float64(c)
	}
	for _, s := range st.Fleet.Shuttles {
		w.Shuttles = append(w.Shuttles, ShuttleBudget{ID: s.ID, Budget: float64(s.RemainingRange(p.BatteryRange))})
	}
	if err := w.Validate(); err != nil {
		return Window{}, err
	}
	return w, nil
}
