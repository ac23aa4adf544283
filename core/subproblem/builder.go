package subproblem

import (
	"fmt"

	"github.com/f-sartori-v/mobauto2-decomp/core/milp"
)

// Potential is the number of passengers one trip in slot t carries.
func Potential(w Window, t int) float64 {
	if w.Demand[t] > w.Capacity {
		return w.Capacity
	}
	return w.Demand[t]
}

// VarIndex returns the model column of shuttle s in slot t.
func VarIndex(w Window, s, t int) int { return s*w.Slots + t }

// Build formulates the window as a minimization over one binary per shuttle
// and slot. A window without slots or shuttles yields a model without
// variables.
func Build(w Window) (*milp.Model, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	m := milp.NewModel("subproblem")
	if w.Slots == 0 || len(w.Shuttles) == 0 {
		return m, nil
	}
	for _, s := range w.Shuttles {
		for t := 0; t < w.Slots; t++ {
			m.AddBinary(fmt.Sprintf("x_%s_%d", s.ID, t), -Potential(w, t))
		}
	}
	for i, s := range w.Shuttles {
		terms := make([]milp.Term, w.Slots)
		for t := range terms {
			terms[t] = milp.Term{Var: VarIndex(w, i, t), Coef: w.TripDistance}
		}
		m.AddRow("energy_"+s.ID, terms, milp.LessEqual, s.Budget)
	}
	if len(w.Shuttles) > 1 {
		for t := 0; t < w.Slots; t++ {
			terms := make([]milp.Term, len(w.Shuttles))
			for i := range w.Shuttles {
				terms[i] = milp.Term{Var: VarIndex(w, i, t), Coef: 1}
			}
			m.AddRow(fmt.Sprintf("slot_%d", t), terms, milp.LessEqual, 1)
		}
	}
	return m, nil
}
