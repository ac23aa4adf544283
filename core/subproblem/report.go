package subproblem

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/f-sartori-v/mobauto2-decomp/core/milp"
)

// ErrInconsistent is returned when a solution contradicts the window it was
// computed for.
var ErrInconsistent = errors.New("solution inconsistent with window")

const budgetTol = 1e-6

// Decided applies the 0.5 threshold to a solver value.
func Decided(v float64) bool { return v > 0.5 }

// ShuttlePlan is the decoded activity of one shuttle.
type ShuttlePlan struct {
	ID         string  `json:"id"`
	Decisions  []int   `json:"decisions"`
	Trips      int     `json:"trips"`
	EnergyUsed float64 `json:"energy_used"`
	Passengers float64 `json:"passengers_served"`
	Budget     float64 `json:"budget"`
}

// Report summarizes a solved window.
type Report struct {
	RunID            string        `json:"run_id,omitempty"`
	Status           milp.Status   `json:"status"`
	Slots            int           `json:"slots"`
	Plans            []ShuttlePlan `json:"plans"`
	Trips            int           `json:"trips"`
	EnergyUsed       float64       `json:"energy_used"`
	PassengersServed float64       `json:"passengers_served"`
	Objective        float64       `json:"objective"`
	Elapsed          time.Duration `json:"elapsed_ns"`
}

// Decode maps an assignment back onto the window. The passenger count is
// recomputed from Potential, independently of the solver objective.
func Decode(w Window, sol *milp.Solution) (Report, error) {
	if sol == nil {
		return Report{}, errors.New("decode: nil solution")
	}
	want := w.Slots * len(w.Shuttles)
	if len(sol.Values) != want {
		return Report{}, fmt.Errorf("decode: %d values for %d variables", len(sol.Values), want)
	}
	rep := Report{Status: sol.Status, Slots: w.Slots, Objective: sol.Objective}
	for i, s := range w.Shuttles {
		plan := ShuttlePlan{ID: s.ID, Decisions: make([]int, w.Slots), Budget: s.Budget}
		for t := 0; t < w.Slots; t++ {
			if !Decided(sol.Values[VarIndex(w, i, t)]) {
				continue
			}
			plan.Decisions[t] = 1
			plan.Trips++
			plan.Passengers += Potential(w, t)
		}
		plan.EnergyUsed = float64(plan.Trips) * w.TripDistance
		rep.Trips += plan.Trips
		rep.EnergyUsed += plan.EnergyUsed
		rep.PassengersServed += plan.Passengers
		rep.Plans = append(rep.Plans, plan)
	}
	return rep, nil
}

// Consistent reports whether the solver objective matches the recomputed
// passenger count, the objective being its negation.
func (r Report) Consistent(tol float64) bool {
	return math.Abs(r.PassengersServed+r.Objective) <= tol
}

// Check verifies the decoded plan against the energy budgets and, for
// several shuttles, the one-trip-per-slot rule.
func (r Report) Check(w Window) error {
	for i, p := range r.Plans {
		if p.EnergyUsed > w.Shuttles[i].Budget+budgetTol {
			return fmt.Errorf("%w: shuttle %s uses %v of %v", ErrInconsistent, p.ID, p.EnergyUsed, w.Shuttles[i].Budget)
		}
	}
	if len(r.Plans) < 2 {
		return nil
	}
	for t := 0; t < r.Slots; t++ {
		n := 0
		for _, p := range r.Plans {
			n += p.Decisions[t]
		}
		if n > 1 {
			return fmt.Errorf("%w: %d trips in slot %d", ErrInconsistent, n, t)
		}
	}
	return nil
}

// Render writes the plain text summary.
func (r Report) Render(out io.Writer) error {
	multi := len(r.Plans) > 1
	for _, p := range r.Plans {
		for t, d := range p.Decisions {
			var err error
			if multi {
				_, err = fmt.Fprintf(out, "%s  t=%d  x_t=%d\n", p.ID, t, d)
			} else {
				_, err = fmt.Fprintf(out, "t=%d  x_t=%d\n", t, d)
			}
			if err != nil {
				return err
			}
		}
	}
	if _, err := fmt.Fprintf(out, "trips=%d  energy_used=%g  pax_served=%g\n", r.Trips, r.EnergyUsed, r.PassengersServed); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "Obj = %g (negative == max pax)\n", r.Objective); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "[time] subproblem ran in %.3fs\n", r.Elapsed.Seconds())
	return err
}

// JSON returns the indented JSON form of the report.
func (r Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Decisions returns the per-shuttle 0/1 vectors keyed by shuttle id.
func (r Report) Decisions() map[string][]int {
	out := make(map[string][]int, len(r.Plans))
	for _, p := range r.Plans {
		out[p.ID] = p.Decisions
	}
	return out
}
