// Package milp describes mixed-integer programs in a solver-neutral way and
// defines the contract solving engines implement.
package milp

import (
	"fmt"
	"math"
)

// Sense is the relation of a constraint row to its right-hand side.
type Sense int

const (
	LessEqual Sense = iota
	GreaterEqual
	Equal
)

func (s Sense) String() string {
	switch s {
	case LessEqual:
		return "<="
	case GreaterEqual:
		return ">="
	case Equal:
		return "="
	default:
		return "?"
	}
}

// Var is a decision variable. Objective coefficients are minimized.
type Var struct {
	Name    string
	Lower   float64
	Upper   float64 // math.Inf(1) for unbounded
	Obj     float64
	Integer bool
}

// Term is one non-zero coefficient of a row.
type Term struct {
	Var  int
	Coef float64
}

// Row is a linear constraint sum(Coef*x[Var]) Sense RHS.
type Row struct {
	Name  string
	Terms []Term
	Sense Sense
	RHS   float64
}

// Model is a minimization problem.
type Model struct {
	Name string
	Vars []Var
	Rows []Row
}

// NewModel returns an empty model.
func NewModel(name string) *Model {
	return &Model{Name: name}
}

// AddBinary appends a 0/1 variable and returns its index.
func (m *Model) AddBinary(name string, obj float64) int {
	m.Vars = append(m.Vars, Var{Name: name, Lower: 0, Upper: 1, Obj: obj, Integer: true})
	return len(m.Vars) - 1
}

// AddRow appends a constraint and returns its index.
func (m *Model) AddRow(name string, terms []Term, sense Sense, rhs float64) int {
	m.Rows = append(m.Rows, Row{Name: name, Terms: terms, Sense: sense, RHS: rhs})
	return len(m.Rows) - 1
}

// NumVars returns the number of decision variables.
func (m *Model) NumVars() int { return len(m.Vars) }

// Empty reports whether the model has no decision variable. Solving such a
// model is trivial and engines are not invoked for it.
func (m *Model) Empty() bool { return len(m.Vars) == 0 }

// Validate checks indices, bounds and coefficients.
func (m *Model) Validate() error {
	for j, v := range m.Vars {
		if math.IsNaN(v.Lower) || math.IsNaN(v.Upper) || math.IsNaN(v.Obj) || math.IsInf(v.Obj, 0) {
			return fmt.Errorf("var %d (%s): non-finite data", j, v.Name)
		}
		if math.IsInf(v.Lower, 0) {
			return fmt.Errorf("var %d (%s): lower bound must be finite", j, v.Name)
		}
		if v.Lower > v.Upper {
			return fmt.Errorf("var %d (%s): lower bound %v above upper bound %v", j, v.Name, v.Lower, v.Upper)
		}
	}
	for i, r := range m.Rows {
		if math.IsNaN(r.RHS) || math.IsInf(r.RHS, 0) {
			return fmt.Errorf("row %d (%s): non-finite rhs", i, r.Name)
		}
		for _, t := range r.Terms {
			if t.Var < 0 || t.Var >= len(m.Vars) {
				return fmt.Errorf("row %d (%s): variable index %d out of range", i, r.Name, t.Var)
			}
			if math.IsNaN(t.Coef) || math.IsInf(t.Coef, 0) {
				return fmt.Errorf("row %d (%s): non-finite coefficient", i, r.Name)
			}
		}
	}
	return nil
}

// Objective evaluates the objective at x.
func (m *Model) Objective(x []float64) float64 {
	var sum float64
	for j, v := range m.Vars {
		sum += v.Obj * x[j]
	}
	return sum
}

// Activity returns the left-hand side of row i at x.
func (m *Model) Activity(i int, x []float64) float64 {
	var sum float64
	for _, t := range m.Rows[i].Terms {
		sum += t.Coef * x[t.Var]
	}
	return sum
}

// CheckFeasible returns an error naming the first bound or row violated by x
// beyond tol.
func (m *Model) CheckFeasible(x []float64, tol float64) error {
	if len(x) != len(m.Vars) {
		return fmt.Errorf("assignment has %d values, model has %d variables", len(x), len(m.Vars))
	}
	for j, v := range m.Vars {
		if x[j] < v.Lower-tol || x[j] > v.Upper+tol {
			return fmt.Errorf("var %s=%v outside [%v,%v]", v.Name, x[j], v.Lower, v.Upper)
		}
		if v.Integer && math.Abs(x[j]-math.Round(x[j])) > tol {
			return fmt.Errorf("var %s=%v is not integral", v.Name, x[j])
		}
	}
	for i, r := range m.Rows {
		lhs := m.Activity(i, x)
		ok := true
		switch r.Sense {
		case LessEqual:
			ok = lhs <= r.RHS+tol
		case GreaterEqual:
			ok = lhs >= r.RHS-tol
		case Equal:
			ok = math.Abs(lhs-r.RHS) <= tol
		}
		if !ok {
			return fmt.Errorf("row %s violated: %v %s %v", r.Name, lhs, r.Sense, r.RHS)
		}
	}
	return nil
}
