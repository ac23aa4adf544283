package simplex

import (
	"errors"
	"fmt"
	"math"

	"github.com/f-sartori-v/mobauto2-decomp/core/milp"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

var (
	errNodeInfeasible = errors.New("relaxation infeasible")
	errNodeUnbounded  = errors.New("relaxation unbounded")
)

// solveLP solves min c'x s.t. Ax = b, x >= 0.
func solveLP(c []float64, A mat.Matrix, b []float64, tol float64) ([]float64, error) {
	_, x, err := lp.Simplex(c, A, b, tol, nil)
	return x, err
}

// lpSolve points to the function used to solve the standard form LP. It can
// be overridden in tests.
var lpSolve = solveLP

// relax solves the LP relaxation of m with the variable bounds replaced by
// lower and upper. It returns a value for every model variable.
//
// Variables are shifted by their lower bound, every inequality row gets a
// slack column and finite upper bounds become rows y + u = upper - lower,
// which yields the equality form lp.Simplex expects.
func relax(m *milp.Model, lower, upper []float64, tol float64) ([]float64, error) {
	n := len(m.Vars)
	x := make([]float64, n)
	copy(x, lower)

	col := make([]int, n)
	used := make([]bool, n)
	for j := range col {
		col[j] = -1
		if upper[j]-lower[j] <= tol {
			continue
		}
		if !math.IsInf(upper[j], 1) {
			used[j] = true
		}
	}

	type stdRow struct {
		coef  map[int]float64
		sense milp.Sense
		rhs   float64
	}
	var rows []stdRow
	for i, r := range m.Rows {
		rhs := r.RHS
		coef := map[int]float64{}
		for _, t := range r.Terms {
			rhs -= t.Coef * lower[t.Var]
			if upper[t.Var]-lower[t.Var] > tol && t.Coef != 0 {
				coef[t.Var] += t.Coef
			}
		}
		for j, v := range coef {
			if v == 0 {
				delete(coef, j)
			} else {
				used[j] = true
			}
		}
		if len(coef) == 0 {
			// Only fixed variables left: check the row directly.
			ok := true
			switch r.Sense {
			case milp.LessEqual:
				ok = rhs >= -tol
			case milp.GreaterEqual:
				ok = rhs <= tol
			case milp.Equal:
				ok = math.Abs(rhs) <= tol
			}
			if !ok {
				return nil, fmt.Errorf("row %s: %w", m.Rows[i].Name, errNodeInfeasible)
			}
			continue
		}
		rows = append(rows, stdRow{coef: coef, sense: r.Sense, rhs: rhs})
	}

	cols := 0
	for j := 0; j < n; j++ {
		if upper[j]-lower[j] <= tol {
			continue
		}
		if !used[j] {
			// No finite upper bound and no row: the objective sign decides.
			if m.Vars[j].Obj < 0 {
				return nil, errNodeUnbounded
			}
			continue
		}
		col[j] = cols
		cols++
	}
	structural := cols
	for _, r := range rows {
		if r.sense != milp.Equal {
			cols++
		}
	}
	var bounded []int
	for j := 0; j < n; j++ {
		if col[j] >= 0 && !math.IsInf(upper[j], 1) {
			bounded = append(bounded, j)
		}
	}
	cols += len(bounded)
	nrows := len(rows) + len(bounded)
	if nrows == 0 {
		return x, nil
	}
	if nrows > cols {
		return nil, fmt.Errorf("relaxation has %d rows for %d columns", nrows, cols)
	}

	A := mat.NewDense(nrows, cols, nil)
	b := make([]float64, nrows)
	c := make([]float64, cols)
	for j := 0; j < n; j++ {
		if col[j] >= 0 {
			c[col[j]] = m.Vars[j].Obj
		}
	}
	slack := structural
	for i, r := range rows {
		for j, v := range r.coef {
			A.Set(i, col[j], v)
		}
		switch r.sense {
		case milp.LessEqual:
			A.Set(i, slack, 1)
			slack++
		case milp.GreaterEqual:
			A.Set(i, slack, -1)
			slack++
		}
		b[i] = r.rhs
	}
	for k, j := range bounded {
		i := len(rows) + k
		A.Set(i, col[j], 1)
		A.Set(i, slack, 1)
		slack++
		b[i] = upper[j] - lower[j]
	}
	for i := range b {
		if b[i] < 0 {
			b[i] = -b[i]
			for k := 0; k < cols; k++ {
				A.Set(i, k, -A.At(i, k))
			}
		}
	}

	y, err := lpSolve(c, A, b, tol)
	switch {
	case errors.Is(err, lp.ErrInfeasible):
		return nil, errNodeInfeasible
	case errors.Is(err, lp.ErrUnbounded):
		return nil, errNodeUnbounded
	case err != nil:
		return nil, err
	}
	for j := 0; j < n; j++ {
		if col[j] >= 0 {
			x[j] = lower[j] + y[col[j]]
		}
	}
	return x, nil
}
