// Package simplex provides a branch and bound MILP engine whose relaxations
// are solved with gonum's simplex implementation.
package simplex

import (
	"errors"
	"fmt"
	"math"

	"github.com/f-sartori-v/mobauto2-decomp/core/factory"
	"github.com/f-sartori-v/mobauto2-decomp/core/logger"
	"github.com/f-sartori-v/mobauto2-decomp/core/milp"
	infralog "github.com/f-sartori-v/mobauto2-decomp/infra/logger"
)

// Engine solves models by depth-first branch and bound.
type Engine struct {
	cfg    Config
	logger logger.Logger
}

// New returns an Engine. Zero configuration fields take their defaults.
func New(cfg Config, log logger.Logger) (*Engine, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, milp.Fail(milp.StatusInitFailed, err)
	}
	if log == nil {
		log = infralog.NopLogger{}
	}
	return &Engine{cfg: cfg, logger: log}, nil
}

func init() {
	_ = milp.RegisterEngine("simplex", func(conf map[string]any) (milp.Engine, error) {
		var c Config
		if err := factory.Decode(conf, &c); err != nil {
			return nil, milp.Fail(milp.StatusInitFailed, err)
		}
		return New(c, infralog.New("simplex"))
	})
}

type node struct {
	lower, upper []float64
	depth        int
}

// Solve implements milp.Solver.
func (e *Engine) Solve(m *milp.Model) (*milp.Solution, error) {
	if err := m.Validate(); err != nil {
		return nil, milp.Fail(milp.StatusInitFailed, err)
	}
	if m.Empty() {
		return &milp.Solution{Values: []float64{}, Status: milp.StatusOptimal}, nil
	}
	tol := e.cfg.Tolerance

	root := node{lower: make([]float64, len(m.Vars)), upper: make([]float64, len(m.Vars))}
	for j, v := range m.Vars {
		root.lower[j], root.upper[j] = v.Lower, v.Upper
		if v.Integer {
			root.lower[j] = math.Ceil(v.Lower - tol)
			if !math.IsInf(v.Upper, 1) {
				root.upper[j] = math.Floor(v.Upper + tol)
			}
			if root.lower[j] > root.upper[j] {
				return nil, milp.Fail(milp.StatusInfeasible, fmt.Errorf("var %s: %w", v.Name, milp.ErrInfeasible))
			}
		}
	}

	var (
		best    []float64
		bestObj = math.Inf(1)
		nodes   int
		limited bool
		stack   = []node{root}
	)
	for len(stack) > 0 {
		if nodes >= e.cfg.MaxNodes {
			limited = true
			break
		}
		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nodes++

		x, err := relax(m, nd.lower, nd.upper, tol)
		switch {
		case errors.Is(err, errNodeInfeasible):
			continue
		case errors.Is(err, errNodeUnbounded):
			return nil, milp.Fail(milp.StatusUnbounded, milp.ErrUnbounded)
		case err != nil:
			return nil, fmt.Errorf("simplex: node %d: %w", nodes, err)
		}
		obj := m.Objective(x)
		if obj >= bestObj-tol {
			continue
		}
		j := branchVar(m, x, tol)
		if j < 0 {
			best = roundIntegers(m, x)
			bestObj = m.Objective(best)
			e.logger.Debugf("incumbent %.4f at node %d (depth %d)", bestObj, nodes, nd.depth)
			continue
		}
		f := math.Floor(x[j])
		down := node{lower: clone(nd.lower), upper: clone(nd.upper), depth: nd.depth + 1}
		down.upper[j] = f
		up := node{lower: clone(nd.lower), upper: clone(nd.upper), depth: nd.depth + 1}
		up.lower[j] = f + 1
		stack = append(stack, down, up)
	}

	if best == nil {
		if limited {
			return nil, milp.Fail(milp.StatusLimit, fmt.Errorf("%d nodes: %w", nodes, milp.ErrLimit))
		}
		return nil, milp.Fail(milp.StatusInfeasible, milp.ErrInfeasible)
	}
	status := milp.StatusOptimal
	if limited {
		status = milp.StatusFeasible
	}
	e.logger.Debugf("branch and bound finished: %d nodes, objective %.4f, %s", nodes, bestObj, status)
	return &milp.Solution{Values: best, Objective: bestObj, Status: status}, nil
}

// Close implements milp.Engine. The engine holds no resources.
func (e *Engine) Close() error { return nil }

// branchVar returns the integer variable farthest from integrality or -1.
func branchVar(m *milp.Model, x []float64, tol float64) int {
	idx, worst := -1, tol
	for j, v := range m.Vars {
		if !v.Integer {
			continue
		}
		frac := x[j] - math.Floor(x[j])
		if d := math.Min(frac, 1-frac); d > worst {
			idx, worst = j, d
		}
	}
	return idx
}

func roundIntegers(m *milp.Model, x []float64) []float64 {
	out := clone(x)
	for j, v := range m.Vars {
		if v.Integer {
			out[j] = math.Round(out[j])
		}
	}
	return out
}

func clone(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
