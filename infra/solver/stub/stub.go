// Package stub provides a milp.Engine returning a fixed assignment. It is
// used for dry runs of the pipeline and in tests.
package stub

import (
	"errors"
	"fmt"

	"github.com/f-sartori-v/mobauto2-decomp/core/factory"
	"github.com/f-sartori-v/mobauto2-decomp/core/milp"
)

// Config describes the canned answer.
type Config struct {
	// Values is the assignment returned for every model. Missing entries are
	// 0 and extra entries are ignored.
	Values []float64 `json:"values"`
	// Fail makes Solve return a SolveError with this status instead.
	Fail string `json:"fail"`
}

// Engine returns the configured assignment without searching.
type Engine struct {
	cfg    Config
	fail   milp.Status
	closed bool
}

var statuses = map[string]milp.Status{
	"infeasible":  milp.StatusInfeasible,
	"unbounded":   milp.StatusUnbounded,
	"init_failed": milp.StatusInitFailed,
	"limit":       milp.StatusLimit,
}

// New validates cfg and returns an Engine.
func New(cfg Config) (*Engine, error) {
	e := &Engine{cfg: cfg}
	if cfg.Fail != "" {
		st, ok := statuses[cfg.Fail]
		if !ok {
			return nil, fmt.Errorf("stub: unknown failure status %q", cfg.Fail)
		}
		e.fail = st
	}
	return e, nil
}

func init() {
	_ = milp.RegisterEngine("stub", func(conf map[string]any) (milp.Engine, error) {
		var c Config
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return New(c)
	})
}

// Solve implements milp.Solver. The objective is evaluated on the model.
func (e *Engine) Solve(m *milp.Model) (*milp.Solution, error) {
	if e.closed {
		return nil, milp.Fail(milp.StatusInitFailed, errors.New("stub engine closed"))
	}
	if e.cfg.Fail != "" {
		var sentinel error
		switch e.fail {
		case milp.StatusInfeasible:
			sentinel = milp.ErrInfeasible
		case milp.StatusUnbounded:
			sentinel = milp.ErrUnbounded
		case milp.StatusLimit:
			sentinel = milp.ErrLimit
		default:
			sentinel = milp.ErrInit
		}
		return nil, milp.Fail(e.fail, sentinel)
	}
	x := make([]float64, m.NumVars())
	copy(x, e.cfg.Values)
	return &milp.Solution{Values: x, Objective: m.Objective(x), Status: milp.StatusOptimal}, nil
}

// Close implements milp.Engine.
func (e *Engine) Close() error {
	e.closed = true
	return nil
}
