package milp

import (
	"errors"
	"fmt"
)

// Status describes how a solve ended.
type Status int

const (
	StatusOptimal Status = iota
	// StatusFeasible means a limit stopped the search after an incumbent was found.
	StatusFeasible
	StatusInfeasible
	StatusUnbounded
	StatusInitFailed
	StatusLimit
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	case StatusInitFailed:
		return "init_failed"
	case StatusLimit:
		return "limit"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Status) UnmarshalText(b []byte) error {
	for st := StatusOptimal; st <= StatusLimit; st++ {
		if st.String() == string(b) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown solve status %q", b)
}

// Solution is an assignment for every variable of a model together with the
// objective value the engine computed.
type Solution struct {
	Values    []float64
	Objective float64
	Status    Status
}

// Solver is implemented by solving engines. Solve blocks until the engine
// returns; limits are part of the engine configuration.
type Solver interface {
	Solve(m *Model) (*Solution, error)
}

// Engine is a Solver owning resources that must be released with Close.
type Engine interface {
	Solver
	Close() error
}

var (
	ErrInfeasible = errors.New("problem infeasible")
	ErrUnbounded  = errors.New("problem unbounded")
	ErrInit       = errors.New("solver could not be initialized")
	ErrLimit      = errors.New("limit reached without a feasible solution")
)

// SolveError is returned by engines when no assignment is available.
type SolveError struct {
	Status Status
	Err    error
}

func (e *SolveError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("solve failed: %s", e.Status)
	}
	return fmt.Sprintf("solve failed: %s: %v", e.Status, e.Err)
}

func (e *SolveError) Unwrap() error { return e.Err }

// Is matches the sentinel corresponding to the status.
func (e *SolveError) Is(target error) bool {
	switch e.Status {
	case StatusInfeasible:
		return target == ErrInfeasible
	case StatusUnbounded:
		return target == ErrUnbounded
	case StatusInitFailed:
		return target == ErrInit
	case StatusLimit:
		return target == ErrLimit
	}
	return false
}

// Fail builds a SolveError.
func Fail(status Status, err error) error {
	return &SolveError{Status: status, Err: err}
}

// StatusOf extracts the status carried by err. Errors that are not
// SolveErrors report StatusInitFailed.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOptimal
	}
	var se *SolveError
	if errors.As(err, &se) {
		return se.Status
	}
	return StatusInitFailed
}
