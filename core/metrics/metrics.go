package metrics

import (
	"errors"
	"io"
	"time"
)

// SolveEvent summarizes one subproblem run, successful or not.
type SolveEvent struct {
	RunID      string
	Engine     string
	Status     string
	Slots      int
	Shuttles   int
	Variables  int
	Rows       int
	Trips      int
	EnergyUsed float64
	Passengers float64
	Objective  float64
	Elapsed    time.Duration
	Error      string
	Time       time.Time
}

// Failed reports whether the run ended without a report.
func (e SolveEvent) Failed() bool { return e.Error != "" }

// SolveSink records solve events for observability purposes.
type SolveSink interface {
	RecordSolve(ev SolveEvent) error
}

// Flusher is implemented by sinks that buffer until the run ends.
type Flusher interface {
	Flush() error
}

// NopSink implements SolveSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordSolve(SolveEvent) error { return nil }
func (NopSink) Flush() error                 { return nil }

// MultiSink fans events out to several sinks.
type MultiSink struct {
	Sinks []SolveSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...SolveSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSolve forwards the event to every sink and joins their errors.
func (m *MultiSink) RecordSolve(ev SolveEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordSolve(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Flush flushes every sink implementing Flusher.
func (m *MultiSink) Flush() error {
	var errs []error
	for _, s := range m.Sinks {
		if f, ok := s.(Flusher); ok {
			if err := f.Flush(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink implementing io.Closer.
func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.Sinks {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
