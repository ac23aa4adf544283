package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/f-sartori-v/mobauto2-decomp/core/metrics"
)

// PromSink records solve events in Prometheus metrics.
type PromSink struct {
	runs       *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	passengers *prometheus.GaugeVec
	energy     *prometheus.GaugeVec
	trips      *prometheus.GaugeVec

	gatherer prometheus.Gatherer
	textfile string
}

// NewPromSink registers subproblem metrics on the default Prometheus registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	labels := []string{"engine"}
	s := &PromSink{}
	var err error
	if s.runs, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "subproblem_runs_total",
		Help: "Total number of subproblem runs by outcome",
	}, []string{"engine", "status"})); err != nil {
		return nil, err
	}
	if s.duration, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "subproblem_solve_seconds",
		Help:    "Wall time of build, solve and decode",
		Buckets: prometheus.DefBuckets,
	}, labels)); err != nil {
		return nil, err
	}
	if s.passengers, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "subproblem_passengers_served",
		Help: "Passengers served by the last successful run",
	}, labels)); err != nil {
		return nil, err
	}
	if s.energy, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "subproblem_energy_used",
		Help: "Energy spent by the last successful run",
	}, labels)); err != nil {
		return nil, err
	}
	if s.trips, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "subproblem_trips",
		Help: "Trips planned by the last successful run",
	}, labels)); err != nil {
		return nil, err
	}
	if g, ok := reg.(prometheus.Gatherer); ok {
		s.gatherer = g
	}
	return s, nil
}

// WithTextfile makes Flush write the gathered metrics to path, in the format
// read by the node exporter textfile collector.
func (s *PromSink) WithTextfile(path string) *PromSink {
	s.textfile = path
	return s
}

// RecordSolve implements coremetrics.SolveSink.
func (s *PromSink) RecordSolve(ev coremetrics.SolveEvent) error {
	s.runs.WithLabelValues(ev.Engine, ev.Status).Inc()
	s.duration.WithLabelValues(ev.Engine).Observe(ev.Elapsed.Seconds())
	if ev.Failed() {
		return nil
	}
	s.passengers.WithLabelValues(ev.Engine).Set(ev.Passengers)
	s.energy.WithLabelValues(ev.Engine).Set(ev.EnergyUsed)
	s.trips.WithLabelValues(ev.Engine).Set(float64(ev.Trips))
	return nil
}

// Flush writes the textfile export when configured.
func (s *PromSink) Flush() error {
	if s.textfile == "" {
		return nil
	}
	if s.gatherer == nil {
		return errors.New("prometheus textfile export needs a gathering registry")
	}
	return prometheus.WriteToTextfile(s.textfile, s.gatherer)
}
