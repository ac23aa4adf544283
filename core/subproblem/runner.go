package subproblem

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/f-sartori-v/mobauto2-decomp/core/logger"
	"github.com/f-sartori-v/mobauto2-decomp/core/metrics"
	"github.com/f-sartori-v/mobauto2-decomp/core/milp"
	"github.com/f-sartori-v/mobauto2-decomp/core/runlog"
)

// Publisher forwards reports to the master process.
type Publisher interface {
	PublishReport(rep Report) error
}

// Option configures a Runner.
type Option func(*Runner)

// WithSink sets the metrics sink receiving one event per run.
func WithSink(s metrics.SolveSink) Option { return func(r *Runner) { r.sink = s } }

// WithStore sets the run log store.
func WithStore(s runlog.Store) Option { return func(r *Runner) { r.store = s } }

// WithPublisher sets the report publisher. Only successful runs are published.
func WithPublisher(p Publisher) Option { return func(r *Runner) { r.pub = p } }

// WithEngineName labels events and records with the engine type.
func WithEngineName(name string) Option { return func(r *Runner) { r.engine = name } }

// WithSource labels records with the document the window came from.
func WithSource(src string) Option { return func(r *Runner) { r.source = src } }

// Runner executes build, solve and decode for one window at a time.
type Runner struct {
	solver milp.Solver
	log    logger.Logger
	sink   metrics.SolveSink
	store  runlog.Store
	pub    Publisher
	engine string
	source string
	now    func() time.Time
	newID  func() string
}

// NewRunner returns a Runner using solver. Sink, store and publisher default
// to no-ops.
func NewRunner(solver milp.Solver, log logger.Logger, opts ...Option) *Runner {
	r := &Runner{
		solver: solver,
		log:    log,
		sink:   metrics.NopSink{},
		store:  runlog.NopStore{},
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Run solves w. Either a complete, checked report is returned or an error;
// failures of the sink, the store or the publisher are only logged.
func (r *Runner) Run(ctx context.Context, w Window) (Report, error) {
	id := r.newID()
	start := r.now()
	rep, m, err := r.solve(w)
	elapsed := r.now().Sub(start)
	if err == nil {
		rep.RunID = id
		rep.Elapsed = elapsed
	}
	r.record(ctx, id, start, elapsed, w, m, rep, err)
	if err != nil {
		return Report{}, err
	}
	if r.pub != nil {
		if perr := r.pub.PublishReport(rep); perr != nil {
			r.log.Warnf("publish report %s: %v", id, perr)
		}
	}
	return rep, nil
}

func (r *Runner) solve(w Window) (Report, *milp.Model, error) {
	m, err := Build(w)
	if err != nil {
		return Report{}, nil, fmt.Errorf("build model: %w", err)
	}
	r.log.Debugw("model built", map[string]any{
		"slots":     w.Slots,
		"shuttles":  len(w.Shuttles),
		"variables": m.NumVars(),
		"rows":      len(m.Rows),
	})

	var sol *milp.Solution
	if m.Empty() {
		r.log.Infof("window has no decision, skipping solve")
		sol = &milp.Solution{Values: []float64{}, Status: milp.StatusOptimal}
	} else {
		sol, err = r.solver.Solve(m)
		if err != nil {
			return Report{}, m, fmt.Errorf("solve: %w", err)
		}
	}

	rep, err := Decode(w, sol)
	if err != nil {
		return Report{}, m, err
	}
	if err := rep.Check(w); err != nil {
		return Report{}, m, err
	}
	tol := 1e-6 * math.Max(1, math.Abs(rep.Objective))
	if !rep.Consistent(tol) {
		return Report{}, m, fmt.Errorf("%w: objective %g vs %g passengers served", ErrInconsistent, rep.Objective, rep.PassengersServed)
	}
	return rep, m, nil
}

func (r *Runner) record(ctx context.Context, id string, start time.Time, elapsed time.Duration, w Window, m *milp.Model, rep Report, runErr error) {
	status := rep.Status.String()
	var errText string
	if runErr != nil {
		status = milp.StatusOf(runErr).String()
		errText = runErr.Error()
	}
	ev := metrics.SolveEvent{
		RunID:      id,
		Engine:     r.engine,
		Status:     status,
		Slots:      w.Slots,
		Shuttles:   len(w.Shuttles),
		Trips:      rep.Trips,
		EnergyUsed: rep.EnergyUsed,
		Passengers: rep.PassengersServed,
		Objective:  rep.Objective,
		Elapsed:    elapsed,
		Error:      errText,
		Time:       start,
	}
	if m != nil {
		ev.Variables = m.NumVars()
		ev.Rows = len(m.Rows)
	}
	if err := r.sink.RecordSolve(ev); err != nil {
		r.log.Warnf("record solve metrics: %v", err)
	}

	rec := runlog.Record{
		RunID:      id,
		Timestamp:  start,
		Source:     r.source,
		Engine:     r.engine,
		Status:     status,
		Error:      errText,
		Slots:      w.Slots,
		Shuttles:   w.ShuttleIDs(),
		Trips:      rep.Trips,
		EnergyUsed: rep.EnergyUsed,
		Passengers: rep.PassengersServed,
		Objective:  rep.Objective,
		ElapsedMS:  float64(elapsed) / float64(time.Millisecond),
	}
	if runErr == nil {
		rec.Decisions = rep.Decisions()
	}
	if err := r.store.Append(ctx, rec); err != nil {
		r.log.Warnf("append run record: %v", err)
	}
}
