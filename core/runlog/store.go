// Package runlog persists one record per subproblem run so that the master
// process (or an operator) can audit past decisions.
package runlog

import (
	"context"
	"time"
)

// Record captures one subproblem run.
type Record struct {
	RunID      string           `json:"run_id"`
	Timestamp  time.Time        `json:"timestamp"`
	Source     string           `json:"source,omitempty"`
	Engine     string           `json:"engine"`
	Status     string           `json:"status"`
	Error      string           `json:"error,omitempty"`
	Slots      int              `json:"slots"`
	Shuttles   []string         `json:"shuttles"`
	Decisions  map[string][]int `json:"decisions,omitempty"`
	Trips      int              `json:"trips"`
	EnergyUsed float64          `json:"energy_used"`
	Passengers float64          `json:"passengers_served"`
	Objective  float64          `json:"objective"`
	ElapsedMS  float64          `json:"elapsed_ms"`
}

// Query defines filters for retrieving records. Zero values match everything.
type Query struct {
	Start     time.Time
	End       time.Time
	ShuttleID string
	Status    string
}

// Matches reports whether r passes every filter of q.
func (q Query) Matches(r Record) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.Status != "" && r.Status != q.Status {
		return false
	}
	if q.ShuttleID != "" {
		for _, id := range r.Shuttles {
			if id == q.ShuttleID {
				return true
			}
		}
		return false
	}
	return true
}

// Store persists Records and supports querying.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}

// NopStore discards records.
type NopStore struct{}

func (NopStore) Append(context.Context, Record) error         { return nil }
func (NopStore) Query(context.Context, Query) ([]Record, error) { return nil, nil }
func (NopStore) Close() error                                  { return nil }
