// Package metrics defines the sinks a subproblem run reports to. Sinks like
// PromSink and InfluxSink live in infra/metrics and register themselves with
// the factory; NewSolveSink returns a MultiSink when several are configured.
package metrics
