package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/f-sartori-v/mobauto2-decomp/core/factory"
	coremetrics "github.com/f-sartori-v/mobauto2-decomp/core/metrics"
)

// init registers built-in solve sinks.
func init() {
	_ = coremetrics.RegisterSolveSink("nop", func(map[string]any) (coremetrics.SolveSink, error) {
		return coremetrics.NopSink{}, nil
	})

	_ = coremetrics.RegisterSolveSink("prometheus", func(conf map[string]any) (coremetrics.SolveSink, error) {
		var c struct {
			Textfile string `json:"textfile"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		sink, err := NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
		if err != nil {
			return nil, err
		}
		return sink.WithTextfile(c.Textfile), nil
	})

	_ = coremetrics.RegisterSolveSink("influx", func(conf map[string]any) (coremetrics.SolveSink, error) {
		var c struct {
			URL    string `json:"url"`
			Token  string `json:"token"`
			Org    string `json:"org"`
			Bucket string `json:"bucket"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(c.URL, c.Token, c.Org, c.Bucket), nil
	})
}
