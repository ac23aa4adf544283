package metrics

import "github.com/f-sartori-v/mobauto2-decomp/core/factory"

var sinkRegistry = factory.NewRegistry[SolveSink]()

// RegisterSolveSink adds a metrics sink factory identified by name.
func RegisterSolveSink(name string, f factory.Factory[SolveSink]) error {
	return sinkRegistry.Register(name, f)
}

// NewSolveSink creates a SolveSink from the provided configuration.
func NewSolveSink(cfgs []factory.ModuleConfig) (SolveSink, error) {
	if len(cfgs) == 0 {
		return NopSink{}, nil
	}
	if len(cfgs) == 1 {
		return sinkRegistry.Create(cfgs[0])
	}
	sinks := make([]SolveSink, len(cfgs))
	for i, c := range cfgs {
		s, err := sinkRegistry.Create(c)
		if err != nil {
			return nil, err
		}
		sinks[i] = s
	}
	return NewMultiSink(sinks...), nil
}
