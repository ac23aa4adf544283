package metrics

import "github.com/f-sartori-v/mobauto2-decomp/core/factory"

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks" yaml:"sinks"`
}
