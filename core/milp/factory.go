package milp

import "github.com/f-sartori-v/mobauto2-decomp/core/factory"

var engineRegistry = factory.NewRegistry[Engine]()

// RegisterEngine adds a solving engine factory identified by name.
func RegisterEngine(name string, f factory.Factory[Engine]) error {
	return engineRegistry.Register(name, f)
}

// NewEngine creates the engine described by cfg.
func NewEngine(cfg factory.ModuleConfig) (Engine, error) {
	return engineRegistry.Create(cfg)
}
