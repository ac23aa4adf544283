// Package factory provides a small generic registry used to instantiate modules
// from configuration: solving engines, metrics sinks and run log stores. A
// module is described by a type string and a map of raw settings. Factories
// decode the settings into typed structs and return the implementation.
//
// Example usage:
//
//	reg := factory.NewRegistry[milp.Engine]()
//	reg.Register("simplex", func(conf map[string]any) (milp.Engine, error) {
//	    var c simplex.Config
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return simplex.New(c, nil)
//	})
//	eng, err := reg.Create(factory.ModuleConfig{Type: "simplex", Conf: map[string]any{"max_nodes": 500}})
package factory
