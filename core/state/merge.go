package state

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Sources names the three documents the master process hands to a subproblem
// run: shared base settings, the per-window shuttle state and the demand.
type Sources struct {
	Base       string
	Subproblem string
	Demand     string
}

// Merge combines the sources into a single document with the top-level keys
// base, subproblem and demand. The output is indented JSON.
func Merge(src Sources) ([]byte, error) {
	parts := []struct {
		key  string
		path string
	}{
		{"base", src.Base},
		{"subproblem", src.Subproblem},
		{"demand", src.Demand},
	}
	merged := make(map[string]any, len(parts))
	for _, p := range parts {
		if p.path == "" {
			return nil, &ConfigError{Key: p.key, Reason: "no source file given"}
		}
		k := koanf.New(".")
		if err := k.Load(file.Provider(p.path), parserFor(filepath.Ext(p.path))); err != nil {
			return nil, &ConfigError{Key: p.key, Reason: fmt.Sprintf("cannot load %s", p.path), Err: err}
		}
		merged[p.key] = k.Raw()
	}
	return json.MarshalIndent(merged, "", "  ")
}
