package state

import "math"

// node is a typed view over one object of the parsed document. Every lookup
// is by exact key and reports the full dotted path on failure.
type node struct {
	path string
	m    map[string]any
}

func (n node) key(k string) string {
	if n.path == "" {
		return k
	}
	return n.path + "." + k
}

func (n node) obj(k string) (node, error) {
	v, ok := n.m[k]
	if !ok {
		return node{}, missing(n.key(k))
	}
	m, ok := v.(map[string]any)
	if !ok {
		return node{}, mistyped(n.key(k), "object", v)
	}
	return node{path: n.key(k), m: m}, nil
}

func (n node) integer(k string) (int, error) {
	v, ok := n.m[k]
	if !ok {
		return 0, missing(n.key(k))
	}
	i, ok := asInt(v)
	if !ok {
		return 0, mistyped(n.key(k), "number", v)
	}
	return i, nil
}

func (n node) str(k string) (string, error) {
	v, ok := n.m[k]
	if !ok {
		return "", missing(n.key(k))
	}
	s, ok := v.(string)
	if !ok {
		return "", mistyped(n.key(k), "string", v)
	}
	return s, nil
}

func (n node) list(k string) ([]any, error) {
	v, ok := n.m[k]
	if !ok {
		return nil, missing(n.key(k))
	}
	l, ok := v.([]any)
	if !ok {
		return nil, mistyped(n.key(k), "list", v)
	}
	return l, nil
}

// asInt accepts any numeric value the json and yaml parsers produce.
// Fractional values are truncated.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case float32:
		return int(n), true
	default:
		return 0, false
	}
}
