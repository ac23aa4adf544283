package state

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/f-sartori-v/mobauto2-decomp/core/logger"
	"github.com/f-sartori-v/mobauto2-decomp/core/model"
)

// State is everything one subproblem run reads from the merged document.
type State struct {
	Params model.Params
	Fleet  model.Fleet
	Demand model.DemandPool
}

// Loader parses merged subproblem documents.
type Loader struct {
	log logger.Logger
}

// NewLoader returns a Loader reporting consistency warnings to log.
func NewLoader(log logger.Logger) *Loader {
	return &Loader{log: log}
}

// parserFor picks the document parser from the file extension. Anything that
// is not YAML is read as JSON, which is what the runner writes.
func parserFor(format string) koanf.Parser {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "yaml", "yml":
		return yaml.Parser()
	default:
		return json.Parser()
	}
}

// Load reads the merged document at path.
func (l *Loader) Load(path string) (*State, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parserFor(filepath.Ext(path))); err != nil {
		return nil, &ConfigError{Key: path, Reason: "cannot load document", Err: err}
	}
	return l.decode(k)
}

// LoadBytes parses an in-memory document. format is "json" or "yaml".
func (l *Loader) LoadBytes(data []byte, format string) (*State, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parserFor(format)); err != nil {
		return nil, &ConfigError{Key: "<document>", Reason: "invalid document", Err: err}
	}
	return l.decode(k)
}

func (l *Loader) decode(k *koanf.Koanf) (*State, error) {
	root := node{m: k.Raw()}
	st := &State{}
	if err := l.decodeParams(root, &st.Params); err != nil {
		return nil, err
	}
	fleet, err := l.decodeFleet(root, st.Params.NbrShuttles)
	if err != nil {
		return nil, err
	}
	st.Fleet = fleet
	demand, err := l.decodeDemand(root)
	if err != nil {
		return nil, err
	}
	st.Demand = demand
	l.log.Debugw("subproblem state loaded", map[string]any{
		"horizon_min": st.Params.HorizonMin,
		"shuttles":    st.Fleet.Len(),
		"requests":    st.Demand.Len(),
	})
	return st, nil
}

func (l *Loader) decodeParams(root node, p *model.Params) error {
	base, err := root.obj("base")
	if err != nil {
		return err
	}
	tm, err := base.obj("time")
	if err != nil {
		return err
	}
	fleet, err := base.obj("fleet")
	if err != nil {
		return err
	}
	oper, err := base.obj("operation")
	if err != nil {
		return err
	}
	fields := []struct {
		n   node
		key string
		dst *int
	}{
		{tm, "horizon_min", &p.HorizonMin},
		{fleet, "shuttle_capacity", &p.Capacity},
		{fleet, "battery_range", &p.BatteryRange},
		{oper, "trip_distance", &p.TripDistance},
		{fleet, "nbr_shuttles", &p.NbrShuttles},
	}
	for _, f := range fields {
		v, err := f.n.integer(f.key)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	return nil
}

// decodeFleet parses the shuttle blocks. The subproblem count is authoritative;
// a different base count only produces a warning.
func (l *Loader) decodeFleet(root node, baseCount int) (model.Fleet, error) {
	sub, err := root.obj("subproblem")
	if err != nil {
		return model.Fleet{}, err
	}
	n, err := sub.integer("nbr_shuttles")
	if err != nil {
		return model.Fleet{}, err
	}
	if n < 0 {
		return model.Fleet{}, &ConfigError{Key: sub.key("nbr_shuttles"), Reason: fmt.Sprintf("negative shuttle count %d", n)}
	}
	if n != baseCount {
		l.log.Warnf("base.fleet.nbr_shuttles=%d vs subproblem.nbr_shuttles=%d, using %d", baseCount, n, n)
	}
	blocks, err := sub.obj("shuttles")
	if err != nil {
		return model.Fleet{}, err
	}
	fleet := model.Fleet{Shuttles: make([]model.Shuttle, n)}
	for i := 0; i < n; i++ {
		s, err := decodeShuttle(blocks, model.ShuttleKey(i))
		if err != nil {
			return model.Fleet{}, err
		}
		fleet.Shuttles[i] = s
	}
	return fleet, nil
}

func decodeShuttle(blocks node, id string) (model.Shuttle, error) {
	blk, err := blocks.obj(id)
	if err != nil {
		return model.Shuttle{}, err
	}
	raw, err := blk.list("seq")
	if err != nil {
		return model.Shuttle{}, err
	}
	seq := make([]string, len(raw))
	for t, tok := range raw {
		s, ok := tok.(string)
		if !ok {
			return model.Shuttle{}, mistyped(fmt.Sprintf("%s[%d]", blk.key("seq"), t), "string", tok)
		}
		seq[t] = s
	}
	soc0, err := blk.integer("soc0")
	if err != nil {
		return model.Shuttle{}, err
	}
	delay, err := blk.integer("delay")
	if err != nil {
		return model.Shuttle{}, err
	}
	prevRaw, err := blk.str("prev_task")
	if err != nil {
		return model.Shuttle{}, err
	}
	prev, err := model.ParseTaskTag(prevRaw)
	if err != nil {
		return model.Shuttle{}, &ConfigError{Key: blk.key("prev_task"), Reason: "invalid value", Err: err}
	}
	return model.Shuttle{ID: id, Seq: seq, SoC0: soc0, Delay: delay, Prev: prev}, nil
}

func (l *Loader) decodeDemand(root node) (model.DemandPool, error) {
	dem, err := root.obj("demand")
	if err != nil {
		return model.DemandPool{}, err
	}
	raw, err := dem.list("requests")
	if err != nil {
		return model.DemandPool{}, err
	}
	pool := model.DemandPool{Requests: make([]model.Request, len(raw))}
	for j, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return model.DemandPool{}, mistyped(fmt.Sprintf("%s[%d]", dem.key("requests"), j), "object", item)
		}
		pool.Requests[j] = l.decodeRequest(m, j)
	}
	return pool, nil
}

// decodeRequest never fails: dir defaults to OUT and the ready time falls
// back to the legacy "time" key, then to 0.
func (l *Loader) decodeRequest(m map[string]any, j int) model.Request {
	req := model.Request{Dir: model.DirOutbound}
	if s, ok := m["dir"].(string); ok {
		d, err := model.ParseDirection(s)
		if err != nil {
			l.log.Warnf("demand.requests[%d]: %v, using OUT", j, err)
		}
		req.Dir = d
	}
	if v, ok := asInt(m["ready"]); ok {
		req.Ready = v
	} else if v, ok := asInt(m["time"]); ok {
		req.Ready = v
	}
	return req
}
