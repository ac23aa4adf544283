package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f-sartori-v/mobauto2-decomp/core/model"
	"github.com/f-sartori-v/mobauto2-decomp/infra/logger"
)

type recordingLogger struct {
	logger.NopLogger
	warnings []string
}

func (r *recordingLogger) Warnf(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func validDoc() map[string]any {
	return map[string]any{
		"base": map[string]any{
			"time":      map[string]any{"horizon_min": 60},
			"fleet":     map[string]any{"shuttle_capacity": 15, "battery_range": 150, "nbr_shuttles": 2},
			"operation": map[string]any{"trip_distance": 30},
		},
		"subproblem": map[string]any{
			"nbr_shuttles": 2,
			"shuttles": map[string]any{
				"S0": map[string]any{"seq": []any{"OUT", "RET"}, "soc0": 90, "delay": 0, "prev_task": "OUT"},
				"S1": map[string]any{"seq": []any{"CRG"}, "soc0": 30, "delay": -3, "prev_task": "CRG"},
			},
		},
		"demand": map[string]any{
			"requests": []any{
				map[string]any{"dir": "RET", "ready": 7},
			},
		},
	}
}

func load(t *testing.T, doc map[string]any) (*State, *recordingLogger, error) {
	t.Helper()
	b, err := json.Marshal(doc)
	require.NoError(t, err)
	log := &recordingLogger{}
	st, err := NewLoader(log).LoadBytes(b, "json")
	return st, log, err
}

func section(doc map[string]any, keys ...string) map[string]any {
	m := doc
	for _, k := range keys {
		m = m[k].(map[string]any)
	}
	return m
}

func TestLoadFile(t *testing.T) {
	st, err := NewLoader(logger.NopLogger{}).Load(filepath.Join("testdata", "merged.json"))
	require.NoError(t, err)

	assert.Equal(t, model.Params{HorizonMin: 60, Capacity: 15, TripDistance: 30, BatteryRange: 150, NbrShuttles: 1}, st.Params)
	require.Equal(t, 1, st.Fleet.Len())
	s := st.Fleet.Shuttles[0]
	assert.Equal(t, "S0", s.ID)
	assert.Equal(t, []string{"OUT", "RET", "OUT", "RET", "CRG"}, s.Seq)
	assert.Equal(t, 150, s.SoC0)
	assert.Equal(t, model.TaskCharge, s.Prev)

	want := []model.Request{
		{Dir: model.DirOutbound, Ready: 7},
		{Dir: model.DirReturn, Ready: 12},
		{Dir: model.DirOutbound, Ready: 0},
		{Dir: model.DirOutbound, Ready: 30},
	}
	assert.Equal(t, want, st.Demand.Requests)
}

func TestLoadYAMLDocument(t *testing.T) {
	doc := `base:
  time: {horizon_min: 60}
  fleet: {shuttle_capacity: 15, battery_range: 150, nbr_shuttles: 1}
  operation: {trip_distance: 30}
subproblem:
  nbr_shuttles: 1
  shuttles:
    S0: {seq: [OUT], soc0: 40, delay: 2, prev_task: RET}
demand:
  requests:
    - {dir: RET, time: 9}
`
	st, err := NewLoader(logger.NopLogger{}).LoadBytes([]byte(doc), "yaml")
	require.NoError(t, err)
	assert.Equal(t, 40, st.Fleet.Shuttles[0].SoC0)
	assert.Equal(t, 2, st.Fleet.Shuttles[0].Delay)
	assert.Equal(t, model.TaskReturn, st.Fleet.Shuttles[0].Prev)
	assert.Equal(t, []model.Request{{Dir: model.DirReturn, Ready: 9}}, st.Demand.Requests)
}

func TestRequestFallbacks(t *testing.T) {
	cases := []struct {
		name string
		req  map[string]any
		want model.Request
	}{
		{"ready only", map[string]any{"dir": "OUT", "ready": 7}, model.Request{Dir: model.DirOutbound, Ready: 7}},
		{"legacy time", map[string]any{"dir": "RET", "time": 12}, model.Request{Dir: model.DirReturn, Ready: 12}},
		{"ready wins over time", map[string]any{"ready": 3, "time": 12}, model.Request{Ready: 3}},
		{"non numeric ready", map[string]any{"ready": "soon", "time": 12}, model.Request{Ready: 12}},
		{"neither", map[string]any{"dir": "RET"}, model.Request{Dir: model.DirReturn, Ready: 0}},
		{"non numeric both", map[string]any{"ready": "a", "time": true}, model.Request{Ready: 0}},
		{"missing dir", map[string]any{"ready": 5}, model.Request{Dir: model.DirOutbound, Ready: 5}},
		{"non string dir", map[string]any{"dir": 1, "ready": 5}, model.Request{Dir: model.DirOutbound, Ready: 5}},
		{"unknown dir", map[string]any{"dir": "UP", "ready": 5}, model.Request{Dir: model.DirOutbound, Ready: 5}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			doc := validDoc()
			section(doc, "demand")["requests"] = []any{c.req}
			st, _, err := load(t, doc)
			require.NoError(t, err)
			assert.Equal(t, []model.Request{c.want}, st.Demand.Requests)
		})
	}
}

func TestUnknownDirectionWarns(t *testing.T) {
	doc := validDoc()
	section(doc, "demand")["requests"] = []any{map[string]any{"dir": "UP"}}
	_, log, err := load(t, doc)
	require.NoError(t, err)
	require.Len(t, log.warnings, 1)
	assert.Contains(t, log.warnings[0], "demand.requests[0]")
}

func TestShuttleCountMismatchWarns(t *testing.T) {
	doc := validDoc()
	section(doc, "base", "fleet")["nbr_shuttles"] = 3

	st, log, err := load(t, doc)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Fleet.Len())
	assert.Equal(t, 3, st.Params.NbrShuttles)
	require.Len(t, log.warnings, 1)
	assert.Contains(t, log.warnings[0], "base.fleet.nbr_shuttles=3")
}

func TestMatchingCountsDoNotWarn(t *testing.T) {
	_, log, err := load(t, validDoc())
	require.NoError(t, err)
	assert.Empty(t, log.warnings)
}

func TestRequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(map[string]any)
		key    string
	}{
		{"missing base", func(d map[string]any) { delete(d, "base") }, "base"},
		{"base not object", func(d map[string]any) { d["base"] = 3 }, "base"},
		{"missing horizon", func(d map[string]any) { delete(section(d, "base", "time"), "horizon_min") }, "base.time.horizon_min"},
		{"string capacity", func(d map[string]any) { section(d, "base", "fleet")["shuttle_capacity"] = "15" }, "base.fleet.shuttle_capacity"},
		{"missing trip distance", func(d map[string]any) { delete(section(d, "base", "operation"), "trip_distance") }, "base.operation.trip_distance"},
		{"missing subproblem count", func(d map[string]any) { delete(section(d, "subproblem"), "nbr_shuttles") }, "subproblem.nbr_shuttles"},
		{"negative subproblem count", func(d map[string]any) { section(d, "subproblem")["nbr_shuttles"] = -1 }, "subproblem.nbr_shuttles"},
		{"missing shuttle block", func(d map[string]any) { delete(section(d, "subproblem", "shuttles"), "S1") }, "subproblem.shuttles.S1"},
		{"seq not list", func(d map[string]any) { section(d, "subproblem", "shuttles", "S0")["seq"] = "OUT" }, "subproblem.shuttles.S0.seq"},
		{"seq token not string", func(d map[string]any) {
			section(d, "subproblem", "shuttles", "S0")["seq"] = []any{"OUT", 4}
		}, "subproblem.shuttles.S0.seq[1]"},
		{"missing soc0", func(d map[string]any) { delete(section(d, "subproblem", "shuttles", "S1"), "soc0") }, "subproblem.shuttles.S1.soc0"},
		{"missing delay", func(d map[string]any) { delete(section(d, "subproblem", "shuttles", "S0"), "delay") }, "subproblem.shuttles.S0.delay"},
		{"prev task not string", func(d map[string]any) { section(d, "subproblem", "shuttles", "S0")["prev_task"] = 1 }, "subproblem.shuttles.S0.prev_task"},
		{"unknown prev task", func(d map[string]any) { section(d, "subproblem", "shuttles", "S0")["prev_task"] = "IDLE" }, "subproblem.shuttles.S0.prev_task"},
		{"missing demand", func(d map[string]any) { delete(d, "demand") }, "demand"},
		{"requests not list", func(d map[string]any) { section(d, "demand")["requests"] = map[string]any{} }, "demand.requests"},
		{"request not object", func(d map[string]any) { section(d, "demand")["requests"] = []any{"r"} }, "demand.requests[0]"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			doc := validDoc()
			c.mutate(doc)
			_, _, err := load(t, doc)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfig))
			var cerr *ConfigError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, c.key, cerr.Key)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	l := NewLoader(logger.NopLogger{})

	_, err := l.Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, ErrConfig)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = l.Load(path)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestZeroShuttles(t *testing.T) {
	doc := validDoc()
	section(doc, "subproblem")["nbr_shuttles"] = 0
	st, log, err := load(t, doc)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Fleet.Len())
	assert.Len(t, log.warnings, 1)
}
