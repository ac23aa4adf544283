package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `log_level: debug
solver:
  type: simplex
  conf:
    max_nodes: 500
metrics:
  sinks:
    - type: "nop"
runlog:
  backend: sqlite
  path: runs.db
mqtt:
  broker: "tcp://localhost:1883"
  client_id: "worker-1"
  topic: "master/subproblem"
  qos: 1
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"log_level", cfg.LogLevel, "debug"},
		{"solver", cfg.Solver.Type, "simplex"},
		{"max_nodes", cfg.Solver.Conf["max_nodes"], 500},
		{"metrics_sink", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "nop", true},
		{"runlog.backend", cfg.RunLog.Backend, "sqlite"},
		{"runlog.path", cfg.RunLog.Path, "runs.db"},
		{"mqtt.broker", cfg.MQTT.Broker, "tcp://localhost:1883"},
		{"mqtt.client_id", cfg.MQTT.ClientID, "worker-1"},
		{"mqtt.topic", cfg.MQTT.Topic, "master/subproblem"},
		{"mqtt.qos", cfg.MQTT.QoS, byte(1)},
	}
	for _, c := range checks {
		assert.EqualValues(t, c.want, c.got, c.name)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "simplex", cfg.Solver.Type)
	assert.Equal(t, "jsonl", cfg.RunLog.Backend)
	assert.Equal(t, "subproblem_runs.jsonl", cfg.RunLog.Path)
	assert.False(t, cfg.MQTT.Enabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"log_level":"warn","runlog":{"path":"a.jsonl"}}`), 0o644))
	t.Setenv("SP_RUNLOG__PATH", "b.jsonl")
	t.Setenv("SP_LOG_LEVEL", "error")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "b.jsonl", cfg.RunLog.Path)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"bad.toml":    `log_level = "info"`,
		"level.yaml":  "log_level: loud\n",
		"runlog.yaml": "runlog:\n  backend: csv\n",
		"qos.yaml":    "mqtt:\n  broker: tcp://b:1883\n  qos: 3\n",
	}
	for name, body := range cases {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		_, err := Load(path)
		assert.Error(t, err, name)
	}
}
