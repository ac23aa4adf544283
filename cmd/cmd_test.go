package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stateTestdata = "../core/state/testdata"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	data := "log_level: error\nsolver:\n  type: simplex\nrunlog:\n  backend: jsonl\n  path: " +
		filepath.Join(dir, "runs.jsonl") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestSolveAndListRuns(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)
	solveJSON = false

	out, err := execute(t, "solve", filepath.Join(stateTestdata, "merged.json"), "-c", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "t=0  x_t=1\n")
	assert.Contains(t, out, "pax_served=4\n")
	assert.Contains(t, out, "Obj = -4 (negative == max pax)\n")
	assert.Contains(t, out, "[time] subproblem ran in")

	out, err = execute(t, "runs", "ls", "-c", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "simplex")
	assert.Contains(t, out, "optimal")
}

func TestSolveJSON(t *testing.T) {
	cfg := writeConfig(t, t.TempDir())
	defer func() { solveJSON = false }()

	out, err := execute(t, "solve", "--json", filepath.Join(stateTestdata, "merged.json"), "-c", cfg)
	require.NoError(t, err)
	var rep map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, 4.0, rep["passengers_served"])
	assert.Equal(t, "optimal", rep["status"])
}

func TestSolveMissingDocument(t *testing.T) {
	cfg := writeConfig(t, t.TempDir())
	_, err := execute(t, "solve", "does-not-exist.json", "-c", cfg)
	assert.Error(t, err)
}

func TestMergeThenSolve(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)
	merged := filepath.Join(dir, "merged.json")
	solveJSON = false

	_, err := execute(t, "merge", "-c", cfg,
		"--base", filepath.Join(stateTestdata, "base.yaml"),
		"--subproblem", filepath.Join(stateTestdata, "subproblem.json"),
		"--demand", filepath.Join(stateTestdata, "demand.json"),
		"-o", merged)
	require.NoError(t, err)

	out, err := execute(t, "solve", merged, "-c", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "S1  t=2")
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)
	_, err := execute(t, "generate", "-c", cfg, "--shuttles", "3", "--demand", "8", "--out", dir, "--seed", "7")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "subproblem.json"))
	require.NoError(t, err)
	var sub struct {
		NbrShuttles int            `json:"nbr_shuttles"`
		Shuttles    map[string]any `json:"shuttles"`
	}
	require.NoError(t, json.Unmarshal(data, &sub))
	assert.Equal(t, 3, sub.NbrShuttles)
	assert.Len(t, sub.Shuttles, 3)
	assert.FileExists(t, filepath.Join(dir, "demand.json"))
}
