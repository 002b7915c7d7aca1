package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crillab/gophercast/solver"
)

const example = "2 3 2\n10 1 1\n10 1 2\n5 2 1 2\n"

// execute runs the command with the given stdin and args.
func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out, &errOut)
	if args == nil {
		args = []string{} // Otherwise cobra reads os.Args
	}
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunStdin(t *testing.T) {
	stdout, stderr, err := execute(t, example)
	require.NoError(t, err)
	assert.Equal(t, "1 3\n15\n", stdout)
	assert.Contains(t, stderr, "c nb nodes generated: 6\n")
	assert.Contains(t, stderr, "c nb nodes visited: 2\n")
	assert.Contains(t, stderr, "c elapsed: ")
}

func TestRunQuiet(t *testing.T) {
	stdout, stderr, err := execute(t, example, "-q")
	require.NoError(t, err)
	assert.Equal(t, "1 3\n15\n", stdout)
	assert.Empty(t, stderr)
}

func TestRunFlags(t *testing.T) {
	for _, args := range [][]string{
		{"-a"},
		{"-o"},
		{"-f"},
		{"-a", "-o", "-f"},
		{"-aof"},
		{"--basic", "--no-optimality-cut", "--no-feasibility-cut"},
	} {
		stdout, _, err := execute(t, example, append(args, "-q")...)
		require.NoError(t, err, "args %v", args)
		lines := strings.Split(stdout, "\n")
		require.Len(t, lines, 3, "args %v", args)
		assert.Equal(t, "15", lines[1], "args %v", args)
		assert.Contains(t, []string{"1 3", "2 3"}, lines[0], "args %v", args)
	}
}

func TestRunInfeasible(t *testing.T) {
	stdout, stderr, err := execute(t, "2 1 1\n4 1 1\n")
	require.ErrorIs(t, err, solver.ErrInfeasible)
	assert.Equal(t, "Inviavel\n", stdout)
	assert.Empty(t, stderr)
	var buf bytes.Buffer
	assert.Equal(t, exitInfeasible, exitCode(err, &buf))
	assert.Empty(t, buf.String())
}

func TestRunEmptySelection(t *testing.T) {
	stdout, _, err := execute(t, "0 1 0\n3 0\n", "-q")
	require.NoError(t, err)
	assert.Equal(t, "\n0\n", stdout)
}

func TestRunInvalidInput(t *testing.T) {
	stdout, _, err := execute(t, "2 3")
	require.Error(t, err)
	assert.Empty(t, stdout)
	var buf bytes.Buffer
	assert.Equal(t, exitError, exitCode(err, &buf))
	assert.Contains(t, buf.String(), "could not parse problem")
}

func TestRunFiles(t *testing.T) {
	txt := writeFile(t, "pb.txt", "1 2 1\n5 1 1\n3 1 1\n")
	stdout, _, err := execute(t, "", "-q", txt)
	require.NoError(t, err)
	assert.Equal(t, "2\n3\n", stdout)

	js := writeFile(t, "pb.json", `{"groups": 1, "select": 1, "actors": [{"cost": 5, "groups": [1]}, {"cost": 3, "groups": [1]}]}`)
	stdout, _, err = execute(t, "", "-q", js)
	require.NoError(t, err)
	assert.Equal(t, "2\n3\n", stdout)

	_, _, err = execute(t, "", filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorContains(t, err, "could not open")
}

func TestRunConfig(t *testing.T) {
	cfg := writeFile(t, "cfg.yaml", "bound: basic\noptimalityCut: false\nquiet: true\n")
	stdout, stderr, err := execute(t, example, "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "1 3\n15\n", stdout)
	assert.Empty(t, stderr)

	// Flags override the file
	_, stderr, err = execute(t, example, "--config", cfg, "--quiet=false")
	require.NoError(t, err)
	assert.Contains(t, stderr, "c nb nodes generated")

	bad := writeFile(t, "bad.yaml", "bound: greedy\n")
	_, _, err = execute(t, example, "--config", bad)
	assert.EqualError(t, err, `unknown bound "greedy", expected "basic" or "improved"`)

	unknown := writeFile(t, "unknown.yaml", "timeout: 3\n")
	_, _, err = execute(t, example, "--config", unknown)
	assert.ErrorContains(t, err, "could not parse configuration")

	empty := writeFile(t, "empty.yaml", "")
	_, _, err = execute(t, example, "-q", "--config", empty)
	assert.NoError(t, err)
}

func TestRunBoundOverride(t *testing.T) {
	basic := writeFile(t, "basic.yaml", "bound: basic\n")
	improved := writeFile(t, "improved.yaml", "bound: improved\n")
	for _, test := range []struct {
		args  []string
		bound string
	}{
		{[]string{"--config", basic}, "basic"},
		{[]string{"--config", basic, "--bound", "improved"}, "improved"},
		{[]string{"--config", basic, "--basic=false"}, "improved"},
		{[]string{"--config", improved, "-a"}, "basic"},
		{[]string{"--config", improved, "--bound", "basic"}, "basic"},
		{[]string{"--bound", "basic"}, "basic"},
		{nil, "improved"},
	} {
		_, stderr, err := execute(t, example, append(test.args, "-q", "-v")...)
		require.NoError(t, err, "args %v", test.args)
		assert.Contains(t, stderr, `"bound":"`+test.bound+`"`, "args %v", test.args)
	}

	_, _, err := execute(t, example, "-a", "--bound", "improved")
	assert.ErrorContains(t, err, "[basic bound]")
	_, _, err = execute(t, example, "--bound", "greedy")
	assert.EqualError(t, err, `unknown bound "greedy", expected "basic" or "improved"`)
}

func TestRunInterrupted(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd(strings.NewReader(example), &out, &errOut)
	cmd.SetArgs([]string{"-q"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := cmd.ExecuteContext(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
	var buf bytes.Buffer
	assert.Equal(t, exitError, exitCode(err, &buf))
	assert.Equal(t, "error: search interrupted: context canceled\n", buf.String())
}

func TestConfigOptions(t *testing.T) {
	opts, err := Config{}.Options()
	require.NoError(t, err)
	assert.Equal(t, solver.DefaultOptions(), opts)

	no := false
	opts, err = Config{Bound: "basic", FeasibilityCut: &no}.Options()
	require.NoError(t, err)
	assert.Equal(t, solver.Options{Bound: solver.Basic{}, OptimalityCut: true, FeasibilityCut: false}, opts)
}

func TestRunVerify(t *testing.T) {
	_, _, err := execute(t, example, "-q", "--verify")
	assert.NoError(t, err)
	_, _, err = execute(t, "2 1 1\n4 1 1\n", "-q", "--verify")
	assert.ErrorIs(t, err, solver.ErrInfeasible)
}

func TestRunDebug(t *testing.T) {
	_, stderr, err := execute(t, example, "-q", "--debug")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"new best solution"`)
	assert.Contains(t, stderr, `"logger":"solver"`)
}

func TestRunMetrics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gophercast.prom")
	_, _, err := execute(t, example, "-q", "--metrics-file", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "gophercast_nodes_generated 6\n")
	assert.Contains(t, string(data), "gophercast_solution_cost 15\n")
	assert.Contains(t, string(data), `gophercast_cuts{cut="optimality"} 3`)
}

func TestMetricsRegistry(t *testing.T) {
	res := solver.Result{Status: solver.Feasible, Cost: 15, Stats: solver.Stats{NbGenerated: 6, NbVisited: 2, NbOptimalityCuts: 3}}
	expected := `
# HELP gophercast_nodes_generated Number of nodes generated by expansion.
# TYPE gophercast_nodes_generated gauge
gophercast_nodes_generated 6
# HELP gophercast_nodes_visited Number of nodes explored.
# TYPE gophercast_nodes_visited gauge
gophercast_nodes_visited 2
# HELP gophercast_feasible 1 if a solution was found, 0 otherwise.
# TYPE gophercast_feasible gauge
gophercast_feasible 1
`
	err := testutil.GatherAndCompare(newMetricsRegistry(res), strings.NewReader(expected),
		"gophercast_nodes_generated", "gophercast_nodes_visited", "gophercast_feasible")
	assert.NoError(t, err)
}
