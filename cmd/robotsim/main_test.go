package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SCENARIO_PATH", "")
	t.Setenv("REDIS_ADDR", "")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRouteCommand(t *testing.T) {
	out, err := execute(t, "route", "Cabin", "Town Hall")
	require.NoError(t, err)
	assert.Equal(t, "Cabin -> Alice's House -> Bob's House -> Town Hall (3 hops)\n", out)
}

func TestRouteCommandUnknownLocation(t *testing.T) {
	_, err := execute(t, "route", "Cabin", "Moon")
	assert.Error(t, err)
}

func TestRunCommand(t *testing.T) {
	out, err := execute(t, "run", "efficient", "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Start at Post Office with 5 parcels")
	assert.Contains(t, out, "Done in ")
}

func TestCompareCommand(t *testing.T) {
	out, err := execute(t, "compare", "--samples", "20", "goal", "efficient")
	require.NoError(t, err)
	assert.Contains(t, out, "POLICY")
	assert.Contains(t, out, "goal")
	assert.Contains(t, out, "efficient")
	assert.Contains(t, out, "20 samples")
}

func TestCompareCommandUnknownPolicy(t *testing.T) {
	_, err := execute(t, "compare", "teleport")
	assert.Error(t, err)
}

func TestCompareCommandScenarioFile(t *testing.T) {
	out, err := execute(t, "--scenario", "../../data/scenarios/ring.yaml", "compare", "--samples", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "route")
	assert.Contains(t, out, "10 samples")
}
