package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// runCounter runs the root command with args and returns what it printed on
// stdout and stderr.
func runCounter(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := execute(cmd)
	return out.String(), errOut.String(), err
}

func TestPrintsFinalValue(t *testing.T) {
	out, errOut, err := runCounter(t)
	require.NoError(t, err)
	assert.Equal(t, "400000\n", out)
	assert.Empty(t, errOut)
}

func TestSingleUnitSingleIncrement(t *testing.T) {
	out, _, err := runCounter(t, "--units", "1", "--increments", "1")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

func TestZeroUnits(t *testing.T) {
	out, _, err := runCounter(t, "--units=0")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("COUNTER_UNITS", "3")
	t.Setenv("COUNTER_INCREMENTS", "7")

	out, _, err := runCounter(t)
	require.NoError(t, err)
	assert.Equal(t, "21\n", out)

	// Flags beat the environment.
	out, _, err = runCounter(t, "--increments", "10")
	require.NoError(t, err)
	assert.Equal(t, "30\n", out)
}

// TestMalformedEnvironment checks that a non-numeric env value is rejected
// instead of silently becoming 0.
func TestMalformedEnvironment(t *testing.T) {
	tests := map[string]string{
		"COUNTER_UNITS":      "four",
		"COUNTER_INCREMENTS": "1e",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)

			out, errOut, err := runCounter(t)
			require.Error(t, err)
			assert.Empty(t, out)
			assert.Contains(t, errOut, value)
		})
	}
}

func TestInvalidInput(t *testing.T) {
	tests := map[string][]string{
		"negative units":        {"--units", "-2"},
		"non-numeric flag":      {"--units", "abc"},
		"unknown level":         {"--log-level", "loud"},
		"positional arg":        {"extra"},
		"negative with recover": {"--units", "-1", "--recover-poison"},
	}

	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			out, errOut, err := runCounter(t, args...)
			require.Error(t, err)
			assert.Empty(t, out)
			assert.NotEmpty(t, errOut, "the failure must be reported on stderr")
		})
	}
}
