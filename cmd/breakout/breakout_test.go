package main

import (
	"testing"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildApp(t *testing.T) {
	app := buildApp()
	assert.Equal(t, "breakout", app.Name)

	names := map[string]bool{}
	for _, cmd := range app.Commands {
		names[cmd.Name] = true
	}
	for _, name := range []string{"amoc", "multi", "batch", "service"} {
		assert.True(t, names[name], name)
	}
}

func TestLoggingSetup(t *testing.T) {
	require.NoError(t, loggingSetup("breakout-test", "debug"))
	assert.Equal(t, level.Debug, grip.GetSender().Level().Threshold)

	require.NoError(t, loggingSetup("breakout-test", "warning"))
	assert.Equal(t, level.Warning, grip.GetSender().Level().Threshold)
}
