package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/postpulse/postpulse/internal/projectconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCommand_WritesDefaults(t *testing.T) {
	dir := t.TempDir()

	cmd := newInitCommand()
	cmd.SetArgs([]string{dir})
	require.NoError(t, cmd.Execute())

	_, err := os.Stat(filepath.Join(dir, ".postpulse.yaml"))
	require.NoError(t, err)

	cfg, err := projectconfig.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, projectconfig.DefaultAPIBaseURL, cfg.API.BaseURL)
	assert.True(t, *cfg.API.Mock)
}

func TestInitCommand_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "project")

	cmd := newInitCommand()
	cmd.SetArgs([]string{dir})
	require.NoError(t, cmd.Execute())

	_, err := os.Stat(filepath.Join(dir, ".postpulse.yaml"))
	require.NoError(t, err)
}
