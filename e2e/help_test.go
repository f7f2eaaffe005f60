//go:build e2e && unix

package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHelpCommand(t *testing.T) {
	t.Parallel()

	if _, err := os.Stat(binPath); os.IsNotExist(err) {
		t.Skip("Test binary not found - TestMain may not have run yet")
	}

	out, err := exec.Command(binPath, "--help").CombinedOutput()
	require.NoError(t, err, "Help command should run without error")

	output := string(out)
	require.Contains(t, output, "prodsearch")
	for _, sub := range []string{"search", "show", "serve", "init"} {
		require.Contains(t, output, sub, "help should list the %s command", sub)
	}
	require.Contains(t, output, "--api")
}

func TestNotATerminal(t *testing.T) {
	t.Parallel()

	cmd := exec.Command(binPath)
	cmd.Env = append(os.Environ(), "PRODSEARCH_CONFIG="+filepath.Join(t.TempDir(), "config.toml"))
	out, err := cmd.CombinedOutput()
	require.Error(t, err, "the TUI needs a terminal")
	require.True(t, strings.Contains(string(out), "not a terminal"), "got: %s", out)
}
