//go:build e2e && unix

package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binPath, args...)
	cmd.Env = append(os.Environ(),
		"HOME="+home,
		"PRODSEARCH_CONFIG="+filepath.Join(home, "config.toml"),
	)
	out, err := cmd.Output()
	return string(out), err
}

func TestSearchCommand(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	srv, err := tf.StartServer()
	require.NoError(t, err)
	home := t.TempDir()

	out, err := runCLI(t, home, "--api", srv.URL, "search", "--json", "phone")
	require.NoError(t, err)

	var items []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	require.Contains(t, names, "Smartphone X")
	require.Contains(t, names, "Phone Stand")

	out, err = runCLI(t, home, "--api", srv.URL, "search", "phone")
	require.NoError(t, err)
	require.Contains(t, out, "NAME")
	require.Contains(t, out, "Smartphone Lite")
}

func TestShowCommand(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	srv, err := tf.StartServer()
	require.NoError(t, err)
	home := t.TempDir()

	out, err := runCLI(t, home, "--api", srv.URL, "show", "6")
	require.NoError(t, err)
	require.Contains(t, out, "Laptop Air 13")

	_, err = runCLI(t, home, "--api", srv.URL, "show", "999")
	require.Error(t, err, "unknown ids should fail")
}

func TestInitWritesConfig(t *testing.T) {
	t.Parallel()
	home := t.TempDir()

	_, err := runCLI(t, home, "init")
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(home, "config.toml"))
	require.NoError(t, err)
	require.Contains(t, string(data), "[catalog]")

	_, err = runCLI(t, home, "init")
	require.Error(t, err, "init must not overwrite an existing file")
}

func TestServeReloadsSeed(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	dir := t.TempDir()
	seed := WriteSeed(t, dir, `[
  // one product to start with
  {"id": 1, "name": "Desk Lamp", "brand": "Lumo", "price": 25}
]`)
	srv, err := tf.StartServer("--seed", seed)
	require.NoError(t, err)
	home := t.TempDir()

	out, err := runCLI(t, home, "--api", srv.URL, "search", "--json", "lamp")
	require.NoError(t, err)
	require.Contains(t, out, "Desk Lamp")

	WriteSeed(t, dir, `[
  {"id": 1, "name": "Floor Lamp", "brand": "Lumo", "price": 80}
]`)
	require.Eventually(t, func() bool {
		out, err := runCLI(t, home, "--api", srv.URL, "search", "--json", "lamp")
		return err == nil && strings.Contains(out, "Floor Lamp")
	}, 5*time.Second, 100*time.Millisecond, "edited seed should be served")
}
