//go:build e2e && unix

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"
)

// FixtureServer is a running "prodsearch serve" process
type FixtureServer struct {
	URL string
	cmd *exec.Cmd
}

// Stop interrupts the server and waits for it
func (s *FixtureServer) Stop() {
	if s.cmd == nil || s.cmd.Process == nil {
		return
	}
	_ = s.cmd.Process.Signal(syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		_, _ = s.cmd.Process.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		_ = s.cmd.Process.Kill()
	}
}

// StartServer runs the fixture catalog on a random port. The TUI started
// afterwards is pointed at it.
func (tf *TUITestFramework) StartServer(args ...string) (*FixtureServer, error) {
	args = append([]string{"serve", "--addr", "127.0.0.1:0"}, args...)
	cmd := exec.Command(binPath, args...)
	cmd.Env = os.Environ()
	cmd.Stderr = io.Discard
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start server: %w", err)
	}

	urls := make(chan string, 1)
	go func() {
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			if u, ok := strings.CutPrefix(scanner.Text(), "listening on "); ok {
				urls <- u
			}
		}
		close(urls)
	}()

	srv := &FixtureServer{cmd: cmd}
	select {
	case u, ok := <-urls:
		if !ok {
			srv.Stop()
			return nil, fmt.Errorf("server exited before listening")
		}
		srv.URL = u
	case <-time.After(10 * time.Second):
		srv.Stop()
		return nil, fmt.Errorf("server did not start listening")
	}
	tf.server = srv
	return srv, nil
}

// WriteSeed writes a product list for "serve --seed"
func WriteSeed(t *testing.T, dir string, body string) string {
	t.Helper()
	p := filepath.Join(dir, "products.jsonc")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("writing seed: %v", err)
	}
	return p
}
