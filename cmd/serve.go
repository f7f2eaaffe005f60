package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"prodsearch/internal/clock"
	"prodsearch/internal/debounce"
	"prodsearch/internal/domain"
	"prodsearch/internal/eventbus"
	"prodsearch/internal/server"
	"prodsearch/internal/store"
)

const (
	seedReloadDelay = 200 * time.Millisecond
	shutdownTimeout = 5 * time.Second
)

// ServeCommand creates the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run a local fixture catalog API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address",
				Value: ":3333",
			},
			&cli.StringFlag{
				Name:  "seed",
				Usage: "JSON (comments allowed) product list; reloaded on change. Built-in products when empty",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "SQLite database path",
				Value: ":memory:",
			},
			&cli.StringFlag{
				Name:  "images",
				Usage: "Directory served for product image paths",
			},
			&cli.DurationFlag{
				Name:  "latency",
				Usage: "Delay added to every API response",
			},
			&cli.DurationFlag{
				Name:  "jitter",
				Usage: "Random extra delay up to this much, to reorder responses",
			},
		},
		Action: serve,
	}
}

func serve(ctx context.Context, c *cli.Command) error {
	level := "info"
	if c.Bool("debug") {
		level = "debug"
	}
	logger := newLogger(os.Stderr, level)

	bus := eventbus.NewWithLogger(logger)
	defer bus.Close()
	logDiagnostics(bus, logger)

	st, err := store.Open(c.String("db"))
	if err != nil {
		return err
	}
	defer st.Close()

	seedPath := c.String("seed")
	if seedPath != "" {
		seedPath, err = filepath.Abs(seedPath)
		if err != nil {
			return err
		}
	}
	if err := reloadSeed(ctx, st, seedPath, bus); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", c.String("addr"))
	if err != nil {
		return fmt.Errorf("listening on %s: %w", c.String("addr"), err)
	}
	// e2e tests read this line to learn the port
	fmt.Printf("listening on http://%s\n", ln.Addr())

	srv := &http.Server{
		Handler: server.New(st, server.Options{
			ImagesDir: c.String("images"),
			Latency:   c.Duration("latency"),
			Jitter:    c.Duration("jitter"),
			Logger:    logger,
		}).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if seedPath != "" {
		g.Go(func() error {
			return watchSeed(gctx, st, seedPath, bus, logger)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// reloadSeed replaces the store contents with the seed file, or the
// built-in products when path is empty
func reloadSeed(ctx context.Context, st *store.Store, path string, bus eventbus.EventBus) error {
	var (
		items []domain.Item
		err   error
	)
	if path == "" {
		items = store.DefaultSeed()
	} else {
		items, err = store.LoadSeed(path)
	}
	if err == nil {
		err = st.Replace(ctx, items)
	}
	bus.Publish(domain.CatalogReloadedEvent{Path: path, Items: len(items), Err: err})
	return err
}

// watchSeed reloads the store whenever the seed file changes. The parent
// directory is watched so editors that replace the file are picked up.
func watchSeed(ctx context.Context, st *store.Store, path string, bus eventbus.EventBus, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	reload := debounce.New(clock.Real(), seedReloadDelay, func(string) {
		// a bad edit keeps the previous catalog
		_ = reloadSeed(ctx, st, path, bus)
	})
	defer reload.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				reload.Trigger(ev.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("seed watcher error", "error", err)
		}
	}
}
