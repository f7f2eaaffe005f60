package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"prodsearch/internal/catalog"
	"prodsearch/internal/config"
	"prodsearch/internal/eventbus"
)

// Version is stamped at build time with -ldflags "-X prodsearch/cmd.Version=..."
var Version = "dev"

// GlobalFlags are shared by the root command and every subcommand
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "Configuration file path",
			Value:   config.DefaultPath(),
			Sources: cli.EnvVars("PRODSEARCH_CONFIG"),
		},
		&cli.StringFlag{
			Name:    "api",
			Usage:   "Catalog API base URL (overrides catalog.base_url)",
			Sources: cli.EnvVars("PRODSEARCH_API"),
		},
		&cli.DurationFlag{
			Name:  "debounce",
			Usage: "Typing pause before a search is sent (overrides search.debounce)",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug logging",
		},
	}
}

// loadConfig reads the config file and applies command line overrides
func loadConfig(c *cli.Command, bus eventbus.EventBus) (*config.Config, error) {
	var svc config.ConfigService
	if bus != nil {
		svc = config.NewConfigServiceWithBus(c.String("config"), bus)
	} else {
		svc = config.NewConfigService(c.String("config"))
	}
	cfg, err := svc.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if c.IsSet("api") {
		cfg.Catalog.BaseURL = strings.TrimSpace(c.String("api"))
	}
	if c.IsSet("debounce") {
		cfg.Search.Debounce = config.Duration{Duration: c.Duration("debounce")}
	}
	if c.Bool("debug") {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newClient(cfg *config.Config) (*catalog.Client, error) {
	client, err := catalog.New(cfg.Catalog.BaseURL,
		catalog.WithTimeout(cfg.Catalog.Timeout.Duration),
		catalog.WithUserAgent("prodsearch/"+Version))
	if err != nil {
		return nil, fmt.Errorf("creating catalog client: %w", err)
	}
	return client, nil
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// newLogger writes text logs to w at the configured level
func newLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)}))
}

// fileLogger opens the log file; the terminal belongs to the TUI
func fileLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	path := cfg.Log.File
	if path == "" {
		path = config.DefaultLogFile()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return newLogger(f, cfg.Log.Level), func() { f.Close() }, nil
}
