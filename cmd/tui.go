package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"prodsearch/internal/config"
	"prodsearch/internal/eventbus"
	"prodsearch/internal/ui"
)

// TUIAction runs the interactive search screen
func TUIAction(ctx context.Context, c *cli.Command) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal; use \"prodsearch search QUERY\" for non-interactive lookups")
	}

	// The config decides where logs go, so it is read before the bus and
	// its diagnostics exist
	cfg, err := loadConfig(c, nil)
	if err != nil {
		return err
	}
	logger, closeLog, err := fileLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	bus := eventbus.NewWithLogger(logger)
	defer bus.Close()
	logDiagnostics(bus, logger)
	bus.Publish(eventbus.ConfigLoadedEvent{Path: configPath(c), BaseURL: cfg.Catalog.BaseURL})

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	model := ui.NewModel(ui.Options{
		Catalog:  client,
		ImageURL: client.ImageURL,
		Config:   cfg,
		Bus:      bus,
		Logger:   logger,
	})
	defer model.Close()

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	logger.Info("starting", "version", Version, "api", cfg.Catalog.BaseURL, "debounce", cfg.Search.Debounce.Duration)

	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

func configPath(c *cli.Command) string {
	return config.NewConfigService(c.String("config")).Path()
}
