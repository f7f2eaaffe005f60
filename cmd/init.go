package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"prodsearch/internal/config"
	"prodsearch/internal/eventbus"
)

// InitCommand creates the init command
func InitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize configuration",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "effective",
				Usage: "Write the effective settings (defaults plus --api/--debounce) instead of the commented template",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Bool("effective") {
				return saveEffective(c)
			}
			return initConfig(c.String("config"))
		},
	}
}

// initConfig writes the commented template
func initConfig(configPath string) error {
	if err := config.WriteTemplate(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Printf("Configuration initialized at %s\n", configPath)
	return nil
}

// saveEffective writes the settings the other commands would run with
func saveEffective(c *cli.Command) error {
	logger := newLogger(os.Stderr, "info")
	bus := eventbus.NewWithLogger(logger)
	defer bus.Close()
	logDiagnostics(bus, logger)

	cfg, err := loadConfig(c, nil)
	if err != nil {
		return err
	}
	svc := config.NewConfigServiceWithBus(c.String("config"), bus)
	if err := svc.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Printf("Configuration written to %s\n", svc.Path())
	return nil
}
