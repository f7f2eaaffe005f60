package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/urfave/cli/v3"

	"prodsearch/internal/domain"
	"prodsearch/internal/ui/views"
)

// ShowCommand creates the show command
func ShowCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print one product",
		ArgsUsage: "ID",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the raw JSON object",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return errors.New("show needs exactly one product ID")
			}
			id, err := strconv.ParseInt(c.Args().First(), 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid product ID %q", c.Args().First())
			}
			return show(ctx, c, id)
		},
	}
}

func show(ctx context.Context, c *cli.Command, id int64) error {
	cfg, err := loadConfig(c, nil)
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	item, err := client.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("no product with ID %d", id)
	}
	if err != nil {
		return fmt.Errorf("loading product %d: %w", id, err)
	}

	if c.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(item)
	}
	prices := views.NewPriceFormatter(cfg.UI.Locale, cfg.UI.Currency)
	fmt.Print(views.DetailText(*item, client.ImageURL(*item), prices))
	return nil
}
