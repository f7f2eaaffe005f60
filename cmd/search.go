package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/urfave/cli/v3"

	"prodsearch/internal/config"
	"prodsearch/internal/domain"
	"prodsearch/internal/ui/views"
)

// SearchCommand creates the search command
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search the catalog once and print the matches",
		ArgsUsage: "QUERY",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the raw JSON array",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() > 1 {
				return errors.New("search takes at most one QUERY argument; quote multi-word queries")
			}
			return runSearch(ctx, c, c.Args().First(), os.Stdout)
		},
	}
}

func runSearch(ctx context.Context, c *cli.Command, query string, out io.Writer) error {
	cfg, err := loadConfig(c, nil)
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	items, requestID, err := client.SearchWithID(ctx, query)
	if err != nil {
		return fmt.Errorf("searching %q: %w", query, err)
	}
	newLogger(os.Stderr, cfg.Log.Level).Debug("search completed", "query", query, "results", len(items), "request_id", requestID)

	if c.Bool("json") {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}
	if len(items) == 0 {
		fmt.Fprintln(out, "No products found.")
		return nil
	}
	fmt.Fprintln(out, renderTable(items, cfg))
	return nil
}

func renderTable(items []domain.Item, cfg *config.Config) string {
	prices := views.NewPriceFormatter(cfg.UI.Locale, cfg.UI.Currency)
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("241"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		Headers("ID", "NAME", "BRAND", "PRICE")

	for _, it := range items {
		t.Row(strconv.FormatInt(it.ID, 10), it.Name, it.Brand, prices.Format(it.Price))
	}
	return t.Render()
}
