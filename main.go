package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"prodsearch/cmd"
)

func main() {
	app := &cli.Command{
		Name:    "prodsearch",
		Usage:   "Search a product catalog as you type",
		Version: cmd.Version,
		Flags:   cmd.GlobalFlags(),
		Action:  cmd.TUIAction,
		Commands: []*cli.Command{
			cmd.SearchCommand(),
			cmd.ShowCommand(),
			cmd.ServeCommand(),
			cmd.InitCommand(),
			cmd.VersionCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
