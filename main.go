package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/timfernando/roadcolors/internal/cachecmd"
	"github.com/timfernando/roadcolors/internal/render"
	"github.com/timfernando/roadcolors/internal/runs"
	"github.com/timfernando/roadcolors/internal/words"
)

func main() {
	app := &cli.App{
		Name:  "roadcolors",
		Usage: "render a place's road network colored by its most common road-name words",
		Commands: []*cli.Command{
			{
				Name:   "render",
				Usage:  "fetch a place's roads and render the colored map image",
				Flags:  render.RenderFlags(),
				Action: render.RenderAction,
			},
			{
				Name:  "words",
				Usage: "print the ranked road-name word frequencies without rendering",
				Flags: append(render.QueryFlags(),
					&cli.IntFlag{Name: "limit", Value: 25, Usage: "rows to print"},
				),
				Action: words.WordsAction,
			},
			{
				Name:  "runs",
				Usage: "inspect the run history",
				Subcommands: []*cli.Command{
					{
						Name:  "list",
						Usage: "list recent runs",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "limit", Value: 20, Usage: "rows to print"},
						},
						Action: runs.ListAction,
					},
					{
						Name:      "show",
						Usage:     "show one run in full (latest if no ID given)",
						ArgsUsage: "[run-id]",
						Action:    runs.ShowAction,
					},
				},
			},
			{
				Name:  "cache",
				Usage: "manage the API response cache",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "cache-dir", Value: "roadcolors-cache", Usage: "API response cache directory"},
					&cli.StringFlag{Name: "max-age", Value: "720h", Usage: "entries older than this are expired"},
				},
				Subcommands: []*cli.Command{
					{
						Name:   "prune",
						Usage:  "remove expired entries",
						Action: cachecmd.PruneAction,
					},
					{
						Name:   "clear",
						Usage:  "remove all entries",
						Action: cachecmd.ClearAction,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
