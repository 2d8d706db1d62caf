package cli

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"outbacknav.dev/tripd/poi"
)

func Handle() {
	shouldExit := true
	cmd := &cli.Command{
		Commands: []*cli.Command{
			{
				Name:    "analyze",
				Aliases: []string{"a"},
				Usage:   "Run a one-shot fuel gap analysis of a planned route",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Category: "Inputs",
						Name:     "route",
						Usage:    "File containing the encoded route polyline",
						Aliases:  []string{"r"},
						Value:    "./route.txt",
					},
					&cli.StringFlag{
						Category: "Inputs",
						Name:     "candidates",
						Usage:    "Cached candidates JSON file, defaults to the FuelCandidates param",
						Aliases:  []string{"c"},
					},
					&cli.StringFlag{
						Category: "Inputs",
						Name:     "route-key",
						Usage:    "Opaque tag carried through to the analysis for cache invalidation",
						Value:    "adhoc",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return analyze(cmd.String("route"), cmd.String("candidates"), cmd.String("route-key"))
				},
			},
			{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "Watch the live fuel pressure and fatigue state of a running tripd instance",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return watch()
				},
			},
			{
				Name:    "profile",
				Aliases: []string{"p"},
				Usage:   "Set up the vehicle fuel profile interactively",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return setupProfile()
				},
			},
			{
				Name:    "extract",
				Aliases: []string{"e"},
				Usage:   "Extract fuel and charging station candidates from an OpenStreetMap pbf file",
				Flags: []cli.Flag{
					&cli.Float64Flag{
						Category: "Bounds",
						Name:     "minlat",
						Usage:    "Sets the minimum latitude in degrees of the extraction bounds",
						Value:    -90,
					},
					&cli.Float64Flag{
						Category: "Bounds",
						Name:     "minlon",
						Usage:    "Sets the minimum longitude in degrees of the extraction bounds",
						Value:    -180,
					},
					&cli.Float64Flag{
						Category: "Bounds",
						Name:     "maxlat",
						Usage:    "Sets the maximum latitude in degrees of the extraction bounds",
						Value:    90,
					},
					&cli.Float64Flag{
						Category: "Bounds",
						Name:     "maxlon",
						Usage:    "Sets the maximum longitude in degrees of the extraction bounds",
						Value:    180,
					},
					&cli.StringFlag{
						Category: "Inputs and Outputs",
						Name:     "input-file",
						Usage:    "The open street maps pbf file to extract candidates from",
						Aliases: []string{
							"i",
						},
						Value: "./map.osm.pbf",
					},
					&cli.StringFlag{
						Category: "Inputs and Outputs",
						Name:     "output-file",
						Usage:    "The candidates JSON file to write",
						Aliases: []string{
							"o",
						},
						Value: "./candidates.json",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return poi.Extract(poi.ExtractSettings{
						MinLat:     cmd.Float64("minlat"),
						MinLon:     cmd.Float64("minlon"),
						MaxLat:     cmd.Float64("maxlat"),
						MaxLon:     cmd.Float64("maxlon"),
						InputFile:  cmd.String("input-file"),
						OutputFile: cmd.String("output-file"),
					})
				},
			},
		},
		Name:  "Tripd",
		Usage: "Start an instance of tripd",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			shouldExit = false
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}

	if shouldExit {
		os.Exit(0)
	}
}
