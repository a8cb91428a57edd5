package journeyplanner

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kr/pretty"
	"github.com/liip/sheriff"
	"github.com/rs/zerolog/log"
	"github.com/travigo/connections/pkg/config"
	"github.com/travigo/connections/pkg/dataaggregator/global"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "planner",
		Usage: "Plans connections from the command line",
		Subcommands: []*cli.Command{
			{
				Name:  "plan",
				Usage: "print the ranked itineraries for a direction",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "direction",
						Usage:    "direction key to plan, eg to-home",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "YAML file overriding the built in configuration",
					},
					&cli.StringFlag{
						Name:  "format",
						Value: "text",
						Usage: "output format: text, json or pretty",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}

					direction, ok := cfg.Direction(c.String("direction"))
					if !ok {
						keys := make([]string, 0, len(cfg.Directions))
						for _, d := range cfg.Directions {
							keys = append(keys, d.Key)
						}

						return fmt.Errorf("unknown direction %q, expected one of %s", c.String("direction"), strings.Join(keys, ", "))
					}

					if cfg.Upstream.APIKey == "" {
						log.Warn().Msg("TRAVIGO_TFI_API_KEY is not set")
					}

					planner := NewPlanner(global.Setup(cfg), cfg.Planner)
					result := planner.ComputeItineraries(c.Context, direction)

					if err := WriteResult(c.App.Writer, result, c.String("format"), planner.location()); err != nil {
						return err
					}

					if result.Status != StatusOK {
						return cli.Exit(result.Message, 1)
					}

					return nil
				},
			},
		},
	}
}

// WriteResult prints a plan result as the traveller summary, detailed JSON or a Go value dump
func WriteResult(w io.Writer, result *Result, format string, loc *time.Location) error {
	switch format {
	case "text":
		if result.Status != StatusOK {
			_, err := fmt.Fprintln(w, result.Message)
			return err
		}

		_, err := fmt.Fprintln(w, result.Summary)
		return err
	case "json":
		reduced, err := sheriff.Marshal(&sheriff.Options{
			Groups: []string{"detailed"},
		}, NewRouteResponse(result, loc))
		if err != nil {
			return err
		}

		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(reduced)
	case "pretty":
		_, err := pretty.Fprintf(w, "%# v\n", result)
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
