package api

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/connections/pkg/config"
	"github.com/travigo/connections/pkg/dataaggregator/global"
	"github.com/travigo/connections/pkg/journeyplanner"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the route planning web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Usage: "listen target for the web server, overrides the configured address",
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "YAML file overriding the built in configuration",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}

					if listen := c.String("listen"); listen != "" {
						cfg.Server.Listen = listen
					}

					if cfg.Upstream.APIKey == "" {
						log.Warn().Msg("TRAVIGO_TFI_API_KEY is not set")
					}

					planner := journeyplanner.NewPlanner(global.Setup(cfg), cfg.Planner)

					log.Info().
						Str("listen", cfg.Server.Listen).
						Int("directions", len(cfg.Directions)).
						Msg("Starting web API")

					return SetupServer(cfg, planner)
				},
			},
		},
	}
}
