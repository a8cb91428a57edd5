package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/travigo/connections/pkg/api/routes"
	"github.com/travigo/connections/pkg/config"
	"github.com/travigo/connections/pkg/journeyplanner"
)

// NewApp builds the web API around planner without binding a listener
func NewApp(cfg *config.Config, planner *journeyplanner.Planner) *fiber.App {
	webApp := fiber.New(fiber.Config{
		AppName:               "connections",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	webApp.Use(NewLogger())
	webApp.Use(recover.New())
	webApp.Use(cors.New())

	webApp.Get("/", routes.DirectionsIndex(cfg.Directions))
	webApp.Get("version", routes.APIVersion)

	routes.BestRouteRouter(webApp.Group("/best-route"), cfg.Directions, planner)

	return webApp
}

func SetupServer(cfg *config.Config, planner *journeyplanner.Planner) error {
	return NewApp(cfg, planner).Listen(cfg.Server.Listen)
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()

	var fiberError *fiber.Error
	if errors.As(err, &fiberError) {
		code = fiberError.Code
	}

	if code >= fiber.StatusInternalServerError {
		message = "Internal server error: " + message
	}

	c.Status(code)
	return c.JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}
