package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/connections/pkg/config"
)

// DirectionsIndex lists the best route endpoint of every configured direction
func DirectionsIndex(directions []config.Direction) fiber.Handler {
	endpoints := fiber.Map{}
	for _, direction := range directions {
		endpoints["/best-route/"+direction.Key] = direction.Description
	}

	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "Connections route planner API",
			"endpoints": endpoints,
		})
	}
}

func findDirection(directions []config.Direction, key string) (config.Direction, bool) {
	for _, direction := range directions {
		if direction.Key == key {
			return direction, true
		}
	}

	return config.Direction{}, false
}
