package routes

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/connections/pkg/config"
	"github.com/travigo/connections/pkg/journeyplanner"
)

type bestRouteHandler struct {
	directions []config.Direction
	planner    *journeyplanner.Planner
}

func BestRouteRouter(router fiber.Router, directions []config.Direction, planner *journeyplanner.Planner) {
	handler := &bestRouteHandler{
		directions: directions,
		planner:    planner,
	}

	router.Get("/:direction", handler.getBestRoute)
}

func (h *bestRouteHandler) getBestRoute(c *fiber.Ctx) error {
	key := c.Params("direction")

	direction, ok := findDirection(h.directions, key)
	if !ok {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"success": false,
			"error":   fmt.Sprintf("Unknown direction %s", key),
		})
	}

	detail := c.Query("detail", "basic")
	if detail != "basic" && detail != "detailed" {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"success": false,
			"error":   "Parameter detail should be basic or detailed",
		})
	}

	result := h.planner.ComputeItineraries(c.UserContext(), direction)

	routeReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{detail},
	}, journeyplanner.NewRouteResponse(result, h.planner.Location))
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"success": false,
			"error":   "Sheriff could not reduce route",
		})
	}

	c.Status(statusCode(result.Status))
	return c.JSON(routeReduced)
}

func statusCode(status journeyplanner.Status) int {
	switch status {
	case journeyplanner.StatusOK:
		return fiber.StatusOK
	case journeyplanner.StatusNotFound:
		return fiber.StatusNotFound
	case journeyplanner.StatusUpstreamUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
