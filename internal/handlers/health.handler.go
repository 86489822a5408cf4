package handlers

import (
	"healthdash/config"
	"time"

	"github.com/gofiber/fiber/v2"
)

var startedAt = time.Now()

func HealthHandler(router fiber.Router, config config.Config) {
	router.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"version": config.Version,
			"uptime":  time.Since(startedAt).String(),
		})
	})
}
