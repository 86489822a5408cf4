package handlers

import (
	"errors"
	"healthdash/internal/app"
	"healthdash/internal/handlers/middleware"
	"healthdash/internal/logger"
	. "healthdash/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	setupWebSocketRoute(router, app)

	api := router.Group("/api")
	HealthHandler(api, app.Config)
	NewUserHandler(*app, api).Register()
	NewLabResultHandler(*app, api).Register()
	NewMetricHandler(*app, api).Register()
	NewInsightHandler(*app, api).Register()
	NewEventHandler(*app, api).Register()
	NewIntegrationHandler(*app, api).Register()
	NewWorkoutHandler(*app, api).Register()

	return nil
}

func setupWebSocketRoute(router fiber.Router, app *app.App) {
	router.Use("/ws", app.Middleware.RequireAuth(), func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			user := c.Locals("user").(User)
			c.Locals("userID", user.ID)
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("/ws", websocket.New(func(c *websocket.Conn) {
		app.Websocket.HandleWebSocket(c)
	}))
}

// statusFromError maps the data layer's sentinel errors onto response codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrConflict),
		errors.Is(err, ErrAlreadyProcessed),
		errors.Is(err, ErrNotConnected):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(statusFromError(err)).
		JSON(fiber.Map{"message": "error", "error": err.Error()})
}

func currentUser(c *fiber.Ctx) User {
	user, _ := c.Locals("user").(User)
	return user
}
