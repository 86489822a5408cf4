package handlers

import (
	"healthdash/internal/app"
	eventController "healthdash/internal/controllers/events"
	"healthdash/internal/logger"
	. "healthdash/internal/models"

	"github.com/gofiber/fiber/v2"
)

type EventHandler struct {
	Handler
	controller *eventController.EventController
}

func NewEventHandler(app app.App, router fiber.Router) *EventHandler {
	log := logger.New("handlers").File("event_handler")
	return &EventHandler{
		controller: app.EventController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *EventHandler) Register() {
	events := h.router.Group("/events", h.middleware.RequireAuth())
	events.Post("/", h.createEvent)
	events.Get("/", h.getEvents)
	events.Get("/upcoming", h.getUpcomingEvents)
	events.Delete("/:id", h.deleteEvent)
}

func (h *EventHandler) createEvent(c *fiber.Ctx) error {
	log := h.log.Function("createEvent")

	var request CreateHealthEventRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse event request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse event request"})
	}
	request.UserID = currentUser(c).ID

	event, err := h.controller.Create(c.Context(), &request)
	if err != nil {
		log.Er("failed to create event", err)
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "event": event})
}

func (h *EventHandler) getEvents(c *fiber.Ctx) error {
	log := h.log.Function("getEvents")

	events, err := h.controller.ListByUser(c.Context(), currentUser(c).ID)
	if err != nil {
		log.Er("failed to get events", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "events": events})
}

func (h *EventHandler) getUpcomingEvents(c *fiber.Ctx) error {
	log := h.log.Function("getUpcomingEvents")

	events, err := h.controller.Upcoming(c.Context(), currentUser(c).ID, c.QueryInt("limit", 5))
	if err != nil {
		log.Er("failed to get upcoming events", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "events": events})
}

func (h *EventHandler) deleteEvent(c *fiber.Ctx) error {
	log := h.log.Function("deleteEvent")

	event, err := h.controller.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	if event.UserID != currentUser(c).ID {
		return errorResponse(c, ErrNotFound)
	}

	if err := h.controller.Delete(c.Context(), c.Params("id")); err != nil {
		log.Er("failed to delete event", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}
