package handlers

import (
	"healthdash/internal/app"
	insightController "healthdash/internal/controllers/insights"
	"healthdash/internal/logger"
	. "healthdash/internal/models"

	"github.com/gofiber/fiber/v2"
)

type InsightHandler struct {
	Handler
	controller *insightController.InsightController
}

func NewInsightHandler(app app.App, router fiber.Router) *InsightHandler {
	log := logger.New("handlers").File("insight_handler")
	return &InsightHandler{
		controller: app.InsightController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *InsightHandler) Register() {
	insights := h.router.Group("/insights", h.middleware.RequireAuth())
	insights.Post("/", h.createInsight)
	insights.Get("/", h.getInsights)
	insights.Get("/unread", h.getUnreadInsights)
	insights.Put("/:id/read", h.markRead)
	insights.Delete("/:id", h.deleteInsight)
}

func (h *InsightHandler) ownInsight(c *fiber.Ctx) (*AiInsight, error) {
	insight, err := h.controller.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return nil, err
	}
	if insight.UserID != currentUser(c).ID {
		return nil, ErrNotFound
	}
	return insight, nil
}

func (h *InsightHandler) createInsight(c *fiber.Ctx) error {
	log := h.log.Function("createInsight")

	var request CreateAiInsightRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse insight request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse insight request"})
	}
	request.UserID = currentUser(c).ID

	insight, err := h.controller.Create(c.Context(), &request)
	if err != nil {
		log.Er("failed to create insight", err)
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "insight": insight})
}

func (h *InsightHandler) getInsights(c *fiber.Ctx) error {
	log := h.log.Function("getInsights")

	insights, err := h.controller.ListByUser(c.Context(), currentUser(c).ID)
	if err != nil {
		log.Er("failed to get insights", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "insights": insights})
}

func (h *InsightHandler) getUnreadInsights(c *fiber.Ctx) error {
	log := h.log.Function("getUnreadInsights")

	insights, err := h.controller.ListUnread(c.Context(), currentUser(c).ID)
	if err != nil {
		log.Er("failed to get unread insights", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "insights": insights})
}

func (h *InsightHandler) markRead(c *fiber.Ctx) error {
	log := h.log.Function("markRead")

	if _, err := h.ownInsight(c); err != nil {
		return errorResponse(c, err)
	}

	if err := h.controller.MarkRead(c.Context(), c.Params("id")); err != nil {
		log.Er("failed to mark insight read", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}

func (h *InsightHandler) deleteInsight(c *fiber.Ctx) error {
	log := h.log.Function("deleteInsight")

	if _, err := h.ownInsight(c); err != nil {
		return errorResponse(c, err)
	}

	if err := h.controller.Delete(c.Context(), c.Params("id")); err != nil {
		log.Er("failed to delete insight", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}
