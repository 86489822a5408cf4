package handlers

import (
	"healthdash/internal/app"
	metricController "healthdash/internal/controllers/metrics"
	"healthdash/internal/logger"
	. "healthdash/internal/models"
	"time"

	"github.com/gofiber/fiber/v2"
)

type MetricHandler struct {
	Handler
	controller *metricController.MetricController
}

func NewMetricHandler(app app.App, router fiber.Router) *MetricHandler {
	log := logger.New("handlers").File("metric_handler")
	return &MetricHandler{
		controller: app.MetricController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *MetricHandler) Register() {
	metrics := h.router.Group("/metrics", h.middleware.RequireAuth())
	metrics.Post("/", h.createMetric)
	metrics.Get("/", h.getMetrics)
	metrics.Get("/latest", h.getLatestMetric)
	metrics.Get("/range", h.getMetricRange)
	metrics.Get("/:id", h.getMetric)
	metrics.Delete("/:id", h.deleteMetric)
}

func (h *MetricHandler) createMetric(c *fiber.Ctx) error {
	log := h.log.Function("createMetric")

	var request CreateHealthMetricRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse metric request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse metric request"})
	}
	request.UserID = currentUser(c).ID

	metric, err := h.controller.Create(c.Context(), &request)
	if err != nil {
		log.Er("failed to create metric", err)
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "metric": metric})
}

func (h *MetricHandler) getMetrics(c *fiber.Ctx) error {
	log := h.log.Function("getMetrics")

	metrics, err := h.controller.ListByUser(c.Context(), currentUser(c).ID)
	if err != nil {
		log.Er("failed to get metrics", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "metrics": metrics})
}

func (h *MetricHandler) getLatestMetric(c *fiber.Ctx) error {
	log := h.log.Function("getLatestMetric")

	metric, err := h.controller.GetLatest(c.Context(), currentUser(c).ID)
	if err != nil {
		log.Er("failed to get latest metric", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "metric": metric})
}

func (h *MetricHandler) getMetricRange(c *fiber.Ctx) error {
	log := h.log.Function("getMetricRange")

	from, err := time.Parse(time.DateOnly, c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "invalid from date, expected YYYY-MM-DD"})
	}
	to, err := time.Parse(time.DateOnly, c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "invalid to date, expected YYYY-MM-DD"})
	}

	metrics, err := h.controller.GetRange(c.Context(), currentUser(c).ID, from, to)
	if err != nil {
		log.Er("failed to get metric range", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "metrics": metrics})
}

func (h *MetricHandler) getMetric(c *fiber.Ctx) error {
	log := h.log.Function("getMetric")

	metric, err := h.controller.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		log.Er("failed to get metric", err)
		return errorResponse(c, err)
	}
	if metric.UserID != currentUser(c).ID {
		return errorResponse(c, ErrNotFound)
	}

	return c.JSON(fiber.Map{"message": "success", "metric": metric})
}

func (h *MetricHandler) deleteMetric(c *fiber.Ctx) error {
	log := h.log.Function("deleteMetric")

	metric, err := h.controller.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	if metric.UserID != currentUser(c).ID {
		return errorResponse(c, ErrNotFound)
	}

	if err := h.controller.Delete(c.Context(), c.Params("id")); err != nil {
		log.Er("failed to delete metric", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}
