package handlers

import (
	"healthdash/internal/app"
	integrationController "healthdash/internal/controllers/integrations"
	"healthdash/internal/logger"
	. "healthdash/internal/models"
	"time"

	"github.com/gofiber/fiber/v2"
)

type IntegrationHandler struct {
	Handler
	controller *integrationController.IntegrationController
}

func NewIntegrationHandler(app app.App, router fiber.Router) *IntegrationHandler {
	log := logger.New("handlers").File("integration_handler")
	return &IntegrationHandler{
		controller: app.IntegrationController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *IntegrationHandler) Register() {
	services := h.router.Group("/services", h.middleware.RequireAuth())
	services.Get("/", h.getServices)
	services.Post("/connect", h.connectService)
	services.Post("/:name/disconnect", h.disconnectService)
	services.Post("/:name/sync", h.recordSync)
}

func (h *IntegrationHandler) getServices(c *fiber.Ctx) error {
	log := h.log.Function("getServices")

	services, err := h.controller.ListByUser(c.Context(), currentUser(c).ID)
	if err != nil {
		log.Er("failed to get connected services", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "services": services})
}

func (h *IntegrationHandler) connectService(c *fiber.Ctx) error {
	log := h.log.Function("connectService")

	var request ConnectServiceRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse connect request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse connect request"})
	}
	request.UserID = currentUser(c).ID

	service, err := h.controller.Connect(c.Context(), &request)
	if err != nil {
		log.Er("failed to connect service", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "service": service})
}

func (h *IntegrationHandler) disconnectService(c *fiber.Ctx) error {
	log := h.log.Function("disconnectService")

	service, err := h.controller.Disconnect(c.Context(), currentUser(c).ID, c.Params("name"))
	if err != nil {
		log.Er("failed to disconnect service", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "service": service})
}

type recordSyncRequest struct {
	SyncedAt *time.Time `json:"syncedAt"`
}

func (h *IntegrationHandler) recordSync(c *fiber.Ctx) error {
	log := h.log.Function("recordSync")

	var request recordSyncRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse sync request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse sync request"})
	}

	syncedAt := time.Now()
	if request.SyncedAt != nil {
		syncedAt = *request.SyncedAt
	}

	service, err := h.controller.RecordSync(c.Context(), currentUser(c).ID, c.Params("name"), syncedAt)
	if err != nil {
		log.Er("failed to record sync", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "service": service})
}
