package handlers

import (
	"healthdash/internal/app"
	labResultController "healthdash/internal/controllers/labresults"
	"healthdash/internal/logger"
	. "healthdash/internal/models"

	"github.com/gofiber/fiber/v2"
)

type LabResultHandler struct {
	Handler
	controller *labResultController.LabResultController
}

func NewLabResultHandler(app app.App, router fiber.Router) *LabResultHandler {
	log := logger.New("handlers").File("labResult_handler")
	return &LabResultHandler{
		controller: app.LabResultController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *LabResultHandler) Register() {
	labResults := h.router.Group("/lab-results", h.middleware.RequireAuth())
	labResults.Post("/", h.createLabResult)
	labResults.Get("/", h.getLabResults)
	labResults.Get("/:id", h.getLabResult)
	labResults.Get("/:id/markers", h.getMarkers)
	labResults.Post("/:id/process", h.processLabResult)
	labResults.Post("/:id/upload-url", h.requestUploadURL)
	labResults.Post("/:id/file", h.attachFile)
	labResults.Get("/:id/download-url", h.downloadURL)
	labResults.Delete("/:id", h.deleteLabResult)
}

// ownLabResult loads the result and rejects access across users.
func (h *LabResultHandler) ownLabResult(c *fiber.Ctx) (*LabResult, error) {
	labResult, err := h.controller.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return nil, err
	}
	if labResult.UserID != currentUser(c).ID {
		return nil, ErrNotFound
	}
	return labResult, nil
}

func (h *LabResultHandler) createLabResult(c *fiber.Ctx) error {
	log := h.log.Function("createLabResult")

	var request CreateLabResultRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse lab result request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse lab result request"})
	}
	request.UserID = currentUser(c).ID

	labResult, err := h.controller.Create(c.Context(), &request)
	if err != nil {
		log.Er("failed to create lab result", err)
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "labResult": labResult})
}

func (h *LabResultHandler) getLabResults(c *fiber.Ctx) error {
	log := h.log.Function("getLabResults")

	labResults, err := h.controller.ListByUser(c.Context(), currentUser(c).ID)
	if err != nil {
		log.Er("failed to get lab results", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "labResults": labResults})
}

func (h *LabResultHandler) getLabResult(c *fiber.Ctx) error {
	log := h.log.Function("getLabResult")

	if _, err := h.ownLabResult(c); err != nil {
		return errorResponse(c, err)
	}

	labResult, err := h.controller.GetWithMarkers(c.Context(), c.Params("id"))
	if err != nil {
		log.Er("failed to get lab result", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "labResult": labResult})
}

func (h *LabResultHandler) getMarkers(c *fiber.Ctx) error {
	log := h.log.Function("getMarkers")

	if _, err := h.ownLabResult(c); err != nil {
		return errorResponse(c, err)
	}

	markers, err := h.controller.Markers(c.Context(), c.Params("id"))
	if err != nil {
		log.Er("failed to get markers", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "markers": markers})
}

type processLabResultRequest struct {
	Status  string                         `json:"status"`
	Markers []CreateBloodworkMarkerRequest `json:"markers"`
}

func (h *LabResultHandler) processLabResult(c *fiber.Ctx) error {
	log := h.log.Function("processLabResult")

	if _, err := h.ownLabResult(c); err != nil {
		return errorResponse(c, err)
	}

	var request processLabResultRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse process request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse process request"})
	}

	labResult, err := h.controller.Process(c.Context(), c.Params("id"), request.Status, request.Markers)
	if err != nil {
		log.Er("failed to process lab result", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "labResult": labResult})
}

type uploadURLRequest struct {
	ContentType string `json:"contentType"`
}

func (h *LabResultHandler) requestUploadURL(c *fiber.Ctx) error {
	log := h.log.Function("requestUploadURL")

	if _, err := h.ownLabResult(c); err != nil {
		return errorResponse(c, err)
	}

	var request uploadURLRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse upload URL request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse upload URL request"})
	}

	uploadURL, objectKey, err := h.controller.RequestUploadURL(c.Context(), c.Params("id"), request.ContentType)
	if err != nil {
		log.Er("failed to generate upload URL", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "uploadUrl": uploadURL, "objectKey": objectKey})
}

type attachFileRequest struct {
	ObjectKey string `json:"objectKey"`
}

func (h *LabResultHandler) attachFile(c *fiber.Ctx) error {
	log := h.log.Function("attachFile")

	if _, err := h.ownLabResult(c); err != nil {
		return errorResponse(c, err)
	}

	var request attachFileRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse attach file request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse attach file request"})
	}

	labResult, err := h.controller.AttachFile(c.Context(), c.Params("id"), request.ObjectKey)
	if err != nil {
		log.Er("failed to attach file", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "labResult": labResult})
}

func (h *LabResultHandler) downloadURL(c *fiber.Ctx) error {
	log := h.log.Function("downloadURL")

	if _, err := h.ownLabResult(c); err != nil {
		return errorResponse(c, err)
	}

	url, err := h.controller.DownloadURL(c.Context(), c.Params("id"))
	if err != nil {
		log.Er("failed to generate download URL", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "downloadUrl": url})
}

func (h *LabResultHandler) deleteLabResult(c *fiber.Ctx) error {
	log := h.log.Function("deleteLabResult")

	if _, err := h.ownLabResult(c); err != nil {
		return errorResponse(c, err)
	}

	if err := h.controller.Delete(c.Context(), c.Params("id")); err != nil {
		log.Er("failed to delete lab result", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}
