package handlers

import (
	"healthdash/internal/app"
	userController "healthdash/internal/controllers/users"
	"healthdash/internal/handlers/middleware"
	"healthdash/internal/logger"
	. "healthdash/internal/models"
	"time"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Handler
	controller *userController.UserController
}

func NewUserHandler(app app.App, router fiber.Router) *UserHandler {
	log := logger.New("handlers").File("user_handler")
	return &UserHandler{
		controller: app.UserController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *UserHandler) Register() {
	users := h.router.Group("/users")
	users.Post("/login", h.login)

	users.Get("/", h.middleware.RequireAuth(), h.getUser)
	users.Post("/logout", h.middleware.RequireAuth(), h.logout)
	users.Put("/subscription", h.middleware.RequireAuth(), h.updateSubscription)
}

func (h *UserHandler) getUser(c *fiber.Ctx) error {
	user := currentUser(c)
	if user.ID == "" {
		h.log.Function("getUser").ErMsg("No user found in locals")
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error", "error": "failed to get user"})
	}

	return c.JSON(fiber.Map{"message": "success", "user": user})
}

func (h *UserHandler) login(c *fiber.Ctx) error {
	log := h.log.Function("login")

	var request UpsertUserRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse login request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse login request"})
	}

	user, token, err := h.controller.Login(c.Context(), &request)
	if err != nil {
		log.Er("failed to log in", err)
		return errorResponse(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		HTTPOnly: true,
		SameSite: "Lax",
		Expires:  time.Now().Add(time.Duration(h.middleware.Config().SessionTTLHours) * time.Hour),
	})

	return c.JSON(fiber.Map{"message": "success", "user": user})
}

func (h *UserHandler) logout(c *fiber.Ctx) error {
	log := h.log.Function("logout")

	if err := h.controller.Logout(c.Context(), c.Cookies(middleware.SessionCookie)); err != nil {
		log.Er("failed to log out", err)
	}

	c.ClearCookie(middleware.SessionCookie)
	return c.JSON(fiber.Map{"message": "success"})
}

func (h *UserHandler) updateSubscription(c *fiber.Ctx) error {
	log := h.log.Function("updateSubscription")

	var request UpdateSubscriptionRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse subscription request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse subscription request"})
	}

	user, err := h.controller.UpdateSubscription(c.Context(), currentUser(c).ID, &request)
	if err != nil {
		log.Er("failed to update subscription", err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "user": user})
}
