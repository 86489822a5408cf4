package middleware

import (
	"encoding/json"
	"healthdash/config"
	userController "healthdash/internal/controllers/users"
	"healthdash/internal/database"
	"healthdash/internal/logger"
	. "healthdash/internal/models"
	"healthdash/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

const SessionCookie = "session_token"

type Middleware struct {
	db          database.DB
	config      config.Config
	sessionRepo repositories.SessionRepository
	userRepo    repositories.UserRepository
	log         logger.Logger
}

func New(
	db database.DB,
	config config.Config,
	sessionRepo repositories.SessionRepository,
	userRepo repositories.UserRepository,
) Middleware {
	return Middleware{
		db:          db,
		config:      config,
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		log:         logger.New("middleware"),
	}
}

func (m Middleware) Config() config.Config {
	return m.config
}

// RequireAuth resolves the session cookie to a user and stores it in locals.
// The expire timestamp on the session row is authoritative.
func (m Middleware) RequireAuth() fiber.Handler {
	log := m.log.Function("RequireAuth")

	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"message": "authentication required"})
		}

		session, err := m.sessionRepo.Get(c.Context(), userController.SessionID(token))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"message": "invalid or expired session"})
		}

		var payload SessionPayload
		if err := json.Unmarshal(session.Payload, &payload); err != nil || payload.UserID == "" {
			log.Er("failed to decode session payload", err)
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"message": "invalid session"})
		}

		user, err := m.userRepo.GetByID(c.Context(), payload.UserID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"message": "unknown user"})
		}

		c.Locals("user", *user)
		return c.Next()
	}
}
