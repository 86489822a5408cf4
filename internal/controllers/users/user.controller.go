package userController

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"healthdash/config"
	"healthdash/internal/logger"
	. "healthdash/internal/models"
	"healthdash/internal/repositories"
	"healthdash/internal/services"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
	"gorm.io/datatypes"
)

type UserController struct {
	userRepo                 repositories.UserRepository
	sessionRepo              repositories.SessionRepository
	cacheInvalidationService *services.CacheInvalidationService
	config                   config.Config
	log                      logger.Logger
}

func New(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	cacheInvalidationService *services.CacheInvalidationService,
	config config.Config,
) *UserController {
	return &UserController{
		userRepo:                 userRepo,
		sessionRepo:              sessionRepo,
		cacheInvalidationService: cacheInvalidationService,
		config:                   config,
		log:                      logger.New("UserController"),
	}
}

// SessionID derives the stored session id from a bearer token. Only the
// digest ever touches the database.
func SessionID(token string) string {
	digest := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}

func (c *UserController) GetUser(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, ErrValidation
	}
	return c.userRepo.GetByID(ctx, userID)
}

// Login upserts the externally-authenticated identity and opens a session.
// It returns the raw bearer token, which is never persisted.
func (c *UserController) Login(ctx context.Context, request *UpsertUserRequest) (*User, string, error) {
	log := c.log.Function("Login")

	if request.ID == "" {
		return nil, "", log.Err("user id is required", ErrValidation)
	}

	user := &User{
		ID:              request.ID,
		Email:           request.Email,
		FirstName:       request.FirstName,
		LastName:        request.LastName,
		ProfileImageURL: request.ProfileImageURL,
	}

	if err := c.userRepo.Upsert(ctx, user); err != nil {
		return nil, "", err
	}

	token := uuid.New().String()
	payload, err := json.Marshal(SessionPayload{UserID: user.ID})
	if err != nil {
		return nil, "", log.Err("failed to marshal session payload", err)
	}

	ttl := time.Duration(c.config.SessionTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}

	session := &Session{
		SID:       SessionID(token),
		Payload:   datatypes.JSON(payload),
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := c.sessionRepo.Create(ctx, session); err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (c *UserController) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return c.sessionRepo.Delete(ctx, SessionID(token))
}

// UpdateSubscription records the payment provider's state on the user row.
func (c *UserController) UpdateSubscription(
	ctx context.Context,
	userID string,
	request *UpdateSubscriptionRequest,
) (*User, error) {
	log := c.log.Function("UpdateSubscription")

	if !ValidSubscriptionStatus(request.Status) {
		return nil, log.Err("invalid subscription status", ErrValidation, "status", request.Status)
	}
	if !ValidSubscriptionTier(request.Tier) {
		return nil, log.Err("invalid subscription tier", ErrValidation, "tier", request.Tier)
	}

	user, err := c.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.StripeCustomerID = request.StripeCustomerID
	user.StripeSubscriptionID = request.StripeSubscriptionID
	user.SubscriptionStatus = request.Status
	user.SubscriptionTier = request.Tier
	user.SubscriptionExpiresAt = request.ExpiresAt

	if err := c.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if err := c.cacheInvalidationService.InvalidateUser(ctx, userID); err != nil {
		log.Warn("failed to invalidate user cache after subscription update",
			"userID", userID, "error", err)
	}

	return user, nil
}
