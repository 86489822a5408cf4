package eventController

import (
	"context"
	"healthdash/internal/logger"
	. "healthdash/internal/models"
	"healthdash/internal/repositories"
	"time"
)

type EventController struct {
	eventRepo repositories.HealthEventRepository
	userRepo  repositories.UserRepository
	log       logger.Logger
}

func New(
	eventRepo repositories.HealthEventRepository,
	userRepo repositories.UserRepository,
) *EventController {
	return &EventController{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		log:       logger.New("EventController"),
	}
}

func (c *EventController) Create(ctx context.Context, request *CreateHealthEventRequest) (*HealthEvent, error) {
	log := c.log.Function("Create")

	if request.UserID == "" || request.Title == "" {
		return nil, log.Err("userId and title are required", ErrValidation)
	}
	if request.Date.IsZero() {
		return nil, log.Err("date is required", ErrValidation)
	}

	exists, err := c.userRepo.Exists(ctx, request.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, log.Err("user does not exist", ErrNotFound, "userID", request.UserID)
	}

	event := &HealthEvent{
		UserID:      request.UserID,
		Title:       request.Title,
		Description: request.Description,
		Date:        request.Date,
		Time:        request.Time,
		Location:    request.Location,
	}

	if err := c.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

func (c *EventController) GetByID(ctx context.Context, id string) (*HealthEvent, error) {
	return c.eventRepo.GetByID(ctx, id)
}

func (c *EventController) ListByUser(ctx context.Context, userID string) ([]*HealthEvent, error) {
	return c.eventRepo.GetByUserID(ctx, userID)
}

// Upcoming returns the next events from the start of today.
func (c *EventController) Upcoming(ctx context.Context, userID string, limit int) ([]*HealthEvent, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return c.eventRepo.GetUpcomingByUserID(ctx, userID, today, limit)
}

func (c *EventController) Delete(ctx context.Context, id string) error {
	return c.eventRepo.Delete(ctx, id)
}
