package insightController

import (
	"context"
	"healthdash/internal/events"
	"healthdash/internal/logger"
	. "healthdash/internal/models"
	"healthdash/internal/repositories"
	"time"

	"github.com/google/uuid"
)

type InsightController struct {
	insightRepo repositories.AiInsightRepository
	userRepo    repositories.UserRepository
	eventBus    *events.EventBus
	log         logger.Logger
}

func New(
	insightRepo repositories.AiInsightRepository,
	userRepo repositories.UserRepository,
	eventBus *events.EventBus,
) *InsightController {
	return &InsightController{
		insightRepo: insightRepo,
		userRepo:    userRepo,
		eventBus:    eventBus,
		log:         logger.New("InsightController"),
	}
}

// Create appends a generated insight and notifies connected clients. The
// generation itself happens elsewhere; rows arrive here fully formed.
func (c *InsightController) Create(ctx context.Context, request *CreateAiInsightRequest) (*AiInsight, error) {
	log := c.log.Function("Create")

	if request.UserID == "" || request.Content == "" {
		return nil, log.Err("userId and content are required", ErrValidation)
	}

	severity := request.Severity
	if severity == "" {
		severity = InsightSeverityInfo
	}
	if !ValidInsightSeverity(severity) {
		return nil, log.Err("invalid insight severity", ErrValidation, "severity", severity)
	}

	exists, err := c.userRepo.Exists(ctx, request.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, log.Err("user does not exist", ErrNotFound, "userID", request.UserID)
	}

	insight := &AiInsight{
		UserID:   request.UserID,
		Content:  request.Content,
		Category: request.Category,
		Severity: severity,
	}

	if err := c.insightRepo.Create(ctx, insight); err != nil {
		return nil, err
	}

	event := events.Event{
		ID:        uuid.New().String(),
		Type:      "insight.created",
		Channel:   "insights",
		UserID:    insight.UserID,
		Data:      map[string]any{"insightId": insight.ID, "severity": insight.Severity},
		Timestamp: time.Now(),
	}
	if err := c.eventBus.Publish("insights", event); err != nil {
		log.Warn("failed to publish insight event", "insightID", insight.ID, "error", err)
	}

	return insight, nil
}

func (c *InsightController) GetByID(ctx context.Context, id string) (*AiInsight, error) {
	return c.insightRepo.GetByID(ctx, id)
}

func (c *InsightController) ListByUser(ctx context.Context, userID string) ([]*AiInsight, error) {
	return c.insightRepo.GetByUserID(ctx, userID)
}

func (c *InsightController) ListUnread(ctx context.Context, userID string) ([]*AiInsight, error) {
	return c.insightRepo.GetUnreadByUserID(ctx, userID)
}

func (c *InsightController) MarkRead(ctx context.Context, id string) error {
	return c.insightRepo.MarkRead(ctx, id)
}

func (c *InsightController) Delete(ctx context.Context, id string) error {
	return c.insightRepo.Delete(ctx, id)
}
