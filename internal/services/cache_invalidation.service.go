package services

import (
	"context"
	"healthdash/internal/database"
	"healthdash/internal/events"
	"healthdash/internal/logger"
	"time"

	"github.com/google/uuid"
)

// CacheInvalidationService drops cached entries after writes and tells
// connected clients to refetch.
type CacheInvalidationService struct {
	db       database.DB
	eventBus *events.EventBus
	log      logger.Logger
}

func NewCacheInvalidationService(
	db database.DB,
	eventBus *events.EventBus,
) *CacheInvalidationService {
	return &CacheInvalidationService{
		db:       db,
		eventBus: eventBus,
		log:      logger.New("CacheInvalidationService"),
	}
}

func (s *CacheInvalidationService) InvalidateUser(ctx context.Context, userID string) error {
	log := s.log.Function("InvalidateUser")

	if err := database.NewCacheBuilder(s.db.Cache.User, userID).WithContext(ctx).Delete(); err != nil {
		return log.Err("failed to invalidate user cache", err, "userID", userID)
	}

	s.notify(userID, "user")
	return nil
}

func (s *CacheInvalidationService) InvalidateLatestMetric(ctx context.Context, userID string) error {
	log := s.log.Function("InvalidateLatestMetric")

	if err := database.NewCacheBuilder(s.db.Cache.Metric, "latest:"+userID).WithContext(ctx).Delete(); err != nil {
		return log.Err("failed to invalidate latest metric cache", err, "userID", userID)
	}

	s.notify(userID, "metric")
	return nil
}

// notify is best effort; a lost refetch hint only delays clients until their
// next poll.
func (s *CacheInvalidationService) notify(userID, entity string) {
	event := events.Event{
		ID:        uuid.New().String(),
		Type:      "cache.invalidate",
		Channel:   "cache",
		UserID:    userID,
		Data:      map[string]any{"entity": entity},
		Timestamp: time.Now(),
	}

	if err := s.eventBus.Publish("cache", event); err != nil {
		s.log.Function("notify").Warn("failed to publish invalidation event",
			"userID", userID, "entity", entity, "error", err)
	}
}
