package repositories

import (
	"context"
	"errors"
	"healthdash/internal/database"
	"healthdash/internal/logger"
	. "healthdash/internal/models"
	"healthdash/internal/services"
	"time"

	"gorm.io/gorm"
)

type HealthEventRepository interface {
	GetByID(ctx context.Context, id string) (*HealthEvent, error)
	GetByUserID(ctx context.Context, userID string) ([]*HealthEvent, error)
	GetUpcomingByUserID(ctx context.Context, userID string, from time.Time, limit int) ([]*HealthEvent, error)
	Create(ctx context.Context, event *HealthEvent) error
	Update(ctx context.Context, event *HealthEvent) error
	Delete(ctx context.Context, id string) error
}

type healthEventRepository struct {
	db  database.DB
	log logger.Logger
}

func NewHealthEvent(db database.DB) HealthEventRepository {
	return &healthEventRepository{
		db:  db,
		log: logger.New("healthEventRepository"),
	}
}

func (r *healthEventRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *healthEventRepository) GetByID(ctx context.Context, id string) (*HealthEvent, error) {
	log := r.log.Function("GetByID")

	var event HealthEvent
	if err := r.getDB(ctx).First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, log.Err("failed to get event by id", err, "id", id)
	}

	return &event, nil
}

func (r *healthEventRepository) GetByUserID(ctx context.Context, userID string) ([]*HealthEvent, error) {
	log := r.log.Function("GetByUserID")

	var events []*HealthEvent
	if err := r.getDB(ctx).Where("user_id = ?", userID).Order("date ASC").Find(&events).Error; err != nil {
		return nil, log.Err("failed to get events by user id", err, "userID", userID)
	}

	return events, nil
}

// GetUpcomingByUserID is the calendar widget's query: events on or after the
// given day, soonest first, capped at limit.
func (r *healthEventRepository) GetUpcomingByUserID(
	ctx context.Context,
	userID string,
	from time.Time,
	limit int,
) ([]*HealthEvent, error) {
	log := r.log.Function("GetUpcomingByUserID")

	if limit <= 0 {
		limit = 5
	}

	var events []*HealthEvent
	if err := r.getDB(ctx).
		Where("user_id = ? AND date >= ?", userID, from).
		Order("date ASC").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, log.Err("failed to get upcoming events", err, "userID", userID)
	}

	return events, nil
}

func (r *healthEventRepository) Create(ctx context.Context, event *HealthEvent) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(event).Error; err != nil {
		return log.Err("failed to create event", err, "userID", event.UserID)
	}

	return nil
}

func (r *healthEventRepository) Update(ctx context.Context, event *HealthEvent) error {
	log := r.log.Function("Update")

	if err := r.getDB(ctx).Save(event).Error; err != nil {
		return log.Err("failed to update event", err, "id", event.ID)
	}

	return nil
}

func (r *healthEventRepository) Delete(ctx context.Context, id string) error {
	log := r.log.Function("Delete")

	result := r.getDB(ctx).Delete(&HealthEvent{}, "id = ?", id)
	if result.Error != nil {
		return log.Err("failed to delete event", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
