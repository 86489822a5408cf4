package repositories

import (
	"context"
	"errors"
	"healthdash/internal/database"
	"healthdash/internal/logger"
	. "healthdash/internal/models"
	"healthdash/internal/services"

	"gorm.io/gorm"
)

type AiInsightRepository interface {
	GetByID(ctx context.Context, id string) (*AiInsight, error)
	GetByUserID(ctx context.Context, userID string) ([]*AiInsight, error)
	GetUnreadByUserID(ctx context.Context, userID string) ([]*AiInsight, error)
	Create(ctx context.Context, insight *AiInsight) error
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type aiInsightRepository struct {
	db  database.DB
	log logger.Logger
}

func NewAiInsight(db database.DB) AiInsightRepository {
	return &aiInsightRepository{
		db:  db,
		log: logger.New("aiInsightRepository"),
	}
}

func (r *aiInsightRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *aiInsightRepository) GetByID(ctx context.Context, id string) (*AiInsight, error) {
	log := r.log.Function("GetByID")

	var insight AiInsight
	if err := r.getDB(ctx).First(&insight, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, log.Err("failed to get insight by id", err, "id", id)
	}

	return &insight, nil
}

func (r *aiInsightRepository) GetByUserID(ctx context.Context, userID string) ([]*AiInsight, error) {
	log := r.log.Function("GetByUserID")

	var insights []*AiInsight
	if err := r.getDB(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&insights).Error; err != nil {
		return nil, log.Err("failed to get insights by user id", err, "userID", userID)
	}

	return insights, nil
}

func (r *aiInsightRepository) GetUnreadByUserID(ctx context.Context, userID string) ([]*AiInsight, error) {
	log := r.log.Function("GetUnreadByUserID")

	var insights []*AiInsight
	if err := r.getDB(ctx).
		Where("user_id = ? AND is_read = ?", userID, false).
		Order("created_at DESC").
		Find(&insights).Error; err != nil {
		return nil, log.Err("failed to get unread insights", err, "userID", userID)
	}

	return insights, nil
}

func (r *aiInsightRepository) Create(ctx context.Context, insight *AiInsight) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(insight).Error; err != nil {
		return log.Err("failed to create insight", err, "userID", insight.UserID)
	}

	return nil
}

// MarkRead flips isRead one way; marking an already-read insight is a no-op.
func (r *aiInsightRepository) MarkRead(ctx context.Context, id string) error {
	log := r.log.Function("MarkRead")

	result := r.getDB(ctx).Model(&AiInsight{}).Where("id = ?", id).Update("is_read", true)
	if result.Error != nil {
		return log.Err("failed to mark insight read", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *aiInsightRepository) Delete(ctx context.Context, id string) error {
	log := r.log.Function("Delete")

	result := r.getDB(ctx).Delete(&AiInsight{}, "id = ?", id)
	if result.Error != nil {
		return log.Err("failed to delete insight", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
