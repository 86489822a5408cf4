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

type LabResultRepository interface {
	GetByID(ctx context.Context, id string) (*LabResult, error)
	GetByIDWithMarkers(ctx context.Context, id string) (*LabResult, error)
	GetByUserID(ctx context.Context, userID string) ([]*LabResult, error)
	Create(ctx context.Context, labResult *LabResult) error
	Update(ctx context.Context, labResult *LabResult) error
	MarkProcessed(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

type labResultRepository struct {
	db  database.DB
	log logger.Logger
}

func NewLabResult(db database.DB) LabResultRepository {
	return &labResultRepository{
		db:  db,
		log: logger.New("labResultRepository"),
	}
}

func (r *labResultRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *labResultRepository) GetByID(ctx context.Context, id string) (*LabResult, error) {
	log := r.log.Function("GetByID")

	var labResult LabResult
	if err := r.getDB(ctx).First(&labResult, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, log.Err("failed to get lab result by id", err, "id", id)
	}

	return &labResult, nil
}

func (r *labResultRepository) GetByIDWithMarkers(ctx context.Context, id string) (*LabResult, error) {
	log := r.log.Function("GetByIDWithMarkers")

	var labResult LabResult
	if err := r.getDB(ctx).Preload("Markers").First(&labResult, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, log.Err("failed to get lab result with markers", err, "id", id)
	}

	return &labResult, nil
}

func (r *labResultRepository) GetByUserID(ctx context.Context, userID string) ([]*LabResult, error) {
	log := r.log.Function("GetByUserID")

	var labResults []*LabResult
	if err := r.getDB(ctx).Where("user_id = ?", userID).Order("uploaded_at DESC").Find(&labResults).Error; err != nil {
		return nil, log.Err("failed to get lab results by user id", err, "userID", userID)
	}

	return labResults, nil
}

func (r *labResultRepository) Create(ctx context.Context, labResult *LabResult) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(labResult).Error; err != nil {
		return log.Err("failed to create lab result", err, "userID", labResult.UserID)
	}

	return nil
}

func (r *labResultRepository) Update(ctx context.Context, labResult *LabResult) error {
	log := r.log.Function("Update")

	if err := r.getDB(ctx).Save(labResult).Error; err != nil {
		return log.Err("failed to update lab result", err, "id", labResult.ID)
	}

	return nil
}

// MarkProcessed claims the result for processing. The processed = false guard
// makes the one-way transition atomic: of two racing callers only one update
// matches, the other sees ErrAlreadyProcessed.
func (r *labResultRepository) MarkProcessed(ctx context.Context, id, status string) error {
	log := r.log.Function("MarkProcessed")

	result := r.getDB(ctx).Model(&LabResult{}).
		Where("id = ? AND processed = ?", id, false).
		Updates(map[string]any{"status": status, "processed": true})
	if result.Error != nil {
		return log.Err("failed to mark lab result processed", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		var labResult LabResult
		if err := r.getDB(ctx).First(&labResult, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return log.Err("failed to get lab result", err, "id", id)
		}
		return ErrAlreadyProcessed
	}

	return nil
}

// Delete removes the lab result; its markers go with it through the declared
// cascade.
func (r *labResultRepository) Delete(ctx context.Context, id string) error {
	log := r.log.Function("Delete")

	result := r.getDB(ctx).Delete(&LabResult{}, "id = ?", id)
	if result.Error != nil {
		return log.Err("failed to delete lab result", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
