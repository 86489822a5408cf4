package repositories

import (
	"context"
	"healthdash/internal/database"
	"healthdash/internal/logger"
	. "healthdash/internal/models"
	"healthdash/internal/services"

	"gorm.io/gorm"
)

type WorkoutSetRepository interface {
	GetByWorkoutID(ctx context.Context, workoutID string) ([]*WorkoutSet, error)
	CreateBatch(ctx context.Context, sets []*WorkoutSet) error
	Delete(ctx context.Context, id string) error
	CountByWorkoutID(ctx context.Context, workoutID string) (int64, error)
}

type workoutSetRepository struct {
	db  database.DB
	log logger.Logger
}

func NewWorkoutSet(db database.DB) WorkoutSetRepository {
	return &workoutSetRepository{
		db:  db,
		log: logger.New("workoutSetRepository"),
	}
}

func (r *workoutSetRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *workoutSetRepository) GetByWorkoutID(ctx context.Context, workoutID string) ([]*WorkoutSet, error) {
	log := r.log.Function("GetByWorkoutID")

	var sets []*WorkoutSet
	if err := r.getDB(ctx).Where("workout_id = ?", workoutID).Order("set_number ASC").Find(&sets).Error; err != nil {
		return nil, log.Err("failed to get sets by workout id", err, "workoutID", workoutID)
	}

	return sets, nil
}

func (r *workoutSetRepository) CreateBatch(ctx context.Context, sets []*WorkoutSet) error {
	log := r.log.Function("CreateBatch")

	if len(sets) == 0 {
		return nil
	}

	if err := r.getDB(ctx).Create(sets).Error; err != nil {
		return log.Err("failed to create workout sets", err, "count", len(sets))
	}

	return nil
}

func (r *workoutSetRepository) Delete(ctx context.Context, id string) error {
	log := r.log.Function("Delete")

	result := r.getDB(ctx).Delete(&WorkoutSet{}, "id = ?", id)
	if result.Error != nil {
		return log.Err("failed to delete workout set", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *workoutSetRepository) CountByWorkoutID(ctx context.Context, workoutID string) (int64, error) {
	log := r.log.Function("CountByWorkoutID")

	var count int64
	if err := r.getDB(ctx).Model(&WorkoutSet{}).Where("workout_id = ?", workoutID).Count(&count).Error; err != nil {
		return 0, log.Err("failed to count workout sets", err, "workoutID", workoutID)
	}

	return count, nil
}
