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

type WorkoutRepository interface {
	GetByID(ctx context.Context, id string) (*Workout, error)
	GetByIDWithSets(ctx context.Context, id string) (*Workout, error)
	GetByUserID(ctx context.Context, userID string) ([]*Workout, error)
	GetByUserIDAndDateRange(ctx context.Context, userID string, from, to time.Time) ([]*Workout, error)
	Create(ctx context.Context, workout *Workout) error
	Update(ctx context.Context, workout *Workout) error
	Delete(ctx context.Context, id string) error
}

type workoutRepository struct {
	db  database.DB
	log logger.Logger
}

func NewWorkout(db database.DB) WorkoutRepository {
	return &workoutRepository{
		db:  db,
		log: logger.New("workoutRepository"),
	}
}

func (r *workoutRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *workoutRepository) GetByID(ctx context.Context, id string) (*Workout, error) {
	log := r.log.Function("GetByID")

	var workout Workout
	if err := r.getDB(ctx).First(&workout, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, log.Err("failed to get workout by id", err, "id", id)
	}

	return &workout, nil
}

func (r *workoutRepository) GetByIDWithSets(ctx context.Context, id string) (*Workout, error) {
	log := r.log.Function("GetByIDWithSets")

	var workout Workout
	if err := r.getDB(ctx).
		Preload("Sets", func(db *gorm.DB) *gorm.DB {
			return db.Order("set_number ASC")
		}).
		First(&workout, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, log.Err("failed to get workout with sets", err, "id", id)
	}

	return &workout, nil
}

func (r *workoutRepository) GetByUserID(ctx context.Context, userID string) ([]*Workout, error) {
	log := r.log.Function("GetByUserID")

	var workouts []*Workout
	if err := r.getDB(ctx).Where("user_id = ?", userID).Order("date DESC").Find(&workouts).Error; err != nil {
		return nil, log.Err("failed to get workouts by user id", err, "userID", userID)
	}

	return workouts, nil
}

func (r *workoutRepository) GetByUserIDAndDateRange(
	ctx context.Context,
	userID string,
	from, to time.Time,
) ([]*Workout, error) {
	log := r.log.Function("GetByUserIDAndDateRange")

	var workouts []*Workout
	if err := r.getDB(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC").
		Find(&workouts).Error; err != nil {
		return nil, log.Err("failed to get workouts by date range", err,
			"userID", userID, "from", from, "to", to)
	}

	return workouts, nil
}

// Create persists the workout and any sets attached to it in one insert.
func (r *workoutRepository) Create(ctx context.Context, workout *Workout) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(workout).Error; err != nil {
		return log.Err("failed to create workout", err, "userID", workout.UserID)
	}

	return nil
}

func (r *workoutRepository) Update(ctx context.Context, workout *Workout) error {
	log := r.log.Function("Update")

	if err := r.getDB(ctx).Omit("Sets").Save(workout).Error; err != nil {
		return log.Err("failed to update workout", err, "id", workout.ID)
	}

	return nil
}

// Delete removes the workout; its sets cascade.
func (r *workoutRepository) Delete(ctx context.Context, id string) error {
	log := r.log.Function("Delete")

	result := r.getDB(ctx).Delete(&Workout{}, "id = ?", id)
	if result.Error != nil {
		return log.Err("failed to delete workout", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
