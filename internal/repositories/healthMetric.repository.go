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

const (
	LATEST_METRIC_CACHE_EXPIRY = 15 * time.Minute
)

type HealthMetricRepository interface {
	GetByID(ctx context.Context, id string) (*HealthMetric, error)
	GetByUserID(ctx context.Context, userID string) ([]*HealthMetric, error)
	GetByUserIDAndDateRange(ctx context.Context, userID string, from, to time.Time) ([]*HealthMetric, error)
	GetLatestByUserID(ctx context.Context, userID string) (*HealthMetric, error)
	Create(ctx context.Context, metric *HealthMetric) error
	Update(ctx context.Context, metric *HealthMetric) error
	Delete(ctx context.Context, id string) error
}

type healthMetricRepository struct {
	db  database.DB
	log logger.Logger
}

func NewHealthMetric(db database.DB) HealthMetricRepository {
	return &healthMetricRepository{
		db:  db,
		log: logger.New("healthMetricRepository"),
	}
}

func (r *healthMetricRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *healthMetricRepository) GetByID(ctx context.Context, id string) (*HealthMetric, error) {
	log := r.log.Function("GetByID")

	var metric HealthMetric
	if err := r.getDB(ctx).First(&metric, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, log.Err("failed to get metric by id", err, "id", id)
	}

	return &metric, nil
}

func (r *healthMetricRepository) GetByUserID(ctx context.Context, userID string) ([]*HealthMetric, error) {
	log := r.log.Function("GetByUserID")

	var metrics []*HealthMetric
	if err := r.getDB(ctx).Where("user_id = ?", userID).Order("date DESC").Find(&metrics).Error; err != nil {
		return nil, log.Err("failed to get metrics by user id", err, "userID", userID)
	}

	return metrics, nil
}

func (r *healthMetricRepository) GetByUserIDAndDateRange(
	ctx context.Context,
	userID string,
	from, to time.Time,
) ([]*HealthMetric, error) {
	log := r.log.Function("GetByUserIDAndDateRange")

	var metrics []*HealthMetric
	if err := r.getDB(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC").
		Find(&metrics).Error; err != nil {
		return nil, log.Err("failed to get metrics by date range", err,
			"userID", userID, "from", from, "to", to)
	}

	return metrics, nil
}

func (r *healthMetricRepository) GetLatestByUserID(ctx context.Context, userID string) (*HealthMetric, error) {
	log := r.log.Function("GetLatestByUserID")

	var metric HealthMetric
	found, err := database.NewCacheBuilder(r.db.Cache.Metric, "latest:"+userID).WithContext(ctx).Get(&metric)
	if err != nil {
		log.Warn("failed to read latest metric from cache", "userID", userID, "error", err)
	}
	if found {
		return &metric, nil
	}

	if err := r.getDB(ctx).Where("user_id = ?", userID).Order("date DESC").First(&metric).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, log.Err("failed to get latest metric", err, "userID", userID)
	}

	if err := r.addLatestToCache(ctx, &metric); err != nil {
		log.Warn("failed to cache latest metric", "userID", userID, "error", err)
	}

	return &metric, nil
}

func (r *healthMetricRepository) Create(ctx context.Context, metric *HealthMetric) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(metric).Error; err != nil {
		return log.Err("failed to create metric", err, "userID", metric.UserID)
	}

	if err := database.NewCacheBuilder(r.db.Cache.Metric, "latest:"+metric.UserID).WithContext(ctx).Delete(); err != nil {
		log.Warn("failed to invalidate latest metric cache", "userID", metric.UserID, "error", err)
	}

	return nil
}

func (r *healthMetricRepository) Update(ctx context.Context, metric *HealthMetric) error {
	log := r.log.Function("Update")

	if err := r.getDB(ctx).Save(metric).Error; err != nil {
		return log.Err("failed to update metric", err, "id", metric.ID)
	}

	if err := database.NewCacheBuilder(r.db.Cache.Metric, "latest:"+metric.UserID).WithContext(ctx).Delete(); err != nil {
		log.Warn("failed to invalidate latest metric cache", "userID", metric.UserID, "error", err)
	}

	return nil
}

func (r *healthMetricRepository) Delete(ctx context.Context, id string) error {
	log := r.log.Function("Delete")

	result := r.getDB(ctx).Delete(&HealthMetric{}, "id = ?", id)
	if result.Error != nil {
		return log.Err("failed to delete metric", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *healthMetricRepository) addLatestToCache(ctx context.Context, metric *HealthMetric) error {
	return database.NewCacheBuilder(r.db.Cache.Metric, "latest:"+metric.UserID).
		WithStruct(metric).
		WithTTL(LATEST_METRIC_CACHE_EXPIRY).
		WithContext(ctx).
		Set()
}
