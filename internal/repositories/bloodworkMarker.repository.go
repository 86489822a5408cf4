package repositories

import (
	"context"
	"healthdash/internal/database"
	"healthdash/internal/logger"
	. "healthdash/internal/models"
	"healthdash/internal/services"

	"gorm.io/gorm"
)

type BloodworkMarkerRepository interface {
	CreateBatch(ctx context.Context, markers []*BloodworkMarker) error
	GetByLabResultID(ctx context.Context, labResultID string) ([]*BloodworkMarker, error)
	GetByUserID(ctx context.Context, userID string) ([]*BloodworkMarker, error)
	GetAbnormalByUserID(ctx context.Context, userID string) ([]*BloodworkMarker, error)
	CountByLabResultID(ctx context.Context, labResultID string) (int64, error)
}

type bloodworkMarkerRepository struct {
	db  database.DB
	log logger.Logger
}

func NewBloodworkMarker(db database.DB) BloodworkMarkerRepository {
	return &bloodworkMarkerRepository{
		db:  db,
		log: logger.New("bloodworkMarkerRepository"),
	}
}

func (r *bloodworkMarkerRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *bloodworkMarkerRepository) CreateBatch(ctx context.Context, markers []*BloodworkMarker) error {
	log := r.log.Function("CreateBatch")

	if len(markers) == 0 {
		return nil
	}

	if err := r.getDB(ctx).Create(markers).Error; err != nil {
		return log.Err("failed to create markers", err, "count", len(markers))
	}

	return nil
}

func (r *bloodworkMarkerRepository) GetByLabResultID(ctx context.Context, labResultID string) ([]*BloodworkMarker, error) {
	log := r.log.Function("GetByLabResultID")

	var markers []*BloodworkMarker
	if err := r.getDB(ctx).Where("lab_result_id = ?", labResultID).Order("name ASC").Find(&markers).Error; err != nil {
		return nil, log.Err("failed to get markers by lab result id", err, "labResultID", labResultID)
	}

	return markers, nil
}

func (r *bloodworkMarkerRepository) GetByUserID(ctx context.Context, userID string) ([]*BloodworkMarker, error) {
	log := r.log.Function("GetByUserID")

	var markers []*BloodworkMarker
	if err := r.getDB(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&markers).Error; err != nil {
		return nil, log.Err("failed to get markers by user id", err, "userID", userID)
	}

	return markers, nil
}

func (r *bloodworkMarkerRepository) GetAbnormalByUserID(ctx context.Context, userID string) ([]*BloodworkMarker, error) {
	log := r.log.Function("GetAbnormalByUserID")

	var markers []*BloodworkMarker
	if err := r.getDB(ctx).Where("user_id = ? AND is_abnormal = ?", userID, true).Find(&markers).Error; err != nil {
		return nil, log.Err("failed to get abnormal markers", err, "userID", userID)
	}

	return markers, nil
}

func (r *bloodworkMarkerRepository) CountByLabResultID(ctx context.Context, labResultID string) (int64, error) {
	log := r.log.Function("CountByLabResultID")

	var count int64
	if err := r.getDB(ctx).Model(&BloodworkMarker{}).Where("lab_result_id = ?", labResultID).Count(&count).Error; err != nil {
		return 0, log.Err("failed to count markers", err, "labResultID", labResultID)
	}

	return count, nil
}
