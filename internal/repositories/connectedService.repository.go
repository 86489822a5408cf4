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

type ConnectedServiceRepository interface {
	GetByUserAndName(ctx context.Context, userID, serviceName string) (*ConnectedService, error)
	GetByUserID(ctx context.Context, userID string) ([]*ConnectedService, error)
	Create(ctx context.Context, service *ConnectedService) error
	Update(ctx context.Context, service *ConnectedService) error
	Delete(ctx context.Context, id string) error
}

type connectedServiceRepository struct {
	db  database.DB
	log logger.Logger
}

func NewConnectedService(db database.DB) ConnectedServiceRepository {
	return &connectedServiceRepository{
		db:  db,
		log: logger.New("connectedServiceRepository"),
	}
}

func (r *connectedServiceRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *connectedServiceRepository) GetByUserAndName(
	ctx context.Context,
	userID, serviceName string,
) (*ConnectedService, error) {
	log := r.log.Function("GetByUserAndName")

	var service ConnectedService
	if err := r.getDB(ctx).
		First(&service, "user_id = ? AND service_name = ?", userID, serviceName).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, log.Err("failed to get connected service", err,
			"userID", userID, "serviceName", serviceName)
	}

	return &service, nil
}

func (r *connectedServiceRepository) GetByUserID(ctx context.Context, userID string) ([]*ConnectedService, error) {
	log := r.log.Function("GetByUserID")

	var services []*ConnectedService
	if err := r.getDB(ctx).Where("user_id = ?", userID).Order("service_name ASC").Find(&services).Error; err != nil {
		return nil, log.Err("failed to get connected services", err, "userID", userID)
	}

	return services, nil
}

func (r *connectedServiceRepository) Create(ctx context.Context, service *ConnectedService) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(service).Error; err != nil {
		return log.Err("failed to create connected service", err,
			"userID", service.UserID, "serviceName", service.ServiceName)
	}

	return nil
}

func (r *connectedServiceRepository) Update(ctx context.Context, service *ConnectedService) error {
	log := r.log.Function("Update")

	if err := r.getDB(ctx).Save(service).Error; err != nil {
		return log.Err("failed to update connected service", err, "id", service.ID)
	}

	return nil
}

func (r *connectedServiceRepository) Delete(ctx context.Context, id string) error {
	log := r.log.Function("Delete")

	result := r.getDB(ctx).Delete(&ConnectedService{}, "id = ?", id)
	if result.Error != nil {
		return log.Err("failed to delete connected service", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
