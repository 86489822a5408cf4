package integrationController

import (
	"context"
	"errors"
	"healthdash/internal/logger"
	. "healthdash/internal/models"
	"healthdash/internal/repositories"
	"time"
)

type IntegrationController struct {
	serviceRepo repositories.ConnectedServiceRepository
	userRepo    repositories.UserRepository
	log         logger.Logger
}

func New(
	serviceRepo repositories.ConnectedServiceRepository,
	userRepo repositories.UserRepository,
) *IntegrationController {
	return &IntegrationController{
		serviceRepo: serviceRepo,
		userRepo:    userRepo,
		log:         logger.New("IntegrationController"),
	}
}

// Connect marks the integration connected, creating the row on first connect.
// The (user, service) pair is unique, so reconnecting updates in place.
func (c *IntegrationController) Connect(ctx context.Context, request *ConnectServiceRequest) (*ConnectedService, error) {
	log := c.log.Function("Connect")

	if request.UserID == "" || request.ServiceName == "" {
		return nil, log.Err("userId and serviceName are required", ErrValidation)
	}

	exists, err := c.userRepo.Exists(ctx, request.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, log.Err("user does not exist", ErrNotFound, "userID", request.UserID)
	}

	service, err := c.serviceRepo.GetByUserAndName(ctx, request.UserID, request.ServiceName)
	switch {
	case errors.Is(err, ErrNotFound):
		service = &ConnectedService{
			UserID:      request.UserID,
			ServiceName: request.ServiceName,
			IsConnected: true,
			AuthData:    request.AuthData,
		}
		if err := c.serviceRepo.Create(ctx, service); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		service.IsConnected = true
		service.AuthData = request.AuthData
		if err := c.serviceRepo.Update(ctx, service); err != nil {
			return nil, err
		}
	}

	return service, nil
}

// Disconnect flips the toggle off and drops stored credentials. LastSynced is
// kept for display.
func (c *IntegrationController) Disconnect(ctx context.Context, userID, serviceName string) (*ConnectedService, error) {
	service, err := c.serviceRepo.GetByUserAndName(ctx, userID, serviceName)
	if err != nil {
		return nil, err
	}

	service.IsConnected = false
	service.AuthData = nil
	if err := c.serviceRepo.Update(ctx, service); err != nil {
		return nil, err
	}

	return service, nil
}

// RecordSync advances lastSynced. Syncs against a disconnected service are
// rejected; a timestamp not after the stored one is ignored so the value
// only moves forward.
func (c *IntegrationController) RecordSync(
	ctx context.Context,
	userID, serviceName string,
	syncedAt time.Time,
) (*ConnectedService, error) {
	log := c.log.Function("RecordSync")

	service, err := c.serviceRepo.GetByUserAndName(ctx, userID, serviceName)
	if err != nil {
		return nil, err
	}

	if !service.IsConnected {
		return nil, log.Err("cannot record sync for disconnected service",
			ErrNotConnected, "userID", userID, "serviceName", serviceName)
	}

	if service.LastSynced != nil && !syncedAt.After(*service.LastSynced) {
		return service, nil
	}

	service.LastSynced = &syncedAt
	if err := c.serviceRepo.Update(ctx, service); err != nil {
		return nil, err
	}

	return service, nil
}

func (c *IntegrationController) ListByUser(ctx context.Context, userID string) ([]*ConnectedService, error) {
	return c.serviceRepo.GetByUserID(ctx, userID)
}
