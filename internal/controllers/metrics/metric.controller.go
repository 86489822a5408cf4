package metricController

import (
	"context"
	"healthdash/internal/logger"
	. "healthdash/internal/models"
	"healthdash/internal/repositories"
	"time"
)

type MetricController struct {
	metricRepo repositories.HealthMetricRepository
	userRepo   repositories.UserRepository
	log        logger.Logger
}

func New(
	metricRepo repositories.HealthMetricRepository,
	userRepo repositories.UserRepository,
) *MetricController {
	return &MetricController{
		metricRepo: metricRepo,
		userRepo:   userRepo,
		log:        logger.New("MetricController"),
	}
}

// Create persists one day of data. Any subset of measurements is valid;
// only the user and date are required.
func (c *MetricController) Create(ctx context.Context, request *CreateHealthMetricRequest) (*HealthMetric, error) {
	log := c.log.Function("Create")

	if request.UserID == "" {
		return nil, log.Err("userId is required", ErrValidation)
	}
	if request.Date.IsZero() {
		return nil, log.Err("date is required", ErrValidation)
	}

	source := request.Source
	if source == "" {
		source = MetricSourceManual
	}
	if !ValidMetricSource(source) {
		return nil, log.Err("invalid metric source", ErrValidation, "source", source)
	}

	exists, err := c.userRepo.Exists(ctx, request.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, log.Err("user does not exist", ErrNotFound, "userID", request.UserID)
	}

	metric := &HealthMetric{
		UserID:            request.UserID,
		Date:              request.Date,
		Steps:             request.Steps,
		CaloriesBurned:    request.CaloriesBurned,
		RestingHeartRate:  request.RestingHeartRate,
		ActiveMinutes:     request.ActiveMinutes,
		Weight:            request.Weight,
		SleepMinutes:      request.SleepMinutes,
		DeepSleepMinutes:  request.DeepSleepMinutes,
		LightSleepMinutes: request.LightSleepMinutes,
		ProteinGrams:      request.ProteinGrams,
		CarbsGrams:        request.CarbsGrams,
		FatsGrams:         request.FatsGrams,
		Source:            source,
	}

	if err := c.metricRepo.Create(ctx, metric); err != nil {
		return nil, err
	}

	return metric, nil
}

func (c *MetricController) GetByID(ctx context.Context, id string) (*HealthMetric, error) {
	return c.metricRepo.GetByID(ctx, id)
}

func (c *MetricController) ListByUser(ctx context.Context, userID string) ([]*HealthMetric, error) {
	return c.metricRepo.GetByUserID(ctx, userID)
}

func (c *MetricController) GetLatest(ctx context.Context, userID string) (*HealthMetric, error) {
	return c.metricRepo.GetLatestByUserID(ctx, userID)
}

func (c *MetricController) GetRange(
	ctx context.Context,
	userID string,
	from, to time.Time,
) ([]*HealthMetric, error) {
	log := c.log.Function("GetRange")

	if to.Before(from) {
		return nil, log.Err("range end precedes start", ErrValidation, "from", from, "to", to)
	}

	return c.metricRepo.GetByUserIDAndDateRange(ctx, userID, from, to)
}

func (c *MetricController) Delete(ctx context.Context, id string) error {
	return c.metricRepo.Delete(ctx, id)
}
