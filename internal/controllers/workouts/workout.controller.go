package workoutController

import (
	"context"
	"healthdash/internal/logger"
	. "healthdash/internal/models"
	"healthdash/internal/repositories"
	"healthdash/internal/services"
	"time"
)

type WorkoutController struct {
	workoutRepo        repositories.WorkoutRepository
	setRepo            repositories.WorkoutSetRepository
	userRepo           repositories.UserRepository
	transactionService *services.TransactionService
	log                logger.Logger
}

func New(
	workoutRepo repositories.WorkoutRepository,
	setRepo repositories.WorkoutSetRepository,
	userRepo repositories.UserRepository,
	transactionService *services.TransactionService,
) *WorkoutController {
	return &WorkoutController{
		workoutRepo:        workoutRepo,
		setRepo:            setRepo,
		userRepo:           userRepo,
		transactionService: transactionService,
		log:                logger.New("WorkoutController"),
	}
}

// intensityFactor maps the named intensity to the fraction of threshold
// effort used by the training-stress estimate.
func intensityFactor(intensity *string) float64 {
	if intensity == nil {
		return 0.7
	}
	switch *intensity {
	case "low", "easy":
		return 0.55
	case "moderate", "medium":
		return 0.7
	case "high", "hard":
		return 0.85
	case "max":
		return 1.0
	}
	return 0.7
}

// computeTrainingStress estimates a stress score from duration and intensity:
// (minutes * IF^2 * 100) / 60, the conventional duration-weighted form.
func computeTrainingStress(durationMinutes *int, intensity *string) *float64 {
	if durationMinutes == nil || *durationMinutes <= 0 {
		return nil
	}
	factor := intensityFactor(intensity)
	score := float64(*durationMinutes) * factor * factor * 100 / 60
	return &score
}

func (c *WorkoutController) Create(ctx context.Context, request *CreateWorkoutRequest) (*Workout, error) {
	log := c.log.Function("Create")

	if request.UserID == "" || request.Title == "" || request.ActivityType == "" {
		return nil, log.Err("userId, title, and activityType are required", ErrValidation)
	}
	if request.Date.IsZero() {
		return nil, log.Err("date is required", ErrValidation)
	}

	exists, err := c.userRepo.Exists(ctx, request.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, log.Err("user does not exist", ErrNotFound, "userID", request.UserID)
	}

	workout := &Workout{
		UserID:            request.UserID,
		Title:             request.Title,
		Description:       request.Description,
		Date:              request.Date,
		StartTime:         request.StartTime,
		EndTime:           request.EndTime,
		ActivityType:      request.ActivityType,
		PlannedDistance:   request.PlannedDistance,
		ActualDistance:    request.ActualDistance,
		PlannedDuration:   request.PlannedDuration,
		ActualDuration:    request.ActualDuration,
		Intensity:         request.Intensity,
		FeelingScore:      request.FeelingScore,
		Notes:             request.Notes,
		IsRecurring:       request.IsRecurring,
		RecurrenceRule:    request.RecurrenceRule,
		RecurrenceEndDate: request.RecurrenceEndDate,
		CaloriesBurned:    request.CaloriesBurned,
		AvgHeartRate:      request.AvgHeartRate,
		MaxHeartRate:      request.MaxHeartRate,
	}

	duration := request.ActualDuration
	if duration == nil {
		duration = request.PlannedDuration
	}
	workout.TrainingStressScore = computeTrainingStress(duration, request.Intensity)

	for _, s := range request.Sets {
		if s.ExerciseName == "" {
			return nil, log.Err("set exerciseName is required", ErrValidation)
		}
		workout.Sets = append(workout.Sets, WorkoutSet{
			ExerciseName: s.ExerciseName,
			SetNumber:    s.SetNumber,
			Weight:       s.Weight,
			Reps:         s.Reps,
			Duration:     s.Duration,
			RestTime:     s.RestTime,
			Notes:        s.Notes,
		})
	}

	err = c.transactionService.Execute(ctx, func(txCtx context.Context) error {
		return c.workoutRepo.Create(txCtx, workout)
	})
	if err != nil {
		return nil, err
	}

	return workout, nil
}

func (c *WorkoutController) GetByID(ctx context.Context, id string) (*Workout, error) {
	return c.workoutRepo.GetByIDWithSets(ctx, id)
}

func (c *WorkoutController) ListByUser(ctx context.Context, userID string) ([]*Workout, error) {
	return c.workoutRepo.GetByUserID(ctx, userID)
}

func (c *WorkoutController) GetRange(
	ctx context.Context,
	userID string,
	from, to time.Time,
) ([]*Workout, error) {
	log := c.log.Function("GetRange")

	if to.Before(from) {
		return nil, log.Err("range end precedes start", ErrValidation, "from", from, "to", to)
	}

	return c.workoutRepo.GetByUserIDAndDateRange(ctx, userID, from, to)
}

// Complete marks the workout done and records actuals, recomputing the
// stress score from what actually happened.
func (c *WorkoutController) Complete(
	ctx context.Context,
	id string,
	actualDistance *float64,
	actualDuration *int,
	feelingScore *int,
) (*Workout, error) {
	workout, err := c.workoutRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	workout.IsCompleted = true
	if actualDistance != nil {
		workout.ActualDistance = actualDistance
	}
	if actualDuration != nil {
		workout.ActualDuration = actualDuration
		workout.TrainingStressScore = computeTrainingStress(actualDuration, workout.Intensity)
	}
	if feelingScore != nil {
		workout.FeelingScore = feelingScore
	}

	if err := c.workoutRepo.Update(ctx, workout); err != nil {
		return nil, err
	}

	return workout, nil
}

// Delete removes the workout and, through the cascade, its sets.
func (c *WorkoutController) Delete(ctx context.Context, id string) error {
	return c.workoutRepo.Delete(ctx, id)
}

func (c *WorkoutController) Sets(ctx context.Context, workoutID string) ([]*WorkoutSet, error) {
	if _, err := c.workoutRepo.GetByID(ctx, workoutID); err != nil {
		return nil, err
	}
	return c.setRepo.GetByWorkoutID(ctx, workoutID)
}

func (c *WorkoutController) DeleteSet(ctx context.Context, setID string) error {
	return c.setRepo.Delete(ctx, setID)
}
