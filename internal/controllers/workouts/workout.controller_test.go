package workoutController

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"healthdash/internal/database"
	. "healthdash/internal/models"
	"healthdash/internal/repositories"
	"healthdash/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestController(t *testing.T) (*WorkoutController, database.DB) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on"
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&User{}, &Workout{}, &WorkoutSet{}))

	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	db := database.DB{SQL: gormDB}
	controller := New(
		repositories.NewWorkout(db),
		repositories.NewWorkoutSet(db),
		repositories.NewUser(db),
		services.NewTransactionService(db),
	)
	return controller, db
}

func seedUser(t *testing.T, db database.DB, id string) User {
	t.Helper()

	email := id + "@example.com"
	user := User{ID: id, Email: &email}
	require.NoError(t, db.SQL.Create(&user).Error)
	return user
}

func stringPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

func TestComputeTrainingStress(t *testing.T) {
	tests := []struct {
		name      string
		duration  *int
		intensity *string
		expected  float64
		isNil     bool
	}{
		{
			name:      "one hour moderate",
			duration:  intPtr(60),
			intensity: stringPtr("moderate"),
			expected:  49,
		},
		{
			name:      "one hour max effort",
			duration:  intPtr(60),
			intensity: stringPtr("max"),
			expected:  100,
		},
		{
			name:      "thirty minutes high",
			duration:  intPtr(30),
			intensity: stringPtr("high"),
			expected:  36.125,
		},
		{
			name:     "missing intensity defaults to moderate",
			duration: intPtr(60),
			expected: 49,
		},
		{
			name:      "unknown intensity defaults to moderate",
			duration:  intPtr(60),
			intensity: stringPtr("extreme"),
			expected:  49,
		},
		{
			name:      "no duration yields no score",
			intensity: stringPtr("high"),
			isNil:     true,
		},
		{
			name:      "zero duration yields no score",
			duration:  intPtr(0),
			intensity: stringPtr("high"),
			isNil:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := computeTrainingStress(tt.duration, tt.intensity)
			if tt.isNil {
				assert.Nil(t, score)
				return
			}
			require.NotNil(t, score)
			assert.InDelta(t, tt.expected, *score, 0.0001)
		})
	}
}

func TestCreate_ComputesStressFromPlannedDuration(t *testing.T) {
	controller, db := newTestController(t)
	ctx := context.Background()
	user := seedUser(t, db, "user-tss")

	workout, err := controller.Create(ctx, &CreateWorkoutRequest{
		UserID:          user.ID,
		Title:           "Tempo run",
		ActivityType:    "run",
		Date:            time.Now(),
		PlannedDuration: intPtr(60),
		Intensity:       stringPtr("high"),
	})
	require.NoError(t, err)
	require.NotNil(t, workout.TrainingStressScore)
	assert.InDelta(t, 72.25, *workout.TrainingStressScore, 0.0001)
}

func TestCreate_WithSets(t *testing.T) {
	controller, db := newTestController(t)
	ctx := context.Background()
	user := seedUser(t, db, "user-create-sets")

	weight := 80.0
	workout, err := controller.Create(ctx, &CreateWorkoutRequest{
		UserID:       user.ID,
		Title:        "Push day",
		ActivityType: "strength",
		Date:         time.Now(),
		Sets: []CreateWorkoutSetRequest{
			{ExerciseName: "Bench press", SetNumber: 1, Weight: &weight, Reps: intPtr(8)},
			{ExerciseName: "Bench press", SetNumber: 2, Weight: &weight, Reps: intPtr(6)},
		},
	})
	require.NoError(t, err)

	full, err := controller.GetByID(ctx, workout.ID)
	require.NoError(t, err)
	require.Len(t, full.Sets, 2)
	assert.Equal(t, workout.ID, full.Sets[0].WorkoutID)
}

func TestCreate_Validation(t *testing.T) {
	controller, db := newTestController(t)
	ctx := context.Background()
	user := seedUser(t, db, "user-invalid")

	_, err := controller.Create(ctx, &CreateWorkoutRequest{
		UserID: user.ID,
		Title:  "No activity",
		Date:   time.Now(),
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = controller.Create(ctx, &CreateWorkoutRequest{
		UserID:       user.ID,
		Title:        "No date",
		ActivityType: "run",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = controller.Create(ctx, &CreateWorkoutRequest{
		UserID:       user.ID,
		Title:        "Bad set",
		ActivityType: "strength",
		Date:         time.Now(),
		Sets:         []CreateWorkoutSetRequest{{SetNumber: 1}},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestComplete_RecomputesStressFromActuals(t *testing.T) {
	controller, db := newTestController(t)
	ctx := context.Background()
	user := seedUser(t, db, "user-complete")

	workout, err := controller.Create(ctx, &CreateWorkoutRequest{
		UserID:          user.ID,
		Title:           "Long ride",
		ActivityType:    "cycling",
		Date:            time.Now(),
		PlannedDuration: intPtr(120),
		Intensity:       stringPtr("moderate"),
	})
	require.NoError(t, err)
	require.NotNil(t, workout.TrainingStressScore)
	assert.InDelta(t, 98, *workout.TrainingStressScore, 0.0001)

	distance := 52.5
	feeling := 7
	completed, err := controller.Complete(ctx, workout.ID, &distance, intPtr(90), &feeling)
	require.NoError(t, err)
	assert.True(t, completed.IsCompleted)
	require.NotNil(t, completed.ActualDuration)
	assert.Equal(t, 90, *completed.ActualDuration)
	require.NotNil(t, completed.TrainingStressScore)
	assert.InDelta(t, 73.5, *completed.TrainingStressScore, 0.0001)
	require.NotNil(t, completed.FeelingScore)
	assert.Equal(t, 7, *completed.FeelingScore)
}

func TestGetRange_RejectsInvertedRange(t *testing.T) {
	controller, db := newTestController(t)
	user := seedUser(t, db, "user-bad-range")

	now := time.Now()
	_, err := controller.GetRange(context.Background(), user.ID, now, now.AddDate(0, 0, -7))
	assert.ErrorIs(t, err, ErrValidation)
}
