package repositories

import (
	"context"
	"testing"
	"time"

	. "healthdash/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkoutRepository_GetByIDWithSetsOrdered(t *testing.T) {
	db := newTestDB(t)
	workoutRepo := NewWorkout(db)
	setRepo := NewWorkoutSet(db)
	ctx := context.Background()

	user := seedUser(t, db, "user-sets")

	workout := Workout{
		UserID:       user.ID,
		Title:        "Push day",
		ActivityType: "strength",
		Date:         time.Now(),
	}
	require.NoError(t, workoutRepo.Create(ctx, &workout))

	// Inserted out of order on purpose
	require.NoError(t, setRepo.CreateBatch(ctx, []*WorkoutSet{
		{WorkoutID: workout.ID, ExerciseName: "Bench press", SetNumber: 3},
		{WorkoutID: workout.ID, ExerciseName: "Bench press", SetNumber: 1},
		{WorkoutID: workout.ID, ExerciseName: "Bench press", SetNumber: 2},
	}))

	got, err := workoutRepo.GetByIDWithSets(ctx, workout.ID)
	require.NoError(t, err)
	require.Len(t, got.Sets, 3)
	assert.Equal(t, 1, got.Sets[0].SetNumber)
	assert.Equal(t, 2, got.Sets[1].SetNumber)
	assert.Equal(t, 3, got.Sets[2].SetNumber)
}

func TestWorkoutRepository_DeleteCascadesSets(t *testing.T) {
	db := newTestDB(t)
	workoutRepo := NewWorkout(db)
	setRepo := NewWorkoutSet(db)
	ctx := context.Background()

	user := seedUser(t, db, "user-cascade")

	workout := Workout{
		UserID:       user.ID,
		Title:        "Leg day",
		ActivityType: "strength",
		Date:         time.Now(),
	}
	require.NoError(t, workoutRepo.Create(ctx, &workout))
	require.NoError(t, setRepo.CreateBatch(ctx, []*WorkoutSet{
		{WorkoutID: workout.ID, ExerciseName: "Squat", SetNumber: 1},
	}))

	require.NoError(t, workoutRepo.Delete(ctx, workout.ID))

	count, err := setRepo.CountByWorkoutID(ctx, workout.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestWorkoutRepository_DeleteUnknown(t *testing.T) {
	db := newTestDB(t)
	repo := NewWorkout(db)

	err := repo.Delete(context.Background(), "no-such-workout")
	assert.ErrorIs(t, err, ErrNotFound)
}
