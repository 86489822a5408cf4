package repositories

import (
	"context"
	"testing"

	. "healthdash/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabResultRepository_GetByIDWithMarkers(t *testing.T) {
	db := newTestDB(t)
	resultRepo := NewLabResult(db)
	markerRepo := NewBloodworkMarker(db)
	ctx := context.Background()

	user := seedUser(t, db, "user-lab")

	result := LabResult{UserID: user.ID, Title: "Metabolic panel"}
	require.NoError(t, resultRepo.Create(ctx, &result))

	markers := []*BloodworkMarker{
		{LabResultID: result.ID, UserID: user.ID, Name: "Glucose", Value: "92"},
		{LabResultID: result.ID, UserID: user.ID, Name: "Sodium", Value: "140"},
	}
	require.NoError(t, markerRepo.CreateBatch(ctx, markers))

	got, err := resultRepo.GetByIDWithMarkers(ctx, result.ID)
	require.NoError(t, err)
	assert.Len(t, got.Markers, 2)

	// The plain read leaves markers unloaded
	bare, err := resultRepo.GetByID(ctx, result.ID)
	require.NoError(t, err)
	assert.Empty(t, bare.Markers)
}

func TestLabResultRepository_MarkProcessed_ClaimsOnce(t *testing.T) {
	db := newTestDB(t)
	repo := NewLabResult(db)
	ctx := context.Background()

	user := seedUser(t, db, "user-claim")
	result := LabResult{UserID: user.ID, Title: "CBC"}
	require.NoError(t, repo.Create(ctx, &result))

	require.NoError(t, repo.MarkProcessed(ctx, result.ID, LabResultStatusNormal))

	got, err := repo.GetByID(ctx, result.ID)
	require.NoError(t, err)
	assert.True(t, got.Processed)
	assert.Equal(t, LabResultStatusNormal, got.Status)

	// Second claim loses the processed = false guard
	err = repo.MarkProcessed(ctx, result.ID, LabResultStatusAbnormal)
	assert.ErrorIs(t, err, ErrAlreadyProcessed)

	got, err = repo.GetByID(ctx, result.ID)
	require.NoError(t, err)
	assert.Equal(t, LabResultStatusNormal, got.Status)
}

func TestLabResultRepository_MarkProcessedUnknown(t *testing.T) {
	db := newTestDB(t)
	repo := NewLabResult(db)

	err := repo.MarkProcessed(context.Background(), "no-such-result", LabResultStatusNormal)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLabResultRepository_DeleteUnknown(t *testing.T) {
	db := newTestDB(t)
	repo := NewLabResult(db)

	err := repo.Delete(context.Background(), "no-such-result")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLabResultRepository_DeleteRemovesMarkers(t *testing.T) {
	db := newTestDB(t)
	resultRepo := NewLabResult(db)
	markerRepo := NewBloodworkMarker(db)
	ctx := context.Background()

	user := seedUser(t, db, "user-lab-del")

	result := LabResult{UserID: user.ID, Title: "Lipid panel"}
	require.NoError(t, resultRepo.Create(ctx, &result))
	require.NoError(t, markerRepo.CreateBatch(ctx, []*BloodworkMarker{
		{LabResultID: result.ID, UserID: user.ID, Name: "LDL", Value: "130"},
	}))

	require.NoError(t, resultRepo.Delete(ctx, result.ID))

	count, err := markerRepo.CountByLabResultID(ctx, result.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestBloodworkMarkerRepository_AbnormalByUser(t *testing.T) {
	db := newTestDB(t)
	resultRepo := NewLabResult(db)
	markerRepo := NewBloodworkMarker(db)
	ctx := context.Background()

	user := seedUser(t, db, "user-abnormal")

	result := LabResult{UserID: user.ID, Title: "Panel"}
	require.NoError(t, resultRepo.Create(ctx, &result))
	require.NoError(t, markerRepo.CreateBatch(ctx, []*BloodworkMarker{
		{LabResultID: result.ID, UserID: user.ID, Name: "Glucose", Value: "92"},
		{LabResultID: result.ID, UserID: user.ID, Name: "LDL", Value: "190", IsAbnormal: true},
	}))

	abnormal, err := markerRepo.GetAbnormalByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, abnormal, 1)
	assert.Equal(t, "LDL", abnormal[0].Name)
}
