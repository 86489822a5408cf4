package labResultController

import (
	"context"
	"errors"
	"fmt"
	"healthdash/internal/logger"
	. "healthdash/internal/models"
	"healthdash/internal/repositories"
	"healthdash/internal/services"
	"healthdash/internal/storage"

	"github.com/google/uuid"
)

type LabResultController struct {
	labResultRepo      repositories.LabResultRepository
	markerRepo         repositories.BloodworkMarkerRepository
	userRepo           repositories.UserRepository
	transactionService *services.TransactionService
	fileStorage        storage.FileStorage
	log                logger.Logger
}

func New(
	labResultRepo repositories.LabResultRepository,
	markerRepo repositories.BloodworkMarkerRepository,
	userRepo repositories.UserRepository,
	transactionService *services.TransactionService,
	fileStorage storage.FileStorage,
) *LabResultController {
	return &LabResultController{
		labResultRepo:      labResultRepo,
		markerRepo:         markerRepo,
		userRepo:           userRepo,
		transactionService: transactionService,
		fileStorage:        fileStorage,
		log:                logger.New("LabResultController"),
	}
}

func (c *LabResultController) Create(ctx context.Context, request *CreateLabResultRequest) (*LabResult, error) {
	log := c.log.Function("Create")

	if request.UserID == "" || request.Title == "" {
		return nil, log.Err("userId and title are required", ErrValidation)
	}

	exists, err := c.userRepo.Exists(ctx, request.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, log.Err("user does not exist", ErrNotFound, "userID", request.UserID)
	}

	labResult := &LabResult{
		UserID:      request.UserID,
		Title:       request.Title,
		Description: request.Description,
		FileURL:     request.FileURL,
		ResultDate:  request.ResultDate,
		Payload:     request.Payload,
		Status:      LabResultStatusPending,
	}

	if err := c.labResultRepo.Create(ctx, labResult); err != nil {
		return nil, err
	}

	return labResult, nil
}

func (c *LabResultController) GetByID(ctx context.Context, id string) (*LabResult, error) {
	return c.labResultRepo.GetByID(ctx, id)
}

func (c *LabResultController) GetWithMarkers(ctx context.Context, id string) (*LabResult, error) {
	return c.labResultRepo.GetByIDWithMarkers(ctx, id)
}

func (c *LabResultController) ListByUser(ctx context.Context, userID string) ([]*LabResult, error) {
	return c.labResultRepo.GetByUserID(ctx, userID)
}

func (c *LabResultController) Delete(ctx context.Context, id string) error {
	return c.labResultRepo.Delete(ctx, id)
}

// Process records the outcome of marker extraction for a pending result:
// inserts the extracted markers, sets the final status, and flips the
// processed flag, all in one transaction. A result is processed at most once
// and its status never returns to pending.
func (c *LabResultController) Process(
	ctx context.Context,
	labResultID string,
	status string,
	markers []CreateBloodworkMarkerRequest,
) (*LabResult, error) {
	log := c.log.Function("Process")

	if !ValidLabResultStatus(status) || status == LabResultStatusPending {
		return nil, log.Err("invalid processing status", ErrValidation, "status", status)
	}

	labResult, err := c.labResultRepo.GetByID(ctx, labResultID)
	if err != nil {
		return nil, err
	}

	err = c.transactionService.Execute(ctx, func(txCtx context.Context) error {
		// Claiming first keeps the at-most-once gate inside the transaction;
		// a racing Process loses the guarded update and rolls back.
		if err := c.labResultRepo.MarkProcessed(txCtx, labResultID, status); err != nil {
			if errors.Is(err, ErrAlreadyProcessed) {
				return log.Err("markers already extracted for this result",
					ErrAlreadyProcessed, "labResultID", labResultID)
			}
			return err
		}

		rows := make([]*BloodworkMarker, 0, len(markers))
		for _, m := range markers {
			if m.Name == "" || m.Value == "" {
				return log.Err("marker name and value are required", ErrValidation)
			}

			isAbnormal := DeriveMarkerAbnormal(m.Value, m.MinRange, m.MaxRange)
			if m.IsAbnormal != nil {
				isAbnormal = *m.IsAbnormal
			}

			rows = append(rows, &BloodworkMarker{
				LabResultID: labResultID,
				UserID:      labResult.UserID,
				Name:        m.Name,
				Value:       m.Value,
				Unit:        m.Unit,
				MinRange:    m.MinRange,
				MaxRange:    m.MaxRange,
				IsAbnormal:  isAbnormal,
				Category:    m.Category,
				ResultDate:  m.ResultDate,
			})
		}

		return c.markerRepo.CreateBatch(txCtx, rows)
	})
	if err != nil {
		return nil, err
	}

	labResult.Status = status
	labResult.Processed = true
	return labResult, nil
}

// RequestUploadURL hands the client a presigned PUT URL for the attachment.
func (c *LabResultController) RequestUploadURL(
	ctx context.Context,
	labResultID, contentType string,
) (uploadURL, objectKey string, err error) {
	log := c.log.Function("RequestUploadURL")

	labResult, err := c.labResultRepo.GetByID(ctx, labResultID)
	if err != nil {
		return "", "", err
	}

	objectKey = fmt.Sprintf("lab-results/%s/%s", labResult.UserID, uuid.New().String())
	uploadURL, err = c.fileStorage.GeneratePresignedUploadURL(
		ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", "", log.Err("failed to generate upload URL", err, "labResultID", labResultID)
	}

	return uploadURL, objectKey, nil
}

// AttachFile records the uploaded object reference on the result.
func (c *LabResultController) AttachFile(ctx context.Context, labResultID, objectKey string) (*LabResult, error) {
	log := c.log.Function("AttachFile")

	if objectKey == "" {
		return nil, log.Err("object key is required", ErrValidation)
	}

	labResult, err := c.labResultRepo.GetByID(ctx, labResultID)
	if err != nil {
		return nil, err
	}

	labResult.FileURL = &objectKey
	if err := c.labResultRepo.Update(ctx, labResult); err != nil {
		return nil, err
	}

	return labResult, nil
}

// DownloadURL returns a short-lived GET URL for the stored attachment.
func (c *LabResultController) DownloadURL(ctx context.Context, labResultID string) (string, error) {
	log := c.log.Function("DownloadURL")

	labResult, err := c.labResultRepo.GetByID(ctx, labResultID)
	if err != nil {
		return "", err
	}

	if labResult.FileURL == nil || *labResult.FileURL == "" {
		return "", log.Err("lab result has no attachment", ErrNotFound, "labResultID", labResultID)
	}

	url, err := c.fileStorage.GeneratePresignedDownloadURL(
		ctx, *labResult.FileURL, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", log.Err("failed to generate download URL", err, "labResultID", labResultID)
	}

	return url, nil
}

// Markers lists extracted markers for a result.
func (c *LabResultController) Markers(ctx context.Context, labResultID string) ([]*BloodworkMarker, error) {
	if _, err := c.labResultRepo.GetByID(ctx, labResultID); err != nil {
		return nil, err
	}
	return c.markerRepo.GetByLabResultID(ctx, labResultID)
}
