package service

import (
	"bytes"
	"context"
	"errors"
	"log"
	"path"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pulsemind/fitness-coach/internal/domain"
	"pulsemind/fitness-coach/internal/export"
	"pulsemind/fitness-coach/internal/repository"
	"pulsemind/fitness-coach/internal/storage"
)

const exportContentType = "application/pdf"

// ExportService renders plans to PDF, stores them and hands out
// short-lived download links.
type ExportService interface {
	ExportPlan(ctx context.Context, planID primitive.ObjectID, userID string) (*domain.Export, string, error)
	GetUserExports(ctx context.Context, userID string) ([]domain.Export, error)
	DownloadURL(ctx context.Context, exp *domain.Export) (string, error)
}

type exportService struct {
	planRepo    repository.PlanRepository
	exportRepo  repository.ExportRepository
	userRepo    repository.UserRepository
	fileStorage storage.FileStorage
}

// NewExportService creates a new instance of exportService.
func NewExportService(planRepo repository.PlanRepository, exportRepo repository.ExportRepository, userRepo repository.UserRepository, fileStorage storage.FileStorage) ExportService {
	return &exportService{
		planRepo:    planRepo,
		exportRepo:  exportRepo,
		userRepo:    userRepo,
		fileStorage: fileStorage,
	}
}

// ExportPlan renders the plan as a PDF, uploads it and records the
// export. Returns the metadata and a presigned download URL.
func (s *exportService) ExportPlan(ctx context.Context, planID primitive.ObjectID, userID string) (*domain.Export, string, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrPlanAccessDenied
		}
		return nil, "", err
	}
	if plan.UserID != userID {
		return nil, "", ErrPlanAccessDenied
	}

	// The owner's display name goes on the document; a lookup failure
	// just leaves it off.
	userName := ""
	if user, err := s.userRepo.GetByExternalAuthID(ctx, userID); err == nil {
		userName = user.Name
	}

	pdfBytes, err := export.RenderPlanPDF(plan, userName)
	if err != nil {
		return nil, "", err
	}

	objectKey := path.Join("exports", userID, uuid.NewString()+".pdf")
	if err := s.fileStorage.UploadObject(ctx, objectKey, exportContentType, bytes.NewReader(pdfBytes)); err != nil {
		return nil, "", err
	}

	exp := &domain.Export{
		UserID:      userID,
		PlanID:      plan.ID,
		S3ObjectKey: objectKey,
		FileName:    export.FileName(plan.Name),
		ContentType: exportContentType,
		Size:        int64(len(pdfBytes)),
	}
	if _, err := s.exportRepo.Create(ctx, exp); err != nil {
		// The object is orphaned if the metadata insert fails; drop it.
		if delErr := s.fileStorage.DeleteObject(ctx, objectKey); delErr != nil {
			log.Printf("ERROR: Failed to clean up orphaned export object %s: %v", objectKey, delErr)
		}
		return nil, "", err
	}

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, "", err
	}
	return exp, url, nil
}

// GetUserExports lists the user's past exports, newest first.
func (s *exportService) GetUserExports(ctx context.Context, userID string) ([]domain.Export, error) {
	return s.exportRepo.GetByUserID(ctx, userID)
}

// DownloadURL issues a fresh presigned link for a stored export.
func (s *exportService) DownloadURL(ctx context.Context, exp *domain.Export) (string, error) {
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, exp.S3ObjectKey, 15*time.Minute)
}
