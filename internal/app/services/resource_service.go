package services

import (
	"context"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/ecakir/campushub/internal/app/models"
	"github.com/ecakir/campushub/internal/app/models/dto"
	"github.com/ecakir/campushub/internal/pkg/apperrors"
	"github.com/ecakir/campushub/internal/pkg/filestorage"
)

type resourceStore interface {
	Create(ctx context.Context, resource *models.Resource) error
	GetAll(ctx context.Context, filter dto.ResourceFilter) ([]models.Resource, error)
	GetByID(ctx context.Context, id int64) (*models.Resource, error)
	IncrementDownloads(ctx context.Context, id int64) error
}

// ResourceDownload carries what a controller needs to serve a stored file
type ResourceDownload struct {
	Resource *models.Resource
	Path     string
}

// ResourceService defines the interface for resource upload, listing
// and download
type ResourceService interface {
	Upload(ctx context.Context, req *dto.CreateResourceRequest, file *multipart.FileHeader, uploaderID int64) (*models.Resource, error)
	GetResources(ctx context.Context, filter dto.ResourceFilter) ([]models.Resource, error)
	Download(ctx context.Context, id int64) (*ResourceDownload, error)
}

type resourceServiceImpl struct {
	resourceRepo  resourceStore
	storage       filestorage.FileStorage
	maxUploadSize int64
	logger        zerolog.Logger
}

// NewResourceService creates a new ResourceService
func NewResourceService(resourceRepo resourceStore, storage filestorage.FileStorage, maxUploadSize int64, logger zerolog.Logger) ResourceService {
	return &resourceServiceImpl{
		resourceRepo:  resourceRepo,
		storage:       storage,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

// Upload stores the file and records the resource. The stored file is
// removed again if the insert fails so no orphans stay on disk.
func (s *resourceServiceImpl) Upload(ctx context.Context, req *dto.CreateResourceRequest, file *multipart.FileHeader, uploaderID int64) (*models.Resource, error) {
	if file.Size > s.maxUploadSize {
		return nil, apperrors.ErrFileTooLarge
	}

	stored, err := s.storage.SaveFile(file)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to store resource file")
		return nil, err
	}

	var mimeType *string
	if stored.MimeType != "" {
		mimeType = &stored.MimeType
	}
	resource := &models.Resource{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Filename:    stored.Filename,
		FileSize:    stored.Size,
		MimeType:    mimeType,
		CourseID:    req.CourseID,
		UploaderID:  uploaderID,
	}
	if err := s.resourceRepo.Create(ctx, resource); err != nil {
		if delErr := s.storage.DeleteFile(stored.Filename); delErr != nil {
			s.logger.Warn().Err(delErr).Str("filename", stored.Filename).Msg("Failed to clean up orphaned resource file")
		}
		return nil, err
	}

	s.logger.Info().Int64("resourceId", resource.ID).Int64("courseId", resource.CourseID).Msg("Resource uploaded")
	return resource, nil
}

// GetResources lists resources with the optional filters applied
func (s *resourceServiceImpl) GetResources(ctx context.Context, filter dto.ResourceFilter) ([]models.Resource, error) {
	return s.resourceRepo.GetAll(ctx, filter)
}

// Download resolves a resource to its on-disk path and bumps the
// download counter. A row whose backing file vanished is missing too.
func (s *resourceServiceImpl) Download(ctx context.Context, id int64) (*ResourceDownload, error) {
	resource, err := s.resourceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.storage.Exists(resource.Filename) {
		s.logger.Warn().Int64("resourceId", id).Str("filename", resource.Filename).Msg("Resource file missing on disk")
		return nil, apperrors.ErrFileNotFound
	}

	if err := s.resourceRepo.IncrementDownloads(ctx, id); err != nil {
		return nil, err
	}
	resource.Downloads++

	return &ResourceDownload{
		Resource: resource,
		Path:     s.storage.FullPath(resource.Filename),
	}, nil
}
