package services

import (
	"context"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/ecakir/campushub/internal/app/models"
	"github.com/ecakir/campushub/internal/app/models/dto"
	"github.com/ecakir/campushub/internal/pkg/filestorage"
)

type profileStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error)
	UpdateProfilePicture(ctx context.Context, userID int64, url string) error
	Search(ctx context.Context, query string, excludeUserID int64) ([]models.User, error)
}

// UserService defines the interface for profile operations
type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error)
	UpdateProfilePicture(ctx context.Context, userID int64, file *multipart.FileHeader) (*models.User, error)
	SearchUsers(ctx context.Context, query string, callerID int64) ([]models.User, error)
}

type userServiceImpl struct {
	userRepo profileStore
	storage  filestorage.FileStorage
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo profileStore, storage filestorage.FileStorage, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		storage:  storage,
		logger:   logger,
	}
}

// GetProfile returns a user's profile
func (s *userServiceImpl) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile applies a partial, whitelisted profile update
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.UpdateProfile(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("userId", userID).Msg("Profile updated")
	return user, nil
}

// UpdateProfilePicture stores the uploaded image and points the profile
// at it. The stored file is removed again if the database update fails.
func (s *userServiceImpl) UpdateProfilePicture(ctx context.Context, userID int64, file *multipart.FileHeader) (*models.User, error) {
	stored, err := s.storage.SaveFile(file)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to store profile picture")
		return nil, err
	}

	if err := s.userRepo.UpdateProfilePicture(ctx, userID, stored.URL); err != nil {
		if delErr := s.storage.DeleteFile(stored.Filename); delErr != nil {
			s.logger.Warn().Err(delErr).Str("filename", stored.Filename).Msg("Failed to clean up orphaned profile picture")
		}
		return nil, err
	}

	return s.userRepo.GetByID(ctx, userID)
}

// SearchUsers finds users matching the query, excluding the caller
func (s *userServiceImpl) SearchUsers(ctx context.Context, query string, callerID int64) ([]models.User, error) {
	if query == "" {
		return []models.User{}, nil
	}
	return s.userRepo.Search(ctx, query, callerID)
}
