package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecakir/campushub/internal/app/models"
	"github.com/ecakir/campushub/internal/app/models/dto"
	"github.com/ecakir/campushub/internal/pkg/apperrors"
	"github.com/ecakir/campushub/internal/pkg/auth"
)

// userStore is the slice of the user repository the auth service needs
type userStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// sessionStore is the slice of the session repository the auth service needs
type sessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
}

// AuthService defines the interface for registration, login and
// session resolution
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, *models.Session, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*models.User, *models.Session, error)
	Logout(ctx context.Context, token string) error
	ResolveSession(ctx context.Context, token string) (*models.User, error)
}

type authServiceImpl struct {
	userRepo    userStore
	sessionRepo sessionStore
	sessionTTL  time.Duration
	now         func() time.Time
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo userStore, sessionRepo sessionStore, sessionTTL time.Duration, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		sessionTTL:  sessionTTL,
		now:         time.Now,
		logger:      logger,
	}
}

// Register creates a user with a hashed password and opens a session
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, *models.Session, error) {
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, nil, err
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Major:     req.Major,
		Year:      req.Year,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	session, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info().Int64("userId", user.ID).Str("email", user.Email).Msg("User registered")
	return user, session, nil
}

// Login verifies credentials and opens a fresh session
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, *models.Session, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	session, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info().Int64("userId", user.ID).Msg("User logged in")
	return user, session, nil
}

// Logout deletes the session row. Unknown tokens are ignored so logout
// is idempotent.
func (s *authServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessionRepo.Delete(ctx, token)
}

// ResolveSession maps a cookie token to its user. Expired sessions are
// deleted lazily and reported as missing.
func (s *authServiceImpl) ResolveSession(ctx context.Context, token string) (*models.User, error) {
	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if session.Expired(s.now()) {
		if delErr := s.sessionRepo.Delete(ctx, token); delErr != nil {
			s.logger.Warn().Err(delErr).Msg("Failed to delete expired session")
		}
		return nil, apperrors.ErrSessionExpired
	}

	return s.userRepo.GetByID(ctx, session.UserID)
}

func (s *authServiceImpl) openSession(ctx context.Context, userID int64) (*models.Session, error) {
	session := &models.Session{
		Token:     auth.NewSessionToken(),
		UserID:    userID,
		ExpiresAt: s.now().Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		s.logger.Error().Err(err).Int64("userId", userID).Msg("Failed to create session")
		return nil, err
	}
	return session, nil
}
