package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/ecakir/campushub/internal/app/models"
	"github.com/ecakir/campushub/internal/db"
	"github.com/ecakir/campushub/internal/pkg/apperrors"
	"github.com/ecakir/campushub/internal/pkg/logger"
)

// SessionRepository handles database operations for login sessions
type SessionRepository struct {
	db db.Querier
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db db.Querier) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create persists a new session
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (token, user_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query, session.Token, session.UserID, session.ExpiresAt).
		Scan(&session.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create session query")
		return err
	}
	return nil
}

// GetByToken retrieves a session by its token
func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	var s models.Session
	query := `SELECT token, user_id, created_at, expires_at FROM sessions WHERE token = $1`
	err := r.db.QueryRow(ctx, query, token).Scan(&s.Token, &s.UserID, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrSessionNotFound
		}
		logger.Error().Err(err).Msg("Error executing get session query")
		return nil, err
	}
	return &s, nil
}

// Delete removes a session. Deleting a missing token is not an error.
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		logger.Error().Err(err).Msg("Error deleting session")
	}
	return err
}

// DeleteExpired removes sessions past their expiry and reports how many
// rows were deleted.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at < now()`)
	if err != nil {
		logger.Error().Err(err).Msg("Error deleting expired sessions")
		return 0, err
	}
	return tag.RowsAffected(), nil
}
