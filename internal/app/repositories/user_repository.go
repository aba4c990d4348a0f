package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ecakir/campushub/internal/app/models"
	"github.com/ecakir/campushub/internal/app/models/dto"
	"github.com/ecakir/campushub/internal/db"
	"github.com/ecakir/campushub/internal/pkg/apperrors"
	"github.com/ecakir/campushub/internal/pkg/dberrors"
	"github.com/ecakir/campushub/internal/pkg/logger"
)

const userColumns = `id, email, password, first_name, last_name, major, year, bio,
	graduation_year, location, profile_picture, created_at, updated_at`

// UserRepository handles database operations for users
type UserRepository struct {
	db db.Querier
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db db.Querier) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName,
		&u.Major, &u.Year, &u.Bio, &u.GraduationYear, &u.Location,
		&u.ProfilePicture, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user and fills in the generated ID and timestamps.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password, first_name, last_name, major, year)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		user.Email, user.Password, user.FirstName, user.LastName, user.Major, user.Year,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create user query")
		return err
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return scanUser(r.db.QueryRow(ctx, query, id))
}

// GetByEmail retrieves a user by email, matched case-insensitively.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE lower(email) = lower($1)`, userColumns)
	return scanUser(r.db.QueryRow(ctx, query, email))
}

// UpdateProfile applies the non-nil fields of the request to the user row
// and returns the updated user.
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error) {
	builder := squirrel.Update("users").
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": userID}).
		Suffix("RETURNING " + userColumns).
		PlaceholderFormat(squirrel.Dollar)

	if req.FirstName != nil {
		builder = builder.Set("first_name", *req.FirstName)
	}
	if req.LastName != nil {
		builder = builder.Set("last_name", *req.LastName)
	}
	if req.Major != nil {
		builder = builder.Set("major", *req.Major)
	}
	if req.Year != nil {
		builder = builder.Set("year", *req.Year)
	}
	if req.Bio != nil {
		builder = builder.Set("bio", *req.Bio)
	}
	if req.GraduationYear != nil {
		builder = builder.Set("graduation_year", *req.GraduationYear)
	}
	if req.Location != nil {
		builder = builder.Set("location", *req.Location)
	}

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update profile SQL")
		return nil, err
	}

	return scanUser(r.db.QueryRow(ctx, sqlStr, args...))
}

// UpdateProfilePicture stores the URL of the user's profile picture.
func (r *UserRepository) UpdateProfilePicture(ctx context.Context, userID int64, url string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET profile_picture = $1, updated_at = now() WHERE id = $2`, url, userID)
	if err != nil {
		logger.Error().Err(err).Msg("Error updating profile picture")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Search finds users whose name, email or major matches the query,
// excluding the searching user. Matching is case-insensitive substring.
func (r *UserRepository) Search(ctx context.Context, query string, excludeUserID int64) ([]models.User, error) {
	pattern := "%" + strings.TrimSpace(query) + "%"
	sqlStr := fmt.Sprintf(`
		SELECT %s FROM users
		WHERE id <> $1
		  AND (first_name ILIKE $2 OR last_name ILIKE $2 OR email ILIKE $2 OR major ILIKE $2
		       OR (first_name || ' ' || last_name) ILIKE $2)
		ORDER BY first_name, last_name
		LIMIT 20
	`, userColumns)

	rows, err := r.db.Query(ctx, sqlStr, excludeUserID, pattern)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing user search query")
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}
