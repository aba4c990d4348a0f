package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ecakir/campushub/internal/app/models"
	"github.com/ecakir/campushub/internal/app/models/dto"
	"github.com/ecakir/campushub/internal/db"
	"github.com/ecakir/campushub/internal/pkg/apperrors"
	"github.com/ecakir/campushub/internal/pkg/dberrors"
	"github.com/ecakir/campushub/internal/pkg/logger"
)

// ResourceRepository handles database operations for course resources
type ResourceRepository struct {
	db db.Querier
}

// NewResourceRepository creates a new ResourceRepository
func NewResourceRepository(db db.Querier) *ResourceRepository {
	return &ResourceRepository{db: db}
}

// Common select query builder for resources with uploader and course joins
func (r *ResourceRepository) selectResourceQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"r.id", "r.title", "r.description", "r.type", "r.filename", "r.file_size", "r.mime_type",
		"r.course_id", "r.uploader_id", "r.downloads", "r.rating", "r.created_at",
		"u.id", "u.email", "u.first_name", "u.last_name", "u.profile_picture",
		"c.id", "c.code", "c.name",
	).From("resources r").
		Join("users u ON r.uploader_id = u.id").
		Join("courses c ON r.course_id = c.id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanResource(row pgx.Row) (*models.Resource, error) {
	var res models.Resource
	var uploader models.User
	var course models.Course
	err := row.Scan(
		&res.ID, &res.Title, &res.Description, &res.Type, &res.Filename, &res.FileSize, &res.MimeType,
		&res.CourseID, &res.UploaderID, &res.Downloads, &res.Rating, &res.CreatedAt,
		&uploader.ID, &uploader.Email, &uploader.FirstName, &uploader.LastName, &uploader.ProfilePicture,
		&course.ID, &course.Code, &course.Name,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, err
	}
	res.Uploader = &uploader
	res.Course = &course
	return &res, nil
}

// Create inserts a new resource row
func (r *ResourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	query := `
		INSERT INTO resources (title, description, type, filename, file_size, mime_type, course_id, uploader_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, downloads, rating, created_at
	`
	err := r.db.QueryRow(ctx, query,
		resource.Title, resource.Description, resource.Type, resource.Filename,
		resource.FileSize, resource.MimeType, resource.CourseID, resource.UploaderID,
	).Scan(&resource.ID, &resource.Downloads, &resource.Rating, &resource.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Msg("Error executing create resource query")
		return err
	}
	return nil
}

// GetAll retrieves resources with optional course and type filters applied
// additively, newest first.
func (r *ResourceRepository) GetAll(ctx context.Context, filter dto.ResourceFilter) ([]models.Resource, error) {
	builder := r.selectResourceQuery().OrderBy("r.created_at DESC")

	if filter.CourseID != nil {
		builder = builder.Where(squirrel.Eq{"r.course_id": *filter.CourseID})
	}
	if filter.Type != nil && *filter.Type != "" {
		builder = builder.Where(squirrel.Eq{"r.type": *filter.Type})
	}

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all resources SQL")
		return nil, err
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all resources query")
		return nil, err
	}
	defer rows.Close()

	resources := make([]models.Resource, 0)
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, *res)
	}
	return resources, rows.Err()
}

// GetByID retrieves a single resource with uploader and course details
func (r *ResourceRepository) GetByID(ctx context.Context, id int64) (*models.Resource, error) {
	sqlStr, args, err := r.selectResourceQuery().Where(squirrel.Eq{"r.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get resource by ID SQL")
		return nil, err
	}
	return scanResource(r.db.QueryRow(ctx, sqlStr, args...))
}

// IncrementDownloads bumps the download counter for a resource
func (r *ResourceRepository) IncrementDownloads(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE resources SET downloads = downloads + 1 WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Msg("Error incrementing resource downloads")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// CountByUploader returns the number of resources a user has uploaded
func (r *ResourceRepository) CountByUploader(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM resources WHERE uploader_id = $1`, userID).Scan(&count)
	return count, err
}
