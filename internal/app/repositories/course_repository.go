package repositories

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ecakir/campushub/internal/app/models"
	"github.com/ecakir/campushub/internal/db"
	"github.com/ecakir/campushub/internal/pkg/apperrors"
	"github.com/ecakir/campushub/internal/pkg/dberrors"
	"github.com/ecakir/campushub/internal/pkg/logger"
)

// CourseRepository handles database operations for courses and their
// memberships
type CourseRepository struct {
	db db.Querier
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db db.Querier) *CourseRepository {
	return &CourseRepository{db: db}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	err := row.Scan(
		&c.ID, &c.Code, &c.Name, &c.Description, &c.Instructor,
		&c.Department, &c.Level, &c.Semester, &c.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts a new course. Course codes are unique.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (code, name, description, instructor, department, level, semester)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		course.Code, course.Name, course.Description, course.Instructor,
		course.Department, course.Level, course.Semester,
	).Scan(&course.ID, &course.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError("a course with this code already exists")
		}
		logger.Error().Err(err).Msg("Error executing create course query")
		return err
	}
	return nil
}

// GetAll retrieves all courses, optionally filtered by a case-insensitive
// search over code and name.
func (r *CourseRepository) GetAll(ctx context.Context, search *string) ([]models.Course, error) {
	builder := squirrel.Select(
		"id", "code", "name", "description", "instructor", "department", "level", "semester", "created_at",
	).From("courses").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if search != nil && strings.TrimSpace(*search) != "" {
		pattern := "%" + strings.TrimSpace(*search) + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"code": pattern},
			squirrel.ILike{"name": pattern},
		})
	}

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all courses SQL")
		return nil, err
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all courses query")
		return nil, err
	}
	defer rows.Close()

	courses := make([]models.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *c)
	}
	return courses, rows.Err()
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `
		SELECT id, code, name, description, instructor, department, level, semester, created_at
		FROM courses WHERE id = $1
	`
	return scanCourse(r.db.QueryRow(ctx, query, id))
}

// GetByUserID retrieves the courses a user has joined, most recently
// joined first.
func (r *CourseRepository) GetByUserID(ctx context.Context, userID int64) ([]models.Course, error) {
	query := `
		SELECT c.id, c.code, c.name, c.description, c.instructor, c.department, c.level, c.semester, c.created_at
		FROM courses c
		JOIN course_members cm ON cm.course_id = c.id
		WHERE cm.user_id = $1
		ORDER BY cm.joined_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get courses by user query")
		return nil, err
	}
	defer rows.Close()

	courses := make([]models.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *c)
	}
	return courses, rows.Err()
}

// AddMember enrolls a user in a course. The (course, user) pair is unique.
func (r *CourseRepository) AddMember(ctx context.Context, courseID, userID int64, role string) error {
	query := `INSERT INTO course_members (course_id, user_id, role) VALUES ($1, $2, $3)`
	_, err := r.db.Exec(ctx, query, courseID, userID, role)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyMember
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Msg("Error executing add course member query")
		return err
	}
	return nil
}

// RemoveMember drops a user's enrollment
func (r *CourseRepository) RemoveMember(ctx context.Context, courseID, userID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM course_members WHERE course_id = $1 AND user_id = $2`, courseID, userID)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing remove course member query")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMemberNotFound
	}
	return nil
}

// GetMembers retrieves the users enrolled in a course
func (r *CourseRepository) GetMembers(ctx context.Context, courseID int64) ([]models.User, error) {
	query := `
		SELECT u.id, u.email, u.first_name, u.last_name, u.major, u.profile_picture
		FROM course_members cm
		JOIN users u ON cm.user_id = u.id
		WHERE cm.course_id = $1
		ORDER BY cm.joined_at
	`
	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get course members query")
		return nil, err
	}
	defer rows.Close()

	members := make([]models.User, 0)
	for rows.Next() {
		var u models.User
		err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Major, &u.ProfilePicture)
		if err != nil {
			return nil, err
		}
		members = append(members, u)
	}
	return members, rows.Err()
}

// IsMember reports whether a user is enrolled in a course
func (r *CourseRepository) IsMember(ctx context.Context, courseID, userID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM course_members WHERE course_id = $1 AND user_id = $2)`
	if err := r.db.QueryRow(ctx, query, courseID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// CountByUserID returns the number of courses a user has joined
func (r *CourseRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM course_members WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}
