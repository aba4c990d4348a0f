package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ecakir/campushub/internal/app/models"
	"github.com/ecakir/campushub/internal/db"
	"github.com/ecakir/campushub/internal/pkg/apperrors"
	"github.com/ecakir/campushub/internal/pkg/dberrors"
	"github.com/ecakir/campushub/internal/pkg/logger"
)

const calendarEventColumns = `id, title, description, type, start_date, end_date, all_day,
	location, user_id, course_id, study_group_id, priority, is_completed, reminder_minutes,
	created_at, updated_at`

// CalendarRepository handles database operations for calendar events
type CalendarRepository struct {
	db db.Querier
}

// NewCalendarRepository creates a new CalendarRepository
func NewCalendarRepository(db db.Querier) *CalendarRepository {
	return &CalendarRepository{db: db}
}

func scanCalendarEvent(row pgx.Row) (*models.CalendarEvent, error) {
	var ev models.CalendarEvent
	err := row.Scan(
		&ev.ID, &ev.Title, &ev.Description, &ev.Type, &ev.StartDate, &ev.EndDate, &ev.AllDay,
		&ev.Location, &ev.UserID, &ev.CourseID, &ev.StudyGroupID, &ev.Priority,
		&ev.IsCompleted, &ev.ReminderMinutes, &ev.CreatedAt, &ev.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return &ev, nil
}

// Create inserts a new calendar event
func (r *CalendarRepository) Create(ctx context.Context, ev *models.CalendarEvent) error {
	if err := insertCalendarEvent(ctx, r.db, ev); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Msg("Error executing create calendar event query")
		return err
	}
	return nil
}

// GetByUserID retrieves a user's events ordered by start date, optionally
// restricted to an inclusive date range, each joined with its optional
// course and study group.
func (r *CalendarRepository) GetByUserID(ctx context.Context, userID int64, start, end *time.Time) ([]models.CalendarEvent, error) {
	builder := squirrel.Select(
		"e.id", "e.title", "e.description", "e.type", "e.start_date", "e.end_date", "e.all_day",
		"e.location", "e.user_id", "e.course_id", "e.study_group_id", "e.priority", "e.is_completed",
		"e.reminder_minutes", "e.created_at", "e.updated_at",
		"c.id", "c.code", "c.name",
		"g.id", "g.name",
	).From("calendar_events e").
		LeftJoin("courses c ON e.course_id = c.id").
		LeftJoin("study_groups g ON e.study_group_id = g.id").
		Where(squirrel.Eq{"e.user_id": userID}).
		OrderBy("e.start_date").
		PlaceholderFormat(squirrel.Dollar)

	if start != nil {
		builder = builder.Where(squirrel.GtOrEq{"e.start_date": *start})
	}
	if end != nil {
		builder = builder.Where(squirrel.LtOrEq{"e.start_date": *end})
	}

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get calendar events SQL")
		return nil, err
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get calendar events query")
		return nil, err
	}
	defer rows.Close()

	events := make([]models.CalendarEvent, 0)
	for rows.Next() {
		var ev models.CalendarEvent
		var courseID *int64
		var courseCode, courseName *string
		var groupID *int64
		var groupName *string
		err := rows.Scan(
			&ev.ID, &ev.Title, &ev.Description, &ev.Type, &ev.StartDate, &ev.EndDate, &ev.AllDay,
			&ev.Location, &ev.UserID, &ev.CourseID, &ev.StudyGroupID, &ev.Priority,
			&ev.IsCompleted, &ev.ReminderMinutes, &ev.CreatedAt, &ev.UpdatedAt,
			&courseID, &courseCode, &courseName,
			&groupID, &groupName,
		)
		if err != nil {
			return nil, err
		}
		if courseID != nil {
			ev.Course = &models.Course{ID: *courseID, Code: *courseCode, Name: *courseName}
		}
		if groupID != nil {
			ev.StudyGroup = &models.StudyGroup{ID: *groupID, Name: *groupName}
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// GetByID retrieves a single event
func (r *CalendarRepository) GetByID(ctx context.Context, id int64) (*models.CalendarEvent, error) {
	query := `SELECT ` + calendarEventColumns + ` FROM calendar_events WHERE id = $1`
	return scanCalendarEvent(r.db.QueryRow(ctx, query, id))
}

// Update rewrites an event's editable fields
func (r *CalendarRepository) Update(ctx context.Context, ev *models.CalendarEvent) error {
	query := `
		UPDATE calendar_events SET
			title = $2, description = $3, type = $4, start_date = $5, end_date = $6,
			all_day = $7, location = $8, priority = $9, is_completed = $10,
			reminder_minutes = $11, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		ev.ID, ev.Title, ev.Description, ev.Type, ev.StartDate, ev.EndDate,
		ev.AllDay, ev.Location, ev.Priority, ev.IsCompleted, ev.ReminderMinutes,
	).Scan(&ev.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.ErrEventNotFound
		}
		logger.Error().Err(err).Msg("Error executing update calendar event query")
		return err
	}
	return nil
}

// SetCompleted flips an event's completion flag
func (r *CalendarRepository) SetCompleted(ctx context.Context, id int64, completed bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE calendar_events SET is_completed = $2, updated_at = now() WHERE id = $1`,
		id, completed)
	if err != nil {
		logger.Error().Err(err).Msg("Error updating calendar event completion")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// Delete removes an event
func (r *CalendarRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM calendar_events WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Msg("Error deleting calendar event")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// GetUpcoming retrieves a user's not-completed events starting inside
// [from, until), soonest first.
func (r *CalendarRepository) GetUpcoming(ctx context.Context, userID int64, from, until time.Time) ([]models.CalendarEvent, error) {
	query := `
		SELECT ` + calendarEventColumns + `
		FROM calendar_events
		WHERE user_id = $1 AND NOT is_completed AND start_date >= $2 AND start_date < $3
		ORDER BY start_date
	`
	rows, err := r.db.Query(ctx, query, userID, from, until)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get upcoming events query")
		return nil, err
	}
	defer rows.Close()

	events := make([]models.CalendarEvent, 0)
	for rows.Next() {
		ev, err := scanCalendarEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}
	return events, rows.Err()
}
