package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/ecakir/campushub/internal/app/models"
	"github.com/ecakir/campushub/internal/db"
	"github.com/ecakir/campushub/internal/pkg/apperrors"
	"github.com/ecakir/campushub/internal/pkg/dberrors"
	"github.com/ecakir/campushub/internal/pkg/logger"
)

const studyGroupColumns = `g.id, g.name, g.description, g.course_id, g.creator_id, g.max_members,
	g.schedule, g.location, g.meeting_date, g.end_date, g.is_recurring, g.recurring_pattern,
	g.is_active, g.created_at`

// StudyGroupRepository handles database operations for study groups, their
// memberships and the calendar rows that mirror group meetings. Membership
// changes and event propagation run in one transaction so a group never
// ends up with members whose calendars disagree with it.
type StudyGroupRepository struct {
	db *db.PostgresDB
}

// NewStudyGroupRepository creates a new StudyGroupRepository
func NewStudyGroupRepository(database *db.PostgresDB) *StudyGroupRepository {
	return &StudyGroupRepository{db: database}
}

func scanStudyGroup(row pgx.Row, extra ...any) (*models.StudyGroup, error) {
	var g models.StudyGroup
	dest := []any{
		&g.ID, &g.Name, &g.Description, &g.CourseID, &g.CreatorID, &g.MaxMembers,
		&g.Schedule, &g.Location, &g.MeetingDate, &g.EndDate, &g.IsRecurring,
		&g.RecurringPattern, &g.IsActive, &g.CreatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrStudyGroupNotFound
		}
		return nil, err
	}
	return &g, nil
}

// Create inserts a group and enrolls the creator in one transaction, so
// a group never exists without its creator as a member.
func (r *StudyGroupRepository) Create(ctx context.Context, group *models.StudyGroup) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO study_groups (name, description, course_id, creator_id, max_members,
				schedule, location, meeting_date, end_date, is_recurring, recurring_pattern)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id, is_active, created_at
		`
		err := tx.QueryRow(ctx, query,
			group.Name, group.Description, group.CourseID, group.CreatorID, group.MaxMembers,
			group.Schedule, group.Location, group.MeetingDate, group.EndDate,
			group.IsRecurring, group.RecurringPattern,
		).Scan(&group.ID, &group.IsActive, &group.CreatedAt)
		if err != nil {
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrCourseNotFound
			}
			logger.Error().Err(err).Msg("Error executing create study group query")
			return err
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO study_group_members (group_id, user_id) VALUES ($1, $2)`,
			group.ID, group.CreatorID)
		return err
	})
}

// AddEvents writes meeting occurrences stamped with the group's ID in
// one transaction.
func (r *StudyGroupRepository) AddEvents(ctx context.Context, groupID int64, events []models.CalendarEvent) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for i := range events {
			events[i].StudyGroupID = &groupID
			if err := insertCalendarEvent(ctx, tx, &events[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetAll retrieves all active study groups with creator, course and member
// count, newest first.
func (r *StudyGroupRepository) GetAll(ctx context.Context) ([]models.StudyGroup, error) {
	query := `
		SELECT ` + studyGroupColumns + `,
			u.id, u.email, u.first_name, u.last_name, u.profile_picture,
			c.id, c.code, c.name,
			(SELECT count(*) FROM study_group_members m WHERE m.group_id = g.id) AS member_count
		FROM study_groups g
		JOIN users u ON g.creator_id = u.id
		LEFT JOIN courses c ON g.course_id = c.id
		WHERE g.is_active
		ORDER BY g.created_at DESC
	`
	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all study groups query")
		return nil, err
	}
	defer rows.Close()

	groups := make([]models.StudyGroup, 0)
	for rows.Next() {
		g, err := scanStudyGroupWithRelations(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *g)
	}
	return groups, rows.Err()
}

func scanStudyGroupWithRelations(row pgx.Row) (*models.StudyGroup, error) {
	var creator models.User
	var courseID *int64
	var courseCode, courseName *string
	var memberCount int

	g, err := scanStudyGroup(row,
		&creator.ID, &creator.Email, &creator.FirstName, &creator.LastName, &creator.ProfilePicture,
		&courseID, &courseCode, &courseName,
		&memberCount,
	)
	if err != nil {
		return nil, err
	}
	g.Creator = &creator
	if courseID != nil {
		g.Course = &models.Course{ID: *courseID, Code: *courseCode, Name: *courseName}
	}
	g.MemberCount = memberCount
	return g, nil
}

// GetByID retrieves a study group with its member list
func (r *StudyGroupRepository) GetByID(ctx context.Context, id int64) (*models.StudyGroup, error) {
	query := `
		SELECT ` + studyGroupColumns + `,
			u.id, u.email, u.first_name, u.last_name, u.profile_picture,
			c.id, c.code, c.name,
			(SELECT count(*) FROM study_group_members m WHERE m.group_id = g.id) AS member_count
		FROM study_groups g
		JOIN users u ON g.creator_id = u.id
		LEFT JOIN courses c ON g.course_id = c.id
		WHERE g.id = $1
	`
	group, err := scanStudyGroupWithRelations(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	members, err := r.getMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	group.Members = members
	return group, nil
}

func (r *StudyGroupRepository) getMembers(ctx context.Context, groupID int64) ([]models.User, error) {
	query := `
		SELECT u.id, u.email, u.first_name, u.last_name, u.major, u.profile_picture
		FROM study_group_members m
		JOIN users u ON m.user_id = u.id
		WHERE m.group_id = $1
		ORDER BY m.joined_at
	`
	rows, err := r.db.Pool.Query(ctx, query, groupID)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get study group members query")
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

// GetByUserID retrieves the groups a user belongs to
func (r *StudyGroupRepository) GetByUserID(ctx context.Context, userID int64) ([]models.StudyGroup, error) {
	query := `
		SELECT ` + studyGroupColumns + `,
			u.id, u.email, u.first_name, u.last_name, u.profile_picture,
			c.id, c.code, c.name,
			(SELECT count(*) FROM study_group_members m2 WHERE m2.group_id = g.id) AS member_count
		FROM study_group_members m
		JOIN study_groups g ON m.group_id = g.id
		JOIN users u ON g.creator_id = u.id
		LEFT JOIN courses c ON g.course_id = c.id
		WHERE m.user_id = $1
		ORDER BY m.joined_at DESC
	`
	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get study groups by user query")
		return nil, err
	}
	defer rows.Close()

	groups := make([]models.StudyGroup, 0)
	for rows.Next() {
		g, err := scanStudyGroupWithRelations(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *g)
	}
	return groups, rows.Err()
}

// Join enrolls a user and copies every future meeting of the group onto
// the joiner's calendar, marked not completed. The capacity check, the
// membership insert and the copy share one transaction.
func (r *StudyGroupRepository) Join(ctx context.Context, groupID, userID int64) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var maxMembers int
		err := tx.QueryRow(ctx,
			`SELECT max_members FROM study_groups WHERE id = $1 FOR UPDATE`,
			groupID).Scan(&maxMembers)
		if err != nil {
			if err == pgx.ErrNoRows {
				return apperrors.ErrStudyGroupNotFound
			}
			return err
		}

		var memberCount int
		err = tx.QueryRow(ctx,
			`SELECT count(*) FROM study_group_members WHERE group_id = $1`, groupID).Scan(&memberCount)
		if err != nil {
			return err
		}
		if memberCount >= maxMembers {
			return apperrors.ErrGroupFull
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO study_group_members (group_id, user_id) VALUES ($1, $2)`,
			groupID, userID)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrAlreadyMember
			}
			return err
		}

		// Members each hold their own copy of a meeting, so dedup on the
		// meeting itself rather than relying on any single member's rows
		// still existing.
		_, err = tx.Exec(ctx, `
			INSERT INTO calendar_events (title, description, type, start_date, end_date, all_day,
				location, user_id, course_id, study_group_id, priority, is_completed, reminder_minutes)
			SELECT DISTINCT ON (start_date, title)
				title, description, type, start_date, end_date, all_day,
				location, $2, course_id, study_group_id, priority, false, reminder_minutes
			FROM calendar_events
			WHERE study_group_id = $1 AND user_id <> $2 AND start_date >= now()
			ORDER BY start_date, title
		`, groupID, userID)
		if err != nil {
			logger.Error().Err(err).Msg("Error copying study group events to joining member")
		}
		return err
	})
}

// Leave removes a user's membership and deletes the group's events from
// their calendar in one transaction.
func (r *StudyGroupRepository) Leave(ctx context.Context, groupID, userID int64) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`DELETE FROM study_group_members WHERE group_id = $1 AND user_id = $2`,
			groupID, userID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrMemberNotFound
		}

		_, err = tx.Exec(ctx,
			`DELETE FROM calendar_events WHERE study_group_id = $1 AND user_id = $2`,
			groupID, userID)
		return err
	})
}

// IsMember reports whether a user belongs to a group
func (r *StudyGroupRepository) IsMember(ctx context.Context, groupID, userID int64) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM study_group_members WHERE group_id = $1 AND user_id = $2)`,
		groupID, userID).Scan(&exists)
	return exists, err
}

// CreateSessionEvents writes one copy of the session event onto every
// member's calendar in a single transaction.
func (r *StudyGroupRepository) CreateSessionEvents(ctx context.Context, groupID int64, event *models.CalendarEvent) (int, error) {
	created := 0
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx,
			`SELECT user_id FROM study_group_members WHERE group_id = $1`, groupID)
		if err != nil {
			return err
		}
		memberIDs := make([]int64, 0)
		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return err
			}
			memberIDs = append(memberIDs, id)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
		if len(memberIDs) == 0 {
			return apperrors.ErrStudyGroupNotFound
		}

		for _, memberID := range memberIDs {
			ev := *event
			ev.UserID = memberID
			ev.StudyGroupID = &groupID
			if err := insertCalendarEvent(ctx, tx, &ev); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

// Update applies changes to a group's editable fields
func (r *StudyGroupRepository) Update(ctx context.Context, group *models.StudyGroup) error {
	query := `
		UPDATE study_groups SET name = $2, description = $3, course_id = $4
		WHERE id = $1
	`
	tag, err := r.db.Pool.Exec(ctx, query,
		group.ID, group.Name, group.Description, group.CourseID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Msg("Error executing update study group query")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudyGroupNotFound
	}
	return nil
}

// CountByUserID returns the number of groups a user belongs to
func (r *StudyGroupRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.Pool.QueryRow(ctx,
		`SELECT count(*) FROM study_group_members WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

// insertCalendarEvent writes one calendar row through the given querier so
// it can run inside or outside a transaction.
func insertCalendarEvent(ctx context.Context, q db.Querier, ev *models.CalendarEvent) error {
	query := `
		INSERT INTO calendar_events (title, description, type, start_date, end_date, all_day,
			location, user_id, course_id, study_group_id, priority, is_completed, reminder_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`
	return q.QueryRow(ctx, query,
		ev.Title, ev.Description, ev.Type, ev.StartDate, ev.EndDate, ev.AllDay,
		ev.Location, ev.UserID, ev.CourseID, ev.StudyGroupID, ev.Priority,
		ev.IsCompleted, ev.ReminderMinutes,
	).Scan(&ev.ID, &ev.CreatedAt, &ev.UpdatedAt)
}
