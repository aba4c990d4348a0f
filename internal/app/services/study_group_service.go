package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecakir/campushub/internal/app/models"
	"github.com/ecakir/campushub/internal/app/models/dto"
	"github.com/ecakir/campushub/internal/pkg/apperrors"
	"github.com/ecakir/campushub/internal/pkg/helpers"
)

// recurringOccurrences is how many additional meetings are materialized
// beyond the initial one for a recurring group.
const recurringOccurrences = 8

const defaultMaxMembers = 10

type studyGroupStore interface {
	Create(ctx context.Context, group *models.StudyGroup) error
	AddEvents(ctx context.Context, groupID int64, events []models.CalendarEvent) error
	GetAll(ctx context.Context) ([]models.StudyGroup, error)
	GetByID(ctx context.Context, id int64) (*models.StudyGroup, error)
	GetByUserID(ctx context.Context, userID int64) ([]models.StudyGroup, error)
	Join(ctx context.Context, groupID, userID int64) error
	Leave(ctx context.Context, groupID, userID int64) error
	IsMember(ctx context.Context, groupID, userID int64) (bool, error)
	CreateSessionEvents(ctx context.Context, groupID int64, event *models.CalendarEvent) (int, error)
	Update(ctx context.Context, group *models.StudyGroup) error
}

// StudyGroupService defines the interface for study group operations
type StudyGroupService interface {
	CreateGroup(ctx context.Context, req *dto.CreateStudyGroupRequest, creatorID int64) (*models.StudyGroup, error)
	GetGroups(ctx context.Context) ([]models.StudyGroup, error)
	GetGroup(ctx context.Context, id int64) (*models.StudyGroup, error)
	GetMyGroups(ctx context.Context, userID int64) ([]models.StudyGroup, error)
	GetGroupMembers(ctx context.Context, groupID int64) ([]models.User, error)
	JoinGroup(ctx context.Context, groupID, userID int64) error
	LeaveGroup(ctx context.Context, groupID, userID int64) error
	UpdateGroup(ctx context.Context, groupID int64, req *dto.UpdateStudyGroupRequest, callerID int64) (*models.StudyGroup, error)
	ScheduleSession(ctx context.Context, groupID int64, req *dto.CreateSessionRequest, callerID int64) (int, error)
}

type studyGroupServiceImpl struct {
	groupRepo studyGroupStore
	now       func() time.Time
	logger    zerolog.Logger
}

// NewStudyGroupService creates a new StudyGroupService
func NewStudyGroupService(groupRepo studyGroupStore, logger zerolog.Logger) StudyGroupService {
	return &studyGroupServiceImpl{
		groupRepo: groupRepo,
		now:       time.Now,
		logger:    logger,
	}
}

// CreateGroup creates a group with the creator enrolled and materializes
// its meetings on the creator's calendar. A group always gets created
// even if the calendar rows cannot be written; that failure is only
// logged.
func (s *studyGroupServiceImpl) CreateGroup(ctx context.Context, req *dto.CreateStudyGroupRequest, creatorID int64) (*models.StudyGroup, error) {
	maxMembers := defaultMaxMembers
	if req.MaxMembers != nil {
		maxMembers = *req.MaxMembers
	}

	group := &models.StudyGroup{
		Name:             req.Name,
		Description:      req.Description,
		CourseID:         req.CourseID,
		CreatorID:        creatorID,
		MaxMembers:       maxMembers,
		Schedule:         req.Schedule,
		Location:         req.Location,
		MeetingDate:      req.MeetingDate,
		EndDate:          req.EndDate,
		IsRecurring:      req.IsRecurring,
		RecurringPattern: req.RecurringPattern,
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}

	events := buildMeetingEvents(group, s.now())
	if len(events) > 0 {
		if err := s.groupRepo.AddEvents(ctx, group.ID, events); err != nil {
			s.logger.Warn().Err(err).Int64("groupId", group.ID).Msg("Failed to materialize study group events")
		}
	}

	s.logger.Info().Int64("groupId", group.ID).Int64("creatorId", creatorID).Msg("Study group created")
	group.MemberCount = 1
	return group, nil
}

// buildMeetingEvents materializes a group's meetings as calendar rows
// owned by the creator. With a meeting date set, the initial occurrence
// is created plus, for recurring groups, a fixed number of repeats at
// the pattern's day interval. Without a meeting date, a non-empty
// schedule still yields a single placeholder meeting one week out.
func buildMeetingEvents(group *models.StudyGroup, now time.Time) []models.CalendarEvent {
	title := group.Name + " - Study Session"
	reminder := defaultReminderMinutes

	description := group.Description
	if description == nil || *description == "" {
		d := "Study group session for " + group.Name
		description = &d
	}

	base := models.CalendarEvent{
		Title:           title,
		Description:     description,
		Type:            models.EventTypeStudyGroup,
		AllDay:          false,
		Location:        group.Location,
		UserID:          group.CreatorID,
		CourseID:        group.CourseID,
		Priority:        models.PriorityMedium,
		ReminderMinutes: &reminder,
	}

	if group.MeetingDate == nil {
		if group.Schedule == nil || *group.Schedule == "" {
			return nil
		}
		ev := base
		ev.StartDate = helpers.AddDays(now, 7)
		return []models.CalendarEvent{ev}
	}

	first := base
	first.StartDate = *group.MeetingDate
	first.EndDate = group.EndDate
	events := []models.CalendarEvent{first}

	if !group.IsRecurring || group.RecurringPattern == nil {
		return events
	}
	interval := models.RecurringIntervalDays(*group.RecurringPattern)
	if interval == 0 {
		return events
	}

	for i := 1; i <= recurringOccurrences; i++ {
		ev := base
		ev.StartDate = helpers.AddDays(*group.MeetingDate, interval*i)
		if group.EndDate != nil {
			end := helpers.AddDays(*group.EndDate, interval*i)
			ev.EndDate = &end
		}
		events = append(events, ev)
	}
	return events
}

// GetGroups lists all active groups
func (s *studyGroupServiceImpl) GetGroups(ctx context.Context) ([]models.StudyGroup, error) {
	return s.groupRepo.GetAll(ctx)
}

// GetGroup retrieves one group with its members
func (s *studyGroupServiceImpl) GetGroup(ctx context.Context, id int64) (*models.StudyGroup, error) {
	return s.groupRepo.GetByID(ctx, id)
}

// GetMyGroups lists the groups the user belongs to
func (s *studyGroupServiceImpl) GetMyGroups(ctx context.Context, userID int64) ([]models.StudyGroup, error) {
	return s.groupRepo.GetByUserID(ctx, userID)
}

// GetGroupMembers lists a group's members
func (s *studyGroupServiceImpl) GetGroupMembers(ctx context.Context, groupID int64) ([]models.User, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return group.Members, nil
}

// JoinGroup enrolls the user and copies the group's future meetings onto
// their calendar.
func (s *studyGroupServiceImpl) JoinGroup(ctx context.Context, groupID, userID int64) error {
	if err := s.groupRepo.Join(ctx, groupID, userID); err != nil {
		return err
	}
	s.logger.Info().Int64("groupId", groupID).Int64("userId", userID).Msg("User joined study group")
	return nil
}

// LeaveGroup drops the membership and the group's rows from the user's
// calendar.
func (s *studyGroupServiceImpl) LeaveGroup(ctx context.Context, groupID, userID int64) error {
	return s.groupRepo.Leave(ctx, groupID, userID)
}

// UpdateGroup edits a group. Only the creator may do this.
func (s *studyGroupServiceImpl) UpdateGroup(ctx context.Context, groupID int64, req *dto.UpdateStudyGroupRequest, callerID int64) (*models.StudyGroup, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.CreatorID != callerID {
		return nil, apperrors.NewForbiddenError("only the group creator can edit it")
	}

	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.Description != nil {
		group.Description = req.Description
	}
	if req.CourseID != nil {
		group.CourseID = req.CourseID
	}
	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// ScheduleSession puts an extra session on every member's calendar.
// Only members may schedule one. Returns how many calendars were
// written.
func (s *studyGroupServiceImpl) ScheduleSession(ctx context.Context, groupID int64, req *dto.CreateSessionRequest, callerID int64) (int, error) {
	isMember, err := s.groupRepo.IsMember(ctx, groupID, callerID)
	if err != nil {
		return 0, err
	}
	if !isMember {
		return 0, apperrors.NewForbiddenError("only group members can schedule sessions")
	}

	reminder := defaultReminderMinutes
	event := &models.CalendarEvent{
		Title:           req.Title,
		Description:     req.Description,
		Type:            models.EventTypeStudyGroup,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Location:        req.Location,
		Priority:        models.PriorityMedium,
		ReminderMinutes: &reminder,
	}
	created, err := s.groupRepo.CreateSessionEvents(ctx, groupID, event)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("groupId", groupID).Int("members", created).Msg("Study session scheduled")
	return created, nil
}
