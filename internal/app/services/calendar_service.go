package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecakir/campushub/internal/app/models"
	"github.com/ecakir/campushub/internal/app/models/dto"
	"github.com/ecakir/campushub/internal/pkg/apperrors"
)

type calendarStore interface {
	Create(ctx context.Context, ev *models.CalendarEvent) error
	GetByUserID(ctx context.Context, userID int64, start, end *time.Time) ([]models.CalendarEvent, error)
	GetByID(ctx context.Context, id int64) (*models.CalendarEvent, error)
	Update(ctx context.Context, ev *models.CalendarEvent) error
	SetCompleted(ctx context.Context, id int64, completed bool) error
	Delete(ctx context.Context, id int64) error
}

// defaultReminderMinutes applies when a create request leaves the
// reminder out, and to every materialized study group meeting.
const defaultReminderMinutes = 30

// CalendarService defines the interface for calendar event operations.
// All reads and writes are scoped to the owning user.
type CalendarService interface {
	CreateEvent(ctx context.Context, req *dto.CreateCalendarEventRequest, userID int64) (*models.CalendarEvent, error)
	GetEvents(ctx context.Context, userID int64, r dto.CalendarRange) ([]models.CalendarEvent, error)
	GetEvent(ctx context.Context, id, callerID int64) (*models.CalendarEvent, error)
	UpdateEvent(ctx context.Context, id int64, req *dto.UpdateCalendarEventRequest, callerID int64) (*models.CalendarEvent, error)
	CompleteEvent(ctx context.Context, id int64, completed bool, callerID int64) (*models.CalendarEvent, error)
	DeleteEvent(ctx context.Context, id, callerID int64) error
}

type calendarServiceImpl struct {
	calendarRepo calendarStore
	logger       zerolog.Logger
}

// NewCalendarService creates a new CalendarService
func NewCalendarService(calendarRepo calendarStore, logger zerolog.Logger) CalendarService {
	return &calendarServiceImpl{calendarRepo: calendarRepo, logger: logger}
}

// CreateEvent creates an event owned by the caller
func (s *calendarServiceImpl) CreateEvent(ctx context.Context, req *dto.CreateCalendarEventRequest, userID int64) (*models.CalendarEvent, error) {
	priority := models.PriorityMedium
	if req.Priority != nil {
		priority = *req.Priority
	}
	reminder := defaultReminderMinutes
	if req.ReminderMinutes != nil {
		reminder = *req.ReminderMinutes
	}

	ev := &models.CalendarEvent{
		Title:           req.Title,
		Description:     req.Description,
		Type:            req.Type,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		AllDay:          req.AllDay,
		Location:        req.Location,
		UserID:          userID,
		CourseID:        req.CourseID,
		StudyGroupID:    req.StudyGroupID,
		Priority:        priority,
		ReminderMinutes: &reminder,
	}
	if err := s.calendarRepo.Create(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

// GetEvents lists the caller's events inside the optional range
func (s *calendarServiceImpl) GetEvents(ctx context.Context, userID int64, r dto.CalendarRange) ([]models.CalendarEvent, error) {
	return s.calendarRepo.GetByUserID(ctx, userID, r.Start, r.End)
}

// GetEvent retrieves one event, owner-only
func (s *calendarServiceImpl) GetEvent(ctx context.Context, id, callerID int64) (*models.CalendarEvent, error) {
	return s.getOwnedEvent(ctx, id, callerID)
}

// UpdateEvent applies a partial update to the caller's event
func (s *calendarServiceImpl) UpdateEvent(ctx context.Context, id int64, req *dto.UpdateCalendarEventRequest, callerID int64) (*models.CalendarEvent, error) {
	ev, err := s.getOwnedEvent(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		ev.Title = *req.Title
	}
	if req.Description != nil {
		ev.Description = req.Description
	}
	if req.Type != nil {
		ev.Type = *req.Type
	}
	if req.StartDate != nil {
		ev.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		ev.EndDate = req.EndDate
	}
	if req.AllDay != nil {
		ev.AllDay = *req.AllDay
	}
	if req.Location != nil {
		ev.Location = req.Location
	}
	if req.Priority != nil {
		ev.Priority = *req.Priority
	}
	if req.ReminderMinutes != nil {
		ev.ReminderMinutes = req.ReminderMinutes
	}

	if err := s.calendarRepo.Update(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

// CompleteEvent sets the caller's event completion flag
func (s *calendarServiceImpl) CompleteEvent(ctx context.Context, id int64, completed bool, callerID int64) (*models.CalendarEvent, error) {
	ev, err := s.getOwnedEvent(ctx, id, callerID)
	if err != nil {
		return nil, err
	}
	if err := s.calendarRepo.SetCompleted(ctx, id, completed); err != nil {
		return nil, err
	}
	ev.IsCompleted = completed
	return ev, nil
}

// DeleteEvent removes the caller's event
func (s *calendarServiceImpl) DeleteEvent(ctx context.Context, id, callerID int64) error {
	if _, err := s.getOwnedEvent(ctx, id, callerID); err != nil {
		return err
	}
	return s.calendarRepo.Delete(ctx, id)
}

func (s *calendarServiceImpl) getOwnedEvent(ctx context.Context, id, callerID int64) (*models.CalendarEvent, error) {
	ev, err := s.calendarRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev.UserID != callerID {
		return nil, apperrors.NewForbiddenError("event belongs to another user")
	}
	return ev, nil
}
