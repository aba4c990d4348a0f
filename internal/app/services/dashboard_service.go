package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecakir/campushub/internal/app/models"
	"github.com/ecakir/campushub/internal/app/models/dto"
)

// upcomingWindow is how far ahead the dashboard looks for events.
const upcomingWindow = 7 * 24 * time.Hour

type courseCounter interface {
	CountByUserID(ctx context.Context, userID int64) (int64, error)
}

type groupCounter interface {
	CountByUserID(ctx context.Context, userID int64) (int64, error)
}

type resourceCounter interface {
	CountByUploader(ctx context.Context, userID int64) (int64, error)
}

type upcomingEventStore interface {
	GetUpcoming(ctx context.Context, userID int64, from, until time.Time) ([]models.CalendarEvent, error)
}

// DashboardService aggregates a user's activity snapshot
type DashboardService interface {
	GetDashboard(ctx context.Context, userID int64) (*dto.DashboardResponse, error)
}

type dashboardServiceImpl struct {
	courses   courseCounter
	groups    groupCounter
	resources resourceCounter
	events    upcomingEventStore
	now       func() time.Time
	logger    zerolog.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(courses courseCounter, groups groupCounter, resources resourceCounter, events upcomingEventStore, logger zerolog.Logger) DashboardService {
	return &dashboardServiceImpl{
		courses:   courses,
		groups:    groups,
		resources: resources,
		events:    events,
		now:       time.Now,
		logger:    logger,
	}
}

// GetDashboard collects membership counts and the not-completed events
// starting within the next seven days.
func (s *dashboardServiceImpl) GetDashboard(ctx context.Context, userID int64) (*dto.DashboardResponse, error) {
	courseCount, err := s.courses.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	groupCount, err := s.groups.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resourceCount, err := s.resources.CountByUploader(ctx, userID)
	if err != nil {
		return nil, err
	}

	from := s.now()
	events, err := s.events.GetUpcoming(ctx, userID, from, from.Add(upcomingWindow))
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		CourseCount:    courseCount,
		GroupCount:     groupCount,
		ResourceCount:  resourceCount,
		UpcomingEvents: events,
	}, nil
}
