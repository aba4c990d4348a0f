package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecakir/campushub/internal/app/models"
)

type fixedCounter int64

func (c fixedCounter) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	return int64(c), nil
}

type fixedUploadCounter int64

func (c fixedUploadCounter) CountByUploader(ctx context.Context, userID int64) (int64, error) {
	return int64(c), nil
}

type capturingEventStore struct {
	from, until time.Time
	events      []models.CalendarEvent
}

func (s *capturingEventStore) GetUpcoming(ctx context.Context, userID int64, from, until time.Time) ([]models.CalendarEvent, error) {
	s.from = from
	s.until = until
	return s.events, nil
}

func TestDashboardService_AggregatesCountsAndEvents(t *testing.T) {
	events := &capturingEventStore{events: []models.CalendarEvent{{ID: 1, Title: "Exam"}}}
	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	svc := &dashboardServiceImpl{
		courses:   fixedCounter(3),
		groups:    fixedCounter(2),
		resources: fixedUploadCounter(5),
		events:    events,
		now:       func() time.Time { return now },
		logger:    zerolog.Nop(),
	}

	resp, err := svc.GetDashboard(context.Background(), 9)
	require.NoError(t, err)

	assert.Equal(t, int64(3), resp.CourseCount)
	assert.Equal(t, int64(2), resp.GroupCount)
	assert.Equal(t, int64(5), resp.ResourceCount)
	require.Len(t, resp.UpcomingEvents, 1)

	// The lookahead window is exactly seven days from "now"
	assert.True(t, events.from.Equal(now))
	assert.True(t, events.until.Equal(now.Add(7*24*time.Hour)))
}
