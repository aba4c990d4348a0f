package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecakir/campushub/internal/app/models"
	"github.com/ecakir/campushub/internal/app/models/dto"
	"github.com/ecakir/campushub/internal/pkg/apperrors"
)

type fakeStudyGroupStore struct {
	groups       map[int64]*models.StudyGroup
	members      map[int64]map[int64]bool
	addedEvents  []models.CalendarEvent
	addEventsErr error
	nextID       int64
}

func newFakeStudyGroupStore() *fakeStudyGroupStore {
	return &fakeStudyGroupStore{
		groups:  map[int64]*models.StudyGroup{},
		members: map[int64]map[int64]bool{},
		nextID:  1,
	}
}

func (f *fakeStudyGroupStore) Create(ctx context.Context, group *models.StudyGroup) error {
	group.ID = f.nextID
	f.nextID++
	group.IsActive = true
	f.groups[group.ID] = group
	f.members[group.ID] = map[int64]bool{group.CreatorID: true}
	return nil
}

func (f *fakeStudyGroupStore) AddEvents(ctx context.Context, groupID int64, events []models.CalendarEvent) error {
	if f.addEventsErr != nil {
		return f.addEventsErr
	}
	f.addedEvents = append(f.addedEvents, events...)
	return nil
}

func (f *fakeStudyGroupStore) GetAll(ctx context.Context) ([]models.StudyGroup, error) {
	var out []models.StudyGroup
	for _, g := range f.groups {
		out = append(out, *g)
	}
	return out, nil
}

func (f *fakeStudyGroupStore) GetByID(ctx context.Context, id int64) (*models.StudyGroup, error) {
	g, ok := f.groups[id]
	if !ok {
		return nil, apperrors.ErrStudyGroupNotFound
	}
	return g, nil
}

func (f *fakeStudyGroupStore) GetByUserID(ctx context.Context, userID int64) ([]models.StudyGroup, error) {
	var out []models.StudyGroup
	for id, g := range f.groups {
		if f.members[id][userID] {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (f *fakeStudyGroupStore) Join(ctx context.Context, groupID, userID int64) error {
	g, ok := f.groups[groupID]
	if !ok {
		return apperrors.ErrStudyGroupNotFound
	}
	if f.members[groupID][userID] {
		return apperrors.ErrAlreadyMember
	}
	if len(f.members[groupID]) >= g.MaxMembers {
		return apperrors.ErrGroupFull
	}
	f.members[groupID][userID] = true
	return nil
}

func (f *fakeStudyGroupStore) Leave(ctx context.Context, groupID, userID int64) error {
	delete(f.members[groupID], userID)
	return nil
}

func (f *fakeStudyGroupStore) IsMember(ctx context.Context, groupID, userID int64) (bool, error) {
	return f.members[groupID][userID], nil
}

func (f *fakeStudyGroupStore) CreateSessionEvents(ctx context.Context, groupID int64, event *models.CalendarEvent) (int, error) {
	if _, ok := f.groups[groupID]; !ok {
		return 0, apperrors.ErrStudyGroupNotFound
	}
	return len(f.members[groupID]), nil
}

func (f *fakeStudyGroupStore) Update(ctx context.Context, group *models.StudyGroup) error {
	if _, ok := f.groups[group.ID]; !ok {
		return apperrors.ErrStudyGroupNotFound
	}
	f.groups[group.ID] = group
	return nil
}

func newTestStudyGroupService(store *fakeStudyGroupStore) *studyGroupServiceImpl {
	return &studyGroupServiceImpl{
		groupRepo: store,
		now:       time.Now,
		logger:    zerolog.Nop(),
	}
}

func TestBuildMeetingEvents_WeeklyRecurring(t *testing.T) {
	meeting := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	end := meeting.Add(2 * time.Hour)
	pattern := "weekly"
	group := &models.StudyGroup{
		Name:             "Algorithms Crew",
		CreatorID:        7,
		MeetingDate:      &meeting,
		EndDate:          &end,
		IsRecurring:      true,
		RecurringPattern: &pattern,
	}

	events := buildMeetingEvents(group, time.Now())
	require.Len(t, events, 1+recurringOccurrences)

	for i, ev := range events {
		assert.Equal(t, "Algorithms Crew - Study Session", ev.Title)
		assert.Equal(t, models.EventTypeStudyGroup, ev.Type)
		assert.Equal(t, models.PriorityMedium, ev.Priority)
		require.NotNil(t, ev.ReminderMinutes)
		assert.Equal(t, 30, *ev.ReminderMinutes)
		assert.Equal(t, int64(7), ev.UserID)

		wantStart := meeting.AddDate(0, 0, 7*i)
		assert.True(t, ev.StartDate.Equal(wantStart), "occurrence %d start", i)
		require.NotNil(t, ev.EndDate)
		assert.True(t, ev.EndDate.Equal(wantStart.Add(2*time.Hour)), "occurrence %d end", i)
	}
}

func TestBuildMeetingEvents_DescriptionFallback(t *testing.T) {
	meeting := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	group := &models.StudyGroup{
		Name:        "Linear Algebra",
		CreatorID:   3,
		MeetingDate: &meeting,
	}

	events := buildMeetingEvents(group, time.Now())
	require.Len(t, events, 1)
	require.NotNil(t, events[0].Description)
	assert.Equal(t, "Study group session for Linear Algebra", *events[0].Description)

	desc := "Weekly problem sets"
	group.Description = &desc
	events = buildMeetingEvents(group, time.Now())
	require.Len(t, events, 1)
	require.NotNil(t, events[0].Description)
	assert.Equal(t, "Weekly problem sets", *events[0].Description)
}

func TestBuildMeetingEvents_BiweeklyInterval(t *testing.T) {
	meeting := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	pattern := "biweekly"
	group := &models.StudyGroup{
		Name:             "Physics",
		CreatorID:        1,
		MeetingDate:      &meeting,
		IsRecurring:      true,
		RecurringPattern: &pattern,
	}

	events := buildMeetingEvents(group, time.Now())
	require.Len(t, events, 1+recurringOccurrences)
	assert.True(t, events[1].StartDate.Equal(meeting.AddDate(0, 0, 14)))
	assert.Nil(t, events[1].EndDate)
}

func TestBuildMeetingEvents_NonRecurringSingleEvent(t *testing.T) {
	meeting := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	group := &models.StudyGroup{
		Name:        "One-off",
		CreatorID:   1,
		MeetingDate: &meeting,
	}

	events := buildMeetingEvents(group, time.Now())
	require.Len(t, events, 1)
	assert.True(t, events[0].StartDate.Equal(meeting))
}

func TestBuildMeetingEvents_ScheduleFallback(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	schedule := "Mondays 18:00"
	group := &models.StudyGroup{
		Name:      "No Date Yet",
		CreatorID: 1,
		Schedule:  &schedule,
	}

	events := buildMeetingEvents(group, now)
	require.Len(t, events, 1)
	assert.True(t, events[0].StartDate.Equal(now.AddDate(0, 0, 7)))
}

func TestBuildMeetingEvents_NothingToMaterialize(t *testing.T) {
	group := &models.StudyGroup{Name: "Empty", CreatorID: 1}
	assert.Empty(t, buildMeetingEvents(group, time.Now()))

	empty := ""
	group.Schedule = &empty
	assert.Empty(t, buildMeetingEvents(group, time.Now()))
}

func TestStudyGroupService_CreateSurvivesEventFailure(t *testing.T) {
	store := newFakeStudyGroupStore()
	store.addEventsErr = errors.New("calendar write failed")
	svc := newTestStudyGroupService(store)

	meeting := time.Now().Add(24 * time.Hour)
	group, err := svc.CreateGroup(context.Background(), &dto.CreateStudyGroupRequest{
		Name:        "Resilient",
		MeetingDate: &meeting,
	}, 3)
	require.NoError(t, err)
	assert.NotZero(t, group.ID)
	assert.Equal(t, 1, group.MemberCount)
	assert.Equal(t, defaultMaxMembers, group.MaxMembers)
}

func TestStudyGroupService_CreateMaterializesEvents(t *testing.T) {
	store := newFakeStudyGroupStore()
	svc := newTestStudyGroupService(store)

	meeting := time.Now().Add(24 * time.Hour)
	pattern := "weekly"
	_, err := svc.CreateGroup(context.Background(), &dto.CreateStudyGroupRequest{
		Name:             "Weekly",
		MeetingDate:      &meeting,
		IsRecurring:      true,
		RecurringPattern: &pattern,
	}, 3)
	require.NoError(t, err)
	assert.Len(t, store.addedEvents, 1+recurringOccurrences)
}

func TestStudyGroupService_UpdateOnlyByCreator(t *testing.T) {
	store := newFakeStudyGroupStore()
	svc := newTestStudyGroupService(store)

	group, err := svc.CreateGroup(context.Background(), &dto.CreateStudyGroupRequest{Name: "Owned"}, 3)
	require.NoError(t, err)

	name := "Renamed"
	_, err = svc.UpdateGroup(context.Background(), group.ID, &dto.UpdateStudyGroupRequest{Name: &name}, 99)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	updated, err := svc.UpdateGroup(context.Background(), group.ID, &dto.UpdateStudyGroupRequest{Name: &name}, 3)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestStudyGroupService_ScheduleSessionRequiresMembership(t *testing.T) {
	store := newFakeStudyGroupStore()
	svc := newTestStudyGroupService(store)

	group, err := svc.CreateGroup(context.Background(), &dto.CreateStudyGroupRequest{Name: "Members Only"}, 3)
	require.NoError(t, err)

	req := &dto.CreateSessionRequest{Title: "Extra session", StartDate: time.Now().Add(48 * time.Hour)}

	_, err = svc.ScheduleSession(context.Background(), group.ID, req, 99)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, svc.JoinGroup(context.Background(), group.ID, 99))
	created, err := svc.ScheduleSession(context.Background(), group.ID, req, 99)
	require.NoError(t, err)
	assert.Equal(t, 2, created)
}

func TestStudyGroupService_JoinFullGroup(t *testing.T) {
	store := newFakeStudyGroupStore()
	svc := newTestStudyGroupService(store)

	max := 1
	group, err := svc.CreateGroup(context.Background(), &dto.CreateStudyGroupRequest{Name: "Tiny", MaxMembers: &max}, 3)
	require.NoError(t, err)

	err = svc.JoinGroup(context.Background(), group.ID, 4)
	assert.ErrorIs(t, err, apperrors.ErrGroupFull)
}
