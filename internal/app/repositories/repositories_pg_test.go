package repositories

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecakir/campushub/internal/app/migrations"
	"github.com/ecakir/campushub/internal/app/models"
	"github.com/ecakir/campushub/internal/db"
)

// setupTestDB connects to the database named by TEST_DATABASE_URL, applies
// the migrations and empties all tables. Tests built on it are skipped
// when the variable is unset.
func setupTestDB(t *testing.T) *db.PostgresDB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, migrations.NewMigrator(pool).MigrateFromDirectory("../../../migrations"))

	_, err = pool.Exec(ctx, `
		TRUNCATE users, courses, forum_categories, conversations, study_groups
		RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return &db.PostgresDB{Pool: pool}
}

func createTestUser(t *testing.T, database *db.PostgresDB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Email:     email,
		Password:  "not-a-real-hash",
		FirstName: "Test",
		LastName:  "User",
	}
	require.NoError(t, NewUserRepository(database.Pool).Create(context.Background(), user))
	return user
}

func strPtr(s string) *string { return &s }

func TestConversationRepository_FileOnlyMessage(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, database, "alice@campus.edu")
	bob := createTestUser(t, database, "bob@campus.edu")

	repo := NewConversationRepository(database)
	conv := &models.Conversation{Type: models.ConversationDirect}
	require.NoError(t, repo.CreateWithParticipants(ctx, conv, []int64{alice.ID, bob.ID}))

	msg := &models.Message{
		SenderID:       alice.ID,
		ConversationID: conv.ID,
		FileURL:        strPtr("http://localhost:8080/uploads/notes.pdf"),
		FileName:       strPtr("notes.pdf"),
		FileType:       strPtr("application/pdf"),
	}
	require.NoError(t, repo.CreateMessage(ctx, msg))

	msgs, err := repo.GetMessages(ctx, conv.ID, 50)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Nil(t, msgs[0].Content)
	require.NotNil(t, msgs[0].FileURL)
	assert.Equal(t, "http://localhost:8080/uploads/notes.pdf", *msgs[0].FileURL)
}

func TestCalendarRepository_CreateWithoutReminder(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, database, "owner@campus.edu")

	repo := NewCalendarRepository(database.Pool)
	ev := &models.CalendarEvent{
		Title:     "Office hours",
		Type:      models.EventTypeMeeting,
		StartDate: time.Now().Add(24 * time.Hour),
		UserID:    owner.ID,
		Priority:  models.PriorityMedium,
	}
	require.NoError(t, repo.Create(ctx, ev))

	got, err := repo.GetByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, "Office hours", got.Title)
	assert.Nil(t, got.ReminderMinutes)
}

func TestForumRepository_CreatePostWithoutTags(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	author := createTestUser(t, database, "author@campus.edu")

	repo := NewForumRepository(database)
	post := &models.ForumPost{Title: "No tags here", Content: "body", AuthorID: author.ID}
	require.NoError(t, repo.CreatePost(ctx, post))

	got, err := repo.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Tags)
}

func TestForumRepository_VoteRecount(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	author := createTestUser(t, database, "author@campus.edu")
	voter := createTestUser(t, database, "voter@campus.edu")

	repo := NewForumRepository(database)
	post := &models.ForumPost{Title: "Vote on me", Content: "body", AuthorID: author.ID}
	require.NoError(t, repo.CreatePost(ctx, post))

	res, err := repo.VotePost(ctx, post.ID, voter.ID, "up")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Upvotes)
	assert.Equal(t, 0, res.Downvotes)

	// Opposite vote replaces, repeated vote clears.
	res, err = repo.VotePost(ctx, post.ID, voter.ID, "down")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Upvotes)
	assert.Equal(t, 1, res.Downvotes)

	res, err = repo.VotePost(ctx, post.ID, voter.ID, "down")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Upvotes)
	assert.Equal(t, 0, res.Downvotes)
	assert.Nil(t, res.UserVote)

	// Counters are persisted on the post row, not just in the response.
	stored, err := repo.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Upvotes)
	assert.Equal(t, 0, stored.Downvotes)

	vote, err := repo.GetUserVoteForPost(ctx, post.ID, voter.ID)
	require.NoError(t, err)
	assert.Nil(t, vote)
}

func TestStudyGroupRepository_JoinCopiesFutureEvents(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	creator := createTestUser(t, database, "creator@campus.edu")
	joiner := createTestUser(t, database, "joiner@campus.edu")

	repo := NewStudyGroupRepository(database)
	group := &models.StudyGroup{Name: "Algorithms", CreatorID: creator.ID, MaxMembers: 10}
	require.NoError(t, repo.Create(ctx, group))

	past := time.Now().Add(-48 * time.Hour)
	future := time.Now().Add(48 * time.Hour)
	reminder := 30
	require.NoError(t, repo.AddEvents(ctx, group.ID, []models.CalendarEvent{
		{Title: "Old meeting", Type: models.EventTypeStudyGroup, StartDate: past,
			UserID: creator.ID, Priority: models.PriorityMedium, ReminderMinutes: &reminder},
		{Title: "Next meeting", Type: models.EventTypeStudyGroup, StartDate: future,
			UserID: creator.ID, Priority: models.PriorityMedium, ReminderMinutes: &reminder,
			IsCompleted: true},
	}))

	require.NoError(t, repo.Join(ctx, group.ID, joiner.ID))

	calendar := NewCalendarRepository(database.Pool)
	events, err := calendar.GetByUserID(ctx, joiner.ID, nil, nil)
	require.NoError(t, err)
	require.Len(t, events, 1, "only future meetings are copied")
	assert.Equal(t, "Next meeting", events[0].Title)
	assert.False(t, events[0].IsCompleted, "copies start out not completed")
}

func TestStudyGroupRepository_JoinAfterCreatorLeft(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	creator := createTestUser(t, database, "creator@campus.edu")
	first := createTestUser(t, database, "first@campus.edu")
	second := createTestUser(t, database, "second@campus.edu")

	repo := NewStudyGroupRepository(database)
	group := &models.StudyGroup{Name: "Databases", CreatorID: creator.ID, MaxMembers: 10}
	require.NoError(t, repo.Create(ctx, group))

	future := time.Now().Add(72 * time.Hour)
	reminder := 30
	require.NoError(t, repo.AddEvents(ctx, group.ID, []models.CalendarEvent{
		{Title: "Databases - Study Session", Type: models.EventTypeStudyGroup,
			StartDate: future, UserID: creator.ID, Priority: models.PriorityMedium,
			ReminderMinutes: &reminder},
	}))

	require.NoError(t, repo.Join(ctx, group.ID, first.ID))
	require.NoError(t, repo.Leave(ctx, group.ID, creator.ID))

	calendar := NewCalendarRepository(database.Pool)
	gone, err := calendar.GetByUserID(ctx, creator.ID, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, gone, "leaving removes the member's group events")

	// The meeting survives on the remaining member's calendar, so a later
	// joiner still receives it.
	require.NoError(t, repo.Join(ctx, group.ID, second.ID))
	events, err := calendar.GetByUserID(ctx, second.ID, nil, nil)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Databases - Study Session", events[0].Title)
}
