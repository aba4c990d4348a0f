package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecakir/campushub/internal/app/models"
	"github.com/ecakir/campushub/internal/app/models/dto"
	"github.com/ecakir/campushub/internal/pkg/apperrors"
)

type fakeForumStore struct {
	posts      map[int64]*models.ForumPost
	votes      map[int64]map[int64]string // postID -> userID -> vote
	lastFilter dto.ForumPostFilter
	nextID     int64
}

func newFakeForumStore() *fakeForumStore {
	return &fakeForumStore{
		posts:  map[int64]*models.ForumPost{},
		votes:  map[int64]map[int64]string{},
		nextID: 1,
	}
}

func (f *fakeForumStore) GetCategories(ctx context.Context) ([]models.ForumCategory, error) {
	return []models.ForumCategory{{ID: 1, Name: "General"}}, nil
}

func (f *fakeForumStore) CreatePost(ctx context.Context, post *models.ForumPost) error {
	post.ID = f.nextID
	f.nextID++
	f.posts[post.ID] = post
	f.votes[post.ID] = map[int64]string{}
	return nil
}

func (f *fakeForumStore) GetPosts(ctx context.Context, filter dto.ForumPostFilter) ([]models.ForumPost, error) {
	f.lastFilter = filter
	var out []models.ForumPost
	for _, p := range f.posts {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeForumStore) GetPostByID(ctx context.Context, id int64) (*models.ForumPost, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, apperrors.ErrPostNotFound
	}
	out := *p
	return &out, nil
}

func (f *fakeForumStore) GetUserVoteForPost(ctx context.Context, postID, userID int64) (*string, error) {
	votes, ok := f.votes[postID]
	if !ok {
		return nil, apperrors.ErrPostNotFound
	}
	v, ok := votes[userID]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (f *fakeForumStore) IncrementViews(ctx context.Context, postID int64) error {
	p, ok := f.posts[postID]
	if !ok {
		return apperrors.ErrPostNotFound
	}
	p.Views++
	return nil
}

func (f *fakeForumStore) CreateReply(ctx context.Context, reply *models.ForumReply) error {
	if _, ok := f.posts[reply.PostID]; !ok {
		return apperrors.ErrPostNotFound
	}
	reply.ID = f.nextID
	f.nextID++
	return nil
}

// applyVote mirrors the toggle semantics of the real store: repeating a
// vote clears it, a different one replaces it.
func (f *fakeForumStore) applyVote(postID, userID int64, voteType string) (*dto.VoteResult, error) {
	votes, ok := f.votes[postID]
	if !ok {
		return nil, apperrors.ErrPostNotFound
	}

	var userVote *string
	switch votes[userID] {
	case voteType:
		delete(votes, userID)
	default:
		votes[userID] = voteType
		userVote = &voteType
	}

	result := &dto.VoteResult{UserVote: userVote}
	for _, v := range votes {
		if v == "up" {
			result.Upvotes++
		} else {
			result.Downvotes++
		}
	}
	return result, nil
}

func (f *fakeForumStore) VotePost(ctx context.Context, postID, userID int64, voteType string) (*dto.VoteResult, error) {
	return f.applyVote(postID, userID, voteType)
}

func (f *fakeForumStore) VoteReply(ctx context.Context, replyID, userID int64, voteType string) (*dto.VoteResult, error) {
	return f.applyVote(replyID, userID, voteType)
}

func newTestForumService(store *fakeForumStore) ForumService {
	return NewForumService(store, zerolog.Nop())
}

func TestForumService_GetPostsDefaultsLimit(t *testing.T) {
	store := newFakeForumStore()
	svc := newTestForumService(store)

	_, err := svc.GetPosts(context.Background(), dto.ForumPostFilter{})
	require.NoError(t, err)
	assert.Equal(t, defaultPostLimit, store.lastFilter.Limit)

	_, err = svc.GetPosts(context.Background(), dto.ForumPostFilter{Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, store.lastFilter.Limit)
}

func TestForumService_GetPostCountsView(t *testing.T) {
	store := newFakeForumStore()
	svc := newTestForumService(store)

	post, err := svc.CreatePost(context.Background(), &dto.CreateForumPostRequest{
		Title:   "Welcome",
		Content: "First post",
	}, 1)
	require.NoError(t, err)

	got, err := svc.GetPost(context.Background(), post.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Views)

	got, err = svc.GetPost(context.Background(), post.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Views)
}

func TestForumService_GetPostAttachesViewerVote(t *testing.T) {
	store := newFakeForumStore()
	svc := newTestForumService(store)

	post, err := svc.CreatePost(context.Background(), &dto.CreateForumPostRequest{
		Title:   "Vote visibility",
		Content: "body",
	}, 1)
	require.NoError(t, err)

	_, err = svc.VotePost(context.Background(), post.ID, 2, "up")
	require.NoError(t, err)

	// Anonymous viewers get no vote field.
	got, err := svc.GetPost(context.Background(), post.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, got.UserVote)

	got, err = svc.GetPost(context.Background(), post.ID, 2)
	require.NoError(t, err)
	require.NotNil(t, got.UserVote)
	assert.Equal(t, "up", *got.UserVote)

	// A member who never voted still sees nil.
	got, err = svc.GetPost(context.Background(), post.ID, 3)
	require.NoError(t, err)
	assert.Nil(t, got.UserVote)
}

func TestForumService_VoteToggle(t *testing.T) {
	store := newFakeForumStore()
	svc := newTestForumService(store)

	post, err := svc.CreatePost(context.Background(), &dto.CreateForumPostRequest{
		Title:   "Vote on me",
		Content: "Please",
	}, 1)
	require.NoError(t, err)

	res, err := svc.VotePost(context.Background(), post.ID, 2, "up")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Upvotes)
	require.NotNil(t, res.UserVote)
	assert.Equal(t, "up", *res.UserVote)

	// Switching direction replaces the vote
	res, err = svc.VotePost(context.Background(), post.ID, 2, "down")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Upvotes)
	assert.Equal(t, 1, res.Downvotes)

	// Repeating it clears the vote
	res, err = svc.VotePost(context.Background(), post.ID, 2, "down")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Downvotes)
	assert.Nil(t, res.UserVote)
}

func TestForumService_ReplyToMissingPost(t *testing.T) {
	svc := newTestForumService(newFakeForumStore())

	_, err := svc.CreateReply(context.Background(), 42, &dto.CreateForumReplyRequest{Content: "hi"}, 1)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}
