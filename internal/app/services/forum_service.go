package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ecakir/campushub/internal/app/models"
	"github.com/ecakir/campushub/internal/app/models/dto"
)

type forumStore interface {
	GetCategories(ctx context.Context) ([]models.ForumCategory, error)
	CreatePost(ctx context.Context, post *models.ForumPost) error
	GetPosts(ctx context.Context, filter dto.ForumPostFilter) ([]models.ForumPost, error)
	GetPostByID(ctx context.Context, id int64) (*models.ForumPost, error)
	GetUserVoteForPost(ctx context.Context, postID, userID int64) (*string, error)
	IncrementViews(ctx context.Context, postID int64) error
	CreateReply(ctx context.Context, reply *models.ForumReply) error
	VotePost(ctx context.Context, postID, userID int64, voteType string) (*dto.VoteResult, error)
	VoteReply(ctx context.Context, replyID, userID int64, voteType string) (*dto.VoteResult, error)
}

const defaultPostLimit = 50

// ForumService defines the interface for forum operations
type ForumService interface {
	GetCategories(ctx context.Context) ([]models.ForumCategory, error)
	CreatePost(ctx context.Context, req *dto.CreateForumPostRequest, authorID int64) (*models.ForumPost, error)
	GetPosts(ctx context.Context, filter dto.ForumPostFilter) ([]models.ForumPost, error)
	GetPost(ctx context.Context, id, viewerID int64) (*models.ForumPost, error)
	CreateReply(ctx context.Context, postID int64, req *dto.CreateForumReplyRequest, authorID int64) (*models.ForumReply, error)
	VotePost(ctx context.Context, postID, userID int64, voteType string) (*dto.VoteResult, error)
	VoteReply(ctx context.Context, replyID, userID int64, voteType string) (*dto.VoteResult, error)
}

type forumServiceImpl struct {
	forumRepo forumStore
	logger    zerolog.Logger
}

// NewForumService creates a new ForumService
func NewForumService(forumRepo forumStore, logger zerolog.Logger) ForumService {
	return &forumServiceImpl{forumRepo: forumRepo, logger: logger}
}

// GetCategories lists all forum categories
func (s *forumServiceImpl) GetCategories(ctx context.Context) ([]models.ForumCategory, error) {
	return s.forumRepo.GetCategories(ctx)
}

// CreatePost opens a new discussion thread
func (s *forumServiceImpl) CreatePost(ctx context.Context, req *dto.CreateForumPostRequest, authorID int64) (*models.ForumPost, error) {
	post := &models.ForumPost{
		Title:      req.Title,
		Content:    req.Content,
		AuthorID:   authorID,
		CategoryID: req.CategoryID,
		Tags:       req.Tags,
	}
	if err := s.forumRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("postId", post.ID).Int64("authorId", authorID).Msg("Forum post created")
	return post, nil
}

// GetPosts lists posts, pinned first then newest, with the default limit
// applied when none is given.
func (s *forumServiceImpl) GetPosts(ctx context.Context, filter dto.ForumPostFilter) ([]models.ForumPost, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultPostLimit
	}
	return s.forumRepo.GetPosts(ctx, filter)
}

// GetPost retrieves one post with its replies and counts the view.
// When viewerID is non-zero the viewer's own vote is attached.
func (s *forumServiceImpl) GetPost(ctx context.Context, id, viewerID int64) (*models.ForumPost, error) {
	post, err := s.forumRepo.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.forumRepo.IncrementViews(ctx, id); err == nil {
		post.Views++
	}
	if viewerID != 0 {
		vote, err := s.forumRepo.GetUserVoteForPost(ctx, id, viewerID)
		if err != nil {
			s.logger.Warn().Err(err).Int64("postId", id).Msg("Failed to load viewer vote")
		} else {
			post.UserVote = vote
		}
	}
	return post, nil
}

// CreateReply answers a post
func (s *forumServiceImpl) CreateReply(ctx context.Context, postID int64, req *dto.CreateForumReplyRequest, authorID int64) (*models.ForumReply, error) {
	reply := &models.ForumReply{
		Content:  req.Content,
		AuthorID: authorID,
		PostID:   postID,
	}
	if err := s.forumRepo.CreateReply(ctx, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

// VotePost applies toggle vote semantics to a post
func (s *forumServiceImpl) VotePost(ctx context.Context, postID, userID int64, voteType string) (*dto.VoteResult, error) {
	return s.forumRepo.VotePost(ctx, postID, userID, voteType)
}

// VoteReply applies toggle vote semantics to a reply
func (s *forumServiceImpl) VoteReply(ctx context.Context, replyID, userID int64, voteType string) (*dto.VoteResult, error) {
	return s.forumRepo.VoteReply(ctx, replyID, userID, voteType)
}
