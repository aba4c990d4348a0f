package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ecakir/campushub/internal/app/models"
	"github.com/ecakir/campushub/internal/app/models/dto"
	"github.com/ecakir/campushub/internal/db"
	"github.com/ecakir/campushub/internal/pkg/apperrors"
	"github.com/ecakir/campushub/internal/pkg/dberrors"
	"github.com/ecakir/campushub/internal/pkg/logger"
)

// ForumRepository handles database operations for forum categories, posts,
// replies and votes. Vote mutations run in a transaction so the toggle
// decision and the counter recompute see a consistent snapshot.
type ForumRepository struct {
	db *db.PostgresDB
}

// NewForumRepository creates a new ForumRepository
func NewForumRepository(database *db.PostgresDB) *ForumRepository {
	return &ForumRepository{db: database}
}

// GetCategories retrieves all forum categories ordered by name
func (r *ForumRepository) GetCategories(ctx context.Context) ([]models.ForumCategory, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, name, description, created_at FROM forum_categories ORDER BY name`)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get forum categories query")
		return nil, err
	}
	defer rows.Close()

	categories := make([]models.ForumCategory, 0)
	for rows.Next() {
		var c models.ForumCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// CreatePost inserts a new forum post
func (r *ForumRepository) CreatePost(ctx context.Context, post *models.ForumPost) error {
	query := `
		INSERT INTO forum_posts (title, content, author_id, category_id, tags)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, upvotes, downvotes, views, is_pinned, created_at, updated_at
	`
	err := r.db.Pool.QueryRow(ctx, query,
		post.Title, post.Content, post.AuthorID, post.CategoryID, post.Tags,
	).Scan(&post.ID, &post.Upvotes, &post.Downvotes, &post.Views, &post.IsPinned,
		&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCategoryNotFound
		}
		logger.Error().Err(err).Msg("Error executing create forum post query")
		return err
	}
	return nil
}

// Common select query builder for posts with author, category and reply count
func (r *ForumRepository) selectPostQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"p.id", "p.title", "p.content", "p.author_id", "p.category_id",
		"p.upvotes", "p.downvotes", "p.views", "p.is_pinned", "p.tags",
		"p.created_at", "p.updated_at",
		"u.id", "u.email", "u.first_name", "u.last_name", "u.profile_picture",
		"c.id", "c.name", "c.description", "c.created_at",
		"(SELECT count(*) FROM forum_replies fr WHERE fr.post_id = p.id) AS reply_count",
	).From("forum_posts p").
		Join("users u ON p.author_id = u.id").
		LeftJoin("forum_categories c ON p.category_id = c.id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanPost(row pgx.Row) (*models.ForumPost, error) {
	var p models.ForumPost
	var author models.User
	var catID *int64
	var catName, catDesc *string
	var catCreated *time.Time
	err := row.Scan(
		&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.CategoryID,
		&p.Upvotes, &p.Downvotes, &p.Views, &p.IsPinned, &p.Tags,
		&p.CreatedAt, &p.UpdatedAt,
		&author.ID, &author.Email, &author.FirstName, &author.LastName, &author.ProfilePicture,
		&catID, &catName, &catDesc, &catCreated,
		&p.ReplyCount,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, err
	}
	p.Author = &author
	if catID != nil {
		p.Category = &models.ForumCategory{ID: *catID, Name: *catName, Description: catDesc}
		if catCreated != nil {
			p.Category.CreatedAt = *catCreated
		}
	}
	return &p, nil
}

// GetPosts retrieves posts with authors and reply counts, pinned posts
// first, then newest first.
func (r *ForumRepository) GetPosts(ctx context.Context, filter dto.ForumPostFilter) ([]models.ForumPost, error) {
	builder := r.selectPostQuery().OrderBy("p.is_pinned DESC", "p.created_at DESC")

	if filter.CategoryID != nil {
		builder = builder.Where(squirrel.Eq{"p.category_id": *filter.CategoryID})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get forum posts SQL")
		return nil, err
	}

	rows, err := r.db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get forum posts query")
		return nil, err
	}
	defer rows.Close()

	posts := make([]models.ForumPost, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// GetPostByID retrieves a post with its author, category and full reply
// list. The view counter is bumped by IncrementViews, not here.
func (r *ForumRepository) GetPostByID(ctx context.Context, id int64) (*models.ForumPost, error) {
	sqlStr, args, err := r.selectPostQuery().Where(squirrel.Eq{"p.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get forum post SQL")
		return nil, err
	}

	post, err := scanPost(r.db.Pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return nil, err
	}

	replies, err := r.getRepliesByPostID(ctx, id)
	if err != nil {
		return nil, err
	}
	post.Replies = replies
	post.ReplyCount = len(replies)
	return post, nil
}

// GetUserVoteForPost returns the vote a user has cast on a post, or nil
// when they have not voted.
func (r *ForumRepository) GetUserVoteForPost(ctx context.Context, postID, userID int64) (*string, error) {
	var voteType string
	err := r.db.Pool.QueryRow(ctx,
		`SELECT vote_type FROM post_votes WHERE post_id = $1 AND user_id = $2`,
		postID, userID).Scan(&voteType)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &voteType, nil
}

// IncrementViews bumps the view counter for a post
func (r *ForumRepository) IncrementViews(ctx context.Context, postID int64) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE forum_posts SET views = views + 1 WHERE id = $1`, postID)
	if err != nil {
		logger.Error().Err(err).Msg("Error incrementing forum post views")
	}
	return err
}

func (r *ForumRepository) getRepliesByPostID(ctx context.Context, postID int64) ([]models.ForumReply, error) {
	query := `
		SELECT fr.id, fr.content, fr.author_id, fr.post_id, fr.upvotes, fr.downvotes,
		       fr.created_at, fr.updated_at,
		       u.id, u.email, u.first_name, u.last_name, u.profile_picture
		FROM forum_replies fr
		JOIN users u ON fr.author_id = u.id
		WHERE fr.post_id = $1
		ORDER BY fr.created_at
	`
	rows, err := r.db.Pool.Query(ctx, query, postID)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get forum replies query")
		return nil, err
	}
	defer rows.Close()

	replies := make([]models.ForumReply, 0)
	for rows.Next() {
		var reply models.ForumReply
		var author models.User
		err := rows.Scan(
			&reply.ID, &reply.Content, &reply.AuthorID, &reply.PostID,
			&reply.Upvotes, &reply.Downvotes, &reply.CreatedAt, &reply.UpdatedAt,
			&author.ID, &author.Email, &author.FirstName, &author.LastName, &author.ProfilePicture,
		)
		if err != nil {
			return nil, err
		}
		reply.Author = &author
		replies = append(replies, reply)
	}
	return replies, rows.Err()
}

// CreateReply inserts a new reply on a post
func (r *ForumRepository) CreateReply(ctx context.Context, reply *models.ForumReply) error {
	query := `
		INSERT INTO forum_replies (content, author_id, post_id)
		VALUES ($1, $2, $3)
		RETURNING id, upvotes, downvotes, created_at, updated_at
	`
	err := r.db.Pool.QueryRow(ctx, query, reply.Content, reply.AuthorID, reply.PostID).
		Scan(&reply.ID, &reply.Upvotes, &reply.Downvotes, &reply.CreatedAt, &reply.UpdatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrPostNotFound
		}
		logger.Error().Err(err).Msg("Error executing create forum reply query")
		return err
	}
	return nil
}

// VotePost applies a user's vote on a post. Repeating the same vote clears
// it, a different vote replaces the old one. The post's counters are
// recomputed from the vote rows in the same transaction.
func (r *ForumRepository) VotePost(ctx context.Context, postID, userID int64, voteType string) (*dto.VoteResult, error) {
	return r.applyVote(ctx, voteTarget{
		votesTable:   "post_votes",
		targetColumn: "post_id",
		parentTable:  "forum_posts",
		notFound:     apperrors.ErrPostNotFound,
	}, postID, userID, voteType)
}

// VoteReply applies a user's vote on a reply with the same semantics as
// VotePost.
func (r *ForumRepository) VoteReply(ctx context.Context, replyID, userID int64, voteType string) (*dto.VoteResult, error) {
	return r.applyVote(ctx, voteTarget{
		votesTable:   "reply_votes",
		targetColumn: "reply_id",
		parentTable:  "forum_replies",
		notFound:     apperrors.ErrReplyNotFound,
	}, replyID, userID, voteType)
}

type voteTarget struct {
	votesTable   string
	targetColumn string
	parentTable  string
	notFound     error
}

func (r *ForumRepository) applyVote(ctx context.Context, target voteTarget, targetID, userID int64, voteType string) (*dto.VoteResult, error) {
	var result dto.VoteResult

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		// Lock the parent row so concurrent votes serialize on it.
		var lockedID int64
		err := tx.QueryRow(ctx,
			`SELECT id FROM `+target.parentTable+` WHERE id = $1 FOR UPDATE`,
			targetID).Scan(&lockedID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return target.notFound
			}
			return err
		}

		var existing *string
		err = tx.QueryRow(ctx,
			`SELECT vote_type FROM `+target.votesTable+` WHERE `+target.targetColumn+` = $1 AND user_id = $2`,
			targetID, userID).Scan(&existing)
		if err != nil && err != pgx.ErrNoRows {
			return err
		}

		switch {
		case existing == nil:
			_, err = tx.Exec(ctx,
				`INSERT INTO `+target.votesTable+` (`+target.targetColumn+`, user_id, vote_type) VALUES ($1, $2, $3)`,
				targetID, userID, voteType)
			result.UserVote = &voteType
		case *existing == voteType:
			_, err = tx.Exec(ctx,
				`DELETE FROM `+target.votesTable+` WHERE `+target.targetColumn+` = $1 AND user_id = $2`,
				targetID, userID)
			result.UserVote = nil
		default:
			_, err = tx.Exec(ctx,
				`UPDATE `+target.votesTable+` SET vote_type = $3 WHERE `+target.targetColumn+` = $1 AND user_id = $2`,
				targetID, userID, voteType)
			result.UserVote = &voteType
		}
		if err != nil {
			return err
		}

		return tx.QueryRow(ctx, `
			UPDATE `+target.parentTable+` SET
				upvotes   = (SELECT count(*) FROM `+target.votesTable+` v WHERE v.`+target.targetColumn+` = $1 AND v.vote_type = 'up'),
				downvotes = (SELECT count(*) FROM `+target.votesTable+` v WHERE v.`+target.targetColumn+` = $1 AND v.vote_type = 'down')
			WHERE id = $1
			RETURNING upvotes, downvotes
		`, targetID).Scan(&result.Upvotes, &result.Downvotes)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
