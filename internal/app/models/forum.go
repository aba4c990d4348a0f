package models

import "time"

// Vote types accepted for posts and replies
const (
	VoteUp   = "up"
	VoteDown = "down"
)

// ForumCategory groups forum posts by topic
type ForumCategory struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// ForumPost defines a discussion thread based on the 'forum_posts' table.
// Upvotes/downvotes are denormalized counters recomputed from the vote
// tables on every vote mutation.
type ForumPost struct {
	ID         int64     `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	Content    string    `json:"content" db:"content"`
	AuthorID   int64     `json:"authorId" db:"author_id"`
	CategoryID *int64    `json:"categoryId,omitempty" db:"category_id"`
	Upvotes    int       `json:"upvotes" db:"upvotes"`
	Downvotes  int       `json:"downvotes" db:"downvotes"`
	Views      int       `json:"views" db:"views"`
	IsPinned   bool      `json:"isPinned" db:"is_pinned"`
	Tags       []string  `json:"tags,omitempty" db:"tags"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Author     *User          `json:"author,omitempty"`
	Category   *ForumCategory `json:"category,omitempty"`
	Replies    []ForumReply   `json:"replies,omitempty"`
	ReplyCount int            `json:"replyCount"`
	UserVote   *string        `json:"userVote,omitempty"`
}

// ForumReply defines an answer on a post
type ForumReply struct {
	ID        int64     `json:"id" db:"id"`
	Content   string    `json:"content" db:"content"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	PostID    int64     `json:"postId" db:"post_id"`
	Upvotes   int       `json:"upvotes" db:"upvotes"`
	Downvotes int       `json:"downvotes" db:"downvotes"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Author *User `json:"author,omitempty"`
}

// Vote is a single user's vote on a post or reply. At most one vote per
// (user, target) pair exists; re-voting the same type clears it.
type Vote struct {
	ID       int64  `json:"id" db:"id"`
	UserID   int64  `json:"userId" db:"user_id"`
	TargetID int64  `json:"targetId"`
	VoteType string `json:"voteType" db:"vote_type"`
}
