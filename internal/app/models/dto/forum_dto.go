package dto

// CreateForumPostRequest represents a new discussion thread
type CreateForumPostRequest struct {
	Title      string   `json:"title" binding:"required,max=255"`
	Content    string   `json:"content" binding:"required"`
	CategoryID *int64   `json:"categoryId,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// CreateForumReplyRequest represents an answer on a post
type CreateForumReplyRequest struct {
	Content string `json:"content" binding:"required"`
}

// VoteRequest represents a vote on a post or reply
type VoteRequest struct {
	VoteType string `json:"voteType" binding:"required,oneof=up down"`
}

// VoteResult carries the recomputed counters after a vote mutation.
// UserVote is nil when the user's vote was cleared by the toggle.
type VoteResult struct {
	Upvotes   int     `json:"upvotes"`
	Downvotes int     `json:"downvotes"`
	UserVote  *string `json:"userVote"`
}

// ForumPostFilter represents optional post list filters
type ForumPostFilter struct {
	CategoryID *int64
	Limit      int
}
