package models

import "time"

// Conversation types. A conversation is 'group' iff it had more than two
// participants at creation time; the type is not re-evaluated later.
const (
	ConversationDirect = "direct"
	ConversationGroup  = "group"
)

// Conversation defines a messaging thread based on the 'conversations' table
type Conversation struct {
	ID          int64     `json:"id" db:"id"`
	Type        string    `json:"type" db:"type"`
	Name        *string   `json:"name,omitempty" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Participants []User   `json:"participants,omitempty"`
	LastMessage  *Message `json:"lastMessage,omitempty"`
}

// ConversationParticipant joins a user to a conversation
type ConversationParticipant struct {
	ID             int64     `json:"id" db:"id"`
	ConversationID int64     `json:"conversationId" db:"conversation_id"`
	UserID         int64     `json:"userId" db:"user_id"`
	JoinedAt       time.Time `json:"joinedAt" db:"joined_at"`
}

// Message defines a chat message. At least one of Content or FileURL is
// always present.
type Message struct {
	ID             int64     `json:"id" db:"id"`
	Content        *string   `json:"content,omitempty" db:"content"`
	SenderID       int64     `json:"senderId" db:"sender_id"`
	ConversationID int64     `json:"conversationId" db:"conversation_id"`
	FileURL        *string   `json:"fileUrl,omitempty" db:"file_url"`
	FileName       *string   `json:"fileName,omitempty" db:"file_name"`
	FileType       *string   `json:"fileType,omitempty" db:"file_type"`
	FileSize       *int64    `json:"fileSize,omitempty" db:"file_size"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`

	Sender *User `json:"sender,omitempty"`
}
