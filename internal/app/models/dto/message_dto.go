package dto

// CreateConversationRequest starts a conversation. The caller is always
// added to the participant set; type becomes 'group' above two total
// participants.
type CreateConversationRequest struct {
	ParticipantIDs []int64 `json:"participantIds" binding:"required,min=1"`
}

// SendMessageRequest represents a chat message payload. At least one of
// Content or FileURL must be present; enforced in the service.
type SendMessageRequest struct {
	ConversationID int64   `json:"conversationId" binding:"required"`
	Content        *string `json:"content,omitempty"`
	FileURL        *string `json:"fileUrl,omitempty"`
	FileName       *string `json:"fileName,omitempty"`
	FileType       *string `json:"fileType,omitempty"`
	FileSize       *int64  `json:"fileSize,omitempty"`
}

// UpdateConversationRequest renames or re-describes a conversation
type UpdateConversationRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
}

// AddConversationMemberRequest adds a user to a conversation
type AddConversationMemberRequest struct {
	UserID int64 `json:"userId" binding:"required"`
}
