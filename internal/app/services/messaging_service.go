package services

import (
	"context"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/ecakir/campushub/internal/app/models"
	"github.com/ecakir/campushub/internal/app/models/dto"
	"github.com/ecakir/campushub/internal/pkg/apperrors"
	"github.com/ecakir/campushub/internal/pkg/filestorage"
)

type conversationStore interface {
	CreateWithParticipants(ctx context.Context, conv *models.Conversation, participantIDs []int64) error
	GetByUserID(ctx context.Context, userID int64) ([]models.Conversation, error)
	GetByID(ctx context.Context, id int64) (*models.Conversation, error)
	IsParticipant(ctx context.Context, conversationID, userID int64) (bool, error)
	AddParticipant(ctx context.Context, conversationID, userID int64) error
	RemoveParticipant(ctx context.Context, conversationID, userID int64) error
	Update(ctx context.Context, conv *models.Conversation) error
	CreateMessage(ctx context.Context, msg *models.Message) error
	GetMessages(ctx context.Context, conversationID int64, limit int) ([]models.Message, error)
}

const defaultMessagePageSize = 100

// MessagingService defines the interface for conversations and messages
type MessagingService interface {
	CreateConversation(ctx context.Context, req *dto.CreateConversationRequest, creatorID int64) (*models.Conversation, error)
	GetConversations(ctx context.Context, userID int64) ([]models.Conversation, error)
	GetConversationMembers(ctx context.Context, conversationID, callerID int64) ([]models.User, error)
	AddConversationMember(ctx context.Context, conversationID, callerID, userID int64) error
	RemoveConversationMember(ctx context.Context, conversationID, callerID, userID int64) error
	UpdateConversation(ctx context.Context, conversationID, callerID int64, req *dto.UpdateConversationRequest) (*models.Conversation, error)
	SendMessage(ctx context.Context, req *dto.SendMessageRequest, senderID int64) (*models.Message, error)
	SendFileMessage(ctx context.Context, conversationID int64, file *multipart.FileHeader, senderID int64) (*models.Message, error)
	GetMessages(ctx context.Context, conversationID, callerID int64, limit int) ([]models.Message, error)
}

type messagingServiceImpl struct {
	convRepo conversationStore
	storage  filestorage.FileStorage
	logger   zerolog.Logger
}

// NewMessagingService creates a new MessagingService
func NewMessagingService(convRepo conversationStore, storage filestorage.FileStorage, logger zerolog.Logger) MessagingService {
	return &messagingServiceImpl{
		convRepo: convRepo,
		storage:  storage,
		logger:   logger,
	}
}

// CreateConversation starts a conversation between the caller and the
// requested participants. The caller is always part of the set, and the
// type is fixed to 'group' when more than two people are in it.
func (s *messagingServiceImpl) CreateConversation(ctx context.Context, req *dto.CreateConversationRequest, creatorID int64) (*models.Conversation, error) {
	seen := map[int64]bool{creatorID: true}
	participantIDs := []int64{creatorID}
	for _, id := range req.ParticipantIDs {
		if !seen[id] {
			seen[id] = true
			participantIDs = append(participantIDs, id)
		}
	}

	convType := models.ConversationDirect
	if len(participantIDs) > 2 {
		convType = models.ConversationGroup
	}

	conv := &models.Conversation{Type: convType}
	if err := s.convRepo.CreateWithParticipants(ctx, conv, participantIDs); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("conversationId", conv.ID).Str("type", convType).
		Int("participants", len(participantIDs)).Msg("Conversation created")
	return s.convRepo.GetByID(ctx, conv.ID)
}

// GetConversations lists the caller's conversations with participants
// and most recent messages.
func (s *messagingServiceImpl) GetConversations(ctx context.Context, userID int64) ([]models.Conversation, error) {
	return s.convRepo.GetByUserID(ctx, userID)
}

// GetConversationMembers lists a conversation's participants. The caller
// must be one of them.
func (s *messagingServiceImpl) GetConversationMembers(ctx context.Context, conversationID, callerID int64) ([]models.User, error) {
	conv, err := s.requireParticipant(ctx, conversationID, callerID)
	if err != nil {
		return nil, err
	}
	return conv.Participants, nil
}

// AddConversationMember adds a user to a conversation the caller is in
func (s *messagingServiceImpl) AddConversationMember(ctx context.Context, conversationID, callerID, userID int64) error {
	if _, err := s.requireParticipant(ctx, conversationID, callerID); err != nil {
		return err
	}
	return s.convRepo.AddParticipant(ctx, conversationID, userID)
}

// RemoveConversationMember removes a user from a conversation the
// caller is in.
func (s *messagingServiceImpl) RemoveConversationMember(ctx context.Context, conversationID, callerID, userID int64) error {
	if _, err := s.requireParticipant(ctx, conversationID, callerID); err != nil {
		return err
	}
	return s.convRepo.RemoveParticipant(ctx, conversationID, userID)
}

// UpdateConversation renames or re-describes a conversation
func (s *messagingServiceImpl) UpdateConversation(ctx context.Context, conversationID, callerID int64, req *dto.UpdateConversationRequest) (*models.Conversation, error) {
	conv, err := s.requireParticipant(ctx, conversationID, callerID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		conv.Name = req.Name
	}
	if req.Description != nil {
		conv.Description = req.Description
	}
	if err := s.convRepo.Update(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// SendMessage posts a message. It must carry text or a file reference.
func (s *messagingServiceImpl) SendMessage(ctx context.Context, req *dto.SendMessageRequest, senderID int64) (*models.Message, error) {
	hasContent := req.Content != nil && *req.Content != ""
	hasFile := req.FileURL != nil && *req.FileURL != ""
	if !hasContent && !hasFile {
		return nil, apperrors.ErrEmptyMessage
	}

	if _, err := s.requireParticipant(ctx, req.ConversationID, senderID); err != nil {
		return nil, err
	}

	msg := &models.Message{
		Content:        req.Content,
		SenderID:       senderID,
		ConversationID: req.ConversationID,
		FileURL:        req.FileURL,
		FileName:       req.FileName,
		FileType:       req.FileType,
		FileSize:       req.FileSize,
	}
	if err := s.convRepo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// SendFileMessage stores an attachment and posts a message carrying its
// metadata. The stored file is removed if the message cannot be written.
func (s *messagingServiceImpl) SendFileMessage(ctx context.Context, conversationID int64, file *multipart.FileHeader, senderID int64) (*models.Message, error) {
	if _, err := s.requireParticipant(ctx, conversationID, senderID); err != nil {
		return nil, err
	}

	stored, err := s.storage.SaveFile(file)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to store message attachment")
		return nil, err
	}

	content := "Sent a file: " + stored.OriginalName
	msg := &models.Message{
		Content:        &content,
		SenderID:       senderID,
		ConversationID: conversationID,
		FileURL:        &stored.URL,
		FileName:       &stored.OriginalName,
		FileType:       &stored.MimeType,
		FileSize:       &stored.Size,
	}
	if err := s.convRepo.CreateMessage(ctx, msg); err != nil {
		if delErr := s.storage.DeleteFile(stored.Filename); delErr != nil {
			s.logger.Warn().Err(delErr).Str("filename", stored.Filename).Msg("Failed to clean up orphaned attachment")
		}
		return nil, err
	}
	return msg, nil
}

// GetMessages lists a conversation's messages oldest first. The caller
// must be a participant.
func (s *messagingServiceImpl) GetMessages(ctx context.Context, conversationID, callerID int64, limit int) ([]models.Message, error) {
	ok, err := s.convRepo.IsParticipant(ctx, conversationID, callerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NewForbiddenError("not a participant of this conversation")
	}
	if limit <= 0 {
		limit = defaultMessagePageSize
	}
	return s.convRepo.GetMessages(ctx, conversationID, limit)
}

// requireParticipant loads a conversation and verifies the caller
// belongs to it.
func (s *messagingServiceImpl) requireParticipant(ctx context.Context, conversationID, callerID int64) (*models.Conversation, error) {
	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	for _, p := range conv.Participants {
		if p.ID == callerID {
			return conv, nil
		}
	}
	return nil, apperrors.NewForbiddenError("not a participant of this conversation")
}
