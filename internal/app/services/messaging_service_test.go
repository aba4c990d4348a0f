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

type fakeConversationStore struct {
	convs        map[int64]*models.Conversation
	participants map[int64][]int64
	messages     map[int64][]models.Message
	nextConvID   int64
	nextMsgID    int64
}

func newFakeConversationStore() *fakeConversationStore {
	return &fakeConversationStore{
		convs:        map[int64]*models.Conversation{},
		participants: map[int64][]int64{},
		messages:     map[int64][]models.Message{},
		nextConvID:   1,
		nextMsgID:    1,
	}
}

func (f *fakeConversationStore) CreateWithParticipants(ctx context.Context, conv *models.Conversation, participantIDs []int64) error {
	conv.ID = f.nextConvID
	f.nextConvID++
	f.convs[conv.ID] = conv
	f.participants[conv.ID] = participantIDs
	return nil
}

func (f *fakeConversationStore) GetByUserID(ctx context.Context, userID int64) ([]models.Conversation, error) {
	var out []models.Conversation
	for id, conv := range f.convs {
		for _, p := range f.participants[id] {
			if p == userID {
				out = append(out, *conv)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeConversationStore) GetByID(ctx context.Context, id int64) (*models.Conversation, error) {
	conv, ok := f.convs[id]
	if !ok {
		return nil, apperrors.ErrConversationNotFound
	}
	out := *conv
	for _, p := range f.participants[id] {
		out.Participants = append(out.Participants, models.User{ID: p})
	}
	return &out, nil
}

func (f *fakeConversationStore) IsParticipant(ctx context.Context, conversationID, userID int64) (bool, error) {
	for _, p := range f.participants[conversationID] {
		if p == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeConversationStore) AddParticipant(ctx context.Context, conversationID, userID int64) error {
	for _, p := range f.participants[conversationID] {
		if p == userID {
			return apperrors.ErrAlreadyMember
		}
	}
	f.participants[conversationID] = append(f.participants[conversationID], userID)
	return nil
}

func (f *fakeConversationStore) RemoveParticipant(ctx context.Context, conversationID, userID int64) error {
	ids := f.participants[conversationID]
	for i, p := range ids {
		if p == userID {
			f.participants[conversationID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrMemberNotFound
}

func (f *fakeConversationStore) Update(ctx context.Context, conv *models.Conversation) error {
	stored, ok := f.convs[conv.ID]
	if !ok {
		return apperrors.ErrConversationNotFound
	}
	stored.Name = conv.Name
	stored.Description = conv.Description
	return nil
}

func (f *fakeConversationStore) CreateMessage(ctx context.Context, msg *models.Message) error {
	if _, ok := f.convs[msg.ConversationID]; !ok {
		return apperrors.ErrConversationNotFound
	}
	msg.ID = f.nextMsgID
	f.nextMsgID++
	f.messages[msg.ConversationID] = append(f.messages[msg.ConversationID], *msg)
	return nil
}

func (f *fakeConversationStore) GetMessages(ctx context.Context, conversationID int64, limit int) ([]models.Message, error) {
	msgs := f.messages[conversationID]
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs, nil
}

func newTestMessagingService(store *fakeConversationStore) MessagingService {
	return NewMessagingService(store, nil, zerolog.Nop())
}

func TestMessagingService_DirectConversationForTwoPeople(t *testing.T) {
	store := newFakeConversationStore()
	svc := newTestMessagingService(store)

	conv, err := svc.CreateConversation(context.Background(), &dto.CreateConversationRequest{
		ParticipantIDs: []int64{2},
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, models.ConversationDirect, conv.Type)
	assert.Len(t, conv.Participants, 2)
}

func TestMessagingService_GroupConversationAboveTwo(t *testing.T) {
	store := newFakeConversationStore()
	svc := newTestMessagingService(store)

	conv, err := svc.CreateConversation(context.Background(), &dto.CreateConversationRequest{
		ParticipantIDs: []int64{2, 3},
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, models.ConversationGroup, conv.Type)
}

func TestMessagingService_DuplicateParticipantsCollapse(t *testing.T) {
	store := newFakeConversationStore()
	svc := newTestMessagingService(store)

	// The caller listed twice plus one other still makes a direct chat
	conv, err := svc.CreateConversation(context.Background(), &dto.CreateConversationRequest{
		ParticipantIDs: []int64{1, 2, 2},
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, models.ConversationDirect, conv.Type)
	assert.Len(t, conv.Participants, 2)
}

func TestMessagingService_SendMessageRequiresContentOrFile(t *testing.T) {
	store := newFakeConversationStore()
	svc := newTestMessagingService(store)

	conv, err := svc.CreateConversation(context.Background(), &dto.CreateConversationRequest{
		ParticipantIDs: []int64{2},
	}, 1)
	require.NoError(t, err)

	_, err = svc.SendMessage(context.Background(), &dto.SendMessageRequest{
		ConversationID: conv.ID,
	}, 1)
	assert.ErrorIs(t, err, apperrors.ErrEmptyMessage)

	empty := ""
	_, err = svc.SendMessage(context.Background(), &dto.SendMessageRequest{
		ConversationID: conv.ID,
		Content:        &empty,
	}, 1)
	assert.ErrorIs(t, err, apperrors.ErrEmptyMessage)

	content := "hey"
	msg, err := svc.SendMessage(context.Background(), &dto.SendMessageRequest{
		ConversationID: conv.ID,
		Content:        &content,
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), msg.SenderID)
}

func TestMessagingService_OutsiderCannotSendOrRead(t *testing.T) {
	store := newFakeConversationStore()
	svc := newTestMessagingService(store)

	conv, err := svc.CreateConversation(context.Background(), &dto.CreateConversationRequest{
		ParticipantIDs: []int64{2},
	}, 1)
	require.NoError(t, err)

	content := "psst"
	_, err = svc.SendMessage(context.Background(), &dto.SendMessageRequest{
		ConversationID: conv.ID,
		Content:        &content,
	}, 99)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.GetMessages(context.Background(), conv.ID, 99, 0)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.GetConversationMembers(context.Background(), conv.ID, 99)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestMessagingService_MembershipManagement(t *testing.T) {
	store := newFakeConversationStore()
	svc := newTestMessagingService(store)

	conv, err := svc.CreateConversation(context.Background(), &dto.CreateConversationRequest{
		ParticipantIDs: []int64{2},
	}, 1)
	require.NoError(t, err)

	require.NoError(t, svc.AddConversationMember(context.Background(), conv.ID, 1, 3))
	err = svc.AddConversationMember(context.Background(), conv.ID, 1, 3)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyMember)

	require.NoError(t, svc.RemoveConversationMember(context.Background(), conv.ID, 1, 3))
	err = svc.RemoveConversationMember(context.Background(), conv.ID, 1, 3)
	assert.ErrorIs(t, err, apperrors.ErrMemberNotFound)
}

func TestMessagingService_GetMessagesDefaultsLimit(t *testing.T) {
	store := newFakeConversationStore()
	svc := newTestMessagingService(store)

	conv, err := svc.CreateConversation(context.Background(), &dto.CreateConversationRequest{
		ParticipantIDs: []int64{2},
	}, 1)
	require.NoError(t, err)

	content := "hello"
	_, err = svc.SendMessage(context.Background(), &dto.SendMessageRequest{
		ConversationID: conv.ID,
		Content:        &content,
	}, 1)
	require.NoError(t, err)

	msgs, err := svc.GetMessages(context.Background(), conv.ID, 2, 0)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}
