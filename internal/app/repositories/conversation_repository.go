package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/ecakir/campushub/internal/app/models"
	"github.com/ecakir/campushub/internal/db"
	"github.com/ecakir/campushub/internal/pkg/apperrors"
	"github.com/ecakir/campushub/internal/pkg/dberrors"
	"github.com/ecakir/campushub/internal/pkg/logger"
)

// ConversationRepository handles database operations for conversations,
// their participants and messages
type ConversationRepository struct {
	db *db.PostgresDB
}

// NewConversationRepository creates a new ConversationRepository
func NewConversationRepository(database *db.PostgresDB) *ConversationRepository {
	return &ConversationRepository{db: database}
}

// CreateWithParticipants inserts a conversation and its participant rows
// in one transaction. The caller decides the conversation type from the
// participant count.
func (r *ConversationRepository) CreateWithParticipants(ctx context.Context, conv *models.Conversation, participantIDs []int64) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO conversations (type, name, description)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, updated_at
		`
		err := tx.QueryRow(ctx, query, conv.Type, conv.Name, conv.Description).
			Scan(&conv.ID, &conv.CreatedAt, &conv.UpdatedAt)
		if err != nil {
			logger.Error().Err(err).Msg("Error executing create conversation query")
			return err
		}

		for _, userID := range participantIDs {
			_, err := tx.Exec(ctx,
				`INSERT INTO conversation_participants (conversation_id, user_id) VALUES ($1, $2)`,
				conv.ID, userID)
			if err != nil {
				if dberrors.IsForeignKeyViolation(err) {
					return apperrors.ErrUserNotFound
				}
				return err
			}
		}
		return nil
	})
}

// GetByUserID lists a user's conversations newest-activity first. The
// participants and last messages for the whole page are fetched with one
// batch query each rather than per conversation.
func (r *ConversationRepository) GetByUserID(ctx context.Context, userID int64) ([]models.Conversation, error) {
	query := `
		SELECT c.id, c.type, c.name, c.description, c.created_at, c.updated_at
		FROM conversations c
		JOIN conversation_participants cp ON cp.conversation_id = c.id
		WHERE cp.user_id = $1
		ORDER BY c.updated_at DESC
	`
	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get conversations by user query")
		return nil, err
	}
	defer rows.Close()

	conversations := make([]models.Conversation, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		var c models.Conversation
		err := rows.Scan(&c.ID, &c.Type, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, err
		}
		conversations = append(conversations, c)
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(conversations) == 0 {
		return conversations, nil
	}

	participants, err := r.getParticipantsBatch(ctx, ids)
	if err != nil {
		return nil, err
	}
	lastMessages, err := r.getLastMessagesBatch(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range conversations {
		conversations[i].Participants = participants[conversations[i].ID]
		conversations[i].LastMessage = lastMessages[conversations[i].ID]
	}
	return conversations, nil
}

func (r *ConversationRepository) getParticipantsBatch(ctx context.Context, conversationIDs []int64) (map[int64][]models.User, error) {
	query := `
		SELECT cp.conversation_id, u.id, u.email, u.first_name, u.last_name, u.profile_picture
		FROM conversation_participants cp
		JOIN users u ON cp.user_id = u.id
		WHERE cp.conversation_id = ANY($1)
		ORDER BY cp.joined_at
	`
	rows, err := r.db.Pool.Query(ctx, query, conversationIDs)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing batch participants query")
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64][]models.User)
	for rows.Next() {
		var convID int64
		var u models.User
		err := rows.Scan(&convID, &u.ID, &u.Email, &u.FirstName, &u.LastName, &u.ProfilePicture)
		if err != nil {
			return nil, err
		}
		result[convID] = append(result[convID], u)
	}
	return result, rows.Err()
}

func (r *ConversationRepository) getLastMessagesBatch(ctx context.Context, conversationIDs []int64) (map[int64]*models.Message, error) {
	query := `
		SELECT DISTINCT ON (m.conversation_id)
			m.id, m.content, m.sender_id, m.conversation_id,
			m.file_url, m.file_name, m.file_type, m.file_size, m.created_at,
			u.id, u.first_name, u.last_name
		FROM messages m
		JOIN users u ON m.sender_id = u.id
		WHERE m.conversation_id = ANY($1)
		ORDER BY m.conversation_id, m.created_at DESC
	`
	rows, err := r.db.Pool.Query(ctx, query, conversationIDs)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing batch last messages query")
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64]*models.Message)
	for rows.Next() {
		var m models.Message
		var sender models.User
		err := rows.Scan(
			&m.ID, &m.Content, &m.SenderID, &m.ConversationID,
			&m.FileURL, &m.FileName, &m.FileType, &m.FileSize, &m.CreatedAt,
			&sender.ID, &sender.FirstName, &sender.LastName,
		)
		if err != nil {
			return nil, err
		}
		m.Sender = &sender
		result[m.ConversationID] = &m
	}
	return result, rows.Err()
}

// GetByID retrieves a conversation with its participants
func (r *ConversationRepository) GetByID(ctx context.Context, id int64) (*models.Conversation, error) {
	var c models.Conversation
	query := `SELECT id, type, name, description, created_at, updated_at FROM conversations WHERE id = $1`
	err := r.db.Pool.QueryRow(ctx, query, id).
		Scan(&c.ID, &c.Type, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrConversationNotFound
		}
		logger.Error().Err(err).Msg("Error executing get conversation query")
		return nil, err
	}

	participants, err := r.getParticipantsBatch(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	c.Participants = participants[id]
	return &c, nil
}

// IsParticipant reports whether a user belongs to a conversation
func (r *ConversationRepository) IsParticipant(ctx context.Context, conversationID, userID int64) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM conversation_participants WHERE conversation_id = $1 AND user_id = $2)`,
		conversationID, userID).Scan(&exists)
	return exists, err
}

// AddParticipant adds a user to an existing conversation
func (r *ConversationRepository) AddParticipant(ctx context.Context, conversationID, userID int64) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO conversation_participants (conversation_id, user_id) VALUES ($1, $2)`,
		conversationID, userID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyMember
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrConversationNotFound
		}
		logger.Error().Err(err).Msg("Error executing add conversation participant query")
		return err
	}
	return nil
}

// RemoveParticipant drops a user from a conversation
func (r *ConversationRepository) RemoveParticipant(ctx context.Context, conversationID, userID int64) error {
	tag, err := r.db.Pool.Exec(ctx,
		`DELETE FROM conversation_participants WHERE conversation_id = $1 AND user_id = $2`,
		conversationID, userID)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing remove conversation participant query")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMemberNotFound
	}
	return nil
}

// Update changes a conversation's name and description
func (r *ConversationRepository) Update(ctx context.Context, conv *models.Conversation) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE conversations SET name = $2, description = $3, updated_at = now() WHERE id = $1`,
		conv.ID, conv.Name, conv.Description)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update conversation query")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConversationNotFound
	}
	return nil
}

// CreateMessage inserts a message and touches the conversation's
// updated_at so it sorts to the top of the list, in one transaction.
func (r *ConversationRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO messages (content, sender_id, conversation_id, file_url, file_name, file_type, file_size)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at
		`
		err := tx.QueryRow(ctx, query,
			msg.Content, msg.SenderID, msg.ConversationID,
			msg.FileURL, msg.FileName, msg.FileType, msg.FileSize,
		).Scan(&msg.ID, &msg.CreatedAt)
		if err != nil {
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrConversationNotFound
			}
			logger.Error().Err(err).Msg("Error executing create message query")
			return err
		}

		_, err = tx.Exec(ctx,
			`UPDATE conversations SET updated_at = now() WHERE id = $1`, msg.ConversationID)
		return err
	})
}

// GetMessages retrieves a conversation's messages in chronological order
// with their senders.
func (r *ConversationRepository) GetMessages(ctx context.Context, conversationID int64, limit int) ([]models.Message, error) {
	// Page from the newest end, then present oldest first.
	query := `
		SELECT * FROM (
			SELECT m.id, m.content, m.sender_id, m.conversation_id,
				m.file_url, m.file_name, m.file_type, m.file_size, m.created_at,
				u.id AS sender_pk, u.email, u.first_name, u.last_name, u.profile_picture
			FROM messages m
			JOIN users u ON m.sender_id = u.id
			WHERE m.conversation_id = $1
			ORDER BY m.created_at DESC
			LIMIT $2
		) page
		ORDER BY page.created_at
	`
	rows, err := r.db.Pool.Query(ctx, query, conversationID, limit)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get messages query")
		return nil, err
	}
	defer rows.Close()

	messages := make([]models.Message, 0)
	for rows.Next() {
		var m models.Message
		var sender models.User
		err := rows.Scan(
			&m.ID, &m.Content, &m.SenderID, &m.ConversationID,
			&m.FileURL, &m.FileName, &m.FileType, &m.FileSize, &m.CreatedAt,
			&sender.ID, &sender.Email, &sender.FirstName, &sender.LastName, &sender.ProfilePicture,
		)
		if err != nil {
			return nil, err
		}
		m.Sender = &sender
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
