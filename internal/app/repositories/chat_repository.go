package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjunm/placementpulse/internal/app/models"
	"github.com/arjunm/placementpulse/internal/db"
	"github.com/arjunm/placementpulse/internal/pkg/apperrors"
)

// ChatRepository handles conversation and message database operations
type ChatRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanConversation(row pgx.Row) (*models.Conversation, error) {
	var conv models.Conversation
	err := row.Scan(
		&conv.ID,
		&conv.ParticipantOne,
		&conv.ParticipantTwo,
		&conv.LastMessageAt,
		&conv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// GetOrCreateConversation returns the unique conversation between two users,
// creating it if needed. The pair is normalized before hitting the unique
// constraint, so both call orders resolve to the same row even under
// concurrent creation.
func (r *ChatRepository) GetOrCreateConversation(ctx context.Context, userA, userB int64) (*models.Conversation, error) {
	first, second := models.NormalizePair(userA, userB)

	selectQuery := `
		SELECT id, participant_one, participant_two, last_message_at, created_at
		FROM conversations
		WHERE participant_one = $1 AND participant_two = $2
	`

	conv, err := scanConversation(r.db.QueryRow(ctx, selectQuery, first, second))
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("error retrieving conversation: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO conversations (participant_one, participant_two)
		VALUES ($1, $2)
		ON CONFLICT (participant_one, participant_two) DO NOTHING
	`, first, second)
	if err != nil {
		return nil, fmt.Errorf("error creating conversation: %w", err)
	}

	conv, err = scanConversation(r.db.QueryRow(ctx, selectQuery, first, second))
	if err != nil {
		return nil, fmt.Errorf("error retrieving created conversation: %w", err)
	}
	return conv, nil
}

// GetConversation retrieves a conversation by its id
func (r *ChatRepository) GetConversation(ctx context.Context, id int64) (*models.Conversation, error) {
	query := `
		SELECT id, participant_one, participant_two, last_message_at, created_at
		FROM conversations
		WHERE id = $1
	`

	conv, err := scanConversation(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrConversationNotFound
		}
		return nil, fmt.Errorf("error retrieving conversation: %w", err)
	}
	return conv, nil
}

// ListConversations retrieves the user's conversations newest-activity first,
// each with the other participant, the latest message and the unread count
func (r *ChatRepository) ListConversations(ctx context.Context, userID int64) ([]*models.Conversation, error) {
	query := `
		SELECT cv.id, cv.participant_one, cv.participant_two, cv.last_message_at, cv.created_at,
			u.id, u.name, u.college, u.course, u.year, u.profile_picture,
			lm.id, lm.sender_id, lm.content, lm.message_type, lm.file_name, lm.is_read, lm.created_at,
			(
				SELECT COUNT(*) FROM messages m
				WHERE m.conversation_id = cv.id AND m.sender_id != $1 AND m.is_read = false
			) AS unread_count
		FROM conversations cv
		JOIN users u ON u.id = CASE WHEN cv.participant_one = $1 THEN cv.participant_two ELSE cv.participant_one END
		LEFT JOIN LATERAL (
			SELECT id, sender_id, content, message_type, file_name, is_read, created_at
			FROM messages
			WHERE conversation_id = cv.id
			ORDER BY created_at DESC
			LIMIT 1
		) lm ON true
		WHERE cv.participant_one = $1 OR cv.participant_two = $1
		ORDER BY COALESCE(cv.last_message_at, cv.created_at) DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing conversations: %w", err)
	}
	defer rows.Close()

	var conversations []*models.Conversation
	for rows.Next() {
		var conv models.Conversation
		var other models.User
		var lmID, lmSenderID *int64
		var lmContent *string
		var lmType *models.MessageType
		var lmFileName *string
		var lmIsRead *bool
		var lmCreatedAt *time.Time

		err := rows.Scan(
			&conv.ID,
			&conv.ParticipantOne,
			&conv.ParticipantTwo,
			&conv.LastMessageAt,
			&conv.CreatedAt,
			&other.ID,
			&other.Name,
			&other.College,
			&other.Course,
			&other.Year,
			&other.ProfilePicture,
			&lmID,
			&lmSenderID,
			&lmContent,
			&lmType,
			&lmFileName,
			&lmIsRead,
			&lmCreatedAt,
			&conv.UnreadCount,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning conversation row: %w", err)
		}

		conv.OtherUser = &other
		if lmID != nil {
			conv.LastMessage = &models.Message{
				ID:             *lmID,
				ConversationID: conv.ID,
				SenderID:       *lmSenderID,
				Content:        *lmContent,
				MessageType:    *lmType,
				FileName:       lmFileName,
				IsRead:         *lmIsRead,
				CreatedAt:      *lmCreatedAt,
			}
		}
		conversations = append(conversations, &conv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conversation rows: %w", err)
	}

	return conversations, nil
}

// CreateMessage inserts a message and bumps the conversation activity marker
// in the same transaction
func (r *ChatRepository) CreateMessage(ctx context.Context, msg *models.Message) (int64, error) {
	query := `
		INSERT INTO messages (conversation_id, sender_id, content, message_type, file_name, file_data, is_read)
		VALUES ($1, $2, $3, $4, $5, $6, false)
		RETURNING id, created_at
	`

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, query,
			msg.ConversationID,
			msg.SenderID,
			msg.Content,
			msg.MessageType,
			msg.FileName,
			msg.FileData,
		).Scan(&msg.ID, &msg.CreatedAt)
		if err != nil {
			return fmt.Errorf("error creating message: %w", err)
		}

		_, err = tx.Exec(ctx,
			`UPDATE conversations SET last_message_at = $2 WHERE id = $1`,
			msg.ConversationID, msg.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("error updating conversation activity: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return msg.ID, nil
}

// ListMessages retrieves a page of messages oldest first with sender info
func (r *ChatRepository) ListMessages(ctx context.Context, conversationID int64, offset uint64, limit int) ([]*models.Message, int64, error) {
	var totalCount int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM messages WHERE conversation_id = $1`,
		conversationID,
	).Scan(&totalCount)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting messages: %w", err)
	}

	query := `
		SELECT m.id, m.conversation_id, m.sender_id, m.content, m.message_type,
			m.file_name, m.file_data, m.is_read, m.created_at,
			u.id, u.name, u.profile_picture
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.conversation_id = $1
		ORDER BY m.created_at ASC
		OFFSET $2 LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, conversationID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		var msg models.Message
		var sender models.User
		err := rows.Scan(
			&msg.ID,
			&msg.ConversationID,
			&msg.SenderID,
			&msg.Content,
			&msg.MessageType,
			&msg.FileName,
			&msg.FileData,
			&msg.IsRead,
			&msg.CreatedAt,
			&sender.ID,
			&sender.Name,
			&sender.ProfilePicture,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning message row: %w", err)
		}
		msg.Sender = &sender
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating message rows: %w", err)
	}

	return messages, totalCount, nil
}

// MarkRead flags every message sent by the other participant as read and
// returns how many were updated
func (r *ChatRepository) MarkRead(ctx context.Context, conversationID, readerID int64) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE messages
		SET is_read = true
		WHERE conversation_id = $1 AND sender_id != $2 AND is_read = false
	`, conversationID, readerID)
	if err != nil {
		return 0, fmt.Errorf("error marking messages read: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
