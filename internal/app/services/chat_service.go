package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/arjunm/placementpulse/internal/app/models"
	"github.com/arjunm/placementpulse/internal/app/models/dto"
	"github.com/arjunm/placementpulse/internal/app/repositories"
	"github.com/arjunm/placementpulse/internal/pkg/apperrors"
	"github.com/arjunm/placementpulse/internal/pkg/helpers"
)

// ChatService defines the interface for 1:1 messaging operations
type ChatService interface {
	StartConversation(ctx context.Context, userID, otherUserID int64) (*dto.ConversationResponse, error)
	ListConversations(ctx context.Context, userID int64) ([]dto.ConversationResponse, error)
	GetMessages(ctx context.Context, conversationID, userID int64, page, size int) (*dto.MessageListResponse, error)
	MarkConversationRead(ctx context.Context, conversationID, userID int64) (int64, error)
	SendMessage(ctx context.Context, conversationID, userID int64, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
}

// chatServiceImpl implements the ChatService interface
type chatServiceImpl struct {
	chatRepo repositories.IChatRepository
	userRepo repositories.IUserRepository
}

// NewChatService creates a new chat service instance
func NewChatService(
	chatRepo repositories.IChatRepository,
	userRepo repositories.IUserRepository,
) ChatService {
	return &chatServiceImpl{
		chatRepo: chatRepo,
		userRepo: userRepo,
	}
}

// StartConversation opens (or returns) the unique conversation with another
// user. Calling it with either participant order yields the same conversation.
func (s *chatServiceImpl) StartConversation(ctx context.Context, userID, otherUserID int64) (*dto.ConversationResponse, error) {
	if otherUserID == userID {
		return nil, fmt.Errorf("%w: cannot start a conversation with yourself", apperrors.ErrValidationFailed)
	}

	other, err := s.userRepo.GetByID(ctx, otherUserID)
	if err != nil {
		return nil, err
	}
	if !other.IsActive {
		return nil, apperrors.ErrUserNotFound
	}

	conv, err := s.chatRepo.GetOrCreateConversation(ctx, userID, otherUserID)
	if err != nil {
		return nil, err
	}

	conv.OtherUser = other
	resp := dto.ToConversationResponse(conv)
	return &resp, nil
}

// ListConversations returns the caller's conversations, most recent activity first
func (s *chatServiceImpl) ListConversations(ctx context.Context, userID int64) ([]dto.ConversationResponse, error) {
	conversations, err := s.chatRepo.ListConversations(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ConversationResponse, 0, len(conversations))
	for _, conv := range conversations {
		items = append(items, dto.ToConversationResponse(conv))
	}
	return items, nil
}

// GetMessages returns a page of the conversation history, oldest first
func (s *chatServiceImpl) GetMessages(ctx context.Context, conversationID, userID int64, page, size int) (*dto.MessageListResponse, error) {
	if _, err := s.requireParticipant(ctx, conversationID, userID); err != nil {
		return nil, err
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	messages, totalCount, err := s.chatRepo.ListMessages(ctx, conversationID, offset, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.MessageResponse, 0, len(messages))
	for _, msg := range messages {
		items = append(items, dto.ToMessageResponse(msg))
	}

	return &dto.MessageListResponse{
		Messages:   items,
		Pagination: helpers.NewPaginationInfo(totalCount, page, limit),
	}, nil
}

// MarkConversationRead flags the other participant's messages as read and
// returns how many were updated
func (s *chatServiceImpl) MarkConversationRead(ctx context.Context, conversationID, userID int64) (int64, error) {
	if _, err := s.requireParticipant(ctx, conversationID, userID); err != nil {
		return 0, err
	}
	return s.chatRepo.MarkRead(ctx, conversationID, userID)
}

// SendMessage appends a message to the conversation. Content is required
// unless an attachment is present, in which case the file name stands in.
func (s *chatServiceImpl) SendMessage(ctx context.Context, conversationID, userID int64, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if _, err := s.requireParticipant(ctx, conversationID, userID); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	hasAttachment := req.FileData != nil && *req.FileData != ""

	if content == "" {
		if !hasAttachment {
			return nil, fmt.Errorf("%w: message content is required", apperrors.ErrValidationFailed)
		}
		if req.FileName != nil {
			content = *req.FileName
		}
	}

	messageType := models.MessageTypeText
	switch req.MessageType {
	case string(models.MessageTypeImage):
		messageType = models.MessageTypeImage
	case string(models.MessageTypeFile):
		messageType = models.MessageTypeFile
	case "", string(models.MessageTypeText):
		if hasAttachment {
			messageType = models.MessageTypeFile
		}
	default:
		return nil, fmt.Errorf("%w: unknown message type", apperrors.ErrValidationFailed)
	}

	msg := &models.Message{
		ConversationID: conversationID,
		SenderID:       userID,
		Content:        content,
		MessageType:    messageType,
		FileName:       req.FileName,
		FileData:       req.FileData,
	}
	if _, err := s.chatRepo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	resp := dto.ToMessageResponse(msg)
	return &resp, nil
}

func (s *chatServiceImpl) requireParticipant(ctx context.Context, conversationID, userID int64) (*models.Conversation, error) {
	conv, err := s.chatRepo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv.ParticipantOne != userID && conv.ParticipantTwo != userID {
		return nil, apperrors.ErrNotParticipant
	}
	return conv, nil
}
