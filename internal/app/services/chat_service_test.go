package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunm/placementpulse/internal/app/models"
	"github.com/arjunm/placementpulse/internal/app/models/dto"
	"github.com/arjunm/placementpulse/internal/pkg/apperrors"
)

func conversationBetween(id, a, b int64) *models.Conversation {
	one, two := models.NormalizePair(a, b)
	return &models.Conversation{ID: id, ParticipantOne: one, ParticipantTwo: two}
}

func TestStartConversationWithSelf(t *testing.T) {
	svc := NewChatService(&fakeChatRepo{}, &fakeUserRepo{})

	_, err := svc.StartConversation(context.Background(), 4, 4)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestStartConversationInactiveUser(t *testing.T) {
	userRepo := &fakeUserRepo{
		GetByIDFn: func(ctx context.Context, id int64) (*models.User, error) {
			return &models.User{ID: id, IsActive: false}, nil
		},
	}
	svc := NewChatService(&fakeChatRepo{}, userRepo)

	_, err := svc.StartConversation(context.Background(), 4, 9)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestStartConversationOrderIndependent(t *testing.T) {
	var gotA, gotB int64
	chatRepo := &fakeChatRepo{
		GetOrCreateConversationFn: func(ctx context.Context, userA, userB int64) (*models.Conversation, error) {
			gotA, gotB = userA, userB
			return conversationBetween(1, userA, userB), nil
		},
	}
	userRepo := &fakeUserRepo{
		GetByIDFn: func(ctx context.Context, id int64) (*models.User, error) {
			return &models.User{ID: id, Name: "Rahul", IsActive: true}, nil
		},
	}
	svc := NewChatService(chatRepo, userRepo)

	resp, err := svc.StartConversation(context.Background(), 9, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	require.NotNil(t, resp.OtherUser)
	assert.Equal(t, int64(4), resp.OtherUser.ID)
	assert.Equal(t, int64(9), gotA)
	assert.Equal(t, int64(4), gotB)
}

func TestGetMessagesNonParticipant(t *testing.T) {
	chatRepo := &fakeChatRepo{
		GetConversationFn: func(ctx context.Context, id int64) (*models.Conversation, error) {
			return conversationBetween(id, 4, 9), nil
		},
	}
	svc := NewChatService(chatRepo, &fakeUserRepo{})

	_, err := svc.GetMessages(context.Background(), 1, 777, 1, 20)
	assert.ErrorIs(t, err, apperrors.ErrNotParticipant)
}

func TestSendMessageRequiresContentOrAttachment(t *testing.T) {
	chatRepo := &fakeChatRepo{
		GetConversationFn: func(ctx context.Context, id int64) (*models.Conversation, error) {
			return conversationBetween(id, 4, 9), nil
		},
	}
	svc := NewChatService(chatRepo, &fakeUserRepo{})

	_, err := svc.SendMessage(context.Background(), 1, 4, &dto.SendMessageRequest{Content: "  "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestSendMessageAttachmentFallsBackToFileName(t *testing.T) {
	fileName := "resume.pdf"
	fileData := "data:application/pdf;base64,JVBERi0"

	var created *models.Message
	chatRepo := &fakeChatRepo{
		GetConversationFn: func(ctx context.Context, id int64) (*models.Conversation, error) {
			return conversationBetween(id, 4, 9), nil
		},
		CreateMessageFn: func(ctx context.Context, msg *models.Message) (int64, error) {
			created = msg
			msg.ID = 50
			return 50, nil
		},
	}
	svc := NewChatService(chatRepo, &fakeUserRepo{})

	resp, err := svc.SendMessage(context.Background(), 1, 4, &dto.SendMessageRequest{
		FileName: &fileName,
		FileData: &fileData,
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "resume.pdf", created.Content)
	assert.Equal(t, models.MessageTypeFile, created.MessageType)
	assert.Equal(t, "resume.pdf", resp.Content)
}

func TestSendMessageUnknownType(t *testing.T) {
	chatRepo := &fakeChatRepo{
		GetConversationFn: func(ctx context.Context, id int64) (*models.Conversation, error) {
			return conversationBetween(id, 4, 9), nil
		},
	}
	svc := NewChatService(chatRepo, &fakeUserRepo{})

	_, err := svc.SendMessage(context.Background(), 1, 4, &dto.SendMessageRequest{
		Content:     "hello",
		MessageType: "carrier-pigeon",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestMarkConversationRead(t *testing.T) {
	chatRepo := &fakeChatRepo{
		GetConversationFn: func(ctx context.Context, id int64) (*models.Conversation, error) {
			return conversationBetween(id, 4, 9), nil
		},
		MarkReadFn: func(ctx context.Context, conversationID, readerID int64) (int64, error) {
			assert.Equal(t, int64(4), readerID)
			return 2, nil
		},
	}
	svc := NewChatService(chatRepo, &fakeUserRepo{})

	updated, err := svc.MarkConversationRead(context.Background(), 1, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)
}
