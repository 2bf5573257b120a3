package dto

import (
	"time"

	"github.com/arjunm/placementpulse/internal/app/models"
)

// StartConversationRequest identifies the other participant
type StartConversationRequest struct {
	UserID int64 `json:"userId" binding:"required"`
}

// SendMessageRequest represents an outgoing chat message.
// Content may be empty when an attachment is present; the file name is
// then used as the display content.
type SendMessageRequest struct {
	Content     string  `json:"content"`
	MessageType string  `json:"messageType"`
	FileName    *string `json:"fileName,omitempty"`
	FileData    *string `json:"fileData,omitempty"`
}

// MessageResponse is a single chat message
type MessageResponse struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversationId"`
	SenderID       int64     `json:"senderId"`
	Content        string    `json:"content"`
	MessageType    string    `json:"messageType"`
	FileName       *string   `json:"fileName,omitempty"`
	FileData       *string   `json:"fileData,omitempty"`
	IsRead         bool      `json:"isRead"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToMessageResponse converts a message model to its response shape.
func ToMessageResponse(msg *models.Message) MessageResponse {
	return MessageResponse{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		Content:        msg.Content,
		MessageType:    string(msg.MessageType),
		FileName:       msg.FileName,
		FileData:       msg.FileData,
		IsRead:         msg.IsRead,
		CreatedAt:      msg.CreatedAt,
	}
}

// ConversationResponse is one entry in the conversation list
type ConversationResponse struct {
	ID            int64            `json:"id"`
	OtherUser     *UserResponse    `json:"otherUser,omitempty"`
	LastMessage   *MessageResponse `json:"lastMessage,omitempty"`
	LastMessageAt *time.Time       `json:"lastMessageAt,omitempty"`
	UnreadCount   int64            `json:"unreadCount"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// ToConversationResponse converts a conversation model for the list view.
func ToConversationResponse(conv *models.Conversation) ConversationResponse {
	resp := ConversationResponse{
		ID:            conv.ID,
		LastMessageAt: conv.LastMessageAt,
		UnreadCount:   conv.UnreadCount,
		CreatedAt:     conv.CreatedAt,
	}
	if conv.OtherUser != nil {
		other := ToPublicUserResponse(conv.OtherUser)
		resp.OtherUser = &other
	}
	if conv.LastMessage != nil {
		last := ToMessageResponse(conv.LastMessage)
		// The list preview never needs the attachment payload.
		last.FileData = nil
		resp.LastMessage = &last
	}
	return resp
}

// MessageListResponse is the paginated message history, oldest first
type MessageListResponse struct {
	Messages   []MessageResponse `json:"messages"`
	Pagination PaginationInfo    `json:"pagination"`
}
