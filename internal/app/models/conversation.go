package models

import "time"

// Conversation is the unique messaging channel between two users.
// The participant pair is stored in normalized order (lower id first) so
// the unique constraint holds regardless of who initiated the chat.
type Conversation struct {
	ID             int64      `json:"id" db:"id"`
	ParticipantOne int64      `json:"participantOne" db:"participant_one"`
	ParticipantTwo int64      `json:"participantTwo" db:"participant_two"`
	LastMessageAt  *time.Time `json:"lastMessageAt,omitempty" db:"last_message_at"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`

	// Derived for the conversation list
	OtherUser   *User    `json:"otherUser,omitempty"`
	LastMessage *Message `json:"lastMessage,omitempty"`
	UnreadCount int64    `json:"unreadCount"`
}

// NormalizePair orders two user ids so the smaller one comes first.
func NormalizePair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}

// Message is a single chat message within a conversation.
// FileData holds the attachment as an inline data URI; the server stores
// whatever payload the client sent.
type Message struct {
	ID             int64       `json:"id" db:"id"`
	ConversationID int64       `json:"conversationId" db:"conversation_id"`
	SenderID       int64       `json:"senderId" db:"sender_id"`
	Content        string      `json:"content" db:"content"`
	MessageType    MessageType `json:"messageType" db:"message_type"`
	FileName       *string     `json:"fileName,omitempty" db:"file_name"`
	FileData       *string     `json:"fileData,omitempty" db:"file_data"`
	IsRead         bool        `json:"isRead" db:"is_read"`
	CreatedAt      time.Time   `json:"createdAt" db:"created_at"`

	Sender *User `json:"sender,omitempty"`
}
