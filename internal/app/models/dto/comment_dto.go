package dto

import (
	"time"

	"github.com/arjunm/placementpulse/internal/app/models"
)

// CreateCommentRequest represents a new comment or reply.
// ParentID, when set, must reference a comment on the same experience.
type CreateCommentRequest struct {
	Content  string `json:"content" binding:"required,min=1,max=2000"`
	ParentID *int64 `json:"parentId,omitempty"`
}

// CommentResponse is a single comment, with replies when top-level
type CommentResponse struct {
	ID        int64             `json:"id"`
	Content   string            `json:"content"`
	ParentID  *int64            `json:"parentId,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	Author    *AuthorSummary    `json:"author,omitempty"`
	Replies   []CommentResponse `json:"replies"`
}

// ToCommentResponse converts a comment model, including its reply list.
func ToCommentResponse(comment *models.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		ParentID:  comment.ParentID,
		CreatedAt: comment.CreatedAt,
		Replies:   []CommentResponse{},
	}
	if comment.Author != nil {
		resp.Author = &AuthorSummary{
			ID:      comment.Author.ID,
			Name:    comment.Author.Name,
			College: comment.Author.College,
			Course:  comment.Author.Course,
			Year:    comment.Author.Year,
		}
	}
	for _, reply := range comment.Replies {
		resp.Replies = append(resp.Replies, ToCommentResponse(reply))
	}
	return resp
}

// CommentListResponse carries the full comment thread of one experience.
// TotalCount equals the number of top-level comments plus all replies.
type CommentListResponse struct {
	Comments   []CommentResponse `json:"comments"`
	TotalCount int64             `json:"totalCount"`
}
