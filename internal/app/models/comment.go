package models

import "time"

// Comment defines a comment on an experience based on the 'comments' table.
// ParentID is nil for top-level comments; replies always point at a
// top-level comment, never at another reply.
type Comment struct {
	ID           int64     `json:"id" db:"id"`
	ExperienceID int64     `json:"experienceId" db:"experience_id"`
	UserID       int64     `json:"userId" db:"user_id"`
	Content      string    `json:"content" db:"content"`
	ParentID     *int64    `json:"parentId,omitempty" db:"parent_id"`
	IsActive     bool      `json:"-" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Author  *User      `json:"author,omitempty"`
	Replies []*Comment `json:"replies,omitempty"`
}
