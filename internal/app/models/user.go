package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID             int64      `json:"id" db:"id"`
	Name           string     `json:"name" db:"name"`
	Email          string     `json:"email" db:"email"`
	Password       string     `json:"-" db:"password_hash"`
	RollNo         *string    `json:"rollNo,omitempty" db:"roll_no"`
	College        string     `json:"college" db:"college"`
	Degree         *string    `json:"degree,omitempty" db:"degree"`
	Course         string     `json:"course" db:"course"`
	Year           string     `json:"year" db:"year"`
	ProfilePicture *string    `json:"profilePicture,omitempty" db:"profile_picture"`
	Bio            *string    `json:"bio,omitempty" db:"bio"`
	About          *string    `json:"about,omitempty" db:"about"`
	Skills         []string   `json:"skills" db:"skills"`
	ResumeURL      *string    `json:"resumeUrl,omitempty" db:"resume_url"`
	GithubURL      *string    `json:"githubUrl,omitempty" db:"github_url"`
	LinkedinURL    *string    `json:"linkedinUrl,omitempty" db:"linkedin_url"`
	Phone          *string    `json:"phone,omitempty" db:"phone"`
	Role           Role       `json:"role" db:"role"`
	IsActive       bool       `json:"isActive" db:"is_active"`
	IsVerified     bool       `json:"isVerified" db:"is_verified"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`
	LastLoginAt    *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
}

// Session defines a refresh-token session based on the 'user_sessions' table
type Session struct {
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"userId" db:"user_id"`
	RefreshToken string    `json:"-" db:"refresh_token"`
	DeviceInfo   string    `json:"deviceInfo" db:"device_info"`
	IPAddress    string    `json:"ipAddress" db:"ip_address"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	ExpiresAt    time.Time `json:"expiresAt" db:"expires_at"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
