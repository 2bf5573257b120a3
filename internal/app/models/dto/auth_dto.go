package dto

import (
	"time"

	"github.com/arjunm/placementpulse/internal/app/models"
)

// RegisterRequest represents a student registration payload
type RegisterRequest struct {
	Name     string  `json:"name" binding:"required,min=2,max=100"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	RollNo   *string `json:"rollNo,omitempty"`
	College  string  `json:"college" binding:"required"`
	Degree   *string `json:"degree,omitempty"`
	Course   string  `json:"course" binding:"required"`
	Year     string  `json:"year" binding:"required"`
}

// LoginRequest represents a login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries the refresh token for token renewal
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest optionally names the session to end; when empty all of
// the user's sessions are deactivated.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ChangePasswordRequest represents a password change payload
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// UpdateProfileRequest carries editable profile fields; nil fields are untouched
type UpdateProfileRequest struct {
	Name        *string  `json:"name,omitempty"`
	Bio         *string  `json:"bio,omitempty"`
	About       *string  `json:"about,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	ResumeURL   *string  `json:"resumeUrl,omitempty"`
	GithubURL   *string  `json:"githubUrl,omitempty"`
	LinkedinURL *string  `json:"linkedinUrl,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
}

// UserResponse is the public shape of a user account
type UserResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	RollNo         *string   `json:"rollNo,omitempty"`
	College        string    `json:"college"`
	Degree         *string   `json:"degree,omitempty"`
	Course         string    `json:"course"`
	Year           string    `json:"year"`
	ProfilePicture *string   `json:"profilePicture,omitempty"`
	Bio            *string   `json:"bio,omitempty"`
	About          *string   `json:"about,omitempty"`
	Skills         []string  `json:"skills"`
	ResumeURL      *string   `json:"resumeUrl,omitempty"`
	GithubURL      *string   `json:"githubUrl,omitempty"`
	LinkedinURL    *string   `json:"linkedinUrl,omitempty"`
	Phone          *string   `json:"phone,omitempty"`
	Role           string    `json:"role"`
	IsActive       bool      `json:"isActive"`
	IsVerified     bool      `json:"isVerified"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToUserResponse converts a user model into its response shape.
func ToUserResponse(user *models.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	skills := user.Skills
	if skills == nil {
		skills = []string{}
	}
	return UserResponse{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		RollNo:         user.RollNo,
		College:        user.College,
		Degree:         user.Degree,
		Course:         user.Course,
		Year:           user.Year,
		ProfilePicture: user.ProfilePicture,
		Bio:            user.Bio,
		About:          user.About,
		Skills:         skills,
		ResumeURL:      user.ResumeURL,
		GithubURL:      user.GithubURL,
		LinkedinURL:    user.LinkedinURL,
		Phone:          user.Phone,
		Role:           string(user.Role),
		IsActive:       user.IsActive,
		IsVerified:     user.IsVerified,
		CreatedAt:      user.CreatedAt,
	}
}

// ToPublicUserResponse is ToUserResponse with contact details removed,
// for viewing another student's profile.
func ToPublicUserResponse(user *models.User) UserResponse {
	resp := ToUserResponse(user)
	resp.Email = ""
	resp.Phone = nil
	return resp
}

// AuthResponse carries the authenticated user together with the token pair
type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken,omitempty"`
}
