package dto

import (
	"time"

	"github.com/arjunm/placementpulse/internal/app/models"
)

// CreateExperienceRequest represents an experience submission.
// CompanyID is either a numeric company id or the literal "other",
// in which case CustomCompany must carry the free-text name.
type CreateExperienceRequest struct {
	CompanyID      string  `json:"companyId" binding:"required"`
	CustomCompany  string  `json:"customCompany"`
	Title          string  `json:"title"`
	Role           string  `json:"role" binding:"required,min=2,max=150"`
	ExperienceType string  `json:"experienceType" binding:"required"`
	CampusType     *string `json:"campusType,omitempty"`
	Result         string  `json:"result" binding:"required"`
	InterviewDate  *string `json:"interviewDate,omitempty"`
	Location       *string `json:"location,omitempty"`

	OverallExperience *string `json:"overallExperience,omitempty"`
	TechnicalRounds   *string `json:"technicalRounds,omitempty"`
	HRRounds          *string `json:"hrRounds,omitempty"`
	TipsAndAdvice     *string `json:"tipsAndAdvice,omitempty"`
}

// UpdateExperienceRequest is a partial update; nil fields are untouched.
type UpdateExperienceRequest struct {
	Role              *string `json:"role,omitempty"`
	ExperienceType    *string `json:"experienceType,omitempty"`
	Result            *string `json:"result,omitempty"`
	InterviewDate     *string `json:"interviewDate,omitempty"`
	Location          *string `json:"location,omitempty"`
	OverallExperience *string `json:"overallExperience,omitempty"`
	TechnicalRounds   *string `json:"technicalRounds,omitempty"`
	HRRounds          *string `json:"hrRounds,omitempty"`
	TipsAndAdvice     *string `json:"tipsAndAdvice,omitempty"`
}

// ExperienceFilter captures list query parameters
type ExperienceFilter struct {
	CompanySlug    string
	ExperienceType string
	Result         string
	Search         string
	College        string
	Status         string
	SortBy         string
	SortOrder      string
}

// CompanySummary is the embedded company shape on experience responses
type CompanySummary struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	Tier     string  `json:"tier,omitempty"`
	Category string  `json:"category,omitempty"`
	LogoURL  *string `json:"logoUrl,omitempty"`
}

// AuthorSummary is the embedded author shape on experience responses
type AuthorSummary struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	College string `json:"college"`
	Course  string `json:"course"`
	Year    string `json:"year"`
}

// ExperienceResponse is the full experience shape
type ExperienceResponse struct {
	ID                int64           `json:"id"`
	Title             string          `json:"title"`
	Role              string          `json:"role"`
	ExperienceType    string          `json:"experienceType"`
	CampusType        *string         `json:"campusType,omitempty"`
	Result            string          `json:"result"`
	InterviewDate     *time.Time      `json:"interviewDate,omitempty"`
	Location          *string         `json:"location,omitempty"`
	OverallExperience *string         `json:"overallExperience,omitempty"`
	TechnicalRounds   *string         `json:"technicalRounds,omitempty"`
	HRRounds          *string         `json:"hrRounds,omitempty"`
	TipsAndAdvice     *string         `json:"tipsAndAdvice,omitempty"`
	Status            string          `json:"status"`
	RejectionReason   *string         `json:"rejectionReason,omitempty"`
	ApprovedAt        *time.Time      `json:"approvedAt,omitempty"`
	ViewsCount        int64           `json:"viewsCount"`
	LikesCount        int64           `json:"likesCount"`
	CommentsCount     int64           `json:"commentsCount"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
	Company           *CompanySummary `json:"company,omitempty"`
	Author            *AuthorSummary  `json:"author,omitempty"`

	// Viewer-specific flags, populated for authenticated reads
	Liked      bool `json:"liked,omitempty"`
	Bookmarked bool `json:"bookmarked,omitempty"`
}

// ToExperienceResponse converts an experience model into its response shape.
// includeEmail controls whether the author's email is exposed (admin views only).
func ToExperienceResponse(exp *models.Experience, includeEmail bool) ExperienceResponse {
	if exp == nil {
		return ExperienceResponse{}
	}

	resp := ExperienceResponse{
		ID:                exp.ID,
		Title:             exp.Title,
		Role:              exp.Role,
		ExperienceType:    string(exp.ExperienceType),
		CampusType:        exp.CampusType,
		Result:            string(exp.Result),
		InterviewDate:     exp.InterviewDate,
		Location:          exp.Location,
		OverallExperience: exp.OverallExperience,
		TechnicalRounds:   exp.TechnicalRounds,
		HRRounds:          exp.HRRounds,
		TipsAndAdvice:     exp.TipsAndAdvice,
		Status:            string(exp.Status),
		RejectionReason:   exp.RejectionReason,
		ApprovedAt:        exp.ApprovedAt,
		ViewsCount:        exp.ViewsCount,
		LikesCount:        exp.LikesCount,
		CommentsCount:     exp.CommentsCount,
		CreatedAt:         exp.CreatedAt,
		UpdatedAt:         exp.UpdatedAt,
	}

	if exp.Company != nil {
		resp.Company = &CompanySummary{
			ID:       exp.Company.ID,
			Name:     exp.Company.Name,
			Slug:     exp.Company.Slug,
			Tier:     exp.Company.Tier,
			Category: exp.Company.Category,
			LogoURL:  exp.Company.LogoURL,
		}
	}

	if exp.Author != nil {
		author := &AuthorSummary{
			ID:      exp.Author.ID,
			Name:    exp.Author.Name,
			College: exp.Author.College,
			Course:  exp.Author.Course,
			Year:    exp.Author.Year,
		}
		if includeEmail {
			author.Email = exp.Author.Email
		}
		resp.Author = author
	}

	return resp
}

// ExperienceListResponse is the paginated list shape
type ExperienceListResponse struct {
	Experiences []ExperienceResponse `json:"experiences"`
	Pagination  PaginationInfo       `json:"pagination"`
}

// ToggleResponse reports the state after a like/bookmark toggle
type ToggleResponse struct {
	Active bool  `json:"active"`
	Count  int64 `json:"count"`
}
