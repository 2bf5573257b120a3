package models

import "time"

// Experience defines a submitted interview experience based on the 'experiences' table
type Experience struct {
	ID                int64            `json:"id" db:"id"`
	UserID            int64            `json:"userId" db:"user_id"`
	CompanyID         int64            `json:"companyId" db:"company_id"`
	Title             string           `json:"title" db:"title"`
	Role              string           `json:"role" db:"role"`
	ExperienceType    ExperienceType   `json:"experienceType" db:"experience_type"`
	CampusType        *string          `json:"campusType,omitempty" db:"campus_type"`
	Result            ExperienceResult `json:"result" db:"result"`
	InterviewDate     *time.Time       `json:"interviewDate,omitempty" db:"interview_date"`
	Location          *string          `json:"location,omitempty" db:"location"`
	OverallExperience *string          `json:"overallExperience,omitempty" db:"overall_experience"`
	TechnicalRounds   *string          `json:"technicalRounds,omitempty" db:"technical_rounds"`
	HRRounds          *string          `json:"hrRounds,omitempty" db:"hr_rounds"`
	TipsAndAdvice     *string          `json:"tipsAndAdvice,omitempty" db:"tips_and_advice"`
	Status            ExperienceStatus `json:"status" db:"status"`
	RejectionReason   *string          `json:"rejectionReason,omitempty" db:"rejection_reason"`
	ApprovedBy        *int64           `json:"approvedBy,omitempty" db:"approved_by"`
	ApprovedAt        *time.Time       `json:"approvedAt,omitempty" db:"approved_at"`
	ViewsCount        int64            `json:"viewsCount" db:"views_count"`
	LikesCount        int64            `json:"likesCount" db:"likes_count"`
	CommentsCount     int64            `json:"commentsCount" db:"comments_count"`
	CreatedAt         time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time        `json:"updatedAt" db:"updated_at"`

	// Related entities
	Company *Company `json:"company,omitempty"`
	Author  *User    `json:"author,omitempty"`
}
