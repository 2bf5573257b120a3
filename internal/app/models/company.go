package models

import "time"

// Company defines the company registry model based on the 'companies' table
type Company struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Tier        string    `json:"tier" db:"tier"`
	Category    string    `json:"category" db:"category"`
	Description *string   `json:"description,omitempty" db:"description"`
	Website     *string   `json:"website,omitempty" db:"website"`
	LogoURL     *string   `json:"logoUrl,omitempty" db:"logo_url"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// Derived, not a column
	ExperienceCount int64 `json:"experienceCount,omitempty"`
}
