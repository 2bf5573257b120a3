package dto

import (
	"time"

	"github.com/arjunm/placementpulse/internal/app/models"
)

// CompanyFilter captures company list query parameters
type CompanyFilter struct {
	Tier     string
	Category string
	Search   string
}

// CompanyResponse is the full company shape
type CompanyResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Tier            string    `json:"tier"`
	Category        string    `json:"category"`
	Description     *string   `json:"description,omitempty"`
	Website         *string   `json:"website,omitempty"`
	LogoURL         *string   `json:"logoUrl,omitempty"`
	ExperienceCount int64     `json:"experienceCount"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ToCompanyResponse converts a company model to its response shape.
func ToCompanyResponse(company *models.Company) CompanyResponse {
	return CompanyResponse{
		ID:              company.ID,
		Name:            company.Name,
		Slug:            company.Slug,
		Tier:            company.Tier,
		Category:        company.Category,
		Description:     company.Description,
		Website:         company.Website,
		LogoURL:         company.LogoURL,
		ExperienceCount: company.ExperienceCount,
		CreatedAt:       company.CreatedAt,
	}
}

// CompanyListResponse is the paginated company list
type CompanyListResponse struct {
	Companies  []CompanyResponse `json:"companies"`
	Pagination PaginationInfo    `json:"pagination"`
}
