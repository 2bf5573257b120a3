package dto

// RejectExperienceRequest carries the mandatory rejection reason
type RejectExperienceRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// UserFilter captures admin user list query parameters
type UserFilter struct {
	Search    string
	College   string
	Course    string
	Year      string
	IsActive  string // "true", "false" or "all"
	SortBy    string
	SortOrder string
}

// DashboardOverview holds the headline counters
type DashboardOverview struct {
	TotalUsers       int64 `json:"totalUsers"`
	TotalCompanies   int64 `json:"totalCompanies"`
	TotalExperiences int64 `json:"totalExperiences"`
	TotalComments    int64 `json:"totalComments"`
}

// DashboardExperienceStats breaks experiences down by moderation state and outcome
type DashboardExperienceStats struct {
	Total       int64 `json:"total"`
	Pending     int64 `json:"pending"`
	Approved    int64 `json:"approved"`
	Rejected    int64 `json:"rejected"`
	Selected    int64 `json:"selected"`
	Internships int64 `json:"internships"`
	FullTime    int64 `json:"fullTime"`
	Recent      int64 `json:"recent"`
	SuccessRate int64 `json:"successRate"`
}

// DashboardStats is the admin dashboard payload
type DashboardStats struct {
	Overview    DashboardOverview        `json:"overview"`
	Experiences DashboardExperienceStats `json:"experiences"`
}

// UserListResponse is the paginated admin user list
type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination PaginationInfo `json:"pagination"`
}
