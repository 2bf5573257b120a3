package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arjunm/placementpulse/internal/app/models"
	"github.com/arjunm/placementpulse/internal/app/models/dto"
	"github.com/arjunm/placementpulse/internal/app/repositories"
	"github.com/arjunm/placementpulse/internal/pkg/apperrors"
	"github.com/arjunm/placementpulse/internal/pkg/email"
	"github.com/arjunm/placementpulse/internal/pkg/helpers"
	"github.com/arjunm/placementpulse/internal/pkg/logger"
)

// Admins from this college moderate across all colleges
const systemCollege = "System"

const minRejectionReasonLen = 10

// AdminService defines the interface for moderation and administration
type AdminService interface {
	GetDashboardStats(ctx context.Context) (*dto.DashboardStats, error)
	ListExperiences(ctx context.Context, adminID int64, filter *dto.ExperienceFilter, page, size int) (*dto.ExperienceListResponse, error)
	GetExperience(ctx context.Context, id int64) (*dto.ExperienceResponse, error)
	ApproveExperience(ctx context.Context, experienceID, adminID int64) (*dto.ExperienceResponse, error)
	RejectExperience(ctx context.Context, experienceID, adminID int64, reason string) (*dto.ExperienceResponse, error)
	DeleteExperience(ctx context.Context, experienceID int64) error
	ListUsers(ctx context.Context, filter *dto.UserFilter, page, size int) (*dto.UserListResponse, error)
	ToggleUserStatus(ctx context.Context, targetUserID int64) (*dto.UserResponse, error)
}

// adminServiceImpl implements the AdminService interface
type adminServiceImpl struct {
	experienceRepo repositories.IExperienceRepository
	userRepo       repositories.IUserRepository
	companyRepo    repositories.ICompanyRepository
	commentRepo    repositories.ICommentRepository
	sessionRepo    repositories.ISessionRepository
	emailService   email.EmailService
}

// NewAdminService creates a new admin service instance
func NewAdminService(
	experienceRepo repositories.IExperienceRepository,
	userRepo repositories.IUserRepository,
	companyRepo repositories.ICompanyRepository,
	commentRepo repositories.ICommentRepository,
	sessionRepo repositories.ISessionRepository,
	emailService email.EmailService,
) AdminService {
	return &adminServiceImpl{
		experienceRepo: experienceRepo,
		userRepo:       userRepo,
		companyRepo:    companyRepo,
		commentRepo:    commentRepo,
		sessionRepo:    sessionRepo,
		emailService:   emailService,
	}
}

// GetDashboardStats aggregates the moderation dashboard counters
func (s *adminServiceImpl) GetDashboardStats(ctx context.Context) (*dto.DashboardStats, error) {
	since := time.Now().AddDate(0, 0, -7)

	counts, err := s.experienceRepo.DashboardCounts(ctx, since)
	if err != nil {
		return nil, err
	}

	totalUsers, err := s.userRepo.CountActiveStudents(ctx)
	if err != nil {
		return nil, err
	}
	totalCompanies, err := s.companyRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	totalComments, err := s.commentRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	var successRate int64
	if counts.Approved > 0 {
		successRate = counts.Selected * 100 / counts.Approved
	}

	return &dto.DashboardStats{
		Overview: dto.DashboardOverview{
			TotalUsers:       totalUsers,
			TotalCompanies:   totalCompanies,
			TotalExperiences: counts.Total,
			TotalComments:    totalComments,
		},
		Experiences: dto.DashboardExperienceStats{
			Total:       counts.Total,
			Pending:     counts.Pending,
			Approved:    counts.Approved,
			Rejected:    counts.Rejected,
			Selected:    counts.Selected,
			Internships: counts.Internships,
			FullTime:    counts.FullTime,
			Recent:      counts.Recent,
			SuccessRate: successRate,
		},
	}, nil
}

// ListExperiences returns experiences in any status. Admins outside the
// System college only see submissions from their own college.
func (s *adminServiceImpl) ListExperiences(ctx context.Context, adminID int64, filter *dto.ExperienceFilter, page, size int) (*dto.ExperienceListResponse, error) {
	admin, err := s.userRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}

	query := repositories.ExperienceQuery{}
	if filter != nil {
		query.Status = filter.Status
		query.CompanySlug = filter.CompanySlug
		query.ExperienceType = filter.ExperienceType
		query.Result = filter.Result
		query.Search = filter.Search
		query.College = filter.College
		query.SortBy = filter.SortBy
		query.SortOrder = filter.SortOrder
	}
	if admin.College != systemCollege {
		query.College = admin.College
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	experiences, totalCount, err := s.experienceRepo.List(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ExperienceResponse, 0, len(experiences))
	for _, exp := range experiences {
		items = append(items, dto.ToExperienceResponse(exp, true))
	}

	return &dto.ExperienceListResponse{
		Experiences: items,
		Pagination:  helpers.NewPaginationInfo(totalCount, page, limit),
	}, nil
}

// GetExperience returns full detail regardless of status
func (s *adminServiceImpl) GetExperience(ctx context.Context, id int64) (*dto.ExperienceResponse, error) {
	exp, err := s.experienceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToExperienceResponse(exp, true)
	return &resp, nil
}

// ApproveExperience publishes a pending experience. Of two concurrent
// moderation calls for the same submission exactly one succeeds.
func (s *adminServiceImpl) ApproveExperience(ctx context.Context, experienceID, adminID int64) (*dto.ExperienceResponse, error) {
	if err := s.experienceRepo.Approve(ctx, experienceID, adminID, time.Now()); err != nil {
		return nil, err
	}

	exp, err := s.experienceRepo.GetByID(ctx, experienceID)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("experienceId", experienceID).
		Int64("adminId", adminID).
		Msg("Experience approved")

	s.notifyAuthor(exp, "")

	resp := dto.ToExperienceResponse(exp, true)
	return &resp, nil
}

// RejectExperience turns down a pending experience with a mandatory reason
func (s *adminServiceImpl) RejectExperience(ctx context.Context, experienceID, adminID int64, reason string) (*dto.ExperienceResponse, error) {
	reason = strings.TrimSpace(reason)
	if len(reason) < minRejectionReasonLen {
		return nil, fmt.Errorf("%w: rejection reason must be at least %d characters", apperrors.ErrValidationFailed, minRejectionReasonLen)
	}

	if err := s.experienceRepo.Reject(ctx, experienceID, adminID, reason, time.Now()); err != nil {
		return nil, err
	}

	exp, err := s.experienceRepo.GetByID(ctx, experienceID)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("experienceId", experienceID).
		Int64("adminId", adminID).
		Msg("Experience rejected")

	s.notifyAuthor(exp, reason)

	resp := dto.ToExperienceResponse(exp, true)
	return &resp, nil
}

// DeleteExperience removes an experience in any status
func (s *adminServiceImpl) DeleteExperience(ctx context.Context, experienceID int64) error {
	return s.experienceRepo.Delete(ctx, experienceID)
}

// ListUsers returns non-admin accounts matching the filters
func (s *adminServiceImpl) ListUsers(ctx context.Context, filter *dto.UserFilter, page, size int) (*dto.UserListResponse, error) {
	query := repositories.UserQuery{}
	if filter != nil {
		query.Search = filter.Search
		query.College = filter.College
		query.Course = filter.Course
		query.Year = filter.Year
		query.IsActive = filter.IsActive
		query.SortBy = filter.SortBy
		query.SortOrder = filter.SortOrder
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	users, totalCount, err := s.userRepo.List(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, dto.ToUserResponse(user))
	}

	return &dto.UserListResponse{
		Users:      items,
		Pagination: helpers.NewPaginationInfo(totalCount, page, limit),
	}, nil
}

// ToggleUserStatus flips a student account between active and deactivated.
// A deactivated account also loses its open sessions.
func (s *adminServiceImpl) ToggleUserStatus(ctx context.Context, targetUserID int64) (*dto.UserResponse, error) {
	target, err := s.userRepo.GetByID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}
	if target.Role == models.RoleAdmin {
		return nil, apperrors.ErrPermissionDenied
	}

	active, err := s.userRepo.ToggleActive(ctx, targetUserID)
	if err != nil {
		return nil, err
	}
	target.IsActive = active

	if !active {
		if err := s.sessionRepo.DeactivateAll(ctx, targetUserID); err != nil {
			logger.Warn().Err(err).Int64("userId", targetUserID).Msg("Failed to close sessions of deactivated user")
		}
	}

	logger.Info().Int64("userId", targetUserID).Bool("active", active).Msg("User status toggled")

	resp := dto.ToUserResponse(target)
	return &resp, nil
}

// notifyAuthor emails the moderation outcome to the experience author.
// Delivery failures are logged, never surfaced to the moderator.
func (s *adminServiceImpl) notifyAuthor(exp *models.Experience, reason string) {
	if exp.Author == nil {
		return
	}

	var err error
	if reason == "" {
		err = s.emailService.SendExperienceApprovedEmail(exp.Author.Email, exp.Author.Name, exp.Title)
	} else {
		err = s.emailService.SendExperienceRejectedEmail(exp.Author.Email, exp.Author.Name, exp.Title, reason)
	}
	if err != nil {
		logger.Error().Err(err).Int64("experienceId", exp.ID).Msg("Failed to send moderation email")
	}
}
