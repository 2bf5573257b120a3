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
	"github.com/arjunm/placementpulse/internal/pkg/helpers"
	"github.com/arjunm/placementpulse/internal/pkg/logger"
)

const interviewDateLayout = "2006-01-02"

// ExperienceService defines the interface for experience operations
type ExperienceService interface {
	SubmitExperience(ctx context.Context, userID int64, req *dto.CreateExperienceRequest) (*dto.ExperienceResponse, error)
	ListExperiences(ctx context.Context, viewerID int64, filter *dto.ExperienceFilter, page, size int) (*dto.ExperienceListResponse, error)
	ListMyExperiences(ctx context.Context, userID int64, page, size int) (*dto.ExperienceListResponse, error)
	GetExperience(ctx context.Context, id, viewerID int64, isAdmin bool) (*dto.ExperienceResponse, error)
	UpdateExperience(ctx context.Context, id, userID int64, req *dto.UpdateExperienceRequest) (*dto.ExperienceResponse, error)
	DeleteExperience(ctx context.Context, id, userID int64, isAdmin bool) error
	ToggleLike(ctx context.Context, experienceID, userID int64) (*dto.ToggleResponse, error)
	ToggleBookmark(ctx context.Context, experienceID, userID int64) (*dto.ToggleResponse, error)
}

// experienceServiceImpl implements the ExperienceService interface
type experienceServiceImpl struct {
	experienceRepo repositories.IExperienceRepository
	companyService CompanyService
	userRepo       repositories.IUserRepository
	reactionRepo   repositories.IReactionRepository
}

// NewExperienceService creates a new experience service instance
func NewExperienceService(
	experienceRepo repositories.IExperienceRepository,
	companyService CompanyService,
	userRepo repositories.IUserRepository,
	reactionRepo repositories.IReactionRepository,
) ExperienceService {
	return &experienceServiceImpl{
		experienceRepo: experienceRepo,
		companyService: companyService,
		userRepo:       userRepo,
		reactionRepo:   reactionRepo,
	}
}

// SubmitExperience creates a pending experience from a submission
func (s *experienceServiceImpl) SubmitExperience(ctx context.Context, userID int64, req *dto.CreateExperienceRequest) (*dto.ExperienceResponse, error) {
	if !models.ValidExperienceType(req.ExperienceType) {
		return nil, fmt.Errorf("%w: unknown experience type", apperrors.ErrValidationFailed)
	}
	if !models.ValidExperienceResult(req.Result) {
		return nil, fmt.Errorf("%w: unknown result", apperrors.ErrValidationFailed)
	}

	company, err := s.companyService.ResolveCompany(ctx, req.CompanyID, req.CustomCompany)
	if err != nil {
		return nil, err
	}

	var interviewDate *time.Time
	if req.InterviewDate != nil && strings.TrimSpace(*req.InterviewDate) != "" {
		parsed, err := time.Parse(interviewDateLayout, strings.TrimSpace(*req.InterviewDate))
		if err != nil {
			return nil, fmt.Errorf("%w: interview date must be YYYY-MM-DD", apperrors.ErrValidationFailed)
		}
		interviewDate = &parsed
	}

	role := strings.TrimSpace(req.Role)
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = fmt.Sprintf("%s at %s", role, company.Name)
	}

	exp := &models.Experience{
		UserID:            userID,
		CompanyID:         company.ID,
		Title:             title,
		Role:              role,
		ExperienceType:    models.ExperienceType(req.ExperienceType),
		CampusType:        helpers.TrimmedOrNil(req.CampusType),
		Result:            models.ExperienceResult(req.Result),
		InterviewDate:     interviewDate,
		Location:          helpers.TrimmedOrNil(req.Location),
		OverallExperience: helpers.TrimmedOrNil(req.OverallExperience),
		TechnicalRounds:   helpers.TrimmedOrNil(req.TechnicalRounds),
		HRRounds:          helpers.TrimmedOrNil(req.HRRounds),
		TipsAndAdvice:     helpers.TrimmedOrNil(req.TipsAndAdvice),
	}

	if _, err := s.experienceRepo.Create(ctx, exp); err != nil {
		return nil, fmt.Errorf("error creating experience: %w", err)
	}

	logger.Info().
		Int64("experienceId", exp.ID).
		Int64("userId", userID).
		Str("company", company.Name).
		Msg("Experience submitted for review")

	exp.Company = company
	resp := dto.ToExperienceResponse(exp, false)
	return &resp, nil
}

// ListExperiences returns approved experiences. An authenticated viewer only
// sees submissions from their own college.
func (s *experienceServiceImpl) ListExperiences(ctx context.Context, viewerID int64, filter *dto.ExperienceFilter, page, size int) (*dto.ExperienceListResponse, error) {
	query := repositories.ExperienceQuery{
		Status: string(models.StatusApproved),
	}
	if filter != nil {
		query.CompanySlug = filter.CompanySlug
		query.ExperienceType = filter.ExperienceType
		query.Result = filter.Result
		query.Search = filter.Search
		query.SortBy = filter.SortBy
		query.SortOrder = filter.SortOrder
	}

	if viewerID > 0 {
		viewer, err := s.userRepo.GetByID(ctx, viewerID)
		if err != nil {
			return nil, fmt.Errorf("error retrieving viewer: %w", err)
		}
		query.College = viewer.College
	}

	return s.list(ctx, query, page, size, false)
}

// ListMyExperiences returns the author's own submissions in every status
func (s *experienceServiceImpl) ListMyExperiences(ctx context.Context, userID int64, page, size int) (*dto.ExperienceListResponse, error) {
	query := repositories.ExperienceQuery{AuthorID: userID}
	return s.list(ctx, query, page, size, false)
}

func (s *experienceServiceImpl) list(ctx context.Context, query repositories.ExperienceQuery, page, size int, includeEmail bool) (*dto.ExperienceListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	experiences, totalCount, err := s.experienceRepo.List(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing experiences: %w", err)
	}

	items := make([]dto.ExperienceResponse, 0, len(experiences))
	for _, exp := range experiences {
		items = append(items, dto.ToExperienceResponse(exp, includeEmail))
	}

	return &dto.ExperienceListResponse{
		Experiences: items,
		Pagination:  helpers.NewPaginationInfo(totalCount, page, limit),
	}, nil
}

// GetExperience retrieves a single experience. Non-approved submissions are
// visible only to their author and admins. Any non-author view, anonymous
// included, bumps the view counter.
func (s *experienceServiceImpl) GetExperience(ctx context.Context, id, viewerID int64, isAdmin bool) (*dto.ExperienceResponse, error) {
	exp, err := s.experienceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if exp.Status != models.StatusApproved && exp.UserID != viewerID && !isAdmin {
		return nil, apperrors.ErrExperienceNotFound
	}

	if exp.Status == models.StatusApproved && viewerID != exp.UserID {
		exp.ViewsCount++
		if err := s.experienceRepo.SetViewsCount(ctx, exp.ID, exp.ViewsCount); err != nil {
			logger.Warn().Err(err).Int64("experienceId", exp.ID).Msg("Failed to record view")
		}
	}

	resp := dto.ToExperienceResponse(exp, isAdmin)

	if viewerID > 0 {
		if liked, err := s.reactionRepo.IsLiked(ctx, viewerID, exp.ID); err == nil {
			resp.Liked = liked
		}
		if bookmarked, err := s.reactionRepo.IsBookmarked(ctx, viewerID, exp.ID); err == nil {
			resp.Bookmarked = bookmarked
		}
	}

	return &resp, nil
}

// UpdateExperience applies a partial edit; only the author may edit, and only
// while the submission is still pending
func (s *experienceServiceImpl) UpdateExperience(ctx context.Context, id, userID int64, req *dto.UpdateExperienceRequest) (*dto.ExperienceResponse, error) {
	exp, err := s.experienceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if exp.UserID != userID {
		return nil, apperrors.ErrPermissionDenied
	}
	if exp.Status != models.StatusPending {
		return nil, apperrors.ErrInvalidStatus
	}

	fields := map[string]interface{}{}

	if req.Role != nil {
		role := strings.TrimSpace(*req.Role)
		if role == "" {
			return nil, fmt.Errorf("%w: role cannot be empty", apperrors.ErrValidationFailed)
		}
		fields["role"] = role
	}
	if req.ExperienceType != nil {
		if !models.ValidExperienceType(*req.ExperienceType) {
			return nil, fmt.Errorf("%w: unknown experience type", apperrors.ErrValidationFailed)
		}
		fields["experience_type"] = *req.ExperienceType
	}
	if req.Result != nil {
		if !models.ValidExperienceResult(*req.Result) {
			return nil, fmt.Errorf("%w: unknown result", apperrors.ErrValidationFailed)
		}
		fields["result"] = *req.Result
	}
	if req.InterviewDate != nil {
		parsed, err := time.Parse(interviewDateLayout, strings.TrimSpace(*req.InterviewDate))
		if err != nil {
			return nil, fmt.Errorf("%w: interview date must be YYYY-MM-DD", apperrors.ErrValidationFailed)
		}
		fields["interview_date"] = parsed
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.OverallExperience != nil {
		fields["overall_experience"] = *req.OverallExperience
	}
	if req.TechnicalRounds != nil {
		fields["technical_rounds"] = *req.TechnicalRounds
	}
	if req.HRRounds != nil {
		fields["hr_rounds"] = *req.HRRounds
	}
	if req.TipsAndAdvice != nil {
		fields["tips_and_advice"] = *req.TipsAndAdvice
	}

	if len(fields) > 0 {
		if err := s.experienceRepo.Update(ctx, id, fields); err != nil {
			return nil, err
		}
	}

	updated, err := s.experienceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToExperienceResponse(updated, false)
	return &resp, nil
}

// DeleteExperience removes an experience; authors may delete their own,
// admins may delete any
func (s *experienceServiceImpl) DeleteExperience(ctx context.Context, id, userID int64, isAdmin bool) error {
	exp, err := s.experienceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if exp.UserID != userID && !isAdmin {
		return apperrors.ErrPermissionDenied
	}

	if err := s.experienceRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("experienceId", id).Int64("deletedBy", userID).Msg("Experience deleted")
	return nil
}

// ToggleLike flips the viewer's like on an approved experience
func (s *experienceServiceImpl) ToggleLike(ctx context.Context, experienceID, userID int64) (*dto.ToggleResponse, error) {
	if err := s.requireApproved(ctx, experienceID); err != nil {
		return nil, err
	}

	liked, err := s.reactionRepo.IsLiked(ctx, userID, experienceID)
	if err != nil {
		return nil, fmt.Errorf("error checking like: %w", err)
	}

	var delta int64 = 1
	if liked {
		delta = -1
		err = s.reactionRepo.RemoveLike(ctx, userID, experienceID)
	} else {
		err = s.reactionRepo.AddLike(ctx, userID, experienceID)
	}
	if err != nil {
		return nil, err
	}

	count, err := s.experienceRepo.AdjustLikesCount(ctx, experienceID, delta)
	if err != nil {
		return nil, err
	}

	return &dto.ToggleResponse{Active: !liked, Count: count}, nil
}

// ToggleBookmark flips the viewer's bookmark on an approved experience
func (s *experienceServiceImpl) ToggleBookmark(ctx context.Context, experienceID, userID int64) (*dto.ToggleResponse, error) {
	if err := s.requireApproved(ctx, experienceID); err != nil {
		return nil, err
	}

	bookmarked, err := s.reactionRepo.IsBookmarked(ctx, userID, experienceID)
	if err != nil {
		return nil, fmt.Errorf("error checking bookmark: %w", err)
	}

	if bookmarked {
		err = s.reactionRepo.RemoveBookmark(ctx, userID, experienceID)
	} else {
		err = s.reactionRepo.AddBookmark(ctx, userID, experienceID)
	}
	if err != nil {
		return nil, err
	}

	return &dto.ToggleResponse{Active: !bookmarked}, nil
}

func (s *experienceServiceImpl) requireApproved(ctx context.Context, experienceID int64) error {
	exp, err := s.experienceRepo.GetByID(ctx, experienceID)
	if err != nil {
		return err
	}
	if exp.Status != models.StatusApproved {
		return apperrors.ErrExperienceNotFound
	}
	return nil
}
