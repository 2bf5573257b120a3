package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/arjunm/placementpulse/internal/app/models"
	"github.com/arjunm/placementpulse/internal/app/models/dto"
	"github.com/arjunm/placementpulse/internal/app/repositories"
	"github.com/arjunm/placementpulse/internal/pkg/apperrors"
	"github.com/arjunm/placementpulse/internal/pkg/logger"
)

// CommentService defines the interface for comment operations
type CommentService interface {
	AddComment(ctx context.Context, experienceID, userID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListComments(ctx context.Context, experienceID int64) (*dto.CommentListResponse, error)
	DeleteComment(ctx context.Context, commentID, userID int64, isAdmin bool) error
}

// commentServiceImpl implements the CommentService interface
type commentServiceImpl struct {
	commentRepo    repositories.ICommentRepository
	experienceRepo repositories.IExperienceRepository
}

// NewCommentService creates a new comment service instance
func NewCommentService(
	commentRepo repositories.ICommentRepository,
	experienceRepo repositories.IExperienceRepository,
) CommentService {
	return &commentServiceImpl{
		commentRepo:    commentRepo,
		experienceRepo: experienceRepo,
	}
}

// AddComment creates a comment or reply on an approved experience. A reply to
// a reply is reattached to the thread's root comment, keeping threads two
// levels deep.
func (s *commentServiceImpl) AddComment(ctx context.Context, experienceID, userID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment cannot be empty", apperrors.ErrValidationFailed)
	}

	exp, err := s.experienceRepo.GetByID(ctx, experienceID)
	if err != nil {
		return nil, err
	}
	if exp.Status != models.StatusApproved {
		return nil, apperrors.ErrExperienceNotFound
	}

	parentID := req.ParentID
	if parentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.ExperienceID != experienceID {
			return nil, fmt.Errorf("%w: parent comment belongs to another experience", apperrors.ErrValidationFailed)
		}
		if parent.ParentID != nil {
			parentID = parent.ParentID
		}
	}

	comment := &models.Comment{
		ExperienceID: experienceID,
		UserID:       userID,
		Content:      content,
		ParentID:     parentID,
	}
	if _, err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("error creating comment: %w", err)
	}

	if err := s.experienceRepo.AdjustCommentsCount(ctx, experienceID, 1); err != nil {
		logger.Warn().Err(err).Int64("experienceId", experienceID).Msg("Failed to bump comment count")
	}

	resp := dto.ToCommentResponse(comment)
	return &resp, nil
}

// ListComments returns the thread of an experience: top-level comments newest
// first, each with its replies oldest first
func (s *commentServiceImpl) ListComments(ctx context.Context, experienceID int64) (*dto.CommentListResponse, error) {
	if _, err := s.experienceRepo.GetByID(ctx, experienceID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByExperience(ctx, experienceID)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*models.Comment, len(comments))
	var roots []*models.Comment
	for _, comment := range comments {
		if comment.ParentID == nil {
			byID[comment.ID] = comment
			roots = append(roots, comment)
		}
	}
	for _, comment := range comments {
		if comment.ParentID == nil {
			continue
		}
		if parent, ok := byID[*comment.ParentID]; ok {
			parent.Replies = append(parent.Replies, comment)
		}
	}

	// Repository order is oldest first, which replies keep; roots flip to
	// newest first.
	sort.SliceStable(roots, func(i, j int) bool {
		return roots[i].CreatedAt.After(roots[j].CreatedAt)
	})

	items := make([]dto.CommentResponse, 0, len(roots))
	var total int64
	for _, root := range roots {
		items = append(items, dto.ToCommentResponse(root))
		total += 1 + int64(len(root.Replies))
	}

	return &dto.CommentListResponse{
		Comments:   items,
		TotalCount: total,
	}, nil
}

// DeleteComment soft-deletes a comment. Authors remove their own, admins any.
// Removing a root comment also removes its replies; the experience counter
// drops by the number of rows hidden.
func (s *commentServiceImpl) DeleteComment(ctx context.Context, commentID, userID int64, isAdmin bool) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID && !isAdmin {
		return apperrors.ErrPermissionDenied
	}

	removed, err := s.commentRepo.SoftDelete(ctx, commentID)
	if err != nil {
		return err
	}
	if removed > 0 {
		if err := s.experienceRepo.AdjustCommentsCount(ctx, comment.ExperienceID, -removed); err != nil {
			logger.Warn().Err(err).Int64("experienceId", comment.ExperienceID).Msg("Failed to drop comment count")
		}
	}

	return nil
}
