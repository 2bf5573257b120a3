package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunm/placementpulse/internal/app/models"
	"github.com/arjunm/placementpulse/internal/app/models/dto"
	"github.com/arjunm/placementpulse/internal/app/repositories"
	"github.com/arjunm/placementpulse/internal/pkg/apperrors"
)

func newExperienceService(expRepo *fakeExperienceRepo, companyRepo *fakeCompanyRepo, userRepo *fakeUserRepo, reactionRepo *fakeReactionRepo) ExperienceService {
	return NewExperienceService(expRepo, NewCompanyService(companyRepo), userRepo, reactionRepo)
}

func submission() *dto.CreateExperienceRequest {
	return &dto.CreateExperienceRequest{
		CompanyID:      "3",
		Role:           "Software Engineer",
		ExperienceType: "Full-Time",
		Result:         "Selected",
	}
}

func TestSubmitExperienceDerivesTitle(t *testing.T) {
	var created *models.Experience
	expRepo := &fakeExperienceRepo{
		CreateFn: func(ctx context.Context, exp *models.Experience) (int64, error) {
			created = exp
			exp.ID = 1
			exp.Status = models.StatusPending
			return 1, nil
		},
	}
	companyRepo := &fakeCompanyRepo{
		GetByIDFn: func(ctx context.Context, id int64) (*models.Company, error) {
			return &models.Company{ID: id, Name: "Initech", Slug: "initech"}, nil
		},
	}
	svc := newExperienceService(expRepo, companyRepo, &fakeUserRepo{}, &fakeReactionRepo{})

	resp, err := svc.SubmitExperience(context.Background(), 7, submission())
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "Software Engineer at Initech", created.Title)
	assert.Equal(t, "pending", resp.Status)
}

func TestSubmitExperienceRejectsBadDate(t *testing.T) {
	companyRepo := &fakeCompanyRepo{
		GetByIDFn: func(ctx context.Context, id int64) (*models.Company, error) {
			return &models.Company{ID: id, Name: "Initech"}, nil
		},
	}
	svc := newExperienceService(&fakeExperienceRepo{}, companyRepo, &fakeUserRepo{}, &fakeReactionRepo{})

	req := submission()
	badDate := "12-05-2026"
	req.InterviewDate = &badDate

	_, err := svc.SubmitExperience(context.Background(), 7, req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestSubmitExperienceUnknownType(t *testing.T) {
	svc := newExperienceService(&fakeExperienceRepo{}, &fakeCompanyRepo{}, &fakeUserRepo{}, &fakeReactionRepo{})

	req := submission()
	req.ExperienceType = "Moonshot"

	_, err := svc.SubmitExperience(context.Background(), 7, req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestListExperiencesScopedToViewerCollege(t *testing.T) {
	var gotQuery repositories.ExperienceQuery
	expRepo := &fakeExperienceRepo{
		ListFn: func(ctx context.Context, query repositories.ExperienceQuery, offset uint64, limit int) ([]*models.Experience, int64, error) {
			gotQuery = query
			return nil, 0, nil
		},
	}
	userRepo := &fakeUserRepo{
		GetByIDFn: func(ctx context.Context, id int64) (*models.User, error) {
			return &models.User{ID: id, College: "IIT Bombay"}, nil
		},
	}
	svc := newExperienceService(expRepo, &fakeCompanyRepo{}, userRepo, &fakeReactionRepo{})

	_, err := svc.ListExperiences(context.Background(), 7, nil, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, "approved", gotQuery.Status)
	assert.Equal(t, "IIT Bombay", gotQuery.College)
}

func TestListExperiencesAnonymousUnscoped(t *testing.T) {
	var gotQuery repositories.ExperienceQuery
	expRepo := &fakeExperienceRepo{
		ListFn: func(ctx context.Context, query repositories.ExperienceQuery, offset uint64, limit int) ([]*models.Experience, int64, error) {
			gotQuery = query
			return nil, 0, nil
		},
	}
	svc := newExperienceService(expRepo, &fakeCompanyRepo{}, &fakeUserRepo{}, &fakeReactionRepo{})

	_, err := svc.ListExperiences(context.Background(), 0, nil, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, gotQuery.College)
}

func TestGetExperienceHidesPendingFromOthers(t *testing.T) {
	expRepo := &fakeExperienceRepo{
		GetByIDFn: func(ctx context.Context, id int64) (*models.Experience, error) {
			return &models.Experience{ID: id, UserID: 7, Status: models.StatusPending}, nil
		},
	}
	svc := newExperienceService(expRepo, &fakeCompanyRepo{}, &fakeUserRepo{}, &fakeReactionRepo{})

	// Stranger
	_, err := svc.GetExperience(context.Background(), 1, 99, false)
	assert.ErrorIs(t, err, apperrors.ErrExperienceNotFound)

	// Author
	_, err = svc.GetExperience(context.Background(), 1, 7, false)
	assert.NoError(t, err)

	// Admin
	_, err = svc.GetExperience(context.Background(), 1, 99, true)
	assert.NoError(t, err)
}

func TestGetExperienceCountsView(t *testing.T) {
	var recorded int64
	expRepo := &fakeExperienceRepo{
		GetByIDFn: func(ctx context.Context, id int64) (*models.Experience, error) {
			return &models.Experience{ID: id, UserID: 7, Status: models.StatusApproved, ViewsCount: 4}, nil
		},
		SetViewsCountFn: func(ctx context.Context, id, count int64) error {
			recorded = count
			return nil
		},
	}
	svc := newExperienceService(expRepo, &fakeCompanyRepo{}, &fakeUserRepo{}, &fakeReactionRepo{})

	resp, err := svc.GetExperience(context.Background(), 1, 99, false)
	require.NoError(t, err)
	assert.Equal(t, int64(5), recorded)
	assert.Equal(t, int64(5), resp.ViewsCount)
}

func TestGetExperienceAnonymousViewCounted(t *testing.T) {
	var recorded int64
	expRepo := &fakeExperienceRepo{
		GetByIDFn: func(ctx context.Context, id int64) (*models.Experience, error) {
			return &models.Experience{ID: id, UserID: 7, Status: models.StatusApproved, ViewsCount: 4}, nil
		},
		SetViewsCountFn: func(ctx context.Context, id, count int64) error {
			recorded = count
			return nil
		},
	}
	svc := newExperienceService(expRepo, &fakeCompanyRepo{}, &fakeUserRepo{}, &fakeReactionRepo{})

	resp, err := svc.GetExperience(context.Background(), 1, 0, false)
	require.NoError(t, err)
	assert.Equal(t, int64(5), recorded)
	assert.Equal(t, int64(5), resp.ViewsCount)
}

func TestGetExperienceAuthorViewNotCounted(t *testing.T) {
	called := false
	expRepo := &fakeExperienceRepo{
		GetByIDFn: func(ctx context.Context, id int64) (*models.Experience, error) {
			return &models.Experience{ID: id, UserID: 7, Status: models.StatusApproved, ViewsCount: 4}, nil
		},
		SetViewsCountFn: func(ctx context.Context, id, count int64) error {
			called = true
			return nil
		},
	}
	svc := newExperienceService(expRepo, &fakeCompanyRepo{}, &fakeUserRepo{}, &fakeReactionRepo{})

	_, err := svc.GetExperience(context.Background(), 1, 7, false)
	require.NoError(t, err)
	assert.False(t, called)
}

func TestUpdateExperienceOnlyWhilePending(t *testing.T) {
	expRepo := &fakeExperienceRepo{
		GetByIDFn: func(ctx context.Context, id int64) (*models.Experience, error) {
			return &models.Experience{ID: id, UserID: 7, Status: models.StatusApproved}, nil
		},
	}
	svc := newExperienceService(expRepo, &fakeCompanyRepo{}, &fakeUserRepo{}, &fakeReactionRepo{})

	role := "SDE II"
	_, err := svc.UpdateExperience(context.Background(), 1, 7, &dto.UpdateExperienceRequest{Role: &role})
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
}

func TestUpdateExperienceOnlyByAuthor(t *testing.T) {
	expRepo := &fakeExperienceRepo{
		GetByIDFn: func(ctx context.Context, id int64) (*models.Experience, error) {
			return &models.Experience{ID: id, UserID: 7, Status: models.StatusPending}, nil
		},
	}
	svc := newExperienceService(expRepo, &fakeCompanyRepo{}, &fakeUserRepo{}, &fakeReactionRepo{})

	role := "SDE II"
	_, err := svc.UpdateExperience(context.Background(), 1, 99, &dto.UpdateExperienceRequest{Role: &role})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestToggleLikeAddsThenRemoves(t *testing.T) {
	liked := false
	count := int64(0)

	expRepo := &fakeExperienceRepo{
		GetByIDFn: func(ctx context.Context, id int64) (*models.Experience, error) {
			return &models.Experience{ID: id, UserID: 7, Status: models.StatusApproved}, nil
		},
		AdjustLikesCountFn: func(ctx context.Context, id int64, delta int64) (int64, error) {
			count += delta
			return count, nil
		},
	}
	reactionRepo := &fakeReactionRepo{
		IsLikedFn: func(ctx context.Context, userID, experienceID int64) (bool, error) {
			return liked, nil
		},
		AddLikeFn: func(ctx context.Context, userID, experienceID int64) error {
			liked = true
			return nil
		},
		RemoveLikeFn: func(ctx context.Context, userID, experienceID int64) error {
			liked = false
			return nil
		},
	}
	svc := newExperienceService(expRepo, &fakeCompanyRepo{}, &fakeUserRepo{}, reactionRepo)

	resp, err := svc.ToggleLike(context.Background(), 1, 99)
	require.NoError(t, err)
	assert.True(t, resp.Active)
	assert.Equal(t, int64(1), resp.Count)

	resp, err = svc.ToggleLike(context.Background(), 1, 99)
	require.NoError(t, err)
	assert.False(t, resp.Active)
	assert.Equal(t, int64(0), resp.Count)
}

func TestToggleLikeRequiresApproved(t *testing.T) {
	expRepo := &fakeExperienceRepo{
		GetByIDFn: func(ctx context.Context, id int64) (*models.Experience, error) {
			return &models.Experience{ID: id, UserID: 7, Status: models.StatusPending}, nil
		},
	}
	svc := newExperienceService(expRepo, &fakeCompanyRepo{}, &fakeUserRepo{}, &fakeReactionRepo{})

	_, err := svc.ToggleLike(context.Background(), 1, 99)
	assert.ErrorIs(t, err, apperrors.ErrExperienceNotFound)
}
