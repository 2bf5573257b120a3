package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunm/placementpulse/internal/app/models"
	"github.com/arjunm/placementpulse/internal/app/repositories"
	"github.com/arjunm/placementpulse/internal/pkg/apperrors"
)

func newAdminService(expRepo *fakeExperienceRepo, userRepo *fakeUserRepo, sessionRepo *fakeSessionRepo, emails *fakeEmailService) AdminService {
	return NewAdminService(expRepo, userRepo, &fakeCompanyRepo{}, &fakeCommentRepo{}, sessionRepo, emails)
}

func moderatedExperience(id int64, status models.ExperienceStatus) *models.Experience {
	return &models.Experience{
		ID:     id,
		UserID: 7,
		Title:  "SDE at Initech",
		Status: status,
		Author: &models.User{ID: 7, Name: "Priya", Email: "priya@college.edu"},
	}
}

func TestApproveExperienceNotifiesAuthor(t *testing.T) {
	var approvedAt time.Time
	expRepo := &fakeExperienceRepo{
		ApproveFn: func(ctx context.Context, id, adminID int64, at time.Time) error {
			approvedAt = at
			return nil
		},
		GetByIDFn: func(ctx context.Context, id int64) (*models.Experience, error) {
			return moderatedExperience(id, models.StatusApproved), nil
		},
	}
	emails := &fakeEmailService{}
	svc := newAdminService(expRepo, &fakeUserRepo{}, &fakeSessionRepo{}, emails)

	resp, err := svc.ApproveExperience(context.Background(), 1, 99)
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)
	assert.False(t, approvedAt.IsZero())
	assert.Equal(t, []string{"priya@college.edu"}, emails.approved)
	assert.Empty(t, emails.rejected)
}

func TestApproveExperienceAlreadyModerated(t *testing.T) {
	expRepo := &fakeExperienceRepo{
		ApproveFn: func(ctx context.Context, id, adminID int64, at time.Time) error {
			// The conditional update found no pending row
			return apperrors.ErrInvalidStatus
		},
	}
	emails := &fakeEmailService{}
	svc := newAdminService(expRepo, &fakeUserRepo{}, &fakeSessionRepo{}, emails)

	_, err := svc.ApproveExperience(context.Background(), 1, 99)
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
	assert.Empty(t, emails.approved)
}

func TestRejectExperienceShortReason(t *testing.T) {
	called := false
	expRepo := &fakeExperienceRepo{
		RejectFn: func(ctx context.Context, id, adminID int64, reason string, at time.Time) error {
			called = true
			return nil
		},
	}
	svc := newAdminService(expRepo, &fakeUserRepo{}, &fakeSessionRepo{}, &fakeEmailService{})

	_, err := svc.RejectExperience(context.Background(), 1, 99, "  too thin  ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.False(t, called)
}

func TestRejectExperienceSendsReason(t *testing.T) {
	var gotReason string
	expRepo := &fakeExperienceRepo{
		RejectFn: func(ctx context.Context, id, adminID int64, reason string, at time.Time) error {
			gotReason = reason
			return nil
		},
		GetByIDFn: func(ctx context.Context, id int64) (*models.Experience, error) {
			return moderatedExperience(id, models.StatusRejected), nil
		},
	}
	emails := &fakeEmailService{}
	svc := newAdminService(expRepo, &fakeUserRepo{}, &fakeSessionRepo{}, emails)

	resp, err := svc.RejectExperience(context.Background(), 1, 99, "  duplicate of an earlier submission  ")
	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Status)
	assert.Equal(t, "duplicate of an earlier submission", gotReason)
	assert.Equal(t, []string{"priya@college.edu"}, emails.rejected)
}

func TestListExperiencesScopedToAdminCollege(t *testing.T) {
	var gotQuery repositories.ExperienceQuery
	expRepo := &fakeExperienceRepo{
		ListFn: func(ctx context.Context, query repositories.ExperienceQuery, offset uint64, limit int) ([]*models.Experience, int64, error) {
			gotQuery = query
			return nil, 0, nil
		},
	}
	userRepo := &fakeUserRepo{
		GetByIDFn: func(ctx context.Context, id int64) (*models.User, error) {
			return &models.User{ID: id, Role: models.RoleAdmin, College: "NIT Trichy"}, nil
		},
	}
	svc := newAdminService(expRepo, userRepo, &fakeSessionRepo{}, &fakeEmailService{})

	_, err := svc.ListExperiences(context.Background(), 99, nil, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, "NIT Trichy", gotQuery.College)
}

func TestListExperiencesSystemAdminSeesAll(t *testing.T) {
	var gotQuery repositories.ExperienceQuery
	expRepo := &fakeExperienceRepo{
		ListFn: func(ctx context.Context, query repositories.ExperienceQuery, offset uint64, limit int) ([]*models.Experience, int64, error) {
			gotQuery = query
			return nil, 0, nil
		},
	}
	userRepo := &fakeUserRepo{
		GetByIDFn: func(ctx context.Context, id int64) (*models.User, error) {
			return &models.User{ID: id, Role: models.RoleAdmin, College: "System"}, nil
		},
	}
	svc := newAdminService(expRepo, userRepo, &fakeSessionRepo{}, &fakeEmailService{})

	_, err := svc.ListExperiences(context.Background(), 99, nil, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, gotQuery.College)
}

func TestToggleUserStatusRefusesAdminTarget(t *testing.T) {
	userRepo := &fakeUserRepo{
		GetByIDFn: func(ctx context.Context, id int64) (*models.User, error) {
			return &models.User{ID: id, Role: models.RoleAdmin}, nil
		},
	}
	svc := newAdminService(&fakeExperienceRepo{}, userRepo, &fakeSessionRepo{}, &fakeEmailService{})

	_, err := svc.ToggleUserStatus(context.Background(), 5)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestToggleUserStatusDeactivationClosesSessions(t *testing.T) {
	var closedFor int64
	userRepo := &fakeUserRepo{
		GetByIDFn: func(ctx context.Context, id int64) (*models.User, error) {
			return &models.User{ID: id, Role: models.RoleStudent, IsActive: true}, nil
		},
		ToggleActiveFn: func(ctx context.Context, userID int64) (bool, error) {
			return false, nil
		},
	}
	sessionRepo := &fakeSessionRepo{
		DeactivateAllFn: func(ctx context.Context, userID int64) error {
			closedFor = userID
			return nil
		},
	}
	svc := newAdminService(&fakeExperienceRepo{}, userRepo, sessionRepo, &fakeEmailService{})

	resp, err := svc.ToggleUserStatus(context.Background(), 5)
	require.NoError(t, err)
	assert.False(t, resp.IsActive)
	assert.Equal(t, int64(5), closedFor)
}

func TestDashboardSuccessRate(t *testing.T) {
	expRepo := &fakeExperienceRepo{
		DashboardCountsFn: func(ctx context.Context, since time.Time) (*repositories.DashboardCounts, error) {
			return &repositories.DashboardCounts{
				Total:    10,
				Pending:  2,
				Approved: 8,
				Selected: 3,
			}, nil
		},
	}
	svc := newAdminService(expRepo, &fakeUserRepo{}, &fakeSessionRepo{}, &fakeEmailService{})

	stats, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(37), stats.Experiences.SuccessRate)
}

func TestDashboardSuccessRateNoApprovals(t *testing.T) {
	svc := newAdminService(&fakeExperienceRepo{}, &fakeUserRepo{}, &fakeSessionRepo{}, &fakeEmailService{})

	stats, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Experiences.SuccessRate)
}
