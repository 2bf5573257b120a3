package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunm/placementpulse/internal/app/models"
	"github.com/arjunm/placementpulse/internal/pkg/apperrors"
)

func TestResolveCompanyNumericID(t *testing.T) {
	companyRepo := &fakeCompanyRepo{
		GetByIDFn: func(ctx context.Context, id int64) (*models.Company, error) {
			return &models.Company{ID: id, Name: "Google", Slug: "google"}, nil
		},
	}
	svc := NewCompanyService(companyRepo)

	company, err := svc.ResolveCompany(context.Background(), "12", "")
	require.NoError(t, err)
	assert.Equal(t, int64(12), company.ID)
}

func TestResolveCompanyInvalidReference(t *testing.T) {
	svc := NewCompanyService(&fakeCompanyRepo{})

	for _, ref := range []string{"", "abc", "-3", "0"} {
		_, err := svc.ResolveCompany(context.Background(), ref, "")
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "ref %q", ref)
	}
}

func TestResolveCompanyOtherReusesExisting(t *testing.T) {
	created := false
	companyRepo := &fakeCompanyRepo{
		FindByNameFn: func(ctx context.Context, name string) (*models.Company, error) {
			// Case-insensitive match in the repository
			return &models.Company{ID: 3, Name: "Acme Corp", Slug: "acme-corp"}, nil
		},
		CreateFn: func(ctx context.Context, company *models.Company) (int64, error) {
			created = true
			return 0, nil
		},
	}
	svc := NewCompanyService(companyRepo)

	company, err := svc.ResolveCompany(context.Background(), "other", "ACME corp")
	require.NoError(t, err)
	assert.Equal(t, int64(3), company.ID)
	assert.False(t, created)
}

func TestResolveCompanyOtherCreatesWithDefaults(t *testing.T) {
	var created *models.Company
	companyRepo := &fakeCompanyRepo{
		CreateFn: func(ctx context.Context, company *models.Company) (int64, error) {
			created = company
			company.ID = 8
			return 8, nil
		},
	}
	svc := NewCompanyService(companyRepo)

	company, err := svc.ResolveCompany(context.Background(), "other", "  Acme Corp  ")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "Acme Corp", created.Name)
	assert.Equal(t, "acme-corp", created.Slug)
	assert.Equal(t, "Unspecified", created.Tier)
	assert.Equal(t, "Other", created.Category)
	assert.Equal(t, int64(8), company.ID)
}

func TestResolveCompanyOtherNeedsName(t *testing.T) {
	svc := NewCompanyService(&fakeCompanyRepo{})

	_, err := svc.ResolveCompany(context.Background(), "other", "   ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.ResolveCompany(context.Background(), "Other", "!!!")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestGetCompanyBySlugNormalizes(t *testing.T) {
	var gotSlug string
	companyRepo := &fakeCompanyRepo{
		GetBySlugFn: func(ctx context.Context, slug string) (*models.Company, error) {
			gotSlug = slug
			return &models.Company{ID: 1, Slug: slug}, nil
		},
	}
	svc := NewCompanyService(companyRepo)

	_, err := svc.GetCompanyBySlug(context.Background(), "  Acme-Corp ")
	require.NoError(t, err)
	assert.Equal(t, "acme-corp", gotSlug)
}
