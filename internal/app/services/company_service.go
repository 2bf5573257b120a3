package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/arjunm/placementpulse/internal/app/models"
	"github.com/arjunm/placementpulse/internal/app/models/dto"
	"github.com/arjunm/placementpulse/internal/app/repositories"
	"github.com/arjunm/placementpulse/internal/pkg/apperrors"
	"github.com/arjunm/placementpulse/internal/pkg/helpers"
	"github.com/arjunm/placementpulse/internal/pkg/logger"
)

// Defaults applied to companies created from free-text submissions
const (
	defaultCompanyTier     = "Unspecified"
	defaultCompanyCategory = "Other"
	customCompanyMarker    = "other"
)

// CompanyService defines the interface for company registry operations
type CompanyService interface {
	ResolveCompany(ctx context.Context, companyID, customName string) (*models.Company, error)
	ListCompanies(ctx context.Context, filter *dto.CompanyFilter, page, size int) (*dto.CompanyListResponse, error)
	GetCompanyBySlug(ctx context.Context, slug string) (*dto.CompanyResponse, error)
}

// companyServiceImpl implements the CompanyService interface
type companyServiceImpl struct {
	companyRepo repositories.ICompanyRepository
}

// NewCompanyService creates a new company service instance
func NewCompanyService(companyRepo repositories.ICompanyRepository) CompanyService {
	return &companyServiceImpl{
		companyRepo: companyRepo,
	}
}

// ResolveCompany turns an experience submission's company reference into a
// registry row. A numeric id must exist; the literal "other" matches an
// existing company by name (case-insensitive) or lazily creates one.
func (s *companyServiceImpl) ResolveCompany(ctx context.Context, companyID, customName string) (*models.Company, error) {
	ref := strings.TrimSpace(companyID)

	if !strings.EqualFold(ref, customCompanyMarker) {
		id, err := strconv.ParseInt(ref, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%w: invalid company reference", apperrors.ErrValidationFailed)
		}
		return s.companyRepo.GetByID(ctx, id)
	}

	name := strings.TrimSpace(customName)
	if name == "" {
		return nil, fmt.Errorf("%w: company name is required", apperrors.ErrValidationFailed)
	}

	existing, err := s.companyRepo.FindByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrCompanyNotFound) {
		return nil, fmt.Errorf("error looking up company: %w", err)
	}

	slug := helpers.Slugify(name)
	if slug == "" {
		return nil, fmt.Errorf("%w: company name has no usable characters", apperrors.ErrValidationFailed)
	}

	company := &models.Company{
		Name:     name,
		Slug:     slug,
		Tier:     defaultCompanyTier,
		Category: defaultCompanyCategory,
	}
	if _, err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, fmt.Errorf("error creating company: %w", err)
	}

	logger.Info().Int64("companyId", company.ID).Str("slug", company.Slug).Msg("Company created from submission")
	return company, nil
}

// ListCompanies returns active companies with per-company approved counts
func (s *companyServiceImpl) ListCompanies(ctx context.Context, filter *dto.CompanyFilter, page, size int) (*dto.CompanyListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	query := repositories.CompanyQuery{}
	if filter != nil {
		query.Tier = filter.Tier
		query.Category = filter.Category
		query.Search = filter.Search
	}

	companies, totalCount, err := s.companyRepo.List(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing companies: %w", err)
	}

	items := make([]dto.CompanyResponse, 0, len(companies))
	for _, company := range companies {
		items = append(items, dto.ToCompanyResponse(company))
	}

	return &dto.CompanyListResponse{
		Companies:  items,
		Pagination: helpers.NewPaginationInfo(totalCount, page, limit),
	}, nil
}

// GetCompanyBySlug retrieves a single company by its slug
func (s *companyServiceImpl) GetCompanyBySlug(ctx context.Context, slug string) (*dto.CompanyResponse, error) {
	company, err := s.companyRepo.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return nil, err
	}
	resp := dto.ToCompanyResponse(company)
	return &resp, nil
}
