package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjunm/placementpulse/internal/app/models"
	"github.com/arjunm/placementpulse/internal/pkg/apperrors"
	"github.com/arjunm/placementpulse/internal/pkg/dberrors"
)

const companyColumns = `id, name, slug, tier, category, description, website, logo_url, is_active, created_at`

// CompanyRepository handles company registry database operations
type CompanyRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanCompany(row pgx.Row) (*models.Company, error) {
	var company models.Company
	err := row.Scan(
		&company.ID,
		&company.Name,
		&company.Slug,
		&company.Tier,
		&company.Category,
		&company.Description,
		&company.Website,
		&company.LogoURL,
		&company.IsActive,
		&company.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// Create inserts a new company and returns its id
func (r *CompanyRepository) Create(ctx context.Context, company *models.Company) (int64, error) {
	query := `
		INSERT INTO companies (name, slug, tier, category, description, website, logo_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, true)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		company.Name,
		company.Slug,
		company.Tier,
		company.Category,
		company.Description,
		company.Website,
		company.LogoURL,
	).Scan(&company.ID, &company.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "companies_slug_key") {
			// Another request created the same company first; reuse it.
			existing, getErr := r.GetBySlug(ctx, company.Slug)
			if getErr != nil {
				return 0, fmt.Errorf("error resolving duplicate company: %w", getErr)
			}
			*company = *existing
			return existing.ID, nil
		}
		return 0, fmt.Errorf("error creating company: %w", err)
	}

	company.IsActive = true
	return company.ID, nil
}

// GetByID retrieves a company by its id
func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`

	company, err := scanCompany(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("error retrieving company: %w", err)
	}
	return company, nil
}

// GetBySlug retrieves a company by its slug
func (r *CompanyRepository) GetBySlug(ctx context.Context, slug string) (*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE slug = $1`

	company, err := scanCompany(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("error retrieving company by slug: %w", err)
	}
	return company, nil
}

// FindByName retrieves a company by case-insensitive name match
func (r *CompanyRepository) FindByName(ctx context.Context, name string) (*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE LOWER(name) = LOWER($1)`

	company, err := scanCompany(r.db.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("error finding company by name: %w", err)
	}
	return company, nil
}

// List retrieves active companies matching the filters, with the count of
// approved experiences per company
func (r *CompanyRepository) List(ctx context.Context, query CompanyQuery, offset uint64, limit int) ([]*models.Company, int64, error) {
	applyFilters := func(builder squirrel.SelectBuilder) squirrel.SelectBuilder {
		builder = builder.Where(squirrel.Eq{"c.is_active": true})
		if query.Tier != "" {
			builder = builder.Where(squirrel.Eq{"c.tier": query.Tier})
		}
		if query.Category != "" {
			builder = builder.Where(squirrel.Eq{"c.category": query.Category})
		}
		if query.Search != "" {
			builder = builder.Where(squirrel.ILike{"c.name": "%" + query.Search + "%"})
		}
		return builder
	}

	countSQL, countArgs, err := applyFilters(
		r.sb.Select("COUNT(*)").From("companies c"),
	).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build company count query: %w", err)
	}

	var totalCount int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("error counting companies: %w", err)
	}

	listSQL, listArgs, err := applyFilters(
		r.sb.Select(
			"c.id", "c.name", "c.slug", "c.tier", "c.category", "c.description",
			"c.website", "c.logo_url", "c.is_active", "c.created_at",
			"COUNT(e.id) AS experience_count",
		).
			From("companies c").
			LeftJoin("experiences e ON e.company_id = c.id AND e.status = 'approved'").
			GroupBy("c.id").
			OrderBy("c.name ASC").
			Offset(offset).
			Limit(uint64(limit)),
	).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build company list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing companies: %w", err)
	}
	defer rows.Close()

	var companies []*models.Company
	for rows.Next() {
		var company models.Company
		err := rows.Scan(
			&company.ID,
			&company.Name,
			&company.Slug,
			&company.Tier,
			&company.Category,
			&company.Description,
			&company.Website,
			&company.LogoURL,
			&company.IsActive,
			&company.CreatedAt,
			&company.ExperienceCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning company row: %w", err)
		}
		companies = append(companies, &company)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating company rows: %w", err)
	}

	return companies, totalCount, nil
}

// CountActive returns the number of active companies
func (r *CompanyRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM companies WHERE is_active = true`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting companies: %w", err)
	}
	return count, nil
}
