package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjunm/placementpulse/internal/app/models"
	"github.com/arjunm/placementpulse/internal/pkg/apperrors"
)

// ExperienceRepository handles experience database operations
type ExperienceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewExperienceRepository creates a new ExperienceRepository
func NewExperienceRepository(db *pgxpool.Pool) *ExperienceRepository {
	return &ExperienceRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// experienceSelectColumns lists the joined columns used by GetByID and List.
// The experience row is followed by the company and a trimmed author view.
var experienceSelectColumns = []string{
	"e.id", "e.user_id", "e.company_id", "e.title", "e.role", "e.experience_type",
	"e.campus_type", "e.result", "e.interview_date", "e.location",
	"e.overall_experience", "e.technical_rounds", "e.hr_rounds", "e.tips_and_advice",
	"e.status", "e.rejection_reason", "e.approved_by", "e.approved_at",
	"e.views_count", "e.likes_count", "e.comments_count", "e.created_at", "e.updated_at",
	"c.id", "c.name", "c.slug", "c.tier", "c.category", "c.description",
	"c.website", "c.logo_url", "c.is_active", "c.created_at",
	"u.id", "u.name", "u.email", "u.college", "u.course", "u.year", "u.profile_picture",
}

func scanExperienceRow(row pgx.Row) (*models.Experience, error) {
	var exp models.Experience
	var company models.Company
	var author models.User

	err := row.Scan(
		&exp.ID,
		&exp.UserID,
		&exp.CompanyID,
		&exp.Title,
		&exp.Role,
		&exp.ExperienceType,
		&exp.CampusType,
		&exp.Result,
		&exp.InterviewDate,
		&exp.Location,
		&exp.OverallExperience,
		&exp.TechnicalRounds,
		&exp.HRRounds,
		&exp.TipsAndAdvice,
		&exp.Status,
		&exp.RejectionReason,
		&exp.ApprovedBy,
		&exp.ApprovedAt,
		&exp.ViewsCount,
		&exp.LikesCount,
		&exp.CommentsCount,
		&exp.CreatedAt,
		&exp.UpdatedAt,
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
		&author.ID,
		&author.Name,
		&author.Email,
		&author.College,
		&author.Course,
		&author.Year,
		&author.ProfilePicture,
	)
	if err != nil {
		return nil, err
	}

	exp.Company = &company
	exp.Author = &author
	return &exp, nil
}

// Create inserts a new experience in pending status and returns its id
func (r *ExperienceRepository) Create(ctx context.Context, exp *models.Experience) (int64, error) {
	query := `
		INSERT INTO experiences (
			user_id, company_id, title, role, experience_type, campus_type, result,
			interview_date, location, overall_experience, technical_rounds, hr_rounds,
			tips_and_advice, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, 'pending')
		RETURNING id, status, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		exp.UserID,
		exp.CompanyID,
		exp.Title,
		exp.Role,
		exp.ExperienceType,
		exp.CampusType,
		exp.Result,
		exp.InterviewDate,
		exp.Location,
		exp.OverallExperience,
		exp.TechnicalRounds,
		exp.HRRounds,
		exp.TipsAndAdvice,
	).Scan(&exp.ID, &exp.Status, &exp.CreatedAt, &exp.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating experience: %w", err)
	}

	return exp.ID, nil
}

// GetByID retrieves an experience with its company and author
func (r *ExperienceRepository) GetByID(ctx context.Context, id int64) (*models.Experience, error) {
	sql, args, err := r.sb.Select(experienceSelectColumns...).
		From("experiences e").
		Join("companies c ON c.id = e.company_id").
		Join("users u ON u.id = e.user_id").
		Where(squirrel.Eq{"e.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build experience query: %w", err)
	}

	exp, err := scanExperienceRow(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrExperienceNotFound
		}
		return nil, fmt.Errorf("error retrieving experience: %w", err)
	}
	return exp, nil
}

// List retrieves experiences matching the filters with total count
func (r *ExperienceRepository) List(ctx context.Context, query ExperienceQuery, offset uint64, limit int) ([]*models.Experience, int64, error) {
	applyFilters := func(builder squirrel.SelectBuilder) squirrel.SelectBuilder {
		if query.Status != "" {
			builder = builder.Where(squirrel.Eq{"e.status": query.Status})
		}
		if query.CompanySlug != "" {
			builder = builder.Where(squirrel.Eq{"c.slug": query.CompanySlug})
		}
		if query.ExperienceType != "" {
			builder = builder.Where(squirrel.Eq{"e.experience_type": query.ExperienceType})
		}
		if query.Result != "" {
			builder = builder.Where(squirrel.Eq{"e.result": query.Result})
		}
		if query.College != "" {
			builder = builder.Where(squirrel.Eq{"u.college": query.College})
		}
		if query.AuthorID != 0 {
			builder = builder.Where(squirrel.Eq{"e.user_id": query.AuthorID})
		}
		if query.Search != "" {
			pattern := "%" + query.Search + "%"
			builder = builder.Where(squirrel.Or{
				squirrel.ILike{"e.title": pattern},
				squirrel.ILike{"e.role": pattern},
				squirrel.ILike{"c.name": pattern},
			})
		}
		return builder
	}

	countSQL, countArgs, err := applyFilters(
		r.sb.Select("COUNT(*)").
			From("experiences e").
			Join("companies c ON c.id = e.company_id").
			Join("users u ON u.id = e.user_id"),
	).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build experience count query: %w", err)
	}

	var totalCount int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("error counting experiences: %w", err)
	}

	allowedSort := map[string]string{
		"created_at": "e.created_at",
		"views":      "e.views_count",
		"likes":      "e.likes_count",
		"comments":   "e.comments_count",
	}
	orderBy := sortColumn(query.SortBy, allowedSort, "e.created_at") + " " + sortDirection(query.SortOrder)

	listSQL, listArgs, err := applyFilters(
		r.sb.Select(experienceSelectColumns...).
			From("experiences e").
			Join("companies c ON c.id = e.company_id").
			Join("users u ON u.id = e.user_id").
			OrderBy(orderBy).
			Offset(offset).
			Limit(uint64(limit)),
	).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build experience list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing experiences: %w", err)
	}
	defer rows.Close()

	var experiences []*models.Experience
	for rows.Next() {
		exp, err := scanExperienceRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning experience row: %w", err)
		}
		experiences = append(experiences, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating experience rows: %w", err)
	}

	return experiences, totalCount, nil
}

// Update applies the given column changes to an experience
func (r *ExperienceRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	sql, args, err := r.sb.Update("experiences").
		SetMap(fields).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build experience update query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating experience: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrExperienceNotFound
	}
	return nil
}

// Delete removes an experience and its dependent rows (comments, likes,
// bookmarks cascade at the schema level)
func (r *ExperienceRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM experiences WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting experience: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrExperienceNotFound
	}
	return nil
}

// Approve moves a pending experience to approved. The status check happens
// inside the UPDATE so concurrent moderation attempts get exactly one winner.
func (r *ExperienceRepository) Approve(ctx context.Context, id, adminID int64, at time.Time) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE experiences
		SET status = 'approved', approved_by = $2, approved_at = $3, rejection_reason = NULL, updated_at = $3
		WHERE id = $1 AND status = 'pending'
	`, id, adminID, at)
	if err != nil {
		return fmt.Errorf("error approving experience: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.resolveModerationConflict(ctx, id)
	}
	return nil
}

// Reject moves a pending experience to rejected with the given reason
func (r *ExperienceRepository) Reject(ctx context.Context, id, adminID int64, reason string, at time.Time) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE experiences
		SET status = 'rejected', approved_by = $2, approved_at = $3, rejection_reason = $4, updated_at = $3
		WHERE id = $1 AND status = 'pending'
	`, id, adminID, at, reason)
	if err != nil {
		return fmt.Errorf("error rejecting experience: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.resolveModerationConflict(ctx, id)
	}
	return nil
}

// resolveModerationConflict distinguishes a missing experience from one that
// already left pending status.
func (r *ExperienceRepository) resolveModerationConflict(ctx context.Context, id int64) error {
	var status models.ExperienceStatus
	err := r.db.QueryRow(ctx, `SELECT status FROM experiences WHERE id = $1`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrExperienceNotFound
		}
		return fmt.Errorf("error checking experience status: %w", err)
	}
	return apperrors.ErrInvalidStatus
}

// SetViewsCount stores an absolute view count
func (r *ExperienceRepository) SetViewsCount(ctx context.Context, id, count int64) error {
	_, err := r.db.Exec(ctx, `UPDATE experiences SET views_count = $2 WHERE id = $1`, id, count)
	if err != nil {
		return fmt.Errorf("error updating view count: %w", err)
	}
	return nil
}

// AdjustCommentsCount shifts the denormalized comment counter by delta,
// clamped at zero
func (r *ExperienceRepository) AdjustCommentsCount(ctx context.Context, id int64, delta int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE experiences SET comments_count = GREATEST(comments_count + $2, 0) WHERE id = $1`,
		id, delta,
	)
	if err != nil {
		return fmt.Errorf("error updating comment count: %w", err)
	}
	return nil
}

// AdjustLikesCount shifts the denormalized like counter by delta and returns
// the new value
func (r *ExperienceRepository) AdjustLikesCount(ctx context.Context, id int64, delta int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`UPDATE experiences SET likes_count = GREATEST(likes_count + $2, 0) WHERE id = $1 RETURNING likes_count`,
		id, delta,
	).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrExperienceNotFound
		}
		return 0, fmt.Errorf("error updating like count: %w", err)
	}
	return count, nil
}

// DashboardCounts aggregates experience statistics in a single query
func (r *ExperienceRepository) DashboardCounts(ctx context.Context, since time.Time) (*DashboardCounts, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'approved'),
			COUNT(*) FILTER (WHERE status = 'rejected'),
			COUNT(*) FILTER (WHERE result = 'Selected'),
			COUNT(*) FILTER (WHERE experience_type = 'Internship'),
			COUNT(*) FILTER (WHERE experience_type = 'Full-Time'),
			COUNT(*) FILTER (WHERE created_at >= $1)
		FROM experiences
	`

	var counts DashboardCounts
	err := r.db.QueryRow(ctx, query, since).Scan(
		&counts.Total,
		&counts.Pending,
		&counts.Approved,
		&counts.Rejected,
		&counts.Selected,
		&counts.Internships,
		&counts.FullTime,
		&counts.Recent,
	)
	if err != nil {
		return nil, fmt.Errorf("error loading dashboard counts: %w", err)
	}
	return &counts, nil
}
