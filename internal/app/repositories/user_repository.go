package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjunm/placementpulse/internal/app/models"
	"github.com/arjunm/placementpulse/internal/pkg/apperrors"
	"github.com/arjunm/placementpulse/internal/pkg/dberrors"
)

const userColumns = `id, name, email, password_hash, roll_no, college, degree, course, year,
	profile_picture, bio, about, skills, resume_url, github_url, linkedin_url, phone,
	role, is_active, is_verified, created_at, updated_at, last_login_at`

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.RollNo,
		&user.College,
		&user.Degree,
		&user.Course,
		&user.Year,
		&user.ProfilePicture,
		&user.Bio,
		&user.About,
		&user.Skills,
		&user.ResumeURL,
		&user.GithubURL,
		&user.LinkedinURL,
		&user.Phone,
		&user.Role,
		&user.IsActive,
		&user.IsVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user and returns its id
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	query := `
		INSERT INTO users (name, email, password_hash, roll_no, college, degree, course, year, role, is_active, is_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		user.Name,
		strings.ToLower(user.Email),
		user.Password,
		user.RollNo,
		user.College,
		user.Degree,
		user.Course,
		user.Year,
		user.Role,
		user.IsActive,
		user.IsVerified,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return user.ID, nil
}

// GetByID retrieves a user by id
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email (case-insensitive)
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user by email: %w", err)
	}
	return user, nil
}

// EmailExists checks whether an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		strings.ToLower(email),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}
	return exists, nil
}

// UpdateProfile applies the given column updates to a user row
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	builder := r.sb.Update("users").
		SetMap(fields).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID})

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build profile update query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		passwordHash, time.Now(), userID,
	)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// TouchUpdatedAt bumps updated_at, recorded on successful login
func (r *UserRepository) TouchUpdatedAt(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET updated_at = $1, last_login_at = $1 WHERE id = $2`,
		time.Now(), userID,
	)
	if err != nil {
		return fmt.Errorf("error touching user: %w", err)
	}
	return nil
}

// ToggleActive flips is_active and returns the new state
func (r *UserRepository) ToggleActive(ctx context.Context, userID int64) (bool, error) {
	var newState bool
	err := r.db.QueryRow(ctx,
		`UPDATE users SET is_active = NOT is_active, updated_at = $1 WHERE id = $2 RETURNING is_active`,
		time.Now(), userID,
	).Scan(&newState)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, apperrors.ErrUserNotFound
		}
		return false, fmt.Errorf("error toggling user status: %w", err)
	}
	return newState, nil
}

// List returns non-admin users matching the query plus a total count
func (r *UserRepository) List(ctx context.Context, query UserQuery, offset uint64, limit int) ([]*models.User, int64, error) {
	applyFilters := func(b squirrel.SelectBuilder) squirrel.SelectBuilder {
		b = b.Where(squirrel.NotEq{"role": models.RoleAdmin})
		if query.IsActive != "all" {
			b = b.Where(squirrel.Eq{"is_active": query.IsActive != "false"})
		}
		if query.Search != "" {
			pattern := "%" + query.Search + "%"
			b = b.Where(squirrel.Or{
				squirrel.ILike{"name": pattern},
				squirrel.ILike{"email": pattern},
				squirrel.ILike{"college": pattern},
			})
		}
		if query.College != "" {
			b = b.Where(squirrel.Eq{"college": query.College})
		}
		if query.Course != "" {
			b = b.Where(squirrel.Eq{"course": query.Course})
		}
		if query.Year != "" {
			b = b.Where(squirrel.Eq{"year": query.Year})
		}
		return b
	}

	countSQL, countArgs, err := applyFilters(r.sb.Select("COUNT(*)").From("users")).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build user count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting users: %w", err)
	}

	orderBy := sortColumn(query.SortBy, map[string]string{
		"created_at": "created_at",
		"name":       "name",
		"college":    "college",
	}, "created_at")
	direction := sortDirection(query.SortOrder)

	listSQL, listArgs, err := applyFilters(r.sb.Select(userColumns).From("users")).
		OrderBy(orderBy + " " + direction).
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build user list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, total, nil
}

// CountActiveStudents counts active student accounts for the dashboard
func (r *UserRepository) CountActiveStudents(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE is_active = true AND role = $1`,
		models.RoleStudent,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting active students: %w", err)
	}
	return count, nil
}

// sortColumn resolves a requested sort key against a whitelist
func sortColumn(requested string, allowed map[string]string, fallback string) string {
	if col, ok := allowed[requested]; ok {
		return col
	}
	return fallback
}

// sortDirection normalizes a sort order string to ASC/DESC
func sortDirection(order string) string {
	if strings.EqualFold(order, "asc") {
		return "ASC"
	}
	return "DESC"
}
