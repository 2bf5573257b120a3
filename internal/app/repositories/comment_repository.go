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
)

// CommentRepository handles comment database operations
type CommentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new comment and returns its id
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) (int64, error) {
	query := `
		INSERT INTO comments (experience_id, user_id, content, parent_id, is_active)
		VALUES ($1, $2, $3, $4, true)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		comment.ExperienceID,
		comment.UserID,
		comment.Content,
		comment.ParentID,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating comment: %w", err)
	}

	comment.IsActive = true
	return comment.ID, nil
}

// GetByID retrieves an active comment by its id
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	query := `
		SELECT id, experience_id, user_id, content, parent_id, is_active, created_at, updated_at
		FROM comments
		WHERE id = $1 AND is_active = true
	`

	var comment models.Comment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&comment.ID,
		&comment.ExperienceID,
		&comment.UserID,
		&comment.Content,
		&comment.ParentID,
		&comment.IsActive,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("error retrieving comment: %w", err)
	}
	return &comment, nil
}

// ListByExperience retrieves every active comment of an experience with its
// author, oldest first. The service layer assembles the two-level tree.
func (r *CommentRepository) ListByExperience(ctx context.Context, experienceID int64) ([]*models.Comment, error) {
	query := `
		SELECT cm.id, cm.experience_id, cm.user_id, cm.content, cm.parent_id,
			cm.is_active, cm.created_at, cm.updated_at,
			u.id, u.name, u.college, u.course, u.year, u.profile_picture
		FROM comments cm
		JOIN users u ON u.id = cm.user_id
		WHERE cm.experience_id = $1 AND cm.is_active = true
		ORDER BY cm.created_at ASC
	`

	rows, err := r.db.Query(ctx, query, experienceID)
	if err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var comment models.Comment
		var author models.User
		err := rows.Scan(
			&comment.ID,
			&comment.ExperienceID,
			&comment.UserID,
			&comment.Content,
			&comment.ParentID,
			&comment.IsActive,
			&comment.CreatedAt,
			&comment.UpdatedAt,
			&author.ID,
			&author.Name,
			&author.College,
			&author.Course,
			&author.Year,
			&author.ProfilePicture,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}
		comment.Author = &author
		comments = append(comments, &comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}

	return comments, nil
}

// SoftDelete deactivates a comment together with its replies and returns
// how many rows were removed from view
func (r *CommentRepository) SoftDelete(ctx context.Context, id int64) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE comments
		SET is_active = false, updated_at = NOW()
		WHERE (id = $1 OR parent_id = $1) AND is_active = true
	`, id)
	if err != nil {
		return 0, fmt.Errorf("error deleting comment: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

// CountActive returns the number of active comments across all experiences
func (r *CommentRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE is_active = true`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting comments: %w", err)
	}
	return count, nil
}
