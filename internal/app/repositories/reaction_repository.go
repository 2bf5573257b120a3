package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjunm/placementpulse/internal/pkg/dberrors"
)

// ReactionRepository handles like and bookmark join rows
type ReactionRepository struct {
	db *pgxpool.Pool
}

// NewReactionRepository creates a new ReactionRepository
func NewReactionRepository(db *pgxpool.Pool) *ReactionRepository {
	return &ReactionRepository{db: db}
}

func (r *ReactionRepository) exists(ctx context.Context, table string, userID, experienceID int64) (bool, error) {
	query := fmt.Sprintf(
		`SELECT EXISTS (SELECT 1 FROM %s WHERE user_id = $1 AND experience_id = $2)`,
		table,
	)

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, experienceID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking %s: %w", table, err)
	}
	return exists, nil
}

// IsLiked reports whether the user has liked the experience
func (r *ReactionRepository) IsLiked(ctx context.Context, userID, experienceID int64) (bool, error) {
	return r.exists(ctx, "likes", userID, experienceID)
}

// AddLike records a like; a concurrent duplicate is treated as success
func (r *ReactionRepository) AddLike(ctx context.Context, userID, experienceID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO likes (user_id, experience_id) VALUES ($1, $2)`,
		userID, experienceID,
	)
	if err != nil && !dberrors.IsUniqueViolation(err) {
		return fmt.Errorf("error adding like: %w", err)
	}
	return nil
}

// RemoveLike removes a like if present
func (r *ReactionRepository) RemoveLike(ctx context.Context, userID, experienceID int64) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM likes WHERE user_id = $1 AND experience_id = $2`,
		userID, experienceID,
	)
	if err != nil {
		return fmt.Errorf("error removing like: %w", err)
	}
	return nil
}

// IsBookmarked reports whether the user has bookmarked the experience
func (r *ReactionRepository) IsBookmarked(ctx context.Context, userID, experienceID int64) (bool, error) {
	return r.exists(ctx, "bookmarks", userID, experienceID)
}

// AddBookmark records a bookmark; a concurrent duplicate is treated as success
func (r *ReactionRepository) AddBookmark(ctx context.Context, userID, experienceID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO bookmarks (user_id, experience_id) VALUES ($1, $2)`,
		userID, experienceID,
	)
	if err != nil && !dberrors.IsUniqueViolation(err) {
		return fmt.Errorf("error adding bookmark: %w", err)
	}
	return nil
}

// RemoveBookmark removes a bookmark if present
func (r *ReactionRepository) RemoveBookmark(ctx context.Context, userID, experienceID int64) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM bookmarks WHERE user_id = $1 AND experience_id = $2`,
		userID, experienceID,
	)
	if err != nil {
		return fmt.Errorf("error removing bookmark: %w", err)
	}
	return nil
}
