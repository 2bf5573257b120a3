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

// SessionRepository handles refresh-token session database operations
type SessionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create stores a new session row
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	sql, args, err := r.sb.Insert("user_sessions").
		Columns("user_id", "refresh_token", "device_info", "ip_address", "is_active", "expires_at", "created_at").
		Values(session.UserID, session.RefreshToken, session.DeviceInfo, session.IPAddress, true, session.ExpiresAt, time.Now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create session query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error creating session: %w", err)
	}
	return nil
}

// GetActiveByToken retrieves an active, unexpired session by refresh token
func (r *SessionRepository) GetActiveByToken(ctx context.Context, token string) (*models.Session, error) {
	query := `
		SELECT id, user_id, refresh_token, device_info, ip_address, is_active, expires_at, created_at
		FROM user_sessions
		WHERE refresh_token = $1
	`

	var session models.Session
	err := r.db.QueryRow(ctx, query, token).Scan(
		&session.ID,
		&session.UserID,
		&session.RefreshToken,
		&session.DeviceInfo,
		&session.IPAddress,
		&session.IsActive,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenNotFound
		}
		return nil, fmt.Errorf("error retrieving session: %w", err)
	}

	if !session.IsActive {
		return nil, apperrors.ErrTokenRevoked
	}
	if session.ExpiresAt.Before(time.Now()) {
		return nil, apperrors.ErrTokenExpired
	}

	return &session, nil
}

// Deactivate ends one session identified by its refresh token and owner
func (r *SessionRepository) Deactivate(ctx context.Context, token string, userID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE user_sessions SET is_active = false WHERE refresh_token = $1 AND user_id = $2`,
		token, userID,
	)
	if err != nil {
		return fmt.Errorf("error deactivating session: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTokenNotFound
	}
	return nil
}

// DeactivateAll ends every active session of a user
func (r *SessionRepository) DeactivateAll(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE user_sessions SET is_active = false WHERE user_id = $1 AND is_active = true`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("error deactivating user sessions: %w", err)
	}
	return nil
}

// CleanupExpired removes expired and long-deactivated sessions
func (r *SessionRepository) CleanupExpired(ctx context.Context) (int64, error) {
	thirtyDaysAgo := time.Now().Add(-30 * 24 * time.Hour)

	sql, args, err := r.sb.Delete("user_sessions").
		Where(squirrel.Or{
			squirrel.Lt{"expires_at": time.Now()},
			squirrel.And{
				squirrel.Eq{"is_active": false},
				squirrel.Lt{"created_at": thirtyDaysAgo},
			},
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build session cleanup query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error cleaning up sessions: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
