package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunm/placementpulse/internal/app/models"
	"github.com/arjunm/placementpulse/internal/app/models/dto"
	"github.com/arjunm/placementpulse/internal/pkg/apperrors"
	"github.com/arjunm/placementpulse/internal/pkg/auth"
)

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "test",
	})
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return hash
}

func TestRegisterDuplicateEmail(t *testing.T) {
	userRepo := &fakeUserRepo{
		EmailExistsFn: func(ctx context.Context, email string) (bool, error) {
			return true, nil
		},
	}
	svc := NewAuthService(userRepo, &fakeSessionRepo{}, testJWTService())

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Asha",
		Email:    "asha@college.edu",
		Password: "supersecret",
		College:  "IIT Bombay",
		Course:   "CSE",
		Year:     "2026",
	}, "test-agent", "127.0.0.1")
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegisterIssuesTokensAndSession(t *testing.T) {
	var createdUser *models.User
	var createdSession *models.Session

	userRepo := &fakeUserRepo{
		CreateFn: func(ctx context.Context, user *models.User) (int64, error) {
			createdUser = user
			user.ID = 1
			return 1, nil
		},
	}
	sessionRepo := &fakeSessionRepo{
		CreateFn: func(ctx context.Context, session *models.Session) error {
			createdSession = session
			return nil
		},
	}
	svc := NewAuthService(userRepo, sessionRepo, testJWTService())

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Asha",
		Email:    "Asha@College.EDU",
		Password: "supersecret",
		College:  "IIT Bombay",
		Course:   "CSE",
		Year:     "2026",
	}, "test-agent", "127.0.0.1")
	require.NoError(t, err)

	require.NotNil(t, createdUser)
	assert.Equal(t, "asha@college.edu", createdUser.Email)
	assert.Equal(t, models.RoleStudent, createdUser.Role)
	assert.NoError(t, auth.CheckPassword(createdUser.Password, "supersecret"))

	require.NotNil(t, createdSession)
	assert.Equal(t, resp.RefreshToken, createdSession.RefreshToken)
	assert.Equal(t, "test-agent", createdSession.DeviceInfo)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginWrongPassword(t *testing.T) {
	userRepo := &fakeUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: 1, Email: email, Password: hashed(t, "rightpassword"), IsActive: true}, nil
		},
	}
	svc := NewAuthService(userRepo, &fakeSessionRepo{}, testJWTService())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "asha@college.edu",
		Password: "wrongpassword",
	}, "", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmailMapsToInvalidCredentials(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{}, &fakeSessionRepo{}, testJWTService())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@college.edu",
		Password: "whatever1",
	}, "", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	userRepo := &fakeUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: 1, Email: email, Password: hashed(t, "supersecret"), IsActive: false}, nil
		},
	}
	svc := NewAuthService(userRepo, &fakeSessionRepo{}, testJWTService())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "asha@college.edu",
		Password: "supersecret",
	}, "", "")
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestRefreshTokenRotatesSession(t *testing.T) {
	var deactivatedToken string
	var newSession *models.Session

	sessionRepo := &fakeSessionRepo{
		GetActiveByTokenFn: func(ctx context.Context, token string) (*models.Session, error) {
			return &models.Session{ID: 1, UserID: 7, RefreshToken: token}, nil
		},
		DeactivateFn: func(ctx context.Context, token string, userID int64) error {
			deactivatedToken = token
			return nil
		},
		CreateFn: func(ctx context.Context, session *models.Session) error {
			newSession = session
			return nil
		},
	}
	userRepo := &fakeUserRepo{
		GetByIDFn: func(ctx context.Context, id int64) (*models.User, error) {
			return &models.User{ID: id, Email: "asha@college.edu", Role: models.RoleStudent, IsActive: true}, nil
		},
	}
	svc := NewAuthService(userRepo, sessionRepo, testJWTService())

	resp, err := svc.RefreshToken(context.Background(), "old-token", "", "")
	require.NoError(t, err)
	assert.Equal(t, "old-token", deactivatedToken)
	require.NotNil(t, newSession)
	assert.NotEqual(t, "old-token", newSession.RefreshToken)
	assert.Equal(t, resp.RefreshToken, newSession.RefreshToken)
}

func TestRefreshTokenRevoked(t *testing.T) {
	sessionRepo := &fakeSessionRepo{
		GetActiveByTokenFn: func(ctx context.Context, token string) (*models.Session, error) {
			return nil, apperrors.ErrTokenRevoked
		},
	}
	svc := NewAuthService(&fakeUserRepo{}, sessionRepo, testJWTService())

	_, err := svc.RefreshToken(context.Background(), "reused-token", "", "")
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestLogoutWithoutTokenEndsAllSessions(t *testing.T) {
	var allFor int64
	sessionRepo := &fakeSessionRepo{
		DeactivateAllFn: func(ctx context.Context, userID int64) error {
			allFor = userID
			return nil
		},
	}
	svc := NewAuthService(&fakeUserRepo{}, sessionRepo, testJWTService())

	require.NoError(t, svc.Logout(context.Background(), 7, ""))
	assert.Equal(t, int64(7), allFor)
}

func TestChangePasswordClosesSessions(t *testing.T) {
	var newHash string
	var closedFor int64

	userRepo := &fakeUserRepo{
		GetByIDFn: func(ctx context.Context, id int64) (*models.User, error) {
			return &models.User{ID: id, Password: hashed(t, "oldpassword")}, nil
		},
		UpdatePasswordFn: func(ctx context.Context, userID int64, passwordHash string) error {
			newHash = passwordHash
			return nil
		},
	}
	sessionRepo := &fakeSessionRepo{
		DeactivateAllFn: func(ctx context.Context, userID int64) error {
			closedFor = userID
			return nil
		},
	}
	svc := NewAuthService(userRepo, sessionRepo, testJWTService())

	err := svc.ChangePassword(context.Background(), 7, &dto.ChangePasswordRequest{
		CurrentPassword: "oldpassword",
		NewPassword:     "newpassword",
	})
	require.NoError(t, err)
	assert.NoError(t, auth.CheckPassword(newHash, "newpassword"))
	assert.Equal(t, int64(7), closedFor)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	userRepo := &fakeUserRepo{
		GetByIDFn: func(ctx context.Context, id int64) (*models.User, error) {
			return &models.User{ID: id, Password: hashed(t, "oldpassword")}, nil
		},
	}
	svc := NewAuthService(userRepo, &fakeSessionRepo{}, testJWTService())

	err := svc.ChangePassword(context.Background(), 7, &dto.ChangePasswordRequest{
		CurrentPassword: "notit",
		NewPassword:     "newpassword",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
