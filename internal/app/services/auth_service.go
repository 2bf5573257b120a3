package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arjunm/placementpulse/internal/app/models"
	"github.com/arjunm/placementpulse/internal/app/models/dto"
	"github.com/arjunm/placementpulse/internal/app/repositories"
	"github.com/arjunm/placementpulse/internal/pkg/apperrors"
	"github.com/arjunm/placementpulse/internal/pkg/auth"
	"github.com/arjunm/placementpulse/internal/pkg/logger"
)

// AuthService defines the interface for authentication and account operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest, deviceInfo, ipAddress string) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest, deviceInfo, ipAddress string) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken, deviceInfo, ipAddress string) (*dto.AuthResponse, error)
	Logout(ctx context.Context, userID int64, refreshToken string) error
	ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error
	GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	GetPublicProfile(ctx context.Context, userID int64) (*dto.UserResponse, error)
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	userRepo    repositories.IUserRepository
	sessionRepo repositories.ISessionRepository
	jwtService  *auth.JWTService
}

// NewAuthService creates a new auth service instance
func NewAuthService(
	userRepo repositories.IUserRepository,
	sessionRepo repositories.ISessionRepository,
	jwtService *auth.JWTService,
) AuthService {
	return &authServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtService:  jwtService,
	}
}

// Register creates a new student account and signs it in
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest, deviceInfo, ipAddress string) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Name:       strings.TrimSpace(req.Name),
		Email:      email,
		Password:   hash,
		RollNo:     req.RollNo,
		College:    strings.TrimSpace(req.College),
		Degree:     req.Degree,
		Course:     strings.TrimSpace(req.Course),
		Year:       req.Year,
		Role:       models.RoleStudent,
		IsActive:   true,
		IsVerified: true,
	}

	if _, err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	logger.Info().Int64("userId", user.ID).Str("college", user.College).Msg("New user registered")

	return s.issueTokens(ctx, user, deviceInfo, ipAddress)
}

// Login authenticates a user and opens a new session
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest, deviceInfo, ipAddress string) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if err := auth.CheckPassword(user.Password, req.Password); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.userRepo.TouchUpdatedAt(ctx, user.ID); err != nil {
		logger.Warn().Err(err).Int64("userId", user.ID).Msg("Failed to record login time")
	}

	return s.issueTokens(ctx, user, deviceInfo, ipAddress)
}

// RefreshToken rotates a refresh token into a fresh token pair
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken, deviceInfo, ipAddress string) (*dto.AuthResponse, error) {
	session, err := s.sessionRepo.GetActiveByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	// Rotate: the old token is dead as soon as the new pair exists
	if err := s.sessionRepo.Deactivate(ctx, refreshToken, user.ID); err != nil {
		return nil, fmt.Errorf("error rotating session: %w", err)
	}

	return s.issueTokens(ctx, user, deviceInfo, ipAddress)
}

// Logout ends one session, or all of the user's sessions when no token is given
func (s *authServiceImpl) Logout(ctx context.Context, userID int64, refreshToken string) error {
	if refreshToken == "" {
		return s.sessionRepo.DeactivateAll(ctx, userID)
	}

	err := s.sessionRepo.Deactivate(ctx, refreshToken, userID)
	if err != nil && !errors.Is(err, apperrors.ErrTokenNotFound) {
		return err
	}
	return nil
}

// ChangePassword verifies the current password before replacing it and closes
// every open session
func (s *authServiceImpl) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("error retrieving user: %w", err)
	}

	if err := auth.CheckPassword(user.Password, req.CurrentPassword); err != nil {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}

	if err := s.sessionRepo.DeactivateAll(ctx, userID); err != nil {
		logger.Warn().Err(err).Int64("userId", userID).Msg("Failed to close sessions after password change")
	}

	return nil
}

// GetProfile returns the caller's own account
func (s *authServiceImpl) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// UpdateProfile applies the non-nil fields of the request to the caller's account
func (s *authServiceImpl) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	fields := map[string]interface{}{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
		}
		fields["name"] = name
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.About != nil {
		fields["about"] = *req.About
	}
	if req.Skills != nil {
		fields["skills"] = req.Skills
	}
	if req.ResumeURL != nil {
		fields["resume_url"] = *req.ResumeURL
	}
	if req.GithubURL != nil {
		fields["github_url"] = *req.GithubURL
	}
	if req.LinkedinURL != nil {
		fields["linkedin_url"] = *req.LinkedinURL
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateProfile(ctx, userID, fields); err != nil {
			return nil, fmt.Errorf("error updating profile: %w", err)
		}
	}

	return s.GetProfile(ctx, userID)
}

// GetPublicProfile returns another user's profile with contact details removed
func (s *authServiceImpl) GetPublicProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserNotFound
	}
	resp := dto.ToPublicUserResponse(user)
	return &resp, nil
}

// issueTokens builds the token pair and persists the refresh side as a session
func (s *authServiceImpl) issueTokens(ctx context.Context, user *models.User, deviceInfo, ipAddress string) (*dto.AuthResponse, error) {
	accessToken, refreshToken, _, _, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	session := &models.Session{
		UserID:       user.ID,
		RefreshToken: refreshToken,
		DeviceInfo:   deviceInfo,
		IPAddress:    ipAddress,
		ExpiresAt:    s.jwtService.GetRefreshTokenExpiry(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("error creating session: %w", err)
	}

	return &dto.AuthResponse{
		User:         dto.ToUserResponse(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
