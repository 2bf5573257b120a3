package middleware

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/arjunm/placementpulse/internal/pkg/apperrors"
)

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid credentials", apperrors.ErrInvalidCredentials, 401},
		{"account disabled", apperrors.ErrAccountDisabled, 401},
		{"token expired", apperrors.ErrTokenExpired, 401},
		{"token revoked", apperrors.ErrTokenRevoked, 401},
		{"permission denied", apperrors.ErrPermissionDenied, 403},
		{"not a participant", apperrors.ErrNotParticipant, 403},
		{"invalid status", apperrors.ErrInvalidStatus, 400},
		{"validation failed", fmt.Errorf("%w: rejection reason too short", apperrors.ErrValidationFailed), 400},
		{"email taken", apperrors.ErrEmailAlreadyExists, 409},
		{"experience missing", apperrors.ErrExperienceNotFound, 404},
		{"company missing", apperrors.ErrCompanyNotFound, 404},
		{"comment missing", apperrors.ErrCommentNotFound, 404},
		{"conversation missing", apperrors.ErrConversationNotFound, 404},
		{"user missing", apperrors.ErrUserNotFound, 404},
		{"unknown", fmt.Errorf("pool exhausted"), 500},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			HandleAPIError(c, tc.err)
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestHandleAPIErrorWrappedSentinel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	HandleAPIError(c, fmt.Errorf("loading experience: %w", apperrors.ErrExperienceNotFound))
	assert.Equal(t, 404, rec.Code)
}
