package services

import (
	"context"
	"time"

	"github.com/arjunm/placementpulse/internal/app/models"
	"github.com/arjunm/placementpulse/internal/app/repositories"
	"github.com/arjunm/placementpulse/internal/pkg/apperrors"
)

// Function-field fakes for the repository contracts. Tests set only the
// methods they expect; anything else returns zero values.

type fakeUserRepo struct {
	CreateFn              func(ctx context.Context, user *models.User) (int64, error)
	GetByIDFn             func(ctx context.Context, id int64) (*models.User, error)
	GetByEmailFn          func(ctx context.Context, email string) (*models.User, error)
	EmailExistsFn         func(ctx context.Context, email string) (bool, error)
	UpdateProfileFn       func(ctx context.Context, userID int64, fields map[string]interface{}) error
	UpdatePasswordFn      func(ctx context.Context, userID int64, passwordHash string) error
	TouchUpdatedAtFn      func(ctx context.Context, userID int64) error
	ToggleActiveFn        func(ctx context.Context, userID int64) (bool, error)
	ListFn                func(ctx context.Context, query repositories.UserQuery, offset uint64, limit int) ([]*models.User, int64, error)
	CountActiveStudentsFn func(ctx context.Context) (int64, error)
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) (int64, error) {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, user)
	}
	return 0, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if f.GetByIDFn != nil {
		return f.GetByIDFn(ctx, id)
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.GetByEmailFn != nil {
		return f.GetByEmailFn(ctx, email)
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	if f.EmailExistsFn != nil {
		return f.EmailExistsFn(ctx, email)
	}
	return false, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, userID int64, fields map[string]interface{}) error {
	if f.UpdateProfileFn != nil {
		return f.UpdateProfileFn(ctx, userID, fields)
	}
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	if f.UpdatePasswordFn != nil {
		return f.UpdatePasswordFn(ctx, userID, passwordHash)
	}
	return nil
}

func (f *fakeUserRepo) TouchUpdatedAt(ctx context.Context, userID int64) error {
	if f.TouchUpdatedAtFn != nil {
		return f.TouchUpdatedAtFn(ctx, userID)
	}
	return nil
}

func (f *fakeUserRepo) ToggleActive(ctx context.Context, userID int64) (bool, error) {
	if f.ToggleActiveFn != nil {
		return f.ToggleActiveFn(ctx, userID)
	}
	return false, nil
}

func (f *fakeUserRepo) List(ctx context.Context, query repositories.UserQuery, offset uint64, limit int) ([]*models.User, int64, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx, query, offset, limit)
	}
	return nil, 0, nil
}

func (f *fakeUserRepo) CountActiveStudents(ctx context.Context) (int64, error) {
	if f.CountActiveStudentsFn != nil {
		return f.CountActiveStudentsFn(ctx)
	}
	return 0, nil
}

type fakeSessionRepo struct {
	CreateFn           func(ctx context.Context, session *models.Session) error
	GetActiveByTokenFn func(ctx context.Context, token string) (*models.Session, error)
	DeactivateFn       func(ctx context.Context, token string, userID int64) error
	DeactivateAllFn    func(ctx context.Context, userID int64) error
	CleanupExpiredFn   func(ctx context.Context) (int64, error)
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *models.Session) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, session)
	}
	return nil
}

func (f *fakeSessionRepo) GetActiveByToken(ctx context.Context, token string) (*models.Session, error) {
	if f.GetActiveByTokenFn != nil {
		return f.GetActiveByTokenFn(ctx, token)
	}
	return nil, apperrors.ErrTokenNotFound
}

func (f *fakeSessionRepo) Deactivate(ctx context.Context, token string, userID int64) error {
	if f.DeactivateFn != nil {
		return f.DeactivateFn(ctx, token, userID)
	}
	return nil
}

func (f *fakeSessionRepo) DeactivateAll(ctx context.Context, userID int64) error {
	if f.DeactivateAllFn != nil {
		return f.DeactivateAllFn(ctx, userID)
	}
	return nil
}

func (f *fakeSessionRepo) CleanupExpired(ctx context.Context) (int64, error) {
	if f.CleanupExpiredFn != nil {
		return f.CleanupExpiredFn(ctx)
	}
	return 0, nil
}

type fakeCompanyRepo struct {
	CreateFn      func(ctx context.Context, company *models.Company) (int64, error)
	GetByIDFn     func(ctx context.Context, id int64) (*models.Company, error)
	GetBySlugFn   func(ctx context.Context, slug string) (*models.Company, error)
	FindByNameFn  func(ctx context.Context, name string) (*models.Company, error)
	ListFn        func(ctx context.Context, query repositories.CompanyQuery, offset uint64, limit int) ([]*models.Company, int64, error)
	CountActiveFn func(ctx context.Context) (int64, error)
}

func (f *fakeCompanyRepo) Create(ctx context.Context, company *models.Company) (int64, error) {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, company)
	}
	return 0, nil
}

func (f *fakeCompanyRepo) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	if f.GetByIDFn != nil {
		return f.GetByIDFn(ctx, id)
	}
	return nil, apperrors.ErrCompanyNotFound
}

func (f *fakeCompanyRepo) GetBySlug(ctx context.Context, slug string) (*models.Company, error) {
	if f.GetBySlugFn != nil {
		return f.GetBySlugFn(ctx, slug)
	}
	return nil, apperrors.ErrCompanyNotFound
}

func (f *fakeCompanyRepo) FindByName(ctx context.Context, name string) (*models.Company, error) {
	if f.FindByNameFn != nil {
		return f.FindByNameFn(ctx, name)
	}
	return nil, apperrors.ErrCompanyNotFound
}

func (f *fakeCompanyRepo) List(ctx context.Context, query repositories.CompanyQuery, offset uint64, limit int) ([]*models.Company, int64, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx, query, offset, limit)
	}
	return nil, 0, nil
}

func (f *fakeCompanyRepo) CountActive(ctx context.Context) (int64, error) {
	if f.CountActiveFn != nil {
		return f.CountActiveFn(ctx)
	}
	return 0, nil
}

type fakeExperienceRepo struct {
	CreateFn              func(ctx context.Context, exp *models.Experience) (int64, error)
	GetByIDFn             func(ctx context.Context, id int64) (*models.Experience, error)
	ListFn                func(ctx context.Context, query repositories.ExperienceQuery, offset uint64, limit int) ([]*models.Experience, int64, error)
	UpdateFn              func(ctx context.Context, id int64, fields map[string]interface{}) error
	DeleteFn              func(ctx context.Context, id int64) error
	ApproveFn             func(ctx context.Context, id, adminID int64, at time.Time) error
	RejectFn              func(ctx context.Context, id, adminID int64, reason string, at time.Time) error
	SetViewsCountFn       func(ctx context.Context, id, count int64) error
	AdjustCommentsCountFn func(ctx context.Context, id int64, delta int64) error
	AdjustLikesCountFn    func(ctx context.Context, id int64, delta int64) (int64, error)
	DashboardCountsFn     func(ctx context.Context, since time.Time) (*repositories.DashboardCounts, error)
}

func (f *fakeExperienceRepo) Create(ctx context.Context, exp *models.Experience) (int64, error) {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, exp)
	}
	return 0, nil
}

func (f *fakeExperienceRepo) GetByID(ctx context.Context, id int64) (*models.Experience, error) {
	if f.GetByIDFn != nil {
		return f.GetByIDFn(ctx, id)
	}
	return nil, apperrors.ErrExperienceNotFound
}

func (f *fakeExperienceRepo) List(ctx context.Context, query repositories.ExperienceQuery, offset uint64, limit int) ([]*models.Experience, int64, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx, query, offset, limit)
	}
	return nil, 0, nil
}

func (f *fakeExperienceRepo) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, id, fields)
	}
	return nil
}

func (f *fakeExperienceRepo) Delete(ctx context.Context, id int64) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}

func (f *fakeExperienceRepo) Approve(ctx context.Context, id, adminID int64, at time.Time) error {
	if f.ApproveFn != nil {
		return f.ApproveFn(ctx, id, adminID, at)
	}
	return nil
}

func (f *fakeExperienceRepo) Reject(ctx context.Context, id, adminID int64, reason string, at time.Time) error {
	if f.RejectFn != nil {
		return f.RejectFn(ctx, id, adminID, reason, at)
	}
	return nil
}

func (f *fakeExperienceRepo) SetViewsCount(ctx context.Context, id, count int64) error {
	if f.SetViewsCountFn != nil {
		return f.SetViewsCountFn(ctx, id, count)
	}
	return nil
}

func (f *fakeExperienceRepo) AdjustCommentsCount(ctx context.Context, id int64, delta int64) error {
	if f.AdjustCommentsCountFn != nil {
		return f.AdjustCommentsCountFn(ctx, id, delta)
	}
	return nil
}

func (f *fakeExperienceRepo) AdjustLikesCount(ctx context.Context, id int64, delta int64) (int64, error) {
	if f.AdjustLikesCountFn != nil {
		return f.AdjustLikesCountFn(ctx, id, delta)
	}
	return 0, nil
}

func (f *fakeExperienceRepo) DashboardCounts(ctx context.Context, since time.Time) (*repositories.DashboardCounts, error) {
	if f.DashboardCountsFn != nil {
		return f.DashboardCountsFn(ctx, since)
	}
	return &repositories.DashboardCounts{}, nil
}

type fakeCommentRepo struct {
	CreateFn           func(ctx context.Context, comment *models.Comment) (int64, error)
	GetByIDFn          func(ctx context.Context, id int64) (*models.Comment, error)
	ListByExperienceFn func(ctx context.Context, experienceID int64) ([]*models.Comment, error)
	SoftDeleteFn       func(ctx context.Context, id int64) (int64, error)
	CountActiveFn      func(ctx context.Context) (int64, error)
}

func (f *fakeCommentRepo) Create(ctx context.Context, comment *models.Comment) (int64, error) {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, comment)
	}
	return 0, nil
}

func (f *fakeCommentRepo) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	if f.GetByIDFn != nil {
		return f.GetByIDFn(ctx, id)
	}
	return nil, apperrors.ErrCommentNotFound
}

func (f *fakeCommentRepo) ListByExperience(ctx context.Context, experienceID int64) ([]*models.Comment, error) {
	if f.ListByExperienceFn != nil {
		return f.ListByExperienceFn(ctx, experienceID)
	}
	return nil, nil
}

func (f *fakeCommentRepo) SoftDelete(ctx context.Context, id int64) (int64, error) {
	if f.SoftDeleteFn != nil {
		return f.SoftDeleteFn(ctx, id)
	}
	return 0, nil
}

func (f *fakeCommentRepo) CountActive(ctx context.Context) (int64, error) {
	if f.CountActiveFn != nil {
		return f.CountActiveFn(ctx)
	}
	return 0, nil
}

type fakeChatRepo struct {
	GetOrCreateConversationFn func(ctx context.Context, userA, userB int64) (*models.Conversation, error)
	GetConversationFn         func(ctx context.Context, id int64) (*models.Conversation, error)
	ListConversationsFn       func(ctx context.Context, userID int64) ([]*models.Conversation, error)
	CreateMessageFn           func(ctx context.Context, msg *models.Message) (int64, error)
	ListMessagesFn            func(ctx context.Context, conversationID int64, offset uint64, limit int) ([]*models.Message, int64, error)
	MarkReadFn                func(ctx context.Context, conversationID, readerID int64) (int64, error)
}

func (f *fakeChatRepo) GetOrCreateConversation(ctx context.Context, userA, userB int64) (*models.Conversation, error) {
	if f.GetOrCreateConversationFn != nil {
		return f.GetOrCreateConversationFn(ctx, userA, userB)
	}
	return nil, apperrors.ErrConversationNotFound
}

func (f *fakeChatRepo) GetConversation(ctx context.Context, id int64) (*models.Conversation, error) {
	if f.GetConversationFn != nil {
		return f.GetConversationFn(ctx, id)
	}
	return nil, apperrors.ErrConversationNotFound
}

func (f *fakeChatRepo) ListConversations(ctx context.Context, userID int64) ([]*models.Conversation, error) {
	if f.ListConversationsFn != nil {
		return f.ListConversationsFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeChatRepo) CreateMessage(ctx context.Context, msg *models.Message) (int64, error) {
	if f.CreateMessageFn != nil {
		return f.CreateMessageFn(ctx, msg)
	}
	return 0, nil
}

func (f *fakeChatRepo) ListMessages(ctx context.Context, conversationID int64, offset uint64, limit int) ([]*models.Message, int64, error) {
	if f.ListMessagesFn != nil {
		return f.ListMessagesFn(ctx, conversationID, offset, limit)
	}
	return nil, 0, nil
}

func (f *fakeChatRepo) MarkRead(ctx context.Context, conversationID, readerID int64) (int64, error) {
	if f.MarkReadFn != nil {
		return f.MarkReadFn(ctx, conversationID, readerID)
	}
	return 0, nil
}

type fakeReactionRepo struct {
	IsLikedFn        func(ctx context.Context, userID, experienceID int64) (bool, error)
	AddLikeFn        func(ctx context.Context, userID, experienceID int64) error
	RemoveLikeFn     func(ctx context.Context, userID, experienceID int64) error
	IsBookmarkedFn   func(ctx context.Context, userID, experienceID int64) (bool, error)
	AddBookmarkFn    func(ctx context.Context, userID, experienceID int64) error
	RemoveBookmarkFn func(ctx context.Context, userID, experienceID int64) error
}

func (f *fakeReactionRepo) IsLiked(ctx context.Context, userID, experienceID int64) (bool, error) {
	if f.IsLikedFn != nil {
		return f.IsLikedFn(ctx, userID, experienceID)
	}
	return false, nil
}

func (f *fakeReactionRepo) AddLike(ctx context.Context, userID, experienceID int64) error {
	if f.AddLikeFn != nil {
		return f.AddLikeFn(ctx, userID, experienceID)
	}
	return nil
}

func (f *fakeReactionRepo) RemoveLike(ctx context.Context, userID, experienceID int64) error {
	if f.RemoveLikeFn != nil {
		return f.RemoveLikeFn(ctx, userID, experienceID)
	}
	return nil
}

func (f *fakeReactionRepo) IsBookmarked(ctx context.Context, userID, experienceID int64) (bool, error) {
	if f.IsBookmarkedFn != nil {
		return f.IsBookmarkedFn(ctx, userID, experienceID)
	}
	return false, nil
}

func (f *fakeReactionRepo) AddBookmark(ctx context.Context, userID, experienceID int64) error {
	if f.AddBookmarkFn != nil {
		return f.AddBookmarkFn(ctx, userID, experienceID)
	}
	return nil
}

func (f *fakeReactionRepo) RemoveBookmark(ctx context.Context, userID, experienceID int64) error {
	if f.RemoveBookmarkFn != nil {
		return f.RemoveBookmarkFn(ctx, userID, experienceID)
	}
	return nil
}

// fakeEmailService records moderation notifications
type fakeEmailService struct {
	approved []string
	rejected []string
	err      error
}

func (f *fakeEmailService) SendExperienceApprovedEmail(toEmail, toName, experienceTitle string) error {
	f.approved = append(f.approved, toEmail)
	return f.err
}

func (f *fakeEmailService) SendExperienceRejectedEmail(toEmail, toName, experienceTitle, reason string) error {
	f.rejected = append(f.rejected, toEmail)
	return f.err
}
