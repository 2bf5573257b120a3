package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjunm/placementpulse/internal/app/models"
)

// UserQuery captures admin user list filters
type UserQuery struct {
	Search    string
	College   string
	Course    string
	Year      string
	IsActive  string // "true", "false" or "all"
	SortBy    string
	SortOrder string
}

// ExperienceQuery captures experience list filters
type ExperienceQuery struct {
	Status         string
	CompanySlug    string
	ExperienceType string
	Result         string
	Search         string
	College        string
	AuthorID       int64
	SortBy         string
	SortOrder      string
}

// CompanyQuery captures company list filters
type CompanyQuery struct {
	Tier     string
	Category string
	Search   string
}

// DashboardCounts aggregates experience statistics for the admin dashboard
type DashboardCounts struct {
	Total       int64
	Pending     int64
	Approved    int64
	Rejected    int64
	Selected    int64
	Internships int64
	FullTime    int64
	Recent      int64
}

// IUserRepository is the user persistence contract
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, userID int64, fields map[string]interface{}) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	TouchUpdatedAt(ctx context.Context, userID int64) error
	ToggleActive(ctx context.Context, userID int64) (bool, error)
	List(ctx context.Context, query UserQuery, offset uint64, limit int) ([]*models.User, int64, error)
	CountActiveStudents(ctx context.Context) (int64, error)
}

// ISessionRepository is the refresh-token session contract
type ISessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetActiveByToken(ctx context.Context, token string) (*models.Session, error)
	Deactivate(ctx context.Context, token string, userID int64) error
	DeactivateAll(ctx context.Context, userID int64) error
	CleanupExpired(ctx context.Context) (int64, error)
}

// ICompanyRepository is the company registry contract
type ICompanyRepository interface {
	Create(ctx context.Context, company *models.Company) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Company, error)
	GetBySlug(ctx context.Context, slug string) (*models.Company, error)
	FindByName(ctx context.Context, name string) (*models.Company, error)
	List(ctx context.Context, query CompanyQuery, offset uint64, limit int) ([]*models.Company, int64, error)
	CountActive(ctx context.Context) (int64, error)
}

// IExperienceRepository is the experience persistence contract
type IExperienceRepository interface {
	Create(ctx context.Context, exp *models.Experience) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Experience, error)
	List(ctx context.Context, query ExperienceQuery, offset uint64, limit int) ([]*models.Experience, int64, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	Approve(ctx context.Context, id, adminID int64, at time.Time) error
	Reject(ctx context.Context, id, adminID int64, reason string, at time.Time) error
	SetViewsCount(ctx context.Context, id, count int64) error
	AdjustCommentsCount(ctx context.Context, id int64, delta int64) error
	AdjustLikesCount(ctx context.Context, id int64, delta int64) (int64, error)
	DashboardCounts(ctx context.Context, since time.Time) (*DashboardCounts, error)
}

// ICommentRepository is the comment persistence contract
type ICommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	ListByExperience(ctx context.Context, experienceID int64) ([]*models.Comment, error)
	SoftDelete(ctx context.Context, id int64) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}

// IChatRepository is the conversation/message persistence contract
type IChatRepository interface {
	GetOrCreateConversation(ctx context.Context, userA, userB int64) (*models.Conversation, error)
	GetConversation(ctx context.Context, id int64) (*models.Conversation, error)
	ListConversations(ctx context.Context, userID int64) ([]*models.Conversation, error)
	CreateMessage(ctx context.Context, msg *models.Message) (int64, error)
	ListMessages(ctx context.Context, conversationID int64, offset uint64, limit int) ([]*models.Message, int64, error)
	MarkRead(ctx context.Context, conversationID, readerID int64) (int64, error)
}

// IReactionRepository is the like/bookmark join-row contract
type IReactionRepository interface {
	IsLiked(ctx context.Context, userID, experienceID int64) (bool, error)
	AddLike(ctx context.Context, userID, experienceID int64) error
	RemoveLike(ctx context.Context, userID, experienceID int64) error
	IsBookmarked(ctx context.Context, userID, experienceID int64) (bool, error)
	AddBookmark(ctx context.Context, userID, experienceID int64) error
	RemoveBookmark(ctx context.Context, userID, experienceID int64) error
}

// Repositories bundles all repository implementations
type Repositories struct {
	UserRepository       IUserRepository
	SessionRepository    ISessionRepository
	CompanyRepository    ICompanyRepository
	ExperienceRepository IExperienceRepository
	CommentRepository    ICommentRepository
	ChatRepository       IChatRepository
	ReactionRepository   IReactionRepository
}

// NewRepositories creates the repository container backed by the given pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		SessionRepository:    NewSessionRepository(db),
		CompanyRepository:    NewCompanyRepository(db),
		ExperienceRepository: NewExperienceRepository(db),
		CommentRepository:    NewCommentRepository(db),
		ChatRepository:       NewChatRepository(db),
		ReactionRepository:   NewReactionRepository(db),
	}
}
