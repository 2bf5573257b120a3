package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/arjunm/placementpulse/internal/app/controllers"
	appMigrations "github.com/arjunm/placementpulse/internal/app/migrations"
	appRepos "github.com/arjunm/placementpulse/internal/app/repositories"
	appRoutes "github.com/arjunm/placementpulse/internal/app/routes"
	appServices "github.com/arjunm/placementpulse/internal/app/services"
	"github.com/arjunm/placementpulse/internal/config"
	"github.com/arjunm/placementpulse/internal/db"
	appMiddleware "github.com/arjunm/placementpulse/internal/middleware"
	pkgAuth "github.com/arjunm/placementpulse/internal/pkg/auth"
	"github.com/arjunm/placementpulse/internal/pkg/email"
	"github.com/arjunm/placementpulse/internal/pkg/helpers"
	"github.com/arjunm/placementpulse/internal/pkg/logger"
	"github.com/arjunm/placementpulse/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          appServices.AuthService
	CompanyService       appServices.CompanyService
	ExperienceService    appServices.ExperienceService
	CommentService       appServices.CommentService
	ChatService          appServices.ChatService
	AdminService         appServices.AdminService
	AuthController       *appControllers.AuthController
	ExperienceController *appControllers.ExperienceController
	AdminController      *appControllers.AdminController
	CommentController    *appControllers.CommentController
	ChatController       *appControllers.ChatController
	CompanyController    *appControllers.CompanyController
	UserController       *appControllers.UserController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	EmailService         email.EmailService
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds
// default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Seed failures are logged but do not block startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
		BaseURL:   cfg.SMTP.BaseURL,
	}, lgr)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.SessionRepository,
		deps.JWTService,
	)
	deps.CompanyService = appServices.NewCompanyService(deps.Repos.CompanyRepository)
	deps.ExperienceService = appServices.NewExperienceService(
		deps.Repos.ExperienceRepository,
		deps.CompanyService,
		deps.Repos.UserRepository,
		deps.Repos.ReactionRepository,
	)
	deps.CommentService = appServices.NewCommentService(
		deps.Repos.CommentRepository,
		deps.Repos.ExperienceRepository,
	)
	deps.ChatService = appServices.NewChatService(
		deps.Repos.ChatRepository,
		deps.Repos.UserRepository,
	)
	deps.AdminService = appServices.NewAdminService(
		deps.Repos.ExperienceRepository,
		deps.Repos.UserRepository,
		deps.Repos.CompanyRepository,
		deps.Repos.CommentRepository,
		deps.Repos.SessionRepository,
		deps.EmailService,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.ExperienceController = appControllers.NewExperienceController(deps.ExperienceService)
	deps.AdminController = appControllers.NewAdminController(deps.AdminService)
	deps.CommentController = appControllers.NewCommentController(deps.CommentService)
	deps.ChatController = appControllers.NewChatController(deps.ChatService)
	deps.CompanyController = appControllers.NewCompanyController(deps.CompanyService)
	deps.UserController = appControllers.NewUserController(deps.AuthService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(), gin.Recovery())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ExperienceController,
		deps.AdminController,
		deps.CommentController,
		deps.ChatController,
		deps.CompanyController,
		deps.UserController,
		deps.AuthMiddleware,
	)

	return router
}
