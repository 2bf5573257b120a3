package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/arjunm/placementpulse/internal/app/models"
	appRepos "github.com/arjunm/placementpulse/internal/app/repositories"
	"github.com/arjunm/placementpulse/internal/pkg/apperrors"
	"github.com/arjunm/placementpulse/internal/pkg/auth"
	"github.com/arjunm/placementpulse/internal/pkg/helpers"
)

const (
	defaultAdminEmail    = "admin@placementpulse.app"
	defaultAdminPassword = "Admin123!"
)

type seedCompany struct {
	Name     string
	Tier     string
	Category string
}

var defaultCompanies = []seedCompany{
	{Name: "Google", Tier: "Tier 1", Category: "Product"},
	{Name: "Microsoft", Tier: "Tier 1", Category: "Product"},
	{Name: "Amazon", Tier: "Tier 1", Category: "Product"},
	{Name: "TCS", Tier: "Tier 3", Category: "Service"},
	{Name: "Infosys", Tier: "Tier 3", Category: "Service"},
	{Name: "Wipro", Tier: "Tier 3", Category: "Service"},
	{Name: "Goldman Sachs", Tier: "Tier 1", Category: "Finance"},
	{Name: "Deloitte", Tier: "Tier 2", Category: "Consulting"},
}

// CreateDefaultData seeds the company registry and the system admin account.
// Errors are collected so a single failure does not block the rest of the seed.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	companyRepo := appRepos.NewCompanyRepository(dbPool)
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (Companies/Admin)...")
	var finalErr error

	for _, sc := range defaultCompanies {
		_, err := companyRepo.FindByName(ctx, sc.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, apperrors.ErrCompanyNotFound) {
			lgr.Error().Err(err).Str("company", sc.Name).Msg("Error checking default company")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		company := &appModels.Company{
			Name:     sc.Name,
			Slug:     helpers.Slugify(sc.Name),
			Tier:     sc.Tier,
			Category: sc.Category,
			IsActive: true,
		}
		if _, err := companyRepo.Create(ctx, company); err != nil {
			lgr.Error().Err(err).Str("company", sc.Name).Msg("Error creating default company")
			finalErr = errors.Join(finalErr, err)
		}
	}

	exists, err := userRepo.EmailExists(ctx, defaultAdminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return errors.Join(finalErr, err)
	}
	if exists {
		lgr.Info().Msg("Admin user already exists, skipping creation")
		return finalErr
	}

	lgr.Info().Msg("Creating default admin user...")
	hashedPassword, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return errors.Join(finalErr, err)
	}

	admin := &appModels.User{
		Name:       "System Administrator",
		Email:      defaultAdminEmail,
		Password:   hashedPassword,
		College:    "System",
		Role:       appModels.RoleAdmin,
		IsActive:   true,
		IsVerified: true,
	}
	adminID, err := userRepo.Create(ctx, admin)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return errors.Join(finalErr, err)
	}
	lgr.Info().Int64("adminID", adminID).Msg("Default admin user created successfully")

	return finalErr
}
