package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "studentdesk/internal/app/models"
	appRepos "studentdesk/internal/app/repositories"
	"studentdesk/internal/pkg/apperrors"
	"studentdesk/internal/pkg/auth"
)

// Default admin credentials seeded at first setup. The password is expected
// to be changed right after.
const (
	AdminUsername = "admin"
	AdminPassword = "admin123"
)

// CreateDefaultData creates the default admin account if it doesn't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	exists, err := userRepo.UsernameExists(ctx, AdminUsername)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return err
	}
	if exists {
		lgr.Info().Msg("Admin user already exists, skipping creation")
		return nil
	}

	lgr.Info().Msg("Creating default admin user...")

	hash, err := auth.HashPassword(AdminPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	admin := &appModels.User{
		Username:     AdminUsername,
		PasswordHash: hash,
		Role:         appModels.RoleAdmin,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		// A concurrent seed may have won the race; that is fine.
		if errors.Is(err, apperrors.ErrUsernameAlreadyExists) {
			lgr.Info().Msg("Admin user created concurrently, skipping")
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating admin user")
		return err
	}

	lgr.Info().Int64("adminID", admin.ID).Msg("Default admin user created successfully")
	return nil
}
