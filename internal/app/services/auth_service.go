package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"studentdesk/internal/app/models"
	"studentdesk/internal/app/models/dto"
	"studentdesk/internal/pkg/apperrors"
	"studentdesk/internal/pkg/auth"
	"studentdesk/internal/pkg/validation"
)

// userStore is the user persistence surface the auth service relies on.
type userStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService handles login and user registration.
type AuthService interface {
	// Login verifies credentials and returns the matching user. A missing
	// user and a wrong password are indistinguishable to the caller.
	Login(ctx context.Context, username, password string) (*models.User, error)

	// Register creates an additional user account. Returns
	// ValidationErrors for user-correctable input problems and
	// apperrors.ErrUsernameAlreadyExists on a duplicate username.
	Register(ctx context.Context, form dto.RegisterForm) (*models.User, error)
}

type authService struct {
	userRepo userStore
	logger   zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo userStore, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Login implements AuthService.
func (s *authService) Login(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Same failure as a password mismatch so usernames cannot
			// be enumerated.
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	s.logger.Info().Str("username", user.Username).Msg("User logged in")
	return user, nil
}

// ValidateRegistration checks registration input and returns ordered
// human-readable messages for everything that is wrong with it.
func ValidateRegistration(form dto.RegisterForm) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(form.Username) == "" {
		errs = append(errs, "Username is required.")
	}
	if len(form.Password) < validation.PasswordMinLength {
		errs = append(errs, "Password must be at least 6 characters.")
	}
	if form.Password != form.Confirm {
		errs = append(errs, "Passwords do not match.")
	}

	return errs
}

// Register implements AuthService.
func (s *authService) Register(ctx context.Context, form dto.RegisterForm) (*models.User, error) {
	if errs := ValidateRegistration(form); len(errs) > 0 {
		return nil, errs
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     strings.TrimSpace(form.Username),
		PasswordHash: hash,
		Role:         models.RoleStaff,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", user.Username).Msg("User registered")
	return user, nil
}
