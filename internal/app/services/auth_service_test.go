package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"studentdesk/internal/app/models"
	"studentdesk/internal/app/models/dto"
	"studentdesk/internal/pkg/apperrors"
	"studentdesk/internal/pkg/auth"
)

// stubUserStore is a hand-rolled in-memory userStore.
type stubUserStore struct {
	users     map[string]*models.User
	createErr error
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{users: map[string]*models.User{}}
}

func (s *stubUserStore) Create(ctx context.Context, user *models.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	if _, ok := s.users[user.Username]; ok {
		return apperrors.ErrUsernameAlreadyExists
	}
	user.ID = int64(len(s.users) + 1)
	s.users[user.Username] = user
	return nil
}

func (s *stubUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, ok := s.users[username]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (s *stubUserStore) add(t *testing.T, username, password string, role models.RoleType) {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	s.users[username] = &models.User{
		ID:           int64(len(s.users) + 1),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
}

func TestLoginSuccess(t *testing.T) {
	store := newStubUserStore()
	store.add(t, "admin", "admin123", models.RoleAdmin)
	svc := NewAuthService(store, zerolog.Nop())

	user, err := svc.Login(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.Username != "admin" || user.Role != models.RoleAdmin {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestLoginTrimsUsername(t *testing.T) {
	store := newStubUserStore()
	store.add(t, "admin", "admin123", models.RoleAdmin)
	svc := NewAuthService(store, zerolog.Nop())

	if _, err := svc.Login(context.Background(), "  admin  ", "admin123"); err != nil {
		t.Errorf("Login with padded username failed: %v", err)
	}
}

func TestLoginFailureIsGeneric(t *testing.T) {
	store := newStubUserStore()
	store.add(t, "admin", "admin123", models.RoleAdmin)
	svc := NewAuthService(store, zerolog.Nop())

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"unknown user", "ghost", "admin123"},
		{"wrong password", "admin", "wrong"},
		{"empty username", "", "admin123"},
		{"empty password", "admin", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.username, tc.password)
			if !errors.Is(err, apperrors.ErrInvalidCredentials) {
				t.Errorf("Login error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestValidateRegistration(t *testing.T) {
	cases := []struct {
		name string
		form dto.RegisterForm
		want []string
	}{
		{
			name: "valid",
			form: dto.RegisterForm{Username: "clerk", Password: "secret1", Confirm: "secret1"},
			want: nil,
		},
		{
			name: "missing username",
			form: dto.RegisterForm{Password: "secret1", Confirm: "secret1"},
			want: []string{"Username is required."},
		},
		{
			name: "short password",
			form: dto.RegisterForm{Username: "clerk", Password: "abc", Confirm: "abc"},
			want: []string{"Password must be at least 6 characters."},
		},
		{
			name: "mismatched confirmation",
			form: dto.RegisterForm{Username: "clerk", Password: "secret1", Confirm: "secret2"},
			want: []string{"Passwords do not match."},
		},
		{
			name: "everything wrong",
			form: dto.RegisterForm{Username: "  ", Password: "abc", Confirm: "abd"},
			want: []string{
				"Username is required.",
				"Password must be at least 6 characters.",
				"Passwords do not match.",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := ValidateRegistration(tc.form)
			if len(errs) != len(tc.want) {
				t.Fatalf("got %d messages %v, want %d", len(errs), errs, len(tc.want))
			}
			for i := range tc.want {
				if errs[i] != tc.want[i] {
					t.Errorf("message[%d] = %q, want %q", i, errs[i], tc.want[i])
				}
			}
		})
	}
}

func TestRegisterCreatesStaffUser(t *testing.T) {
	store := newStubUserStore()
	svc := NewAuthService(store, zerolog.Nop())

	user, err := svc.Register(context.Background(), dto.RegisterForm{
		Username: "  clerk  ",
		Password: "secret1",
		Confirm:  "secret1",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if user.Username != "clerk" {
		t.Errorf("Username = %q, want trimmed %q", user.Username, "clerk")
	}
	if user.Role != models.RoleStaff {
		t.Errorf("Role = %q, want STAFF", user.Role)
	}
	if !auth.CheckPassword(user.PasswordHash, "secret1") {
		t.Error("stored hash does not verify the password")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	store := newStubUserStore()
	store.add(t, "clerk", "secret1", models.RoleStaff)
	svc := NewAuthService(store, zerolog.Nop())

	_, err := svc.Register(context.Background(), dto.RegisterForm{
		Username: "clerk",
		Password: "secret1",
		Confirm:  "secret1",
	})
	if !errors.Is(err, apperrors.ErrUsernameAlreadyExists) {
		t.Errorf("Register error = %v, want ErrUsernameAlreadyExists", err)
	}
}

func TestRegisterValidationShortCircuits(t *testing.T) {
	store := newStubUserStore()
	store.createErr = errors.New("store must not be touched")
	svc := NewAuthService(store, zerolog.Nop())

	_, err := svc.Register(context.Background(), dto.RegisterForm{})
	var validationErrs ValidationErrors
	if !errors.As(err, &validationErrs) {
		t.Fatalf("Register error = %v, want ValidationErrors", err)
	}
}
