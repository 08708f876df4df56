package authpw

import (
	"context"
	"errors"
	"testing"
	"time"

	"folio/api/internal/store"
)

type mockUserStore struct {
	users      map[string]store.User
	emailIndex map[string]string
	resets     map[string]struct {
		userID    string
		expiresAt time.Time
		used      bool
	}
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{
		users:      make(map[string]store.User),
		emailIndex: make(map[string]string),
		resets: make(map[string]struct {
			userID    string
			expiresAt time.Time
			used      bool
		}),
	}
}

func (m *mockUserStore) GetUserByEmail(_ context.Context, email string) (store.User, error) {
	if userID, ok := m.emailIndex[email]; ok {
		return m.users[userID], nil
	}
	return store.User{}, errors.New("user not found")
}

func (m *mockUserStore) GetUserByID(_ context.Context, id string) (store.User, error) {
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return store.User{}, errors.New("user not found")
}

func (m *mockUserStore) CreateUser(_ context.Context, user store.User) error {
	m.users[user.ID] = user
	m.emailIndex[user.Email] = user.ID
	return nil
}

func (m *mockUserStore) UpdateUserPassword(_ context.Context, userID, passwordHash string) error {
	if user, ok := m.users[userID]; ok {
		user.PasswordHash = passwordHash
		m.users[userID] = user
		return nil
	}
	return errors.New("user not found")
}

func (m *mockUserStore) CreatePasswordReset(_ context.Context, userID, token string, expiresAt time.Time) error {
	m.resets[token] = struct {
		userID    string
		expiresAt time.Time
		used      bool
	}{userID: userID, expiresAt: expiresAt}
	return nil
}

func (m *mockUserStore) GetPasswordReset(_ context.Context, token string) (string, error) {
	if reset, ok := m.resets[token]; ok && !reset.used && time.Now().Before(reset.expiresAt) {
		return reset.userID, nil
	}
	return "", errors.New("invalid or expired token")
}

func (m *mockUserStore) MarkPasswordResetUsed(_ context.Context, token string) error {
	if reset, ok := m.resets[token]; ok {
		reset.used = true
		m.resets[token] = reset
	}
	return nil
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	mockStore := newMockUserStore()
	svc := NewService(mockStore)

	t.Run("successful creation", func(t *testing.T) {
		user, err := svc.CreateUser(ctx, CreateUserRequest{
			Email:       "test@example.com",
			Password:    "password123",
			DisplayName: "Test User",
			Role:        "editor",
		})
		if err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if user.ID == "" {
			t.Error("expected a generated user ID")
		}
		if user.Role != "editor" {
			t.Errorf("expected role editor, got %s", user.Role)
		}
		if user.PasswordHash == "password123" {
			t.Error("password must be hashed")
		}
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, CreateUserRequest{
			Email:    "test@example.com",
			Password: "password456",
		})
		if err == nil {
			t.Error("expected error for duplicate email")
		}
	})

	t.Run("short password rejected", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, CreateUserRequest{
			Email:    "short@example.com",
			Password: "short",
		})
		if err == nil {
			t.Error("expected error for short password")
		}
	})

	t.Run("unknown role defaults to viewer", func(t *testing.T) {
		user, err := svc.CreateUser(ctx, CreateUserRequest{
			Email:    "viewer@example.com",
			Password: "password123",
			Role:     "superuser",
		})
		if err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if user.Role != "viewer" {
			t.Errorf("expected role viewer, got %s", user.Role)
		}
	})
}

func TestSignIn(t *testing.T) {
	ctx := context.Background()
	mockStore := newMockUserStore()
	svc := NewService(mockStore)

	created, err := svc.CreateUser(ctx, CreateUserRequest{
		Email:    "signin@example.com",
		Password: "password123",
		Role:     "admin",
	})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	t.Run("correct credentials", func(t *testing.T) {
		user, err := svc.SignIn(ctx, SignInRequest{Email: "signin@example.com", Password: "password123"})
		if err != nil {
			t.Fatalf("SignIn failed: %v", err)
		}
		if user.ID != created.ID {
			t.Errorf("expected user %s, got %s", created.ID, user.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.SignIn(ctx, SignInRequest{Email: "signin@example.com", Password: "nope-nope"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.SignIn(ctx, SignInRequest{Email: "ghost@example.com", Password: "password123"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		if _, err := svc.SignIn(ctx, SignInRequest{}); err == nil {
			t.Error("expected error for empty request")
		}
	})
}

func TestPasswordReset(t *testing.T) {
	ctx := context.Background()
	mockStore := newMockUserStore()
	svc := NewService(mockStore)

	if _, err := svc.CreateUser(ctx, CreateUserRequest{
		Email:    "reset@example.com",
		Password: "password123",
	}); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	t.Run("unknown email yields empty token without error", func(t *testing.T) {
		token, err := svc.RequestPasswordReset(ctx, "ghost@example.com")
		if err != nil {
			t.Fatalf("RequestPasswordReset failed: %v", err)
		}
		if token != "" {
			t.Error("unknown email must not yield a token")
		}
	})

	t.Run("full reset flow", func(t *testing.T) {
		token, err := svc.RequestPasswordReset(ctx, "reset@example.com")
		if err != nil {
			t.Fatalf("RequestPasswordReset failed: %v", err)
		}
		if token == "" {
			t.Fatal("expected a reset token")
		}

		if err := svc.ResetPassword(ctx, ResetPasswordRequest{Token: token, NewPassword: "newpassword1"}); err != nil {
			t.Fatalf("ResetPassword failed: %v", err)
		}

		if _, err := svc.SignIn(ctx, SignInRequest{Email: "reset@example.com", Password: "newpassword1"}); err != nil {
			t.Errorf("sign in with new password failed: %v", err)
		}
		if _, err := svc.SignIn(ctx, SignInRequest{Email: "reset@example.com", Password: "password123"}); err == nil {
			t.Error("old password must no longer work")
		}
	})

	t.Run("token cannot be reused", func(t *testing.T) {
		token, err := svc.RequestPasswordReset(ctx, "reset@example.com")
		if err != nil {
			t.Fatalf("RequestPasswordReset failed: %v", err)
		}
		if err := svc.ResetPassword(ctx, ResetPasswordRequest{Token: token, NewPassword: "anotherpass1"}); err != nil {
			t.Fatalf("ResetPassword failed: %v", err)
		}
		if err := svc.ResetPassword(ctx, ResetPasswordRequest{Token: token, NewPassword: "thirdpass12"}); err == nil {
			t.Error("used token must be rejected")
		}
	})

	t.Run("short new password rejected", func(t *testing.T) {
		token, err := svc.RequestPasswordReset(ctx, "reset@example.com")
		if err != nil {
			t.Fatalf("RequestPasswordReset failed: %v", err)
		}
		if err := svc.ResetPassword(ctx, ResetPasswordRequest{Token: token, NewPassword: "short"}); err == nil {
			t.Error("expected error for short password")
		}
	})
}
